package lbm

import "errors"

var (
	// ErrInvalidSize indicates a grid too small to hold one interior cell
	// inside the obstacle border.
	ErrInvalidSize = errors.New("lbm: grid must be at least 3x3")

	// ErrInvalidViscosity indicates a non-positive or non-finite viscosity.
	ErrInvalidViscosity = errors.New("lbm: viscosity must be positive and finite")

	// ErrUnknownVariant indicates a variant name ParseVariant does not know.
	ErrUnknownVariant = errors.New("lbm: unknown variant")
)
