package lbm

import "fmt"

// CellType tags each lattice cell. The numeric values matter: the
// no-empty-neighbour test in classify is "every neighbour code > 0", so
// Obstacle must stay negative and Empty zero.
type CellType int8

const (
	Obstacle     CellType = -1
	Empty        CellType = 0
	Fluid        CellType = 1
	Interface    CellType = 2
	NewInterface CellType = 3
)

func (t CellType) String() string {
	switch t {
	case Obstacle:
		return "obstacle"
	case Empty:
		return "empty"
	case Fluid:
		return "fluid"
	case Interface:
		return "interface"
	case NewInterface:
		return "new_interface"
	}
	return fmt.Sprintf("CellType(%d)", int8(t))
}

// carriesMass reports whether a cell keeps a mass value across ticks.
func (t CellType) carriesMass() bool { return t >= Interface }

// InterfaceClass refines an Interface cell by what surrounds it.
type InterfaceClass int8

const (
	// Standard is the zero value and is also reported for non-interface cells.
	Standard InterfaceClass = iota
	NoFluidNeighbor
	NoEmptyNeighbor
	// NoInterfaceNeighbor is a NoFluidNeighbor cell that also has no
	// interface neighbour.
	NoInterfaceNeighbor
)

func (c InterfaceClass) String() string {
	switch c {
	case Standard:
		return "standard"
	case NoFluidNeighbor:
		return "no_fluid_neighbor"
	case NoEmptyNeighbor:
		return "no_empty_neighbor"
	case NoInterfaceNeighbor:
		return "no_interface_neighbor"
	}
	return fmt.Sprintf("InterfaceClass(%d)", int8(c))
}

// drains reports whether the class only lets mass flow out to interface
// neighbours.
func (c InterfaceClass) drains() bool {
	return c == NoFluidNeighbor || c == NoInterfaceNeighbor
}

// Variant selects the pipeline a Sim runs.
type Variant int

const (
	FreeSurface Variant = iota
	SinglePhase
)

func (v Variant) String() string {
	switch v {
	case FreeSurface:
		return "free_surface"
	case SinglePhase:
		return "single_phase"
	}
	return fmt.Sprintf("Variant(%d)", int(v))
}

// ParseVariant maps a config name to a Variant.
func ParseVariant(name string) (Variant, error) {
	switch name {
	case "free_surface", "":
		return FreeSurface, nil
	case "single_phase":
		return SinglePhase, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownVariant, name)
}

// Coord addresses a cell.
type Coord struct {
	X, Y int
}
