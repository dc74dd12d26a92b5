// Package lattice holds the D2Q9 velocity set and the small amount of 2D
// vector math shared by the lattice-Boltzmann engine.
//
// Directions are numbered counter-clockwise starting east, with the rest
// population at index 0:
//
//	4 3 2
//	5 0 1
//	6 7 8
//
// Direction d moves a population by [Offsets][d]. The opposite of a moving
// direction d is [Opposite](d).
package lattice
