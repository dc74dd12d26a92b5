// Package lbm implements a 2D D2Q9 lattice-Boltzmann fluid with an optional
// free surface.
//
// A [Sim] owns a fixed W×H grid whose outer ring is always [Obstacle]. One
// call to [Sim.Simulate] advances the pipeline a number of ticks; each tick
// runs, over the whole grid and in this order:
//
//   - collide: relax populations toward the local equilibrium
//   - estimate: fluid fraction and interface normal (free surface only)
//   - stream: double-buffered propagation, rebuilding populations that
//     would come from the empty phase at interface cells
//   - bounce: full-way bounce-back at obstacle cells
//   - transfer: mass exchange, interface classification and cell type
//     reinitialisation (free surface only)
//
// The [SinglePhase] variant fills every interior cell with fluid and skips
// the free-surface stages.
//
// # Free-surface invariant
//
// Between ticks no [Fluid] cell is 8-adjacent to an [Empty] cell. The mass
// transfer stage and every mutation entry point restore this before they
// return.
//
// # Thread Safety
//
// A Sim is NOT safe for concurrent use. Queries and mutations must be issued
// between calls to Simulate from a single goroutine.
package lbm
