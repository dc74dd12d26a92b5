// Package viz renders a running lattice in the terminal.
//
// [Canvas] packs lattice cells into Braille characters (2x4 cells per rune)
// and [Model] is a Bubble Tea program that steps a Sim every frame, plots
// the liquid inventory with asciigraph and lets the user edit the grid.
//
// # Key Bindings
//
//	Space      - Pause/Resume
//	Arrows     - Move the cursor
//	F / E      - Fill / empty a 3x3 brush at the cursor
//	O          - Toggle an obstacle at the cursor
//	H J K L    - Push the liquid left, down, up, right
//	+ / -      - Raise / lower viscosity
//	V          - Cycle view (cells, speed, curl)
//	T          - Cycle color themes
//	R          - Reset the scene
//	?          - Show help overlay
package viz
