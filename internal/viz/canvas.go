package viz

import (
	"math"
	"strings"

	"github.com/san-kum/fluidsim/internal/lattice"
	"github.com/san-kum/fluidsim/internal/lbm"
)

// Braille dot bits, indexed [row][col] within a 2x4 character cell.
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const brailleBlank = 0x2800

type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

// NewCanvas sizes a canvas to hold w×h dots.
func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  (w + 1) / 2,
		Height: (h + 3) / 4,
	}
	c.Grid = make([][]rune, c.Height)
	for i := range c.Grid {
		c.Grid[i] = make([]rune, c.Width)
	}
	c.Clear()
	return c
}

// Set turns on the dot at (x, y) in dot coordinates, origin top left.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) Unset(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] &^= rune(pixelMap[y%4][x%2])
}

// Toggle flips the dot at (x, y).
func (c *Canvas) Toggle(x, y int) {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return
	}
	c.Grid[y/4][x/2] ^= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

// Field is what the canvas needs from a simulation.
type Field interface {
	Size() (width, height int)
	CellType(x, y int) lbm.CellType
	Velocity(x, y int) lattice.Vec2
	Curl(x, y int) float64
}

type View int

const (
	ViewCells View = iota
	ViewSpeed
	ViewCurl
)

func (v View) String() string {
	switch v {
	case ViewSpeed:
		return "speed"
	case ViewCurl:
		return "curl"
	}
	return "cells"
}

func (v View) Next() View { return (v + 1) % 3 }

// Rasterize draws one dot per lattice cell, flipping y so the floor is at
// the bottom. Obstacles are always drawn. Speed and curl views light cells
// above threshold.
func (c *Canvas) Rasterize(f Field, view View, threshold float64) {
	c.Clear()
	w, h := f.Size()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if lit(f, view, threshold, x, y) {
				c.Set(x, h-1-y)
			}
		}
	}
}

func lit(f Field, view View, threshold float64, x, y int) bool {
	t := f.CellType(x, y)
	if t == lbm.Obstacle {
		return true
	}
	switch view {
	case ViewSpeed:
		return t > lbm.Empty && f.Velocity(x, y).Len() > threshold
	case ViewCurl:
		return math.Abs(f.Curl(x, y)) > threshold
	}
	return t > lbm.Empty
}
