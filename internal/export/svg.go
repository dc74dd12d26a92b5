// Package export renders lattices and metric series as SVG.
package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/fluidsim/internal/lbm"
)

// Field is what a lattice snapshot reads.
type Field interface {
	Size() (width, height int)
	CellType(x, y int) lbm.CellType
	FluidFraction(x, y int) float64
}

type Palette struct {
	Background string
	Wall       string
	Liquid     string
}

var DefaultPalette = Palette{Background: "#0a0a0a", Wall: "#666666", Liquid: "#00a8cc"}

// LatticeSVG draws one square per cell, y up. Interface cells are drawn
// with opacity equal to their fluid fraction.
func LatticeSVG(f Field, scale float64, p Palette) string {
	w, h := f.Size()
	width, height := float64(w)*scale, float64(h)*scale

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, p.Background)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			px, py := float64(x)*scale, float64(h-1-y)*scale
			switch t := f.CellType(x, y); {
			case t == lbm.Obstacle:
				fmt.Fprintf(&sb, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>
`, px, py, scale, scale, p.Wall)
			case t == lbm.Fluid:
				fmt.Fprintf(&sb, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>
`, px, py, scale, scale, p.Liquid)
			case t >= lbm.Interface:
				a := min(max(f.FluidFraction(x, y), 0), 1)
				if a == 0 {
					continue
				}
				fmt.Fprintf(&sb, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" fill-opacity="%.2f"/>
`, px, py, scale, scale, p.Liquid, a)
			}
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// SeriesSVG draws values as a polyline scaled to fill the image.
func SeriesSVG(values []float64, width, height int, stroke string) string {
	if len(values) < 2 {
		return ""
	}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo, hi = min(lo, v), max(hi, v)
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}
	lo -= rng * 0.1
	rng *= 1.2

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, stroke)

	step := float64(width) / float64(len(values)-1)
	for i, v := range values {
		x := float64(i) * step
		y := float64(height) - (v-lo)/rng*float64(height)
		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
