package experiment

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/san-kum/fluidsim/internal/lattice"
	"github.com/san-kum/fluidsim/internal/lbm"
)

var ErrUnknownScene = errors.New("experiment: unknown scene")

// Scene prepares the initial contents of a freshly built Sim.
type Scene func(s *lbm.Sim)

type Registry struct {
	scenes map[string]Scene
}

func NewRegistry() *Registry {
	r := &Registry{scenes: make(map[string]Scene)}

	r.scenes["box"] = func(*lbm.Sim) {}
	r.scenes["stirred"] = stir
	r.scenes["block"] = centredBlock
	r.scenes["dam_break"] = damBreak
	r.scenes["pool"] = func(s *lbm.Sim) {
		w, h := s.Size()
		s.FillBatch(rect(1, 1, w-2, h/2))
	}
	r.scenes["drop"] = drop

	return r
}

func (r *Registry) Register(name string, sc Scene) { r.scenes[name] = sc }

func (r *Registry) Get(name string) (Scene, error) {
	sc, ok := r.scenes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownScene, name)
	}
	return sc, nil
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.scenes))
	for name := range r.scenes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func rect(x0, y0, x1, y1 int) []lbm.Coord {
	var cs []lbm.Coord
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			cs = append(cs, lbm.Coord{X: x, Y: y})
		}
	}
	return cs
}

// centredBlock fills the middle third of the grid.
func centredBlock(s *lbm.Sim) {
	w, h := s.Size()
	s.FillBatch(rect(w/3, h/3, 2*w/3, 2*h/3))
}

func damBreak(s *lbm.Sim) {
	w, h := s.Size()
	s.FillBatch(rect(1, 1, w/4, 3*h/4))
}

// drop fills a shallow pool and a disc above it.
func drop(s *lbm.Sim) {
	w, h := s.Size()
	cells := rect(1, 1, w-2, h/5)
	cx, cy := float64(w)/2, float64(h)*0.7
	r := math.Max(2, float64(min(w, h))/8)
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			if math.Hypot(float64(x)-cx, float64(y)-cy) <= r {
				cells = append(cells, lbm.Coord{X: x, Y: y})
			}
		}
	}
	s.FillBatch(cells)
}

// stir pushes a ring of drag tangential to the grid centre.
func stir(s *lbm.Sim) {
	w, h := s.Size()
	cx, cy := float64(w-1)/2, float64(h-1)/2
	r := float64(min(w, h)) / 4
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			d := lattice.Vec2{X: float64(x) - cx, Y: float64(y) - cy}
			if l := d.Len(); l > 0 && math.Abs(l-r) < 1 {
				s.ApplyDrag(x, y, lattice.Vec2{X: -d.Y, Y: d.X}.Norm().Scale(0.01))
			}
		}
	}
}
