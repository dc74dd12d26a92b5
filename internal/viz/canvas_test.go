package viz

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/san-kum/fluidsim/internal/lattice"
	"github.com/san-kum/fluidsim/internal/lbm"
)

func TestCanvasSetUnset(t *testing.T) {
	c := NewCanvas(4, 8)
	if c.Width != 2 || c.Height != 2 {
		t.Fatalf("expected 2x2 chars, got %dx%d", c.Width, c.Height)
	}
	c.Set(0, 0)
	c.Set(3, 7)
	if c.Grid[0][0] != brailleBlank|0x1 {
		t.Errorf("unexpected rune %U", c.Grid[0][0])
	}
	if c.Grid[1][1] != brailleBlank|0x80 {
		t.Errorf("unexpected rune %U", c.Grid[1][1])
	}
	c.Unset(0, 0)
	if c.Grid[0][0] != brailleBlank {
		t.Errorf("unset left %U", c.Grid[0][0])
	}
	c.Toggle(1, 1)
	c.Toggle(1, 1)
	if c.Grid[0][0] != brailleBlank {
		t.Error("double toggle should restore the dot")
	}
	c.Set(-1, 0)
	c.Set(100, 100)
}

func TestRasterize_Cells(t *testing.T) {
	s, err := lbm.New(6, 4, 0.1,
		lbm.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		lbm.WithGravity(lattice.Vec2{}))
	if err != nil {
		t.Fatal(err)
	}
	c := NewCanvas(6, 4)
	c.Rasterize(s, ViewCells, 0)
	// Only the border is lit, so the interior dots of row 0 are clear.
	if c.Grid[0][1]&rune(pixelMap[1][0]) != 0 {
		t.Error("interior dot lit on an empty grid")
	}
	if c.Grid[0][0]&rune(pixelMap[0][0]) == 0 {
		t.Error("corner obstacle not drawn")
	}
	if lines := strings.Count(c.String(), "\n"); lines != c.Height {
		t.Errorf("expected %d lines, got %d", c.Height, lines)
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline([]float64{0, 1}, 10); got != "▁█" {
		t.Errorf("got %q", got)
	}
	if got := []rune(Sparkline([]float64{1, 2, 3, 4}, 2)); len(got) != 2 {
		t.Errorf("expected 2 runes, got %d", len(got))
	}
	if got := ProgressBar(0.5, 4); got != "██░░" {
		t.Errorf("got %q", got)
	}
}

func TestNextTheme(t *testing.T) {
	seen := map[string]bool{}
	th := Themes[0]
	for range Themes {
		seen[th.Name] = true
		th = NextTheme(th)
	}
	if len(seen) != len(Themes) || th.Name != Themes[0].Name {
		t.Errorf("theme cycle broken: %v", seen)
	}
}
