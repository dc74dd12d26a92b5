package viz

import (
	"io"
	"log/slog"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/fluidsim/internal/lattice"
	"github.com/san-kum/fluidsim/internal/lbm"
)

func testModel(t *testing.T) Model {
	t.Helper()
	build := func() (*lbm.Sim, error) {
		return lbm.New(16, 12, 0.1,
			lbm.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
			lbm.WithGravity(lattice.Vec2{}))
	}
	m, err := NewModel(build, "test", 2)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func key(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestModel_FillAndStep(t *testing.T) {
	m := testModel(t)
	m = update(m, key("f"))
	c := m.cursor
	if m.sim.CellType(c.X, c.Y) != lbm.Fluid {
		t.Fatalf("expected fluid under cursor, got %v", m.sim.CellType(c.X, c.Y))
	}

	m = update(m, TickMsg{})
	if m.sim.Ticks() != 2 {
		t.Errorf("expected 2 ticks, got %d", m.sim.Ticks())
	}
	if len(m.massHistory) != 1 || m.massHistory[0] <= 0 {
		t.Errorf("mass history %v", m.massHistory)
	}
	if m.View() == "" {
		t.Error("empty view")
	}
}

func TestModel_PauseAndReset(t *testing.T) {
	m := testModel(t)
	m = update(m, key(" "))
	m = update(m, TickMsg{})
	if m.sim.Ticks() != 0 {
		t.Errorf("paused model stepped %d ticks", m.sim.Ticks())
	}
	m = update(m, key("f"))
	m = update(m, key("r"))
	if m.sim.CellType(m.cursor.X, m.cursor.Y) != lbm.Empty {
		t.Error("reset should rebuild the scene")
	}
}

func TestModel_CursorAndObstacle(t *testing.T) {
	m := testModel(t)
	x := m.cursor.X
	m = update(m, key("left"))
	if m.cursor.X != x-1 {
		t.Errorf("cursor x %d, want %d", m.cursor.X, x-1)
	}
	m = update(m, key("o"))
	if !m.sim.IsObstacle(m.cursor.X, m.cursor.Y) {
		t.Error("expected obstacle")
	}
	m = update(m, key("o"))
	if m.sim.IsObstacle(m.cursor.X, m.cursor.Y) {
		t.Error("expected obstacle removed")
	}
}
