package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/fluidsim/internal/lattice"
	"github.com/san-kum/fluidsim/internal/lbm"
	"github.com/san-kum/fluidsim/internal/metrics"
)

const (
	historyCapacity = 300
	frameInterval   = time.Second / 30
	dragStrength    = 0.02
	viewThreshold   = 1e-4
)

type TickMsg time.Time

// Builder creates a fresh simulation for the current scene.
type Builder func() (*lbm.Sim, error)

// Model is the Bubble Tea model of the live view.
type Model struct {
	build         Builder
	sim           *lbm.Sim
	scene         string
	stepsPerFrame int
	canvas        *Canvas
	view          View
	theme         Theme
	running       bool
	showHelp      bool
	cursor        lbm.Coord
	mass          *metrics.TotalMass
	massHistory   []float64
	surface       *metrics.InterfaceCells
	surfaceLog    []float64
	ticks         int
	err           error
}

func NewModel(build Builder, scene string, stepsPerFrame int) (Model, error) {
	s, err := build()
	if err != nil {
		return Model{}, err
	}
	w, h := s.Size()
	return Model{
		build:         build,
		sim:           s,
		scene:         scene,
		stepsPerFrame: max(1, stepsPerFrame),
		canvas:        NewCanvas(w, h),
		theme:         Themes[0],
		running:       true,
		cursor:        lbm.Coord{X: w / 2, Y: h / 2},
		mass:          metrics.NewTotalMass(),
		massHistory:   make([]float64, 0, historyCapacity),
		surface:       metrics.NewInterfaceCells(),
		surfaceLog:    make([]float64, 0, historyCapacity),
	}, nil
}

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd { return tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	w, h := m.sim.Size()
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ":
		m.running = !m.running
	case "up":
		m.cursor.Y = min(m.cursor.Y+1, h-2)
	case "down":
		m.cursor.Y = max(m.cursor.Y-1, 1)
	case "left":
		m.cursor.X = max(m.cursor.X-1, 1)
	case "right":
		m.cursor.X = min(m.cursor.X+1, w-2)
	case "f":
		m.sim.FillBatch(m.brush())
	case "e":
		for _, c := range m.brush() {
			m.sim.Empty(c.X, c.Y)
		}
	case "o":
		c := m.cursor
		m.sim.SetObstacle(c.X, c.Y, !m.sim.IsObstacle(c.X, c.Y))
	case "h":
		m.push(lattice.Vec2{X: -dragStrength})
	case "l":
		m.push(lattice.Vec2{X: dragStrength})
	case "k":
		m.push(lattice.Vec2{Y: dragStrength})
	case "j":
		m.push(lattice.Vec2{Y: -dragStrength})
	case "+", "=":
		m.sim.SetViscosity(m.sim.Viscosity() * 1.1)
	case "-", "_":
		m.sim.SetViscosity(m.sim.Viscosity() / 1.1)
	case "v":
		m.view = m.view.Next()
	case "t":
		m.theme = NextTheme(m.theme)
	case "r":
		m.reset()
	case "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

// brush is the 3x3 block around the cursor.
func (m *Model) brush() []lbm.Coord {
	cs := make([]lbm.Coord, 0, 9)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			cs = append(cs, lbm.Coord{X: m.cursor.X + dx, Y: m.cursor.Y + dy})
		}
	}
	return cs
}

func (m *Model) push(v lattice.Vec2) {
	for _, c := range m.brush() {
		m.sim.ApplyDrag(c.X, c.Y, v)
	}
}

func (m *Model) step() {
	m.sim.Simulate(m.stepsPerFrame)
	m.ticks += m.stepsPerFrame
	m.mass.Observe(m.sim, m.ticks)
	m.massHistory = append(m.massHistory, m.mass.Value())
	if len(m.massHistory) > historyCapacity {
		m.massHistory = m.massHistory[1:]
	}
	m.surface.Observe(m.sim, m.ticks)
	m.surfaceLog = append(m.surfaceLog, m.surface.Value())
	if len(m.surfaceLog) > historyCapacity {
		m.surfaceLog = m.surfaceLog[1:]
	}
}

func (m *Model) reset() {
	s, err := m.build()
	if err != nil {
		m.err = err
		return
	}
	m.sim = s
	m.ticks = 0
	m.massHistory = m.massHistory[:0]
	m.surfaceLog = m.surfaceLog[:0]
	m.err = nil
}

func (m Model) View() string {
	m.canvas.Rasterize(m.sim, m.view, viewThreshold)
	_, h := m.sim.Size()
	m.canvas.Toggle(m.cursor.X, h-1-m.cursor.Y)
	liquid := lipgloss.NewStyle().Foreground(m.theme.Liquid)
	canvasView := canvasStyle.Render(liquid.Render(m.canvas.String()))

	header := lipgloss.NewStyle().Foreground(m.theme.Header).Bold(true).MarginBottom(1)
	value := lipgloss.NewStyle().Foreground(m.theme.Text)
	warn := lipgloss.NewStyle().Foreground(m.theme.Warning)

	var s strings.Builder
	s.WriteString(header.Render(strings.ToUpper(m.scene)) + "\n")
	status := "RUNNING"
	if !m.running {
		status = "PAUSED"
	}
	s.WriteString(status + "\n\n")
	if len(m.massHistory) > 1 {
		chart := asciigraph.Plot(m.massHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Mass"))
		s.WriteString(chart + "\n\n")
	}
	st := m.sim.LastTick()
	row := func(label, v string) {
		s.WriteString(labelStyle.Render(label) + value.Render(v) + "\n")
	}
	row("Tick", fmt.Sprintf("%d", m.sim.Ticks()))
	row("Mass", fmt.Sprintf("%.3f", m.mass.Value()))
	row("Viscosity", fmt.Sprintf("%.4f", m.sim.Viscosity()))
	row("View", m.view.String())
	row("Cursor", fmt.Sprintf("(%d,%d) %v", m.cursor.X, m.cursor.Y, m.sim.CellType(m.cursor.X, m.cursor.Y)))
	row("Filled", fmt.Sprintf("%d", st.Filled))
	row("Emptied", fmt.Sprintf("%d", st.Emptied))
	row("Surface", Sparkline(m.surfaceLog, 24))
	row("Dropped", fmt.Sprintf("%.2e", m.sim.DroppedMass()))
	if st.Orphans > 0 {
		s.WriteString(warn.Render(fmt.Sprintf("%d orphan interface cells", st.Orphans)) + "\n")
	}
	if m.err != nil {
		s.WriteString(warn.Render(m.err.Error()) + "\n")
	}
	s.WriteString(helpStyle.Render("SP:Pause F/E:Fill/Empty O:Wall\nHJKL:Push V:View T:Theme ?:Help Q:Quit"))

	main := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, panelStyle.Render(s.String()))
	if m.showHelp {
		return helpOverlay + "\n" + main
	}
	return main
}

const helpOverlay = `
  Space    Pause/Resume        F / E    Fill / empty brush
  Arrows   Move cursor         O        Toggle obstacle
  H J K L  Push liquid         + / -    Viscosity up / down
  V        Cycle view          T        Cycle theme
  R        Reset scene         Q        Quit
`

// Run starts the live view in the alternate screen.
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
