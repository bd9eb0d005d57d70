package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/hwen/knotsim/internal/entity"
	"github.com/hwen/knotsim/internal/geom"
	"github.com/hwen/knotsim/internal/knot"
)

const (
	canvasW         = 80
	canvasH         = 24
	trailCapacity   = 200
	historyCapacity = 600
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(42)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	focusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

// Model is the live terminal view: entities advancing in real time with
// a top-down membrane plot or a rotatable wireframe.
type Model struct {
	build    func() []*entity.Entity
	entities []*entity.Entity

	t, dt   float64
	running bool

	canvas *Canvas
	camera *Camera
	knotWF *Wireframe

	trails    [][]geom.Vec3
	worldHist []float64
	crossings []int
	prevWorld []int

	focus    int
	threeDee bool
}

func NewModel(build func() []*entity.Entity, dt float64) Model {
	entities := build()
	prev := make([]int, len(entities))
	for i, e := range entities {
		prev[i] = e.World
	}
	return Model{
		build:     build,
		entities:  entities,
		dt:        dt,
		running:   true,
		canvas:    NewCanvas(canvasW, canvasH),
		camera:    NewCamera(),
		knotWF:    KnotWireframe(192),
		trails:    make([][]geom.Vec3, len(entities)),
		worldHist: make([]float64, 0, historyCapacity),
		crossings: make([]int, len(entities)),
		prevWorld: prev,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "tab":
			if len(m.entities) > 0 {
				m.focus = (m.focus + 1) % len(m.entities)
				m.worldHist = m.worldHist[:0]
			}
		case "m":
			m.threeDee = !m.threeDee
		case "x":
			m.camera.RotateX(0.1)
		case "X":
			m.camera.RotateX(-0.1)
		case "y":
			m.camera.RotateY(0.1)
		case "Y":
			m.camera.RotateY(-0.1)
		case "z":
			m.camera.RotateZ(0.1)
		case "Z":
			m.camera.RotateZ(-0.1)
		case "+", "=":
			m.camera.ZoomIn()
		case "-", "_":
			m.camera.ZoomOut()
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		m.draw()
		return m, tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *Model) step() {
	m.t += m.dt
	for i, e := range m.entities {
		e.Advance(m.dt)
		if e.World != m.prevWorld[i] {
			m.crossings[i]++
			m.prevWorld[i] = e.World
		}
		m.trails[i] = append(m.trails[i], e.Pos)
		if len(m.trails[i]) > trailCapacity {
			m.trails[i] = m.trails[i][1:]
		}
	}
	if len(m.entities) > 0 {
		m.worldHist = append(m.worldHist, float64(m.entities[m.focus].World))
		if len(m.worldHist) > historyCapacity {
			m.worldHist = m.worldHist[1:]
		}
	}
}

func (m *Model) reset() {
	m.t = 0
	m.entities = m.build()
	m.trails = make([][]geom.Vec3, len(m.entities))
	m.worldHist = m.worldHist[:0]
	m.crossings = make([]int, len(m.entities))
	m.prevWorld = make([]int, len(m.entities))
	for i, e := range m.entities {
		m.prevWorld[i] = e.World
	}
}

// projectTopDown maps world xy in [-4, 4] onto the canvas.
func (m *Model) projectTopDown(p geom.Vec3) (int, int) {
	cw, ch := float64(m.canvas.Width*2), float64(m.canvas.Height*4)
	x := int((p.X + 4) / 8 * cw)
	y := int((4 - p.Y) / 8 * ch)
	return x, y
}

func (m *Model) draw() {
	m.canvas.Clear()
	if m.threeDee {
		Render3D(m.canvas, []*Wireframe{m.knotWF, EntityWireframe(m.entities, m.trails)}, m.camera)
		return
	}

	// Knot shadow.
	px, py := m.projectTopDown(knot.Curve(0))
	for i := 1; i <= 192; i++ {
		x, y := m.projectTopDown(knot.Curve(float64(i) * 2 * math.Pi / 192))
		m.canvas.Line(px, py, x, y)
		px, py = x, y
	}

	for i, e := range m.entities {
		for _, p := range m.trails[i] {
			x, y := m.projectTopDown(p)
			m.canvas.Set(x, y)
		}
		x, y := m.projectTopDown(e.Pos)
		m.canvas.Blob(x, y, 1)
	}
}

func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render("KNOT TRAVEL") + "\n")
	if m.running {
		s.WriteString("RUNNING\n\n")
	} else {
		s.WriteString("PAUSED\n\n")
	}

	if len(m.worldHist) > 1 {
		chart := asciigraph.Plot(m.worldHist, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("World"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", m.t)) + "\n")
	view := "top-down"
	if m.threeDee {
		view = "wireframe"
	}
	s.WriteString(labelStyle.Render("View") + valueStyle.Render(view) + "\n\n")

	s.WriteString("ENTITIES\n")
	for i, e := range m.entities {
		line := fmt.Sprintf("%-8s w=%d  x=%6.2f  #%d", e.Name, e.World, e.Pos.X, m.crossings[i])
		if i == m.focus {
			s.WriteString(focusStyle.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + labelStyle.Render(line) + "\n")
		}
	}

	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause R:Reset Q:Quit\nTab:Focus M:View\nXYZ:Rotate +-:Zoom"))
	statsView := statsStyle.Render(s.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
}
