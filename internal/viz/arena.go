package viz

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/fynnbrem/homepage/internal/dynamo"
	"github.com/fynnbrem/homepage/internal/physics"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 600
	frameRate       = 60

	pointerStep = 20.0
	gifPath     = "arena.gif"
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// ArenaModel runs an arena live in the terminal. The mouse steers the
// pointer attractor; world options are tuned from the keyboard.
type ArenaModel struct {
	title         string
	arena         *physics.Arena
	initial       *physics.Arena
	world         *physics.World
	initialWorld  physics.World
	params        dynamo.Configurable
	paramKeys     []string
	initialParams map[string]float64
	selected      int
	canvas        *Canvas
	view          Viewport
	running       bool
	pointerOn     bool
	energyHistory []float64
	rng           *rand.Rand
	recorder      *Recorder
	status        string
	showHelp      bool
}

func NewArenaModel(title string, arena *physics.Arena, world physics.World) ArenaModel {
	w := world
	canvas := NewCanvas(width, height)
	params := w.GetParams()
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return ArenaModel{
		title:         title,
		arena:         arena,
		initial:       arena.Clone(),
		world:         &w,
		initialWorld:  world,
		params:        &w,
		paramKeys:     keys,
		initialParams: params,
		canvas:        canvas,
		view:          Fit(arena.Bounds, canvas),
		running:       true,
		energyHistory: make([]float64, 0, historyCapacity),
		rng:           rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (m ArenaModel) Init() tea.Cmd {
	return tick()
}

func (m ArenaModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			m.selected = (m.selected + 1) % len(m.paramKeys)
		case "up", "k":
			m.adjustParam(1.05)
		case "down", "j":
			m.adjustParam(0.95)
		case "c":
			m.world.Collision = !m.world.Collision
		case "a":
			m.spawn()
		case "x":
			if n := len(m.arena.Balls); n > 0 {
				m.arena.Remove(m.arena.Balls[n-1].ID)
			}
		case "p":
			m.togglePointer()
		case "H":
			m.movePointer(-pointerStep, 0)
		case "L":
			m.movePointer(pointerStep, 0)
		case "K":
			m.movePointer(0, -pointerStep)
		case "J":
			m.movePointer(0, pointerStep)
		case "g":
			m.toggleRecording()
		case "t":
			NextTheme()
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.MouseMsg:
		if m.pointerOn {
			m.arena.SetPointer(m.cellToWorld(msg.X, msg.Y))
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		m.draw()
		if m.recorder != nil {
			m.recorder.Capture(m.canvas)
		}
		return m, tick()
	}
	return m, nil
}

func (m *ArenaModel) step() {
	m.arena.Step(*m.world)
	m.energyHistory = append(m.energyHistory, m.arena.KineticEnergy())
	if len(m.energyHistory) > historyCapacity {
		m.energyHistory = m.energyHistory[1:]
	}
}

func (m *ArenaModel) reset() {
	m.arena = m.initial.Clone()
	*m.world = m.initialWorld
	m.energyHistory = m.energyHistory[:0]
	m.pointerOn = false
	m.status = ""
}

func (m *ArenaModel) adjustParam(factor float64) {
	key := m.paramKeys[m.selected]
	val := m.params.GetParams()[key]
	var newVal float64
	switch {
	case key == "trail_length":
		newVal = math.Max(0, val+math.Copysign(1, factor-1))
	case val == 0:
		newVal = (factor - 1) * 20
	default:
		newVal = val * factor
	}
	if err := m.params.SetParam(key, newVal); err != nil {
		m.status = err.Error()
	}
}

func (m *ArenaModel) spawn() {
	b, err := physics.SpawnBall(physics.RandomBallConfig(m.rng))
	if err == nil {
		err = m.arena.Add(b)
	}
	if err != nil {
		m.status = err.Error()
	}
}

func (m *ArenaModel) togglePointer() {
	m.pointerOn = !m.pointerOn
	if !m.pointerOn {
		m.arena.ClearPointer()
		return
	}
	b := m.arena.Bounds
	m.arena.SetPointer(physics.Vec((b.Left+b.Right)/2, (b.Top+b.Bottom)/2))
}

func (m *ArenaModel) movePointer(dx, dy float64) {
	if !m.pointerOn {
		return
	}
	p, _ := m.arena.Pointer()
	m.arena.SetPointer(p.Pos.Add(physics.Vec(dx, dy)))
}

// cellToWorld maps a terminal cell to arena coordinates, accounting for the
// canvas padding.
func (m *ArenaModel) cellToWorld(col, row int) physics.Vector2 {
	return m.view.ToWorld((col-2)*2+1, (row-1)*4+2)
}

func (m *ArenaModel) toggleRecording() {
	if m.recorder == nil {
		m.recorder = NewRecorder()
		m.status = "recording"
		return
	}
	if err := m.recorder.Save(gifPath); err != nil {
		m.status = err.Error()
	} else {
		m.status = fmt.Sprintf("saved %d frames to %s", m.recorder.Len(), gifPath)
	}
	m.recorder = nil
}

func (m *ArenaModel) draw() {
	m.canvas.Clear()
	DrawArena(m.canvas, m.view, m.arena)
}

// DrawArena draws walls, trails, balls and the active pointer of a onto c.
func DrawArena(c *Canvas, v Viewport, a *physics.Arena) {
	x0, y0 := v.ToPixel(physics.Vec(a.Bounds.Left, a.Bounds.Top))
	x1, y1 := v.ToPixel(physics.Vec(a.Bounds.Right, a.Bounds.Bottom))
	c.DrawRect(x0, y0, x1, y1)

	for _, b := range a.Balls {
		for _, p := range b.Path {
			c.Set(v.ToPixel(p))
		}
	}
	for _, b := range a.Balls {
		x, y := v.ToPixel(b.Pos)
		c.DrawCircle(x, y, v.Length(b.Radius))
	}
	if p, ok := a.Pointer(); ok {
		x, y := v.ToPixel(p.Pos)
		c.DrawLine(x-2, y, x+2, y)
		c.DrawLine(x, y-2, x, y+2)
	}
}

func (m ArenaModel) View() string {
	m.draw()
	canvasView := canvasStyle().Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle().Render(GradientText(strings.ToUpper(m.title), CurrentTheme.Primary, CurrentTheme.Secondary)) + "\n")

	status := "RUNNING"
	if !m.running {
		status = "PAUSED"
	}
	if m.recorder != nil {
		status += warnStyle().Render(fmt.Sprintf("  ● REC %d", m.recorder.Len()))
	}
	s.WriteString(status + "\n\n")

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Kinetic energy"))
		s.WriteString(graphStyle().Render(chart) + "\n\n")
	}

	row := func(label, value string) {
		s.WriteString(labelStyle().Render(label) + valueStyle().Render(value) + "\n")
	}
	row("Tick", fmt.Sprintf("%d (%.1fs)", m.arena.Tick(), float64(m.arena.Tick())/frameRate))
	row("Balls", fmt.Sprintf("%d", len(m.arena.Balls)))
	row("Energy", fmt.Sprintf("%.2f", m.arena.KineticEnergy()))
	p := m.arena.Momentum()
	row("Momentum", fmt.Sprintf("(%.1f, %.1f)", p[0], p[1]))
	row("Contacts", fmt.Sprintf("%d", m.arena.TotalContacts()))
	pointer := "off"
	if pv, ok := m.arena.Pointer(); ok {
		pointer = fmt.Sprintf("(%.0f, %.0f)", pv.Pos[0], pv.Pos[1])
	} else if m.pointerOn {
		pointer = "outside"
	}
	row("Pointer", pointer)
	row("Collision", fmt.Sprintf("%v", m.world.Collision))

	s.WriteString("\nWORLD\n")
	params := m.params.GetParams()
	for i, k := range m.paramKeys {
		line := fmt.Sprintf("%-16s %s %.2f", k, ParamBar(params[k], m.initialParams[k], 10), params[k])
		if i == m.selected {
			s.WriteString(activeStyle().Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + labelStyle().UnsetWidth().Render(line) + "\n")
		}
	}
	if m.status != "" {
		s.WriteString("\n" + warnStyle().Render(m.status) + "\n")
	}
	s.WriteString(helpStyle().Render("\n─────────────────────\nSP:Pause R:Reset Q:Quit\nA:Add X:Remove C:Collide\nP:Pointer G:Record ?:Help"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle().Render(s.String()))
	if m.showHelp {
		return arenaHelp + "\n\n" + mainView
	}
	return mainView
}

const arenaHelp = `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume             ║
║  R        - Reset arena and world    ║
║  Q        - Quit                     ║
║  Tab      - Cycle world options      ║
║  Up/K     - Increase option (+5%)    ║
║  Down/J   - Decrease option (-5%)    ║
║  A / X    - Add / remove a ball      ║
║  C        - Toggle collisions        ║
║  P        - Toggle pointer (mouse)   ║
║  H J K L  - Move pointer (shifted)   ║
║  G        - Toggle GIF recording     ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝`

// RunArena opens the live arena viewer.
func RunArena(title string, arena *physics.Arena, world physics.World) error {
	p := tea.NewProgram(NewArenaModel(title, arena, world), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
