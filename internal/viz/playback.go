package viz

import (
	"context"
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/fynnbrem/homepage/internal/collider"
	"github.com/fynnbrem/homepage/internal/physics"
)

// piStage is the width of the drawn track in block position units.
const piStage = 800.0

type calculatedMsg struct {
	resp collider.Response
	err  error
}

// PlaybackModel computes a pi run on a worker and replays it. Until the
// result arrives a spinner is shown.
type PlaybackModel struct {
	ctx      context.Context
	setup    collider.Setup
	opts     collider.Options
	worker   *collider.Worker
	playback *collider.Playback
	records  []collider.Record
	chart    []float64
	err      error

	canvas  *Canvas
	view    Viewport
	elapsed float64
	speed   float64
	running bool
	frame   int
}

// NewPlaybackModel prepares the viewer. Canceling ctx abandons the
// computation.
func NewPlaybackModel(ctx context.Context, setup collider.Setup, opts collider.Options, worker *collider.Worker) PlaybackModel {
	canvas := NewCanvas(width, height/2)
	stageHeight := piStage * float64(canvas.PixelHeight()) / float64(canvas.PixelWidth())
	return PlaybackModel{
		ctx:     ctx,
		setup:   setup,
		opts:    opts,
		worker:  worker,
		canvas:  canvas,
		view:    Fit(physics.Bounds{Left: 0, Right: piStage, Top: 0, Bottom: stageHeight}, canvas),
		speed:   1,
		running: true,
	}
}

func (m PlaybackModel) calculate() tea.Msg {
	resp, err := m.worker.Calculate(m.ctx, collider.Request{
		ID:      uint64(m.setup.Digits),
		Config:  m.setup.Blocks,
		Options: m.opts,
	})
	return calculatedMsg{resp: resp, err: err}
}

func (m PlaybackModel) Init() tea.Cmd {
	return tea.Batch(m.calculate, tick())
}

func (m PlaybackModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.elapsed = 0
		case "+", "=", "right", "l":
			m.speed *= 2
		case "-", "_", "left", "h":
			m.speed /= 2
		case "t":
			NextTheme()
		}
	case calculatedMsg:
		m.apply(msg)
	case TickMsg:
		m.frame++
		if m.running && m.playback != nil {
			m.elapsed += m.speed / frameRate
		}
		return m, tick()
	}
	return m, nil
}

func (m *PlaybackModel) apply(msg calculatedMsg) {
	switch {
	case msg.err != nil:
		m.err = msg.err
	case msg.resp.Err != "":
		m.err = fmt.Errorf("%s", msg.resp.Err)
	default:
		m.records = msg.resp.Records
		m.playback = collider.NewPlayback(m.setup.Blocks, m.records)
		m.chart = velocityChart(m.records, 60)
		// play the whole run in about ten seconds
		m.speed = math.Max(1, m.playback.Duration()/10)
	}
}

// velocityChart samples the minor block velocity at up to n records.
func velocityChart(records []collider.Record, n int) []float64 {
	if len(records) == 0 {
		return nil
	}
	step := len(records) / n
	if step < 1 {
		step = 1
	}
	out := make([]float64, 0, n+1)
	for i := 0; i < len(records); i += step {
		out = append(out, records[i].MinorVel)
	}
	return out
}

func (m *PlaybackModel) draw(f collider.Frame) {
	m.canvas.Clear()
	drawBlocks(m.canvas, m.view, m.setup, f)
}

func drawBlocks(c *Canvas, v Viewport, setup collider.Setup, f collider.Frame) {
	floor := v.Bounds.Bottom
	wx, wy0 := v.ToPixel(physics.Vec(0, 0))
	_, wy1 := v.ToPixel(physics.Vec(0, floor))
	c.DrawLine(wx, wy0, wx, wy1)
	fx, fy := v.ToPixel(physics.Vec(piStage, floor))
	c.DrawLine(wx, wy1, fx, fy)

	block := func(left, size float64) {
		x0, y0 := v.ToPixel(physics.Vec(left, floor-size))
		x1, y1 := v.ToPixel(physics.Vec(left+size, floor))
		c.DrawRect(x0, y0, x1, y1)
	}
	block(f.MinorPos, setup.MinorLength)
	block(f.MajorPos+setup.MinorLength, setup.MajorLength)
}

func (m PlaybackModel) View() string {
	var s strings.Builder
	title := fmt.Sprintf("PI COLLIDER  %d DIGITS  1 : %.0f", m.setup.Digits, m.setup.MassRatio)
	s.WriteString(headerStyle().Render(GradientText(title, CurrentTheme.Primary, CurrentTheme.Secondary)) + "\n")

	switch {
	case m.err != nil:
		s.WriteString(warnStyle().Render("simulation failed: "+m.err.Error()) + "\n")
		return s.String()
	case m.playback == nil:
		s.WriteString(AnimatedSpinner(m.frame) + " computing collisions...\n")
		return s.String()
	}

	f := m.playback.At(m.elapsed)
	m.draw(f)
	s.WriteString(canvasStyle().Render(m.canvas.String()) + "\n")

	counter := lipgloss.NewStyle().Bold(true).Foreground(CurrentTheme.Accent).Render(fmt.Sprintf("%d", f.Collisions))
	s.WriteString(labelStyle().Render("Collisions") + counter + valueStyle().Render(fmt.Sprintf(" / %d", m.playback.Total())) + "\n")
	s.WriteString(labelStyle().Render("Time") + valueStyle().Render(fmt.Sprintf("%.2f / %.2f  (x%.2g)", f.Time, m.playback.Duration(), m.speed)) + "\n")
	progress := 1.0
	if d := m.playback.Duration(); d > 0 {
		progress = math.Min(1, f.Time/d)
	}
	s.WriteString(labelStyle().Render("Progress") + ProgressBar(progress, 30) + "\n")
	s.WriteString(labelStyle().Render("Records") + valueStyle().Render(fmt.Sprintf("%d", len(m.records))) + "\n")

	if len(m.chart) > 1 {
		chart := asciigraph.Plot(m.chart, asciigraph.Height(5), asciigraph.Width(60), asciigraph.Caption("Minor block velocity"))
		s.WriteString(graphStyle().Render(chart) + "\n")
	}
	if f.Final {
		s.WriteString(activeStyle().Render(fmt.Sprintf("pi ≈ %d", f.Collisions)) + "\n")
	}
	s.WriteString(helpStyle().Render("SP:Pause R:Restart +/-:Speed T:Theme Q:Quit"))
	return s.String()
}

// RunPlayback opens the pi collider viewer. The worker is stopped on exit.
func RunPlayback(setup collider.Setup, opts collider.Options, worker *collider.Worker) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer worker.Stop()
	defer cancel()
	_, err := tea.NewProgram(NewPlaybackModel(ctx, setup, opts, worker), tea.WithAltScreen()).Run()
	return err
}
