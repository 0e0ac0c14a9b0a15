package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/ballsim/internal/dynamo"
	"github.com/san-kum/ballsim/internal/physics"
)

const (
	historyCapacity = 120
	restitutionStep = 0.05
)

type TickMsg time.Time

type LiveOptions struct {
	FPS          int
	StepsPerTick int
	Rows         int
	MaxSteps     int
	Glyph        rune
}

func DefaultLiveOptions() LiveOptions {
	return LiveOptions{
		FPS:          30,
		StepsPerTick: 1,
		Rows:         20,
		Glyph:        'O',
	}
}

// Model steps a ball on every tick and draws it on a vertical column.
type Model struct {
	ball    *physics.Ball
	opts    LiveOptions
	top     float64
	last    dynamo.Sample
	bounces int
	history []float64
	running bool
	done    bool
	err     error
}

func NewModel(ball *physics.Ball, opts LiveOptions) Model {
	def := DefaultLiveOptions()
	if opts.FPS < 1 {
		opts.FPS = def.FPS
	}
	if opts.StepsPerTick < 1 {
		opts.StepsPerTick = def.StepsPerTick
	}
	if opts.Rows < 2 {
		opts.Rows = def.Rows
	}
	if opts.Glyph == 0 {
		opts.Glyph = def.Glyph
	}

	return Model{
		ball:    ball,
		opts:    opts,
		top:     apex(ball),
		last:    ball.Current(),
		history: make([]float64, 0, historyCapacity),
		running: true,
	}
}

// apex is the highest point the ball can reach from its start state.
func apex(ball *physics.Ball) float64 {
	y0, vy0 := ball.Start()
	top := y0
	g := ball.Config().Gravity
	if vy0 > 0 && g > 0 {
		top += vy0 * vy0 / (2 * g)
	}
	return math.Max(top, 1)
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.opts.FPS), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			if !m.done {
				m.running = !m.running
			}
		case "r":
			m.reset()
		case "+", "=":
			m.adjustRestitution(restitutionStep)
		case "-", "_":
			m.adjustRestitution(-restitutionStep)
		}
		return m, nil

	case TickMsg:
		if m.running {
			m.advance()
		}
		return m, m.tick()
	}

	return m, nil
}

func (m *Model) advance() {
	for i := 0; i < m.opts.StepsPerTick; i++ {
		if m.opts.MaxSteps > 0 && m.ball.Steps() >= m.opts.MaxSteps {
			m.running = false
			m.done = true
			return
		}
		m.last = m.ball.Step()
		if m.last.Bounced {
			m.bounces++
		}
	}

	m.history = append(m.history, m.last.Position)
	if len(m.history) > historyCapacity {
		m.history = m.history[len(m.history)-historyCapacity:]
	}
}

func (m *Model) reset() {
	m.ball.Reset()
	m.last = m.ball.Current()
	m.bounces = 0
	m.history = m.history[:0]
	m.running = true
	m.done = false
	m.err = nil
}

func (m *Model) adjustRestitution(delta float64) {
	e := m.ball.Config().Restitution + delta
	e = math.Round(math.Min(math.Max(e, 0), 1)*100) / 100
	m.err = m.ball.SetParam("restitution", e)
}

// row maps a height to a column row, 0 being the top.
func (m Model) row(y float64) int {
	rows := m.opts.Rows
	r := rows - 1 - int(math.Round(y/m.top*float64(rows-1)))
	return min(max(r, 0), rows-1)
}

func (m Model) View() string {
	ballRow := m.row(m.last.Position)

	var col strings.Builder
	for r := 0; r < m.opts.Rows; r++ {
		if r == ballRow {
			col.WriteString(ballStyle.Render(string(m.opts.Glyph)))
		} else {
			col.WriteString(" ")
		}
		col.WriteString("\n")
	}
	col.WriteString(floorStyle.Render("="))

	status := StatusRunning.Render("RUNNING")
	switch {
	case m.done:
		status = StatusPaused.Render("DONE")
	case !m.running:
		status = StatusPaused.Render("PAUSED")
	}

	cfg := m.ball.Config()
	stats := strings.Join([]string{
		status,
		"",
		stat("step", fmt.Sprintf("%d", m.ball.Steps())),
		stat("time", fmt.Sprintf("%.2fs", float64(m.ball.Steps())*cfg.TimeStep)),
		stat("y", fmt.Sprintf("%.4f", m.last.Position)),
		stat("vy", fmt.Sprintf("%.4f", m.last.Velocity)),
		stat("bounces", fmt.Sprintf("%d", m.bounces)),
		stat("restitution", fmt.Sprintf("%.2f", cfg.Restitution)),
		stat("gravity", fmt.Sprintf("%.2f", cfg.Gravity)),
	}, "\n")
	if m.err != nil {
		stats += "\n" + StatusPaused.Render(m.err.Error())
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		columnStyle.Render(col.String()),
		statsStyle.Render(stats),
	)

	var sb strings.Builder
	sb.WriteString(headerStyle.Render("ballsim live"))
	sb.WriteString("\n")
	sb.WriteString(body)

	if len(m.history) >= 2 {
		graph := asciigraph.Plot(m.history,
			asciigraph.Height(6),
			asciigraph.Width(60),
			asciigraph.LowerBound(0),
			asciigraph.Caption("height"),
		)
		sb.WriteString("\n")
		sb.WriteString(graphStyle.Render(graph))
	}

	sb.WriteString("\n")
	sb.WriteString(helpStyle.Render("space pause • r reset • +/- restitution • q quit"))
	return sb.String()
}

func stat(label, value string) string {
	return labelStyle.Render(label) + valueStyle.Render(value)
}

// Run starts the live view on the terminal.
func Run(ball *physics.Ball, opts LiveOptions) error {
	p := tea.NewProgram(NewModel(ball, opts))
	_, err := p.Run()
	return err
}
