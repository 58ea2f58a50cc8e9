// Package term shows the front panel in a terminal. The arrow keys turn the
// encoder and enter clicks it.
package term

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	lcdpng "gopper-panel/display/png"
	"gopper-panel/menu"
	"gopper-panel/panel"
)

// TickInterval is the UI refresh period
const TickInterval = 50 * time.Millisecond

var (
	lcdStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1e2a10")).
			Background(lipgloss.Color("#9cc43c"))
	invertStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9cc43c")).
			Background(lipgloss.Color("#1e2a10"))
	bezelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#555555")).
			Padding(0, 1)
	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#777777"))
)

type tickMsg time.Time

// Model is the Bubble Tea model around one panel
type Model struct {
	panel   *panel.Panel
	frame   *menu.Frame
	advance func(dt time.Duration)
	last    time.Time
	pending menu.Input
	status  string

	// SnapshotPath is where "s" saves the LCD image
	SnapshotPath string
}

// New creates a model. advance runs the printer forward once per tick
// before the panel sees the input.
func New(p *panel.Panel, columns, rows int, advance func(dt time.Duration)) *Model {
	m := &Model{
		panel:        p,
		frame:        menu.NewFrame(columns, rows),
		advance:      advance,
		SnapshotPath: "panel.png",
	}
	p.Render(m.frame)
	return m
}

func tick() tea.Cmd {
	return tea.Tick(TickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Init starts the tick
func (m *Model) Init() tea.Cmd {
	return tick()
}

// Update handles keys and ticks
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	case tickMsg:
		m.step(time.Time(msg))
		return m, tick()
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c", "q":
		return tea.Quit
	case "down", "j", "right", "l":
		m.pending.EncoderDelta++
	case "up", "k", "left", "h":
		m.pending.EncoderDelta--
	case "pgdown":
		m.pending.EncoderDelta += 10
	case "pgup":
		m.pending.EncoderDelta -= 10
	case "enter", " ":
		m.pending.Click = true
	case "y":
		if err := clipboard.WriteAll(m.frame.String()); err != nil {
			m.status = "copy failed: " + err.Error()
		} else {
			m.status = "copied"
		}
	case "s":
		if err := lcdpng.Save(m.frame, m.SnapshotPath); err != nil {
			m.status = "save failed: " + err.Error()
		} else {
			m.status = "saved " + m.SnapshotPath
		}
	}
	return nil
}

// step advances the printer and hands the accumulated input to the panel
func (m *Model) step(now time.Time) {
	if !m.last.IsZero() && m.advance != nil {
		m.advance(now.Sub(m.last))
	}
	m.last = now
	in := m.pending
	m.pending = menu.Input{}
	m.panel.Update(now, in)
	m.panel.Render(m.frame)
}

// Frame returns the last rendered frame
func (m *Model) Frame() *menu.Frame { return m.frame }

// View draws the LCD
func (m *Model) View() string {
	rows := make([]string, m.frame.Rows)
	for i := range rows {
		style := lcdStyle
		if m.frame.Inverted(i) {
			style = invertStyle
		}
		rows[i] = style.Render(m.frame.Line(i))
	}
	help := "↑/↓ turn  enter click  y copy  s snapshot  q quit"
	if m.status != "" {
		help = fmt.Sprintf("%s  [%s]", help, m.status)
	}
	return bezelStyle.Render(strings.Join(rows, "\n")) + "\n" + helpStyle.Render(help) + "\n"
}
