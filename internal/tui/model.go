// Package tui provides the Bubble Tea level-run interface.
package tui

import (
	"fmt"
	"math/rand"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fovealabs/okulo/internal/engine"
	"github.com/fovealabs/okulo/internal/levels"
	"github.com/fovealabs/okulo/internal/session"
)

// gridTickMsg advances the grid run. The generation stamp lets the model
// drop ticks scheduled for a run that was since restarted or torn down.
type gridTickMsg struct {
	gen int
}

// countTickMsg consumes one second of the current countdown item. Item
// pins the tick to the item it was armed for, so a deadline that fires
// after a manual response already advanced the item is discarded.
type countTickMsg struct {
	gen  int
	item int
}

var (
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6FBF73"))
	overlayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A")).
			Padding(1, 2)
	bodyCellStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6FBF73"))
	emptyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#3A3A3A"))
)

// Model runs one level attempt: it owns the engine run, schedules its
// timers as tick commands, and renders the variant-specific view.
type Model struct {
	level    levels.Level
	recorder engine.Recorder
	userID   string
	clock    session.Clock
	rng      *rand.Rand

	discrete  *engine.DiscreteRun
	grid      *engine.GridRun
	countdown *engine.CountdownRun

	gen         int
	confirmExit bool
	runErr      error

	width  int
	height int
}

// NewModel constructs a level-run model and starts the first run.
func NewModel(level levels.Level, recorder engine.Recorder, userID string, clock session.Clock, rng *rand.Rand) *Model {
	m := &Model{
		level:    level,
		recorder: recorder,
		userID:   userID,
		clock:    clock,
		rng:      rng,
	}
	m.startRun()
	return m
}

func (m *Model) startRun() {
	m.gen++
	m.confirmExit = false
	m.discrete, m.grid, m.countdown = nil, nil, nil
	cfg := engine.Config{
		Level:    m.level,
		UserID:   m.userID,
		Clock:    m.clock,
		RNG:      m.rng,
		Recorder: m.recorder,
	}
	var err error
	switch m.level.Variant {
	case levels.VariantGrid:
		m.grid, err = engine.NewGridRun(cfg)
	case levels.VariantCountdown:
		m.countdown, err = engine.NewCountdownRun(cfg)
	default:
		m.discrete, err = engine.NewDiscreteRun(cfg)
	}
	m.runErr = err
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.scheduleTick()
}

func (m *Model) scheduleTick() tea.Cmd {
	gen := m.gen
	switch {
	case m.grid != nil && !m.grid.Finished():
		return tea.Tick(m.grid.TickPeriod(), func(time.Time) tea.Msg {
			return gridTickMsg{gen: gen}
		})
	case m.countdown != nil && !m.countdown.Finished():
		item := m.countdown.ItemIndex()
		return tea.Tick(time.Second, func(time.Time) tea.Msg {
			return countTickMsg{gen: gen, item: item}
		})
	default:
		return nil
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case gridTickMsg:
		return m.updateGridTick(msg)
	case countTickMsg:
		return m.updateCountTick(msg)
	case tea.KeyMsg:
		return m.updateKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) updateGridTick(msg gridTickMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.gen || m.grid == nil || m.grid.Finished() {
		return m, nil
	}
	if m.grid.Paused() {
		return m, nil
	}
	m.grid.Tick()
	if m.grid.Finished() {
		return m, nil
	}
	return m, m.scheduleTick()
}

func (m *Model) updateCountTick(msg countTickMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.gen || m.countdown == nil || m.countdown.Finished() {
		return m, nil
	}
	if msg.item != m.countdown.ItemIndex() {
		// The item already advanced on a manual response; this deadline
		// belongs to the old item.
		return m, nil
	}
	m.countdown.Tick()
	if m.countdown.Finished() {
		return m, nil
	}
	return m, m.scheduleTick()
}

func (m *Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.gen++
		return m, tea.Quit
	}
	if m.runErr != nil {
		return m, tea.Quit
	}
	if m.confirmExit {
		return m.updateConfirmKey(msg)
	}
	if m.finished() {
		return m.updateFinishedKey(msg)
	}
	switch msg.String() {
	case "q", "esc":
		m.confirmExit = true
		if m.grid != nil {
			m.grid.Pause()
			// The in-flight tick still carries the old generation; bump
			// it so the tick is dropped whenever it lands, and Resume
			// arms a single fresh chain.
			m.gen++
		}
		return m, nil
	}
	switch {
	case m.discrete != nil:
		return m.updateDiscreteKey(msg)
	case m.grid != nil:
		return m.updateGridKey(msg)
	case m.countdown != nil:
		return m.updateCountdownKey(msg)
	}
	return m, nil
}

func (m *Model) updateConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		// Leaving mid-run discards in-flight state without persisting.
		m.gen++
		return m, tea.Quit
	case "n", "N", "esc":
		m.confirmExit = false
		if m.grid != nil {
			m.grid.Resume()
			return m, m.scheduleTick()
		}
		// The countdown deadline kept running behind the overlay; its
		// tick chain is still armed.
		return m, nil
	}
	return m, nil
}

func (m *Model) updateFinishedKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "enter":
		return m, tea.Quit
	case "r":
		m.startRun()
		return m, m.scheduleTick()
	}
	return m, nil
}

func (m *Model) updateDiscreteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "left", "h":
		m.discrete.Respond(engine.SideLeft)
	case "right", "l":
		m.discrete.Respond(engine.SideRight)
	}
	return m, nil
}

func (m *Model) updateGridKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		m.grid.SetDirection(engine.DirUp)
	case "down", "j":
		m.grid.SetDirection(engine.DirDown)
	case "left", "h":
		m.grid.SetDirection(engine.DirLeft)
	case "right", "l":
		m.grid.SetDirection(engine.DirRight)
	}
	return m, nil
}

func (m *Model) updateCountdownKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		choice := int(key[0] - '1')
		if choice < m.countdown.Options() {
			item := m.countdown.ItemIndex()
			m.countdown.Respond(choice)
			if !m.countdown.Finished() && m.countdown.ItemIndex() != item {
				// Re-arm the deadline for the next item; the old item's
				// pending tick is dropped by its item stamp.
				return m, m.scheduleTick()
			}
		}
	}
	return m, nil
}

func (m *Model) finished() bool {
	switch {
	case m.discrete != nil:
		return m.discrete.Finished()
	case m.grid != nil:
		return m.grid.Finished()
	case m.countdown != nil:
		return m.countdown.Finished()
	}
	return true
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.runErr != nil {
		return errorStyle.Render(fmt.Sprintf("cannot start level: %v", m.runErr)) + "\n"
	}
	var content string
	switch {
	case m.confirmExit:
		content = m.viewConfirm()
	case m.finished():
		content = m.viewFinished()
	case m.discrete != nil:
		content = m.viewDiscrete()
	case m.grid != nil:
		content = m.viewGrid()
	case m.countdown != nil:
		content = m.viewCountdown()
	}
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) viewConfirm() string {
	return overlayStyle.Render("Leave level without saving?\n\n[y] leave  [n] keep going")
}

// contrastColor maps a contrast value in [0,1] to a gray shade, the
// terminal stand-in for stimulus faintness.
func contrastColor(contrast float64) lipgloss.Color {
	if contrast < 0 {
		contrast = 0
	}
	if contrast > 1 {
		contrast = 1
	}
	level := 40 + int(contrast*200)
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", level, level, level))
}
