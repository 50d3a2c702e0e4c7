// Package statsui provides the Bubble Tea analytics interface.
package statsui

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fovealabs/okulo/internal/analytics"
	"github.com/fovealabs/okulo/internal/model"
	"github.com/fovealabs/okulo/internal/progress"
)

const (
	tabOverview = iota
	tabDaily
	tabHistory
)

const plotHeight = 10

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
)

// Model implements the Bubble Tea analytics UI.
type Model struct {
	recorder *progress.Recorder
	cfg      model.StatsConfig

	report model.RangeReport
	errMsg string

	tabs      []string
	activeTab int
	viewports []viewport.Model
	dayTable  table.Model

	width  int
	height int

	filterMode   bool
	filterInputs []textinput.Model
	filterIndex  int
	filterError  string
}

// NewModel constructs an analytics UI model.
func NewModel(recorder *progress.Recorder, cfg model.StatsConfig) *Model {
	m := &Model{
		recorder: recorder,
		cfg:      cfg,
		tabs:     []string{"Overview", "Daily", "History"},
	}
	m.initInputs()
	m.initDayTable()
	m.initViewports()
	m.refreshReport()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderTabContents()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || (!m.filterMode && msg.String() == "q") {
			return m, tea.Quit
		}
		if m.filterMode {
			return m.updateFilter(msg)
		}
		switch msg.String() {
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "/":
			return m.startFilter()
		case "g", "home":
			if m.activeTab == tabDaily {
				m.dayTable.GotoTop()
			} else {
				m.viewports[m.activeTab].GotoTop()
			}
			return m, nil
		case "G", "end":
			if m.activeTab == tabDaily {
				m.dayTable.GotoBottom()
			} else {
				m.viewports[m.activeTab].GotoBottom()
			}
			return m, nil
		default:
			if m.activeTab == tabDaily {
				var cmd tea.Cmd
				m.dayTable, cmd = m.dayTable.Update(msg)
				return m, cmd
			}
			vp := m.viewports[m.activeTab]
			var cmd tea.Cmd
			vp, cmd = vp.Update(msg)
			m.viewports[m.activeTab] = vp
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(bodyHeight), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) refreshReport() {
	rec, err := m.recorder.Load(m.cfg.UserID)
	if err != nil {
		m.errMsg = fmt.Sprintf("failed to load progress: %v", err)
		m.report = model.RangeReport{}
	} else {
		m.errMsg = ""
		m.report = analytics.Aggregate(rec.History, m.cfg.From, m.cfg.To)
	}
	m.renderTabContents()
}

func (m *Model) renderTabContents() {
	if m.width <= 0 {
		return
	}
	m.viewports[tabOverview].SetContent(m.renderOverview())
	m.viewports[tabHistory].SetContent(m.renderHistory())
	m.applyDayTable()
}

func (m *Model) renderOverview() string {
	cards := m.renderSummaryCards()
	var buf bytes.Buffer
	width := analytics.ChartWidthFor(m.width)
	if err := analytics.PlotBuckets(&buf, m.report.Buckets, width, plotHeight, false); err != nil {
		return cards + "\n" + errorStyle.Render(err.Error())
	}
	chart := strings.TrimRight(buf.String(), "\n")
	if len(m.report.Buckets) > 0 {
		first := m.report.Buckets[0].Date
		last := m.report.Buckets[len(m.report.Buckets)-1].Date
		chart += "\n" + headerStyle.Render(fmt.Sprintf("%s … %s", first, last))
	}
	return cards + "\n\n" + chart
}

func (m *Model) renderSummaryCards() string {
	sessions := 0
	for _, b := range m.report.Buckets {
		sessions += b.SessionCount
	}
	cards := []string{
		metricCard("Avg min/day", fmt.Sprintf("%.1f", m.report.RangeAverageMinutes)),
		metricCard("Days tracked", fmt.Sprintf("%d/%d", m.report.DaysTracked, len(m.report.Buckets))),
		metricCard("Sessions", fmt.Sprintf("%d", sessions)),
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func metricCard(label, value string) string {
	content := cardTitleStyle.Render(label) + "\n" + cardValueStyle.Render(value)
	return cardStyle.Render(content)
}

func (m *Model) renderHistory() string {
	var buf bytes.Buffer
	if err := analytics.RenderHistoryTable(&buf, m.report); err != nil {
		return errorStyle.Render(err.Error())
	}
	if buf.Len() == 0 {
		return "No sessions in range."
	}
	return strings.TrimRight(buf.String(), "\n")
}

func (m *Model) initViewports() {
	m.viewports = make([]viewport.Model, len(m.tabs))
	for i := range m.viewports {
		m.viewports[i] = viewport.New(0, 0)
	}
}

func (m *Model) initDayTable() {
	m.dayTable = table.New(table.WithColumns([]table.Column{{Title: "", Width: 1}}))
	m.dayTable.SetStyles(dayTableStyles())
}

func (m *Model) applyDayTable() {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Sessions", Width: 9},
		{Title: "Minutes", Width: 9},
		{Title: "Avg score", Width: 10},
		{Title: "Stars", Width: 14},
	}
	rows := make([]table.Row, 0, len(m.report.Days))
	for _, day := range m.report.Days {
		best := 0
		for _, o := range day.Outcomes {
			if o.Stars > best {
				best = o.Stars
			}
		}
		rows = append(rows, table.Row{
			day.Date,
			fmt.Sprintf("%d", day.SessionCount),
			fmt.Sprintf("%.1f", day.TotalMinutes),
			fmt.Sprintf("%.1f", day.AvgScore),
			analytics.Stars(best),
		})
	}
	m.dayTable.SetColumns(columns)
	m.dayTable.SetRows(rows)
	if m.activeTab == tabDaily {
		m.dayTable.Focus()
	}
}

func dayTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Foreground(lipgloss.Color("#F0F0F0")).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("#F0F0F0")).
		Background(lipgloss.Color("#3A3A3A")).
		Bold(false)
	return styles
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := lipgloss.Height(activeNavStyle.Render("X"))
	if tabsHeight < 1 {
		tabsHeight = 1
	}
	headerHeight = tabsHeight + 1
	footerHeight = 1
	if !m.filterMode && m.errMsg != "" {
		footerHeight++
	}
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, vpHeight, _ := m.layoutHeights()
	for i := range m.viewports {
		m.viewports[i].Width = m.width
		m.viewports[i].Height = vpHeight
	}
	tableHeight := vpHeight - 1
	if tableHeight < 3 {
		tableHeight = 3
	}
	m.dayTable.SetWidth(m.width)
	m.dayTable.SetHeight(tableHeight)
	for i := range m.filterInputs {
		promptWidth := lipgloss.Width(m.filterInputs[i].Prompt)
		width := m.width - promptWidth - 2
		if width < 10 {
			width = 10
		}
		m.filterInputs[i].Width = width
	}
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	next := m.activeTab + delta
	if next < 0 {
		next = count - 1
	}
	if next >= count {
		next = 0
	}
	m.activeTab = next
	if m.activeTab == tabDaily {
		m.dayTable.Focus()
	} else {
		m.dayTable.Blur()
	}
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	tabs := padLines(m.renderTabs(), m.width)
	summary := fmt.Sprintf("Settings: user=%s  from=%s  to=%s",
		m.cfg.UserID,
		m.cfg.From.Format(analytics.DateLabel),
		m.cfg.To.Format(analytics.DateLabel))
	return tabs + "\n" + padLines(headerStyle.Render(truncateLine(summary, m.width)), m.width)
}

func (m *Model) renderBody(height int) string {
	if m.filterMode {
		return m.renderFilterForm()
	}
	if m.activeTab == tabDaily {
		return m.dayTable.View()
	}
	return m.viewports[m.activeTab].View()
}

func (m *Model) renderFooter() string {
	if m.filterMode {
		return headerStyle.Render("tab/shift+tab: next field  enter: apply  esc: cancel")
	}
	help := headerStyle.Render("Nav: left/right  Scroll: up/down  Filter: /  Quit: q")
	if m.errMsg != "" {
		return help + "\n" + errorStyle.Render(m.errMsg)
	}
	return help
}

func (m *Model) initInputs() {
	m.filterInputs = []textinput.Model{
		newFilterInput("User: "),
		newFilterInput("From (YYYY-MM-DD): "),
		newFilterInput("To (YYYY-MM-DD): "),
	}
	m.setInputsFromConfig()
}

func newFilterInput(prompt string) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.CharLimit = 0
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

func (m *Model) setInputsFromConfig() {
	m.filterInputs[0].SetValue(m.cfg.UserID)
	m.filterInputs[1].SetValue(m.cfg.From.Format(analytics.DateLabel))
	m.filterInputs[2].SetValue(m.cfg.To.Format(analytics.DateLabel))
}

func (m *Model) startFilter() (tea.Model, tea.Cmd) {
	m.filterMode = true
	m.filterError = ""
	m.filterIndex = 0
	m.setInputsFromConfig()
	return m, m.setFilterIndex(0)
}

func (m *Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.filterMode = false
		m.filterError = ""
		return m, nil
	case "enter":
		if err := m.applyFilter(); err != nil {
			m.filterError = err.Error()
			return m, nil
		}
		m.filterMode = false
		m.refreshReport()
		return m, tea.ClearScreen
	case "tab", "down":
		return m, m.setFilterIndex(m.filterIndex + 1)
	case "shift+tab", "up":
		return m, m.setFilterIndex(m.filterIndex - 1)
	default:
		var cmd tea.Cmd
		m.filterInputs[m.filterIndex], cmd = m.filterInputs[m.filterIndex].Update(msg)
		return m, cmd
	}
}

func (m *Model) setFilterIndex(idx int) tea.Cmd {
	count := len(m.filterInputs)
	if idx < 0 {
		idx = count - 1
	}
	if idx >= count {
		idx = 0
	}
	m.filterIndex = idx
	var cmd tea.Cmd
	for i := range m.filterInputs {
		if i == idx {
			cmd = m.filterInputs[i].Focus()
		} else {
			m.filterInputs[i].Blur()
		}
	}
	return cmd
}

func (m *Model) applyFilter() error {
	user := strings.TrimSpace(m.filterInputs[0].Value())
	if user == "" {
		return fmt.Errorf("user must not be empty")
	}
	from, err := time.ParseInLocation(analytics.DateLabel, strings.TrimSpace(m.filterInputs[1].Value()), time.Local)
	if err != nil {
		return fmt.Errorf("invalid from date: %w", err)
	}
	to, err := time.ParseInLocation(analytics.DateLabel, strings.TrimSpace(m.filterInputs[2].Value()), time.Local)
	if err != nil {
		return fmt.Errorf("invalid to date: %w", err)
	}
	m.cfg.UserID = user
	m.cfg.From = from
	m.cfg.To = to
	return nil
}

func (m *Model) renderFilterForm() string {
	lines := make([]string, 0, len(m.filterInputs)+2)
	lines = append(lines, "Filters")
	for i := range m.filterInputs {
		lines = append(lines, m.filterInputs[i].View())
	}
	if m.filterError != "" {
		lines = append(lines, errorStyle.Render(m.filterError))
	}
	return strings.Join(lines, "\n")
}

func padLines(s string, width int) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if w := lipgloss.Width(line); w < width {
			lines[i] = line + strings.Repeat(" ", width-w)
		}
	}
	return strings.Join(lines, "\n")
}

func fitLines(s string, width, height int) string {
	lines := strings.Split(padLines(s, width), "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 || lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-1]) + "…"
}
