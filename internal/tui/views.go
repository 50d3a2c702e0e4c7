package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/fovealabs/okulo/internal/engine"
	"github.com/fovealabs/okulo/internal/model"
	"github.com/fovealabs/okulo/internal/scoring"
)

func (m *Model) header() string {
	return titleStyle.Render(fmt.Sprintf("%s · %s", m.level.Title, m.level.Category))
}

func (m *Model) viewDiscrete() string {
	spec := m.discrete.Trial()
	correct, incorrect := m.discrete.Counts()

	target := lipgloss.NewStyle().Foreground(contrastColor(spec.Contrast)).Bold(true).Render("◉")
	blank := emptyStyle.Render("·")
	left, right := blank, target
	if m.discrete.Side() == engine.SideLeft {
		left, right = target, blank
	}
	stage := fmt.Sprintf("%s        %s", left, right)

	lines := []string{
		m.header(),
		"",
		fmt.Sprintf("Trial %d/%d", spec.Index+1, m.level.Trials),
		"",
		stage,
		"",
		footerStyle.Render(fmt.Sprintf("contrast %.2f · size %.0f", spec.Contrast, spec.Size)),
		"",
		footerStyle.Render(fmt.Sprintf("correct %d · errors %d", correct, incorrect)),
		footerStyle.Render("Pick the side the target is on: left/right · q to leave"),
	}
	return strings.Join(lines, "\n")
}

func (m *Model) viewGrid() string {
	spec := m.grid.Stimulus()
	body := map[engine.Cell]struct{}{}
	for _, c := range m.grid.Body() {
		body[c] = struct{}{}
	}
	food := m.grid.Food()
	foodStyle := lipgloss.NewStyle().Foreground(contrastColor(spec.Contrast)).Bold(true)

	var b strings.Builder
	for y := 0; y < engine.GridSize; y++ {
		for x := 0; x < engine.GridSize; x++ {
			cell := engine.Cell{X: x, Y: y}
			switch {
			case cell == food:
				b.WriteString(foodStyle.Render("◆ "))
			case hasCell(body, cell):
				b.WriteString(bodyCellStyle.Render("██"))
			default:
				b.WriteString(emptyStyle.Render("· "))
			}
		}
		b.WriteByte('\n')
	}

	lines := []string{
		m.header(),
		"",
		strings.TrimRight(b.String(), "\n"),
		"",
		footerStyle.Render(fmt.Sprintf("score %d · tick %s · contrast %.2f", m.grid.Score(), m.grid.TickPeriod(), spec.Contrast)),
		footerStyle.Render("Steer with arrows · q to leave"),
	}
	return strings.Join(lines, "\n")
}

func hasCell(set map[engine.Cell]struct{}, c engine.Cell) bool {
	_, ok := set[c]
	return ok
}

func (m *Model) viewCountdown() string {
	item := m.countdown.Item()
	correct, incorrect := m.countdown.Counts()

	base := lipgloss.NewStyle().Foreground(contrastColor(m.level.Contrast.Start)).Bold(true)
	odd := lipgloss.NewStyle().Foreground(contrastColor(item.Spec.Contrast)).Bold(true)
	options := make([]string, m.countdown.Options())
	for i := range options {
		glyph := "●"
		style := base
		if i == item.Odd {
			style = odd
		}
		options[i] = style.Render(glyph)
	}

	remaining := fmt.Sprintf("%2ds", m.countdown.Remaining())
	if m.countdown.Remaining() <= 5 {
		remaining = errorStyle.Render(remaining)
	} else {
		remaining = accentStyle.Render(remaining)
	}

	lines := []string{
		m.header(),
		"",
		fmt.Sprintf("Item %d/%d    %s", m.countdown.ItemIndex()+1, m.level.Trials, remaining),
		"",
		strings.Join(options, "   "),
		footerStyle.Render(" 1    2    3    4"),
		"",
		footerStyle.Render(fmt.Sprintf("correct %d · errors %d", correct, incorrect)),
		footerStyle.Render("Press the number of the odd one out · q to leave"),
	}
	return strings.Join(lines, "\n")
}

func (m *Model) viewFinished() string {
	result, saved, saveErr := m.finishedState()

	verdict := errorStyle.Render("Keep practicing")
	if result.Success {
		verdict = successStyle.Render("Clean run!")
	}
	total := result.Correct + result.Incorrect
	accuracy := scoring.Accuracy(result.Correct, total)

	lines := []string{
		m.header(),
		"",
		accentStyle.Render(starGlyphs(result.Stars)),
		verdict,
		"",
		fmt.Sprintf("correct %d · errors %d · accuracy %.0f%%", result.Correct, result.Incorrect, accuracy),
	}
	switch {
	case saveErr != nil:
		lines = append(lines, errorStyle.Render(fmt.Sprintf("not saved: %v", saveErr)))
	case saved:
		lines = append(lines, footerStyle.Render("saved"))
	}
	lines = append(lines, "", footerStyle.Render("[r] retry  [q] done"))
	return strings.Join(lines, "\n")
}

func (m *Model) finishedState() (result model.RunResult, saved bool, saveErr error) {
	switch {
	case m.discrete != nil:
		result, _ = m.discrete.Result()
		saved, saveErr = m.discrete.SaveState()
	case m.grid != nil:
		result, _ = m.grid.Result()
		saved, saveErr = m.grid.SaveState()
	case m.countdown != nil:
		result, _ = m.countdown.Result()
		saved, saveErr = m.countdown.SaveState()
	}
	return result, saved, saveErr
}

func starGlyphs(n int) string {
	var b strings.Builder
	for i := 0; i < 3; i++ {
		if i < n {
			b.WriteString("★ ")
		} else {
			b.WriteString("☆ ")
		}
	}
	return strings.TrimSpace(b.String())
}
