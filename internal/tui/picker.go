package tui

import (
	"fmt"
	"os"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/rnwolfe/dated/internal/calendar"
	"github.com/rnwolfe/dated/internal/history"
	"github.com/rnwolfe/dated/internal/ui"
)

// RunPicker lists recorded runs and lets the user choose one by typing
// part of its id, run date or start time.
type RunPicker struct {
	runs     []history.Run
	filtered []scoredRun
	query    string
	cursor   int
	offset   int
	chosen   *history.Run
	canceled bool
	height   int
}

type scoredRun struct {
	run   history.Run
	score int
}

func NewRunPicker(runs []history.Run) *RunPicker {
	p := &RunPicker{runs: runs, height: 24}
	p.applyFilter()
	return p
}

// PickRun shows the picker and returns the chosen run, or nil when the
// user cancels.
func PickRun(runs []history.Run) (*history.Run, error) {
	m, err := tea.NewProgram(NewRunPicker(runs), tea.WithAltScreen()).Run()
	if err != nil {
		return nil, fmt.Errorf("run picker: %w", err)
	}
	p := m.(*RunPicker)
	if p.canceled {
		return nil, nil
	}
	return p.chosen, nil
}

// IsTTY reports whether stdin is a terminal.
func IsTTY() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}

func (p *RunPicker) Init() tea.Cmd { return nil }

func (p *RunPicker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.height = msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			p.canceled = true
			return p, tea.Quit
		case "enter":
			if len(p.filtered) > 0 {
				r := p.filtered[p.cursor].run
				p.chosen = &r
			}
			return p, tea.Quit
		case "up", "ctrl+p":
			if p.cursor > 0 {
				p.cursor--
				p.offset = min(p.offset, p.cursor)
			}
		case "down", "ctrl+n":
			if p.cursor < len(p.filtered)-1 {
				p.cursor++
				if vis := p.visibleRows(); p.cursor >= p.offset+vis {
					p.offset = p.cursor - vis + 1
				}
			}
		case "backspace":
			if q := []rune(p.query); len(q) > 0 {
				p.query = string(q[:len(q)-1])
				p.applyFilter()
			}
		default:
			if msg.Type == tea.KeyRunes {
				p.query += string(msg.Runes)
				p.applyFilter()
			}
		}
	}
	return p, nil
}

func (p *RunPicker) View() string {
	var b strings.Builder
	b.WriteString("  " + ui.Title.Render(ui.IconDated+"Runs") + "\n\n")

	prompt := lipgloss.NewStyle().Foreground(ui.Orange).Bold(true).Render("> ")
	b.WriteString("  " + prompt + p.query + ui.Accent.Render("▎") + "\n\n")

	if len(p.filtered) == 0 {
		b.WriteString("  " + ui.Muted.Render("No matches") + "\n")
	}
	end := min(p.offset+p.visibleRows(), len(p.filtered))
	for i := p.offset; i < end; i++ {
		b.WriteString(renderRun(p.filtered[i].run, i == p.cursor) + "\n")
	}

	b.WriteString("\n" + ui.Muted.Render(fmt.Sprintf("  %d/%d · ↑↓ navigate · enter select · esc cancel",
		len(p.filtered), len(p.runs))) + "\n")
	return b.String()
}

func (p *RunPicker) visibleRows() int {
	return max(p.height-6, 3)
}

func (p *RunPicker) applyFilter() {
	p.filtered = p.filtered[:0]
	for _, r := range p.runs {
		if p.query == "" {
			p.filtered = append(p.filtered, scoredRun{run: r})
			continue
		}
		if ok, sc := FuzzyMatch(p.query, runFilterValue(r)); ok {
			p.filtered = append(p.filtered, scoredRun{run: r, score: sc})
		}
	}
	// Newest first among equal scores; runs arrive newest first.
	slices.SortStableFunc(p.filtered, func(a, b scoredRun) int { return b.score - a.score })
	p.cursor = 0
	p.offset = 0
}

func runFilterValue(r history.Run) string {
	return r.ID + " " + r.Today.Format(calendar.DateLayout) + " " + r.StartedAt.Local().Format("2006-01-02 15:04")
}

func renderRun(r history.Run, selected bool) string {
	pointer := "  "
	title := r.StartedAt.Local().Format("2006-01-02 15:04") + "  " + r.ID[:8]
	if selected {
		pointer = ui.Accent.Render(ui.IconArrow + " ")
		title = lipgloss.NewStyle().Foreground(ui.Orange).Bold(true).Render(title)
	}
	desc := fmt.Sprintf("for %s · %s", r.Today.Format(calendar.DateLayout), r.Summary)
	if r.SkipCount > 0 {
		desc += fmt.Sprintf(" · %d skipped", r.SkipCount)
	}
	return "  " + pointer + title + "  " + ui.Muted.Render(desc)
}
