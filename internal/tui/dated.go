package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rnwolfe/dated/internal/render"
	"github.com/rnwolfe/dated/internal/todo"
	"github.com/rnwolfe/dated/internal/ui"
)

// View is one page of the interactive view.
type View int

const (
	ViewAllDated View = iota
	ViewOverdue
	ViewToday
	ViewRestOfWeek
)

var views = []View{ViewAllDated, ViewOverdue, ViewToday, ViewRestOfWeek}

func (v View) String() string {
	switch v {
	case ViewAllDated:
		return "All dated"
	case ViewOverdue:
		return "Overdue"
	case ViewToday:
		return "Today"
	case ViewRestOfWeek:
		return "Rest of the week"
	}
	return fmt.Sprintf("View(%d)", int(v))
}

func (v View) markdown(d *todo.Data) string {
	switch v {
	case ViewAllDated:
		return render.Dated(d)
	case ViewOverdue:
		return render.Overdue(d)
	case ViewRestOfWeek:
		return render.RestOfWeek(d)
	}
	return render.TodayList(d)
}

// prev and next stop at the first and last view.
func (v View) prev() View {
	if v > ViewAllDated {
		return v - 1
	}
	return v
}

func (v View) next() View {
	if v < ViewRestOfWeek {
		return v + 1
	}
	return v
}

// DatedModel is a read-only Bubbletea model paging through the sections
// of a loaded todo.Data.
type DatedModel struct {
	data     *todo.Data
	filtered *todo.Data
	view     View
	offsets  map[View]int

	vp        viewport.Model
	filter    string
	filtering bool

	width  int
	height int

	// markdown turns a view's markdown into terminal output.
	markdown func(md string, width int) string
}

// NewDatedModel returns a model showing the Today view.
func NewDatedModel(data *todo.Data) *DatedModel {
	m := &DatedModel{
		data:     data,
		filtered: data,
		view:     ViewToday,
		offsets:  make(map[View]int),
		width:    80,
		height:   24,
		markdown: ui.RenderMarkdown,
	}
	m.vp = viewport.New(m.width, m.bodyHeight())
	m.refresh()
	return m
}

// RunDated launches the interactive view.
func RunDated(data *todo.Data) error {
	prog := tea.NewProgram(NewDatedModel(data), tea.WithAltScreen())
	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("dated tui: %w", err)
	}
	return nil
}

func (m *DatedModel) Init() tea.Cmd {
	return nil
}

func (m *DatedModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.vp.Width = m.width
		m.vp.Height = m.bodyHeight()
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		if m.filtering {
			return m.handleFilterKey(msg)
		}
		return m.handleNormalKey(msg)
	}
	return m, nil
}

func (m *DatedModel) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "1", "2", "3", "4":
		m.setView(views[msg.String()[0]-'1'])
	case "d":
		m.setView(ViewAllDated)
	case "t":
		m.setView(ViewToday)
	case "h", "left":
		m.setView(m.view.prev())
	case "l", "right":
		m.setView(m.view.next())

	case "j", "down":
		m.vp.SetYOffset(m.vp.YOffset + 1)
	case "k", "up":
		m.vp.SetYOffset(m.vp.YOffset - 1)
	case "g":
		m.vp.GotoTop()
	case "G":
		m.vp.GotoBottom()

	case "/":
		m.filtering = true

	case "esc":
		if m.filter != "" {
			m.setFilter("")
		}
	}
	return m, nil
}

func (m *DatedModel) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		m.filtering = false
		m.setFilter("")
	case tea.KeyEnter:
		m.filtering = false
	case tea.KeyBackspace:
		if runes := []rune(m.filter); len(runes) > 0 {
			m.setFilter(string(runes[:len(runes)-1]))
		}
	case tea.KeyRunes, tea.KeySpace:
		m.setFilter(m.filter + string(msg.Runes))
	}
	return m, nil
}

func (m *DatedModel) setView(v View) {
	if v == m.view {
		return
	}
	m.offsets[m.view] = m.vp.YOffset
	m.view = v
	m.refresh()
	m.vp.SetYOffset(m.offsets[v])
}

func (m *DatedModel) setFilter(q string) {
	m.filter = q
	if q == "" {
		m.filtered = m.data
	} else {
		m.filtered = filterData(m.data, func(t todo.Task) bool { return MatchTask(q, t) })
	}
	m.refresh()
	m.vp.GotoTop()
}

func (m *DatedModel) refresh() {
	m.vp.SetContent(m.markdown(m.view.markdown(m.filtered), m.width))
}

// header + blank line above the body, filter line + help below.
func (m *DatedModel) bodyHeight() int {
	h := m.height - 4
	if h < 3 {
		h = 3
	}
	return h
}

func (m *DatedModel) View() string {
	var b strings.Builder

	tabs := []string{ui.Title.Render(ui.IconDated + "dated ")}
	for i, v := range views {
		label := fmt.Sprintf("%d %s", i+1, v)
		if v == m.view {
			tabs = append(tabs, ui.TabActive.Render(label))
		} else {
			tabs = append(tabs, ui.TabInactive.Render(label))
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...) + "\n\n")

	b.WriteString(m.vp.View() + "\n")

	switch {
	case m.filtering:
		prompt := ui.KeyStyle.Render("/")
		b.WriteString(" " + prompt + " " + m.filter + "\n")
	case m.filter != "":
		b.WriteString(ui.Muted.Render(fmt.Sprintf(" filter: %q · esc to clear", m.filter)) + "\n")
	default:
		b.WriteString(ui.Muted.Render(" "+m.summaryLine()) + "\n")
	}

	b.WriteString(ui.Muted.Render(" 1-4/d/t view · h/l prev/next · j/k scroll · / filter · q quit"))
	return b.String()
}

func (m *DatedModel) summaryLine() string {
	s := m.data.Summary()
	return fmt.Sprintf("%d overdue · %d today · %d this week", s.Overdue, s.Today, s.RestOfWeek)
}

// filterData rebuilds d keeping only the tasks keep accepts. Inactive
// tasks keep their bucket whatever date they are added with.
func filterData(d *todo.Data, keep func(todo.Task) bool) *todo.Data {
	out := todo.NewData(d.Today())
	b := out.NewBatch()

	add := func(due todo.DayTasks) {
		for _, t := range due.Tasks {
			if keep(t) {
				b.Add(due.Date, t)
			}
		}
	}
	for _, g := range []todo.DateGroups{d.Sections.Overdue, d.Sections.RestOfWeek, d.Sections.Dated, d.Sections.Later} {
		for _, day := range g.Days() {
			add(day)
		}
	}
	add(todo.DayTasks{Date: d.Today(), Tasks: d.Sections.Today})
	add(todo.DayTasks{Date: d.Today(), Tasks: d.Sections.Inactive})

	out.Merge(b)
	return out
}
