// Package teaui is the interactive terminal list: the grocery and task
// views, inline adding, checking, and the task calendar overlay.
package teaui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/pantry/pkg/grocery"
	"tableflip.dev/pantry/pkg/liststore"
	"tableflip.dev/pantry/pkg/schedule"
)

type mode int

const (
	modeList mode = iota
	modeInsert
	modeCalendar
)

// Model contains UI state. All list state lives in the store; the model
// keeps only view concerns: the cursor, the input, and the calendar overlay.
type Model struct {
	store    *liststore.Store
	ctx      context.Context
	interval time.Duration

	mode    mode
	cursor  int
	focused bool
	status  string

	input textinput.Model

	// calendar overlay
	calTaskID   string
	calTaskName string
	calDays     schedule.Days
	calMonth    int
	calDay      int

	termWidth  int
	termHeight int
}

// New creates a UI model over the store. interval is the poll cadence; zero
// disables polling.
func New(store *liststore.Store, interval time.Duration) Model {
	ti := textinput.New()
	ti.Placeholder = "New item"
	ti.CharLimit = 256
	ti.Prompt = ""
	ti.Styles.Cursor.Color = lipgloss.Color("218")
	ti.Styles.Cursor.Shape = tea.CursorUnderline

	return Model{
		store:    store,
		ctx:      context.Background(),
		interval: interval,
		focused:  true,
		input:    ti,
		status:   "tab switch view, o add, x check, d delete, C clear checked, m magic, 1-4 stores, c calendar, q quit",
	}
}

// messages
type errMsg struct{ err error }
type refreshedMsg struct{}
type tickMsg time.Time

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.refresh()}
	if m.interval > 0 {
		cmds = append(cmds, m.tick())
	}
	return tea.Batch(cmds...)
}

func (m *Model) refresh() tea.Cmd {
	return func() tea.Msg {
		if err := m.store.Refresh(m.ctx); err != nil {
			return errMsg{err}
		}
		return refreshedMsg{}
	}
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) rows() []grocery.Row {
	snap := m.store.Snapshot()
	return snap.Filtered.Rows()
}

// currentItem returns the item row under the cursor, nil on a header or an
// empty list.
func (m Model) currentItem() *grocery.Item {
	rows := m.rows()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return nil
	}
	return rows[m.cursor].Item
}

func (m *Model) clampCursor() {
	rows := m.rows()
	if len(rows) == 0 {
		m.cursor = 0
		return
	}
	if m.cursor >= len(rows) {
		m.cursor = len(rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// moveCursor steps over headers so the cursor always rests on an item.
func (m *Model) moveCursor(delta int) {
	rows := m.rows()
	if len(rows) == 0 {
		return
	}
	i := m.cursor
	for {
		i += delta
		if i < 0 || i >= len(rows) {
			return
		}
		if !rows[i].IsHeader() {
			m.cursor = i
			return
		}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
	case tea.FocusMsg:
		m.focused = true
		cmds = append(cmds, m.refresh())
	case tea.BlurMsg:
		m.focused = false
	case errMsg:
		m.status = "ERR: " + msg.err.Error()
	case refreshedMsg:
		m.clampCursor()
	case tickMsg:
		// Skip the fetch while the terminal is unfocused; keep ticking so
		// refreshes resume on focus.
		if m.focused && m.mode != modeCalendar {
			cmds = append(cmds, m.refresh())
		}
		cmds = append(cmds, m.tick())
	case tea.KeyPressMsg:
		switch m.mode {
		case modeInsert:
			switch msg.String() {
			case "enter":
				text := strings.TrimSpace(m.input.Value())
				m.store.SetInput(text)
				m.mode = modeList
				m.input.Reset()
				m.input.Blur()
				if text != "" {
					cmds = append(cmds, func() tea.Msg {
						if err := m.store.Create(m.ctx); err != nil {
							return errMsg{err}
						}
						return refreshedMsg{}
					})
				}
			case "esc":
				m.mode = modeList
				m.input.Reset()
				m.input.Blur()
				m.status = "Add cancelled"
			default:
				var cmd tea.Cmd
				m.input, cmd = m.input.Update(msg)
				cmds = append(cmds, cmd)
			}
		case modeCalendar:
			cmds = m.updateCalendar(msg, cmds)
		case modeList:
			switch msg.String() {
			case "q", "ctrl+c":
				m.store.Flush()
				cmds = append(cmds, tea.Quit)
			case "tab":
				if m.store.Snapshot().Mode == grocery.KindGrocery {
					m.store.SetMode(grocery.KindTask)
				} else {
					m.store.SetMode(grocery.KindGrocery)
				}
				m.cursor = 0
				m.moveToFirstItem()
			case "j", "down":
				m.moveCursor(1)
			case "k", "up":
				m.moveCursor(-1)
			case "g":
				m.cursor = 0
				m.moveToFirstItem()
			case "o", "i", "a":
				m.mode = modeInsert
				m.input.SetValue("")
				if cmd := m.input.Focus(); cmd != nil {
					cmds = append(cmds, cmd)
				}
				cmds = append(cmds, textinput.Blink)
			case "x", " ", "space":
				if it := m.currentItem(); it != nil {
					m.store.Check(it.ID)
				}
			case "d":
				if it := m.currentItem(); it != nil {
					id := it.ID
					cmds = append(cmds, func() tea.Msg {
						if err := m.store.Remove(m.ctx, id); err != nil {
							return errMsg{err}
						}
						return refreshedMsg{}
					})
				}
			case "C":
				cmds = append(cmds, func() tea.Msg {
					if err := m.store.ClearChecked(m.ctx); err != nil {
						return errMsg{err}
					}
					return refreshedMsg{}
				})
			case "m":
				cmds = append(cmds, func() tea.Msg {
					if err := m.store.ToggleMagic(m.ctx); err != nil {
						return errMsg{err}
					}
					return refreshedMsg{}
				})
			case "1", "2", "3", "4":
				idx := int(msg.String()[0] - '1')
				if idx < len(grocery.AllStores) {
					name := grocery.AllStores[idx]
					cmds = append(cmds, func() tea.Msg {
						if err := m.store.ToggleStore(m.ctx, name); err != nil {
							return errMsg{err}
						}
						return refreshedMsg{}
					})
				}
			case "c":
				if it := m.currentItem(); it != nil && it.Kind == grocery.KindTask {
					m.openCalendar(it)
				}
			case "r":
				cmds = append(cmds, m.refresh())
			}
		}
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) moveToFirstItem() {
	rows := m.rows()
	for i := range rows {
		if !rows[i].IsHeader() {
			m.cursor = i
			return
		}
	}
	m.cursor = 0
}

func (m *Model) openCalendar(it *grocery.Item) {
	m.mode = modeCalendar
	m.calTaskID = it.ID
	m.calTaskName = it.Name
	m.calDays = it.ScheduledDays
	if m.calDays == nil {
		m.calDays = schedule.Empty()
	}
	m.calMonth = int(time.Now().Month()) - 1
	m.calDay = 0
}

func (m *Model) updateCalendar(msg tea.KeyPressMsg, cmds []tea.Cmd) []tea.Cmd {
	month := schedule.Months[m.calMonth]
	switch msg.String() {
	case "esc":
		m.mode = modeList
		m.status = "Schedule unchanged"
	case "h", "left":
		m.calMonth = schedule.Prev(m.calMonth)
		m.clampCalDay()
	case "l", "right":
		m.calMonth = schedule.Next(m.calMonth)
		m.clampCalDay()
	case "j", "down":
		if m.calDay+7 < schedule.DaysIn(month) {
			m.calDay += 7
		}
	case "k", "up":
		if m.calDay-7 >= 0 {
			m.calDay -= 7
		}
	case "J":
		if m.calDay+1 < schedule.DaysIn(month) {
			m.calDay++
		}
	case "K":
		if m.calDay-1 >= 0 {
			m.calDay--
		}
	case " ", "space", "x":
		m.calDays = m.calDays.Toggle(month, m.calDay)
	case "enter":
		taskID := m.calTaskID
		days := m.calDays
		m.mode = modeList
		m.status = "Schedule saved"
		cmds = append(cmds, func() tea.Msg {
			if err := m.store.SaveScheduledDays(m.ctx, taskID, days); err != nil {
				return errMsg{err}
			}
			return refreshedMsg{}
		})
	}
	return cmds
}

func (m *Model) clampCalDay() {
	if max := schedule.DaysIn(schedule.Months[m.calMonth]); m.calDay >= max {
		m.calDay = max - 1
	}
}

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	checkedStyle = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	cursorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("218"))
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	fetchStyle   = lipgloss.NewStyle().Italic(true).Faint(true)
	panelStyle   = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(1, 2)
	dayOnStyle   = lipgloss.NewStyle().Bold(true)
	dayOffStyle  = lipgloss.NewStyle().Faint(true)
	daySelStyle  = lipgloss.NewStyle().Reverse(true)
)

func (m Model) View() string {
	snap := m.store.Snapshot()

	var b strings.Builder
	title := "Groceries"
	if snap.Mode == grocery.KindTask {
		title = "Tasks"
	}
	if snap.MagicEnabled {
		title += " ✨"
	}
	b.WriteString(headerStyle.Render(title))
	if snap.Fetching {
		b.WriteString(fetchStyle.Render("  fetching..."))
	}
	b.WriteString("\n\n")

	rows := snap.Filtered.Rows()
	if len(rows) == 0 {
		b.WriteString(fetchStyle.Render("  nothing here"))
		b.WriteString("\n")
	}
	for i, r := range rows {
		marker := "  "
		if i == m.cursor && m.mode == modeList {
			marker = cursorStyle.Render("> ")
		}
		if r.IsHeader() {
			b.WriteString(marker + headerStyle.Render(r.Header) + "\n")
			continue
		}
		line := "• " + r.Item.Name
		if r.Item.Checked {
			line = checkedStyle.Render("x " + r.Item.Name)
		}
		b.WriteString(marker + line + "\n")
	}

	if m.mode == modeInsert {
		b.WriteString("\nAdd: " + m.input.View() + "\n")
	}
	if m.mode == modeCalendar {
		b.WriteString("\n" + panelStyle.Render(m.viewCalendar()) + "\n")
	}

	b.WriteString("\n" + statusStyle.Render(m.status))
	return b.String()
}

func (m Model) viewCalendar() string {
	month := schedule.Months[m.calMonth]

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s  (%s)\n\n", m.calTaskName, string(month)))

	total := schedule.DaysIn(month)
	for i := 0; i < total; i++ {
		cell := fmt.Sprintf("%2d", i+1)
		switch {
		case i == m.calDay:
			cell = daySelStyle.Render(cell)
		case m.calDays.Contains(month, i):
			cell = dayOnStyle.Render(cell)
		default:
			cell = dayOffStyle.Render(cell)
		}
		b.WriteString(cell + " ")
		if (i+1)%7 == 0 {
			b.WriteString("\n")
		}
	}
	b.WriteString("\n\nh/l month, j/k week, J/K day, space toggle, enter save, esc cancel")
	return b.String()
}

// Run launches the interactive UI.
func Run(store *liststore.Store, interval time.Duration) error {
	p := tea.NewProgram(New(store, interval), tea.WithAltScreen(), tea.WithReportFocus())
	_, err := p.Run()
	return err
}
