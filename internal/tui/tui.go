package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alephtools/aleph-tui/internal/app"
)

// tickMsg drives the polling policy. The fetch engine itself never
// schedules anything; it only reacts when the loop asks.
type tickMsg struct{}

const tickInterval = 500 * time.Millisecond

type Model struct {
	app *app.App

	width  int
	height int

	statusTable table.Model
	taskTable   table.Model

	help help.Model
	keys keyMap
}

// Run starts the dashboard, kicking off an immediate first fetch
// before the first tick.
func Run(a *app.App) error {
	m := NewModel(a)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func NewModel(a *app.App) Model {
	statusTable := table.New(
		table.WithColumns(statusColumns(defaultWidth)),
		table.WithRows(nil),
		table.WithFocused(true),
	)
	statusTable.SetStyles(dashboardTableStyles())

	taskTable := table.New(
		table.WithColumns(taskColumns(defaultWidth)),
		table.WithRows(nil),
	)
	taskTable.SetStyles(dashboardTableStyles())

	m := Model{
		app:         a,
		width:       defaultWidth,
		statusTable: statusTable,
		taskTable:   taskTable,
		help:        help.New(),
		keys:        defaultKeyMap(),
	}

	a.StartFetch()
	m.refreshTables()
	return m
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(time.Time) tea.Msg { return tickMsg{} })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		// Columns depend on width; rebuild rows to match.
		m.refreshTables()
		return m, nil

	case tickMsg:
		m.app.PollFetchResult()
		m.app.MaybeStartFetch()
		m.refreshTables()
		return m, tick()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Profiles):
			m.app.ToggleProfileSwitcher()
			return m, nil

		case key.Matches(msg, m.keys.Up):
			if m.app.ShowProfileSwitcher() {
				m.app.ProfileUp()
			} else {
				m.app.RowUp()
			}
			m.refreshTables()
			return m, nil

		case key.Matches(msg, m.keys.Down):
			if m.app.ShowProfileSwitcher() {
				m.app.ProfileDown()
			} else {
				m.app.RowDown()
			}
			m.refreshTables()
			return m, nil

		case key.Matches(msg, m.keys.Enter):
			// Enter confirms and closes the switcher; no-op otherwise.
			if m.app.ShowProfileSwitcher() {
				m.app.ToggleProfileSwitcher()
			}
			return m, nil

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
	}

	return m, nil
}

func (m *Model) layout() {
	w := m.width
	if w <= 0 {
		w = defaultWidth
	}
	m.statusTable.SetColumns(statusColumns(w))
	m.taskTable.SetColumns(taskColumns(w))
	m.statusTable.SetWidth(w)
	m.taskTable.SetWidth(w)
	m.help.Width = w

	// Header (4) + error bar (1) + footer (1) + detail panel share the
	// rest with the status table.
	bodyH := m.height - 6
	if bodyH < 6 {
		bodyH = 6
	}
	statusH := bodyH / 2
	if statusH < 3 {
		statusH = 3
	}
	m.statusTable.SetHeight(statusH)
	m.taskTable.SetHeight(bodyH - statusH)
}

// refreshTables mirrors application state into the table widgets. The
// app owns the cursors; the widgets only display them.
func (m *Model) refreshTables() {
	rows := statusRows(m.app.Status)
	m.statusTable.SetRows(rows)
	if cur := displayCursor(m.app.RowCursor(), len(rows)); cur >= 0 {
		m.statusTable.SetCursor(cur)
	}

	if r, ok := m.app.SelectedResult(); ok {
		m.taskTable.SetRows(taskRows(r))
	} else {
		m.taskTable.SetRows(nil)
	}
}

// displayCursor clamps the app cursor to something the table widget
// can highlight. The app's own upper bound is len, one past the last
// row.
func displayCursor(cursor, rows int) int {
	if rows == 0 {
		return -1
	}
	if cursor >= rows {
		return rows - 1
	}
	if cursor < 0 {
		return 0
	}
	return cursor
}

// --- Help / keymap -----------------------------------------------------------

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Enter    key.Binding
	Profiles key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Profiles: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "profiles"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Profiles, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Enter},
		{k.Profiles, k.Help, k.Quit},
	}
}

// Ensure we implement bubbles/help KeyMap interface.
var _ help.KeyMap = keyMap{}
