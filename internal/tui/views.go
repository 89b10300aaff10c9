package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/alephtools/aleph-tui/internal/api"
	"github.com/alephtools/aleph-tui/internal/buildinfo"
)

const defaultWidth = 100

func (m Model) View() string {
	sections := []string{
		m.renderHeader(),
		m.renderBody(),
		m.renderErrorBar(),
		m.renderFooter(),
	}
	out := make([]string, 0, len(sections))
	for _, s := range sections {
		if s != "" {
			out = append(out, s)
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, out...)
}

func (m Model) renderBody() string {
	if m.app.ShowProfileSwitcher() {
		h := m.height - 6
		if h < 10 {
			h = 10
		}
		return lipgloss.Place(m.width, h, lipgloss.Center, lipgloss.Center, m.renderProfileModal())
	}
	if detail := m.renderDetail(); detail != "" {
		return lipgloss.JoinVertical(lipgloss.Left, m.statusTable.View(), detail)
	}
	return m.statusTable.View()
}

func (m Model) renderHeader() string {
	meta := m.app.Metadata
	profile := m.app.CurrentProfile()

	line1 := fmt.Sprintf("(%s): %d jobs running", profile.Name, m.app.Status.Total)
	if meta.App.Title != "" {
		line1 = meta.App.Title + " " + line1
	}
	if meta.Maintenance {
		line1 += "  " + warnStyle().Render("MAINTENANCE")
	}

	var line2 string
	switch {
	case meta.App.Version != "" && meta.App.FtmVersion != "":
		line2 = fmt.Sprintf("version: %s, followthemoney: %s", meta.App.Version, meta.App.FtmVersion)
	case meta.App.Version != "":
		line2 = fmt.Sprintf("version: %s", meta.App.Version)
	case meta.App.FtmVersion != "":
		line2 = fmt.Sprintf("followthemoney: %s", meta.App.FtmVersion)
	}

	w := m.width - 2
	if w < 20 {
		w = 20
	}
	return headerStyle().Width(w).Render(line1 + "\n" + line2)
}

func (m Model) renderDetail() string {
	r, ok := m.app.SelectedResult()
	if !ok {
		return ""
	}
	title := "Details"
	if r.Collection != nil {
		title = fmt.Sprintf("Collection %s <%s>", r.Collection.CollectionID, r.Collection.Label)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		detailTitleStyle().Render(title),
		m.taskTable.View(),
	)
}

func (m Model) renderErrorBar() string {
	if m.app.ErrorMessage == "" {
		return ""
	}
	return errorStyle().Render(m.app.ErrorMessage)
}

func (m Model) renderFooter() string {
	icon := ""
	if m.app.IsFetching() {
		icon = "⟳ "
	}
	fetchInfo := fmt.Sprintf("%sfetching every %ds - last fetch %s",
		icon, m.app.Config.FetchInterval, humanize.Time(m.app.LastFetch()))

	parts := []string{
		"aleph-tui " + buildinfo.DisplayVersion(),
		fetchInfo,
		m.help.View(m.keys),
	}
	return footerStyle().Render(strings.Join(parts, "  •  "))
}

func (m Model) renderProfileModal() string {
	lines := []string{modalTitleStyle().Render("Select profile"), ""}
	current := m.app.CurrentProfile().Index
	for _, p := range m.app.Config.Profiles {
		if p.Index == current {
			lines = append(lines, selectedItemStyle().Render("> "+p.Name))
		} else {
			lines = append(lines, "  "+p.Name)
		}
	}
	lines = append(lines, "", mutedStyle().Render("↑/↓ choose · enter close"))

	w := 40
	if m.width-6 < w {
		w = m.width - 6
	}
	return modalStyle().Width(w).Render(strings.Join(lines, "\n"))
}

// --- Rows / columns ----------------------------------------------------------

func statusColumns(w int) []table.Column {
	label := w - 60
	if label < 20 {
		label = 20
	}
	return []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Label", Width: label},
		{Title: "Finished", Width: 10},
		{Title: "Doing", Width: 8},
		{Title: "Todo", Width: 8},
		{Title: "Remaining", Width: 18},
	}
}

func statusRows(st api.Status) []table.Row {
	rows := make([]table.Row, 0, len(st.Results))
	for _, r := range st.Results {
		id := "-"
		label := r.Name
		if r.Collection != nil {
			id = r.Collection.ID
			label = r.Collection.Label
		}
		rows = append(rows, table.Row{
			id,
			label,
			formatCount(r.Finished),
			formatCount(r.Doing),
			formatCount(r.Todo),
			formatRemaining(r.RemainingTime),
		})
	}
	return rows
}

func taskColumns(w int) []table.Column {
	name := w - 62
	if name < 15 {
		name = 15
	}
	return []table.Column{
		{Title: "Task Name", Width: name},
		{Title: "Total", Width: 8},
		{Title: "Active", Width: 8},
		{Title: "Finished", Width: 10},
		{Title: "Todo", Width: 8},
		{Title: "Doing", Width: 8},
		{Title: "Succeeded", Width: 10},
		{Title: "Failed", Width: 8},
	}
}

// taskRows flattens a result's batch -> queue -> task hierarchy into
// one task-level table.
func taskRows(r api.StatusResult) []table.Row {
	var rows []table.Row
	for _, batch := range r.Batches {
		for _, queue := range batch.Queues {
			for _, task := range queue.Tasks {
				rows = append(rows, table.Row{
					task.Name,
					formatCount(task.Total),
					formatCount(task.Active),
					formatCount(task.Finished),
					formatCount(task.Todo),
					formatCount(task.Doing),
					formatCount(task.Succeeded),
					formatCount(task.Failed),
				})
			}
		}
	}
	return rows
}

func formatCount(n int) string {
	return humanize.Comma(int64(n))
}

func formatRemaining(d *api.ISODuration) string {
	if d == nil {
		return "not sure. soon?"
	}
	return d.Duration.Truncate(time.Second).String()
}
