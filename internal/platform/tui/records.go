package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/spacewar/internal/storage"
)

// maxRecords is how many runs the records popup loads.
const maxRecords = 50

// RecordsSource supplies the run history shown in the records popup.
type RecordsSource interface {
	TopRuns(limit int) ([]storage.RunEntry, error)
}

// recordsModel is the records popup: the stored high score and a
// scrollable table of the best runs.
type recordsModel struct {
	source    RecordsSource
	runs      []storage.RunEntry
	err       error
	highScore int
	table     table.Model
	help      help.Model
	keys      KeyMap
	width     int
	height    int
}

func newRecordsModel(source RecordsSource, keys KeyMap, width, height int) recordsModel {
	m := recordsModel{
		source: source,
		keys:   keys,
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	return m
}

// createTable creates a new table sized to the popup.
func (m *recordsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Score", Width: 10},
		{Title: "Time", Width: 8},
		{Title: "Date", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-12, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// reload fetches the history again. highScore comes from the simulation,
// which owns the stored scalar.
func (m *recordsModel) reload(highScore int) {
	m.highScore = highScore
	m.runs, m.err = nil, nil
	if m.source != nil {
		m.runs, m.err = m.source.TopRuns(maxRecords)
	}

	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", r.Score),
			r.PlayTime.Round(time.Second).String(),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m *recordsModel) resize(width, height int) {
	m.width, m.height = width, height
	m.table = m.createTable()
	m.reload(m.highScore)
}

func (m recordsModel) update(msg tea.KeyMsg) (recordsModel, tea.Cmd) {
	if key.Matches(msg, m.keys.Up) || key.Matches(msg, m.keys.Down) {
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m recordsModel) view() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString(titleStyle.Render("RECORDS"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("High score: %d", m.highScore))
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Render("Could not load history."))
	case len(m.runs) == 0:
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true)
		b.WriteString(emptyStyle.Render("No runs recorded yet."))
	default:
		b.WriteString(m.table.View())
	}

	b.WriteString("\n\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.ShortHelpView([]key.Binding{m.keys.Up, m.keys.Down, m.keys.Back})))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(1, 2)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box.Render(b.String()))
}

// controlsView renders the controls popup from the key map's full help.
func controlsView(keys KeyMap, width, height int) string {
	h := help.New()
	h.ShowAll = true

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	body := titleStyle.Render("CONTROLS") + "\n\n" + h.View(keys) + "\n\n" +
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render("esc to close")

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(1, 2)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box.Render(body))
}
