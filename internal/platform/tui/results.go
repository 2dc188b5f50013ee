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

	"github.com/vovakirdan/tui-fifteen/internal/registry"
	"github.com/vovakirdan/tui-fifteen/internal/storage"
)

const (
	maxBestResults   = 100
	maxRecentResults = 20
)

// ResultsKeyMap defines the key bindings for the results screen.
type ResultsKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Variant key.Binding
	Recent  key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ResultsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Variant, k.Recent, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ResultsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Variant, k.Recent},
		{k.Back, k.Quit},
	}
}

// DefaultResultsKeyMap returns default key bindings.
func DefaultResultsKeyMap() ResultsKeyMap {
	return ResultsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll"),
		),
		Variant: key.NewBinding(
			key.WithKeys("tab", "shift+tab", "left", "right", "h", "l"),
			key.WithHelp("tab", "classic/shuffled"),
		),
		Recent: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "best/recent"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ResultsModel shows the best solves of one puzzle variant, or the latest
// solves across all variants.
type ResultsModel struct {
	variants   []registry.GameInfo
	variant    int
	showRecent bool
	store      *storage.Store
	best       []storage.Result
	recent     []storage.Result
	stats      *storage.GameStats
	table      table.Model
	help       help.Model
	keys       ResultsKeyMap
	width      int
	height     int
	quitting   bool
	goingBack  bool
}

// NewResultsModel creates a results screen focused on the first variant.
func NewResultsModel(store *storage.Store, width, height int) ResultsModel {
	m := ResultsModel{
		variants: registry.List(),
		store:    store,
		keys:     DefaultResultsKeyMap(),
		help:     help.New(),
		width:    width,
		height:   height,
	}
	m.reload()
	return m
}

// variantID returns the focused variant's game ID.
func (m ResultsModel) variantID() string {
	if len(m.variants) == 0 {
		return ""
	}
	return m.variants[m.variant].ID
}

// variantTitle maps a game ID to its display title.
func (m ResultsModel) variantTitle(id string) string {
	for _, v := range m.variants {
		if v.ID == id {
			return v.Title
		}
	}
	return id
}

// reload queries the store and rebuilds the table. Query errors leave the
// table empty.
func (m *ResultsModel) reload() {
	m.best, m.recent, m.stats = nil, nil, nil
	if m.store != nil {
		id := m.variantID()
		if best, err := m.store.TopResults(id, maxBestResults); err == nil {
			m.best = best
		}
		if stats, err := m.store.GetGameStats(id); err == nil {
			m.stats = stats
		}
		if recent, err := m.store.RecentResults(maxRecentResults); err == nil {
			m.recent = recent
		}
	}
	m.table = m.buildTable()
}

// buildTable lays out columns for the current mode and fills the rows.
func (m ResultsModel) buildTable() table.Model {
	first := table.Column{Title: "Rank", Width: 6}
	if m.showRecent {
		first = table.Column{Title: "Variant", Width: 18}
	}
	columns := []table.Column{
		first,
		{Title: "Moves", Width: 7},
		{Title: "Time", Width: 7},
		{Title: "Date", Width: 13},
	}

	var rows []table.Row
	if m.showRecent {
		for _, r := range m.recent {
			rows = append(rows, resultRow(m.variantTitle(r.GameID), r))
		}
	} else {
		for i, r := range m.best {
			rows = append(rows, resultRow(fmt.Sprintf("#%d", i+1), r))
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(m.height-11, 3)),
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

func resultRow(first string, r storage.Result) table.Row {
	return table.Row{
		first,
		fmt.Sprintf("%d", r.Moves),
		formatDuration(r.Duration),
		r.CreatedAt.Format("Jan 02 15:04"),
	}
}

// SelectGame focuses the given variant. Unknown IDs are ignored.
func (m *ResultsModel) SelectGame(gameID string) {
	for i, v := range m.variants {
		if v.ID == gameID {
			m.variant = i
			m.reload()
			return
		}
	}
}

// Init initializes the results model.
func (m ResultsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the results screen.
func (m ResultsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Variant):
			if len(m.variants) > 1 {
				m.variant = (m.variant + 1) % len(m.variants)
				m.showRecent = false
				m.reload()
			}
			return m, nil

		case key.Matches(msg, m.keys.Recent):
			m.showRecent = !m.showRecent
			m.table = m.buildTable()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.buildTable()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the results screen.
func (m ResultsModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	title := "BEST RESULTS"
	if m.showRecent {
		title = "RECENT SOLVES"
	}

	body := lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render(title),
		"",
		m.variantToggle(),
		helpHintStyle.Render(m.statsLine()),
		"",
		boxStyle.Render(m.tableContent()),
		"",
		helpHintStyle.Render(m.help.View(m.keys)),
	)

	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, body)
}

// variantToggle renders the variant labels with the focused one highlighted.
func (m ResultsModel) variantToggle() string {
	active := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)
	inactive := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)

	labels := make([]string, len(m.variants))
	for i, v := range m.variants {
		if i == m.variant && !m.showRecent {
			labels[i] = active.Render(v.Title)
		} else {
			labels[i] = inactive.Render(v.Title)
		}
	}
	return strings.Join(labels, " ")
}

func (m ResultsModel) tableContent() string {
	empty := m.best
	if m.showRecent {
		empty = m.recent
	}
	if len(empty) == 0 {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(1, 2).
			Render("No solved puzzles yet.\nSolve one to set a record!")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ResultsModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ResultsModel) IsQuitting() bool {
	return m.quitting
}

// RunResults runs the results screen focused on gameID, or the first variant
// if gameID is empty. goBack is false if the user quit.
func RunResults(store *storage.Store, gameID string, width, height int) (goBack bool, err error) {
	model := NewResultsModel(store, width, height)
	if gameID != "" {
		model.SelectGame(gameID)
	}

	finalModel, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ResultsModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}

// statsLine summarizes the focused variant's totals.
func (m ResultsModel) statsLine() string {
	if m.showRecent {
		return fmt.Sprintf("Last %d solves across all variants", len(m.recent))
	}
	if m.stats == nil || m.stats.Solved == 0 {
		return "Never solved"
	}
	return fmt.Sprintf("Solved %d times  |  Best %d moves  |  Fastest %s  |  Avg %.1f moves",
		m.stats.Solved, m.stats.BestMoves, formatDuration(m.stats.BestTime), m.stats.AvgMoves)
}

// formatDuration renders a solve time as m:ss.
func formatDuration(d time.Duration) string {
	secs := int(d / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
