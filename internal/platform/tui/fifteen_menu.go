package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-fifteen/internal/core"
	"github.com/vovakirdan/tui-fifteen/internal/games/fifteen"
)

// modeOption is one line of the mode selector.
type modeOption struct {
	gameID string
	label  string
	detail string
}

var modeOptions = []modeOption{
	{fifteen.IDClassic, "Classic layout", "Start from the fixed opening arrangement"},
	{fifteen.IDShuffled, "Shuffled start", "Start from a random deal"},
}

// ModeSelectorModel lets users choose how a puzzle starts.
type ModeSelectorModel struct {
	cursor    int
	width     int
	height    int
	keyMapper *KeyMapper
	selected  string // Game ID; empty while choosing
	quitting  bool
	back      bool
}

// NewModeSelectorModel creates a new mode selection model.
func NewModeSelectorModel(width, height int) ModeSelectorModel {
	return ModeSelectorModel{
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the model.
func (m ModeSelectorModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m ModeSelectorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m ModeSelectorModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(modeOptions)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		m.selected = modeOptions[m.cursor].gameID
		return m, tea.Quit
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the mode selection.
func (m ModeSelectorModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("F I F T E E N", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select how to start:", m.width))
	b.WriteString("\n\n")

	for i, opt := range modeOptions {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(cursor+opt.label, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpHintStyle.Render(centerText(modeOptions[m.cursor].detail, m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

// Selected returns the chosen game ID, or "" if still choosing.
func (m ModeSelectorModel) Selected() string {
	return m.selected
}

// IsQuitting returns true if user wants to quit.
func (m ModeSelectorModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m ModeSelectorModel) WantsBack() bool {
	return m.back
}

// RunModeSelector runs the mode selection and returns the chosen game ID.
// Returns "" if the user backed out or quit.
func RunModeSelector(cfg core.RuntimeConfig) (string, error) {
	model := NewModeSelectorModel(cfg.ScreenW, cfg.ScreenH)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	m, ok := finalModel.(ModeSelectorModel)
	if !ok {
		return "", nil
	}

	if m.IsQuitting() || m.WantsBack() {
		return "", nil
	}

	return m.Selected(), nil
}
