package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
)

// ResumeChoice is the answer to the saved-game prompt.
type ResumeChoice int

const (
	ResumeUndecided ResumeChoice = iota
	ResumeContinue
	ResumeNewGame
	ResumeBack
	ResumeQuit
)

var resumeOptions = []string{
	"Continue",
	"New Game",
}

// ResumeModel asks whether to continue a saved game or start over.
type ResumeModel struct {
	title     string
	saved     t2048.Snapshot
	cursor    int
	width     int
	height    int
	keyMapper *KeyMapper
	choice    ResumeChoice
}

// NewResumeModel creates the prompt for a saved game of the given variant.
func NewResumeModel(title string, saved t2048.Snapshot, width, height int) ResumeModel {
	return ResumeModel{
		title:     title,
		saved:     saved,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the model.
func (m ResumeModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m ResumeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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

func (m ResumeModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.choice = ResumeQuit
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(resumeOptions)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		m.choice = ResumeContinue
		if m.cursor == 1 {
			m.choice = ResumeNewGame
		}
		return m, tea.Quit
	case MenuActionBack:
		m.choice = ResumeBack
		return m, tea.Quit
	}

	return m, nil
}

// View renders the prompt.
func (m ResumeModel) View() string {
	if m.choice == ResumeQuit {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(menuTitleStyle.Render(centerText(m.title, m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText("You have a game in progress", m.width))
	b.WriteString("\n")
	info := fmt.Sprintf("Score %d  |  %d tiles", m.saved.Score.Current, len(m.saved.Tiles))
	b.WriteString(menuHintStyle.Render(centerText(info, m.width)))
	b.WriteString("\n\n")

	for i, opt := range resumeOptions {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(cursor+opt, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(menuHintStyle.Render(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width)))

	return b.String()
}

// Choice returns the answer, ResumeUndecided while the prompt is open.
func (m ResumeModel) Choice() ResumeChoice {
	return m.choice
}

// RunResume shows the prompt and returns the player's choice.
func RunResume(title string, saved t2048.Snapshot, cfg core.RuntimeConfig) (ResumeChoice, error) {
	model := NewResumeModel(title, saved, cfg.ScreenW, cfg.ScreenH)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return ResumeBack, err
	}

	m, ok := finalModel.(ResumeModel)
	if !ok || m.Choice() == ResumeUndecided {
		return ResumeBack, nil
	}
	return m.Choice(), nil
}
