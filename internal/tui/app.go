package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/yochat/yochat/internal/game"
	"github.com/yochat/yochat/internal/service"
)

// App is a read-only operator console over the game database: leaderboard on
// the left, the selected session's detail on the right, refreshed on a timer.
type App struct {
	ctx    context.Context
	games  *service.GameService
	board  []game.Game
	state  *service.State
	cursor int
	status string
	width  int
	height int
}

func New(ctx context.Context, games *service.GameService) App {
	return App{ctx: ctx, games: games}
}

const refreshEvery = 2 * time.Second

type (
	boardMsg []game.Game
	stateMsg service.State
	errMsg   struct{ err error }
	tickMsg  time.Time
)

func (a App) Init() tea.Cmd {
	return tea.Batch(a.loadBoard, tick())
}

func tick() tea.Cmd {
	return tea.Tick(refreshEvery, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (a App) loadBoard() tea.Msg {
	board, err := a.games.Leaderboard(a.ctx)
	if err != nil {
		return errMsg{err}
	}
	return boardMsg(board)
}

func (a App) loadState(id string) tea.Cmd {
	return func() tea.Msg {
		state, err := a.games.GameState(a.ctx, id)
		if err != nil {
			return errMsg{err}
		}
		return stateMsg(state)
	}
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		return a, nil

	case tickMsg:
		cmds := []tea.Cmd{a.loadBoard, tick()}
		if a.state != nil {
			cmds = append(cmds, a.loadState(a.state.Game.ID))
		}
		return a, tea.Batch(cmds...)

	case boardMsg:
		a.board = msg
		if a.cursor >= len(a.board) {
			a.cursor = len(a.board) - 1
		}
		if a.cursor < 0 {
			a.cursor = 0
		}
		return a, nil

	case stateMsg:
		s := service.State(msg)
		a.state = &s
		return a, nil

	case errMsg:
		a.status = msg.err.Error()
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return a, tea.Quit
		case "up", "k":
			if a.cursor > 0 {
				a.cursor--
			}
			return a, nil
		case "down", "j":
			if a.cursor < len(a.board)-1 {
				a.cursor++
			}
			return a, nil
		case "enter":
			if a.cursor < len(a.board) {
				return a, a.loadState(a.board[a.cursor].ID)
			}
			return a, nil
		case "r":
			return a, a.loadBoard
		}
	}
	return a, nil
}

var (
	colorText   = lipgloss.Color("#cdd6f4")
	colorMuted  = lipgloss.Color("#a6adc8")
	colorAccent = lipgloss.Color("#a6e3a1")
	colorError  = lipgloss.Color("#f38ba8")

	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorText).Underline(true)
	rowStyle      = lipgloss.NewStyle().Foreground(colorText)
	selectedStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(colorMuted)
	errorStyle    = lipgloss.NewStyle().Foreground(colorError)
)

func (a App) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Yo Chat, Is This Vegan? — kitchen console"))
	b.WriteString("\n\n")
	b.WriteString(a.renderBoard())
	if a.state != nil {
		b.WriteString("\n")
		b.WriteString(a.renderState())
	}
	if a.status != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(a.status))
	}
	b.WriteString("\n\n")
	b.WriteString(mutedStyle.Render("↑/↓ select · enter detail · r refresh · q quit"))
	return b.String()
}

func (a App) renderBoard() string {
	if len(a.board) == 0 {
		return mutedStyle.Render("no games yet")
	}
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-38s %8s %10s %6s", "game", "score", "money", "rep")))
	b.WriteString("\n")
	for i, g := range a.board {
		line := fmt.Sprintf("%-38s %8d %10.2f %6.1f", g.ID, g.Score, g.Money, g.Reputation)
		if i == a.cursor {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString(rowStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (a App) renderState() string {
	s := a.state
	var b strings.Builder
	b.WriteString(headerStyle.Render("session " + s.Game.ID))
	b.WriteString("\n")
	b.WriteString(rowStyle.Render(fmt.Sprintf(
		"score %d · money %.2f · reputation %.1f · completed %d · active %d",
		s.Game.Score, s.Game.Money, s.Game.Reputation, s.Game.CompletedOrders, len(s.ActiveOrders))))
	b.WriteString("\n")
	if len(s.Mistakes) > 0 {
		b.WriteString(mutedStyle.Render("recent mistakes:"))
		b.WriteString("\n")
		start := len(s.Mistakes) - 5
		if start < 0 {
			start = 0
		}
		for _, m := range s.Mistakes[start:] {
			b.WriteString(mutedStyle.Render(fmt.Sprintf("  %s — %s", m.Violation, m.Consequence)))
			b.WriteString("\n")
		}
	}
	return b.String()
}
