package view

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// View is a console screen reachable from the main menu.
type View interface {
	tea.Model
	Title() string
	ShortHelp() string
}

// CommonModel is embedded by all views.
type CommonModel struct {
	Width  int
	Height int
}

// BackMsg returns the console to the main menu.
type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

var helpStyle = lipgloss.NewStyle().Faint(true).PaddingLeft(1)

// Frame renders v with its title and key help underneath.
func Frame(v View) string {
	return lipgloss.JoinVertical(lipgloss.Left, v.View(), helpStyle.Render(v.Title()+" | "+v.ShortHelp()))
}
