package view

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/contratos/internal/schedule"
)

const sweepTimeout = 10 * time.Minute

// Runner starts a named job on demand.
type Runner interface {
	RunNow(ctx context.Context, name string) error
}

type sweepOption struct {
	job   string
	label string
}

var sweepOptions = []sweepOption{
	{job: schedule.JobExpiring, label: "Notify contracts about to expire"},
	{job: schedule.JobExpired, label: "Finish expired contracts"},
	{job: schedule.JobArchive, label: "Archive read notifications"},
}

type SweepsModel struct {
	CommonModel
	runner Runner

	cursor  int
	running bool
	spinner spinner.Model
	status  string
}

func NewSweepsModel(runner Runner) SweepsModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return SweepsModel{runner: runner, spinner: s}
}

func (m SweepsModel) Title() string { return "Run Sweeps" }

func (m SweepsModel) ShortHelp() string {
	return "Up/Down: select | Enter: run | Esc: back"
}

func (m SweepsModel) Init() tea.Cmd {
	return nil
}

func (m SweepsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.running {
			return m, nil
		}

		switch msg.Type {
		case tea.KeyEsc:
			return m, Back
		case tea.KeyUp:
			if m.cursor > 0 {
				m.cursor--
			}
		case tea.KeyDown:
			if m.cursor < len(sweepOptions)-1 {
				m.cursor++
			}
		case tea.KeyEnter:
			m.running = true
			m.status = ""

			return m, tea.Batch(m.spinner.Tick, m.runCmd(sweepOptions[m.cursor]))
		}

	case sweepResultMsg:
		m.running = false

		switch {
		case errors.Is(msg.err, schedule.ErrLocked):
			m.status = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Render(
				fmt.Sprintf("%s is already running elsewhere.", msg.label))
		case msg.err != nil:
			m.status = FormatError(msg.err)
		default:
			m.status = lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Render(
				fmt.Sprintf("%s finished in %s.", msg.label, msg.took.Round(time.Millisecond)))
		}

		return m, nil

	case spinner.TickMsg:
		if !m.running {
			return m, nil
		}

		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	}

	return m, nil
}

func (m SweepsModel) View() string {
	s := "Select sweep:\n\n"

	for i, opt := range sweepOptions {
		cursor := " "
		if i == m.cursor {
			cursor = ">"
		}

		s += fmt.Sprintf("%s %s\n", cursor, opt.label)
	}

	if m.running {
		s += fmt.Sprintf("\n%s Running...", m.spinner.View())
	}

	if m.status != "" {
		s += "\n" + m.status
	}

	return lipgloss.NewStyle().Padding(2).Render(s + "\n\n(Enter to run, Esc to back)")
}

type sweepResultMsg struct {
	label string
	took  time.Duration
	err   error
}

func (m SweepsModel) runCmd(opt sweepOption) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := timeoutCtx(sweepTimeout)
		defer cancel()

		start := time.Now()
		err := m.runner.RunNow(ctx, opt.job)

		return sweepResultMsg{label: opt.label, took: time.Since(start), err: err}
	}
}
