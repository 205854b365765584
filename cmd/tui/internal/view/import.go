package view

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/contratos/internal/access"
	"github.com/MrJamesThe3rd/contratos/internal/importer"
)

const importTimeout = 2 * time.Minute

type importState int

const (
	importStateFilePick importState = iota
	importStateImporting
	importStateReport
)

type ImportModel struct {
	CommonModel
	importService *importer.Service
	actor         access.Actor

	state      importState
	filePicker filepicker.Model
	report     *importer.Report
	resultList list.Model

	status string
	err    error
}

func NewImportModel(svc *importer.Service, actor access.Actor) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".csv", ".txt"}
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	return ImportModel{
		importService: svc,
		actor:         actor,
		filePicker:    fp,
	}
}

func (m ImportModel) Title() string { return "Import Register" }

func (m ImportModel) ShortHelp() string {
	if m.state == importStateReport {
		return "Up/Down: scroll | Esc: back"
	}

	return "Esc: back | Enter: select"
}

func (m ImportModel) Init() tea.Cmd {
	return m.filePicker.Init()
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.handleEsc()
		}

	case importResultMsg:
		m.state = importStateReport
		if msg.err != nil {
			m.err = msg.err
			m.status = FormatError(msg.err)

			return m, nil
		}

		m.report = msg.report
		m.status = fmt.Sprintf("Registered %d, already present %d, failed %d.",
			msg.report.Registered, msg.report.Conflicts, msg.report.Failed)

		items := make([]list.Item, len(msg.report.Results))
		for i, r := range msg.report.Results {
			items[i] = resultItem{result: r}
		}

		m.resultList = list.New(items, resultDelegate{}, 90, 20)
		m.resultList.Title = "Import Report"
		m.resultList.SetShowStatusBar(false)
		m.resultList.SetFilteringEnabled(false)
		m.resultList.SetShowHelp(false)

		return m, nil
	}

	switch m.state {
	case importStateFilePick:
		var cmd tea.Cmd
		m.filePicker, cmd = m.filePicker.Update(msg)

		if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
			m.state = importStateImporting
			m.status = fmt.Sprintf("Importing from %s...", path)

			return m, m.importCmd(path)
		}

		return m, cmd

	case importStateReport:
		if m.report == nil {
			return m, nil
		}

		var cmd tea.Cmd
		m.resultList, cmd = m.resultList.Update(msg)

		return m, cmd
	}

	return m, nil
}

func (m ImportModel) handleEsc() (tea.Model, tea.Cmd) {
	if m.state == importStateReport {
		m.state = importStateFilePick
		m.report = nil
		m.err = nil
		m.status = ""

		return m, m.filePicker.Init()
	}

	return m, Back
}

func (m ImportModel) View() string {
	switch m.state {
	case importStateFilePick:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("Select the contract register to import (CSV):\n\n%s", m.filePicker.View()),
		)
	case importStateImporting:
		return lipgloss.NewStyle().Padding(2).Render(m.status)
	case importStateReport:
		return m.viewReport()
	}

	return ""
}

func (m ImportModel) viewReport() string {
	style := lipgloss.NewStyle().Padding(1)
	if m.err != nil {
		return style.Render(m.status + "\n\n(Esc to go back)")
	}

	return style.Render(lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Render(m.status),
		"",
		m.resultList.View(),
	))
}

// Messages

type importResultMsg struct {
	report *importer.Report
	err    error
}

func (m ImportModel) importCmd(path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return importResultMsg{err: err}
		}
		defer f.Close()

		ctx, cancel := timeoutCtx(importTimeout)
		defer cancel()

		report, err := m.importService.Import(ctx, m.actor, f)

		return importResultMsg{report: report, err: err}
	}
}

// Result list item

type resultItem struct {
	result importer.Result
}

func (i resultItem) Title() string       { return i.result.Dictamen }
func (i resultItem) Description() string { return i.result.Error }
func (i resultItem) FilterValue() string { return i.result.Dictamen }

type resultDelegate struct{}

func (d resultDelegate) Height() int                             { return 1 }
func (d resultDelegate) Spacing() int                            { return 0 }
func (d resultDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d resultDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(resultItem)
	if !ok {
		return
	}

	cursor := "  "
	if index == m.Index() {
		cursor = "> "
	}

	r := item.result

	color := lipgloss.Color("46")

	switch r.Outcome {
	case importer.OutcomeConflict:
		color = lipgloss.Color("214")
	case importer.OutcomeFailed:
		color = lipgloss.Color("196")
	}

	line := fmt.Sprintf("%sline %-4d %-12s %-14s %-20s %s",
		cursor, r.Line, lipgloss.NewStyle().Foreground(color).Render(string(r.Outcome)),
		r.Dictamen, r.Directorate, r.Error,
	)

	fmt.Fprint(w, line)
}
