package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/contratos/internal/access"
	"github.com/MrJamesThe3rd/contratos/internal/contract"
)

var statusFilters = []contract.Status{
	"",
	contract.StatusPending,
	contract.StatusApproved,
	contract.StatusSigned,
	contract.StatusDeliveredToLegal,
	contract.StatusInExecution,
	contract.StatusFinished,
}

type contractsState int

const (
	contractsStateType contractsState = iota
	contractsStateBrowse
	contractsStateEdit
)

type ContractsModel struct {
	CommonModel
	contracts *contract.Service
	actor     access.Actor

	state     contractsState
	table     table.Model
	items     []*contract.Contract
	form      *huh.Form
	statusIdx int

	criteria contract.Criteria
	loading  bool
	err      error
	status   string

	// Form bindings, read back through the form keys.
	formType   string
	formStatus contract.Status
	formObject string
	formEntity string
}

func NewContractsModel(svc *contract.Service, actor access.Actor) ContractsModel {
	columns := []table.Column{
		{Title: "Dictamen", Width: 14},
		{Title: "Directorate", Width: 18},
		{Title: "Entity", Width: 24},
		{Title: "Status", Width: 20},
		{Title: "Expiration", Width: 12},
		{Title: "Available", Width: 14},
		{Title: "Sup.", Width: 4},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	m := ContractsModel{
		contracts: svc,
		actor:     actor,
		table:     t,
	}
	m.form = m.buildTypeForm()

	return m
}

func (m ContractsModel) Title() string { return "Contracts" }

func (m ContractsModel) ShortHelp() string {
	switch m.state {
	case contractsStateType:
		return "Enter: confirm | Esc: back"
	case contractsStateEdit:
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | e: edit | s: status filter | t: change type | r: refresh"
}

func (m ContractsModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m ContractsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadContractsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.items = msg.items
		m.refreshTable()

		return m, nil

	case contractSaveMsg:
		m.status = ""
		if msg.err != nil {
			m.status = FormatError(msg.err)
		}

		m.state = contractsStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case contractsStateType:
		return m.updateType(msg)
	case contractsStateBrowse:
		return m.updateBrowse(msg)
	case contractsStateEdit:
		return m.updateEdit(msg)
	}

	return m, nil
}

func (m ContractsModel) buildTypeForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("type").
				Title("Contract type").
				Placeholder("Servicios").
				Value(&m.formType).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("type cannot be empty")
					}
					return nil
				}),
		),
	).WithWidth(45).WithShowHelp(false)
}

func (m ContractsModel) updateType(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m, Back
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.criteria.Type = strings.TrimSpace(m.form.GetString("type"))
	m.form = nil
	m.state = contractsStateBrowse
	m.loading = true

	return m, m.loadCmd()
}

func (m ContractsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "e":
			return m.enterEditMode()
		case "t":
			m.state = contractsStateType
			m.form = m.buildTypeForm()

			return m, m.form.Init()
		case "s":
			m.statusIdx = (m.statusIdx + 1) % len(statusFilters)
			m.criteria.Status = nil

			if st := statusFilters[m.statusIdx]; st != "" {
				m.criteria.Status = &st
			}

			return m, m.loadCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ContractsModel) selected() *contract.Contract {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.items) {
		return nil
	}

	return m.items[idx]
}

func (m ContractsModel) enterEditMode() (tea.Model, tea.Cmd) {
	c := m.selected()
	if c == nil {
		return m, nil
	}

	m.formStatus = c.Status
	m.formObject = c.Object
	m.formEntity = c.Entity

	options := make([]huh.Option[contract.Status], 0, len(statusFilters)-1)
	for _, st := range statusFilters[1:] {
		options = append(options, huh.NewOption(string(st), st))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[contract.Status]().
				Key("status").
				Title("Status").
				Options(options...).
				Value(&m.formStatus),

			huh.NewInput().
				Key("entity").
				Title("Entity").
				Value(&m.formEntity),

			huh.NewText().
				Key("object").
				Title("Object").
				Value(&m.formObject),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = contractsStateEdit
	m.table.Blur()

	return m, m.form.Init()
}

func (m ContractsModel) updateEdit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = contractsStateBrowse
			m.form = nil
			m.table.Focus()

			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.saveCmd()
}

func (m ContractsModel) View() string {
	if m.state == contractsStateType {
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())
	}

	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading contracts...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(FormatError(m.err))
	}

	statusLabel := "All"
	if m.criteria.Status != nil {
		statusLabel = string(*m.criteria.Status)
	}

	header := fmt.Sprintf(
		"Type: %s | [s] Status: %s | %d contracts",
		activeStyle(m.criteria.Type),
		activeStyle(statusLabel),
		len(m.items),
	)

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.state == contractsStateEdit && m.form != nil {
		title := ""
		if c := m.selected(); c != nil {
			title = c.String()
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(fmt.Sprintf("Edit Contract\n\n%s\n\n%s", title, m.form.View()))

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = m.status + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *ContractsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.items))

	for _, c := range m.items {
		pending := ""
		if c.HasPendingSupplement {
			pending = "*"
		}

		rows = append(rows, table.Row{
			c.Dictamen,
			c.Directorate,
			c.Entity,
			string(c.Status),
			FormatDate(c.Expiration),
			FormatAmount(c.Available),
			pending,
		})
	}

	m.table.SetRows(rows)
}

// Messages

type loadContractsMsg struct {
	items []*contract.Contract
	err   error
}

func (m ContractsModel) loadCmd() tea.Cmd {
	criteria := m.criteria

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		items, err := m.contracts.Filter(ctx, m.actor, criteria)

		return loadContractsMsg{items: items, err: err}
	}
}

type contractSaveMsg struct {
	err error
}

func (m ContractsModel) saveCmd() tea.Cmd {
	c := m.selected()
	if c == nil {
		return nil
	}

	var (
		object  = m.form.GetString("object")
		entity  = m.form.GetString("entity")
		version = c.Version
	)

	status, ok := m.form.Get("status").(contract.Status)
	if !ok {
		status = c.Status
	}

	patch := contract.Patch{Version: &version}

	if status != c.Status {
		patch.Status = &status
	}

	if object != c.Object {
		patch.Object = &object
	}

	if entity != c.Entity {
		patch.Entity = &entity
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		_, err := m.contracts.Update(ctx, m.actor, c.ID, patch, nil)

		return contractSaveMsg{err: err}
	}
}
