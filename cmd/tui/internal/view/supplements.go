package view

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/contratos/internal/access"
	"github.com/MrJamesThe3rd/contratos/internal/contract"
	"github.com/MrJamesThe3rd/contratos/internal/supplement"
)

// SupplementsModel walks the pending supplements one at a time.
type SupplementsModel struct {
	CommonModel
	supplements *supplement.Service
	contracts   *contract.Service
	actor       access.Actor

	queue    []*supplement.Supplement
	current  *supplement.Supplement
	contract *contract.Contract

	loading    bool
	status     string
	totalCount int
	consumed   int
}

func NewSupplementsModel(supSvc *supplement.Service, contractSvc *contract.Service, actor access.Actor) SupplementsModel {
	return SupplementsModel{
		supplements: supSvc,
		contracts:   contractSvc,
		actor:       actor,
		loading:     true,
	}
}

func (m SupplementsModel) Title() string { return "Pending Supplements" }

func (m SupplementsModel) ShortHelp() string {
	return "Enter: consume | s: skip | d: delete | Esc: back"
}

func (m SupplementsModel) Init() tea.Cmd {
	return m.loadPendingCmd()
}

func (m SupplementsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "enter":
			if m.current != nil {
				return m, m.consumeCmd(m.current)
			}
		case "s":
			if m.current != nil {
				cmd := m.next()
				return m, cmd
			}
		case "d":
			if m.current != nil {
				return m, m.deleteCmd(m.current)
			}
		}

	case loadPendingSupplementsMsg:
		m.loading = false
		if msg.err != nil {
			m.status = FormatError(msg.err)
			return m, nil
		}

		m.queue = msg.items
		m.totalCount = len(m.queue)
		cmd := m.next()

		return m, cmd

	case supplementContractMsg:
		if m.current == nil || m.current.ContractID != msg.contractID {
			return m, nil
		}

		if msg.err != nil {
			m.status = FormatError(msg.err)
		}

		m.contract = msg.contract

	case supplementActionMsg:
		if msg.err != nil {
			m.status = FormatError(msg.err)
			break
		}

		m.status = msg.status
		if msg.consumed {
			m.consumed++
		}

		cmd := m.next()

		return m, cmd
	}

	return m, nil
}

func (m SupplementsModel) View() string {
	if m.loading {
		return "Loading pending supplements..."
	}

	if m.current == nil {
		if m.totalCount == 0 {
			return lipgloss.NewStyle().Padding(2).Render("No pending supplements found.\n\n(Esc to back)")
		}

		return lipgloss.NewStyle().Padding(2).Render(
			fmt.Sprintf("All done! %d of %d supplements consumed.\n\n%s\n\n(Esc to back)", m.consumed, m.totalCount, m.status),
		)
	}

	termLabel := "-"
	if m.current.Term != nil {
		termLabel = m.current.Term.Label()
	}

	info := fmt.Sprintf("Name: %s\nTerm: %s\nAmount: %s\n", m.current.Name, termLabel, FormatAmount(m.current.Amount))

	if c := m.contract; c != nil {
		info = fmt.Sprintf(
			"Contract: %s (%s)\nExpiration: %s\nAvailable: %s\n\n%s",
			c.Dictamen, c.Directorate, FormatDate(c.Expiration), FormatAmount(c.Available), info,
		)
	}

	body := fmt.Sprintf("Pending Supplement (%d remaining)\n\n%s", len(m.queue)+1, info)
	if m.status != "" {
		body += "\n" + m.status
	}

	return lipgloss.NewStyle().Padding(2).Render(body + "\n\n(Enter to consume, 's' to skip, 'd' to delete, Esc to back)")
}

func (m *SupplementsModel) next() tea.Cmd {
	m.contract = nil

	if len(m.queue) == 0 {
		m.current = nil
		return nil
	}

	m.current = m.queue[0]
	m.queue = m.queue[1:]

	return m.loadContractCmd(m.current)
}

// Messages

type loadPendingSupplementsMsg struct {
	items []*supplement.Supplement
	err   error
}

func (m SupplementsModel) loadPendingCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		items, err := m.supplements.ListPending(ctx, m.actor)

		return loadPendingSupplementsMsg{items: items, err: err}
	}
}

type supplementContractMsg struct {
	contractID uuid.UUID
	contract   *contract.Contract
	err        error
}

func (m SupplementsModel) loadContractCmd(s *supplement.Supplement) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		c, err := m.contracts.Get(ctx, m.actor, s.ContractID)

		return supplementContractMsg{contractID: s.ContractID, contract: c, err: err}
	}
}

type supplementActionMsg struct {
	status   string
	consumed bool
	err      error
}

func (m SupplementsModel) consumeCmd(s *supplement.Supplement) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		c, err := m.supplements.Consume(ctx, m.actor, s.ID)
		if err != nil {
			return supplementActionMsg{err: err}
		}

		return supplementActionMsg{
			status:   fmt.Sprintf("%s applied to %s, expires %s.", s.Name, c.Dictamen, FormatDate(c.Expiration)),
			consumed: true,
		}
	}
}

func (m SupplementsModel) deleteCmd(s *supplement.Supplement) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.supplements.Delete(ctx, m.actor, s.ID); err != nil {
			return supplementActionMsg{err: err}
		}

		return supplementActionMsg{status: fmt.Sprintf("%s deleted.", s.Name)}
	}
}
