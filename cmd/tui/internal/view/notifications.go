package view

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/contratos/internal/access"
	"github.com/MrJamesThe3rd/contratos/internal/notification"
)

type NotificationsModel struct {
	CommonModel
	notifications *notification.Service
	actor         access.Actor

	list    list.Model
	items   []*notification.Notification
	loading bool
	status  string
}

func NewNotificationsModel(svc *notification.Service, actor access.Actor) NotificationsModel {
	l := list.New(nil, notificationDelegate{}, 90, 20)
	l.Title = "Unread Notifications"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	return NotificationsModel{
		notifications: svc,
		actor:         actor,
		list:          l,
		loading:       true,
	}
}

func (m NotificationsModel) Title() string { return "Notifications" }

func (m NotificationsModel) ShortHelp() string {
	return "Esc: back | Enter: mark read | a: mark all read | r: refresh"
}

func (m NotificationsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m NotificationsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "a":
			return m, m.markAllCmd()
		case "enter":
			idx := m.list.Index()
			if idx >= 0 && idx < len(m.items) {
				return m, m.markReadCmd(m.items[idx])
			}

			return m, nil
		}

	case loadNotificationsMsg:
		m.loading = false
		if msg.err != nil {
			m.status = FormatError(msg.err)
			return m, nil
		}

		m.items = msg.items

		items := make([]list.Item, len(m.items))
		for i, n := range m.items {
			items[i] = notificationItem{n: n}
		}

		return m, m.list.SetItems(items)

	case notificationActionMsg:
		m.status = msg.status
		if msg.err != nil {
			m.status = FormatError(msg.err)
		}

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width-4, msg.Height-8)
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

func (m NotificationsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading notifications...")
	}

	if len(m.items) == 0 {
		body := "No unread notifications."
		if m.status != "" {
			body = m.status + "\n\n" + body
		}

		return lipgloss.NewStyle().Padding(2).Render(body + "\n\n(Esc to back)")
	}

	content := m.list.View()
	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

// Messages

type loadNotificationsMsg struct {
	items []*notification.Notification
	err   error
}

func (m NotificationsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		items, err := m.notifications.ListUnread(ctx, m.actor)

		return loadNotificationsMsg{items: items, err: err}
	}
}

type notificationActionMsg struct {
	status string
	err    error
}

func (m NotificationsModel) markReadCmd(n *notification.Notification) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if _, err := m.notifications.MarkRead(ctx, m.actor, n.ID); err != nil {
			return notificationActionMsg{err: err}
		}

		return notificationActionMsg{status: fmt.Sprintf("Marked %q as read.", n.Description)}
	}
}

func (m NotificationsModel) markAllCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		count, err := m.notifications.MarkAllRead(ctx, m.actor)
		if err != nil {
			return notificationActionMsg{err: err}
		}

		return notificationActionMsg{status: fmt.Sprintf("Marked %d notifications as read.", count)}
	}
}

// Notification list item

type notificationItem struct {
	n *notification.Notification
}

func (i notificationItem) Title() string       { return i.n.Description }
func (i notificationItem) Description() string { return i.n.Directorate }
func (i notificationItem) FilterValue() string { return i.n.Description }

type notificationDelegate struct{}

func (d notificationDelegate) Height() int                             { return 2 }
func (d notificationDelegate) Spacing() int                            { return 1 }
func (d notificationDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d notificationDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(notificationItem)
	if !ok {
		return
	}

	cursor := "  "
	if index == m.Index() {
		cursor = "> "
	}

	n := item.n

	line1 := fmt.Sprintf("%s%s", cursor, n.Description)
	line2 := fmt.Sprintf("    %s | %s | expires %s | available %s",
		n.Directorate,
		n.Entity,
		FormatDate(n.Expiration),
		FormatAmount(n.Available),
	)

	fmt.Fprintf(w, "%s\n%s", line1, line2)
}
