package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/MrJamesThe3rd/contratos/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/contratos/internal/access"
	"github.com/MrJamesThe3rd/contratos/internal/app"
	"github.com/MrJamesThe3rd/contratos/internal/audit"
	"github.com/MrJamesThe3rd/contratos/internal/config"
	"github.com/MrJamesThe3rd/contratos/internal/schedule"
)

type model struct {
	app       *app.App
	scheduler *schedule.Scheduler
	actor     access.Actor

	currentView View

	contractsView     view.ContractsModel
	notificationsView view.NotificationsModel
	supplementsView   view.SupplementsModel
	importView        view.ImportModel
	exportView        view.ExportModel
	sweepsView        view.SweepsModel
}

type View int

const (
	ViewMenu          View = 0
	ViewContracts     View = 1
	ViewNotifications View = 2
	ViewSupplements   View = 3
	ViewImport        View = 4
	ViewExport        View = 5
	ViewSweeps        View = 6
)

func operator(cfg *config.Config) (access.Actor, error) {
	actor := access.Actor{
		Name:  cfg.Operator.Name,
		Email: cfg.Operator.Email,
		Role:  access.Role(cfg.Operator.Role),
	}

	if cfg.Operator.ID != "" {
		id, err := uuid.Parse(cfg.Operator.ID)
		if err != nil {
			return access.Actor{}, fmt.Errorf("parsing OPERATOR_ID: %w", err)
		}

		actor.ID = id
	}

	if cfg.Operator.RelationID != "" {
		id, err := uuid.Parse(cfg.Operator.RelationID)
		if err != nil {
			return access.Actor{}, fmt.Errorf("parsing OPERATOR_RELATION_ID: %w", err)
		}

		actor.RelationID = &id
	}

	return actor, nil
}

func initialModel(ctx context.Context, cfg *config.Config) (model, error) {
	actor, err := operator(cfg)
	if err != nil {
		return model{}, err
	}

	a, err := app.New(ctx, cfg)
	if err != nil {
		return model{}, err
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// Specs are left empty: the console only runs sweeps on demand.
	scheduler, err := schedule.New(schedule.NewRedisLocker(rdb), cfg.Sweep.LockTTL,
		schedule.SweepJobs(a.Notifications, schedule.Specs{})...)
	if err != nil {
		a.Close()
		return model{}, err
	}

	return model{
		app:               a,
		scheduler:         scheduler,
		actor:             actor,
		currentView:       ViewMenu,
		contractsView:     view.NewContractsModel(a.Contracts, actor),
		notificationsView: view.NewNotificationsModel(a.Notifications, actor),
		supplementsView:   view.NewSupplementsModel(a.Supplements, a.Contracts, actor),
		importView:        view.NewImportModel(a.Import, actor),
		exportView:        view.NewExportModel(a.Export, actor),
		sweepsView:        view.NewSweepsModel(scheduler),
	}, nil
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewContracts
				m.contractsView = view.NewContractsModel(m.app.Contracts, m.actor)

				return m, m.contractsView.Init()
			case "2":
				m.currentView = ViewNotifications
				m.notificationsView = view.NewNotificationsModel(m.app.Notifications, m.actor)

				return m, m.notificationsView.Init()
			case "3":
				m.currentView = ViewSupplements
				m.supplementsView = view.NewSupplementsModel(m.app.Supplements, m.app.Contracts, m.actor)

				return m, m.supplementsView.Init()
			case "4":
				m.currentView = ViewImport
				m.importView = view.NewImportModel(m.app.Import, m.actor)

				return m, m.importView.Init()
			case "5":
				m.currentView = ViewExport
				m.exportView = view.NewExportModel(m.app.Export, m.actor)

				return m, m.exportView.Init()
			case "6":
				m.currentView = ViewSweeps
				m.sweepsView = view.NewSweepsModel(m.scheduler)

				return m, m.sweepsView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewContracts:
		var newModel tea.Model
		newModel, cmd = m.contractsView.Update(msg)
		m.contractsView = newModel.(view.ContractsModel)
	case ViewNotifications:
		var newModel tea.Model
		newModel, cmd = m.notificationsView.Update(msg)
		m.notificationsView = newModel.(view.NotificationsModel)
	case ViewSupplements:
		var newModel tea.Model
		newModel, cmd = m.supplementsView.Update(msg)
		m.supplementsView = newModel.(view.SupplementsModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	case ViewExport:
		var newModel tea.Model
		newModel, cmd = m.exportView.Update(msg)
		m.exportView = newModel.(view.ExportModel)
	case ViewSweeps:
		var newModel tea.Model
		newModel, cmd = m.sweepsView.Update(msg)
		m.sweepsView = newModel.(view.SweepsModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			fmt.Sprintf("Contratos\n%s (%s)\n\n", m.actor.Name, m.actor.Role) +
				"1. Browse Contracts\n" +
				"2. Notifications\n" +
				"3. Pending Supplements\n" +
				"4. Import Register\n" +
				"5. Export Contracts\n" +
				"6. Run Sweeps\n\n" +
				"q. Quit",
		)
	case ViewContracts:
		return view.Frame(m.contractsView)
	case ViewNotifications:
		return view.Frame(m.notificationsView)
	case ViewSupplements:
		return view.Frame(m.supplementsView)
	case ViewImport:
		return view.Frame(m.importView)
	case ViewExport:
		return view.Frame(m.exportView)
	case ViewSweeps:
		return view.Frame(m.sweepsView)
	}

	return "Unknown View"
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// The terminal belongs to the UI; logs go to a file.
	logFile, err := tea.LogToFile("contratos-tui.log", "contratos")
	if err != nil {
		slog.Error("failed to open log file", "error", err)
		os.Exit(1)
	}
	defer logFile.Close()

	slog.SetDefault(slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: cfg.Level()})))

	view.UseProvenance(audit.Provenance{
		IPAddress: "localhost",
		SessionID: uuid.NewString(),
		UserAgent: "contratos-tui",
	})

	m, err := initialModel(context.Background(), cfg)
	if err != nil {
		slog.Error("failed to start", "error", err)
		fmt.Fprintln(os.Stderr, "failed to start:", err)
		os.Exit(1)
	}
	defer m.app.Close()

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
