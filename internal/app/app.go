// Package app assembles the services shared by the api, worker and console
// binaries.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/MrJamesThe3rd/contratos/internal/access"
	accessStore "github.com/MrJamesThe3rd/contratos/internal/access/store"
	"github.com/MrJamesThe3rd/contratos/internal/audit"
	auditStore "github.com/MrJamesThe3rd/contratos/internal/audit/store"
	"github.com/MrJamesThe3rd/contratos/internal/config"
	"github.com/MrJamesThe3rd/contratos/internal/contract"
	contractStore "github.com/MrJamesThe3rd/contratos/internal/contract/store"
	"github.com/MrJamesThe3rd/contratos/internal/database"
	"github.com/MrJamesThe3rd/contratos/internal/document"
	"github.com/MrJamesThe3rd/contratos/internal/entity"
	entityStore "github.com/MrJamesThe3rd/contratos/internal/entity/store"
	"github.com/MrJamesThe3rd/contratos/internal/export"
	"github.com/MrJamesThe3rd/contratos/internal/importer"
	"github.com/MrJamesThe3rd/contratos/internal/importer/register"
	"github.com/MrJamesThe3rd/contratos/internal/invoice"
	invoiceStore "github.com/MrJamesThe3rd/contratos/internal/invoice/store"
	"github.com/MrJamesThe3rd/contratos/internal/mail"
	"github.com/MrJamesThe3rd/contratos/internal/notification"
	notificationStore "github.com/MrJamesThe3rd/contratos/internal/notification/store"
	"github.com/MrJamesThe3rd/contratos/internal/storage/gcs"
	"github.com/MrJamesThe3rd/contratos/internal/supplement"
	supplementStore "github.com/MrJamesThe3rd/contratos/internal/supplement/store"
)

type App struct {
	DB *sql.DB

	Authorizer    *access.Authorizer
	Contracts     *contract.Service
	Supplements   *supplement.Service
	Invoices      *invoice.Service
	Notifications *notification.Service
	Entities      *entity.Service
	Import        *importer.Service
	Export        *export.Service

	closers []io.Closer
}

// New connects to the database and the external stores and builds every
// service. Close releases them.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	db, err := database.New(ctx, cfg.ConnectionString(), database.Pool{
		MaxOpen:     cfg.DB.MaxOpenConns,
		MaxIdle:     cfg.DB.MaxIdleConns,
		MaxLifetime: cfg.DB.ConnMaxLifetime,
	})
	if err != nil {
		return nil, err
	}

	a := &App{DB: db, closers: []io.Closer{db}}

	if cfg.DB.Migrate {
		if err := database.Migrate(ctx, db); err != nil {
			a.Close()
			return nil, err
		}
	}

	docs, err := a.documents(ctx, cfg)
	if err != nil {
		a.Close()
		return nil, err
	}

	mailer, err := a.mailer(ctx, cfg)
	if err != nil {
		a.Close()
		return nil, err
	}

	clock, err := cfg.Clock()
	if err != nil {
		a.Close()
		return nil, err
	}

	var (
		directory = accessStore.New(db)
		auditor   = audit.NewWriter(auditStore.New(db))
		contracts = contractStore.New(db)
	)

	a.Authorizer = access.NewAuthorizer(directory)

	a.Notifications = notification.NewService(notificationStore.New(db), mailer, directory, a.Authorizer, notification.Config{
		LookaheadDays:  cfg.Sweep.LookaheadDays,
		CollapseOnRead: cfg.Sweep.CollapseOnRead,
	}, notification.WithClock(clock))

	var (
		contractService   = contract.NewService(contracts, a.Notifications, docs, auditor, a.Authorizer, contract.WithClock(clock))
		supplementService = supplement.NewService(supplementStore.New(db), contracts, a.Notifications, auditor, a.Authorizer, supplement.WithClock(clock))
		invoiceService    = invoice.NewService(invoiceStore.New(db), contracts, auditor, a.Authorizer, invoice.WithClock(clock))
		entityService     = entity.NewService(entityStore.New(db))
	)

	a.Contracts = contractService
	a.Supplements = supplementService
	a.Invoices = invoiceService
	a.Entities = entityService
	a.Import = importer.NewService(register.NewParser(), contractService, entityService)
	a.Export = export.NewService(contractService, nil)

	return a, nil
}

func (a *App) documents(ctx context.Context, cfg *config.Config) (document.Store, error) {
	if cfg.Storage.Bucket == "" {
		slog.Warn("no storage bucket configured, document uploads are disabled")
		return document.Unconfigured{}, nil
	}

	store, err := gcs.New(ctx, gcs.Config{
		Bucket:          cfg.Storage.Bucket,
		Folder:          cfg.Storage.Folder,
		CredentialsJSON: cfg.Storage.CredentialsJSON,
		PublicBaseURL:   cfg.Storage.PublicBaseURL,
	})
	if err != nil {
		return nil, fmt.Errorf("connecting document store: %w", err)
	}

	a.closers = append(a.closers, store)

	return store, nil
}

func (a *App) mailer(ctx context.Context, cfg *config.Config) (notification.Mailer, error) {
	if !cfg.Mail.Enabled {
		return mail.Noop{}, nil
	}

	sender, err := mail.New(ctx, mail.Config{
		ProjectID:       cfg.Mail.ProjectID,
		Topic:           cfg.Mail.Topic,
		CredentialsJSON: cfg.Mail.CredentialsJSON,
	})
	if err != nil {
		return nil, fmt.Errorf("connecting mail topic: %w", err)
	}

	a.closers = append(a.closers, sender)

	return sender, nil
}

// Close releases connections in reverse order of creation.
func (a *App) Close() error {
	var errs []error

	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
