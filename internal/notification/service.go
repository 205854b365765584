package notification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/contratos/internal/access"
	"github.com/MrJamesThe3rd/contratos/internal/term"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=notification
type Repository interface {
	// Expiring returns contracts whose expiration falls within [from, to].
	Expiring(ctx context.Context, from, to time.Time) ([]Candidate, error)
	// CreateIfAbsent inserts n unless its contract already has a notification
	// and reports whether a row was written.
	CreateIfAbsent(ctx context.Context, n *Notification) (bool, error)
	// FinishExpired moves every contract in execution that expired before
	// cutoff to the finished state and returns them.
	FinishExpired(ctx context.Context, cutoff time.Time) ([]Candidate, error)
	Get(ctx context.Context, id uuid.UUID) (*Notification, error)
	FindByContract(ctx context.Context, contractID uuid.UUID) (*Notification, error)
	UpdateDescription(ctx context.Context, id uuid.UUID, description string) error
	SetRead(ctx context.Context, id uuid.UUID, flags ReadFlags) error
	MarkAllRead(ctx context.Context, flags ReadFlags, scope access.Scope) (int64, error)
	ListUnread(ctx context.Context, flags ReadFlags, scope access.Scope) ([]*Notification, error)
	// ListRead returns the notifications at least one role has read.
	ListRead(ctx context.Context) ([]*Notification, error)
	DeleteIDs(ctx context.Context, ids []uuid.UUID) (int64, error)
	DeleteByContract(ctx context.Context, contractID uuid.UUID) error
}

type Mailer interface {
	Send(ctx context.Context, e Email)
}

type Contacts interface {
	ContactsForDirectorate(ctx context.Context, directorate string) ([]string, error)
}

type Scoper interface {
	ScopeFor(ctx context.Context, actor access.Actor) (access.Scope, error)
}

type Config struct {
	// LookaheadDays is the window ahead of now in which expiring contracts
	// are notified.
	LookaheadDays int
	// CollapseOnRead marks a notification read for every role as soon as
	// anyone reads it.
	CollapseOnRead bool
}

type Service struct {
	repo     Repository
	mailer   Mailer
	contacts Contacts
	scoper   Scoper
	cfg      Config
	now      func() time.Time
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(repo Repository, mailer Mailer, contacts Contacts, scoper Scoper, cfg Config, opts ...Option) *Service {
	if cfg.LookaheadDays <= 0 {
		cfg.LookaheadDays = 30
	}

	s := &Service{
		repo:     repo,
		mailer:   mailer,
		contacts: contacts,
		scoper:   scoper,
		cfg:      cfg,
		now:      time.Now,
	}

	for _, o := range opts {
		o(s)
	}

	return s
}

// SweepExpiring creates a notification for every contract expiring within
// the lookahead window that does not have one yet, and emails the contacts
// of its directorate. It returns how many notifications were created.
func (s *Service) SweepExpiring(ctx context.Context) (int, error) {
	now := s.now()
	today := term.Date(now)

	candidates, err := s.repo.Expiring(ctx, today, today.AddDate(0, 0, s.cfg.LookaheadDays))
	if err != nil {
		return 0, fmt.Errorf("finding expiring contracts: %w", err)
	}

	seen := make(map[uuid.UUID]struct{}, len(candidates))

	var (
		created int
		errs    []error
	)

	for _, c := range candidates {
		if _, ok := seen[c.ContractID]; ok {
			continue
		}

		seen[c.ContractID] = struct{}{}

		expiration := c.Expiration

		n := &Notification{
			Description: expiringDescription(c.Dictamen),
			Directorate: c.Directorate,
			ContractID:  c.ContractID,
			Expiration:  &expiration,
			Entity:      c.Entity,
			Available:   c.Available,
			CreatedAt:   now,
		}

		ok, err := s.repo.CreateIfAbsent(ctx, n)
		if err != nil {
			errs = append(errs, fmt.Errorf("contract %s: %w", c.ContractID, err))
			continue
		}

		if !ok {
			continue
		}

		created++

		slog.Info("expiration notification created", "contract", c.Dictamen, "directorate", c.Directorate)
		s.announce(ctx, c)
	}

	return created, errors.Join(errs...)
}

func (s *Service) announce(ctx context.Context, c Candidate) {
	to, err := s.contacts.ContactsForDirectorate(ctx, c.Directorate)
	if err != nil {
		slog.Error("failed to load directorate contacts", "directorate", c.Directorate, "error", err)
		return
	}

	if len(to) == 0 {
		return
	}

	s.mailer.Send(ctx, Email{
		To:       to,
		Template: expiringTemplate,
		Data: map[string]any{
			"dictamen":    c.Dictamen,
			"direccion":   c.Directorate,
			"entidad":     c.Entity,
			"vencimiento": c.Expiration.Format("02/01/2006"),
		},
	})
}

// SweepExpired finishes every contract in execution whose expiration has
// passed and rewrites the description of its notification. It returns how
// many contracts were finished.
func (s *Service) SweepExpired(ctx context.Context) (int, error) {
	finished, err := s.repo.FinishExpired(ctx, term.Date(s.now()))
	if err != nil {
		return 0, fmt.Errorf("finishing expired contracts: %w", err)
	}

	var errs []error

	for _, c := range finished {
		n, err := s.repo.FindByContract(ctx, c.ContractID)
		if errors.Is(err, ErrNotFound) {
			continue
		}

		if err != nil {
			errs = append(errs, fmt.Errorf("contract %s: %w", c.ContractID, err))
			continue
		}

		if err := s.repo.UpdateDescription(ctx, n.ID, expiredDescription(c.Dictamen)); err != nil {
			errs = append(errs, fmt.Errorf("notification %s: %w", n.ID, err))
		}
	}

	if len(finished) > 0 {
		slog.Info("expired contracts finished", "count", len(finished))
	}

	return len(finished), errors.Join(errs...)
}

// ArchiveRead deletes the notifications every role has read.
func (s *Service) ArchiveRead(ctx context.Context) (int64, error) {
	read, err := s.repo.ListRead(ctx)
	if err != nil {
		return 0, fmt.Errorf("listing read notifications: %w", err)
	}

	var ids []uuid.UUID

	for _, n := range read {
		if n.Archivable() {
			ids = append(ids, n.ID)
		}
	}

	if len(ids) == 0 {
		return 0, nil
	}

	n, err := s.repo.DeleteIDs(ctx, ids)
	if err != nil {
		return 0, fmt.Errorf("archiving notifications: %w", err)
	}

	return n, nil
}

// MarkRead sets the actor's read marker on a notification, or every marker
// when CollapseOnRead is enabled.
func (s *Service) MarkRead(ctx context.Context, actor access.Actor, id uuid.UUID) (*Notification, error) {
	scope, err := s.scoper.ScopeFor(ctx, actor)
	if err != nil {
		return nil, err
	}

	n, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !scope.Allows(n.Directorate) {
		return nil, access.ErrForbidden
	}

	flags := FlagsFor(actor.Role)
	if s.cfg.CollapseOnRead {
		flags = AllRead
	}

	if err := s.repo.SetRead(ctx, id, flags); err != nil {
		return nil, fmt.Errorf("marking notification read: %w", err)
	}

	n.ReadByAdmin = n.ReadByAdmin || flags.Admin
	n.ReadByDirector = n.ReadByDirector || flags.Director
	n.ReadBySpecialist = n.ReadBySpecialist || flags.Specialist

	return n, nil
}

// MarkAllRead sets the actor's read marker on every notification in scope.
func (s *Service) MarkAllRead(ctx context.Context, actor access.Actor) (int64, error) {
	scope, err := s.scoper.ScopeFor(ctx, actor)
	if err != nil {
		return 0, err
	}

	return s.repo.MarkAllRead(ctx, FlagsFor(actor.Role), scope)
}

// ListUnread returns the notifications in scope the actor's role has not read.
func (s *Service) ListUnread(ctx context.Context, actor access.Actor) ([]*Notification, error) {
	scope, err := s.scoper.ScopeFor(ctx, actor)
	if err != nil {
		return nil, err
	}

	return s.repo.ListUnread(ctx, FlagsFor(actor.Role), scope)
}

func (s *Service) FindByContract(ctx context.Context, contractID uuid.UUID) (*Notification, error) {
	return s.repo.FindByContract(ctx, contractID)
}

// DeleteByContract removes the contract's notification, if any.
func (s *Service) DeleteByContract(ctx context.Context, contractID uuid.UUID) error {
	return s.repo.DeleteByContract(ctx, contractID)
}
