package contract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/contratos/internal/access"
	"github.com/MrJamesThe3rd/contratos/internal/apperr"
	"github.com/MrJamesThe3rd/contratos/internal/audit"
	"github.com/MrJamesThe3rd/contratos/internal/document"
	"github.com/MrJamesThe3rd/contratos/internal/term"
)

// EntityName is the ledger name for contract entries.
const EntityName = "contratos"

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=contract
type Repository interface {
	Create(ctx context.Context, c *Contract) error
	Get(ctx context.Context, id uuid.UUID) (*Contract, error)
	// FindByKey returns ErrNotFound when no contract has the given identity.
	FindByKey(ctx context.Context, dictamen, directorate string) (*Contract, error)
	// Update writes c when its Version still matches the stored one and
	// increments it; otherwise it returns ErrStale.
	Update(ctx context.Context, c *Contract) error
	List(ctx context.Context, criteria Criteria, scope access.Scope) ([]*Contract, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteInvoices(ctx context.Context, contractID uuid.UUID) error
}

// NotificationRemover drops the expiration notification of a contract.
type NotificationRemover interface {
	DeleteByContract(ctx context.Context, contractID uuid.UUID) error
}

type Auditor interface {
	Record(ctx context.Context, e audit.Entry)
}

type Authorizer interface {
	ScopeFor(ctx context.Context, actor access.Actor) (access.Scope, error)
	Authorize(ctx context.Context, actor access.Actor, directorates ...string) error
}

type Service struct {
	repo          Repository
	notifications NotificationRemover
	docs          document.Store
	audit         Auditor
	authz         Authorizer
	now           func() time.Time
}

type Option func(*Service)

// WithClock replaces the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(
	repo Repository,
	notifications NotificationRemover,
	docs document.Store,
	auditor Auditor,
	authz Authorizer,
	opts ...Option,
) *Service {
	s := &Service{
		repo:          repo,
		notifications: notifications,
		docs:          docs,
		audit:         auditor,
		authz:         authz,
		now:           time.Now,
	}

	for _, o := range opts {
		o(s)
	}

	return s
}

type RegisterParams struct {
	Dictamen           string
	Directorate        string
	Type               string
	Object             string
	Entity             string
	ReceivedDate       *time.Time
	Principal          *decimal.Decimal
	Term               *term.Term
	Status             Status
	ApprovedAt         *time.Time
	SignedAt           *time.Time
	DeliveredToLegalAt *time.Time
}

// Patch lists the fields to change. Nil fields are left untouched.
type Patch struct {
	Dictamen           *string
	Directorate        *string
	Type               *string
	Object             *string
	Entity             *string
	ReceivedDate       *time.Time
	Principal          *decimal.Decimal
	Term               *term.Term
	Status             *Status
	ApprovedAt         *time.Time
	SignedAt           *time.Time
	DeliveredToLegalAt *time.Time
	// Version, when set, must match the stored version.
	Version *int
}

// Criteria filters contracts. Type is required; the rest narrow the result.
type Criteria struct {
	Type        string
	Status      *Status
	Directorate string
	Entity      string
}

// CascadeError reports the delete step that failed. Steps before it have
// already been applied.
type CascadeError struct {
	Step string
	Err  error
}

func (e *CascadeError) Error() string {
	return fmt.Sprintf("deleting contract (%s): %v", e.Step, e.Err)
}

func (e *CascadeError) Unwrap() error { return e.Err }

const (
	StepInvoices     = "invoices"
	StepNotification = "notification"
	StepDocument     = "document"
	StepContract     = "contract"
)

func (s *Service) Register(ctx context.Context, actor access.Actor, params RegisterParams, file *document.File) (*Contract, error) {
	if params.Status == "" {
		params.Status = StatusPending
	}

	if err := s.validateRegister(params); err != nil {
		return nil, err
	}

	if err := s.authz.Authorize(ctx, actor, params.Directorate); err != nil {
		return nil, err
	}

	if err := s.ensureUnique(ctx, params.Dictamen, params.Directorate, uuid.Nil); err != nil {
		return nil, err
	}

	now := s.now()

	c := &Contract{
		Dictamen:           params.Dictamen,
		Directorate:        params.Directorate,
		Type:               params.Type,
		Object:             params.Object,
		Entity:             params.Entity,
		ReceivedDate:       params.ReceivedDate,
		Principal:          params.Principal,
		Term:               params.Term,
		Status:             params.Status,
		ApprovedAt:         params.ApprovedAt,
		SignedAt:           params.SignedAt,
		DeliveredToLegalAt: params.DeliveredToLegalAt,
		Info: Info{
			CreatedBy:  actor.Name,
			CreatedAt:  now,
			ModifiedBy: actor.Name,
			ModifiedAt: now,
		},
	}

	// Expiration is only known once the contract has a value.
	if c.Principal != nil {
		c.RecomputeAvailable()
		c.Expiration = term.Compute(c.ReceivedDate, c.Term)
	}

	if file != nil {
		stored, link, err := document.Put(ctx, s.docs, *file, now)
		if err != nil {
			return nil, err
		}

		c.Document = &Document{Link: link, Path: stored.Path, OriginalName: file.Name}
	}

	if err := s.repo.Create(ctx, c); err != nil {
		if c.Document != nil {
			s.discard(ctx, c.Document.Path)
		}

		return nil, fmt.Errorf("creating contract: %w", err)
	}

	s.audit.Record(ctx, audit.NewEntry(EntityName, c.ID, audit.ActionInsert, actor.Name).
		WithNew(Snapshot(c).Compact()))

	return c, nil
}

func (s *Service) validateRegister(p RegisterParams) error {
	if p.Dictamen == "" || p.Directorate == "" {
		return ErrKeyRequired
	}

	if p.Type == "" {
		return ErrTypeRequired
	}

	if !p.Status.Valid() {
		return ErrInvalidStatus
	}

	if p.Term != nil {
		if err := p.Term.Validate(); err != nil {
			return apperr.Wrap(apperr.Validation, ErrInvalidTerm.Msg, err)
		}
	}

	if p.Principal != nil && p.Principal.IsNegative() {
		return ErrNegativeAmount
	}

	return s.checkReceivedDate(p.ReceivedDate)
}

func (s *Service) checkReceivedDate(d *time.Time) error {
	if d != nil && term.Date(*d).After(term.Date(s.now())) {
		return ErrFutureReceivedDate
	}

	return nil
}

// ensureUnique fails with a Conflict when another contract than self already
// uses the (dictamen, directorate) identity.
func (s *Service) ensureUnique(ctx context.Context, dictamen, directorate string, self uuid.UUID) error {
	existing, err := s.repo.FindByKey(ctx, dictamen, directorate)
	if errors.Is(err, ErrNotFound) {
		return nil
	}

	if err != nil {
		return fmt.Errorf("checking duplicate: %w", err)
	}

	if existing.ID == self {
		return nil
	}

	return &apperr.Error{
		Kind: apperr.Conflict,
		Msg:  fmt.Sprintf("El registro del contrato %s ya existe en la %s", dictamen, directorate),
		Err:  ErrDuplicate,
	}
}

// Update applies patch and, when file is set, replaces the contract document.
// The new document is stored before the contract is written and the old one
// is removed only after the write succeeds.
func (s *Service) Update(ctx context.Context, actor access.Actor, id uuid.UUID, patch Patch, file *document.File) (*Contract, error) {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	targets := []string{current.Directorate}
	if patch.Directorate != nil && *patch.Directorate != current.Directorate {
		targets = append(targets, *patch.Directorate)
	}

	if err := s.authz.Authorize(ctx, actor, targets...); err != nil {
		return nil, err
	}

	if patch.Version != nil && *patch.Version != current.Version {
		return nil, ErrStale
	}

	updated, err := s.apply(current, patch)
	if err != nil {
		return nil, err
	}

	if updated.Dictamen != current.Dictamen || updated.Directorate != current.Directorate {
		if err := s.ensureUnique(ctx, updated.Dictamen, updated.Directorate, current.ID); err != nil {
			return nil, err
		}
	}

	oldVals, newVals := Diff(Snapshot(current), Snapshot(updated))
	if len(newVals) == 0 && file == nil {
		return current, nil
	}

	now := s.now()

	if file != nil {
		stored, link, err := document.Put(ctx, s.docs, *file, now)
		if err != nil {
			return nil, err
		}

		updated.Document = &Document{Link: link, Path: stored.Path, OriginalName: file.Name}
		oldVals["Documento"] = documentName(current.Document)
		newVals["Documento"] = documentName(updated.Document)
	}

	updated.Info.ModifiedBy = actor.Name
	updated.Info.ModifiedAt = now

	if err := s.repo.Update(ctx, updated); err != nil {
		if file != nil {
			s.discard(ctx, updated.Document.Path)
		}

		return nil, fmt.Errorf("updating contract: %w", err)
	}

	if file != nil && current.Document != nil && current.Document.Path != "" {
		s.discard(ctx, current.Document.Path)
	}

	s.audit.Record(ctx, audit.NewEntry(EntityName, updated.ID, audit.ActionUpdate, actor.Name).
		WithOld(map[string]any{"Valores_anteriores": oldVals}).
		WithNew(map[string]any{"Valores_nuevos": newVals}))

	return updated, nil
}

func (s *Service) apply(current *Contract, p Patch) (*Contract, error) {
	c := current.Clone()

	if p.Dictamen != nil {
		c.Dictamen = *p.Dictamen
	}

	if p.Directorate != nil {
		c.Directorate = *p.Directorate
	}

	if c.Dictamen == "" || c.Directorate == "" {
		return nil, ErrKeyRequired
	}

	if p.Type != nil {
		if *p.Type == "" {
			return nil, ErrTypeRequired
		}

		c.Type = *p.Type
	}

	if p.Object != nil {
		c.Object = *p.Object
	}

	if p.Entity != nil {
		c.Entity = *p.Entity
	}

	if p.Status != nil {
		if !p.Status.Valid() {
			return nil, ErrInvalidStatus
		}

		c.Status = *p.Status
	}

	if p.ApprovedAt != nil {
		c.ApprovedAt = p.ApprovedAt
	}

	if p.SignedAt != nil {
		c.SignedAt = p.SignedAt
	}

	if p.DeliveredToLegalAt != nil {
		c.DeliveredToLegalAt = p.DeliveredToLegalAt
	}

	if p.Principal != nil {
		if p.Principal.IsNegative() {
			return nil, ErrNegativeAmount
		}

		if p.Principal.LessThan(c.Spent) {
			return nil, ErrPrincipalBelowSpent
		}

		c.Principal = p.Principal
		c.RecomputeAvailable()
	}

	reschedule := false

	if p.ReceivedDate != nil {
		if err := s.checkReceivedDate(p.ReceivedDate); err != nil {
			return nil, err
		}

		c.ReceivedDate = p.ReceivedDate
		reschedule = true
	}

	if p.Term != nil {
		if err := p.Term.Validate(); err != nil {
			return nil, apperr.Wrap(apperr.Validation, ErrInvalidTerm.Msg, err)
		}

		c.Term = p.Term
		reschedule = true
	}

	if reschedule {
		c.RecomputeExpiration()
	}

	return c, nil
}

// Delete removes a contract and everything hanging off it, in order:
// invoices, notification, stored document, then the contract itself. The
// DELETE ledger entry is written before the contract row goes away.
func (s *Service) Delete(ctx context.Context, actor access.Actor, id uuid.UUID) error {
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.authz.Authorize(ctx, actor, c.Directorate); err != nil {
		return err
	}

	if err := s.repo.DeleteInvoices(ctx, id); err != nil {
		return &CascadeError{Step: StepInvoices, Err: err}
	}

	if err := s.notifications.DeleteByContract(ctx, id); err != nil {
		return &CascadeError{Step: StepNotification, Err: err}
	}

	if c.Document != nil && c.Document.Path != "" {
		if err := document.Remove(ctx, s.docs, c.Document.Path); err != nil {
			return &CascadeError{Step: StepDocument, Err: err}
		}
	}

	s.audit.Record(ctx, audit.NewEntry(EntityName, c.ID, audit.ActionDelete, actor.Name).
		WithOld(Snapshot(c)))

	if err := s.repo.Delete(ctx, id); err != nil {
		return &CascadeError{Step: StepContract, Err: err}
	}

	slog.Info("contract deleted", "contract", c.String(), "by", actor.Name)

	return nil
}

// Filter lists the contracts of a type visible to the actor.
func (s *Service) Filter(ctx context.Context, actor access.Actor, criteria Criteria) ([]*Contract, error) {
	if criteria.Type == "" {
		return nil, ErrTypeRequired
	}

	if criteria.Status != nil && !criteria.Status.Valid() {
		return nil, ErrInvalidStatus
	}

	scope, err := s.authz.ScopeFor(ctx, actor)
	if err != nil {
		return nil, err
	}

	if criteria.Directorate != "" && !scope.Allows(criteria.Directorate) {
		return nil, access.ErrForbidden
	}

	return s.repo.List(ctx, criteria, scope)
}

// ListByType lists every visible contract of a type.
func (s *Service) ListByType(ctx context.Context, actor access.Actor, contractType string) ([]*Contract, error) {
	return s.Filter(ctx, actor, Criteria{Type: contractType})
}

func (s *Service) Get(ctx context.Context, actor access.Actor, id uuid.UUID) (*Contract, error) {
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.authz.Authorize(ctx, actor, c.Directorate); err != nil {
		return nil, err
	}

	return c, nil
}

// discard removes a stored object that is no longer referenced. Failures leave
// an orphan behind and are only logged.
func (s *Service) discard(ctx context.Context, path string) {
	if err := s.docs.Delete(ctx, path); err != nil {
		slog.Error("failed to remove orphaned document", "path", path, "error", err)
	}
}

func documentName(d *Document) *string {
	if d == nil {
		return nil
	}

	return &d.OriginalName
}
