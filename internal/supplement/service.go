package supplement

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/contratos/internal/access"
	"github.com/MrJamesThe3rd/contratos/internal/audit"
	"github.com/MrJamesThe3rd/contratos/internal/contract"
	"github.com/MrJamesThe3rd/contratos/internal/term"
)

// NotificationWindowDays is how far ahead an expiration must move for a
// consumed supplement to clear the contract's expiration notification.
const NotificationWindowDays = 30

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=supplement
type Repository interface {
	// Create inserts s and marks its contract as having a pending supplement.
	Create(ctx context.Context, s *Supplement) error
	Get(ctx context.Context, id uuid.UUID) (*Supplement, error)
	// ListByContract returns the contract's supplements, newest first.
	ListByContract(ctx context.Context, contractID uuid.UUID) ([]*Supplement, error)
	ListPending(ctx context.Context, scope access.Scope) ([]*Supplement, error)
	Update(ctx context.Context, s *Supplement) error
	// Delete removes the supplement and clears the contract's pending flag
	// when it was the last one.
	Delete(ctx context.Context, id uuid.UUID) error
	SetPending(ctx context.Context, contractID uuid.UUID, pending bool) error

	BeginConsume(ctx context.Context) (ConsumeTx, error)
}

// ConsumeTx folds one supplement into its contract atomically.
type ConsumeTx interface {
	// Contract reads the contract and locks it until the transaction ends.
	Contract(ctx context.Context, id uuid.UUID) (*contract.Contract, error)
	CountByContract(ctx context.Context, contractID uuid.UUID) (int, error)
	SaveContract(ctx context.Context, c *contract.Contract) error
	DeleteSupplement(ctx context.Context, id uuid.UUID) error
	Commit() error
	Rollback() error
}

type ContractReader interface {
	Get(ctx context.Context, id uuid.UUID) (*contract.Contract, error)
}

type NotificationRemover interface {
	DeleteByContract(ctx context.Context, contractID uuid.UUID) error
}

type Service struct {
	repo          Repository
	contracts     ContractReader
	notifications NotificationRemover
	audit         contract.Auditor
	authz         contract.Authorizer
	now           func() time.Time
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(
	repo Repository,
	contracts ContractReader,
	notifications NotificationRemover,
	auditor contract.Auditor,
	authz contract.Authorizer,
	opts ...Option,
) *Service {
	s := &Service{
		repo:          repo,
		contracts:     contracts,
		notifications: notifications,
		audit:         auditor,
		authz:         authz,
		now:           time.Now,
	}

	for _, o := range opts {
		o(s)
	}

	return s
}

type Params struct {
	Name   string
	Term   *term.Term
	Amount *decimal.Decimal
}

// Patch lists the fields to change. Nil fields are left untouched.
type Patch struct {
	Name   *string          `json:"Nombre,omitempty"`
	Term   *term.Term       `json:"Tiempo,omitempty"`
	Amount *decimal.Decimal `json:"Monto,omitempty"`
}

// contractFor loads the contract and checks the actor may act on it.
func (s *Service) contractFor(ctx context.Context, actor access.Actor, contractID uuid.UUID) (*contract.Contract, error) {
	c, err := s.contracts.Get(ctx, contractID)
	if err != nil {
		return nil, err
	}

	if err := s.authz.Authorize(ctx, actor, c.Directorate); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Create(ctx context.Context, actor access.Actor, contractID uuid.UUID, params Params) (*Supplement, error) {
	if _, err := s.contractFor(ctx, actor, contractID); err != nil {
		return nil, err
	}

	now := s.now()

	sup := &Supplement{
		ContractID: contractID,
		Name:       params.Name,
		Term:       params.Term,
		Amount:     params.Amount,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := sup.validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, sup); err != nil {
		return nil, fmt.Errorf("creating supplement: %w", err)
	}

	s.audit.Record(ctx, audit.NewEntry(EntityName, sup.ID, audit.ActionInsert, actor.Name).
		WithNew(display(sup)))

	return sup, nil
}

// ListByContract returns the contract's pending supplements, newest first.
// When there are none left the contract's pending flag is reconciled.
func (s *Service) ListByContract(ctx context.Context, actor access.Actor, contractID uuid.UUID) ([]*Supplement, error) {
	c, err := s.contractFor(ctx, actor, contractID)
	if err != nil {
		return nil, err
	}

	sups, err := s.repo.ListByContract(ctx, contractID)
	if err != nil {
		return nil, fmt.Errorf("listing supplements: %w", err)
	}

	if len(sups) == 0 && c.HasPendingSupplement {
		if err := s.repo.SetPending(ctx, contractID, false); err != nil {
			return nil, fmt.Errorf("clearing pending flag: %w", err)
		}
	}

	return sups, nil
}

// ListPending returns every supplement awaiting consumption in the actor's scope.
func (s *Service) ListPending(ctx context.Context, actor access.Actor) ([]*Supplement, error) {
	scope, err := s.authz.ScopeFor(ctx, actor)
	if err != nil {
		return nil, err
	}

	return s.repo.ListPending(ctx, scope)
}

func (s *Service) Update(ctx context.Context, actor access.Actor, id uuid.UUID, patch Patch) (*Supplement, error) {
	sup, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := s.contractFor(ctx, actor, sup.ContractID); err != nil {
		return nil, err
	}

	if patch.Name != nil {
		sup.Name = *patch.Name
	}

	if patch.Term != nil {
		sup.Term = patch.Term
	}

	if patch.Amount != nil {
		sup.Amount = patch.Amount
	}

	if err := sup.validate(); err != nil {
		return nil, err
	}

	sup.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, sup); err != nil {
		return nil, fmt.Errorf("updating supplement: %w", err)
	}

	s.audit.Record(ctx, audit.NewEntry(EntityName, sup.ID, audit.ActionUpdate, actor.Name).
		WithOld(patch).
		WithNew(display(sup)))

	return sup, nil
}

func (s *Service) Delete(ctx context.Context, actor access.Actor, id uuid.UUID) error {
	sup, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}

	if _, err := s.contractFor(ctx, actor, sup.ContractID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting supplement: %w", err)
	}

	s.audit.Record(ctx, audit.NewEntry(EntityName, sup.ID, audit.ActionDelete, actor.Name).
		WithOld(display(sup)))

	return nil
}

// Consume applies the supplement to its contract and removes it. The contract
// write and the supplement delete commit together; a missing supplement leaves
// the contract untouched.
func (s *Service) Consume(ctx context.Context, actor access.Actor, id uuid.UUID) (*contract.Contract, error) {
	sup, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	tx, err := s.repo.BeginConsume(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin consume: %w", err)
	}
	defer tx.Rollback()

	c, err := tx.Contract(ctx, sup.ContractID)
	if err != nil {
		return nil, err
	}

	if err := s.authz.Authorize(ctx, actor, c.Directorate); err != nil {
		return nil, err
	}

	pending, err := tx.CountByContract(ctx, c.ID)
	if err != nil {
		return nil, fmt.Errorf("counting supplements: %w", err)
	}

	now := s.now()
	before := contract.Snapshot(c)

	c.ApplySupplement(sup.Applied(now))
	c.HasPendingSupplement = pending > 1
	c.Info.ModifiedBy = actor.Name
	c.Info.ModifiedAt = now

	if err := tx.SaveContract(ctx, c); err != nil {
		return nil, fmt.Errorf("saving contract: %w", err)
	}

	if err := tx.DeleteSupplement(ctx, sup.ID); err != nil {
		return nil, fmt.Errorf("deleting consumed supplement: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit consume: %w", err)
	}

	if c.Expiration != nil && term.DaysBetween(now, *c.Expiration) > NotificationWindowDays {
		if err := s.notifications.DeleteByContract(ctx, c.ID); err != nil {
			slog.Error("failed to clear expiration notification", "contract_id", c.ID, "error", err)
		}
	}

	oldVals, newVals := contract.Diff(before, contract.Snapshot(c))
	newVals["Suplemento"] = &sup.Name

	s.audit.Record(ctx, audit.NewEntry(EntityName, sup.ID, audit.ActionUse, actor.Name).
		WithOld(display(sup)))
	s.audit.Record(ctx, audit.NewEntry(contract.EntityName, c.ID, audit.ActionUpdate, actor.Name).
		WithOld(map[string]any{"Valores_anteriores": oldVals}).
		WithNew(map[string]any{"Valores_nuevos": newVals}))

	return c, nil
}
