package invoice

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/contratos/internal/access"
	"github.com/MrJamesThe3rd/contratos/internal/audit"
	"github.com/MrJamesThe3rd/contratos/internal/contract"
	"github.com/MrJamesThe3rd/contratos/internal/term"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=invoice
type Repository interface {
	// Create inserts inv and moves its amount from the contract's available
	// budget to spent in one transaction. It fails with ErrExceedsAvailable
	// when the locked contract no longer has enough budget.
	Create(ctx context.Context, inv *Invoice) error
	Get(ctx context.Context, id uuid.UUID) (*Invoice, error)
	ListByContract(ctx context.Context, contractID uuid.UUID) ([]*Invoice, error)
	// Delete removes the invoice and returns its amount to the contract.
	Delete(ctx context.Context, id uuid.UUID) error
}

type ContractReader interface {
	Get(ctx context.Context, id uuid.UUID) (*contract.Contract, error)
}

type Service struct {
	repo      Repository
	contracts ContractReader
	audit     contract.Auditor
	authz     contract.Authorizer
	now       func() time.Time
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(repo Repository, contracts ContractReader, auditor contract.Auditor, authz contract.Authorizer, opts ...Option) *Service {
	s := &Service{
		repo:      repo,
		contracts: contracts,
		audit:     auditor,
		authz:     authz,
		now:       time.Now,
	}

	for _, o := range opts {
		o(s)
	}

	return s
}

type Params struct {
	Number      string
	Amount      decimal.Decimal
	Date        time.Time
	Description string
}

func (s *Service) contractFor(ctx context.Context, actor access.Actor, id uuid.UUID) (*contract.Contract, error) {
	c, err := s.contracts.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.authz.Authorize(ctx, actor, c.Directorate); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Register(ctx context.Context, actor access.Actor, contractID uuid.UUID, params Params) (*Invoice, error) {
	if params.Number == "" {
		return nil, ErrNumberRequired
	}

	if !params.Amount.IsPositive() {
		return nil, ErrNonPositiveAmount
	}

	c, err := s.contractFor(ctx, actor, contractID)
	if err != nil {
		return nil, err
	}

	if c.Available == nil {
		return nil, ErrNoBudget
	}

	if params.Amount.GreaterThan(*c.Available) {
		return nil, ErrExceedsAvailable
	}

	date := params.Date
	if date.IsZero() {
		date = term.Date(s.now())
	}

	inv := &Invoice{
		ContractID:  contractID,
		Number:      params.Number,
		Amount:      params.Amount,
		Date:        date,
		Description: params.Description,
		CreatedAt:   s.now(),
	}

	if err := s.repo.Create(ctx, inv); err != nil {
		return nil, fmt.Errorf("registering invoice: %w", err)
	}

	s.audit.Record(ctx, audit.NewEntry(EntityName, inv.ID, audit.ActionInsert, actor.Name).
		WithNew(display(inv)))

	return inv, nil
}

func (s *Service) ListByContract(ctx context.Context, actor access.Actor, contractID uuid.UUID) ([]*Invoice, error) {
	if _, err := s.contractFor(ctx, actor, contractID); err != nil {
		return nil, err
	}

	return s.repo.ListByContract(ctx, contractID)
}

func (s *Service) Delete(ctx context.Context, actor access.Actor, id uuid.UUID) error {
	inv, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}

	if _, err := s.contractFor(ctx, actor, inv.ContractID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting invoice: %w", err)
	}

	s.audit.Record(ctx, audit.NewEntry(EntityName, inv.ID, audit.ActionDelete, actor.Name).
		WithOld(display(inv)))

	return nil
}
