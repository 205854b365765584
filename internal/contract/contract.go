package contract

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/contratos/internal/apperr"
	"github.com/MrJamesThe3rd/contratos/internal/term"
)

// Status is the lifecycle state of a contract. All transitions are driven by
// users except Ejecución -> Finalizado, which the expiration sweep performs.
type Status string

const (
	StatusPending          Status = "Pendiente"
	StatusApproved         Status = "Aprobado"
	StatusSigned           Status = "Firmado"
	StatusDeliveredToLegal Status = "Entregado a Jurídica"
	StatusInExecution      Status = "Ejecución"
	StatusFinished         Status = "Finalizado"
)

// Valid reports whether s is one of the known states.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusSigned, StatusDeliveredToLegal, StatusInExecution, StatusFinished:
		return true
	}

	return false
}

var (
	ErrNotFound            = apperr.New(apperr.NotFound, "contrato no encontrado")
	ErrDuplicate           = apperr.New(apperr.Conflict, "el registro del contrato ya existe en la dirección")
	ErrStale               = apperr.New(apperr.Conflict, "el contrato fue modificado por otra operación, vuelva a intentarlo")
	ErrPrincipalBelowSpent = apperr.New(apperr.Validation, "el valor del contrato no puede ser menor que el valor gastado")
	ErrFutureReceivedDate  = apperr.New(apperr.Validation, "la fecha de recepción no puede ser mayor a la fecha actual")
	ErrTypeRequired        = apperr.New(apperr.Validation, "el tipo de contrato es obligatorio")
	ErrKeyRequired         = apperr.New(apperr.Validation, "el número de dictamen y la dirección ejecutiva son obligatorios")
	ErrInvalidTerm         = apperr.New(apperr.Validation, "la vigencia no es válida")
	ErrInvalidStatus       = apperr.New(apperr.Validation, "el estado no es válido")
	ErrNegativeAmount      = apperr.New(apperr.Validation, "el valor del contrato no puede ser negativo")
)

// Document references the contract file kept in the external store.
type Document struct {
	Link         string `json:"link"`
	Path         string `json:"path"`
	OriginalName string `json:"original_name"`
}

// AppliedSupplement is an amendment that has been folded into the contract.
// OriginalAmount keeps the amount as first applied for traceability.
type AppliedSupplement struct {
	Name           string           `json:"name"`
	Term           *term.Term       `json:"term,omitempty"`
	Amount         *decimal.Decimal `json:"amount,omitempty"`
	OriginalAmount *decimal.Decimal `json:"original_amount,omitempty"`
	AppliedAt      time.Time        `json:"applied_at"`
}

// Info carries creation and last-modification metadata.
type Info struct {
	CreatedBy  string
	CreatedAt  time.Time
	ModifiedBy string
	ModifiedAt time.Time
}

// Contract is a tracked agreement, unique by (Dictamen, Directorate).
//
// Available always equals Principal - Spent. Expiration is ReceivedDate + Term,
// extended by every applied supplement that carries a term.
type Contract struct {
	ID                   uuid.UUID
	Dictamen             string
	Directorate          string
	Type                 string
	Object               string
	Entity               string
	ReceivedDate         *time.Time
	Principal            *decimal.Decimal
	Available            *decimal.Decimal
	Spent                decimal.Decimal
	Term                 *term.Term
	Expiration           *time.Time
	Status               Status
	ApprovedAt           *time.Time
	SignedAt             *time.Time
	DeliveredToLegalAt   *time.Time
	Document             *Document
	Supplements          []AppliedSupplement
	HasPendingSupplement bool
	Info                 Info
	Version              int
}

// Clone returns a deep copy, so a patched contract can be diffed against the
// stored one.
func (c *Contract) Clone() *Contract {
	cp := *c
	cp.ReceivedDate = cloneTime(c.ReceivedDate)
	cp.Principal = cloneDecimal(c.Principal)
	cp.Available = cloneDecimal(c.Available)
	cp.Expiration = cloneTime(c.Expiration)
	cp.ApprovedAt = cloneTime(c.ApprovedAt)
	cp.SignedAt = cloneTime(c.SignedAt)
	cp.DeliveredToLegalAt = cloneTime(c.DeliveredToLegalAt)

	if c.Term != nil {
		t := *c.Term
		cp.Term = &t
	}

	if c.Document != nil {
		d := *c.Document
		cp.Document = &d
	}

	cp.Supplements = append([]AppliedSupplement(nil), c.Supplements...)

	return &cp
}

// RecomputeAvailable restores Available = Principal - Spent.
func (c *Contract) RecomputeAvailable() {
	if c.Principal == nil {
		c.Available = nil
		return
	}

	a := c.Principal.Sub(c.Spent)
	c.Available = &a
}

// RecomputeExpiration derives the expiration from the received date and term,
// then re-applies the term of every supplement already folded in.
func (c *Contract) RecomputeExpiration() {
	exp := term.Compute(c.ReceivedDate, c.Term)
	for _, s := range c.Supplements {
		exp = term.Extend(exp, s.Term)
	}

	c.Expiration = exp
}

// ApplySupplement folds an amendment into the contract: the term extends the
// current expiration and the amount raises principal and available budget.
func (c *Contract) ApplySupplement(s AppliedSupplement) {
	if s.Term != nil {
		c.Expiration = term.Extend(c.Expiration, s.Term)
	}

	if s.Amount != nil {
		base := decimal.Zero
		if c.Principal != nil {
			base = *c.Principal
		}

		p := base.Add(*s.Amount)
		c.Principal = &p
		c.RecomputeAvailable()
	}

	c.Supplements = append(c.Supplements, s)
}

func (c *Contract) String() string {
	return fmt.Sprintf("%s (%s)", c.Dictamen, c.Directorate)
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}

	v := *t

	return &v
}

func cloneDecimal(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}

	v := *d

	return &v
}
