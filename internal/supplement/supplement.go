// Package supplement manages contract amendments: pending supplements that
// extend a contract's term or budget once they are consumed.
package supplement

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/contratos/internal/apperr"
	"github.com/MrJamesThe3rd/contratos/internal/contract"
	"github.com/MrJamesThe3rd/contratos/internal/term"
)

// EntityName is the ledger name for supplement entries.
const EntityName = "suplementos"

var (
	ErrNotFound          = apperr.New(apperr.NotFound, "suplemento no encontrado")
	ErrNameRequired      = apperr.New(apperr.Validation, "el nombre del suplemento es obligatorio")
	ErrEmpty             = apperr.New(apperr.Validation, "el suplemento debe indicar un tiempo o un monto")
	ErrInvalidTerm       = apperr.New(apperr.Validation, "el tiempo del suplemento no es válido")
	ErrNonPositiveAmount = apperr.New(apperr.Validation, "el monto del suplemento debe ser mayor que cero")
)

// Supplement is a pending amendment of a contract.
type Supplement struct {
	ID         uuid.UUID
	ContractID uuid.UUID
	Name       string
	Term       *term.Term
	Amount     *decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (s *Supplement) validate() error {
	if s.Name == "" {
		return ErrNameRequired
	}

	if s.Term == nil && s.Amount == nil {
		return ErrEmpty
	}

	if s.Term != nil {
		if err := s.Term.Validate(); err != nil {
			return apperr.Wrap(apperr.Validation, ErrInvalidTerm.Msg, err)
		}
	}

	if s.Amount != nil && !s.Amount.IsPositive() {
		return ErrNonPositiveAmount
	}

	return nil
}

// Applied is the record folded into the contract when s is consumed.
func (s *Supplement) Applied(at time.Time) contract.AppliedSupplement {
	a := contract.AppliedSupplement{
		Name:      s.Name,
		Term:      s.Term,
		AppliedAt: at,
	}

	if s.Amount != nil {
		amount := *s.Amount
		original := *s.Amount
		a.Amount = &amount
		a.OriginalAmount = &original
	}

	return a
}

// view is the ledger representation of a supplement.
type view struct {
	Nombre   string  `json:"Nombre"`
	Tiempo   *string `json:"Tiempo"`
	Monto    *string `json:"Monto"`
	Contrato string  `json:"Contrato"`
}

func display(s *Supplement) view {
	v := view{
		Nombre:   s.Name,
		Monto:    contract.FormatMoney(s.Amount),
		Contrato: s.ContractID.String(),
	}

	if s.Term != nil {
		label := s.Term.Label()
		v.Tiempo = &label
	}

	return v
}
