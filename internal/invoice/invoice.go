// Package invoice records spend (facturas) against a contract's budget.
package invoice

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/contratos/internal/apperr"
	"github.com/MrJamesThe3rd/contratos/internal/contract"
)

const EntityName = "facturas"

var (
	ErrNotFound          = apperr.New(apperr.NotFound, "factura no encontrada")
	ErrNumberRequired    = apperr.New(apperr.Validation, "el número de factura es obligatorio")
	ErrNonPositiveAmount = apperr.New(apperr.Validation, "el monto de la factura debe ser mayor que cero")
	ErrExceedsAvailable  = apperr.New(apperr.Validation, "el monto de la factura supera el valor disponible del contrato")
	ErrNoBudget          = apperr.New(apperr.Validation, "el contrato no tiene valor asignado")
)

// Invoice is an amount billed against a contract. Registering one moves the
// amount from the contract's available budget to its spent total.
type Invoice struct {
	ID          uuid.UUID
	ContractID  uuid.UUID
	Number      string
	Amount      decimal.Decimal
	Date        time.Time
	Description string
	CreatedAt   time.Time
}

type view struct {
	Numero      string  `json:"Numero_Factura"`
	Monto       *string `json:"Monto"`
	Fecha       *string `json:"Fecha"`
	Descripcion string  `json:"Descripcion,omitempty"`
	Contrato    string  `json:"Contrato"`
}

func display(inv *Invoice) view {
	return view{
		Numero:      inv.Number,
		Monto:       contract.FormatMoney(&inv.Amount),
		Fecha:       contract.FormatDate(&inv.Date),
		Descripcion: inv.Description,
		Contrato:    inv.ContractID.String(),
	}
}
