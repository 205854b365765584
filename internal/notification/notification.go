// Package notification raises and maintains the expiration notices shown to
// admins, directors and specialists.
package notification

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/contratos/internal/access"
	"github.com/MrJamesThe3rd/contratos/internal/apperr"
)

var ErrNotFound = apperr.New(apperr.NotFound, "notificación no encontrada")

// Notification warns about one contract. A contract has at most one.
type Notification struct {
	ID               uuid.UUID
	Description      string
	Directorate      string
	ContractID       uuid.UUID
	Expiration       *time.Time
	Entity           string
	Available        *decimal.Decimal
	ReadByAdmin      bool
	ReadByDirector   bool
	ReadBySpecialist bool
	CreatedAt        time.Time
}

// Archivable reports whether every role has read the notification.
func (n *Notification) Archivable() bool {
	return n.ReadByAdmin && n.ReadByDirector && n.ReadBySpecialist
}

// Candidate is a contract picked up by a sweep.
type Candidate struct {
	ContractID  uuid.UUID
	Dictamen    string
	Directorate string
	Entity      string
	Expiration  time.Time
	Available   *decimal.Decimal
}

// ReadFlags selects which read markers to set.
type ReadFlags struct {
	Admin      bool
	Director   bool
	Specialist bool
}

// AllRead sets every marker.
var AllRead = ReadFlags{Admin: true, Director: true, Specialist: true}

// FlagsFor returns the marker owned by role.
func FlagsFor(role access.Role) ReadFlags {
	switch role {
	case access.RoleAdmin:
		return ReadFlags{Admin: true}
	case access.RoleDirector:
		return ReadFlags{Director: true}
	case access.RoleSpecialist:
		return ReadFlags{Specialist: true}
	}

	return ReadFlags{}
}

func expiringDescription(dictamen string) string {
	return fmt.Sprintf("El contrato %s está por vencer.", dictamen)
}

func expiredDescription(dictamen string) string {
	return fmt.Sprintf("El contrato %s ha finalizado su tiempo de contratación", dictamen)
}

// Email is an outgoing message rendered by the mail worker from Template.
type Email struct {
	To       []string       `json:"to"`
	Template string         `json:"template"`
	Data     map[string]any `json:"data"`
}

const expiringTemplate = "contrato_por_vencer"
