package contract

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/contratos/internal/contract"
	"github.com/MrJamesThe3rd/contratos/internal/term"
)

type documentResponse struct {
	Link         string `json:"link"`
	OriginalName string `json:"original_name,omitempty"`
}

type supplementResponse struct {
	Name      string           `json:"name"`
	Term      *term.Term       `json:"term,omitempty"`
	Amount    *decimal.Decimal `json:"amount,omitempty"`
	AppliedAt time.Time        `json:"applied_at"`
}

type Response struct {
	ID                   uuid.UUID            `json:"id"`
	Dictamen             string               `json:"dictamen"`
	Directorate          string               `json:"directorate"`
	Type                 string               `json:"type"`
	Object               string               `json:"object"`
	Entity               string               `json:"entity"`
	ReceivedDate         *string              `json:"received_date,omitempty"`
	Principal            *decimal.Decimal     `json:"principal,omitempty"`
	Available            *decimal.Decimal     `json:"available,omitempty"`
	Spent                decimal.Decimal      `json:"spent"`
	Term                 *term.Term           `json:"term,omitempty"`
	TermLabel            string               `json:"term_label,omitempty"`
	Expiration           *string              `json:"expiration,omitempty"`
	Status               contract.Status      `json:"status"`
	ApprovedAt           *string              `json:"approved_at,omitempty"`
	SignedAt             *string              `json:"signed_at,omitempty"`
	DeliveredToLegalAt   *string              `json:"delivered_to_legal_at,omitempty"`
	Document             *documentResponse    `json:"document,omitempty"`
	Supplements          []supplementResponse `json:"supplements"`
	HasPendingSupplement bool                 `json:"has_pending_supplement"`
	CreatedBy            string               `json:"created_by"`
	CreatedAt            time.Time            `json:"created_at"`
	ModifiedBy           string               `json:"modified_by,omitempty"`
	ModifiedAt           time.Time            `json:"modified_at"`
	Version              int                  `json:"version"`
}

func date(t *time.Time) *string {
	if t == nil {
		return nil
	}

	return new(t.Format(time.DateOnly))
}

// ToResponse renders a contract for the API. The consume endpoint returns
// contracts too.
func ToResponse(c *contract.Contract) Response {
	resp := Response{
		ID:                   c.ID,
		Dictamen:             c.Dictamen,
		Directorate:          c.Directorate,
		Type:                 c.Type,
		Object:               c.Object,
		Entity:               c.Entity,
		ReceivedDate:         date(c.ReceivedDate),
		Principal:            c.Principal,
		Available:            c.Available,
		Spent:                c.Spent,
		Term:                 c.Term,
		Expiration:           date(c.Expiration),
		Status:               c.Status,
		ApprovedAt:           date(c.ApprovedAt),
		SignedAt:             date(c.SignedAt),
		DeliveredToLegalAt:   date(c.DeliveredToLegalAt),
		Supplements:          make([]supplementResponse, len(c.Supplements)),
		HasPendingSupplement: c.HasPendingSupplement,
		CreatedBy:            c.Info.CreatedBy,
		CreatedAt:            c.Info.CreatedAt,
		ModifiedBy:           c.Info.ModifiedBy,
		ModifiedAt:           c.Info.ModifiedAt,
		Version:              c.Version,
	}

	if c.Term != nil {
		resp.TermLabel = c.Term.Label()
	}

	if c.Document != nil {
		resp.Document = &documentResponse{Link: c.Document.Link, OriginalName: c.Document.OriginalName}
	}

	for i, s := range c.Supplements {
		resp.Supplements[i] = supplementResponse{Name: s.Name, Term: s.Term, Amount: s.Amount, AppliedAt: s.AppliedAt}
	}

	return resp
}

func ToResponseList(cs []*contract.Contract) []Response {
	resp := make([]Response, len(cs))
	for i, c := range cs {
		resp[i] = ToResponse(c)
	}

	return resp
}
