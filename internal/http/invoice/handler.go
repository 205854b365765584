package invoice

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/contratos/internal/http/httpx"
	"github.com/MrJamesThe3rd/contratos/internal/invoice"
)

type Handler struct {
	svc *invoice.Service
}

func NewHandler(svc *invoice.Service) *Handler {
	return &Handler{svc: svc}
}

// ContractRoutes mounts under /contracts/{id}/invoices.
func (h *Handler) ContractRoutes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
}

// Routes mounts under /invoices.
func (h *Handler) Routes(r chi.Router) {
	r.Delete("/{id}", h.delete)
}

type createRequest struct {
	Number      string          `json:"number" validate:"required"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date" validate:"required,datetime=2006-01-02"`
	Description string          `json:"description"`
}

type invoiceResponse struct {
	ID          uuid.UUID       `json:"id"`
	ContractID  uuid.UUID       `json:"contract_id"`
	Number      string          `json:"number"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

func toResponse(inv *invoice.Invoice) invoiceResponse {
	return invoiceResponse{
		ID:          inv.ID,
		ContractID:  inv.ContractID,
		Number:      inv.Number,
		Amount:      inv.Amount,
		Date:        inv.Date.Format(time.DateOnly),
		Description: inv.Description,
		CreatedAt:   inv.CreatedAt,
	}
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	actor, ok := httpx.Actor(w, r)
	if !ok {
		return
	}

	contractID, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.BadRequest(w, err.Error())
		return
	}

	var req createRequest
	if err := httpx.Decode(r.Body, &req); err != nil {
		httpx.BadRequest(w, err.Error())
		return
	}

	date, _ := time.Parse(time.DateOnly, req.Date)

	inv, err := h.svc.Register(r.Context(), actor, contractID, invoice.Params{
		Number:      req.Number,
		Amount:      req.Amount,
		Date:        date,
		Description: req.Description,
	})
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, toResponse(inv))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	actor, ok := httpx.Actor(w, r)
	if !ok {
		return
	}

	contractID, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.BadRequest(w, err.Error())
		return
	}

	invs, err := h.svc.ListByContract(r.Context(), actor, contractID)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	resp := make([]invoiceResponse, len(invs))
	for i, inv := range invs {
		resp[i] = toResponse(inv)
	}

	httpx.JSON(w, http.StatusOK, resp)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := httpx.Actor(w, r)
	if !ok {
		return
	}

	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.BadRequest(w, err.Error())
		return
	}

	if err := h.svc.Delete(r.Context(), actor, id); err != nil {
		httpx.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
