package supplement

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	contracthttp "github.com/MrJamesThe3rd/contratos/internal/http/contract"
	"github.com/MrJamesThe3rd/contratos/internal/http/httpx"
	"github.com/MrJamesThe3rd/contratos/internal/supplement"
	"github.com/MrJamesThe3rd/contratos/internal/term"
)

type Handler struct {
	svc *supplement.Service
}

func NewHandler(svc *supplement.Service) *Handler {
	return &Handler{svc: svc}
}

// ContractRoutes mounts under /contracts/{id}/supplements.
func (h *Handler) ContractRoutes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.listByContract)
}

// Routes mounts under /supplements.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/pending", h.listPending)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Post("/{id}/consume", h.consume)
}

type supplementRequest struct {
	Name   string           `json:"name" validate:"required"`
	Term   *term.Term       `json:"term"`
	Amount *decimal.Decimal `json:"amount"`
}

type patchRequest struct {
	Name   *string          `json:"name" validate:"omitempty,min=1"`
	Term   *term.Term       `json:"term"`
	Amount *decimal.Decimal `json:"amount"`
}

type supplementResponse struct {
	ID         uuid.UUID        `json:"id"`
	ContractID uuid.UUID        `json:"contract_id"`
	Name       string           `json:"name"`
	Term       *term.Term       `json:"term,omitempty"`
	Amount     *decimal.Decimal `json:"amount,omitempty"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

func toResponse(s *supplement.Supplement) supplementResponse {
	return supplementResponse{
		ID:         s.ID,
		ContractID: s.ContractID,
		Name:       s.Name,
		Term:       s.Term,
		Amount:     s.Amount,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

func toResponseList(ss []*supplement.Supplement) []supplementResponse {
	resp := make([]supplementResponse, len(ss))
	for i, s := range ss {
		resp[i] = toResponse(s)
	}

	return resp
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

	var req supplementRequest
	if err := httpx.Decode(r.Body, &req); err != nil {
		httpx.BadRequest(w, err.Error())
		return
	}

	s, err := h.svc.Create(r.Context(), actor, contractID, supplement.Params{Name: req.Name, Term: req.Term, Amount: req.Amount})
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, toResponse(s))
}

func (h *Handler) listByContract(w http.ResponseWriter, r *http.Request) {
	actor, ok := httpx.Actor(w, r)
	if !ok {
		return
	}

	contractID, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.BadRequest(w, err.Error())
		return
	}

	ss, err := h.svc.ListByContract(r.Context(), actor, contractID)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toResponseList(ss))
}

func (h *Handler) listPending(w http.ResponseWriter, r *http.Request) {
	actor, ok := httpx.Actor(w, r)
	if !ok {
		return
	}

	ss, err := h.svc.ListPending(r.Context(), actor)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toResponseList(ss))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	actor, ok := httpx.Actor(w, r)
	if !ok {
		return
	}

	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.BadRequest(w, err.Error())
		return
	}

	var req patchRequest
	if err := httpx.Decode(r.Body, &req); err != nil {
		httpx.BadRequest(w, err.Error())
		return
	}

	s, err := h.svc.Update(r.Context(), actor, id, supplement.Patch{Name: req.Name, Term: req.Term, Amount: req.Amount})
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toResponse(s))
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

// consume applies the supplement to its contract and returns the contract.
func (h *Handler) consume(w http.ResponseWriter, r *http.Request) {
	actor, ok := httpx.Actor(w, r)
	if !ok {
		return
	}

	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.BadRequest(w, err.Error())
		return
	}

	c, err := h.svc.Consume(r.Context(), actor, id)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusOK, contracthttp.ToResponse(c))
}
