package notification

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/contratos/internal/http/httpx"
	"github.com/MrJamesThe3rd/contratos/internal/notification"
)

type Handler struct {
	svc *notification.Service
}

func NewHandler(svc *notification.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.listUnread)
	r.Patch("/read", h.markAllRead)
	r.Patch("/{id}/read", h.markRead)
}

type notificationResponse struct {
	ID               uuid.UUID        `json:"id"`
	Description      string           `json:"description"`
	Directorate      string           `json:"directorate"`
	ContractID       uuid.UUID        `json:"contract_id"`
	Expiration       *string          `json:"expiration,omitempty"`
	Entity           string           `json:"entity,omitempty"`
	Available        *decimal.Decimal `json:"available,omitempty"`
	ReadByAdmin      bool             `json:"read_by_admin"`
	ReadByDirector   bool             `json:"read_by_director"`
	ReadBySpecialist bool             `json:"read_by_specialist"`
	CreatedAt        time.Time        `json:"created_at"`
}

type markAllResponse struct {
	Updated int64 `json:"updated"`
}

func toResponse(n *notification.Notification) notificationResponse {
	resp := notificationResponse{
		ID:               n.ID,
		Description:      n.Description,
		Directorate:      n.Directorate,
		ContractID:       n.ContractID,
		Entity:           n.Entity,
		Available:        n.Available,
		ReadByAdmin:      n.ReadByAdmin,
		ReadByDirector:   n.ReadByDirector,
		ReadBySpecialist: n.ReadBySpecialist,
		CreatedAt:        n.CreatedAt,
	}

	if n.Expiration != nil {
		resp.Expiration = new(n.Expiration.Format(time.DateOnly))
	}

	return resp
}

func (h *Handler) listUnread(w http.ResponseWriter, r *http.Request) {
	actor, ok := httpx.Actor(w, r)
	if !ok {
		return
	}

	ns, err := h.svc.ListUnread(r.Context(), actor)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	resp := make([]notificationResponse, len(ns))
	for i, n := range ns {
		resp[i] = toResponse(n)
	}

	httpx.JSON(w, http.StatusOK, resp)
}

func (h *Handler) markRead(w http.ResponseWriter, r *http.Request) {
	actor, ok := httpx.Actor(w, r)
	if !ok {
		return
	}

	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.BadRequest(w, err.Error())
		return
	}

	n, err := h.svc.MarkRead(r.Context(), actor, id)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toResponse(n))
}

func (h *Handler) markAllRead(w http.ResponseWriter, r *http.Request) {
	actor, ok := httpx.Actor(w, r)
	if !ok {
		return
	}

	n, err := h.svc.MarkAllRead(r.Context(), actor)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusOK, markAllResponse{Updated: n})
}
