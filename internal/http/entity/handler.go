package entity

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/contratos/internal/entity"
	"github.com/MrJamesThe3rd/contratos/internal/http/httpx"
)

type Handler struct {
	svc *entity.Service
}

func NewHandler(svc *entity.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/suggest", h.suggest)
	r.Post("/", h.learn)
}

type suggestResponse struct {
	Raw       string `json:"raw"`
	Canonical string `json:"canonical"`
}

func (h *Handler) suggest(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("raw")
	if raw == "" {
		httpx.BadRequest(w, "raw query parameter is required")
		return
	}

	canonical, err := h.svc.Suggest(r.Context(), raw)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusOK, suggestResponse{Raw: raw, Canonical: canonical})
}

type learnRequest struct {
	Alias     string `json:"alias" validate:"required"`
	Canonical string `json:"canonical" validate:"required"`
}

func (h *Handler) learn(w http.ResponseWriter, r *http.Request) {
	var req learnRequest
	if err := httpx.Decode(r.Body, &req); err != nil {
		httpx.BadRequest(w, err.Error())
		return
	}

	if err := h.svc.Learn(r.Context(), req.Alias, req.Canonical); err != nil {
		httpx.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
}
