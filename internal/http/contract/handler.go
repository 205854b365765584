package contract

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/contratos/internal/contract"
	"github.com/MrJamesThe3rd/contratos/internal/document"
	"github.com/MrJamesThe3rd/contratos/internal/http/httpx"
	"github.com/MrJamesThe3rd/contratos/internal/term"
)

// A multipart request carries the JSON body in dataField and the file in
// documentField.
const (
	dataField     = "data"
	documentField = "document"
)

type Handler struct {
	svc       *contract.Service
	maxUpload int64
}

func NewHandler(svc *contract.Service, maxUpload int64) *Handler {
	return &Handler{svc: svc, maxUpload: maxUpload}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.register)
	r.Get("/", h.listByType)
	r.Post("/filter", h.filter)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type registerRequest struct {
	Dictamen           string           `json:"dictamen" validate:"required"`
	Directorate        string           `json:"directorate" validate:"required"`
	Type               string           `json:"type" validate:"required"`
	Object             string           `json:"object"`
	Entity             string           `json:"entity"`
	ReceivedDate       *string          `json:"received_date"`
	Principal          *decimal.Decimal `json:"principal"`
	Term               *term.Term       `json:"term"`
	Status             contract.Status  `json:"status"`
	ApprovedAt         *string          `json:"approved_at"`
	SignedAt           *string          `json:"signed_at"`
	DeliveredToLegalAt *string          `json:"delivered_to_legal_at"`
}

type updateRequest struct {
	Dictamen           *string          `json:"dictamen" validate:"omitempty,min=1"`
	Directorate        *string          `json:"directorate" validate:"omitempty,min=1"`
	Type               *string          `json:"type" validate:"omitempty,min=1"`
	Object             *string          `json:"object"`
	Entity             *string          `json:"entity"`
	ReceivedDate       *string          `json:"received_date"`
	Principal          *decimal.Decimal `json:"principal"`
	Term               *term.Term       `json:"term"`
	Status             *contract.Status `json:"status"`
	ApprovedAt         *string          `json:"approved_at"`
	SignedAt           *string          `json:"signed_at"`
	DeliveredToLegalAt *string          `json:"delivered_to_legal_at"`
	Version            *int             `json:"version" validate:"omitempty,min=1"`
}

type filterRequest struct {
	Type        string           `json:"type" validate:"required"`
	Status      *contract.Status `json:"status"`
	Directorate string           `json:"directorate"`
	Entity      string           `json:"entity"`
}

// dates parses each raw date into its destination, stopping at the first
// malformed one.
func dates(pairs map[**time.Time]*string) error {
	for dst, raw := range pairs {
		t, err := httpx.Date(raw)
		if err != nil {
			return err
		}

		*dst = t
	}

	return nil
}

func (req registerRequest) params() (contract.RegisterParams, error) {
	p := contract.RegisterParams{
		Dictamen:    strings.TrimSpace(req.Dictamen),
		Directorate: strings.TrimSpace(req.Directorate),
		Type:        strings.TrimSpace(req.Type),
		Object:      req.Object,
		Entity:      req.Entity,
		Principal:   req.Principal,
		Term:        req.Term,
		Status:      req.Status,
	}

	err := dates(map[**time.Time]*string{
		&p.ReceivedDate:       req.ReceivedDate,
		&p.ApprovedAt:         req.ApprovedAt,
		&p.SignedAt:           req.SignedAt,
		&p.DeliveredToLegalAt: req.DeliveredToLegalAt,
	})

	return p, err
}

func (req updateRequest) patch() (contract.Patch, error) {
	p := contract.Patch{
		Dictamen:    req.Dictamen,
		Directorate: req.Directorate,
		Type:        req.Type,
		Object:      req.Object,
		Entity:      req.Entity,
		Principal:   req.Principal,
		Term:        req.Term,
		Status:      req.Status,
		Version:     req.Version,
	}

	err := dates(map[**time.Time]*string{
		&p.ReceivedDate:       req.ReceivedDate,
		&p.ApprovedAt:         req.ApprovedAt,
		&p.SignedAt:           req.SignedAt,
		&p.DeliveredToLegalAt: req.DeliveredToLegalAt,
	})

	return p, err
}

// readBody decodes a JSON or multipart request into v and returns the
// uploaded document, if any.
func (h *Handler) readBody(r *http.Request, v any) (*document.File, error) {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return nil, httpx.Decode(r.Body, v)
	}

	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		return nil, fmt.Errorf("formulario inválido: %w", err)
	}

	if err := json.Unmarshal([]byte(r.FormValue(dataField)), v); err != nil {
		return nil, fmt.Errorf("campo %q inválido: %w", dataField, err)
	}

	if err := httpx.Validate(v); err != nil {
		return nil, err
	}

	f, header, err := r.FormFile(documentField)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("documento inválido: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("leyendo documento: %w", err)
	}

	return &document.File{Name: header.Filename, Data: data}, nil
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	actor, ok := httpx.Actor(w, r)
	if !ok {
		return
	}

	var req registerRequest

	file, err := h.readBody(r, &req)
	if err != nil {
		httpx.BadRequest(w, err.Error())
		return
	}

	params, err := req.params()
	if err != nil {
		httpx.BadRequest(w, err.Error())
		return
	}

	c, err := h.svc.Register(r.Context(), actor, params, file)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, ToResponse(c))
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

	var req updateRequest

	file, err := h.readBody(r, &req)
	if err != nil {
		httpx.BadRequest(w, err.Error())
		return
	}

	patch, err := req.patch()
	if err != nil {
		httpx.BadRequest(w, err.Error())
		return
	}

	c, err := h.svc.Update(r.Context(), actor, id, patch, file)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusOK, ToResponse(c))
}

func (h *Handler) listByType(w http.ResponseWriter, r *http.Request) {
	actor, ok := httpx.Actor(w, r)
	if !ok {
		return
	}

	cs, err := h.svc.ListByType(r.Context(), actor, r.URL.Query().Get("type"))
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusOK, ToResponseList(cs))
}

func (h *Handler) filter(w http.ResponseWriter, r *http.Request) {
	actor, ok := httpx.Actor(w, r)
	if !ok {
		return
	}

	var req filterRequest
	if err := httpx.Decode(r.Body, &req); err != nil {
		httpx.BadRequest(w, err.Error())
		return
	}

	cs, err := h.svc.Filter(r.Context(), actor, contract.Criteria{
		Type:        req.Type,
		Status:      req.Status,
		Directorate: req.Directorate,
		Entity:      req.Entity,
	})
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusOK, ToResponseList(cs))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	actor, ok := httpx.Actor(w, r)
	if !ok {
		return
	}

	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.BadRequest(w, err.Error())
		return
	}

	c, err := h.svc.Get(r.Context(), actor, id)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusOK, ToResponse(c))
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
