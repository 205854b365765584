// Package httpx holds the request and response plumbing shared by the
// handlers: JSON codecs, DTO validation, error mapping and the auth and
// provenance middleware.
package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/contratos/internal/apperr"
	"github.com/MrJamesThe3rd/contratos/internal/contract"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
	Step  string `json:"step,omitempty"`
}

// Status maps an error kind to its HTTP status code.
func Status(kind apperr.Kind) int {
	switch kind {
	case apperr.Conflict:
		return http.StatusConflict
	case apperr.NotFound:
		return http.StatusNotFound
	case apperr.Forbidden:
		return http.StatusForbidden
	case apperr.Validation:
		return http.StatusBadRequest
	case apperr.ExternalService:
		return http.StatusBadGateway
	}

	return http.StatusInternalServerError
}

// Error writes err as a JSON error. Internal failures are logged and
// reported without detail.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	kind := apperr.KindOf(err)
	resp := errorResponse{Error: apperr.Message(err), Kind: kind.String()}

	var cascade *contract.CascadeError
	if errors.As(err, &cascade) {
		resp.Step = cascade.Step
	}

	if kind == apperr.Internal || kind == apperr.ExternalService {
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}

	JSON(w, Status(kind), resp)
}

// BadRequest reports a malformed request.
func BadRequest(w http.ResponseWriter, msg string) {
	JSON(w, http.StatusBadRequest, errorResponse{Error: msg, Kind: apperr.Validation.String()})
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Decode reads a JSON body into v and validates its struct tags.
func Decode(r io.Reader, v any) error {
	if err := json.NewDecoder(r).Decode(v); err != nil {
		return fmt.Errorf("cuerpo de la solicitud inválido: %w", err)
	}

	return Validate(v)
}

// Validate checks the validate tags of v and names the offending fields.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	fields := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
	}

	return fmt.Errorf("campos inválidos: %s", strings.Join(fields, ", "))
}

// IDParam parses the named URL parameter as a uuid.
func IDParam(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, fmt.Errorf("identificador inválido %q", chi.URLParam(r, name))
	}

	return id, nil
}

// Date parses an optional "2006-01-02" value as a calendar date, carried as
// UTC midnight like term.Date.
func Date(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}

	t, err := time.Parse(time.DateOnly, *s)
	if err != nil {
		return nil, fmt.Errorf("fecha inválida %q, use AAAA-MM-DD", *s)
	}

	return &t, nil
}
