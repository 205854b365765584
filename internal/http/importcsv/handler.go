package importcsv

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/contratos/internal/http/httpx"
	"github.com/MrJamesThe3rd/contratos/internal/importer"
)

type Handler struct {
	svc       *importer.Service
	maxUpload int64
}

func NewHandler(svc *importer.Service, maxUpload int64) *Handler {
	return &Handler{svc: svc, maxUpload: maxUpload}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
}

type resultResponse struct {
	Line        int        `json:"line"`
	Dictamen    string     `json:"dictamen"`
	Directorate string     `json:"directorate"`
	Outcome     string     `json:"outcome"`
	ContractID  *uuid.UUID `json:"contract_id,omitempty"`
	Error       string     `json:"error,omitempty"`
}

type importResponse struct {
	Registered int              `json:"registered"`
	Conflicts  int              `json:"conflicts"`
	Failed     int              `json:"failed"`
	Results    []resultResponse `json:"results"`
}

func toResponse(rep *importer.Report) importResponse {
	resp := importResponse{
		Registered: rep.Registered,
		Conflicts:  rep.Conflicts,
		Failed:     rep.Failed,
		Results:    make([]resultResponse, len(rep.Results)),
	}

	for i, res := range rep.Results {
		rr := resultResponse{
			Line:        res.Line,
			Dictamen:    res.Dictamen,
			Directorate: res.Directorate,
			Outcome:     string(res.Outcome),
			Error:       res.Error,
		}

		if res.ContractID != uuid.Nil {
			rr.ContractID = &res.ContractID
		}

		resp.Results[i] = rr
	}

	return resp
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	actor, ok := httpx.Actor(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		httpx.BadRequest(w, "failed to parse form: "+err.Error())
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		httpx.BadRequest(w, "file is required")
		return
	}
	defer file.Close()

	report, err := h.svc.Import(r.Context(), actor, file)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toResponse(report))
}
