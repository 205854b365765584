package export

import (
	"archive/zip"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/contratos/internal/contract"
	"github.com/MrJamesThe3rd/contratos/internal/export"
	contracthttp "github.com/MrJamesThe3rd/contratos/internal/http/contract"
	"github.com/MrJamesThe3rd/contratos/internal/http/httpx"
)

type Handler struct {
	svc *export.Service
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.metadata)
	r.Post("/download", h.download)
}

type exportRequest struct {
	Type        string           `json:"type" validate:"required"`
	Status      *contract.Status `json:"status"`
	Directorate string           `json:"directorate"`
	Entity      string           `json:"entity"`
}

func (req exportRequest) criteria() contract.Criteria {
	return contract.Criteria{Type: req.Type, Status: req.Status, Directorate: req.Directorate, Entity: req.Entity}
}

type exportMetadataResponse struct {
	Contracts []contracthttp.Response `json:"contracts"`
	Summary   string                  `json:"summary"`
}

// run exports into a temporary directory that cleanup removes.
func (h *Handler) run(w http.ResponseWriter, r *http.Request) (items []export.Item, dir string, cleanup func(), ok bool) {
	actor, ok := httpx.Actor(w, r)
	if !ok {
		return nil, "", nil, false
	}

	var req exportRequest
	if err := httpx.Decode(r.Body, &req); err != nil {
		httpx.BadRequest(w, err.Error())
		return nil, "", nil, false
	}

	tmpDir, err := os.MkdirTemp("", "contratos-export-*")
	if err != nil {
		httpx.Error(w, r, err)
		return nil, "", nil, false
	}

	cleanup = func() { os.RemoveAll(tmpDir) }

	items, err = h.svc.Export(r.Context(), actor, req.criteria(), tmpDir)
	if err != nil {
		cleanup()
		httpx.Error(w, r, err)

		return nil, "", nil, false
	}

	return items, tmpDir, cleanup, true
}

func (h *Handler) metadata(w http.ResponseWriter, r *http.Request) {
	items, _, cleanup, ok := h.run(w, r)
	if !ok {
		return
	}
	defer cleanup()

	contracts := make([]*contract.Contract, len(items))
	for i, item := range items {
		contracts[i] = item.Contract
	}

	httpx.JSON(w, http.StatusOK, exportMetadataResponse{
		Contracts: contracthttp.ToResponseList(contracts),
		Summary:   h.svc.Summary(items),
	})
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	items, tmpDir, cleanup, ok := h.run(w, r)
	if !ok {
		return
	}
	defer cleanup()

	if err := os.WriteFile(filepath.Join(tmpDir, "resumen.txt"), []byte(h.svc.Summary(items)), 0o644); err != nil {
		httpx.Error(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=\"contratos_%s.zip\"", time.Now().Format("20060102")))

	zipWriter := zip.NewWriter(w)
	defer zipWriter.Close()

	err := filepath.Walk(tmpDir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}

		relPath, _ := filepath.Rel(tmpDir, path)

		zf, err := zipWriter.Create(relPath)
		if err != nil {
			return err
		}

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		_, err = io.Copy(zf, f)

		return err
	})
	if err != nil {
		slog.Error("failed to create zip", "error", err)
	}
}
