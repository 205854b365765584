package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/contratos/internal/http/contract"
	"github.com/MrJamesThe3rd/contratos/internal/http/entity"
	"github.com/MrJamesThe3rd/contratos/internal/http/export"
	"github.com/MrJamesThe3rd/contratos/internal/http/httpx"
	"github.com/MrJamesThe3rd/contratos/internal/http/importcsv"
	"github.com/MrJamesThe3rd/contratos/internal/http/invoice"
	"github.com/MrJamesThe3rd/contratos/internal/http/notification"
	"github.com/MrJamesThe3rd/contratos/internal/http/supplement"
)

type Config struct {
	CORSOrigins []string
	JWTSecret   []byte
	JWTIssuer   string
}

type Handlers struct {
	Contracts     *contract.Handler
	Supplements   *supplement.Handler
	Invoices      *invoice.Handler
	Notifications *notification.Handler
	Entities      *entity.Handler
	Import        *importcsv.Handler
	Export        *export.Handler
}

func New(cfg Config, h Handlers) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Session-Id"},
		ExposedHeaders:   []string{"X-Session-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(httpx.Provenance)
		r.Use(httpx.Authenticate(cfg.JWTSecret, cfg.JWTIssuer))

		r.Route("/contracts", func(r chi.Router) {
			h.Contracts.Routes(r)
			r.Route("/{id}/supplements", h.Supplements.ContractRoutes)
			r.Route("/{id}/invoices", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				h.Invoices.ContractRoutes(r)
			})
		})

		r.Route("/supplements", h.Supplements.Routes)
		r.Route("/invoices", h.Invoices.Routes)
		r.Route("/notifications", h.Notifications.Routes)

		r.Route("/entities/aliases", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Entities.Routes(r)
		})

		r.Route("/import", h.Import.Routes)

		r.Route("/export", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Export.Routes(r)
		})
	})

	return router
}
