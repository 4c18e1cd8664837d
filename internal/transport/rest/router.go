package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handlers groups every endpoint handler the router mounts.
type Handlers struct {
	Health  *HealthHandler
	Review  *ReviewHandler
	Bulk    *BulkHandler
	Audit   *AuditHandler
	Steward *StewardHandler
	Reset   *ResetHandler
}

// RouterOptions carries the per-route middleware the router applies.
// RequireIdentity guards /api; ResetLimit throttles reset execution.
type RouterOptions struct {
	RequireIdentity func(http.Handler) http.Handler
	ResetLimit      func(http.Handler) http.Handler
}

// NewRouter mounts the probes at the root and the moderation API under /api.
// Global middleware (recovery, request id, CORS, auth, logging) wraps the
// returned handler.
func NewRouter(h Handlers, opts RouterOptions) http.Handler {
	r := chi.NewRouter()

	r.Get("/live", h.Health.Live)
	r.Get("/ready", h.Health.Ready)
	r.Get("/health", h.Health.Health)

	r.Route("/api", func(api chi.Router) {
		if opts.RequireIdentity != nil {
			api.Use(opts.RequireIdentity)
		}

		api.Route("/items/{id}", func(items chi.Router) {
			items.Get("/", h.Review.Get)
			items.Post("/submit", h.Review.Submit)
			items.Post("/approve", h.Review.Approve)
			items.Post("/request-changes", h.Review.RequestChanges)
			items.Post("/reject", h.Review.Reject)
			items.Post("/withdraw", h.Review.Withdraw)
		})

		api.Post("/bulk/reviews", h.Bulk.Review)
		api.Post("/bulk/steward-deactivations", h.Steward.BulkDeactivate)
		api.Get("/jobs/{id}", h.Bulk.Job)

		api.Get("/audit", h.Audit.List)
		api.Get("/audit/export.csv", h.Audit.Export)
		api.Post("/audit/cleanup", h.Audit.Cleanup)

		api.Post("/stewards/assignments", h.Steward.Assign)
		api.Post("/stewards/assignments/{id}/deactivate", h.Steward.Deactivate)
		api.Get("/stewards/workload", h.Steward.Workload)

		api.Route("/profiles/{id}", func(p chi.Router) {
			p.Get("/stewards", h.Steward.ListForProfile)
			p.Post("/reset/readiness", h.Reset.Readiness)
			p.Get("/reset-history", h.Reset.History)
			if opts.ResetLimit != nil {
				p.With(opts.ResetLimit).Post("/reset", h.Reset.Execute)
			} else {
				p.Post("/reset", h.Reset.Execute)
			}
		})
	})

	return r
}
