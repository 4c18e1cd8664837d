package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/heartmarshall/journeys-backend/internal/domain"
	"github.com/heartmarshall/journeys-backend/internal/service/audit"
)

type auditService interface {
	Query(ctx context.Context, f domain.AuditFilter) (*domain.AuditPage, error)
	ExportCSV(ctx context.Context, f domain.AuditFilter) (*audit.ExportResult, error)
	Cleanup(ctx context.Context, retentionDays int) (*audit.CleanupResult, error)
}

// dateLayout is the calendar-day format of the dateFrom and dateTo filters.
const dateLayout = "2006-01-02"

// AuditHandler serves the audit log.
type AuditHandler struct {
	audit         auditService
	retentionDays int
	log           *slog.Logger
}

// NewAuditHandler creates an AuditHandler. retentionDays is the default
// window for cleanup requests that do not name one.
func NewAuditHandler(audit auditService, retentionDays int, logger *slog.Logger) *AuditHandler {
	return &AuditHandler{
		audit:         audit,
		retentionDays: retentionDays,
		log:           logger.With("handler", "audit"),
	}
}

type cleanupRequest struct {
	RetentionDays *int `json:"retentionDays"`
}

// List returns one page of filtered entries.
// GET /api/audit?actionType=&scopeType=&actorEmail=&search=&dateFrom=&dateTo=&sortBy=&sortDir=&limit=&offset=
func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	f, err := parseAuditFilter(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	page, err := h.audit.Query(r.Context(), f)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// Export downloads the filtered entries as CSV. The export message is sent in
// the X-Export-Message header, along with exported and total counts.
// GET /api/audit/export.csv
func (h *AuditHandler) Export(w http.ResponseWriter, r *http.Request) {
	f, err := parseAuditFilter(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	res, err := h.audit.ExportCSV(r.Context(), f)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+res.Filename+`"`)
	w.Header().Set("X-Export-Message", res.Message)
	w.Header().Set("X-Export-Count", strconv.Itoa(res.Exported))
	w.Header().Set("X-Total-Count", strconv.Itoa(res.Total))
	w.WriteHeader(http.StatusOK)
	w.Write(res.Data) //nolint:errcheck
}

// Cleanup deletes entries past the retention window. Admin only.
// POST /api/audit/cleanup
func (h *AuditHandler) Cleanup(w http.ResponseWriter, r *http.Request) {
	var req cleanupRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	days := h.retentionDays
	if req.RetentionDays != nil {
		days = *req.RetentionDays
	}

	res, err := h.audit.Cleanup(r.Context(), days)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func parseAuditFilter(r *http.Request) (domain.AuditFilter, error) {
	q := r.URL.Query()
	f := domain.AuditFilter{
		ActionType: q.Get("actionType"),
		ScopeType:  domain.ScopeType(q.Get("scopeType")),
		ActorEmail: q.Get("actorEmail"),
		Search:     q.Get("search"),
		SortBy:     domain.AuditSortKey(q.Get("sortBy")),
		SortDir:    domain.SortDirection(q.Get("sortDir")),
	}

	var errs []domain.FieldError
	for _, d := range []struct {
		name string
		dst  **time.Time
	}{{"dateFrom", &f.DateFrom}, {"dateTo", &f.DateTo}} {
		v := q.Get(d.name)
		if v == "" {
			continue
		}
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			errs = append(errs, domain.FieldError{Field: d.name, Message: "must be YYYY-MM-DD"})
			continue
		}
		*d.dst = &t
	}

	var err error
	if f.Limit, err = queryInt(r, "limit", 0); err != nil {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be an integer"})
	}
	if f.Offset, err = queryInt(r, "offset", 0); err != nil {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must be an integer"})
	}

	if len(errs) > 0 {
		return f, &domain.ValidationError{Errors: errs}
	}
	return f, nil
}
