package audit

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/heartmarshall/journeys-backend/internal/domain"
)

// csvHeader is a compatibility surface for spreadsheet consumers; keep the
// column order stable.
var csvHeader = []string{"timestamp", "action_type", "scope_type", "actor_email", "target_label", "details"}

// ExportResult is a rendered CSV export.
type ExportResult struct {
	Filename string
	Data     []byte
	Exported int
	Total    int
	Omitted  int
	Message  string
}

// ExportCSV renders the entries matching f as CSV, newest first by default,
// capped at the configured row limit. Paging fields of f are ignored.
func (s *Service) ExportCSV(ctx context.Context, f domain.AuditFilter) (*ExportResult, error) {
	actor, err := requireModerator(ctx)
	if err != nil {
		return nil, err
	}

	f.Limit = 0
	f.Offset = 0
	f, err = normalizeFilter(f, s.exportMaxRows)
	if err != nil {
		return nil, err
	}
	f.Limit = s.exportMaxRows

	// Rows and total come from one snapshot so entries appended meanwhile
	// cannot show up as omitted.
	var (
		entries []domain.AuditEntry
		total   int
	)
	err = s.tx.RunInSnapshot(ctx, func(txCtx context.Context) error {
		var err error
		if entries, err = s.repo.Query(txCtx, f); err != nil {
			return fmt.Errorf("export query: %w", err)
		}
		if total, err = s.repo.Count(txCtx, f); err != nil {
			return fmt.Errorf("export count: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	data, err := renderCSV(entries)
	if err != nil {
		return nil, err
	}

	now := s.now()
	res := &ExportResult{
		Filename: "audit-export-" + now.Format("20060102-150405") + ".csv",
		Data:     data,
		Exported: len(entries),
		Total:    max(total, len(entries)),
	}
	res.Omitted = res.Total - res.Exported
	res.Message = ExportMessage(res.Exported, res.Total)

	entry := domain.NewAuditEntry(actor, domain.ActionAuditExported, domain.ScopeSystem, nil, "", map[string]any{
		"filters": filterDetails(f),
		"rows":    res.Exported,
		"total":   res.Total,
	})
	if err := s.Write(ctx, entry); err != nil {
		return nil, fmt.Errorf("audit log: %w", err)
	}

	s.log.InfoContext(ctx, "audit exported",
		slog.String("actor_id", actor.ID.String()),
		slog.Int("rows", res.Exported),
		slog.Int("total", res.Total),
	)

	return res, nil
}

// ExportMessage renders "1,000 of 1,200 exported.".
func ExportMessage(exported, total int) string {
	return humanize.Comma(int64(exported)) + " of " + humanize.Comma(int64(total)) + " exported."
}

func renderCSV(entries []domain.AuditEntry) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}

	for _, e := range entries {
		details, err := json.Marshal(e.Details)
		if err != nil {
			return nil, fmt.Errorf("audit_entry %s marshal details: %w", e.ID, err)
		}
		label := ""
		if e.TargetLabel != nil {
			label = *e.TargetLabel
		}
		record := []string{
			e.CreatedAt.UTC().Format(time.RFC3339),
			e.ActionType,
			string(e.ScopeType),
			e.ActorEmail,
			label,
			string(details),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

func filterDetails(f domain.AuditFilter) map[string]any {
	d := map[string]any{
		"sortBy":  string(f.SortBy),
		"sortDir": string(f.SortDir),
	}
	if f.ActionType != "" {
		d["actionType"] = f.ActionType
	}
	if f.ScopeType != "" {
		d["scopeType"] = string(f.ScopeType)
	}
	if f.ActorEmail != "" {
		d["actorEmail"] = f.ActorEmail
	}
	if f.Search != "" {
		d["search"] = f.Search
	}
	if f.DateFrom != nil {
		d["dateFrom"] = f.DateFrom.UTC().Format(time.DateOnly)
	}
	if f.DateTo != nil {
		d["dateTo"] = f.DateTo.UTC().Format(time.DateOnly)
	}
	return d
}
