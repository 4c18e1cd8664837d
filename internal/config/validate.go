package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if err := c.Log.validate(); err != nil {
		return fmt.Errorf("log: %w", err)
	}

	if err := c.Moderation.validate(); err != nil {
		return fmt.Errorf("moderation: %w", err)
	}

	return nil
}

func (l LogConfig) validate() error {
	switch strings.ToLower(l.Format) {
	case "json", "text":
		return nil
	}
	return fmt.Errorf("format must be json or text (got %q)", l.Format)
}

func (m ModerationConfig) validate() error {
	if m.BulkBatchSize < 1 {
		return fmt.Errorf("bulk_batch_size must be >= 1 (got %d)", m.BulkBatchSize)
	}
	if m.BulkJobTimeout <= 0 {
		return fmt.Errorf("bulk_job_timeout must be > 0 (got %s)", m.BulkJobTimeout)
	}
	if m.ExportMaxRows < 1 {
		return fmt.Errorf("export_max_rows must be >= 1 (got %d)", m.ExportMaxRows)
	}
	if m.AuditRetentionDays < 1 {
		return fmt.Errorf("audit_retention_days must be >= 1 (got %d)", m.AuditRetentionDays)
	}
	if m.ResetsPerMinute < 1 {
		return fmt.Errorf("resets_per_minute must be >= 1 (got %d)", m.ResetsPerMinute)
	}
	return nil
}
