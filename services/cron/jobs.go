package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cse-dept/cms-api/model"
	"github.com/cse-dept/cms-api/services/search"
	"github.com/cse-dept/cms-api/utils/auth"
	"gorm.io/datatypes"
)

// LogRetention is how long audit and cron logs are kept
const LogRetention = 90 * 24 * time.Hour

// PurgeExpiredTokens removes blacklist rows whose token has expired anyway.
// Runs hourly.
func (m *CronManager) PurgeExpiredTokens(ctx context.Context) (string, map[string]interface{}, error) {
	removed, err := auth.NewBlacklistService(m.db).CleanupExpiredTokens(ctx)
	if err != nil {
		return "", nil, fmt.Errorf("failed to purge token blacklist: %w", err)
	}
	return fmt.Sprintf("Removed %d expired tokens", removed), map[string]interface{}{"removed": removed}, nil
}

// CleanupOldLogs drops audit and cron log rows older than LogRetention.
// Runs daily at 3 AM.
func (m *CronManager) CleanupOldLogs(ctx context.Context) (string, map[string]interface{}, error) {
	cutoff := time.Now().Add(-LogRetention)
	db := m.db.WithContext(ctx)

	audit := db.Where("created_at < ?", cutoff).Delete(&model.AdminAuditLog{})
	if audit.Error != nil {
		return "", nil, fmt.Errorf("failed to delete audit logs: %w", audit.Error)
	}

	cronLogs := db.Where("created_at < ?", cutoff).Delete(&model.CronJobLog{})
	if cronLogs.Error != nil {
		return "", nil, fmt.Errorf("failed to delete cron logs: %w", cronLogs.Error)
	}

	return fmt.Sprintf("Deleted %d audit logs and %d cron logs", audit.RowsAffected, cronLogs.RowsAffected),
		map[string]interface{}{
			"audit_logs": audit.RowsAffected,
			"cron_logs":  cronLogs.RowsAffected,
			"cutoff":     cutoff.Format(time.RFC3339),
		}, nil
}

// ReindexSearch pushes all public content to the search index.
// Runs daily at 4 AM.
func (m *CronManager) ReindexSearch(ctx context.Context) (string, map[string]interface{}, error) {
	if m.indexer == nil {
		return "Search indexer not configured", nil, nil
	}

	n, err := search.Reindex(ctx, m.db, m.indexer)
	if err != nil {
		return "", nil, fmt.Errorf("reindex via %s failed after %d documents: %w", m.indexer.Name(), n, err)
	}
	return fmt.Sprintf("Indexed %d documents via %s", n, m.indexer.Name()),
		map[string]interface{}{"documents": n, "backend": m.indexer.Name()}, nil
}

func metadataJSON(metadata map[string]interface{}) datatypes.JSON {
	if len(metadata) == 0 {
		return datatypes.JSON("{}")
	}
	raw, err := json.Marshal(metadata)
	if err != nil {
		return datatypes.JSON("{}")
	}
	return datatypes.JSON(raw)
}
