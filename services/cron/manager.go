package cron

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/cse-dept/cms-api/model"
	"github.com/cse-dept/cms-api/services/search"
	"github.com/robfig/cron/v3"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Job names, also stored in cron_job_logs.job_name
const (
	JobPurgeExpiredTokens = "purge_expired_tokens"
	JobCleanupOldLogs     = "cleanup_old_logs"
	JobReindexSearch      = "reindex_search"
)

// jobTimeout bounds a single run of any job
const jobTimeout = 10 * time.Minute

// JobFunc does the work of one job and returns a summary for the log row
type JobFunc func(ctx context.Context) (string, map[string]interface{}, error)

type job struct {
	name     string
	schedule string
	run      JobFunc
}

// CronManager manages all scheduled cron jobs
type CronManager struct {
	cron    *cron.Cron
	db      *gorm.DB
	indexer search.Indexer
	jobs    map[string]job
}

// NewCronManager creates a new cron manager
func NewCronManager(db *gorm.DB, indexer search.Indexer) *CronManager {
	m := &CronManager{
		// Create cron with seconds precision
		cron:    cron.New(cron.WithSeconds()),
		db:      db,
		indexer: indexer,
		jobs:    map[string]job{},
	}

	m.add(JobPurgeExpiredTokens, "0 0 * * * *", m.PurgeExpiredTokens)
	m.add(JobCleanupOldLogs, "0 0 3 * * *", m.CleanupOldLogs)
	m.add(JobReindexSearch, "0 0 4 * * *", m.ReindexSearch)

	return m
}

func (m *CronManager) add(name, schedule string, fn JobFunc) {
	m.jobs[name] = job{name: name, schedule: schedule, run: fn}
}

// Start starts all cron jobs
func (m *CronManager) Start() error {
	log.Println("Starting cron jobs...")

	for _, j := range m.jobs {
		j := j
		if _, err := m.cron.AddFunc(j.schedule, func() {
			if err := m.Run(context.Background(), j.name); err != nil {
				log.Printf("[CRON] %s: %v", j.name, err)
			}
		}); err != nil {
			return fmt.Errorf("failed to schedule %s: %w", j.name, err)
		}
	}

	m.cron.Start()

	log.Printf("Cron jobs started successfully (%d registered)", len(m.jobs))
	return nil
}

// Stop stops all cron jobs and waits for running ones to finish
func (m *CronManager) Stop() {
	log.Println("Stopping cron jobs...")
	ctx := m.cron.Stop()
	<-ctx.Done()
	log.Println("Cron jobs stopped")
}

// Run executes the named job immediately and records it in cron_job_logs
func (m *CronManager) Run(ctx context.Context, name string) error {
	j, ok := m.jobs[name]
	if !ok {
		return fmt.Errorf("unknown cron job %q", name)
	}

	ctx, cancel := context.WithTimeout(ctx, jobTimeout)
	defer cancel()

	entry := m.logJobStart(ctx, name)
	message, metadata, err := j.run(ctx)
	if err != nil {
		m.logJobError(ctx, entry, err)
		return err
	}
	m.logJobComplete(ctx, entry, message, metadata)
	return nil
}

// logJobStart logs the start of a cron job
func (m *CronManager) logJobStart(ctx context.Context, jobName string) *model.CronJobLog {
	log.Printf("[CRON] Starting job: %s at %s", jobName, time.Now().Format(time.RFC3339))

	entry := &model.CronJobLog{
		JobName:   jobName,
		Status:    model.CronStatusRunning,
		StartedAt: time.Now(),
		Metadata:  datatypes.JSON("{}"),
	}
	if err := m.db.WithContext(ctx).Create(entry).Error; err != nil {
		log.Printf("[CRON] Failed to record start of %s: %v", jobName, err)
	}
	return entry
}

// logJobComplete logs successful completion of a cron job
func (m *CronManager) logJobComplete(ctx context.Context, entry *model.CronJobLog, message string, metadata map[string]interface{}) {
	log.Printf("[CRON] Completed job: %s - %s", entry.JobName, message)
	m.finish(ctx, entry, map[string]interface{}{
		"status":   model.CronStatusCompleted,
		"message":  message,
		"metadata": metadataJSON(metadata),
	})
}

// logJobError logs a cron job error
func (m *CronManager) logJobError(ctx context.Context, entry *model.CronJobLog, err error) {
	log.Printf("[CRON] Error in job: %s - %v", entry.JobName, err)
	m.finish(ctx, entry, map[string]interface{}{
		"status":    model.CronStatusFailed,
		"error_msg": err.Error(),
	})
}

func (m *CronManager) finish(ctx context.Context, entry *model.CronJobLog, updates map[string]interface{}) {
	if entry.ID == 0 {
		return
	}
	now := time.Now()
	updates["completed_at"] = now
	updates["duration"] = now.Sub(entry.StartedAt).Milliseconds()

	// the job may have exhausted ctx; the log row still gets written
	if ctx.Err() != nil {
		ctx = context.Background()
	}
	if err := m.db.WithContext(ctx).Model(entry).Updates(updates).Error; err != nil {
		log.Printf("[CRON] Failed to record end of %s: %v", entry.JobName, err)
	}
}
