package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cse-dept/cms-api/model"
	"github.com/cse-dept/cms-api/services/search"
	"github.com/cse-dept/cms-api/testutil/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPurgeExpiredTokens(t *testing.T) {
	db := testdb.Open(t)
	require.NoError(t, db.Create(&model.User{Email: "a@example.edu", PasswordHash: "x", Name: "A"}).Error)
	require.NoError(t, db.Create(&model.JWTTokenBlacklist{JTI: "old", UserID: 1, ExpiresAt: time.Now().Add(-time.Hour)}).Error)
	require.NoError(t, db.Create(&model.JWTTokenBlacklist{JTI: "live", UserID: 1, ExpiresAt: time.Now().Add(time.Hour)}).Error)

	m := NewCronManager(db, nil)
	require.NoError(t, m.Run(context.Background(), JobPurgeExpiredTokens))

	var remaining []model.JWTTokenBlacklist
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, "live", remaining[0].JTI)

	var entry model.CronJobLog
	require.NoError(t, db.Where("job_name = ?", JobPurgeExpiredTokens).First(&entry).Error)
	assert.Equal(t, model.CronStatusCompleted, entry.Status)
	assert.Equal(t, "Removed 1 expired tokens", entry.Message)
	assert.NotNil(t, entry.CompletedAt)
	assert.JSONEq(t, `{"removed":1}`, string(entry.Metadata))
}

func TestCleanupOldLogs(t *testing.T) {
	db := testdb.Open(t)
	old := time.Now().Add(-LogRetention - time.Hour)
	require.NoError(t, db.Create(&model.User{Email: "a@example.edu", PasswordHash: "x", Name: "A"}).Error)

	require.NoError(t, db.Create(&model.AdminAuditLog{AdminID: 1, Action: "create", Resource: "news", CreatedAt: old}).Error)
	require.NoError(t, db.Create(&model.AdminAuditLog{AdminID: 1, Action: "create", Resource: "news"}).Error)

	m := NewCronManager(db, nil)
	require.NoError(t, m.Run(context.Background(), JobCleanupOldLogs))

	var count int64
	require.NoError(t, db.Model(&model.AdminAuditLog{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

type failingIndexer struct{ search.DBIndexer }

func (failingIndexer) Index(context.Context, ...search.Document) error {
	return errors.New("index unavailable")
}

func (failingIndexer) Name() string { return "failing" }

func TestReindexFailureIsRecorded(t *testing.T) {
	db := testdb.Open(t)
	require.NoError(t, db.Create(&model.Program{Name: "M.Tech AI", Level: model.LevelPG}).Error)

	m := NewCronManager(db, &failingIndexer{})
	err := m.Run(context.Background(), JobReindexSearch)
	require.Error(t, err)

	var entry model.CronJobLog
	require.NoError(t, db.Where("job_name = ?", JobReindexSearch).First(&entry).Error)
	assert.Equal(t, model.CronStatusFailed, entry.Status)
	assert.Contains(t, entry.ErrorMsg, "index unavailable")
}

func TestRunUnknownJob(t *testing.T) {
	m := NewCronManager(testdb.Open(t), nil)
	assert.Error(t, m.Run(context.Background(), "nope"))
}

func TestSchedulesParse(t *testing.T) {
	m := NewCronManager(testdb.Open(t), nil)
	require.NoError(t, m.Start())
	assert.Len(t, m.cron.Entries(), 3)
	m.Stop()
}
