package query

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type entry struct {
	ID    uint
	Name  string
	Notes string
}

func TestContainsPattern(t *testing.T) {
	tests := []struct {
		term string
		want string
	}{
		{"Systems", "%systems%"},
		{"  ada ", "%ada%"},
		{"100%", "%100!%%"},
		{"snake_case", "%snake!_case%"},
		{"wow!", "%wow!!%"},
	}
	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			assert.Equal(t, tt.want, ContainsPattern(tt.term))
		})
	}
}

func TestContainsClause(t *testing.T) {
	assert.Equal(t, "(LOWER(name) LIKE ? ESCAPE '!')", ContainsClause("name"))
	assert.Equal(t, "(LOWER(name) LIKE ? ESCAPE '!' OR LOWER(notes) LIKE ? ESCAPE '!')", ContainsClause("name", "notes"))
}

func TestContains(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&entry{}))
	require.NoError(t, db.Create(&[]entry{
		{Name: "Placement Cell", Notes: "Block A"},
		{Name: "Uptime Lab", Notes: "100% availability"},
		{Name: "Snake_Case Club", Notes: "Python"},
		{Name: "Wow! Studio", Notes: "Media"},
	}).Error)

	tests := []struct {
		term string
		want []string
	}{
		{"placement", []string{"Placement Cell"}},
		{"BLOCK a", []string{"Placement Cell"}},
		{"%", []string{"Uptime Lab"}},
		{"_", []string{"Snake_Case Club"}},
		{"e_c", []string{"Snake_Case Club"}},
		{"!", []string{"Wow! Studio"}},
		{"p%n", nil},
		{"nothing", nil},
	}
	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			var names []string
			err := Contains(db.Model(&entry{}), tt.term, "name", "notes").Order("id").Pluck("name", &names).Error
			require.NoError(t, err)
			if tt.want == nil {
				assert.Empty(t, names)
				return
			}
			assert.Equal(t, tt.want, names)
		})
	}
}
