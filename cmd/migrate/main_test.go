package main

import (
	"bytes"
	"testing"

	"github.com/cse-dept/cms-api/database"
	"github.com/cse-dept/cms-api/model"
	"github.com/cse-dept/cms-api/testutil/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSeed = database.SeedConfig{
	AdminEmail:    "admin@example.edu",
	AdminPassword: "correct-horse-battery",
	AdminName:     "Admin",
}

func TestValidCommand(t *testing.T) {
	for _, cmd := range []string{"up", "down", "seed", "reset"} {
		assert.True(t, validCommand(cmd), cmd)
	}
	assert.False(t, validCommand(""))
	assert.False(t, validCommand("migrate"))
}

func TestRunUnknownCommand(t *testing.T) {
	db := testdb.Open(t)
	err := run(&bytes.Buffer{}, db, "sideways", testSeed)
	assert.ErrorIs(t, err, errUsage)
}

func TestRunDownThenUp(t *testing.T) {
	db := testdb.Open(t)
	var out bytes.Buffer

	require.NoError(t, run(&out, db, "down", testSeed))
	assert.False(t, db.Migrator().HasTable(&model.Program{}))
	assert.False(t, db.Migrator().HasTable(&model.User{}))

	require.NoError(t, run(&out, db, "up", testSeed))
	assert.True(t, db.Migrator().HasTable(&model.Program{}))
	assert.True(t, db.Migrator().HasTable(&model.SectionContent{}))
	assert.Contains(t, out.String(), "up completed successfully")
}

func TestRunSeedSkipsPopulatedTables(t *testing.T) {
	db := testdb.Open(t)

	require.NoError(t, run(&bytes.Buffer{}, db, "seed", testSeed))

	var programs, admins int64
	require.NoError(t, db.Model(&model.Program{}).Count(&programs).Error)
	require.NoError(t, db.Model(&model.User{}).Where("role = ?", model.RoleAdmin).Count(&admins).Error)
	assert.Positive(t, programs)
	assert.Equal(t, int64(1), admins)

	require.NoError(t, run(&bytes.Buffer{}, db, "seed", testSeed))

	var again int64
	require.NoError(t, db.Model(&model.Program{}).Count(&again).Error)
	assert.Equal(t, programs, again)
}

func TestRunResetRebuildsData(t *testing.T) {
	db := testdb.Open(t)
	require.NoError(t, db.Create(&model.DirectoryEntry{Name: "Stale Entry", Role: "Clerk"}).Error)

	require.NoError(t, run(&bytes.Buffer{}, db, "reset", testSeed))

	var stale int64
	require.NoError(t, db.Model(&model.DirectoryEntry{}).Where("name = ?", "Stale Entry").Count(&stale).Error)
	assert.Zero(t, stale)
}

func TestRunSeedWithoutAdminCredentials(t *testing.T) {
	db := testdb.Open(t)
	var out bytes.Buffer

	require.NoError(t, run(&out, db, "seed", database.SeedConfig{}))

	var users int64
	require.NoError(t, db.Model(&model.User{}).Count(&users).Error)
	assert.Zero(t, users)
	assert.Contains(t, out.String(), "admin user creation was skipped")
}
