package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"skillquiz/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A fresh connection would get a fresh in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Skill{},
		&models.Quiz{},
		&models.Result{},
	))

	return db
}

// fakeGenerator stands in for the Gemini client and records what it was
// asked for.
type fakeGenerator struct {
	text string
	err  error

	lastPrompt      string
	lastTemperature float32
	lastMaxTokens   int32
	calls           int
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string, temperature float32, maxTokens int32) (string, error) {
	f.calls++
	f.lastPrompt = prompt
	f.lastTemperature = temperature
	f.lastMaxTokens = maxTokens
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}
