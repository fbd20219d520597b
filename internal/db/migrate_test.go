package db

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"testing"

	"github.com/feedback-tracker/backend/internal/db/migrations"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func stubGoose(t *testing.T, fn func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error) {
	t.Helper()
	orig := gooseUpContext
	gooseUpContext = fn
	t.Cleanup(func() { gooseUpContext = orig })
}

func TestMigrate_RunsEmbeddedDir(t *testing.T) {
	var gotDir string
	stubGoose(t, func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		gotDir = dir
		return nil
	})

	err := migrate(context.Background(), nil, zap.NewNop())

	require.NoError(t, err)
	assert.Equal(t, ".", gotDir)
}

func TestMigrate_PropagatesError(t *testing.T) {
	boom := errors.New("boom")
	stubGoose(t, func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return boom
	})

	err := migrate(context.Background(), nil, zap.NewNop())

	assert.ErrorIs(t, err, boom)
}

func TestMigrationsFS_ContainsSchema(t *testing.T) {
	files, err := fs.Glob(migrations.FS, "*.sql")
	require.NoError(t, err)
	assert.Equal(t, []string{"00001_create_feedbacks.sql", "00002_create_log_tables.sql"}, files)

	for _, f := range files {
		body, err := fs.ReadFile(migrations.FS, f)
		require.NoError(t, err)
		assert.Contains(t, string(body), "-- +goose Up", f)
		assert.Contains(t, string(body), "-- +goose Down", f)
	}
}
