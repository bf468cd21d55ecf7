package leads

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propertychat/internal/config"
	"propertychat/internal/models"
	"propertychat/internal/storage"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	cfg := &config.Config{
		Databases: map[string]config.DatabaseConfig{
			"sqlite3": {DSN: filepath.Join(t.TempDir(), "leads.db")},
		},
	}
	db, err := storage.Open("sqlite3", cfg)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, storage.Migrate(db, "sqlite3"))
	return db
}

func TestLeadLifecycle(t *testing.T) {
	svc := NewService(newTestDB(t))
	ctx := context.Background()

	created, err := svc.Create(ctx, models.Lead{
		Name:    "Dana Levi",
		Email:   "dana@example.com",
		Phone:   "+972501234567",
		Message: "Interested in a 3-room apartment",
		Source:  "chat",
	})
	require.NoError(t, err)
	require.Positive(t, created.ID)
	assert.Equal(t, models.LeadStatusNew, created.Status)

	fetched, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dana Levi", fetched.Name)
	assert.Equal(t, "chat", fetched.Source)

	require.NoError(t, svc.UpdateStatus(ctx, created.ID, models.LeadStatusContacted))
	fetched, err = svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.LeadStatusContacted, fetched.Status)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestCreateValidation(t *testing.T) {
	svc := NewService(newTestDB(t))
	ctx := context.Background()

	_, err := svc.Create(ctx, models.Lead{Email: "a@b.c"})
	assert.Error(t, err)
	_, err = svc.Create(ctx, models.Lead{Name: "No Email"})
	assert.Error(t, err)

	// Source and status fall back to defaults.
	lead, err := svc.Create(ctx, models.Lead{Name: "Walk In", Email: "walkin@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "website", lead.Source)
	assert.Equal(t, models.LeadStatusNew, lead.Status)
}

func TestList(t *testing.T) {
	svc := NewService(newTestDB(t))
	ctx := context.Background()

	for _, name := range []string{"First", "Second", "Third"} {
		_, err := svc.Create(ctx, models.Lead{Name: name, Email: name + "@example.com"})
		require.NoError(t, err)
	}

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	names := make(map[string]bool, len(list))
	for _, l := range list {
		names[l.Name] = true
	}
	assert.True(t, names["First"] && names["Second"] && names["Third"])
}

func TestUpdateStatusErrors(t *testing.T) {
	svc := NewService(newTestDB(t))
	ctx := context.Background()

	err := svc.UpdateStatus(ctx, 12345, models.LeadStatusContacted)
	assert.ErrorIs(t, err, sql.ErrNoRows)

	lead, err := svc.Create(ctx, models.Lead{Name: "A", Email: "a@example.com"})
	require.NoError(t, err)
	assert.Error(t, svc.UpdateStatus(ctx, lead.ID, "escalated-to-mars"))
}

func TestDeleteMissing(t *testing.T) {
	svc := NewService(newTestDB(t))
	assert.ErrorIs(t, svc.Delete(context.Background(), 999), sql.ErrNoRows)
}
