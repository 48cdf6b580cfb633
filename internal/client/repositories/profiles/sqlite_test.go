package profiles

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/mitrakurir/internal/client/models"
	"github.com/dmitrijs2005/mitrakurir/internal/dbx"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "profiles.db"))
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE partner_profiles (
  id           INTEGER PRIMARY KEY,
  name         TEXT    NOT NULL,
  email        TEXT    NOT NULL,
  phone        TEXT    NOT NULL,
  address      TEXT,
  photo_path   TEXT,
  bank_account TEXT,
  birth_date   TEXT,
  verified     INTEGER NOT NULL DEFAULT 0
);`)
	require.NoError(t, err)
	return db
}

func ptr(s string) *string { return &s }

func alice() *models.PartnerProfile {
	return &models.PartnerProfile{
		ID:          7,
		Name:        "Alice",
		Email:       "alice@x.com",
		Phone:       "0812",
		BankAccount: ptr("BCA 123"),
		BirthDate:   ptr("1990-01-02"),
	}
}

func TestGetLoggedIn_Empty(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	p, err := r.GetLoggedIn(context.Background())
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestUpsert_RoundTripKeepsNulls(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Upsert(ctx, alice()))

	got, err := r.GetByID(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, alice(), got)
	assert.Nil(t, got.Address)
	assert.Nil(t, got.PhotoPath)
}

func TestUpsert_ReplacesWholesale(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Upsert(ctx, alice()))

	replaced := &models.PartnerProfile{ID: 7, Name: "Alice B", Email: "alice@x.com", Phone: "0813", Verified: true}
	require.NoError(t, r.Upsert(ctx, replaced))

	got, err := r.GetLoggedIn(ctx)
	require.NoError(t, err)
	assert.Equal(t, replaced, got)
}

func TestUpdate(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Upsert(ctx, alice()))

	p := alice()
	p.Verified = true
	p.Address = ptr("Jl. Merdeka 1")
	require.NoError(t, r.Update(ctx, p))

	got, err := r.GetByID(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestUpdate_MissingRowIsNoop(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Update(ctx, alice()))

	got, err := r.GetLoggedIn(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestGetByID_Missing(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	got, err := r.GetByID(context.Background(), 99)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestClear(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Upsert(ctx, alice()))
	require.NoError(t, r.Clear(ctx))

	got, err := r.GetLoggedIn(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestWithTx_RollbackLeavesCacheUntouched(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	require.NoError(t, NewSQLiteRepository(db).Upsert(ctx, alice()))

	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := NewSQLiteRepository(tx).Clear(ctx); err != nil {
			return err
		}
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	got, err := NewSQLiteRepository(db).GetLoggedIn(ctx)
	require.NoError(t, err)
	assert.Equal(t, alice(), got)
}
