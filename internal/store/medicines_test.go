package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medstock/internal/database"
	"medstock/internal/migrations"
	"medstock/internal/store"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db := database.Connect(":memory:")
	migrations.Run(db)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestAddMedicineDuplicateCode(t *testing.T) {
	repo := store.NewMedicineRepo(newTestDB(t))
	ctx := context.Background()

	_, err := repo.Add(ctx, store.MedicineInput{Name: "Aspirin", Code: "ASP-100"})
	require.NoError(t, err)

	_, err = repo.Add(ctx, store.MedicineInput{Name: "Aspirin Forte", Code: "ASP-100"})
	require.ErrorIs(t, err, store.ErrDuplicateCode)

	// The failed insert must not leave a row behind.
	all, err := repo.GetAll(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 1)
	assert.Equal(t, "Aspirin", all[0].Name)
}

func TestAddMedicineValidation(t *testing.T) {
	repo := store.NewMedicineRepo(newTestDB(t))
	ctx := context.Background()

	var verr *store.ValidationError

	_, err := repo.Add(ctx, store.MedicineInput{Code: "X"})
	require.True(t, errors.As(err, &verr))

	_, err = repo.Add(ctx, store.MedicineInput{Name: "X", Code: "X", Price: -1})
	require.True(t, errors.As(err, &verr))
}

func TestGetByIDIdempotent(t *testing.T) {
	repo := store.NewMedicineRepo(newTestDB(t))
	ctx := context.Background()

	created, err := repo.Add(ctx, store.MedicineInput{Name: "Ibuprofen", Code: "IBU-200", Price: 3.5, Stock: 40})
	require.NoError(t, err)

	first, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, second)

	assert.Equal(t, *first, *second)
}

func TestGetByIDMissingReturnsNil(t *testing.T) {
	repo := store.NewMedicineRepo(newTestDB(t))

	m, err := repo.GetByID(context.Background(), "no-such-id")
	require.NoError(t, err)
	assert.Nil(t, m)
}

func TestGetByCode(t *testing.T) {
	repo := store.NewMedicineRepo(newTestDB(t))
	ctx := context.Background()

	created, err := repo.Add(ctx, store.MedicineInput{Name: "Amoxicillin", Code: "AMX-500"})
	require.NoError(t, err)

	found, err := repo.GetByCode(ctx, "AMX-500")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, created.ID, found.ID)

	// Exact match only.
	missing, err := repo.GetByCode(ctx, "AMX")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSearchKeyword(t *testing.T) {
	repo := store.NewMedicineRepo(newTestDB(t))
	ctx := context.Background()

	_, err := repo.Add(ctx, store.MedicineInput{Name: "Aspirin", Code: "ASP-100"})
	require.NoError(t, err)
	_, err = repo.Add(ctx, store.MedicineInput{Name: "Paracetamol", Code: "PAR-500"})
	require.NoError(t, err)

	// Case-insensitive substring over name, code and category.
	results, err := repo.GetAll(ctx, "asp")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Aspirin", results[0].Name)

	byCategory, err := repo.GetAll(ctx, "nothere")
	require.NoError(t, err)
	assert.Empty(t, byCategory)
}

func TestUpdateMedicinePartial(t *testing.T) {
	repo := store.NewMedicineRepo(newTestDB(t))
	ctx := context.Background()

	created, err := repo.Add(ctx, store.MedicineInput{Name: "Cough Syrup", Code: "CS-01", Price: 12})
	require.NoError(t, err)

	newName := "Cough Syrup 100ml"
	updated, err := repo.Update(ctx, created.ID, store.MedicineUpdate{Name: &newName})
	require.NoError(t, err)

	assert.Equal(t, "Cough Syrup 100ml", updated.Name)
	assert.Equal(t, "CS-01", updated.Code)
	assert.Equal(t, 12.0, updated.Price)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
}

func TestUpdateMedicineNotFound(t *testing.T) {
	repo := store.NewMedicineRepo(newTestDB(t))

	name := "whatever"
	_, err := repo.Update(context.Background(), "no-such-id", store.MedicineUpdate{Name: &name})
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeleteMedicine(t *testing.T) {
	repo := store.NewMedicineRepo(newTestDB(t))
	ctx := context.Background()

	created, err := repo.Add(ctx, store.MedicineInput{Name: "Vitamin C", Code: "VC-01"})
	require.NoError(t, err)

	deleted, err := repo.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	again, err := repo.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, again)
}

func TestLowStockBoundary(t *testing.T) {
	repo := store.NewMedicineRepo(newTestDB(t))
	ctx := context.Background()

	_, err := repo.Add(ctx, store.MedicineInput{Name: "At Minimum", Code: "LOW-1", Stock: 5, MinStock: 5})
	require.NoError(t, err)
	_, err = repo.Add(ctx, store.MedicineInput{Name: "Just Above", Code: "LOW-2", Stock: 6, MinStock: 5})
	require.NoError(t, err)

	low, err := repo.LowStock(ctx)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "At Minimum", low[0].Name)
}

func TestExpiringSoonSkipsUnknownExpiry(t *testing.T) {
	repo := store.NewMedicineRepo(newTestDB(t))
	ctx := context.Background()

	_, err := repo.Add(ctx, store.MedicineInput{Name: "Expired Long Ago", Code: "EXP-1", ExpiryDate: "2000-01-01"})
	require.NoError(t, err)
	_, err = repo.Add(ctx, store.MedicineInput{Name: "No Expiry", Code: "EXP-2"})
	require.NoError(t, err)
	_, err = repo.Add(ctx, store.MedicineInput{Name: "Far Future", Code: "EXP-3", ExpiryDate: "2999-12-31"})
	require.NoError(t, err)

	expiring, err := repo.ExpiringSoon(ctx, 30)
	require.NoError(t, err)
	require.Len(t, expiring, 1)
	assert.Equal(t, "Expired Long Ago", expiring[0].Name)
}

func TestAdjustStock(t *testing.T) {
	repo := store.NewMedicineRepo(newTestDB(t))
	ctx := context.Background()

	created, err := repo.Add(ctx, store.MedicineInput{Name: "Saline", Code: "SAL-1", Stock: 10})
	require.NoError(t, err)

	ok, err := repo.AdjustStock(ctx, created.ID, -15)
	require.NoError(t, err)
	assert.True(t, ok)

	m, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	// Stock may go negative; oversells are recorded, not rejected.
	assert.Equal(t, int64(-5), m.Stock)

	ok, err = repo.AdjustStock(ctx, "no-such-id", 1)
	require.NoError(t, err)
	assert.False(t, ok)
}
