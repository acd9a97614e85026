package store_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medstock/domain"
	"medstock/internal/store"
)

func insertTransaction(t *testing.T, db *sqlx.DB, repo *store.TransactionRepo, txn *domain.Transaction) {
	t.Helper()
	tx, err := db.Beginx()
	require.NoError(t, err)
	require.NoError(t, repo.InsertInTx(tx, txn))
	require.NoError(t, tx.Commit())
}

func TestListTransactionsPagination(t *testing.T) {
	db := newTestDB(t)
	repo := store.NewTransactionRepo(db)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 25; i++ {
		insertTransaction(t, db, repo, &domain.Transaction{
			ID:        fmt.Sprintf("tx-%02d", i),
			Type:      domain.TxIn,
			Quantity:  1,
			CreatedAt: base.Add(time.Duration(i) * time.Second).Format(time.RFC3339),
		})
	}

	page, total, err := repo.List(ctx, store.TransactionFilter{Page: 2, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(25), total)
	require.Len(t, page, 10)

	// Newest first: page 2 holds items 11-20 in creation-descending order.
	assert.Equal(t, "tx-14", page[0].ID)
	assert.Equal(t, "tx-05", page[9].ID)
}

func TestListTransactionsDefaults(t *testing.T) {
	db := newTestDB(t)
	repo := store.NewTransactionRepo(db)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 25; i++ {
		insertTransaction(t, db, repo, &domain.Transaction{
			ID:        fmt.Sprintf("tx-%02d", i),
			Type:      domain.TxOut,
			Quantity:  1,
			CreatedAt: base.Add(time.Duration(i) * time.Second).Format(time.RFC3339),
		})
	}

	// Defaults: page 1, page size 20.
	page, total, err := repo.List(context.Background(), store.TransactionFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(25), total)
	assert.Len(t, page, store.DefaultPageSize)
	assert.Equal(t, "tx-24", page[0].ID)
}

func TestListTransactionsFilters(t *testing.T) {
	db := newTestDB(t)
	repo := store.NewTransactionRepo(db)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	rows := []*domain.Transaction{
		{ID: "a", Type: domain.TxIn, MedicineID: "m1", Quantity: 1, CreatedAt: base.Format(time.RFC3339)},
		{ID: "b", Type: domain.TxOut, MedicineID: "m1", ClientID: "c1", Quantity: 1, CreatedAt: base.Add(time.Minute).Format(time.RFC3339)},
		{ID: "c", Type: domain.TxOut, MedicineID: "m2", ClientID: "c2", Quantity: 1, CreatedAt: base.Add(2 * time.Minute).Format(time.RFC3339)},
	}
	for _, txn := range rows {
		insertTransaction(t, db, repo, txn)
	}

	out, total, err := repo.List(ctx, store.TransactionFilter{Type: domain.TxOut})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, out, 2)
	assert.Equal(t, "c", out[0].ID)

	byClient, total, err := repo.List(ctx, store.TransactionFilter{ClientID: "c1"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "b", byClient[0].ID)

	windowed, total, err := repo.List(ctx, store.TransactionFilter{
		StartDate: base.Add(30 * time.Second).Format(time.RFC3339),
		EndDate:   base.Add(90 * time.Second).Format(time.RFC3339),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "b", windowed[0].ID)
}

func TestTodaySummary(t *testing.T) {
	db := newTestDB(t)
	repo := store.NewTransactionRepo(db)

	nowUTC := time.Now().UTC()
	yesterday := nowUTC.AddDate(0, 0, -1)

	insertTransaction(t, db, repo, &domain.Transaction{
		ID: "today-in", Type: domain.TxIn, Quantity: 2, TotalAmount: 100,
		CreatedAt: nowUTC.Format(time.RFC3339),
	})
	insertTransaction(t, db, repo, &domain.Transaction{
		ID: "today-out", Type: domain.TxOut, Quantity: 1, TotalAmount: 40,
		CreatedAt: nowUTC.Format(time.RFC3339),
	})
	insertTransaction(t, db, repo, &domain.Transaction{
		ID: "old-out", Type: domain.TxOut, Quantity: 1, TotalAmount: 999,
		CreatedAt: yesterday.Format(time.RFC3339),
	})

	summary, err := repo.TodaySummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 100.0, summary.InAmount)
	assert.Equal(t, 40.0, summary.OutAmount)
	assert.Equal(t, int64(2), summary.Count)
}

func TestMonthlySales(t *testing.T) {
	db := newTestDB(t)
	repo := store.NewTransactionRepo(db)

	nowUTC := time.Now().UTC()
	beforeMonth := time.Date(nowUTC.Year(), nowUTC.Month(), 1, 0, 0, 0, 0, time.UTC).Add(-time.Hour)

	insertTransaction(t, db, repo, &domain.Transaction{
		ID: "sale-now", Type: domain.TxOut, Quantity: 1, TotalAmount: 75,
		CreatedAt: nowUTC.Format(time.RFC3339),
	})
	insertTransaction(t, db, repo, &domain.Transaction{
		ID: "in-now", Type: domain.TxIn, Quantity: 1, TotalAmount: 500,
		CreatedAt: nowUTC.Format(time.RFC3339),
	})
	insertTransaction(t, db, repo, &domain.Transaction{
		ID: "sale-last-month", Type: domain.TxOut, Quantity: 1, TotalAmount: 200,
		CreatedAt: beforeMonth.Format(time.RFC3339),
	})

	total, err := repo.MonthlySales(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 75.0, total)
}
