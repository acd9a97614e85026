package report_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medstock/domain"
	"medstock/internal/database"
	"medstock/internal/ledger"
	"medstock/internal/migrations"
	"medstock/internal/report"
	"medstock/internal/store"
)

func TestDashboard(t *testing.T) {
	db := database.Connect(":memory:")
	migrations.Run(db)
	t.Cleanup(func() { db.Close() })

	medicines := store.NewMedicineRepo(db)
	warehouses := store.NewWarehouseRepo(db)
	clients := store.NewClientRepo(db)
	transactions := store.NewTransactionRepo(db)
	stockRecords := store.NewStockRecordRepo(db)
	movements := ledger.New(db, medicines, warehouses, clients, transactions, stockRecords)
	service := report.New(medicines, warehouses, clients, transactions)

	ctx := context.Background()

	soon := time.Now().UTC().AddDate(0, 0, 10).Format("2006-01-02")
	aspirin, err := medicines.Add(ctx, store.MedicineInput{
		Name: "Aspirin", Code: "ASP-100", Price: 5, Cost: 3, Stock: 100, MinStock: 10,
	})
	require.NoError(t, err)
	_, err = medicines.Add(ctx, store.MedicineInput{
		Name: "Insulin", Code: "INS-10", Price: 40, Cost: 25, Stock: 2, MinStock: 5, ExpiryDate: soon,
	})
	require.NoError(t, err)

	warehouse, err := warehouses.Add(ctx, store.WarehouseInput{Name: "Main Warehouse"})
	require.NoError(t, err)
	client, err := clients.Add(ctx, store.ClientInput{Name: "Corner Pharmacy", Type: domain.ClientRetail})
	require.NoError(t, err)

	_, err = movements.RecordTransaction(ctx, ledger.RecordRequest{
		Type: domain.TxIn, MedicineID: aspirin.ID, WarehouseID: warehouse.ID, Quantity: 20,
	})
	require.NoError(t, err)
	_, err = movements.RecordTransaction(ctx, ledger.RecordRequest{
		Type: domain.TxOut, MedicineID: aspirin.ID, WarehouseID: warehouse.ID, ClientID: client.ID, Quantity: 10,
	})
	require.NoError(t, err)

	stats, err := service.Dashboard(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.TotalMedicines)
	assert.Equal(t, 1, stats.TotalWarehouses)
	assert.Equal(t, 1, stats.TotalClients)
	assert.Equal(t, int64(2), stats.TodayTransactions)
	assert.Equal(t, 100.0, stats.TodayInAmount)  // 20 x 5
	assert.Equal(t, 50.0, stats.TodayOutAmount)  // 10 x 5
	assert.Equal(t, 50.0, stats.MonthlySales)
	assert.Equal(t, 1, stats.LowStockMedicines)  // insulin at 2 <= 5
	assert.Equal(t, 1, stats.ExpiringMedicines)

	// Stock value reflects the moved stock: aspirin 100+20-10=110 at cost 3,
	// insulin 2 at cost 25.
	assert.InDelta(t, 110*3.0+2*25.0, stats.TotalStockValue, 0.001)
}
