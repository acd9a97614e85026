package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"medstock/domain"
)

// StockRecordRepo persists the batch-level stock ledger.
type StockRecordRepo struct {
	db *sqlx.DB
}

func NewStockRecordRepo(db *sqlx.DB) *StockRecordRepo {
	return &StockRecordRepo{db: db}
}

// StockRecordInput carries a batch receipt, names already snapshotted.
type StockRecordInput struct {
	MedicineID    string `json:"medicine_id"`
	MedicineName  string `json:"medicine_name"`
	WarehouseID   string `json:"warehouse_id"`
	WarehouseName string `json:"warehouse_name"`
	Quantity      int64  `json:"quantity"`
	BatchNo       string `json:"batch_no"`
	ExpiryDate    string `json:"expiry_date"`
}

func (r *StockRecordRepo) Add(ctx context.Context, in StockRecordInput) (*domain.StockRecord, error) {
	ts := now()
	rec := &domain.StockRecord{
		ID:            newID(),
		MedicineID:    in.MedicineID,
		MedicineName:  in.MedicineName,
		WarehouseID:   in.WarehouseID,
		WarehouseName: in.WarehouseName,
		Quantity:      in.Quantity,
		BatchNo:       in.BatchNo,
		ExpiryDate:    in.ExpiryDate,
		CreatedAt:     ts,
		UpdatedAt:     ts,
	}

	_, err := r.db.NamedExecContext(ctx, `INSERT INTO stock_records
        (id, medicine_id, medicine_name, warehouse_id, warehouse_name, quantity, batch_no, expiry_date, created_at, updated_at)
        VALUES (:id, :medicine_id, :medicine_name, :warehouse_id, :warehouse_name, :quantity, :batch_no, :expiry_date, :created_at, :updated_at)`, rec)
	if err != nil {
		return nil, fmt.Errorf("insert stock record: %w", err)
	}
	return rec, nil
}

func (r *StockRecordRepo) ByMedicine(ctx context.Context, medicineID string) ([]domain.StockRecord, error) {
	records := []domain.StockRecord{}
	err := r.db.SelectContext(ctx, &records,
		`SELECT * FROM stock_records WHERE medicine_id = ? ORDER BY created_at DESC`, medicineID)
	if err != nil {
		return nil, fmt.Errorf("list stock records for medicine %s: %w", medicineID, err)
	}
	return records, nil
}

func (r *StockRecordRepo) ByWarehouse(ctx context.Context, warehouseID string) ([]domain.StockRecord, error) {
	records := []domain.StockRecord{}
	err := r.db.SelectContext(ctx, &records,
		`SELECT * FROM stock_records WHERE warehouse_id = ? ORDER BY created_at DESC`, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("list stock records for warehouse %s: %w", warehouseID, err)
	}
	return records, nil
}
