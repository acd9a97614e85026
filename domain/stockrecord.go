package domain

// StockRecord is a batch-level ledger entry, kept independently of the
// transaction log. Name fields are snapshots, as on Transaction.
type StockRecord struct {
	ID            string `db:"id" json:"id"`
	MedicineID    string `db:"medicine_id" json:"medicine_id"`
	MedicineName  string `db:"medicine_name" json:"medicine_name"`
	WarehouseID   string `db:"warehouse_id" json:"warehouse_id"`
	WarehouseName string `db:"warehouse_name" json:"warehouse_name"`
	Quantity      int64  `db:"quantity" json:"quantity"`
	BatchNo       string `db:"batch_no" json:"batch_no"`
	ExpiryDate    string `db:"expiry_date" json:"expiry_date"`
	CreatedAt     string `db:"created_at" json:"created_at"`
	UpdatedAt     string `db:"updated_at" json:"updated_at"`
}
