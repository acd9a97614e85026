package domain

// Transaction types. "in" and "adjust" raise the medicine's stock,
// "out" and "return" lower it.
const (
	TxIn     = "in"
	TxOut    = "out"
	TxReturn = "return"
	TxAdjust = "adjust"
)

// ValidTransactionType reports whether t is one of the known movement types.
func ValidTransactionType(t string) bool {
	switch t {
	case TxIn, TxOut, TxReturn, TxAdjust:
		return true
	}
	return false
}

// Transaction is an append-only stock movement record. The medicine,
// warehouse and client names are value copies taken at creation time so the
// row stays readable after the referenced entity is renamed or deleted.
type Transaction struct {
	ID            string  `db:"id" json:"id"`
	Type          string  `db:"type" json:"type"`
	MedicineID    string  `db:"medicine_id" json:"medicine_id"`
	MedicineName  string  `db:"medicine_name" json:"medicine_name"`
	WarehouseID   string  `db:"warehouse_id" json:"warehouse_id"`
	WarehouseName string  `db:"warehouse_name" json:"warehouse_name"`
	ClientID      string  `db:"client_id" json:"client_id"`
	ClientName    string  `db:"client_name" json:"client_name"`
	Quantity      int64   `db:"quantity" json:"quantity"`
	UnitPrice     float64 `db:"unit_price" json:"unit_price"`
	TotalAmount   float64 `db:"total_amount" json:"total_amount"`
	BatchNo       string  `db:"batch_no" json:"batch_no"`
	Operator      string  `db:"operator" json:"operator"`
	Remark        string  `db:"remark" json:"remark"`
	CreatedAt     string  `db:"created_at" json:"created_at"`
}

// TodaySummary aggregates the current day's transactions.
type TodaySummary struct {
	InAmount  float64 `db:"in_amount" json:"in_amount"`
	OutAmount float64 `db:"out_amount" json:"out_amount"`
	Count     int64   `db:"count" json:"count"`
}
