package domain

// Medicine is a catalog entry with its current on-hand stock counter.
// Stock is only mutated through the stock-adjustment path or a full update;
// it may go negative when an oversell is recorded.
type Medicine struct {
	ID           string  `db:"id" json:"id"`
	Name         string  `db:"name" json:"name"`
	Code         string  `db:"code" json:"code"`
	Category     string  `db:"category" json:"category"`
	Spec         string  `db:"spec" json:"spec"`
	Unit         string  `db:"unit" json:"unit"`
	Price        float64 `db:"price" json:"price"`
	Cost         float64 `db:"cost" json:"cost"`
	Manufacturer string  `db:"manufacturer" json:"manufacturer"`
	Description  string  `db:"description" json:"description"`
	Stock        int64   `db:"stock" json:"stock"`
	MinStock     int64   `db:"min_stock" json:"min_stock"`
	ExpiryDate   string  `db:"expiry_date" json:"expiry_date"`
	CreatedAt    string  `db:"created_at" json:"created_at"`
	UpdatedAt    string  `db:"updated_at" json:"updated_at"`
}
