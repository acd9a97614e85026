package domain

// Warehouse describes a storage location. CurrentStock is caller-maintained
// and not derived from transactions.
type Warehouse struct {
	ID           string `db:"id" json:"id"`
	Name         string `db:"name" json:"name"`
	Location     string `db:"location" json:"location"`
	Capacity     int64  `db:"capacity" json:"capacity"`
	CurrentStock int64  `db:"current_stock" json:"current_stock"`
	Manager      string `db:"manager" json:"manager"`
	Phone        string `db:"phone" json:"phone"`
	Description  string `db:"description" json:"description"`
	CreatedAt    string `db:"created_at" json:"created_at"`
	UpdatedAt    string `db:"updated_at" json:"updated_at"`
}
