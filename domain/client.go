package domain

// Client types accepted on creation.
const (
	ClientRetail    = "retail"
	ClientWholesale = "wholesale"
	ClientHospital  = "hospital"
	ClientClinic    = "clinic"
)

// ValidClientType reports whether t is one of the known client types.
func ValidClientType(t string) bool {
	switch t {
	case ClientRetail, ClientWholesale, ClientHospital, ClientClinic:
		return true
	}
	return false
}

type Client struct {
	ID             string  `db:"id" json:"id"`
	Name           string  `db:"name" json:"name"`
	Type           string  `db:"type" json:"type"`
	Phone          string  `db:"phone" json:"phone"`
	Address        string  `db:"address" json:"address"`
	Email          string  `db:"email" json:"email"`
	Credit         float64 `db:"credit" json:"credit"`
	Balance        float64 `db:"balance" json:"balance"`
	TotalPurchases float64 `db:"total_purchases" json:"total_purchases"`
	Description    string  `db:"description" json:"description"`
	CreatedAt      string  `db:"created_at" json:"created_at"`
	UpdatedAt      string  `db:"updated_at" json:"updated_at"`
}
