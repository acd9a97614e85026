package domain

// Statistics is the dashboard composite.
type Statistics struct {
	TotalMedicines    int     `json:"total_medicines"`
	TotalStockValue   float64 `json:"total_stock_value"`
	TotalWarehouses   int     `json:"total_warehouses"`
	TotalClients      int     `json:"total_clients"`
	TodayTransactions int64   `json:"today_transactions"`
	TodayInAmount     float64 `json:"today_in_amount"`
	TodayOutAmount    float64 `json:"today_out_amount"`
	MonthlySales      float64 `json:"monthly_sales"`
	LowStockMedicines int     `json:"low_stock_medicines"`
	ExpiringMedicines int     `json:"expiring_medicines"`
}
