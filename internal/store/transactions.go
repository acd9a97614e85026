package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"medstock/domain"
)

// DefaultPageSize bounds transaction listings when the caller does not ask
// for a specific page size.
const DefaultPageSize = 20

// TransactionRepo reads the append-only movement log. Rows are only written
// through the coordinator's transaction scope; nothing updates or deletes
// them afterwards.
type TransactionRepo struct {
	db *sqlx.DB
}

func NewTransactionRepo(db *sqlx.DB) *TransactionRepo {
	return &TransactionRepo{db: db}
}

// InsertInTx appends a fully populated transaction row inside the caller's
// database transaction.
func (r *TransactionRepo) InsertInTx(tx *sqlx.Tx, t *domain.Transaction) error {
	_, err := tx.NamedExec(`INSERT INTO transactions
        (id, type, medicine_id, medicine_name, warehouse_id, warehouse_name, client_id, client_name, quantity, unit_price, total_amount, batch_no, operator, remark, created_at)
        VALUES (:id, :type, :medicine_id, :medicine_name, :warehouse_id, :warehouse_name, :client_id, :client_name, :quantity, :unit_price, :total_amount, :batch_no, :operator, :remark, :created_at)`, t)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// TransactionFilter narrows and pages a listing. Zero values mean "no
// filter"; Page defaults to 1 and PageSize to DefaultPageSize.
type TransactionFilter struct {
	Type       string
	MedicineID string
	ClientID   string
	StartDate  string
	EndDate    string
	Page       int
	PageSize   int
}

// List returns one page of transactions newest first, along with the total
// number of rows matching the filter.
func (r *TransactionRepo) List(ctx context.Context, f TransactionFilter) ([]domain.Transaction, int64, error) {
	var (
		clauses []string
		args    []any
	)
	if f.Type != "" {
		clauses = append(clauses, "type = ?")
		args = append(args, f.Type)
	}
	if f.MedicineID != "" {
		clauses = append(clauses, "medicine_id = ?")
		args = append(args, f.MedicineID)
	}
	if f.ClientID != "" {
		clauses = append(clauses, "client_id = ?")
		args = append(args, f.ClientID)
	}
	if f.StartDate != "" {
		clauses = append(clauses, "created_at >= ?")
		args = append(args, f.StartDate)
	}
	if f.EndDate != "" {
		clauses = append(clauses, "created_at <= ?")
		args = append(args, f.EndDate)
	}

	where := ""
	if len(clauses) > 0 {
		where = " WHERE " + strings.Join(clauses, " AND ")
	}

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM transactions`+where, args...); err != nil {
		return nil, 0, fmt.Errorf("count transactions: %w", err)
	}

	page := f.Page
	if page < 1 {
		page = 1
	}
	pageSize := f.PageSize
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	offset := (page - 1) * pageSize

	transactions := []domain.Transaction{}
	query := `SELECT * FROM transactions` + where + ` ORDER BY created_at DESC LIMIT ? OFFSET ?`
	if err := r.db.SelectContext(ctx, &transactions, query, append(args, pageSize, offset)...); err != nil {
		return nil, 0, fmt.Errorf("list transactions: %w", err)
	}
	return transactions, total, nil
}

// TodaySummary sums today's movements by type. "Today" is the current UTC
// calendar date, matched as a prefix of the stored timestamp.
func (r *TransactionRepo) TodaySummary(ctx context.Context) (*domain.TodaySummary, error) {
	today := time.Now().UTC().Format("2006-01-02")

	var s domain.TodaySummary
	err := r.db.GetContext(ctx, &s, `SELECT
            COALESCE(SUM(CASE WHEN type = 'in' THEN total_amount ELSE 0 END), 0) AS in_amount,
            COALESCE(SUM(CASE WHEN type = 'out' THEN total_amount ELSE 0 END), 0) AS out_amount,
            COUNT(*) AS count
        FROM transactions
        WHERE created_at LIKE ?`, today+"%")
	if err != nil {
		return nil, fmt.Errorf("today summary: %w", err)
	}
	return &s, nil
}

// MonthlySales sums outgoing amounts since the first day of the current
// month (UTC).
func (r *TransactionRepo) MonthlySales(ctx context.Context) (float64, error) {
	nowUTC := time.Now().UTC()
	firstDay := time.Date(nowUTC.Year(), nowUTC.Month(), 1, 0, 0, 0, 0, time.UTC).Format(time.RFC3339)

	var total float64
	err := r.db.GetContext(ctx, &total,
		`SELECT COALESCE(SUM(total_amount), 0) FROM transactions WHERE type = 'out' AND created_at >= ?`, firstDay)
	if err != nil {
		return 0, fmt.Errorf("monthly sales: %w", err)
	}
	return total, nil
}
