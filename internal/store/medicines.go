package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"medstock/domain"
)

// MedicineRepo persists the medicine catalog.
type MedicineRepo struct {
	db *sqlx.DB
}

func NewMedicineRepo(db *sqlx.DB) *MedicineRepo {
	return &MedicineRepo{db: db}
}

// MedicineInput carries the caller-supplied fields for a new medicine.
type MedicineInput struct {
	Name         string  `json:"name"`
	Code         string  `json:"code"`
	Category     string  `json:"category"`
	Spec         string  `json:"spec"`
	Unit         string  `json:"unit"`
	Price        float64 `json:"price"`
	Cost         float64 `json:"cost"`
	Manufacturer string  `json:"manufacturer"`
	Description  string  `json:"description"`
	Stock        int64   `json:"stock"`
	MinStock     int64   `json:"min_stock"`
	ExpiryDate   string  `json:"expiry_date"`
}

// Add inserts a new medicine and returns the fully populated record.
// Returns ErrDuplicateCode when the code is already taken.
func (r *MedicineRepo) Add(ctx context.Context, in MedicineInput) (*domain.Medicine, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, validationErr("name", "required")
	}
	if strings.TrimSpace(in.Code) == "" {
		return nil, validationErr("code", "required")
	}
	if in.Price < 0 {
		return nil, validationErr("price", "must not be negative")
	}
	if in.Cost < 0 {
		return nil, validationErr("cost", "must not be negative")
	}

	ts := now()
	m := &domain.Medicine{
		ID:           newID(),
		Name:         in.Name,
		Code:         in.Code,
		Category:     in.Category,
		Spec:         in.Spec,
		Unit:         in.Unit,
		Price:        in.Price,
		Cost:         in.Cost,
		Manufacturer: in.Manufacturer,
		Description:  in.Description,
		Stock:        in.Stock,
		MinStock:     in.MinStock,
		ExpiryDate:   in.ExpiryDate,
		CreatedAt:    ts,
		UpdatedAt:    ts,
	}

	_, err := r.db.NamedExecContext(ctx, `INSERT INTO medicines
        (id, name, code, category, spec, unit, price, cost, manufacturer, description, stock, min_stock, expiry_date, created_at, updated_at)
        VALUES (:id, :name, :code, :category, :spec, :unit, :price, :cost, :manufacturer, :description, :stock, :min_stock, :expiry_date, :created_at, :updated_at)`, m)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateCode
		}
		return nil, fmt.Errorf("insert medicine: %w", err)
	}
	return m, nil
}

// MedicineUpdate carries a partial update; nil fields are left untouched.
// The id and creation timestamp are immutable.
type MedicineUpdate struct {
	Name         *string  `json:"name"`
	Code         *string  `json:"code"`
	Category     *string  `json:"category"`
	Spec         *string  `json:"spec"`
	Unit         *string  `json:"unit"`
	Price        *float64 `json:"price"`
	Cost         *float64 `json:"cost"`
	Manufacturer *string  `json:"manufacturer"`
	Description  *string  `json:"description"`
	Stock        *int64   `json:"stock"`
	MinStock     *int64   `json:"min_stock"`
	ExpiryDate   *string  `json:"expiry_date"`
}

// Update applies the supplied fields, refreshes updated_at and returns the
// record as stored. Returns ErrNotFound when no row matched.
func (r *MedicineRepo) Update(ctx context.Context, id string, upd MedicineUpdate) (*domain.Medicine, error) {
	var (
		sets []string
		args []any
	)
	set := func(col string, val any) {
		sets = append(sets, col+" = ?")
		args = append(args, val)
	}
	if upd.Name != nil {
		set("name", *upd.Name)
	}
	if upd.Code != nil {
		set("code", *upd.Code)
	}
	if upd.Category != nil {
		set("category", *upd.Category)
	}
	if upd.Spec != nil {
		set("spec", *upd.Spec)
	}
	if upd.Unit != nil {
		set("unit", *upd.Unit)
	}
	if upd.Price != nil {
		set("price", *upd.Price)
	}
	if upd.Cost != nil {
		set("cost", *upd.Cost)
	}
	if upd.Manufacturer != nil {
		set("manufacturer", *upd.Manufacturer)
	}
	if upd.Description != nil {
		set("description", *upd.Description)
	}
	if upd.Stock != nil {
		set("stock", *upd.Stock)
	}
	if upd.MinStock != nil {
		set("min_stock", *upd.MinStock)
	}
	if upd.ExpiryDate != nil {
		set("expiry_date", *upd.ExpiryDate)
	}
	set("updated_at", now())
	args = append(args, id)

	res, err := r.db.ExecContext(ctx, `UPDATE medicines SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateCode
		}
		return nil, fmt.Errorf("update medicine %s: %w", id, err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update medicine %s: %w", id, err)
	}
	if rows == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

// Delete removes the row and reports whether one was removed. Transactions
// and stock records referencing the id are left in place.
func (r *MedicineRepo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM medicines WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete medicine %s: %w", id, err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete medicine %s: %w", id, err)
	}
	return rows > 0, nil
}

// GetByID returns the medicine or nil when it does not exist.
func (r *MedicineRepo) GetByID(ctx context.Context, id string) (*domain.Medicine, error) {
	var m domain.Medicine
	err := r.db.GetContext(ctx, &m, `SELECT * FROM medicines WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get medicine %s: %w", id, err)
	}
	return &m, nil
}

// GetByCode returns the medicine with the exact code, or nil.
func (r *MedicineRepo) GetByCode(ctx context.Context, code string) (*domain.Medicine, error) {
	var m domain.Medicine
	err := r.db.GetContext(ctx, &m, `SELECT * FROM medicines WHERE code = ?`, code)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get medicine by code %s: %w", code, err)
	}
	return &m, nil
}

// GetAll lists medicines newest first. A non-empty keyword filters by
// substring match over name, code and category.
func (r *MedicineRepo) GetAll(ctx context.Context, keyword string) ([]domain.Medicine, error) {
	query := `SELECT * FROM medicines`
	var args []any
	if keyword != "" {
		query += ` WHERE name LIKE ? OR code LIKE ? OR category LIKE ?`
		like := "%" + keyword + "%"
		args = append(args, like, like, like)
	}
	query += ` ORDER BY created_at DESC`

	medicines := []domain.Medicine{}
	if err := r.db.SelectContext(ctx, &medicines, query, args...); err != nil {
		return nil, fmt.Errorf("list medicines: %w", err)
	}
	return medicines, nil
}

// LowStock lists medicines at or below their minimum stock, lowest first.
func (r *MedicineRepo) LowStock(ctx context.Context) ([]domain.Medicine, error) {
	medicines := []domain.Medicine{}
	err := r.db.SelectContext(ctx, &medicines,
		`SELECT * FROM medicines WHERE stock <= min_stock ORDER BY stock ASC`)
	if err != nil {
		return nil, fmt.Errorf("list low-stock medicines: %w", err)
	}
	return medicines, nil
}

// ExpiringSoon lists medicines whose expiry date falls within the next days.
// Rows without an expiry date are excluded: an unknown expiry cannot be
// compared against the cutoff and would otherwise flood the alert list.
func (r *MedicineRepo) ExpiringSoon(ctx context.Context, days int) ([]domain.Medicine, error) {
	medicines := []domain.Medicine{}
	err := r.db.SelectContext(ctx, &medicines,
		`SELECT * FROM medicines
         WHERE expiry_date IS NOT NULL AND expiry_date <> '' AND expiry_date <= ?
         ORDER BY expiry_date ASC`, dateAfter(days))
	if err != nil {
		return nil, fmt.Errorf("list expiring medicines: %w", err)
	}
	return medicines, nil
}

// AdjustStock applies a signed delta to the stock counter and reports
// whether a row was affected. This is the only sanctioned stock mutator
// outside a full update.
func (r *MedicineRepo) AdjustStock(ctx context.Context, id string, delta int64) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE medicines SET stock = stock + ?, updated_at = ? WHERE id = ?`, delta, now(), id)
	if err != nil {
		return false, fmt.Errorf("adjust stock for medicine %s: %w", id, err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("adjust stock for medicine %s: %w", id, err)
	}
	return rows > 0, nil
}

// AdjustStockInTx is AdjustStock scoped to a caller-owned transaction, for
// use by the movement coordinator.
func (r *MedicineRepo) AdjustStockInTx(tx *sqlx.Tx, id string, delta int64) (bool, error) {
	res, err := tx.Exec(`UPDATE medicines SET stock = stock + ?, updated_at = ? WHERE id = ?`, delta, now(), id)
	if err != nil {
		return false, fmt.Errorf("adjust stock for medicine %s: %w", id, err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("adjust stock for medicine %s: %w", id, err)
	}
	return rows > 0, nil
}
