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

// WarehouseRepo persists storage locations.
type WarehouseRepo struct {
	db *sqlx.DB
}

func NewWarehouseRepo(db *sqlx.DB) *WarehouseRepo {
	return &WarehouseRepo{db: db}
}

type WarehouseInput struct {
	Name         string `json:"name"`
	Location     string `json:"location"`
	Capacity     int64  `json:"capacity"`
	CurrentStock int64  `json:"current_stock"`
	Manager      string `json:"manager"`
	Phone        string `json:"phone"`
	Description  string `json:"description"`
}

func (r *WarehouseRepo) Add(ctx context.Context, in WarehouseInput) (*domain.Warehouse, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, validationErr("name", "required")
	}
	if in.Capacity < 0 {
		return nil, validationErr("capacity", "must not be negative")
	}

	ts := now()
	w := &domain.Warehouse{
		ID:           newID(),
		Name:         in.Name,
		Location:     in.Location,
		Capacity:     in.Capacity,
		CurrentStock: in.CurrentStock,
		Manager:      in.Manager,
		Phone:        in.Phone,
		Description:  in.Description,
		CreatedAt:    ts,
		UpdatedAt:    ts,
	}

	_, err := r.db.NamedExecContext(ctx, `INSERT INTO warehouses
        (id, name, location, capacity, current_stock, manager, phone, description, created_at, updated_at)
        VALUES (:id, :name, :location, :capacity, :current_stock, :manager, :phone, :description, :created_at, :updated_at)`, w)
	if err != nil {
		return nil, fmt.Errorf("insert warehouse: %w", err)
	}
	return w, nil
}

type WarehouseUpdate struct {
	Name         *string `json:"name"`
	Location     *string `json:"location"`
	Capacity     *int64  `json:"capacity"`
	CurrentStock *int64  `json:"current_stock"`
	Manager      *string `json:"manager"`
	Phone        *string `json:"phone"`
	Description  *string `json:"description"`
}

func (r *WarehouseRepo) Update(ctx context.Context, id string, upd WarehouseUpdate) (*domain.Warehouse, error) {
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
	if upd.Location != nil {
		set("location", *upd.Location)
	}
	if upd.Capacity != nil {
		set("capacity", *upd.Capacity)
	}
	if upd.CurrentStock != nil {
		set("current_stock", *upd.CurrentStock)
	}
	if upd.Manager != nil {
		set("manager", *upd.Manager)
	}
	if upd.Phone != nil {
		set("phone", *upd.Phone)
	}
	if upd.Description != nil {
		set("description", *upd.Description)
	}
	set("updated_at", now())
	args = append(args, id)

	res, err := r.db.ExecContext(ctx, `UPDATE warehouses SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return nil, fmt.Errorf("update warehouse %s: %w", id, err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update warehouse %s: %w", id, err)
	}
	if rows == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *WarehouseRepo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM warehouses WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete warehouse %s: %w", id, err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete warehouse %s: %w", id, err)
	}
	return rows > 0, nil
}

func (r *WarehouseRepo) GetByID(ctx context.Context, id string) (*domain.Warehouse, error) {
	var w domain.Warehouse
	err := r.db.GetContext(ctx, &w, `SELECT * FROM warehouses WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get warehouse %s: %w", id, err)
	}
	return &w, nil
}

// GetAll lists warehouses alphabetically.
func (r *WarehouseRepo) GetAll(ctx context.Context) ([]domain.Warehouse, error) {
	warehouses := []domain.Warehouse{}
	if err := r.db.SelectContext(ctx, &warehouses, `SELECT * FROM warehouses ORDER BY name ASC`); err != nil {
		return nil, fmt.Errorf("list warehouses: %w", err)
	}
	return warehouses, nil
}
