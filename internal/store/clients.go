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

// ClientRepo persists customers (retail, wholesale, hospital, clinic).
type ClientRepo struct {
	db *sqlx.DB
}

func NewClientRepo(db *sqlx.DB) *ClientRepo {
	return &ClientRepo{db: db}
}

type ClientInput struct {
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	Phone       string  `json:"phone"`
	Address     string  `json:"address"`
	Email       string  `json:"email"`
	Credit      float64 `json:"credit"`
	Balance     float64 `json:"balance"`
	Description string  `json:"description"`
}

func (r *ClientRepo) Add(ctx context.Context, in ClientInput) (*domain.Client, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, validationErr("name", "required")
	}
	if !domain.ValidClientType(in.Type) {
		return nil, validationErr("type", "must be retail, wholesale, hospital or clinic")
	}

	ts := now()
	c := &domain.Client{
		ID:          newID(),
		Name:        in.Name,
		Type:        in.Type,
		Phone:       in.Phone,
		Address:     in.Address,
		Email:       in.Email,
		Credit:      in.Credit,
		Balance:     in.Balance,
		Description: in.Description,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}

	_, err := r.db.NamedExecContext(ctx, `INSERT INTO clients
        (id, name, type, phone, address, email, credit, balance, total_purchases, description, created_at, updated_at)
        VALUES (:id, :name, :type, :phone, :address, :email, :credit, :balance, :total_purchases, :description, :created_at, :updated_at)`, c)
	if err != nil {
		return nil, fmt.Errorf("insert client: %w", err)
	}
	return c, nil
}

type ClientUpdate struct {
	Name           *string  `json:"name"`
	Type           *string  `json:"type"`
	Phone          *string  `json:"phone"`
	Address        *string  `json:"address"`
	Email          *string  `json:"email"`
	Credit         *float64 `json:"credit"`
	Balance        *float64 `json:"balance"`
	TotalPurchases *float64 `json:"total_purchases"`
	Description    *string  `json:"description"`
}

func (r *ClientRepo) Update(ctx context.Context, id string, upd ClientUpdate) (*domain.Client, error) {
	if upd.Type != nil && !domain.ValidClientType(*upd.Type) {
		return nil, validationErr("type", "must be retail, wholesale, hospital or clinic")
	}

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
	if upd.Type != nil {
		set("type", *upd.Type)
	}
	if upd.Phone != nil {
		set("phone", *upd.Phone)
	}
	if upd.Address != nil {
		set("address", *upd.Address)
	}
	if upd.Email != nil {
		set("email", *upd.Email)
	}
	if upd.Credit != nil {
		set("credit", *upd.Credit)
	}
	if upd.Balance != nil {
		set("balance", *upd.Balance)
	}
	if upd.TotalPurchases != nil {
		set("total_purchases", *upd.TotalPurchases)
	}
	if upd.Description != nil {
		set("description", *upd.Description)
	}
	set("updated_at", now())
	args = append(args, id)

	res, err := r.db.ExecContext(ctx, `UPDATE clients SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return nil, fmt.Errorf("update client %s: %w", id, err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update client %s: %w", id, err)
	}
	if rows == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *ClientRepo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete client %s: %w", id, err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete client %s: %w", id, err)
	}
	return rows > 0, nil
}

func (r *ClientRepo) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	var c domain.Client
	err := r.db.GetContext(ctx, &c, `SELECT * FROM clients WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get client %s: %w", id, err)
	}
	return &c, nil
}

// GetAll lists clients alphabetically. A non-empty keyword filters by
// substring match over name and phone.
func (r *ClientRepo) GetAll(ctx context.Context, keyword string) ([]domain.Client, error) {
	query := `SELECT * FROM clients`
	var args []any
	if keyword != "" {
		query += ` WHERE name LIKE ? OR phone LIKE ?`
		like := "%" + keyword + "%"
		args = append(args, like, like)
	}
	query += ` ORDER BY name ASC`

	clients := []domain.Client{}
	if err := r.db.SelectContext(ctx, &clients, query, args...); err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	return clients, nil
}
