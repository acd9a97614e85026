// Package ledger coordinates stock movements: every recorded transaction and
// its matching stock adjustment are applied as one database transaction, so
// current stock always equals initial stock plus the sum of signed movement
// quantities.
package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"medstock/domain"
	"medstock/internal/store"
)

// Ledger records stock movements and batch receipts.
type Ledger struct {
	db           *sqlx.DB
	medicines    *store.MedicineRepo
	warehouses   *store.WarehouseRepo
	clients      *store.ClientRepo
	transactions *store.TransactionRepo
	stockRecords *store.StockRecordRepo
}

func New(db *sqlx.DB, medicines *store.MedicineRepo, warehouses *store.WarehouseRepo,
	clients *store.ClientRepo, transactions *store.TransactionRepo, stockRecords *store.StockRecordRepo) *Ledger {
	return &Ledger{
		db:           db,
		medicines:    medicines,
		warehouses:   warehouses,
		clients:      clients,
		transactions: transactions,
		stockRecords: stockRecords,
	}
}

// RecordRequest describes a stock movement to be recorded.
type RecordRequest struct {
	Type        string   `json:"type"`
	MedicineID  string   `json:"medicine_id"`
	WarehouseID string   `json:"warehouse_id"`
	ClientID    string   `json:"client_id"`
	Quantity    int64    `json:"quantity"`
	UnitPrice   *float64 `json:"unit_price"`
	BatchNo     string   `json:"batch_no"`
	Operator    string   `json:"operator"`
	Remark      string   `json:"remark"`
}

// RecordTransaction validates the request, snapshots the referenced entity
// names, and appends the transaction row together with the signed stock
// adjustment. Both statements commit or roll back as a unit. The unit price
// defaults to the medicine's current sale price.
func (l *Ledger) RecordTransaction(ctx context.Context, req RecordRequest) (*domain.Transaction, error) {
	if !domain.ValidTransactionType(req.Type) {
		return nil, &store.ValidationError{Field: "type", Reason: "must be in, out, return or adjust"}
	}
	if req.Quantity <= 0 {
		return nil, &store.ValidationError{Field: "quantity", Reason: "must be greater than zero"}
	}
	if req.Type == domain.TxOut && req.ClientID == "" {
		return nil, &store.ValidationError{Field: "client_id", Reason: "required for out transactions"}
	}

	medicine, err := l.medicines.GetByID(ctx, req.MedicineID)
	if err != nil {
		return nil, err
	}
	if medicine == nil {
		return nil, fmt.Errorf("medicine %s: %w", req.MedicineID, store.ErrNotFound)
	}

	warehouse, err := l.warehouses.GetByID(ctx, req.WarehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, fmt.Errorf("warehouse %s: %w", req.WarehouseID, store.ErrNotFound)
	}

	// A dangling client id is tolerated; the row just carries an empty name.
	var clientName string
	if req.ClientID != "" {
		client, err := l.clients.GetByID(ctx, req.ClientID)
		if err != nil {
			return nil, err
		}
		if client != nil {
			clientName = client.Name
		}
	}

	unitPrice := medicine.Price
	if req.UnitPrice != nil {
		unitPrice = *req.UnitPrice
	}

	t := &domain.Transaction{
		ID:            uuid.NewString(),
		Type:          req.Type,
		MedicineID:    req.MedicineID,
		MedicineName:  medicine.Name,
		WarehouseID:   req.WarehouseID,
		WarehouseName: warehouse.Name,
		ClientID:      req.ClientID,
		ClientName:    clientName,
		Quantity:      req.Quantity,
		UnitPrice:     unitPrice,
		TotalAmount:   float64(req.Quantity) * unitPrice,
		BatchNo:       req.BatchNo,
		Operator:      req.Operator,
		Remark:        req.Remark,
		CreatedAt:     time.Now().UTC().Format(time.RFC3339),
	}

	delta := req.Quantity
	if req.Type == domain.TxOut || req.Type == domain.TxReturn {
		delta = -delta
	}

	tx, err := l.db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("begin movement transaction: %w", err)
	}
	defer tx.Rollback()

	if err := l.transactions.InsertInTx(tx, t); err != nil {
		return nil, err
	}
	adjusted, err := l.medicines.AdjustStockInTx(tx, req.MedicineID, delta)
	if err != nil {
		return nil, err
	}
	if !adjusted {
		return nil, fmt.Errorf("medicine %s: %w", req.MedicineID, store.ErrNotFound)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit movement transaction: %w", err)
	}
	return t, nil
}

// BatchRequest describes a batch receipt for the stock-record ledger.
type BatchRequest struct {
	MedicineID  string `json:"medicine_id"`
	WarehouseID string `json:"warehouse_id"`
	Quantity    int64  `json:"quantity"`
	BatchNo     string `json:"batch_no"`
	ExpiryDate  string `json:"expiry_date"`
}

// ReceiveBatch records a batch stock record with name snapshots. It does not
// touch the medicine's stock counter; that stays with RecordTransaction.
func (l *Ledger) ReceiveBatch(ctx context.Context, req BatchRequest) (*domain.StockRecord, error) {
	if req.Quantity <= 0 {
		return nil, &store.ValidationError{Field: "quantity", Reason: "must be greater than zero"}
	}

	medicine, err := l.medicines.GetByID(ctx, req.MedicineID)
	if err != nil {
		return nil, err
	}
	if medicine == nil {
		return nil, fmt.Errorf("medicine %s: %w", req.MedicineID, store.ErrNotFound)
	}

	warehouse, err := l.warehouses.GetByID(ctx, req.WarehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, fmt.Errorf("warehouse %s: %w", req.WarehouseID, store.ErrNotFound)
	}

	return l.stockRecords.Add(ctx, store.StockRecordInput{
		MedicineID:    req.MedicineID,
		MedicineName:  medicine.Name,
		WarehouseID:   req.WarehouseID,
		WarehouseName: warehouse.Name,
		Quantity:      req.Quantity,
		BatchNo:       req.BatchNo,
		ExpiryDate:    req.ExpiryDate,
	})
}
