package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"medstock/internal/ledger"
	"medstock/internal/report"
	"medstock/internal/store"
)

// Handler bundles dependencies for HTTP handlers.
type Handler struct {
	medicines    *store.MedicineRepo
	warehouses   *store.WarehouseRepo
	clients      *store.ClientRepo
	transactions *store.TransactionRepo
	stockRecords *store.StockRecordRepo
	ledger       *ledger.Ledger
	reports      *report.Service
}

// New constructs a Handler.
func New(medicines *store.MedicineRepo, warehouses *store.WarehouseRepo, clients *store.ClientRepo,
	transactions *store.TransactionRepo, stockRecords *store.StockRecordRepo,
	movements *ledger.Ledger, reports *report.Service) *Handler {
	return &Handler{
		medicines:    medicines,
		warehouses:   warehouses,
		clients:      clients,
		transactions: transactions,
		stockRecords: stockRecords,
		ledger:       movements,
		reports:      reports,
	}
}

// Router wires up the HTTP API.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", h.health)

	r.Route("/medicines", func(r chi.Router) {
		r.Post("/", h.addMedicine)
		r.Get("/", h.listMedicines)
		r.Get("/low-stock", h.lowStockMedicines)
		r.Get("/expiring", h.expiringMedicines)
		r.Get("/code/{code}", h.getMedicineByCode)
		r.Get("/{id}", h.getMedicine)
		r.Put("/{id}", h.updateMedicine)
		r.Delete("/{id}", h.deleteMedicine)
	})

	r.Route("/warehouses", func(r chi.Router) {
		r.Post("/", h.addWarehouse)
		r.Get("/", h.listWarehouses)
		r.Get("/{id}", h.getWarehouse)
		r.Put("/{id}", h.updateWarehouse)
		r.Delete("/{id}", h.deleteWarehouse)
	})

	r.Route("/clients", func(r chi.Router) {
		r.Post("/", h.addClient)
		r.Get("/", h.listClients)
		r.Get("/{id}", h.getClient)
		r.Put("/{id}", h.updateClient)
		r.Delete("/{id}", h.deleteClient)
	})

	r.Route("/transactions", func(r chi.Router) {
		r.Post("/", h.recordTransaction)
		r.Get("/", h.listTransactions)
		r.Get("/summary/today", h.todaySummary)
		r.Get("/summary/monthly", h.monthlySales)
	})

	r.Route("/stock-records", func(r chi.Router) {
		r.Post("/", h.receiveBatch)
		r.Get("/medicine/{id}", h.stockRecordsByMedicine)
		r.Get("/warehouse/{id}", h.stockRecordsByWarehouse)
	})

	r.Get("/dashboard", h.dashboard)

	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Medicine handlers

func (h *Handler) addMedicine(w http.ResponseWriter, r *http.Request) {
	var in store.MedicineInput
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	medicine, err := h.medicines.Add(r.Context(), in)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, medicine)
}

func (h *Handler) listMedicines(w http.ResponseWriter, r *http.Request) {
	keyword := strings.TrimSpace(r.URL.Query().Get("keyword"))
	medicines, err := h.medicines.GetAll(r.Context(), keyword)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, medicines)
}

func (h *Handler) lowStockMedicines(w http.ResponseWriter, r *http.Request) {
	medicines, err := h.medicines.LowStock(r.Context())
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, medicines)
}

func (h *Handler) expiringMedicines(w http.ResponseWriter, r *http.Request) {
	days, _ := strconv.Atoi(r.URL.Query().Get("days"))
	if days <= 0 {
		days = report.ExpiryHorizonDays
	}
	medicines, err := h.medicines.ExpiringSoon(r.Context(), days)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, medicines)
}

func (h *Handler) getMedicine(w http.ResponseWriter, r *http.Request) {
	medicine, err := h.medicines.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if medicine == nil {
		respondError(w, http.StatusNotFound, "medicine not found")
		return
	}
	respondJSON(w, http.StatusOK, medicine)
}

func (h *Handler) getMedicineByCode(w http.ResponseWriter, r *http.Request) {
	medicine, err := h.medicines.GetByCode(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if medicine == nil {
		respondError(w, http.StatusNotFound, "medicine not found")
		return
	}
	respondJSON(w, http.StatusOK, medicine)
}

func (h *Handler) updateMedicine(w http.ResponseWriter, r *http.Request) {
	var upd store.MedicineUpdate
	if err := decodeJSON(r, &upd); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	medicine, err := h.medicines.Update(r.Context(), chi.URLParam(r, "id"), upd)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, medicine)
}

func (h *Handler) deleteMedicine(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.medicines.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if !deleted {
		respondError(w, http.StatusNotFound, "medicine not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Warehouse handlers

func (h *Handler) addWarehouse(w http.ResponseWriter, r *http.Request) {
	var in store.WarehouseInput
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	warehouse, err := h.warehouses.Add(r.Context(), in)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, warehouse)
}

func (h *Handler) listWarehouses(w http.ResponseWriter, r *http.Request) {
	warehouses, err := h.warehouses.GetAll(r.Context())
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, warehouses)
}

func (h *Handler) getWarehouse(w http.ResponseWriter, r *http.Request) {
	warehouse, err := h.warehouses.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if warehouse == nil {
		respondError(w, http.StatusNotFound, "warehouse not found")
		return
	}
	respondJSON(w, http.StatusOK, warehouse)
}

func (h *Handler) updateWarehouse(w http.ResponseWriter, r *http.Request) {
	var upd store.WarehouseUpdate
	if err := decodeJSON(r, &upd); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	warehouse, err := h.warehouses.Update(r.Context(), chi.URLParam(r, "id"), upd)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, warehouse)
}

func (h *Handler) deleteWarehouse(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.warehouses.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if !deleted {
		respondError(w, http.StatusNotFound, "warehouse not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Client handlers

func (h *Handler) addClient(w http.ResponseWriter, r *http.Request) {
	var in store.ClientInput
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	client, err := h.clients.Add(r.Context(), in)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, client)
}

func (h *Handler) listClients(w http.ResponseWriter, r *http.Request) {
	keyword := strings.TrimSpace(r.URL.Query().Get("keyword"))
	clients, err := h.clients.GetAll(r.Context(), keyword)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, clients)
}

func (h *Handler) getClient(w http.ResponseWriter, r *http.Request) {
	client, err := h.clients.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if client == nil {
		respondError(w, http.StatusNotFound, "client not found")
		return
	}
	respondJSON(w, http.StatusOK, client)
}

func (h *Handler) updateClient(w http.ResponseWriter, r *http.Request) {
	var upd store.ClientUpdate
	if err := decodeJSON(r, &upd); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	client, err := h.clients.Update(r.Context(), chi.URLParam(r, "id"), upd)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, client)
}

func (h *Handler) deleteClient(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.clients.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if !deleted {
		respondError(w, http.StatusNotFound, "client not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Transaction handlers

func (h *Handler) recordTransaction(w http.ResponseWriter, r *http.Request) {
	var req ledger.RecordRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Operator) == "" {
		req.Operator = "admin"
	}
	transaction, err := h.ledger.RecordTransaction(r.Context(), req)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, transaction)
}

type transactionListResponse struct {
	Transactions any   `json:"transactions"`
	Total        int64 `json:"total"`
}

func (h *Handler) listTransactions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	pageSize, _ := strconv.Atoi(q.Get("page_size"))

	filter := store.TransactionFilter{
		Type:       q.Get("type"),
		MedicineID: q.Get("medicine_id"),
		ClientID:   q.Get("client_id"),
		StartDate:  q.Get("start_date"),
		EndDate:    q.Get("end_date"),
		Page:       page,
		PageSize:   pageSize,
	}
	transactions, total, err := h.transactions.List(r.Context(), filter)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, transactionListResponse{Transactions: transactions, Total: total})
}

func (h *Handler) todaySummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.transactions.TodaySummary(r.Context())
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

func (h *Handler) monthlySales(w http.ResponseWriter, r *http.Request) {
	total, err := h.transactions.MonthlySales(r.Context())
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]float64{"monthly_sales": total})
}

// Stock-record handlers

func (h *Handler) receiveBatch(w http.ResponseWriter, r *http.Request) {
	var req ledger.BatchRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	record, err := h.ledger.ReceiveBatch(r.Context(), req)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, record)
}

func (h *Handler) stockRecordsByMedicine(w http.ResponseWriter, r *http.Request) {
	records, err := h.stockRecords.ByMedicine(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, records)
}

func (h *Handler) stockRecordsByWarehouse(w http.ResponseWriter, r *http.Request) {
	records, err := h.stockRecords.ByWarehouse(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, records)
}

// Reports

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.reports.Dashboard(r.Context())
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

// Helpers

func respondStoreError(w http.ResponseWriter, err error) {
	var verr *store.ValidationError
	switch {
	case errors.Is(err, store.ErrDuplicateCode):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, store.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &verr):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}

func decodeJSON(r *http.Request, dest interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dest)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	_ = encoder.Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
