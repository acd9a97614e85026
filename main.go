package main

import (
	"log"
	"net/http"

	"github.com/joho/godotenv"

	"medstock/internal/api"
	"medstock/internal/config"
	"medstock/internal/database"
	"medstock/internal/ledger"
	"medstock/internal/migrations"
	"medstock/internal/report"
	"medstock/internal/seed"
	"medstock/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	db := database.Connect(cfg.DatabaseDSN)
	defer db.Close()

	migrations.Run(db)

	medicines := store.NewMedicineRepo(db)
	warehouses := store.NewWarehouseRepo(db)
	clients := store.NewClientRepo(db)
	transactions := store.NewTransactionRepo(db)
	stockRecords := store.NewStockRecordRepo(db)

	if cfg.SeedFile != "" {
		seed.LoadMedicines(medicines, cfg.SeedFile)
	}

	movements := ledger.New(db, medicines, warehouses, clients, transactions, stockRecords)
	reports := report.New(medicines, warehouses, clients, transactions)

	handler := api.New(medicines, warehouses, clients, transactions, stockRecords, movements, reports)

	log.Printf("medstock server starting on :%s", cfg.HTTPPort)
	if err := http.ListenAndServe(":"+cfg.HTTPPort, handler.Router()); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
