package migrations

import (
	"log"

	"github.com/jmoiron/sqlx"
)

// Run creates the database schema required for the inventory store.
// Foreign keys are declared for documentation but not enforced; historical
// transaction and stock-record rows keep dangling ids on purpose.
func Run(db *sqlx.DB) {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS medicines (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            code TEXT UNIQUE NOT NULL,
            category TEXT,
            spec TEXT,
            unit TEXT,
            price REAL DEFAULT 0,
            cost REAL DEFAULT 0,
            manufacturer TEXT,
            description TEXT,
            stock INTEGER DEFAULT 0,
            min_stock INTEGER DEFAULT 0,
            expiry_date TEXT,
            created_at TEXT,
            updated_at TEXT
        );`,
		`CREATE TABLE IF NOT EXISTS warehouses (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            location TEXT,
            capacity INTEGER DEFAULT 0,
            current_stock INTEGER DEFAULT 0,
            manager TEXT,
            phone TEXT,
            description TEXT,
            created_at TEXT,
            updated_at TEXT
        );`,
		`CREATE TABLE IF NOT EXISTS clients (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            type TEXT,
            phone TEXT,
            address TEXT,
            email TEXT,
            credit REAL DEFAULT 0,
            balance REAL DEFAULT 0,
            total_purchases REAL DEFAULT 0,
            description TEXT,
            created_at TEXT,
            updated_at TEXT
        );`,
		`CREATE TABLE IF NOT EXISTS transactions (
            id TEXT PRIMARY KEY,
            type TEXT NOT NULL,
            medicine_id TEXT,
            medicine_name TEXT,
            warehouse_id TEXT,
            warehouse_name TEXT,
            client_id TEXT,
            client_name TEXT,
            quantity INTEGER,
            unit_price REAL,
            total_amount REAL,
            batch_no TEXT,
            operator TEXT,
            remark TEXT,
            created_at TEXT,
            FOREIGN KEY (medicine_id) REFERENCES medicines(id),
            FOREIGN KEY (warehouse_id) REFERENCES warehouses(id),
            FOREIGN KEY (client_id) REFERENCES clients(id)
        );`,
		`CREATE TABLE IF NOT EXISTS stock_records (
            id TEXT PRIMARY KEY,
            medicine_id TEXT,
            medicine_name TEXT,
            warehouse_id TEXT,
            warehouse_name TEXT,
            quantity INTEGER,
            batch_no TEXT,
            expiry_date TEXT,
            created_at TEXT,
            updated_at TEXT,
            FOREIGN KEY (medicine_id) REFERENCES medicines(id),
            FOREIGN KEY (warehouse_id) REFERENCES warehouses(id)
        );`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			log.Fatalf("migration failed: %v", err)
		}
	}
}
