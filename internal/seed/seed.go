package seed

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"medstock/internal/store"
)

// LoadMedicines ingests a CSV catalog into the medicines table through the
// repository, skipping rows whose code already exists. Expected columns:
// name, code, category, spec, unit, price, cost, stock, min_stock, expiry_date.
func LoadMedicines(medicines *store.MedicineRepo, csvPath string) {
	file, err := os.Open(csvPath)
	if err != nil {
		log.Printf("unable to load medicine catalog %s: %v", csvPath, err)
		return
	}
	defer file.Close()

	reader := csv.NewReader(file)
	// Skip header
	if _, err := reader.Read(); err != nil {
		log.Printf("unable to read medicine header: %v", err)
		return
	}

	ctx := context.Background()
	rows := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Printf("unable to read medicine row: %v", err)
			continue
		}
		if len(record) < 7 {
			continue
		}

		in := store.MedicineInput{
			Name:     strings.TrimSpace(record[0]),
			Code:     strings.TrimSpace(record[1]),
			Category: strings.TrimSpace(record[2]),
			Spec:     strings.TrimSpace(record[3]),
			Unit:     strings.TrimSpace(record[4]),
		}
		if in.Name == "" || in.Code == "" {
			continue
		}
		in.Price, _ = strconv.ParseFloat(strings.TrimSpace(record[5]), 64)
		in.Cost, _ = strconv.ParseFloat(strings.TrimSpace(record[6]), 64)
		if len(record) > 7 {
			in.Stock, _ = strconv.ParseInt(strings.TrimSpace(record[7]), 10, 64)
		}
		if len(record) > 8 {
			in.MinStock, _ = strconv.ParseInt(strings.TrimSpace(record[8]), 10, 64)
		}
		if len(record) > 9 {
			in.ExpiryDate = strings.TrimSpace(record[9])
		}

		if _, err := medicines.Add(ctx, in); err != nil {
			if !errors.Is(err, store.ErrDuplicateCode) {
				log.Printf("unable to insert medicine %s: %v", in.Name, err)
			}
			continue
		}
		rows++
	}

	log.Printf("seeded medicine catalog with %d rows", rows)
}
