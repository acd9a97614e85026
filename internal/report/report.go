// Package report composes the read-only dashboard aggregates.
package report

import (
	"context"

	"golang.org/x/sync/errgroup"

	"medstock/domain"
	"medstock/internal/store"
)

// ExpiryHorizonDays is the dashboard's expiring-soon window.
const ExpiryHorizonDays = 30

// Service fans read-only queries out across the repositories.
type Service struct {
	medicines    *store.MedicineRepo
	warehouses   *store.WarehouseRepo
	clients      *store.ClientRepo
	transactions *store.TransactionRepo
}

func New(medicines *store.MedicineRepo, warehouses *store.WarehouseRepo,
	clients *store.ClientRepo, transactions *store.TransactionRepo) *Service {
	return &Service{
		medicines:    medicines,
		warehouses:   warehouses,
		clients:      clients,
		transactions: transactions,
	}
}

// Dashboard gathers the statistics composite. The reads are independent and
// run concurrently; each goroutine writes a disjoint set of fields.
func (s *Service) Dashboard(ctx context.Context) (*domain.Statistics, error) {
	var stats domain.Statistics

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		medicines, err := s.medicines.GetAll(ctx, "")
		if err != nil {
			return err
		}
		stats.TotalMedicines = len(medicines)
		for _, m := range medicines {
			stats.TotalStockValue += float64(m.Stock) * m.Cost
		}
		return nil
	})

	g.Go(func() error {
		warehouses, err := s.warehouses.GetAll(ctx)
		if err != nil {
			return err
		}
		stats.TotalWarehouses = len(warehouses)
		return nil
	})

	g.Go(func() error {
		clients, err := s.clients.GetAll(ctx, "")
		if err != nil {
			return err
		}
		stats.TotalClients = len(clients)
		return nil
	})

	g.Go(func() error {
		summary, err := s.transactions.TodaySummary(ctx)
		if err != nil {
			return err
		}
		stats.TodayTransactions = summary.Count
		stats.TodayInAmount = summary.InAmount
		stats.TodayOutAmount = summary.OutAmount
		return nil
	})

	g.Go(func() error {
		monthly, err := s.transactions.MonthlySales(ctx)
		if err != nil {
			return err
		}
		stats.MonthlySales = monthly
		return nil
	})

	g.Go(func() error {
		low, err := s.medicines.LowStock(ctx)
		if err != nil {
			return err
		}
		stats.LowStockMedicines = len(low)
		return nil
	})

	g.Go(func() error {
		expiring, err := s.medicines.ExpiringSoon(ctx, ExpiryHorizonDays)
		if err != nil {
			return err
		}
		stats.ExpiringMedicines = len(expiring)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &stats, nil
}
