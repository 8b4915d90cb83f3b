// Package admin aggregates catalog data into the dashboard statistics.
package admin

import (
	"github.com/shopspring/decimal"

	"storefront/internal/catalog"
)

// Stats is the dashboard overview: entity counts and total revenue
// across all orders.
type Stats struct {
	Products int             `json:"products"`
	Users    int             `json:"users"`
	Orders   int             `json:"orders"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// Service computes dashboard statistics.
type Service interface {
	Stats() Stats
}

type service struct {
	catalog catalog.Service
}

// NewService creates an admin stats service over the catalog.
func NewService(cat catalog.Service) Service {
	return &service{catalog: cat}
}

func (s *service) Stats() Stats {
	revenue := decimal.Zero
	orders := s.catalog.Orders()
	for _, o := range orders {
		revenue = revenue.Add(o.Total)
	}

	return Stats{
		Products: len(s.catalog.Products(catalog.ProductFilter{})),
		Users:    len(s.catalog.Users()),
		Orders:   len(orders),
		Revenue:  revenue,
	}
}
