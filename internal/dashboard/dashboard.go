// Package dashboard derives the summary figures shown on the console landing page.
package dashboard

import (
	"sort"

	"github.com/ashendes/beer-console/internal/models"
)

const (
	// RecentOrderLimit caps the recent orders list.
	RecentOrderLimit = 5
	// LowStockThreshold is the exclusive stock level below which a beer is low.
	LowStockThreshold = 10
)

// Collections is everything the dashboard is computed from.
type Collections struct {
	Beers     []models.Beer
	Customers []models.Customer
	Orders    []models.BeerOrder
	Shipments []models.BeerOrderShipment
}

// Summary is the dashboard content.
type Summary struct {
	TotalBeers     int                `json:"totalBeers"`
	TotalCustomers int                `json:"totalCustomers"`
	TotalOrders    int                `json:"totalOrders"`
	TotalShipments int                `json:"totalShipments"`
	RecentOrders   []models.BeerOrder `json:"recentOrders"`
	LowStockBeers  []models.Beer      `json:"lowStockBeers"`
}

// Summarize computes the dashboard from c.
func Summarize(c Collections) Summary {
	return Summary{
		TotalBeers:     len(c.Beers),
		TotalCustomers: len(c.Customers),
		TotalOrders:    len(c.Orders),
		TotalShipments: len(c.Shipments),
		RecentOrders:   RecentOrders(c.Orders),
		LowStockBeers:  LowStockBeers(c.Beers),
	}
}

// RecentOrders returns up to RecentOrderLimit orders, newest first. Orders
// created at the same moment keep their source order. orders is not modified.
func RecentOrders(orders []models.BeerOrder) []models.BeerOrder {
	sorted := append([]models.BeerOrder(nil), orders...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedDate.After(sorted[j].CreatedDate.Time)
	})
	if len(sorted) > RecentOrderLimit {
		sorted = sorted[:RecentOrderLimit]
	}
	if sorted == nil {
		sorted = []models.BeerOrder{}
	}
	return sorted
}

// LowStockBeers returns beers with fewer than LowStockThreshold units on hand,
// in source order.
func LowStockBeers(beers []models.Beer) []models.Beer {
	low := []models.Beer{}
	for _, b := range beers {
		if b.QuantityOnHand < LowStockThreshold {
			low = append(low, b)
		}
	}
	return low
}
