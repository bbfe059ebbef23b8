package views

import (
	"context"
	"fmt"

	"github.com/ashendes/beer-console/internal/dashboard"
	"github.com/ashendes/beer-console/internal/metrics"
	"github.com/ashendes/beer-console/internal/patterns"
)

// Dashboard is the landing page.
type Dashboard struct {
	beers     BeerAPI
	customers CustomerAPI
	orders    OrderAPI
	shipments ShipmentAPI
	fanout    *patterns.Bulkhead
	state     state[dashboard.Summary]
}

// NewDashboard creates the dashboard view. fanout may be nil.
func NewDashboard(beers BeerAPI, customers CustomerAPI, orders OrderAPI, shipments ShipmentAPI, fanout *patterns.Bulkhead) *Dashboard {
	return &Dashboard{beers: beers, customers: customers, orders: orders, shipments: shipments, fanout: fanout}
}

// Load fetches all four collections and recomputes the summary. Any failure
// fails the whole page.
func (d *Dashboard) Load(ctx context.Context) (dashboard.Summary, error) {
	return load(ctx, "dashboard", &d.state, d.fetch)
}

// Page returns what the dashboard currently shows.
func (d *Dashboard) Page() Page[dashboard.Summary] {
	return d.state.page()
}

func (d *Dashboard) fetch(ctx context.Context) (dashboard.Summary, error) {
	var c dashboard.Collections
	err := gather(ctx, d.fanout,
		func(ctx context.Context) (err error) {
			c.Beers, err = d.beers.List(ctx)
			return err
		},
		func(ctx context.Context) (err error) {
			c.Customers, err = d.customers.List(ctx)
			return err
		},
		func(ctx context.Context) (err error) {
			c.Orders, err = d.orders.List(ctx, "")
			return err
		},
		func(ctx context.Context) (err error) {
			c.Shipments, err = d.shipments.List(ctx, 0)
			return err
		},
	)
	if err != nil {
		return dashboard.Summary{}, fmt.Errorf("load dashboard: %w", err)
	}

	summary := dashboard.Summarize(c)
	metrics.LowStockBeers.Set(float64(len(summary.LowStockBeers)))
	return summary, nil
}
