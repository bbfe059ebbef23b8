package views

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/ashendes/beer-console/internal/composer"
	"github.com/ashendes/beer-console/internal/guard"
	"github.com/ashendes/beer-console/internal/metrics"
	"github.com/ashendes/beer-console/internal/models"
	"github.com/ashendes/beer-console/internal/patterns"
)

// OrdersData is the orders page content: the orders and the beer catalog the
// order form picks from.
type OrdersData struct {
	CustomerRef string             `json:"customerRef,omitempty"`
	Orders      []models.BeerOrder `json:"orders"`
	Beers       []models.Beer      `json:"beers"`
}

// StatusOption is one status an order can be moved to.
type StatusOption struct {
	Status models.OrderStatus `json:"status"`
	Tone   guard.Tone         `json:"tone"`
}

// StatusChoices is what the status dialog offers for one order.
type StatusChoices struct {
	Current  models.OrderStatus `json:"current"`
	Terminal bool               `json:"terminal"`
	Options  []StatusOption     `json:"options"`
}

// Orders is the order management page.
type Orders struct {
	orders OrderAPI
	beers  BeerAPI
	fanout *patterns.Bulkhead
	state  state[OrdersData]
}

// NewOrders creates the orders view. fanout may be nil.
func NewOrders(orders OrderAPI, beers BeerAPI, fanout *patterns.Bulkhead) *Orders {
	return &Orders{orders: orders, beers: beers, fanout: fanout}
}

// Load fetches the orders, narrowed to customerRef when it is not empty, and
// the beer catalog.
func (v *Orders) Load(ctx context.Context, customerRef string) (OrdersData, error) {
	return load(ctx, "orders", &v.state, func(ctx context.Context) (OrdersData, error) {
		return v.fetch(ctx, customerRef)
	})
}

func (v *Orders) fetch(ctx context.Context, customerRef string) (OrdersData, error) {
	data := OrdersData{CustomerRef: customerRef}
	err := gather(ctx, v.fanout,
		func(ctx context.Context) (err error) {
			data.Orders, err = v.orders.List(ctx, customerRef)
			return err
		},
		func(ctx context.Context) (err error) {
			data.Beers, err = v.beers.List(ctx)
			return err
		},
	)
	if err != nil {
		return OrdersData{}, fmt.Errorf("load orders: %w", err)
	}
	return data, nil
}

// reload repeats the load with the filter of the data on screen.
func (v *Orders) reload(ctx context.Context) error {
	held, _ := v.state.snapshot()
	_, err := v.Load(ctx, held.CustomerRef)
	return err
}

// Page returns what the view currently shows.
func (v *Orders) Page() Page[OrdersData] {
	return v.state.page()
}

// Submit sends draft as a new order, checking its beers against the loaded
// catalog when there is one.
func (v *Orders) Submit(ctx context.Context, draft *composer.Draft) (*models.BeerOrder, error) {
	var catalog []models.Beer
	if data, loaded := v.state.snapshot(); loaded {
		catalog = data.Beers
	}

	order, err := draft.Submit(ctx, v.orders, catalog)
	if err := mutated(ctx, "orders", "submit", &v.state, err, v.reload); err != nil {
		return nil, err
	}
	return order, nil
}

// Options lists the statuses order id may move to, with their treatment.
// A terminal order has none.
func (v *Orders) Options(ctx context.Context, id int64) (StatusChoices, error) {
	order, err := v.lookup(ctx, id)
	if err != nil {
		return StatusChoices{}, err
	}
	next := guard.NextStatuses(order.Status)
	choices := StatusChoices{
		Current:  order.Status,
		Terminal: guard.Terminal(order.Status),
		Options:  make([]StatusOption, len(next)),
	}
	for i, s := range next {
		choices.Options[i] = StatusOption{Status: s, Tone: guard.Treatment(s)}
	}
	return choices, nil
}

// ChangeStatus moves order id to status if the transition is allowed.
func (v *Orders) ChangeStatus(ctx context.Context, id int64, status models.OrderStatus) (*models.BeerOrder, error) {
	var updated *models.BeerOrder
	order, err := v.lookup(ctx, id)
	if err == nil {
		err = guard.CheckTransition(order.Status, status)
	}
	if err == nil {
		updated, err = v.orders.UpdateStatus(ctx, id, status)
	}

	metrics.StatusChangesTotal.WithLabelValues(string(status), metrics.Outcome(err)).Inc()
	if err == nil {
		log.WithFields(log.Fields{
			"order_id": id,
			"from":     order.Status,
			"to":       status,
		}).Info("Order status changed")
	}

	if err := mutated(ctx, "orders", "change_status", &v.state, err, v.reload); err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes order id.
func (v *Orders) Delete(ctx context.Context, id int64) error {
	return mutated(ctx, "orders", "delete", &v.state, v.orders.Delete(ctx, id), v.reload)
}

// lookup prefers the loaded order and falls back to fetching it.
func (v *Orders) lookup(ctx context.Context, id int64) (models.BeerOrder, error) {
	if data, loaded := v.state.snapshot(); loaded {
		for _, o := range data.Orders {
			if o.ID == id {
				return o, nil
			}
		}
	}
	order, err := v.orders.Get(ctx, id)
	if err != nil {
		return models.BeerOrder{}, err
	}
	return *order, nil
}
