package views

import (
	"context"
	"fmt"

	"github.com/ashendes/beer-console/internal/apperr"
	"github.com/ashendes/beer-console/internal/guard"
	"github.com/ashendes/beer-console/internal/models"
	"github.com/ashendes/beer-console/internal/patterns"
)

// ShipmentsData is the shipments page content: the shipments and the orders
// they can refer to.
type ShipmentsData struct {
	BeerOrderID int64                      `json:"beerOrderId,omitempty"`
	Shipments   []models.BeerOrderShipment `json:"shipments"`
	Orders      []models.BeerOrder         `json:"orders"`
}

// Shipments is the shipment tracking page.
type Shipments struct {
	shipments ShipmentAPI
	orders    OrderAPI
	fanout    *patterns.Bulkhead
	state     state[ShipmentsData]
}

// NewShipments creates the shipments view. fanout may be nil.
func NewShipments(shipments ShipmentAPI, orders OrderAPI, fanout *patterns.Bulkhead) *Shipments {
	return &Shipments{shipments: shipments, orders: orders, fanout: fanout}
}

// Load fetches the shipments, narrowed to one order when beerOrderID is
// positive, and all orders.
func (v *Shipments) Load(ctx context.Context, beerOrderID int64) (ShipmentsData, error) {
	return load(ctx, "shipments", &v.state, func(ctx context.Context) (ShipmentsData, error) {
		return v.fetch(ctx, beerOrderID)
	})
}

func (v *Shipments) fetch(ctx context.Context, beerOrderID int64) (ShipmentsData, error) {
	data := ShipmentsData{BeerOrderID: beerOrderID}
	err := gather(ctx, v.fanout,
		func(ctx context.Context) (err error) {
			data.Shipments, err = v.shipments.List(ctx, beerOrderID)
			return err
		},
		func(ctx context.Context) (err error) {
			data.Orders, err = v.orders.List(ctx, "")
			return err
		},
	)
	if err != nil {
		return ShipmentsData{}, fmt.Errorf("load shipments: %w", err)
	}
	return data, nil
}

// reload repeats the load with the filter of the data on screen.
func (v *Shipments) reload(ctx context.Context) error {
	held, _ := v.state.snapshot()
	_, err := v.Load(ctx, held.BeerOrderID)
	return err
}

// Page returns what the view currently shows.
func (v *Shipments) Page() Page[ShipmentsData] {
	return v.state.page()
}

// Candidates returns the loaded orders a new shipment may refer to.
func (v *Shipments) Candidates() []models.BeerOrder {
	data, _ := v.state.snapshot()
	return guard.ShipmentCandidates(data.Orders)
}

// OrderLabel names order id for display.
func (v *Shipments) OrderLabel(id int64) string {
	data, _ := v.state.snapshot()
	for _, o := range data.Orders {
		if o.ID == id {
			return fmt.Sprintf("#%d - %s", o.ID, o.CustomerRef)
		}
	}
	return fmt.Sprintf("Order #%d", id)
}

// Create records a shipment. The order must be CONFIRMED or SHIPPED.
func (v *Shipments) Create(ctx context.Context, in models.ShipmentInput) (*models.BeerOrderShipment, error) {
	var created *models.BeerOrderShipment
	err := in.Validate()
	if err == nil {
		err = v.checkEligible(ctx, in.BeerOrderID)
	}
	if err == nil {
		created, err = v.shipments.Create(ctx, in)
	}
	if err := mutated(ctx, "shipments", "create", &v.state, err, v.reload); err != nil {
		return nil, err
	}
	return created, nil
}

// Update edits shipment id. The order it belongs to never changes, whatever
// in.BeerOrderID says.
func (v *Shipments) Update(ctx context.Context, id int64, in models.ShipmentInput) (*models.BeerOrderShipment, error) {
	var updated *models.BeerOrderShipment
	u := in.Update()
	err := u.Validate()
	if err == nil {
		updated, err = v.shipments.Update(ctx, id, u)
	}
	if err := mutated(ctx, "shipments", "update", &v.state, err, v.reload); err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes shipment id.
func (v *Shipments) Delete(ctx context.Context, id int64) error {
	return mutated(ctx, "shipments", "delete", &v.state, v.shipments.Delete(ctx, id), v.reload)
}

// checkEligible prefers the loaded order and falls back to fetching it.
func (v *Shipments) checkEligible(ctx context.Context, orderID int64) error {
	order, found := models.BeerOrder{}, false
	if data, loaded := v.state.snapshot(); loaded {
		for _, o := range data.Orders {
			if o.ID == orderID {
				order, found = o, true
				break
			}
		}
	}
	if !found {
		fetched, err := v.orders.Get(ctx, orderID)
		if err != nil {
			return err
		}
		order = *fetched
	}
	if !guard.ShipmentEligible(order) {
		return apperr.Validation("order #%d is %s and cannot be shipped", order.ID, order.Status)
	}
	return nil
}
