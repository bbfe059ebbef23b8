package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of a beer order.
type OrderStatus string

// OrderStatus constants
const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// OrderStatuses lists the fixed status set in lifecycle order.
var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// BeerOrder represents a customer order
type BeerOrder struct {
	ID             int64           `json:"id"`
	Version        Version         `json:"version"`
	CustomerRef    string          `json:"customerRef"`
	PaymentAmount  decimal.Decimal `json:"paymentAmount"`
	Status         OrderStatus     `json:"status"`
	CreatedDate    Timestamp       `json:"createdDate"`
	UpdatedDate    Timestamp       `json:"updatedDate"`
	BeerOrderLines []BeerOrderLine `json:"beerOrderLines,omitempty"`
}

// BeerOrderLine is one (beer, quantity) pairing within an order.
type BeerOrderLine struct {
	ID                int64     `json:"id"`
	Version           Version   `json:"version"`
	BeerID            int64     `json:"beerId"`
	Beer              *Beer     `json:"beer,omitempty"`
	OrderQuantity     int       `json:"orderQuantity"`
	QuantityAllocated int       `json:"quantityAllocated"`
	Status            string    `json:"status,omitempty"`
	CreatedDate       Timestamp `json:"createdDate"`
	UpdatedDate       Timestamp `json:"updatedDate"`
}

// BeerRef is the beer an order line points at: either a bare reference or
// the hydrated beer. Implemented by BeerIDRef and HydratedBeer only.
type BeerRef interface {
	BeerID() int64
	Label() string
	beerRef()
}

// BeerIDRef is a reference the remote collaborator did not hydrate.
type BeerIDRef int64

func (r BeerIDRef) BeerID() int64 { return int64(r) }
func (r BeerIDRef) Label() string { return fmt.Sprintf("Beer ID: %d", int64(r)) }
func (BeerIDRef) beerRef()        {}

// HydratedBeer carries the full beer.
type HydratedBeer struct {
	Beer Beer
}

func (h HydratedBeer) BeerID() int64 { return h.Beer.ID }
func (h HydratedBeer) Label() string { return h.Beer.BeerName }
func (HydratedBeer) beerRef()        {}

// Ref returns the tagged beer reference of the line.
func (l BeerOrderLine) Ref() BeerRef {
	if l.Beer != nil {
		return HydratedBeer{Beer: *l.Beer}
	}
	return BeerIDRef(l.BeerID)
}

// OrderLineCommand is one line of an order creation command.
type OrderLineCommand struct {
	BeerID        int64 `json:"beerId"`
	OrderQuantity int   `json:"orderQuantity"`
}

// CreateBeerOrderCommand is the order creation payload.
type CreateBeerOrderCommand struct {
	CustomerRef string             `json:"customerRef"`
	OrderLines  []OrderLineCommand `json:"orderLines"`
}

// StatusUpdate is the body of the dedicated status update call.
type StatusUpdate struct {
	Status OrderStatus `json:"status"`
}
