package models

import "github.com/ashendes/beer-console/internal/apperr"

// BeerOrderShipment records the shipment of one beer order.
type BeerOrderShipment struct {
	ID             int64     `json:"id"`
	Version        Version   `json:"version"`
	ShipmentDate   Timestamp `json:"shipmentDate"`
	Carrier        string    `json:"carrier"`
	TrackingNumber string    `json:"trackingNumber"`
	BeerOrderID    int64     `json:"beerOrderId"`
	CreatedDate    Timestamp `json:"createdDate"`
	UpdatedDate    Timestamp `json:"updatedDate"`
}

// ShipmentInput is the create payload. The order reference is fixed at creation.
type ShipmentInput struct {
	ShipmentDate   Timestamp `json:"shipmentDate"`
	Carrier        string    `json:"carrier"`
	TrackingNumber string    `json:"trackingNumber"`
	BeerOrderID    int64     `json:"beerOrderId"`
}

// ShipmentUpdate is the update payload: it cannot carry the order reference.
type ShipmentUpdate struct {
	ShipmentDate   Timestamp `json:"shipmentDate"`
	Carrier        string    `json:"carrier"`
	TrackingNumber string    `json:"trackingNumber"`
}

// Input returns the editable fields of s.
func (s BeerOrderShipment) Input() ShipmentInput {
	return ShipmentInput{
		ShipmentDate:   s.ShipmentDate,
		Carrier:        s.Carrier,
		TrackingNumber: s.TrackingNumber,
		BeerOrderID:    s.BeerOrderID,
	}
}

// Update drops the order reference from in.
func (in ShipmentInput) Update() ShipmentUpdate {
	return ShipmentUpdate{
		ShipmentDate:   in.ShipmentDate,
		Carrier:        in.Carrier,
		TrackingNumber: in.TrackingNumber,
	}
}

// Validate checks the fields shared by create and update.
func (u ShipmentUpdate) Validate() error {
	if u.ShipmentDate.IsZero() {
		return apperr.Validation("shipment date is required")
	}
	return firstError(
		requireText(u.Carrier, "carrier"),
		requireText(u.TrackingNumber, "tracking number"),
	)
}

// Validate checks a create payload, including the order selection.
func (in ShipmentInput) Validate() error {
	if err := in.Update().Validate(); err != nil {
		return err
	}
	if in.BeerOrderID <= 0 {
		return apperr.Validation("beer order is required")
	}
	return nil
}
