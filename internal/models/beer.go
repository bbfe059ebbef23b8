package models

import (
	"github.com/shopspring/decimal"

	"github.com/ashendes/beer-console/internal/apperr"
)

// Beer represents an inventory item
type Beer struct {
	ID             int64           `json:"id"`
	Version        Version         `json:"version"`
	BeerName       string          `json:"beerName"`
	BeerStyle      string          `json:"beerStyle"`
	UPC            string          `json:"upc"`
	QuantityOnHand int             `json:"quantityOnHand"`
	Price          decimal.Decimal `json:"price"`
	CreatedDate    Timestamp       `json:"createdDate"`
	UpdatedDate    Timestamp       `json:"updatedDate"`
}

// BeerInput is the create payload; identity, version and timestamps are server-assigned.
type BeerInput struct {
	BeerName       string          `json:"beerName"`
	BeerStyle      string          `json:"beerStyle"`
	UPC            string          `json:"upc"`
	QuantityOnHand int             `json:"quantityOnHand"`
	Price          decimal.Decimal `json:"price"`
}

// BeerUpdate is the full-record update payload.
type BeerUpdate struct {
	Version Version `json:"version"`
	BeerInput
}

// Input returns the editable fields of b.
func (b Beer) Input() BeerInput {
	return BeerInput{
		BeerName:       b.BeerName,
		BeerStyle:      b.BeerStyle,
		UPC:            b.UPC,
		QuantityOnHand: b.QuantityOnHand,
		Price:          b.Price,
	}
}

// NewBeerUpdate echoes the version last observed on observed.
func NewBeerUpdate(observed Beer, in BeerInput) BeerUpdate {
	return BeerUpdate{Version: observed.Version, BeerInput: in}
}

// Validate checks the required fields of a beer form.
func (in BeerInput) Validate() error {
	if err := firstError(
		requireText(in.BeerName, "beer name"),
		requireText(in.BeerStyle, "beer style"),
		requireText(in.UPC, "upc"),
	); err != nil {
		return err
	}
	if in.QuantityOnHand < 0 {
		return apperr.Validation("quantity on hand must be non-negative")
	}
	if in.Price.IsNegative() {
		return apperr.Validation("price must be non-negative")
	}
	return nil
}
