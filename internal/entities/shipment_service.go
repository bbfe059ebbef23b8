package entities

import (
	"context"
	"net/url"
	"strconv"

	"github.com/ashendes/beer-console/internal/apiclient"
	"github.com/ashendes/beer-console/internal/models"
)

// ShipmentService manages beer order shipments on the remote beer service
type ShipmentService struct {
	shipments collection[models.BeerOrderShipment]
}

// NewShipmentService creates a ShipmentService
func NewShipmentService(client apiclient.Doer) *ShipmentService {
	return &ShipmentService{shipments: collection[models.BeerOrderShipment]{client: client, path: ShipmentsPath}}
}

// List returns shipments, narrowed to one order when beerOrderID is positive.
func (s *ShipmentService) List(ctx context.Context, beerOrderID int64) ([]models.BeerOrderShipment, error) {
	var query url.Values
	if beerOrderID > 0 {
		query = url.Values{"beerOrderId": {strconv.FormatInt(beerOrderID, 10)}}
	}
	return s.shipments.list(ctx, query)
}

func (s *ShipmentService) Get(ctx context.Context, id int64) (*models.BeerOrderShipment, error) {
	return s.shipments.get(ctx, id)
}

func (s *ShipmentService) Create(ctx context.Context, in models.ShipmentInput) (*models.BeerOrderShipment, error) {
	return s.shipments.create(ctx, in)
}

// Update edits a shipment. The order reference cannot change.
func (s *ShipmentService) Update(ctx context.Context, id int64, u models.ShipmentUpdate) (*models.BeerOrderShipment, error) {
	return s.shipments.update(ctx, s.shipments.itemPath(id), u)
}

func (s *ShipmentService) Delete(ctx context.Context, id int64) error {
	return s.shipments.remove(ctx, id)
}
