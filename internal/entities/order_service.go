package entities

import (
	"context"
	"net/url"

	"github.com/ashendes/beer-console/internal/apiclient"
	"github.com/ashendes/beer-console/internal/models"
)

// BeerOrderService manages beer orders on the remote beer service
type BeerOrderService struct {
	orders collection[models.BeerOrder]
}

// NewBeerOrderService creates a BeerOrderService
func NewBeerOrderService(client apiclient.Doer) *BeerOrderService {
	return &BeerOrderService{orders: collection[models.BeerOrder]{client: client, path: OrdersPath}}
}

// List returns orders, narrowed to customerRef when it is not empty.
func (s *BeerOrderService) List(ctx context.Context, customerRef string) ([]models.BeerOrder, error) {
	var query url.Values
	if customerRef != "" {
		query = url.Values{"customerRef": {customerRef}}
	}
	return s.orders.list(ctx, query)
}

func (s *BeerOrderService) Get(ctx context.Context, id int64) (*models.BeerOrder, error) {
	return s.orders.get(ctx, id)
}

// Create submits an order creation command.
func (s *BeerOrderService) Create(ctx context.Context, cmd models.CreateBeerOrderCommand) (*models.BeerOrder, error) {
	return s.orders.create(ctx, cmd)
}

// UpdateStatus changes only the status of an order.
func (s *BeerOrderService) UpdateStatus(ctx context.Context, id int64, status models.OrderStatus) (*models.BeerOrder, error) {
	return s.orders.update(ctx, s.orders.itemPath(id)+"/status", models.StatusUpdate{Status: status})
}

func (s *BeerOrderService) Delete(ctx context.Context, id int64) error {
	return s.orders.remove(ctx, id)
}
