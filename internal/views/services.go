package views

import (
	"context"

	"github.com/ashendes/beer-console/internal/models"
)

// Store is the CRUD surface shared by the beer and customer services.
type Store[T, In, Up any] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, in In) (*T, error)
	Update(ctx context.Context, id int64, u Up) (*T, error)
	Delete(ctx context.Context, id int64) error
}

// BeerAPI is implemented by entities.BeerService.
type BeerAPI = Store[models.Beer, models.BeerInput, models.BeerUpdate]

// CustomerAPI is implemented by entities.CustomerService.
type CustomerAPI = Store[models.Customer, models.CustomerInput, models.CustomerUpdate]

// OrderAPI is implemented by entities.BeerOrderService.
type OrderAPI interface {
	List(ctx context.Context, customerRef string) ([]models.BeerOrder, error)
	Get(ctx context.Context, id int64) (*models.BeerOrder, error)
	Create(ctx context.Context, cmd models.CreateBeerOrderCommand) (*models.BeerOrder, error)
	UpdateStatus(ctx context.Context, id int64, status models.OrderStatus) (*models.BeerOrder, error)
	Delete(ctx context.Context, id int64) error
}

// ShipmentAPI is implemented by entities.ShipmentService.
type ShipmentAPI interface {
	List(ctx context.Context, beerOrderID int64) ([]models.BeerOrderShipment, error)
	Create(ctx context.Context, in models.ShipmentInput) (*models.BeerOrderShipment, error)
	Update(ctx context.Context, id int64, u models.ShipmentUpdate) (*models.BeerOrderShipment, error)
	Delete(ctx context.Context, id int64) error
}
