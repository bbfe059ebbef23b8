package entities

import (
	"context"

	"github.com/ashendes/beer-console/internal/apiclient"
	"github.com/ashendes/beer-console/internal/models"
)

// CustomerService manages customers on the remote beer service
type CustomerService struct {
	customers collection[models.Customer]
}

// NewCustomerService creates a CustomerService
func NewCustomerService(client apiclient.Doer) *CustomerService {
	return &CustomerService{customers: collection[models.Customer]{client: client, path: CustomersPath}}
}

func (s *CustomerService) List(ctx context.Context) ([]models.Customer, error) {
	return s.customers.list(ctx, nil)
}

func (s *CustomerService) Get(ctx context.Context, id int64) (*models.Customer, error) {
	return s.customers.get(ctx, id)
}

func (s *CustomerService) Create(ctx context.Context, in models.CustomerInput) (*models.Customer, error) {
	return s.customers.create(ctx, in)
}

func (s *CustomerService) Update(ctx context.Context, id int64, u models.CustomerUpdate) (*models.Customer, error) {
	return s.customers.update(ctx, s.customers.itemPath(id), u)
}

func (s *CustomerService) Delete(ctx context.Context, id int64) error {
	return s.customers.remove(ctx, id)
}
