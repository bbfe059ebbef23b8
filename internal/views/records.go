package views

import (
	"context"
	"fmt"

	"github.com/ashendes/beer-console/internal/models"
)

// Records is a list page with create, edit and delete over one entity type.
type Records[T, In, Up any] struct {
	name           string
	store          Store[T, In, Up]
	validate       func(In) error
	validateUpdate func(Up) error
	state          state[[]T]
}

// Beers is the beer catalog page.
type Beers = Records[models.Beer, models.BeerInput, models.BeerUpdate]

// Customers is the customer directory page.
type Customers = Records[models.Customer, models.CustomerInput, models.CustomerUpdate]

// NewBeers creates the beer catalog view.
func NewBeers(store BeerAPI) *Beers {
	return &Beers{
		name:           "beers",
		store:          store,
		validate:       models.BeerInput.Validate,
		validateUpdate: models.BeerUpdate.Validate,
	}
}

// NewCustomers creates the customer directory view.
func NewCustomers(store CustomerAPI) *Customers {
	return &Customers{
		name:           "customers",
		store:          store,
		validate:       models.CustomerInput.Validate,
		validateUpdate: models.CustomerUpdate.Validate,
	}
}

// Load fetches the list.
func (v *Records[T, In, Up]) Load(ctx context.Context) ([]T, error) {
	return load(ctx, v.name, &v.state, v.fetch)
}

func (v *Records[T, In, Up]) fetch(ctx context.Context) ([]T, error) {
	items, err := v.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", v.name, err)
	}
	return items, nil
}

func (v *Records[T, In, Up]) reload(ctx context.Context) error {
	_, err := v.Load(ctx)
	return err
}

// Page returns what the view currently shows.
func (v *Records[T, In, Up]) Page() Page[[]T] {
	return v.state.page()
}

// Create validates in and adds the record.
func (v *Records[T, In, Up]) Create(ctx context.Context, in In) (*T, error) {
	var created *T
	err := v.validate(in)
	if err == nil {
		created, err = v.store.Create(ctx, in)
	}
	if err := mutated(ctx, v.name, "create", &v.state, err, v.reload); err != nil {
		return nil, err
	}
	return created, nil
}

// Update saves u over the record with id. u carries the version the caller
// last saw, so an edit of an outdated record is rejected by the remote.
func (v *Records[T, In, Up]) Update(ctx context.Context, id int64, u Up) (*T, error) {
	var updated *T
	err := v.validateUpdate(u)
	if err == nil {
		updated, err = v.store.Update(ctx, id, u)
	}
	if err := mutated(ctx, v.name, "update", &v.state, err, v.reload); err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the record with id.
func (v *Records[T, In, Up]) Delete(ctx context.Context, id int64) error {
	return mutated(ctx, v.name, "delete", &v.state, v.store.Delete(ctx, id), v.reload)
}
