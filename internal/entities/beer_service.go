package entities

import (
	"context"

	"github.com/ashendes/beer-console/internal/apiclient"
	"github.com/ashendes/beer-console/internal/models"
)

// BeerService manages beers on the remote beer service
type BeerService struct {
	beers collection[models.Beer]
}

// NewBeerService creates a BeerService
func NewBeerService(client apiclient.Doer) *BeerService {
	return &BeerService{beers: collection[models.Beer]{client: client, path: BeersPath}}
}

// List returns every beer.
func (s *BeerService) List(ctx context.Context) ([]models.Beer, error) {
	return s.beers.list(ctx, nil)
}

// Get returns one beer.
func (s *BeerService) Get(ctx context.Context, id int64) (*models.Beer, error) {
	return s.beers.get(ctx, id)
}

// Create adds a beer.
func (s *BeerService) Create(ctx context.Context, in models.BeerInput) (*models.Beer, error) {
	return s.beers.create(ctx, in)
}

// Update replaces a beer; the remote collaborator rejects a stale version.
func (s *BeerService) Update(ctx context.Context, id int64, u models.BeerUpdate) (*models.Beer, error) {
	return s.beers.update(ctx, s.beers.itemPath(id), u)
}

// Delete removes a beer.
func (s *BeerService) Delete(ctx context.Context, id int64) error {
	return s.beers.remove(ctx, id)
}
