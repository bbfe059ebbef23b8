// Package entities holds the typed facades over the remote beer service, one per
// entity family. They add no error translation of their own.
package entities

import (
	"context"
	"fmt"
	"net/url"

	"github.com/ashendes/beer-console/internal/apiclient"
)

// Resource path prefixes on the remote beer service.
const (
	BeersPath     = "/beers"
	CustomersPath = "/customers"
	OrdersPath    = "/beer-orders"
	ShipmentsPath = "/beer-order-shipments"
)

// collection binds the generic calls to one resource path prefix.
type collection[T any] struct {
	client apiclient.Doer
	path   string
}

func (c collection[T]) list(ctx context.Context, query url.Values) ([]T, error) {
	path := c.path
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	items, err := apiclient.Get[[]T](ctx, c.client, path)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (c collection[T]) get(ctx context.Context, id int64) (*T, error) {
	item, err := apiclient.Get[T](ctx, c.client, c.itemPath(id))
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (c collection[T]) create(ctx context.Context, body any) (*T, error) {
	item, err := apiclient.Post[T](ctx, c.client, c.path, body)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (c collection[T]) update(ctx context.Context, path string, body any) (*T, error) {
	item, err := apiclient.Put[T](ctx, c.client, path, body)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (c collection[T]) remove(ctx context.Context, id int64) error {
	_, err := apiclient.Delete[struct{}](ctx, c.client, c.itemPath(id))
	return err
}

func (c collection[T]) itemPath(id int64) string {
	return fmt.Sprintf("%s/%d", c.path, id)
}
