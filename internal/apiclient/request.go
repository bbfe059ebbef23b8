package apiclient

import (
	"context"
	"net/http"
)

// Get fetches path and decodes the response as T.
func Get[T any](ctx context.Context, d Doer, path string) (T, error) {
	return send[T](ctx, d, http.MethodGet, path, nil)
}

// Post sends body to path and decodes the response as T.
func Post[T any](ctx context.Context, d Doer, path string, body any) (T, error) {
	return send[T](ctx, d, http.MethodPost, path, body)
}

// Put sends body to path and decodes the response as T.
func Put[T any](ctx context.Context, d Doer, path string, body any) (T, error) {
	return send[T](ctx, d, http.MethodPut, path, body)
}

// Delete removes path. Most callers use struct{} for T.
func Delete[T any](ctx context.Context, d Doer, path string) (T, error) {
	return send[T](ctx, d, http.MethodDelete, path, nil)
}

func send[T any](ctx context.Context, d Doer, method, path string, body any) (T, error) {
	var out T
	if err := d.Do(ctx, method, path, body, &out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}
