// Package models holds the entities exchanged with the remote beer service and
// the write payloads the console is allowed to send.
package models

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ashendes/beer-console/internal/apperr"
)

func init() {
	// The remote collaborator expects money as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// Version is the optimistic-concurrency token assigned by the remote collaborator.
// It is opaque: the console copies it, never computes it.
type Version int64

func requireText(value, field string) error {
	if strings.TrimSpace(value) == "" {
		return apperr.Validation("%s is required", field)
	}
	return nil
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
