// Package guard holds the order status rules: how each status is presented,
// which orders may be shipped, and which status changes the console offers.
package guard

import (
	"errors"
	"fmt"

	"github.com/ashendes/beer-console/internal/apperr"
	"github.com/ashendes/beer-console/internal/models"
)

// Tone is the visual treatment of a status.
type Tone string

const (
	ToneBlue    Tone = "blue"
	ToneGreen   Tone = "green"
	ToneYellow  Tone = "yellow"
	TonePurple  Tone = "purple"
	ToneRed     Tone = "red"
	ToneNeutral Tone = "gray"
)

var (
	ErrUnknownStatus     = errors.New("unknown order status")
	ErrIllegalTransition = errors.New("status change is not allowed")
	ErrUnchangedStatus   = errors.New("order already has this status")
)

var tones = map[models.OrderStatus]Tone{
	models.OrderStatusPending:   ToneBlue,
	models.OrderStatusConfirmed: ToneGreen,
	models.OrderStatusShipped:   ToneYellow,
	models.OrderStatusDelivered: TonePurple,
	models.OrderStatusCancelled: ToneRed,
}

// transitions lists, in display order, where each status may go next.
var transitions = map[models.OrderStatus][]models.OrderStatus{
	models.OrderStatusPending:   {models.OrderStatusConfirmed, models.OrderStatusCancelled},
	models.OrderStatusConfirmed: {models.OrderStatusShipped, models.OrderStatusCancelled},
	models.OrderStatusShipped:   {models.OrderStatusDelivered},
	models.OrderStatusDelivered: nil,
	models.OrderStatusCancelled: nil,
}

// Treatment returns the tone for status. Unknown statuses are neutral.
func Treatment(status models.OrderStatus) Tone {
	if t, ok := tones[status]; ok {
		return t
	}
	return ToneNeutral
}

// ShipmentEligible reports whether a shipment may be recorded for order.
func ShipmentEligible(order models.BeerOrder) bool {
	return order.Status == models.OrderStatusConfirmed || order.Status == models.OrderStatusShipped
}

// ShipmentCandidates keeps the eligible orders in their original order.
func ShipmentCandidates(orders []models.BeerOrder) []models.BeerOrder {
	candidates := make([]models.BeerOrder, 0, len(orders))
	for _, o := range orders {
		if ShipmentEligible(o) {
			candidates = append(candidates, o)
		}
	}
	return candidates
}

// OrderReferenceEditable reports whether the order of a shipment form can be
// chosen. Existing shipments keep their order.
func OrderReferenceEditable(editing bool) bool {
	return !editing
}

// ParseStatus accepts only the fixed status set.
func ParseStatus(s string) (models.OrderStatus, error) {
	status := models.OrderStatus(s)
	if _, ok := transitions[status]; !ok {
		return "", apperr.Invalid(fmt.Errorf("%w: %q", ErrUnknownStatus, s))
	}
	return status, nil
}

// NextStatuses returns the statuses an order in current may move to. Terminal
// and unknown statuses have none.
func NextStatuses(current models.OrderStatus) []models.OrderStatus {
	return append([]models.OrderStatus(nil), transitions[current]...)
}

// Terminal reports whether no further status change is possible.
func Terminal(status models.OrderStatus) bool {
	next, ok := transitions[status]
	return ok && len(next) == 0
}

// CheckTransition validates moving an order from one status to another.
func CheckTransition(from, to models.OrderStatus) error {
	if _, ok := transitions[to]; !ok {
		return apperr.Invalid(fmt.Errorf("%w: %q", ErrUnknownStatus, to))
	}
	if from == to {
		return apperr.Invalid(ErrUnchangedStatus)
	}
	for _, next := range transitions[from] {
		if next == to {
			return nil
		}
	}
	return apperr.Invalid(fmt.Errorf("%w: %s to %s", ErrIllegalTransition, from, to))
}
