package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashendes/beer-console/internal/apperr"
	"github.com/ashendes/beer-console/internal/models"
)

func TestTreatment(t *testing.T) {
	tests := []struct {
		status models.OrderStatus
		want   Tone
	}{
		{models.OrderStatusPending, ToneBlue},
		{models.OrderStatusConfirmed, ToneGreen},
		{models.OrderStatusShipped, ToneYellow},
		{models.OrderStatusDelivered, TonePurple},
		{models.OrderStatusCancelled, ToneRed},
		{"ON_HOLD", ToneNeutral},
		{"", ToneNeutral},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Treatment(tt.status), "status %q", tt.status)
	}
}

func TestShipmentCandidates(t *testing.T) {
	var orders []models.BeerOrder
	for i, s := range models.OrderStatuses {
		orders = append(orders, models.BeerOrder{ID: int64(i + 1), Status: s})
	}
	orders = append(orders, models.BeerOrder{ID: 9, Status: models.OrderStatusConfirmed})

	candidates := ShipmentCandidates(orders)
	require.Len(t, candidates, 3)
	assert.Equal(t, int64(2), candidates[0].ID)
	assert.Equal(t, int64(3), candidates[1].ID)
	assert.Equal(t, int64(9), candidates[2].ID)
	for _, c := range candidates {
		assert.True(t, ShipmentEligible(c))
	}

	assert.Empty(t, ShipmentCandidates(nil))
}

func TestOrderReferenceEditable(t *testing.T) {
	assert.True(t, OrderReferenceEditable(false))
	assert.False(t, OrderReferenceEditable(true))
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus("SHIPPED")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusShipped, s)

	_, err = ParseStatus("shipped")
	assert.ErrorIs(t, err, ErrUnknownStatus)
	assert.True(t, apperr.Normalize(err).IsValidation())
}

func TestNextStatuses(t *testing.T) {
	assert.Equal(t, []models.OrderStatus{models.OrderStatusConfirmed, models.OrderStatusCancelled}, NextStatuses(models.OrderStatusPending))
	assert.Equal(t, []models.OrderStatus{models.OrderStatusShipped, models.OrderStatusCancelled}, NextStatuses(models.OrderStatusConfirmed))
	assert.Equal(t, []models.OrderStatus{models.OrderStatusDelivered}, NextStatuses(models.OrderStatusShipped))
	assert.Empty(t, NextStatuses(models.OrderStatusDelivered))
	assert.Empty(t, NextStatuses(models.OrderStatusCancelled))
	assert.Empty(t, NextStatuses("ON_HOLD"))

	next := NextStatuses(models.OrderStatusPending)
	next[0] = models.OrderStatusDelivered
	assert.Equal(t, models.OrderStatusConfirmed, NextStatuses(models.OrderStatusPending)[0])
}

func TestTerminal(t *testing.T) {
	assert.True(t, Terminal(models.OrderStatusDelivered))
	assert.True(t, Terminal(models.OrderStatusCancelled))
	assert.False(t, Terminal(models.OrderStatusShipped))
	assert.False(t, Terminal("ON_HOLD"))
}

func TestCheckTransition(t *testing.T) {
	tests := []struct {
		name     string
		from, to models.OrderStatus
		want     error
	}{
		{"confirm pending", models.OrderStatusPending, models.OrderStatusConfirmed, nil},
		{"cancel confirmed", models.OrderStatusConfirmed, models.OrderStatusCancelled, nil},
		{"deliver shipped", models.OrderStatusShipped, models.OrderStatusDelivered, nil},
		{"skip to shipped", models.OrderStatusPending, models.OrderStatusShipped, ErrIllegalTransition},
		{"cancel shipped", models.OrderStatusShipped, models.OrderStatusCancelled, ErrIllegalTransition},
		{"reopen delivered", models.OrderStatusDelivered, models.OrderStatusPending, ErrIllegalTransition},
		{"same status", models.OrderStatusConfirmed, models.OrderStatusConfirmed, ErrUnchangedStatus},
		{"unknown target", models.OrderStatusPending, "LOST", ErrUnknownStatus},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckTransition(tt.from, tt.to)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
			assert.True(t, apperr.Normalize(err).IsValidation())
		})
	}
}
