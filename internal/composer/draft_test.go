package composer

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashendes/beer-console/internal/apiclient"
	"github.com/ashendes/beer-console/internal/apperr"
	"github.com/ashendes/beer-console/internal/entities"
	"github.com/ashendes/beer-console/internal/models"
	"github.com/ashendes/beer-console/internal/remotetest"
)

type fakeCreator struct {
	calls []models.CreateBeerOrderCommand
	err   error
}

func (f *fakeCreator) Create(ctx context.Context, cmd models.CreateBeerOrderCommand) (*models.BeerOrder, error) {
	f.calls = append(f.calls, cmd)
	if f.err != nil {
		return nil, f.err
	}
	return &models.BeerOrder{ID: 42, CustomerRef: cmd.CustomerRef, Status: models.OrderStatusPending}, nil
}

func TestNewDraftHasOneEmptyLine(t *testing.T) {
	d := New()
	snap := d.Snapshot()
	assert.Equal(t, "", snap.CustomerRef)
	assert.Equal(t, []Line{{BeerID: Unselected, Quantity: 1}}, snap.Lines)
	assert.False(t, d.CanRemoveLines())
}

func TestRemoveLinePreservesOrder(t *testing.T) {
	d := New()
	d.AddLine()
	d.AddLine()
	d.AddLine()
	for i := 0; i < 4; i++ {
		require.NoError(t, d.UpdateLine(i, FieldBeer, int64(10+i)))
	}

	require.NoError(t, d.RemoveLine(1))

	snap := d.Snapshot()
	require.Len(t, snap.Lines, 3)
	assert.Equal(t, []int64{10, 12, 13}, beerIDs(snap.Lines))
}

func TestRemoveLineRefusesLastLine(t *testing.T) {
	d := New()
	require.NoError(t, d.UpdateLine(0, FieldBeer, 7))

	err := d.RemoveLine(0)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLastLine)
	assert.True(t, apperr.Normalize(err).IsValidation())
	assert.Len(t, d.Snapshot().Lines, 1)
	assert.Equal(t, int64(7), d.Snapshot().Lines[0].BeerID)
}

func TestRemoveLineOutOfRange(t *testing.T) {
	d := New()
	d.AddLine()
	assert.ErrorIs(t, d.RemoveLine(2), ErrLineOutOfRange)
	assert.ErrorIs(t, d.RemoveLine(-1), ErrLineOutOfRange)
	assert.Len(t, d.Snapshot().Lines, 2)
}

func TestUpdateLineTouchesOnlyTarget(t *testing.T) {
	d := New()
	d.AddLine()
	require.NoError(t, d.UpdateLine(0, FieldBeer, 3))
	require.NoError(t, d.UpdateLine(1, FieldQuantity, 6))

	snap := d.Snapshot()
	assert.Equal(t, Line{BeerID: 3, Quantity: 1}, snap.Lines[0])
	assert.Equal(t, Line{BeerID: Unselected, Quantity: 6}, snap.Lines[1])

	assert.ErrorIs(t, d.UpdateLine(0, Field("price"), 1), ErrUnknownField)
	assert.ErrorIs(t, d.UpdateLine(5, FieldBeer, 1), ErrLineOutOfRange)
}

func TestSnapshotIsACopy(t *testing.T) {
	d := New()
	snap := d.Snapshot()
	snap.Lines[0].BeerID = 99
	assert.Equal(t, Unselected, d.Snapshot().Lines[0].BeerID)
}

func TestCommandAndReset(t *testing.T) {
	d := New()
	d.SetCustomerRef("CUST-7")
	require.NoError(t, d.UpdateLine(0, FieldBeer, 5))
	d.AddLine()
	require.NoError(t, d.UpdateLine(1, FieldBeer, 6))
	require.NoError(t, d.UpdateLine(1, FieldQuantity, 4))

	assert.Equal(t, models.CreateBeerOrderCommand{
		CustomerRef: "CUST-7",
		OrderLines: []models.OrderLineCommand{
			{BeerID: 5, OrderQuantity: 1},
			{BeerID: 6, OrderQuantity: 4},
		},
	}, d.Command())

	d.Reset()
	assert.Equal(t, Snapshot{Lines: []Line{{BeerID: Unselected, Quantity: 1}}}, d.Snapshot())
}

func TestValidate(t *testing.T) {
	catalog := []models.Beer{{ID: 3}, {ID: 4}}

	tests := []struct {
		name  string
		setup func(d *Draft)
		want  error
	}{
		{"missing customer", func(d *Draft) { _ = d.UpdateLine(0, FieldBeer, 3) }, ErrCustomerRefRequired},
		{"unselected beer", func(d *Draft) { d.SetCustomerRef("CUST-1") }, ErrBeerNotSelected},
		{"zero quantity", func(d *Draft) {
			d.SetCustomerRef("CUST-1")
			_ = d.UpdateLine(0, FieldBeer, 3)
			_ = d.UpdateLine(0, FieldQuantity, 0)
		}, ErrQuantityTooSmall},
		{"unknown beer", func(d *Draft) {
			d.SetCustomerRef("CUST-1")
			_ = d.UpdateLine(0, FieldBeer, 9)
		}, ErrUnknownBeer},
		{"unselected second line", func(d *Draft) {
			d.SetCustomerRef("CUST-1")
			_ = d.UpdateLine(0, FieldBeer, 3)
			d.AddLine()
		}, ErrBeerNotSelected},
		{"valid", func(d *Draft) {
			d.SetCustomerRef("CUST-1")
			_ = d.UpdateLine(0, FieldBeer, 4)
		}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New()
			tt.setup(d)
			err := d.Validate(catalog)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
			assert.True(t, apperr.Normalize(err).IsValidation())
		})
	}
}

func TestValidateWithoutCatalogSkipsMembership(t *testing.T) {
	d := New()
	d.SetCustomerRef("CUST-1")
	require.NoError(t, d.UpdateLine(0, FieldBeer, 12345))
	assert.NoError(t, d.Validate(nil))
}

func TestSubmitRejectsUnselectedBeerBeforeNetwork(t *testing.T) {
	creator := &fakeCreator{}
	d := New()
	d.SetCustomerRef("CUST-1")

	_, err := d.Submit(context.Background(), creator, nil)
	assert.ErrorIs(t, err, ErrBeerNotSelected)
	assert.Empty(t, creator.calls)
	assert.Equal(t, "CUST-1", d.Snapshot().CustomerRef)
}

func TestSubmitFailureKeepsDraft(t *testing.T) {
	creator := &fakeCreator{err: apperr.Remote(http.StatusBadRequest, "Insufficient stock")}
	d := New()
	d.SetCustomerRef("CUST-1")
	require.NoError(t, d.UpdateLine(0, FieldBeer, 3))
	d.AddLine()
	require.NoError(t, d.UpdateLine(1, FieldBeer, 4))
	require.NoError(t, d.UpdateLine(1, FieldQuantity, 5))
	before := d.Snapshot()

	_, err := d.Submit(context.Background(), creator, nil)
	require.Error(t, err)
	assert.Equal(t, "Insufficient stock", apperr.Message(err))
	assert.Equal(t, before, d.Snapshot())
	require.Len(t, creator.calls, 1)
}

func TestSubmitSuccessResets(t *testing.T) {
	creator := &fakeCreator{}
	d := New()
	d.SetCustomerRef("CUST-1")
	require.NoError(t, d.UpdateLine(0, FieldBeer, 3))
	require.NoError(t, d.UpdateLine(0, FieldQuantity, 2))

	order, err := d.Submit(context.Background(), creator, []models.Beer{{ID: 3}})
	require.NoError(t, err)
	assert.Equal(t, int64(42), order.ID)
	assert.Equal(t, models.CreateBeerOrderCommand{
		CustomerRef: "CUST-1",
		OrderLines:  []models.OrderLineCommand{{BeerID: 3, OrderQuantity: 2}},
	}, creator.calls[0])
	assert.Equal(t, Snapshot{Lines: []Line{{BeerID: Unselected, Quantity: 1}}}, d.Snapshot())
}

func TestSubmitEndToEnd(t *testing.T) {
	remote := remotetest.New()
	defer remote.Close()
	remote.SeedBeer(models.Beer{ID: 3, BeerName: "Galaxy Cat"})

	orders := entities.NewBeerOrderService(apiclient.New(apiclient.Config{BaseURL: remote.BaseURL()}))

	d := New()
	d.SetCustomerRef("CUST-1")
	require.NoError(t, d.UpdateLine(0, FieldBeer, 3))
	require.NoError(t, d.UpdateLine(0, FieldQuantity, 2))

	order, err := d.Submit(context.Background(), orders, nil)
	require.NoError(t, err)
	assert.Equal(t, "CUST-1", order.CustomerRef)

	writes := remote.Writes()
	require.Len(t, writes, 1)
	assert.Equal(t, http.MethodPost, writes[0].Method)
	assert.Equal(t, "/api/v1/beer-orders", writes[0].Path)
	assert.JSONEq(t, `{"customerRef":"CUST-1","orderLines":[{"beerId":3,"orderQuantity":2}]}`, string(writes[0].Body))

	snap := d.Snapshot()
	assert.Equal(t, "", snap.CustomerRef)
	assert.Equal(t, []Line{{BeerID: Unselected, Quantity: 1}}, snap.Lines)
}

func TestSubmitEndToEndRemoteRejection(t *testing.T) {
	remote := remotetest.New()
	defer remote.Close()
	remote.FailNext(http.StatusConflict, "Not enough Galaxy Cat")

	orders := entities.NewBeerOrderService(apiclient.New(apiclient.Config{BaseURL: remote.BaseURL()}))
	d := New()
	d.SetCustomerRef("CUST-1")
	require.NoError(t, d.UpdateLine(0, FieldBeer, 3))

	_, err := d.Submit(context.Background(), orders, nil)
	require.Error(t, err)
	var e *apperr.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, "Not enough Galaxy Cat", e.Message)
	assert.Equal(t, int64(3), d.Snapshot().Lines[0].BeerID)
}

func beerIDs(lines []Line) []int64 {
	ids := make([]int64, len(lines))
	for i, l := range lines {
		ids[i] = l.BeerID
	}
	return ids
}
