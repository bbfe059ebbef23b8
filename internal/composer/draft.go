// Package composer assembles beer order creation commands from a draft of
// order lines that the user edits before submitting.
package composer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/ashendes/beer-console/internal/apperr"
	"github.com/ashendes/beer-console/internal/metrics"
	"github.com/ashendes/beer-console/internal/models"
)

// Unselected is the beer id of a line whose beer has not been chosen yet.
const Unselected int64 = 0

// DefaultQuantity is the quantity of a fresh line.
const DefaultQuantity = 1

// Rule violations, wrapped in validation errors.
var (
	ErrLastLine            = errors.New("an order must keep at least one line")
	ErrLineOutOfRange      = errors.New("order line does not exist")
	ErrUnknownField        = errors.New("unknown order line field")
	ErrCustomerRefRequired = errors.New("customer reference is required")
	ErrNoLines             = errors.New("order must contain at least one line")
	ErrBeerNotSelected     = errors.New("every order line needs a beer")
	ErrQuantityTooSmall    = errors.New("order quantity must be at least 1")
	ErrUnknownBeer         = errors.New("order line references an unknown beer")
)

// Field names an editable field of a draft line.
type Field string

const (
	FieldBeer     Field = "beerId"
	FieldQuantity Field = "orderQuantity"
)

// Line is one draft order line.
type Line struct {
	BeerID   int64 `json:"beerId"`
	Quantity int   `json:"orderQuantity"`
}

// Selected reports whether a beer was chosen.
func (l Line) Selected() bool {
	return l.BeerID != Unselected
}

// Snapshot is a copy of a draft for rendering.
type Snapshot struct {
	CustomerRef string `json:"customerRef"`
	Lines       []Line `json:"orderLines"`
}

// OrderCreator submits creation commands.
type OrderCreator interface {
	Create(ctx context.Context, cmd models.CreateBeerOrderCommand) (*models.BeerOrder, error)
}

// Draft is the mutable order being composed in one view. It always holds at
// least one line. The zero value is not usable; call New.
type Draft struct {
	mu          sync.Mutex
	customerRef string
	lines       []Line
}

// New returns a draft with one empty line.
func New() *Draft {
	d := &Draft{}
	d.resetLocked()
	return d
}

// Reset discards all edits.
func (d *Draft) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.resetLocked()
}

func (d *Draft) resetLocked() {
	d.customerRef = ""
	d.lines = []Line{newLine()}
}

func newLine() Line {
	return Line{BeerID: Unselected, Quantity: DefaultQuantity}
}

// SetCustomerRef replaces the customer reference.
func (d *Draft) SetCustomerRef(ref string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.customerRef = ref
}

// AddLine appends an empty line.
func (d *Draft) AddLine() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.lines = append(d.lines, newLine())
}

// RemoveLine removes the line at index, keeping the order of the others.
// Removing the only line is refused.
func (d *Draft) RemoveLine(index int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if index < 0 || index >= len(d.lines) {
		return apperr.Invalid(ErrLineOutOfRange)
	}
	if len(d.lines) == 1 {
		return apperr.Invalid(ErrLastLine)
	}

	lines := make([]Line, 0, len(d.lines)-1)
	lines = append(lines, d.lines[:index]...)
	lines = append(lines, d.lines[index+1:]...)
	d.lines = lines
	return nil
}

// UpdateLine replaces one field of the line at index.
func (d *Draft) UpdateLine(index int, field Field, value int64) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if index < 0 || index >= len(d.lines) {
		return apperr.Invalid(ErrLineOutOfRange)
	}

	line := d.lines[index]
	switch field {
	case FieldBeer:
		line.BeerID = value
	case FieldQuantity:
		line.Quantity = int(value)
	default:
		return apperr.Invalid(ErrUnknownField)
	}
	d.lines[index] = line
	return nil
}

// CanRemoveLines reports whether a remove control should be offered.
func (d *Draft) CanRemoveLines() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.lines) > 1
}

// Snapshot copies the current draft.
func (d *Draft) Snapshot() Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return Snapshot{
		CustomerRef: d.customerRef,
		Lines:       append([]Line(nil), d.lines...),
	}
}

// Validate checks the draft against the rules a creation command must satisfy.
// A nil catalog skips the known-beer check.
func (d *Draft) Validate(catalog []models.Beer) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.validateLocked(catalog)
}

func (d *Draft) validateLocked(catalog []models.Beer) error {
	if strings.TrimSpace(d.customerRef) == "" {
		return apperr.Invalid(ErrCustomerRefRequired)
	}
	if len(d.lines) == 0 {
		return apperr.Invalid(ErrNoLines)
	}

	var known map[int64]bool
	if catalog != nil {
		known = make(map[int64]bool, len(catalog))
		for _, b := range catalog {
			known[b.ID] = true
		}
	}

	for i, line := range d.lines {
		if !line.Selected() {
			return lineError(i, ErrBeerNotSelected)
		}
		if line.Quantity < 1 {
			return lineError(i, ErrQuantityTooSmall)
		}
		if known != nil && !known[line.BeerID] {
			return lineError(i, ErrUnknownBeer)
		}
	}
	return nil
}

// Command builds the creation command from the draft as it stands.
func (d *Draft) Command() models.CreateBeerOrderCommand {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.commandLocked()
}

func (d *Draft) commandLocked() models.CreateBeerOrderCommand {
	cmd := models.CreateBeerOrderCommand{
		CustomerRef: d.customerRef,
		OrderLines:  make([]models.OrderLineCommand, len(d.lines)),
	}
	for i, line := range d.lines {
		cmd.OrderLines[i] = models.OrderLineCommand{BeerID: line.BeerID, OrderQuantity: line.Quantity}
	}
	return cmd
}

// Submit validates the draft and sends it through creator. On success the
// draft is reset; on failure it is left exactly as it was.
func (d *Draft) Submit(ctx context.Context, creator OrderCreator, catalog []models.Beer) (*models.BeerOrder, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.validateLocked(catalog); err != nil {
		metrics.OrderSubmissionsTotal.WithLabelValues("invalid").Inc()
		return nil, err
	}

	cmd := d.commandLocked()
	order, err := creator.Create(ctx, cmd)
	metrics.OrderSubmissionsTotal.WithLabelValues(metrics.Outcome(err)).Inc()
	if err != nil {
		log.WithFields(log.Fields{
			"customer_ref": cmd.CustomerRef,
			"lines":        len(cmd.OrderLines),
		}).WithError(err).Warn("Order submission failed, keeping draft")
		return nil, err
	}

	log.WithFields(log.Fields{
		"order_id":     order.ID,
		"customer_ref": cmd.CustomerRef,
		"lines":        len(cmd.OrderLines),
	}).Info("Order submitted")

	d.resetLocked()
	return order, nil
}

type lineViolation struct {
	index int
	rule  error
}

func (v *lineViolation) Error() string {
	return fmt.Sprintf("line %d: %v", v.index+1, v.rule)
}

func (v *lineViolation) Unwrap() error {
	return v.rule
}

func lineError(index int, rule error) error {
	return apperr.Invalid(&lineViolation{index: index, rule: rule})
}
