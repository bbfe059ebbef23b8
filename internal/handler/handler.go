// Package handler exposes the console views over HTTP.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/ashendes/beer-console/internal/apperr"
	"github.com/ashendes/beer-console/internal/composer"
	"github.com/ashendes/beer-console/internal/guard"
	"github.com/ashendes/beer-console/internal/metrics"
	"github.com/ashendes/beer-console/internal/models"
	"github.com/ashendes/beer-console/internal/views"
)

// ServiceName labels the console's own HTTP metrics.
const ServiceName = "beer-console"

var errUnconfirmed = errors.New("deletion must be confirmed with confirm=true")

// CircuitReporter reports the state of the remote circuit breaker.
type CircuitReporter interface {
	CircuitState() string
}

// Views are the controllers the console serves.
type Views struct {
	Dashboard *views.Dashboard
	Beers     *views.Beers
	Customers *views.Customers
	Orders    *views.Orders
	Shipments *views.Shipments
}

// Handler serves the console API.
type Handler struct {
	views   Views
	drafts  *DraftStore
	circuit CircuitReporter
}

// New creates a Handler.
func New(v Views, drafts *DraftStore, circuit CircuitReporter) *Handler {
	return &Handler{views: v, drafts: drafts, circuit: circuit}
}

// Router builds the gin engine with every console route.
func (h *Handler) Router() *gin.Engine {
	router := gin.Default()

	// Add Prometheus middleware
	router.Use(metrics.PrometheusMiddleware(ServiceName))

	router.GET("/health", h.health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	api.GET("/dashboard", h.getDashboard)

	api.GET("/beers", h.listBeers)
	api.POST("/beers", h.createBeer)
	api.PUT("/beers/:id", h.updateBeer)
	api.DELETE("/beers/:id", h.deleteBeer)

	api.GET("/customers", h.listCustomers)
	api.POST("/customers", h.createCustomer)
	api.PUT("/customers/:id", h.updateCustomer)
	api.DELETE("/customers/:id", h.deleteCustomer)

	api.GET("/orders", h.listOrders)
	api.GET("/orders/:id/status-options", h.statusOptions)
	api.PUT("/orders/:id/status", h.changeStatus)
	api.DELETE("/orders/:id", h.deleteOrder)

	api.POST("/drafts", h.openDraft)
	api.GET("/drafts/:draftId", h.getDraft)
	api.PUT("/drafts/:draftId/customer-ref", h.setCustomerRef)
	api.POST("/drafts/:draftId/lines", h.addLine)
	api.PATCH("/drafts/:draftId/lines/:index", h.updateLine)
	api.DELETE("/drafts/:draftId/lines/:index", h.removeLine)
	api.POST("/drafts/:draftId/submit", h.submitDraft)
	api.DELETE("/drafts/:draftId", h.discardDraft)

	api.GET("/shipments", h.listShipments)
	api.GET("/shipments/candidates", h.shipmentCandidates)
	api.POST("/shipments", h.createShipment)
	api.PUT("/shipments/:id", h.updateShipment)
	api.DELETE("/shipments/:id", h.deleteShipment)

	return router
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"circuit": h.circuit.CircuitState(),
		"drafts":  h.drafts.Len(),
	})
}

func (h *Handler) getDashboard(c *gin.Context) {
	summary, err := h.views.Dashboard.Load(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *Handler) listBeers(c *gin.Context) {
	beers, err := h.views.Beers.Load(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, beers)
}

func (h *Handler) createBeer(c *gin.Context) {
	var req models.BeerUpdate
	if !bindUpdate(c, &req) {
		return
	}
	beer, err := h.views.Beers.Create(c.Request.Context(), req.BeerInput)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, beer)
}

func (h *Handler) updateBeer(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req models.BeerUpdate
	if !bindUpdate(c, &req) {
		return
	}
	beer, err := h.views.Beers.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, beer)
}

func (h *Handler) deleteBeer(c *gin.Context) {
	id, ok := confirmedDelete(c)
	if !ok {
		return
	}
	respondDeleted(c, h.views.Beers.Delete(c.Request.Context(), id))
}

func (h *Handler) listCustomers(c *gin.Context) {
	customers, err := h.views.Customers.Load(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, customers)
}

func (h *Handler) createCustomer(c *gin.Context) {
	var req models.CustomerInput
	if !bind(c, &req) {
		return
	}
	customer, err := h.views.Customers.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, customer)
}

func (h *Handler) updateCustomer(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req models.CustomerUpdate
	if !bindUpdate(c, &req) {
		return
	}
	customer, err := h.views.Customers.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *Handler) deleteCustomer(c *gin.Context) {
	id, ok := confirmedDelete(c)
	if !ok {
		return
	}
	respondDeleted(c, h.views.Customers.Delete(c.Request.Context(), id))
}

func (h *Handler) listOrders(c *gin.Context) {
	data, err := h.views.Orders.Load(c.Request.Context(), c.Query("customerRef"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, data)
}

func (h *Handler) statusOptions(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	choices, err := h.views.Orders.Options(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, choices)
}

func (h *Handler) changeStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	if !bind(c, &req) {
		return
	}
	status, err := guard.ParseStatus(req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	order, err := h.views.Orders.ChangeStatus(c.Request.Context(), id, status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order, "tone": guard.Treatment(order.Status)})
}

func (h *Handler) deleteOrder(c *gin.Context) {
	id, ok := confirmedDelete(c)
	if !ok {
		return
	}
	respondDeleted(c, h.views.Orders.Delete(c.Request.Context(), id))
}

type draftResponse struct {
	ID             string `json:"id"`
	CanRemoveLines bool   `json:"canRemoveLines"`
	composer.Snapshot
}

func newDraftResponse(id string, d *composer.Draft) draftResponse {
	return draftResponse{ID: id, CanRemoveLines: d.CanRemoveLines(), Snapshot: d.Snapshot()}
}

func (h *Handler) openDraft(c *gin.Context) {
	id, draft := h.drafts.Open()
	log.WithField("draft_id", id).Debug("Draft opened")
	c.JSON(http.StatusCreated, newDraftResponse(id, draft))
}

func (h *Handler) draft(c *gin.Context) (string, *composer.Draft, bool) {
	id := c.Param("draftId")
	draft, ok := h.drafts.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "draft not found"})
		return "", nil, false
	}
	return id, draft, true
}

func (h *Handler) getDraft(c *gin.Context) {
	id, draft, ok := h.draft(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, newDraftResponse(id, draft))
}

func (h *Handler) setCustomerRef(c *gin.Context) {
	id, draft, ok := h.draft(c)
	if !ok {
		return
	}
	var req struct {
		CustomerRef string `json:"customerRef"`
	}
	if !bind(c, &req) {
		return
	}
	draft.SetCustomerRef(req.CustomerRef)
	c.JSON(http.StatusOK, newDraftResponse(id, draft))
}

func (h *Handler) addLine(c *gin.Context) {
	id, draft, ok := h.draft(c)
	if !ok {
		return
	}
	draft.AddLine()
	c.JSON(http.StatusOK, newDraftResponse(id, draft))
}

func (h *Handler) updateLine(c *gin.Context) {
	id, draft, ok := h.draft(c)
	if !ok {
		return
	}
	index, ok := pathIndex(c)
	if !ok {
		return
	}
	var req struct {
		Field composer.Field `json:"field"`
		Value int64          `json:"value"`
	}
	if !bind(c, &req) {
		return
	}
	if err := draft.UpdateLine(index, req.Field, req.Value); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newDraftResponse(id, draft))
}

func (h *Handler) removeLine(c *gin.Context) {
	id, draft, ok := h.draft(c)
	if !ok {
		return
	}
	index, ok := pathIndex(c)
	if !ok {
		return
	}
	if err := draft.RemoveLine(index); err != nil {
		if errors.Is(err, composer.ErrLastLine) {
			c.JSON(http.StatusConflict, gin.H{"error": apperr.Message(err)})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newDraftResponse(id, draft))
}

func (h *Handler) submitDraft(c *gin.Context) {
	id, draft, ok := h.draft(c)
	if !ok {
		return
	}
	order, err := h.views.Orders.Submit(c.Request.Context(), draft)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"order": order, "draft": newDraftResponse(id, draft)})
}

func (h *Handler) discardDraft(c *gin.Context) {
	if !h.drafts.Discard(c.Param("draftId")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "draft not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

type shipmentRow struct {
	models.BeerOrderShipment
	OrderLabel         string `json:"orderLabel"`
	OrderRefIsEditable bool   `json:"orderReferenceEditable"`
}

func (h *Handler) listShipments(c *gin.Context) {
	var beerOrderID int64
	if raw := c.Query("beerOrderId"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid beerOrderId"})
			return
		}
		beerOrderID = parsed
	}

	v := h.views.Shipments
	data, err := v.Load(c.Request.Context(), beerOrderID)
	if err != nil {
		respondError(c, err)
		return
	}

	rows := make([]shipmentRow, len(data.Shipments))
	for i, s := range data.Shipments {
		rows[i] = shipmentRow{
			BeerOrderShipment:  s,
			OrderLabel:         v.OrderLabel(s.BeerOrderID),
			OrderRefIsEditable: guard.OrderReferenceEditable(true),
		}
	}
	c.JSON(http.StatusOK, rows)
}

func (h *Handler) shipmentCandidates(c *gin.Context) {
	v := h.views.Shipments
	if _, err := v.Load(c.Request.Context(), 0); err != nil {
		respondError(c, err)
		return
	}

	type candidate struct {
		ID     int64              `json:"id"`
		Label  string             `json:"label"`
		Status models.OrderStatus `json:"status"`
		Tone   guard.Tone         `json:"tone"`
	}
	orders := v.Candidates()
	candidates := make([]candidate, len(orders))
	for i, o := range orders {
		candidates[i] = candidate{ID: o.ID, Label: v.OrderLabel(o.ID), Status: o.Status, Tone: guard.Treatment(o.Status)}
	}
	c.JSON(http.StatusOK, gin.H{
		"orders":                 candidates,
		"orderReferenceEditable": guard.OrderReferenceEditable(false),
	})
}

func (h *Handler) createShipment(c *gin.Context) {
	var req models.ShipmentInput
	if !bind(c, &req) {
		return
	}
	shipment, err := h.views.Shipments.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, shipment)
}

func (h *Handler) updateShipment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req models.ShipmentInput
	if !bind(c, &req) {
		return
	}
	shipment, err := h.views.Shipments.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, shipment)
}

func (h *Handler) deleteShipment(c *gin.Context) {
	id, ok := confirmedDelete(c)
	if !ok {
		return
	}
	respondDeleted(c, h.views.Shipments.Delete(c.Request.Context(), id))
}

func respondError(c *gin.Context, err error) {
	c.JSON(apperr.HTTPStatus(err), gin.H{"error": apperr.Message(err)})
}

func respondDeleted(c *gin.Context, err error) {
	if err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return false
	}
	return true
}

// bindUpdate binds an edit and insists on the version the editor last saw;
// without it the remote cannot detect a concurrent change.
func bindUpdate(c *gin.Context, req any) bool {
	if err := c.ShouldBindBodyWith(req, binding.JSON); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return false
	}
	var versioned struct {
		Version *models.Version `json:"version"`
	}
	if err := c.ShouldBindBodyWith(&versioned, binding.JSON); err != nil || versioned.Version == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "version is required"})
		return false
	}
	return true
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return 0, false
	}
	return id, true
}

func pathIndex(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid line index"})
		return 0, false
	}
	return index, true
}

func confirmedDelete(c *gin.Context) (int64, bool) {
	id, ok := pathID(c, "id")
	if !ok {
		return 0, false
	}
	if c.Query("confirm") != "true" {
		respondError(c, apperr.Invalid(errUnconfirmed))
		return 0, false
	}
	return id, true
}
