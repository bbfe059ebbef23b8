// Package remotetest runs an in-memory stand-in for the remote beer service so
// console packages can be tested over real HTTP.
//
// It keeps just enough behaviour to exercise the console: version checks on
// full-record updates (409 on a stale version), "detail" bodies on errors,
// server-assigned ids and timestamps, payment amounts and status updates. Every
// request is recorded, and FailNext injects one failure.
package remotetest

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/ashendes/beer-console/internal/models"
)

// APIPrefix is where the fake mounts its routes.
const APIPrefix = "/api/v1"

// Request is one recorded call.
type Request struct {
	Method string
	Path   string
	Query  string
	Body   []byte
}

type failure struct {
	status int
	detail string
}

// Server is the fake remote beer service.
type Server struct {
	*httptest.Server

	mutex     sync.RWMutex
	beers     map[int64]*models.Beer
	customers map[int64]*models.Customer
	orders    map[int64]*models.BeerOrder
	shipments map[int64]*models.BeerOrderShipment
	nextID    int64
	requests  []Request
	failures  []failure
	clock     time.Time
}

// New starts a fake. Close it when done.
func New() *Server {
	gin.SetMode(gin.TestMode)

	s := &Server{
		beers:     make(map[int64]*models.Beer),
		customers: make(map[int64]*models.Customer),
		orders:    make(map[int64]*models.BeerOrder),
		shipments: make(map[int64]*models.BeerOrderShipment),
		clock:     time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
	}

	router := gin.New()
	router.Use(s.record, s.injectFailure)

	api := router.Group(APIPrefix)
	api.GET("/beers", s.listBeers)
	api.GET("/beers/:id", s.getBeer)
	api.POST("/beers", s.createBeer)
	api.PUT("/beers/:id", s.updateBeer)
	api.DELETE("/beers/:id", s.deleteBeer)

	api.GET("/customers", s.listCustomers)
	api.GET("/customers/:id", s.getCustomer)
	api.POST("/customers", s.createCustomer)
	api.PUT("/customers/:id", s.updateCustomer)
	api.DELETE("/customers/:id", s.deleteCustomer)

	api.GET("/beer-orders", s.listOrders)
	api.GET("/beer-orders/:id", s.getOrder)
	api.POST("/beer-orders", s.createOrder)
	api.PUT("/beer-orders/:id/status", s.updateOrderStatus)
	api.DELETE("/beer-orders/:id", s.deleteOrder)

	api.GET("/beer-order-shipments", s.listShipments)
	api.GET("/beer-order-shipments/:id", s.getShipment)
	api.POST("/beer-order-shipments", s.createShipment)
	api.PUT("/beer-order-shipments/:id", s.updateShipment)
	api.DELETE("/beer-order-shipments/:id", s.deleteShipment)

	s.Server = httptest.NewServer(router)
	return s
}

// BaseURL is the base path console clients should use.
func (s *Server) BaseURL() string {
	return s.URL + APIPrefix
}

// FailNext makes the next request answer status with detail (no detail body
// when detail is empty).
func (s *Server) FailNext(status int, detail string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.failures = append(s.failures, failure{status: status, detail: detail})
}

// Requests returns every recorded call in arrival order.
func (s *Server) Requests() []Request {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return append([]Request(nil), s.requests...)
}

// Writes returns the recorded calls that were not GETs.
func (s *Server) Writes() []Request {
	var writes []Request
	for _, r := range s.Requests() {
		if r.Method != http.MethodGet {
			writes = append(writes, r)
		}
	}
	return writes
}

// ResetRequests forgets recorded calls.
func (s *Server) ResetRequests() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.requests = nil
}

// SeedBeer stores b with a fresh id unless it already has one.
func (s *Server) SeedBeer(b models.Beer) models.Beer {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	b.ID = s.assignID(b.ID)
	if b.CreatedDate.IsZero() {
		b.CreatedDate = s.tick()
	}
	if b.UpdatedDate.IsZero() {
		b.UpdatedDate = b.CreatedDate
	}
	s.beers[b.ID] = &b
	return b
}

// SeedCustomer stores c with a fresh id unless it already has one.
func (s *Server) SeedCustomer(c models.Customer) models.Customer {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	c.ID = s.assignID(c.ID)
	if c.CreatedDate.IsZero() {
		c.CreatedDate = s.tick()
	}
	s.customers[c.ID] = &c
	return c
}

// SeedOrder stores o with a fresh id unless it already has one.
func (s *Server) SeedOrder(o models.BeerOrder) models.BeerOrder {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	o.ID = s.assignID(o.ID)
	if o.Status == "" {
		o.Status = models.OrderStatusPending
	}
	if o.CreatedDate.IsZero() {
		o.CreatedDate = s.tick()
	}
	s.orders[o.ID] = &o
	return o
}

// SeedShipment stores sh with a fresh id unless it already has one.
func (s *Server) SeedShipment(sh models.BeerOrderShipment) models.BeerOrderShipment {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	sh.ID = s.assignID(sh.ID)
	if sh.CreatedDate.IsZero() {
		sh.CreatedDate = s.tick()
	}
	s.shipments[sh.ID] = &sh
	return sh
}

// Order returns the stored order.
func (s *Server) Order(id int64) (models.BeerOrder, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	o, ok := s.orders[id]
	if !ok {
		return models.BeerOrder{}, false
	}
	return *o, true
}

// Beer returns the stored beer.
func (s *Server) Beer(id int64) (models.Beer, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	b, ok := s.beers[id]
	if !ok {
		return models.Beer{}, false
	}
	return *b, true
}

// BumpBeerVersion simulates a concurrent edit by another user.
func (s *Server) BumpBeerVersion(id int64) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if b, ok := s.beers[id]; ok {
		b.Version++
	}
}

func (s *Server) record(c *gin.Context) {
	var body []byte
	if c.Request.Body != nil {
		body, _ = io.ReadAll(c.Request.Body)
		c.Request.Body = io.NopCloser(bytes.NewReader(body))
	}

	s.mutex.Lock()
	s.requests = append(s.requests, Request{
		Method: c.Request.Method,
		Path:   c.Request.URL.Path,
		Query:  c.Request.URL.RawQuery,
		Body:   body,
	})
	s.mutex.Unlock()

	c.Next()
}

func (s *Server) injectFailure(c *gin.Context) {
	s.mutex.Lock()
	if len(s.failures) == 0 {
		s.mutex.Unlock()
		c.Next()
		return
	}
	f := s.failures[0]
	s.failures = s.failures[1:]
	s.mutex.Unlock()

	if f.detail == "" {
		c.AbortWithStatus(f.status)
		return
	}
	c.AbortWithStatusJSON(f.status, gin.H{"detail": f.detail})
}

// assignID must be called with the mutex held.
func (s *Server) assignID(id int64) int64 {
	if id > s.nextID {
		s.nextID = id
		return id
	}
	if id > 0 {
		return id
	}
	s.nextID++
	return s.nextID
}

// tick advances the fake clock so timestamps are distinct; mutex held.
func (s *Server) tick() models.Timestamp {
	s.clock = s.clock.Add(time.Minute)
	return models.NewTimestamp(s.clock)
}

func sortedIDs[T any](items map[int64]*T) []int64 {
	ids := make([]int64, 0, len(items))
	for id := range items {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid id"})
		return 0, false
	}
	return id, true
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request: " + err.Error()})
}

func notFound(c *gin.Context, entity string) {
	c.JSON(http.StatusNotFound, gin.H{"detail": entity + " not found"})
}

func staleVersion(c *gin.Context, entity string) {
	c.JSON(http.StatusConflict, gin.H{"detail": entity + " was updated by another user"})
}

func orderTotal(lines []models.BeerOrderLine, beers map[int64]*models.Beer) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		if b, ok := beers[line.BeerID]; ok {
			total = total.Add(b.Price.Mul(decimal.NewFromInt(int64(line.OrderQuantity))))
		}
	}
	return total
}
