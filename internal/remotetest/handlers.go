package remotetest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ashendes/beer-console/internal/models"
)

func (s *Server) listBeers(c *gin.Context) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	beers := make([]models.Beer, 0, len(s.beers))
	for _, id := range sortedIDs(s.beers) {
		beers = append(beers, *s.beers[id])
	}
	c.JSON(http.StatusOK, beers)
}

func (s *Server) getBeer(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	s.mutex.RLock()
	beer, exists := s.beers[id]
	s.mutex.RUnlock()

	if !exists {
		notFound(c, "Beer")
		return
	}
	c.JSON(http.StatusOK, beer)
}

func (s *Server) createBeer(c *gin.Context) {
	var req models.BeerInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	now := s.tick()
	beer := &models.Beer{
		ID:          s.assignID(0),
		CreatedDate: now,
		UpdatedDate: now,
	}
	applyBeer(beer, req)
	s.beers[beer.ID] = beer
	c.JSON(http.StatusCreated, beer)
}

func (s *Server) updateBeer(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req models.BeerUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	beer, exists := s.beers[id]
	if !exists {
		notFound(c, "Beer")
		return
	}
	if beer.Version != req.Version {
		staleVersion(c, "Beer")
		return
	}
	applyBeer(beer, req.BeerInput)
	beer.Version++
	beer.UpdatedDate = s.tick()
	c.JSON(http.StatusOK, beer)
}

func (s *Server) deleteBeer(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, exists := s.beers[id]; !exists {
		notFound(c, "Beer")
		return
	}
	delete(s.beers, id)
	c.Status(http.StatusNoContent)
}

func applyBeer(b *models.Beer, in models.BeerInput) {
	b.BeerName = in.BeerName
	b.BeerStyle = in.BeerStyle
	b.UPC = in.UPC
	b.QuantityOnHand = in.QuantityOnHand
	b.Price = in.Price
}

func (s *Server) listCustomers(c *gin.Context) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	customers := make([]models.Customer, 0, len(s.customers))
	for _, id := range sortedIDs(s.customers) {
		customers = append(customers, *s.customers[id])
	}
	c.JSON(http.StatusOK, customers)
}

func (s *Server) getCustomer(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	s.mutex.RLock()
	customer, exists := s.customers[id]
	s.mutex.RUnlock()

	if !exists {
		notFound(c, "Customer")
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (s *Server) createCustomer(c *gin.Context) {
	var req models.CustomerInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	now := s.tick()
	customer := &models.Customer{ID: s.assignID(0), CreatedDate: now, UpdatedDate: now}
	applyCustomer(customer, req)
	s.customers[customer.ID] = customer
	c.JSON(http.StatusCreated, customer)
}

func (s *Server) updateCustomer(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req models.CustomerUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	customer, exists := s.customers[id]
	if !exists {
		notFound(c, "Customer")
		return
	}
	if customer.Version != req.Version {
		staleVersion(c, "Customer")
		return
	}
	applyCustomer(customer, req.CustomerInput)
	customer.Version++
	customer.UpdatedDate = s.tick()
	c.JSON(http.StatusOK, customer)
}

func (s *Server) deleteCustomer(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, exists := s.customers[id]; !exists {
		notFound(c, "Customer")
		return
	}
	delete(s.customers, id)
	c.Status(http.StatusNoContent)
}

func applyCustomer(c *models.Customer, in models.CustomerInput) {
	c.Name = in.Name
	c.Email = in.Email
	c.PhoneNumber = in.PhoneNumber
	c.AddressLine1 = in.AddressLine1
	c.AddressLine2 = in.AddressLine2
	c.City = in.City
	c.State = in.State
	c.PostalCode = in.PostalCode
}

func (s *Server) listOrders(c *gin.Context) {
	customerRef := c.Query("customerRef")

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	orders := make([]models.BeerOrder, 0, len(s.orders))
	for _, id := range sortedIDs(s.orders) {
		order := s.orders[id]
		if customerRef != "" && order.CustomerRef != customerRef {
			continue
		}
		orders = append(orders, *order)
	}
	c.JSON(http.StatusOK, orders)
}

func (s *Server) getOrder(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	order, exists := s.orders[id]
	if !exists {
		notFound(c, "Beer order")
		return
	}

	hydrated := *order
	hydrated.BeerOrderLines = make([]models.BeerOrderLine, len(order.BeerOrderLines))
	for i, line := range order.BeerOrderLines {
		if beer, ok := s.beers[line.BeerID]; ok {
			b := *beer
			line.Beer = &b
		}
		hydrated.BeerOrderLines[i] = line
	}
	c.JSON(http.StatusOK, hydrated)
}

func (s *Server) createOrder(c *gin.Context) {
	var req models.CreateBeerOrderCommand
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if len(req.OrderLines) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Order must contain at least one line"})
		return
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	now := s.tick()
	order := &models.BeerOrder{
		ID:          s.assignID(0),
		CustomerRef: req.CustomerRef,
		Status:      models.OrderStatusPending,
		CreatedDate: now,
		UpdatedDate: now,
	}
	for _, line := range req.OrderLines {
		if _, ok := s.beers[line.BeerID]; !ok {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Beer not found: " + strconv.FormatInt(line.BeerID, 10)})
			return
		}
		order.BeerOrderLines = append(order.BeerOrderLines, models.BeerOrderLine{
			ID:            s.assignID(0),
			BeerID:        line.BeerID,
			OrderQuantity: line.OrderQuantity,
			Status:        "NEW",
			CreatedDate:   now,
			UpdatedDate:   now,
		})
	}
	order.PaymentAmount = orderTotal(order.BeerOrderLines, s.beers)
	s.orders[order.ID] = order
	c.JSON(http.StatusCreated, order)
}

func (s *Server) updateOrderStatus(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req models.StatusUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	order, exists := s.orders[id]
	if !exists {
		notFound(c, "Beer order")
		return
	}
	order.Status = req.Status
	order.Version++
	order.UpdatedDate = s.tick()
	c.JSON(http.StatusOK, order)
}

func (s *Server) deleteOrder(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, exists := s.orders[id]; !exists {
		notFound(c, "Beer order")
		return
	}
	delete(s.orders, id)
	c.Status(http.StatusNoContent)
}

func (s *Server) listShipments(c *gin.Context) {
	var orderID int64
	if raw := c.Query("beerOrderId"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			badRequest(c, err)
			return
		}
		orderID = parsed
	}

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	shipments := make([]models.BeerOrderShipment, 0, len(s.shipments))
	for _, id := range sortedIDs(s.shipments) {
		shipment := s.shipments[id]
		if orderID != 0 && shipment.BeerOrderID != orderID {
			continue
		}
		shipments = append(shipments, *shipment)
	}
	c.JSON(http.StatusOK, shipments)
}

func (s *Server) getShipment(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	s.mutex.RLock()
	shipment, exists := s.shipments[id]
	s.mutex.RUnlock()

	if !exists {
		notFound(c, "Shipment")
		return
	}
	c.JSON(http.StatusOK, shipment)
}

func (s *Server) createShipment(c *gin.Context) {
	var req models.ShipmentInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, ok := s.orders[req.BeerOrderID]; !ok {
		notFound(c, "Beer order")
		return
	}
	now := s.tick()
	shipment := &models.BeerOrderShipment{
		ID:             s.assignID(0),
		ShipmentDate:   req.ShipmentDate,
		Carrier:        req.Carrier,
		TrackingNumber: req.TrackingNumber,
		BeerOrderID:    req.BeerOrderID,
		CreatedDate:    now,
		UpdatedDate:    now,
	}
	s.shipments[shipment.ID] = shipment
	c.JSON(http.StatusCreated, shipment)
}

func (s *Server) updateShipment(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req models.ShipmentUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	shipment, exists := s.shipments[id]
	if !exists {
		notFound(c, "Shipment")
		return
	}
	shipment.ShipmentDate = req.ShipmentDate
	shipment.Carrier = req.Carrier
	shipment.TrackingNumber = req.TrackingNumber
	shipment.Version++
	shipment.UpdatedDate = s.tick()
	c.JSON(http.StatusOK, shipment)
}

func (s *Server) deleteShipment(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, exists := s.shipments[id]; !exists {
		notFound(c, "Shipment")
		return
	}
	delete(s.shipments, id)
	c.Status(http.StatusNoContent)
}
