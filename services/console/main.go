package main

import (
	log "github.com/sirupsen/logrus"

	"github.com/ashendes/beer-console/internal/apiclient"
	"github.com/ashendes/beer-console/internal/config"
	"github.com/ashendes/beer-console/internal/entities"
	"github.com/ashendes/beer-console/internal/handler"
	"github.com/ashendes/beer-console/internal/patterns"
	"github.com/ashendes/beer-console/internal/views"
)

func init() {
	// Initialize logger
	log.SetFormatter(&log.JSONFormatter{})
	log.SetLevel(log.InfoLevel)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration: ", err)
	}
	log.SetLevel(cfg.LogLevel)

	client := apiclient.New(cfg.Client())

	beers := entities.NewBeerService(client)
	customers := entities.NewCustomerService(client)
	orders := entities.NewBeerOrderService(client)
	shipments := entities.NewShipmentService(client)

	// One bulkhead for every view: a process-wide cap on concurrent page fetches
	fanout := patterns.NewBulkhead(cfg.FanoutLimit, "view-fanout", handler.ServiceName)

	h := handler.New(handler.Views{
		Dashboard: views.NewDashboard(beers, customers, orders, shipments, fanout),
		Beers:     views.NewBeers(beers),
		Customers: views.NewCustomers(customers),
		Orders:    views.NewOrders(orders, beers, fanout),
		Shipments: views.NewShipments(shipments, orders, fanout),
	}, handler.NewDraftStore(), client)

	router := h.Router()

	log.WithFields(log.Fields{
		"addr":            cfg.Addr,
		"beer_api":        cfg.BaseURL,
		"remote_timeout":  cfg.RemoteTimeout.String(),
		"circuit_breaker": cfg.CircuitBreaker,
		"fanout_limit":    fanout.Capacity(),
	}).Info("Beer console starting")

	if err := router.Run(cfg.Addr); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
