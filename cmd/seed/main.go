package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/example/commerce-service/internal/adapter/eventlog"
	"github.com/example/commerce-service/internal/adapter/metrics"
	"github.com/example/commerce-service/internal/adapter/repo"
	"github.com/example/commerce-service/internal/config"
	"github.com/example/commerce-service/internal/domain"
	"github.com/example/commerce-service/internal/domain/event"
	"github.com/example/commerce-service/internal/platform/logger"
	"github.com/example/commerce-service/internal/usecase"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
)

type addressInput struct {
	Street string `json:"street"`
	Number int    `json:"number"`
	Zip    string `json:"zip"`
	City   string `json:"city"`
}

type customerInput struct {
	ID      string        `json:"id"`
	Name    string        `json:"name"`
	Address *addressInput `json:"address"`
	Active  bool          `json:"active"`
}

type productInput struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type document struct {
	Customers []customerInput           `json:"customers"`
	Products  []productInput            `json:"products"`
	Orders    []usecase.PlaceOrderInput `json:"orders"`
}

// seed reads one JSON document from stdin and stores its customers,
// products and orders in that order.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	var doc document
	if err := json.NewDecoder(os.Stdin).Decode(&doc); err != nil {
		log.Fatal("read json from stdin", "error", err)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("db connect", "error", err)
	}
	defer pool.Close()
	if err := repo.EnsureSchema(ctx, pool); err != nil {
		log.Fatal("init schema", "error", err)
	}

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	dispatcher := event.NewDispatcher(event.WithObserver(m))
	eventlog.RegisterCustomerHandlers(dispatcher, log.With("component", "events"))

	if err := seed(ctx, pool, dispatcher, m, doc); err != nil {
		log.Fatal("seed", "error", err)
	}
	log.Info("seeded", "customers", len(doc.Customers), "products", len(doc.Products), "orders", len(doc.Orders))

	totals, err := metrics.Totals(reg)
	if err != nil {
		log.Warn("gather metrics", "error", err)
		return
	}
	log.Info("event delivery",
		"notifications", totals["commerce_event_notifications_total"],
		"handler_invocations", totals["commerce_event_handler_invocations_total"])
}

func seed(ctx context.Context, pool *pgxpool.Pool, d *event.Dispatcher, hooks repo.Hooks, doc document) error {
	customers := repo.NewPostgresCustomerRepo(pool, d, hooks)
	products := repo.NewPostgresProductRepo(pool, hooks)
	orders := repo.NewPostgresOrderRepo(pool, hooks)

	register := usecase.RegisterCustomer{Repo: customers, Events: d}
	changeAddress := usecase.ChangeCustomerAddress{Repo: customers}
	activate := usecase.ActivateCustomer{Repo: customers}
	for _, in := range doc.Customers {
		if _, err := register.Execute(ctx, in.ID, in.Name); err != nil {
			return fmt.Errorf("customer %s: %w", in.ID, err)
		}
		if in.Address != nil {
			addr, err := domain.NewAddress(in.Address.Street, in.Address.Number, in.Address.Zip, in.Address.City)
			if err != nil {
				return fmt.Errorf("customer %s: %w", in.ID, err)
			}
			if _, err := changeAddress.Execute(ctx, in.ID, addr); err != nil {
				return fmt.Errorf("customer %s: %w", in.ID, err)
			}
		}
		if in.Active {
			if _, err := activate.Execute(ctx, in.ID); err != nil {
				return fmt.Errorf("customer %s: %w", in.ID, err)
			}
		}
	}

	for _, in := range doc.Products {
		p, err := domain.NewProduct(in.ID, in.Name, in.Price)
		if err != nil {
			return fmt.Errorf("product %s: %w", in.ID, err)
		}
		if err := products.Create(ctx, p); err != nil {
			return fmt.Errorf("product %s: %w", in.ID, err)
		}
	}

	place := usecase.PlaceOrder{Repo: orders, Products: products}
	for _, in := range doc.Orders {
		if _, err := place.Execute(ctx, in); err != nil {
			return fmt.Errorf("order %s: %w", in.ID, err)
		}
	}
	return nil
}
