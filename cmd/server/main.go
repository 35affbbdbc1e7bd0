package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/example/commerce-service/internal/adapter/cache"
	"github.com/example/commerce-service/internal/adapter/httpapi"
	"github.com/example/commerce-service/internal/adapter/metrics"
	"github.com/example/commerce-service/internal/adapter/repo"
	"github.com/example/commerce-service/internal/config"
	"github.com/example/commerce-service/internal/platform/logger"
	"github.com/example/commerce-service/internal/usecase"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

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

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("db connect", "error", err)
	}
	defer pool.Close()

	if err := repo.EnsureSchema(ctx, pool); err != nil {
		log.Fatal("init schema", "error", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	m := metrics.New(reg)

	orders := repo.NewPostgresOrderRepo(pool, m)
	orderCache := cache.NewMemoryOrderCache()

	if cfg.CacheWarmup {
		n, err := usecase.LoadCache{Repo: orders, Cache: orderCache}.Execute(ctx)
		if err != nil {
			log.Fatal("load cache", "error", err)
		}
		log.Info("cache warmed", "orders", n)
	}

	srv := httpapi.NewServer(
		usecase.GetOrderByID{Repo: orders, Cache: orderCache},
		usecase.ListOrders{Repo: orders},
		log.With("component", "http"),
		promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	)
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Router}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("http listening", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancelShutdown()
		return httpSrv.Shutdown(shutdownCtx)
	})
	if err := g.Wait(); err != nil {
		log.Error("server stopped", "error", err)
	}
}
