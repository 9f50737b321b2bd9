package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/marketflow/storefront-service-go/internal/cart"
	"github.com/marketflow/storefront-service-go/internal/catalog"
	"github.com/marketflow/storefront-service-go/internal/checkout"
	"github.com/marketflow/storefront-service-go/internal/config"
	"github.com/marketflow/storefront-service-go/internal/events"
	httpserver "github.com/marketflow/storefront-service-go/internal/http"
	"github.com/marketflow/storefront-service-go/internal/order"
	"github.com/marketflow/storefront-service-go/internal/promo"
	"github.com/marketflow/storefront-service-go/internal/shipping"
	"github.com/marketflow/storefront-service-go/internal/storage"
)

// cartSlotKey is the fixed durable key the cart is saved under.
const cartSlotKey = "marketflow-cart"

func main() {
	cfg := config.Load()

	logger := log.New(os.Stdout, "[storefront-service] ", log.LstdFlags|log.Lshortfile)

	slot := openSlot(cfg, logger)

	catalogSvc, err := catalog.NewSeededService()
	if err != nil {
		logger.Fatalf("load catalog seed: %v", err)
	}

	orderSvc, err := order.NewSeededService()
	if err != nil {
		logger.Fatalf("load order seed: %v", err)
	}

	promoResolver, err := promo.NewResolver()
	if err != nil {
		logger.Fatalf("load promo rules: %v", err)
	}

	shippingCalc, err := shipping.NewCalculator()
	if err != nil {
		logger.Fatalf("load shipping rates: %v", err)
	}

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.RabbitURL != "" {
		rabbitConn := events.MustDialRabbit(cfg.RabbitURL)
		defer rabbitConn.Close()

		publisher, err = events.NewRabbitPublisher(rabbitConn)
		if err != nil {
			logger.Fatalf("failed to create events publisher: %v", err)
		}
	}

	store := cart.NewStore(context.Background(), slot, logger)
	session := checkout.NewSession(store, promoResolver, checkout.CalculatorQuoter{Calculator: shippingCalc}, cfg.TaxRate)

	mux := httpserver.NewRouter(session, catalogSvc, orderSvc, publisher, logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Printf("storefront-service listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Printf("shutdown signal received")
	case err := <-errCh:
		logger.Fatalf("server error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("graceful shutdown error: %v", err)
	}
	if err := publisher.Close(); err != nil {
		logger.Printf("publisher close error: %v", err)
	}
}

func openSlot(cfg config.Config, logger *log.Logger) storage.Slot {
	switch cfg.SlotBackend {
	case "postgres":
		if err := storage.RunMigrations(cfg.CartDSN, logger); err != nil {
			logger.Fatalf("run migrations: %v", err)
		}
		db := storage.MustOpenPostgres(cfg.CartDSN)
		return storage.NewPostgresSlot(db, cartSlotKey)
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		return storage.NewRedisSlot(client, cartSlotKey)
	default:
		return storage.NewMemorySlot()
	}
}
