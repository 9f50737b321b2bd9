package http

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/marketflow/storefront-service-go/internal/catalog"
	"github.com/marketflow/storefront-service-go/internal/checkout"
	"github.com/marketflow/storefront-service-go/internal/events"
	"github.com/marketflow/storefront-service-go/internal/order"
)

func NewRouter(session *checkout.Session, catalogSvc catalog.Service, orders order.Service, publisher events.Publisher, logger *log.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", healthHandler)

	catalogHandler := NewCatalogHandler(catalogSvc)
	mux.HandleFunc("GET /api/products", catalogHandler.ListProducts)
	mux.HandleFunc("GET /api/products/{productId}", catalogHandler.GetProduct)
	mux.HandleFunc("GET /api/categories", catalogHandler.ListCategories)

	cartHandler := NewCartHandler(session, catalogSvc, publisher, logger)
	mux.HandleFunc("GET /api/cart", cartHandler.GetCart)
	mux.HandleFunc("POST /api/cart/items", cartHandler.AddItem)
	mux.HandleFunc("PUT /api/cart/items/{productId}", cartHandler.UpdateItem)
	mux.HandleFunc("DELETE /api/cart/items/{productId}", cartHandler.RemoveItem)
	mux.HandleFunc("POST /api/cart/promo", cartHandler.ApplyPromo)
	mux.HandleFunc("POST /api/cart/shipping", cartHandler.QuoteShipping)
	mux.HandleFunc("GET /api/cart/totals", cartHandler.GetTotals)

	orderHandler := NewOrderHandler(orders, publisher, logger)
	mux.HandleFunc("GET /api/orders", orderHandler.ListOrders)
	mux.HandleFunc("GET /api/orders/stats", orderHandler.GetStats)
	mux.HandleFunc("GET /api/orders/{orderId}", orderHandler.GetOrder)
	mux.HandleFunc("PUT /api/orders/{orderId}/status", orderHandler.UpdateStatus)
	mux.HandleFunc("POST /api/orders/{orderId}/cancel", orderHandler.CancelOrder)

	return mux
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	resp := map[string]string{"status": "ok", "service": "storefront-service"}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}
