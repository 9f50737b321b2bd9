package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/marketflow/storefront-service-go/internal/cart"
	"github.com/marketflow/storefront-service-go/internal/catalog"
	"github.com/marketflow/storefront-service-go/internal/checkout"
	"github.com/marketflow/storefront-service-go/internal/events"
	"github.com/marketflow/storefront-service-go/internal/pricing"
	"github.com/marketflow/storefront-service-go/internal/promo"
	"github.com/marketflow/storefront-service-go/internal/shipping"
)

type CartHandler struct {
	session   *checkout.Session
	catalog   catalog.Service
	publisher events.Publisher
	logger    *log.Logger
}

func NewCartHandler(session *checkout.Session, catalogSvc catalog.Service, publisher events.Publisher, logger *log.Logger) *CartHandler {
	if logger == nil {
		logger = log.Default()
	}
	return &CartHandler{session: session, catalog: catalogSvc, publisher: publisher, logger: logger}
}

type cartView struct {
	Items  []cart.LineItem `json:"items"`
	Totals pricing.Totals  `json:"totals"`
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, cartView{
		Items:  h.session.Store().Items(),
		Totals: h.session.Totals(),
	})
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ProductID int `json:"productId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	p, err := h.catalog.GetByID(ctx, body.ProductID)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load product")
		return
	}

	h.session.Store().Add(ctx, *p)
	h.publishCartUpdated(ctx)

	writeJSON(w, http.StatusOK, cartView{
		Items:  h.session.Store().Items(),
		Totals: h.session.Totals(),
	})
}

func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.Atoi(r.PathValue("productId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid productId")
		return
	}

	var body struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	h.session.Store().UpdateQuantity(ctx, productID, body.Quantity)
	h.publishCartUpdated(ctx)

	writeJSON(w, http.StatusOK, cartView{
		Items:  h.session.Store().Items(),
		Totals: h.session.Totals(),
	})
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.Atoi(r.PathValue("productId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid productId")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	h.session.Store().Remove(ctx, productID)
	h.publishCartUpdated(ctx)

	writeJSON(w, http.StatusOK, cartView{
		Items:  h.session.Store().Items(),
		Totals: h.session.Totals(),
	})
}

func (h *CartHandler) ApplyPromo(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	applied, err := h.session.ApplyPromo(body.Code)
	if err != nil {
		var minErr *promo.MinOrderError
		if errors.Is(err, promo.ErrInvalidCode) || errors.As(err, &minErr) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to validate promo code")
		return
	}

	writeJSON(w, http.StatusOK, applied)
}

func (h *CartHandler) QuoteShipping(w http.ResponseWriter, r *http.Request) {
	var body struct {
		PostalCode string `json:"postalCode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	quote, err := h.session.RequestQuote(ctx, body.PostalCode)
	if err != nil {
		if errors.Is(err, shipping.ErrInvalidPostalCode) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to calculate shipping")
		return
	}

	writeJSON(w, http.StatusOK, quote)
}

func (h *CartHandler) GetTotals(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.session.Totals())
}

func (h *CartHandler) publishCartUpdated(ctx context.Context) {
	store := h.session.Store()
	if err := h.publisher.PublishCartUpdated(ctx, store.Items(), store.Subtotal()); err != nil {
		h.logger.Printf("publish cart updated: %v", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{
		"error": msg,
	})
}
