package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/marketflow/storefront-service-go/internal/events"
	"github.com/marketflow/storefront-service-go/internal/order"
)

type OrderHandler struct {
	orders    order.Service
	publisher events.Publisher
	logger    *log.Logger
}

func NewOrderHandler(orders order.Service, publisher events.Publisher, logger *log.Logger) *OrderHandler {
	if logger == nil {
		logger = log.Default()
	}
	return &OrderHandler{orders: orders, publisher: publisher, logger: logger}
}

// ListOrders supports ?status= and ?q= filters.
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var (
		orders []order.Order
		err    error
	)
	switch {
	case r.URL.Query().Get("status") != "":
		orders, err = h.orders.GetByStatus(ctx, r.URL.Query().Get("status"))
	case r.URL.Query().Get("q") != "":
		orders, err = h.orders.Search(ctx, r.URL.Query().Get("q"))
	default:
		orders, err = h.orders.GetAll(ctx)
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load orders")
		return
	}

	writeJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("orderId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid orderId")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	o, err := h.orders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			writeError(w, http.StatusNotFound, "order not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load order")
		return
	}

	writeJSON(w, http.StatusOK, o)
}

func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("orderId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid orderId")
		return
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	o, err := h.orders.UpdateStatus(ctx, id, order.Status(body.Status))
	if err != nil {
		h.writeOrderError(w, err)
		return
	}

	h.publishStatusChanged(ctx, o)
	writeJSON(w, http.StatusOK, o)
}

func (h *OrderHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("orderId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid orderId")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	o, err := h.orders.Cancel(ctx, id)
	if err != nil {
		h.writeOrderError(w, err)
		return
	}

	h.publishStatusChanged(ctx, o)
	writeJSON(w, http.StatusOK, o)
}

func (h *OrderHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	stats, err := h.orders.GetStats(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load order stats")
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

func (h *OrderHandler) writeOrderError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, order.ErrOrderNotFound):
		writeError(w, http.StatusNotFound, "order not found")
	case errors.Is(err, order.ErrInvalidStatus):
		writeError(w, http.StatusBadRequest, "invalid status")
	default:
		writeError(w, http.StatusInternalServerError, "failed to update order")
	}
}

func (h *OrderHandler) publishStatusChanged(ctx context.Context, o *order.Order) {
	if err := h.publisher.PublishOrderStatusChanged(ctx, o); err != nil {
		h.logger.Printf("publish order status changed: %v", err)
	}
}
