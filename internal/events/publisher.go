package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/marketflow/storefront-service-go/internal/cart"
	"github.com/marketflow/storefront-service-go/internal/order"
)

const (
	EventTypeCartUpdated        = "CartUpdated"
	EventTypeOrderStatusChanged = "OrderStatusChanged"
)

// Publisher emits storefront events. Handlers treat publishing as
// fire-and-forget; failures are logged by the caller, never fatal.
type Publisher interface {
	PublishCartUpdated(ctx context.Context, items []cart.LineItem, subtotal float64) error
	PublishOrderStatusChanged(ctx context.Context, o *order.Order) error
	Close() error
}

type rabbitPublisher struct {
	ch *amqp.Channel
}

// NewRabbitPublisher opens a channel on the connection and declares
// the events exchange.
func NewRabbitPublisher(conn *amqp.Connection) (Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err := declareEventsExchange(ch); err != nil {
		return nil, fmt.Errorf("declare events exchange: %w", err)
	}

	return &rabbitPublisher{ch: ch}, nil
}

func (p *rabbitPublisher) Close() error {
	return p.ch.Close()
}

func (p *rabbitPublisher) PublishCartUpdated(ctx context.Context, items []cart.LineItem, subtotal float64) error {
	ev := CartUpdated{
		EventType: EventTypeCartUpdated,
		EventID:   uuid.NewString(),
		Subtotal:  subtotal,
		Timestamp: time.Now().UTC(),
	}
	for _, it := range items {
		ev.Items = append(ev.Items, CartItemLine{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Product.Price,
		})
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal CartUpdated: %w", err)
	}
	return p.publishJSON(ctx, CartUpdatedRoutingKey, body)
}

func (p *rabbitPublisher) PublishOrderStatusChanged(ctx context.Context, o *order.Order) error {
	ev := OrderStatusChanged{
		EventType:   EventTypeOrderStatusChanged,
		EventID:     uuid.NewString(),
		OrderID:     o.ID,
		OrderNumber: o.OrderNumber,
		Status:      string(o.Status),
		Timestamp:   time.Now().UTC(),
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal OrderStatusChanged: %w", err)
	}
	return p.publishJSON(ctx, OrderStatusChangedRoutingKey, body)
}

func (p *rabbitPublisher) publishJSON(ctx context.Context, routingKey string, body []byte) error {
	return p.ch.PublishWithContext(ctx,
		EventsExchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}

// NopPublisher lets the service run without a broker configured.
type NopPublisher struct{}

func (NopPublisher) PublishCartUpdated(ctx context.Context, items []cart.LineItem, subtotal float64) error {
	return nil
}

func (NopPublisher) PublishOrderStatusChanged(ctx context.Context, o *order.Order) error {
	return nil
}

func (NopPublisher) Close() error { return nil }
