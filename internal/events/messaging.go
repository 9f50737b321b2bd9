package events

import (
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	EventsExchange               = "marketflow.events"
	CartUpdatedRoutingKey        = "cart.updated.v1"
	OrderStatusChangedRoutingKey = "order.statuschanged.v1"
)

func declareEventsExchange(ch *amqp.Channel) error {
	return ch.ExchangeDeclare(
		EventsExchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
}
