package events

import "time"

type OrderStatusChanged struct {
	EventType   string    `json:"eventType"`
	EventID     string    `json:"eventId"`
	OrderID     int       `json:"orderId"`
	OrderNumber string    `json:"orderNumber"`
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
}
