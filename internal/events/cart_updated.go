package events

import "time"

type CartUpdated struct {
	EventType string         `json:"eventType"`
	EventID   string         `json:"eventId"`
	Items     []CartItemLine `json:"items"`
	Subtotal  float64        `json:"subtotal"`
	Timestamp time.Time      `json:"timestamp"`
}

type CartItemLine struct {
	ProductID int     `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}
