package order

import "time"

type Status string

const (
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

type Item struct {
	ProductID int     `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

type Order struct {
	ID          int       `json:"id"`
	OrderNumber string    `json:"orderNumber"`
	Status      Status    `json:"status"`
	Items       []Item    `json:"items"`
	Total       float64   `json:"total"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Stats summarizes the order history for the account dashboard.
type Stats struct {
	Total      int     `json:"total"`
	Processing int     `json:"processing"`
	Shipped    int     `json:"shipped"`
	Delivered  int     `json:"delivered"`
	Cancelled  int     `json:"cancelled"`
	TotalValue float64 `json:"totalValue"`
}
