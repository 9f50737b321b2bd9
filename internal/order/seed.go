package order

import (
	"embed"
	"encoding/json"
	"fmt"
)

//go:embed mockdata/orders.json
var seedFS embed.FS

// NewSeededService builds the memory order history from the embedded
// mock data.
func NewSeededService() (Service, error) {
	raw, err := seedFS.ReadFile("mockdata/orders.json")
	if err != nil {
		return nil, fmt.Errorf("read orders seed: %w", err)
	}
	var orders []Order
	if err := json.Unmarshal(raw, &orders); err != nil {
		return nil, fmt.Errorf("parse orders seed: %w", err)
	}
	return NewMemoryService(orders), nil
}
