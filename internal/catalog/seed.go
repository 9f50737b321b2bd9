package catalog

import (
	"embed"
	"encoding/json"
	"fmt"
)

//go:embed mockdata/*.json
var seedFS embed.FS

// NewSeededService builds the memory catalog from the embedded mock data.
func NewSeededService() (Service, error) {
	products, categories, err := loadSeed()
	if err != nil {
		return nil, err
	}
	return NewMemoryService(products, categories), nil
}

func loadSeed() ([]Product, []Category, error) {
	raw, err := seedFS.ReadFile("mockdata/products.json")
	if err != nil {
		return nil, nil, fmt.Errorf("read products seed: %w", err)
	}
	var products []Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, nil, fmt.Errorf("parse products seed: %w", err)
	}

	raw, err = seedFS.ReadFile("mockdata/categories.json")
	if err != nil {
		return nil, nil, fmt.Errorf("read categories seed: %w", err)
	}
	var categories []Category
	if err := json.Unmarshal(raw, &categories); err != nil {
		return nil, nil, fmt.Errorf("parse categories seed: %w", err)
	}

	return products, categories, nil
}
