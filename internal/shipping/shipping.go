package shipping

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// ErrInvalidPostalCode reports an empty or too-short postal code.
var ErrInvalidPostalCode = errors.New("please enter a valid postal code")

// FreeShippingThreshold is the cart subtotal at and above which
// shipping is free regardless of destination.
const FreeShippingThreshold = 50.0

// Quote is a computed cost/ETA pair for the current cart. It is
// derived per request and never persisted.
type Quote struct {
	Cost          float64 `json:"cost"`
	Method        string  `json:"method"`
	EstimatedDays string  `json:"estimatedDays"`
}

// Tier is one rate band, selected by the first digit of the postal
// code. The highest matching MinFirstDigit wins.
type Tier struct {
	MinFirstDigit int     `yaml:"minFirstDigit"`
	Cost          float64 `yaml:"cost"`
	Days          string  `yaml:"days"`
}

//go:embed rates.yaml
var ratesYAML []byte

// Calculator resolves shipping quotes from a static tier table.
type Calculator struct {
	tiers []Tier
}

// NewCalculator loads the embedded rate table.
func NewCalculator() (*Calculator, error) {
	var tiers []Tier
	if err := yaml.Unmarshal(ratesYAML, &tiers); err != nil {
		return nil, fmt.Errorf("parse shipping rates: %w", err)
	}
	if len(tiers) == 0 {
		return nil, errors.New("empty shipping rate table")
	}
	// Highest threshold first so the first match wins.
	sort.Slice(tiers, func(i, j int) bool {
		return tiers[i].MinFirstDigit > tiers[j].MinFirstDigit
	})
	return &Calculator{tiers: tiers}, nil
}

// Calculate resolves a quote for the postal code and cart subtotal.
// Subtotals at or above the free-shipping threshold always get the
// free quote; otherwise the tier is keyed by the code's first digit.
func (c *Calculator) Calculate(postalCode string, cartSubtotal float64) (*Quote, error) {
	if len(postalCode) < 5 {
		return nil, ErrInvalidPostalCode
	}

	if cartSubtotal >= FreeShippingThreshold {
		return &Quote{
			Cost:          0,
			Method:        "Free Standard Shipping",
			EstimatedDays: "3-5 business days",
		}, nil
	}

	firstDigit := int(postalCode[0] - '0')
	if firstDigit < 0 || firstDigit > 9 {
		firstDigit = 0
	}

	tier := c.tiers[len(c.tiers)-1]
	for _, t := range c.tiers {
		if firstDigit >= t.MinFirstDigit {
			tier = t
			break
		}
	}

	return &Quote{
		Cost:          tier.Cost,
		Method:        "Standard Shipping",
		EstimatedDays: tier.Days + " business days",
	}, nil
}
