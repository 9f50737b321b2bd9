package promo

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidCode reports a code that is not in the rule table.
var ErrInvalidCode = errors.New("invalid promo code")

// MinOrderError reports a cart value below the code's minimum order.
type MinOrderError struct {
	Code     string
	MinOrder float64
}

func (e *MinOrderError) Error() string {
	return fmt.Sprintf("minimum order of $%.0f required for this code", e.MinOrder)
}

const (
	TypePercentage = "percentage"
	TypeFixed      = "fixed"
)

// Rule is one promo-code entry. Discount is a fraction for
// percentage codes and a dollar amount for fixed codes.
type Rule struct {
	Discount float64 `yaml:"discount"`
	MinOrder float64 `yaml:"minOrder"`
	Type     string  `yaml:"type"`
}

// Applied is the result of a successful validation.
type Applied struct {
	Code           string  `json:"code"`
	DiscountAmount float64 `json:"discountAmount"`
	Type           string  `json:"type"`
	Description    string  `json:"description"`
}

//go:embed rules.yaml
var rulesYAML []byte

// Resolver validates promo codes against a static rule table.
type Resolver struct {
	rules map[string]Rule
}

// NewResolver loads the embedded rule table.
func NewResolver() (*Resolver, error) {
	var rules map[string]Rule
	if err := yaml.Unmarshal(rulesYAML, &rules); err != nil {
		return nil, fmt.Errorf("parse promo rules: %w", err)
	}
	return &Resolver{rules: rules}, nil
}

// NewResolverWithRules builds a resolver over an explicit table.
func NewResolverWithRules(rules map[string]Rule) *Resolver {
	return &Resolver{rules: rules}
}

// Validate canonicalizes the code to upper-case, checks it against
// the rule table and the cart subtotal, and resolves the discount
// amount, capped at the subtotal.
func (r *Resolver) Validate(code string, cartSubtotal float64) (*Applied, error) {
	canonical := strings.ToUpper(strings.TrimSpace(code))

	rule, ok := r.rules[canonical]
	if !ok {
		return nil, ErrInvalidCode
	}

	if cartSubtotal < rule.MinOrder {
		return nil, &MinOrderError{Code: canonical, MinOrder: rule.MinOrder}
	}

	var amount float64
	var description string
	if rule.Type == TypePercentage {
		amount = cartSubtotal * rule.Discount
		description = fmt.Sprintf("%.0f%% off", rule.Discount*100)
	} else {
		amount = rule.Discount
		description = fmt.Sprintf("$%.0f off", rule.Discount)
	}

	if amount > cartSubtotal {
		amount = cartSubtotal
	}

	return &Applied{
		Code:           canonical,
		DiscountAmount: amount,
		Type:           rule.Type,
		Description:    description,
	}, nil
}
