package domain

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// StandardShippingCost is charged to visitors without premium.
var StandardShippingCost = decimal.RequireFromString("2.99")

// Shipping is either free or a unit-less cost; formatting a currency is left
// to the view.
type Shipping struct {
	Free bool
	Cost decimal.Decimal
}

// ShippingFor returns the shipping value for the premium flag.
func ShippingFor(premium bool) Shipping {
	if premium {
		return Shipping{Free: true, Cost: decimal.Zero}
	}
	return Shipping{Cost: StandardShippingCost}
}

// String renders "Free" or the cost with two decimals.
func (s Shipping) String() string {
	if s.Free {
		return "Free"
	}
	return s.Cost.StringFixed(2)
}

// MarshalJSON encodes "Free" as a string and a cost as a number, matching what
// the page shows.
func (s Shipping) MarshalJSON() ([]byte, error) {
	if s.Free {
		return json.Marshal("Free")
	}
	return []byte(s.Cost.StringFixed(2)), nil
}

// UnmarshalJSON accepts what MarshalJSON writes: the string "Free" or a cost,
// as a number or a numeric string.
func (s *Shipping) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err == nil {
		if label == "Free" {
			*s = ShippingFor(true)
			return nil
		}
		cost, err := decimal.NewFromString(label)
		if err != nil {
			return fmt.Errorf("decode shipping %q: %w", label, err)
		}
		*s = Shipping{Cost: cost}
		return nil
	}

	var cost decimal.Decimal
	if err := cost.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("decode shipping: %w", err)
	}
	*s = Shipping{Cost: cost}
	return nil
}
