// Package money provides the canonical amount type used for every price in
// the storefront. Upstream catalog data historically carried prices either as
// raw numbers or as currency-suffixed strings ("20€"); both shapes are
// normalized here, once, at the unmarshal boundary.
package money

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is an immutable decimal currency amount.
type Amount struct {
	dec decimal.Decimal
}

// Zero returns the zero amount.
func Zero() Amount {
	return Amount{}
}

// FromDecimal wraps an existing decimal value.
func FromDecimal(d decimal.Decimal) Amount {
	return Amount{dec: d}
}

// FromInt builds an amount from whole currency units.
func FromInt(v int64) Amount {
	return Amount{dec: decimal.NewFromInt(v)}
}

// FromFloat builds an amount from a float value.
func FromFloat(v float64) Amount {
	return Amount{dec: decimal.NewFromFloat(v)}
}

// Parse normalizes a price string into an amount. Every character that is not
// a digit, a decimal point, or a leading minus sign is stripped before
// parsing, so "20€", " 20.50 EUR" and "20.50" all resolve the same way.
func Parse(raw string) (Amount, error) {
	cleaned := stripNonNumeric(raw)
	if cleaned == "" {
		return Amount{}, fmt.Errorf("no numeric content in price %q", raw)
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return Amount{}, fmt.Errorf("parsing price %q: %w", raw, err)
	}
	return Amount{dec: d}, nil
}

// MustParse is Parse for fixtures and tests; it panics on malformed input.
func MustParse(raw string) Amount {
	a, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return a
}

func stripNonNumeric(raw string) string {
	var b strings.Builder
	for i, r := range raw {
		switch {
		case r >= '0' && r <= '9', r == '.':
			b.WriteRune(r)
		case r == '-' && i == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (a Amount) Add(other Amount) Amount {
	return Amount{dec: a.dec.Add(other.dec)}
}

func (a Amount) Sub(other Amount) Amount {
	return Amount{dec: a.dec.Sub(other.dec)}
}

// MulInt scales the amount by an integer quantity.
func (a Amount) MulInt(qty int) Amount {
	return Amount{dec: a.dec.Mul(decimal.NewFromInt(int64(qty)))}
}

// Percent returns the given percentage of the amount.
func (a Amount) Percent(pct Amount) Amount {
	return Amount{dec: a.dec.Mul(pct.dec).Div(decimal.NewFromInt(100))}
}

// Min returns the smaller of the two amounts.
func (a Amount) Min(other Amount) Amount {
	if a.dec.GreaterThan(other.dec) {
		return other
	}
	return a
}

// ClampNonNegative floors the amount at zero.
func (a Amount) ClampNonNegative() Amount {
	if a.dec.IsNegative() {
		return Zero()
	}
	return a
}

func (a Amount) LessThan(other Amount) bool {
	return a.dec.LessThan(other.dec)
}

func (a Amount) GreaterThan(other Amount) bool {
	return a.dec.GreaterThan(other.dec)
}

func (a Amount) Equal(other Amount) bool {
	return a.dec.Equal(other.dec)
}

func (a Amount) IsZero() bool {
	return a.dec.IsZero()
}

func (a Amount) IsPositive() bool {
	return a.dec.IsPositive()
}

// Decimal exposes the underlying decimal value.
func (a Amount) Decimal() decimal.Decimal {
	return a.dec
}

// Format2 renders the amount with exactly two decimal places ("40.00").
func (a Amount) Format2() string {
	return a.dec.StringFixed(2)
}

func (a Amount) String() string {
	return a.dec.String()
}

// MarshalJSON renders the amount as a bare JSON number.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.dec.String()), nil
}

// UnmarshalJSON accepts both JSON numbers and legacy price strings.
func (a *Amount) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		*a = Zero()
		return nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		parsed, err := Parse(s)
		if err != nil {
			return err
		}
		*a = parsed
		return nil
	}
	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return fmt.Errorf("parsing amount %s: %w", trimmed, err)
	}
	*a = Amount{dec: d}
	return nil
}

// Value and Scan make Amount usable as a gorm column (stored as numeric text).
func (a Amount) Value() (driver.Value, error) {
	return a.dec.String(), nil
}

func (a *Amount) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*a = Zero()
		return nil
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return err
		}
		*a = Amount{dec: d}
		return nil
	case []byte:
		return a.Scan(string(v))
	case float64:
		*a = FromFloat(v)
		return nil
	case int64:
		*a = FromInt(v)
		return nil
	default:
		return fmt.Errorf("unsupported amount source %T", src)
	}
}
