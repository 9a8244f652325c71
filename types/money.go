// Package types provides common types used across Invoicing.
package types

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Money represents a monetary value in the smallest currency unit.
// All arithmetic is integer-only — no floating point.
//
// Examples:
//   - USD(4900) = $49.00 (4900 cents)
//   - EUR(19900) = €199.00 (19900 cents)
//   - GBP(9900) = £99.00 (9900 pence)
type Money struct {
	Amount   int64  `json:"amount"`   // Smallest unit (cents, pence, etc)
	Currency string `json:"currency"` // ISO 4217 lowercase: "usd", "eur", "gbp"
}

// Common currency constructors

// USD creates a Money value in US Dollars (cents).
func USD(cents int64) Money { return Money{Amount: cents, Currency: "usd"} }

// EUR creates a Money value in Euros (cents).
func EUR(cents int64) Money { return Money{Amount: cents, Currency: "eur"} }

// GBP creates a Money value in British Pounds (pence).
func GBP(pence int64) Money { return Money{Amount: pence, Currency: "gbp"} }

// JPY creates a Money value in Japanese Yen (no decimal).
func JPY(yen int64) Money { return Money{Amount: yen, Currency: "jpy"} }

// CAD creates a Money value in Canadian Dollars (cents).
func CAD(cents int64) Money { return Money{Amount: cents, Currency: "cad"} }

// AUD creates a Money value in Australian Dollars (cents).
func AUD(cents int64) Money { return Money{Amount: cents, Currency: "aud"} }

// Zero returns a zero Money value in the specified currency.
func Zero(currency string) Money { return Money{Amount: 0, Currency: strings.ToLower(currency)} }

// FromMinor creates a Money value directly from minor units.
func FromMinor(amount int64, currency string) Money {
	return Money{Amount: amount, Currency: strings.ToLower(currency)}
}

// ParseMajor parses a major-unit decimal string ("55.00", "-0.5", "100")
// into a Money value at the currency's minor-unit scale. Fractional digits
// beyond the scale are rounded half-to-even, the single rounding rule applied
// everywhere fractional amounts enter the system.
func ParseMajor(s, currency string) (Money, error) {
	currency = strings.ToLower(currency)
	decimals := currencyDecimals(currency)

	raw := strings.TrimSpace(s)
	if raw == "" {
		return Money{}, fmt.Errorf("money: parse %q: empty amount", s)
	}

	negative := false
	switch raw[0] {
	case '-':
		negative = true
		raw = raw[1:]
	case '+':
		raw = raw[1:]
	}

	intPart := raw
	fracPart := ""
	if i := strings.IndexByte(raw, '.'); i >= 0 {
		intPart, fracPart = raw[:i], raw[i+1:]
	}
	if intPart == "" && fracPart == "" {
		return Money{}, fmt.Errorf("money: parse %q: no digits", s)
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, part := range []string{intPart, fracPart} {
		for _, c := range part {
			if c < '0' || c > '9' {
				return Money{}, fmt.Errorf("money: parse %q: invalid character %q", s, c)
			}
		}
	}

	major, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return Money{}, fmt.Errorf("money: parse %q: %w", s, err)
	}

	kept := fracPart
	if len(kept) > decimals {
		kept = fracPart[:decimals]
	}
	for len(kept) < decimals {
		kept += "0"
	}
	var minor int64
	if decimals > 0 {
		minor, err = strconv.ParseInt(kept, 10, 64)
		if err != nil {
			return Money{}, fmt.Errorf("money: parse %q: %w", s, err)
		}
	}

	scale := int64(1)
	for i := 0; i < decimals; i++ {
		scale *= 10
	}
	amount := major*scale + minor

	// Round excess fractional digits half-to-even.
	if len(fracPart) > decimals {
		next := fracPart[decimals]
		rest := strings.TrimRight(fracPart[decimals+1:], "0")
		switch {
		case next > '5', next == '5' && rest != "":
			amount++
		case next == '5' && amount%2 != 0: // exact half: round to even
			amount++
		}
	}

	if negative {
		amount = -amount
	}
	return Money{Amount: amount, Currency: currency}, nil
}

// Arithmetic operations

// Add adds two Money values. Panics if currencies don't match.
func (m Money) Add(other Money) Money {
	m.assertSameCurrency(other)
	return Money{Amount: m.Amount + other.Amount, Currency: m.Currency}
}

// Subtract subtracts another Money value. Panics if currencies don't match.
func (m Money) Subtract(other Money) Money {
	m.assertSameCurrency(other)
	return Money{Amount: m.Amount - other.Amount, Currency: m.Currency}
}

// Multiply multiplies the Money by a quantity.
func (m Money) Multiply(qty int64) Money {
	return Money{Amount: m.Amount * qty, Currency: m.Currency}
}

// Negate returns the negative of the Money value.
func (m Money) Negate() Money {
	return Money{Amount: -m.Amount, Currency: m.Currency}
}

// Abs returns the absolute value.
func (m Money) Abs() Money {
	if m.Amount < 0 {
		return Money{Amount: -m.Amount, Currency: m.Currency}
	}
	return m
}

// Comparison methods

// IsZero returns true if the amount is zero.
func (m Money) IsZero() bool { return m.Amount == 0 }

// IsPositive returns true if the amount is greater than zero.
func (m Money) IsPositive() bool { return m.Amount > 0 }

// IsNegative returns true if the amount is less than zero.
func (m Money) IsNegative() bool { return m.Amount < 0 }

// SameCurrency reports whether both values share a currency code.
func (m Money) SameCurrency(other Money) bool {
	return m.Currency == other.Currency
}

// Equal returns true if both Money values are equal (same amount and currency).
func (m Money) Equal(other Money) bool {
	return m.Amount == other.Amount && m.Currency == other.Currency
}

// Compare returns -1, 0, or +1 when m is less than, equal to, or greater
// than other. Panics if currencies don't match.
func (m Money) Compare(other Money) int {
	m.assertSameCurrency(other)
	switch {
	case m.Amount < other.Amount:
		return -1
	case m.Amount > other.Amount:
		return 1
	default:
		return 0
	}
}

// LessThan returns true if this Money is less than other. Panics if currencies don't match.
func (m Money) LessThan(other Money) bool {
	m.assertSameCurrency(other)
	return m.Amount < other.Amount
}

// GreaterThan returns true if this Money is greater than other. Panics if currencies don't match.
func (m Money) GreaterThan(other Money) bool {
	m.assertSameCurrency(other)
	return m.Amount > other.Amount
}

// Formatting methods

// FormatMajor returns the major unit string without currency symbol.
// For currencies with 2 decimal places: "49.00" for USD(4900).
// For currencies with 0 decimal places (JPY): "100" for JPY(100).
func (m Money) FormatMajor() string {
	decimals := currencyDecimals(m.Currency)
	if decimals == 0 {
		return fmt.Sprintf("%d", m.Amount)
	}

	divisor := int64(1)
	for i := 0; i < decimals; i++ {
		divisor *= 10
	}

	// Handle sign separately
	isNegative := m.Amount < 0
	absAmount := m.Amount
	if isNegative {
		absAmount = -absAmount
	}

	major := absAmount / divisor
	minor := absAmount % divisor

	format := fmt.Sprintf("%%d.%%0%dd", decimals)
	result := fmt.Sprintf(format, major, minor)

	if isNegative {
		return "-" + result
	}
	return result
}

// String returns a human-readable string with currency symbol.
// Examples: "$49.00", "€199.00", "£99.00", "¥100"
func (m Money) String() string {
	symbol := currencySymbol(m.Currency)
	return symbol + m.FormatMajor()
}

// MarshalJSON implements json.Marshaler.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Amount   int64  `json:"amount"`
		Currency string `json:"currency"`
		Display  string `json:"display"`
	}{
		Amount:   m.Amount,
		Currency: m.Currency,
		Display:  m.String(),
	})
}

// Helper functions

// ValidCurrency reports whether the code looks like an ISO 4217 currency
// code: three ASCII letters, any case.
func ValidCurrency(currency string) bool {
	if len(currency) != 3 {
		return false
	}
	for _, c := range currency {
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			return false
		}
	}
	return true
}

// assertSameCurrency panics if currencies don't match.
func (m Money) assertSameCurrency(other Money) {
	if m.Currency != other.Currency {
		panic(fmt.Sprintf("money: currency mismatch: %s != %s", m.Currency, other.Currency))
	}
}

// currencySymbol returns the symbol for a currency code.
func currencySymbol(currency string) string {
	symbols := map[string]string{
		"usd": "$",
		"eur": "€",
		"gbp": "£",
		"jpy": "¥",
		"cad": "C$",
		"aud": "A$",
		"chf": "CHF ",
		"cny": "¥",
		"sek": "kr ",
		"nzd": "NZ$",
	}
	if sym, ok := symbols[strings.ToLower(currency)]; ok {
		return sym
	}
	return strings.ToUpper(currency) + " "
}

// currencyDecimals returns the number of decimal places for a currency.
func currencyDecimals(currency string) int {
	// Currencies with 0 decimal places
	zeroDecimal := map[string]bool{
		"jpy": true, // Japanese Yen
		"krw": true, // Korean Won
		"vnd": true, // Vietnamese Dong
		"clp": true, // Chilean Peso
		"pyg": true, // Paraguayan Guarani
		"idr": true, // Indonesian Rupiah
	}
	if zeroDecimal[strings.ToLower(currency)] {
		return 0
	}
	// Most currencies have 2 decimal places
	return 2
}

// Sum calculates the sum of multiple Money values. All must have the same currency.
func Sum(values ...Money) Money {
	if len(values) == 0 {
		return Zero("usd")
	}

	result := values[0]
	for i := 1; i < len(values); i++ {
		result = result.Add(values[i])
	}
	return result
}
