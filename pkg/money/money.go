// Package money holds the amount parsing and display formatting shared by the
// draft engine and the printable-order assembler. Display formatting echoes
// the operator's own decimal text instead of forcing a precision, so partial
// input like "1234." keeps its trailing point while it is being typed.
package money

import (
	"regexp"
	"strings"

	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
)

var decimalInput = regexp.MustCompile(`^\d*\.?\d*$`)

// IsDecimalInput reports whether raw is acceptable adjustment input: empty, or
// digits with at most one decimal point.
func IsDecimalInput(raw string) bool {
	return decimalInput.MatchString(raw)
}

// Parse strips grouping commas and parses a decimal amount. Unparseable input
// yields zero, mirroring how the order form treats half-typed numbers.
func Parse(raw string) decimal.Decimal {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	cleaned = strings.TrimSuffix(cleaned, ".")
	if cleaned == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ParseNonNegative parses like Parse but floors negative results at zero.
func ParseNonNegative(raw string) decimal.Decimal {
	d := Parse(raw)
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// FormatAmount renders an amount with thousands separators while preserving
// whatever decimal text the caller supplied. Empty input stays empty, and
// input with more than one decimal point is returned unchanged rather than
// rejected.
func FormatAmount(raw string) string {
	if raw == "" {
		return ""
	}
	numeric := stripNonNumeric(raw)
	parts := strings.Split(numeric, ".")
	if len(parts) > 2 {
		return raw
	}

	integerPart := parts[0]
	grouped := ""
	if integerPart != "" {
		d, err := decimal.NewFromString(integerPart)
		if err != nil {
			return raw
		}
		grouped = accounting.FormatNumber(d, 0, ",", ".")
	}

	if len(parts) == 2 {
		return grouped + "." + parts[1]
	}
	return grouped
}

// FormatDecimal renders a computed amount with thousands separators, keeping
// the decimal digits the value actually carries.
func FormatDecimal(d decimal.Decimal) string {
	return FormatAmount(d.String())
}

func stripNonNumeric(raw string) string {
	return strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, raw)
}
