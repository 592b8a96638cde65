// Package money formats amounts for display and cleans up amount input.
package money

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Currency and locale used when none are configured.
const (
	DefaultCurrency = "CLP"
	DefaultLocale   = "es-CL"
)

// Formatter formats amounts in one currency for one locale.
type Formatter struct {
	printer  *message.Printer
	currency currency.Unit
	locale   language.Tag
	symbol   string
	scale    int
}

// NewFormatter returns a Formatter for the currency code and the BCP 47 locale,
// e.g. "CLP" and "es-CL".
func NewFormatter(code, locale string) (Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return Formatter{}, fmt.Errorf("invalid locale %q: %w", locale, err)
	}

	unit, err := currency.ParseISO(code)
	if err != nil {
		return Formatter{}, fmt.Errorf("invalid currency %q: %w", code, err)
	}

	scale, _ := currency.Standard.Rounding(unit)

	return Formatter{
		printer:  message.NewPrinter(tag),
		currency: unit,
		locale:   tag,
		symbol:   fmt.Sprint(currency.NarrowSymbol(unit)),
		scale:    scale,
	}, nil
}

// Currency returns the ISO 4217 code amounts are formatted in.
func (f Formatter) Currency() string {
	return f.currency.String()
}

// Locale returns the canonical BCP 47 tag of the formatting locale.
func (f Formatter) Locale() string {
	return f.locale.String()
}

// Format returns the amount with currency symbol and the locale's separators,
// rounded to the currency's minor unit.
func (f Formatter) Format(amount decimal.Decimal) string {
	value, _ := amount.Round(int32(f.scale)).Float64()

	sign := ""
	if value < 0 {
		sign = "-"
		value = -value
	}

	return sign + f.symbol + f.printer.Sprint(number.Decimal(value, number.Scale(f.scale)))
}

// Sanitize keeps only the digits of s. An input without digits is "0".
func Sanitize(s string) string {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) && r < unicode.MaxASCII {
			return r
		}
		return -1
	}, s)

	digits = strings.TrimLeft(digits, "0")
	if digits == "" {
		return "0"
	}

	return digits
}

// ParseAmount sanitizes s and returns it as a whole amount.
func ParseAmount(s string) decimal.Decimal {
	// Sanitize only returns digits
	d, _ := decimal.NewFromString(Sanitize(s))
	return d
}
