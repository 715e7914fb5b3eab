// Package currency renders amounts in the user's display unit.
//
// Amounts are stored in the canonical base unit (euro). Fiat units are
// rendered with their locale conventions; the bitcoin unit converts the amount
// with a fixed reference rate rather than a live quote.
package currency

import (
	"math"
	"strconv"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/model"
)

// DefaultBTCRate is the number of base units per bitcoin used for the BTC unit.
const DefaultBTCRate = 50000

// BTCSymbol prefixes amounts rendered in the BTC unit.
const BTCSymbol = "₿"

const (
	fiatFraction = 2
	btcFraction  = 8
)

// fr-FR: "12 345,68 €" (U+202F groups, U+00A0 before the sign).
var eurFormatter = money.NewFormatter(fiatFraction, ",", "\u202f", "€", "1\u00a0$")

// en-US: "$12,345.68", which is go-money's own USD layout.
var usdFormatter = money.GetCurrency(money.USD).Formatter()

var maxMinorUnits = decimal.NewFromInt(math.MaxInt64)

// Formatter renders amounts for one display unit. It is an immutable value and
// safe for concurrent use.
type Formatter struct {
	unit model.DisplayUnit
	rate decimal.Decimal
}

// NewFormatter returns a Formatter for unit. A non-positive rate is replaced by
// DefaultBTCRate; an unknown unit falls back to the default display unit.
func NewFormatter(unit model.DisplayUnit, rate decimal.Decimal) Formatter {
	if !unit.Valid() {
		unit = model.DefaultDisplayUnit
	}
	if !rate.IsPositive() {
		rate = decimal.NewFromInt(DefaultBTCRate)
	}
	return Formatter{unit: unit, rate: rate}
}

// Unit returns the unit the formatter renders in.
func (f Formatter) Unit() model.DisplayUnit {
	return f.unit
}

// Rate returns the base units per bitcoin used by the BTC unit.
func (f Formatter) Rate() decimal.Decimal {
	return f.rate
}

// Format renders amount in the formatter's unit.
//
// Fiat units use two fraction digits and BTC uses eight, all rounded half away
// from zero. NaN and infinities are returned in their plain float form.
func (f Formatter) Format(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return strconv.FormatFloat(amount, 'f', -1, 64)
	}

	value := decimal.NewFromFloat(amount)

	switch f.unit {
	case model.UnitUSD:
		return formatFiat(usdFormatter, value)
	case model.UnitBTC:
		return BTCSymbol + value.Div(f.rate).StringFixed(btcFraction)
	default:
		return formatFiat(eurFormatter, value)
	}
}

func formatFiat(mf *money.Formatter, value decimal.Decimal) string {
	minor := value.Round(fiatFraction).Shift(fiatFraction)
	if minor.Abs().LessThanOrEqual(maxMinorUnits) {
		return mf.Format(minor.IntPart())
	}
	return formatOversized(mf, minor)
}

// formatOversized applies mf's layout to minor-unit values that do not fit in int64.
func formatOversized(mf *money.Formatter, minor decimal.Decimal) string {
	digits := minor.Abs().StringFixed(0)
	if len(digits) <= mf.Fraction {
		digits = strings.Repeat("0", mf.Fraction-len(digits)+1) + digits
	}

	intPart, fracPart := digits[:len(digits)-mf.Fraction], digits[len(digits)-mf.Fraction:]

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteString(mf.Thousand)
		}
		b.WriteRune(r)
	}
	if mf.Fraction > 0 {
		b.WriteString(mf.Decimal)
		b.WriteString(fracPart)
	}

	out := strings.Replace(mf.Template, "1", b.String(), 1)
	out = strings.Replace(out, "$", mf.Grapheme, 1)
	if minor.IsNegative() {
		out = "-" + out
	}
	return out
}
