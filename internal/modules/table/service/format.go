package service

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

const defaultCurrency = money.INR

// Formatter renders numbers for display cells.
type Formatter struct {
	number   *money.Formatter
	currency *money.Currency
}

// NewFormatter formats money in the given ISO currency; unknown codes fall back to INR.
func NewFormatter(code string) *Formatter {
	cur := money.GetCurrency(code)
	if cur == nil {
		cur = money.GetCurrency(defaultCurrency)
	}
	return &Formatter{
		number:   money.NewFormatter(2, ".", ",", "", "1"),
		currency: cur,
	}
}

// Number renders v with two fraction digits and thousands separators, e.g. 1,234.50.
func (f *Formatter) Number(v float64) string {
	return f.number.Format(minorUnits(v, 2))
}

// Currency renders v in the formatter's currency, e.g. ₹1,234.50.
func (f *Formatter) Currency(v float64) string {
	return money.New(minorUnits(v, f.currency.Fraction), f.currency.Code).Display()
}

func (f *Formatter) CurrencyCode() string { return f.currency.Code }

func minorUnits(v float64, fraction int) int64 {
	return decimal.NewFromFloat(v).Shift(int32(fraction)).Round(0).IntPart()
}

var defaultFormatter = NewFormatter(defaultCurrency)

func FormatNumber(v float64) string { return defaultFormatter.Number(v) }

func FormatCurrency(v float64) string { return defaultFormatter.Currency(v) }
