// Package format renders revenue figures for tables, chart labels and reports.
package format

import (
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// Currency formats v as whole US dollars with thousands separators, e.g. $1,234,567.
func Currency(v float64) string {
	rounded := decimal.NewFromFloat(v).Round(0).IntPart()
	if rounded < 0 {
		return "-$" + humanize.Comma(-rounded)
	}
	return "$" + humanize.Comma(rounded)
}

// Amount formats v with thousands separators and no currency sign.
func Amount(v float64) string {
	return humanize.Comma(decimal.NewFromFloat(v).Round(0).IntPart())
}

// Percent formats v with the given number of decimals, without the % sign.
func Percent(v float64, digits int) string {
	return decimal.NewFromFloat(v).StringFixed(int32(digits))
}

func Year(y int) string {
	return strconv.Itoa(y)
}
