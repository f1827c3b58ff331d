package types

import "github.com/dustin/go-humanize"

// Currency is appended to every rendered price
const Currency = "so'm"

// FormatPrice renders an amount with thousands separators, e.g. "53,000 so'm"
func FormatPrice(amount int64) string {
	return humanize.Comma(amount) + " " + Currency
}
