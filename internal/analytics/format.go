package analytics

import (
	"fmt"
	"strings"
)

// Value formatting by metric class. Keys are matched case-insensitively and
// accept both snake_case column keys and display labels.

var dollarMetrics = keySet(
	"scrip_dividend", "price", "earnings_per_share", "price_to_earnings",
	"scrip dividend",
)

var percentMetrics = keySet(
	"scrip_dividend_yield", "reward_rate", "cash dividend yield",
	"scrip dividend yield", "buyback yield", "preferential shares staker",
	"ordinary shares staker", "participant dilution",
)

var millionMetrics = keySet(
	"circulating_supply", "buyback_nominal_amount", "cash dividend",
	"buyback nominal amount", "earnings", "ordinary shares",
)

func keySet(keys ...string) map[string]bool {
	m := make(map[string]bool, len(keys))
	for _, k := range keys {
		m[k] = true
	}
	return m
}

// FormatValue renders a metric value according to its column class:
// dollar metrics to 3 decimal places, rates as percentages (1.0 == 100%),
// supply-scale metrics in millions, everything else to 2 decimal places.
func FormatValue(value float64, column string) string {
	switch key := strings.ToLower(column); {
	case dollarMetrics[key]:
		return "$" + withCommas(fmt.Sprintf("%.3f", value))
	case percentMetrics[key]:
		return fmt.Sprintf("%.2f%%", value*100)
	case millionMetrics[key]:
		return withCommas(fmt.Sprintf("%.2f", value/1e6)) + "M"
	default:
		return withCommas(fmt.Sprintf("%.2f", value))
	}
}

// FormatBillionsUSD renders a raw amount as "$X.XB".
func FormatBillionsUSD(value float64) string {
	return fmt.Sprintf("$%.1fB", value/1e9)
}

// FormatPercent renders a rate (1.0 == 100%) as "X.XX%".
func FormatPercent(value float64) string {
	return fmt.Sprintf("%.2f%%", value*100)
}

// withCommas inserts thousands separators into the integer part of a
// formatted decimal ("1234567.89" → "1,234,567.89").
func withCommas(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	if len(intPart) > 3 {
		var b strings.Builder
		lead := len(intPart) % 3
		if lead > 0 {
			b.WriteString(intPart[:lead])
		}
		for i := lead; i < len(intPart); i += 3 {
			if b.Len() > 0 {
				b.WriteByte(',')
			}
			b.WriteString(intPart[i : i+3])
		}
		intPart = b.String()
	}
	out := intPart + frac
	if neg {
		out = "-" + out
	}
	return out
}

// MetricTitle converts a column key to a chart heading
// ("staking_marketcap" → "Staking marketcap").
func MetricTitle(column string) string {
	s := strings.ReplaceAll(column, "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
