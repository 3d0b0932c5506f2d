// Package money holds fixed-point currency arithmetic for satang amounts.
// Line totals are rounded per line and then summed as integers so that order
// totals never accumulate binary-float error.
package money

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// LineTotal computes the satang total for quantityKg at pricePerKgSatang,
// rounded half away from zero.
func LineTotal(pricePerKgSatang int64, quantityKg float64) int64 {
	return int64(math.Round(float64(pricePerKgSatang) * quantityKg))
}

// Sum adds already-rounded satang amounts.
func Sum(amounts ...int64) int64 {
	var total int64
	for _, amount := range amounts {
		total += amount
	}
	return total
}

// FormatBaht renders a satang amount as a baht string, e.g. 1234550 -> "฿12,345.50".
func FormatBaht(satang int64) string {
	sign := ""
	if satang < 0 {
		sign = "-"
		satang = -satang
	}
	return fmt.Sprintf("%s฿%s.%02d", sign, groupThousands(satang/100), satang%100)
}

func groupThousands(value int64) string {
	raw := strconv.FormatInt(value, 10)
	var parts []string
	for i := len(raw); i > 0; i -= 3 {
		start := i - 3
		if start < 0 {
			start = 0
		}
		parts = append([]string{raw[start:i]}, parts...)
	}
	return strings.Join(parts, ",")
}
