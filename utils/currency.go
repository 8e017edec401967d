package utils

import (
	"fmt"
	"strings"
)

// FormatCurrency memformat angka ke format Rupiah dengan pemisah ribuan,
// dipakai untuk pesan notifikasi staff ("total Rp 55.000").
func FormatCurrency(amount float64) string {
	whole := int64(amount)
	digits := fmt.Sprintf("%d", whole)

	var groups []string
	for i := len(digits); i > 0; i -= 3 {
		start := i - 3
		if start < 0 {
			start = 0
		}
		groups = append([]string{digits[start:i]}, groups...)
	}

	return "Rp " + strings.Join(groups, ".")
}
