// Package common provides shared utilities for Ivy Portal
package common

import (
	"fmt"
	"strings"
)

// FormatMoney formats a float as a dollar amount with comma separators
func FormatMoney(v float64) string {
	negative := v < 0
	if negative {
		v = -v
	}
	whole := int64(v)
	cents := int64((v-float64(whole))*100 + 0.5)
	if cents >= 100 {
		whole++
		cents -= 100
	}

	s := fmt.Sprintf("%d", whole)
	if len(s) > 3 {
		var parts []string
		for len(s) > 3 {
			parts = append([]string{s[len(s)-3:]}, parts...)
			s = s[:len(s)-3]
		}
		parts = append([]string{s}, parts...)
		s = strings.Join(parts, ",")
	}

	if negative {
		return fmt.Sprintf("-$%s.%02d", s, cents)
	}
	return fmt.Sprintf("$%s.%02d", s, cents)
}

// FormatAUM formats assets under management with appropriate suffix (M/B).
// Values under one million are rendered in full.
func FormatAUM(v float64) string {
	if v >= 1e9 {
		return fmt.Sprintf("$%.2fB", v/1e9)
	}
	if v >= 1e6 {
		return fmt.Sprintf("$%.2fM", v/1e6)
	}
	return FormatMoney(v)
}

// FormatSignedPct formats a percentage with +/- prefix
func FormatSignedPct(v float64) string {
	if v >= 0 {
		return fmt.Sprintf("+%.2f%%", v)
	}
	return fmt.Sprintf("%.2f%%", v)
}

// FormatPct formats a percentage value with one decimal place.
func FormatPct(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}
