package common

import (
	"testing"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{1234.56, "$1,234.56"},
		{0, "$0.00"},
		{-500.00, "-$500.00"},
		{1000000.99, "$1,000,000.99"},
	}

	for _, tt := range tests {
		got := FormatMoney(tt.value)
		if got != tt.want {
			t.Errorf("FormatMoney(%.2f) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestFormatAUM(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{2500000000, "$2.50B"},
		{4250000, "$4.25M"},
		{1000000, "$1.00M"},
		{999999, "$999,999.00"},
		{0, "$0.00"},
	}

	for _, tt := range tests {
		got := FormatAUM(tt.value)
		if got != tt.want {
			t.Errorf("FormatAUM(%.0f) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestFormatSignedPct(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{5.25, "+5.25%"},
		{0, "+0.00%"},
		{-3.1, "-3.10%"},
	}

	for _, tt := range tests {
		got := FormatSignedPct(tt.value)
		if got != tt.want {
			t.Errorf("FormatSignedPct(%.2f) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestFormatPct(t *testing.T) {
	if got := FormatPct(34.2); got != "34.2%" {
		t.Errorf("FormatPct(34.2) = %q, want %q", got, "34.2%")
	}
	if got := FormatPct(100.0); got != "100.0%" {
		t.Errorf("FormatPct(100.0) = %q, want %q", got, "100.0%")
	}
	if got := FormatPct(0); got != "0.0%" {
		t.Errorf("FormatPct(0) = %q, want %q", got, "0.0%")
	}
}
