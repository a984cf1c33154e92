package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatINR(t *testing.T) {
	tests := []struct {
		amount int64
		want   string
	}{
		{0, "₹0"},
		{7, "₹7"},
		{598, "₹598"},
		{1234, "₹1,234"},
		{99999, "₹99,999"},
		{100000, "₹1,00,000"},
		{1234567, "₹12,34,567"},
		{123456789, "₹12,34,56,789"},
		{-598, "-₹598"},
		{-1234567, "-₹12,34,567"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatINR(tt.amount), "amount=%d", tt.amount)
	}
}

func TestParseINR(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"₹598", 598},
		{"₹12,34,567", 1234567},
		{"1234", 1234},
		{"123.45", 123},
		{" ₹1,000 ", 1000},
		{"-₹500", -500},
		{"", 0},
		{"free", 0},
		{"₹", 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseINR(tt.in), "input=%q", tt.in)
	}
}

func TestParseINRRoundtripsFormat(t *testing.T) {
	for _, amount := range []int64{0, 1, 999, 1000, 54321, 9999999} {
		assert.Equal(t, amount, ParseINR(FormatINR(amount)))
	}
}
