package handler

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestValidAmount(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"500", true},
		{"0.01", true},
		{"123.45", true},
		{"0", false},
		{"-5", false},
		{"1.234", false},
	}
	for _, tc := range cases {
		d, err := decimal.NewFromString(tc.in)
		assert.NoError(t, err)
		assert.Equal(t, tc.ok, validAmount(d), "amount %s", tc.in)
	}
}

func TestValidLoanAmount(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"100", true},
		{"500.50", true},
		{"1000000", true},
		{"99.99", false},
		{"1000000.01", false},
		{"250.999", false},
	}
	for _, tc := range cases {
		d, err := decimal.NewFromString(tc.in)
		assert.NoError(t, err)
		assert.Equal(t, tc.ok, validLoanAmount(d), "amount %s", tc.in)
	}
}

func TestValidInterestRate(t *testing.T) {
	for in, ok := range map[string]bool{"1": true, "12.5": true, "30": true, "0.5": false, "31": false} {
		d, err := decimal.NewFromString(in)
		assert.NoError(t, err)
		assert.Equal(t, ok, validInterestRate(d), "rate %s", in)
	}
}
