package formatter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMoney(t *testing.T) {
	assert.Equal(t, "$0.00", Money(0))
	assert.Equal(t, "$8.50", Money(8.5))
	assert.Equal(t, "$260.00", Money(260))
	assert.Equal(t, "$1,234.56", Money(1234.56))
	assert.Equal(t, "$1,234,567.80", Money(1234567.8))
	assert.Equal(t, "-$42.25", Money(-42.25))
}

func TestHours(t *testing.T) {
	assert.Equal(t, "8", Hours(8))
	assert.Equal(t, "7.5", Hours(7.5))
	assert.Equal(t, "0.25", Hours(0.25))
	assert.Equal(t, "0", Hours(0))
}

func TestShortDate(t *testing.T) {
	d := time.Date(2026, 8, 23, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, "2026-08-23", ShortDate(d))
}

func TestRenderTable(t *testing.T) {
	out := RenderTable(
		[]string{"Name", "Amount"},
		[][]string{
			{"Jane Doe", "$260.00"},
			{"Bob", "$8.50"},
		},
	)
	assert.Contains(t, out, "Name")
	assert.Contains(t, out, "Jane Doe")
	assert.Contains(t, out, "$8.50")

	assert.Empty(t, RenderTable(nil, nil))
}
