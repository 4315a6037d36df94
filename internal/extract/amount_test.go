package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractAmount(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
		ok   bool
	}{
		{
			name: "labelled total",
			text: "Starbucks\nTotal: $42.50\nThank you",
			want: "42.5",
			ok:   true,
		},
		{
			name: "labelled total without dollar sign",
			text: "TOTAL 17.25",
			want: "17.25",
			ok:   true,
		},
		{
			name: "amount label",
			text: "Amount: $8.99",
			want: "8.99",
			ok:   true,
		},
		{
			name: "sum label",
			text: "sum: 120.00",
			want: "120",
			ok:   true,
		},
		{
			name: "bare dollar amount",
			text: "Latte $ 5.75 large",
			want: "5.75",
			ok:   true,
		},
		{
			name: "bare decimal as last resort",
			text: "two coffees 7.50 together",
			want: "7.5",
			ok:   true,
		},
		{
			name: "total wins over bare decimal elsewhere",
			text: "Item 3.00\nTotal: $9.00",
			want: "9",
			ok:   true,
		},
		{
			name: "out of range forces fallback",
			text: "Total: $15000.00",
			ok:   false,
		},
		{
			name: "zero is out of the open range",
			text: "Total: $0.00",
			ok:   false,
		},
		{
			name: "no numbers at all",
			text: "hello world",
			ok:   false,
		},
		{
			name: "empty text",
			text: "",
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractAmount(tt.text)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got.String())
			}
		})
	}
}

func TestExtractAmountOutOfRangeContinuesToNextPattern(t *testing.T) {
	// The labelled total is out of range but a bare dollar amount later
	// in the text is acceptable; the extractor must not give up after
	// the first pattern's match.
	got, ok := ExtractAmount("Total: 99999\ncharged to card $12.34")
	require.True(t, ok)
	assert.Equal(t, "12.34", got.String())
}

func TestExtractAmountTakesFirstMatchWithinPattern(t *testing.T) {
	got, ok := ExtractAmount("Total: $10.00\nTotal: $20.00")
	require.True(t, ok)
	assert.Equal(t, "10", got.String())
}
