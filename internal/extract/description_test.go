package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractDescription(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
		ok   bool
	}{
		{
			name: "skips boilerplate and picks merchant line",
			text: "Receipt #123\nStarbucks Coffee Shop\nTotal: $5.00",
			want: "Starbucks Coffee Shop",
			ok:   true,
		},
		{
			name: "keyword match on a short line",
			text: "###\nuber\n$14.20",
			want: "uber",
			ok:   true,
		},
		{
			name: "length in range without keyword",
			text: "12345\nBlue Bottle Order\n99.99",
			want: "Blue Bottle Order",
			ok:   true,
		},
		{
			name: "skips purely numeric lines",
			text: "123 456\n$ 12.00 -\nCorner Bakery",
			want: "Corner Bakery",
			ok:   true,
		},
		{
			name: "falls back to first line when nothing qualifies",
			text: "ab\ncd",
			want: "ab",
			ok:   true,
		},
		{
			name: "no lines at all",
			text: "  \n \n",
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractDescription(tt.text)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestExtractDescriptionSecondChanceWalk(t *testing.T) {
	// Every line is boilerplate on the first walk, but one of them is a
	// length-valid non-numeric line, which the fallback walk accepts.
	got, ok := ExtractDescription("Invoice Services Ltd\nSubtotal 4.00")
	require.True(t, ok)
	assert.Equal(t, "Invoice Services Ltd", got)
}
