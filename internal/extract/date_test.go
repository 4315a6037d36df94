package extract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractDate(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
		ok   bool
	}{
		{
			name: "slash separated numeric date",
			text: "Receipt\nDate: 03/04/2025\nTotal: $5.00",
			want: "2025-03-04",
			ok:   true,
		},
		{
			name: "dash separated numeric date",
			text: "visited on 12-25-2024",
			want: "2024-12-25",
			ok:   true,
		},
		{
			name: "two digit year",
			text: "paid 01/15/24 by card",
			want: "2024-01-15",
			ok:   true,
		},
		{
			name: "year first date",
			text: "issued 2025-07-09",
			want: "2025-07-09",
			ok:   true,
		},
		{
			name: "month name form",
			text: "Jan 5, 2025 10:23",
			want: "2025-01-05",
			ok:   true,
		},
		{
			name: "full month name lowercase",
			text: "paid on january 5 2025",
			want: "2025-01-05",
			ok:   true,
		},
		{
			name: "no date at all",
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
			got, ok := ExtractDate(tt.text)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got.Format(ISODateFormat))
			}
		})
	}
}

func TestExtractDateInvalidCalendarDateFallsThrough(t *testing.T) {
	// 31/12 is not a valid month/day pair for the inferred month-first
	// layout, so the first family's match must not be accepted; the
	// year-first form later in the text is.
	got, ok := ExtractDate("31/12/2025 some text 2024/06/01")
	require.True(t, ok)
	assert.Equal(t, "2024-06-01", got.Format(ISODateFormat))
}

func TestExtractDateNothingParsesDefaultsAtCaller(t *testing.T) {
	_, ok := ExtractDate("99/99/9999")
	require.False(t, ok)

	// Callers substitute the extraction time; the engine formats it as
	// an ISO date. Mirror that here to pin the contract.
	now := time.Date(2025, 2, 3, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-02-03", now.Format(ISODateFormat))
}
