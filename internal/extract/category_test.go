package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanifzr/expense-reporting-service/internal/domain"
)

func TestClassifyCategory(t *testing.T) {
	tests := []struct {
		name string
		text string
		want domain.Category
		ok   bool
	}{
		{
			name: "meals keyword",
			text: "CHIPOTLE MEXICAN GRILL\nTotal: $12.50",
			want: domain.CategoryMeals,
			ok:   true,
		},
		{
			name: "travel keyword",
			text: "Hilton Hotel\nRoom 204",
			want: domain.CategoryTravel,
			ok:   true,
		},
		{
			name: "office keyword",
			text: "STAPLES STORE #1042",
			want: domain.CategoryOffice,
			ok:   true,
		},
		{
			name: "utilities keyword",
			text: "Verizon Wireless statement",
			want: domain.CategoryUtilities,
			ok:   true,
		},
		{
			name: "meals has priority over travel",
			text: "starbucks inside the hotel lobby",
			want: domain.CategoryMeals,
			ok:   true,
		},
		{
			name: "matching is case insensitive over the whole text",
			text: "LINE ONE\nMCDONALD'S\nLINE THREE",
			want: domain.CategoryMeals,
			ok:   true,
		},
		{
			name: "no keyword leaves category unset",
			text: "miscellaneous purchase",
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ClassifyCategory(tt.text)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
