package extract

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockGeneratorProducesValidRecord(t *testing.T) {
	gen := NewMockGenerator(nil, nil)

	for i := 0; i < 50; i++ {
		got := gen.Generate()

		assert.True(t, got.Success)
		assert.Empty(t, got.Error)
		assert.True(t, got.Amount.IsPositive())
		assert.True(t, got.Amount.LessThan(decimal.NewFromInt(520)))
		assert.Contains(t, mockCategories, got.Category)
		assert.Contains(t, mockDescriptions, got.Description)
		assert.GreaterOrEqual(t, got.Confidence, 80.0)
		assert.LessOrEqual(t, got.Confidence, 100.0)

		_, err := time.Parse(ISODateFormat, got.Date)
		require.NoError(t, err)
	}
}

func TestMockGeneratorUsesInjectedSources(t *testing.T) {
	now := func() time.Time { return time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC) }
	gen := NewMockGenerator(fixedRand{f: 0.1, n: 3}, now)

	got := gen.Generate()

	// 20 + 0.1*500
	assert.Equal(t, "70", got.Amount.String())
	assert.Equal(t, mockCategories[3], got.Category)
	assert.Equal(t, mockDescriptions[3], got.Description)
	assert.Equal(t, "2024-11-01", got.Date)
	assert.Equal(t, 82.0, got.Confidence)
}
