package extract

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanifzr/expense-reporting-service/internal/domain"
)

// fixedRand returns the same values on every call so mock-origin fields
// are predictable in tests.
type fixedRand struct {
	f float64
	n int
}

func (r fixedRand) Float64() float64 { return r.f }
func (r fixedRand) Intn(n int) int   { return r.n % n }

// fakeProvider scripts the recognition outcome for one test.
type fakeProvider struct {
	result      *domain.RawRecognitionResult
	err         error
	unsupported map[string]bool
	calls       int
}

func (p *fakeProvider) Recognize(ctx context.Context, image []byte) (*domain.RawRecognitionResult, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return p.result, nil
}

func (p *fakeProvider) Supports(mediaType string) bool {
	return !p.unsupported[mediaType]
}

var fixedNow = func() time.Time {
	return time.Date(2025, 6, 15, 9, 30, 0, 0, time.UTC)
}

const sampleReceipt = "Receipt #123\nStarbucks Coffee Shop\nDate: 03/04/2025\nTotal: $42.50\nThank you"

func TestEngineExtractCompletePath(t *testing.T) {
	provider := &fakeProvider{result: &domain.RawRecognitionResult{Text: sampleReceipt, Confidence: 91.5}}
	engine := NewEngine(provider, fixedRand{f: 0.5}, fixedNow)

	got := engine.Extract(context.Background(), []byte("img"), "image/png")

	assert.True(t, got.Success)
	assert.Empty(t, got.Error)
	assert.Equal(t, "42.5", got.Amount.String())
	assert.Equal(t, domain.CategoryMeals, got.Category)
	assert.Equal(t, "Starbucks Coffee Shop", got.Description)
	assert.Equal(t, "2025-03-04", got.Date)
	assert.Equal(t, 91.5, got.Confidence)
	assert.Equal(t, sampleReceipt, got.ExtractedText)
}

func TestEngineExtractIsIdempotentOnSameText(t *testing.T) {
	provider := &fakeProvider{result: &domain.RawRecognitionResult{Text: sampleReceipt, Confidence: 88}}
	engine := NewEngine(provider, nil, nil)

	first := engine.Extract(context.Background(), []byte("img"), "image/jpeg")
	second := engine.Extract(context.Background(), []byte("img"), "image/jpeg")

	assert.Equal(t, first.Amount.String(), second.Amount.String())
	assert.Equal(t, first.Category, second.Category)
	assert.Equal(t, first.Description, second.Description)
	assert.Equal(t, first.Date, second.Date)
}

func TestEngineExtractProviderFailure(t *testing.T) {
	provider := &fakeProvider{err: errors.New("corrupt image data")}
	engine := NewEngine(provider, fixedRand{f: 0.25, n: 1}, fixedNow)

	got := engine.Extract(context.Background(), []byte("img"), "image/png")

	assert.False(t, got.Success)
	assert.Equal(t, "corrupt image data", got.Error)

	// All fields still present and valid despite the failure.
	assert.True(t, got.Amount.IsPositive())
	assert.NotEmpty(t, got.Category)
	assert.NotEmpty(t, got.Description)
	_, err := time.Parse(ISODateFormat, got.Date)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, got.Confidence, 0.0)
	assert.LessOrEqual(t, got.Confidence, 100.0)
}

func TestEngineExtractUnsupportedMediaSkipsRecognition(t *testing.T) {
	provider := &fakeProvider{unsupported: map[string]bool{"application/pdf": true}}
	engine := NewEngine(provider, fixedRand{f: 0.5, n: 2}, fixedNow)

	got := engine.Extract(context.Background(), []byte("%PDF-1.4"), "application/pdf")

	// Deliberate policy: unsupported media keeps Success true, unlike
	// the failure path.
	assert.True(t, got.Success)
	assert.Empty(t, got.Error)
	assert.Zero(t, provider.calls)
	assert.Equal(t, "2025-06-15", got.Date)
	assert.True(t, got.Amount.IsPositive())
}

func TestEngineAnalyzeFallbacks(t *testing.T) {
	engine := NewEngine(&fakeProvider{}, fixedRand{f: 0.5}, fixedNow)

	got := engine.Analyze(domain.RawRecognitionResult{Text: "zz\nqq", Confidence: 12})

	assert.True(t, got.Success)
	// 20 + 0.5*500
	assert.Equal(t, "270", got.Amount.String())
	assert.Equal(t, domain.CategoryOther, got.Category)
	assert.Equal(t, "zz", got.Description)
	assert.Equal(t, "2025-06-15", got.Date)
	assert.Equal(t, 12.0, got.Confidence)
}

func TestEngineAnalyzeTruncatesExtractedText(t *testing.T) {
	engine := NewEngine(&fakeProvider{}, nil, fixedNow)

	long := make([]byte, 0, 500)
	for i := 0; i < 500; i++ {
		long = append(long, 'a')
	}
	got := engine.Analyze(domain.RawRecognitionResult{Text: string(long), Confidence: 50})

	assert.Len(t, got.ExtractedText, 300)
}
