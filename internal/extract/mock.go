package extract

import (
	"math/rand"
	"time"

	"github.com/hanifzr/expense-reporting-service/internal/domain"
	"github.com/shopspring/decimal"
)

// RandSource is the source of pseudo-randomness for fallback values.
// It is a replaceable dependency so tests can pin the output; the
// production source is not seeded deterministically on purpose, the
// mock path is a demo-grade placeholder.
type RandSource interface {
	Float64() float64
	Intn(n int) int
}

// globalRand delegates to math/rand's goroutine-safe global functions.
type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }
func (globalRand) Intn(n int) int   { return rand.Intn(n) }

var mockCategories = []domain.Category{
	domain.CategoryMeals,
	domain.CategoryTravel,
	domain.CategoryOffice,
	domain.CategoryUtilities,
}

var mockDescriptions = []string{
	"Starbucks Coffee", "Uber Ride", "Office Depot", "AT&T Bill",
	"Restaurant Bill", "Taxi Fare", "Printer Ink", "Internet Service",
	"Gas Station", "Hotel Stay", "Amazon Purchase", "Parking Fee",
}

// MockGenerator produces structurally valid ExtractedReceiptData with
// no relation to any real file. It is used whenever a real extraction
// cannot run: unreadable images, provider failures, or media the
// provider does not support.
type MockGenerator struct {
	rng RandSource
	now func() time.Time
}

// NewMockGenerator creates a generator with the given randomness source
// and clock. Either may be nil, in which case the global math/rand
// functions and time.Now are used.
func NewMockGenerator(rng RandSource, now func() time.Time) *MockGenerator {
	if rng == nil {
		rng = globalRand{}
	}
	if now == nil {
		now = time.Now
	}
	return &MockGenerator{rng: rng, now: now}
}

// Generate returns a plausible placeholder record: amount in (20,520),
// category and description from fixed lists, date = now, confidence in
// (80,100).
func (g *MockGenerator) Generate() domain.ExtractedReceiptData {
	return domain.ExtractedReceiptData{
		Amount:      randomAmount(g.rng),
		Category:    mockCategories[g.rng.Intn(len(mockCategories))],
		Description: mockDescriptions[g.rng.Intn(len(mockDescriptions))],
		Date:        g.now().Format(ISODateFormat),
		Confidence:  80 + g.rng.Float64()*20,
		Success:     true,
	}
}

// randomAmount returns a pseudo-random plausible amount in (20,520)
// rounded to 2 decimal places.
func randomAmount(rng RandSource) decimal.Decimal {
	return decimal.NewFromFloat(20 + rng.Float64()*500).Round(2)
}
