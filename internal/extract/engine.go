package extract

import (
	"context"
	"fmt"
	"time"

	"github.com/hanifzr/expense-reporting-service/internal/domain"
	"github.com/hanifzr/expense-reporting-service/internal/ocr"
)

// State tracks an extraction run through its lifecycle.
type State string

const (
	StateNotStarted  State = "NotStarted"
	StateRecognizing State = "Recognizing"
	StateAnalyzing   State = "Analyzing"
	StateComplete    State = "Complete"
	StateFailed      State = "Failed"
)

// extractedTextLimit caps the raw-text excerpt kept for human
// verification.
const extractedTextLimit = 300

// Engine sequences recognition and the four field extractors and owns
// the fallback policy. It never returns an error to its caller: a
// failed or impossible extraction yields a mock record instead. The
// engine holds no per-request state, so one instance serves concurrent
// extractions.
type Engine struct {
	provider ocr.Provider
	mock     *MockGenerator
	rng      RandSource
	now      func() time.Time
}

// NewEngine creates an extraction engine. rng and now may be nil; the
// global math/rand functions and time.Now are used then.
func NewEngine(provider ocr.Provider, rng RandSource, now func() time.Time) *Engine {
	if rng == nil {
		rng = globalRand{}
	}
	if now == nil {
		now = time.Now
	}
	return &Engine{
		provider: provider,
		mock:     NewMockGenerator(rng, now),
		rng:      rng,
		now:      now,
	}
}

// Extract runs the full pipeline over one uploaded file and always
// returns a usable record.
//
// Media the provider cannot read (PDFs in this system) bypasses
// recognition and analysis entirely and gets a mock record with
// Success left true; a recognition or analysis failure gets a mock
// record with Success forced false and the failure message attached.
// The distinction is a deliberate policy, not an accident.
func (e *Engine) Extract(ctx context.Context, image []byte, mediaType string) (result domain.ExtractedReceiptData) {
	state := StateNotStarted

	if !e.provider.Supports(mediaType) {
		return e.mock.Generate()
	}

	// Recognition or analysis must never propagate a failure past the
	// engine boundary; the record carries it instead.
	defer func() {
		if r := recover(); r != nil {
			result = e.failedResult(fmt.Errorf("panic while %s: %v", state, r))
		}
	}()

	state = StateRecognizing
	raw, err := e.provider.Recognize(ctx, image)
	if err != nil {
		state = StateFailed
		return e.failedResult(err)
	}

	state = StateAnalyzing
	result = e.Analyze(*raw)
	state = StateComplete
	return result
}

// Analyze runs the four extractors against recognized text and
// assembles the final record. All four extractors always run; their
// outcomes are independent. Fields an extractor could not fill are
// resolved here: amount gets a pseudo-random plausible value, category
// Other, description the fixed placeholder, date the extraction time.
func (e *Engine) Analyze(raw domain.RawRecognitionResult) domain.ExtractedReceiptData {
	amount, amountOK := ExtractAmount(raw.Text)
	date, dateOK := ExtractDate(raw.Text)
	description, descriptionOK := ExtractDescription(raw.Text)
	category, categoryOK := ClassifyCategory(raw.Text)

	if !amountOK {
		amount = randomAmount(e.rng)
	}
	if !dateOK {
		date = e.now()
	}
	if !descriptionOK {
		description = DefaultDescription
	}
	if !categoryOK {
		category = domain.CategoryOther
	}

	return domain.ExtractedReceiptData{
		Amount:        amount,
		Category:      category,
		Description:   description,
		Date:          date.Format(ISODateFormat),
		ExtractedText: truncate(raw.Text, extractedTextLimit),
		Confidence:    raw.Confidence,
		Success:       true,
	}
}

// failedResult converts a pipeline failure into a flagged mock record.
func (e *Engine) failedResult(err error) domain.ExtractedReceiptData {
	result := e.mock.Generate()
	result.Success = false
	result.Error = err.Error()
	return result
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
