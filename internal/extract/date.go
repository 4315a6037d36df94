package extract

import (
	"regexp"
	"strings"
	"time"
)

// The three date pattern families, ordered: numeric day-first, numeric
// year-first, month-name. The first family whose first match parses to
// a valid calendar date wins.
var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d{1,2}[-/]\d{1,2}[-/]\d{2,4}`),
	regexp.MustCompile(`\d{4}[-/]\d{1,2}[-/]\d{1,2}`),
	regexp.MustCompile(`(?i)(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\s+\d{1,2},?\s+\d{4}`),
}

// Shape checks used to infer which concrete layout applies to a matched
// substring. A substring is re-tested against these regardless of which
// family found it.
var (
	yearFirstShape = regexp.MustCompile(`^\d{4}[-/]\d{1,2}[-/]\d{1,2}$`)
	dayFirstShape  = regexp.MustCompile(`^\d{1,2}[-/]\d{1,2}[-/]\d{2,4}$`)
	monthNameShape = regexp.MustCompile(`(?i)^(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\s+\d{1,2},?\s+\d{4}$`)
)

// ISODateFormat is the canonical date layout used across the engine.
const ISODateFormat = "2006-01-02"

// ExtractDate finds a date substring in the raw text and returns it as
// a calendar date. The second return value is false when no pattern
// family produced a valid date; callers fall back to the extraction
// time, which is a normal silent default and never an error.
func ExtractDate(text string) (time.Time, bool) {
	for _, pattern := range datePatterns {
		match := pattern.FindString(text)
		if match == "" {
			continue
		}
		if t, ok := parseDetectedDate(match); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseDetectedDate infers the layout for a matched substring by shape
// and attempts a strict parse.
func parseDetectedDate(s string) (time.Time, bool) {
	switch {
	case yearFirstShape.MatchString(s):
		return parseNumeric(s, "2006/1/2")
	case dayFirstShape.MatchString(s):
		// Month-first like the receipts this was tuned on; two-digit
		// years are pivoted by time.Parse.
		if t, ok := parseNumeric(s, "1/2/2006"); ok {
			return t, true
		}
		return parseNumeric(s, "1/2/06")
	case monthNameShape.MatchString(s):
		return parseMonthName(s)
	}
	return time.Time{}, false
}

// parseNumeric normalizes the separator and parses with the layout.
func parseNumeric(s, layout string) (time.Time, bool) {
	normalized := strings.ReplaceAll(s, "-", "/")
	t, err := time.Parse(layout, normalized)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// parseMonthName canonicalizes a month-name form ("jan 5, 2025",
// "January 5 2025") to the three-letter abbreviation and parses it.
func parseMonthName(s string) (time.Time, bool) {
	fields := strings.Fields(s)
	if len(fields) < 3 {
		return time.Time{}, false
	}
	month := strings.ToLower(fields[0])
	if len(month) > 3 {
		month = month[:3]
	}
	month = strings.ToUpper(month[:1]) + month[1:]

	normalized := month + " " + strings.TrimSuffix(fields[1], ",") + ", " + fields[2]
	t, err := time.Parse("Jan 2, 2006", normalized)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
