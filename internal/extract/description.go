package extract

import (
	"regexp"
	"strings"
)

// DefaultDescription is the last-resort placeholder when no usable
// line exists in the recognized text.
const DefaultDescription = "Extracted from receipt"

// Lines that are only digits, whitespace, dashes, periods or dollar
// signs carry no merchant information.
var numericLine = regexp.MustCompile(`^[\d\s\-.$]+$`)

// Receipt boilerplate that should never be picked as a description.
var boilerplateLine = regexp.MustCompile(`(?i)receipt|invoice|bill|tax|total|subtotal|date|time`)

// businessKeywords is a curated list of restaurant, retail and travel
// brand and category words that mark a line as a likely merchant name.
var businessKeywords = []string{
	"restaurant", "cafe", "coffee", "hotel", "store", "shop",
	"market", "gas", "station", "pharmacy", "hospital", "inn",
	"bar", "grill", "bistro", "deli", "bakery", "pizza", "starbucks",
	"walmart", "target", "costco", "amazon", "uber", "lyft",
}

// ExtractDescription picks the line of text most likely to be the
// merchant or line-item description. The second return value is false
// when the text contains no usable line at all.
func ExtractDescription(text string) (string, bool) {
	lines := splitLines(text)

	for _, line := range lines {
		if len(line) < 3 || numericLine.MatchString(line) {
			continue
		}
		if boilerplateLine.MatchString(line) {
			continue
		}
		if containsBusinessKeyword(line) || (len(line) >= 5 && len(line) <= 50) {
			return line, true
		}
	}

	// No line passed the walk; settle for the first length-valid
	// non-numeric line, then the very first line.
	for _, line := range lines {
		if len(line) >= 5 && len(line) <= 50 && !numericLine.MatchString(line) {
			return line, true
		}
	}
	if len(lines) > 0 {
		return lines[0], true
	}
	return "", false
}

// splitLines returns trimmed, non-empty lines of the raw text.
func splitLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func containsBusinessKeyword(line string) bool {
	lower := strings.ToLower(line)
	for _, keyword := range businessKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}
