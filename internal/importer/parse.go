package importer

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// amenityMaxLen mirrors the amenities.name column width.
const amenityMaxLen = 100

var priceCleaner = strings.NewReplacer("$", "", ",", "", " ", "")

// parsePrice converts a CSV price string such as "$1,234.00" to its numeric
// value, stripping the currency symbol and thousands separators. Empty or
// unparsable input yields the caller's default.
func parsePrice(s string, def float64) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	v, err := strconv.ParseFloat(priceCleaner.Replace(s), 64)
	if err != nil {
		return def
	}
	return v
}

// parseRating normalizes a review score to the 0-5 scale. Source files mix
// two scales: values above 5 are assumed to be 0-100 and divided by 20.
// The result is clamped to [0,5]; empty or unparsable input yields 0.
func parseRating(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	if v > 5 {
		v = v / 20
	}
	if v < 0 {
		return 0
	}
	if v > 5 {
		return 5
	}
	return v
}

// parseBool treats "t", "true", "1" and "yes" (case-insensitive) as true
// and everything else, including empty input, as false.
func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "t", "true", "1", "yes":
		return true
	}
	return false
}

// parseInt converts a numeric string to int, truncating any fractional
// part ("2.0" becomes 2). Empty input or the literal "NULL" yields the
// caller's default.
func parseInt(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "NULL") {
		return def
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return int(v)
}

// parseFloat converts a decimal string, with the same empty/NULL handling
// as parseInt.
func parseFloat(s string, def float64) float64 {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "NULL") {
		return def
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return v
}

// parseDate accepts only YYYY-MM-DD. Anything else, including empty input
// and the literal "NULL", yields ok=false. Callers must treat a missing
// date as a reason to skip the row, never substitute a synthetic one.
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "NULL") {
		return time.Time{}, false
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// parseAmenities decodes the amenities column, a JSON array of strings.
// Non-string and empty entries are dropped, over-length names truncated
// to the column width. Malformed JSON yields an empty list.
func parseAmenities(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	var raw []interface{}
	if err := json.Unmarshal([]byte(s), &raw); err != nil {
		return nil
	}
	names := make([]string, 0, len(raw))
	for _, entry := range raw {
		name, ok := entry.(string)
		if !ok || name == "" {
			continue
		}
		names = append(names, truncate(name, amenityMaxLen))
	}
	return names
}

// truncate limits s to n characters (runes, not bytes; amenity names in
// the feed include accented text).
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// fallback returns def when s is empty.
func fallback(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
