// Package listing decodes loosely typed product listings (AI output, feed
// rows) into values that satisfy the catalog invariants.
package listing

import (
	"math"
	"strconv"
	"strings"

	"github.com/tagtracer/backend/internal/domain"
)

const (
	// DefaultRating is used when a listing has no usable rating
	DefaultRating = 4.0

	maxRating      = 5.0
	maxReviewScore = 100
)

// String returns item[key] when it is a non-blank string, otherwise fallback
func String(item map[string]any, key, fallback string) string {
	if s, ok := item[key].(string); ok && strings.TrimSpace(s) != "" {
		return s
	}
	return fallback
}

// Number converts a loosely typed JSON value to a float. Strings are parsed
// after stripping thousands separators and a rupee sign.
func Number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return n, true
	case int:
		return float64(n), true
	case string:
		s := strings.TrimSpace(n)
		s = strings.TrimPrefix(s, "₹")
		s = strings.ReplaceAll(s, ",", "")
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// Price returns a non-negative price; anything unusable becomes 0 ("check site")
func Price(v any) float64 {
	n, ok := Number(v)
	if !ok || n < 0 {
		return 0
	}
	return n
}

// Rating returns a rating in [0,5]. Missing, zero or unparseable values
// become DefaultRating.
func Rating(v any) float64 {
	n, ok := Number(v)
	if !ok || n == 0 {
		return DefaultRating
	}
	return Clamp(n, 0, maxRating)
}

// StrictRating clamps a rating into [0,5] without defaulting
func StrictRating(v any) float64 {
	n, _ := Number(v)
	return Clamp(n, 0, maxRating)
}

// Clamp limits v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// StringList keeps the string elements of a JSON array; anything else yields
// an empty list
func StringList(v any) []string {
	list, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(list))
	for _, el := range list {
		if s, ok := el.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// ParseSentiment matches raw against the known sentiments case-insensitively
func ParseSentiment(raw string) (domain.Sentiment, bool) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return "", false
	}

	s := domain.Sentiment(strings.ToUpper(raw[:1]) + raw[1:])
	if !s.Valid() {
		return "", false
	}
	return s, true
}

// ReviewSummary keeps a summary only when its sentiment is one of the three
// known values. The score is rounded and clamped to 0-100.
func ReviewSummary(v any) *domain.ReviewSummary {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil
	}

	raw, _ := obj["sentiment"].(string)
	sentiment, ok := ParseSentiment(raw)
	if !ok {
		return nil
	}

	score, _ := Number(obj["score"])
	return &domain.ReviewSummary{
		Sentiment:  sentiment,
		Highlights: StringList(obj["highlights"]),
		Score:      int(math.Round(Clamp(score, 0, maxReviewScore))),
	}
}
