package quality

import (
	"strings"
	"unicode"
)

// Correction is one entry of a typo-correction table: every occurrence of
// Find is replaced by Replace. Corrections are matched against the
// whitespace- and case-normalized value, so Find should be written in
// normalized form.
type Correction struct {
	Find    string `json:"find"`
	Replace string `json:"replace"`
}

// Cleanser applies the normalization pipeline to text values: whitespace
// collapse, case normalization, then the correction table, in that order.
// The pipeline is idempotent: cleansing its own output changes nothing.
type Cleanser struct {
	corrections []Correction
}

// NewCleanser validates the correction table before any value is touched.
// Rejected tables: an empty Find or Replace, two entries with the same Find
// but different Replace, entries not already in normalized form, casing
// that a later normalization pass would undo, and a Replace that contains
// any Find (which would grow on every pass).
func NewCleanser(corrections []Correction) (*Cleanser, error) {
	replaceByFind := make(map[string]string, len(corrections))
	for _, c := range corrections {
		if c.Find == "" {
			return nil, &ErrBadCorrection{Find: c.Find, Reason: "find text cannot be empty"}
		}
		if c.Replace == "" {
			return nil, &ErrBadCorrection{Find: c.Find, Reason: "empty replacement leaves whitespace uncollapsed"}
		}
		if prev, ok := replaceByFind[c.Find]; ok && prev != c.Replace {
			return nil, &ErrBadCorrection{Find: c.Find, Reason: "conflicting replacement for the same find text"}
		}
		replaceByFind[c.Find] = c.Replace
		if normalizeWhitespace(c.Find) != c.Find {
			return nil, &ErrBadCorrection{Find: c.Find, Reason: "find text is not whitespace-normalized"}
		}
		if normalizeWhitespace(c.Replace) != c.Replace {
			return nil, &ErrBadCorrection{Find: c.Find, Reason: "replacement is not whitespace-normalized"}
		}
		// Case normalization upper-cases the head rune and lowercases the
		// rest, so a replacement only survives the next pass if it already
		// has that shape wherever its find can match. Interior capitals
		// never survive.
		if hasUpperPastFirst(c.Replace) {
			return nil, &ErrBadCorrection{Find: c.Find, Reason: "replacement casing would not survive renormalization"}
		}
		switch {
		case startsUpper(c.Find):
			// Matches only at the head of a value.
			if !startsUpper(c.Replace) {
				return nil, &ErrBadCorrection{Find: c.Find, Reason: "replacement casing would not survive renormalization"}
			}
		case startsCased(c.Find):
			// Lowercase head: matches only past the head of a value.
			if hasUpper(c.Replace) {
				return nil, &ErrBadCorrection{Find: c.Find, Reason: "replacement casing would not survive renormalization"}
			}
		default:
			// Uncased head (digit, punctuation): can match at the head of a
			// value, where a cased replacement head would be re-cased.
			if startsCased(c.Replace) {
				return nil, &ErrBadCorrection{Find: c.Find, Reason: "replacement casing would not survive renormalization"}
			}
		}
	}
	for _, c := range corrections {
		for find := range replaceByFind {
			if strings.Contains(c.Replace, find) {
				return nil, &ErrBadCorrection{Find: find, Reason: "replacement reintroduces a find text"}
			}
		}
	}
	return &Cleanser{corrections: corrections}, nil
}

// Cleanse returns a cleaned projection of values; the input is never
// mutated.
func (c *Cleanser) Cleanse(values []string) []string {
	cleaned := make([]string, len(values))
	for i, v := range values {
		cleaned[i] = c.CleanseValue(v)
	}
	return cleaned
}

// CleanseValue runs the pipeline on a single value.
func (c *Cleanser) CleanseValue(v string) string {
	v = normalizeWhitespace(v)
	v = normalizeCase(v)
	for _, corr := range c.corrections {
		v = strings.ReplaceAll(v, corr.Find, corr.Replace)
	}
	return v
}

// normalizeWhitespace trims the value and collapses every interior run of
// whitespace to a single space. Trimming is a separate step: collapsing
// alone would leave one leading or trailing space behind.
func normalizeWhitespace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inRun := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			inRun = true
			continue
		}
		if inRun && b.Len() > 0 {
			b.WriteByte(' ')
		}
		inRun = false
		b.WriteRune(r)
	}
	return b.String()
}

// normalizeCase upper-cases the first rune and lower-cases the remainder
// of the whole string, not per word.
func normalizeCase(s string) string {
	if s == "" {
		return s
	}
	lower := strings.ToLower(s)
	runes := []rune(lower)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func startsUpper(s string) bool {
	for _, r := range s {
		return unicode.IsUpper(r)
	}
	return false
}

func hasUpper(s string) bool {
	for _, r := range s {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

func hasUpperPastFirst(s string) bool {
	first := true
	for _, r := range s {
		if first {
			first = false
			continue
		}
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

func startsCased(s string) bool {
	for _, r := range s {
		return unicode.IsUpper(r) || unicode.IsLower(r)
	}
	return false
}
