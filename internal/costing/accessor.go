package costing

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Fields is the loosely typed field mapping of one external list record.
// Values arrive exactly as the store's JSON decoder produced them, so every
// getter tolerates numbers-as-text, missing keys and null entries.
type Fields map[string]any

// Pick returns the first non-nil, non-empty value among the candidate keys.
func (f Fields) Pick(candidates ...string) (any, bool) {
	for _, key := range candidates {
		value, ok := f[key]
		if !ok || value == nil {
			continue
		}
		if s, isString := value.(string); isString && s == "" {
			continue
		}
		return value, true
	}
	return nil, false
}

// Float extracts a numeric value from the first matching candidate key.
// Unparsable or absent values yield the provided default.
func (f Fields) Float(def float64, candidates ...string) float64 {
	value, ok := f.Pick(candidates...)
	if !ok {
		return def
	}
	return coerceFloat(value, def)
}

// Int extracts an integer value, accepting numeric text such as "12.0".
func (f Fields) Int(def int, candidates ...string) int {
	value, ok := f.Pick(candidates...)
	if !ok {
		return def
	}
	return int(coerceFloat(value, float64(def)))
}

// Text extracts a string value, stringifying non-text scalars.
func (f Fields) Text(def string, candidates ...string) string {
	value, ok := f.Pick(candidates...)
	if !ok {
		return def
	}
	if s, isString := value.(string); isString {
		return s
	}
	return fmt.Sprint(value)
}

// Bool extracts a boolean value. Native booleans pass through; text is
// matched case-insensitively against the affirmative set. Any other present
// value is false.
func (f Fields) Bool(def bool, candidates ...string) bool {
	value, ok := f.Pick(candidates...)
	if !ok {
		return def
	}
	if b, isBool := value.(bool); isBool {
		return b
	}
	switch strings.ToLower(strings.TrimSpace(fmt.Sprint(value))) {
	case "true", "yes", "y", "1", "on":
		return true
	}
	return false
}

// Date extracts a calendar date as midnight UTC. Unparsable input yields the
// zero time rather than an error.
func (f Fields) Date(candidates ...string) time.Time {
	value, ok := f.Pick(candidates...)
	if !ok {
		return time.Time{}
	}
	return coerceDate(fmt.Sprint(value))
}

// Time extracts a timestamp. Values without timezone information are assumed
// UTC. Unparsable input yields the zero time.
func (f Fields) Time(candidates ...string) time.Time {
	value, ok := f.Pick(candidates...)
	if !ok {
		return time.Time{}
	}
	return coerceTime(fmt.Sprint(value))
}

func coerceFloat(value any, def float64) float64 {
	switch n := value.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return def
		}
		return parsed
	default:
		return def
	}
}

func coerceDate(raw string) time.Time {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}
	}

	if strings.Contains(s, "T") {
		if ts := coerceTime(s); !ts.IsZero() {
			year, month, day := ts.UTC().Date()
			return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		}
		return time.Time{}
	}

	if strings.Contains(s, "-") && len(s) >= 10 {
		if d, err := time.ParseInLocation("2006-01-02", s[:10], time.UTC); err == nil {
			return d
		}
		return time.Time{}
	}

	// SharePoint sometimes formats dates as mm/dd/yyyy.
	if strings.Contains(s, "/") {
		if d, err := time.ParseInLocation("01/02/2006", s, time.UTC); err == nil {
			return d
		}
	}

	return time.Time{}
}

func coerceTime(raw string) time.Time {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}
	}

	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
	}
	for _, layout := range layouts {
		if ts, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return ts
		}
	}

	return time.Time{}
}
