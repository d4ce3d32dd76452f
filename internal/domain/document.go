package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode"
)

// Documents keep any JSON keys the web client sends beyond the typed fields in
// an Extra map. The helpers below split and merge those keys.

var knownKeysCache sync.Map // reflect.Type -> map[string]struct{}

// knownKeys returns the JSON keys declared by the struct type of v.
func knownKeys(v any) map[string]struct{} {
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if cached, ok := knownKeysCache.Load(t); ok {
		return cached.(map[string]struct{})
	}

	keys := make(map[string]struct{}, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag := f.Tag.Get("json")
		name, _, _ := strings.Cut(tag, ",")
		if name == "-" || !f.IsExported() {
			continue
		}
		if name == "" {
			name = f.Name
		}
		keys[name] = struct{}{}
	}
	knownKeysCache.Store(t, keys)
	return keys
}

// splitExtra decodes the keys of data that typed does not declare.
func splitExtra(data []byte, typed any) (map[string]any, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	known := knownKeys(typed)
	var extra map[string]any
	for k, v := range raw {
		if _, ok := known[k]; ok || k == "id" {
			continue
		}
		if err := checkExtraKey(k); err != nil {
			return nil, err
		}
		var val any
		if err := json.Unmarshal(v, &val); err != nil {
			return nil, err
		}
		if extra == nil {
			extra = make(map[string]any)
		}
		extra[k] = val
	}
	return extra, nil
}

// checkExtraKey refuses names a document store would read as a path or an
// operator, so a client field can never address nested or typed fields.
func checkExtraKey(k string) error {
	if k == "" || strings.HasPrefix(k, "$") || strings.Contains(k, ".") {
		return fmt.Errorf("field name %q is not allowed", k)
	}
	return nil
}

// mergeExtra marshals typed and adds extra keys that do not collide with typed ones.
func mergeExtra(typed any, extra map[string]any) ([]byte, error) {
	base, err := json.Marshal(typed)
	if err != nil || len(extra) == 0 {
		return base, err
	}
	var out map[string]any
	if err := json.Unmarshal(base, &out); err != nil {
		return nil, err
	}
	for k, v := range extra {
		if _, exists := out[k]; !exists {
			out[k] = v
		}
	}
	return json.Marshal(out)
}

var deadlineLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDeadline coerces a JSON value into a timestamp. Strings are accepted in
// RFC 3339 or date-only layouts, numbers as epoch milliseconds.
func ParseDeadline(raw json.RawMessage) (time.Time, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		s = strings.TrimSpace(s)
		for _, layout := range deadlineLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return checkDeadlineRange(t.UTC())
			}
		}
		return time.Time{}, fmt.Errorf("%w: deadline %q is not a date", ErrInvalidInput, s)
	}

	var ms float64
	if err := json.Unmarshal(raw, &ms); err == nil && !math.IsNaN(ms) && !math.IsInf(ms, 0) {
		if ms < float64(minDeadline.UnixMilli()) || ms > float64(maxDeadline.UnixMilli()) {
			return time.Time{}, errDeadlineRange
		}
		return time.UnixMilli(int64(ms)).UTC(), nil
	}
	return time.Time{}, fmt.Errorf("%w: deadline must be a date string or epoch milliseconds", ErrInvalidInput)
}

// Deadlines must stay within the years a JSON timestamp can represent
var (
	minDeadline      = time.Date(0, time.January, 1, 0, 0, 0, 0, time.UTC)
	maxDeadline      = time.Date(9999, time.December, 31, 23, 59, 59, 999_000_000, time.UTC)
	errDeadlineRange = fmt.Errorf("%w: deadline must fall between years 0 and 9999", ErrInvalidInput)
)

func checkDeadlineRange(t time.Time) (time.Time, error) {
	if t.Before(minDeadline) || t.After(maxDeadline) {
		return time.Time{}, errDeadlineRange
	}
	return t, nil
}

// ParseCount coerces a JSON number or numeric string into an integer. Strings
// are read up to the first non-digit, so "5 people" is 5.
func ParseCount(raw json.RawMessage) (int, error) {
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		if n > math.MaxInt32 || n < math.MinInt32 {
			return 0, fmt.Errorf("%w: volunteersNeeded out of range", ErrInvalidInput)
		}
		return int(n), nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, fmt.Errorf("%w: volunteersNeeded must be a number", ErrInvalidInput)
	}
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && (unicode.IsDigit(rune(s[end])) || (end == 0 && (s[0] == '-' || s[0] == '+'))) {
		end++
	}
	v, err := strconv.ParseInt(s[:end], 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: volunteersNeeded %q is not an integer", ErrInvalidInput, s)
	}
	return int(v), nil
}
