package model

import (
	"strconv"
	"strings"
)

// RawItem is a single decoded JSON object captured from a TikTok endpoint or
// an embedded page-state blob. TikTok's API surface is unversioned and
// changes shape frequently, so every accessor tolerates missing keys and
// wrong types and returns a documented zero value instead of panicking:
// "" for strings, 0 for numbers, false for booleans, nil for nested values.
type RawItem map[string]any

// String returns the string value under key, or "" when the key is absent
// or holds a non-string. Numeric values are formatted, since TikTok flips
// some ID fields between string and number across frontend releases.
func (r RawItem) String(key string) string {
	switch v := r[key].(type) {
	case string:
		return v
	case float64:
		// JSON numbers decode as float64; IDs and counts are integral.
		return strconv.FormatInt(int64(v), 10)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

// Int returns the integer value under key. Numeric-looking strings such as
// "1234" are coerced; anything else ("N/A", objects, missing keys) yields 0.
func (r RawItem) Int(key string) int64 {
	switch v := r[key].(type) {
	case float64:
		return int64(v)
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0
		}
		return n
	case bool:
		if v {
			return 1
		}
		return 0
	default:
		return 0
	}
}

// Bool returns the boolean value under key. Numeric values follow the API's
// 0/1 convention; everything else yields false.
func (r RawItem) Bool(key string) bool {
	switch v := r[key].(type) {
	case bool:
		return v
	case float64:
		return v != 0
	case string:
		return v == "true" || v == "1"
	default:
		return false
	}
}

// Map returns the nested object under key, or nil when the key is absent or
// holds a non-object. The returned RawItem is safe to index further.
func (r RawItem) Map(key string) RawItem {
	if m, ok := r[key].(map[string]any); ok {
		return RawItem(m)
	}
	return nil
}

// List returns the array of objects under key. Non-object elements are
// skipped; an absent or malformed key yields nil.
func (r RawItem) List(key string) []RawItem {
	arr, ok := r[key].([]any)
	if !ok {
		return nil
	}
	items := make([]RawItem, 0, len(arr))
	for _, el := range arr {
		if m, ok := el.(map[string]any); ok {
			items = append(items, RawItem(m))
		}
	}
	return items
}

// Strings returns the array of strings under key, skipping non-strings.
func (r RawItem) Strings(key string) []string {
	arr, ok := r[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(arr))
	for _, el := range arr {
		if s, ok := el.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Has reports whether key is present at all, regardless of its value.
func (r RawItem) Has(key string) bool {
	_, ok := r[key]
	return ok
}
