// Package extractor pulls field values out of nested message payloads using
// dot-notation paths.
package extractor

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Extractor reads values from decoded JSON structures.
type Extractor struct{}

// New creates a new Extractor
func New() *Extractor {
	return &Extractor{}
}

// Extract reads a value from data using a dot-notation path.
// Supported syntax:
// - Simple path: "description", "transaction.merchant.name"
// - Array access: "rows[0]", "data.items[2].text"
// A missing key or out-of-range index returns (nil, nil) rather than an error.
func (e *Extractor) Extract(data any, path string) (any, error) {
	if path == "" {
		return data, nil
	}

	current := data
	for _, seg := range strings.Split(path, ".") {
		if current == nil {
			return nil, nil
		}
		var err error
		current, err = e.extractSegment(current, seg)
		if err != nil {
			return nil, err
		}
	}

	return current, nil
}

// ExtractString extracts a value and converts it to a string
func (e *Extractor) ExtractString(data any, path string) (*string, error) {
	value, err := e.Extract(data, path)
	if err != nil {
		return nil, err
	}
	if value == nil {
		return nil, nil
	}

	s := toString(value)
	return &s, nil
}

func (e *Extractor) extractSegment(data any, seg string) (any, error) {
	key := seg
	index := -1

	if open := strings.Index(seg, "["); open != -1 && strings.HasSuffix(seg, "]") {
		key = seg[:open]
		i, err := strconv.Atoi(seg[open+1 : len(seg)-1])
		if err != nil {
			return nil, fmt.Errorf("invalid array index in path segment %q", seg)
		}
		index = i
	}

	value := data
	if key != "" {
		m, ok := data.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("cannot extract key %q from type %T", key, data)
		}
		value, ok = m[key]
		if !ok {
			return nil, nil
		}
	}

	if index >= 0 {
		arr, ok := value.([]any)
		if !ok {
			return nil, fmt.Errorf("expected array for index access, got %T", value)
		}
		if index >= len(arr) {
			return nil, nil
		}
		return arr[index], nil
	}

	return value, nil
}

// toString converts any value to a string
func toString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return fmt.Sprintf("%v", val)
	case int:
		return fmt.Sprintf("%d", val)
	case int64:
		return fmt.Sprintf("%d", val)
	case bool:
		return fmt.Sprintf("%t", val)
	case nil:
		return ""
	default:
		b, _ := json.Marshal(v)
		return string(b)
	}
}

// FromJSON parses JSON data and returns it as a map
func FromJSON(data json.RawMessage) (map[string]any, error) {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}
