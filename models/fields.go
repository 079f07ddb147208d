package models

import (
	"encoding/json"
	"strings"
)

// TagList accepts either a JSON array of strings or a single comma-joined
// string on input. It always renders as a sequence.
type TagList []string

func (t *TagList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*t = NormalizeTags(list)
		return nil
	}
	var joined string
	if err := json.Unmarshal(data, &joined); err != nil {
		return err
	}
	*t = NormalizeTags(strings.Split(joined, ","))
	return nil
}

// NormalizeTags trims whitespace, drops empties and deduplicates while
// keeping first-seen order. Relationship tags are sets, not sequences.
func NormalizeTags(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, tag := range raw {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

// JSONField holds a structured JSON-bearing value (ingredients, affiliate
// links, social media links) in its serialized form. Input may be
// structured data or a pre-serialized string; either way the stored form
// is the serialized text.
type JSONField string

func (f *JSONField) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = JSONField(s)
		return nil
	}
	*f = JSONField(data)
	return nil
}

// Decode parses the stored text back to structured data. A value that does
// not parse is passed through as the raw string; rendering never fails on
// a malformed stored field.
func (f JSONField) Decode() interface{} {
	return DecodeJSONString(string(f))
}

func DecodeJSONString(s string) interface{} {
	if s == "" {
		return nil
	}
	var v interface{}
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return s
	}
	return v
}
