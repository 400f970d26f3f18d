package entity

import (
	"math"
	"strconv"
	"strings"
)

// SearchResponse is the envelope returned by the DEX Screener search endpoint.
// Pairs stay unvalidated until the normalizer has run over them.
type SearchResponse struct {
	SchemaVersion string    `json:"schemaVersion"`
	Pairs         []RawPair `json:"pairs"`
}

// RawPair is one unvalidated pair record as received from DEX Screener.
// It is never mutated after decoding; fields are read through the
// optional extractors below, which report absence instead of failing.
type RawPair map[string]any

// Lookup walks a nested path of object keys and returns the value found at the end.
func (p RawPair) Lookup(path ...string) (any, bool) {
	if p == nil || len(path) == 0 {
		return nil, false
	}
	var current any = map[string]any(p)
	for _, key := range path {
		obj, ok := asObject(current)
		if !ok {
			return nil, false
		}
		current, ok = obj[key]
		if !ok {
			return nil, false
		}
	}
	if current == nil {
		return nil, false
	}
	return current, true
}

// String returns a non-empty string at path.
func (p RawPair) String(path ...string) (string, bool) {
	v, ok := p.Lookup(path...)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", false
	}
	return s, true
}

// Number returns a finite, non-negative number at path. DEX Screener sends
// some prices as strings ("priceUsd"), so numeric strings are accepted too.
func (p RawPair) Number(path ...string) (float64, bool) {
	v, ok := p.Lookup(path...)
	if !ok {
		return 0, false
	}

	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}

	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0, false
	}
	return f, true
}

// Map returns the nested object at path.
func (p RawPair) Map(path ...string) (RawPair, bool) {
	v, ok := p.Lookup(path...)
	if !ok {
		return nil, false
	}
	obj, ok := asObject(v)
	if !ok {
		return nil, false
	}
	return RawPair(obj), true
}

func asObject(v any) (map[string]any, bool) {
	switch obj := v.(type) {
	case map[string]any:
		return obj, true
	case RawPair:
		return obj, true
	default:
		return nil, false
	}
}
