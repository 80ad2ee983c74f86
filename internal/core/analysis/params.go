package analysis

import (
	"encoding/json"
	"math"
	"slices"
	"strconv"
	"strings"
)

type ParamKind string

const (
	KindNumber      ParamKind = "number"
	KindSelect      ParamKind = "select"
	KindMultiSelect ParamKind = "multiselect"
	KindBoolean     ParamKind = "boolean"
	KindNodeSelect  ParamKind = "node_select"
)

// Auto is the node_select value meaning "pick the node for me".
const Auto = "auto"

type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// ParamSpec declares one recognised option of an analyzer: its kind, default
// and the range or choices it accepts.
type ParamSpec struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Kind        ParamKind `json:"type"`
	Default     any       `json:"default"`
	Min         *float64  `json:"min,omitempty"`
	Max         *float64  `json:"max,omitempty"`
	Options     []Option  `json:"options,omitempty"`
	Description string    `json:"description,omitempty"`
}

// Bound is a helper for filling ParamSpec.Min and ParamSpec.Max.
func Bound(v float64) *float64 {
	return &v
}

// Params is the loosely typed parameter mapping that crosses the API boundary.
type Params map[string]any

// Resolve returns a copy of raw in which every declared parameter holds a value
// of the declared kind: absent or malformed values become the default, numbers
// are clamped into range and unknown choices fall back to the default. Keys no
// spec mentions are carried through untouched.
func Resolve(specs []ParamSpec, raw Params) Params {
	out := make(Params, len(specs)+len(raw))
	for k, v := range raw {
		out[k] = v
	}
	for _, spec := range specs {
		v, ok := raw[spec.ID]
		if !ok || v == nil {
			out[spec.ID] = spec.Default
			continue
		}
		out[spec.ID] = spec.coerce(v)
	}
	return out
}

func (s ParamSpec) coerce(v any) any {
	switch s.Kind {
	case KindNumber:
		f, ok := toFloat(v)
		if !ok {
			return s.Default
		}
		if s.Min != nil && f < *s.Min {
			f = *s.Min
		}
		if s.Max != nil && f > *s.Max {
			f = *s.Max
		}
		return f
	case KindBoolean:
		b, ok := toBool(v)
		if !ok {
			return s.Default
		}
		return b
	case KindSelect:
		str, ok := v.(string)
		if !ok || !s.allows(str) {
			return s.Default
		}
		return str
	case KindMultiSelect:
		items, ok := toStrings(v)
		if !ok {
			return s.Default
		}
		kept := make([]string, 0, len(items))
		for _, item := range items {
			if s.allows(item) && !slices.Contains(kept, item) {
				kept = append(kept, item)
			}
		}
		return kept
	case KindNodeSelect:
		str, ok := v.(string)
		if !ok || str == "" {
			return s.Default
		}
		return str
	}
	return v
}

func (s ParamSpec) allows(value string) bool {
	if len(s.Options) == 0 {
		return true
	}
	for _, o := range s.Options {
		if o.Value == value {
			return true
		}
	}
	return false
}

func (p Params) Float(key string) float64 {
	f, _ := toFloat(p[key])
	return f
}

func (p Params) Int(key string) int {
	return int(math.Floor(p.Float(key)))
}

func (p Params) String(key string) string {
	s, _ := p[key].(string)
	return s
}

func (p Params) Bool(key string) bool {
	b, _ := toBool(p[key])
	return b
}

func (p Params) Strings(key string) []string {
	s, _ := toStrings(p[key])
	return s
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, !math.IsNaN(n) && !math.IsInf(n, 0)
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil && !math.IsNaN(f) && !math.IsInf(f, 0)
	}
	return 0, false
}

func toBool(v any) (bool, bool) {
	switch b := v.(type) {
	case bool:
		return b, true
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(b))
		return parsed, err == nil
	}
	return false, false
}

func toStrings(v any) ([]string, bool) {
	switch items := v.(type) {
	case []string:
		return items, true
	case []any:
		out := make([]string, 0, len(items))
		for _, item := range items {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	case string:
		if strings.TrimSpace(items) == "" {
			return []string{}, true
		}
		parts := strings.Split(items, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts, true
	}
	return nil, false
}
