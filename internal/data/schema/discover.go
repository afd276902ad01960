package schema

import (
	"fmt"
	"sort"

	"github.com/tidwall/gjson"

	"github.com/penwyp/go-relation-insight/internal/data/parser"
	"github.com/penwyp/go-relation-insight/internal/util"
)

// Value kinds recorded per field path.
const (
	KindString  = "string"
	KindNumber  = "number"
	KindBoolean = "boolean"
	KindNull    = "null"
	KindObject  = "object"
	KindArray   = "array"
	KindMissing = "missing"
)

const maxExamples = 3

// FieldInfo records everything observed for one dotted field path across the
// sampled records.
type FieldInfo struct {
	Path     string          `json:"path"`
	Kinds    map[string]bool `json:"kinds"`
	Count    int             `json:"count"` // records in which the path occurred
	Examples []string        `json:"examples,omitempty"`
}

// Problematic reports whether the field needs flexible decoding: more than
// one value kind was observed for it across the sample.
func (f *FieldInfo) Problematic() bool {
	kinds := 0
	for k := range f.Kinds {
		if k != KindMissing {
			kinds++
		}
	}
	return kinds > 1
}

// KindList returns the observed kinds sorted for stable output.
func (f *FieldInfo) KindList() []string {
	kinds := make([]string, 0, len(f.Kinds))
	for k := range f.Kinds {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// Report is the outcome of sampling an export payload.
type Report struct {
	SampledRecords int                   `json:"sampledRecords"`
	Fields         map[string]*FieldInfo `json:"fields"`
}

// FieldPaths returns every observed path, sorted.
func (r *Report) FieldPaths() []string {
	paths := make([]string, 0, len(r.Fields))
	for p := range r.Fields {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// ProblematicFields returns the sorted paths that need flexible decoding.
func (r *Report) ProblematicFields() []string {
	var paths []string
	for p, f := range r.Fields {
		if f.Problematic() {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)
	return paths
}

// AnalyzeSample scans up to sampleLimit records of an export payload (the JS
// wrapper may be present or already stripped) and records, per dotted field
// path, the set of value kinds seen, an occurrence count, and a few example
// values. Anomalies are recorded, never raised: a field absent from some
// records gains the "missing" kind. Work is bounded by sampleLimit and does
// not scale with the full payload size.
func AnalyzeSample(raw []byte, sampleLimit int) (*Report, error) {
	payload, err := parser.ExtractArrayPayload(raw)
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(payload) {
		return nil, fmt.Errorf("%w: payload is not valid JSON", parser.ErrMalformedInput)
	}

	root := gjson.ParseBytes(payload)
	if !root.IsArray() {
		return nil, fmt.Errorf("%w: payload is not a JSON array", parser.ErrMalformedInput)
	}

	report := &Report{Fields: make(map[string]*FieldInfo)}

	root.ForEach(func(_, record gjson.Result) bool {
		if sampleLimit > 0 && report.SampledRecords >= sampleLimit {
			return false
		}
		report.SampledRecords++

		seen := make(map[string]bool)
		visit(record, "", report, seen)
		return true
	})

	// A path absent from some sampled records is itself an observation.
	for _, info := range report.Fields {
		if info.Count < report.SampledRecords {
			info.Kinds[KindMissing] = true
		}
	}

	util.LogDebugf("Schema discovery sampled %d records, %d field paths, %d problematic",
		report.SampledRecords, len(report.Fields), len(report.ProblematicFields()))
	return report, nil
}

// visit walks one record's fields depth-first, recording kind and example
// per dotted path. Arrays are recorded as a single path; their elements are
// not expanded, keeping path cardinality bounded.
func visit(value gjson.Result, prefix string, report *Report, seen map[string]bool) {
	if value.Type != gjson.JSON || !value.IsObject() {
		return
	}

	value.ForEach(func(key, child gjson.Result) bool {
		path := key.String()
		if prefix != "" {
			path = prefix + "." + path
		}

		info := report.Fields[path]
		if info == nil {
			info = &FieldInfo{Path: path, Kinds: make(map[string]bool)}
			report.Fields[path] = info
		}
		info.Kinds[kindOf(child)] = true
		if !seen[path] {
			seen[path] = true
			info.Count++
		}
		if len(info.Examples) < maxExamples {
			info.Examples = append(info.Examples, util.Truncate(child.Raw, 80))
		}

		if child.IsObject() {
			visit(child, path, report, seen)
		}
		return true
	})
}

func kindOf(value gjson.Result) string {
	switch value.Type {
	case gjson.String:
		return KindString
	case gjson.Number:
		return KindNumber
	case gjson.True, gjson.False:
		return KindBoolean
	case gjson.Null:
		return KindNull
	default:
		if value.IsArray() {
			return KindArray
		}
		return KindObject
	}
}
