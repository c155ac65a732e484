package metadata

import (
	"fmt"
	"strings"
)

// Well-known record keys.
const (
	KeyFilename = "filename"
	KeyTitle    = "title"
	KeyYear     = "year"

	// DefaultTitle is assigned to records without a title before grouping.
	DefaultTitle = "Untitled"
)

// Record is an insertion-ordered mapping from key to Value.
//
// The exported methods double as the field accessors available to tag page
// templates: {{ .Title }}, {{ .Filename }}, {{ .Get "author" }}.
type Record struct {
	keys   []string
	fields map[string]Value
}

// NewRecord returns an empty record.
func NewRecord() *Record {
	return &Record{fields: make(map[string]Value)}
}

// Set stores v under key. A new key is appended; an existing key keeps its position.
func (r *Record) Set(key string, v Value) {
	if r.fields == nil {
		r.fields = make(map[string]Value)
	}
	if _, ok := r.fields[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.fields[key] = v
}

// Lookup returns the value stored under key.
func (r *Record) Lookup(key string) (Value, bool) {
	if r == nil {
		return Value{}, false
	}
	v, ok := r.fields[key]
	return v, ok
}

// Has reports whether key is present (even when its value is null).
func (r *Record) Has(key string) bool {
	_, ok := r.Lookup(key)
	return ok
}

// Get returns the value under key, failing when the key is absent so that a
// template referencing an unknown field stops rendering.
func (r *Record) Get(key string) (Value, error) {
	v, ok := r.Lookup(key)
	if !ok {
		return Value{}, fmt.Errorf("record %q has no field %q", r.Filename(), key)
	}
	return v, nil
}

// Text returns the display form of key, or "" when absent.
func (r *Record) Text(key string) string {
	v, _ := r.Lookup(key)
	return v.String()
}

// Keys returns the keys in insertion order.
func (r *Record) Keys() []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.keys...)
}

// Len returns the number of keys.
func (r *Record) Len() int {
	if r == nil {
		return 0
	}
	return len(r.keys)
}

// Filename returns the document path the record was extracted from.
func (r *Record) Filename() string { return r.Text(KeyFilename) }

// Title returns the document title.
func (r *Record) Title() string { return r.Text(KeyTitle) }

// Year returns the year value, null when absent.
func (r *Record) Year() Value {
	v, _ := r.Lookup(KeyYear)
	return v
}

// Map converts the record to a plain map.
func (r *Record) Map() map[string]any {
	if r == nil {
		return nil
	}
	out := make(map[string]any, len(r.keys))
	for _, k := range r.keys {
		out[k] = r.fields[k].Interface()
	}
	return out
}

func (r *Record) String() string {
	if r == nil {
		return "{}"
	}
	parts := make([]string, 0, len(r.keys))
	for _, k := range r.keys {
		parts = append(parts, k+": "+r.fields[k].String())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
