package mapping

import (
	"strings"
	"time"
	"unicode"

	"github.com/tidwall/gjson"
)

// Field maps one canonical camelCase key to the keys the backend emits for it.
// Backend is the PascalCase key used when writing.
type Field struct {
	Canonical string
	Backend   string
	Aliases   []string
}

// Keys returns every key the field is read from, canonical first
func (f Field) Keys() []string {
	keys := []string{f.Canonical}
	if f.Backend != f.Canonical {
		keys = append(keys, f.Backend)
	}
	return append(keys, f.Aliases...)
}

// Table is a mapping applied uniformly at the API boundary
type Table struct {
	fields    map[string]Field
	byBackend map[string]string
}

// NewTable builds a table. A field without an explicit Backend key gets the
// PascalCase form of its canonical key; aliases are listed as-is.
func NewTable(fields ...Field) *Table {
	t := &Table{
		fields:    make(map[string]Field, len(fields)),
		byBackend: make(map[string]string, len(fields)),
	}
	for _, f := range fields {
		if f.Backend == "" {
			f.Backend = Pascal(f.Canonical)
		}
		t.fields[f.Canonical] = f
		for _, key := range f.Keys() {
			t.byBackend[key] = f.Canonical
		}
	}
	return t
}

// Get reads the canonical field from whichever key the record uses
func (t *Table) Get(r gjson.Result, canonical string) gjson.Result {
	f, ok := t.fields[canonical]
	if !ok {
		return r.Get(canonical)
	}
	for _, key := range f.Keys() {
		if v := r.Get(key); v.Exists() && v.Type != gjson.Null {
			return v
		}
	}
	return gjson.Result{}
}

// BackendKey returns the key a canonical field is written under
func (t *Table) BackendKey(canonical string) string {
	if f, ok := t.fields[canonical]; ok {
		return f.Backend
	}
	return Pascal(canonical)
}

// CanonicalKey returns the canonical name of a backend key
func (t *Table) CanonicalKey(backend string) (string, bool) {
	canonical, ok := t.byBackend[backend]
	return canonical, ok
}

// String reads a string field
func (t *Table) String(r gjson.Result, canonical string) string {
	return strings.TrimSpace(t.Get(r, canonical).String())
}

// Int reads an integer field, accepting numeric strings
func (t *Table) Int(r gjson.Result, canonical string) int64 {
	return t.Get(r, canonical).Int()
}

// Float reads a number field, accepting numeric strings
func (t *Table) Float(r gjson.Result, canonical string) float64 {
	return t.Get(r, canonical).Float()
}

// Bool reads a boolean field
func (t *Table) Bool(r gjson.Result, canonical string) bool {
	return t.Get(r, canonical).Bool()
}

// Time reads a timestamp field
func (t *Table) Time(r gjson.Result, canonical string) time.Time {
	return ParseTime(t.Get(r, canonical).String())
}

// Has reports whether the record carries the field under any key
func (t *Table) Has(r gjson.Result, canonical string) bool {
	return t.Get(r, canonical).Exists()
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.9999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTime parses the timestamp formats the backend emits. Timestamps
// without a zone are taken as UTC; unparseable values yield the zero time.
func ParseTime(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timeLayouts {
		if ts, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return ts
		}
	}
	return time.Time{}
}

// Pascal upper-cases the first letter of a camelCase key
func Pascal(key string) string {
	if key == "" {
		return key
	}
	runes := []rune(key)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
