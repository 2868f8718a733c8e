package model

import (
	"fmt"
	"sort"
	"strings"
)

// Violation codes reported per field.
const (
	CodeRequired   = "required"
	CodeNumeric    = "not_numeric"
	CodeNegative   = "negative"
	CodeUnknown    = "unknown_value"
	CodeNotAllowed = "not_allowed"
)

// Violations maps a field name to the reason it was rejected.
// A non-empty Violations value is also an error.
type Violations map[string]string

// Add records a violation for field unless one is already present.
func (v Violations) Add(field, code string) {
	if _, ok := v[field]; !ok {
		v[field] = code
	}
}

// Empty reports whether no violations were recorded.
func (v Violations) Empty() bool { return len(v) == 0 }

// Fields returns the violating field names sorted.
func (v Violations) Fields() []string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

func (v Violations) Error() string {
	parts := make([]string, 0, len(v))
	for _, f := range v.Fields() {
		parts = append(parts, fmt.Sprintf("%s: %s", f, v[f]))
	}
	return "invalid row: " + strings.Join(parts, "; ")
}

// Err returns v as an error, or nil when empty.
func (v Violations) Err() error {
	if v.Empty() {
		return nil
	}
	return v
}
