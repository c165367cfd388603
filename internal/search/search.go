// Package search implements the substring matcher behind the full-text
// transaction search box.
package search

import "strings"

// FieldReader exposes named field values to the matcher. Implementations
// return nil for unknown field names.
type FieldReader interface {
	Field(name string) any
}

// Search returns the records matching term over the given field set.
//
// A record is kept when at least one field matches. In normal mode a field
// matches when its string value contains the lower-cased term. A leading "-"
// switches to exclude mode, where the per-field predicate is negated: a
// record is kept when at least one field does NOT contain the stripped term.
// Note that this is weaker than "no field contains the term"; the behavior
// is kept intentionally.
//
// Non-string field values never contain the term.
func Search[T FieldReader](term string, records []T, fields []string) []T {
	exclude := strings.HasPrefix(term, "-")
	if exclude {
		term = term[1:]
	}
	term = strings.ToLower(term)

	var out []T
	for _, rec := range records {
		if matches(rec, term, fields, exclude) {
			out = append(out, rec)
		}
	}
	return out
}

func matches[T FieldReader](rec T, term string, fields []string, exclude bool) bool {
	for _, f := range fields {
		contains := false
		if s, ok := rec.Field(f).(string); ok {
			contains = strings.Contains(strings.ToLower(s), term)
		}
		if exclude != contains {
			return true
		}
	}
	return false
}
