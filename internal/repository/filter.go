package repository

import (
	"sort"
	"strings"
)

// Filter is a set of field = value constraints combined with AND. Keys use
// the public field names; each repository maps them onto its columns
// through a whitelist, so arbitrary client-supplied keys can never reach
// the SQL text.
type Filter map[string]any

// With returns a copy of the filter with one additional constraint,
// overriding any value the filter already carried for that field.
func (f Filter) With(field string, value any) Filter {
	out := make(Filter, len(f)+1)
	for k, v := range f {
		out[k] = v
	}
	out[field] = value
	return out
}

// whereClause renders the filter into a " WHERE ..." fragment plus its
// arguments. Keys are sorted so the generated SQL is deterministic. An
// empty filter yields an empty fragment. A key missing from the whitelist
// returns UnknownFieldError.
func whereClause(f Filter, cols map[string]string) (string, []any, error) {
	if len(f) == 0 {
		return "", nil, nil
	}
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	args := make([]any, 0, len(keys))
	for i, k := range keys {
		col, ok := cols[k]
		if !ok {
			return "", nil, &UnknownFieldError{Field: k}
		}
		if i == 0 {
			b.WriteString(" WHERE ")
		} else {
			b.WriteString(" AND ")
		}
		b.WriteString(col)
		b.WriteString(" = ?")
		args = append(args, f[k])
	}
	return b.String(), args, nil
}

// setClause renders an update payload into a "SET ..." fragment plus its
// arguments, again via a per-repository whitelist.
func setClause(changes map[string]any, cols map[string]string) (string, []any, error) {
	keys := make([]string, 0, len(changes))
	for k := range changes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	args := make([]any, 0, len(keys))
	for i, k := range keys {
		col, ok := cols[k]
		if !ok {
			return "", nil, &UnknownFieldError{Field: k}
		}
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(col)
		b.WriteString(" = ?")
		args = append(args, changes[k])
	}
	return b.String(), args, nil
}

// nullable turns Go zero values into SQL NULL for optional columns, so
// unique indexes on optional fields ignore absent values.
func nullable(v any) any {
	switch t := v.(type) {
	case string:
		if t == "" {
			return nil
		}
	case []byte:
		if len(t) == 0 {
			return nil
		}
	}
	return v
}
