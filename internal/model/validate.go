// Package model defines the persisted record kinds (Company, Unit, User,
// Asset) together with their declarative validation schemas. Each model
// exposes its constraints as a table of field rules consumed by a generic
// validator, so the rules stay independent of the storage engine.
package model

import (
	"fmt"
	"strings"
)

// ValidationError reports a record that violates its declared schema.
// Handlers translate it into an HTTP 400 response.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Msg)
}

// Rule declares the constraint set for a single field. Min and Max bound
// numeric fields inclusively; Enum restricts string fields to a fixed set.
type Rule struct {
	Field    string
	Required bool
	Min      *float64
	Max      *float64
	Enum     []string
}

func numPtr(f float64) *float64 { return &f }

// validate checks every rule against the supplied field values. A nil or
// zero value fails the Required constraint; range and enum checks only run
// when a value is present.
func validate(fields map[string]any, rules []Rule) error {
	for _, r := range rules {
		v, present := fields[r.Field]
		if !hasValue(v) {
			present = false
		}
		if !present {
			if r.Required {
				return &ValidationError{Field: r.Field, Msg: "is required"}
			}
			continue
		}
		if err := checkRule(r, v); err != nil {
			return err
		}
	}
	return nil
}

// validatePartial checks only the fields present in changes. It is used on
// update paths, where absent fields keep their stored values.
func validatePartial(changes map[string]any, rules []Rule) error {
	for _, r := range rules {
		v, ok := changes[r.Field]
		if !ok {
			continue
		}
		if !hasValue(v) {
			if r.Required {
				return &ValidationError{Field: r.Field, Msg: "is required"}
			}
			continue
		}
		if err := checkRule(r, v); err != nil {
			return err
		}
	}
	return nil
}

func checkRule(r Rule, v any) error {
	if r.Min != nil || r.Max != nil {
		n, ok := asNumber(v)
		if !ok {
			return &ValidationError{Field: r.Field, Msg: "must be a number"}
		}
		if r.Min != nil && n < *r.Min {
			return &ValidationError{Field: r.Field, Msg: fmt.Sprintf("must be at least %v", *r.Min)}
		}
		if r.Max != nil && n > *r.Max {
			return &ValidationError{Field: r.Field, Msg: fmt.Sprintf("must be at most %v", *r.Max)}
		}
	}
	if len(r.Enum) > 0 {
		s, ok := v.(string)
		if !ok || !contains(r.Enum, s) {
			return &ValidationError{
				Field: r.Field,
				Msg:   fmt.Sprintf("must be one of [%s]", strings.Join(r.Enum, ", ")),
			}
		}
	}
	return nil
}

// hasValue reports whether v counts as a supplied value. Empty strings,
// nil pointers and zero ids fail Required the same way missing keys do.
func hasValue(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case *int64:
		return t != nil
	case *bool:
		return t != nil
	case *float64:
		return t != nil
	case int64:
		return t != 0
	default:
		return true
	}
}

func asNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case *float64:
		if t == nil {
			return 0, false
		}
		return *t, true
	default:
		return 0, false
	}
}

func contains(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}
