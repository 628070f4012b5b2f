// Package repository contains the persistence layer: one repository per
// record kind, raw SQL against MySQL, and the error values higher layers
// use to classify failures. Repository errors propagate unchanged through
// the service layer; handlers are the single point that maps them to HTTP
// status codes.
package repository

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// ErrNotFound is returned when a lookup matches no row. Handlers translate
// it into a 200 response with an empty object, per the API convention.
var ErrNotFound = errors.New("record not found")

// DuplicateError is returned when an insert or update violates a unique
// index. Its message follows the "Duplicate unique field ..." wording that
// clients already parse.
type DuplicateError struct {
	Field string
}

func (e *DuplicateError) Error() string {
	return "Duplicate unique field " + e.Field
}

// UnknownFieldError is returned when a filter or update names a field that
// does not exist on the record kind. Handlers translate it into a 400.
type UnknownFieldError struct {
	Field string
}

func (e *UnknownFieldError) Error() string {
	return "unknown field " + e.Field
}

// translate rewrites MySQL duplicate-key errors (1062) into DuplicateError
// and passes everything else through untouched.
func translate(err error) error {
	if err == nil {
		return nil
	}
	var me *mysql.MySQLError
	if errors.As(err, &me) && me.Number == 1062 {
		return &DuplicateError{Field: dupField(me.Message)}
	}
	return err
}

// dupField extracts the violated index name from a 1062 message, e.g.
// "Duplicate entry 'x' for key 'users.email'" yields "email". Unique
// indexes are named after their column in the schema, so the index name is
// the public field name.
func dupField(msg string) string {
	const marker = "for key "
	i := strings.LastIndex(msg, marker)
	if i < 0 {
		return "value"
	}
	key := strings.Trim(msg[i+len(marker):], "'\" ")
	if j := strings.LastIndex(key, "."); j >= 0 {
		key = key[j+1:]
	}
	if key == "" {
		return "value"
	}
	return key
}
