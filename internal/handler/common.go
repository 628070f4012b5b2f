// Package handler contains the HTTP layer: one handler per resource, the
// role-based query scoping policy and the error-to-status classification.
// Handlers are the single point where errors become status codes; every
// operation responds, so the HTTP cycle always terminates.
package handler

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/dmoreira/asset-admin/internal/model"
	"github.com/dmoreira/asset-admin/internal/repository"
	"github.com/dmoreira/asset-admin/internal/utils"
)

// parseError marks a malformed numeric input (page, size, id, references).
// It classifies as a 400 like validation errors do.
type parseError struct {
	field string
	value string
}

func (e *parseError) Error() string {
	return fmt.Sprintf("%s %q is invalid, it must be a non-negative integer", e.field, e.value)
}

// parseNumber parses a non-negative integer query value, returning def
// when the value is absent.
func parseNumber(field, value string, def int64) (int64, error) {
	if value == "" {
		if def < 0 {
			return 0, &parseError{field: field, value: value}
		}
		return def, nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil || n < 0 {
		return 0, &parseError{field: field, value: value}
	}
	return n, nil
}

// pagination extracts page (default 0) and size (default 10).
func pagination(c echo.Context) (page, size int, err error) {
	p, err := parseNumber("page", c.QueryParam("page"), 0)
	if err != nil {
		return 0, 0, err
	}
	s, err := parseNumber("size", c.QueryParam("size"), 10)
	if err != nil {
		return 0, 0, err
	}
	return int(p), int(s), nil
}

// parseID extracts the :id path parameter.
func parseID(c echo.Context) (int64, error) {
	return parseNumber("id", c.Param("id"), -1)
}

// currentActor returns the authenticated actor, or nil on routes that run
// without the auth middleware.
func currentActor(c echo.Context) *utils.Claims {
	actor, _ := c.Get(utils.ActorKey).(*utils.Claims)
	return actor
}

// errorStatus classifies an error per the taxonomy: schema violations,
// duplicates, unknown filter fields and malformed numbers are client
// errors; everything else is unexpected.
func errorStatus(err error) int {
	var ve *model.ValidationError
	var de *repository.DuplicateError
	var ue *repository.UnknownFieldError
	var pe *parseError
	if errors.As(err, &ve) || errors.As(err, &de) || errors.As(err, &ue) || errors.As(err, &pe) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// respondError logs the failure and writes the classified response. Client
// errors surface their message; unexpected errors get a generic body.
func respondError(c echo.Context, err error) error {
	log.Printf("[ERROR] %v", err)
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		return c.JSON(status, "internal server error")
	}
	return c.JSON(status, err.Error())
}

// emptyObject is the body used both for missing records and for records
// hidden by the scoping policy.
func emptyObject(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{})
}

// bindChanges reads a partial-update payload into a field map.
func bindChanges(c echo.Context) (map[string]any, error) {
	changes := map[string]any{}
	if err := c.Bind(&changes); err != nil {
		return nil, &model.ValidationError{Field: "body", Msg: "must be a JSON object"}
	}
	delete(changes, "id")
	return changes, nil
}
