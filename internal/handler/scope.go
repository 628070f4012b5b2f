package handler

import (
	"github.com/dmoreira/asset-admin/internal/model"
	"github.com/dmoreira/asset-admin/internal/repository"
	"github.com/dmoreira/asset-admin/internal/utils"
)

// Access scoping policy: pure functions that narrow a query based on the
// actor's role and company. An actor with an assigned company is pinned to
// it; any client-supplied company filter is overridden. Actors without a
// company (admins) may filter by an explicit company parameter.

// companyScope applies the tenant constraint under the given field name
// ("company" for units/assets, "id" for the companies resource itself).
func companyScope(actor *utils.Claims, field, companyParam string, f repository.Filter) (repository.Filter, error) {
	if actor != nil && actor.Company != 0 {
		return f.With(field, actor.Company), nil
	}
	if companyParam != "" {
		n, err := parseNumber("company", companyParam, -1)
		if err != nil {
			return nil, err
		}
		return f.With(field, n), nil
	}
	return f, nil
}

// assetScope is companyScope plus the employee restriction: an employee
// only ever sees their own assets, regardless of any user filter supplied
// by the client.
func assetScope(actor *utils.Claims, companyParam string, f repository.Filter) (repository.Filter, error) {
	f, err := companyScope(actor, "company", companyParam, f)
	if err != nil {
		return nil, err
	}
	if actor != nil && actor.Role == model.RoleEmployee {
		f = f.With("user", actor.UserID)
	}
	return f, nil
}

// visibleCompany reports whether a record owned by recordCompany may be
// shown to the actor. Mismatches are hidden, not rejected: the caller
// responds with an empty object.
func visibleCompany(actor *utils.Claims, recordCompany int64) bool {
	return actor == nil || actor.Company == 0 || actor.Company == recordCompany
}
