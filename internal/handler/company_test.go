package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmoreira/asset-admin/internal/model"
	"github.com/dmoreira/asset-admin/internal/repository"
	"github.com/dmoreira/asset-admin/internal/service"
	"github.com/dmoreira/asset-admin/internal/utils"
)

// fakeCompanies is an in-memory service.CompanyStore mirroring the
// repository contract: creates and updates validate, lookups miss with
// repository.ErrNotFound.
type fakeCompanies struct {
	records map[int64]*model.Company
	nextID  int64
}

func newFakeCompanies(records ...*model.Company) *fakeCompanies {
	s := &fakeCompanies{records: map[int64]*model.Company{}}
	for _, r := range records {
		if err := s.Create(context.Background(), r); err != nil {
			panic(err)
		}
	}
	return s
}

func (s *fakeCompanies) Create(_ context.Context, c *model.Company) error {
	if err := c.Validate(); err != nil {
		return err
	}
	s.nextID++
	c.ID = s.nextID
	cp := *c
	s.records[c.ID] = &cp
	return nil
}

func (s *fakeCompanies) GetByID(_ context.Context, id int64) (*model.Company, error) {
	c, ok := s.records[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *fakeCompanies) matching(f repository.Filter) []*model.Company {
	var out []*model.Company
	for _, c := range s.records {
		ok := true
		for k, v := range f {
			switch k {
			case "id":
				if c.ID != asID(v) {
					ok = false
				}
			case "name":
				if c.Name != v {
					ok = false
				}
			case "cnpj":
				if c.CNPJ != v {
					ok = false
				}
			}
		}
		if ok {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func asID(v any) int64 {
	switch t := v.(type) {
	case int64:
		return t
	case int:
		return int64(t)
	case float64:
		return int64(t)
	}
	return 0
}

func (s *fakeCompanies) Find(_ context.Context, f repository.Filter, limit, offset int) ([]*model.Company, error) {
	all := s.matching(f)
	if offset >= len(all) {
		return []*model.Company{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (s *fakeCompanies) Count(_ context.Context, f repository.Filter) (int64, error) {
	return int64(len(s.matching(f))), nil
}

func (s *fakeCompanies) Update(_ context.Context, id int64, changes map[string]any) (*model.Company, error) {
	if err := model.ValidateCompanyChanges(changes); err != nil {
		return nil, err
	}
	c, ok := s.records[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if v, ok := changes["name"].(string); ok {
		c.Name = v
	}
	if v, ok := changes["description"].(string); ok {
		c.Description = v
	}
	cp := *c
	return &cp, nil
}

func (s *fakeCompanies) Delete(_ context.Context, id int64) (*model.Company, error) {
	c, ok := s.records[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	delete(s.records, id)
	return c, nil
}

func boolPtr(b bool) *bool { return &b }

func company(name, cnpj string) *model.Company {
	return &model.Company{Name: name, CNPJ: cnpj, Active: boolPtr(true)}
}

func newCompanyHandler(records ...*model.Company) (*CompanyHandler, *fakeCompanies) {
	store := newFakeCompanies(records...)
	return NewCompanyHandler(service.NewCompanyService(store)), store
}

func TestCompanyCreateReturns201AndMessage(t *testing.T) {
	h, store := newCompanyHandler()

	rec := perform(t, h.Create, http.MethodPut, "/api/v1/companies",
		`{"name":"Tractian","cnpj":"123","active":true}`, nil)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `"company created"`, rec.Body.String())
	assert.Len(t, store.records, 1)
}

func TestCompanyCreateValidationFailure(t *testing.T) {
	h, _ := newCompanyHandler()

	rec := perform(t, h.Create, http.MethodPut, "/api/v1/companies",
		`{"name":"Tractian","active":true}`, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `"cnpj is required"`, rec.Body.String())
}

func TestCompanyGetByIDMissingAnswersEmptyObject(t *testing.T) {
	h, _ := newCompanyHandler()

	rec := perform(t, h.GetByID, http.MethodGet, "/api/v1/companies/42", "", nil, "id", "42")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{}`, rec.Body.String())
}

func TestCompanyGetByIDHiddenOutsideScope(t *testing.T) {
	h, _ := newCompanyHandler(company("Acme", "1"), company("Globex", "2"))
	actor := &utils.Claims{UserID: 1, Role: model.RoleManager, Company: 2}

	rec := perform(t, h.GetByID, http.MethodGet, "/api/v1/companies/1", "", actor, "id", "1")
	assert.JSONEq(t, `{}`, rec.Body.String())

	rec = perform(t, h.GetByID, http.MethodGet, "/api/v1/companies/2", "", actor, "id", "2")
	var got model.Company
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Globex", got.Name)
}

func TestCompanyGetPageEnvelope(t *testing.T) {
	h, _ := newCompanyHandler(company("Acme", "1"), company("Globex", "2"), company("Initech", "3"))

	rec := perform(t, h.Get, http.MethodGet, "/api/v1/companies?page=0&size=2", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var page struct {
		Content []model.Company `json:"content"`
		Total   int64           `json:"total"`
		Page    int             `json:"page"`
		Size    int             `json:"size"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, 0, page.Page)
	assert.Equal(t, 2, page.Size)
	require.Len(t, page.Content, 2)
	assert.Equal(t, "Acme", page.Content[0].Name)
}

func TestCompanyGetScopedToActorCompany(t *testing.T) {
	h, _ := newCompanyHandler(company("Acme", "1"), company("Globex", "2"))
	actor := &utils.Claims{UserID: 1, Role: model.RoleManager, Company: 2}

	rec := perform(t, h.Get, http.MethodGet, "/api/v1/companies", "", actor)

	var page struct {
		Content []model.Company `json:"content"`
		Total   int64           `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, int64(1), page.Total)
	require.Len(t, page.Content, 1)
	assert.Equal(t, "Globex", page.Content[0].Name)
}

func TestCompanyFilterByBody(t *testing.T) {
	h, _ := newCompanyHandler(company("Acme", "1"), company("Globex", "2"))

	rec := perform(t, h.Filter, http.MethodPost, "/api/v1/companies/filter", `{"cnpj":"2"}`, nil)

	var page struct {
		Content []model.Company `json:"content"`
		Total   int64           `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, int64(1), page.Total)
}

func TestCompanyUpdateReturnsUpdatedRecord(t *testing.T) {
	h, _ := newCompanyHandler(company("Acme", "1"))

	rec := perform(t, h.Update, http.MethodPost, "/api/v1/companies/1",
		`{"name":"Acme Corp"}`, nil, "id", "1")

	require.Equal(t, http.StatusOK, rec.Code)
	var got model.Company
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Acme Corp", got.Name)
}

func TestCompanyUpdateMissingAnswersEmptyObject(t *testing.T) {
	h, _ := newCompanyHandler()

	rec := perform(t, h.Update, http.MethodPost, "/api/v1/companies/9",
		`{"name":"Acme Corp"}`, nil, "id", "9")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{}`, rec.Body.String())
}

func TestCompanyRemoveReturnsRemovedRecord(t *testing.T) {
	h, store := newCompanyHandler(company("Acme", "1"))

	rec := perform(t, h.Remove, http.MethodDelete, "/api/v1/companies/1", "", nil, "id", "1")

	require.Equal(t, http.StatusOK, rec.Code)
	var got model.Company
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Acme", got.Name)
	assert.Empty(t, store.records)
}
