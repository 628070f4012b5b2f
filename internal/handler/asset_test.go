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

// fakeAssets is an in-memory service.AssetStore that mirrors the image
// handling of the real repository and records reporting calls.
type fakeAssets struct {
	records map[int64]*model.Asset
	nextID  int64

	avgGroupFields []string
	avgFilter      repository.Filter
	avgRows        []model.ReportRow
}

func newFakeAssets(records ...*model.Asset) *fakeAssets {
	s := &fakeAssets{records: map[int64]*model.Asset{}}
	for _, a := range records {
		if err := s.Create(context.Background(), a); err != nil {
			panic(err)
		}
	}
	return s
}

func (s *fakeAssets) Create(_ context.Context, a *model.Asset) error {
	if err := a.Validate(); err != nil {
		return err
	}
	imageType, data, err := model.SplitImage(a.Image)
	if err != nil {
		return err
	}
	a.ImageType, a.ImageData = imageType, data
	s.nextID++
	a.ID = s.nextID
	cp := *a
	s.records[a.ID] = &cp
	return nil
}

func (s *fakeAssets) GetByID(_ context.Context, id int64) (*model.Asset, error) {
	a, ok := s.records[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *a
	cp.Image = model.ComposeImage(cp.ImageType, cp.ImageData)
	return &cp, nil
}

func (s *fakeAssets) matching(f repository.Filter) []*model.Asset {
	var out []*model.Asset
	for _, a := range s.records {
		ok := true
		for k, v := range f {
			switch k {
			case "company":
				if a.Company != asID(v) {
					ok = false
				}
			case "unit":
				if a.Unit != asID(v) {
					ok = false
				}
			case "user":
				if a.User != asID(v) {
					ok = false
				}
			case "status":
				if a.Status != v {
					ok = false
				}
			}
		}
		if ok {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *fakeAssets) Find(_ context.Context, f repository.Filter, limit, offset int) ([]*model.Asset, error) {
	all := s.matching(f)
	if offset >= len(all) {
		return []*model.Asset{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (s *fakeAssets) Count(_ context.Context, f repository.Filter) (int64, error) {
	return int64(len(s.matching(f))), nil
}

func (s *fakeAssets) Update(_ context.Context, id int64, changes map[string]any) (*model.Asset, error) {
	a, ok := s.records[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if v, ok := changes["status"].(string); ok {
		a.Status = v
	}
	cp := *a
	return &cp, nil
}

func (s *fakeAssets) Delete(_ context.Context, id int64) (*model.Asset, error) {
	a, ok := s.records[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	delete(s.records, id)
	return a, nil
}

func (s *fakeAssets) AvgHealth(_ context.Context, groupFields []string, f repository.Filter) ([]model.ReportRow, error) {
	s.avgGroupFields = groupFields
	s.avgFilter = f
	return s.avgRows, nil
}

func numPtr(f float64) *float64 { return &f }

func asset(company, unit, user int64, status string) *model.Asset {
	return &model.Asset{
		Name:        "pump",
		Healthscore: numPtr(75),
		Status:      status,
		User:        user,
		Unit:        unit,
		Company:     company,
	}
}

func newAssetHandler(records ...*model.Asset) (*AssetHandler, *fakeAssets) {
	store := newFakeAssets(records...)
	return NewAssetHandler(service.NewAssetService(store, nil)), store
}

func TestAssetCreateReturns201AndMessage(t *testing.T) {
	h, store := newAssetHandler()

	rec := perform(t, h.Create, http.MethodPut, "/api/v1/assets",
		`{"name":"pump","healthscore":70,"status":"inOperation","user":1,"unit":1,"company":1,"image":"image/png,aGk="}`,
		nil)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `"asset created"`, rec.Body.String())

	stored := store.records[1]
	require.NotNil(t, stored)
	assert.Equal(t, "image/png", stored.ImageType)
	assert.Equal(t, []byte("hi"), stored.ImageData)
}

func TestAssetCreateRejectsOutOfRangeHealthscore(t *testing.T) {
	h, _ := newAssetHandler()

	rec := perform(t, h.Create, http.MethodPut, "/api/v1/assets",
		`{"name":"pump","healthscore":120,"status":"inOperation","user":1,"unit":1,"company":1}`, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAssetGetByIDComposesImage(t *testing.T) {
	h, store := newAssetHandler()
	a := asset(1, 1, 1, model.StatusInOperation)
	a.Image = "image/png,aGk="
	require.NoError(t, store.Create(context.Background(), a))

	rec := perform(t, h.GetByID, http.MethodGet, "/api/v1/assets/1", "", nil, "id", "1")

	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "image/png,aGk=", got["image"])
}

func TestAssetGetByIDHiddenFromOtherEmployee(t *testing.T) {
	h, _ := newAssetHandler(asset(1, 1, 5, model.StatusInOperation))
	other := &utils.Claims{UserID: 6, Role: model.RoleEmployee, Company: 1}
	owner := &utils.Claims{UserID: 5, Role: model.RoleEmployee, Company: 1}

	rec := perform(t, h.GetByID, http.MethodGet, "/api/v1/assets/1", "", other, "id", "1")
	assert.JSONEq(t, `{}`, rec.Body.String())

	rec = perform(t, h.GetByID, http.MethodGet, "/api/v1/assets/1", "", owner, "id", "1")
	var got model.Asset
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, int64(1), got.ID)
}

func TestAssetGetEmployeeSeesOnlyOwnAssets(t *testing.T) {
	h, _ := newAssetHandler(
		asset(1, 1, 5, model.StatusInOperation),
		asset(1, 1, 6, model.StatusInAlert),
		asset(2, 2, 7, model.StatusInOperation),
	)
	employee := &utils.Claims{UserID: 5, Role: model.RoleEmployee, Company: 1}

	rec := perform(t, h.Get, http.MethodGet, "/api/v1/assets", "", employee)

	var page struct {
		Content []model.Asset `json:"content"`
		Total   int64         `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, int64(1), page.Total)
	require.Len(t, page.Content, 1)
	assert.Equal(t, int64(5), page.Content[0].User)
}

func TestAssetGetFiltersByUnitParam(t *testing.T) {
	h, _ := newAssetHandler(
		asset(1, 1, 5, model.StatusInOperation),
		asset(1, 2, 5, model.StatusInOperation),
	)

	rec := perform(t, h.Get, http.MethodGet, "/api/v1/assets?unit=2", "", nil)

	var page struct {
		Content []model.Asset `json:"content"`
		Total   int64         `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, int64(1), page.Total)
	require.Len(t, page.Content, 1)
	assert.Equal(t, int64(2), page.Content[0].Unit)
}

func TestReportPassesGroupFieldsAndScope(t *testing.T) {
	store := newFakeAssets()
	store.avgRows = []model.ReportRow{{Status: model.StatusInAlert, Total: 2, AverageHealth: 44.5}}
	h := NewReportHandler(service.NewReportService(store))
	manager := &utils.Claims{UserID: 3, Role: model.RoleManager, Company: 9}

	rec := perform(t, h.Get, http.MethodGet, "/api/v1/reports?groupField=unit&groupField=user&user=12", "", manager)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"unit", "user"}, store.avgGroupFields)
	assert.Equal(t, int64(9), store.avgFilter["company"])
	assert.Equal(t, int64(12), store.avgFilter["user"])

	var rows []model.ReportRow
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, 44.5, rows[0].AverageHealth)
}

func TestReportEmployeePinnedToOwnAssets(t *testing.T) {
	store := newFakeAssets()
	h := NewReportHandler(service.NewReportService(store))
	employee := &utils.Claims{UserID: 5, Role: model.RoleEmployee, Company: 1}

	rec := perform(t, h.Get, http.MethodGet, "/api/v1/reports?user=99", "", employee)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(5), store.avgFilter["user"])
}
