package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/dmoreira/asset-admin/internal/model"
)

var assetCols = map[string]string{
	"id":           "id",
	"name":         "name",
	"healthscore":  "healthscore",
	"status":       "status",
	"serialnumber": "serialnumber",
	"description":  "description",
	"user":         "user_id",
	"unit":         "unit_id",
	"company":      "company_id",
}

// groupCols whitelists the fields the reporting aggregation can group by.
var groupCols = map[string]string{
	"status":  "status",
	"unit":    "unit_id",
	"company": "company_id",
	"user":    "user_id",
}

const assetSelect = "SELECT id, name, healthscore, status, COALESCE(serialnumber, ''), " +
	"COALESCE(image_type, ''), COALESCE(image_data, ''), COALESCE(description, ''), " +
	"user_id, unit_id, company_id FROM assets"

// AssetRepo provides persistence for assets plus the grouped average-health
// aggregation backing the reports endpoint.
type AssetRepo struct {
	db *sql.DB
}

// NewAssetRepo constructs an AssetRepo on the given connection pool.
func NewAssetRepo(db *sql.DB) *AssetRepo {
	return &AssetRepo{db: db}
}

// Create inserts an asset and assigns its id. The composed Image string is
// split into its stored parts here, at the persistence boundary.
func (r *AssetRepo) Create(ctx context.Context, a *model.Asset) error {
	if err := a.Validate(); err != nil {
		return err
	}
	imageType, imageData, err := model.SplitImage(a.Image)
	if err != nil {
		return err
	}
	a.ImageType, a.ImageData = imageType, imageData

	const q = "INSERT INTO assets (name, healthscore, status, serialnumber, image_type, image_data, description, user_id, unit_id, company_id) " +
		"VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"
	res, err := r.db.ExecContext(ctx, q,
		a.Name, a.Healthscore, a.Status, nullable(a.SerialNumber),
		nullable(a.ImageType), nullable(a.ImageData), nullable(a.Description),
		a.User, a.Unit, a.Company)
	if err != nil {
		return translate(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = id
	return nil
}

// GetByID fetches an asset by id, returning ErrNotFound when absent.
func (r *AssetRepo) GetByID(ctx context.Context, id int64) (*model.Asset, error) {
	a, err := scanAsset(r.db.QueryRowContext(ctx, assetSelect+" WHERE id = ?", id))
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Find returns one page of assets matching the filter, ordered by id.
func (r *AssetRepo) Find(ctx context.Context, f Filter, limit, offset int) ([]*model.Asset, error) {
	where, args, err := whereClause(f, assetCols)
	if err != nil {
		return nil, err
	}
	q := assetSelect + where + " ORDER BY id LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.Asset{}
	for rows.Next() {
		var a model.Asset
		var score float64
		if err := rows.Scan(&a.ID, &a.Name, &score, &a.Status, &a.SerialNumber,
			&a.ImageType, &a.ImageData, &a.Description, &a.User, &a.Unit, &a.Company); err != nil {
			return nil, err
		}
		a.Healthscore = &score
		a.Image = model.ComposeImage(a.ImageType, a.ImageData)
		out = append(out, &a)
	}
	return out, rows.Err()
}

// Count returns the number of assets matching the filter.
func (r *AssetRepo) Count(ctx context.Context, f Filter) (int64, error) {
	where, args, err := whereClause(f, assetCols)
	if err != nil {
		return 0, err
	}
	var n int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM assets"+where, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Update applies a partial update and returns the updated record. An
// "image" key carries the composed string and is decomposed into the two
// stored columns.
func (r *AssetRepo) Update(ctx context.Context, id int64, changes map[string]any) (*model.Asset, error) {
	if err := model.ValidateAssetChanges(changes); err != nil {
		return nil, err
	}
	if image, ok := changes["image"]; ok {
		s, isStr := image.(string)
		if !isStr {
			return nil, &model.ValidationError{Field: "image", Msg: "must be a string"}
		}
		imageType, imageData, err := model.SplitImage(s)
		if err != nil {
			return nil, err
		}
		changes = cloneChanges(changes)
		delete(changes, "image")
		changes["image_type"] = nullable(imageType)
		changes["image_data"] = nullable(imageData)
	}
	if len(changes) > 0 {
		set, args, err := setClause(changes, assetSetCols())
		if err != nil {
			return nil, err
		}
		args = append(args, id)
		if _, err := r.db.ExecContext(ctx, "UPDATE assets SET "+set+" WHERE id = ?", args...); err != nil {
			return nil, translate(err)
		}
	}
	return r.GetByID(ctx, id)
}

// Delete removes an asset and returns the removed record, or ErrNotFound.
func (r *AssetRepo) Delete(ctx context.Context, id int64) (*model.Asset, error) {
	a, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := r.db.ExecContext(ctx, "DELETE FROM assets WHERE id = ?", id); err != nil {
		return nil, err
	}
	return a, nil
}

// AvgHealth groups assets matching the filter by status plus the requested
// extra fields and returns count and mean healthscore (2 decimals) per
// group. Status is always part of the grouping key; requesting it again is
// a no-op. Output row order is unspecified.
func (r *AssetRepo) AvgHealth(ctx context.Context, groupFields []string, f Filter) ([]model.ReportRow, error) {
	cols := []string{"status"}
	fields := []string{"status"}
	for _, gf := range groupFields {
		if gf == "status" {
			continue
		}
		col, ok := groupCols[gf]
		if !ok {
			return nil, &UnknownFieldError{Field: gf}
		}
		cols = append(cols, col)
		fields = append(fields, gf)
	}

	where, args, err := whereClause(f, assetCols)
	if err != nil {
		return nil, err
	}
	group := strings.Join(cols, ", ")
	q := "SELECT " + group + ", COUNT(*), ROUND(AVG(healthscore), 2) FROM assets" +
		where + " GROUP BY " + group

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.ReportRow{}
	for rows.Next() {
		var row model.ReportRow
		keys := make([]int64, len(fields)-1)
		dest := []any{&row.Status}
		for i := range keys {
			dest = append(dest, &keys[i])
		}
		dest = append(dest, &row.Total, &row.AverageHealth)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		for i, gf := range fields[1:] {
			v := keys[i]
			switch gf {
			case "unit":
				row.Unit = &v
			case "company":
				row.Company = &v
			case "user":
				row.User = &v
			}
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// assetSetCols extends the filter whitelist with the two stored image
// columns, which only exist on the write path.
func assetSetCols() map[string]string {
	cols := make(map[string]string, len(assetCols)+2)
	for k, v := range assetCols {
		cols[k] = v
	}
	cols["image_type"] = "image_type"
	cols["image_data"] = "image_data"
	return cols
}

func cloneChanges(changes map[string]any) map[string]any {
	out := make(map[string]any, len(changes))
	for k, v := range changes {
		out[k] = v
	}
	return out
}

func scanAsset(row *sql.Row) (*model.Asset, error) {
	var a model.Asset
	var score float64
	if err := row.Scan(&a.ID, &a.Name, &score, &a.Status, &a.SerialNumber,
		&a.ImageType, &a.ImageData, &a.Description, &a.User, &a.Unit, &a.Company); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	a.Healthscore = &score
	a.Image = model.ComposeImage(a.ImageType, a.ImageData)
	return &a, nil
}
