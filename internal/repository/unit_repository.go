package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmoreira/asset-admin/internal/model"
)

var unitCols = map[string]string{
	"id":      "id",
	"name":    "name",
	"company": "company_id",
}

// UnitRepo provides persistence for units.
type UnitRepo struct {
	db *sql.DB
}

// NewUnitRepo constructs a UnitRepo on the given connection pool.
func NewUnitRepo(db *sql.DB) *UnitRepo {
	return &UnitRepo{db: db}
}

// Create inserts a unit and assigns its id.
func (r *UnitRepo) Create(ctx context.Context, u *model.Unit) error {
	if err := u.Validate(); err != nil {
		return err
	}
	const q = "INSERT INTO units (name, company_id) VALUES (?, ?)"
	res, err := r.db.ExecContext(ctx, q, u.Name, u.Company)
	if err != nil {
		return translate(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	u.ID = id
	return nil
}

// GetByID fetches a unit by id, returning ErrNotFound when absent.
func (r *UnitRepo) GetByID(ctx context.Context, id int64) (*model.Unit, error) {
	const q = "SELECT id, name, company_id FROM units WHERE id = ?"
	var u model.Unit
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&u.ID, &u.Name, &u.Company); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// Find returns one page of units matching the filter, ordered by id.
func (r *UnitRepo) Find(ctx context.Context, f Filter, limit, offset int) ([]*model.Unit, error) {
	where, args, err := whereClause(f, unitCols)
	if err != nil {
		return nil, err
	}
	q := "SELECT id, name, company_id FROM units" + where + " ORDER BY id LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.Unit{}
	for rows.Next() {
		var u model.Unit
		if err := rows.Scan(&u.ID, &u.Name, &u.Company); err != nil {
			return nil, err
		}
		out = append(out, &u)
	}
	return out, rows.Err()
}

// Count returns the number of units matching the filter.
func (r *UnitRepo) Count(ctx context.Context, f Filter) (int64, error) {
	where, args, err := whereClause(f, unitCols)
	if err != nil {
		return 0, err
	}
	var n int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM units"+where, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Update applies a partial update and returns the updated record.
func (r *UnitRepo) Update(ctx context.Context, id int64, changes map[string]any) (*model.Unit, error) {
	if err := model.ValidateUnitChanges(changes); err != nil {
		return nil, err
	}
	if len(changes) > 0 {
		set, args, err := setClause(changes, unitCols)
		if err != nil {
			return nil, err
		}
		args = append(args, id)
		if _, err := r.db.ExecContext(ctx, "UPDATE units SET "+set+" WHERE id = ?", args...); err != nil {
			return nil, translate(err)
		}
	}
	return r.GetByID(ctx, id)
}

// Delete removes a unit and returns the removed record, or ErrNotFound.
func (r *UnitRepo) Delete(ctx context.Context, id int64) (*model.Unit, error) {
	u, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := r.db.ExecContext(ctx, "DELETE FROM units WHERE id = ?", id); err != nil {
		return nil, err
	}
	return u, nil
}
