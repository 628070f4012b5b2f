package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmoreira/asset-admin/internal/model"
)

// companyCols maps public field names to company columns for filtering
// and updates.
var companyCols = map[string]string{
	"id":          "id",
	"name":        "name",
	"description": "description",
	"cnpj":        "cnpj",
	"active":      "active",
}

// CompanyRepo provides persistence for companies.
type CompanyRepo struct {
	db *sql.DB
}

// NewCompanyRepo constructs a CompanyRepo on the given connection pool.
func NewCompanyRepo(db *sql.DB) *CompanyRepo {
	return &CompanyRepo{db: db}
}

// Create inserts a company and assigns its id.
func (r *CompanyRepo) Create(ctx context.Context, c *model.Company) error {
	if err := c.Validate(); err != nil {
		return err
	}
	const q = "INSERT INTO companies (name, description, cnpj, active) VALUES (?, ?, ?, ?)"
	res, err := r.db.ExecContext(ctx, q, c.Name, nullable(c.Description), c.CNPJ, c.Active)
	if err != nil {
		return translate(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = id
	return nil
}

// GetByID fetches a company by id, returning ErrNotFound when absent.
func (r *CompanyRepo) GetByID(ctx context.Context, id int64) (*model.Company, error) {
	const q = "SELECT id, name, COALESCE(description, ''), cnpj, active FROM companies WHERE id = ?"
	return scanCompany(r.db.QueryRowContext(ctx, q, id))
}

// Find returns one page of companies matching the filter, ordered by id
// ascending so pagination stays deterministic.
func (r *CompanyRepo) Find(ctx context.Context, f Filter, limit, offset int) ([]*model.Company, error) {
	where, args, err := whereClause(f, companyCols)
	if err != nil {
		return nil, err
	}
	q := "SELECT id, name, COALESCE(description, ''), cnpj, active FROM companies" +
		where + " ORDER BY id LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.Company{}
	for rows.Next() {
		var c model.Company
		var active bool
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CNPJ, &active); err != nil {
			return nil, err
		}
		c.Active = &active
		out = append(out, &c)
	}
	return out, rows.Err()
}

// Count returns the number of companies matching the filter.
func (r *CompanyRepo) Count(ctx context.Context, f Filter) (int64, error) {
	where, args, err := whereClause(f, companyCols)
	if err != nil {
		return 0, err
	}
	var n int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM companies"+where, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Update applies a partial update and returns the updated record, or
// ErrNotFound when no company has that id.
func (r *CompanyRepo) Update(ctx context.Context, id int64, changes map[string]any) (*model.Company, error) {
	if err := model.ValidateCompanyChanges(changes); err != nil {
		return nil, err
	}
	if len(changes) > 0 {
		set, args, err := setClause(changes, companyCols)
		if err != nil {
			return nil, err
		}
		args = append(args, id)
		if _, err := r.db.ExecContext(ctx, "UPDATE companies SET "+set+" WHERE id = ?", args...); err != nil {
			return nil, translate(err)
		}
	}
	return r.GetByID(ctx, id)
}

// Delete removes a company and returns the removed record, or ErrNotFound.
// Deletion is unconditional: dependent units, users and assets keep their
// now-dangling references.
func (r *CompanyRepo) Delete(ctx context.Context, id int64) (*model.Company, error) {
	c, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := r.db.ExecContext(ctx, "DELETE FROM companies WHERE id = ?", id); err != nil {
		return nil, err
	}
	return c, nil
}

func scanCompany(row *sql.Row) (*model.Company, error) {
	var c model.Company
	var active bool
	if err := row.Scan(&c.ID, &c.Name, &c.Description, &c.CNPJ, &active); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	c.Active = &active
	return &c, nil
}
