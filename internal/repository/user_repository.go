package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmoreira/asset-admin/internal/model"
)

// userCols never includes the password hash: it cannot be filtered on.
var userCols = map[string]string{
	"id":       "id",
	"name":     "name",
	"email":    "email",
	"role":     "role",
	"username": "username",
	"company":  "company_id",
}

// userSetCols additionally allows the (already hashed) password on updates.
var userSetCols = map[string]string{
	"name":     "name",
	"email":    "email",
	"role":     "role",
	"username": "username",
	"company":  "company_id",
	"password": "password_hash",
}

const userSelect = "SELECT id, COALESCE(name, ''), email, role, username, password_hash, company_id FROM users"

// UserRepo provides persistence for users. The password hash is scanned
// into the model for login verification but is excluded from JSON by the
// model itself.
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo constructs a UserRepo on the given connection pool.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// Create inserts a user and assigns its id. The PasswordHash field must
// already contain the bcrypt hash.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	if err := u.Validate(); err != nil {
		return err
	}
	const q = "INSERT INTO users (name, email, role, username, password_hash, company_id) VALUES (?, ?, ?, ?, ?, ?)"
	res, err := r.db.ExecContext(ctx, q, nullable(u.Name), u.Email, u.Role, u.Username, u.PasswordHash, u.Company)
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

// GetByID fetches a user by id, returning ErrNotFound when absent.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, userSelect+" WHERE id = ?", id))
}

// FindByLogin looks a user up by exact username or e-mail match. Login
// input may be either; uniqueness of both keeps the result unambiguous.
func (r *UserRepo) FindByLogin(ctx context.Context, login string) (*model.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, userSelect+" WHERE username = ? OR email = ? LIMIT 1", login, login))
}

// Find returns one page of users matching the filter, ordered by id.
func (r *UserRepo) Find(ctx context.Context, f Filter, limit, offset int) ([]*model.User, error) {
	where, args, err := whereClause(f, userCols)
	if err != nil {
		return nil, err
	}
	q := userSelect + where + " ORDER BY id LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.User{}
	for rows.Next() {
		var u model.User
		var company sql.NullInt64
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.Username, &u.PasswordHash, &company); err != nil {
			return nil, err
		}
		if company.Valid {
			c := company.Int64
			u.Company = &c
		}
		out = append(out, &u)
	}
	return out, rows.Err()
}

// Count returns the number of users matching the filter.
func (r *UserRepo) Count(ctx context.Context, f Filter) (int64, error) {
	where, args, err := whereClause(f, userCols)
	if err != nil {
		return 0, err
	}
	var n int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users"+where, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Update applies a partial update and returns the updated record. A
// "password" key must already carry the new bcrypt hash; when the key is
// absent the stored hash is untouched.
func (r *UserRepo) Update(ctx context.Context, id int64, changes map[string]any) (*model.User, error) {
	if err := model.ValidateUserChanges(changes); err != nil {
		return nil, err
	}
	if len(changes) > 0 {
		set, args, err := setClause(changes, userSetCols)
		if err != nil {
			return nil, err
		}
		args = append(args, id)
		if _, err := r.db.ExecContext(ctx, "UPDATE users SET "+set+" WHERE id = ?", args...); err != nil {
			return nil, translate(err)
		}
	}
	return r.GetByID(ctx, id)
}

// Delete removes a user and returns the removed record, or ErrNotFound.
func (r *UserRepo) Delete(ctx context.Context, id int64) (*model.User, error) {
	u, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := r.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id); err != nil {
		return nil, err
	}
	return u, nil
}

func scanUser(row *sql.Row) (*model.User, error) {
	var u model.User
	var company sql.NullInt64
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.Username, &u.PasswordHash, &company); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if company.Valid {
		c := company.Int64
		u.Company = &c
	}
	return &u, nil
}
