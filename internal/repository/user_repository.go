package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/RihamAlgosbi/zawiya-complaints-backend/internal/model"
	"github.com/RihamAlgosbi/zawiya-complaints-backend/internal/utils"
)

// UserRepo encapsulates all database queries related to users.
// BcryptCost controls the hashing cost for passwords written through
// this repository; plaintext never reaches a statement.
type UserRepo struct {
	db         *sql.DB
	BcryptCost int
}

// NewUserRepo constructs a UserRepo with the provided DB handle and
// bcrypt cost.
func NewUserRepo(db *sql.DB, bcryptCost int) *UserRepo {
	return &UserRepo{db: db, BcryptCost: bcryptCost}
}

// Create registers a user. Username, email and password are required;
// the email is normalized and checked for uniqueness before the insert.
// The MySQL duplicate-key error (1062) is also mapped to ErrEmailExists
// to cover the race between check and insert.
func (r *UserRepo) Create(ctx context.Context, username, email, password string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if strings.TrimSpace(username) == "" || email == "" || password == "" {
		return nil, ErrMissingFields
	}

	var existing uint64
	err := r.db.QueryRowContext(ctx, "SELECT id FROM users WHERE email = ?", email).Scan(&existing)
	if err == nil {
		return nil, ErrEmailExists
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	hash, err := utils.HashPassword(password, r.BcryptCost)
	if err != nil {
		return nil, err
	}
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO users (username, email, password) VALUES (?, ?, ?)",
		username, email, hash)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return nil, ErrEmailExists
		}
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, uint64(id))
}

// GetByEmail fetches a user by normalized email, digest included, for
// credential verification at login.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	const q = `SELECT id, username, email, password, full_name, role_id, created_at
	           FROM users WHERE email = ? LIMIT 1`
	return r.scanOne(r.db.QueryRowContext(ctx, q, email))
}

// GetByID fetches a user by id, returning ErrUserNotFound on a miss.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (*model.User, error) {
	const q = `SELECT id, username, email, password, full_name, role_id, created_at
	           FROM users WHERE id = ? LIMIT 1`
	return r.scanOne(r.db.QueryRowContext(ctx, q, id))
}

func (r *UserRepo) scanOne(row *sql.Row) (*model.User, error) {
	var (
		u        model.User
		fullName sql.NullString
		roleID   sql.NullInt64
	)
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.Password, &fullName, &roleID, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if fullName.Valid {
		u.FullName = &fullName.String
	}
	if roleID.Valid {
		rid := uint64(roleID.Int64)
		u.RoleID = &rid
	}
	return &u, nil
}

// ListAll returns every user ordered by creation time descending. The
// password digest is not selected.
func (r *UserRepo) ListAll(ctx context.Context) ([]*model.User, error) {
	const q = `SELECT id, username, email, full_name, role_id, created_at
	           FROM users ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.User{}
	for rows.Next() {
		var (
			u        model.User
			fullName sql.NullString
			roleID   sql.NullInt64
		)
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &fullName, &roleID, &u.CreatedAt); err != nil {
			return nil, err
		}
		if fullName.Valid {
			u.FullName = &fullName.String
		}
		if roleID.Valid {
			rid := uint64(roleID.Int64)
			u.RoleID = &rid
		}
		out = append(out, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// UserPatch carries the optional fields of a partial user update. A
// nil pointer means "leave the stored value alone". FullName and
// RoleID exist for admin updates; Password, when present, is hashed
// before it enters the statement.
type UserPatch struct {
	Username *string
	Email    *string
	Password *string
	FullName *string
	RoleID   *uint64
}

// Update applies a partial update and returns the resulting row. An
// empty patch is rejected with ErrNoFields; a missing id yields
// ErrUserNotFound after the write attempt. Duplicate emails map to
// ErrEmailExists.
func (r *UserRepo) Update(ctx context.Context, id uint64, p UserPatch) (*model.User, error) {
	b := newUpdateBuilder("users")
	if p.Username != nil {
		b.Set("username", *p.Username)
	}
	if p.Email != nil {
		b.Set("email", strings.ToLower(strings.TrimSpace(*p.Email)))
	}
	if p.Password != nil {
		hash, err := utils.HashPassword(*p.Password, r.BcryptCost)
		if err != nil {
			return nil, err
		}
		b.Set("password", hash)
	}
	if p.FullName != nil {
		b.Set("full_name", *p.FullName)
	}
	if p.RoleID != nil {
		b.Set("role_id", *p.RoleID)
	}
	if b.Empty() {
		return nil, ErrNoFields
	}
	q, args := b.SQL("id = ?", id)
	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return nil, ErrEmailExists
		}
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes a user, returning ErrUserNotFound when no row matched.
func (r *UserRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrUserNotFound
	}
	return nil
}
