package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/RihamAlgosbi/zawiya-complaints-backend/internal/model"
)

// CategoryRepo encapsulates all database queries related to complaint
// categories. It depends on a sql.DB connection pool configured at
// startup.
type CategoryRepo struct {
	db *sql.DB
}

// NewCategoryRepo constructs a CategoryRepo with the provided DB handle.
func NewCategoryRepo(db *sql.DB) *CategoryRepo {
	return &CategoryRepo{db: db}
}

// Create inserts a new category. Name is required; a follow-up SELECT
// populates the record so callers receive the row exactly as stored.
func (r *CategoryRepo) Create(ctx context.Context, c *model.Category) error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrMissingFields
	}
	const q = "INSERT INTO categories (name, description, is_active) VALUES (?, ?, ?)"
	res, err := r.db.ExecContext(ctx, q, c.Name, c.Description, c.IsActive)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	return r.db.QueryRowContext(ctx,
		"SELECT name, description, is_active FROM categories WHERE id = ?", c.ID).
		Scan(&c.Name, &c.Description, &c.IsActive)
}

// GetByID fetches a category by id, returning ErrCategoryNotFound on a miss.
func (r *CategoryRepo) GetByID(ctx context.Context, id uint64) (*model.Category, error) {
	const q = "SELECT id, name, description, is_active FROM categories WHERE id = ?"
	var c model.Category
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&c.ID, &c.Name, &c.Description, &c.IsActive); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &c, nil
}

// ListAll returns every category ordered by name ascending. This feeds
// the public, unauthenticated listing.
func (r *CategoryRepo) ListAll(ctx context.Context) ([]*model.Category, error) {
	const q = "SELECT id, name, description, is_active FROM categories ORDER BY name ASC"
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.Category{}
	for rows.Next() {
		c := new(model.Category)
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.IsActive); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// CategoryPatch carries the optional fields of a partial category
// update. A nil pointer means "leave the stored value alone".
type CategoryPatch struct {
	Name        *string
	Description *string
	IsActive    *bool
}

// Update applies a partial update and returns the resulting row. An
// empty patch is rejected with ErrNoFields; a missing id yields
// ErrCategoryNotFound after the write attempt.
func (r *CategoryRepo) Update(ctx context.Context, id uint64, p CategoryPatch) (*model.Category, error) {
	b := newUpdateBuilder("categories")
	if p.Name != nil {
		b.Set("name", *p.Name)
	}
	if p.Description != nil {
		b.Set("description", *p.Description)
	}
	if p.IsActive != nil {
		b.Set("is_active", *p.IsActive)
	}
	if b.Empty() {
		return nil, ErrNoFields
	}
	q, args := b.SQL("id = ?", id)
	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes a category, returning ErrCategoryNotFound when no row matched.
func (r *CategoryRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM categories WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCategoryNotFound
	}
	return nil
}
