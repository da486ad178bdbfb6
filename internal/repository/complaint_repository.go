package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/RihamAlgosbi/zawiya-complaints-backend/internal/model"
)

const complaintColumns = "id, user_id, subject, description, photo_url, location, category_id, status, created_at, updated_at"

// ComplaintRepo encapsulates all database queries related to complaints.
type ComplaintRepo struct {
	db *sql.DB
}

// NewComplaintRepo constructs a ComplaintRepo with the provided DB handle.
func NewComplaintRepo(db *sql.DB) *ComplaintRepo {
	return &ComplaintRepo{db: db}
}

func scanComplaint(row interface{ Scan(...any) error }, c *model.Complaint) error {
	return row.Scan(&c.ID, &c.UserID, &c.Subject, &c.Description, &c.PhotoURL,
		&c.Location, &c.CategoryID, &c.Status, &c.CreatedAt, &c.UpdatedAt)
}

// Create inserts a complaint. Owner, subject, description, photo and
// category are all required; the photo URL must already point at a
// stored blob, so a failed upload never reaches this method. Status and
// timestamps come from storage defaults and are read back with a
// follow-up SELECT.
func (r *ComplaintRepo) Create(ctx context.Context, c *model.Complaint) error {
	if c.UserID == 0 || c.CategoryID == 0 ||
		strings.TrimSpace(c.Subject) == "" ||
		strings.TrimSpace(c.Description) == "" ||
		strings.TrimSpace(c.PhotoURL) == "" {
		return ErrMissingFields
	}
	const q = `INSERT INTO complaints (user_id, subject, description, photo_url, location, category_id)
	           VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, c.UserID, c.Subject, c.Description, c.PhotoURL, c.Location, c.CategoryID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	return scanComplaint(r.db.QueryRowContext(ctx,
		"SELECT "+complaintColumns+" FROM complaints WHERE id = ?", c.ID), c)
}

// GetByID fetches a complaint by id, returning ErrComplaintNotFound on a miss.
func (r *ComplaintRepo) GetByID(ctx context.Context, id uint64) (*model.Complaint, error) {
	var c model.Complaint
	err := scanComplaint(r.db.QueryRowContext(ctx,
		"SELECT "+complaintColumns+" FROM complaints WHERE id = ?", id), &c)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrComplaintNotFound
		}
		return nil, err
	}
	return &c, nil
}

// ListAll returns every complaint, newest first.
func (r *ComplaintRepo) ListAll(ctx context.Context) ([]*model.Complaint, error) {
	return r.list(ctx, "SELECT "+complaintColumns+" FROM complaints ORDER BY created_at DESC")
}

// ListByOwner returns the complaints submitted by one user, newest first.
func (r *ComplaintRepo) ListByOwner(ctx context.Context, userID uint64) ([]*model.Complaint, error) {
	return r.list(ctx,
		"SELECT "+complaintColumns+" FROM complaints WHERE user_id = ? ORDER BY created_at DESC", userID)
}

// ListByCategory returns the complaints in one category, newest first.
// An empty result set yields ErrNoComplaintsInCategory whether or not
// the category itself exists; callers surface both as 404.
func (r *ComplaintRepo) ListByCategory(ctx context.Context, categoryID uint64) ([]*model.Complaint, error) {
	out, err := r.list(ctx,
		"SELECT "+complaintColumns+" FROM complaints WHERE category_id = ? ORDER BY created_at DESC", categoryID)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, ErrNoComplaintsInCategory
	}
	return out, nil
}

func (r *ComplaintRepo) list(ctx context.Context, q string, args ...any) ([]*model.Complaint, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.Complaint{}
	for rows.Next() {
		c := new(model.Complaint)
		if err := scanComplaint(rows, c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ComplaintPatch carries the optional fields of a partial complaint
// update. A nil pointer means "leave the stored value alone". In
// practice the API almost always patches Status only.
type ComplaintPatch struct {
	Subject     *string
	Description *string
	Location    *string
	Status      *string
	CategoryID  *uint64
}

// Update applies a partial update, always touching updated_at, and
// returns the resulting row. An empty patch is rejected with
// ErrNoFields; a missing id yields ErrComplaintNotFound after the
// write attempt.
func (r *ComplaintRepo) Update(ctx context.Context, id uint64, p ComplaintPatch) (*model.Complaint, error) {
	b := newUpdateBuilder("complaints")
	if p.Subject != nil {
		b.Set("subject", *p.Subject)
	}
	if p.Description != nil {
		b.Set("description", *p.Description)
	}
	if p.Location != nil {
		b.Set("location", *p.Location)
	}
	if p.Status != nil {
		b.Set("status", *p.Status)
	}
	if p.CategoryID != nil {
		b.Set("category_id", *p.CategoryID)
	}
	if b.Empty() {
		return nil, ErrNoFields
	}
	b.SetRaw("updated_at = CURRENT_TIMESTAMP")
	q, args := b.SQL("id = ?", id)
	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes a complaint, returning ErrComplaintNotFound when no row matched.
func (r *ComplaintRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM complaints WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrComplaintNotFound
	}
	return nil
}
