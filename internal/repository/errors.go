// Package repository contains the data access layer, separated from HTTP
// handlers. Each entity gets its own repository struct over a shared
// *sql.DB pool. This file defines the sentinel errors shared across
// repositories; handlers translate them into HTTP status codes
// (not found -> 404, conflict -> 409, validation -> 400, forbidden -> 403).
package repository

import "errors"

// ErrCategoryNotFound is returned when a category lookup or a
// mutation targeting a category id matches no row.
var ErrCategoryNotFound = errors.New("category not found")

// ErrComplaintNotFound is returned when a complaint lookup or a
// mutation targeting a complaint id matches no row.
var ErrComplaintNotFound = errors.New("complaint not found")

// ErrUserNotFound is returned when a user lookup or a mutation
// targeting a user id matches no row.
var ErrUserNotFound = errors.New("user not found")

// ErrEmailExists is returned when registering or updating a user
// would violate the email uniqueness constraint.
var ErrEmailExists = errors.New("email already exists")

// ErrNoComplaintsInCategory is returned by ListByCategory when the
// result set is empty. An existing category with zero complaints is
// indistinguishable from a nonexistent one; both yield this error.
var ErrNoComplaintsInCategory = errors.New("no complaints found for this category")

// ErrMissingFields is returned by create operations when a required
// field is absent or empty.
var ErrMissingFields = errors.New("missing required fields")

// ErrNoFields is returned by update operations when the patch
// provides zero fields. Rejecting outright keeps the row untouched
// and makes the empty-patch case explicit instead of a silent no-op.
var ErrNoFields = errors.New("no fields to update")

// ErrForbidden is returned when ownership enforcement is enabled and
// the caller attempts to mutate a complaint they do not own.
var ErrForbidden = errors.New("forbidden")
