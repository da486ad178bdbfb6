package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/RihamAlgosbi/zawiya-complaints-backend/internal/model"
	"github.com/RihamAlgosbi/zawiya-complaints-backend/internal/queue"
	"github.com/RihamAlgosbi/zawiya-complaints-backend/internal/repository"
	"github.com/RihamAlgosbi/zawiya-complaints-backend/internal/storage"
)

// ComplaintHandler bundles dependencies for complaint endpoints.
//
// Publish, when non-nil, is called after a successful create; failures
// are ignored so a broker outage never blocks filing a complaint.
//
// EnforceOwnership restricts update/delete to the complaint's owner.
// The historical behavior lets any authenticated user mutate any
// complaint by id, so the flag defaults to off; flip
// COMPLAINT_ENFORCE_OWNERSHIP once clients are ready for 403s.
type ComplaintHandler struct {
	Complaints       *repository.ComplaintRepo
	Store            *storage.LocalStore
	Publish          func(ctx context.Context, ev queue.ComplaintCreatedEvent) error
	EnforceOwnership bool
}

func NewComplaintHandler(complaints *repository.ComplaintRepo, store *storage.LocalStore) *ComplaintHandler {
	return &ComplaintHandler{Complaints: complaints, Store: store}
}

// Create files a complaint from a multipart form. The photo is
// mandatory and its blob is written before the insert; if the upload
// fails the complaint is not created.
func (h *ComplaintHandler) Create(c echo.Context) error {
	file, err := c.FormFile("photo")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "No photo file was uploaded"})
	}
	photoURL, err := h.Store.SaveUpload(file)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Photo upload failed"})
	}

	categoryID, _ := strconv.ParseUint(c.FormValue("category_id"), 10, 64)
	cm := &model.Complaint{
		UserID:      callerID(c),
		Subject:     c.FormValue("subject"),
		Description: c.FormValue("description"),
		PhotoURL:    photoURL,
		Location:    c.FormValue("location"),
		CategoryID:  categoryID,
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Complaints.Create(ctx, cm); err != nil {
		if errors.Is(err, repository.ErrMissingFields) {
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Please provide all required fields"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Complaint creation failed"})
	}

	if h.Publish != nil {
		_ = h.Publish(ctx, queue.ComplaintCreatedEvent{
			ComplaintID: cm.ID,
			UserID:      cm.UserID,
			CategoryID:  cm.CategoryID,
			Subject:     cm.Subject,
			Location:    cm.Location,
			CreatedAt:   cm.CreatedAt.UTC().Format(time.RFC3339),
		})
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "message": "Complaint created successfully", "data": cm})
}

// List returns every complaint, newest first.
func (h *ComplaintHandler) List(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	out, err := h.Complaints.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to retrieve complaints"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": out})
}

// ListMine returns the authenticated caller's complaints, newest first.
func (h *ComplaintHandler) ListMine(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	out, err := h.Complaints.ListByOwner(ctx, callerID(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to retrieve user complaints"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": out})
}

// ListByCategory returns the complaints for one category. An empty
// result is reported as 404 whether or not the category exists; see
// the repository note before "fixing" this.
func (h *ComplaintHandler) ListByCategory(c echo.Context) error {
	categoryID, err := pathID(c, "category_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid category id"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	out, err := h.Complaints.ListByCategory(ctx, categoryID)
	if err != nil {
		if errors.Is(err, repository.ErrNoComplaintsInCategory) {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "No complaints found for this category"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to retrieve complaints by category"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": out})
}

// Get returns a single complaint by id.
func (h *ComplaintHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid complaint id"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	cm, err := h.Complaints.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrComplaintNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Complaint not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to retrieve complaint"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": cm})
}

type updateComplaintReq struct {
	Subject     *string `json:"subject"`
	Description *string `json:"description"`
	Location    *string `json:"location"`
	Status      *string `json:"status"`
	CategoryID  *uint64 `json:"category_id"`
}

// Update applies a partial update; in practice clients patch status.
func (h *ComplaintHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid complaint id"})
	}
	var req updateComplaintReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid request body"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.checkOwnership(ctx, c, id); err != nil {
		return h.ownershipResponse(c, err)
	}

	cm, err := h.Complaints.Update(ctx, id, repository.ComplaintPatch{
		Subject:     req.Subject,
		Description: req.Description,
		Location:    req.Location,
		Status:      req.Status,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNoFields):
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "No fields to update"})
		case errors.Is(err, repository.ErrComplaintNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Complaint not found"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to update complaint"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Complaint updated successfully", "data": cm})
}

// Delete removes a complaint by id.
func (h *ComplaintHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid complaint id"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.checkOwnership(ctx, c, id); err != nil {
		return h.ownershipResponse(c, err)
	}

	if err := h.Complaints.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrComplaintNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Complaint not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to delete complaint"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Complaint deleted successfully"})
}

// checkOwnership loads the complaint and compares its owner to the
// caller. It is a no-op unless EnforceOwnership is set.
func (h *ComplaintHandler) checkOwnership(ctx context.Context, c echo.Context, id uint64) error {
	if !h.EnforceOwnership {
		return nil
	}
	cm, err := h.Complaints.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if cm.UserID != callerID(c) {
		return repository.ErrForbidden
	}
	return nil
}

func (h *ComplaintHandler) ownershipResponse(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"success": false, "message": "You do not own this complaint"})
	case errors.Is(err, repository.ErrComplaintNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Complaint not found"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to verify ownership"})
	}
}
