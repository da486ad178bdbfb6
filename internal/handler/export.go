package handler

import (
	"encoding/csv"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/RihamAlgosbi/zawiya-complaints-backend/internal/repository"
)

// ExportHandler serves the filtered complaint export.
type ExportHandler struct {
	Complaints *repository.ComplaintRepo
}

func NewExportHandler(complaints *repository.ComplaintRepo) *ExportHandler {
	return &ExportHandler{Complaints: complaints}
}

// Export streams matching complaints as a CSV attachment. The format
// parameter is validated before any query runs; only "csv" is
// supported. Optional category_id, date_from and date_to narrow the
// result, bound in the order supplied, newest first.
func (h *ExportHandler) Export(c echo.Context) error {
	if c.QueryParam("format") != "csv" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid format specified. Only CSV is supported."})
	}

	var f repository.ExportFilter
	if s := c.QueryParam("category_id"); s != "" {
		id, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid category id"})
		}
		f.CategoryID = &id
	}
	if s := c.QueryParam("date_from"); s != "" {
		f.DateFrom = &s
	}
	if s := c.QueryParam("date_to"); s != "" {
		f.DateTo = &s
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	cols, rows, err := h.Complaints.Export(ctx, f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to export reports"})
	}

	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename=complaints.csv`)
	c.Response().WriteHeader(http.StatusOK)

	w := csv.NewWriter(c.Response())
	if len(cols) > 0 {
		if err := w.Write(cols); err != nil {
			return err
		}
	}
	for _, rec := range rows {
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
