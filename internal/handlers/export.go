// internal/handlers/export.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gudangkita/inventory-backend/internal/export"
	"github.com/gudangkita/inventory-backend/internal/projector"
)

type ExportHandler struct {
	view *projector.ProductView
}

func NewExportHandler(view *projector.ProductView) *ExportHandler {
	return &ExportHandler{view: view}
}

// GET /export/products.csv
//
// Streams the current filtered snapshot; the export consumer is read-only
// and sees exactly what the product table shows.
func (h *ExportHandler) ExportProductsCSV(c *gin.Context) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="products.csv"`)
	c.Status(http.StatusOK)

	if err := export.WriteProductsCSV(c.Writer, h.view.Snapshot()); err != nil {
		// Headers are already out; the best we can do is log via gin's
		// error list and cut the stream short.
		_ = c.Error(err)
	}
}
