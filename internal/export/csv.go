// internal/export/csv.go

// Package export renders the live product snapshot for download. Export
// consumers are read-only: they take the current filtered snapshot and
// never write back.
package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/gudangkita/inventory-backend/internal/models"
)

var productHeader = []string{"Name", "Category", "Stock", "Created By"}

// WriteProductsCSV streams the snapshot as CSV in the product table's
// column order.
func WriteProductsCSV(w io.Writer, products []models.Product) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(productHeader); err != nil {
		return err
	}
	for _, p := range products {
		record := []string{p.Name, p.Category, strconv.Itoa(p.Stock), p.CreatedBy}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
