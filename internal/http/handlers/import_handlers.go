package handlers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/rogerio-castellano/appointment-tracker/internal/models"
	"github.com/rogerio-castellano/appointment-tracker/internal/repo"
)

const maxImportBytes = 10 << 20

type csvRow struct {
	Name        string
	Description string
	Price       float64
	Stock       int
	Threshold   *int
	Category    string
}

var requiredColumns = []string{"name", "description", "price", "stock", "category"}

func parseCSV(file io.Reader) ([]csvRow, []ImportValidationError, error) {
	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	headers, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("invalid CSV header")
	}

	index := map[string]int{}
	for i, h := range headers {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, nil, fmt.Errorf("missing CSV column %q", col)
		}
	}

	field := func(record []string, col string) string {
		i, ok := index[col]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var (
		rows    []csvRow
		rowErrs []ImportValidationError
	)
	for rowNum := 2; ; rowNum++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("CSV read error: %v", err)
		}

		row, err := toRow(field, record)
		if err != nil {
			rowErrs = append(rowErrs, ImportValidationError{Row: rowNum, Description: err.Error()})
			rows = append(rows, csvRow{})
			continue
		}
		rows = append(rows, row)
	}
	return rows, rowErrs, nil
}

func toRow(field func([]string, string) string, record []string) (csvRow, error) {
	row := csvRow{
		Name:        field(record, "name"),
		Description: field(record, "description"),
		Category:    field(record, "category"),
	}
	var err error
	if row.Price, err = strconv.ParseFloat(field(record, "price"), 64); err != nil {
		return row, errors.New("invalid price")
	}
	if row.Stock, err = strconv.Atoi(field(record, "stock")); err != nil {
		return row, errors.New("invalid stock")
	}
	if s := field(record, "low_stock_threshold"); s != "" {
		t, err := strconv.Atoi(s)
		if err != nil {
			return row, errors.New("invalid low_stock_threshold")
		}
		row.Threshold = &t
	}
	return row, validateRow(row)
}

func validateRow(r csvRow) error {
	switch {
	case r.Name == "":
		return errors.New("missing name")
	case r.Description == "":
		return errors.New("missing description")
	case r.Category == "":
		return errors.New("missing category")
	case r.Price < 0:
		return errors.New("invalid price")
	case r.Stock < 0:
		return errors.New("invalid stock")
	case r.Threshold != nil && *r.Threshold < 0:
		return errors.New("invalid low_stock_threshold")
	}
	return nil
}

// ImportProductsHandler godoc
// @Summary Import products via CSV
// @Description Columns: name, description, price, stock, low_stock_threshold (optional), category (name).
// @Tags import
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV file"
// @Param mode query string false "Import mode (skip|update)"
// @Success 200 {object} ImportProductsResult
// @Failure 400 {string} string "Invalid file"
// @Failure 403 {string} string "Forbidden"
// @Failure 500 {string} string "Internal error"
// @Router /products/import [post]
// @Security BearerAuth
func (s *Server) ImportProductsHandler(w http.ResponseWriter, r *http.Request) {
	mode := strings.ToLower(r.URL.Query().Get("mode"))
	if mode != "update" {
		mode = "skip" // default
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxImportBytes)
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	records, errorsList, err := parseCSV(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	failed := map[int]bool{}
	for _, e := range errorsList {
		failed[e.Row] = true
	}

	ctx := r.Context()
	categories := map[string]int{}
	var imported int

	for i, rec := range records {
		rowNum := i + 2 // header is row 1
		if failed[rowNum] {
			continue
		}
		rowErr := func(format string, args ...any) {
			errorsList = append(errorsList, ImportValidationError{Row: rowNum, Description: fmt.Sprintf(format, args...)})
		}

		categoryID, ok := categories[strings.ToLower(rec.Category)]
		if !ok {
			c, err := s.store.Categories().GetByName(ctx, rec.Category)
			if err != nil {
				rowErr("category '%s' does not exist", rec.Category)
				continue
			}
			categoryID = c.ID
			categories[strings.ToLower(rec.Category)] = categoryID
		}

		now := time.Now().UTC()
		existing, err := s.store.Products().GetByName(ctx, rec.Name)
		switch {
		case err == nil:
			if mode == "skip" {
				rowErr("product '%s' already exists", rec.Name)
				continue
			}
			delta := rec.Stock - existing.Stock
			existing.Description = rec.Description
			existing.Price = rec.Price
			existing.CategoryID = categoryID
			if rec.Threshold != nil {
				existing.LowStockThreshold = *rec.Threshold
			}
			existing.UpdatedAt = now
			if _, err := s.store.Products().Update(ctx, existing); err != nil {
				rowErr("failed to update '%s'", rec.Name)
				continue
			}
			if delta != 0 {
				if _, err := s.booking.AdjustStock(ctx, existing.ID, delta, models.ReasonImport); err != nil {
					rowErr("failed to update stock of '%s': %v", rec.Name, err)
					continue
				}
			}
		case errors.Is(err, repo.ErrProductNotFound):
			threshold := s.defaultThreshold
			if rec.Threshold != nil {
				threshold = *rec.Threshold
			}
			_, err := s.store.Products().Create(ctx, models.Product{
				Name:              rec.Name,
				Description:       rec.Description,
				Price:             rec.Price,
				Stock:             rec.Stock,
				LowStockThreshold: threshold,
				CategoryID:        categoryID,
				Active:            true,
				CreatedAt:         now,
				UpdatedAt:         now,
			})
			if err != nil {
				rowErr("failed to create '%s'", rec.Name)
				continue
			}
		default:
			s.writeError(w, r, err, "product")
			return
		}
		imported++
	}

	if errorsList == nil {
		errorsList = []ImportValidationError{}
	}
	slices.SortStableFunc(errorsList, func(a, b ImportValidationError) int { return a.Row - b.Row })
	s.writeJSON(w, r, http.StatusOK, ImportProductsResult{
		ImportedProductsCount: imported,
		Errors:                errorsList,
	})
}
