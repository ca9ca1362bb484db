package handlers

import (
	"encoding/csv"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/rogerio-castellano/appointment-tracker/internal/models"
	"github.com/rogerio-castellano/appointment-tracker/internal/repo"
)

// AdjustQuantityHandler godoc
// @Summary Adjust the stock of a product
// @Tags inventory
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param adjustment body QuantityAdjustmentRequest true "Stock change"
// @Success 200 {object} ProductResponse
// @Failure 400 {string} string "Invalid adjustment"
// @Failure 404 {string} string "Not found"
// @Failure 409 {string} string "Stock cannot be negative"
// @Failure 500 {string} string "Internal error"
// @Router /products/{id}/adjust [post]
// @Security BearerAuth
func (s *Server) AdjustQuantityHandler(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
		return
	}

	var req QuantityAdjustmentRequest
	if err := readJSON(w, r, "adjustment", &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	if !s.validate(w, r, req) {
		return
	}

	product, err := s.booking.AdjustStock(r.Context(), id, int(req.Delta), req.Reason)
	if err != nil {
		s.writeError(w, r, err, "product")
		return
	}
	s.writeJSON(w, r, http.StatusOK, toProductResponse(product))
}

func movementFilter(r *http.Request) (repo.MovementFilter, error) {
	q := r.URL.Query()
	var (
		mf  repo.MovementFilter
		err error
	)
	if mf.Since, err = queryTime(q, "since"); err != nil {
		return mf, err
	}
	if mf.Until, err = queryTime(q, "until"); err != nil {
		return mf, err
	}
	return mf, nil
}

// GetMovementsHandler godoc
// @Summary Get product inventory logs
// @Tags movements
// @Produce json
// @Param id path int true "Product ID"
// @Param since query string false "Filter movements from this timestamp (RFC3339)"
// @Param until query string false "Filter movements until this timestamp (RFC3339)"
// @Param offset query int false "Offset for pagination"
// @Param limit query int false "Limit for pagination"
// @Success 200 {object} MovementsSearchResult
// @Failure 400 {string} string "Invalid input"
// @Failure 404 {string} string "Product not found"
// @Failure 500 {string} string "Internal error"
// @Router /products/{id}/movements [get]
// @Security BearerAuth
func (s *Server) GetMovementsHandler(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
		return
	}

	if _, err := s.store.Products().GetByID(r.Context(), id); err != nil {
		s.writeError(w, r, err, "product")
		return
	}

	mf, err := movementFilter(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if mf.Offset, mf.Limit, err = pagination(r.URL.Query()); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	logs, total, err := s.store.InventoryLogs().GetByProductID(r.Context(), id, mf)
	if err != nil {
		s.writeError(w, r, err, "product")
		return
	}
	s.writeJSON(w, r, http.StatusOK, MovementsSearchResult{Data: logs, Meta: Meta{TotalCount: total}})
}

// allMovements pages through every log matching mf.
func (s *Server) allMovements(r *http.Request, productID int, mf repo.MovementFilter) ([]models.InventoryLog, error) {
	var all []models.InventoryLog
	for {
		offset := len(all)
		mf.Offset = &offset
		page, total, err := s.store.InventoryLogs().GetByProductID(r.Context(), productID, mf)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) == 0 || len(all) >= total {
			return all, nil
		}
	}
}

// ExportMovementsHandler godoc
// @Summary Export product inventory logs
// @Tags movements
// @Produce text/csv, application/json
// @Param id path int true "Product ID"
// @Param format query string true "Export format (csv or json)"
// @Param since query string false "Filter from timestamp (RFC3339)"
// @Param until query string false "Filter until timestamp (RFC3339)"
// @Success 200 {file} file
// @Failure 400 {string} string "Invalid input"
// @Failure 404 {string} string "Product not found"
// @Failure 500 {string} string "Internal error"
// @Router /products/{id}/movements/export [get]
// @Security BearerAuth
func (s *Server) ExportMovementsHandler(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
		return
	}

	format := r.URL.Query().Get("format")
	if format != "csv" && format != "json" {
		http.Error(w, "format must be 'csv' or 'json'", http.StatusBadRequest)
		return
	}
	mf, err := movementFilter(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if _, err := s.store.Products().GetByID(r.Context(), id); err != nil {
		s.writeError(w, r, err, "product")
		return
	}

	logs, err := s.allMovements(r, id, mf)
	if err != nil {
		s.writeError(w, r, err, "product")
		return
	}

	switch format {
	case "json":
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", `attachment; filename="movements.json"`)
		if logs == nil {
			logs = []models.InventoryLog{}
		}
		if err := json.NewEncoder(w).Encode(logs); err != nil {
			s.logger.WarnContext(r.Context(), "movement export failed", slog.Any("error", err))
		}

	case "csv":
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="movements.csv"`)

		csvWriter := csv.NewWriter(w)
		_ = csvWriter.Write([]string{"id", "product_id", "appointment_id", "change", "reason", "created_at"})
		for _, l := range logs {
			appointmentID := ""
			if l.AppointmentID != nil {
				appointmentID = strconv.Itoa(*l.AppointmentID)
			}
			_ = csvWriter.Write([]string{
				strconv.Itoa(l.ID),
				strconv.Itoa(l.ProductID),
				appointmentID,
				strconv.Itoa(l.Change),
				l.Reason,
				l.CreatedAt.Format(time.RFC3339),
			})
		}
		csvWriter.Flush()
		if err := csvWriter.Error(); err != nil {
			s.logger.WarnContext(r.Context(), "movement export failed", slog.Any("error", err))
		}
	}
}
