package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/rogerio-castellano/appointment-tracker/internal/metrics"
	"github.com/rogerio-castellano/appointment-tracker/internal/models"
	"github.com/rogerio-castellano/appointment-tracker/internal/notify"
	"github.com/rogerio-castellano/appointment-tracker/internal/repo"
)

// changeStock applies delta to one product inside tx and writes the matching
// inventory log. It returns the updated product.
func (s *Service) changeStock(ctx context.Context, tx repo.Store, productID, delta int, reason string, appointmentID *int) (models.Product, error) {
	p, err := tx.Products().AdjustStock(ctx, productID, delta)
	switch {
	case errors.Is(err, repo.ErrInvalidQuantityChange):
		name := fmt.Sprintf("#%d", productID)
		if current, getErr := tx.Products().GetByID(ctx, productID); getErr == nil {
			name = current.Name
		}
		return models.Product{}, conflict("products", "insufficient stock for product %s", name)
	case errors.Is(err, repo.ErrProductNotFound):
		return models.Product{}, invalid("products", "product %d does not exist", productID)
	case err != nil:
		return models.Product{}, fmt.Errorf("adjust stock of product %d: %w", productID, err)
	}

	entry := models.InventoryLog{
		ProductID:     productID,
		AppointmentID: appointmentID,
		Change:        delta,
		Reason:        reason,
		CreatedAt:     s.now().UTC(),
	}
	if err := tx.InventoryLogs().Log(ctx, entry); err != nil {
		return models.Product{}, err
	}
	metrics.InventoryChanged(reason, delta)
	return p, nil
}

// deduct removes the quantities of lines from stock and returns an alert for
// every product left below its threshold.
func (s *Service) deduct(ctx context.Context, tx repo.Store, appointmentID int, lines []models.AppointmentProduct) ([]notify.LowStockAlert, error) {
	var alerts []notify.LowStockAlert
	for _, l := range lines {
		p, err := s.changeStock(ctx, tx, l.ProductID, -l.Quantity, models.ReasonAppointmentUsage, &appointmentID)
		if err != nil {
			return nil, err
		}
		s.logger.InfoContext(ctx, "stock deducted",
			slog.Int("appointment_id", appointmentID),
			slog.Int("product_id", p.ID),
			slog.Int("quantity", l.Quantity),
			slog.Int("stock", p.Stock))
		if p.IsLowStock() {
			alerts = append(alerts, lowStockAlert(p, &appointmentID, s.now()))
		}
	}
	return alerts, nil
}

// restore gives the quantities of lines back to stock.
func (s *Service) restore(ctx context.Context, tx repo.Store, appointmentID int, lines []models.AppointmentProduct) error {
	for _, l := range lines {
		p, err := s.changeStock(ctx, tx, l.ProductID, l.Quantity, models.ReasonAppointmentCancel, &appointmentID)
		if err != nil {
			return err
		}
		s.logger.InfoContext(ctx, "stock restored",
			slog.Int("appointment_id", appointmentID),
			slog.Int("product_id", p.ID),
			slog.Int("quantity", l.Quantity),
			slog.Int("stock", p.Stock))
	}
	return nil
}

func lowStockAlert(p models.Product, appointmentID *int, at time.Time) notify.LowStockAlert {
	return notify.LowStockAlert{
		ProductID:     p.ID,
		ProductName:   p.Name,
		Stock:         p.Stock,
		Threshold:     p.LowStockThreshold,
		AppointmentID: appointmentID,
		At:            at.UTC(),
	}
}

// AdjustStock applies a manual stock change. An empty reason records a
// manual adjustment.
func (s *Service) AdjustStock(ctx context.Context, productID, delta int, reason string) (models.Product, error) {
	if delta == 0 {
		return models.Product{}, invalid("delta", "must not be zero")
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = models.ReasonManualAdjustment
	}

	var (
		product models.Product
		alerts  []notify.LowStockAlert
	)
	err := s.store.WithTx(ctx, func(tx repo.Store) error {
		if _, err := tx.Products().GetByID(ctx, productID); err != nil {
			if errors.Is(err, repo.ErrProductNotFound) {
				return notFound("id", "product not found")
			}
			return err
		}
		p, err := s.changeStock(ctx, tx, productID, delta, reason, nil)
		if err != nil {
			if be, ok := AsError(err); ok && be.Kind == KindConflict {
				return conflict("delta", "stock cannot go below zero")
			}
			return err
		}
		product = p
		if delta < 0 && p.IsLowStock() {
			alerts = append(alerts, lowStockAlert(p, nil, s.now()))
		}
		return nil
	})
	if err != nil {
		return models.Product{}, err
	}

	s.logger.InfoContext(ctx, "stock adjusted", slog.Int("product_id", productID), slog.Int("delta", delta), slog.String("reason", reason))
	s.dispatch(ctx, alerts)
	return product, nil
}
