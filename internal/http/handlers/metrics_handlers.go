package handlers

import (
	"net/http"
)

// GetDashboardMetricsHandler godoc
// @Summary Dashboard counters
// @Tags metrics
// @Produce json
// @Success 200 {object} repo.Metrics
// @Failure 500 {string} string "Internal error"
// @Router /metrics/dashboard [get]
// @Security BearerAuth
func (s *Server) GetDashboardMetricsHandler(w http.ResponseWriter, r *http.Request) {
	m, err := s.store.Metrics().GetDashboardMetrics(r.Context())
	if err != nil {
		s.writeError(w, r, err, "metrics")
		return
	}
	s.writeJSON(w, r, http.StatusOK, m)
}
