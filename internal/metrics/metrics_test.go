package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstrumentHandlerUsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(InstrumentHandler)
	r.Get("/products/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	before := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/products/{id}", "418"))
	for _, id := range []string{"1", "2"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products/"+id, nil))
		require.Equal(t, http.StatusTeapot, rec.Code)
	}

	after := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/products/{id}", "418"))
	assert.Equal(t, before+2, after)
}

func TestInventoryChangedSplitsDirection(t *testing.T) {
	out := inventoryChanges.WithLabelValues("appointment usage", "out")
	in := inventoryChanges.WithLabelValues("appointment usage", "in")
	outBefore, inBefore := testutil.ToFloat64(out), testutil.ToFloat64(in)

	InventoryChanged("appointment usage", -3)
	InventoryChanged("appointment usage", 2)

	assert.Equal(t, outBefore+3, testutil.ToFloat64(out))
	assert.Equal(t, inBefore+2, testutil.ToFloat64(in))
}

func TestHandlerExposesDomainCounters(t *testing.T) {
	LowStockAlert()

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "appointment_tracker_low_stock_alerts_total"))
}
