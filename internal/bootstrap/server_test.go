package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Domenick1991/goaholidays/config"
	"github.com/Domenick1991/goaholidays/internal/domain"
	"github.com/Domenick1991/goaholidays/internal/metrics"
	"github.com/Domenick1991/goaholidays/internal/service/booking"
	"github.com/Domenick1991/goaholidays/internal/service/enquiry"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, cfg *config.Config, connect bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := OpenStore(context.Background(), config.DatabaseConfig{Driver: config.DriverMemory})
	require.NoError(t, err)

	if connect {
		ctx, cancel := context.WithCancel(context.Background())
		t.Cleanup(cancel)
		go func() { _ = store.Supervisor.Run(ctx) }()
		require.Eventually(t, store.Supervisor.Ready, time.Second, 5*time.Millisecond)
	}

	return NewRouter(cfg, Services{
		Bookings:  booking.NewBookingService(store.Bookings, store.Supervisor),
		Enquiries: enquiry.NewEnquiryService(store.Enquiries, store.Supervisor),
		Store:     store.Supervisor,
		Metrics:   metrics.New("goa-holiday-packages", store.Supervisor),
	})
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRouter_bookingLifecycle(t *testing.T) {
	cfg := config.Default()
	r := newTestRouter(t, &cfg, true)

	w := do(r, "GET", "/api/bookings", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = do(r, "POST", "/api/bookings",
		`{"name":"Asha Rao","email":"Asha@Example.com","phone":"9876543210","package":"gold","persons":3,"newYearVoucher":true}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created domain.Booking
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "asha@example.com", created.Email)
	assert.Equal(t, "Gold", created.PackageName)
	assert.Equal(t, float64(26000), created.TotalPrice)

	w = do(r, "GET", "/api/bookings/"+created.ID, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = do(r, "DELETE", "/api/bookings/"+created.ID, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Booking deleted successfully")

	w = do(r, "DELETE", "/api/bookings/"+created.ID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_enquiryValidation(t *testing.T) {
	cfg := config.Default()
	r := newTestRouter(t, &cfg, true)

	w := do(r, "POST", "/api/enquiries",
		`{"name":"Ravi","email":"not-an-email","phone":"9123456780","package":"silver","message":"hello"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body struct {
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body.Fields, "email")
}

func TestRouter_storeNotConnected(t *testing.T) {
	cfg := config.Default()
	r := newTestRouter(t, &cfg, false)

	w := do(r, "GET", "/api/bookings", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = do(r, "GET", "/api/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"WARNING"`)

	w = do(r, "GET", "/api/packages", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_metrics(t *testing.T) {
	cfg := config.Default()
	r := newTestRouter(t, &cfg, true)

	do(r, "GET", "/api/health", "")
	w := do(r, "GET", "/metrics", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `http_requests_total{app="goa-holiday-packages",code="200",method="GET",route="/api/health"} 1`)
	assert.Contains(t, w.Body.String(), `database_ready_state{app="goa-holiday-packages"} 1`)
}

func TestRouter_frontendFallback(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>goa</html>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.js"), []byte("console.log(1)"), 0o644))

	cfg := config.Default()
	cfg.HTTP.Mode = config.ModeProduction
	cfg.HTTP.StaticDir = dir
	r := newTestRouter(t, &cfg, true)

	w := do(r, "GET", "/app.js", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "console.log(1)", w.Body.String())

	w = do(r, "GET", "/bookings/summary", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "<html>goa</html>", w.Body.String())

	w = do(r, "GET", "/api/unknown", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_noFrontendOutsideProduction(t *testing.T) {
	cfg := config.Default()
	r := newTestRouter(t, &cfg, true)

	w := do(r, "GET", "/", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOpenStore_unknownDriver(t *testing.T) {
	_, err := OpenStore(context.Background(), config.DatabaseConfig{Driver: "sqlite"})
	assert.Error(t, err)
}
