package handlers_test_suite

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"time"

	"github.com/rogerio-castellano/appointment-tracker/internal/auth"
	"github.com/rogerio-castellano/appointment-tracker/internal/booking"
	"github.com/rogerio-castellano/appointment-tracker/internal/config"
	"github.com/rogerio-castellano/appointment-tracker/internal/http/ban"
	handler "github.com/rogerio-castellano/appointment-tracker/internal/http/handlers"
	rl "github.com/rogerio-castellano/appointment-tracker/internal/http/rate_limiter"
	"github.com/rogerio-castellano/appointment-tracker/internal/http/router"
	"github.com/rogerio-castellano/appointment-tracker/internal/models"
	"github.com/rogerio-castellano/appointment-tracker/internal/notify"
	"github.com/rogerio-castellano/appointment-tracker/internal/repo"
	"github.com/rogerio-castellano/appointment-tracker/internal/validator"
)

const (
	adminEmail    = "admin@example.com"
	adminPassword = "secret123"
	staffEmail    = "ana@example.com"
	staffPassword = "secret456"
)

var (
	token      string // admin
	staffToken string
	store      *repo.MemoryStore
	bookingSvc *booking.Service
	r          http.Handler

	adminID, staffID, categoryID int
)

func init() {
	r = newRouter()
	seedFixtures()

	var err error
	if token, err = generateToken(r, adminEmail, adminPassword); err != nil {
		panic(fmt.Sprintf("error generating token: %v", err))
	}
	if staffToken, err = generateToken(r, staffEmail, staffPassword); err != nil {
		panic(fmt.Sprintf("error generating token: %v", err))
	}
}

func newRouter() http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store = repo.NewMemoryStore()
	bookingSvc = booking.NewService(store, notify.NewLogNotifier(logger), logger)

	issuer := auth.NewIssuer("test-secret", 15*time.Minute)
	authSvc := auth.NewService(store, issuer, auth.NewMemoryTokenStore(), time.Hour, logger)
	limits := config.RateLimit{
		RPS:          1000,
		Burst:        1000,
		VisitorTTL:   time.Minute,
		MaxStrikes:   10,
		StrikeWindow: time.Minute,
		BanDuration:  time.Minute,
	}

	srv := handler.NewServer(store, bookingSvc, authSvc, validator.MustNew(), logger)
	return router.NewRouter(router.Deps{
		Server:  srv,
		Issuer:  issuer,
		Limiter: rl.New(limits),
		Guard:   ban.NewGuard(ban.NewMemoryStore(), notify.Multi{}, logger, limits),
		Logger:  logger,
	})
}

// seedFixtures creates the two roles, an admin and a stylist, and one
// category. It is also used to restore the store after a test resets it.
func seedFixtures() {
	ctx := context.Background()
	now := time.Now().UTC()

	adminRole, err := store.Roles().Create(ctx, models.Role{Name: models.AdminRole, CreatedAt: now, UpdatedAt: now})
	must(err)
	staffRole, err := store.Roles().Create(ctx, models.Role{Name: "stylist", CreatedAt: now, UpdatedAt: now})
	must(err)

	adminID = createEmployee(models.Employee{FirstName: "Admin", LastName: "User", Email: adminEmail, RoleID: adminRole.ID}, adminPassword)
	staffID = createEmployee(models.Employee{FirstName: "Ana", LastName: "Pérez", Email: staffEmail, RoleID: staffRole.ID}, staffPassword)

	c, err := store.Categories().Create(ctx, models.Category{Name: "Hair", CreatedAt: now, UpdatedAt: now})
	must(err)
	categoryID = c.ID
}

func createEmployee(e models.Employee, password string) int {
	hash, err := auth.HashPassword(password)
	must(err)
	now := time.Now().UTC()
	e.PasswordHash = hash
	e.PhoneNumber = "5512345678"
	e.Active = true
	e.CreatedAt, e.UpdatedAt = now, now
	created, err := store.Employees().Create(context.Background(), e)
	must(err)
	return created.ID
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// clearAll drops every record and restores the fixtures. Tokens stay valid
// because ids are handed out in the same order.
func clearAll() {
	bookingSvc.Wait()
	store.Reset()
	seedFixtures()
}

func generateToken(r http.Handler, email, password string) (string, error) {
	w := doRequest(r, http.MethodPost, "/sessions", "", map[string]any{"email": email, "password": password})
	if w.Code != http.StatusOK {
		return "", fmt.Errorf("login returned %d: %s", w.Code, w.Body.String())
	}

	var resp handler.SessionResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		return "", fmt.Errorf("token decoding failed: %v", err)
	}
	return resp.Token, nil
}

func doRequest(r http.Handler, method, path, bearer string, payload any) *httptest.ResponseRecorder {
	var body io.Reader
	if payload != nil {
		switch p := payload.(type) {
		case string:
			body = bytes.NewBufferString(p)
		default:
			b, _ := json.Marshal(p)
			body = bytes.NewReader(b)
		}
	}
	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](w *httptest.ResponseRecorder) (T, error) {
	var v T
	err := json.NewDecoder(w.Body).Decode(&v)
	return v, err
}

func createProduct(r http.Handler, p map[string]any) *httptest.ResponseRecorder {
	if _, ok := p["category_id"]; !ok {
		p["category_id"] = categoryID
	}
	if _, ok := p["description"]; !ok {
		p["description"] = "test product"
	}
	return doRequest(r, http.MethodPost, "/products", token, p)
}

func createService(r http.Handler, name string, minutes int) *httptest.ResponseRecorder {
	return doRequest(r, http.MethodPost, "/services", token, map[string]any{
		"name":        name,
		"description": name + " service",
		"price":       250,
		"duration":    minutes,
		"category_id": categoryID,
	})
}

func adjustProduct(r http.Handler, productID int, delta int) *httptest.ResponseRecorder {
	return doRequest(r, http.MethodPost, fmt.Sprintf("/products/%d/adjust", productID), token, map[string]any{"delta": delta})
}

func createAppointment(r http.Handler, payload map[string]any) *httptest.ResponseRecorder {
	return doRequest(r, http.MethodPost, "/appointments", token, payload)
}

func multipartCSV(csvContent string, filename string) (*bytes.Buffer, string) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, _ := writer.CreateFormFile("file", filename)
	part.Write([]byte(csvContent))

	writer.Close()
	return &buf, writer.FormDataContentType()
}

// tomorrowAt returns a UTC time on the next day at the given hour and minute.
func tomorrowAt(hour, minute int) time.Time {
	d := time.Now().UTC().AddDate(0, 0, 1)
	return time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, time.UTC)
}

func itoa(id int) string {
	return strconv.Itoa(id)
}
