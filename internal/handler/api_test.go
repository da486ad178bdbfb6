package handler_test

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/RihamAlgosbi/zawiya-complaints-backend/internal/config"
	"github.com/RihamAlgosbi/zawiya-complaints-backend/internal/handler"
	"github.com/RihamAlgosbi/zawiya-complaints-backend/internal/repository"
	"github.com/RihamAlgosbi/zawiya-complaints-backend/internal/router"
	"github.com/RihamAlgosbi/zawiya-complaints-backend/internal/storage"
)

const apiTestSchema = `
CREATE TABLE users (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	username   TEXT NOT NULL,
	email      TEXT NOT NULL UNIQUE,
	password   TEXT NOT NULL,
	full_name  TEXT,
	role_id    INTEGER,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE categories (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	name        TEXT NOT NULL,
	description TEXT,
	is_active   BOOLEAN NOT NULL DEFAULT 1
);
CREATE TABLE complaints (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id     INTEGER NOT NULL,
	subject     TEXT NOT NULL,
	description TEXT NOT NULL,
	photo_url   TEXT NOT NULL,
	location    TEXT NOT NULL DEFAULT '',
	category_id INTEGER NOT NULL,
	status      TEXT NOT NULL DEFAULT 'pending',
	created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// newTestServer stands up the full API against an in-memory database
// with no Redis and no broker; cache, rate limiting and event
// publishing all degrade to no-ops.
func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	_, err = db.Exec(apiTestSchema)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := config.Config{
		Env:          "test",
		Port:         "0",
		JWTSecret:    "api-test-secret",
		AccessTTLMin: 60,
		BcryptCost:   4,
		UploadDir:    filepath.Join(t.TempDir(), "uploads"),
	}
	store, err := storage.NewLocalStore(cfg.UploadDir)
	require.NoError(t, err)

	users := handler.NewUserHandler(cfg, repository.NewUserRepo(db, cfg.BcryptCost))
	categories := handler.NewCategoryHandler(repository.NewCategoryRepo(db))
	complaints := handler.NewComplaintHandler(repository.NewComplaintRepo(db), store)
	export := handler.NewExportHandler(repository.NewComplaintRepo(db))
	upload := handler.NewUploadHandler(store)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAPI(e, cfg, users, categories, complaints, export, upload, nil)
	return e
}

// doJSON performs a request with an optional JSON body and bearer token.
func doJSON(e *echo.Echo, method, path, token string, body any) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), "body: %s", rec.Body.String())
	return out
}

// registerAndLogin creates an account and returns a valid access token.
func registerAndLogin(t *testing.T, e *echo.Echo, username, email string) string {
	t.Helper()
	rec := doJSON(e, http.MethodPost, "/users/register", "", map[string]string{
		"username": username, "email": email, "password": "s3cret",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(e, http.MethodPost, "/users/login", "", map[string]string{
		"email": email, "password": "s3cret",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	token, _ := decodeBody(t, rec)["token"].(string)
	require.NotEmpty(t, token)
	return token
}

// createCategory inserts a category through the API and returns its id.
func createCategory(t *testing.T, e *echo.Echo, token, name string) uint64 {
	t.Helper()
	rec := doJSON(e, http.MethodPost, "/categories", token, map[string]any{"name": name})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	data := decodeBody(t, rec)["data"].(map[string]any)
	return uint64(data["id"].(float64))
}

// fileComplaint submits a multipart complaint with a small fake photo.
func fileComplaint(t *testing.T, e *echo.Echo, token, subject string, categoryID uint64) map[string]any {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("subject", subject))
	require.NoError(t, mw.WriteField("description", "it is broken"))
	require.NoError(t, mw.WriteField("location", "downtown"))
	require.NoError(t, mw.WriteField("category_id", fmt.Sprint(categoryID)))
	part, err := mw.CreateFormFile("photo", "evidence.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("not really a jpeg"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/complaints", &buf)
	req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeBody(t, rec)["data"].(map[string]any)
}

func TestRegisterAndLogin(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/users/register", "", map[string]string{
		"username": "amal", "email": "amal@example.com", "password": "s3cret",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	require.Equal(t, true, body["success"])
	require.NotContains(t, rec.Body.String(), "s3cret")

	// Same email again is a conflict.
	rec = doJSON(e, http.MethodPost, "/users/register", "", map[string]string{
		"username": "other", "email": "amal@example.com", "password": "different",
	})
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, "User already exists with this email", decodeBody(t, rec)["message"])

	// Wrong password and unknown email look identical.
	rec = doJSON(e, http.MethodPost, "/users/login", "", map[string]string{
		"email": "amal@example.com", "password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "Invalid credentials", decodeBody(t, rec)["message"])

	rec = doJSON(e, http.MethodPost, "/users/login", "", map[string]string{
		"email": "nobody@example.com", "password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "Invalid credentials", decodeBody(t, rec)["message"])
}

func TestAuthGate(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodGet, "/complaints", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "Authentication token is required", decodeBody(t, rec)["message"])

	rec = doJSON(e, http.MethodGet, "/complaints", "not-a-jwt", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "Invalid or expired token", decodeBody(t, rec)["message"])

	token := registerAndLogin(t, e, "amal", "amal@example.com")
	rec = doJSON(e, http.MethodGet, "/auth/verify", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, "Token is valid", decodeBody(t, rec)["message"])
}

func TestCategoriesPublicListing(t *testing.T) {
	e := newTestServer(t)
	token := registerAndLogin(t, e, "amal", "amal@example.com")
	createCategory(t, e, token, "roads")

	// Listing needs no token.
	rec := doJSON(e, http.MethodGet, "/categories", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeBody(t, rec)["data"].([]any)
	require.Len(t, data, 1)

	// Creating does.
	rec = doJSON(e, http.MethodPost, "/categories", "", map[string]any{"name": "water"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestComplaintLifecycle(t *testing.T) {
	e := newTestServer(t)
	token := registerAndLogin(t, e, "amal", "amal@example.com")
	cid := createCategory(t, e, token, "roads")

	created := fileComplaint(t, e, token, "Broken street light", cid)
	require.Equal(t, "pending", created["status"])
	id := uint64(created["id"].(float64))
	require.True(t, strings.HasPrefix(created["photo_url"].(string), "uploads/"))

	rec := doJSON(e, http.MethodGet, fmt.Sprintf("/complaints/%d", id), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(e, http.MethodPatch, fmt.Sprintf("/complaints/%d", id), token,
		map[string]string{"status": "resolved"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decodeBody(t, rec)["data"].(map[string]any)
	require.Equal(t, "resolved", updated["status"])
	require.Equal(t, "Broken street light", updated["subject"])

	rec = doJSON(e, http.MethodGet, "/complaints/my", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decodeBody(t, rec)["data"].([]any), 1)

	rec = doJSON(e, http.MethodDelete, fmt.Sprintf("/complaints/%d", id), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(e, http.MethodGet, fmt.Sprintf("/complaints/%d", id), token, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "Complaint not found", decodeBody(t, rec)["message"])
}

func TestComplaintCreate_NoPhoto(t *testing.T) {
	e := newTestServer(t)
	token := registerAndLogin(t, e, "amal", "amal@example.com")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("subject", "no photo"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/complaints", &buf)
	req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "No photo file was uploaded", decodeBody(t, rec)["message"])
}

func TestListByCategory_EmptyIs404(t *testing.T) {
	e := newTestServer(t)
	token := registerAndLogin(t, e, "amal", "amal@example.com")
	cid := createCategory(t, e, token, "roads")

	rec := doJSON(e, http.MethodGet, fmt.Sprintf("/complaints/category/%d", cid), "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "No complaints found for this category", decodeBody(t, rec)["message"])

	fileComplaint(t, e, token, "pothole", cid)
	rec = doJSON(e, http.MethodGet, fmt.Sprintf("/complaints/category/%d", cid), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decodeBody(t, rec)["data"].([]any), 1)
}

func TestExportCSV(t *testing.T) {
	e := newTestServer(t)
	token := registerAndLogin(t, e, "amal", "amal@example.com")
	cid := createCategory(t, e, token, "roads")

	// Format is validated before anything else.
	rec := doJSON(e, http.MethodGet, "/reports/export?format=xml", token, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "Invalid format specified. Only CSV is supported.", decodeBody(t, rec)["message"])

	// Nothing to export yet: an empty document, no header row.
	rec = doJSON(e, http.MethodGet, "/reports/export?format=csv", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "", rec.Body.String())

	fileComplaint(t, e, token, "pothole on main", cid)

	rec = doJSON(e, http.MethodGet, "/reports/export?format=csv", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get(echo.HeaderContentType), "text/csv")
	require.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "complaints.csv")
	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Len(t, lines, 2)
	require.True(t, strings.HasPrefix(lines[0], "id,"), "header row: %q", lines[0])
	require.Contains(t, lines[1], "pothole on main")
}

func TestUserAdmin(t *testing.T) {
	e := newTestServer(t)
	token := registerAndLogin(t, e, "amal", "amal@example.com")

	rec := doJSON(e, http.MethodGet, "/users", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decodeBody(t, rec)["data"].([]any)
	require.Len(t, list, 1)
	require.NotContains(t, rec.Body.String(), "password")

	id := uint64(list[0].(map[string]any)["id"].(float64))

	rec = doJSON(e, http.MethodPut, fmt.Sprintf("/users/%d", id), token,
		map[string]any{"full_name": "Amal Haddad"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	data := decodeBody(t, rec)["data"].(map[string]any)
	require.Equal(t, "Amal Haddad", data["full_name"])

	// Empty patch is rejected.
	rec = doJSON(e, http.MethodPut, fmt.Sprintf("/users/%d", id), token, map[string]any{})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "No fields to update", decodeBody(t, rec)["message"])

	rec = doJSON(e, http.MethodDelete, fmt.Sprintf("/users/%d", id), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(e, http.MethodDelete, fmt.Sprintf("/users/%d", id), token, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}
