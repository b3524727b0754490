// Package testutil runs the full router against an in-memory database so
// handler tests exercise the same middleware chain as production.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/cse-dept/cms-api/api"
	"github.com/cse-dept/cms-api/config"
	"github.com/cse-dept/cms-api/database"
	"github.com/cse-dept/cms-api/model"
	"github.com/cse-dept/cms-api/router"
	"github.com/cse-dept/cms-api/services/search"
	"github.com/cse-dept/cms-api/services/storage"
	"github.com/cse-dept/cms-api/testutil/testdb"
	"github.com/cse-dept/cms-api/utils/auth"
	"github.com/cse-dept/cms-api/utils/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	AdminEmail    = "admin@cse.example.edu"
	AdminPassword = "admin-password-123"
	EditorEmail   = "editor@cse.example.edu"
)

// Server is a routed app plus the handles tests need to inspect state
type Server struct {
	App         *fiber.App
	DB          *gorm.DB
	Files       *storage.LocalStore
	Audit       *middleware.AuditTrail
	JWT         *auth.JWTManager
	Admin       *model.User
	AdminToken  string
	EditorToken string
}

// Env returns settings suitable for tests
func Env() *config.EnvironmentVariable {
	return &config.EnvironmentVariable{
		GO_ENV:           "test",
		DB_DRIVER:        "sqlite",
		STORAGE_DRIVER:   "local",
		MAX_UPLOAD_MB:    20,
		JWT_SECRET:       "test-secret-do-not-use",
		JWT_ISSUER:       "cse-cms-test",
		JWT_EXPIRY:       time.Hour,
		PUBLIC_CACHE_TTL: time.Minute,
	}
}

// NewServer builds the app with an admin and an editor account
func NewServer(t testing.TB) *Server {
	t.Helper()

	db := testdb.Open(t)
	env := Env()

	jwtManager := auth.NewJWTManager(auth.JWTConfig{
		Secret: env.JWT_SECRET,
		Expiry: env.JWT_EXPIRY,
		Issuer: env.JWT_ISSUER,
	})
	files := storage.NewLocalStore(t.TempDir(), "")
	audit := middleware.NewAuditTrail(db)
	// registered after testdb.Open, so it runs before the database closes
	t.Cleanup(audit.Wait)

	server := api.NewAPIServer(":0", env, nil)
	app := server.GetEngine()
	router.SetupRoutes(app, router.Dependencies{
		Store:         database.NewGORMStore(db),
		Env:           env,
		JWTManager:    jwtManager,
		Files:         files,
		Indexer:       search.NewDBIndexer(db),
		Audit:         audit,
		DisableLogger: true,
	})

	s := &Server{
		App:   app,
		DB:    db,
		Files: files,
		Audit: audit,
		JWT:   jwtManager,
	}
	s.Admin = s.CreateUser(t, AdminEmail, AdminPassword, model.RoleAdmin)
	s.AdminToken = s.Token(t, s.Admin)
	s.EditorToken = s.Token(t, s.CreateUser(t, EditorEmail, "editor-password-123", model.RoleEditor))
	return s
}

// CreateUser inserts an account with a hashed password
func (s *Server) CreateUser(t testing.TB, email, password, role string) *model.User {
	t.Helper()
	hash, err := auth.HashPasswordCost(password, bcrypt.MinCost)
	require.NoError(t, err)
	user := &model.User{Email: email, PasswordHash: hash, Name: role + " user", Role: role}
	require.NoError(t, s.DB.Create(user).Error)
	return user
}

// Token issues a bearer token for user
func (s *Server) Token(t testing.TB, user *model.User) string {
	t.Helper()
	issued, err := s.JWT.Issue(user.ID, user.Email, user.Role, user.TokenVersion)
	require.NoError(t, err)
	return issued.Token
}

// Result is a decoded response
type Result struct {
	Status int
	Header http.Header
	Body   map[string]interface{}
	Raw    []byte
}

// Data returns the "data" field as an object
func (r Result) Data(t testing.TB) map[string]interface{} {
	t.Helper()
	data, ok := r.Body["data"].(map[string]interface{})
	require.True(t, ok, "data is not an object: %s", r.Raw)
	return data
}

// List returns the "data" field as an array
func (r Result) List(t testing.TB) []interface{} {
	t.Helper()
	data, ok := r.Body["data"].([]interface{})
	require.True(t, ok, "data is not an array: %s", r.Raw)
	return data
}

// Do sends a request through the app
func (s *Server) Do(t testing.TB, req *http.Request, token string) Result {
	t.Helper()
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := s.App.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	result := Result{Status: resp.StatusCode, Header: resp.Header, Raw: raw}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &result.Body), "body: %s", raw)
	}
	return result
}

// JSON sends payload encoded as JSON. A nil payload sends no body.
func (s *Server) JSON(t testing.TB, method, path string, payload interface{}, token string) Result {
	t.Helper()
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(encoded)
	}
	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	return s.Do(t, req, token)
}

// Get sends an anonymous GET
func (s *Server) Get(t testing.TB, path string) Result {
	t.Helper()
	return s.JSON(t, http.MethodGet, path, nil, "")
}

// File is one multipart file part
type File struct {
	Field    string
	Filename string
	Content  []byte
}

// Multipart sends fields and files as multipart/form-data
func (s *Server) Multipart(t testing.TB, method, path string, fields map[string]string, files []File, token string) Result {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	for _, f := range files {
		part, err := writer.CreateFormFile(f.Field, f.Filename)
		require.NoError(t, err)
		_, err = part.Write(f.Content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(fiber.HeaderContentType, writer.FormDataContentType())
	return s.Do(t, req, token)
}

// StoredPath maps a URL returned by the local store to its file on disk
func (s *Server) StoredPath(url string) string {
	key := strings.TrimPrefix(url, storage.PublicPrefix+"/")
	return filepath.Join(s.Files.Root(), filepath.FromSlash(key))
}

// FileExists reports whether the file behind a stored URL is on disk
func (s *Server) FileExists(url string) bool {
	_, err := os.Stat(s.StoredPath(url))
	return err == nil
}
