package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/Franklin-pro/simpo-planet-studio-bn/config"
	"github.com/Franklin-pro/simpo-planet-studio-bn/db"
	"github.com/Franklin-pro/simpo-planet-studio-bn/models"
	"github.com/Franklin-pro/simpo-planet-studio-bn/storage"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	seedEmail    = "root@example.com"
	seedPassword = "root-password"
	mediaURL     = "http://localhost:8080/media"
)

type envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Error   string            `json:"error"`
	Fields  map[string]string `json:"fields"`
}

type testServer struct {
	t       *testing.T
	router  *gin.Engine
	cookies map[string]*http.Cookie
}

func setValue[T any](t *testing.T, target *T, value T) {
	old := *target
	*target = value
	t.Cleanup(func() { *target = old })
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	instance, err := db.OpenInMemory(name)
	require.NoError(t, err)
	setValue(t, &db.Instance, instance)
	t.Cleanup(func() {
		if sqlDB, err := instance.DB(); err == nil {
			sqlDB.Close()
		}
	})

	setValue(t, &config.ADMIN_SEED_EMAIL, seedEmail)
	setValue(t, &config.ADMIN_SEED_PASSWORD, seedPassword)
	require.NoError(t, models.Init())

	disk, err := storage.NewDiskStorage(t.TempDir(), mediaURL)
	require.NoError(t, err)
	setValue[storage.StorageAPI](t, &storage.Default, disk)

	router := gin.New()
	router.Use(sessions.Sessions("token", cookie.NewStore([]byte("test secret"))))
	Routes(router)
	return &testServer{t: t, router: router, cookies: map[string]*http.Cookie{}}
}

func (s *testServer) do(method, path string, body any) (int, envelope) {
	s.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range s.cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	for _, c := range rec.Result().Cookies() {
		if c.MaxAge < 0 {
			delete(s.cookies, c.Name)
		} else {
			s.cookies[c.Name] = c
		}
	}
	var env envelope
	require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec.Code, env
}

// data decodes the payload of a successful reply
func (s *testServer) data(status int, env envelope, expected int, target any) {
	s.t.Helper()
	require.Equal(s.t, expected, status, "%s %s", env.Message, env.Error)
	require.True(s.t, env.Success)
	if target != nil {
		require.NoError(s.t, json.Unmarshal(env.Data, target))
	}
}

func itoa(id uint64) string {
	return strconv.FormatUint(id, 10)
}

func (s *testServer) login(email, password string) {
	s.t.Helper()
	status, env := s.do("POST", "/admin/login", gin.H{"email": email, "password": password})
	require.Equal(s.t, http.StatusOK, status, env.Message)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	var data map[string]any
	status, env := s.do("GET", "/health", nil)
	s.data(status, env, http.StatusOK, &data)
	assert.Equal(t, "ok", data["status"])
}

func TestAdminFlow(t *testing.T) {
	s := newTestServer(t)

	status, env := s.do("POST", "/admin/login", gin.H{"email": seedEmail, "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.False(t, env.Success)
	assert.Equal(t, "invalid credentials", env.Message)

	status, _ = s.do("POST", "/admin/login", gin.H{"email": seedEmail})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = s.do("GET", "/admin/users", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	s.login(seedEmail, seedPassword)

	var created models.User
	status, env = s.do("POST", "/admin/create", gin.H{"username": "editor", "email": "editor@example.com", "password": "editor-pass"})
	s.data(status, env, http.StatusCreated, &created)
	assert.Equal(t, models.RoleAdmin, created.Role)
	assert.NotContains(t, string(env.Data), "password")

	status, env = s.do("POST", "/admin/create", gin.H{"username": "editor", "email": "other@example.com", "password": "editor-pass"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "already exists", env.Fields["username"])

	var users []models.User
	status, env = s.do("GET", "/admin/users", nil)
	s.data(status, env, http.StatusOK, &users)
	assert.Len(t, users, 2)

	status, _ = s.do("POST", "/admin/logout", nil)
	assert.Equal(t, http.StatusOK, status)
	status, _ = s.do("GET", "/admin/users", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	// an admin can't create a superadmin
	s.login("editor@example.com", "editor-pass")
	status, _ = s.do("POST", "/admin/create", gin.H{"username": "boss", "email": "boss@example.com", "password": "boss-pass1", "role": "superadmin"})
	assert.Equal(t, http.StatusForbidden, status)
}

func TestRoleRequired(t *testing.T) {
	s := newTestServer(t)

	status, env := s.do("POST", "/artists", gin.H{"name": "Nova", "bio": "x"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.False(t, env.Success)

	_, err := models.UserCreate(context.Background(), models.UserInput{Username: "viewer", Email: "viewer@example.com", Password: "viewer-pass", Role: models.RoleUser})
	require.NoError(t, err)
	s.login("viewer@example.com", "viewer-pass")

	status, _ = s.do("POST", "/artists", gin.H{"name": "Nova", "bio": "x"})
	assert.Equal(t, http.StatusForbidden, status)
	status, _ = s.do("GET", "/dashboard/analytics", nil)
	assert.Equal(t, http.StatusForbidden, status)
	status, _ = s.do("GET", "/contacts", nil)
	assert.Equal(t, http.StatusForbidden, status)

	// reads stay public
	status, _ = s.do("GET", "/artists", nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestContacts(t *testing.T) {
	s := newTestServer(t)

	status, env := s.do("POST", "/contacts", gin.H{"name": "Sam", "email": "sam@example.com", "phone": "123"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "is required", env.Fields["message"])

	var contact models.Contact
	status, env = s.do("POST", "/contacts", gin.H{"name": "Sam", "email": "sam@example.com", "phone": "123", "message": "Hi"})
	s.data(status, env, http.StatusCreated, &contact)

	status, _ = s.do("GET", "/contacts", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	s.login(seedEmail, seedPassword)
	var contacts []models.Contact
	status, env = s.do("GET", "/contacts", nil)
	s.data(status, env, http.StatusOK, &contacts)
	assert.Len(t, contacts, 1)

	path := "/contacts/" + itoa(contact.ID)
	status, env = s.do("PUT", path, gin.H{"message": "Updated"})
	s.data(status, env, http.StatusOK, &contact)
	assert.Equal(t, "Updated", contact.Message)
	assert.Equal(t, "Sam", contact.Name)

	status, _ = s.do("DELETE", path, nil)
	assert.Equal(t, http.StatusOK, status)
	status, env = s.do("GET", path, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "contact not found", env.Message)
}

func TestDashboard(t *testing.T) {
	s := newTestServer(t)
	s.login(seedEmail, seedPassword)

	status, env := s.do("POST", "/artists", gin.H{"name": "Nova", "bio": "x"})
	require.Equal(t, http.StatusCreated, status, env.Error)
	status, env = s.do("POST", "/music", gin.H{"title": "Yellow", "artist": "Nova", "duration": 200, "audioUrl": "https://cdn.example.com/y.mp3"})
	require.Equal(t, http.StatusCreated, status, env.Error)

	var report models.OverviewReport
	status, env = s.do("GET", "/dashboard/analytics", nil)
	s.data(status, env, http.StatusOK, &report)
	o := report.Overview
	assert.EqualValues(t, 2, report.Summary.TotalContent)
	assert.Equal(t, o.TotalArtists+o.TotalMusic+o.TotalGalleryItems+o.TotalProducers+o.TotalFilmmakers, report.Summary.TotalContent)
	assert.EqualValues(t, 1, o.TotalAdmins)

	var trend []models.MonthlyPoint
	status, env = s.do("GET", "/dashboard/monthly-data", nil)
	s.data(status, env, http.StatusOK, &trend)
	require.Len(t, trend, 1)
	assert.Equal(t, time.Now().UTC().Format("2006-01"), trend[0].Month)
	assert.EqualValues(t, 1, trend[0].Artists)
	assert.EqualValues(t, 1, trend[0].Musics)

	status, _ = s.do("GET", "/dashboard/monthly-data?range=12months", nil)
	assert.Equal(t, http.StatusOK, status)
	status, _ = s.do("GET", "/dashboard/monthly-data?range=3months", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestBadIDs(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/artists/abc", "/music/0", "/gallery/-1", "/producers/x/summary", "/filmmakers/1.5"} {
		status, env := s.do("GET", path, nil)
		assert.Equal(t, http.StatusBadRequest, status, path)
		assert.Equal(t, "invalid id", env.Message, path)
	}
	status, env := s.do("GET", "/artists/999", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "artist not found", env.Message)
}
