package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/dcode-github/real_estate_portal/cache"
	"github.com/dcode-github/real_estate_portal/config"
	"github.com/dcode-github/real_estate_portal/migrations"
	"github.com/dcode-github/real_estate_portal/models"
	"github.com/dcode-github/real_estate_portal/repository"
	"github.com/dcode-github/real_estate_portal/storage"
	"github.com/dcode-github/real_estate_portal/utils"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// invalidatingCache invalidates right after its first lookup, standing in
// for a mutation that commits while a list response is being built.
type invalidatingCache struct {
	*cache.Memory
	once sync.Once
}

func (c *invalidatingCache) Get(ctx context.Context, key string) ([]byte, int64, bool) {
	v, gen, ok := c.Memory.Get(ctx, key)
	c.once.Do(func() { c.Memory.Invalidate(ctx) })
	return v, gen, ok
}

type memPhotos struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func newMemPhotos() *memPhotos {
	return &memPhotos{blobs: map[string][]byte{}}
}

func (s *memPhotos) Upload(_ context.Context, _, _ string, src io.Reader) (string, error) {
	data, err := io.ReadAll(src)
	if err != nil {
		return "", err
	}
	id := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[id] = data
	return id, nil
}

func (s *memPhotos) Open(_ context.Context, fileID string) (io.ReadCloser, int64, error) {
	s.mu.Lock()
	data, ok := s.blobs[fileID]
	s.mu.Unlock()
	if !ok {
		return nil, 0, storage.ErrPhotoNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), int64(len(data)), nil
}

func (s *memPhotos) Delete(_ context.Context, fileID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.blobs[fileID]; !ok {
		return storage.ErrPhotoNotFound
	}
	delete(s.blobs, fileID)
	return nil
}

func (s *memPhotos) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.blobs)
}

type testServer struct {
	router        *mux.Router
	db            *gorm.DB
	cache         *cache.Memory
	photos        *memPhotos
	adminToken    string
	customerToken string
	customerID    uint
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	return newTestServerWithCache(t, nil)
}

// newTestServerWithCache lets wrap decorate the in-process cache handed to
// the router.
func newTestServerWithCache(t *testing.T, wrap func(*cache.Memory) cache.PropertyCache) *testServer {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	_, err = migrations.Default(db).Up()
	require.NoError(t, err)
	x, err := config.SQLX(db)
	require.NoError(t, err)

	jwt := utils.NewJWTManager("test-secret", time.Hour)
	s := &testServer{db: db, cache: cache.NewMemory(time.Minute), photos: newMemPhotos()}
	var c cache.PropertyCache = s.cache
	if wrap != nil {
		c = wrap(s.cache)
	}

	s.router = mux.NewRouter()
	Routes(s.router, Deps{
		DB:             db,
		SQLX:           x,
		Cache:          c,
		Photos:         s.photos,
		JWT:            jwt,
		MaxUploadBytes: 1 << 20,
	})

	ctx := context.Background()
	hash, err := utils.HashPassword("admin-pass")
	require.NoError(t, err)
	admin := &models.Admin{Username: "admin", PasswordHash: hash}
	require.NoError(t, repository.NewAdminRepository(db).Create(ctx, admin))
	s.adminToken, _, err = jwt.GenerateJWT(admin.ID, models.RoleAdmin)
	require.NoError(t, err)

	customer := &models.Customer{Name: "Casey", Email: "casey@example.com", PasswordHash: hash}
	require.NoError(t, repository.NewCustomerRepository(db).Create(ctx, customer))
	s.customerID = customer.ID
	s.customerToken, _, err = jwt.GenerateJWT(customer.ID, models.RoleCustomer)
	require.NoError(t, err)

	return s
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var rdr io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, data interface{}) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	if data != nil {
		require.NoError(t, json.Unmarshal(env.Data, data), string(env.Data))
	}
	return env
}

func (s *testServer) createProperty(t *testing.T, body map[string]interface{}) models.Property {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/admin/properties", s.adminToken, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var p models.Property
	decode(t, rec, &p)
	return p
}

func property(name, location string, price float64, beds int) map[string]interface{} {
	return map[string]interface{}{
		"name":      name,
		"location":  location,
		"price":     price,
		"bedrooms":  beds,
		"bathrooms": 2,
		"balconies": 1,
		"areaSqFt":  1000,
	}
}
