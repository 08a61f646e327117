package middleware_test

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/veldt-labs/switchboard/internal/server/middleware"
	"github.com/veldt-labs/switchboard/internal/store"
	"github.com/veldt-labs/switchboard/internal/store/model"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubKeys struct {
	keys map[string]*model.APIKey // by hash
}

func (s *stubKeys) GetByHash(ctx context.Context, hash string) (*model.APIKey, error) {
	if k, ok := s.keys[hash]; ok {
		return k, nil
	}
	return nil, sql.ErrNoRows
}

func (s *stubKeys) Create(ctx context.Context, key *model.APIKey) error { return nil }
func (s *stubKeys) UpdateUsage(ctx context.Context, id string) error    { return nil }
func (s *stubKeys) ListByUserID(ctx context.Context, userID string) ([]model.APIKey, error) {
	return nil, nil
}

type stubRepo struct {
	apiKeys *stubKeys
}

func (s *stubRepo) Models() store.ModelRepository        { return nil }
func (s *stubRepo) APIKeys() store.APIKeyRepository      { return s.apiKeys }
func (s *stubRepo) Users() store.UserRepository          { return nil }
func (s *stubRepo) Dispatches() store.DispatchRepository { return nil }
func (s *stubRepo) Close() error                         { return nil }

func (s *stubRepo) WithTx(ctx context.Context, fn func(repo store.Repository) error) error {
	return fn(s)
}

func newAuthRouter(repo store.Repository, staticKeys []string) (*gin.Engine, *struct{ key *model.APIKey }) {
	seen := &struct{ key *model.APIKey }{}

	router := gin.New()
	router.Use(middleware.Auth(repo, staticKeys))
	router.GET("/ping", func(c *gin.Context) {
		if k, ok := c.Request.Context().Value(store.ContextKeyAPIKey).(*model.APIKey); ok {
			seen.key = k
		}
		c.String(http.StatusOK, "pong")
	})
	return router, seen
}

func get(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/ping", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMissingHeader(t *testing.T) {
	router, _ := newAuthRouter(&stubRepo{apiKeys: &stubKeys{}}, nil)
	w := get(router, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMalformedHeader(t *testing.T) {
	router, _ := newAuthRouter(&stubRepo{apiKeys: &stubKeys{}}, nil)
	w := get(router, "Basic dXNlcjpwYXNz")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthStaticKey(t *testing.T) {
	router, _ := newAuthRouter(&stubRepo{apiKeys: &stubKeys{}}, []string{"sw-static"})
	w := get(router, "Bearer sw-static")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthDatabaseKey(t *testing.T) {
	raw := "sw-dev-1234567890"
	hash := sha256.Sum256([]byte(raw))
	hashedHex := hex.EncodeToString(hash[:])

	key := &model.APIKey{ID: "key-1", UserID: "user-1", KeyHash: hashedHex, IsActive: true}
	repo := &stubRepo{apiKeys: &stubKeys{keys: map[string]*model.APIKey{hashedHex: key}}}

	router, seen := newAuthRouter(repo, nil)
	w := get(router, "Bearer "+raw)

	assert.Equal(t, http.StatusOK, w.Code)
	// the key must be injected for dispatch logging
	if assert.NotNil(t, seen.key) {
		assert.Equal(t, "user-1", seen.key.UserID)
	}
}

func TestAuthUnknownKey(t *testing.T) {
	router, _ := newAuthRouter(&stubRepo{apiKeys: &stubKeys{}}, nil)
	w := get(router, "Bearer sw-wrong")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
