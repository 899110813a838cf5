package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"QuickAI/internal/model"
	"QuickAI/internal/pkg"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/whoami", AuthMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": UserIDFromCtx(c)})
	})
	return r
}

func get(r *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	r := newAuthRouter()

	token, err := pkg.Sign("user_42")
	require.NoError(t, err)

	w := get(r, "/whoami", "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id": "user_42"}`, w.Body.String())
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	r := newAuthRouter()

	w := get(r, "/whoami", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareBadFormat(t *testing.T) {
	r := newAuthRouter()

	for _, h := range []string{"Basic abc", "Bearer", "token-without-scheme"} {
		w := get(r, "/whoami", h)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "header: %s", h)
	}
}

func TestAuthMiddlewareBadToken(t *testing.T) {
	r := newAuthRouter()

	w := get(r, "/whoami", "Bearer not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"success": false, "message": "invalid or expired token"}`, w.Body.String())
}

type stubResolver struct {
	ent *model.Entitlement
	err error
}

func (s *stubResolver) Resolve(ctx context.Context, userID string) (*model.Entitlement, error) {
	return s.ent, s.err
}

func newEntitlementRouter(resolver EntitlementResolver, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if userID != "" {
			c.Set(ContextUserIDKey, userID)
		}
	})
	r.GET("/plan", EntitlementMiddleware(resolver), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"plan": EntitlementFromCtx(c).Plan})
	})
	return r
}

func TestEntitlementMiddlewareAttachesEntitlement(t *testing.T) {
	resolver := &stubResolver{ent: &model.Entitlement{UserID: "U", Plan: model.PlanPremium}}
	r := newEntitlementRouter(resolver, "U")

	w := get(r, "/plan", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"plan": "premium"}`, w.Body.String())
}

func TestEntitlementMiddlewareStoreFailure(t *testing.T) {
	resolver := &stubResolver{err: errors.New("store down")}
	r := newEntitlementRouter(resolver, "U")

	w := get(r, "/plan", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"success": false, "message": "entitlement lookup failed"}`, w.Body.String())
}

func TestEntitlementMiddlewareNoIdentity(t *testing.T) {
	resolver := &stubResolver{ent: &model.Entitlement{Plan: model.PlanFree}}
	r := newEntitlementRouter(resolver, "")

	w := get(r, "/plan", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
