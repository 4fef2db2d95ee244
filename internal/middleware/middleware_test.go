package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-payroll/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRBAC struct {
	EnforceFn func(req domain.EnforceRequest) (bool, error)
}

func (f *fakeRBAC) Enforce(req domain.EnforceRequest) (bool, error) {
	return f.EnforceFn(req)
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func withIdentity(userID, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("role", role)
		c.Next()
	}
}

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "test-secret")

	newRouter := func() *gin.Engine {
		r := gin.New()
		r.GET("/me", AuthMiddleware(), func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"user_id": c.GetString("user_id"), "role": c.GetString("role")})
		})
		return r
	}

	t.Run("valid bearer token", func(t *testing.T) {
		token := signToken(t, "test-secret", jwt.MapClaims{
			"user_id": "u-1",
			"role":    "admin",
			"exp":     time.Now().Add(time.Hour).Unix(),
		})
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		newRouter().ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"user_id":"u-1","role":"admin"}`, w.Body.String())
	})

	t.Run("missing token", func(t *testing.T) {
		w := httptest.NewRecorder()
		newRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		token := signToken(t, "test-secret", jwt.MapClaims{
			"user_id": "u-1",
			"role":    "admin",
			"exp":     time.Now().Add(-time.Hour).Unix(),
		})
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		newRouter().ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Token has expired")
	})

	t.Run("wrong secret", func(t *testing.T) {
		token := signToken(t, "other", jwt.MapClaims{"user_id": "u-1", "role": "admin"})
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		newRouter().ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid token")
	})
}

func TestRBACAuthorize(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeRBAC{EnforceFn: func(req domain.EnforceRequest) (bool, error) {
		switch {
		case req.Role == "admin":
			return true, nil
		case req.Role == "employee" && req.Action == "read":
			return true, nil
		case req.Role == "broken":
			return false, errors.New("policy store down")
		}
		return false, nil
	}}

	newRouter := func(role string) *gin.Engine {
		r := gin.New()
		r.GET("/rows", withIdentity("u-1", role), RBACAuthorize(svc, "attendance", "read"), func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"read_all": CanReadAll(c), "scope": ScopeUserID(c, "u-2")})
		})
		r.POST("/rows", withIdentity("u-1", role), RBACAuthorize(svc, "attendance", "write"), func(c *gin.Context) {
			c.Status(http.StatusCreated)
		})
		return r
	}

	t.Run("admin reads everyone", func(t *testing.T) {
		w := httptest.NewRecorder()
		newRouter("admin").ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/rows", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"read_all":true,"scope":"u-2"}`, w.Body.String())
	})

	t.Run("employee is scoped to self", func(t *testing.T) {
		w := httptest.NewRecorder()
		newRouter("employee").ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/rows", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"read_all":false,"scope":"u-1"}`, w.Body.String())
	})

	t.Run("employee cannot write", func(t *testing.T) {
		w := httptest.NewRecorder()
		newRouter("employee").ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/rows", nil))
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "attendance:write")
	})

	t.Run("enforcer error", func(t *testing.T) {
		w := httptest.NewRecorder()
		newRouter("broken").ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/rows", nil))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestIdempotency(t *testing.T) {
	gin.SetMode(gin.TestMode)

	const cacheKey = "idemp:/salaries/generate:u-1:key-1"

	newRouter := func(calls *int) (*gin.Engine, redismock.ClientMock) {
		rdb, mock := redismock.NewClientMock()
		r := gin.New()
		r.POST("/salaries/generate", withIdentity("u-1", "admin"), Idempotency(rdb), func(c *gin.Context) {
			*calls++
			c.JSON(http.StatusOK, gin.H{"ok": true})
		})
		return r, mock
	}

	t.Run("replays stored response", func(t *testing.T) {
		calls := 0
		r, mock := newRouter(&calls)
		mock.ExpectGet(cacheKey).SetVal(`{"ok":true,"data":{"created":2}}`)

		req := httptest.NewRequest(http.MethodPost, "/salaries/generate", nil)
		req.Header.Set("Idempotency-Key", "key-1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "true", w.Header().Get("Idempotent-Replay"))
		assert.JSONEq(t, `{"ok":true,"data":{"created":2}}`, w.Body.String())
		assert.Zero(t, calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("in flight duplicate conflicts", func(t *testing.T) {
		calls := 0
		r, mock := newRouter(&calls)
		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(cacheKey+":lock", "locked", idempotencyLockTTL).SetVal(false)

		req := httptest.NewRequest(http.MethodPost, "/salaries/generate", nil)
		req.Header.Set("Idempotency-Key", "key-1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Zero(t, calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no key passes through", func(t *testing.T) {
		calls := 0
		r, mock := newRouter(&calls)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/salaries/generate", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 1, calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRateLimitByIP(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.POST("/biometrics", RateLimitByIP(1, 1), func(c *gin.Context) { c.Status(http.StatusAccepted) })

	first := httptest.NewRecorder()
	r.ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/biometrics", nil))
	second := httptest.NewRecorder()
	r.ServeHTTP(second, httptest.NewRequest(http.MethodPost, "/biometrics", nil))

	assert.Equal(t, http.StatusAccepted, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}
