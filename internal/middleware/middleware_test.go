package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"teahouse-kiosk/internal/auth"
	"teahouse-kiosk/internal/logger"
	"teahouse-kiosk/internal/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestCors(t *testing.T) {
	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	handler := CORS("http://localhost:3000")(nextHandler)

	t.Run("OPTIONS request", func(t *testing.T) {
		req := httptest.NewRequest("OPTIONS", "/api/cart", nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "X-Device-ID")
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("Normal request", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/cart", nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestDeviceAuth(t *testing.T) {
	mw := DeviceAuth(testSecret)

	t.Run("Missing token and header", func(t *testing.T) {
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, ok := utils.GetDeviceIDFromContext(r.Context())
			assert.False(t, ok, "Context should not contain device ID")
			w.WriteHeader(http.StatusOK)
		})

		req := httptest.NewRequest("GET", "/api/cart", nil)
		w := httptest.NewRecorder()
		mw(next).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Header alone is refused when tokens are required", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/cart", nil)
		req.Header.Set("X-Device-ID", "kiosk-3")
		w := httptest.NewRecorder()

		mw(http.NotFoundHandler()).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "device token required")
	})

	t.Run("Header fallback without secret", func(t *testing.T) {
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := utils.GetDeviceIDFromContext(r.Context())
			assert.True(t, ok)
			assert.Equal(t, "kiosk-3", id)
			assert.Equal(t, "kiosk-3", logger.DeviceIDFrom(r.Context()))
			w.WriteHeader(http.StatusOK)
		})

		req := httptest.NewRequest("GET", "/api/cart", nil)
		req.Header.Set("X-Device-ID", " kiosk-3 ")
		w := httptest.NewRecorder()
		DeviceAuth("")(next).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Valid token wins over header", func(t *testing.T) {
		tokenString, err := auth.IssueDeviceToken(testSecret, "kiosk-1", time.Hour)
		require.NoError(t, err)

		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := utils.GetDeviceIDFromContext(r.Context())
			assert.True(t, ok)
			assert.Equal(t, "kiosk-1", id)
			w.WriteHeader(http.StatusOK)
		})

		req := httptest.NewRequest("GET", "/api/cart", nil)
		req.Header.Set("Authorization", "Bearer "+tokenString)
		req.Header.Set("X-Device-ID", "spoofed")
		w := httptest.NewRecorder()
		mw(next).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Staff claim", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"device_id": "kiosk-1",
			"staff_id":  "cashier-9",
			"exp":       time.Now().Add(time.Hour).Unix(),
		})
		tokenString, err := token.SignedString([]byte(testSecret))
		require.NoError(t, err)

		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "cashier-9", utils.GetStaffIDFromContext(r.Context()))
			w.WriteHeader(http.StatusOK)
		})

		req := httptest.NewRequest("GET", "/api/cart", nil)
		req.Header.Set("Authorization", "Bearer "+tokenString)
		w := httptest.NewRecorder()
		mw(next).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Invalid Token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/cart", nil)
		req.Header.Set("Authorization", "Bearer invalid-token")
		w := httptest.NewRecorder()

		mw(http.NotFoundHandler()).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Expired Token", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"device_id": "kiosk-1",
			"exp":       time.Now().Add(-time.Hour).Unix(),
		})
		tokenString, err := token.SignedString([]byte(testSecret))
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/api/cart", nil)
		req.Header.Set("Authorization", "Bearer "+tokenString)
		w := httptest.NewRecorder()

		mw(http.NotFoundHandler()).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Tokens ignored without secret", func(t *testing.T) {
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, _ := utils.GetDeviceIDFromContext(r.Context())
			assert.Equal(t, "kiosk-4", id)
			w.WriteHeader(http.StatusOK)
		})

		req := httptest.NewRequest("GET", "/api/cart", nil)
		req.Header.Set("Authorization", "Bearer whatever")
		req.Header.Set("X-Device-ID", "kiosk-4")
		w := httptest.NewRecorder()
		DeviceAuth("")(next).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRateLimit(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := DeviceAuth("")(RateLimitMiddleware(ok))

	t.Run("Strict tier on checkout", func(t *testing.T) {
		codes := make([]int, 0, burstStrict+1)
		for i := 0; i < burstStrict+1; i++ {
			req := httptest.NewRequest("POST", "/api/checkout", nil)
			req.Header.Set("X-Device-ID", "limit-checkout")
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)
			codes = append(codes, w.Code)
		}

		assert.Equal(t, http.StatusOK, codes[0])
		assert.Equal(t, http.StatusTooManyRequests, codes[len(codes)-1])
	})

	t.Run("Separate devices separate buckets", func(t *testing.T) {
		for i := 0; i < burstGeneral; i++ {
			req := httptest.NewRequest("GET", "/api/cart", nil)
			req.Header.Set("X-Device-ID", "limit-a")
			handler.ServeHTTP(httptest.NewRecorder(), req)
		}

		req := httptest.NewRequest("GET", "/api/cart", nil)
		req.Header.Set("X-Device-ID", "limit-b")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Tier resolution", func(t *testing.T) {
		_, _, tier := resolveRateTier(httptest.NewRequest("POST", "/api/cart/discount", nil))
		assert.Equal(t, "strict", tier)
		_, _, tier = resolveRateTier(httptest.NewRequest("DELETE", "/api/cart/discount", nil))
		assert.Equal(t, "general", tier)
	})
}
