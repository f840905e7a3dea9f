package discount

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPValidator_Check(t *testing.T) {
	t.Run("Valid code", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/discounts/check", r.URL.Path)
			assert.Equal(t, "kiosk-key", r.Header.Get("X-API-KEY"))

			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "TEA10", body["code"])

			_, _ = w.Write([]byte(`{"valid": true, "type": "percent", "value": 10}`))
		}))
		defer srv.Close()

		res, err := NewHTTPValidator(srv.URL, "kiosk-key").Check(context.Background(), "TEA10")

		require.NoError(t, err)
		assert.True(t, res.Valid)
		assert.Equal(t, KindPercent, res.Kind)
		assert.True(t, decimal.NewFromInt(10).Equal(res.Value))
	})

	t.Run("Rejected code on 4xx", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"valid": false, "reason": "Unknown code"}`))
		}))
		defer srv.Close()

		res, err := NewHTTPValidator(srv.URL, "").Check(context.Background(), "NOPE")

		require.NoError(t, err)
		assert.False(t, res.Valid)
		assert.Equal(t, "Unknown code", res.Reason)
	})

	t.Run("Server error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		_, err := NewHTTPValidator(srv.URL, "").Check(context.Background(), "TEA10")
		assert.Error(t, err)
	})

	t.Run("Malformed body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`not json`))
		}))
		defer srv.Close()

		_, err := NewHTTPValidator(srv.URL, "").Check(context.Background(), "TEA10")
		assert.Error(t, err)
	})
}
