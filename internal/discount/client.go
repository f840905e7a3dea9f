package discount

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"teahouse-kiosk/internal/logger"

	"go.uber.org/zap"
)

const checkPath = "/api/discounts/check"

type httpValidator struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewHTTPValidator checks codes against the shop backend.
func NewHTTPValidator(baseURL, apiKey string) Validator {
	return &httpValidator{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (v *httpValidator) Check(ctx context.Context, code string) (Result, error) {
	log := logger.FromCtx(ctx)

	jsonBody, err := json.Marshal(map[string]string{"code": code})
	if err != nil {
		return Result{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.baseURL+checkPath, bytes.NewBuffer(jsonBody))
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-KEY", v.apiKey)

	resp, err := v.httpClient.Do(req)
	if err != nil {
		log.Error("discount check request failed", zap.Error(err))
		return Result{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, err
	}

	// The backend answers 4xx with {"valid": false, "reason": ...} for bad codes.
	if resp.StatusCode >= http.StatusInternalServerError {
		log.Warn("discount endpoint returned error",
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(body)),
		)
		return Result{}, fmt.Errorf("discount endpoint status %d", resp.StatusCode)
	}

	var res Result
	if err := json.Unmarshal(body, &res); err != nil {
		log.Error("failed to decode discount response", zap.Error(err))
		return Result{}, fmt.Errorf("decode discount response: %w", err)
	}

	return res, nil
}
