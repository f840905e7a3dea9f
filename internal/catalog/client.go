package catalog

import (
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

const productsPath = "/api/products"

type httpSource struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewHTTPSource returns a Source backed by the shop backend's products endpoint.
func NewHTTPSource(baseURL, apiKey string) Source {
	return &httpSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (s *httpSource) ListProducts(ctx context.Context) ([]Product, error) {
	log := logger.FromCtx(ctx).With(zap.String("url", s.baseURL+productsPath))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+productsPath, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-KEY", s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		log.Error("products request failed", zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		log.Warn("products endpoint returned error",
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(body)),
		)
		return nil, fmt.Errorf("products endpoint status %d", resp.StatusCode)
	}

	var products []Product
	if err := json.Unmarshal(body, &products); err != nil {
		log.Error("failed to decode products", zap.Error(err))
		return nil, fmt.Errorf("decode products: %w", err)
	}

	return products, nil
}
