package order

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

const ordersPath = "/api/orders"

// Acceptor hands a payload to whoever books orders.
type Acceptor interface {
	Submit(ctx context.Context, p Payload) (*Receipt, error)
}

type httpAcceptor struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	now        func() time.Time
}

// NewHTTPAcceptor posts orders to the shop backend.
func NewHTTPAcceptor(baseURL, apiKey string) Acceptor {
	return &httpAcceptor{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		now: time.Now,
	}
}

type acceptResponse struct {
	OrderID json.RawMessage `json:"order_id"`
	Error   string          `json:"error"`
}

func (a *httpAcceptor) Submit(ctx context.Context, p Payload) (*Receipt, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("total", p.TotalPrice.String()),
		zap.Int("items", len(p.Items)),
	)

	jsonBody, err := json.Marshal(p)
	if err != nil {
		log.Error("Failed to marshal order payload", zap.Error(err))
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+ordersPath, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-KEY", a.apiKey)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		log.Error("order request failed", zap.Error(err))
		return nil, submissionFailed(err.Error(), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, submissionFailed("", err)
	}

	var out acceptResponse
	_ = json.Unmarshal(body, &out)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Warn("order rejected by backend",
			zap.Int("status", resp.StatusCode),
			zap.String("error", out.Error),
		)
		return nil, submissionFailed(out.Error, fmt.Errorf("orders endpoint status %d", resp.StatusCode))
	}

	return &Receipt{
		OrderID:    strings.Trim(string(out.OrderID), `"`),
		TotalPrice: p.TotalPrice,
		AcceptedAt: a.now(),
	}, nil
}
