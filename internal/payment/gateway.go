package payment

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
	"teahouse-kiosk/internal/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const payPath = "/api/pay"

type httpGateway struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewHTTPGateway(baseURL, apiKey string) Gateway {
	if apiKey == "" {
		logger.L().Warn("payment gateway API key is empty")
	}

	return &httpGateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (g *httpGateway) Charge(ctx context.Context, method order.PaymentMethod, amount decimal.Decimal) error {
	reference := uuid.NewString()
	cents := ToCents(amount)

	log := logger.FromCtx(ctx).With(
		zap.String("reference", reference),
		zap.String("payment_method", string(method)),
		zap.Int64("amount_cents", cents),
	)

	jsonBody, err := json.Marshal(chargeRequest{
		Amount:    cents,
		Method:    string(method),
		Reference: reference,
	})
	if err != nil {
		log.Error("Failed to marshal charge request", zap.Error(err))
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+payPath, bytes.NewBuffer(jsonBody))
	if err != nil {
		log.Error("Failed creating request", zap.Error(err))
		return err
	}
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("X-API-KEY", g.apiKey)

	log.Info("Sending charge to payment gateway")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		log.Error("Payment gateway request failed", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error("Failed to read response body", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		log.Error("Payment gateway returned server error",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", bodyBytes),
		)
		return fmt.Errorf("%w: status %d", ErrGatewayUnavailable, resp.StatusCode)
	}

	var res chargeResponse
	if err := json.Unmarshal(bodyBytes, &res); err != nil {
		log.Error("Failed decoding charge response", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrPaymentDeclined, err)
	}

	if res.Status != StatusSucceeded {
		log.Warn("Payment declined",
			zap.String("status", res.Status),
			zap.String("error", res.Error),
		)
		if res.Error != "" {
			return fmt.Errorf("%w: %s", ErrPaymentDeclined, res.Error)
		}
		return ErrPaymentDeclined
	}

	log.Info("Payment succeeded", zap.String("charge_id", res.ID))
	return nil
}
