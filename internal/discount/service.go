package discount

import (
	"context"
	"strings"

	"teahouse-kiosk/internal/logger"

	"go.uber.org/zap"
)

// Validator checks a code with whoever issues discounts.
type Validator interface {
	Check(ctx context.Context, code string) (Result, error)
}

type Service interface {
	Apply(ctx context.Context, code string) (Descriptor, error)
}

type service struct {
	validator Validator
}

func NewService(validator Validator) Service {
	return &service{validator: validator}
}

// Apply turns a typed code into a Descriptor. Every failure, including a
// transport error, is reported as a *RejectedError.
func (s *service) Apply(ctx context.Context, code string) (Descriptor, error) {
	code = strings.TrimSpace(code)
	log := logger.FromCtx(ctx).With(zap.String("code", code))
	log.Info("Apply discount started")

	if code == "" {
		log.Warn("Apply discount validation failed: empty code")
		return Descriptor{}, reject(code, ReasonInvalidCode)
	}

	res, err := s.validator.Check(ctx, code)
	if err != nil {
		log.Error("discount validator failed", zap.Error(err))
		return Descriptor{}, reject(code, ReasonServerError)
	}

	if !res.Valid {
		log.Warn("discount code rejected", zap.String("reason", res.Reason))
		return Descriptor{}, reject(code, res.Reason)
	}

	if res.Kind != KindPercent && res.Kind != KindFixed {
		log.Error("discount validator returned unknown kind", zap.String("kind", string(res.Kind)))
		return Descriptor{}, reject(code, ReasonServerError)
	}

	log.Info("discount applied",
		zap.String("kind", string(res.Kind)),
		zap.String("value", res.Value.String()),
	)

	return Descriptor{Code: code, Kind: res.Kind, Value: res.Value}, nil
}
