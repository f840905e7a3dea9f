package discount

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"teahouse-kiosk/internal/logger"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type repository struct {
	db  *sql.DB
	now func() time.Time
}

// NewRepository checks codes against the discount_codes table.
func NewRepository(db *sql.DB) Validator {
	return &repository{db: db, now: time.Now}
}

func (r *repository) Check(ctx context.Context, code string) (Result, error) {
	log := logger.FromCtx(ctx).With(zap.String("code", code))

	query := `
		SELECT
			d.kind,
			d.value,
			d.active,
			d.expires_at
		FROM discount_codes d
		WHERE UPPER(d.code) = UPPER($1)
	`

	var (
		kind      string
		value     decimal.Decimal
		active    bool
		expiresAt sql.NullTime
	)

	err := r.db.QueryRowContext(ctx, query, code).Scan(&kind, &value, &active, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Result{Valid: false, Reason: ReasonInvalidCode}, nil
	}
	if err != nil {
		log.Error("DB query failed Check discount", zap.Error(err))
		return Result{}, fmt.Errorf("query discount: %w", err)
	}

	if !active {
		return Result{Valid: false, Reason: "Code is no longer active"}, nil
	}
	if expiresAt.Valid && !r.now().Before(expiresAt.Time) {
		return Result{Valid: false, Reason: "Code has expired"}, nil
	}

	switch Kind(kind) {
	case KindPercent, KindFixed:
	default:
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	return Result{Valid: true, Kind: Kind(kind), Value: value}, nil
}
