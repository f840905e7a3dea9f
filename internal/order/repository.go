package order

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"teahouse-kiosk/internal/logger"
	"teahouse-kiosk/internal/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type repository struct {
	db  *sql.DB
	now func() time.Time
}

// NewRepository books orders straight into the orders tables.
func NewRepository(db *sql.DB) Acceptor {
	return &repository{db: db, now: time.Now}
}

func (r *repository) Submit(ctx context.Context, p Payload) (*Receipt, error) {
	log := logger.FromCtx(ctx)
	acceptedAt := r.now()
	orderNumber := utils.GenerateOrderNumber(acceptedAt)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("begin order tx failed", zap.Error(err))
		return nil, submissionFailed("", err)
	}
	defer tx.Rollback()

	// 1. Insert order. The stored total is read back since the column
	// rounds to cents.
	var (
		orderID int64
		stored  decimal.Decimal
	)
	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (
			order_number, time, day, month, year,
			total_price, tip, special_notes, payment_method, tax
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING order_id, total_price
	`,
		orderNumber,
		p.Time,
		p.Day,
		p.Month,
		p.Year,
		p.TotalPrice,
		p.Tip,
		p.SpecialNotes,
		string(p.PaymentMethod),
		p.Tax,
	).Scan(&orderID, &stored)
	if err != nil {
		log.Error("insert order failed", zap.Error(err))
		return nil, submissionFailed("", err)
	}

	// 2. Insert order items
	for _, item := range p.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (
				order_id, product_id, size, sugar_level,
				ice_level, toppings, price, quantity
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		`,
			orderID,
			item.ProductID,
			item.Size,
			item.SugarLevel,
			item.IceLevel,
			item.Toppings,
			item.Price,
			item.Quantity,
		)
		if err != nil {
			log.Error("insert order item failed",
				zap.Int64("product_id", item.ProductID),
				zap.Error(err),
			)
			return nil, submissionFailed(fmt.Sprintf("Product %d could not be ordered", item.ProductID), err)
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("commit order tx failed", zap.Error(err))
		return nil, submissionFailed("", err)
	}

	log.Info("order booked",
		zap.Int64("order_id", orderID),
		zap.String("order_number", orderNumber),
		zap.String("total", stored.String()),
	)

	return &Receipt{
		OrderID:    fmt.Sprint(orderID),
		TotalPrice: stored,
		AcceptedAt: acceptedAt,
	}, nil
}
