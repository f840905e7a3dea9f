package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"teahouse-kiosk/internal/logger"

	"go.uber.org/zap"
)

// Source supplies the product list the kiosk sells from.
type Source interface {
	ListProducts(ctx context.Context) ([]Product, error)
}

type repository struct {
	db *sql.DB
}

// NewRepository returns a Source reading the products table directly.
func NewRepository(db *sql.DB) Source {
	return &repository{db: db}
}

func (r *repository) ListProducts(ctx context.Context) ([]Product, error) {
	log := logger.FromCtx(ctx)

	query := `
		SELECT
			p.product_id,
			p.product_name,
			p.price,
			p.category,
			p.img_url
		FROM products p
		ORDER BY p.product_id ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("DB query failed ListProducts", zap.Error(err))
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	products := make([]Product, 0)
	for rows.Next() {
		var (
			p        Product
			category sql.NullString
			imageURL sql.NullString
		)
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &category, &imageURL); err != nil {
			log.Error("Row scan failed", zap.Error(err))
			return nil, fmt.Errorf("scan product: %w", err)
		}
		p.Category = category.String
		p.ImageURL = imageURL.String
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		log.Error("Rows iteration failed", zap.Error(err))
		return nil, fmt.Errorf("iterate products: %w", err)
	}

	return products, nil
}
