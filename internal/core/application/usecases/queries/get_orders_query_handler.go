package queries

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
)

// GetOrdersQueryHandler retrieves order summaries from the database.
type GetOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersQueryHandler creates a handler for order listing queries.
// Requires a GORM database connection for query execution.
func NewGetOrdersQueryHandler(db *gorm.DB) GetOrdersQueryHandler {
	return GetOrdersQueryHandler{db: db}
}

// Handle executes the query.
// Returns summaries newest first, optionally filtered by customer.
func (h GetOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersQuery,
) ([]GetOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sqlQuery := `
		SELECT
			id,
			customer_id,
			status,
			paid,
			delivered,
			total,
			created_at
		FROM orders
	`
	args := make([]any, 0, 1)
	if customerID := query.CustomerID(); customerID != nil {
		sqlQuery += " WHERE customer_id = ?"
		args = append(args, customerID.Bytes())
	}
	sqlQuery += " ORDER BY created_at DESC"

	orders := make([]GetOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(sqlQuery, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var summary GetOrdersQueryResponse
		var id, customerID uuid.UUID
		var status int

		if err = rows.Scan(
			&id,
			&customerID,
			&status,
			&summary.Paid,
			&summary.Delivered,
			&summary.Total,
			&summary.CreatedAt,
		); err != nil {
			return nil, err
		}

		if summary.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if summary.CustomerID, err = kernel.UUIDFromBytes(customerID[:]); err != nil {
			return nil, err
		}
		summary.Status = order.Status(status).String()

		orders = append(orders, summary)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
