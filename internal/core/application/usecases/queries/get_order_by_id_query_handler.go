package queries

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/pkg/errs"
)

// GetOrderByIDQueryHandler retrieves a single order read model from the database.
// Reads the order row and its line items with direct SQL, skipping the aggregate.
type GetOrderByIDQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderByIDQueryHandler creates a handler for single order queries.
// Requires a GORM database connection for query execution.
func NewGetOrderByIDQueryHandler(db *gorm.DB) GetOrderByIDQueryHandler {
	return GetOrderByIDQueryHandler{db: db}
}

// Handle executes the query.
// Returns errs.ObjectNotFoundError when no order has the requested ID.
func (h GetOrderByIDQueryHandler) Handle(
	ctx context.Context,
	query GetOrderByIDQuery,
) (GetOrderByIDQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderByIDQueryResponse{}, err
	}

	var response GetOrderByIDQueryResponse
	var id, customerID uuid.UUID
	var courierID uuid.NullUUID
	var status, paymentMethod int

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			customer_id,
			status,
			payment_method,
			paid,
			paid_at,
			payment_reference,
			street,
			city,
			postal_code,
			country,
			items_total,
			tax,
			delivery_fee,
			total,
			courier_id,
			delivered,
			delivered_at,
			version,
			created_at,
			updated_at
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row()

	err := row.Scan(
		&id,
		&customerID,
		&status,
		&paymentMethod,
		&response.Paid,
		&response.PaidAt,
		&response.PaymentReference,
		&response.Street,
		&response.City,
		&response.PostalCode,
		&response.Country,
		&response.ItemsTotal,
		&response.Tax,
		&response.DeliveryFee,
		&response.Total,
		&courierID,
		&response.Delivered,
		&response.DeliveredAt,
		&response.Version,
		&response.CreatedAt,
		&response.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderByIDQueryResponse{}, errs.NewObjectNotFoundError("orderId", query.OrderID())
	}
	if err != nil {
		return GetOrderByIDQueryResponse{}, err
	}

	if response.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetOrderByIDQueryResponse{}, err
	}
	if response.CustomerID, err = kernel.UUIDFromBytes(customerID[:]); err != nil {
		return GetOrderByIDQueryResponse{}, err
	}
	if courierID.Valid {
		assignee, idErr := kernel.UUIDFromBytes(courierID.UUID[:])
		if idErr != nil {
			return GetOrderByIDQueryResponse{}, idErr
		}
		response.CourierID = &assignee
	}

	response.Status = order.Status(status).String()
	response.PaymentMethod = order.PaymentMethod(paymentMethod).String()

	if response.Items, err = h.loadItems(ctx, query.OrderID()); err != nil {
		return GetOrderByIDQueryResponse{}, err
	}

	return response, nil
}

func (h GetOrderByIDQueryHandler) loadItems(
	ctx context.Context, orderID kernel.UUID,
) ([]OrderItemResponse, error) {
	items := make([]OrderItemResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			product_id,
			name,
			quantity,
			unit_price,
			image_url
		FROM order_items
		WHERE order_id = ?
		ORDER BY position
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item OrderItemResponse
		var productID uuid.UUID

		if err = rows.Scan(
			&productID,
			&item.Name,
			&item.Quantity,
			&item.UnitPrice,
			&item.ImageURL,
		); err != nil {
			return nil, err
		}

		if item.ProductID, err = kernel.UUIDFromBytes(productID[:]); err != nil {
			return nil, err
		}

		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
