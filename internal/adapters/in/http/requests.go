package http

import (
	"time"

	"github.com/shopspring/decimal"

	"foodorder/internal/core/application/usecases/queries"
)

// createOrderRequest is the checkout payload. Money values travel as decimal
// strings so that clients never round them through binary floats.
type createOrderRequest struct {
	CustomerID    string            `json:"customerId"    validate:"required,uuid"`
	PaymentMethod string            `json:"paymentMethod" validate:"required"`
	Items         []lineItemRequest `json:"items"         validate:"required,min=1,dive"`
	Address       addressRequest    `json:"address"       validate:"required"`
	Pricing       pricingRequest    `json:"pricing"       validate:"required"`
}

type lineItemRequest struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	Name      string `json:"name"      validate:"required"`
	Quantity  int    `json:"quantity"  validate:"required,min=1"`
	UnitPrice string `json:"unitPrice" validate:"required"`
	ImageURL  string `json:"imageUrl"`
}

type addressRequest struct {
	Street     string `json:"street"     validate:"required"`
	City       string `json:"city"       validate:"required"`
	PostalCode string `json:"postalCode" validate:"required"`
	Country    string `json:"country"    validate:"required"`
}

type pricingRequest struct {
	ItemsTotal  string `json:"itemsTotal"  validate:"required"`
	Tax         string `json:"tax"         validate:"required"`
	DeliveryFee string `json:"deliveryFee" validate:"required"`
	Total       string `json:"total"       validate:"required"`
}

// confirmPaymentRequest is the payment gateway's confirmation callback.
type confirmPaymentRequest struct {
	Reference string `json:"reference" validate:"required"`
}

// advanceStatusRequest moves the order one lifecycle step forward.
// Actor identifies who requested the change and is recorded in the log.
type advanceStatusRequest struct {
	Status string `json:"status" validate:"required"`
	Actor  string `json:"actor"`
}

type assignCourierRequest struct {
	CourierID string `json:"courierId" validate:"required,uuid"`
}

type markDeliveredRequest struct {
	Actor string `json:"actor"`
}

type createCourierRequest struct {
	Name  string `json:"name"  validate:"required"`
	Phone string `json:"phone" validate:"required"`
}

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type createOrderResponse struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
}

type createCourierResponse struct {
	CourierID string `json:"courierId"`
}

type orderItemResponse struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	ImageURL  string          `json:"imageUrl,omitempty"`
}

type orderResponse struct {
	ID               string              `json:"id"`
	CustomerID       string              `json:"customerId"`
	Status           string              `json:"status"`
	PaymentMethod    string              `json:"paymentMethod"`
	Paid             bool                `json:"paid"`
	PaidAt           *time.Time          `json:"paidAt,omitempty"`
	PaymentReference string              `json:"paymentReference,omitempty"`
	Street           string              `json:"street"`
	City             string              `json:"city"`
	PostalCode       string              `json:"postalCode"`
	Country          string              `json:"country"`
	ItemsTotal       decimal.Decimal     `json:"itemsTotal"`
	Tax              decimal.Decimal     `json:"tax"`
	DeliveryFee      decimal.Decimal     `json:"deliveryFee"`
	Total            decimal.Decimal     `json:"total"`
	CourierID        *string             `json:"courierId,omitempty"`
	Delivered        bool                `json:"delivered"`
	DeliveredAt      *time.Time          `json:"deliveredAt,omitempty"`
	Version          int                 `json:"version"`
	CreatedAt        time.Time           `json:"createdAt"`
	UpdatedAt        time.Time           `json:"updatedAt"`
	Items            []orderItemResponse `json:"items"`
}

type orderSummaryResponse struct {
	ID         string          `json:"id"`
	CustomerID string          `json:"customerId"`
	Status     string          `json:"status"`
	Paid       bool            `json:"paid"`
	Delivered  bool            `json:"delivered"`
	Total      decimal.Decimal `json:"total"`
	CreatedAt  time.Time       `json:"createdAt"`
}

type courierResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Busy  bool   `json:"busy"`
}

func toOrderResponse(model queries.GetOrderByIDQueryResponse) orderResponse {
	items := make([]orderItemResponse, len(model.Items))
	for i, item := range model.Items {
		items[i] = orderItemResponse{
			ProductID: item.ProductID.String(),
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			ImageURL:  item.ImageURL,
		}
	}

	var courierID *string
	if model.CourierID != nil {
		id := model.CourierID.String()
		courierID = &id
	}

	return orderResponse{
		ID:               model.ID.String(),
		CustomerID:       model.CustomerID.String(),
		Status:           model.Status,
		PaymentMethod:    model.PaymentMethod,
		Paid:             model.Paid,
		PaidAt:           model.PaidAt,
		PaymentReference: model.PaymentReference,
		Street:           model.Street,
		City:             model.City,
		PostalCode:       model.PostalCode,
		Country:          model.Country,
		ItemsTotal:       model.ItemsTotal,
		Tax:              model.Tax,
		DeliveryFee:      model.DeliveryFee,
		Total:            model.Total,
		CourierID:        courierID,
		Delivered:        model.Delivered,
		DeliveredAt:      model.DeliveredAt,
		Version:          model.Version,
		CreatedAt:        model.CreatedAt,
		UpdatedAt:        model.UpdatedAt,
		Items:            items,
	}
}

func toOrderSummaryResponses(models []queries.GetOrdersQueryResponse) []orderSummaryResponse {
	summaries := make([]orderSummaryResponse, len(models))
	for i, model := range models {
		summaries[i] = orderSummaryResponse{
			ID:         model.ID.String(),
			CustomerID: model.CustomerID.String(),
			Status:     model.Status,
			Paid:       model.Paid,
			Delivered:  model.Delivered,
			Total:      model.Total,
			CreatedAt:  model.CreatedAt,
		}
	}
	return summaries
}

func toCourierResponses(models []queries.GetAllCouriersQueryResponse) []courierResponse {
	couriers := make([]courierResponse, len(models))
	for i, model := range models {
		couriers[i] = courierResponse{
			ID:    model.ID.String(),
			Name:  model.Name,
			Phone: model.Phone,
			Busy:  model.Busy,
		}
	}
	return couriers
}
