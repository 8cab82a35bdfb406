// Package http exposes the order lifecycle over a REST API.
// It parses and validates raw requests, builds commands and queries for the
// application layer, and maps domain errors to HTTP status codes.
package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"foodorder/internal/core/application/usecases/commands"
	"foodorder/internal/core/application/usecases/queries"
	"foodorder/internal/core/domain/model/courier"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/ports"
	"foodorder/internal/pkg/errs"
)

// SnapshotSource hands out live snapshot streams for single orders.
// The broadcast registry implements it.
type SnapshotSource interface {
	Subscribe(orderID kernel.UUID) (<-chan ports.OrderSnapshot, func())
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler    commands.CreateOrderCommandHandler
	confirmPaymentHandler commands.ConfirmPaymentCommandHandler
	advanceStatusHandler  commands.AdvanceOrderStatusCommandHandler
	assignCourierHandler  commands.AssignCourierCommandHandler
	markDeliveredHandler  commands.MarkDeliveredCommandHandler
	createCourierHandler  commands.CreateCourierCommandHandler

	// Query handlers
	getOrderByIDHandler   queries.GetOrderByIDQueryHandler
	getOrdersHandler      queries.GetOrdersQueryHandler
	getAllCouriersHandler queries.GetAllCouriersQueryHandler

	watchers SnapshotSource
	validate *validator.Validate
	logger   *slog.Logger

	requestsTotal *prometheus.CounterVec
}

// NewServer creates the HTTP server with the required command and query
// handlers plus the snapshot source backing the watch endpoint.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	confirmPaymentHandler commands.ConfirmPaymentCommandHandler,
	advanceStatusHandler commands.AdvanceOrderStatusCommandHandler,
	assignCourierHandler commands.AssignCourierCommandHandler,
	markDeliveredHandler commands.MarkDeliveredCommandHandler,
	createCourierHandler commands.CreateCourierCommandHandler,
	getOrderByIDHandler queries.GetOrderByIDQueryHandler,
	getOrdersHandler queries.GetOrdersQueryHandler,
	getAllCouriersHandler queries.GetAllCouriersQueryHandler,
	watchers SnapshotSource,
	metrics prometheus.Registerer,
	logger *slog.Logger,
) *Server {
	if metrics == nil {
		metrics = prometheus.DefaultRegisterer
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Server{
		createOrderHandler:    createOrderHandler,
		confirmPaymentHandler: confirmPaymentHandler,
		advanceStatusHandler:  advanceStatusHandler,
		assignCourierHandler:  assignCourierHandler,
		markDeliveredHandler:  markDeliveredHandler,
		createCourierHandler:  createCourierHandler,
		getOrderByIDHandler:   getOrderByIDHandler,
		getOrdersHandler:      getOrdersHandler,
		getAllCouriersHandler: getAllCouriersHandler,
		watchers:              watchers,
		validate:              validator.New(),
		logger:                logger,
		requestsTotal: promauto.With(metrics).NewCounterVec(prometheus.CounterOpts{
			Name: "foodorder_http_requests_total",
			Help: "Number of handled HTTP requests by route and status code.",
		}, []string{"method", "path", "status"}),
	}
}

// RegisterRoutes mounts all API routes on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.Use(s.countRequests)

	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.GetOrders)
	api.GET("/orders/:id", s.GetOrderByID)
	api.POST("/orders/:id/payment", s.ConfirmPayment)
	api.POST("/orders/:id/status", s.AdvanceStatus)
	api.POST("/orders/:id/courier", s.AssignCourier)
	api.POST("/orders/:id/delivered", s.MarkDelivered)
	api.GET("/orders/:id/watch", s.WatchOrder)

	api.POST("/couriers", s.CreateCourier)
	api.GET("/couriers", s.GetCouriers)

	e.GET("/health", s.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

func (s *Server) countRequests(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		err := next(ctx)
		s.requestsTotal.WithLabelValues(
			ctx.Request().Method,
			ctx.Path(),
			strconv.Itoa(ctx.Response().Status),
		).Inc()
		return err
	}
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateOrder handles POST /api/v1/orders - places a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var request createOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}
	if err := s.validate.Struct(request); err != nil {
		return s.badRequest(ctx, "Invalid order data: "+err.Error())
	}

	customerID, err := kernel.UUIDFromString(request.CustomerID)
	if err != nil {
		return s.respondError(ctx, err)
	}

	items, err := parseLineItems(request.Items)
	if err != nil {
		return s.respondError(ctx, err)
	}

	address, err := order.NewAddress(
		request.Address.Street, request.Address.City,
		request.Address.PostalCode, request.Address.Country)
	if err != nil {
		return s.respondError(ctx, err)
	}

	method, err := order.PaymentMethodFromString(request.PaymentMethod)
	if err != nil {
		return s.respondError(ctx, err)
	}

	pricing, err := parsePricing(request.Pricing)
	if err != nil {
		return s.respondError(ctx, err)
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, customerID, items, address, method, pricing)
	if err != nil {
		return s.respondError(ctx, err)
	}

	if err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, createOrderResponse{
		OrderID: orderID.String(),
		Status:  order.Placed.String(),
	})
}

// GetOrders handles GET /api/v1/orders - lists order summaries, newest first.
// The optional customer_id query parameter scopes the listing to one customer.
func (s *Server) GetOrders(ctx echo.Context) error {
	var query queries.GetOrdersQuery

	if raw := ctx.QueryParam("customer_id"); raw != "" {
		customerID, err := kernel.UUIDFromString(raw)
		if err != nil {
			return s.respondError(ctx, err)
		}
		if query, err = queries.NewGetOrdersByCustomerQuery(customerID); err != nil {
			return s.respondError(ctx, err)
		}
	} else {
		query = queries.NewGetOrdersQuery()
	}

	orders, err := s.getOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderSummaryResponses(orders))
}

// GetOrderByID handles GET /api/v1/orders/:id - fetches the full order read model.
func (s *Server) GetOrderByID(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.respondError(ctx, err)
	}

	query, err := queries.NewGetOrderByIDQuery(orderID)
	if err != nil {
		return s.respondError(ctx, err)
	}

	model, err := s.getOrderByIDHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(model))
}

// ConfirmPayment handles POST /api/v1/orders/:id/payment - the payment
// gateway's confirmation callback. A repeated callback with the same
// reference succeeds without changing anything; a conflicting reference
// is answered with 409.
func (s *Server) ConfirmPayment(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.respondError(ctx, err)
	}

	var request confirmPaymentRequest
	if err := ctx.Bind(&request); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}
	if err := s.validate.Struct(request); err != nil {
		return s.badRequest(ctx, "Invalid payment data: "+err.Error())
	}

	cmd, err := commands.NewConfirmPaymentCommand(orderID, request.Reference)
	if err != nil {
		return s.respondError(ctx, err)
	}

	if err := s.confirmPaymentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

// AdvanceStatus handles POST /api/v1/orders/:id/status - moves the order one
// lifecycle step forward.
func (s *Server) AdvanceStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.respondError(ctx, err)
	}

	var request advanceStatusRequest
	if err := ctx.Bind(&request); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}
	if err := s.validate.Struct(request); err != nil {
		return s.badRequest(ctx, "Invalid status data: "+err.Error())
	}

	target, err := order.StatusFromString(request.Status)
	if err != nil {
		return s.respondError(ctx, err)
	}

	cmd, err := commands.NewAdvanceOrderStatusCommand(orderID, target)
	if err != nil {
		return s.respondError(ctx, err)
	}

	if err := s.advanceStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}

	s.logger.InfoContext(ctx.Request().Context(), "order status advanced",
		slog.String("orderId", orderID.String()),
		slog.String("status", request.Status),
		slog.String("actor", request.Actor))

	return ctx.NoContent(http.StatusOK)
}

// AssignCourier handles POST /api/v1/orders/:id/courier - assigns a specific
// courier to the order.
func (s *Server) AssignCourier(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.respondError(ctx, err)
	}

	var request assignCourierRequest
	if err := ctx.Bind(&request); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}
	if err := s.validate.Struct(request); err != nil {
		return s.badRequest(ctx, "Invalid courier data: "+err.Error())
	}

	courierID, err := kernel.UUIDFromString(request.CourierID)
	if err != nil {
		return s.respondError(ctx, err)
	}

	cmd, err := commands.NewAssignCourierCommand(orderID, courierID)
	if err != nil {
		return s.respondError(ctx, err)
	}

	if err := s.assignCourierHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

// MarkDelivered handles POST /api/v1/orders/:id/delivered - the courier
// reports the handover, closing the order lifecycle.
func (s *Server) MarkDelivered(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.respondError(ctx, err)
	}

	var request markDeliveredRequest
	if err := ctx.Bind(&request); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewMarkDeliveredCommand(orderID)
	if err != nil {
		return s.respondError(ctx, err)
	}

	if err := s.markDeliveredHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}

	s.logger.InfoContext(ctx.Request().Context(), "order delivered",
		slog.String("orderId", orderID.String()),
		slog.String("actor", request.Actor))

	return ctx.NoContent(http.StatusOK)
}

// CreateCourier handles POST /api/v1/couriers - registers a new courier.
func (s *Server) CreateCourier(ctx echo.Context) error {
	var request createCourierRequest
	if err := ctx.Bind(&request); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}
	if err := s.validate.Struct(request); err != nil {
		return s.badRequest(ctx, "Invalid courier data: "+err.Error())
	}

	courierID := kernel.NewUUID()
	cmd, err := commands.NewCreateCourierCommand(courierID, request.Name, request.Phone)
	if err != nil {
		return s.respondError(ctx, err)
	}

	if err := s.createCourierHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, createCourierResponse{CourierID: courierID.String()})
}

// GetCouriers handles GET /api/v1/couriers - lists all couriers.
func (s *Server) GetCouriers(ctx echo.Context) error {
	query := queries.NewGetAllCouriersQuery()

	couriers, err := s.getAllCouriersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toCourierResponses(couriers))
}

func parseLineItems(requests []lineItemRequest) ([]order.LineItem, error) {
	items := make([]order.LineItem, len(requests))
	for i, request := range requests {
		productID, err := kernel.UUIDFromString(request.ProductID)
		if err != nil {
			return nil, err
		}

		unitPrice, err := kernel.MoneyFromString(request.UnitPrice)
		if err != nil {
			return nil, err
		}

		if items[i], err = order.NewLineItem(
			productID, request.Name, request.Quantity, unitPrice, request.ImageURL,
		); err != nil {
			return nil, err
		}
	}
	return items, nil
}

func parsePricing(request pricingRequest) (order.Pricing, error) {
	itemsTotal, err := kernel.MoneyFromString(request.ItemsTotal)
	if err != nil {
		return order.Pricing{}, err
	}
	tax, err := kernel.MoneyFromString(request.Tax)
	if err != nil {
		return order.Pricing{}, err
	}
	deliveryFee, err := kernel.MoneyFromString(request.DeliveryFee)
	if err != nil {
		return order.Pricing{}, err
	}
	total, err := kernel.MoneyFromString(request.Total)
	if err != nil {
		return order.Pricing{}, err
	}

	return order.NewPricing(itemsTotal, tax, deliveryFee, total)
}

func (s *Server) badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, errorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// respondError maps application and domain errors to HTTP status codes.
// Validation failures are the client's fault (400), missing aggregates are
// 404, and lifecycle conflicts (including lost optimistic-lock races) are 409.
func (s *Server) respondError(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		status = http.StatusBadRequest
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrOrderAlreadyPaid),
		errors.Is(err, order.ErrCourierAlreadyAssigned),
		errors.Is(err, courier.ErrCourierIsAlreadyBusy),
		errors.Is(err, errs.ErrVersionIsInvalid):
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), "request failed",
			slog.String("path", ctx.Path()),
			slog.Any("error", err))
		return ctx.JSON(status, errorResponse{Code: status, Message: "Internal server error"})
	}

	return ctx.JSON(status, errorResponse{Code: status, Message: err.Error()})
}
