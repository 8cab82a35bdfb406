package cmd

import (
	"log/slog"
	"strings"

	"gorm.io/gorm"

	httpin "foodorder/internal/adapters/in/http"
	"foodorder/internal/adapters/out/broadcast"
	"foodorder/internal/adapters/out/kafka"
	"foodorder/internal/adapters/out/postgres"
	"foodorder/internal/core/application/usecases/commands"
	"foodorder/internal/core/application/usecases/queries"
	"foodorder/internal/core/ports"
	"foodorder/internal/jobs"
)

// CompositionRoot wires adapters, use cases, and background jobs together.
// Command handlers share one snapshot publisher that fans committed order
// changes out to the in-process watcher registry and the Kafka relay.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory

	registry   *broadcast.Registry
	kafkaRelay *kafka.OrderChangedRelay
	publisher  ports.OrderStatusPublisher

	logger *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	if logger == nil {
		logger = slog.Default()
	}

	registry := broadcast.NewRegistry()
	relay := kafka.NewOrderChangedRelay(
		splitBrokers(config.KafkaHost), config.KafkaOrderChangedTopic)

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		registry:   registry,
		kafkaRelay: relay,
		publisher:  broadcast.NewFanOutPublisher(registry, relay),
		logger:     logger,
	}
}

// Registry exposes the watcher registry so the HTTP server can serve
// the watch endpoint from it.
func (c *CompositionRoot) Registry() *broadcast.Registry {
	return c.registry
}

// Shutdown disconnects live watchers and flushes the Kafka relay.
func (c *CompositionRoot) Shutdown() error {
	c.registry.Shutdown()
	return c.kafkaRelay.Close()
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateConfirmPaymentCommandHandler() commands.ConfirmPaymentCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewConfirmPaymentCommandHandler(f, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateAdvanceOrderStatusCommandHandler() commands.AdvanceOrderStatusCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewAdvanceOrderStatusCommandHandler(f, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateAssignCourierCommandHandler() commands.AssignCourierCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignCourierCommandHandler(f, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateDispatchCourierCommandHandler() commands.DispatchCourierCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewDispatchCourierCommandHandler(f, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateMarkDeliveredCommandHandler() commands.MarkDeliveredCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewMarkDeliveredCommandHandler(f, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateCreateCourierCommandHandler() commands.CreateCourierCommandHandler {
	var f commands.CourierUoWFactory = FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateCourierCommandHandler(f)
}

func (c *CompositionRoot) CreateGetOrderByIDQueryHandler() queries.GetOrderByIDQueryHandler {
	return queries.NewGetOrderByIDQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrdersQueryHandler() queries.GetOrdersQueryHandler {
	return queries.NewGetOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAllCouriersQueryHandler() queries.GetAllCouriersQueryHandler {
	return queries.NewGetAllCouriersQueryHandler(c.gormDB)
}

// CreateHTTPServer assembles the REST server over all use case handlers.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateConfirmPaymentCommandHandler(),
		c.CreateAdvanceOrderStatusCommandHandler(),
		c.CreateAssignCourierCommandHandler(),
		c.CreateMarkDeliveredCommandHandler(),
		c.CreateCreateCourierCommandHandler(),
		c.CreateGetOrderByIDQueryHandler(),
		c.CreateGetOrdersQueryHandler(),
		c.CreateGetAllCouriersQueryHandler(),
		c.registry,
		nil,
		c.logger,
	)
}

// CreateJobManager assembles the background job scheduler.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateDispatchCourierCommandHandler(), c.logger)
}

func splitBrokers(hosts string) []string {
	brokers := make([]string, 0)
	for _, host := range strings.Split(hosts, ",") {
		if host = strings.TrimSpace(host); host != "" {
			brokers = append(brokers, host)
		}
	}
	return brokers
}

type FuncCourierUoWFactory func() commands.CourierUoW

func (f FuncCourierUoWFactory) Create() commands.CourierUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
