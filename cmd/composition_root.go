package cmd

import (
	"log/slog"

	httpin "tracking/internal/adapters/in/http"
	kafkain "tracking/internal/adapters/in/kafka"
	"tracking/internal/adapters/out/postgres"
	"tracking/internal/adapters/out/rediscache"
	"tracking/internal/core/application/usecases/commands"
	"tracking/internal/core/application/usecases/queries"
	"tracking/internal/core/domain/services"
	"tracking/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters, use cases and jobs together.
// Handlers are created per call; the database connection, unit of work
// factory and cache are shared.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	cache      *rediscache.Cache
}

// NewCompositionRoot creates the composition root for the given configuration.
// An empty RedisAddr disables snapshot caching.
func NewCompositionRoot(config Config, gormDB *gorm.DB) CompositionRoot {
	var cache *rediscache.Cache
	if config.RedisAddr != "" {
		cache = rediscache.NewWithAddr(config.RedisAddr, config.RedisPassword, config.RedisDB)
	}

	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		cache:      cache,
	}
}

func (c *CompositionRoot) CreateCreateTrackingCommandHandler() commands.CreateTrackingCommandHandler {
	var f commands.TrackingUoWFactory = FuncTrackingUoWFactory(func() commands.TrackingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateTrackingCommandHandler(f)
}

func (c *CompositionRoot) CreateRecordLocationCommandHandler() commands.RecordLocationCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewRecordLocationCommandHandler(f, services.NewArrivalEstimator())
}

func (c *CompositionRoot) CreateUpdateTrackingStatusCommandHandler() commands.UpdateTrackingStatusCommandHandler {
	var f commands.TrackingUoWFactory = FuncTrackingUoWFactory(func() commands.TrackingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateTrackingStatusCommandHandler(f)
}

func (c *CompositionRoot) CreatePurgeLocationHistoryCommandHandler() commands.PurgeLocationHistoryCommandHandler {
	var f commands.LocationHistoryUoWFactory = FuncLocationHistoryUoWFactory(func() commands.LocationHistoryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPurgeLocationHistoryCommandHandler(f)
}

func (c *CompositionRoot) CreateGetTrackingQueryHandler() queries.GetTrackingQueryHandler {
	if c.cache == nil {
		return queries.NewGetTrackingQueryHandler(c.gormDB, nil)
	}
	return queries.NewGetTrackingQueryHandler(c.gormDB, c.cache)
}

func (c *CompositionRoot) CreateGetRecentRouteQueryHandler() queries.GetRecentRouteQueryHandler {
	return queries.NewGetRecentRouteQueryHandler(c.gormDB)
}

// CreateHTTPServer assembles the HTTP server over all use case handlers.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateCreateTrackingCommandHandler(),
		c.CreateRecordLocationCommandHandler(),
		c.CreateUpdateTrackingStatusCommandHandler(),
		c.CreatePurgeLocationHistoryCommandHandler(),
		c.CreateGetTrackingQueryHandler(),
		c.CreateGetRecentRouteQueryHandler(),
	)
}

// CreateOrderEventHandler assembles the handler that feeds order events
// into the tracking use cases.
func (c *CompositionRoot) CreateOrderEventHandler(logger *slog.Logger) *kafkain.OrderEventHandler {
	return kafkain.NewOrderEventHandler(
		c.CreateCreateTrackingCommandHandler(),
		c.CreateUpdateTrackingStatusCommandHandler(),
		logger,
	)
}

// CreateOrderEventConsumer creates the Kafka consumer for order events.
// Returns nil when no Kafka host is configured.
func (c *CompositionRoot) CreateOrderEventConsumer() *kafkain.Consumer {
	if c.config.KafkaHost == "" {
		return nil
	}
	return kafkain.NewConsumer(
		[]string{c.config.KafkaHost},
		c.config.KafkaOrderEventTopic,
		c.config.KafkaConsumerGroup,
	)
}

// CreateJobManager assembles the scheduled jobs.
func (c *CompositionRoot) CreateJobManager(logger *slog.Logger) *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreatePurgeLocationHistoryCommandHandler(),
		c.config.RetentionSweepSchedule,
		c.config.RetentionHorizonDays,
		logger,
	)
}

type FuncTrackingUoWFactory func() commands.TrackingUoW

func (f FuncTrackingUoWFactory) Create() commands.TrackingUoW {
	return f()
}

type FuncLocationHistoryUoWFactory func() commands.LocationHistoryUoW

func (f FuncLocationHistoryUoWFactory) Create() commands.LocationHistoryUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
