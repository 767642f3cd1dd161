package cmd

import (
	"log/slog"

	"gorm.io/gorm"

	"dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/events"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/adapters/out/selection"
	"dispatch/internal/adapters/out/traffic"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/jobs"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	logger     *slog.Logger
	uowFactory *postgres.GormUnitOfWorkFactory
	optimizer  services.RouteOptimizer
	dispatcher services.Dispatcher
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	optimizer := services.NewRouteOptimizer(services.NewDistanceCalculator(), cfg.RouteSeed)
	return CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		logger:     logger,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		optimizer:  optimizer,
		dispatcher: services.NewDispatcher(optimizer),
	}
}

func (c *CompositionRoot) uow() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) courierUoW() commands.CourierUoWFactory {
	return FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) outboxUoW() commands.OutboxUoWFactory {
	return FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
}

// reader returns a unit of work that is never begun, so its repositories
// read straight from the pool.
func (c *CompositionRoot) reader() ports.UnitOfWork {
	return c.uowFactory.Create()
}

func (c *CompositionRoot) CreateCourierSelector() ports.CourierSelector {
	return selection.NewNearestAvailable(c.reader().CourierRepository(), c.dispatcher)
}

func (c *CompositionRoot) CreateTrafficProvider() (ports.TrafficProvider, error) {
	return traffic.NewStaticProvider(c.cfg.TrafficLevel)
}

func (c *CompositionRoot) CreateEventPublisher() ports.EventPublisher {
	return events.NewLogPublisher(c.logger)
}

func (c *CompositionRoot) CreateCreateCourierCommandHandler() *commands.CreateCourierCommandHandler {
	h := commands.NewCreateCourierCommandHandler(c.courierUoW())
	return &h
}

func (c *CompositionRoot) CreateUpdateCourierStatusCommandHandler() commands.UpdateCourierStatusCommandHandler {
	return commands.NewUpdateCourierStatusCommandHandler(c.courierUoW())
}

func (c *CompositionRoot) CreateAssignDeliveryCommandHandler() commands.AssignDeliveryCommandHandler {
	return commands.NewAssignDeliveryCommandHandler(c.uow(), c.CreateCourierSelector(), c.dispatcher, c.cfg.Timeouts)
}

func (c *CompositionRoot) CreateUpdateDeliveryStatusCommandHandler() commands.UpdateDeliveryStatusCommandHandler {
	return commands.NewUpdateDeliveryStatusCommandHandler(c.uow(), c.dispatcher)
}

func (c *CompositionRoot) CreateUpdateDeliveryLocationCommandHandler() commands.UpdateDeliveryLocationCommandHandler {
	return commands.NewUpdateDeliveryLocationCommandHandler(c.uow())
}

func (c *CompositionRoot) CreateReassignDeliveryCommandHandler() commands.ReassignDeliveryCommandHandler {
	return commands.NewReassignDeliveryCommandHandler(c.uow(), c.dispatcher, c.cfg.Timeouts)
}

func (c *CompositionRoot) CreateCancelDeliveryCommandHandler() commands.CancelDeliveryCommandHandler {
	return commands.NewCancelDeliveryCommandHandler(c.uow(), c.dispatcher)
}

func (c *CompositionRoot) CreatePublishDomainEventsCommandHandler() commands.PublishDomainEventsCommandHandler {
	return commands.NewPublishDomainEventsCommandHandler(c.outboxUoW(), c.CreateEventPublisher())
}

func (c *CompositionRoot) CreateGetAllCouriersQueryHandler() queries.GetAllCouriersQueryHandler {
	return queries.NewGetAllCouriersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetActiveDeliveriesQueryHandler() queries.GetActiveDeliveriesQueryHandler {
	return queries.NewGetActiveDeliveriesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetTrackingQueryHandler() queries.GetTrackingQueryHandler {
	return queries.NewGetTrackingQueryHandler(c.reader().DeliveryRepository())
}

func (c *CompositionRoot) CreateGetOverdueDeliveriesQueryHandler() queries.GetOverdueDeliveriesQueryHandler {
	return queries.NewGetOverdueDeliveriesQueryHandler(c.reader().DeliveryRepository())
}

func (c *CompositionRoot) CreatePlanCourierRouteQueryHandler() queries.PlanCourierRouteQueryHandler {
	r := c.reader()
	return queries.NewPlanCourierRouteQueryHandler(r.CourierRepository(), r.DeliveryRepository(), c.dispatcher)
}

func (c *CompositionRoot) CreatePlanRouteQueryHandler() (queries.PlanRouteQueryHandler, error) {
	provider, err := c.CreateTrafficProvider()
	if err != nil {
		return queries.PlanRouteQueryHandler{}, err
	}
	return queries.NewPlanRouteQueryHandler(c.optimizer, provider), nil
}

func (c *CompositionRoot) CreateServer() (*http.Server, error) {
	planRoute, err := c.CreatePlanRouteQueryHandler()
	if err != nil {
		return nil, err
	}

	return http.NewServer(http.Handlers{
		CreateCourier:          c.CreateCreateCourierCommandHandler(),
		UpdateCourierStatus:    c.CreateUpdateCourierStatusCommandHandler(),
		AssignDelivery:         c.CreateAssignDeliveryCommandHandler(),
		UpdateDeliveryStatus:   c.CreateUpdateDeliveryStatusCommandHandler(),
		UpdateDeliveryLocation: c.CreateUpdateDeliveryLocationCommandHandler(),
		ReassignDelivery:       c.CreateReassignDeliveryCommandHandler(),
		CancelDelivery:         c.CreateCancelDeliveryCommandHandler(),
		GetAllCouriers:         c.CreateGetAllCouriersQueryHandler(),
		GetActiveDeliveries:    c.CreateGetActiveDeliveriesQueryHandler(),
		GetTracking:            c.CreateGetTrackingQueryHandler(),
		GetOverdueDeliveries:   c.CreateGetOverdueDeliveriesQueryHandler(),
		PlanCourierRoute:       c.CreatePlanCourierRouteQueryHandler(),
		PlanRoute:              planRoute,
	}), nil
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	relay := jobs.NewOutboxRelayJob(
		c.CreatePublishDomainEventsCommandHandler(), c.cfg.OutboxCron, c.cfg.OutboxBatchSize, c.logger)
	watch := jobs.NewOverdueWatchJob(c.CreateGetOverdueDeliveriesQueryHandler(), c.cfg.OverdueCron, c.logger)
	return jobs.NewJobManager(relay, watch)
}

type FuncCourierUoWFactory func() commands.CourierUoW

func (f FuncCourierUoWFactory) Create() commands.CourierUoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
