// Package http exposes the dispatch use cases over a JSON REST API.
package http

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

const TenantHeader = "X-Tenant-ID"

type (
	CreateCourierHandler interface {
		Handle(ctx context.Context, cmd commands.CreateCourierCommand) error
	}
	UpdateCourierStatusHandler interface {
		Handle(ctx context.Context, cmd commands.UpdateCourierStatusCommand) error
	}
	AssignDeliveryHandler interface {
		Handle(ctx context.Context, cmd commands.AssignDeliveryCommand) error
	}
	UpdateDeliveryStatusHandler interface {
		Handle(ctx context.Context, cmd commands.UpdateDeliveryStatusCommand) error
	}
	UpdateDeliveryLocationHandler interface {
		Handle(ctx context.Context, cmd commands.UpdateDeliveryLocationCommand) error
	}
	ReassignDeliveryHandler interface {
		Handle(ctx context.Context, cmd commands.ReassignDeliveryCommand) error
	}
	CancelDeliveryHandler interface {
		Handle(ctx context.Context, cmd commands.CancelDeliveryCommand) error
	}

	GetAllCouriersHandler interface {
		Handle(ctx context.Context, query queries.GetAllCouriersQuery) ([]queries.GetAllCouriersQueryResponse, error)
	}
	GetActiveDeliveriesHandler interface {
		Handle(ctx context.Context, query queries.GetActiveDeliveriesQuery) ([]queries.GetActiveDeliveriesQueryResponse, error)
	}
	GetTrackingHandler interface {
		Handle(ctx context.Context, query queries.GetTrackingQuery) (delivery.TrackingUpdate, error)
	}
	GetOverdueDeliveriesHandler interface {
		Handle(ctx context.Context, query queries.GetOverdueDeliveriesQuery) ([]delivery.TrackingUpdate, error)
	}
	PlanCourierRouteHandler interface {
		Handle(ctx context.Context, query queries.PlanCourierRouteQuery) (queries.PlanCourierRouteQueryResponse, error)
	}
	PlanRouteHandler interface {
		Handle(ctx context.Context, query queries.PlanRouteQuery) (queries.PlanRouteQueryResponse, error)
	}
)

// Handlers groups the use cases the API serves.
type Handlers struct {
	CreateCourier          CreateCourierHandler
	UpdateCourierStatus    UpdateCourierStatusHandler
	AssignDelivery         AssignDeliveryHandler
	UpdateDeliveryStatus   UpdateDeliveryStatusHandler
	UpdateDeliveryLocation UpdateDeliveryLocationHandler
	ReassignDelivery       ReassignDeliveryHandler
	CancelDelivery         CancelDeliveryHandler

	GetAllCouriers       GetAllCouriersHandler
	GetActiveDeliveries  GetActiveDeliveriesHandler
	GetTracking          GetTrackingHandler
	GetOverdueDeliveries GetOverdueDeliveriesHandler
	PlanCourierRoute     PlanCourierRouteHandler
	PlanRoute            PlanRouteHandler
}

// Server translates HTTP requests into commands and queries.
type Server struct {
	handlers Handlers
	now      func() time.Time
}

func NewServer(handlers Handlers) *Server {
	return &Server{
		handlers: handlers,
		now:      time.Now,
	}
}

// RegisterHandlers mounts every endpoint on e.
func (s *Server) RegisterHandlers(e *echo.Echo) {
	e.GET("/health", s.Health)

	v1 := e.Group("/api/v1")
	v1.GET("/couriers", s.GetCouriers)
	v1.POST("/couriers", s.CreateCourier)
	v1.PUT("/couriers/:courierId/status", s.UpdateCourierStatus)
	v1.GET("/couriers/:courierId/route", s.GetCourierRoute)
	v1.GET("/couriers/:courierId/deliveries", s.GetCourierDeliveries)

	v1.POST("/deliveries", s.AssignDelivery)
	v1.GET("/deliveries/overdue", s.GetOverdueDeliveries)
	v1.GET("/deliveries/:deliveryId/tracking", s.GetTracking)
	v1.PUT("/deliveries/:deliveryId/status", s.UpdateDeliveryStatus)
	v1.PUT("/deliveries/:deliveryId/location", s.UpdateDeliveryLocation)
	v1.POST("/deliveries/:deliveryId/reassign", s.ReassignDelivery)
	v1.POST("/deliveries/:deliveryId/cancel", s.CancelDelivery)

	v1.POST("/routes/plan", s.PlanRoute)
}

func (s *Server) Health(c echo.Context) error {
	return c.String(http.StatusOK, "Healthy")
}

// GetCouriers handles GET /api/v1/couriers.
func (s *Server) GetCouriers(c echo.Context) error {
	tenantID, err := tenantFrom(c)
	if err != nil {
		return err
	}

	statuses := make([]courier.Status, 0, len(c.QueryParams()["status"]))
	for _, raw := range c.QueryParams()["status"] {
		status, err := courier.ParseStatus(raw)
		if err != nil {
			return err
		}
		statuses = append(statuses, status)
	}

	query, err := queries.NewGetAllCouriersQuery(tenantID, statuses...)
	if err != nil {
		return err
	}

	couriers, err := s.handlers.GetAllCouriers.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	response := make([]Courier, 0, len(couriers))
	for _, item := range couriers {
		response = append(response, courierFromResponse(item))
	}
	return c.JSON(http.StatusOK, response)
}

// CreateCourier handles POST /api/v1/couriers.
func (s *Server) CreateCourier(c echo.Context) error {
	tenantID, err := tenantFrom(c)
	if err != nil {
		return err
	}

	var body NewCourier
	if err := bindAndValidate(c, &body); err != nil {
		return err
	}

	location, err := body.Location.toDomain()
	if err != nil {
		return err
	}
	capacity := courier.DefaultCapacity()
	if body.Capacity != nil {
		if capacity, err = courier.NewCapacity(body.Capacity.MaxOrders, body.Capacity.MaxWeight, body.Capacity.MaxVolume); err != nil {
			return err
		}
	}

	cmd, err := commands.NewCreateCourierCommand(tenantID, body.Name, body.Phone, body.VehicleType, capacity, location)
	if err != nil {
		return err
	}
	if err := s.handlers.CreateCourier.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, Created{ID: cmd.CourierID().String()})
}

// UpdateCourierStatus handles PUT /api/v1/couriers/{courierId}/status.
func (s *Server) UpdateCourierStatus(c echo.Context) error {
	courierID, err := pathUUID(c, "courierId")
	if err != nil {
		return err
	}

	var body CourierStatusChange
	if err := bindAndValidate(c, &body); err != nil {
		return err
	}
	status, err := courier.ParseStatus(body.Status)
	if err != nil {
		return err
	}

	cmd, err := commands.NewUpdateCourierStatusCommand(courierID, status)
	if err != nil {
		return err
	}
	if err := s.handlers.UpdateCourierStatus.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// GetCourierRoute handles GET /api/v1/couriers/{courierId}/route.
func (s *Server) GetCourierRoute(c echo.Context) error {
	courierID, err := pathUUID(c, "courierId")
	if err != nil {
		return err
	}

	query, err := queries.NewPlanCourierRouteQuery(courierID)
	if err != nil {
		return err
	}
	plan, err := s.handlers.PlanCourierRoute.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	response := CourierRoute{
		CourierID:        plan.CourierID.String(),
		ActiveDeliveries: plan.ActiveDeliveries,
	}
	if plan.Route != nil {
		r := routeFromDomain(*plan.Route)
		response.Route = &r
	}
	return c.JSON(http.StatusOK, response)
}

// GetCourierDeliveries handles GET /api/v1/couriers/{courierId}/deliveries.
func (s *Server) GetCourierDeliveries(c echo.Context) error {
	courierID, err := pathUUID(c, "courierId")
	if err != nil {
		return err
	}

	query, err := queries.NewGetActiveDeliveriesQuery(courierID)
	if err != nil {
		return err
	}
	deliveries, err := s.handlers.GetActiveDeliveries.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	response := make([]ActiveDelivery, 0, len(deliveries))
	for _, d := range deliveries {
		response = append(response, activeDeliveryFromResponse(d))
	}
	return c.JSON(http.StatusOK, response)
}

// AssignDelivery handles POST /api/v1/deliveries.
func (s *Server) AssignDelivery(c echo.Context) error {
	tenantID, err := tenantFrom(c)
	if err != nil {
		return err
	}

	var body NewDelivery
	if err := bindAndValidate(c, &body); err != nil {
		return err
	}

	orderID, err := kernel.ParseUUID(body.OrderID)
	if err != nil {
		return err
	}
	pickup, err := body.Pickup.toDomain()
	if err != nil {
		return err
	}
	dropoff, err := body.Dropoff.toDomain()
	if err != nil {
		return err
	}

	cmd, err := commands.NewAssignDeliveryCommand(tenantID, orderID, pickup, dropoff, body.Weight, body.Volume)
	if err != nil {
		return err
	}
	if err := s.handlers.AssignDelivery.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, Created{ID: cmd.DeliveryID().String()})
}

// GetOverdueDeliveries handles GET /api/v1/deliveries/overdue.
func (s *Server) GetOverdueDeliveries(c echo.Context) error {
	query, err := queries.NewGetOverdueDeliveriesQuery(s.now().UTC())
	if err != nil {
		return err
	}
	updates, err := s.handlers.GetOverdueDeliveries.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	response := make([]Tracking, 0, len(updates))
	for _, u := range updates {
		response = append(response, trackingFromDomain(u))
	}
	return c.JSON(http.StatusOK, response)
}

// GetTracking handles GET /api/v1/deliveries/{deliveryId}/tracking.
func (s *Server) GetTracking(c echo.Context) error {
	deliveryID, err := pathUUID(c, "deliveryId")
	if err != nil {
		return err
	}

	query, err := queries.NewGetTrackingQuery(deliveryID, s.now().UTC())
	if err != nil {
		return err
	}
	update, err := s.handlers.GetTracking.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, trackingFromDomain(update))
}

// UpdateDeliveryStatus handles PUT /api/v1/deliveries/{deliveryId}/status.
func (s *Server) UpdateDeliveryStatus(c echo.Context) error {
	deliveryID, err := pathUUID(c, "deliveryId")
	if err != nil {
		return err
	}

	var body DeliveryStatusChange
	if err := bindAndValidate(c, &body); err != nil {
		return err
	}
	status, err := delivery.ParseStatus(body.Status)
	if err != nil {
		return err
	}

	cmd, err := commands.NewUpdateDeliveryStatusCommand(deliveryID, status, body.Notes)
	if err != nil {
		return err
	}
	if err := s.handlers.UpdateDeliveryStatus.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// UpdateDeliveryLocation handles PUT /api/v1/deliveries/{deliveryId}/location.
func (s *Server) UpdateDeliveryLocation(c echo.Context) error {
	deliveryID, err := pathUUID(c, "deliveryId")
	if err != nil {
		return err
	}

	var body Location
	if err := bindAndValidate(c, &body); err != nil {
		return err
	}
	location, err := body.toDomain()
	if err != nil {
		return err
	}

	cmd, err := commands.NewUpdateDeliveryLocationCommand(deliveryID, location)
	if err != nil {
		return err
	}
	if err := s.handlers.UpdateDeliveryLocation.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ReassignDelivery handles POST /api/v1/deliveries/{deliveryId}/reassign.
func (s *Server) ReassignDelivery(c echo.Context) error {
	deliveryID, err := pathUUID(c, "deliveryId")
	if err != nil {
		return err
	}

	var body Reassignment
	if err := bindAndValidate(c, &body); err != nil {
		return err
	}
	courierID, err := kernel.ParseUUID(body.CourierID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewReassignDeliveryCommand(deliveryID, courierID)
	if err != nil {
		return err
	}
	if err := s.handlers.ReassignDelivery.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// CancelDelivery handles POST /api/v1/deliveries/{deliveryId}/cancel.
func (s *Server) CancelDelivery(c echo.Context) error {
	deliveryID, err := pathUUID(c, "deliveryId")
	if err != nil {
		return err
	}

	var body Cancellation
	if c.Request().ContentLength != 0 {
		if err := bindAndValidate(c, &body); err != nil {
			return err
		}
	}

	cmd, err := commands.NewCancelDeliveryCommand(deliveryID, body.Reason)
	if err != nil {
		return err
	}
	if err := s.handlers.CancelDelivery.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// PlanRoute handles POST /api/v1/routes/plan.
func (s *Server) PlanRoute(c echo.Context) error {
	var body PlanRouteRequest
	if err := bindAndValidate(c, &body); err != nil {
		return err
	}

	query, err := body.toQuery()
	if err != nil {
		return err
	}
	plan, err := s.handlers.PlanRoute.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, planFromResponse(plan))
}

func (r PlanRouteRequest) toQuery() (queries.PlanRouteQuery, error) {
	start, err := r.Start.toDomain()
	if err != nil {
		return queries.PlanRouteQuery{}, err
	}
	end, err := r.End.toDomain()
	if err != nil {
		return queries.PlanRouteQuery{}, err
	}
	stops := make([]kernel.Location, 0, len(r.Deliveries))
	for _, d := range r.Deliveries {
		stop, err := d.toDomain()
		if err != nil {
			return queries.PlanRouteQuery{}, err
		}
		stops = append(stops, stop)
	}

	maxRoutes := r.MaxRoutes
	if maxRoutes == 0 {
		maxRoutes = 1
	}

	var opts []queries.PlanRouteOption
	if r.ApplyTraffic {
		opts = append(opts, queries.WithTraffic())
	}
	if (r.MaxDistanceMeters == nil) != (r.MaxDurationMinutes == nil) {
		return queries.PlanRouteQuery{}, errs.NewValueIsRequiredError("maxDistanceMeters and maxDurationMinutes")
	}
	if r.MaxDistanceMeters != nil {
		maxDistance, err := kernel.NewDistance(*r.MaxDistanceMeters)
		if err != nil {
			return queries.PlanRouteQuery{}, err
		}
		opts = append(opts, queries.WithLimits(maxDistance, time.Duration(*r.MaxDurationMinutes)*time.Minute))
	}
	if r.MaxWaypoints > 0 {
		opts = append(opts, queries.WithSplit(r.MaxWaypoints))
	}
	if r.TimeBudgetMinutes > 0 {
		opts = append(opts, queries.WithTimeBudget(time.Duration(r.TimeBudgetMinutes)*time.Minute))
	}

	return queries.NewPlanRouteQuery(start, stops, end, maxRoutes, opts...)
}

func bindAndValidate(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return err
	}
	return c.Validate(dst)
}

func pathUUID(c echo.Context, name string) (kernel.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return kernel.FromGoogleUUID(id)
}

func tenantFrom(c echo.Context) (kernel.UUID, error) {
	raw := c.Request().Header.Get(TenantHeader)
	if raw == "" {
		return kernel.UUID{}, errs.NewValueIsRequiredError(TenantHeader)
	}

	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", TenantHeader, raw, &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationHeader, Explode: false, Required: true})
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(TenantHeader, err)
	}
	return kernel.FromGoogleUUID(id)
}
