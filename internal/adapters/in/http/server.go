package http

import (
	"net/http"
	"strconv"
	"time"

	"tracking/internal/core/application/usecases/commands"
	"tracking/internal/core/application/usecases/queries"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/tracking"

	"github.com/labstack/echo/v4"
)

// Server exposes the tracking API over HTTP.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createTrackingHandler commands.CreateTrackingCommandHandler
	recordLocationHandler commands.RecordLocationCommandHandler
	updateStatusHandler   commands.UpdateTrackingStatusCommandHandler
	purgeHistoryHandler   commands.PurgeLocationHistoryCommandHandler

	// Query handlers
	getTrackingHandler    queries.GetTrackingQueryHandler
	getRecentRouteHandler queries.GetRecentRouteQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createTrackingHandler commands.CreateTrackingCommandHandler,
	recordLocationHandler commands.RecordLocationCommandHandler,
	updateStatusHandler commands.UpdateTrackingStatusCommandHandler,
	purgeHistoryHandler commands.PurgeLocationHistoryCommandHandler,
	getTrackingHandler queries.GetTrackingQueryHandler,
	getRecentRouteHandler queries.GetRecentRouteQueryHandler,
) *Server {
	return &Server{
		createTrackingHandler: createTrackingHandler,
		recordLocationHandler: recordLocationHandler,
		updateStatusHandler:   updateStatusHandler,
		purgeHistoryHandler:   purgeHistoryHandler,
		getTrackingHandler:    getTrackingHandler,
		getRecentRouteHandler: getRecentRouteHandler,
	}
}

// RegisterRoutes binds all tracking API routes on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.Validator = NewRequestValidator()

	api := e.Group("/api/v1")
	api.POST("/trackings", s.CreateTracking)
	api.GET("/trackings/:orderID", s.GetTracking)
	api.GET("/trackings/:orderID/route", s.GetRoute)
	api.POST("/trackings/:orderID/locations", s.RecordLocation)
	api.POST("/trackings/:orderID/status", s.UpdateStatus)
	api.POST("/maintenance/retention-sweep", s.RetentionSweep)
}

// CreateTracking handles POST /api/v1/trackings - starts tracking a delivery.
// Repeating the request for an order already being tracked returns the
// existing tracking instead of failing.
func (s *Server) CreateTracking(ctx echo.Context) error {
	var req CreateTrackingRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := ctx.Validate(&req); err != nil {
		return err
	}

	orderID, err := kernel.UUIDFromString(req.OrderID)
	if err != nil {
		return s.badRequest(ctx, "Invalid order_id: "+err.Error())
	}
	courierID, err := kernel.UUIDFromString(req.CourierID)
	if err != nil {
		return s.badRequest(ctx, "Invalid courier_id: "+err.Error())
	}

	pickup, err := optionalPoint(req.Pickup)
	if err != nil {
		return s.badRequest(ctx, "Invalid pickup point: "+err.Error())
	}
	delivery, err := optionalPoint(req.Delivery)
	if err != nil {
		return s.badRequest(ctx, "Invalid delivery point: "+err.Error())
	}

	cmd, err := commands.NewCreateTrackingCommand(
		orderID, courierID,
		pickup, req.PickupAddress,
		delivery, req.DeliveryAddress,
		timeOrZero(req.AssignedAt),
	)
	if err != nil {
		return s.badRequest(ctx, "Invalid tracking data: "+err.Error())
	}

	trackingID, err := s.createTrackingHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.applicationError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateTrackingResponse{
		TrackingID: trackingID.String(),
	})
}

// RecordLocation handles POST /api/v1/trackings/:orderID/locations - stores a
// courier position report and returns the distance covered since the last one.
func (s *Server) RecordLocation(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return s.badRequest(ctx, "Invalid order identifier")
	}

	var req RecordLocationRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err = ctx.Validate(&req); err != nil {
		return err
	}

	point, err := kernel.NewGeoPoint(req.Lat, req.Lon)
	if err != nil {
		return s.badRequest(ctx, "Invalid coordinates: "+err.Error())
	}

	statusAtSample := tracking.StatusUnknown
	if req.Status != "" {
		statusAtSample, err = tracking.StatusFromString(req.Status)
		if err != nil {
			return s.badRequest(ctx, "Unknown status: "+req.Status)
		}
	}

	cmd, err := commands.NewRecordLocationCommand(
		orderID, point,
		req.AccuracyM, req.SpeedKmh, req.HeadingDeg,
		statusAtSample,
		timeOrZero(req.RecordedAt),
	)
	if err != nil {
		return s.badRequest(ctx, "Invalid location data: "+err.Error())
	}

	result, err := s.recordLocationHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.applicationError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, RecordLocationResponse{
		SampleID:        result.SampleID.String(),
		DistanceDeltaKm: result.DistanceDeltaKm,
	})
}

// UpdateStatus handles POST /api/v1/trackings/:orderID/status - moves the
// tracking along its lifecycle.
func (s *Server) UpdateStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return s.badRequest(ctx, "Invalid order identifier")
	}

	var req UpdateStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err = ctx.Validate(&req); err != nil {
		return err
	}

	target, err := tracking.StatusFromString(req.Status)
	if err != nil {
		return s.badRequest(ctx, "Unknown status: "+req.Status)
	}

	cmd, err := commands.NewUpdateTrackingStatusCommand(
		orderID, target, req.Notes, timeOrZero(req.OccurredAt),
	)
	if err != nil {
		return s.badRequest(ctx, "Invalid status data: "+err.Error())
	}

	if err = s.updateStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.applicationError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetTracking handles GET /api/v1/trackings/:orderID - returns the current
// tracking snapshot for an order.
func (s *Server) GetTracking(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return s.badRequest(ctx, "Invalid order identifier")
	}

	query, err := queries.NewGetTrackingQuery(orderID)
	if err != nil {
		return s.badRequest(ctx, "Invalid query: "+err.Error())
	}

	snapshot, err := s.getTrackingHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.applicationError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, snapshot)
}

// GetRoute handles GET /api/v1/trackings/:orderID/route - returns recent
// location samples, newest first. The limit query parameter bounds the
// result; omitted or zero applies the default.
func (s *Server) GetRoute(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return s.badRequest(ctx, "Invalid order identifier")
	}

	limit := 0
	if raw := ctx.QueryParam("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			return s.badRequest(ctx, "Invalid limit: "+raw)
		}
	}

	query, err := queries.NewGetRecentRouteQuery(orderID, limit)
	if err != nil {
		return s.badRequest(ctx, "Invalid query: "+err.Error())
	}

	route, err := s.getRecentRouteHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.applicationError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, route)
}

// RetentionSweep handles POST /api/v1/maintenance/retention-sweep - removes
// expired location samples while keeping the newest sample per tracking.
func (s *Server) RetentionSweep(ctx echo.Context) error {
	var req RetentionSweepRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := ctx.Validate(&req); err != nil {
		return err
	}

	cmd, err := commands.NewPurgeLocationHistoryCommand(req.HorizonDays, time.Now().UTC())
	if err != nil {
		return s.badRequest(ctx, "Invalid sweep data: "+err.Error())
	}

	deleted, err := s.purgeHistoryHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.applicationError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, RetentionSweepResponse{Deleted: deleted})
}

func (s *Server) badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func (s *Server) applicationError(ctx echo.Context, err error) error {
	code := statusCodeFor(err)
	return ctx.JSON(code, Error{
		Code:    code,
		Message: err.Error(),
	})
}

func optionalPoint(req *PointRequest) (*kernel.GeoPoint, error) {
	if req == nil {
		return nil, nil
	}
	point, err := kernel.NewGeoPoint(req.Lat, req.Lon)
	if err != nil {
		return nil, err
	}
	return &point, nil
}
