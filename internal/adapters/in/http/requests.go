package http

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// RequestValidator adapts go-playground/validator to echo's Validator
// interface so handlers can call ctx.Validate on bound request bodies.
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator creates a validator for incoming request bodies.
func NewRequestValidator() *RequestValidator {
	return &RequestValidator{validate: validator.New()}
}

// Validate checks struct tags on the bound request and reports violations
// as a 400 so echo's error handler renders them without a stack trace.
func (v *RequestValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// PointRequest carries a coordinate pair in a request body.
type PointRequest struct {
	Lat float64 `json:"lat" validate:"min=-90,max=90"`
	Lon float64 `json:"lon" validate:"min=-180,max=180"`
}

// CreateTrackingRequest is the body of POST /api/v1/trackings.
type CreateTrackingRequest struct {
	OrderID         string        `json:"order_id" validate:"required,uuid"`
	CourierID       string        `json:"courier_id" validate:"required,uuid"`
	Pickup          *PointRequest `json:"pickup,omitempty"`
	PickupAddress   string        `json:"pickup_address,omitempty"`
	Delivery        *PointRequest `json:"delivery,omitempty"`
	DeliveryAddress string        `json:"delivery_address,omitempty"`
	AssignedAt      *time.Time    `json:"assigned_at,omitempty"`
}

// CreateTrackingResponse is the body returned for a created tracking.
type CreateTrackingResponse struct {
	TrackingID string `json:"tracking_id"`
}

// RecordLocationRequest is the body of POST /api/v1/trackings/:orderID/locations.
type RecordLocationRequest struct {
	Lat        float64    `json:"lat" validate:"min=-90,max=90"`
	Lon        float64    `json:"lon" validate:"min=-180,max=180"`
	AccuracyM  *float64   `json:"accuracy_m,omitempty"`
	SpeedKmh   *float64   `json:"speed_kmh,omitempty"`
	HeadingDeg *float64   `json:"heading_deg,omitempty"`
	Status     string     `json:"status,omitempty"`
	RecordedAt *time.Time `json:"recorded_at,omitempty"`
}

// RecordLocationResponse reports the stored sample and the distance the
// courier covered since the previous report.
type RecordLocationResponse struct {
	SampleID        string  `json:"sample_id"`
	DistanceDeltaKm float64 `json:"distance_delta_km"`
}

// UpdateStatusRequest is the body of POST /api/v1/trackings/:orderID/status.
type UpdateStatusRequest struct {
	Status     string     `json:"status" validate:"required"`
	Notes      string     `json:"notes,omitempty"`
	OccurredAt *time.Time `json:"occurred_at,omitempty"`
}

// RetentionSweepRequest is the body of POST /api/v1/maintenance/retention-sweep.
// A zero HorizonDays applies the default retention horizon.
type RetentionSweepRequest struct {
	HorizonDays int `json:"horizon_days" validate:"min=0"`
}

// RetentionSweepResponse reports how many samples the sweep removed.
type RetentionSweepResponse struct {
	Deleted int64 `json:"deleted"`
}

func timeOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
