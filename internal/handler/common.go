// Package handler contains the HTTP handlers. Handlers translate
// between the JSON surface and the repositories/booking service;
// authentication is assumed to have run already for protected routes.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/aakankshas938-hue/hotel-booking/internal/repository"
	"github.com/aakankshas938-hue/hotel-booking/internal/service"
)

// Validator adapts go-playground/validator to echo.Validator so
// handlers can call c.Validate on bound request bodies.
type Validator struct {
	v *validator.Validate
}

// NewValidator returns a ready-to-register request validator.
func NewValidator() *Validator {
	return &Validator{v: validator.New()}
}

// Validate implements echo.Validator.
func (cv *Validator) Validate(i interface{}) error {
	return cv.v.Struct(i)
}

// getUserID extracts the authenticated user's ID from the context.
// JWT numeric claims arrive as float64; string subjects are parsed.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// domainError maps failures from the repositories and the booking
// service onto an HTTP response. It returns false when the error is
// not a recognized domain error, in which case the caller reports a
// generic 500.
func domainError(c echo.Context, err error) (bool, error) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		return true, c.JSON(http.StatusBadRequest, echo.Map{
			"error": "validation failed", "field": ve.Field, "reason": ve.Reason,
		})
	case errors.Is(err, repository.ErrBookingConflict):
		return true, c.JSON(http.StatusConflict, echo.Map{"error": "room unavailable for requested dates"})
	case errors.Is(err, repository.ErrHotelNotFound):
		return true, c.JSON(http.StatusNotFound, echo.Map{"error": "hotel not found"})
	case errors.Is(err, repository.ErrRoomTypeNotFound):
		return true, c.JSON(http.StatusNotFound, echo.Map{"error": "room type not found"})
	case errors.Is(err, repository.ErrRoomNotFound):
		return true, c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
	case errors.Is(err, repository.ErrBookingNotFound):
		return true, c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
	}
	return false, nil
}

// pathID parses a numeric path parameter, rejecting zero.
func pathID(c echo.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}
