package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/onedayclass/booking-service/internal/dto"
	"github.com/onedayclass/booking-service/internal/middleware"
	"github.com/onedayclass/booking-service/internal/service"
	"github.com/labstack/echo/v4"
)

type BookingHandler struct {
	svc      service.BookingService
	querySvc service.QueryService
}

func NewBookingHandler(svc service.BookingService, querySvc service.QueryService) *BookingHandler {
	return &BookingHandler{svc: svc, querySvc: querySvc}
}

func (h *BookingHandler) RegisterRoutes(e *echo.Echo, jwtSecret string) {
	e.GET("/api/v1/sessions/:classId", h.GetAvailability)

	auth := middleware.JWTAuth(jwtSecret)
	e.POST("/api/v1/bookings", h.CreateBooking, auth)
	e.PATCH("/api/v1/bookings", h.CancelBooking, auth)
	e.GET("/api/v1/students/:id/bookings", h.BookingHistory, auth)
	e.GET("/api/v1/sessions/:sessionId/attendees", h.Attendees, auth, middleware.RequireRole(middleware.RoleInstructor))
}

func (h *BookingHandler) GetAvailability(c echo.Context) error {
	classID, err := strconv.ParseUint(c.Param("classId"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid class id")
	}

	var studentID *uint
	if s := c.QueryParam("studentId"); s != "" {
		id, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid student id")
		}
		sid := uint(id)
		studentID = &sid
	}

	availability, err := h.svc.GetAvailability(c.Request().Context(), uint(classID), studentID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.Success(availability))
}

func (h *BookingHandler) CreateBooking(c echo.Context) error {
	var req dto.CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	studentID := middleware.UserID(c)

	booking, err := h.svc.CreateBooking(c.Request().Context(), studentID, req.ClassID, req.SessionID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrAlreadyBooked):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrSeatsExhausted):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	availability, err := h.svc.GetAvailability(c.Request().Context(), req.ClassID, &studentID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, dto.Success(dto.BookingResult{
		Booking:      dto.ToBookingResponse(booking),
		Availability: availability,
	}))
}

func (h *BookingHandler) CancelBooking(c echo.Context) error {
	var req dto.CancelBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	studentID := middleware.UserID(c)

	booking, err := h.svc.CancelBooking(c.Request().Context(), studentID, req.ClassID, req.SessionID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound), errors.Is(err, service.ErrBookingNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	availability, err := h.svc.GetAvailability(c.Request().Context(), req.ClassID, &studentID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.Success(dto.BookingResult{
		Booking:      dto.ToBookingResponse(booking),
		Availability: availability,
	}))
}

func (h *BookingHandler) BookingHistory(c echo.Context) error {
	studentID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid student id")
	}
	// Students may only read their own history; instructors may read any.
	if middleware.UserID(c) != uint(studentID) && middleware.Role(c) != middleware.RoleInstructor {
		return echo.NewHTTPError(http.StatusForbidden, "forbidden")
	}

	history, err := h.querySvc.BookingHistory(c.Request().Context(), uint(studentID))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.Success(history))
}

func (h *BookingHandler) Attendees(c echo.Context) error {
	sessionID, err := strconv.ParseUint(c.Param("sessionId"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid session id")
	}

	attendees, err := h.querySvc.Attendees(c.Request().Context(), uint(sessionID))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.Success(attendees))
}
