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

type PaymentHandler struct {
	svc service.PaymentService
}

func NewPaymentHandler(svc service.PaymentService) *PaymentHandler {
	return &PaymentHandler{svc: svc}
}

func (h *PaymentHandler) RegisterRoutes(e *echo.Echo, jwtSecret string) {
	auth := middleware.JWTAuth(jwtSecret)
	e.POST("/api/v1/sessions/:sessionId/payment", h.Initiate, auth)
	e.POST("/api/v1/sessions/:sessionId/payment/success", h.Finalize, auth)
}

func (h *PaymentHandler) Initiate(c echo.Context) error {
	sessionID, err := strconv.ParseUint(c.Param("sessionId"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid session id")
	}
	userID := middleware.UserID(c)

	result, err := h.svc.Initiate(c.Request().Context(), userID, uint(sessionID))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrPaymentProvider):
			return echo.NewHTTPError(http.StatusBadGateway, "failed to prepare payment")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, dto.Success(result))
}

func (h *PaymentHandler) Finalize(c echo.Context) error {
	if _, err := strconv.ParseUint(c.Param("sessionId"), 10, 64); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid session id")
	}

	var req dto.FinalizePaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	userID := middleware.UserID(c)

	if err := h.svc.Finalize(c.Request().Context(), userID, req.PaymentID, req.PGToken); err != nil {
		switch {
		case errors.Is(err, service.ErrMissingPaymentInfo):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrPaymentNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrNotPaymentOwner):
			return echo.NewHTTPError(http.StatusForbidden, err.Error())
		case errors.Is(err, service.ErrPaymentApprovalFailed):
			return echo.NewHTTPError(http.StatusBadGateway, "payment failed")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, dto.Success(nil))
}
