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

type ReviewHandler struct {
	svc service.ReviewService
}

func NewReviewHandler(svc service.ReviewService) *ReviewHandler {
	return &ReviewHandler{svc: svc}
}

func (h *ReviewHandler) RegisterRoutes(e *echo.Echo, jwtSecret string) {
	auth := middleware.JWTAuth(jwtSecret)
	instructor := middleware.RequireRole(middleware.RoleInstructor)

	e.GET("/api/v1/reviews", h.ListReviews)
	e.POST("/api/v1/reviews", h.CreateReview, auth)
	e.DELETE("/api/v1/reviews/:id", h.DeleteReview, auth)
	e.POST("/api/v1/reviews/:id/instructor-comment", h.SetInstructorComment, auth, instructor)
	e.DELETE("/api/v1/reviews/:id/instructor-comment", h.ClearInstructorComment, auth, instructor)
}

func (h *ReviewHandler) CreateReview(c echo.Context) error {
	var req dto.CreateReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	review, err := h.svc.CreateReview(c.Request().Context(), middleware.UserID(c), service.CreateReviewInput{
		BookingID: req.BookingID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBookingNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrNotReviewOwner):
			return echo.NewHTTPError(http.StatusForbidden, err.Error())
		case errors.Is(err, service.ErrBookingNotConfirmed):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrDuplicateReview):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusCreated, dto.Success(dto.ToReviewResponse(review)))
}

func (h *ReviewHandler) ListReviews(c echo.Context) error {
	var classID, userID *uint
	if s := c.QueryParam("classId"); s != "" {
		id, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid class id")
		}
		v := uint(id)
		classID = &v
	}
	if s := c.QueryParam("userId"); s != "" {
		id, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
		}
		v := uint(id)
		userID = &v
	}

	reviews, err := h.svc.ListReviews(c.Request().Context(), classID, userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.Success(reviews))
}

func (h *ReviewHandler) DeleteReview(c echo.Context) error {
	reviewID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid review id")
	}

	if err := h.svc.DeleteReview(c.Request().Context(), middleware.UserID(c), uint(reviewID)); err != nil {
		switch {
		case errors.Is(err, service.ErrReviewNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrNotReviewOwner):
			return echo.NewHTTPError(http.StatusForbidden, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, dto.Success(nil))
}

func (h *ReviewHandler) SetInstructorComment(c echo.Context) error {
	reviewID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid review id")
	}

	var req dto.InstructorCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.svc.SetInstructorComment(c.Request().Context(), uint(reviewID), req.Comment); err != nil {
		if errors.Is(err, service.ErrReviewNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.Success(nil))
}

func (h *ReviewHandler) ClearInstructorComment(c echo.Context) error {
	reviewID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid review id")
	}

	if err := h.svc.ClearInstructorComment(c.Request().Context(), uint(reviewID)); err != nil {
		if errors.Is(err, service.ErrReviewNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.Success(nil))
}
