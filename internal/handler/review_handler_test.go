package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/onedayclass/booking-service/internal/middleware"
	"github.com/onedayclass/booking-service/internal/models"
	"github.com/onedayclass/booking-service/internal/repository"
	"github.com/onedayclass/booking-service/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

type mockReviewService struct {
	createFn       func(ctx context.Context, userID uint, input service.CreateReviewInput) (*models.Review, error)
	listFn         func(ctx context.Context, classID, userID *uint) ([]repository.ReviewDetail, error)
	deleteFn       func(ctx context.Context, userID, reviewID uint) error
	setCommentFn   func(ctx context.Context, reviewID uint, comment string) error
	clearCommentFn func(ctx context.Context, reviewID uint) error
}

func (m *mockReviewService) CreateReview(ctx context.Context, userID uint, input service.CreateReviewInput) (*models.Review, error) {
	return m.createFn(ctx, userID, input)
}
func (m *mockReviewService) ListReviews(ctx context.Context, classID, userID *uint) ([]repository.ReviewDetail, error) {
	return m.listFn(ctx, classID, userID)
}
func (m *mockReviewService) DeleteReview(ctx context.Context, userID, reviewID uint) error {
	return m.deleteFn(ctx, userID, reviewID)
}
func (m *mockReviewService) SetInstructorComment(ctx context.Context, reviewID uint, comment string) error {
	return m.setCommentFn(ctx, reviewID, comment)
}
func (m *mockReviewService) ClearInstructorComment(ctx context.Context, reviewID uint) error {
	return m.clearCommentFn(ctx, reviewID)
}

func TestCreateReview_Handler_Success(t *testing.T) {
	svc := &mockReviewService{
		createFn: func(ctx context.Context, userID uint, input service.CreateReviewInput) (*models.Review, error) {
			assert.Equal(t, uint(7), userID)
			assert.Equal(t, uint(1), input.BookingID)
			assert.Equal(t, 5, input.Rating)
			return &models.Review{ID: 10, BookingID: input.BookingID, ClassID: 2, SessionID: 3, UserID: userID, Rating: input.Rating, Comment: input.Comment}, nil
		},
	}

	e := echo.New()
	e.Validator = middleware.NewRequestValidator()
	c, rec := newTestContext(e, http.MethodPost, "/api/v1/reviews", `{"bookingId":1,"rating":5,"comment":"great class"}`, 7, middleware.RoleStudent)

	h := NewReviewHandler(svc)
	err := h.CreateReview(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"success"`)
}

func TestCreateReview_Handler_RatingOutOfRange(t *testing.T) {
	e := echo.New()
	e.Validator = middleware.NewRequestValidator()
	c, _ := newTestContext(e, http.MethodPost, "/api/v1/reviews", `{"bookingId":1,"rating":6,"comment":"great"}`, 7, middleware.RoleStudent)

	h := NewReviewHandler(&mockReviewService{})
	err := h.CreateReview(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestCreateReview_Handler_ErrorMapping(t *testing.T) {
	cases := []struct {
		name     string
		svcErr   error
		wantCode int
	}{
		{"booking missing", service.ErrBookingNotFound, http.StatusNotFound},
		{"foreign booking", service.ErrNotReviewOwner, http.StatusForbidden},
		{"not confirmed", service.ErrBookingNotConfirmed, http.StatusBadRequest},
		{"duplicate", service.ErrDuplicateReview, http.StatusConflict},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mockReviewService{
				createFn: func(ctx context.Context, userID uint, input service.CreateReviewInput) (*models.Review, error) {
					return nil, tc.svcErr
				},
			}

			e := echo.New()
			e.Validator = middleware.NewRequestValidator()
			c, _ := newTestContext(e, http.MethodPost, "/api/v1/reviews", `{"bookingId":1,"rating":4,"comment":"ok"}`, 7, middleware.RoleStudent)

			h := NewReviewHandler(svc)
			err := h.CreateReview(c)

			he, ok := err.(*echo.HTTPError)
			assert.True(t, ok)
			assert.Equal(t, tc.wantCode, he.Code)
		})
	}
}

func TestListReviews_Handler_Filters(t *testing.T) {
	svc := &mockReviewService{
		listFn: func(ctx context.Context, classID, userID *uint) ([]repository.ReviewDetail, error) {
			if assert.NotNil(t, classID) {
				assert.Equal(t, uint(2), *classID)
			}
			assert.Nil(t, userID)
			return []repository.ReviewDetail{
				{ID: 10, BookingID: 1, ClassID: 2, Rating: 5, Comment: "great", ClassName: "Pottery Basics"},
			}, nil
		},
	}

	e := echo.New()
	c, rec := newTestContext(e, http.MethodGet, "/api/v1/reviews?classId=2", "", 0, "")

	h := NewReviewHandler(svc)
	err := h.ListReviews(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Status string                    `json:"status"`
		Data   []repository.ReviewDetail `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 1)
	assert.Equal(t, "Pottery Basics", resp.Data[0].ClassName)
}

func TestDeleteReview_Handler_NotOwner(t *testing.T) {
	svc := &mockReviewService{
		deleteFn: func(ctx context.Context, userID, reviewID uint) error {
			return service.ErrNotReviewOwner
		},
	}

	e := echo.New()
	c, _ := newTestContext(e, http.MethodDelete, "/api/v1/reviews/10", "", 7, middleware.RoleStudent)
	c.SetParamNames("id")
	c.SetParamValues("10")

	h := NewReviewHandler(svc)
	err := h.DeleteReview(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusForbidden, he.Code)
}

func TestDeleteReview_Handler_Success(t *testing.T) {
	svc := &mockReviewService{
		deleteFn: func(ctx context.Context, userID, reviewID uint) error {
			assert.Equal(t, uint(7), userID)
			assert.Equal(t, uint(10), reviewID)
			return nil
		},
	}

	e := echo.New()
	c, rec := newTestContext(e, http.MethodDelete, "/api/v1/reviews/10", "", 7, middleware.RoleStudent)
	c.SetParamNames("id")
	c.SetParamValues("10")

	h := NewReviewHandler(svc)
	err := h.DeleteReview(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSetInstructorComment_Handler(t *testing.T) {
	svc := &mockReviewService{
		setCommentFn: func(ctx context.Context, reviewID uint, comment string) error {
			assert.Equal(t, uint(10), reviewID)
			assert.Equal(t, "thanks for coming", comment)
			return nil
		},
	}

	e := echo.New()
	e.Validator = middleware.NewRequestValidator()
	c, rec := newTestContext(e, http.MethodPost, "/api/v1/reviews/10/instructor-comment", `{"comment":"thanks for coming"}`, 11, middleware.RoleInstructor)
	c.SetParamNames("id")
	c.SetParamValues("10")

	h := NewReviewHandler(svc)
	err := h.SetInstructorComment(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestClearInstructorComment_Handler_NotFound(t *testing.T) {
	svc := &mockReviewService{
		clearCommentFn: func(ctx context.Context, reviewID uint) error {
			return service.ErrReviewNotFound
		},
	}

	e := echo.New()
	c, _ := newTestContext(e, http.MethodDelete, "/api/v1/reviews/10/instructor-comment", "", 11, middleware.RoleInstructor)
	c.SetParamNames("id")
	c.SetParamValues("10")

	h := NewReviewHandler(svc)
	err := h.ClearInstructorComment(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Code)
}
