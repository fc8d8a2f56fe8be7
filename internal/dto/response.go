package dto

import (
	"time"

	"github.com/onedayclass/booking-service/internal/models"
	"github.com/onedayclass/booking-service/internal/service"
)

// Envelope is the uniform response wrapper: every reply carries
// status "success" or "error".
type Envelope struct {
	Status  string `json:"status"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func Success(data any) Envelope {
	return Envelope{Status: "success", Data: data}
}

type BookingResponse struct {
	ID        uint                 `json:"id"`
	StudentID uint                 `json:"studentId"`
	ClassID   uint                 `json:"classId"`
	SessionID uint                 `json:"sessionId"`
	Status    models.BookingStatus `json:"status"`
	CreatedAt time.Time            `json:"createdAt"`
}

// BookingResult pairs the touched booking with the refreshed availability of
// its class, so the client can re-render seat counts without a second call.
type BookingResult struct {
	Booking      BookingResponse               `json:"booking"`
	Availability []service.SessionAvailability `json:"availability"`
}

type ReviewResponse struct {
	ID        uint      `json:"id"`
	BookingID uint      `json:"bookingId"`
	ClassID   uint      `json:"classId"`
	SessionID uint      `json:"sessionId"`
	UserID    uint      `json:"userId"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

func ToBookingResponse(b *models.Booking) BookingResponse {
	return BookingResponse{
		ID:        b.ID,
		StudentID: b.StudentID,
		ClassID:   b.ClassID,
		SessionID: b.SessionID,
		Status:    b.Status,
		CreatedAt: b.CreatedAt,
	}
}

func ToReviewResponse(r *models.Review) ReviewResponse {
	return ReviewResponse{
		ID:        r.ID,
		BookingID: r.BookingID,
		ClassID:   r.ClassID,
		SessionID: r.SessionID,
		UserID:    r.UserID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}
