package dto

type CreateBookingRequest struct {
	ClassID   uint `json:"classId" validate:"required"`
	SessionID uint `json:"sessionId" validate:"required"`
}

type CancelBookingRequest struct {
	ClassID   uint `json:"classId" validate:"required"`
	SessionID uint `json:"sessionId" validate:"required"`
}

type FinalizePaymentRequest struct {
	PaymentID uint   `json:"paymentId" validate:"required"`
	PGToken   string `json:"pgToken" validate:"required"`
}

type CreateReviewRequest struct {
	BookingID uint   `json:"bookingId" validate:"required"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Comment   string `json:"comment"`
}

type InstructorCommentRequest struct {
	Comment string `json:"comment" validate:"required"`
}
