package calendarValidator

import (
	"incubator/middleware"
	"incubator/validators"

	"github.com/gofiber/fiber/v2"
)

type AvailabilityQuery struct {
	MentorID    string `query:"mentor_id" validate:"max=36"`
	StartDate   string `query:"start_date" validate:"omitempty,datestr"`
	EndDate     string `query:"end_date" validate:"omitempty,datestr"`
	SessionType string `query:"session_type" validate:"omitempty,oneof=individual group"`
}

type CreateBookingRequest struct {
	AvailabilityID string `json:"availability_id" validate:"required,max=36"`
	UserID         string `json:"user_id" validate:"required,max=36"`
	Notes          string `json:"notes"`
}

type EventListQuery struct {
	StartDate string `query:"start_date" validate:"omitempty,datestr"`
	EndDate   string `query:"end_date" validate:"omitempty,datestr"`
	EventType string `query:"event_type" validate:"max=50"`
}

type EventRegistrationRequest struct {
	UserID string `json:"user_id" validate:"required,max=36"`
}

func ListAvailability() fiber.Handler {
	return validators.Query[AvailabilityQuery]("validatedAvailabilityList", nil)
}

func CreateBooking() fiber.Handler {
	return validators.Body("validatedBooking", func(c *fiber.Ctx, req *CreateBookingRequest) {
		validators.Trim(&req.AvailabilityID, &req.Notes)
		req.UserID = middleware.ResolveUserID(c, req.UserID)
	})
}

func ListEvents() fiber.Handler {
	return validators.Query[EventListQuery]("validatedEventList", nil)
}

// EventRegistration resolves the registering user from the body or the token
func EventRegistration() fiber.Handler {
	return validators.Body("validatedEventRegistration", func(c *fiber.Ctx, req *EventRegistrationRequest) {
		req.UserID = middleware.ResolveUserID(c, req.UserID)
	})
}
