package controllers

import (
	"errors"
	"incubator/middleware"
	calendarModels "incubator/models/calendar"
	"incubator/services"
	"incubator/utils"
	calendarValidator "incubator/validators/calendar"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CalendarController struct {
	DB      *gorm.DB
	Clock   *utils.Clock
	Booking *services.BookingService
}

func NewCalendarController(db *gorm.DB, clock *utils.Clock, booking *services.BookingService) *CalendarController {
	return &CalendarController{DB: db, Clock: clock, Booking: booking}
}

func (cc *CalendarController) Health(c *fiber.Ctx) error {
	var slots, events int64
	db := cc.DB.WithContext(c.UserContext())
	if err := db.Model(&calendarModels.MentorAvailability{}).Count(&slots).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Calendar API is unhealthy!", nil)
	}
	if err := db.Model(&calendarModels.Event{}).Count(&events).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Calendar API is unhealthy!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Calendar API is running", fiber.Map{
		"availability_count": slots,
		"events_count":       events,
	})
}

// confirmedCounts groups confirmed child rows of model by the parent column
func confirmedCounts(db *gorm.DB, model interface{}, column string, status string, ids []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(ids))
	if len(ids) == 0 {
		return counts, nil
	}
	var rows []struct {
		ParentID string
		Total    int64
	}
	err := db.Model(model).
		Select(column+" as parent_id, count(*) as total").
		Where(column+" IN ? AND status = ?", ids, status).
		Group(column).
		Scan(&rows).Error
	for _, r := range rows {
		counts[r.ParentID] = r.Total
	}
	return counts, err
}

func (cc *CalendarController) ListAvailability(c *fiber.Ctx) error {
	reqData := c.Locals("validatedAvailabilityList").(*calendarValidator.AvailabilityQuery)

	db := cc.DB.WithContext(c.UserContext())
	query := db.Where("is_available = ?", true)
	if reqData.MentorID != "" {
		query = query.Where("mentor_id = ?", reqData.MentorID)
	}
	if reqData.StartDate != "" {
		start, err := cc.Clock.ParseDate(reqData.StartDate[:10])
		if err != nil {
			return middleware.ValidationErrorResponse(c, map[string]string{"start_date": "start_date is invalid!"})
		}
		query = query.Where("date >= ?", datatypes.Date(start))
	}
	if reqData.EndDate != "" {
		end, err := cc.Clock.ParseDate(reqData.EndDate[:10])
		if err != nil {
			return middleware.ValidationErrorResponse(c, map[string]string{"end_date": "end_date is invalid!"})
		}
		query = query.Where("date <= ?", datatypes.Date(end))
	}
	if reqData.SessionType != "" {
		query = query.Where("session_type = ?", reqData.SessionType)
	}

	var slots []calendarModels.MentorAvailability
	if err := query.Order("date asc, start_time asc").Find(&slots).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch availability!", nil)
	}

	ids := make([]string, len(slots))
	for i, s := range slots {
		ids[i] = s.ID
	}
	counts, err := confirmedCounts(db, &calendarModels.MentorBooking{}, "availability_id", string(calendarModels.BookingConfirmed), ids)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch availability!", nil)
	}
	for i := range slots {
		slots[i].BookedCount = counts[slots[i].ID]
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Availability fetched successfully!", slots)
}

func (cc *CalendarController) GetAvailability(c *fiber.Ctx) error {
	slot, err := cc.Booking.AvailabilityWithCount(c.UserContext(), c.Params("id"))
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Availability fetched successfully!", slot)
}

func (cc *CalendarController) CreateBooking(c *fiber.Ctx) error {
	reqData := c.Locals("validatedBooking").(*calendarValidator.CreateBookingRequest)

	booking, err := cc.Booking.CreateMentorBooking(c.UserContext(), reqData.AvailabilityID, reqData.UserID, reqData.Notes)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Booking created successfully!", booking)
}

func (cc *CalendarController) UserBookings(c *fiber.Ctx) error {
	var bookings []calendarModels.MentorBooking
	err := cc.DB.WithContext(c.UserContext()).
		Preload("Availability").
		Where("user_id = ?", c.Params("user_id")).
		Order("created_at desc, id desc").
		Find(&bookings).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch bookings!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Bookings fetched successfully!", bookings)
}

func (cc *CalendarController) CancelBooking(c *fiber.Ctx) error {
	if err := cc.Booking.CancelMentorBooking(c.UserContext(), c.Params("id")); err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Booking cancelled successfully!", nil)
}

func (cc *CalendarController) withRegisteredCounts(db *gorm.DB, events []calendarModels.Event) error {
	ids := make([]string, len(events))
	for i, e := range events {
		ids[i] = e.ID
	}
	counts, err := confirmedCounts(db, &calendarModels.EventRegistration{}, "event_id", string(calendarModels.RegistrationConfirmed), ids)
	for i := range events {
		events[i].RegisteredCount = counts[events[i].ID]
	}
	return err
}

func (cc *CalendarController) ListEvents(c *fiber.Ctx) error {
	reqData := c.Locals("validatedEventList").(*calendarValidator.EventListQuery)

	db := cc.DB.WithContext(c.UserContext())
	query := db.Model(&calendarModels.Event{})
	if reqData.StartDate != "" {
		start, err := cc.Clock.ParseTimestamp(reqData.StartDate)
		if err != nil {
			return middleware.ValidationErrorResponse(c, map[string]string{"start_date": "start_date is invalid!"})
		}
		query = query.Where("start_date >= ?", start)
	}
	if reqData.EndDate != "" {
		end, err := cc.Clock.ParseTimestamp(reqData.EndDate)
		if err != nil {
			return middleware.ValidationErrorResponse(c, map[string]string{"end_date": "end_date is invalid!"})
		}
		query = query.Where("end_date <= ?", end)
	}
	if reqData.EventType != "" {
		query = query.Where("event_type = ?", reqData.EventType)
	}

	var events []calendarModels.Event
	if err := query.Order("start_date asc").Find(&events).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch events!", nil)
	}
	if err := cc.withRegisteredCounts(db, events); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch events!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Events fetched successfully!", events)
}

func (cc *CalendarController) GetEvent(c *fiber.Ctx) error {
	db := cc.DB.WithContext(c.UserContext())

	var event calendarModels.Event
	err := db.Where("id = ?", c.Params("id")).Take(&event).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Event not found!", nil)
	}
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch event!", nil)
	}

	events := []calendarModels.Event{event}
	if err := cc.withRegisteredCounts(db, events); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch event!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Event fetched successfully!", events[0])
}

func (cc *CalendarController) RegisterForEvent(c *fiber.Ctx) error {
	reqData := c.Locals("validatedEventRegistration").(*calendarValidator.EventRegistrationRequest)

	registration, outcome, err := cc.Booking.RegisterForEvent(c.UserContext(), c.Params("id"), reqData.UserID)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}

	switch outcome {
	case services.OutcomeWaitlisted:
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Event is full. You have been added to the waitlist", registration)
	case services.OutcomeReconfirmed:
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Registration confirmed again", registration)
	default:
		return middleware.JsonResponse(c, fiber.StatusCreated, true, "Registered successfully!", registration)
	}
}

func (cc *CalendarController) CancelEventRegistration(c *fiber.Ctx) error {
	reqData := c.Locals("validatedEventRegistration").(*calendarValidator.EventRegistrationRequest)

	registration, err := cc.Booking.CancelEventRegistration(c.UserContext(), c.Params("id"), reqData.UserID)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Registration cancelled successfully!", registration)
}

func (cc *CalendarController) UserRegistrations(c *fiber.Ctx) error {
	var registrations []calendarModels.EventRegistration
	err := cc.DB.WithContext(c.UserContext()).
		Preload("Event").
		Where("user_id = ?", c.Params("user_id")).
		Order("created_at desc, id desc").
		Find(&registrations).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch registrations!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Registrations fetched successfully!", registrations)
}
