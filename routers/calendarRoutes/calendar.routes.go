package calendarRoutes

import (
	controllers "incubator/controllers/calendar"
	validators "incubator/validators/calendar"

	"github.com/gofiber/fiber/v2"
)

func SetupCalendarRoutes(app *fiber.App, ctrl *controllers.CalendarController) {
	group := app.Group("/api/calendar")

	group.Get("/health", ctrl.Health)

	// Mentor availability and bookings
	group.Get("/availability", validators.ListAvailability(), ctrl.ListAvailability)
	group.Get("/availability/:id", ctrl.GetAvailability)
	group.Post("/bookings", validators.CreateBooking(), ctrl.CreateBooking)
	group.Get("/bookings/user/:user_id", ctrl.UserBookings)
	group.Delete("/bookings/:id", ctrl.CancelBooking)

	// Events
	group.Get("/events", validators.ListEvents(), ctrl.ListEvents)
	group.Get("/events/user/:user_id/registrations", ctrl.UserRegistrations)
	group.Get("/events/:id", ctrl.GetEvent)
	group.Post("/events/:id/register", validators.EventRegistration(), ctrl.RegisterForEvent)
	group.Delete("/events/:id/register", validators.EventRegistration(), ctrl.CancelEventRegistration)
}
