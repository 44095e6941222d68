package learningValidator

import (
	"incubator/middleware"
	"incubator/validators"

	"github.com/gofiber/fiber/v2"
)

type CourseListQuery struct {
	RouteType string `query:"route_type" validate:"required,oneof=pre inc"`
}

type SectionProgressRequest struct {
	UserID    string `json:"user_id" validate:"required,max=36"`
	SectionID string `json:"section_id" validate:"required,max=36"`
	Completed bool   `json:"completed"`
}

// ListCourses validates the route filter of the course catalog
func ListCourses() fiber.Handler {
	return validators.Query("validatedCourseList", func(c *fiber.Ctx, req *CourseListQuery) {
		validators.Trim(&req.RouteType)
	})
}

// UpdateSectionProgress validates a completion toggle
func UpdateSectionProgress() fiber.Handler {
	return validators.Body("validatedSectionProgress", func(c *fiber.Ctx, req *SectionProgressRequest) {
		validators.Trim(&req.SectionID)
		req.UserID = middleware.ResolveUserID(c, req.UserID)
	})
}
