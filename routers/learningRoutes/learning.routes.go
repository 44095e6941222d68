package learningRoutes

import (
	controllers "incubator/controllers/learning"
	validators "incubator/validators/learning"

	"github.com/gofiber/fiber/v2"
)

// SetupLearningRoutes mounts the course catalog and progress endpoints
func SetupLearningRoutes(app *fiber.App, ctrl *controllers.LearningController) {
	group := app.Group("/api/learning")

	group.Get("/health", ctrl.Health)

	group.Get("/courses", validators.ListCourses(), ctrl.ListCourses)
	group.Get("/courses/:id", ctrl.GetCourse)
	group.Get("/courses/:id/sections", ctrl.GetCourseSections)

	group.Post("/progress/section", validators.UpdateSectionProgress(), ctrl.UpdateSectionProgress)
	group.Get("/progress/:user_id", ctrl.GetUserProgress)
	group.Get("/progress/:user_id/course/:course_id", ctrl.GetCourseProgress)
}
