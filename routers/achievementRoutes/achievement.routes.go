package achievementRoutes

import (
	controllers "incubator/controllers/achievement"
	validators "incubator/validators/achievement"

	"github.com/gofiber/fiber/v2"
)

func SetupAchievementRoutes(app *fiber.App, ctrl *controllers.AchievementController) {
	group := app.Group("/api/achievements")

	group.Get("/health", ctrl.Health)
	group.Get("/", ctrl.ListCatalog)
	group.Get("/user/:user_id", ctrl.UserAchievements)
	group.Post("/check/:user_id", validators.CheckAchievements(), ctrl.Check)
	group.Get("/stats/:user_id", ctrl.Stats)
}
