package controllers

import (
	"incubator/middleware"
	achievementModels "incubator/models/achievement"
	"incubator/services"
	achievementValidator "incubator/validators/achievement"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AchievementController struct {
	DB           *gorm.DB
	Achievements *services.AchievementService
}

func NewAchievementController(db *gorm.DB, achievements *services.AchievementService) *AchievementController {
	return &AchievementController{DB: db, Achievements: achievements}
}

func (ac *AchievementController) Health(c *fiber.Ctx) error {
	var count int64
	if err := ac.DB.Model(&achievementModels.Achievement{}).Count(&count).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Achievements API is unhealthy!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Achievements API is running", fiber.Map{"achievements_count": count})
}

func (ac *AchievementController) ListCatalog(c *fiber.Ctx) error {
	var catalog []achievementModels.Achievement
	if err := ac.DB.WithContext(c.UserContext()).Order("category asc, points asc").Find(&catalog).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch achievements!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Achievements fetched successfully!", catalog)
}

func (ac *AchievementController) UserAchievements(c *fiber.Ctx) error {
	views, err := ac.Achievements.UserAchievements(c.UserContext(), c.Params("user_id"))
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "User achievements fetched successfully!", views)
}

func (ac *AchievementController) Check(c *fiber.Ctx) error {
	reqData := c.Locals("validatedAchievementCheck").(*achievementValidator.CheckRequest)

	unlocked := ac.Achievements.CheckAndUnlock(c.UserContext(), c.Params("user_id"), reqData.Kind(), reqData.Value)
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Achievements checked", fiber.Map{
		"unlocked_achievements": unlocked,
		"count":                 len(unlocked),
	})
}

func (ac *AchievementController) Stats(c *fiber.Ctx) error {
	stats, err := ac.Achievements.Stats(c.UserContext(), c.Params("user_id"))
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Achievement stats fetched successfully!", stats)
}
