package achievementValidator

import (
	achievementModels "incubator/models/achievement"
	"incubator/validators"

	"github.com/gofiber/fiber/v2"
)

type CheckRequest struct {
	Type  string  `json:"type" validate:"required,requirement"`
	Value *string `json:"value"`
}

// Kind returns the validated requirement type
func (r *CheckRequest) Kind() achievementModels.RequirementType {
	return achievementModels.RequirementType(r.Type)
}

func CheckAchievements() fiber.Handler {
	return validators.Body[CheckRequest]("validatedAchievementCheck", nil)
}
