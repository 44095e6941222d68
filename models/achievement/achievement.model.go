package achievement

import (
	"incubator/models"
	"time"
)

// RequirementType is the closed set of conditions an achievement can depend on
type RequirementType string

const (
	RequirementCourseCompleted      RequirementType = "course_completed"
	RequirementFirstCourseCompleted RequirementType = "first_course_completed"
	RequirementCoursesCompleted     RequirementType = "courses_completed"
	RequirementAllCoursesCompleted  RequirementType = "all_courses_completed"
	RequirementFirstSale            RequirementType = "first_sale"
	RequirementSalesMonth           RequirementType = "sales_month"
	RequirementFirstPost            RequirementType = "first_post"
	RequirementPostLikes            RequirementType = "post_likes"
	RequirementCommentsCount        RequirementType = "comments_count"
)

// RequirementTypes lists every declared kind
var RequirementTypes = []RequirementType{
	RequirementCourseCompleted,
	RequirementFirstCourseCompleted,
	RequirementCoursesCompleted,
	RequirementAllCoursesCompleted,
	RequirementFirstSale,
	RequirementSalesMonth,
	RequirementFirstPost,
	RequirementPostLikes,
	RequirementCommentsCount,
}

func (r RequirementType) Valid() bool {
	for _, t := range RequirementTypes {
		if t == r {
			return true
		}
	}
	return false
}

// Achievement is a catalog entry
type Achievement struct {
	models.UUIDModel
	Name             string          `json:"name" gorm:"type:varchar(255);not null"`
	Description      string          `json:"description" gorm:"type:text"`
	Icon             string          `json:"icon" gorm:"type:varchar(255)"`
	Points           int             `json:"points" gorm:"default:0"`
	Category         string          `json:"category" gorm:"type:varchar(50)"`
	RequirementType  RequirementType `json:"requirement_type" gorm:"type:varchar(50);index;not null"`
	RequirementValue *string         `json:"requirement_value" gorm:"type:varchar(255)"`
	CreatedAt        time.Time       `json:"created_at"`
}

func (Achievement) TableName() string { return "achievements" }

// UserAchievement is unlocked once Progress reaches 100
type UserAchievement struct {
	models.UUIDModel
	UserID        string       `json:"user_id" gorm:"type:varchar(36);not null;uniqueIndex:idx_user_achievement"`
	AchievementID string       `json:"achievement_id" gorm:"type:varchar(36);not null;uniqueIndex:idx_user_achievement"`
	Achievement   *Achievement `json:"-" gorm:"foreignKey:AchievementID;constraint:OnDelete:CASCADE"`
	Progress      int          `json:"progress" gorm:"default:0"`
	UnlockedAt    *time.Time   `json:"unlocked_at"`
}

func (UserAchievement) TableName() string { return "user_achievements" }
