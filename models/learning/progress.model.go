package learning

import (
	"incubator/models"
	"time"
)

// SectionProgress records whether a user finished one section
type SectionProgress struct {
	models.UUIDModel
	UserID      string     `json:"user_id" gorm:"type:varchar(36);not null;uniqueIndex:idx_user_section"`
	SectionID   string     `json:"section_id" gorm:"type:varchar(36);not null;uniqueIndex:idx_user_section"`
	Section     *Section   `json:"-" gorm:"foreignKey:SectionID;constraint:OnDelete:CASCADE"`
	Completed   bool       `json:"completed" gorm:"default:false"`
	CompletedAt *time.Time `json:"completed_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (SectionProgress) TableName() string { return "user_section_progress" }

// CourseProgress is the per-user aggregate over a course's sections
type CourseProgress struct {
	models.UUIDModel
	UserID             string     `json:"user_id" gorm:"type:varchar(36);not null;uniqueIndex:idx_user_course"`
	CourseID           string     `json:"course_id" gorm:"type:varchar(36);not null;uniqueIndex:idx_user_course"`
	Course             *Course    `json:"-" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
	CompletedSections  int        `json:"completed_sections" gorm:"default:0"`
	TotalSections      int        `json:"total_sections" gorm:"default:0"`
	ProgressPercentage int        `json:"progress_percentage" gorm:"default:0"` // 0-100, floored
	StartedAt          time.Time  `json:"started_at"`
	CompletedAt        *time.Time `json:"completed_at"` // set once, never cleared
}

func (CourseProgress) TableName() string { return "user_course_progress" }
