package learning

import (
	"incubator/models"
	"time"
)

// RouteType groups courses into the two incubation tracks
type RouteType string

const (
	RoutePreIncubation RouteType = "pre"
	RouteIncubation    RouteType = "inc"
)

func (r RouteType) Valid() bool {
	return r == RoutePreIncubation || r == RouteIncubation
}

// Course is one month of a learning route
type Course struct {
	models.UUIDModel
	RouteType     RouteType `json:"route_type" gorm:"type:varchar(10);index;not null"`
	MonthNumber   int       `json:"month_number" gorm:"not null"`
	Title         string    `json:"title" gorm:"type:varchar(255);not null"`
	Description   string    `json:"description" gorm:"type:text"`
	DurationWeeks int       `json:"duration_weeks" gorm:"default:4"`
	OrderNumber   int       `json:"order_number" gorm:"not null"`
	CreatedAt     time.Time `json:"created_at"`
	TotalSections int64     `json:"total_sections" gorm:"-"`
}

func (Course) TableName() string { return "learning_courses" }

// Section is a unit of course content
type Section struct {
	models.UUIDModel
	CourseID        string    `json:"course_id" gorm:"type:varchar(36);index;not null"`
	Course          *Course   `json:"-" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
	Title           string    `json:"title" gorm:"type:varchar(255);not null"`
	Description     string    `json:"description" gorm:"type:text"`
	DurationMinutes int       `json:"duration_minutes"`
	VideoURL        string    `json:"video_url" gorm:"type:varchar(500)"`
	Content         string    `json:"content" gorm:"type:text"`
	OrderNumber     int       `json:"order_number" gorm:"not null"`
	CreatedAt       time.Time `json:"created_at"`
}

func (Section) TableName() string { return "learning_sections" }
