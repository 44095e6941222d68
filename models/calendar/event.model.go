package calendar

import (
	"incubator/models"
	"time"
)

// RegistrationStatus defines the lifecycle of an event registration
type RegistrationStatus string

const (
	RegistrationConfirmed RegistrationStatus = "confirmed"
	RegistrationCancelled RegistrationStatus = "cancelled"
	RegistrationWaitlist  RegistrationStatus = "waitlist"
)

type Event struct {
	models.UUIDModel
	Title           string    `json:"title" gorm:"type:varchar(255);not null"`
	Description     string    `json:"description" gorm:"type:text"`
	EventType       string    `json:"event_type" gorm:"type:varchar(50);index"` // workshop, networking, webinar...
	StartDate       time.Time `json:"start_date" gorm:"index;not null"`
	EndDate         time.Time `json:"end_date" gorm:"not null"`
	Location        string    `json:"location" gorm:"type:varchar(255)"`
	IsVirtual       bool      `json:"is_virtual" gorm:"default:false"`
	MaxParticipants *int      `json:"max_participants"` // nil or 0 means unlimited
	OrganizerID     string    `json:"organizer_id" gorm:"type:varchar(36)"`
	ImageURL        string    `json:"image_url" gorm:"type:varchar(500)"`
	RegistrationURL string    `json:"registration_url" gorm:"type:varchar(500)"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	RegisteredCount int64     `json:"registered_count" gorm:"-"`
}

func (Event) TableName() string { return "events" }

// HasCapacityLimit reports whether the event caps confirmed registrations
func (e *Event) HasCapacityLimit() bool {
	return e.MaxParticipants != nil && *e.MaxParticipants > 0
}

// EventRegistration is unique per (event, user)
type EventRegistration struct {
	models.UUIDModel
	EventID   string             `json:"event_id" gorm:"type:varchar(36);not null;uniqueIndex:idx_event_user"`
	Event     *Event             `json:"event,omitempty" gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
	UserID    string             `json:"user_id" gorm:"type:varchar(36);not null;uniqueIndex:idx_event_user"`
	Status    RegistrationStatus `json:"status" gorm:"type:varchar(20);default:'confirmed'"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

func (EventRegistration) TableName() string { return "event_registrations" }
