package calendar

import (
	"incubator/models"
	"time"

	"gorm.io/datatypes"
)

// SessionType distinguishes one-on-one slots from group sessions
type SessionType string

const (
	SessionIndividual SessionType = "individual"
	SessionGroup      SessionType = "group"
)

// BookingStatus defines the lifecycle of a mentor booking
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

// MentorAvailability is a bookable time slot
type MentorAvailability struct {
	models.UUIDModel
	MentorID        string         `json:"mentor_id" gorm:"type:varchar(36);index;not null"`
	Date            datatypes.Date `json:"date" gorm:"index;not null"`
	StartTime       datatypes.Time `json:"start_time" gorm:"not null"`
	EndTime         datatypes.Time `json:"end_time" gorm:"not null"`
	SessionType     SessionType    `json:"session_type" gorm:"type:varchar(20);default:'individual'"`
	MaxParticipants int            `json:"max_participants" gorm:"default:1"`
	IsAvailable     bool           `json:"is_available" gorm:"index;not null"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	BookedCount     int64          `json:"booked_count" gorm:"-"`
}

func (MentorAvailability) TableName() string { return "mentor_availability" }

// MentorBooking holds a user's seat in a slot
type MentorBooking struct {
	models.UUIDModel
	AvailabilityID string              `json:"availability_id" gorm:"type:varchar(36);index;not null"`
	Availability   *MentorAvailability `json:"availability,omitempty" gorm:"foreignKey:AvailabilityID;constraint:OnDelete:CASCADE"`
	UserID         string              `json:"user_id" gorm:"type:varchar(36);index;not null"`
	Status         BookingStatus       `json:"status" gorm:"type:varchar(20);default:'pending'"`
	Notes          string              `json:"notes" gorm:"type:text"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

func (MentorBooking) TableName() string { return "mentor_bookings" }
