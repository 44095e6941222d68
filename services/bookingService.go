package services

import (
	"context"
	"errors"
	"incubator/database"
	calendarModels "incubator/models/calendar"
	"incubator/utils"
	"log"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RegistrationOutcome tells the caller which path RegisterForEvent took
type RegistrationOutcome string

const (
	OutcomeRegistered  RegistrationOutcome = "registered"
	OutcomeReconfirmed RegistrationOutcome = "reconfirmed"
	OutcomeWaitlisted  RegistrationOutcome = "waitlisted"
)

// BookingService enforces slot and event capacity
type BookingService struct {
	db    *gorm.DB
	clock *utils.Clock
}

func NewBookingService(db *gorm.DB, clock *utils.Clock) *BookingService {
	return &BookingService{db: db, clock: clock}
}

// locked adds a row lock on stores that support one
func locked(tx *gorm.DB) *gorm.DB {
	if database.SupportsRowLocks(tx) {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// CreateMentorBooking confirms a seat in a slot. Capacity is max_participants
// for every session type, so an individual slot takes one confirmed booking.
func (s *BookingService) CreateMentorBooking(ctx context.Context, availabilityID, userID, notes string) (*calendarModels.MentorBooking, error) {
	const op = "booking.CreateMentorBooking"

	var booking calendarModels.MentorBooking
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var slot calendarModels.MentorAvailability
		if err := locked(tx).Where("id = ?", availabilityID).Take(&slot).Error; err != nil {
			return found(op, "Availability not found", err)
		}
		if !slot.IsAvailable {
			return invalid(op, ReasonSlotUnavailable, "This slot is not available")
		}

		own, err := exists(tx, &calendarModels.MentorBooking{},
			"availability_id = ? AND user_id = ? AND status = ?", availabilityID, userID, calendarModels.BookingConfirmed)
		if err != nil {
			return storage(op, err)
		}
		if own {
			return invalid(op, ReasonAlreadyBooked, "You already have a booking for this slot")
		}

		var confirmed int64
		if err := tx.Model(&calendarModels.MentorBooking{}).
			Where("availability_id = ? AND status = ?", availabilityID, calendarModels.BookingConfirmed).
			Count(&confirmed).Error; err != nil {
			return storage(op, err)
		}
		if confirmed >= int64(capacityOf(&slot)) {
			return invalid(op, ReasonSlotFull, "This slot is full")
		}

		booking = calendarModels.MentorBooking{
			AvailabilityID: availabilityID,
			UserID:         userID,
			Status:         calendarModels.BookingConfirmed,
			Notes:          notes,
		}
		if err := tx.Create(&booking).Error; err != nil {
			return storage(op, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Printf("[BOOKING] User %s booked slot %s", userID, availabilityID)
	return &booking, nil
}

func capacityOf(slot *calendarModels.MentorAvailability) int {
	if slot.MaxParticipants < 1 {
		return 1
	}
	return slot.MaxParticipants
}

// CancelMentorBooking marks the booking cancelled. Cancelling twice is fine.
func (s *BookingService) CancelMentorBooking(ctx context.Context, bookingID string) error {
	const op = "booking.CancelMentorBooking"

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var booking calendarModels.MentorBooking
		if err := tx.Where("id = ?", bookingID).Take(&booking).Error; err != nil {
			return found(op, "Booking not found", err)
		}
		if booking.Status == calendarModels.BookingCancelled {
			return nil
		}
		if err := tx.Model(&booking).Update("status", calendarModels.BookingCancelled).Error; err != nil {
			return storage(op, err)
		}
		return nil
	})
}

// RegisterForEvent confirms the user or, when the event is full, puts them on the waitlist
func (s *BookingService) RegisterForEvent(ctx context.Context, eventID, userID string) (*calendarModels.EventRegistration, RegistrationOutcome, error) {
	const op = "booking.RegisterForEvent"

	var (
		registration calendarModels.EventRegistration
		outcome      RegistrationOutcome
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var event calendarModels.Event
		if err := locked(tx).Where("id = ?", eventID).Take(&event).Error; err != nil {
			return found(op, "Event not found", err)
		}

		err := tx.Where("event_id = ? AND user_id = ?", eventID, userID).Take(&registration).Error
		switch {
		case err == nil:
			if registration.Status == calendarModels.RegistrationConfirmed {
				return invalid(op, ReasonAlreadyRegistered, "You are already registered for this event")
			}
			if err := tx.Model(&registration).Update("status", calendarModels.RegistrationConfirmed).Error; err != nil {
				return storage(op, err)
			}
			registration.Status = calendarModels.RegistrationConfirmed
			outcome = OutcomeReconfirmed
			return nil
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return storage(op, err)
		}

		status := calendarModels.RegistrationConfirmed
		outcome = OutcomeRegistered
		if event.HasCapacityLimit() {
			confirmed, err := confirmedRegistrations(tx, eventID)
			if err != nil {
				return storage(op, err)
			}
			if confirmed >= int64(*event.MaxParticipants) {
				status = calendarModels.RegistrationWaitlist
				outcome = OutcomeWaitlisted
			}
		}

		registration = calendarModels.EventRegistration{
			EventID: eventID,
			UserID:  userID,
			Status:  status,
		}
		if err := tx.Create(&registration).Error; err != nil {
			return storage(op, err)
		}
		return nil
	})
	if err != nil {
		return nil, "", err
	}
	log.Printf("[BOOKING] User %s %s for event %s", userID, outcome, eventID)
	return &registration, outcome, nil
}

func confirmedRegistrations(tx *gorm.DB, eventID string) (int64, error) {
	var count int64
	err := tx.Model(&calendarModels.EventRegistration{}).
		Where("event_id = ? AND status = ?", eventID, calendarModels.RegistrationConfirmed).
		Count(&count).Error
	return count, err
}

// CancelEventRegistration cancels the user's registration. When that frees a
// seat on a capped event, the oldest waitlisted registration is confirmed.
func (s *BookingService) CancelEventRegistration(ctx context.Context, eventID, userID string) (*calendarModels.EventRegistration, error) {
	const op = "booking.CancelEventRegistration"

	var registration calendarModels.EventRegistration
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var event calendarModels.Event
		if err := locked(tx).Where("id = ?", eventID).Take(&event).Error; err != nil {
			return found(op, "Event not found", err)
		}
		if err := tx.Where("event_id = ? AND user_id = ?", eventID, userID).Take(&registration).Error; err != nil {
			return found(op, "Registration not found", err)
		}
		if registration.Status == calendarModels.RegistrationCancelled {
			return nil
		}

		wasConfirmed := registration.Status == calendarModels.RegistrationConfirmed
		if err := tx.Model(&registration).Update("status", calendarModels.RegistrationCancelled).Error; err != nil {
			return storage(op, err)
		}
		registration.Status = calendarModels.RegistrationCancelled

		if !wasConfirmed || !event.HasCapacityLimit() {
			return nil
		}
		confirmed, err := confirmedRegistrations(tx, eventID)
		if err != nil {
			return storage(op, err)
		}
		if confirmed >= int64(*event.MaxParticipants) {
			return nil
		}

		var next calendarModels.EventRegistration
		err = tx.Where("event_id = ? AND status = ?", eventID, calendarModels.RegistrationWaitlist).
			Order("created_at asc, id asc").Take(&next).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return storage(op, err)
		}
		if err := tx.Model(&next).Update("status", calendarModels.RegistrationConfirmed).Error; err != nil {
			return storage(op, err)
		}
		log.Printf("[BOOKING] Promoted user %s from waitlist for event %s", next.UserID, eventID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &registration, nil
}

// CloseExpiredSlots marks every slot dated before today as unavailable
func (s *BookingService) CloseExpiredSlots(ctx context.Context) (int64, error) {
	const op = "booking.CloseExpiredSlots"

	result := s.db.WithContext(ctx).Model(&calendarModels.MentorAvailability{}).
		Where("date < ? AND is_available = ?", datatypes.Date(s.clock.Today()), true).
		Update("is_available", false)
	if result.Error != nil {
		return 0, storage(op, result.Error)
	}
	return result.RowsAffected, nil
}

// AvailabilityWithCount loads a slot with its confirmed booking count
func (s *BookingService) AvailabilityWithCount(ctx context.Context, availabilityID string) (*calendarModels.MentorAvailability, error) {
	const op = "booking.AvailabilityWithCount"
	db := s.db.WithContext(ctx)

	var slot calendarModels.MentorAvailability
	if err := db.Where("id = ?", availabilityID).Take(&slot).Error; err != nil {
		return nil, found(op, "Availability not found", err)
	}
	if err := db.Model(&calendarModels.MentorBooking{}).
		Where("availability_id = ? AND status = ?", availabilityID, calendarModels.BookingConfirmed).
		Count(&slot.BookedCount).Error; err != nil {
		return nil, storage(op, err)
	}
	return &slot, nil
}
