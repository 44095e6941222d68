package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Kinds every service error matches with errors.Is
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation error")
	ErrStorage    = errors.New("storage error")
)

// Reasons attached to validation errors raised by the booking manager
const (
	ReasonSlotUnavailable   = "slot_unavailable"
	ReasonAlreadyBooked     = "already_booked"
	ReasonSlotFull          = "slot_full"
	ReasonAlreadyRegistered = "already_registered"
)

// ServiceError carries the failing operation and a message safe to show callers
type ServiceError struct {
	Op      string // e.g. "booking.CreateMentorBooking"
	Kind    error
	Reason  string // machine readable, validation errors only
	Message string
	Err     error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *ServiceError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return e.Kind
}

func (e *ServiceError) Is(target error) bool {
	if e.Kind != nil && errors.Is(e.Kind, target) {
		return true
	}
	return e.Err != nil && errors.Is(e.Err, target)
}

func notFound(op, message string) *ServiceError {
	return &ServiceError{Op: op, Kind: ErrNotFound, Message: message}
}

func invalid(op, reason, message string) *ServiceError {
	return &ServiceError{Op: op, Kind: ErrValidation, Reason: reason, Message: message}
}

// storage wraps err unless it is already a ServiceError
func storage(op string, err error) error {
	var se *ServiceError
	if errors.As(err, &se) {
		return err
	}
	return &ServiceError{Op: op, Kind: ErrStorage, Message: "storage failure", Err: err}
}

// found translates gorm's record-not-found into a NotFound service error
func found(op, message string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound(op, message)
	}
	return storage(op, err)
}

// ReasonOf returns the validation reason carried by err, if any
func ReasonOf(err error) string {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Reason
	}
	return ""
}

// MessageOf returns the caller-facing message carried by err
func MessageOf(err error) string {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Message
	}
	return err.Error()
}
