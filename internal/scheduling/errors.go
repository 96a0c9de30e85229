package scheduling

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput           = errors.New("invalid input")
	ErrPastDate               = errors.New("appointment date is in the past")
	ErrPatientNotFound        = errors.New("patient not found")
	ErrDoctorNotFound         = errors.New("doctor not found")
	ErrAppointmentNotFound    = errors.New("appointment not found")
	ErrSlotNotFound           = errors.New("slot not found")
	ErrSlotExists             = errors.New("slot already exists")
	ErrSlotUnavailable        = errors.New("slot is not available")
	ErrDoubleBooking          = errors.New("patient already has an appointment at this time")
	ErrInvalidTransition      = errors.New("invalid status transition")
	ErrDoctorUnavailable      = errors.New("doctor is not accepting bookings")
	ErrConcurrentModification = errors.New("concurrent modification")
)

// InvalidTransitionError carries the attempted lifecycle edge. It matches
// ErrInvalidTransition under errors.Is.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition %s -> %s", e.From, e.To)
}

func (e *InvalidTransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}

// DoctorUnavailableError carries the doctor's current availability so that
// callers can surface it. It matches ErrDoctorUnavailable under errors.Is.
type DoctorUnavailableError struct {
	Status AvailabilityStatus
}

func (e *DoctorUnavailableError) Error() string {
	return fmt.Sprintf("doctor is not accepting bookings (current status: %s)", e.Status)
}

func (e *DoctorUnavailableError) Is(target error) bool {
	return target == ErrDoctorUnavailable
}
