package scheduling

import (
	"context"

	"github.com/google/uuid"
)

// Repository contains all DB interactions needed by the service.
type Repository interface {
	// Identity lookups (patients and doctors are owned by the identity
	// collaborator; the core only reads them).
	GetPatientByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	GetDoctorByID(ctx context.Context, id uuid.UUID) (*Doctor, error)

	// Slot ledger
	FindSlot(ctx context.Context, doctorID uuid.UUID, slot Slot) (*LedgerEntry, error)
	ListSlots(ctx context.Context, doctorID uuid.UUID) ([]LedgerEntry, error)
	AddSlot(ctx context.Context, doctorID uuid.UUID, slot Slot) error
	// RemoveSlot deletes an unbooked ledger entry; ErrSlotNotFound when no
	// unbooked match exists.
	RemoveSlot(ctx context.Context, doctorID uuid.UUID, slot Slot) error
	// SetSlotBooked flips the reservation flag. Clearing a flag on a
	// missing entry is a no-op: ledger entries may be edited independently
	// of the appointment flow. Setting a flag on a missing entry returns
	// ErrSlotNotFound.
	SetSlotBooked(ctx context.Context, doctorID uuid.UUID, slot Slot, booked bool) error

	// Appointments
	GetAppointmentByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	// FindActiveAtTime returns a pending/confirmed/in_progress appointment
	// for the patient at (date, startTime), or ErrAppointmentNotFound.
	FindActiveAtTime(ctx context.Context, patientID uuid.UUID, date, startTime string) (*Appointment, error)
	// FindActiveClaim returns the active appointment holding the claim on
	// (doctorID, slot), or ErrAppointmentNotFound. At most one can exist.
	FindActiveClaim(ctx context.Context, doctorID uuid.UUID, slot Slot) (*Appointment, error)
	CountConfirmed(ctx context.Context, doctorID uuid.UUID) (int, error)
	// FindInProgress returns the doctor's in_progress appointment, or
	// ErrAppointmentNotFound when there is none.
	FindInProgress(ctx context.Context, doctorID uuid.UUID) (*Appointment, error)
	CreateAppointment(ctx context.Context, appt *Appointment) (*Appointment, error)
	// UpdateAppointmentStatus is compare-and-swap on status: no row is
	// updated unless the current status equals from, in which case it
	// returns ErrAppointmentNotFound.
	UpdateAppointmentStatus(ctx context.Context, id uuid.UUID, from, to Status, notes *string) (*Appointment, error)
	// UpdateAppointmentSlot moves the appointment to a new slot and to
	// status rescheduled, compare-and-swap on from.
	UpdateAppointmentSlot(ctx context.Context, id uuid.UUID, from Status, slot Slot) (*Appointment, error)
	ListAppointmentsByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]Appointment, error)
	ListAppointmentsByDoctor(ctx context.Context, doctorID uuid.UUID, limit, offset int) ([]Appointment, error)

	// Doctor availability
	UpdateDoctorAvailability(ctx context.Context, doctorID uuid.UUID, status AvailabilityStatus, currentPatientID *uuid.UUID, notes *string) (*Doctor, error)

	// Event logging
	InsertEvent(ctx context.Context, ev EventLog) error

	// WithTx runs fn against a repository bound to a single transaction;
	// fn returning an error rolls everything back.
	WithTx(ctx context.Context, fn func(Repository) error) error
}
