package scheduling

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending     Status = "pending"
	StatusConfirmed   Status = "confirmed"
	StatusInProgress  Status = "in_progress"
	StatusCompleted   Status = "completed"
	StatusCancelled   Status = "cancelled"
	StatusRejected    Status = "rejected"
	StatusNoShow      Status = "no_show"
	StatusRescheduled Status = "rescheduled"
)

// Active reports whether the status holds a claim on the doctor's time:
// the appointment is still expected to happen.
func (s Status) Active() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusInProgress:
		return true
	}
	return false
}

// Terminal reports whether the status has no outgoing transitions.
func (s Status) Terminal() bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusRejected:
		return true
	}
	return false
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted,
		StatusCancelled, StatusRejected, StatusNoShow, StatusRescheduled:
		return true
	}
	return false
}

type Urgency string

const (
	UrgencyNormal    Urgency = "normal"
	UrgencyUrgent    Urgency = "urgent"
	UrgencyEmergency Urgency = "emergency"
)

func (u Urgency) Valid() bool {
	switch u {
	case UrgencyNormal, UrgencyUrgent, UrgencyEmergency:
		return true
	}
	return false
}

type AvailabilityStatus string

const (
	AvailabilityAvailable AvailabilityStatus = "available"
	AvailabilityBusy      AvailabilityStatus = "busy"
	AvailabilityBooked    AvailabilityStatus = "booked"
	AvailabilityOffline   AvailabilityStatus = "offline"
)

func (a AvailabilityStatus) Valid() bool {
	switch a {
	case AvailabilityAvailable, AvailabilityBusy, AvailabilityBooked, AvailabilityOffline:
		return true
	}
	return false
}

// Slot is a bookable time window owned by a doctor. Date is formatted
// "2006-01-02", times "15:04". Slots match by exact equality of all three
// fields; there is no overlap or containment logic.
type Slot struct {
	Date      string
	StartTime string
	EndTime   string
}

// LedgerEntry is one row of a doctor's slot ledger.
type LedgerEntry struct {
	Slot
	IsBooked  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Patient is owned by the identity collaborator; this core only reads it
// for existence checks and contact info.
type Patient struct {
	ID        uuid.UUID
	Name      string
	Email     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Doctor struct {
	ID                 uuid.UUID
	Name               string
	Specialty          *string
	Email              *string
	AvailabilityStatus AvailabilityStatus
	StatusNotes        *string
	CurrentPatientID   *uuid.UUID
	LastStatusUpdate   time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type Appointment struct {
	ID         uuid.UUID
	PatientID  uuid.UUID
	DoctorID   uuid.UUID
	Slot       Slot
	Reason     string
	Urgency    Urgency
	Status     Status
	AdminNotes *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type EventLog struct {
	ID            int64
	EventType     string
	AppointmentID *uuid.UUID
	Payload       []byte
	CreatedAt     time.Time
}
