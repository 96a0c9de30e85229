package scheduling

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/smarthealth/scheduling/internal/config"
	"github.com/smarthealth/scheduling/internal/notify"
	"github.com/smarthealth/scheduling/internal/observability/metrics"
	redisclient "github.com/smarthealth/scheduling/internal/redis"
)

const (
	EventAppointmentRequested      = "APPOINTMENT_REQUESTED"
	EventAppointmentStatusChanged  = "APPOINTMENT_STATUS_CHANGED"
	EventAppointmentRescheduled    = "APPOINTMENT_RESCHEDULED"
	EventDoctorAvailabilityChanged = "DOCTOR_AVAILABILITY_CHANGED"
	EventSlotAdded                 = "SLOT_ADDED"
	EventSlotRemoved               = "SLOT_REMOVED"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

type Service struct {
	repo     Repository
	locker   redisclient.Locker
	notifier notify.Notifier
	metrics  *metrics.SchedulingMetrics
	cfg      config.Config
}

func NewService(repo Repository, locker redisclient.Locker, notifier notify.Notifier, m *metrics.SchedulingMetrics, cfg config.Config) *Service {
	if notifier == nil {
		notifier = notify.LogNotifier{}
	}
	return &Service{
		repo:     repo,
		locker:   locker,
		notifier: notifier,
		metrics:  m,
		cfg:      cfg,
	}
}

type CreateAppointmentInput struct {
	PatientID uuid.UUID
	DoctorID  uuid.UUID
	Slot      Slot
	Reason    string
	Urgency   Urgency
}

func (in *CreateAppointmentInput) validate() error {
	if in.PatientID == uuid.Nil || in.DoctorID == uuid.Nil {
		return fmt.Errorf("%w: patient and doctor are required", ErrInvalidInput)
	}
	if err := validateSlot(in.Slot); err != nil {
		return err
	}
	if in.Urgency == "" {
		in.Urgency = UrgencyNormal
	}
	if !in.Urgency.Valid() {
		return fmt.Errorf("%w: unknown urgency %q", ErrInvalidInput, in.Urgency)
	}
	return nil
}

func validateSlot(slot Slot) error {
	if slot.Date == "" || slot.StartTime == "" || slot.EndTime == "" {
		return fmt.Errorf("%w: date, start time, and end time are required", ErrInvalidInput)
	}
	if _, err := time.Parse(dateLayout, slot.Date); err != nil {
		return fmt.Errorf("%w: date must be formatted %s", ErrInvalidInput, dateLayout)
	}
	if _, err := time.Parse(timeLayout, slot.StartTime); err != nil {
		return fmt.Errorf("%w: start time must be formatted %s", ErrInvalidInput, timeLayout)
	}
	if _, err := time.Parse(timeLayout, slot.EndTime); err != nil {
		return fmt.Errorf("%w: end time must be formatted %s", ErrInvalidInput, timeLayout)
	}
	// Fixed-width formats, so lexical order is chronological order. No
	// cross-midnight slots.
	if slot.EndTime <= slot.StartTime {
		return fmt.Errorf("%w: end time must be after start time", ErrInvalidInput)
	}
	return nil
}

func pastDate(date string) bool {
	return date < time.Now().Format(dateLayout)
}

// CreateAppointment is the booking coordinator. Availability, conflict,
// and ledger checks plus the insert are evaluated against a single
// consistent snapshot by running under the doctor's lock; two concurrent
// requests for a doctor's last open slot cannot both succeed.
func (s *Service) CreateAppointment(ctx context.Context, in CreateAppointmentInput) (*Appointment, error) {
	start := time.Now()

	if err := in.validate(); err != nil {
		s.metrics.ObserveBooking("invalid_input", time.Since(start).Seconds())
		return nil, err
	}
	if pastDate(in.Slot.Date) {
		s.metrics.ObserveBooking("past_date", time.Since(start).Seconds())
		return nil, ErrPastDate
	}

	patient, err := s.repo.GetPatientByID(ctx, in.PatientID)
	if err != nil {
		s.metrics.ObserveBooking(outcomeLabel(err), time.Since(start).Seconds())
		if errors.Is(err, ErrPatientNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("load patient: %w", err)
	}

	var (
		created *Appointment
		doctor  *Doctor
	)

	err = s.withDoctorLock(ctx, in.DoctorID, func(lockCtx context.Context) error {
		d, err := s.repo.GetDoctorByID(lockCtx, in.DoctorID)
		if err != nil {
			if errors.Is(err, ErrDoctorNotFound) {
				return err
			}
			return fmt.Errorf("load doctor: %w", err)
		}
		doctor = d

		if d.AvailabilityStatus != AvailabilityAvailable {
			return &DoctorUnavailableError{Status: d.AvailabilityStatus}
		}

		conflict, err := s.repo.FindActiveAtTime(lockCtx, in.PatientID, in.Slot.Date, in.Slot.StartTime)
		if err != nil && !errors.Is(err, ErrAppointmentNotFound) {
			return fmt.Errorf("check patient conflict: %w", err)
		}
		if conflict != nil {
			return ErrDoubleBooking
		}

		entry, err := s.repo.FindSlot(lockCtx, in.DoctorID, in.Slot)
		if err != nil {
			if errors.Is(err, ErrSlotNotFound) {
				return ErrSlotUnavailable
			}
			return fmt.Errorf("load slot: %w", err)
		}
		if entry.IsBooked {
			return ErrSlotUnavailable
		}

		// The ledger flag stays false for pending appointments, so the
		// one-active-claim-per-slot invariant is enforced here instead.
		claim, err := s.repo.FindActiveClaim(lockCtx, in.DoctorID, in.Slot)
		if err != nil && !errors.Is(err, ErrAppointmentNotFound) {
			return fmt.Errorf("check slot claim: %w", err)
		}
		if claim != nil {
			return ErrSlotUnavailable
		}

		// The slot is NOT reserved here. Reservation happens on the
		// transition into confirmed; racing pending requests are allowed.
		appt, err := s.repo.CreateAppointment(lockCtx, &Appointment{
			PatientID: in.PatientID,
			DoctorID:  in.DoctorID,
			Slot:      in.Slot,
			Reason:    in.Reason,
			Urgency:   in.Urgency,
			Status:    StatusPending,
		})
		if err != nil {
			return fmt.Errorf("create appointment: %w", err)
		}
		created = appt

		s.logEvent(lockCtx, appt.ID, EventAppointmentRequested, map[string]any{
			"patient_id": in.PatientID.String(),
			"doctor_id":  in.DoctorID.String(),
			"slot":       slotPayload(in.Slot),
			"urgency":    string(in.Urgency),
		})
		return nil
	})
	if err != nil {
		s.metrics.ObserveBooking(outcomeLabel(err), time.Since(start).Seconds())
		return nil, err
	}

	s.metrics.ObserveBooking("success", time.Since(start).Seconds())

	slotText := fmt.Sprintf("%s from %s to %s", created.Slot.Date, created.Slot.StartTime, created.Slot.EndTime)
	if patient.Email != nil {
		s.sendAsync(*patient.Email, "Appointment Requested - Smart Health Care System",
			fmt.Sprintf("Your appointment with Dr. %s on %s has been requested and is awaiting confirmation.\nReason: %s",
				doctor.Name, slotText, orDash(created.Reason)))
	}
	if doctor.Email != nil {
		s.sendAsync(*doctor.Email, "New Appointment Request - Smart Health Care System",
			fmt.Sprintf("%s has requested an appointment on %s.\nReason: %s\nUrgency: %s",
				patient.Name, slotText, orDash(created.Reason), created.Urgency))
	}

	return created, nil
}

// TransitionResult is returned by the transition coordinator for
// observability: the updated appointment plus the applied edge.
type TransitionResult struct {
	Appointment *Appointment
	From        Status
	To          Status
}

// TransitionAppointment is the transition coordinator and the single
// point of truth for status changes. The ledger update, the status write,
// and the availability recompute commit in one transaction under the
// doctor's lock.
func (s *Service) TransitionAppointment(ctx context.Context, id uuid.UUID, target Status, notes *string) (*TransitionResult, error) {
	if !target.Valid() {
		s.metrics.ObserveTransition(string(target), "invalid_input")
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, target)
	}

	// Load outside the lock only to learn which doctor to serialize on;
	// the state used for validation is re-read inside.
	probe, err := s.repo.GetAppointmentByID(ctx, id)
	if err != nil {
		s.metrics.ObserveTransition(string(target), outcomeLabel(err))
		if errors.Is(err, ErrAppointmentNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("load appointment: %w", err)
	}

	var (
		result             *TransitionResult
		doctor             *Doctor
		oldAvail, newAvail AvailabilityStatus
	)

	err = s.withDoctorLock(ctx, probe.DoctorID, func(lockCtx context.Context) error {
		appt, err := s.repo.GetAppointmentByID(lockCtx, id)
		if err != nil {
			return err
		}
		if err := ValidateTransition(appt.Status, target); err != nil {
			return err
		}

		return s.repo.WithTx(lockCtx, func(tx Repository) error {
			if reservesSlot(target) {
				entry, err := tx.FindSlot(lockCtx, appt.DoctorID, appt.Slot)
				if err != nil {
					if errors.Is(err, ErrSlotNotFound) {
						return ErrSlotUnavailable
					}
					return fmt.Errorf("load slot: %w", err)
				}
				if entry.IsBooked {
					return ErrSlotUnavailable
				}
				if err := tx.SetSlotBooked(lockCtx, appt.DoctorID, appt.Slot, true); err != nil {
					return fmt.Errorf("reserve slot: %w", err)
				}
			}
			if releasesSlot(target) && holdsReservation(appt.Status) {
				// Silent no-op when the ledger entry was edited away.
				if err := tx.SetSlotBooked(lockCtx, appt.DoctorID, appt.Slot, false); err != nil {
					return fmt.Errorf("release slot: %w", err)
				}
			}

			updated, err := tx.UpdateAppointmentStatus(lockCtx, appt.ID, appt.Status, target, notes)
			if err != nil {
				if errors.Is(err, ErrAppointmentNotFound) {
					return ErrConcurrentModification
				}
				return fmt.Errorf("update status: %w", err)
			}

			d, from, to, err := s.recomputeAvailability(lockCtx, tx, appt.DoctorID)
			if err != nil {
				return err
			}
			doctor, oldAvail, newAvail = d, from, to

			result = &TransitionResult{Appointment: updated, From: appt.Status, To: target}
			return nil
		})
	})
	if err != nil {
		s.metrics.ObserveTransition(string(target), outcomeLabel(err))
		return nil, err
	}

	s.metrics.ObserveTransition(string(target), "success")

	s.logEvent(ctx, result.Appointment.ID, EventAppointmentStatusChanged, map[string]any{
		"from": string(result.From),
		"to":   string(result.To),
	})
	if oldAvail != newAvail {
		s.logEvent(ctx, result.Appointment.ID, EventDoctorAvailabilityChanged, map[string]any{
			"doctor_id": doctor.ID.String(),
			"from":      string(oldAvail),
			"to":        string(newAvail),
		})
	}

	s.notifyStatusChange(ctx, result, doctor, oldAvail, newAvail)

	return result, nil
}

// TransitionByAction resolves a shortcut (accept, reject, cancel,
// complete, start) and dispatches it through the transition coordinator.
func (s *Service) TransitionByAction(ctx context.Context, id uuid.UUID, action Action, notes *string) (*TransitionResult, error) {
	target, ok := TargetForAction(action)
	if !ok {
		return nil, fmt.Errorf("%w: unknown action %q", ErrInvalidInput, action)
	}
	return s.TransitionAppointment(ctx, id, target, notes)
}

// RescheduleAppointment moves an appointment to a new slot and to status
// rescheduled. Only edges the state machine already admits into
// rescheduled are accepted; confirming afterwards reserves the new slot.
func (s *Service) RescheduleAppointment(ctx context.Context, id uuid.UUID, newSlot Slot) (*TransitionResult, error) {
	if err := validateSlot(newSlot); err != nil {
		return nil, err
	}
	if pastDate(newSlot.Date) {
		return nil, ErrPastDate
	}

	probe, err := s.repo.GetAppointmentByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrAppointmentNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("load appointment: %w", err)
	}

	var result *TransitionResult

	err = s.withDoctorLock(ctx, probe.DoctorID, func(lockCtx context.Context) error {
		appt, err := s.repo.GetAppointmentByID(lockCtx, id)
		if err != nil {
			return err
		}
		if err := ValidateTransition(appt.Status, StatusRescheduled); err != nil {
			return err
		}

		return s.repo.WithTx(lockCtx, func(tx Repository) error {
			entry, err := tx.FindSlot(lockCtx, appt.DoctorID, newSlot)
			if err != nil {
				if errors.Is(err, ErrSlotNotFound) {
					return ErrSlotUnavailable
				}
				return fmt.Errorf("load slot: %w", err)
			}
			if entry.IsBooked {
				return ErrSlotUnavailable
			}
			claim, err := tx.FindActiveClaim(lockCtx, appt.DoctorID, newSlot)
			if err != nil && !errors.Is(err, ErrAppointmentNotFound) {
				return fmt.Errorf("check slot claim: %w", err)
			}
			if claim != nil && claim.ID != appt.ID {
				return ErrSlotUnavailable
			}
			if holdsReservation(appt.Status) {
				if err := tx.SetSlotBooked(lockCtx, appt.DoctorID, appt.Slot, false); err != nil {
					return fmt.Errorf("release slot: %w", err)
				}
			}

			updated, err := tx.UpdateAppointmentSlot(lockCtx, appt.ID, appt.Status, newSlot)
			if err != nil {
				if errors.Is(err, ErrAppointmentNotFound) {
					return ErrConcurrentModification
				}
				return fmt.Errorf("update slot: %w", err)
			}

			result = &TransitionResult{Appointment: updated, From: appt.Status, To: StatusRescheduled}
			return nil
		})
	})
	if err != nil {
		s.metrics.ObserveTransition(string(StatusRescheduled), outcomeLabel(err))
		return nil, err
	}

	s.metrics.ObserveTransition(string(StatusRescheduled), "success")
	s.logEvent(ctx, result.Appointment.ID, EventAppointmentRescheduled, map[string]any{
		"from_status": string(result.From),
		"slot":        slotPayload(newSlot),
	})
	return result, nil
}

// GetDoctorAvailability returns the doctor's externally visible
// availability state.
func (s *Service) GetDoctorAvailability(ctx context.Context, doctorID uuid.UUID) (*Doctor, error) {
	doctor, err := s.repo.GetDoctorByID(ctx, doctorID)
	if err != nil {
		if errors.Is(err, ErrDoctorNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("load doctor: %w", err)
	}
	return doctor, nil
}

// SetDoctorManualStatus is the offline/reactivation override path. Going
// offline is sticky: it suppresses the derived recompute and blocks new
// bookings until changed. Any other manual status reactivates the doctor
// and the stored value is recomputed from confirmed-count, so a stale
// requested value cannot drift from the aggregate.
func (s *Service) SetDoctorManualStatus(ctx context.Context, doctorID uuid.UUID, status AvailabilityStatus, notes *string) (*Doctor, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown availability status %q", ErrInvalidInput, status)
	}

	var (
		updated            *Doctor
		oldAvail, newAvail AvailabilityStatus
	)

	err := s.withDoctorLock(ctx, doctorID, func(lockCtx context.Context) error {
		doctor, err := s.repo.GetDoctorByID(lockCtx, doctorID)
		if err != nil {
			return err
		}
		oldAvail = doctor.AvailabilityStatus

		if status == AvailabilityOffline {
			d, err := s.repo.UpdateDoctorAvailability(lockCtx, doctorID, AvailabilityOffline, nil, notes)
			if err != nil {
				return fmt.Errorf("set doctor offline: %w", err)
			}
			updated = d
			newAvail = AvailabilityOffline
			return nil
		}

		derived, currentPatient, err := s.deriveAvailability(lockCtx, s.repo, doctorID)
		if err != nil {
			return err
		}
		d, err := s.repo.UpdateDoctorAvailability(lockCtx, doctorID, derived, currentPatient, notes)
		if err != nil {
			return fmt.Errorf("update doctor availability: %w", err)
		}
		updated = d
		newAvail = derived
		return nil
	})
	if err != nil {
		return nil, err
	}

	if oldAvail != newAvail {
		s.logEvent(ctx, uuid.Nil, EventDoctorAvailabilityChanged, map[string]any{
			"doctor_id": doctorID.String(),
			"from":      string(oldAvail),
			"to":        string(newAvail),
			"manual":    true,
		})
		if newAvail == AvailabilityAvailable && updated.Email != nil {
			s.sendAsync(*updated.Email, "Availability Updated - Smart Health Care System",
				"You are now shown as available for new appointment requests.")
		}
	}

	return updated, nil
}

// AddDoctorSlot appends an unbooked entry to the doctor's slot ledger.
func (s *Service) AddDoctorSlot(ctx context.Context, doctorID uuid.UUID, slot Slot) error {
	if err := validateSlot(slot); err != nil {
		return err
	}
	return s.withDoctorLock(ctx, doctorID, func(lockCtx context.Context) error {
		if _, err := s.repo.GetDoctorByID(lockCtx, doctorID); err != nil {
			return err
		}
		if err := s.repo.AddSlot(lockCtx, doctorID, slot); err != nil {
			return err
		}
		s.logEvent(lockCtx, uuid.Nil, EventSlotAdded, map[string]any{
			"doctor_id": doctorID.String(),
			"slot":      slotPayload(slot),
		})
		return nil
	})
}

// RemoveDoctorSlot deletes an unbooked ledger entry. Booked entries are
// protected; release the reservation first via the appointment flow.
func (s *Service) RemoveDoctorSlot(ctx context.Context, doctorID uuid.UUID, slot Slot) error {
	return s.withDoctorLock(ctx, doctorID, func(lockCtx context.Context) error {
		if err := s.repo.RemoveSlot(lockCtx, doctorID, slot); err != nil {
			return err
		}
		s.logEvent(lockCtx, uuid.Nil, EventSlotRemoved, map[string]any{
			"doctor_id": doctorID.String(),
			"slot":      slotPayload(slot),
		})
		return nil
	})
}

func (s *Service) ListDoctorSlots(ctx context.Context, doctorID uuid.UUID) ([]LedgerEntry, error) {
	if _, err := s.repo.GetDoctorByID(ctx, doctorID); err != nil {
		return nil, err
	}
	return s.repo.ListSlots(ctx, doctorID)
}

func (s *Service) GetAppointment(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return s.repo.GetAppointmentByID(ctx, id)
}

func (s *Service) ListAppointmentsByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]Appointment, error) {
	limit, offset = clampPage(limit, offset)
	return s.repo.ListAppointmentsByPatient(ctx, patientID, limit, offset)
}

func (s *Service) ListAppointmentsByDoctor(ctx context.Context, doctorID uuid.UUID, limit, offset int) ([]Appointment, error) {
	limit, offset = clampPage(limit, offset)
	return s.repo.ListAppointmentsByDoctor(ctx, doctorID, limit, offset)
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// deriveAvailability computes the doctor's availability from appointment
// state: an in_progress appointment forces busy with the patient pinned;
// otherwise it is a pure function of the confirmed count.
func (s *Service) deriveAvailability(ctx context.Context, repo Repository, doctorID uuid.UUID) (AvailabilityStatus, *uuid.UUID, error) {
	inProgress, err := repo.FindInProgress(ctx, doctorID)
	if err != nil && !errors.Is(err, ErrAppointmentNotFound) {
		return "", nil, fmt.Errorf("find in-progress appointment: %w", err)
	}
	if inProgress != nil {
		patientID := inProgress.PatientID
		return AvailabilityBusy, &patientID, nil
	}

	n, err := repo.CountConfirmed(ctx, doctorID)
	if err != nil {
		return "", nil, fmt.Errorf("count confirmed appointments: %w", err)
	}
	return DeriveAvailability(n), nil, nil
}

// recomputeAvailability applies the derived value unless the doctor is
// manually offline, which is sticky until explicitly changed.
func (s *Service) recomputeAvailability(ctx context.Context, repo Repository, doctorID uuid.UUID) (*Doctor, AvailabilityStatus, AvailabilityStatus, error) {
	doctor, err := repo.GetDoctorByID(ctx, doctorID)
	if err != nil {
		return nil, "", "", err
	}
	if doctor.AvailabilityStatus == AvailabilityOffline {
		return doctor, AvailabilityOffline, AvailabilityOffline, nil
	}

	derived, currentPatient, err := s.deriveAvailability(ctx, repo, doctorID)
	if err != nil {
		return nil, "", "", err
	}
	if derived == doctor.AvailabilityStatus && uuidPtrEqual(currentPatient, doctor.CurrentPatientID) {
		return doctor, doctor.AvailabilityStatus, derived, nil
	}

	updated, err := repo.UpdateDoctorAvailability(ctx, doctorID, derived, currentPatient, nil)
	if err != nil {
		return nil, "", "", fmt.Errorf("update doctor availability: %w", err)
	}
	return updated, doctor.AvailabilityStatus, derived, nil
}

func (s *Service) notifyStatusChange(ctx context.Context, result *TransitionResult, doctor *Doctor, oldAvail, newAvail AvailabilityStatus) {
	appt := result.Appointment
	slotText := fmt.Sprintf("%s from %s to %s", appt.Slot.Date, appt.Slot.StartTime, appt.Slot.EndTime)

	patient, err := s.repo.GetPatientByID(ctx, appt.PatientID)
	if err == nil && patient.Email != nil {
		s.sendAsync(*patient.Email,
			fmt.Sprintf("Appointment %s - Smart Health Care System", statusWord(result.To)),
			fmt.Sprintf("Your appointment with Dr. %s on %s is now %s.", doctor.Name, slotText, result.To))
	}

	if oldAvail != AvailabilityAvailable && newAvail == AvailabilityAvailable && doctor.Email != nil {
		s.sendAsync(*doctor.Email, "Availability Updated - Smart Health Care System",
			"You are now shown as available for new appointment requests.")
	}
}

func statusWord(s Status) string {
	switch s {
	case StatusConfirmed:
		return "Confirmed"
	case StatusInProgress:
		return "Started"
	case StatusCompleted:
		return "Completed"
	case StatusCancelled:
		return "Cancelled"
	case StatusRejected:
		return "Rejected"
	case StatusNoShow:
		return "Marked No-Show"
	case StatusRescheduled:
		return "Rescheduled"
	default:
		return "Updated"
	}
}

func (s *Service) withDoctorLock(ctx context.Context, doctorID uuid.UUID, fn func(context.Context) error) error {
	err := s.locker.WithDoctorLock(ctx, doctorID, fn)
	if errors.Is(err, redisclient.ErrLockNotAcquired) {
		return ErrConcurrentModification
	}
	return err
}

// sendAsync dispatches a best-effort notification on its own goroutine
// with its own deadline so it can never block a coordinator or hold a
// doctor lock. Failures are logged and swallowed.
func (s *Service) sendAsync(to, subject, body string) {
	if to == "" {
		return
	}
	timeout := s.cfg.NotifyTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := s.notifier.Send(ctx, to, subject, body); err != nil {
			log.Printf("notification send failed to=%s subject=%q: %v", to, subject, err)
		}
	}()
}

func (s *Service) logEvent(ctx context.Context, appointmentID uuid.UUID, eventType string, payload map[string]any) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("failed to marshal event payload for %s: %v", eventType, err)
		data = nil
	}

	ev := EventLog{
		EventType: eventType,
		Payload:   data,
		CreatedAt: time.Now(),
	}
	if appointmentID != uuid.Nil {
		apptID := appointmentID
		ev.AppointmentID = &apptID
	}

	if err := s.repo.InsertEvent(ctx, ev); err != nil {
		log.Printf("failed to insert event log %s: %v", eventType, err)
	}
}

func slotPayload(slot Slot) map[string]string {
	return map[string]string{
		"date":       slot.Date,
		"start_time": slot.StartTime,
		"end_time":   slot.EndTime,
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func uuidPtrEqual(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func outcomeLabel(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, ErrPastDate):
		return "past_date"
	case errors.Is(err, ErrPatientNotFound),
		errors.Is(err, ErrDoctorNotFound),
		errors.Is(err, ErrAppointmentNotFound),
		errors.Is(err, ErrSlotNotFound):
		return "not_found"
	case errors.Is(err, ErrDoctorUnavailable):
		return "doctor_unavailable"
	case errors.Is(err, ErrDoubleBooking):
		return "double_booking"
	case errors.Is(err, ErrSlotUnavailable):
		return "slot_unavailable"
	case errors.Is(err, ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, ErrConcurrentModification):
		return "conflict"
	default:
		return "error"
	}
}
