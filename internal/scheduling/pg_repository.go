package scheduling

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of pgxpool.Pool the repository needs. pgxpool.Pool and
// pgx.Tx both satisfy it, as do the pgxmock pools used in tests.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

type PgRepository struct {
	db DB
}

func NewPgRepository(db DB) *PgRepository {
	return &PgRepository{db: db}
}

// Helpers

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Email,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPatientNotFound
		}
		return nil, err
	}
	return &p, nil
}

func scanDoctor(row pgx.Row) (*Doctor, error) {
	var d Doctor
	err := row.Scan(
		&d.ID,
		&d.Name,
		&d.Specialty,
		&d.Email,
		&d.AvailabilityStatus,
		&d.StatusNotes,
		&d.CurrentPatientID,
		&d.LastStatusUpdate,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDoctorNotFound
		}
		return nil, err
	}
	return &d, nil
}

func scanLedgerEntry(row pgx.Row) (*LedgerEntry, error) {
	var e LedgerEntry
	err := row.Scan(
		&e.Date,
		&e.StartTime,
		&e.EndTime,
		&e.IsBooked,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSlotNotFound
		}
		return nil, err
	}
	return &e, nil
}

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment
	err := row.Scan(
		&a.ID,
		&a.PatientID,
		&a.DoctorID,
		&a.Slot.Date,
		&a.Slot.StartTime,
		&a.Slot.EndTime,
		&a.Reason,
		&a.Urgency,
		&a.Status,
		&a.AdminNotes,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}
	return &a, nil
}

const appointmentColumns = `id, patient_id, doctor_id, slot_date, start_time, end_time, reason, urgency, status, admin_notes, created_at, updated_at`

// Interface methods

func (r *PgRepository) GetPatientByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, name, email, created_at, updated_at
		FROM patients
		WHERE id = $1
	`, id)
	return scanPatient(row)
}

func (r *PgRepository) GetDoctorByID(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, name, specialty, email, availability_status, status_notes, current_patient_id, last_status_update, created_at, updated_at
		FROM doctors
		WHERE id = $1
	`, id)
	return scanDoctor(row)
}

func (r *PgRepository) FindSlot(ctx context.Context, doctorID uuid.UUID, slot Slot) (*LedgerEntry, error) {
	row := r.db.QueryRow(ctx, `
		SELECT slot_date, start_time, end_time, is_booked, created_at, updated_at
		FROM doctor_slots
		WHERE doctor_id = $1 AND slot_date = $2 AND start_time = $3 AND end_time = $4
	`, doctorID, slot.Date, slot.StartTime, slot.EndTime)
	return scanLedgerEntry(row)
}

func (r *PgRepository) ListSlots(ctx context.Context, doctorID uuid.UUID) ([]LedgerEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT slot_date, start_time, end_time, is_booked, created_at, updated_at
		FROM doctor_slots
		WHERE doctor_id = $1
		ORDER BY slot_date, start_time
	`, doctorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []LedgerEntry
	for rows.Next() {
		e, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *e)
	}
	return result, rows.Err()
}

func (r *PgRepository) AddSlot(ctx context.Context, doctorID uuid.UUID, slot Slot) error {
	tag, err := r.db.Exec(ctx, `
		INSERT INTO doctor_slots (doctor_id, slot_date, start_time, end_time, is_booked, created_at, updated_at)
		VALUES ($1, $2, $3, $4, false, now(), now())
		ON CONFLICT (doctor_id, slot_date, start_time, end_time) DO NOTHING
	`, doctorID, slot.Date, slot.StartTime, slot.EndTime)
	if err != nil {
		return fmt.Errorf("insert slot: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrSlotExists
	}
	return nil
}

func (r *PgRepository) RemoveSlot(ctx context.Context, doctorID uuid.UUID, slot Slot) error {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM doctor_slots
		WHERE doctor_id = $1 AND slot_date = $2 AND start_time = $3 AND end_time = $4
		  AND is_booked = false
	`, doctorID, slot.Date, slot.StartTime, slot.EndTime)
	if err != nil {
		return fmt.Errorf("delete slot: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrSlotNotFound
	}
	return nil
}

func (r *PgRepository) SetSlotBooked(ctx context.Context, doctorID uuid.UUID, slot Slot, booked bool) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE doctor_slots
		SET is_booked = $5,
		    updated_at = now()
		WHERE doctor_id = $1 AND slot_date = $2 AND start_time = $3 AND end_time = $4
	`, doctorID, slot.Date, slot.StartTime, slot.EndTime, booked)
	if err != nil {
		return fmt.Errorf("update slot: %w", err)
	}
	if tag.RowsAffected() == 0 && booked {
		return ErrSlotNotFound
	}
	return nil
}

func (r *PgRepository) GetAppointmentByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointments
		WHERE id = $1
	`, id)
	return scanAppointment(row)
}

func (r *PgRepository) FindActiveAtTime(ctx context.Context, patientID uuid.UUID, date, startTime string) (*Appointment, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointments
		WHERE patient_id = $1
		  AND slot_date = $2
		  AND start_time = $3
		  AND status IN ('pending', 'confirmed', 'in_progress')
		LIMIT 1
	`, patientID, date, startTime)
	return scanAppointment(row)
}

func (r *PgRepository) FindActiveClaim(ctx context.Context, doctorID uuid.UUID, slot Slot) (*Appointment, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointments
		WHERE doctor_id = $1
		  AND slot_date = $2
		  AND start_time = $3
		  AND end_time = $4
		  AND status IN ('pending', 'confirmed', 'in_progress')
		LIMIT 1
	`, doctorID, slot.Date, slot.StartTime, slot.EndTime)
	return scanAppointment(row)
}

func (r *PgRepository) CountConfirmed(ctx context.Context, doctorID uuid.UUID) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `
		SELECT count(*)
		FROM appointments
		WHERE doctor_id = $1 AND status = 'confirmed'
	`, doctorID).Scan(&n)
	if err != nil {
		return 0, err
	}
	return n, nil
}

func (r *PgRepository) FindInProgress(ctx context.Context, doctorID uuid.UUID) (*Appointment, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointments
		WHERE doctor_id = $1 AND status = 'in_progress'
		LIMIT 1
	`, doctorID)
	return scanAppointment(row)
}

func (r *PgRepository) CreateAppointment(ctx context.Context, appt *Appointment) (*Appointment, error) {
	id := appt.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	row := r.db.QueryRow(ctx, `
		INSERT INTO appointments (id, patient_id, doctor_id, slot_date, start_time, end_time, reason, urgency, status, admin_notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now(), now())
		RETURNING `+appointmentColumns+`
	`, id, appt.PatientID, appt.DoctorID, appt.Slot.Date, appt.Slot.StartTime, appt.Slot.EndTime,
		appt.Reason, appt.Urgency, appt.Status, appt.AdminNotes)

	return scanAppointment(row)
}

func (r *PgRepository) UpdateAppointmentStatus(ctx context.Context, id uuid.UUID, from, to Status, notes *string) (*Appointment, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE appointments
		SET status = $2,
		    admin_notes = COALESCE($4, admin_notes),
		    updated_at = now()
		WHERE id = $1
		  AND status = $3
		RETURNING `+appointmentColumns+`
	`, id, to, from, notes)

	return scanAppointment(row)
}

func (r *PgRepository) UpdateAppointmentSlot(ctx context.Context, id uuid.UUID, from Status, slot Slot) (*Appointment, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE appointments
		SET slot_date = $2,
		    start_time = $3,
		    end_time = $4,
		    status = 'rescheduled',
		    updated_at = now()
		WHERE id = $1
		  AND status = $5
		RETURNING `+appointmentColumns+`
	`, id, slot.Date, slot.StartTime, slot.EndTime, from)

	return scanAppointment(row)
}

func (r *PgRepository) ListAppointmentsByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]Appointment, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointments
		WHERE patient_id = $1
		ORDER BY slot_date DESC, start_time DESC
		LIMIT $2 OFFSET $3
	`, patientID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAppointments(rows)
}

func (r *PgRepository) ListAppointmentsByDoctor(ctx context.Context, doctorID uuid.UUID, limit, offset int) ([]Appointment, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointments
		WHERE doctor_id = $1
		ORDER BY slot_date DESC, start_time DESC
		LIMIT $2 OFFSET $3
	`, doctorID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAppointments(rows)
}

func collectAppointments(rows pgx.Rows) ([]Appointment, error) {
	var result []Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *a)
	}
	return result, rows.Err()
}

func (r *PgRepository) UpdateDoctorAvailability(ctx context.Context, doctorID uuid.UUID, status AvailabilityStatus, currentPatientID *uuid.UUID, notes *string) (*Doctor, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE doctors
		SET availability_status = $2,
		    current_patient_id = $3,
		    status_notes = COALESCE($4, status_notes),
		    last_status_update = now(),
		    updated_at = now()
		WHERE id = $1
		RETURNING id, name, specialty, email, availability_status, status_notes, current_patient_id, last_status_update, created_at, updated_at
	`, doctorID, status, currentPatientID, notes)

	return scanDoctor(row)
}

func (r *PgRepository) InsertEvent(ctx context.Context, ev EventLog) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO event_logs (event_type, appointment_id, payload, created_at)
		VALUES ($1, $2, $3, COALESCE($4, now()))
	`, ev.EventType, ev.AppointmentID, ev.Payload, nullableTime(ev.CreatedAt))
	if err != nil {
		return fmt.Errorf("insert event log: %w", err)
	}
	return nil
}

func (r *PgRepository) WithTx(ctx context.Context, fn func(Repository) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(NewPgRepository(tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
