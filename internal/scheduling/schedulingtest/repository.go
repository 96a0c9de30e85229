// Package schedulingtest provides an in-memory Repository for tests. It
// mirrors the Postgres repository's semantics, including compare-and-swap
// status updates, and is safe for concurrent use.
package schedulingtest

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/smarthealth/scheduling/internal/scheduling"
)

type MemoryRepository struct {
	mu           sync.Mutex
	patients     map[uuid.UUID]scheduling.Patient
	doctors      map[uuid.UUID]scheduling.Doctor
	slots        map[uuid.UUID][]scheduling.LedgerEntry
	appointments map[uuid.UUID]scheduling.Appointment
	events       []scheduling.EventLog
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		patients:     make(map[uuid.UUID]scheduling.Patient),
		doctors:      make(map[uuid.UUID]scheduling.Doctor),
		slots:        make(map[uuid.UUID][]scheduling.LedgerEntry),
		appointments: make(map[uuid.UUID]scheduling.Appointment),
	}
}

// Seeding helpers

func (r *MemoryRepository) SeedPatient(name, email string) scheduling.Patient {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	p := scheduling.Patient{ID: uuid.New(), Name: name, Email: &email, CreatedAt: now, UpdatedAt: now}
	r.patients[p.ID] = p
	return p
}

func (r *MemoryRepository) SeedDoctor(name, email string) scheduling.Doctor {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	d := scheduling.Doctor{
		ID:                 uuid.New(),
		Name:               name,
		Email:              &email,
		AvailabilityStatus: scheduling.AvailabilityAvailable,
		LastStatusUpdate:   now,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	r.doctors[d.ID] = d
	return d
}

func (r *MemoryRepository) SeedSlot(doctorID uuid.UUID, slot scheduling.Slot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	r.slots[doctorID] = append(r.slots[doctorID], scheduling.LedgerEntry{
		Slot:      slot,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

// Events returns a copy of the recorded event log.
func (r *MemoryRepository) Events() []scheduling.EventLog {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]scheduling.EventLog, len(r.events))
	copy(out, r.events)
	return out
}

// Repository implementation

func (r *MemoryRepository) GetPatientByID(_ context.Context, id uuid.UUID) (*scheduling.Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.patients[id]
	if !ok {
		return nil, scheduling.ErrPatientNotFound
	}
	cp := p
	return &cp, nil
}

func (r *MemoryRepository) GetDoctorByID(_ context.Context, id uuid.UUID) (*scheduling.Doctor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.doctors[id]
	if !ok {
		return nil, scheduling.ErrDoctorNotFound
	}
	cp := d
	return &cp, nil
}

func (r *MemoryRepository) FindSlot(_ context.Context, doctorID uuid.UUID, slot scheduling.Slot) (*scheduling.LedgerEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.slots[doctorID] {
		if e.Slot == slot {
			cp := e
			return &cp, nil
		}
	}
	return nil, scheduling.ErrSlotNotFound
}

func (r *MemoryRepository) ListSlots(_ context.Context, doctorID uuid.UUID) ([]scheduling.LedgerEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]scheduling.LedgerEntry, len(r.slots[doctorID]))
	copy(out, r.slots[doctorID])
	return out, nil
}

func (r *MemoryRepository) AddSlot(_ context.Context, doctorID uuid.UUID, slot scheduling.Slot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.slots[doctorID] {
		if e.Slot == slot {
			return scheduling.ErrSlotExists
		}
	}
	now := time.Now()
	r.slots[doctorID] = append(r.slots[doctorID], scheduling.LedgerEntry{Slot: slot, CreatedAt: now, UpdatedAt: now})
	return nil
}

func (r *MemoryRepository) RemoveSlot(_ context.Context, doctorID uuid.UUID, slot scheduling.Slot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	entries := r.slots[doctorID]
	for i, e := range entries {
		if e.Slot == slot && !e.IsBooked {
			r.slots[doctorID] = append(entries[:i:i], entries[i+1:]...)
			return nil
		}
	}
	return scheduling.ErrSlotNotFound
}

func (r *MemoryRepository) SetSlotBooked(_ context.Context, doctorID uuid.UUID, slot scheduling.Slot, booked bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	entries := r.slots[doctorID]
	for i := range entries {
		if entries[i].Slot == slot {
			entries[i].IsBooked = booked
			entries[i].UpdatedAt = time.Now()
			return nil
		}
	}
	if booked {
		return scheduling.ErrSlotNotFound
	}
	return nil
}

func (r *MemoryRepository) GetAppointmentByID(_ context.Context, id uuid.UUID) (*scheduling.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.appointments[id]
	if !ok {
		return nil, scheduling.ErrAppointmentNotFound
	}
	cp := a
	return &cp, nil
}

func (r *MemoryRepository) FindActiveAtTime(_ context.Context, patientID uuid.UUID, date, startTime string) (*scheduling.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.appointments {
		if a.PatientID == patientID && a.Slot.Date == date && a.Slot.StartTime == startTime && a.Status.Active() {
			cp := a
			return &cp, nil
		}
	}
	return nil, scheduling.ErrAppointmentNotFound
}

func (r *MemoryRepository) FindActiveClaim(_ context.Context, doctorID uuid.UUID, slot scheduling.Slot) (*scheduling.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.appointments {
		if a.DoctorID == doctorID && a.Slot == slot && a.Status.Active() {
			cp := a
			return &cp, nil
		}
	}
	return nil, scheduling.ErrAppointmentNotFound
}

func (r *MemoryRepository) CountConfirmed(_ context.Context, doctorID uuid.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, a := range r.appointments {
		if a.DoctorID == doctorID && a.Status == scheduling.StatusConfirmed {
			n++
		}
	}
	return n, nil
}

func (r *MemoryRepository) FindInProgress(_ context.Context, doctorID uuid.UUID) (*scheduling.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.appointments {
		if a.DoctorID == doctorID && a.Status == scheduling.StatusInProgress {
			cp := a
			return &cp, nil
		}
	}
	return nil, scheduling.ErrAppointmentNotFound
}

func (r *MemoryRepository) CreateAppointment(_ context.Context, appt *scheduling.Appointment) (*scheduling.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a := *appt
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now
	r.appointments[a.ID] = a
	cp := a
	return &cp, nil
}

func (r *MemoryRepository) UpdateAppointmentStatus(_ context.Context, id uuid.UUID, from, to scheduling.Status, notes *string) (*scheduling.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.appointments[id]
	if !ok || a.Status != from {
		return nil, scheduling.ErrAppointmentNotFound
	}
	a.Status = to
	if notes != nil {
		a.AdminNotes = notes
	}
	a.UpdatedAt = time.Now()
	r.appointments[id] = a
	cp := a
	return &cp, nil
}

func (r *MemoryRepository) UpdateAppointmentSlot(_ context.Context, id uuid.UUID, from scheduling.Status, slot scheduling.Slot) (*scheduling.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.appointments[id]
	if !ok || a.Status != from {
		return nil, scheduling.ErrAppointmentNotFound
	}
	a.Slot = slot
	a.Status = scheduling.StatusRescheduled
	a.UpdatedAt = time.Now()
	r.appointments[id] = a
	cp := a
	return &cp, nil
}

func (r *MemoryRepository) ListAppointmentsByPatient(_ context.Context, patientID uuid.UUID, limit, offset int) ([]scheduling.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []scheduling.Appointment
	for _, a := range r.appointments {
		if a.PatientID == patientID {
			out = append(out, a)
		}
	}
	return page(out, limit, offset), nil
}

func (r *MemoryRepository) ListAppointmentsByDoctor(_ context.Context, doctorID uuid.UUID, limit, offset int) ([]scheduling.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []scheduling.Appointment
	for _, a := range r.appointments {
		if a.DoctorID == doctorID {
			out = append(out, a)
		}
	}
	return page(out, limit, offset), nil
}

func page(in []scheduling.Appointment, limit, offset int) []scheduling.Appointment {
	if offset >= len(in) {
		return nil
	}
	in = in[offset:]
	if limit > 0 && limit < len(in) {
		in = in[:limit]
	}
	return in
}

func (r *MemoryRepository) UpdateDoctorAvailability(_ context.Context, doctorID uuid.UUID, status scheduling.AvailabilityStatus, currentPatientID *uuid.UUID, notes *string) (*scheduling.Doctor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.doctors[doctorID]
	if !ok {
		return nil, scheduling.ErrDoctorNotFound
	}
	d.AvailabilityStatus = status
	d.CurrentPatientID = currentPatientID
	if notes != nil {
		d.StatusNotes = notes
	}
	now := time.Now()
	d.LastStatusUpdate = now
	d.UpdatedAt = now
	r.doctors[doctorID] = d
	cp := d
	return &cp, nil
}

func (r *MemoryRepository) InsertEvent(_ context.Context, ev scheduling.EventLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ev.ID = int64(len(r.events) + 1)
	r.events = append(r.events, ev)
	return nil
}

// WithTx runs fn against the same repository. Rollback is not simulated;
// tests that need partial-failure semantics use the Postgres repository
// with pgxmock instead.
func (r *MemoryRepository) WithTx(_ context.Context, fn func(scheduling.Repository) error) error {
	return fn(r)
}
