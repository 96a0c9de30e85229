package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/smarthealth/scheduling/internal/scheduling"
)

type SlotPayload struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

func (p SlotPayload) toSlot() scheduling.Slot {
	return scheduling.Slot{
		Date:      p.Date,
		StartTime: p.StartTime,
		EndTime:   p.EndTime,
	}
}

func fromSlot(s scheduling.Slot) SlotPayload {
	return SlotPayload{Date: s.Date, StartTime: s.StartTime, EndTime: s.EndTime}
}

type CreateAppointmentRequest struct {
	PatientID string      `json:"patient_id"`
	DoctorID  string      `json:"doctor_id"`
	Slot      SlotPayload `json:"slot"`
	Reason    string      `json:"reason,omitempty"`
	Urgency   string      `json:"urgency,omitempty"`
}

type TransitionRequest struct {
	Status string  `json:"status"`
	Notes  *string `json:"notes,omitempty"`
}

type ActionRequest struct {
	Notes *string `json:"notes,omitempty"`
}

type RescheduleRequest struct {
	Slot SlotPayload `json:"slot"`
}

type SlotRequest struct {
	Slot SlotPayload `json:"slot"`
}

type DoctorStatusRequest struct {
	Status string  `json:"status"`
	Notes  *string `json:"notes,omitempty"`
}

type AppointmentResponse struct {
	ID         uuid.UUID   `json:"id"`
	PatientID  uuid.UUID   `json:"patient_id"`
	DoctorID   uuid.UUID   `json:"doctor_id"`
	Slot       SlotPayload `json:"slot"`
	Reason     string      `json:"reason,omitempty"`
	Urgency    string      `json:"urgency"`
	Status     string      `json:"status"`
	AdminNotes *string     `json:"admin_notes,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

func toAppointmentResponse(a *scheduling.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:         a.ID,
		PatientID:  a.PatientID,
		DoctorID:   a.DoctorID,
		Slot:       fromSlot(a.Slot),
		Reason:     a.Reason,
		Urgency:    string(a.Urgency),
		Status:     string(a.Status),
		AdminNotes: a.AdminNotes,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

type TransitionResponse struct {
	Appointment AppointmentResponse `json:"appointment"`
	From        string              `json:"from"`
	To          string              `json:"to"`
}

func toTransitionResponse(r *scheduling.TransitionResult) TransitionResponse {
	return TransitionResponse{
		Appointment: toAppointmentResponse(r.Appointment),
		From:        string(r.From),
		To:          string(r.To),
	}
}

type AvailabilityResponse struct {
	DoctorID         uuid.UUID  `json:"doctor_id"`
	Status           string     `json:"status"`
	Notes            *string    `json:"notes,omitempty"`
	CurrentPatientID *uuid.UUID `json:"current_patient_id,omitempty"`
	LastUpdate       time.Time  `json:"last_update"`
}

func toAvailabilityResponse(d *scheduling.Doctor) AvailabilityResponse {
	return AvailabilityResponse{
		DoctorID:         d.ID,
		Status:           string(d.AvailabilityStatus),
		Notes:            d.StatusNotes,
		CurrentPatientID: d.CurrentPatientID,
		LastUpdate:       d.LastStatusUpdate,
	}
}

type LedgerEntryResponse struct {
	SlotPayload
	IsBooked bool `json:"is_booked"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
