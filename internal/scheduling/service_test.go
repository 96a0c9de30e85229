package scheduling_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smarthealth/scheduling/internal/config"
	redisclient "github.com/smarthealth/scheduling/internal/redis"
	"github.com/smarthealth/scheduling/internal/scheduling"
	"github.com/smarthealth/scheduling/internal/scheduling/schedulingtest"
)

func newTestService(t *testing.T) (*scheduling.Service, *schedulingtest.MemoryRepository) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	locker := redisclient.NewRedisDoctorLocker(client, 2*time.Second, 50, 2*time.Millisecond)
	repo := schedulingtest.NewMemoryRepository()
	svc := scheduling.NewService(repo, locker, nil, nil, config.Config{})
	return svc, repo
}

func futureDate(days int) string {
	return time.Now().AddDate(0, 0, days).Format("2006-01-02")
}

func seedBooking(t *testing.T, repo *schedulingtest.MemoryRepository) (scheduling.Patient, scheduling.Doctor, scheduling.Slot) {
	t.Helper()
	patient := repo.SeedPatient("Jordan Reyes", "jordan@example.com")
	doctor := repo.SeedDoctor("Priya Nair", "priya@example.com")
	slot := scheduling.Slot{Date: futureDate(7), StartTime: "09:00", EndTime: "09:30"}
	repo.SeedSlot(doctor.ID, slot)
	return patient, doctor, slot
}

func TestCreateAppointmentPendingDoesNotReserve(t *testing.T) {
	svc, repo := newTestService(t)
	patient, doctor, slot := seedBooking(t, repo)

	appt, err := svc.CreateAppointment(context.Background(), scheduling.CreateAppointmentInput{
		PatientID: patient.ID,
		DoctorID:  doctor.ID,
		Slot:      slot,
		Reason:    "checkup",
	})
	require.NoError(t, err)
	assert.Equal(t, scheduling.StatusPending, appt.Status)
	assert.Equal(t, scheduling.UrgencyNormal, appt.Urgency)

	entry, err := repo.FindSlot(context.Background(), doctor.ID, slot)
	require.NoError(t, err)
	assert.False(t, entry.IsBooked, "a pending appointment must not reserve the slot")

	events := repo.Events()
	require.Len(t, events, 1)
	assert.Equal(t, scheduling.EventAppointmentRequested, events[0].EventType)
}

func TestCreateAppointmentValidation(t *testing.T) {
	svc, repo := newTestService(t)
	patient, doctor, slot := seedBooking(t, repo)

	cases := []struct {
		name string
		in   scheduling.CreateAppointmentInput
		want error
	}{
		{
			name: "missing patient",
			in:   scheduling.CreateAppointmentInput{DoctorID: doctor.ID, Slot: slot},
			want: scheduling.ErrInvalidInput,
		},
		{
			name: "malformed date",
			in: scheduling.CreateAppointmentInput{
				PatientID: patient.ID, DoctorID: doctor.ID,
				Slot: scheduling.Slot{Date: "07/03/2026", StartTime: "09:00", EndTime: "09:30"},
			},
			want: scheduling.ErrInvalidInput,
		},
		{
			name: "end before start",
			in: scheduling.CreateAppointmentInput{
				PatientID: patient.ID, DoctorID: doctor.ID,
				Slot: scheduling.Slot{Date: futureDate(7), StartTime: "10:00", EndTime: "09:30"},
			},
			want: scheduling.ErrInvalidInput,
		},
		{
			name: "unknown urgency",
			in: scheduling.CreateAppointmentInput{
				PatientID: patient.ID, DoctorID: doctor.ID, Slot: slot,
				Urgency: scheduling.Urgency("whenever"),
			},
			want: scheduling.ErrInvalidInput,
		},
		{
			name: "past date",
			in: scheduling.CreateAppointmentInput{
				PatientID: patient.ID, DoctorID: doctor.ID,
				Slot: scheduling.Slot{Date: "2020-01-01", StartTime: "09:00", EndTime: "09:30"},
			},
			want: scheduling.ErrPastDate,
		},
		{
			name: "unknown patient",
			in: scheduling.CreateAppointmentInput{
				PatientID: uuid.New(), DoctorID: doctor.ID, Slot: slot,
			},
			want: scheduling.ErrPatientNotFound,
		},
		{
			name: "unknown doctor",
			in: scheduling.CreateAppointmentInput{
				PatientID: patient.ID, DoctorID: uuid.New(), Slot: slot,
			},
			want: scheduling.ErrDoctorNotFound,
		},
		{
			name: "slot not in ledger",
			in: scheduling.CreateAppointmentInput{
				PatientID: patient.ID, DoctorID: doctor.ID,
				Slot: scheduling.Slot{Date: futureDate(7), StartTime: "13:00", EndTime: "13:30"},
			},
			want: scheduling.ErrSlotUnavailable,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateAppointment(context.Background(), tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestCreateAppointmentOfflineDoctor(t *testing.T) {
	svc, repo := newTestService(t)
	patient, doctor, slot := seedBooking(t, repo)

	_, err := svc.SetDoctorManualStatus(context.Background(), doctor.ID, scheduling.AvailabilityOffline, nil)
	require.NoError(t, err)

	_, err = svc.CreateAppointment(context.Background(), scheduling.CreateAppointmentInput{
		PatientID: patient.ID, DoctorID: doctor.ID, Slot: slot,
	})
	assert.ErrorIs(t, err, scheduling.ErrDoctorUnavailable)
}

func TestCreateAppointmentPatientDoubleBooking(t *testing.T) {
	svc, repo := newTestService(t)
	patient, doctor, slot := seedBooking(t, repo)

	// Same patient, same time, a different doctor.
	other := repo.SeedDoctor("Marcus Webb", "marcus@example.com")
	repo.SeedSlot(other.ID, slot)

	_, err := svc.CreateAppointment(context.Background(), scheduling.CreateAppointmentInput{
		PatientID: patient.ID, DoctorID: doctor.ID, Slot: slot,
	})
	require.NoError(t, err)

	_, err = svc.CreateAppointment(context.Background(), scheduling.CreateAppointmentInput{
		PatientID: patient.ID, DoctorID: other.ID, Slot: slot,
	})
	assert.ErrorIs(t, err, scheduling.ErrDoubleBooking)
}

func TestCreateAppointmentSlotAlreadyClaimed(t *testing.T) {
	svc, repo := newTestService(t)
	patient, doctor, slot := seedBooking(t, repo)
	rival := repo.SeedPatient("Sam Okafor", "sam@example.com")

	_, err := svc.CreateAppointment(context.Background(), scheduling.CreateAppointmentInput{
		PatientID: patient.ID, DoctorID: doctor.ID, Slot: slot,
	})
	require.NoError(t, err)

	// The first request is only pending, but it already claims the slot.
	_, err = svc.CreateAppointment(context.Background(), scheduling.CreateAppointmentInput{
		PatientID: rival.ID, DoctorID: doctor.ID, Slot: slot,
	})
	assert.ErrorIs(t, err, scheduling.ErrSlotUnavailable)
}

func TestAcceptReservesSlotAndRecomputesAvailability(t *testing.T) {
	svc, repo := newTestService(t)
	patient, doctor, slot := seedBooking(t, repo)

	appt, err := svc.CreateAppointment(context.Background(), scheduling.CreateAppointmentInput{
		PatientID: patient.ID, DoctorID: doctor.ID, Slot: slot,
	})
	require.NoError(t, err)

	result, err := svc.TransitionByAction(context.Background(), appt.ID, scheduling.ActionAccept, nil)
	require.NoError(t, err)
	assert.Equal(t, scheduling.StatusPending, result.From)
	assert.Equal(t, scheduling.StatusConfirmed, result.To)
	assert.Equal(t, scheduling.StatusConfirmed, result.Appointment.Status)

	entry, err := repo.FindSlot(context.Background(), doctor.ID, slot)
	require.NoError(t, err)
	assert.True(t, entry.IsBooked)

	d, err := svc.GetDoctorAvailability(context.Background(), doctor.ID)
	require.NoError(t, err)
	assert.Equal(t, scheduling.AvailabilityBusy, d.AvailabilityStatus)
	assert.Nil(t, d.CurrentPatientID)
}

func TestAcceptRacesForOneSlot(t *testing.T) {
	svc, repo := newTestService(t)
	patient, doctor, slot := seedBooking(t, repo)

	// A no-show freed the claim, so a second patient could request the same
	// slot. Both appointments sit in rescheduled, both may try to confirm.
	first := mustCreate(t, svc, patient.ID, doctor.ID, slot)
	mustTransition(t, svc, first.ID, scheduling.StatusConfirmed)
	mustTransition(t, svc, first.ID, scheduling.StatusNoShow)
	firstR, err := svc.RescheduleAppointment(context.Background(), first.ID, slot)
	require.NoError(t, err)

	rival := repo.SeedPatient("Sam Okafor", "sam@example.com")
	second := mustCreate(t, svc, rival.ID, doctor.ID, slot)
	secondR, err := svc.TransitionAppointment(context.Background(), second.ID, scheduling.StatusConfirmed, nil)
	require.NoError(t, err)
	assert.Equal(t, scheduling.StatusConfirmed, secondR.Appointment.Status)

	// The slot is now reserved; the rescheduled appointment loses the race.
	_, err = svc.TransitionAppointment(context.Background(), firstR.Appointment.ID, scheduling.StatusConfirmed, nil)
	assert.ErrorIs(t, err, scheduling.ErrSlotUnavailable)
}

func TestStartForcesBusyWithCurrentPatient(t *testing.T) {
	svc, repo := newTestService(t)
	patient, doctor, slot := seedBooking(t, repo)

	appt := mustCreate(t, svc, patient.ID, doctor.ID, slot)
	mustTransition(t, svc, appt.ID, scheduling.StatusConfirmed)
	mustTransition(t, svc, appt.ID, scheduling.StatusInProgress)

	d, err := svc.GetDoctorAvailability(context.Background(), doctor.ID)
	require.NoError(t, err)
	assert.Equal(t, scheduling.AvailabilityBusy, d.AvailabilityStatus)
	require.NotNil(t, d.CurrentPatientID)
	assert.Equal(t, patient.ID, *d.CurrentPatientID)
}

func TestCompleteReleasesSlotAndClearsPatient(t *testing.T) {
	svc, repo := newTestService(t)
	patient, doctor, slot := seedBooking(t, repo)

	appt := mustCreate(t, svc, patient.ID, doctor.ID, slot)
	mustTransition(t, svc, appt.ID, scheduling.StatusConfirmed)
	mustTransition(t, svc, appt.ID, scheduling.StatusInProgress)
	mustTransition(t, svc, appt.ID, scheduling.StatusCompleted)

	entry, err := repo.FindSlot(context.Background(), doctor.ID, slot)
	require.NoError(t, err)
	assert.False(t, entry.IsBooked, "completion frees the slot for future booking")

	d, err := svc.GetDoctorAvailability(context.Background(), doctor.ID)
	require.NoError(t, err)
	assert.Equal(t, scheduling.AvailabilityAvailable, d.AvailabilityStatus)
	assert.Nil(t, d.CurrentPatientID)
}

func TestAvailabilityBusyThenBookedThenBack(t *testing.T) {
	svc, repo := newTestService(t)
	patient, doctor, slot := seedBooking(t, repo)
	second := repo.SeedPatient("Sam Okafor", "sam@example.com")
	slot2 := scheduling.Slot{Date: futureDate(7), StartTime: "10:00", EndTime: "10:30"}
	repo.SeedSlot(doctor.ID, slot2)

	a1 := mustCreate(t, svc, patient.ID, doctor.ID, slot)
	mustTransition(t, svc, a1.ID, scheduling.StatusConfirmed)
	a2 := mustCreate(t, svc, second.ID, doctor.ID, slot2)
	mustTransition(t, svc, a2.ID, scheduling.StatusConfirmed)

	d, err := svc.GetDoctorAvailability(context.Background(), doctor.ID)
	require.NoError(t, err)
	assert.Equal(t, scheduling.AvailabilityBooked, d.AvailabilityStatus)

	mustTransition(t, svc, a2.ID, scheduling.StatusCancelled)

	d, err = svc.GetDoctorAvailability(context.Background(), doctor.ID)
	require.NoError(t, err)
	assert.Equal(t, scheduling.AvailabilityBusy, d.AvailabilityStatus)

	entry, err := repo.FindSlot(context.Background(), doctor.ID, slot2)
	require.NoError(t, err)
	assert.False(t, entry.IsBooked)
}

func TestInvalidTransitionsLeaveStateUntouched(t *testing.T) {
	svc, repo := newTestService(t)
	patient, doctor, slot := seedBooking(t, repo)

	appt := mustCreate(t, svc, patient.ID, doctor.ID, slot)

	_, err := svc.TransitionAppointment(context.Background(), appt.ID, scheduling.StatusCompleted, nil)
	assert.ErrorIs(t, err, scheduling.ErrInvalidTransition)

	mustTransition(t, svc, appt.ID, scheduling.StatusConfirmed)

	// Replaying the same transition is rejected, not absorbed.
	_, err = svc.TransitionAppointment(context.Background(), appt.ID, scheduling.StatusConfirmed, nil)
	assert.ErrorIs(t, err, scheduling.ErrInvalidTransition)

	got, err := svc.GetAppointment(context.Background(), appt.ID)
	require.NoError(t, err)
	assert.Equal(t, scheduling.StatusConfirmed, got.Status)

	entry, err := repo.FindSlot(context.Background(), doctor.ID, slot)
	require.NoError(t, err)
	assert.True(t, entry.IsBooked)
}

func TestTransitionUnknownStatusAndAction(t *testing.T) {
	svc, repo := newTestService(t)
	patient, doctor, slot := seedBooking(t, repo)
	appt := mustCreate(t, svc, patient.ID, doctor.ID, slot)

	_, err := svc.TransitionAppointment(context.Background(), appt.ID, scheduling.Status("archived"), nil)
	assert.ErrorIs(t, err, scheduling.ErrInvalidInput)

	_, err = svc.TransitionByAction(context.Background(), appt.ID, scheduling.Action("snooze"), nil)
	assert.ErrorIs(t, err, scheduling.ErrInvalidInput)

	_, err = svc.TransitionAppointment(context.Background(), uuid.New(), scheduling.StatusConfirmed, nil)
	assert.ErrorIs(t, err, scheduling.ErrAppointmentNotFound)
}

func TestCancelledRescheduledDoesNotUnbookRivalSlot(t *testing.T) {
	svc, repo := newTestService(t)
	patient, doctor, slot := seedBooking(t, repo)
	rival := repo.SeedPatient("Sam Okafor", "sam@example.com")

	// first ends up rescheduled on the slot, rival confirms it.
	first := mustCreate(t, svc, patient.ID, doctor.ID, slot)
	mustTransition(t, svc, first.ID, scheduling.StatusConfirmed)
	mustTransition(t, svc, first.ID, scheduling.StatusNoShow)
	_, err := svc.RescheduleAppointment(context.Background(), first.ID, slot)
	require.NoError(t, err)

	second := mustCreate(t, svc, rival.ID, doctor.ID, slot)
	mustTransition(t, svc, second.ID, scheduling.StatusConfirmed)

	// Cancelling the rescheduled appointment must not release the rival's
	// reservation: it never held one.
	mustTransition(t, svc, first.ID, scheduling.StatusCancelled)

	entry, err := repo.FindSlot(context.Background(), doctor.ID, slot)
	require.NoError(t, err)
	assert.True(t, entry.IsBooked)
}

func TestRescheduleFlow(t *testing.T) {
	svc, repo := newTestService(t)
	patient, doctor, slot := seedBooking(t, repo)
	newSlot := scheduling.Slot{Date: futureDate(8), StartTime: "11:00", EndTime: "11:30"}
	repo.SeedSlot(doctor.ID, newSlot)

	appt := mustCreate(t, svc, patient.ID, doctor.ID, slot)

	result, err := svc.RescheduleAppointment(context.Background(), appt.ID, newSlot)
	require.NoError(t, err)
	assert.Equal(t, scheduling.StatusRescheduled, result.Appointment.Status)
	assert.Equal(t, newSlot, result.Appointment.Slot)

	// Confirming afterwards reserves the new slot, not the old one.
	mustTransition(t, svc, appt.ID, scheduling.StatusConfirmed)

	entry, err := repo.FindSlot(context.Background(), doctor.ID, newSlot)
	require.NoError(t, err)
	assert.True(t, entry.IsBooked)
	old, err := repo.FindSlot(context.Background(), doctor.ID, slot)
	require.NoError(t, err)
	assert.False(t, old.IsBooked)
}

func TestRescheduleConfirmedReleasesOldSlot(t *testing.T) {
	svc, repo := newTestService(t)
	patient, doctor, slot := seedBooking(t, repo)

	appt := mustCreate(t, svc, patient.ID, doctor.ID, slot)
	mustTransition(t, svc, appt.ID, scheduling.StatusConfirmed)

	// confirmed has no edge into rescheduled.
	newSlot := scheduling.Slot{Date: futureDate(8), StartTime: "11:00", EndTime: "11:30"}
	repo.SeedSlot(doctor.ID, newSlot)
	_, err := svc.RescheduleAppointment(context.Background(), appt.ID, newSlot)
	assert.ErrorIs(t, err, scheduling.ErrInvalidTransition)
}

func TestRescheduleRejectsClaimedTarget(t *testing.T) {
	svc, repo := newTestService(t)
	patient, doctor, slot := seedBooking(t, repo)
	rival := repo.SeedPatient("Sam Okafor", "sam@example.com")
	slot2 := scheduling.Slot{Date: futureDate(7), StartTime: "10:00", EndTime: "10:30"}
	repo.SeedSlot(doctor.ID, slot2)

	mine := mustCreate(t, svc, patient.ID, doctor.ID, slot)
	_ = mustCreate(t, svc, rival.ID, doctor.ID, slot2)

	_, err := svc.RescheduleAppointment(context.Background(), mine.ID, slot2)
	assert.ErrorIs(t, err, scheduling.ErrSlotUnavailable)

	// Rescheduling onto its own slot is not a conflict.
	_, err = svc.RescheduleAppointment(context.Background(), mine.ID, slot)
	assert.NoError(t, err)
}

func TestOfflineIsStickyAcrossTransitions(t *testing.T) {
	svc, repo := newTestService(t)
	patient, doctor, slot := seedBooking(t, repo)

	appt := mustCreate(t, svc, patient.ID, doctor.ID, slot)
	mustTransition(t, svc, appt.ID, scheduling.StatusConfirmed)

	_, err := svc.SetDoctorManualStatus(context.Background(), doctor.ID, scheduling.AvailabilityOffline, nil)
	require.NoError(t, err)

	// Appointment churn does not claw the doctor back from offline.
	mustTransition(t, svc, appt.ID, scheduling.StatusCancelled)

	d, err := svc.GetDoctorAvailability(context.Background(), doctor.ID)
	require.NoError(t, err)
	assert.Equal(t, scheduling.AvailabilityOffline, d.AvailabilityStatus)
}

func TestReactivationRecomputesFromConfirmedCount(t *testing.T) {
	svc, repo := newTestService(t)
	patient, doctor, slot := seedBooking(t, repo)

	appt := mustCreate(t, svc, patient.ID, doctor.ID, slot)
	mustTransition(t, svc, appt.ID, scheduling.StatusConfirmed)

	_, err := svc.SetDoctorManualStatus(context.Background(), doctor.ID, scheduling.AvailabilityOffline, nil)
	require.NoError(t, err)

	// The requested value is a reactivation signal, not the stored truth:
	// one confirmed appointment means busy.
	d, err := svc.SetDoctorManualStatus(context.Background(), doctor.ID, scheduling.AvailabilityAvailable, nil)
	require.NoError(t, err)
	assert.Equal(t, scheduling.AvailabilityBusy, d.AvailabilityStatus)
}

func TestSetDoctorManualStatusValidation(t *testing.T) {
	svc, repo := newTestService(t)
	doctor := repo.SeedDoctor("Priya Nair", "priya@example.com")

	_, err := svc.SetDoctorManualStatus(context.Background(), doctor.ID, scheduling.AvailabilityStatus("vacation"), nil)
	assert.ErrorIs(t, err, scheduling.ErrInvalidInput)

	_, err = svc.SetDoctorManualStatus(context.Background(), uuid.New(), scheduling.AvailabilityOffline, nil)
	assert.ErrorIs(t, err, scheduling.ErrDoctorNotFound)
}

func TestSlotLedgerManagement(t *testing.T) {
	svc, repo := newTestService(t)
	patient, doctor, slot := seedBooking(t, repo)

	extra := scheduling.Slot{Date: futureDate(9), StartTime: "14:00", EndTime: "14:30"}
	require.NoError(t, svc.AddDoctorSlot(context.Background(), doctor.ID, extra))
	assert.ErrorIs(t, svc.AddDoctorSlot(context.Background(), doctor.ID, extra), scheduling.ErrSlotExists)

	entries, err := svc.ListDoctorSlots(context.Background(), doctor.ID)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	appt := mustCreate(t, svc, patient.ID, doctor.ID, slot)
	mustTransition(t, svc, appt.ID, scheduling.StatusConfirmed)

	// Booked entries cannot be removed out from under the reservation.
	assert.ErrorIs(t, svc.RemoveDoctorSlot(context.Background(), doctor.ID, slot), scheduling.ErrSlotNotFound)
	require.NoError(t, svc.RemoveDoctorSlot(context.Background(), doctor.ID, extra))

	entries, err = svc.ListDoctorSlots(context.Background(), doctor.ID)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestConcurrentCreatesOneSlotOneWinner(t *testing.T) {
	svc, repo := newTestService(t)
	_, doctor, slot := seedBooking(t, repo)

	const n = 8
	patients := make([]uuid.UUID, n)
	for i := range patients {
		patients[i] = repo.SeedPatient("Patient", "p@example.com").ID
	}

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		wins   int
		losses int
	)
	start := make(chan struct{})
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(patientID uuid.UUID) {
			defer wg.Done()
			<-start
			_, err := svc.CreateAppointment(context.Background(), scheduling.CreateAppointmentInput{
				PatientID: patientID, DoctorID: doctor.ID, Slot: slot,
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				wins++
			case assert.ErrorIs(t, err, scheduling.ErrSlotUnavailable):
				losses++
			}
		}(patients[i])
	}
	close(start)
	wg.Wait()

	assert.Equal(t, 1, wins, "exactly one request may claim the slot")
	assert.Equal(t, n-1, losses)
}

func TestListAppointmentsPaging(t *testing.T) {
	svc, repo := newTestService(t)
	patient, doctor, _ := seedBooking(t, repo)

	for i := 0; i < 5; i++ {
		slot := scheduling.Slot{Date: futureDate(10 + i), StartTime: "09:00", EndTime: "09:30"}
		repo.SeedSlot(doctor.ID, slot)
		mustCreate(t, svc, patient.ID, doctor.ID, slot)
	}

	all, err := svc.ListAppointmentsByPatient(context.Background(), patient.ID, 0, 0)
	require.NoError(t, err)
	assert.Len(t, all, 5)

	page, err := svc.ListAppointmentsByDoctor(context.Background(), doctor.ID, 2, 0)
	require.NoError(t, err)
	assert.Len(t, page, 2)

	rest, err := svc.ListAppointmentsByDoctor(context.Background(), doctor.ID, 100, 4)
	require.NoError(t, err)
	assert.Len(t, rest, 1)
}

// Helpers

func mustCreate(t *testing.T, svc *scheduling.Service, patientID, doctorID uuid.UUID, slot scheduling.Slot) *scheduling.Appointment {
	t.Helper()
	appt, err := svc.CreateAppointment(context.Background(), scheduling.CreateAppointmentInput{
		PatientID: patientID, DoctorID: doctorID, Slot: slot, Reason: "checkup",
	})
	require.NoError(t, err)
	return appt
}

func mustTransition(t *testing.T, svc *scheduling.Service, id uuid.UUID, target scheduling.Status) *scheduling.TransitionResult {
	t.Helper()
	result, err := svc.TransitionAppointment(context.Background(), id, target, nil)
	require.NoError(t, err)
	return result
}
