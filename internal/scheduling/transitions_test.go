package scheduling

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allStatuses = []Status{
	StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted,
	StatusCancelled, StatusRejected, StatusNoShow, StatusRescheduled,
}

func TestCanTransitionExhaustive(t *testing.T) {
	allowed := map[Status]map[Status]bool{
		StatusPending:     {StatusConfirmed: true, StatusCancelled: true, StatusRejected: true, StatusRescheduled: true},
		StatusConfirmed:   {StatusInProgress: true, StatusCancelled: true, StatusNoShow: true},
		StatusInProgress:  {StatusCompleted: true, StatusCancelled: true},
		StatusNoShow:      {StatusRescheduled: true},
		StatusRescheduled: {StatusConfirmed: true, StatusCancelled: true},
	}

	for _, from := range allStatuses {
		for _, to := range allStatuses {
			want := allowed[from][to]
			assert.Equal(t, want, CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestCanTransitionRejectsSelf(t *testing.T) {
	for _, s := range allStatuses {
		assert.False(t, CanTransition(s, s), "self transition %s", s)
	}
}

func TestTerminalStatusesHaveNoEdges(t *testing.T) {
	for _, from := range []Status{StatusCompleted, StatusCancelled, StatusRejected} {
		require.True(t, from.Terminal())
		for _, to := range allStatuses {
			assert.False(t, CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestValidateTransition(t *testing.T) {
	require.NoError(t, ValidateTransition(StatusPending, StatusConfirmed))

	err := ValidateTransition(StatusPending, StatusCompleted)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	var ite *InvalidTransitionError
	require.True(t, errors.As(err, &ite))
	assert.Equal(t, StatusPending, ite.From)
	assert.Equal(t, StatusCompleted, ite.To)
}

func TestTargetForAction(t *testing.T) {
	cases := map[Action]Status{
		ActionAccept:   StatusConfirmed,
		ActionReject:   StatusRejected,
		ActionCancel:   StatusCancelled,
		ActionComplete: StatusCompleted,
		ActionStart:    StatusInProgress,
	}
	for action, want := range cases {
		got, ok := TargetForAction(action)
		require.True(t, ok, "action %s", action)
		assert.Equal(t, want, got)
	}

	_, ok := TargetForAction(Action("snooze"))
	assert.False(t, ok)
}

func TestSlotReservationPolicy(t *testing.T) {
	for _, s := range allStatuses {
		assert.Equal(t, s == StatusConfirmed, reservesSlot(s), "reservesSlot(%s)", s)
	}

	releasing := map[Status]bool{
		StatusCancelled: true, StatusRejected: true, StatusNoShow: true, StatusCompleted: true,
	}
	for _, s := range allStatuses {
		assert.Equal(t, releasing[s], releasesSlot(s), "releasesSlot(%s)", s)
	}

	holding := map[Status]bool{StatusConfirmed: true, StatusInProgress: true}
	for _, s := range allStatuses {
		assert.Equal(t, holding[s], holdsReservation(s), "holdsReservation(%s)", s)
	}
}

func TestStatusActive(t *testing.T) {
	active := map[Status]bool{StatusPending: true, StatusConfirmed: true, StatusInProgress: true}
	for _, s := range allStatuses {
		assert.Equal(t, active[s], s.Active(), "Active(%s)", s)
	}
}
