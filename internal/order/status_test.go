package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextStatuses(t *testing.T) {
	cases := []struct {
		status Status
		want   []Status
	}{
		{StatusPendingPayment, []Status{StatusPaid, StatusCancelled}},
		{StatusPaid, []Status{StatusProcessing, StatusCancelled}},
		{StatusProcessing, []Status{StatusShipped, StatusCancelled}},
		{StatusShipped, nil},
		{StatusDelivered, nil},
		{StatusCancelled, nil},
	}
	for _, tc := range cases {
		t.Run(string(tc.status), func(t *testing.T) {
			assert.Equal(t, tc.want, NextStatuses(tc.status))
		})
	}
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(StatusPendingPayment, StatusPaid))
	assert.True(t, CanTransition(StatusProcessing, StatusCancelled))

	// Skipping steps or moving out of a terminal status is never allowed.
	assert.False(t, CanTransition(StatusPaid, StatusDelivered))
	assert.False(t, CanTransition(StatusPendingPayment, StatusShipped))
	assert.False(t, CanTransition(StatusDelivered, StatusCancelled))
	assert.False(t, CanTransition(StatusCancelled, StatusPaid))

	// Shipped -> Delivered is a customer confirmation, not an admin move.
	assert.False(t, CanTransition(StatusShipped, StatusDelivered))
}

func TestCheckTransition(t *testing.T) {
	require.NoError(t, CheckTransition(StatusPaid, StatusProcessing))

	err := CheckTransition(StatusPaid, StatusDelivered)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	err = CheckTransition(Status("REFUNDED"), StatusPaid)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestTerminal(t *testing.T) {
	assert.True(t, StatusDelivered.Terminal())
	assert.True(t, StatusCancelled.Terminal())
	assert.True(t, StatusShipped.Terminal())
	assert.False(t, StatusProcessing.Terminal())
	assert.False(t, Status("BOGUS").Terminal())
}

func TestProgressIndex(t *testing.T) {
	for i, s := range ProgressSteps() {
		idx, ok := ProgressIndex(s)
		require.True(t, ok)
		assert.Equal(t, i, idx)
	}

	_, ok := ProgressIndex(StatusCancelled)
	assert.False(t, ok, "cancelled must stay off the linear progress bar")

	_, ok = ProgressIndex(Status("BOGUS"))
	assert.False(t, ok)
}

func TestValid(t *testing.T) {
	for _, s := range All() {
		assert.True(t, s.Valid())
	}
	assert.False(t, Status("paid").Valid(), "statuses are case sensitive")
}
