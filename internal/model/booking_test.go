package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyTransitions(t *testing.T) {
	cases := []struct {
		name    string
		from    BookingStatus
		d       Decision
		want    BookingStatus
		wantErr bool
	}{
		{"pending approve", StatusPending, DecisionApprove, StatusApproved, false},
		{"pending reject", StatusPending, DecisionReject, StatusRejected, false},
		{"approve again is a no-op", StatusApproved, DecisionApprove, StatusApproved, false},
		{"reject again is a no-op", StatusRejected, DecisionReject, StatusRejected, false},
		{"approved cannot be rejected", StatusApproved, DecisionReject, "", true},
		{"rejected cannot be approved", StatusRejected, DecisionApprove, "", true},
		{"cancelled cannot be approved", StatusCancelled, DecisionApprove, "", true},
		{"cancelled cannot be rejected", StatusCancelled, DecisionReject, "", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.from.Apply(tc.d)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTransition)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestTerminal(t *testing.T) {
	assert.False(t, StatusPending.Terminal())
	assert.True(t, StatusApproved.Terminal())
	assert.True(t, StatusRejected.Terminal())
	assert.True(t, StatusCancelled.Terminal())
}

func TestOverlapsRange(t *testing.T) {
	at := func(h int) time.Time {
		return time.Date(2026, 9, 14, h, 0, 0, 0, time.UTC)
	}
	b := &Booking{StartTime: at(10), EndTime: at(12)}

	assert.True(t, b.OverlapsRange(at(11), at(13)), "partial overlap at the end")
	assert.True(t, b.OverlapsRange(at(9), at(11)), "partial overlap at the start")
	assert.True(t, b.OverlapsRange(at(9), at(13)), "candidate contains the booking")
	assert.True(t, b.OverlapsRange(at(10), at(12)), "identical interval")

	// Half-open intervals: touching endpoints do not overlap.
	assert.False(t, b.OverlapsRange(at(12), at(14)))
	assert.False(t, b.OverlapsRange(at(8), at(10)))
	assert.False(t, b.OverlapsRange(at(13), at(15)))
}

func TestOverlapsIsSymmetric(t *testing.T) {
	at := func(h int) time.Time {
		return time.Date(2026, 9, 14, h, 0, 0, 0, time.UTC)
	}
	a := &Booking{StartTime: at(10), EndTime: at(12)}
	b := &Booking{StartTime: at(11), EndTime: at(13)}
	assert.Equal(t, a.Overlaps(b), b.Overlaps(a))

	c := &Booking{StartTime: at(12), EndTime: at(13)}
	assert.False(t, a.Overlaps(c))
	assert.False(t, c.Overlaps(a))
}
