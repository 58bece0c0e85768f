package domain

import "testing"

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	cases := []struct {
		from, to OrderStatus
		want     bool
	}{
		{StatusOpen, StatusInProgress, true},
		{StatusOpen, StatusCancelled, true},
		{StatusOpen, StatusCompleted, false},
		{StatusInProgress, StatusCompleted, true},
		{StatusInProgress, StatusCancelled, true},
		{StatusInProgress, StatusOpen, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCompleted, StatusOpen, false},
		{StatusCancelled, StatusInProgress, false},
		// No-op transitions are always allowed.
		{StatusOpen, StatusOpen, true},
		{StatusCompleted, StatusCompleted, true},
	}

	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.want {
			t.Errorf("%s -> %s: got %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}
