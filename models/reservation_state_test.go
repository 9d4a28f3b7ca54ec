package models

import (
	"errors"
	"testing"
)

func TestTransitionFromActive(t *testing.T) {
	for _, target := range []string{ReservationStatusCompleted, ReservationStatusCancelled} {
		r := &Reservation{Status: ReservationStatusActive}
		if err := Transition(r, target); err != nil {
			t.Fatalf("active -> %s: unexpected error %v", target, err)
		}
		if r.Status != target {
			t.Fatalf("status = %s, want %s", r.Status, target)
		}
	}
}

func TestTransitionFromTerminalStates(t *testing.T) {
	cases := []struct {
		from, to string
		want     error
	}{
		{ReservationStatusCompleted, ReservationStatusCompleted, ErrAlreadyCompleted},
		{ReservationStatusCompleted, ReservationStatusCancelled, ErrCannotCancel},
		{ReservationStatusCancelled, ReservationStatusCompleted, ErrCannotComplete},
		{ReservationStatusCancelled, ReservationStatusCancelled, ErrAlreadyCancelled},
		{ReservationStatusActive, ReservationStatusActive, ErrUnknownTransition},
		{ReservationStatusActive, "pending", ErrUnknownTransition},
	}
	for _, tc := range cases {
		r := &Reservation{Status: tc.from}
		if err := Transition(r, tc.to); !errors.Is(err, tc.want) {
			t.Fatalf("%s -> %s: got %v, want %v", tc.from, tc.to, err, tc.want)
		}
		if r.Status != tc.from {
			t.Fatalf("%s -> %s: status changed to %s", tc.from, tc.to, r.Status)
		}
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range []string{"active", "completed", "cancelled"} {
		if !ValidStatus(s) {
			t.Fatalf("%s should be valid", s)
		}
	}
	if ValidStatus("pending") {
		t.Fatalf("pending should be invalid")
	}
}
