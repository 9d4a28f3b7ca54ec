package models

import "errors"

var (
	ErrAlreadyCompleted  = errors.New("reservation already completed")
	ErrAlreadyCancelled  = errors.New("reservation already cancelled")
	ErrCannotCancel      = errors.New("cannot cancel completed reservation")
	ErrCannotComplete    = errors.New("cannot complete cancelled reservation")
	ErrUnknownTransition = errors.New("unknown reservation status")
)

// ReservationState định nghĩa interface cho các trạng thái reservation
type ReservationState interface {
	Complete(r *Reservation) error
	Cancel(r *Reservation) error
}

// ActiveState reservation đang giữ phòng, có thể hoàn thành hoặc hủy
type ActiveState struct{}

func (s *ActiveState) Complete(r *Reservation) error {
	r.Status = ReservationStatusCompleted
	return nil
}

func (s *ActiveState) Cancel(r *Reservation) error {
	r.Status = ReservationStatusCancelled
	return nil
}

// CompletedState trạng thái cuối
type CompletedState struct{}

func (s *CompletedState) Complete(r *Reservation) error {
	return ErrAlreadyCompleted
}

func (s *CompletedState) Cancel(r *Reservation) error {
	return ErrCannotCancel
}

// CancelledState trạng thái cuối
type CancelledState struct{}

func (s *CancelledState) Complete(r *Reservation) error {
	return ErrCannotComplete
}

func (s *CancelledState) Cancel(r *Reservation) error {
	return ErrAlreadyCancelled
}

// GetReservationState trả về state tương ứng với status
func GetReservationState(status string) ReservationState {
	switch status {
	case ReservationStatusCompleted:
		return &CompletedState{}
	case ReservationStatusCancelled:
		return &CancelledState{}
	default:
		return &ActiveState{}
	}
}

// Transition chuyển reservation sang trạng thái target theo state hiện tại
func Transition(r *Reservation, target string) error {
	state := GetReservationState(r.Status)
	switch target {
	case ReservationStatusCompleted:
		return state.Complete(r)
	case ReservationStatusCancelled:
		return state.Cancel(r)
	default:
		return ErrUnknownTransition
	}
}
