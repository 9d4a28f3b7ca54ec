package commands

import (
	"context"
	stderrors "errors"

	"hotelbooking/errors"
	"hotelbooking/models"
	"hotelbooking/services/hotelapi"
)

// ReservationCommand định nghĩa interface cho các command
type ReservationCommand interface {
	Execute(ctx context.Context) error
}

// ReservationWriter các thao tác ghi của hotel API
type ReservationWriter interface {
	CreateReservation(ctx context.Context, sess hotelapi.Session, payload hotelapi.ReservationPayload, idempotencyKey string) (models.Reservation, error)
	UpdateReservation(ctx context.Context, sess hotelapi.Session, id string, payload hotelapi.ReservationPayload) (models.Reservation, error)
	UpdateReservationStatus(ctx context.Context, sess hotelapi.Session, id, status string) error
}

// CreateReservationCommand command để tạo reservation mới
type CreateReservationCommand struct {
	api            ReservationWriter
	sess           hotelapi.Session
	payload        hotelapi.ReservationPayload
	idempotencyKey string

	Result models.Reservation
}

func NewCreateReservationCommand(api ReservationWriter, sess hotelapi.Session, payload hotelapi.ReservationPayload, idempotencyKey string) *CreateReservationCommand {
	return &CreateReservationCommand{
		api:            api,
		sess:           sess,
		payload:        payload,
		idempotencyKey: idempotencyKey,
	}
}

func (c *CreateReservationCommand) Execute(ctx context.Context) error {
	res, err := c.api.CreateReservation(ctx, c.sess, c.payload, c.idempotencyKey)
	if err != nil {
		return err
	}
	c.Result = res
	return nil
}

// UpdateReservationCommand command để cập nhật reservation
type UpdateReservationCommand struct {
	api     ReservationWriter
	sess    hotelapi.Session
	id      string
	payload hotelapi.ReservationPayload

	Result models.Reservation
}

func NewUpdateReservationCommand(api ReservationWriter, sess hotelapi.Session, id string, payload hotelapi.ReservationPayload) *UpdateReservationCommand {
	return &UpdateReservationCommand{
		api:     api,
		sess:    sess,
		id:      id,
		payload: payload,
	}
}

func (c *UpdateReservationCommand) Execute(ctx context.Context) error {
	res, err := c.api.UpdateReservation(ctx, c.sess, c.id, c.payload)
	if err != nil {
		return err
	}
	c.Result = res
	return nil
}

// ChangeStatusCommand chuyển trạng thái reservation theo state pattern rồi mới gọi API
type ChangeStatusCommand struct {
	api         ReservationWriter
	sess        hotelapi.Session
	reservation *models.Reservation
	target      string
}

func NewChangeStatusCommand(api ReservationWriter, sess hotelapi.Session, reservation *models.Reservation, target string) *ChangeStatusCommand {
	return &ChangeStatusCommand{
		api:         api,
		sess:        sess,
		reservation: reservation,
		target:      target,
	}
}

func (c *ChangeStatusCommand) Execute(ctx context.Context) error {
	next := *c.reservation
	if err := models.Transition(&next, c.target); err != nil {
		return errors.NewAppError(errors.ErrCodeInvalidTransition, transitionMessage(err), err)
	}
	if err := c.api.UpdateReservationStatus(ctx, c.sess, c.reservation.ID, c.target); err != nil {
		return err
	}
	c.reservation.Status = next.Status
	return nil
}

func transitionMessage(err error) string {
	switch {
	case stderrors.Is(err, models.ErrAlreadyCompleted):
		return "Đặt phòng đã hoàn thành"
	case stderrors.Is(err, models.ErrAlreadyCancelled):
		return "Đặt phòng đã bị hủy"
	case stderrors.Is(err, models.ErrCannotCancel):
		return "Không thể hủy đặt phòng đã hoàn thành"
	case stderrors.Is(err, models.ErrCannotComplete):
		return "Không thể hoàn thành đặt phòng đã hủy"
	}
	return "Trạng thái không hợp lệ"
}
