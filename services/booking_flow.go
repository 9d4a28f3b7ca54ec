package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"hotelbooking/errors"
	"hotelbooking/models"
	"hotelbooking/services/availability"
)

// FlowState trạng thái của form đặt phòng
type FlowState string

const (
	FlowIdle          FlowState = "idle"
	FlowDatesSelected FlowState = "dates_selected"
	FlowValidating    FlowState = "validating"
	FlowValid         FlowState = "valid"
	FlowInvalid       FlowState = "invalid"
	FlowSubmitting    FlowState = "submitting"
	FlowConfirmed     FlowState = "confirmed"
	FlowFailed        FlowState = "failed"
)

// Selection lựa chọn hiện tại trên form
type Selection struct {
	CheckIn  time.Time
	CheckOut time.Time
	Guests   int
	Services []models.SelectedService
}

// SubmitFunc gửi lựa chọn đã hợp lệ lên hotel API
type SubmitFunc func(ctx context.Context, sel Selection, quote availability.Quote) (models.Reservation, error)

// FlowOptions tham số tạo BookingFlow
type FlowOptions struct {
	FormID     string
	Room       models.Room
	Blocked    []models.DateRange  // các khoảng đang chặn phòng, xem availability.BlockingRanges
	Unreadable int                 // reservation active không đọc được ngày nên không có trong Blocked
	Services   []models.Service    // danh mục dịch vụ của khách sạn
	Booked     []models.ServiceRef // dịch vụ reservation đang sửa đã đặt, vẫn tính giá dù đã ngừng cung cấp
	Clock      func() time.Time
	Location   *time.Location

	// OnTransition được gọi mỗi lần đổi trạng thái, đang giữ lock nên không được gọi lại flow
	OnTransition func(from, to FlowState)
}

// BookingFlow state machine của form đặt phòng.
// Idle -> DatesSelected -> Validating -> Valid|Invalid -> Submitting -> Confirmed|Failed,
// Failed quay về DatesSelected và giữ nguyên lựa chọn.
type BookingFlow struct {
	mu sync.Mutex

	formID       string
	room         models.Room
	blocked      []models.DateRange
	unreadable   int
	catalogue    map[string]models.Service
	booked       map[string]bool
	clock        func() time.Time
	loc          *time.Location
	onTransition func(from, to FlowState)

	state       FlowState
	sel         Selection
	hasDates    bool
	failure     *errors.AppError
	conflict    *models.DateRange
	quote       *availability.Quote
	reservation *models.Reservation
}

func NewBookingFlow(opts FlowOptions) *BookingFlow {
	f := &BookingFlow{
		formID:       opts.FormID,
		room:         opts.Room,
		blocked:      opts.Blocked,
		unreadable:   opts.Unreadable,
		catalogue:    make(map[string]models.Service, len(opts.Services)),
		booked:       make(map[string]bool, len(opts.Booked)),
		clock:        opts.Clock,
		loc:          opts.Location,
		onTransition: opts.OnTransition,
		state:        FlowIdle,
		sel:          Selection{Guests: 1},
	}
	for _, s := range opts.Services {
		f.catalogue[s.ID] = s
	}
	for _, ref := range opts.Booked {
		f.booked[ref.ServiceID] = true
	}
	if f.clock == nil {
		f.clock = time.Now
	}
	if f.loc == nil {
		f.loc = time.UTC
	}
	return f
}

func (f *BookingFlow) setState(to FlowState) {
	from := f.state
	f.state = to
	if f.onTransition != nil && from != to {
		f.onTransition(from, to)
	}
}

func (f *BookingFlow) editableLocked() error {
	switch f.state {
	case FlowSubmitting:
		return errors.NewAppError(errors.ErrCodeSubmissionInFlight, "Đơn đặt phòng đang được gửi, vui lòng chờ", nil)
	case FlowConfirmed:
		return errors.NewAppError(errors.ErrCodeInvalidState, "Đơn đặt phòng đã được xác nhận", nil)
	}
	return nil
}

// SelectDates chọn ngày nhận/trả phòng và kiểm tra ngay
func (f *BookingFlow) SelectDates(checkIn, checkOut time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.editableLocked(); err != nil {
		return err
	}
	f.sel.CheckIn = availability.DateOf(checkIn)
	f.sel.CheckOut = availability.DateOf(checkOut)
	f.hasDates = true
	f.setState(FlowDatesSelected)
	f.validateLocked()
	return nil
}

// SetGuests đổi số khách, kiểm tra lại nếu đã chọn ngày
func (f *BookingFlow) SetGuests(guests int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.editableLocked(); err != nil {
		return err
	}
	f.sel.Guests = guests
	if f.hasDates {
		f.validateLocked()
	}
	return nil
}

// SetServices chọn dịch vụ theo danh mục của khách sạn
func (f *BookingFlow) SetServices(refs []models.ServiceRef) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.editableLocked(); err != nil {
		return err
	}
	selected, err := f.resolveServices(refs)
	if err != nil {
		return err
	}
	f.sel.Services = selected
	if f.hasDates {
		f.validateLocked()
	}
	return nil
}

func (f *BookingFlow) resolveServices(refs []models.ServiceRef) ([]models.SelectedService, error) {
	selected := make([]models.SelectedService, 0, len(refs))
	for _, ref := range refs {
		svc, ok := f.catalogue[ref.ServiceID]
		if !ok || (!svc.Available && !f.booked[ref.ServiceID]) {
			return nil, errors.NewAppError(errors.ErrCodeServiceInvalid,
				fmt.Sprintf("Dịch vụ %s không tồn tại hoặc đã ngừng cung cấp", ref.ServiceID), nil)
		}
		if ref.Quantity < 1 {
			return nil, errors.NewAppError(errors.ErrCodeServiceInvalid,
				fmt.Sprintf("Số lượng dịch vụ %s phải lớn hơn 0", svc.Name), nil)
		}
		selected = append(selected, models.SelectedService{Service: svc, Quantity: ref.Quantity})
	}
	return selected, nil
}

func (f *BookingFlow) validateLocked() {
	f.setState(FlowValidating)
	f.failure, f.conflict, f.quote = nil, nil, nil

	if !f.room.IsBookable() {
		f.failure = errors.NewAppError(errors.ErrCodeRoomUnavailable, "Phòng hiện không nhận đặt", nil)
		f.setState(FlowInvalid)
		return
	}

	today := availability.Today(f.clock(), f.loc)
	result := availability.ValidateRange(models.NewDateRange(f.sel.CheckIn, f.sel.CheckOut), today, f.blocked)
	if !result.IsOk() {
		f.failure = errors.GetAppError(result.Err())
		f.conflict = result.Conflict
		f.setState(FlowInvalid)
		return
	}

	if err := availability.CheckCapacity(f.sel.Guests, f.room.Capacity); err != nil {
		f.failure = errors.GetAppError(err)
		f.setState(FlowInvalid)
		return
	}

	quote, err := availability.QuoteStay(f.sel.CheckIn, f.sel.CheckOut, f.room.PricePerNight, f.sel.Services)
	if err != nil {
		f.failure = errors.GetAppError(err)
		f.setState(FlowInvalid)
		return
	}
	f.quote = &quote
	f.setState(FlowValid)
}

// Submit gửi đơn. Chỉ cho phép từ Valid, hoặc từ DatesSelected (sau lần gửi lỗi) khi kiểm tra lại hợp lệ.
// Lock được nhả trong lúc gọi API, lần Submit thứ hai trong lúc đó bị từ chối.
func (f *BookingFlow) Submit(ctx context.Context, submit SubmitFunc) (models.Reservation, error) {
	f.mu.Lock()
	switch f.state {
	case FlowSubmitting, FlowConfirmed:
		err := f.editableLocked()
		f.mu.Unlock()
		return models.Reservation{}, err
	case FlowIdle:
		f.mu.Unlock()
		return models.Reservation{}, errors.NewAppError(errors.ErrCodeInvalidState, "Vui lòng chọn ngày nhận và trả phòng", nil)
	case FlowDatesSelected:
		f.validateLocked()
	}
	if f.state != FlowValid {
		failure := f.failure
		f.mu.Unlock()
		if failure == nil {
			return models.Reservation{}, errors.NewAppError(errors.ErrCodeInvalidState, "Đơn đặt phòng chưa hợp lệ", nil)
		}
		return models.Reservation{}, failure
	}

	sel := f.sel
	sel.Services = append([]models.SelectedService(nil), f.sel.Services...)
	quote := *f.quote
	f.setState(FlowSubmitting)
	f.mu.Unlock()

	reservation, err := submit(ctx, sel, quote)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.failure = errors.NewAppError(errors.ErrCodeSubmissionFailed, "Đặt phòng không thành công, vui lòng thử lại", err)
		f.setState(FlowFailed)
		f.setState(FlowDatesSelected)
		return models.Reservation{}, f.failure
	}
	f.failure = nil
	f.reservation = &reservation
	f.setState(FlowConfirmed)
	return reservation, nil
}

// FlowSnapshot trạng thái form để hiển thị
type FlowSnapshot struct {
	FormID      string                   `json:"formId"`
	State       FlowState                `json:"state"`
	CheckIn     *time.Time               `json:"checkIn,omitempty"`
	CheckOut    *time.Time               `json:"checkOut,omitempty"`
	Guests      int                      `json:"guests"`
	Services    []models.SelectedService `json:"services"`
	CanSubmit   bool                     `json:"canSubmit"`
	ErrorCode   errors.ErrorCode         `json:"errorCode,omitempty"`
	Message     string                   `json:"message,omitempty"`
	Conflict    *models.DateRange        `json:"conflict,omitempty"`
	Quote       *availability.Quote      `json:"quote,omitempty"`
	Reservation *models.Reservation      `json:"reservation,omitempty"`

	// UnreadableReservations số reservation active bị bỏ qua khi kiểm tra trùng lịch
	UnreadableReservations int `json:"unreadableReservations,omitempty"`
}

func (f *BookingFlow) Snapshot() FlowSnapshot {
	f.mu.Lock()
	defer f.mu.Unlock()

	snap := FlowSnapshot{
		FormID:      f.formID,
		State:       f.state,
		Guests:      f.sel.Guests,
		Services:    append([]models.SelectedService(nil), f.sel.Services...),
		CanSubmit:   f.state == FlowValid || (f.state == FlowDatesSelected && f.hasDates),
		Conflict:    f.conflict,
		Reservation: f.reservation,

		UnreadableReservations: f.unreadable,
	}
	if f.hasDates {
		checkIn, checkOut := f.sel.CheckIn, f.sel.CheckOut
		snap.CheckIn, snap.CheckOut = &checkIn, &checkOut
	}
	if f.failure != nil {
		snap.ErrorCode = f.failure.Code
		snap.Message = f.failure.Message
	}
	if f.quote != nil {
		q := *f.quote
		snap.Quote = &q
	}
	return snap
}

// State trạng thái hiện tại
func (f *BookingFlow) State() FlowState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// FormID id của form, dùng làm idempotency key
func (f *BookingFlow) FormID() string {
	return f.formID
}
