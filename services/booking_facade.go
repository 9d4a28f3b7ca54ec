package services

import (
	"context"
	"time"

	"hotelbooking/builders"
	"hotelbooking/commands"
	"hotelbooking/constants"
	"hotelbooking/errors"
	"hotelbooking/models"
	"hotelbooking/services/availability"
	"hotelbooking/services/hotelapi"
	"hotelbooking/services/logger"
	"hotelbooking/services/notification"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"gorm.io/datatypes"
)

// HotelAPI các thao tác với hotel API mà facade cần
type HotelAPI interface {
	commands.ReservationWriter
	GetRoom(ctx context.Context, sess hotelapi.Session, roomID string) (models.Room, error)
	ListHotelRooms(ctx context.Context, sess hotelapi.Session, hotelID string) ([]models.Room, error)
	ListRoomReservations(ctx context.Context, sess hotelapi.Session, roomID string) ([]models.Reservation, error)
	ListHotelReservations(ctx context.Context, sess hotelapi.Session, hotelID string) ([]models.Reservation, error)
	GetReservation(ctx context.Context, sess hotelapi.Session, id string) (models.Reservation, error)
	ListMyReservations(ctx context.Context, sess hotelapi.Session) ([]models.Reservation, error)
	ListHotels(ctx context.Context, sess hotelapi.Session) ([]models.Hotel, error)
	GetHotel(ctx context.Context, sess hotelapi.Session, hotelID string) (models.Hotel, error)
	ListHotelServices(ctx context.Context, sess hotelapi.Session, hotelID string) ([]models.Service, error)
	GetInvoice(ctx context.Context, sess hotelapi.Session, id string) (models.Invoice, error)
}

// BookingFacade gom hotel API, engine availability, cache, nhật ký và thông báo
type BookingFacade struct {
	api       HotelAPI
	rdb       *redis.Client
	locker    SubmitLocker
	journal   Journal
	notifier  notification.Service
	publisher notification.Publisher
	logger    logger.Logger
	loc       *time.Location
	clock     func() time.Time
}

type BookingFacadeOptions struct {
	API       HotelAPI
	Redis     *redis.Client
	Locker    SubmitLocker
	LockTTL   time.Duration // TTL của RedisLocker khi Locker nil, xem LockTTLFor
	Journal   Journal
	Notifier  notification.Service
	Publisher notification.Publisher
	Logger    logger.Logger
	Location  *time.Location
	Clock     func() time.Time
}

// NewBookingFacade tạo instance mới của BookingFacade
func NewBookingFacade(opts BookingFacadeOptions) *BookingFacade {
	f := &BookingFacade{
		api:       opts.API,
		rdb:       opts.Redis,
		locker:    opts.Locker,
		journal:   opts.Journal,
		notifier:  opts.Notifier,
		publisher: opts.Publisher,
		logger:    opts.Logger,
		loc:       opts.Location,
		clock:     opts.Clock,
	}
	if f.logger == nil {
		f.logger = logger.Discard
	}
	if f.locker == nil {
		f.locker = NewSubmitLocker(opts.Redis, opts.LockTTL)
	}
	if f.journal == nil {
		f.journal = NewSubmissionJournal(nil, f.logger)
	}
	if f.loc == nil {
		f.loc = time.UTC
	}
	if f.clock == nil {
		f.clock = time.Now
	}
	return f
}

// Location múi giờ của khách sạn
func (f *BookingFacade) Location() *time.Location {
	return f.loc
}

// Today ngày hôm nay theo múi giờ khách sạn
func (f *BookingFacade) Today() time.Time {
	return availability.Today(f.clock(), f.loc)
}

// BookingInput dữ liệu form đặt phòng
type BookingInput struct {
	FormID   string
	RoomID   string
	CheckIn  time.Time
	CheckOut time.Time
	Guests   int
	Services []models.ServiceRef
}

// EditInput các trường được sửa, nil là giữ nguyên
type EditInput struct {
	CheckIn  *time.Time
	CheckOut *time.Time
	Guests   *int
	Services []models.ServiceRef // nil là giữ nguyên
}

// upstreamError chuyển lỗi hotel API thành AppError
func upstreamError(err error, notFound string) error {
	if err == nil {
		return nil
	}
	if errors.IsAppError(err) {
		return err
	}
	if hotelapi.IsNotFound(err) {
		return errors.NewAppError(errors.ErrCodeNotFound, notFound, err)
	}
	return errors.NewAppError(errors.ErrCodeUpstream, "Không thể kết nối tới hệ thống khách sạn", err)
}

func canManage(sess hotelapi.Session) bool {
	return sess.Role == constants.RoleAdmin || sess.Role == constants.RoleStaff
}

func (f *BookingFacade) checkOwner(sess hotelapi.Session, res models.Reservation) error {
	if canManage(sess) || (sess.UserID != "" && sess.UserID == res.UserID) {
		return nil
	}
	return errors.NewAppError(errors.ErrCodeForbidden, "Không có quyền với đặt phòng này", nil)
}

// LoadRoom lấy phòng, cache theo rooms:<id>
func (f *BookingFacade) LoadRoom(ctx context.Context, sess hotelapi.Session, roomID string) (models.Room, error) {
	key := constants.CacheKeyRoom + roomID
	var room models.Room
	found, err := GetFromRedis(ctx, f.rdb, key, &room)
	if err != nil {
		f.logger.Warn("cache %s: %v", key, err)
	}
	if found {
		return room, nil
	}

	room, err = f.api.GetRoom(ctx, sess, roomID)
	if err != nil {
		return models.Room{}, upstreamError(err, "Không tìm thấy phòng")
	}
	if bad := availability.MalformedRanges(room.NonAvailability); len(bad) > 0 {
		f.logger.Warn("%s room=%s ranges=%v", errors.ErrCodeMalformedRange, room.ID, bad)
	}
	if err := SetToRedis(ctx, f.rdb, key, room, constants.RoomCacheTTL); err != nil {
		f.logger.Warn("cache %s: %v", key, err)
	}
	return room, nil
}

// LoadServices danh mục dịch vụ của khách sạn, cache theo services:hotel:<id>
func (f *BookingFacade) LoadServices(ctx context.Context, sess hotelapi.Session, hotelID string) ([]models.Service, error) {
	key := constants.CacheKeyHotelServices + hotelID
	var services []models.Service
	found, err := GetFromRedis(ctx, f.rdb, key, &services)
	if err != nil {
		f.logger.Warn("cache %s: %v", key, err)
	}
	if found {
		return services, nil
	}

	services, err = f.api.ListHotelServices(ctx, sess, hotelID)
	if err != nil {
		return nil, upstreamError(err, "Không tìm thấy khách sạn")
	}
	if err := SetToRedis(ctx, f.rdb, key, services, constants.ServicesCacheTTL); err != nil {
		f.logger.Warn("cache %s: %v", key, err)
	}
	return services, nil
}

// ActiveReservations các reservation active của phòng có ngày đọc được
func (f *BookingFacade) ActiveReservations(ctx context.Context, sess hotelapi.Session, roomID string) ([]models.Reservation, error) {
	active, _, err := f.activeReservations(ctx, sess, roomID)
	return active, err
}

// activeReservations trả thêm số reservation active không đọc được ngày
func (f *BookingFacade) activeReservations(ctx context.Context, sess hotelapi.Session, roomID string) ([]models.Reservation, int, error) {
	all, err := f.api.ListRoomReservations(ctx, sess, roomID)
	if err != nil {
		return nil, 0, upstreamError(err, "Không tìm thấy phòng")
	}
	active := make([]models.Reservation, 0, len(all))
	unreadable := 0
	for _, r := range all {
		if !r.IsActive() {
			continue
		}
		if r.DatesUnreadable {
			unreadable++
			continue
		}
		active = append(active, r)
	}
	if unreadable > 0 {
		f.logger.Error("%s room=%s: %d reservation active không đọc được ngày, lịch phòng có thể thiếu khoảng bị giữ",
			errors.ErrCodeMalformedRange, roomID, unreadable)
	}
	return active, unreadable, nil
}

// newFlow excludeID và booked dùng khi sửa reservation, tạo mới thì để trống
func (f *BookingFacade) newFlow(ctx context.Context, sess hotelapi.Session, formID string, room models.Room, excludeID string, booked []models.ServiceRef) (*BookingFlow, error) {
	services, err := f.LoadServices(ctx, sess, room.HotelID)
	if err != nil {
		return nil, err
	}
	reservations, unreadable, err := f.activeReservations(ctx, sess, room.ID)
	if err != nil {
		return nil, err
	}
	return NewBookingFlow(FlowOptions{
		FormID:     formID,
		Room:       room,
		Blocked:    availability.BlockingRanges(room, reservations, excludeID),
		Unreadable: unreadable,
		Services:   services,
		Booked:     booked,
		Clock:      f.clock,
		Location:   f.loc,
		OnTransition: func(from, to FlowState) {
			f.logger.Debug("form=%s %s -> %s", formID, from, to)
		},
	}), nil
}

func (f *BookingFacade) prepare(ctx context.Context, sess hotelapi.Session, in BookingInput) (*BookingFlow, models.Room, error) {
	room, err := f.LoadRoom(ctx, sess, in.RoomID)
	if err != nil {
		return nil, models.Room{}, err
	}
	flow, err := f.newFlow(ctx, sess, in.FormID, room, "", nil)
	if err != nil {
		return nil, models.Room{}, err
	}
	if err := applySelection(flow, in.CheckIn, in.CheckOut, in.Guests, in.Services); err != nil {
		return nil, models.Room{}, err
	}
	return flow, room, nil
}

// applySelection điền lựa chọn vào flow, ngày chọn sau cùng để chỉ kiểm tra một lần
func applySelection(flow *BookingFlow, checkIn, checkOut time.Time, guests int, services []models.ServiceRef) error {
	if guests == 0 {
		guests = 1
	}
	if err := flow.SetGuests(guests); err != nil {
		return err
	}
	if err := flow.SetServices(services); err != nil {
		return err
	}
	return flow.SelectDates(checkIn, checkOut)
}

// Validate chạy kiểm tra khoảng ngày, sức chứa và báo giá cho form
func (f *BookingFacade) Validate(ctx context.Context, sess hotelapi.Session, in BookingInput) (FlowSnapshot, error) {
	flow, _, err := f.prepare(ctx, sess, in)
	if err != nil {
		return FlowSnapshot{}, err
	}
	f.rememberDraft(ctx, sess, in, "")
	return flow.Snapshot(), nil
}

// Quote báo giá, trả lỗi validate nếu lựa chọn chưa hợp lệ
func (f *BookingFacade) Quote(ctx context.Context, sess hotelapi.Session, in BookingInput) (availability.Quote, error) {
	snap, err := f.Validate(ctx, sess, in)
	if err != nil {
		return availability.Quote{}, err
	}
	if snap.State != FlowValid || snap.Quote == nil {
		return availability.Quote{}, errors.NewAppError(snap.ErrorCode, snap.Message, nil)
	}
	return *snap.Quote, nil
}

// Submit tạo reservation. Mỗi form id chỉ có một lần gửi đang chạy.
func (f *BookingFacade) Submit(ctx context.Context, sess hotelapi.Session, in BookingInput) (FlowSnapshot, error) {
	if sess.Anonymous() {
		return FlowSnapshot{}, errors.NewAppError(errors.ErrCodeUnauthorized, "Vui lòng đăng nhập để đặt phòng", errors.ErrUnauthorized)
	}
	if in.FormID == "" {
		in.FormID = uuid.NewString()
	}

	release, ok, err := f.locker.Acquire(ctx, in.FormID)
	if err != nil {
		return FlowSnapshot{}, errors.NewAppError(errors.ErrCodeCacheError, "Không thể khóa form đặt phòng", err)
	}
	if !ok {
		return FlowSnapshot{}, errors.NewAppError(errors.ErrCodeSubmissionInFlight, "Đơn đặt phòng đang được gửi, vui lòng chờ", nil)
	}
	defer release()
	callCtx, cancel := lockedContext(ctx, f.locker.TTL())
	defer cancel()

	flow, room, err := f.prepare(callCtx, sess, in)
	if err != nil {
		return FlowSnapshot{}, err
	}

	entry := &models.SubmissionLog{
		FormID:    in.FormID,
		SessionID: sess.ID,
		UserID:    sess.UserID,
		Action:    "create",
		HotelID:   room.HotelID,
		RoomID:    room.ID,
	}

	reservation, err := flow.Submit(callCtx, func(ctx context.Context, sel Selection, quote availability.Quote) (models.Reservation, error) {
		fillEntry(entry, sel, quote)
		payload, err := builders.NewReservationBuilder().
			WithUser(sess.UserID).
			WithHotel(room.HotelID).
			WithRoom(room.ID).
			WithStay(sel.CheckIn, sel.CheckOut).
			WithGuests(sel.Guests).
			WithServices(sel.Services).
			Build()
		if err != nil {
			return models.Reservation{}, err
		}
		cmd := commands.NewCreateReservationCommand(f.api, sess, payload, in.FormID)
		if err := cmd.Execute(ctx); err != nil {
			return models.Reservation{}, err
		}
		return cmd.Result, nil
	})
	snap := flow.Snapshot()

	if err != nil {
		if snap.State == FlowInvalid || !errors.HasCode(err, errors.ErrCodeSubmissionFailed) {
			entry.Outcome = models.SubmissionRejected
			fillEntryFromSnapshot(entry, snap)
		} else {
			entry.Outcome = models.SubmissionFailed
			f.notify(sess.ID, notification.NewMessageBuilder("reservation").Form(in.FormID).Failure(snap.Message).Build())
		}
		entry.Error = err.Error()
		f.record(ctx, entry)
		f.rememberDraft(ctx, sess, in, snap.Message)
		return snap, err
	}

	entry.Outcome = models.SubmissionConfirmed
	entry.ReservationID = reservation.ID
	f.record(ctx, entry)
	f.notify(sess.ID, notification.NewMessageBuilder("reservation").Form(in.FormID).Reservation(reservation.ID).
		Success("Đặt phòng thành công").Build())
	f.publishConfirmed(ctx, in.FormID, sess, room, snap)
	if err := ClearDraft(ctx, f.rdb, sess.ID, room.ID); err != nil {
		f.logger.Warn("clear draft: %v", err)
	}
	f.invalidateRoom(ctx, room.ID)
	return snap, nil
}

// GetReservation lấy reservation, user thường chỉ xem được của mình
func (f *BookingFacade) GetReservation(ctx context.Context, sess hotelapi.Session, id string) (models.Reservation, error) {
	res, err := f.api.GetReservation(ctx, sess, id)
	if err != nil {
		return models.Reservation{}, upstreamError(err, "Không tìm thấy đặt phòng")
	}
	if err := f.checkOwner(sess, res); err != nil {
		return models.Reservation{}, err
	}
	return res, nil
}

// MyReservations danh sách đặt phòng của người đang đăng nhập
func (f *BookingFacade) MyReservations(ctx context.Context, sess hotelapi.Session) ([]models.Reservation, error) {
	list, err := f.api.ListMyReservations(ctx, sess)
	if err != nil {
		return nil, upstreamError(err, "Không tìm thấy đặt phòng")
	}
	return list, nil
}

// HotelReservations danh sách đặt phòng của khách sạn cho admin/nhân viên
func (f *BookingFacade) HotelReservations(ctx context.Context, sess hotelapi.Session, hotelID, status string) ([]models.Reservation, error) {
	if !canManage(sess) {
		return nil, errors.NewAppError(errors.ErrCodeForbidden, "Không có quyền xem đặt phòng của khách sạn", nil)
	}
	list, err := f.api.ListHotelReservations(ctx, sess, hotelID)
	if err != nil {
		return nil, upstreamError(err, "Không tìm thấy khách sạn")
	}
	return FilterReservations(list, status), nil
}

// FilterReservations lọc theo trạng thái, status rỗng giữ nguyên
func FilterReservations(list []models.Reservation, status string) []models.Reservation {
	if status == "" {
		return list
	}
	out := make([]models.Reservation, 0, len(list))
	for _, r := range list {
		if r.Status == status {
			out = append(out, r)
		}
	}
	return out
}

// EditReservation sửa ngày/số khách/dịch vụ của reservation active.
// Khoảng ngày cũ của chính reservation không chặn khoảng mới.
func (f *BookingFacade) EditReservation(ctx context.Context, sess hotelapi.Session, id string, in EditInput) (models.Reservation, FlowSnapshot, error) {
	current, err := f.GetReservation(ctx, sess, id)
	if err != nil {
		return models.Reservation{}, FlowSnapshot{}, err
	}
	if !current.IsActive() {
		return models.Reservation{}, FlowSnapshot{}, errors.NewAppError(errors.ErrCodeInvalidState, "Chỉ sửa được đặt phòng đang hoạt động", nil)
	}

	release, ok, err := f.locker.Acquire(ctx, "edit:"+id)
	if err != nil {
		return models.Reservation{}, FlowSnapshot{}, errors.NewAppError(errors.ErrCodeCacheError, "Không thể khóa đặt phòng", err)
	}
	if !ok {
		return models.Reservation{}, FlowSnapshot{}, errors.NewAppError(errors.ErrCodeSubmissionInFlight, "Đặt phòng đang được cập nhật, vui lòng chờ", nil)
	}
	defer release()
	callCtx, cancel := lockedContext(ctx, f.locker.TTL())
	defer cancel()

	room, err := f.LoadRoom(callCtx, sess, current.RoomID)
	if err != nil {
		return models.Reservation{}, FlowSnapshot{}, err
	}
	flow, err := f.newFlow(callCtx, sess, "edit:"+id, room, id, current.Services)
	if err != nil {
		return models.Reservation{}, FlowSnapshot{}, err
	}

	checkIn, checkOut, guests, services := current.CheckInDate, current.CheckOutDate, current.Guests, current.Services
	if in.CheckIn != nil {
		checkIn = *in.CheckIn
	}
	if in.CheckOut != nil {
		checkOut = *in.CheckOut
	}
	if in.Guests != nil {
		guests = *in.Guests
	}
	if in.Services != nil {
		services = in.Services
	}
	if err := applySelection(flow, checkIn, checkOut, guests, services); err != nil {
		return models.Reservation{}, FlowSnapshot{}, err
	}

	entry := &models.SubmissionLog{
		FormID:        "edit:" + id,
		SessionID:     sess.ID,
		UserID:        sess.UserID,
		Action:        "update",
		HotelID:       room.HotelID,
		RoomID:        room.ID,
		ReservationID: id,
	}
	updated, err := flow.Submit(callCtx, func(ctx context.Context, sel Selection, quote availability.Quote) (models.Reservation, error) {
		fillEntry(entry, sel, quote)
		payload, err := builders.NewReservationBuilder().
			FromReservation(current).
			WithStay(sel.CheckIn, sel.CheckOut).
			WithGuests(sel.Guests).
			WithServices(sel.Services).
			Build()
		if err != nil {
			return models.Reservation{}, err
		}
		cmd := commands.NewUpdateReservationCommand(f.api, sess, id, payload)
		if err := cmd.Execute(ctx); err != nil {
			return models.Reservation{}, err
		}
		return cmd.Result, nil
	})
	snap := flow.Snapshot()
	if err != nil {
		entry.Outcome = models.SubmissionFailed
		if !errors.HasCode(err, errors.ErrCodeSubmissionFailed) {
			entry.Outcome = models.SubmissionRejected
			fillEntryFromSnapshot(entry, snap)
		}
		entry.Error = err.Error()
		f.record(ctx, entry)
		return models.Reservation{}, snap, err
	}

	entry.Outcome = models.SubmissionConfirmed
	f.record(ctx, entry)
	f.notify(sess.ID, notification.NewMessageBuilder("reservation").Reservation(id).Success("Cập nhật đặt phòng thành công").Build())
	f.invalidateRoom(ctx, room.ID)
	return updated, snap, nil
}

// ChangeStatus hoàn thành hoặc hủy reservation.
// User thường chỉ được hủy đặt phòng của mình, hoàn thành cần quyền quản lý.
func (f *BookingFacade) ChangeStatus(ctx context.Context, sess hotelapi.Session, id, target string) (models.Reservation, string, error) {
	res, err := f.GetReservation(ctx, sess, id)
	if err != nil {
		return models.Reservation{}, "", err
	}
	if target == models.ReservationStatusCompleted && !canManage(sess) {
		return models.Reservation{}, "", errors.NewAppError(errors.ErrCodeForbidden, "Không có quyền hoàn thành đặt phòng", nil)
	}

	notice := ""
	if target == models.ReservationStatusCancelled {
		notice = CancellationNotice(res, f.clock(), f.loc)
	}

	entry := &models.SubmissionLog{
		FormID:        "status:" + id,
		SessionID:     sess.ID,
		UserID:        sess.UserID,
		Action:        "status",
		HotelID:       res.HotelID,
		RoomID:        res.RoomID,
		ReservationID: id,
		CheckInDate:   res.CheckInDate,
		CheckOutDate:  res.CheckOutDate,
		Nights:        availability.DaysBetween(res.CheckInDate, res.CheckOutDate),
	}
	if err := commands.NewChangeStatusCommand(f.api, sess, &res, target).Execute(ctx); err != nil {
		entry.Outcome = models.SubmissionFailed
		if errors.HasCode(err, errors.ErrCodeInvalidTransition) {
			entry.Outcome = models.SubmissionRejected
		}
		entry.Error = err.Error()
		f.record(ctx, entry)
		return models.Reservation{}, "", upstreamError(err, "Không tìm thấy đặt phòng")
	}

	entry.Outcome = models.SubmissionConfirmed
	f.record(ctx, entry)
	f.invalidateRoom(ctx, res.RoomID)
	return res, notice, nil
}

// PreviewCancellation cảnh báo trước khi người dùng bấm hủy
func (f *BookingFacade) PreviewCancellation(ctx context.Context, sess hotelapi.Session, id string) (string, error) {
	res, err := f.GetReservation(ctx, sess, id)
	if err != nil {
		return "", err
	}
	if !res.IsActive() {
		return "", errors.NewAppError(errors.ErrCodeInvalidState, "Đặt phòng không còn hiệu lực", nil)
	}
	return CancellationNotice(res, f.clock(), f.loc), nil
}

// CancellationNotice cảnh báo khi hủy trong vòng 24 giờ trước ngày nhận phòng. Chỉ mang tính thông báo.
func CancellationNotice(res models.Reservation, now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := res.CheckInDate.Date()
	checkIn := time.Date(y, m, d, 0, 0, 0, 0, loc)
	if now.Before(checkIn.Add(-constants.CancellationNoticeWindow)) {
		return ""
	}
	return "Bạn đang hủy trong vòng 24 giờ trước ngày nhận phòng, khách sạn có thể áp dụng chính sách hủy"
}

// UpdateDraft gộp phần cập nhật vào draft đang lưu của session
func (f *BookingFacade) UpdateDraft(ctx context.Context, sess hotelapi.Session, update *BookingDraft) (*BookingDraft, error) {
	old, err := GetDraft(ctx, f.rdb, sess.ID, update.RoomID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeCacheError, "Không thể đọc bản nháp", err)
	}
	merged := MergeDraft(old, update)
	if err := SaveDraft(ctx, f.rdb, sess.ID, merged); err != nil {
		return nil, errors.NewAppError(errors.ErrCodeCacheError, "Không thể lưu bản nháp", err)
	}
	return merged, nil
}

// Draft bản nháp của session cho phòng, nil khi chưa có
func (f *BookingFacade) Draft(ctx context.Context, sess hotelapi.Session, roomID string) (*BookingDraft, error) {
	draft, err := GetDraft(ctx, f.rdb, sess.ID, roomID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeCacheError, "Không thể đọc bản nháp", err)
	}
	return draft, nil
}

func (f *BookingFacade) rememberDraft(ctx context.Context, sess hotelapi.Session, in BookingInput, lastError string) {
	if sess.ID == "" {
		return
	}
	checkIn, checkOut, guests := in.CheckIn, in.CheckOut, in.Guests
	draft := &BookingDraft{
		FormID:    in.FormID,
		RoomID:    in.RoomID,
		CheckIn:   &checkIn,
		CheckOut:  &checkOut,
		Guests:    &guests,
		Services:  in.Services,
		LastError: lastError,
	}
	if _, err := f.UpdateDraft(ctx, sess, draft); err != nil {
		f.logger.Warn("save draft: %v", err)
	}
}

func fillEntry(entry *models.SubmissionLog, sel Selection, quote availability.Quote) {
	entry.CheckInDate = sel.CheckIn
	entry.CheckOutDate = sel.CheckOut
	entry.Nights = quote.Nights
	entry.GrandTotal = quote.GrandTotal
	ids := make(pq.StringArray, 0, len(sel.Services))
	refs := make(datatypes.JSONSlice[models.ServiceRef], 0, len(sel.Services))
	for _, s := range sel.Services {
		ids = append(ids, s.Service.ID)
		refs = append(refs, models.ServiceRef{ServiceID: s.Service.ID, Quantity: s.Quantity})
	}
	entry.ServiceIDs = ids
	entry.Services = refs
}

func fillEntryFromSnapshot(entry *models.SubmissionLog, snap FlowSnapshot) {
	if snap.CheckIn != nil {
		entry.CheckInDate = *snap.CheckIn
	}
	if snap.CheckOut != nil {
		entry.CheckOutDate = *snap.CheckOut
	}
	if snap.Quote != nil {
		entry.Nights = snap.Quote.Nights
		entry.GrandTotal = snap.Quote.GrandTotal
	}
}

func (f *BookingFacade) record(ctx context.Context, entry *models.SubmissionLog) {
	if err := f.journal.Record(ctx, entry); err != nil {
		f.logger.Error("journal form=%s: %v", entry.FormID, err)
	}
}

func (f *BookingFacade) notify(sessionID, message string) {
	if f.notifier == nil || sessionID == "" {
		return
	}
	if err := f.notifier.SendToSession(sessionID, message); err != nil {
		f.logger.Warn("websocket notify: %v", err)
	}
}

func (f *BookingFacade) publishConfirmed(ctx context.Context, formID string, sess hotelapi.Session, room models.Room, snap FlowSnapshot) {
	if f.publisher == nil || snap.Reservation == nil {
		return
	}
	event := notification.ReservationConfirmedEvent{
		ReservationID: snap.Reservation.ID,
		FormID:        formID,
		UserID:        sess.UserID,
		HotelID:       room.HotelID,
		RoomID:        room.ID,
		ConfirmedAt:   f.clock().UTC().Format(time.RFC3339),
	}
	if snap.CheckIn != nil && snap.CheckOut != nil {
		event.CheckInDate = snap.CheckIn.Format(availability.DateLayout)
		event.CheckOutDate = snap.CheckOut.Format(availability.DateLayout)
	}
	if snap.Quote != nil {
		event.Nights = snap.Quote.Nights
		event.GrandTotal = snap.Quote.GrandTotal.StringFixed(2)
	}
	if err := f.publisher.PublishReservationConfirmed(ctx, event); err != nil {
		f.logger.Warn("publish %s: %v", notification.ReservationConfirmedQueue, err)
	}
}

// invalidateRoom xóa cache phòng và lịch sau khi có thay đổi đặt phòng
func (f *BookingFacade) invalidateRoom(ctx context.Context, roomID string) {
	if err := DeleteFromRedis(ctx, f.rdb, constants.CacheKeyRoom+roomID); err != nil {
		f.logger.Warn("invalidate room %s: %v", roomID, err)
	}
	if _, err := DeleteKeysByPattern(ctx, f.rdb, constants.CacheKeyCalendar+roomID+":*"); err != nil {
		f.logger.Warn("invalidate calendar %s: %v", roomID, err)
	}
}
