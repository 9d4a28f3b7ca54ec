package services

import (
	"context"
	stderrors "errors"
	"sync"
	"testing"
	"time"

	"hotelbooking/constants"
	"hotelbooking/errors"
	"hotelbooking/models"
	"hotelbooking/services/hotelapi"
	"hotelbooking/services/notification"

	"github.com/shopspring/decimal"
)

type fakeHotelAPI struct {
	mu           sync.Mutex
	room         models.Room
	services     []models.Service
	reservations []models.Reservation
	hotels       []models.Hotel
	invoice      models.Invoice

	createErr error
	created   []hotelapi.ReservationPayload
	keys      []string
	updated   []hotelapi.ReservationPayload
	statuses  []string
	block     chan struct{}
	entered   chan struct{}
	deadline  time.Time
}

func newFakeAPI() *fakeHotelAPI {
	return &fakeHotelAPI{
		room:     testRoom(),
		services: testCatalogue(),
		hotels:   []models.Hotel{{ID: "h1", Name: "Sea View", City: "Đà Nẵng", State: true}},
	}
}

func (f *fakeHotelAPI) GetRoom(_ context.Context, _ hotelapi.Session, id string) (models.Room, error) {
	if id != f.room.ID {
		return models.Room{}, &hotelapi.APIError{Op: "GET /rooms/" + id, StatusCode: 404, Message: "not found"}
	}
	return f.room, nil
}

func (f *fakeHotelAPI) ListHotelRooms(context.Context, hotelapi.Session, string) ([]models.Room, error) {
	return []models.Room{f.room}, nil
}

func (f *fakeHotelAPI) ListRoomReservations(context.Context, hotelapi.Session, string) ([]models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Reservation(nil), f.reservations...), nil
}

func (f *fakeHotelAPI) ListHotelReservations(ctx context.Context, sess hotelapi.Session, _ string) ([]models.Reservation, error) {
	return f.ListRoomReservations(ctx, sess, "")
}

func (f *fakeHotelAPI) GetReservation(_ context.Context, _ hotelapi.Session, id string) (models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.reservations {
		if r.ID == id {
			return r, nil
		}
	}
	return models.Reservation{}, &hotelapi.APIError{Op: "GET /reservations/" + id, StatusCode: 404}
}

func (f *fakeHotelAPI) ListMyReservations(ctx context.Context, sess hotelapi.Session) ([]models.Reservation, error) {
	return f.ListRoomReservations(ctx, sess, "")
}

func (f *fakeHotelAPI) ListHotels(context.Context, hotelapi.Session) ([]models.Hotel, error) {
	return f.hotels, nil
}

func (f *fakeHotelAPI) GetHotel(_ context.Context, _ hotelapi.Session, id string) (models.Hotel, error) {
	for _, h := range f.hotels {
		if h.ID == id {
			return h, nil
		}
	}
	return models.Hotel{}, &hotelapi.APIError{StatusCode: 404}
}

func (f *fakeHotelAPI) ListHotelServices(context.Context, hotelapi.Session, string) ([]models.Service, error) {
	return f.services, nil
}

func (f *fakeHotelAPI) GetInvoice(_ context.Context, _ hotelapi.Session, id string) (models.Invoice, error) {
	if id != f.invoice.ID {
		return models.Invoice{}, &hotelapi.APIError{StatusCode: 404}
	}
	return f.invoice, nil
}

func (f *fakeHotelAPI) CreateReservation(ctx context.Context, _ hotelapi.Session, payload hotelapi.ReservationPayload, key string) (models.Reservation, error) {
	if d, ok := ctx.Deadline(); ok {
		f.mu.Lock()
		f.deadline = d
		f.mu.Unlock()
	}
	if f.entered != nil {
		close(f.entered)
		select {
		case <-f.block:
		case <-ctx.Done():
			return models.Reservation{}, &hotelapi.APIError{Op: "POST /reservations", Err: ctx.Err()}
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, payload)
	f.keys = append(f.keys, key)
	if f.createErr != nil {
		return models.Reservation{}, f.createErr
	}
	return models.Reservation{ID: "res-new", RoomID: payload.Room, UserID: payload.User, Status: models.ReservationStatusActive}, nil
}

func (f *fakeHotelAPI) UpdateReservation(_ context.Context, _ hotelapi.Session, id string, payload hotelapi.ReservationPayload) (models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updated = append(f.updated, payload)
	return models.Reservation{ID: id, RoomID: payload.Room, UserID: payload.User, Guests: payload.Guests, Status: models.ReservationStatusActive}, nil
}

func (f *fakeHotelAPI) UpdateReservationStatus(_ context.Context, _ hotelapi.Session, _ string, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statuses = append(f.statuses, status)
	return nil
}

type memoryJournal struct {
	mu      sync.Mutex
	entries []models.SubmissionLog
}

func (j *memoryJournal) Record(_ context.Context, entry *models.SubmissionLog) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = append(j.entries, *entry)
	return nil
}

type recordingNotifier struct {
	mu       sync.Mutex
	messages map[string][]string
}

func (n *recordingNotifier) SendMessage(string) error { return nil }

func (n *recordingNotifier) SendToSession(sessionID, message string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.messages == nil {
		n.messages = map[string][]string{}
	}
	n.messages[sessionID] = append(n.messages[sessionID], message)
	return nil
}

type recordingPublisher struct {
	events []notification.ReservationConfirmedEvent
}

func (p *recordingPublisher) PublishReservationConfirmed(_ context.Context, e notification.ReservationConfirmedEvent) error {
	p.events = append(p.events, e)
	return nil
}

var guestSession = hotelapi.Session{ID: "sess-1", UserID: "u1", Role: 3, Token: "tok"}

func newTestFacade(api *fakeHotelAPI) (*BookingFacade, *memoryJournal, *recordingNotifier, *recordingPublisher) {
	journal := &memoryJournal{}
	notifier := &recordingNotifier{}
	publisher := &recordingPublisher{}
	return NewBookingFacade(BookingFacadeOptions{
		API:       api,
		Journal:   journal,
		Notifier:  notifier,
		Publisher: publisher,
		Clock:     fixedClock("2025-06-20"),
	}), journal, notifier, publisher
}

func stayInput(in, out string) BookingInput {
	return BookingInput{FormID: "form-1", RoomID: "r1", CheckIn: mustDay(in), CheckOut: mustDay(out), Guests: 2}
}

func TestFacadeSubmitConfirmsAndPublishes(t *testing.T) {
	api := newFakeAPI()
	facade, journal, notifier, publisher := newTestFacade(api)

	in := stayInput("2025-07-05", "2025-07-08")
	in.Services = []models.ServiceRef{{ServiceID: "s1", Quantity: 1}}
	snap, err := facade.Submit(context.Background(), guestSession, in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.State != FlowConfirmed || snap.Reservation == nil || snap.Reservation.ID != "res-new" {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	if len(api.created) != 1 || api.keys[0] != "form-1" {
		t.Fatalf("expected one create with idempotency key, got %v %v", api.created, api.keys)
	}
	if p := api.created[0]; p.CheckInDate != "2025-07-05" || p.CheckOutDate != "2025-07-08" || p.User != "u1" || len(p.Services) != 1 {
		t.Fatalf("unexpected payload %+v", p)
	}
	if len(journal.entries) != 1 || journal.entries[0].Outcome != models.SubmissionConfirmed || journal.entries[0].Nights != 3 {
		t.Fatalf("unexpected journal %+v", journal.entries)
	}
	if !journal.entries[0].GrandTotal.Equal(decimal.RequireFromString("625.50")) {
		t.Fatalf("journal total = %s", journal.entries[0].GrandTotal)
	}
	if refs := journal.entries[0].Services; len(refs) != 1 || refs[0].ServiceID != "s1" || refs[0].Quantity != 1 {
		t.Fatalf("journal services = %+v", refs)
	}
	if len(notifier.messages["sess-1"]) != 1 {
		t.Fatalf("expected a toast, got %v", notifier.messages)
	}
	if len(publisher.events) != 1 || publisher.events[0].GrandTotal != "625.50" || publisher.events[0].Nights != 3 {
		t.Fatalf("unexpected events %+v", publisher.events)
	}
}

func TestFacadeSubmitRejectsOverlapWithoutCallingAPI(t *testing.T) {
	api := newFakeAPI()
	facade, journal, _, _ := newTestFacade(api)

	_, err := facade.Submit(context.Background(), guestSession, stayInput("2025-07-03", "2025-07-06"))
	if !errors.HasCode(err, errors.ErrCodeOverlaps) {
		t.Fatalf("expected OVERLAPS, got %v", err)
	}
	if len(api.created) != 0 {
		t.Fatalf("API must not be called")
	}
	if len(journal.entries) != 1 || journal.entries[0].Outcome != models.SubmissionRejected {
		t.Fatalf("unexpected journal %+v", journal.entries)
	}
}

func TestFacadeCancelledReservationDoesNotBlock(t *testing.T) {
	api := newFakeAPI()
	api.reservations = []models.Reservation{
		{ID: "old", RoomID: "r1", UserID: "u2", CheckInDate: mustDay("2025-07-10"), CheckOutDate: mustDay("2025-07-12"), Status: models.ReservationStatusCancelled},
		{ID: "live", RoomID: "r1", UserID: "u2", CheckInDate: mustDay("2025-07-20"), CheckOutDate: mustDay("2025-07-22"), Status: models.ReservationStatusActive},
	}
	facade, _, _, _ := newTestFacade(api)

	snap, err := facade.Validate(context.Background(), guestSession, stayInput("2025-07-10", "2025-07-12"))
	if err != nil || snap.State != FlowValid {
		t.Fatalf("cancelled reservation blocked the stay: %v %+v", err, snap)
	}
	snap, err = facade.Validate(context.Background(), guestSession, stayInput("2025-07-21", "2025-07-23"))
	if err != nil || snap.ErrorCode != errors.ErrCodeOverlaps {
		t.Fatalf("active reservation should block: %v %+v", err, snap)
	}
	// ngày trả phòng trùng ngày nhận phòng của booking khác thì không chồng lấn
	snap, _ = facade.Validate(context.Background(), guestSession, stayInput("2025-07-18", "2025-07-20"))
	if snap.State != FlowValid {
		t.Fatalf("back-to-back stay rejected: %+v", snap)
	}
}

func TestFacadeFailedSubmitIsJournaled(t *testing.T) {
	api := newFakeAPI()
	api.createErr = &hotelapi.APIError{Op: "POST /reservations", StatusCode: 500, Message: "boom"}
	facade, journal, notifier, publisher := newTestFacade(api)

	snap, err := facade.Submit(context.Background(), guestSession, stayInput("2025-07-05", "2025-07-08"))
	if !errors.HasCode(err, errors.ErrCodeSubmissionFailed) {
		t.Fatalf("expected SUBMISSION_FAILED, got %v", err)
	}
	var apiErr *hotelapi.APIError
	if !stderrors.As(err, &apiErr) {
		t.Fatalf("upstream error not wrapped: %v", err)
	}
	if snap.State != FlowDatesSelected || !snap.CanSubmit {
		t.Fatalf("selection must be kept for retry: %+v", snap)
	}
	if len(journal.entries) != 1 || journal.entries[0].Outcome != models.SubmissionFailed || journal.entries[0].Error == "" {
		t.Fatalf("unexpected journal %+v", journal.entries)
	}
	if len(notifier.messages["sess-1"]) != 1 || len(publisher.events) != 0 {
		t.Fatalf("expected failure toast and no event")
	}
}

func TestFacadeConcurrentSubmitSameForm(t *testing.T) {
	api := newFakeAPI()
	api.entered = make(chan struct{})
	api.block = make(chan struct{})
	facade, _, _, _ := newTestFacade(api)

	done := make(chan error, 1)
	go func() {
		_, err := facade.Submit(context.Background(), guestSession, stayInput("2025-07-05", "2025-07-08"))
		done <- err
	}()
	<-api.entered

	_, err := facade.Submit(context.Background(), guestSession, stayInput("2025-07-05", "2025-07-08"))
	if !errors.HasCode(err, errors.ErrCodeSubmissionInFlight) {
		t.Fatalf("expected SUBMISSION_IN_FLIGHT, got %v", err)
	}
	close(api.block)
	if err := <-done; err != nil {
		t.Fatalf("first submit failed: %v", err)
	}
	if len(api.created) != 1 {
		t.Fatalf("expected exactly one create, got %d", len(api.created))
	}
}

// expiringLocker lock luôn lấy được, hết hạn sau ttl
type expiringLocker struct {
	ttl      time.Duration
	acquired time.Time
}

func (l *expiringLocker) Acquire(context.Context, string) (func(), bool, error) {
	l.acquired = time.Now()
	return func() {}, true, nil
}

func (l *expiringLocker) TTL() time.Duration { return l.ttl }

func TestFacadeSubmitFinishesBeforeLockExpires(t *testing.T) {
	api := newFakeAPI()
	api.entered = make(chan struct{})
	api.block = make(chan struct{}) // hotel API treo, không bao giờ trả lời
	locker := &expiringLocker{ttl: 200 * time.Millisecond}
	facade := NewBookingFacade(BookingFacadeOptions{
		API:     api,
		Locker:  locker,
		Journal: &memoryJournal{},
		Clock:   fixedClock("2025-06-20"),
	})

	_, err := facade.Submit(context.Background(), guestSession, stayInput("2025-07-05", "2025-07-08"))
	if !errors.HasCode(err, errors.ErrCodeSubmissionFailed) {
		t.Fatalf("expected SUBMISSION_FAILED, got %v", err)
	}
	if api.deadline.IsZero() {
		t.Fatalf("hotel API call had no deadline")
	}
	if expires := locker.acquired.Add(locker.ttl); !api.deadline.Before(expires) {
		t.Fatalf("deadline %v is not before lock expiry %v", api.deadline, expires)
	}
}

func TestLockTTLCoversUpstreamCalls(t *testing.T) {
	if ttl := LockTTLFor(time.Second); ttl != constants.SubmitLockTTL {
		t.Fatalf("short timeout should keep the default ttl, got %v", ttl)
	}
	timeout := 10 * time.Second
	ttl := LockTTLFor(timeout)
	if budget := time.Duration(constants.SubmitLockUpstreamCalls) * timeout; ttl*4/5 < budget {
		t.Fatalf("ttl %v leaves less than %v for the API calls", ttl, budget)
	}
	if NewMemoryLocker().TTL() != 0 {
		t.Fatalf("memory lock should not expire")
	}
}

func TestFacadeSubmitRequiresLogin(t *testing.T) {
	facade, _, _, _ := newTestFacade(newFakeAPI())
	_, err := facade.Submit(context.Background(), hotelapi.Session{ID: "anon"}, stayInput("2025-07-05", "2025-07-08"))
	if !errors.HasCode(err, errors.ErrCodeUnauthorized) {
		t.Fatalf("expected UNAUTHORIZED, got %v", err)
	}
}

func TestFacadeEditExcludesOwnRange(t *testing.T) {
	api := newFakeAPI()
	api.reservations = []models.Reservation{
		{ID: "mine", RoomID: "r1", HotelID: "h1", UserID: "u1", Guests: 1, CheckInDate: mustDay("2025-07-10"), CheckOutDate: mustDay("2025-07-13"), Status: models.ReservationStatusActive},
	}
	facade, journal, _, _ := newTestFacade(api)

	checkOut := mustDay("2025-07-14")
	updated, snap, err := facade.EditReservation(context.Background(), guestSession, "mine", EditInput{CheckOut: &checkOut})
	if err != nil {
		t.Fatalf("extending own stay should be allowed: %v", err)
	}
	if updated.ID != "mine" || snap.Quote == nil || snap.Quote.Nights != 4 {
		t.Fatalf("unexpected result %+v %+v", updated, snap)
	}
	if len(api.updated) != 1 || api.updated[0].CheckInDate != "2025-07-10" || api.updated[0].CheckOutDate != "2025-07-14" {
		t.Fatalf("unexpected update payload %+v", api.updated)
	}
	if len(journal.entries) != 1 || journal.entries[0].Action != "update" {
		t.Fatalf("unexpected journal %+v", journal.entries)
	}

	other := hotelapi.Session{ID: "sess-2", UserID: "u9", Role: 3}
	if _, _, err := facade.EditReservation(context.Background(), other, "mine", EditInput{}); !errors.HasCode(err, errors.ErrCodeForbidden) {
		t.Fatalf("expected FORBIDDEN for another user, got %v", err)
	}
}

func TestFacadeEditKeepsRetiredBookedService(t *testing.T) {
	api := newFakeAPI() // s2 đã ngừng cung cấp trong danh mục
	api.reservations = []models.Reservation{
		{ID: "spa", RoomID: "r1", HotelID: "h1", UserID: "u1", Guests: 1, CheckInDate: mustDay("2025-07-10"), CheckOutDate: mustDay("2025-07-12"),
			Services: []models.ServiceRef{{ServiceID: "s2", Quantity: 1}}, Status: models.ReservationStatusActive},
		{ID: "plain", RoomID: "r1", HotelID: "h1", UserID: "u1", Guests: 1, CheckInDate: mustDay("2025-07-20"), CheckOutDate: mustDay("2025-07-22"),
			Status: models.ReservationStatusActive},
	}
	facade, _, _, _ := newTestFacade(api)

	checkOut := mustDay("2025-07-13")
	_, snap, err := facade.EditReservation(context.Background(), guestSession, "spa", EditInput{CheckOut: &checkOut})
	if err != nil {
		t.Fatalf("dates-only edit should keep the booked service: %v", err)
	}
	if snap.Quote == nil || !snap.Quote.ServicesTotal.Equal(decimal.NewFromInt(40)) {
		t.Fatalf("unexpected quote %+v", snap.Quote)
	}
	if len(api.updated) != 1 || len(api.updated[0].Services) != 1 || api.updated[0].Services[0].ServiceID != "s2" {
		t.Fatalf("unexpected update payload %+v", api.updated)
	}

	// thêm mới dịch vụ đã ngừng cung cấp vẫn bị từ chối
	_, _, err = facade.EditReservation(context.Background(), guestSession, "plain",
		EditInput{Services: []models.ServiceRef{{ServiceID: "s2", Quantity: 1}}})
	if !errors.HasCode(err, errors.ErrCodeServiceInvalid) {
		t.Fatalf("expected SERVICE_INVALID, got %v", err)
	}
	if len(api.updated) != 1 {
		t.Fatalf("rejected edit reached the API")
	}
}

func TestFacadeValidateReportsUnreadableReservations(t *testing.T) {
	api := newFakeAPI()
	api.reservations = []models.Reservation{
		{ID: "broken", RoomID: "r1", Status: models.ReservationStatusActive, DatesUnreadable: true},
		{ID: "old", RoomID: "r1", Status: models.ReservationStatusCancelled, DatesUnreadable: true},
	}
	facade, _, _, _ := newTestFacade(api)

	snap, err := facade.Validate(context.Background(), guestSession, stayInput("2025-07-05", "2025-07-08"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.UnreadableReservations != 1 {
		t.Fatalf("expected one unreadable active reservation, got %d", snap.UnreadableReservations)
	}
	active, err := facade.ActiveReservations(context.Background(), guestSession, "r1")
	if err != nil || len(active) != 0 {
		t.Fatalf("unreadable reservations must not reach the blocking set: %v %+v", err, active)
	}
}

func TestFacadeChangeStatus(t *testing.T) {
	api := newFakeAPI()
	api.reservations = []models.Reservation{
		{ID: "soon", RoomID: "r1", UserID: "u1", CheckInDate: mustDay("2025-06-21"), CheckOutDate: mustDay("2025-06-23"), Status: models.ReservationStatusActive},
		{ID: "done", RoomID: "r1", UserID: "u1", CheckInDate: mustDay("2025-06-01"), CheckOutDate: mustDay("2025-06-03"), Status: models.ReservationStatusCompleted},
	}
	facade, _, _, _ := newTestFacade(api)

	if _, _, err := facade.ChangeStatus(context.Background(), guestSession, "soon", models.ReservationStatusCompleted); !errors.HasCode(err, errors.ErrCodeForbidden) {
		t.Fatalf("guest must not complete, got %v", err)
	}
	res, notice, err := facade.ChangeStatus(context.Background(), guestSession, "soon", models.ReservationStatusCancelled)
	if err != nil || res.Status != models.ReservationStatusCancelled {
		t.Fatalf("cancel failed: %v %+v", err, res)
	}
	if notice == "" {
		t.Fatalf("expected late cancellation notice")
	}
	if _, _, err := facade.ChangeStatus(context.Background(), guestSession, "done", models.ReservationStatusCancelled); !errors.HasCode(err, errors.ErrCodeInvalidTransition) {
		t.Fatalf("expected INVALID_TRANSITION, got %v", err)
	}
	if len(api.statuses) != 1 {
		t.Fatalf("API called %d times", len(api.statuses))
	}
}

func TestCancellationNoticeWindow(t *testing.T) {
	res := models.Reservation{CheckInDate: mustDay("2025-07-10")}
	ict := time.FixedZone("ICT", 7*3600)
	if CancellationNotice(res, time.Date(2025, 7, 8, 23, 0, 0, 0, ict), ict) != "" {
		t.Fatalf("25h before check-in should not warn")
	}
	if CancellationNotice(res, time.Date(2025, 7, 9, 1, 0, 0, 0, ict), ict) == "" {
		t.Fatalf("23h before check-in should warn")
	}
}

func TestFacadeLoadRoomNotFound(t *testing.T) {
	facade, _, _, _ := newTestFacade(newFakeAPI())
	if _, err := facade.LoadRoom(context.Background(), guestSession, "missing"); !errors.HasCode(err, errors.ErrCodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestFacadeHotelReservationsForStaffOnly(t *testing.T) {
	api := newFakeAPI()
	api.reservations = []models.Reservation{
		{ID: "a", RoomID: "r1", Status: models.ReservationStatusActive},
		{ID: "b", RoomID: "r1", Status: models.ReservationStatusCancelled},
	}
	facade, _, _, _ := newTestFacade(api)

	if _, err := facade.HotelReservations(context.Background(), guestSession, "h1", ""); !errors.HasCode(err, errors.ErrCodeForbidden) {
		t.Fatalf("expected FORBIDDEN, got %v", err)
	}
	staff := hotelapi.Session{ID: "sess-9", UserID: "s1", Role: 2}
	list, err := facade.HotelReservations(context.Background(), staff, "h1", models.ReservationStatusActive)
	if err != nil || len(list) != 1 || list[0].ID != "a" {
		t.Fatalf("unexpected list %+v %v", list, err)
	}
}

func TestFacadePreviewCancellation(t *testing.T) {
	api := newFakeAPI()
	api.reservations = []models.Reservation{
		{ID: "soon", RoomID: "r1", UserID: "u1", CheckInDate: mustDay("2025-06-21"), CheckOutDate: mustDay("2025-06-23"), Status: models.ReservationStatusActive},
		{ID: "gone", RoomID: "r1", UserID: "u1", CheckInDate: mustDay("2025-06-21"), CheckOutDate: mustDay("2025-06-23"), Status: models.ReservationStatusCancelled},
	}
	facade, _, _, _ := newTestFacade(api)

	notice, err := facade.PreviewCancellation(context.Background(), guestSession, "soon")
	if err != nil || notice == "" {
		t.Fatalf("expected notice, got %q %v", notice, err)
	}
	if _, err := facade.PreviewCancellation(context.Background(), guestSession, "gone"); !errors.HasCode(err, errors.ErrCodeInvalidState) {
		t.Fatalf("expected INVALID_STATE, got %v", err)
	}
	if len(api.statuses) != 0 {
		t.Fatalf("preview must not change status")
	}
}
