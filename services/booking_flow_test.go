package services

import (
	"context"
	stderrors "errors"
	"sync"
	"testing"
	"time"

	"hotelbooking/errors"
	"hotelbooking/models"
	"hotelbooking/services/availability"

	"github.com/shopspring/decimal"
)

func mustDay(s string) time.Time {
	t, err := time.Parse(availability.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func fixedClock(s string) func() time.Time {
	t := mustDay(s).Add(10 * time.Hour)
	return func() time.Time { return t }
}

func testRoom() models.Room {
	return models.Room{
		ID:              "r1",
		HotelID:         "h1",
		Name:            "Deluxe",
		PricePerNight:   decimal.NewFromInt(200),
		Capacity:        2,
		NonAvailability: []models.DateRange{{Start: mustDay("2025-07-01"), End: mustDay("2025-07-05")}},
		Available:       true,
		State:           true,
	}
}

func testCatalogue() []models.Service {
	return []models.Service{
		{ID: "s1", HotelID: "h1", Name: "Breakfast", Price: decimal.RequireFromString("25.50"), Available: true},
		{ID: "s2", HotelID: "h1", Name: "Spa", Price: decimal.NewFromInt(40), Available: false},
	}
}

func newTestFlow(transitions *[]FlowState) *BookingFlow {
	room := testRoom()
	opts := FlowOptions{
		FormID:   "form-1",
		Room:     room,
		Blocked:  availability.BlockingRanges(room, nil, ""),
		Services: testCatalogue(),
		Clock:    fixedClock("2025-06-20"),
	}
	if transitions != nil {
		opts.OnTransition = func(_, to FlowState) { *transitions = append(*transitions, to) }
	}
	return NewBookingFlow(opts)
}

func TestFlowSelectDatesValidatesAndQuotes(t *testing.T) {
	flow := newTestFlow(nil)
	if flow.State() != FlowIdle {
		t.Fatalf("initial state = %s", flow.State())
	}
	if err := flow.SelectDates(mustDay("2025-07-05"), mustDay("2025-07-08")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	snap := flow.Snapshot()
	if snap.State != FlowValid || !snap.CanSubmit {
		t.Fatalf("expected valid, got %+v", snap)
	}
	if snap.Quote == nil || snap.Quote.Nights != 3 || !snap.Quote.GrandTotal.Equal(decimal.NewFromInt(600)) {
		t.Fatalf("unexpected quote %+v", snap.Quote)
	}

	if err := flow.SetServices([]models.ServiceRef{{ServiceID: "s1", Quantity: 2}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q := flow.Snapshot().Quote; q == nil || !q.GrandTotal.Equal(decimal.RequireFromString("651")) {
		t.Fatalf("services not priced: %+v", q)
	}
}

func TestFlowInvalidVariantsHaveDistinctMessages(t *testing.T) {
	cases := []struct {
		in, out string
		code    errors.ErrorCode
	}{
		{"2025-07-10", "2025-07-08", errors.ErrCodeInvalidOrder},
		{"2025-06-01", "2025-06-03", errors.ErrCodeInThePast},
		{"2025-07-03", "2025-07-06", errors.ErrCodeOverlaps},
	}
	seen := map[string]bool{}
	for _, tc := range cases {
		flow := newTestFlow(nil)
		if err := flow.SelectDates(mustDay(tc.in), mustDay(tc.out)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		snap := flow.Snapshot()
		if snap.State != FlowInvalid || snap.CanSubmit {
			t.Fatalf("%s..%s: expected invalid and submit disabled, got %+v", tc.in, tc.out, snap)
		}
		if snap.ErrorCode != tc.code {
			t.Fatalf("%s..%s: code = %s, want %s", tc.in, tc.out, snap.ErrorCode, tc.code)
		}
		if seen[snap.Message] {
			t.Fatalf("message %q reused", snap.Message)
		}
		seen[snap.Message] = true

		if _, err := flow.Submit(context.Background(), func(context.Context, Selection, availability.Quote) (models.Reservation, error) {
			t.Fatalf("submit must not be called for an invalid flow")
			return models.Reservation{}, nil
		}); !errors.HasCode(err, tc.code) {
			t.Fatalf("submit error = %v, want %s", err, tc.code)
		}
	}
}

func TestFlowRoomUnavailableAndCapacity(t *testing.T) {
	room := testRoom()
	room.Available = false
	flow := NewBookingFlow(FlowOptions{Room: room, Clock: fixedClock("2025-06-20")})
	_ = flow.SelectDates(mustDay("2025-08-01"), mustDay("2025-08-02"))
	if snap := flow.Snapshot(); snap.ErrorCode != errors.ErrCodeRoomUnavailable {
		t.Fatalf("expected ROOM_UNAVAILABLE, got %+v", snap)
	}

	flow = newTestFlow(nil)
	_ = flow.SelectDates(mustDay("2025-08-01"), mustDay("2025-08-02"))
	_ = flow.SetGuests(5)
	if snap := flow.Snapshot(); snap.ErrorCode != errors.ErrCodeOverCapacity {
		t.Fatalf("expected OVER_CAPACITY, got %+v", snap)
	}
}

func TestFlowRejectsUnknownOrUnavailableService(t *testing.T) {
	flow := newTestFlow(nil)
	for _, ref := range []models.ServiceRef{{ServiceID: "nope", Quantity: 1}, {ServiceID: "s2", Quantity: 1}, {ServiceID: "s1", Quantity: 0}} {
		if err := flow.SetServices([]models.ServiceRef{ref}); !errors.HasCode(err, errors.ErrCodeServiceInvalid) {
			t.Fatalf("%+v: expected SERVICE_INVALID, got %v", ref, err)
		}
	}
}

func TestFlowFailedSubmissionReturnsToDatesSelected(t *testing.T) {
	var transitions []FlowState
	flow := newTestFlow(&transitions)
	_ = flow.SelectDates(mustDay("2025-07-05"), mustDay("2025-07-08"))
	_ = flow.SetServices([]models.ServiceRef{{ServiceID: "s1", Quantity: 1}})

	upstream := stderrors.New("connection reset")
	_, err := flow.Submit(context.Background(), func(context.Context, Selection, availability.Quote) (models.Reservation, error) {
		return models.Reservation{}, upstream
	})
	if !errors.HasCode(err, errors.ErrCodeSubmissionFailed) || !stderrors.Is(err, upstream) {
		t.Fatalf("expected SUBMISSION_FAILED wrapping upstream error, got %v", err)
	}

	snap := flow.Snapshot()
	if snap.State != FlowDatesSelected || !snap.CanSubmit {
		t.Fatalf("expected DatesSelected with submit enabled, got %+v", snap)
	}
	if snap.CheckIn == nil || !snap.CheckIn.Equal(mustDay("2025-07-05")) || len(snap.Services) != 1 {
		t.Fatalf("selection not preserved: %+v", snap)
	}
	if snap.ErrorCode != errors.ErrCodeSubmissionFailed {
		t.Fatalf("failure not surfaced: %+v", snap)
	}

	sawFailed := false
	for i, s := range transitions {
		if s == FlowFailed {
			sawFailed = i+1 < len(transitions) && transitions[i+1] == FlowDatesSelected
		}
	}
	if !sawFailed {
		t.Fatalf("expected Failed -> DatesSelected in %v", transitions)
	}

	// gửi lại sau khi lỗi: kiểm tra lại rồi mới gửi
	res, err := flow.Submit(context.Background(), func(_ context.Context, sel Selection, q availability.Quote) (models.Reservation, error) {
		if !q.GrandTotal.Equal(decimal.RequireFromString("625.50")) {
			t.Errorf("unexpected quote on retry %s", q.GrandTotal)
		}
		return models.Reservation{ID: "res-1", Status: models.ReservationStatusActive}, nil
	})
	if err != nil || res.ID != "res-1" || flow.State() != FlowConfirmed {
		t.Fatalf("retry failed: %v %+v %s", err, res, flow.State())
	}
	if err := flow.SelectDates(mustDay("2025-07-10"), mustDay("2025-07-11")); !errors.HasCode(err, errors.ErrCodeInvalidState) {
		t.Fatalf("confirmed flow must not be edited, got %v", err)
	}
}

func TestFlowSecondSubmitWhileSubmittingIsRejected(t *testing.T) {
	flow := newTestFlow(nil)
	_ = flow.SelectDates(mustDay("2025-07-05"), mustDay("2025-07-08"))

	entered := make(chan struct{})
	release := make(chan struct{})
	var calls int
	var mu sync.Mutex
	submit := func(context.Context, Selection, availability.Quote) (models.Reservation, error) {
		mu.Lock()
		calls++
		mu.Unlock()
		close(entered)
		<-release
		return models.Reservation{ID: "res-1"}, nil
	}

	done := make(chan error, 1)
	go func() {
		_, err := flow.Submit(context.Background(), submit)
		done <- err
	}()
	<-entered

	if flow.State() != FlowSubmitting {
		t.Fatalf("expected Submitting, got %s", flow.State())
	}
	if _, err := flow.Submit(context.Background(), submit); !errors.HasCode(err, errors.ErrCodeSubmissionInFlight) {
		t.Fatalf("expected SUBMISSION_IN_FLIGHT, got %v", err)
	}
	if err := flow.SetGuests(1); !errors.HasCode(err, errors.ErrCodeSubmissionInFlight) {
		t.Fatalf("edits during submission must be rejected, got %v", err)
	}
	if err := applySelection(flow, mustDay("2025-07-06"), mustDay("2025-07-09"), 1, nil); !errors.HasCode(err, errors.ErrCodeSubmissionInFlight) {
		t.Fatalf("applySelection must report the in-flight submission, got %v", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first submit failed: %v", err)
	}
	if calls != 1 {
		t.Fatalf("submit called %d times", calls)
	}
}

func TestFlowSubmitBeforeDates(t *testing.T) {
	flow := newTestFlow(nil)
	if _, err := flow.Submit(context.Background(), nil); !errors.HasCode(err, errors.ErrCodeInvalidState) {
		t.Fatalf("expected INVALID_STATE, got %v", err)
	}
}
