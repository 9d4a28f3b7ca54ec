package services

import (
	"context"
	"testing"

	"hotelbooking/models"
)

func TestRoomCalendarMarksBlockedAndPastDays(t *testing.T) {
	api := newFakeAPI()
	api.room.NonAvailability = []models.DateRange{
		{Start: mustDay("2025-06-01"), End: mustDay("2025-06-03")},
		{Start: mustDay("2025-06-28"), End: mustDay("2025-06-25")}, // lỗi, bỏ qua
	}
	api.reservations = []models.Reservation{
		{ID: "a", RoomID: "r1", CheckInDate: mustDay("2025-06-24"), CheckOutDate: mustDay("2025-06-26"), Status: models.ReservationStatusActive},
		{ID: "b", RoomID: "r1", CheckInDate: mustDay("2025-06-10"), CheckOutDate: mustDay("2025-06-12"), Status: models.ReservationStatusCancelled},
	}
	facade, _, _, _ := newTestFacade(api)

	cal, err := facade.RoomCalendar(context.Background(), guestSession, "r1", mustDay("2025-06-17"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cal.Month != "2025-06" || len(cal.Days) != 30 || !cal.Bookable {
		t.Fatalf("unexpected calendar %+v", cal)
	}
	want := []string{"2025-06-01", "2025-06-02", "2025-06-03", "2025-06-24", "2025-06-25", "2025-06-26"}
	if len(cal.Blocked) != len(want) {
		t.Fatalf("blocked = %v, want %v", cal.Blocked, want)
	}
	for i := range want {
		if cal.Blocked[i] != want[i] {
			t.Fatalf("blocked = %v, want %v", cal.Blocked, want)
		}
	}
	if !cal.Days[18].Past || cal.Days[19].Past {
		t.Fatalf("past flags wrong around today (2025-06-20): %+v %+v", cal.Days[18], cal.Days[19])
	}
}
