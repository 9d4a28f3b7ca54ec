package services

import (
	"context"
	"testing"

	"hotelbooking/models"
)

func searchFixture() []models.Hotel {
	return []models.Hotel{
		{ID: "h1", Name: "Biển Xanh", City: "Đà Nẵng", Stars: 4, State: true},
		{ID: "h2", Name: "Phố Cổ", City: "Hà Nội", Stars: 3, Address: "12 Hàng Bạc", State: true},
		{ID: "h3", Name: "Sông Hàn", City: "Đà Nẵng", Stars: 5, State: true},
	}
}

func TestRankHotelsMatchesWithoutAccents(t *testing.T) {
	ranked := RankHotels("khach san 4 sao da nang", searchFixture())
	if len(ranked) == 0 || ranked[0].Hotel.ID != "h1" {
		t.Fatalf("unexpected ranking %+v", ranked)
	}
	for _, r := range ranked {
		if r.Hotel.ID == "h2" {
			t.Fatalf("Hà Nội hotel should not match: %+v", ranked)
		}
	}
}

func TestRankHotelsByName(t *testing.T) {
	ranked := RankHotels("pho co", searchFixture())
	if len(ranked) == 0 || ranked[0].Hotel.ID != "h2" {
		t.Fatalf("unexpected ranking %+v", ranked)
	}
}

func TestRankHotelsNoMatch(t *testing.T) {
	if ranked := RankHotels("zzzz", searchFixture()); len(ranked) != 0 {
		t.Fatalf("expected nothing, got %+v", ranked)
	}
}

func TestCalculateSimilarity(t *testing.T) {
	if s := calculateSimilarity("", ""); s != 1.0 {
		t.Fatalf("empty strings similarity = %v", s)
	}
	if s := calculateSimilarity("bien xanh", "bien xanh"); s != 1.0 {
		t.Fatalf("identical similarity = %v", s)
	}
	if s := calculateSimilarity("abc", "xyz"); s != 0 {
		t.Fatalf("disjoint similarity = %v", s)
	}
	// một ký tự thay thế tính là một lần sửa
	if s := calculateSimilarity("abcd", "abce"); s != 0.75 {
		t.Fatalf("one substitution similarity = %v", s)
	}
	for _, pair := range [][2]string{{"a", "xyzxyz"}, {"da nang", "ha noi"}, {"zzzz", "bien xanh"}} {
		if s := calculateSimilarity(pair[0], pair[1]); s < 0 || s > 1 {
			t.Fatalf("similarity(%q, %q) = %v out of [0, 1]", pair[0], pair[1], s)
		}
	}
}

func TestFacadeSearchSkipsInactiveHotels(t *testing.T) {
	api := newFakeAPI()
	api.hotels = append(searchFixture(), models.Hotel{ID: "h4", Name: "Đóng cửa", City: "Đà Nẵng", State: false})
	facade, _, _, _ := newTestFacade(api)

	all, err := facade.SearchHotels(context.Background(), guestSession, "")
	if err != nil || len(all) != 3 {
		t.Fatalf("unexpected result %v %+v", err, all)
	}
	found, err := facade.SearchHotels(context.Background(), guestSession, "da nang")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, h := range found {
		if h.ID == "h4" {
			t.Fatalf("inactive hotel returned")
		}
	}
}

func TestRankHotelsToleratesTypos(t *testing.T) {
	ranked := RankHotels("ha noii", searchFixture())
	if len(ranked) == 0 || ranked[0].Hotel.ID != "h2" {
		t.Fatalf("unexpected ranking %+v", ranked)
	}
}
