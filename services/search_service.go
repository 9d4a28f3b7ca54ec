package services

import (
	"context"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"

	"hotelbooking/constants"
	"hotelbooking/models"
	"hotelbooking/services/hotelapi"

	"github.com/fiam/gounidecode/unidecode"
	"github.com/schollz/closestmatch"
	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// ScoredHotel khách sạn kèm điểm phù hợp với từ khóa
type ScoredHotel struct {
	Hotel models.Hotel
	Score int
}

var starPattern = regexp.MustCompile(`(\d+)\s*sao`)

// Hotels danh sách khách sạn đang hoạt động, cache theo hotels:all
func (f *BookingFacade) Hotels(ctx context.Context, sess hotelapi.Session) ([]models.Hotel, error) {
	var hotels []models.Hotel
	found, err := GetFromRedis(ctx, f.rdb, constants.CacheKeyHotels, &hotels)
	if err != nil {
		f.logger.Warn("cache %s: %v", constants.CacheKeyHotels, err)
	}
	if found {
		return hotels, nil
	}

	all, err := f.api.ListHotels(ctx, sess)
	if err != nil {
		return nil, upstreamError(err, "Không tìm thấy khách sạn")
	}
	hotels = make([]models.Hotel, 0, len(all))
	for _, h := range all {
		if h.State {
			hotels = append(hotels, h)
		}
	}
	if err := SetToRedis(ctx, f.rdb, constants.CacheKeyHotels, hotels, constants.HotelsCacheTTL); err != nil {
		f.logger.Warn("cache %s: %v", constants.CacheKeyHotels, err)
	}
	return hotels, nil
}

// Hotel chi tiết khách sạn
func (f *BookingFacade) Hotel(ctx context.Context, sess hotelapi.Session, id string) (models.Hotel, error) {
	hotel, err := f.api.GetHotel(ctx, sess, id)
	if err != nil {
		return models.Hotel{}, upstreamError(err, "Không tìm thấy khách sạn")
	}
	return hotel, nil
}

// HotelRooms các phòng còn bán của khách sạn
func (f *BookingFacade) HotelRooms(ctx context.Context, sess hotelapi.Session, hotelID string) ([]models.Room, error) {
	rooms, err := f.api.ListHotelRooms(ctx, sess, hotelID)
	if err != nil {
		return nil, upstreamError(err, "Không tìm thấy khách sạn")
	}
	out := make([]models.Room, 0, len(rooms))
	for _, r := range rooms {
		if r.State {
			out = append(out, r)
		}
	}
	return out, nil
}

// SearchHotels tìm khách sạn theo từ khóa tự do ("khach san 4 sao da nang"), trả về theo điểm giảm dần
func (f *BookingFacade) SearchHotels(ctx context.Context, sess hotelapi.Session, query string) ([]models.Hotel, error) {
	hotels, err := f.Hotels(ctx, sess)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(query) == "" {
		return hotels, nil
	}
	scored := RankHotels(query, hotels)
	out := make([]models.Hotel, len(scored))
	for i, s := range scored {
		out[i] = s.Hotel
	}
	return out, nil
}

// RankHotels chấm điểm và lọc các khách sạn có điểm > 0
func RankHotels(query string, hotels []models.Hotel) []ScoredHotel {
	normalized := normalizeInput(query)
	stars := extractStars(normalized)
	cmCity := closestmatch.New(uniqueCities(hotels), []int{2, 3})

	scoreCh := make(chan ScoredHotel, len(hotels))
	var wg sync.WaitGroup
	for _, h := range hotels {
		wg.Add(1)
		go func(h models.Hotel) {
			defer wg.Done()
			scoreCh <- ScoredHotel{Hotel: h, Score: scoreHotel(normalized, stars, h, cmCity)}
		}(h)
	}
	wg.Wait()
	close(scoreCh)

	var result []ScoredHotel
	for s := range scoreCh {
		if s.Score > 0 {
			result = append(result, s)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Score != result[j].Score {
			return result[i].Score > result[j].Score
		}
		return result[i].Hotel.Name < result[j].Hotel.Name
	})
	return result
}

func scoreHotel(query string, stars int, h models.Hotel, cmCity *closestmatch.ClosestMatch) int {
	score := 0
	name := normalizeInput(h.Name)
	if name != "" && (strings.Contains(query, name) || calculateSimilarity(query, name) > 0.7) {
		score += 20
	}
	if stars != -1 && h.Stars == stars {
		score += 15
	}
	if city := normalizeInput(h.City); city != "" {
		if strings.Contains(query, city) || (cmCity.Closest(query) == city && fuzzyContains(query, city)) {
			score += 13
		}
	}
	for _, word := range strings.Fields(query) {
		if len(word) > 2 && strings.Contains(normalizeInput(h.Address), word) {
			score++
		}
	}
	return score
}

func normalizeInput(input string) string {
	return strings.ToLower(strings.TrimSpace(unidecode.Unidecode(input)))
}

func calculateSimilarity(a, b string) float64 {
	distance := levenshtein.DistanceForStrings([]rune(a), []rune(b), levenshtein.DefaultOptionsWithSub)
	maxLen := len([]rune(a))
	if l := len([]rune(b)); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(distance)/float64(maxLen)
}

// fuzzyContains query có một cụm từ gần giống target (gõ sai vài ký tự)
func fuzzyContains(query, target string) bool {
	words := strings.Fields(query)
	n := len(strings.Fields(target))
	for i := 0; i+n <= len(words); i++ {
		if calculateSimilarity(strings.Join(words[i:i+n], " "), target) > 0.7 {
			return true
		}
	}
	return false
}

func extractStars(query string) int {
	match := starPattern.FindStringSubmatch(query)
	if len(match) < 2 {
		return -1
	}
	n, err := strconv.Atoi(match[1])
	if err != nil {
		return -1
	}
	return n
}

func uniqueCities(hotels []models.Hotel) []string {
	seen := make(map[string]bool)
	var out []string
	for _, h := range hotels {
		city := normalizeInput(h.City)
		if city != "" && !seen[city] {
			seen[city] = true
			out = append(out, city)
		}
	}
	return out
}
