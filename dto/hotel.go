package dto

import (
	"hotelbooking/models"
	"hotelbooking/types"
)

// HotelQuery tìm khách sạn theo từ khóa
type HotelQuery struct {
	PageQuery
	Q string `form:"q" binding:"omitempty,max=200"`
}

type HotelResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	City        string   `json:"city"`
	Address     string   `json:"address"`
	Description string   `json:"description,omitempty"`
	Stars       int      `json:"stars"`
	Images      []string `json:"images"`
}

func NewHotelResponse(h models.Hotel) HotelResponse {
	images := h.Images
	if images == nil {
		images = []string{}
	}
	return HotelResponse{
		ID:          h.ID,
		Name:        h.Name,
		City:        h.City,
		Address:     h.Address,
		Description: h.Description,
		Stars:       h.Stars,
		Images:      images,
	}
}

// RoomResponse phòng kèm các khoảng ngày bị khóa
type RoomResponse struct {
	ID              string          `json:"id"`
	HotelID         string          `json:"hotelId"`
	Name            string          `json:"name"`
	Type            string          `json:"type"`
	PricePerNight   types.Money     `json:"pricePerNight"`
	Capacity        int             `json:"capacity"`
	NonAvailability []RangeResponse `json:"nonAvailability"`
	Available       bool            `json:"available"`
	Images          []string        `json:"images"`
}

func NewRoomResponse(r models.Room) RoomResponse {
	ranges := make([]RangeResponse, len(r.NonAvailability))
	for i, nr := range r.NonAvailability {
		ranges[i] = NewRangeResponse(nr)
	}
	images := r.Images
	if images == nil {
		images = []string{}
	}
	return RoomResponse{
		ID:              r.ID,
		HotelID:         r.HotelID,
		Name:            r.Name,
		Type:            r.Type,
		PricePerNight:   types.NewMoney(r.PricePerNight),
		Capacity:        r.Capacity,
		NonAvailability: ranges,
		Available:       r.IsBookable(),
		Images:          images,
	}
}

type ServiceResponse struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Price     types.Money `json:"price"`
	Category  string      `json:"category"`
	Available bool        `json:"available"`
}

func NewServiceResponse(s models.Service) ServiceResponse {
	return ServiceResponse{
		ID:        s.ID,
		Name:      s.Name,
		Price:     types.NewMoney(s.Price),
		Category:  s.Category,
		Available: s.Available,
	}
}

// UploadResponse ảnh đã tải lên Cloudinary
type UploadResponse struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}
