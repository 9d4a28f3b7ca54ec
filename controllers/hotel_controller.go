package controllers

import (
	"hotelbooking/dto"
	"hotelbooking/middleware"
	"hotelbooking/response"
	"hotelbooking/services"

	"github.com/gin-gonic/gin"
)

type HotelController struct {
	facade *services.BookingFacade
}

func NewHotelController(facade *services.BookingFacade) *HotelController {
	return &HotelController{facade: facade}
}

// GET /hotels?q=khach san 4 sao da nang
func (ctrl *HotelController) GetHotels(c *gin.Context) {
	var q dto.HotelQuery
	if !bindQuery(c, &q) {
		return
	}
	q.Normalize()
	hotels, err := ctrl.facade.SearchHotels(c.Request.Context(), middleware.CurrentSession(c), q.Q)
	if err != nil {
		response.FromError(c, err, nil)
		return
	}
	page, total := paginate(hotels, q.PageQuery)
	out := make([]dto.HotelResponse, len(page))
	for i, h := range page {
		out[i] = dto.NewHotelResponse(h)
	}
	response.SuccessWithPagination(c, out, q.Page, q.Limit, total)
}

// GET /hotels/:id
func (ctrl *HotelController) GetHotel(c *gin.Context) {
	hotel, err := ctrl.facade.Hotel(c.Request.Context(), middleware.CurrentSession(c), c.Param("id"))
	if err != nil {
		response.FromError(c, err, nil)
		return
	}
	response.Success(c, dto.NewHotelResponse(hotel))
}

// GET /hotels/:id/rooms
func (ctrl *HotelController) GetHotelRooms(c *gin.Context) {
	rooms, err := ctrl.facade.HotelRooms(c.Request.Context(), middleware.CurrentSession(c), c.Param("id"))
	if err != nil {
		response.FromError(c, err, nil)
		return
	}
	out := make([]dto.RoomResponse, len(rooms))
	for i, r := range rooms {
		out[i] = dto.NewRoomResponse(r)
	}
	response.Success(c, out)
}

// GET /hotels/:id/services
func (ctrl *HotelController) GetHotelServices(c *gin.Context) {
	list, err := ctrl.facade.LoadServices(c.Request.Context(), middleware.CurrentSession(c), c.Param("id"))
	if err != nil {
		response.FromError(c, err, nil)
		return
	}
	out := make([]dto.ServiceResponse, 0, len(list))
	for _, s := range list {
		if s.Available || c.Query("all") == "true" {
			out = append(out, dto.NewServiceResponse(s))
		}
	}
	response.Success(c, out)
}

