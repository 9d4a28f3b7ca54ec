package controllers

import (
	"hotelbooking/dto"
	"hotelbooking/middleware"
	"hotelbooking/response"
	"hotelbooking/services"

	"github.com/gin-gonic/gin"
)

type ReservationController struct {
	facade *services.BookingFacade
}

func NewReservationController(facade *services.BookingFacade) *ReservationController {
	return &ReservationController{facade: facade}
}

// GET /reservations?status=active&page=1&limit=10
func (ctrl *ReservationController) GetMyReservations(c *gin.Context) {
	var q dto.ReservationQuery
	if !bindQuery(c, &q) {
		return
	}
	q.Normalize()
	list, err := ctrl.facade.MyReservations(c.Request.Context(), middleware.CurrentSession(c))
	if err != nil {
		response.FromError(c, err, nil)
		return
	}
	page, total := paginate(services.FilterReservations(list, q.Status), q.PageQuery)
	response.SuccessWithPagination(c, dto.NewReservationList(page), q.Page, q.Limit, total)
}

// GET /reservations/:id
func (ctrl *ReservationController) GetReservation(c *gin.Context) {
	res, err := ctrl.facade.GetReservation(c.Request.Context(), middleware.CurrentSession(c), c.Param("id"))
	if err != nil {
		response.FromError(c, err, nil)
		return
	}
	response.Success(c, dto.NewReservationResponse(res))
}

// PUT /reservations/:id
func (ctrl *ReservationController) EditReservation(c *gin.Context) {
	var req dto.EditReservationRequest
	if !bindJSON(c, &req) {
		return
	}
	in, err := req.ToInput(ctrl.facade.Location())
	if err != nil {
		response.FromError(c, err, nil)
		return
	}
	res, snap, err := ctrl.facade.EditReservation(c.Request.Context(), middleware.CurrentSession(c), c.Param("id"), in)
	if err != nil {
		var data interface{}
		if snap.FormID != "" {
			data = dto.NewFlowResponse(snap)
		}
		response.FromError(c, err, data)
		return
	}
	out := dto.EditReservationResponse{Reservation: dto.NewReservationResponse(res)}
	if snap.Quote != nil {
		quote := dto.NewQuoteResponse(*snap.Quote)
		out.Quote = &quote
	}
	response.Success(c, out)
}

// PATCH /reservations/:id/status
func (ctrl *ReservationController) UpdateStatus(c *gin.Context) {
	var req dto.UpdateReservationStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	res, notice, err := ctrl.facade.ChangeStatus(c.Request.Context(), middleware.CurrentSession(c), c.Param("id"), req.Status)
	if err != nil {
		response.FromError(c, err, nil)
		return
	}
	response.Success(c, dto.StatusChangeResponse{Reservation: dto.NewReservationResponse(res), Notice: notice})
}

// GET /hotels/:id/reservations (admin, nhân viên)
func (ctrl *ReservationController) GetHotelReservations(c *gin.Context) {
	var q dto.ReservationQuery
	if !bindQuery(c, &q) {
		return
	}
	q.Normalize()
	list, err := ctrl.facade.HotelReservations(c.Request.Context(), middleware.CurrentSession(c), c.Param("id"), q.Status)
	if err != nil {
		response.FromError(c, err, nil)
		return
	}
	page, total := paginate(list, q.PageQuery)
	response.SuccessWithPagination(c, dto.NewReservationList(page), q.Page, q.Limit, total)
}

// GET /reservations/:id/cancellation-notice
func (ctrl *ReservationController) CancellationNotice(c *gin.Context) {
	notice, err := ctrl.facade.PreviewCancellation(c.Request.Context(), middleware.CurrentSession(c), c.Param("id"))
	if err != nil {
		response.FromError(c, err, nil)
		return
	}
	response.Success(c, gin.H{"notice": notice})
}
