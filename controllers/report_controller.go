package controllers

import (
	"hotelbooking/dto"
	"hotelbooking/middleware"
	"hotelbooking/response"
	"hotelbooking/services"
	"hotelbooking/validator"

	"github.com/gin-gonic/gin"
)

type ReportController struct {
	facade  *services.BookingFacade
	journal *services.SubmissionJournal
}

func NewReportController(facade *services.BookingFacade, journal *services.SubmissionJournal) *ReportController {
	return &ReportController{facade: facade, journal: journal}
}

// GET /reports/rooms/:id/occupancy?month=2025-07
func (ctrl *ReportController) GetOccupancy(c *gin.Context) {
	var q dto.OccupancyQuery
	if !bindQuery(c, &q) {
		return
	}
	month, err := validator.ParseMonth(q.Month, ctrl.facade.Today())
	if err != nil {
		response.FromError(c, err, nil)
		return
	}
	report, err := ctrl.facade.Occupancy(c.Request.Context(), middleware.CurrentSession(c), c.Param("id"), month)
	if err != nil {
		response.FromError(c, err, nil)
		return
	}
	response.Success(c, dto.NewOccupancyResponse(report))
}

// GET /reports/hotels/:id/revenue?from=2025-01-01&to=2025-07-01
func (ctrl *ReportController) GetRevenue(c *gin.Context) {
	var q dto.RevenueQuery
	if !bindQuery(c, &q) {
		return
	}
	from, to, err := q.Range(ctrl.facade.Location())
	if err != nil {
		response.FromError(c, err, nil)
		return
	}
	report, err := ctrl.facade.Revenue(c.Request.Context(), middleware.CurrentSession(c), c.Param("id"), from, to)
	if err != nil {
		response.FromError(c, err, nil)
		return
	}
	response.Success(c, dto.NewRevenueResponse(report))
}

// GET /reports/submissions?outcome=failed
func (ctrl *ReportController) GetSubmissions(c *gin.Context) {
	var q dto.SubmissionQuery
	if !bindQuery(c, &q) {
		return
	}
	q.Normalize()
	logs, total, err := ctrl.journal.List(c.Request.Context(), services.JournalFilter{
		Outcome: q.Outcome,
		UserID:  q.UserID,
		RoomID:  q.RoomID,
		Page:    q.Page,
		Limit:   q.Limit,
	})
	if err != nil {
		response.FromError(c, err, nil)
		return
	}
	out := make([]dto.SubmissionLogResponse, len(logs))
	for i, l := range logs {
		out[i] = dto.NewSubmissionLogResponse(l)
	}
	response.SuccessWithPagination(c, out, q.Page, q.Limit, int(total))
}
