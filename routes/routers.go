package routes

import (
	"net/http"

	"hotelbooking/constants"
	"hotelbooking/controllers"
	middlewares "hotelbooking/middleware"
	"hotelbooking/services"
	"hotelbooking/services/logger"
	"hotelbooking/services/notification"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
)

// Dependencies những thành phần route cần, khởi tạo trong config
type Dependencies struct {
	Facade   *services.BookingFacade
	Journal  *services.SubmissionJournal
	Uploader services.ImageUploader
	Notifier notification.Service
	Melody   *melody.Melody
	Logger   logger.Logger
}

func SetupRoutes(router *gin.Engine, deps Dependencies) {
	bookingController := controllers.NewBookingController(controllers.BookingControllerOptions{
		Facade: deps.Facade,
		Logger: deps.Logger,
	})
	reservationController := controllers.NewReservationController(deps.Facade)
	hotelController := controllers.NewHotelController(deps.Facade)
	invoiceController := controllers.NewInvoiceController(deps.Facade, deps.Logger)
	reportController := controllers.NewReportController(deps.Facade, deps.Journal)
	uploadController := controllers.NewUploadController(deps.Uploader, deps.Logger)
	notificationController := controllers.NewNotificationController(controllers.NotificationControllerOptions{
		Notifier: deps.Notifier,
		Logger:   deps.Logger,
	})

	manage := middlewares.AuthMiddleware(constants.RoleAdmin, constants.RoleStaff)
	loggedIn := middlewares.AuthMiddleware()
	guest := middlewares.OptionalAuth()

	v1 := router.Group("/api/v1")

	v1.GET("/hotels", guest, hotelController.GetHotels)
	v1.GET("/hotels/:id", guest, hotelController.GetHotel)
	v1.GET("/hotels/:id/rooms", guest, hotelController.GetHotelRooms)
	v1.GET("/hotels/:id/services", guest, hotelController.GetHotelServices)
	v1.GET("/hotels/:id/reservations", manage, reservationController.GetHotelReservations)

	v1.GET("/rooms/:id", guest, bookingController.GetRoom)
	v1.GET("/rooms/:id/calendar", guest, bookingController.Calendar)

	v1.POST("/bookings/quote", guest, bookingController.Quote)
	v1.POST("/bookings/validate", guest, bookingController.Validate)
	v1.POST("/bookings", loggedIn, bookingController.Submit)
	v1.PUT("/bookings/draft", guest, bookingController.SaveDraft)
	v1.GET("/bookings/draft/:roomId", guest, bookingController.GetDraft)

	v1.GET("/reservations", loggedIn, reservationController.GetMyReservations)
	v1.GET("/reservations/:id", loggedIn, reservationController.GetReservation)
	v1.PUT("/reservations/:id", loggedIn, reservationController.EditReservation)
	v1.PATCH("/reservations/:id/status", loggedIn, reservationController.UpdateStatus)
	v1.GET("/reservations/:id/cancellation-notice", loggedIn, reservationController.CancellationNotice)

	v1.GET("/invoices/:id", loggedIn, invoiceController.GetInvoice)
	v1.GET("/invoices/:id/pdf", loggedIn, invoiceController.DownloadInvoicePDF)

	v1.GET("/reports/rooms/:id/occupancy", manage, reportController.GetOccupancy)
	v1.GET("/reports/hotels/:id/revenue", manage, reportController.GetRevenue)
	v1.GET("/reports/submissions", middlewares.AuthMiddleware(constants.RoleAdmin), reportController.GetSubmissions)

	v1.POST("/uploads/images", manage, uploadController.UploadImage)
	v1.POST("/notifications/broadcast", middlewares.AuthMiddleware(constants.RoleAdmin), notificationController.Broadcast)

	//ws
	if deps.Melody != nil {
		router.GET("/ws", func(c *gin.Context) {
			_ = deps.Melody.HandleRequest(c.Writer, c.Request)
		})
	}

	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
}
