package constants

import "time"

// Role trong token (userinfo.role)
const (
	RoleAdmin = 1
	RoleStaff = 2
	RoleUser  = 3
)

// Redis key prefix
const (
	CacheKeyRoom          = "rooms:"
	CacheKeyHotelServices = "services:hotel:"
	CacheKeyHotels        = "hotels:all"
	CacheKeyCalendar      = "calendar:"
	CacheKeyDraft         = "booking_draft:"
	CacheKeySubmitLock    = "submit_lock:"
)

// TTL
const (
	RoomCacheTTL     = 10 * time.Minute
	ServicesCacheTTL = 10 * time.Minute
	HotelsCacheTTL   = 30 * time.Minute
	CalendarCacheTTL = 10 * time.Minute
	DraftTTL         = 30 * time.Minute
	SubmitLockTTL    = 30 * time.Second
)

// Lock gửi form phải sống lâu hơn các lần gọi hotel API bên trong nó
const (
	SubmitLockUpstreamCalls = 4 // GetRoom, ListHotelServices, ListRoomReservations, Create/Update
	SubmitLockMargin        = 5 * time.Second
)

// CancellationNoticeWindow hủy trong khoảng này trước giờ nhận phòng sẽ có cảnh báo
const CancellationNoticeWindow = 24 * time.Hour

// Gin context key
const (
	ContextSessionID = "sessionId"
	ContextSession   = "session"
	ContextRequestID = "requestId"
)
