package hotelapi

// Session thông tin đăng nhập của người gọi, truyền tường minh vào mọi request
type Session struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`
	Role   int    `json:"role"`
	Token  string `json:"token"`
}

// Anonymous chưa đăng nhập
func (s Session) Anonymous() bool {
	return s.UserID == "" || s.Token == ""
}
