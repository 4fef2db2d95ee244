package attendance

type ListAttendanceFilter struct {
	UserID string `form:"user_id"`
	From   string `form:"from"`
	To     string `form:"to"`
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
}

type AttendanceResponse struct {
	ID             string `json:"id"`
	UserID         string `json:"user_id"`
	AttendanceDate string `json:"attendance_date"`
	CheckIn        string `json:"check_in"`
	CheckOut       string `json:"check_out"`
	Status         string `json:"status"`
}
