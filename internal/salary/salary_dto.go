package salary

type ListSalariesFilter struct {
	UserID string `form:"user_id"`
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
}

type GenerateResult struct {
	Users   int `json:"users"`
	Created int `json:"created"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

type SalaryResponse struct {
	ID            string   `json:"id"`
	UserID        string   `json:"user_id"`
	PayDate       string   `json:"pay_date"`
	ScheduleID    string   `json:"schedule_id"`
	OvertimePayID string   `json:"overtime_pay_id"`
	Snapshot      Snapshot `json:"snapshot"`
	CreatedAt     string   `json:"created_at"`
}
