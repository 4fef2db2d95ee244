package payslip

type ListPayslipsFilter struct {
	UserID string `form:"user_id"`
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
}

type PayslipResponse struct {
	ID                  string  `json:"id"`
	UserID              string  `json:"user_id"`
	PayrollID           string  `json:"payroll_id"`
	Status              bool    `json:"status"`
	ApprovedAt          *string `json:"approved_at"`
	GeneratedAt         *string `json:"generated_at"`
	EmployeeGeneratedAt *string `json:"employee_generated_at"`
	IsProtected         bool    `json:"is_protected"`
}

// Viewer identifies who is reading payslips.
type Viewer struct {
	UserID  string
	ReadAll bool
}
