package contribution

import "github.com/shopspring/decimal"

type SSSResponse struct {
	BasicSalary   decimal.Decimal `json:"basic_salary"`
	MSC           decimal.Decimal `json:"msc"`
	EmployeeShare decimal.Decimal `json:"employee_share"`
	EmployerShare decimal.Decimal `json:"employer_share"`
	EC            decimal.Decimal `json:"ec"`
	EmployerMPF   decimal.Decimal `json:"employer_mpf"`
	EmployeeMPF   decimal.Decimal `json:"employee_mpf"`
	TotalEmployer decimal.Decimal `json:"total_employer"`
	TotalEmployee decimal.Decimal `json:"total_employee"`
	Total         decimal.Decimal `json:"total"`
}

type PhilHealthResponse struct {
	BasicSalary decimal.Decimal `json:"basic_salary"`
	Total       decimal.Decimal `json:"total"`
}

type PagIBIGResponse struct {
	EmployeeShare decimal.Decimal `json:"employee_share"`
	EmployerShare decimal.Decimal `json:"employer_share"`
	Total         decimal.Decimal `json:"total"`
}

type ContributionsResponse struct {
	UserID        string             `json:"user_id"`
	TableVersion  string             `json:"table_version"`
	SSS           SSSResponse        `json:"sss"`
	PhilHealth    PhilHealthResponse `json:"philhealth"`
	PagIBIG       PagIBIGResponse    `json:"pagibig"`
	EmployeeTotal decimal.Decimal    `json:"employee_total"`
}
