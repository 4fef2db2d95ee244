package biometric

import "time"

type PunchRequest struct {
	EmpID        int       `json:"emp_id" binding:"required,gt=0"`
	Name         string    `json:"name"`
	Time         time.Time `json:"time" binding:"required"`
	WorkCode     string    `json:"work_code"`
	WorkState    string    `json:"work_state"`
	TerminalName string    `json:"terminal_name"`
}

type RecordRequest struct {
	Punches []PunchRequest `json:"punches" binding:"required,min=1,dive"`
}

// CSVRow is one line of the device attendance export.
type CSVRow struct {
	EmpID        int    `csv:"emp_id"`
	Name         string `csv:"name"`
	Time         string `csv:"time"`
	WorkCode     string `csv:"work_code"`
	WorkState    string `csv:"work_state"`
	TerminalName string `csv:"terminal_name"`
}

type RecordResult struct {
	Received   int `json:"received"`
	Inserted   int `json:"inserted"`
	Duplicates int `json:"duplicates"`
}

type PurgeResult struct {
	Deleted int64 `json:"deleted"`
}
