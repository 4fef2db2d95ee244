package rbac

// Resources guarded by the API.
const (
	ResourceBiometric    = "biometric"
	ResourceAttendance   = "attendance"
	ResourceSummary      = "attendance_summary"
	ResourceOvertime     = "overtime"
	ResourceEarnings     = "earnings"
	ResourceContribution = "contribution"
	ResourceCalendar     = "calendar"
	ResourceSchedule     = "schedule"
	ResourceSalary       = "salary"
	ResourcePayroll      = "payroll"
	ResourcePayslip      = "payslip"
)

// ActionReadAll lets a role read rows owned by other users.
const ActionReadAll = "read_all"

const modelText = `[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && (p.obj == "*" || r.obj == p.obj) && (p.act == "*" || r.act == p.act)
`

var staffReadable = []string{
	ResourceAttendance, ResourceSummary, ResourceOvertime, ResourceEarnings,
	ResourceContribution, ResourceSchedule, ResourceSalary, ResourcePayroll, ResourcePayslip,
}

func defaultPolicies() [][]string {
	policies := [][]string{
		{"owner", "*", "*"},

		{"admin", ResourceBiometric, "write"},
		{"admin", ResourceBiometric, "delete"},
		{"admin", ResourceCalendar, "read"},
		{"admin", ResourceCalendar, "write"},
		{"admin", ResourceCalendar, "delete"},
		{"admin", ResourceSchedule, "write"},
		{"admin", ResourceOvertime, "write"},
		{"admin", ResourceEarnings, "write"},
		{"admin", ResourceSalary, "write"},
		{"admin", ResourcePayroll, "totals"},
		{"admin", ResourcePayslip, "approve"},

		{"employee", ResourceCalendar, "read"},
	}

	for _, res := range staffReadable {
		policies = append(policies,
			[]string{"admin", res, "read"},
			[]string{"admin", res, ActionReadAll},
			[]string{"employee", res, "read"},
		)
	}
	return policies
}
