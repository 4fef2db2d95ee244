// Package ratetable holds the statutory contribution tables. Tables are
// versioned JSON files embedded at build time; a new government schedule is
// a new file, not a code change.
package ratetable

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

//go:embed tables/*.json
var tableFS embed.FS

const DefaultVersion = "2025-01"

type SSSBracket struct {
	Floor         decimal.Decimal `json:"floor"`
	MSC           decimal.Decimal `json:"msc"`
	EmployerShare decimal.Decimal `json:"employer_share"`
	EmployeeShare decimal.Decimal `json:"employee_share"`
	EC            decimal.Decimal `json:"ec"`
	EmployerMPF   decimal.Decimal `json:"employer_mpf"`
	EmployeeMPF   decimal.Decimal `json:"employee_mpf"`
}

type SSSTable struct {
	SplitDivisor decimal.Decimal `json:"split_divisor"`
	Brackets     []SSSBracket    `json:"brackets"`
}

type PhilHealthTable struct {
	Rate         decimal.Decimal `json:"rate"`
	SplitDivisor decimal.Decimal `json:"split_divisor"`
}

type PagIBIGTable struct {
	Total        decimal.Decimal `json:"total"`
	SplitDivisor decimal.Decimal `json:"split_divisor"`
}

type Tables struct {
	Version       string          `json:"version"`
	EffectiveFrom string          `json:"effective_from"`
	SSS           SSSTable        `json:"sss"`
	PhilHealth    PhilHealthTable `json:"philhealth"`
	PagIBIG       PagIBIGTable    `json:"pagibig"`
}

// Load reads the embedded tables for version.
func Load(version string) (*Tables, error) {
	if version == "" {
		version = DefaultVersion
	}

	raw, err := tableFS.ReadFile("tables/" + version + ".json")
	if err != nil {
		return nil, fmt.Errorf("rate table %q not found: %w", version, err)
	}

	var t Tables
	if err := json.Unmarshal(raw, &t); err != nil {
		return nil, fmt.Errorf("decode rate table %q: %w", version, err)
	}
	if err := t.validate(); err != nil {
		return nil, fmt.Errorf("rate table %q: %w", version, err)
	}

	sort.SliceStable(t.SSS.Brackets, func(i, j int) bool {
		return t.SSS.Brackets[i].Floor.LessThan(t.SSS.Brackets[j].Floor)
	})
	return &t, nil
}

// Versions lists the embedded table versions.
func Versions() []string {
	entries, _ := tableFS.ReadDir("tables")
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		out = append(out, name[:len(name)-len(".json")])
	}
	return out
}

func (t *Tables) validate() error {
	if len(t.SSS.Brackets) == 0 {
		return fmt.Errorf("sss table has no brackets")
	}
	for _, d := range []decimal.Decimal{t.SSS.SplitDivisor, t.PhilHealth.SplitDivisor, t.PagIBIG.SplitDivisor} {
		if !d.IsPositive() {
			return fmt.Errorf("split divisor must be positive")
		}
	}
	return nil
}

type SSSShare struct {
	BasicSalary   decimal.Decimal
	MSC           decimal.Decimal
	EmployeeShare decimal.Decimal
	EmployerShare decimal.Decimal
	EC            decimal.Decimal
	EmployerMPF   decimal.Decimal
	EmployeeMPF   decimal.Decimal
	TotalEmployer decimal.Decimal
	TotalEmployee decimal.Decimal
	Total         decimal.Decimal
}

// Lookup selects the last bracket whose floor is <= salary, salaries under
// the first floor being clamped up to it, and splits every component by the
// per-period divisor. BasicSalary keeps the unclamped input.
func (t SSSTable) Lookup(salary decimal.Decimal) SSSShare {
	basis := salary
	if lowest := t.Brackets[0].Floor; basis.LessThan(lowest) {
		basis = lowest
	}

	selected := t.Brackets[0]
	for _, b := range t.Brackets {
		if basis.LessThan(b.Floor) {
			break
		}
		selected = b
	}

	half := func(v decimal.Decimal) decimal.Decimal { return v.Div(t.SplitDivisor).Round(2) }

	share := SSSShare{
		BasicSalary:   salary,
		MSC:           half(selected.MSC),
		EmployeeShare: half(selected.EmployeeShare),
		EmployerShare: half(selected.EmployerShare),
		EC:            half(selected.EC),
		EmployerMPF:   half(selected.EmployerMPF),
		EmployeeMPF:   half(selected.EmployeeMPF),
	}
	share.TotalEmployer = share.EmployerShare.Add(share.EC).Add(share.EmployerMPF)
	share.TotalEmployee = share.EmployeeShare.Add(share.EmployeeMPF)
	share.Total = share.TotalEmployer.Add(share.TotalEmployee)
	return share
}

type PhilHealthShare struct {
	BasicSalary decimal.Decimal
	Total       decimal.Decimal
}

func (t PhilHealthTable) Compute(salary decimal.Decimal) PhilHealthShare {
	return PhilHealthShare{
		BasicSalary: salary,
		Total:       salary.Mul(t.Rate).Div(t.SplitDivisor).Round(2),
	}
}

type PagIBIGShare struct {
	EmployeeShare decimal.Decimal
	EmployerShare decimal.Decimal
	Total         decimal.Decimal
}

// Compute ignores salary; the fund is a flat amount split evenly.
func (t PagIBIGTable) Compute() PagIBIGShare {
	each := t.Total.Div(t.SplitDivisor).Round(2)
	return PagIBIGShare{
		EmployeeShare: each,
		EmployerShare: each,
		Total:         each.Add(each),
	}
}
