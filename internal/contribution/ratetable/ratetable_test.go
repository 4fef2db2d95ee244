package ratetable

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func loadDefault(t *testing.T) *Tables {
	t.Helper()
	tables, err := Load("")
	require.NoError(t, err)
	return tables
}

func TestLoad(t *testing.T) {
	tables := loadDefault(t)

	assert.Equal(t, "2025-01", tables.Version)
	assert.Len(t, tables.SSS.Brackets, 61)
	assert.Contains(t, Versions(), "2025-01")

	_, err := Load("1999-01")
	assert.Error(t, err)
}

func TestSSSLookup_ClampsBelowLowestFloor(t *testing.T) {
	share := loadDefault(t).SSS.Lookup(d("4000"))

	assert.True(t, share.BasicSalary.Equal(d("4000")))
	assert.True(t, share.MSC.Equal(d("2500")), share.MSC.String())
	assert.True(t, share.EmployerShare.Equal(d("250")))
	assert.True(t, share.EmployeeShare.Equal(d("125")))
	assert.True(t, share.EC.Equal(d("5")))
	assert.True(t, share.TotalEmployer.Equal(d("255")))
	assert.True(t, share.TotalEmployee.Equal(d("125")))
	assert.True(t, share.Total.Equal(d("380")))
}

func TestSSSLookup_PicksLastFloorNotAbove(t *testing.T) {
	share := loadDefault(t).SSS.Lookup(d("20500"))

	// 20250 row: (20250, 22000, 2000, 1000, 30, 50, 25) halved.
	assert.True(t, share.MSC.Equal(d("11000")), share.MSC.String())
	assert.True(t, share.EmployerShare.Equal(d("1000")))
	assert.True(t, share.EmployeeShare.Equal(d("500")))
	assert.True(t, share.EC.Equal(d("15")))
	assert.True(t, share.EmployerMPF.Equal(d("25")))
	assert.True(t, share.EmployeeMPF.Equal(d("12.5")))
	assert.True(t, share.TotalEmployer.Equal(d("1040")))
	assert.True(t, share.TotalEmployee.Equal(d("512.5")))
}

func TestSSSLookup_TopBracket(t *testing.T) {
	share := loadDefault(t).SSS.Lookup(d("100000"))

	assert.True(t, share.MSC.Equal(d("17500")))
	assert.True(t, share.EmployeeMPF.Equal(d("375")))
}

func TestSSSLookup_MonotonicTotals(t *testing.T) {
	table := loadDefault(t).SSS
	prev := decimal.Zero
	for salary := int64(3000); salary <= 40000; salary += 125 {
		total := table.Lookup(decimal.NewFromInt(salary)).Total
		assert.False(t, total.LessThan(prev), "salary %d", salary)
		prev = total
	}
}

func TestPhilHealthAndPagIBIG(t *testing.T) {
	tables := loadDefault(t)

	ph := tables.PhilHealth.Compute(d("20000"))
	assert.True(t, ph.Total.Equal(d("500")), ph.Total.String())

	ph = tables.PhilHealth.Compute(d("12345.67"))
	assert.True(t, ph.Total.Equal(d("308.64")), ph.Total.String())

	pi := tables.PagIBIG.Compute()
	assert.True(t, pi.EmployeeShare.Equal(d("100")))
	assert.True(t, pi.EmployerShare.Equal(d("100")))
	assert.True(t, pi.Total.Equal(d("200")))
}
