package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-payroll/internal/config"
	"go-payroll/internal/salary"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakeSalaries struct {
	salary.Service
	calls int
}

func (f *fakeSalaries) Generate(context.Context) (salary.GenerateResult, error) {
	f.calls++
	return salary.GenerateResult{Users: 2, Created: 2}, nil
}

func TestJobs_DefaultSpecsParse(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	list := jobs(&modules{}, cfg)
	names := make([]string, 0, len(list))
	for _, j := range list {
		names = append(names, j.name)
	}
	assert.Equal(t, []string{"salary_generation", "total_payroll", "holiday_resync", "schedule_creation"}, names)

	c, err := newCron(list, cfg.Location, zap.NewNop())
	require.NoError(t, err)
	assert.Len(t, c.Entries(), 4)
}

func TestNewCron_RejectsBadSpec(t *testing.T) {
	_, err := newCron([]job{{
		name: "broken",
		spec: "every tuesday",
		run:  func(context.Context) error { return errors.New("unreachable") },
	}}, time.UTC, zap.NewNop())
	assert.Error(t, err)
}

func TestJobs_SalaryGenerationLeavesSummaryToService(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	restore := zap.ReplaceGlobals(zap.New(core))
	defer restore()

	cfg, err := config.Load()
	require.NoError(t, err)
	salaries := &fakeSalaries{}

	for _, j := range jobs(&modules{salary: salaries}, cfg) {
		if j.name == "salary_generation" {
			require.NoError(t, j.run(context.Background()))
		}
	}
	assert.Equal(t, 1, salaries.calls)
	assert.Zero(t, logs.FilterMessage("salary generation finished").Len())
}
