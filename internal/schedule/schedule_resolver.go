package schedule

import (
	"context"
	"errors"
	"time"

	"go-payroll/internal/shared/datex"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Resolver answers which schedule and shift govern a user's date. A missing
// schedule or shift is reported through the bool, never as an error.
type Resolver interface {
	ResolveSchedule(ctx context.Context, userID uuid.UUID, date time.Time) (*Schedule, bool, error)
	ResolveShift(ctx context.Context, userID uuid.UUID, date time.Time) (*Shift, bool, error)
	ScheduleByWindow(ctx context.Context, userID uuid.UUID, biweekStart time.Time) (*Schedule, bool, error)
	LatestEndingBefore(ctx context.Context, userID uuid.UUID, date time.Time) (*Schedule, bool, error)
	ScheduleByID(ctx context.Context, id uuid.UUID) (*Schedule, bool, error)
}

type resolver struct {
	repo Repository
}

func NewResolver(repo Repository) Resolver {
	return &resolver{repo: repo}
}

func (r *resolver) ResolveSchedule(ctx context.Context, userID uuid.UUID, date time.Time) (*Schedule, bool, error) {
	schedules, err := r.repo.FindCovering(ctx, userID, datex.Normalize(date))
	if err != nil {
		return nil, false, err
	}
	s, ok := Owner(schedules)
	return s, ok, nil
}

func (r *resolver) ResolveShift(ctx context.Context, userID uuid.UUID, date time.Time) (*Shift, bool, error) {
	s, ok, err := r.ResolveSchedule(ctx, userID, date)
	if err != nil || !ok {
		return nil, false, err
	}
	shift, ok := s.ShiftOn(date)
	return shift, ok, nil
}

func (r *resolver) ScheduleByWindow(ctx context.Context, userID uuid.UUID, biweekStart time.Time) (*Schedule, bool, error) {
	schedules, err := r.repo.FindByUserAndStart(ctx, userID, datex.Normalize(biweekStart))
	if err != nil {
		return nil, false, err
	}
	s, ok := Owner(schedules)
	return s, ok, nil
}

func (r *resolver) LatestEndingBefore(ctx context.Context, userID uuid.UUID, date time.Time) (*Schedule, bool, error) {
	s, err := r.repo.FindLatestEndingBefore(ctx, userID, datex.Normalize(date))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return s, true, nil
}

func (r *resolver) ScheduleByID(ctx context.Context, id uuid.UUID) (*Schedule, bool, error) {
	s, err := r.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return s, true, nil
}
