package schedule

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindByID(ctx context.Context, id uuid.UUID) (*Schedule, error)
	FindCovering(ctx context.Context, userID uuid.UUID, date time.Time) ([]Schedule, error)
	FindByUserAndStart(ctx context.Context, userID uuid.UUID, start time.Time) ([]Schedule, error)
	FindLatestEndingBefore(ctx context.Context, userID uuid.UUID, date time.Time) (*Schedule, error)
	FindIntersecting(ctx context.Context, from, to time.Time) ([]Schedule, error)
	FindAll(ctx context.Context) ([]Schedule, error)
	FindByUser(ctx context.Context, userID *uuid.UUID) ([]Schedule, error)
	CreateIfAbsent(ctx context.Context, s *Schedule) (bool, error)
	UpdateHolidays(ctx context.Context, id uuid.UUID, regular, special []string) error
	UpdateFlags(ctx context.Context, id uuid.UUID, updates map[string]any) error
	AddShift(ctx context.Context, s *Schedule, shift *Shift) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Schedule, error) {
	var s Schedule
	if err := r.db.WithContext(ctx).Preload("Shifts", orderedShifts).First(&s, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) FindCovering(ctx context.Context, userID uuid.UUID, date time.Time) ([]Schedule, error) {
	var schedules []Schedule
	err := r.db.WithContext(ctx).
		Preload("Shifts", orderedShifts).
		Where("user_id = ? AND payroll_period_start <= ? AND payroll_period_end >= ?", userID, date, date).
		Find(&schedules).Error
	return schedules, err
}

func (r *repository) FindByUserAndStart(ctx context.Context, userID uuid.UUID, start time.Time) ([]Schedule, error) {
	var schedules []Schedule
	err := r.db.WithContext(ctx).
		Preload("Shifts", orderedShifts).
		Where("user_id = ? AND payroll_period_start = ?", userID, start).
		Find(&schedules).Error
	return schedules, err
}

func (r *repository) FindLatestEndingBefore(ctx context.Context, userID uuid.UUID, date time.Time) (*Schedule, error) {
	var s Schedule
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND payroll_period_end < ?", userID, date).
		Order("payroll_period_end DESC, payroll_period_start DESC").
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) FindIntersecting(ctx context.Context, from, to time.Time) ([]Schedule, error) {
	var schedules []Schedule
	err := r.db.WithContext(ctx).
		Where("payroll_period_start <= ? AND payroll_period_end >= ?", to, from).
		Order("payroll_period_start ASC").
		Find(&schedules).Error
	return schedules, err
}

func (r *repository) FindAll(ctx context.Context) ([]Schedule, error) {
	var schedules []Schedule
	err := r.db.WithContext(ctx).Order("payroll_period_start ASC").Find(&schedules).Error
	return schedules, err
}

func (r *repository) FindByUser(ctx context.Context, userID *uuid.UUID) ([]Schedule, error) {
	q := r.db.WithContext(ctx).Preload("Shifts", orderedShifts)
	if userID != nil {
		q = q.Where("user_id = ?", *userID)
	}

	var schedules []Schedule
	err := q.Order("payroll_period_start DESC").Find(&schedules).Error
	return schedules, err
}

// CreateIfAbsent reports whether s was inserted; an existing
// (user, start, end) row is left untouched.
func (r *repository) CreateIfAbsent(ctx context.Context, s *Schedule) (bool, error) {
	res := r.db.WithContext(ctx).
		Omit("Shifts").
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "user_id"}, {Name: "payroll_period_start"}, {Name: "payroll_period_end"},
			},
			DoNothing: true,
		}).
		Create(s)
	return res.RowsAffected > 0, res.Error
}

func (r *repository) UpdateHolidays(ctx context.Context, id uuid.UUID, regular, special []string) error {
	return r.db.WithContext(ctx).
		Model(&Schedule{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"regular_holidays": pq.StringArray(regular),
			"special_holidays": pq.StringArray(special),
		}).Error
}

func (r *repository) UpdateFlags(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).Model(&Schedule{}).Where("id = ?", id).Updates(updates).Error
}

const replaceShiftOnDate = `
WITH old AS (
	DELETE FROM schedule_shifts ss
	USING shifts sh
	WHERE ss.shift_id = sh.id AND ss.schedule_id = ? AND sh.shift_date = ?
	RETURNING ss.shift_id
)
DELETE FROM shifts WHERE id IN (SELECT shift_id FROM old)
`

// AddShift links shift to s, replacing any shift already linked on the same
// date.
func (r *repository) AddShift(ctx context.Context, s *Schedule, shift *Shift) error {
	db := r.db.WithContext(ctx)
	if err := db.Exec(replaceShiftOnDate, s.ID, shift.ShiftDate).Error; err != nil {
		return err
	}
	if err := db.Create(shift).Error; err != nil {
		return err
	}
	return db.Exec(
		`INSERT INTO schedule_shifts (schedule_id, shift_id) VALUES (?, ?)`,
		s.ID, shift.ID,
	).Error
}

func orderedShifts(db *gorm.DB) *gorm.DB {
	return db.Order("shifts.shift_date ASC, shifts.created_at ASC")
}
