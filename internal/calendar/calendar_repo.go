package calendar

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateHoliday(ctx context.Context, h *Holiday) error
	FindHolidayByID(ctx context.Context, id string) (*Holiday, error)
	DeleteHoliday(ctx context.Context, id string) error
	FindHolidaysBetween(ctx context.Context, from, to time.Time) ([]Holiday, error)
	CreatePeriod(ctx context.Context, p *PayrollPeriod) error
	CreatePeriodIfAbsent(ctx context.Context, p *PayrollPeriod) (bool, error)
	FindPeriodByID(ctx context.Context, id string) (*PayrollPeriod, error)
	FindAllPeriods(ctx context.Context) ([]PayrollPeriod, error)
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

func (r *repository) CreateHoliday(ctx context.Context, h *Holiday) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *repository) FindHolidayByID(ctx context.Context, id string) (*Holiday, error) {
	var h Holiday
	if err := r.db.WithContext(ctx).First(&h, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *repository) DeleteHoliday(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Holiday{}, "id = ?", id).Error
}

func (r *repository) FindHolidaysBetween(ctx context.Context, from, to time.Time) ([]Holiday, error) {
	var holidays []Holiday
	err := r.db.WithContext(ctx).
		Where("holiday_date BETWEEN ? AND ?", from, to).
		Order("holiday_date ASC, holiday_type ASC").
		Find(&holidays).Error
	return holidays, err
}

func (r *repository) CreatePeriod(ctx context.Context, p *PayrollPeriod) error {
	return r.db.WithContext(ctx).Create(p).Error
}

// CreatePeriodIfAbsent inserts p unless its range exists and reports whether
// a row was written.
func (r *repository) CreatePeriodIfAbsent(ctx context.Context, p *PayrollPeriod) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "period_start"}, {Name: "period_end"}},
			DoNothing: true,
		}).
		Create(p)
	return res.RowsAffected > 0, res.Error
}

func (r *repository) FindPeriodByID(ctx context.Context, id string) (*PayrollPeriod, error) {
	var p PayrollPeriod
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) FindAllPeriods(ctx context.Context) ([]PayrollPeriod, error) {
	var periods []PayrollPeriod
	err := r.db.WithContext(ctx).
		Order("period_start ASC, period_end ASC").
		Find(&periods).Error
	return periods, err
}
