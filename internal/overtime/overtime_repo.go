package overtime

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	UpsertHours(ctx context.Context, oh *OvertimeHours) error
	ListHours(ctx context.Context, userID *uuid.UUID) ([]OvertimeHours, error)
	FindHoursByUserAndStart(ctx context.Context, userID uuid.UUID, start time.Time) (*OvertimeHours, error)
	UpsertPay(ctx context.Context, p *OvertimePay) error
	FindPayByUserAndStart(ctx context.Context, userID uuid.UUID, start time.Time) (*OvertimePay, error)
	LatestPay(ctx context.Context, userID uuid.UUID, limit int) ([]OvertimePay, error)
	ListPay(ctx context.Context, userID *uuid.UUID) ([]OvertimePay, error)
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

func (r *repository) UpsertHours(ctx context.Context, oh *OvertimeHours) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "attendance_summary_id"}, {Name: "user_id"}, {Name: "biweek_start"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"actual_hours", "regular_ot", "regular_holiday", "special_holiday",
				"rest_day", "night_diff", "late", "undertime", "updated_at",
			}),
		}).
		Create(oh).Error
}

func (r *repository) ListHours(ctx context.Context, userID *uuid.UUID) ([]OvertimeHours, error) {
	q := r.db.WithContext(ctx)
	if userID != nil {
		q = q.Where("user_id = ?", *userID)
	}
	var rows []OvertimeHours
	err := q.Order("biweek_start DESC").Find(&rows).Error
	return rows, err
}

func (r *repository) FindHoursByUserAndStart(ctx context.Context, userID uuid.UUID, start time.Time) (*OvertimeHours, error) {
	var oh OvertimeHours
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND biweek_start = ?", userID, start).
		Order("updated_at DESC").
		First(&oh).Error
	if err != nil {
		return nil, err
	}
	return &oh, nil
}

func (r *repository) UpsertPay(ctx context.Context, p *OvertimePay) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "biweek_start"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"total_regular_ot", "total_regular_holiday", "total_special_holiday",
				"total_rest_day", "total_night_diff", "total_backwage", "total_overtime",
				"total_late", "total_undertime", "updated_at",
			}),
		}).
		Create(p).Error
}

func (r *repository) FindPayByUserAndStart(ctx context.Context, userID uuid.UUID, start time.Time) (*OvertimePay, error) {
	var p OvertimePay
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND biweek_start = ?", userID, start).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// LatestPay returns up to limit entries of userID, newest window first.
func (r *repository) LatestPay(ctx context.Context, userID uuid.UUID, limit int) ([]OvertimePay, error) {
	var rows []OvertimePay
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("biweek_start DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *repository) ListPay(ctx context.Context, userID *uuid.UUID) ([]OvertimePay, error) {
	q := r.db.WithContext(ctx)
	if userID != nil {
		q = q.Where("user_id = ?", *userID)
	}
	var rows []OvertimePay
	err := q.Order("biweek_start DESC").Find(&rows).Error
	return rows, err
}
