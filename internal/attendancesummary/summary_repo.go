package attendancesummary

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Upsert(ctx context.Context, s *AttendanceSummary) error
	FindByID(ctx context.Context, id uuid.UUID) (*AttendanceSummary, error)
	FindByUserAndStart(ctx context.Context, userID uuid.UUID, start time.Time) (*AttendanceSummary, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]AttendanceSummary, error)
	List(ctx context.Context, userID *uuid.UUID) ([]AttendanceSummary, error)
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

func (r *repository) Upsert(ctx context.Context, s *AttendanceSummary) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "biweek_start"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"attendance_id",
				"actual_hours",
				"overtime_hours",
				"late_minutes",
				"undertime_hours",
				"special_holiday_hours",
				"regular_holiday_hours",
				"updated_at",
			}),
		}).
		Create(s).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*AttendanceSummary, error) {
	var s AttendanceSummary
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) FindByUserAndStart(ctx context.Context, userID uuid.UUID, start time.Time) (*AttendanceSummary, error) {
	var s AttendanceSummary
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND biweek_start = ?", userID, start).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) FindByUser(ctx context.Context, userID uuid.UUID) ([]AttendanceSummary, error) {
	var rows []AttendanceSummary
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("biweek_start ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) List(ctx context.Context, userID *uuid.UUID) ([]AttendanceSummary, error) {
	q := r.db.WithContext(ctx)
	if userID != nil {
		q = q.Where("user_id = ?", *userID)
	}

	var rows []AttendanceSummary
	err := q.Order("biweek_start DESC").Find(&rows).Error
	return rows, err
}
