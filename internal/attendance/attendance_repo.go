package attendance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Upsert(ctx context.Context, a *Attendance) (bool, error)
	FindByUserAndDate(ctx context.Context, userID uuid.UUID, date time.Time) (*Attendance, error)
	FindInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]Attendance, error)
	List(ctx context.Context, userID *uuid.UUID, from, to *time.Time) ([]Attendance, error)
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

// Upsert inserts the day's first punch, or moves check_out of the existing
// row forward when a is later. It reports whether a row was written.
func (r *repository) Upsert(ctx context.Context, a *Attendance) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "attendance_date"}},
			DoUpdates: clause.Assignments(map[string]any{
				"check_out":  gorm.Expr("EXCLUDED.check_out"),
				"updated_at": gorm.Expr("EXCLUDED.updated_at"),
			}),
			Where: clause.Where{Exprs: []clause.Expression{
				gorm.Expr("EXCLUDED.check_out > attendances.check_out"),
			}},
		}).
		Create(a)
	return res.RowsAffected > 0, res.Error
}

func (r *repository) FindByUserAndDate(ctx context.Context, userID uuid.UUID, date time.Time) (*Attendance, error) {
	var a Attendance
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND attendance_date = ?", userID, date).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// FindInRange returns the user's rows dated in [from, to).
func (r *repository) FindInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]Attendance, error) {
	var rows []Attendance
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND attendance_date >= ? AND attendance_date < ?", userID, from, to).
		Order("attendance_date ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) List(ctx context.Context, userID *uuid.UUID, from, to *time.Time) ([]Attendance, error) {
	q := r.db.WithContext(ctx)
	if userID != nil {
		q = q.Where("user_id = ?", *userID)
	}
	if from != nil {
		q = q.Where("attendance_date >= ?", *from)
	}
	if to != nil {
		q = q.Where("attendance_date <= ?", *to)
	}

	var rows []Attendance
	err := q.Order("attendance_date DESC, check_in DESC").Find(&rows).Error
	return rows, err
}
