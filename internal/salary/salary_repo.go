package salary

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	// CreateIfAbsent reports false when a salary for (user, pay date) exists.
	CreateIfAbsent(ctx context.Context, s *Salary) (bool, error)
	ExistsForPayDate(ctx context.Context, userID uuid.UUID, payDate time.Time) (bool, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Salary, error)
	List(ctx context.Context, userID *uuid.UUID) ([]Salary, error)
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

func (r *repository) CreateIfAbsent(ctx context.Context, s *Salary) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "pay_date"}},
			DoNothing: true,
		}).
		Create(s)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repository) ExistsForPayDate(ctx context.Context, userID uuid.UUID, payDate time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Salary{}).
		Where("user_id = ? AND pay_date = ?", userID, payDate).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Salary, error) {
	var s Salary
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) List(ctx context.Context, userID *uuid.UUID) ([]Salary, error) {
	q := r.db.WithContext(ctx)
	if userID != nil {
		q = q.Where("user_id = ?", *userID)
	}
	var rows []Salary
	err := q.Order("pay_date DESC").Find(&rows).Error
	return rows, err
}
