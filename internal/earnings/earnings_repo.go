package earnings

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	UpsertEarnings(ctx context.Context, e *Earnings) error
	FindEarningsByUser(ctx context.Context, userID uuid.UUID) (*Earnings, error)
	UpsertDeductions(ctx context.Context, d *Deductions) error
	FindDeductionsByUser(ctx context.Context, userID uuid.UUID) (*Deductions, error)
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

func (r *repository) UpsertEarnings(ctx context.Context, e *Earnings) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"basic_rate", "basic", "allowance", "ntax", "vacation_leave", "sick_leave", "updated_at",
			}),
		}).
		Create(e).Error
}

func (r *repository) FindEarningsByUser(ctx context.Context, userID uuid.UUID) (*Earnings, error) {
	var e Earnings
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) UpsertDeductions(ctx context.Context, d *Deductions) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"wtax", "nowork", "loan", "charges", "msfcloan", "updated_at",
			}),
		}).
		Create(d).Error
}

func (r *repository) FindDeductionsByUser(ctx context.Context, userID uuid.UUID) (*Deductions, error) {
	var d Deductions
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&d).Error; err != nil {
		return nil, err
	}
	return &d, nil
}
