package payslip

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	// CreateIfAbsent reports false when the payroll already has a payslip.
	CreateIfAbsent(ctx context.Context, p *Payslip) (bool, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Payslip, error)
	List(ctx context.Context, userID *uuid.UUID, approvedOnly bool) ([]Payslip, error)
	Approve(ctx context.Context, id uuid.UUID, at time.Time) error
	StampGenerated(ctx context.Context, id uuid.UUID, at time.Time) error
	StampEmployeeGenerated(ctx context.Context, id uuid.UUID, at time.Time) error
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

func (r *repository) CreateIfAbsent(ctx context.Context, p *Payslip) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "payroll_id"}},
			DoNothing: true,
		}).
		Create(p)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Payslip, error) {
	var p Payslip
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) List(ctx context.Context, userID *uuid.UUID, approvedOnly bool) ([]Payslip, error) {
	q := r.db.WithContext(ctx)
	if userID != nil {
		q = q.Where("user_id = ?", *userID)
	}
	if approvedOnly {
		q = q.Where("status = ?", true)
	}
	var rows []Payslip
	err := q.Order("created_at DESC").Find(&rows).Error
	return rows, err
}

func (r *repository) Approve(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&Payslip{}).
		Where("id = ? AND status = ?", id, false).
		Updates(map[string]any{"status": true, "approved_at": at, "updated_at": at}).Error
}

func (r *repository) StampGenerated(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&Payslip{}).
		Where("id = ?", id).
		Updates(map[string]any{"generated_at": at, "updated_at": at}).Error
}

// StampEmployeeGenerated records the first employee download only.
func (r *repository) StampEmployeeGenerated(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&Payslip{}).
		Where("id = ? AND employee_generated_at IS NULL", id).
		Updates(map[string]any{"employee_generated_at": at, "updated_at": at}).Error
}
