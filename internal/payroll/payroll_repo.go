package payroll

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Upsert(ctx context.Context, p *Payroll) error
	FindBySalary(ctx context.Context, salaryID uuid.UUID) (*Payroll, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Payroll, error)
	List(ctx context.Context, userID *uuid.UUID) ([]Payroll, error)
	LatestPayDateBefore(ctx context.Context, day time.Time) (*time.Time, error)
	SoonestPayDateAfter(ctx context.Context, day time.Time) (*time.Time, error)
	SumNetPay(ctx context.Context, payDate time.Time) (decimal.Decimal, error)
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

func (r *repository) Upsert(ctx context.Context, p *Payroll) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "salary_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"user_id", "pay_date", "schedule_id", "employment_info_id",
				"gross_pay", "total_deductions", "net_pay", "updated_at",
			}),
		}).
		Create(p).Error
}

func (r *repository) FindBySalary(ctx context.Context, salaryID uuid.UUID) (*Payroll, error) {
	var p Payroll
	if err := r.db.WithContext(ctx).Where("salary_id = ?", salaryID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Payroll, error) {
	var p Payroll
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) List(ctx context.Context, userID *uuid.UUID) ([]Payroll, error) {
	q := r.db.WithContext(ctx)
	if userID != nil {
		q = q.Where("user_id = ?", *userID)
	}
	var rows []Payroll
	err := q.Order("pay_date DESC").Find(&rows).Error
	return rows, err
}

func (r *repository) LatestPayDateBefore(ctx context.Context, day time.Time) (*time.Time, error) {
	return r.payDate(ctx, "MAX(pay_date)", "pay_date < ?", day)
}

func (r *repository) SoonestPayDateAfter(ctx context.Context, day time.Time) (*time.Time, error) {
	return r.payDate(ctx, "MIN(pay_date)", "pay_date > ?", day)
}

func (r *repository) payDate(ctx context.Context, agg, cond string, day time.Time) (*time.Time, error) {
	var out sql.NullTime
	err := r.db.WithContext(ctx).
		Model(&Payroll{}).
		Select(agg).
		Where(cond, day).
		Row().
		Scan(&out)
	if err != nil || !out.Valid {
		return nil, err
	}
	return &out.Time, nil
}

func (r *repository) SumNetPay(ctx context.Context, payDate time.Time) (decimal.Decimal, error) {
	var out decimal.NullDecimal
	err := r.db.WithContext(ctx).
		Model(&Payroll{}).
		Select("SUM(net_pay)").
		Where("pay_date = ?", payDate).
		Row().
		Scan(&out)
	if err != nil {
		return decimal.Zero, err
	}
	if !out.Valid {
		return decimal.Zero, nil
	}
	return out.Decimal, nil
}
