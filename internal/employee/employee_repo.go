package employee

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	FindUserByEmployeeNumber(ctx context.Context, employeeNumber int) (*User, error)
	FindEmploymentInfoByUser(ctx context.Context, userID uuid.UUID) (*EmploymentInfo, error)
	ListActiveUserIDs(ctx context.Context) ([]uuid.UUID, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindUserByEmployeeNumber(ctx context.Context, employeeNumber int) (*User, error) {
	var user User
	err := r.db.WithContext(ctx).
		Joins("JOIN employment_infos ei ON ei.user_id = users.id").
		Where("ei.employee_number = ?", employeeNumber).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *repository) FindEmploymentInfoByUser(ctx context.Context, userID uuid.UUID) (*EmploymentInfo, error) {
	var info EmploymentInfo
	if err := r.db.WithContext(ctx).First(&info, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &info, nil
}

func (r *repository) ListActiveUserIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&User{}).
		Where("is_active = ?", true).
		Order("created_at ASC").
		Pluck("id", &ids).Error
	return ids, err
}
