package contribution

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	UpsertSet(ctx context.Context, set *Set) error
	FindSetByUser(ctx context.Context, userID uuid.UUID) (*Set, error)
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

func onUser(columns ...string) clause.OnConflict {
	return clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns(append(columns, "table_version", "updated_at")),
	}
}

func (r *repository) UpsertSet(ctx context.Context, set *Set) error {
	db := r.db.WithContext(ctx)
	if err := db.Clauses(onUser(
		"basic_salary", "msc", "employee_share", "employer_share", "ec",
		"employer_mpf", "employee_mpf", "total_employer", "total_employee", "total",
	)).Create(&set.SSS).Error; err != nil {
		return err
	}
	if err := db.Clauses(onUser("basic_salary", "total")).Create(&set.PhilHealth).Error; err != nil {
		return err
	}
	return db.Clauses(onUser("employee_share", "employer_share", "total")).Create(&set.PagIBIG).Error
}

// FindSetByUser returns gorm.ErrRecordNotFound when any of the three rows is
// missing.
func (r *repository) FindSetByUser(ctx context.Context, userID uuid.UUID) (*Set, error) {
	db := r.db.WithContext(ctx)
	var set Set
	if err := db.Where("user_id = ?", userID).First(&set.SSS).Error; err != nil {
		return nil, err
	}
	if err := db.Where("user_id = ?", userID).First(&set.PhilHealth).Error; err != nil {
		return nil, err
	}
	if err := db.Where("user_id = ?", userID).First(&set.PagIBIG).Error; err != nil {
		return nil, err
	}
	return &set, nil
}
