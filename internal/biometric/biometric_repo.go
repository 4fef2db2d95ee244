package biometric

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	InsertIfAbsent(ctx context.Context, p *Punch) (bool, error)
	DeleteBetween(ctx context.Context, from, to time.Time) (int64, error)
	DeleteUnmapped(ctx context.Context) (int64, error)
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

// InsertIfAbsent reports whether p was new; a punch with the same employee
// and instant already stored is ignored.
func (r *repository) InsertIfAbsent(ctx context.Context, p *Punch) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "emp_id"}, {Name: "punched_at"}},
			DoNothing: true,
		}).
		Create(p)
	return res.RowsAffected > 0, res.Error
}

// DeleteBetween removes punches in [from, to).
func (r *repository) DeleteBetween(ctx context.Context, from, to time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("punched_at >= ? AND punched_at < ?", from, to).
		Delete(&Punch{})
	return res.RowsAffected, res.Error
}

func (r *repository) DeleteUnmapped(ctx context.Context) (int64, error) {
	query := `
DELETE FROM biometric_punches bp
WHERE NOT EXISTS (
	SELECT 1 FROM employment_infos ei
	WHERE ei.employee_number = bp.emp_id
		AND ei.user_id IS NOT NULL
)
`
	res := r.db.WithContext(ctx).Exec(query)
	return res.RowsAffected, res.Error
}
