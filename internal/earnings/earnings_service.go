package earnings

import (
	"context"
	"errors"
	"time"

	earningserrors "go-payroll/internal/earnings/errors"
	"go-payroll/internal/events"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	earningsSavedEventType = "earnings.saved"
	aggregateEarnings      = "earnings"
)

type Service interface {
	UpsertEarnings(ctx context.Context, req UpsertEarningsRequest) (EarningsResponse, error)
	GetEarnings(ctx context.Context, userID string) (EarningsResponse, error)
	UpsertDeductions(ctx context.Context, req UpsertDeductionsRequest) (DeductionsResponse, error)
	GetDeductions(ctx context.Context, userID string) (DeductionsResponse, error)
}

type service struct {
	db     *gorm.DB
	repo   Repository
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, outbox kafka.OutboxRepository, logger ...*zap.Logger) Service {
	l := zap.L().Named("earnings.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("earnings.service")
	}
	return &service{db: db, repo: repo, outbox: outbox, logger: l}
}

func (s *service) UpsertEarnings(ctx context.Context, req UpsertEarningsRequest) (EarningsResponse, error) {
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return EarningsResponse{}, earningserrors.ErrInvalidUser
	}
	if anyNegative(req.Basic, req.Allowance, req.Ntax, req.VacationLeave, req.SickLeave) ||
		(req.BasicRate != nil && req.BasicRate.IsNegative()) {
		return EarningsResponse{}, earningserrors.ErrNegativeAmount
	}

	row := &Earnings{
		ID:            uuid.New(),
		UserID:        userID,
		Basic:         req.Basic,
		Allowance:     req.Allowance,
		Ntax:          req.Ntax,
		VacationLeave: req.VacationLeave,
		SickLeave:     req.SickLeave,
	}
	if req.BasicRate != nil {
		row.BasicRate = decimal.NewNullDecimal(*req.BasicRate)
	}

	var saved *Earnings
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)
		if err := qtx.UpsertEarnings(ctx, row); err != nil {
			return err
		}
		var err error
		saved, err = qtx.FindEarningsByUser(ctx, userID)
		if err != nil {
			return err
		}
		return kafka.Enqueue(ctx, s.outbox, tx,
			events.EarningsSavedTopic, earningsSavedEventType, aggregateEarnings, saved.ID.String(), userID.String(),
			events.EarningsSavedEvent{
				EventType:  earningsSavedEventType,
				EarningsID: saved.ID.String(),
				UserID:     userID.String(),
				OccurredAt: time.Now().UTC(),
			},
		)
	})
	if err != nil {
		return EarningsResponse{}, err
	}

	contextutil.GetLogger(ctx, s.logger).Info("earnings saved",
		zap.String("user_id", userID.String()),
		zap.Bool("basic_rate_set", saved.BasicRate.Valid),
	)
	return mapEarningsToResponse(*saved), nil
}

func (s *service) GetEarnings(ctx context.Context, userID string) (EarningsResponse, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return EarningsResponse{}, earningserrors.ErrEarningsNotFound
	}
	row, err := s.repo.FindEarningsByUser(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EarningsResponse{}, earningserrors.ErrEarningsNotFound
		}
		return EarningsResponse{}, err
	}
	return mapEarningsToResponse(*row), nil
}

func (s *service) UpsertDeductions(ctx context.Context, req UpsertDeductionsRequest) (DeductionsResponse, error) {
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return DeductionsResponse{}, earningserrors.ErrInvalidUser
	}
	if anyNegative(req.Wtax, req.Nowork, req.Loan, req.Charges, req.Msfcloan) {
		return DeductionsResponse{}, earningserrors.ErrNegativeAmount
	}

	row := &Deductions{
		ID:       uuid.New(),
		UserID:   userID,
		Wtax:     req.Wtax,
		Nowork:   req.Nowork,
		Loan:     req.Loan,
		Charges:  req.Charges,
		Msfcloan: req.Msfcloan,
	}

	var saved *Deductions
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)
		if err := qtx.UpsertDeductions(ctx, row); err != nil {
			return err
		}
		var err error
		saved, err = qtx.FindDeductionsByUser(ctx, userID)
		return err
	})
	if err != nil {
		return DeductionsResponse{}, err
	}

	contextutil.GetLogger(ctx, s.logger).Info("deductions saved", zap.String("user_id", userID.String()))
	return mapDeductionsToResponse(*saved), nil
}

func (s *service) GetDeductions(ctx context.Context, userID string) (DeductionsResponse, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return DeductionsResponse{}, earningserrors.ErrDeductionsNotFound
	}
	row, err := s.repo.FindDeductionsByUser(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DeductionsResponse{}, earningserrors.ErrDeductionsNotFound
		}
		return DeductionsResponse{}, err
	}
	return mapDeductionsToResponse(*row), nil
}

func anyNegative(values ...decimal.Decimal) bool {
	for _, v := range values {
		if v.IsNegative() {
			return true
		}
	}
	return false
}

func mapEarningsToResponse(e Earnings) EarningsResponse {
	resp := EarningsResponse{
		ID:            e.ID.String(),
		UserID:        e.UserID.String(),
		Basic:         e.Basic,
		Allowance:     e.Allowance,
		Ntax:          e.Ntax,
		VacationLeave: e.VacationLeave,
		SickLeave:     e.SickLeave,
	}
	if e.BasicRate.Valid {
		rate := e.BasicRate.Decimal
		resp.BasicRate = &rate
	}
	return resp
}

func mapDeductionsToResponse(d Deductions) DeductionsResponse {
	return DeductionsResponse{
		ID:       d.ID.String(),
		UserID:   d.UserID.String(),
		Wtax:     d.Wtax,
		Nowork:   d.Nowork,
		Loan:     d.Loan,
		Charges:  d.Charges,
		Msfcloan: d.Msfcloan,
		Total:    d.Total(),
	}
}
