package payslip

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-payroll/internal/employee"
	employeeerrors "go-payroll/internal/employee/errors"
	"go-payroll/internal/events"
	"go-payroll/internal/payroll"
	paysliperrors "go-payroll/internal/payslip/errors"
	"go-payroll/internal/pipeline"
	"go-payroll/internal/salary"
	"go-payroll/internal/shared/contextutil"
	"go-payroll/internal/shared/datex"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type PayrollReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*payroll.Payroll, error)
}

type SalaryReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*salary.Salary, error)
}

type Service interface {
	HandlePayrollComputed(ctx context.Context, event events.PayrollComputedEvent) error
	List(ctx context.Context, viewer Viewer, userID string) ([]PayslipResponse, error)
	Approve(ctx context.Context, id string) (PayslipResponse, error)
	// Download renders the payslip and stamps who generated it.
	Download(ctx context.Context, viewer Viewer, id string) ([]byte, string, error)
}

type service struct {
	db        *gorm.DB
	repo      Repository
	payrolls  PayrollReader
	salaries  SalaryReader
	directory employee.Directory
	now       func() time.Time
	logger    *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	payrolls PayrollReader,
	salaries SalaryReader,
	directory employee.Directory,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("payslip.publisher")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payslip.publisher")
	}
	return &service{
		db:        db,
		repo:      repo,
		payrolls:  payrolls,
		salaries:  salaries,
		directory: directory,
		now:       time.Now,
		logger:    l,
	}
}

func (s *service) HandlePayrollComputed(ctx context.Context, event events.PayrollComputedEvent) error {
	payrollID, err := uuid.Parse(event.PayrollID)
	if err != nil {
		return pipeline.Permanent(fmt.Errorf("payroll event id: %w", err))
	}

	p, err := s.payrolls.FindByID(ctx, payrollID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pipeline.Skip("payroll %s not found", event.PayrollID)
		}
		return err
	}

	slip := &Payslip{
		ID:          uuid.New(),
		UserID:      p.UserID,
		PayrollID:   p.ID,
		IsProtected: true,
	}

	var created bool
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		created, err = s.repo.WithTx(tx).CreateIfAbsent(ctx, slip)
		return err
	})
	if err != nil {
		return fmt.Errorf("create payslip: %w", err)
	}

	log := contextutil.GetLogger(ctx, s.logger).With(
		zap.String("user_id", p.UserID.String()),
		zap.String("payroll_id", p.ID.String()),
	)
	if !created {
		log.Info("payslip already exists")
		return nil
	}
	log.Info("payslip created", zap.String("payslip_id", slip.ID.String()))
	return nil
}

func (s *service) List(ctx context.Context, viewer Viewer, userID string) ([]PayslipResponse, error) {
	if !viewer.ReadAll {
		userID = viewer.UserID
	}

	var uid *uuid.UUID
	if userID != "" {
		id, err := uuid.Parse(userID)
		if err != nil {
			return []PayslipResponse{}, nil
		}
		uid = &id
	}

	rows, err := s.repo.List(ctx, uid, !viewer.ReadAll)
	if err != nil {
		return nil, err
	}
	out := make([]PayslipResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, mapToResponse(r))
	}
	return out, nil
}

func (s *service) Approve(ctx context.Context, id string) (PayslipResponse, error) {
	slip, err := s.find(ctx, id)
	if err != nil {
		return PayslipResponse{}, err
	}

	var saved *Payslip
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)
		if err := qtx.Approve(ctx, slip.ID, s.now().UTC()); err != nil {
			return err
		}
		var err error
		saved, err = qtx.FindByID(ctx, slip.ID)
		return err
	})
	if err != nil {
		return PayslipResponse{}, err
	}

	contextutil.GetLogger(ctx, s.logger).Info("payslip approved",
		zap.String("payslip_id", saved.ID.String()),
		zap.String("user_id", saved.UserID.String()),
	)
	return mapToResponse(*saved), nil
}

func (s *service) Download(ctx context.Context, viewer Viewer, id string) ([]byte, string, error) {
	slip, err := s.find(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if !viewer.ReadAll {
		if slip.UserID.String() != viewer.UserID {
			return nil, "", paysliperrors.ErrPayslipNotFound
		}
		if !slip.Status {
			return nil, "", paysliperrors.ErrPayslipNotApproved
		}
	}

	p, err := s.payrolls.FindByID(ctx, slip.PayrollID)
	if err != nil {
		return nil, "", fmt.Errorf("load payroll %s: %w", slip.PayrollID, err)
	}
	sal, err := s.salaries.FindByID(ctx, p.SalaryID)
	if err != nil {
		return nil, "", fmt.Errorf("load salary %s: %w", p.SalaryID, err)
	}

	st := Statement{
		PayslipID:  slip.ID.String(),
		PayDate:    datex.Format(p.PayDate),
		Snapshot:   sal.Snapshot.Data(),
		GrossPay:   p.GrossPay,
		Deductions: p.TotalDeductions,
		NetPay:     p.NetPay,
	}
	info, err := s.directory.EmploymentInfo(ctx, slip.UserID)
	switch {
	case err == nil:
		st.EmployeeName = info.FullName()
		st.EmployeeNumber = info.EmployeeNumber
		st.Position = info.Position
	case !errors.Is(err, employeeerrors.ErrEmploymentInfoNotFound):
		return nil, "", err
	}

	pdf := RenderPDF(st)

	at := s.now().UTC()
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if viewer.ReadAll {
			return s.repo.WithTx(tx).StampGenerated(ctx, slip.ID, at)
		}
		return s.repo.WithTx(tx).StampEmployeeGenerated(ctx, slip.ID, at)
	})
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("payslip-%s-%s.pdf", datex.Format(p.PayDate), slip.ID.String()[:8])
	return pdf, filename, nil
}

func (s *service) find(ctx context.Context, id string) (*Payslip, error) {
	pid, err := uuid.Parse(id)
	if err != nil {
		return nil, paysliperrors.ErrPayslipNotFound
	}
	slip, err := s.repo.FindByID(ctx, pid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, paysliperrors.ErrPayslipNotFound
		}
		return nil, err
	}
	return slip, nil
}

func formatStamp(t *time.Time) *string {
	if t == nil {
		return nil
	}
	v := t.UTC().Format(time.RFC3339)
	return &v
}

func mapToResponse(p Payslip) PayslipResponse {
	return PayslipResponse{
		ID:                  p.ID.String(),
		UserID:              p.UserID.String(),
		PayrollID:           p.PayrollID.String(),
		Status:              p.Status,
		ApprovedAt:          formatStamp(p.ApprovedAt),
		GeneratedAt:         formatStamp(p.GeneratedAt),
		EmployeeGeneratedAt: formatStamp(p.EmployeeGeneratedAt),
		IsProtected:         p.IsProtected,
	}
}
