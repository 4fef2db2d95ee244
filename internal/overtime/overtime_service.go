package overtime

import (
	"context"
	"errors"
	"fmt"

	"go-payroll/internal/attendancesummary"
	"go-payroll/internal/config"
	"go-payroll/internal/events"
	overtimeerrors "go-payroll/internal/overtime/errors"
	"go-payroll/internal/pipeline"
	"go-payroll/internal/schedule"
	"go-payroll/internal/shared/contextutil"
	"go-payroll/internal/shared/datex"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SummaryReader is the summary data the consolidator copies from.
type SummaryReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*attendancesummary.AttendanceSummary, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]attendancesummary.AttendanceSummary, error)
}

type Service interface {
	HandleSummarySaved(ctx context.Context, event events.AttendanceSummarySavedEvent) error
	HandleScheduleChanged(ctx context.Context, event events.ScheduleChangedEvent) error
	ListHours(ctx context.Context, userID string) ([]HoursResponse, error)
	UpsertPay(ctx context.Context, req UpsertPayRequest) (PayResponse, error)
	ListPay(ctx context.Context, userID string) ([]PayResponse, error)
}

type service struct {
	db        *gorm.DB
	repo      Repository
	summaries SummaryReader
	resolver  schedule.Resolver
	policy    string
	logger    *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	summaries SummaryReader,
	resolver schedule.Resolver,
	policy string,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("overtime.consolidator")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("overtime.consolidator")
	}
	if policy == "" {
		policy = config.OvertimePolicyGoverned
	}
	return &service{
		db:        db,
		repo:      repo,
		summaries: summaries,
		resolver:  resolver,
		policy:    policy,
		logger:    l,
	}
}

func (s *service) HandleSummarySaved(ctx context.Context, event events.AttendanceSummarySavedEvent) error {
	summaryID, err := uuid.Parse(event.SummaryID)
	if err != nil {
		return pipeline.Permanent(fmt.Errorf("summary event id: %w", err))
	}

	sum, err := s.summaries.FindByID(ctx, summaryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pipeline.Skip("attendance summary %s not found", event.SummaryID)
		}
		return err
	}

	return s.consolidate(ctx, *sum)
}

func (s *service) HandleScheduleChanged(ctx context.Context, event events.ScheduleChangedEvent) error {
	scheduleID, err := uuid.Parse(event.ScheduleID)
	if err != nil {
		return pipeline.Permanent(fmt.Errorf("schedule event id: %w", err))
	}

	sch, ok, err := s.resolver.ScheduleByID(ctx, scheduleID)
	if err != nil {
		return err
	}
	if !ok {
		return pipeline.Skip("schedule %s no longer exists", event.ScheduleID)
	}

	sums, err := s.summaries.FindByUser(ctx, sch.UserID)
	if err != nil {
		return err
	}

	log := contextutil.GetLogger(ctx, s.logger).With(
		zap.String("user_id", sch.UserID.String()),
		zap.String("schedule_id", sch.ID.String()),
		zap.String("policy", s.policy),
	)

	affected := Affected(sums, *sch, s.policy)
	for _, sum := range affected {
		if err := s.consolidate(ctx, sum); err != nil {
			return err
		}
	}

	log.Info("overtime hours refreshed for schedule change",
		zap.Int("summaries", len(sums)),
		zap.Int("consolidated", len(affected)),
	)
	return nil
}

// Affected selects the summaries a change of sch recomputes. The governed
// policy keeps those whose window starts inside the schedule period.
func Affected(sums []attendancesummary.AttendanceSummary, sch schedule.Schedule, policy string) []attendancesummary.AttendanceSummary {
	if policy == config.OvertimePolicyAll {
		return sums
	}
	out := make([]attendancesummary.AttendanceSummary, 0, len(sums))
	for _, sum := range sums {
		if sch.Covers(sum.BiweekStart) {
			out = append(out, sum)
		}
	}
	return out
}

func (s *service) consolidate(ctx context.Context, sum attendancesummary.AttendanceSummary) error {
	log := contextutil.GetLogger(ctx, s.logger).With(
		zap.String("user_id", sum.UserID.String()),
		zap.String("biweek_start", datex.Format(sum.BiweekStart)),
	)

	sch, ok, err := s.resolver.ScheduleByWindow(ctx, sum.UserID, sum.BiweekStart)
	if err != nil {
		return err
	}
	if !ok {
		sch, ok, err = s.resolver.ResolveSchedule(ctx, sum.UserID, sum.BiweekStart)
		if err != nil {
			return err
		}
	}
	if !ok {
		log.Warn("no schedule for summary window, night differential and rest day left at zero")
		sch = nil
	}

	oh := Consolidate(sum, sch)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).UpsertHours(ctx, &oh)
	})
	if err != nil {
		return fmt.Errorf("upsert overtime hours: %w", err)
	}

	log.Info("overtime hours saved",
		zap.Int("regular_ot", oh.RegularOT),
		zap.Int("night_diff", oh.NightDiff),
		zap.Int("rest_day", oh.RestDay),
	)
	return nil
}

func (s *service) ListHours(ctx context.Context, userID string) ([]HoursResponse, error) {
	uid, ok := parseOptionalUser(userID)
	if !ok {
		return []HoursResponse{}, nil
	}
	rows, err := s.repo.ListHours(ctx, uid)
	if err != nil {
		return nil, err
	}
	out := make([]HoursResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, mapHoursToResponse(r))
	}
	return out, nil
}

func (s *service) UpsertPay(ctx context.Context, req UpsertPayRequest) (PayResponse, error) {
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return PayResponse{}, overtimeerrors.ErrInvalidUser
	}
	start, err := datex.Parse(req.BiweekStart)
	if err != nil {
		return PayResponse{}, overtimeerrors.ErrInvalidBiweekStart
	}

	pay := OvertimePay{
		ID:                  uuid.New(),
		UserID:              userID,
		BiweekStart:         start,
		TotalRegularOT:      req.TotalRegularOT,
		TotalRegularHoliday: req.TotalRegularHoliday,
		TotalSpecialHoliday: req.TotalSpecialHoliday,
		TotalRestDay:        req.TotalRestDay,
		TotalNightDiff:      req.TotalNightDiff,
		TotalBackwage:       req.TotalBackwage,
		TotalLate:           req.TotalLate,
		TotalUndertime:      req.TotalUndertime,
	}
	for _, v := range []decimal.Decimal{
		pay.TotalRegularOT, pay.TotalRegularHoliday, pay.TotalSpecialHoliday, pay.TotalRestDay,
		pay.TotalNightDiff, pay.TotalBackwage, pay.TotalLate, pay.TotalUndertime,
	} {
		if v.IsNegative() {
			return PayResponse{}, overtimeerrors.ErrNegativeAmount
		}
	}
	if req.TotalOvertime != nil {
		pay.TotalOvertime = *req.TotalOvertime
	} else {
		pay.TotalOvertime = pay.EarningsTotal()
	}

	var saved *OvertimePay
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)
		if err := qtx.UpsertPay(ctx, &pay); err != nil {
			return err
		}
		var err error
		saved, err = qtx.FindPayByUserAndStart(ctx, userID, start)
		return err
	})
	if err != nil {
		return PayResponse{}, err
	}

	contextutil.GetLogger(ctx, s.logger).Info("overtime pay saved",
		zap.String("user_id", userID.String()),
		zap.String("biweek_start", req.BiweekStart),
		zap.String("total_overtime", saved.TotalOvertime.StringFixed(2)),
	)
	return mapPayToResponse(*saved), nil
}

func (s *service) ListPay(ctx context.Context, userID string) ([]PayResponse, error) {
	uid, ok := parseOptionalUser(userID)
	if !ok {
		return []PayResponse{}, nil
	}
	rows, err := s.repo.ListPay(ctx, uid)
	if err != nil {
		return nil, err
	}
	out := make([]PayResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, mapPayToResponse(r))
	}
	return out, nil
}

// parseOptionalUser returns ok=false for a malformed id, which matches nothing.
func parseOptionalUser(userID string) (*uuid.UUID, bool) {
	if userID == "" {
		return nil, true
	}
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, false
	}
	return &id, true
}

func mapHoursToResponse(oh OvertimeHours) HoursResponse {
	return HoursResponse{
		ID:                  oh.ID.String(),
		AttendanceSummaryID: oh.AttendanceSummaryID.String(),
		UserID:              oh.UserID.String(),
		BiweekStart:         datex.Format(oh.BiweekStart),
		ActualHours:         oh.ActualHours,
		RegularOT:           oh.RegularOT,
		RegularHoliday:      oh.RegularHoliday,
		SpecialHoliday:      oh.SpecialHoliday,
		RestDay:             oh.RestDay,
		NightDiff:           oh.NightDiff,
		Backwage:            oh.Backwage,
		Late:                oh.Late,
		Undertime:           oh.Undertime,
	}
}

func mapPayToResponse(p OvertimePay) PayResponse {
	return PayResponse{
		ID:                  p.ID.String(),
		UserID:              p.UserID.String(),
		BiweekStart:         datex.Format(p.BiweekStart),
		TotalRegularOT:      p.TotalRegularOT,
		TotalRegularHoliday: p.TotalRegularHoliday,
		TotalSpecialHoliday: p.TotalSpecialHoliday,
		TotalRestDay:        p.TotalRestDay,
		TotalNightDiff:      p.TotalNightDiff,
		TotalBackwage:       p.TotalBackwage,
		TotalOvertime:       p.TotalOvertime,
		TotalLate:           p.TotalLate,
		TotalUndertime:      p.TotalUndertime,
	}
}
