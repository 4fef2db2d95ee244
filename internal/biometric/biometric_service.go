package biometric

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	biometricerrors "go-payroll/internal/biometric/errors"
	"go-payroll/internal/events"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/shared/datex"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	punchRecordedEventType = "punch.recorded"
	aggregatePunch         = "biometric_punch"
)

var csvTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"01/02/2006 15:04:05",
}

type Service interface {
	Record(ctx context.Context, punches []PunchRequest) (RecordResult, error)
	ImportCSV(ctx context.Context, r io.Reader) (RecordResult, error)
	PurgeByDate(ctx context.Context, date string) (PurgeResult, error)
	PurgeUnmapped(ctx context.Context) (PurgeResult, error)
}

type service struct {
	db     *gorm.DB
	repo   Repository
	outbox kafka.OutboxRepository
	loc    *time.Location
	logger *zap.Logger
}

// NewService builds the ingestion service. loc is the zone device exports
// without an offset are read in and purge dates refer to.
func NewService(db *gorm.DB, repo Repository, outbox kafka.OutboxRepository, loc *time.Location, logger ...*zap.Logger) Service {
	l := zap.L().Named("biometric.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("biometric.service")
	}
	if loc == nil {
		loc = time.UTC
	}
	return &service{db: db, repo: repo, outbox: outbox, loc: loc, logger: l}
}

// Record stores the punches not seen before and emits punch.recorded for
// each of them in the same transaction.
func (s *service) Record(ctx context.Context, punches []PunchRequest) (RecordResult, error) {
	result := RecordResult{Received: len(punches)}
	if len(punches) == 0 {
		return result, biometricerrors.ErrEmptyImport
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)
		for _, req := range punches {
			p := &Punch{
				ID:           uuid.New(),
				EmpID:        req.EmpID,
				EmployeeName: req.Name,
				PunchedAt:    req.Time.UTC(),
				WorkCode:     req.WorkCode,
				WorkState:    req.WorkState,
				TerminalName: req.TerminalName,
			}

			inserted, err := qtx.InsertIfAbsent(ctx, p)
			if err != nil {
				return err
			}
			if !inserted {
				result.Duplicates++
				continue
			}
			result.Inserted++

			if err := s.publishRecorded(ctx, tx, p); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return RecordResult{Received: len(punches)}, err
	}

	s.logger.Info("punches recorded",
		zap.Int("received", result.Received),
		zap.Int("inserted", result.Inserted),
		zap.Int("duplicates", result.Duplicates),
	)
	return result, nil
}

func (s *service) ImportCSV(ctx context.Context, r io.Reader) (RecordResult, error) {
	var rows []*CSVRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		s.logger.Warn("csv import rejected", zap.Error(err))
		return RecordResult{}, biometricerrors.ErrInvalidCSV.WithCause(err)
	}

	punches := make([]PunchRequest, 0, len(rows))
	for i, row := range rows {
		at, err := s.parseDeviceTime(row.Time)
		if err != nil || row.EmpID <= 0 {
			return RecordResult{}, biometricerrors.ErrInvalidCSV.WithDetails(map[string]any{
				"line": i + 2,
				"time": row.Time,
			})
		}
		punches = append(punches, PunchRequest{
			EmpID:        row.EmpID,
			Name:         row.Name,
			Time:         at,
			WorkCode:     row.WorkCode,
			WorkState:    row.WorkState,
			TerminalName: row.TerminalName,
		})
	}

	return s.Record(ctx, punches)
}

// PurgeByDate deletes every punch of one local calendar day.
func (s *service) PurgeByDate(ctx context.Context, date string) (PurgeResult, error) {
	d, err := datex.Parse(date)
	if err != nil {
		return PurgeResult{}, biometricerrors.ErrInvalidDate
	}

	from := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, s.loc)
	to := from.AddDate(0, 0, 1)

	deleted, err := s.repo.DeleteBetween(ctx, from, to)
	if err != nil {
		return PurgeResult{}, err
	}

	s.logger.Info("punches purged for date", zap.String("date", date), zap.Int64("deleted", deleted))
	return PurgeResult{Deleted: deleted}, nil
}

// PurgeUnmapped deletes punches whose employee number belongs to no user.
func (s *service) PurgeUnmapped(ctx context.Context) (PurgeResult, error) {
	deleted, err := s.repo.DeleteUnmapped(ctx)
	if err != nil {
		return PurgeResult{}, err
	}

	s.logger.Info("unmapped punches purged", zap.Int64("deleted", deleted))
	return PurgeResult{Deleted: deleted}, nil
}

func (s *service) parseDeviceTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range csvTimeLayouts {
		if t, err := time.ParseInLocation(layout, raw, s.loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized punch time %q", raw)
}

func (s *service) publishRecorded(ctx context.Context, tx *gorm.DB, p *Punch) error {
	empKey := strconv.Itoa(p.EmpID)
	return kafka.Enqueue(ctx, s.outbox, tx,
		events.PunchRecordedTopic, punchRecordedEventType, aggregatePunch, p.ID.String(), "emp:"+empKey,
		events.PunchRecordedEvent{
			EventType:  punchRecordedEventType,
			PunchID:    p.ID.String(),
			EmpID:      p.EmpID,
			PunchedAt:  p.PunchedAt,
			OccurredAt: time.Now().UTC(),
		},
	)
}
