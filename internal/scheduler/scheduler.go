// Package scheduler runs the monthly attendance reset.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mfarhila/ABSENSI-GURU/internal/platform/metrics"
)

// Resetter empties the attendance table and reports how many rows went.
type Resetter interface {
	Reset(ctx context.Context) (int64, error)
}

// RunTimeout bounds a single reset run.
const RunTimeout = 5 * time.Minute

type Scheduler struct {
	cron     *cron.Cron
	schedule cron.Schedule
	loc      *time.Location
	job      Resetter
	log      *zap.Logger
	metrics  *metrics.Metrics

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	started bool
}

// New validates spec (standard 5-field cron) and prepares the job. Nothing
// runs until Start.
func New(spec string, loc *time.Location, job Resetter, log *zap.Logger, m *metrics.Metrics) (*Scheduler, error) {
	if job == nil {
		return nil, fmt.Errorf("scheduler: nil resetter")
	}
	if loc == nil {
		loc = time.Local
	}
	if log == nil {
		log = zap.NewNop()
	}
	sched, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("scheduler: invalid spec %q: %w", spec, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{
		schedule: sched,
		loc:      loc,
		job:      job,
		log:      log.Named("scheduler"),
		metrics:  m,
		ctx:      ctx,
		cancel:   cancel,
	}
	s.cron = cron.New(
		cron.WithLocation(loc),
		cron.WithChain(cron.SkipIfStillRunning(cronLogger{s.log})),
	)
	s.cron.Schedule(sched, cron.FuncJob(func() {
		_, _ = s.RunNow(s.ctx)
	}))
	return s, nil
}

func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.started = true
	s.cron.Start()
	s.log.Info("reset job scheduled", zap.Time("next", s.Next()))
}

// Stop cancels a running reset and waits for it to return or for ctx to end.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.cancel()
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RunNow performs one reset immediately.
func (s *Scheduler) RunNow(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, RunTimeout)
	defer cancel()

	start := time.Now()
	n, err := s.job.Reset(ctx)
	s.metrics.Reset(err == nil)
	if err != nil {
		s.log.Error("monthly reset failed", zap.Error(err))
		return 0, err
	}
	s.log.Info("monthly reset done",
		zap.Int64("deleted", n),
		zap.Duration("took", time.Since(start)),
	)
	return n, nil
}

// Next is the next activation time in the scheduler's location.
func (s *Scheduler) Next() time.Time {
	return s.schedule.Next(time.Now().In(s.loc))
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct{ l *zap.Logger }

func (c cronLogger) Info(msg string, kv ...interface{}) {
	c.l.Sugar().Debugw(msg, kv...)
}

func (c cronLogger) Error(err error, msg string, kv ...interface{}) {
	c.l.Sugar().Errorw(msg, append(kv, "error", err)...)
}
