package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Sweeper is the slice of the verification workflow the scheduler
// drives: escalate overdue records, nudge quiet employers.
type Sweeper interface {
	CheckTimeouts(ctx context.Context) (int, error)
	SendReminders(ctx context.Context) (int, error)
}

// Clock abstracts wall time so sweeps can be tested without sleeping.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// Config holds the sweep cadence. Timeout sweeps run on a fixed
// interval; reminder sweeps run at fixed local-day hours so employers
// are nudged during business hours, not at 3am.
type Config struct {
	TimeoutEvery  time.Duration
	ReminderHours []int
}

func DefaultConfig() Config {
	return Config{
		TimeoutEvery:  time.Hour,
		ReminderHours: []int{9, 15},
	}
}

type Scheduler struct {
	sweeper Sweeper
	cfg     Config
	clock   Clock
	logger  *zap.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	lastRun map[int]time.Time // reminder hour -> day it last ran
}

// Option configures optional scheduler collaborators.
type Option func(*Scheduler)

// WithClock substitutes wall time; tests use it to drive the schedule
// without sleeping.
func WithClock(c Clock) Option {
	return func(s *Scheduler) { s.clock = c }
}

func New(sweeper Sweeper, cfg Config, logger *zap.Logger, opts ...Option) *Scheduler {
	if cfg.TimeoutEvery <= 0 {
		cfg.TimeoutEvery = time.Hour
	}
	if len(cfg.ReminderHours) == 0 {
		cfg.ReminderHours = DefaultConfig().ReminderHours
	}
	s := &Scheduler{
		sweeper: sweeper,
		cfg:     cfg,
		clock:   systemClock{},
		logger:  logger.Named("scheduler"),
		lastRun: make(map[int]time.Time),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start launches the sweep loop. Stop waits for an in-flight sweep to
// finish, so sweeps never outlive the process shutdown sequence.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})
	// the channel is passed in, not re-read from the struct: Stop nils
	// s.done under the mutex and may do so before the goroutine starts
	go s.loop(ctx, s.done)
}

func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (s *Scheduler) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	// the minute ticker drives reminder-hour detection; timeout sweeps
	// keep their own cadence off the same tick
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	// sweep once at startup to catch records that went overdue while
	// the process was down
	lastTimeout := s.clock.Now()
	s.runTimeouts(ctx)
	s.Tick(ctx, s.clock.Now())
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			now := s.clock.Now()
			if now.Sub(lastTimeout) >= s.cfg.TimeoutEvery {
				lastTimeout = now
				s.runTimeouts(ctx)
			}
			s.Tick(ctx, now)
		}
	}
}

// Tick runs the reminder sweep if now falls in one of the configured
// reminder hours and that hour has not run yet today. Exported so tests
// can drive the schedule with a fake clock.
func (s *Scheduler) Tick(ctx context.Context, now time.Time) {
	for _, h := range s.cfg.ReminderHours {
		if now.Hour() != h {
			continue
		}
		day := now.Truncate(24 * time.Hour)
		s.mu.Lock()
		ran := s.lastRun[h].Equal(day)
		if !ran {
			s.lastRun[h] = day
		}
		s.mu.Unlock()
		if !ran {
			s.runReminders(ctx)
		}
	}
}

func (s *Scheduler) runTimeouts(ctx context.Context) {
	n, err := s.sweeper.CheckTimeouts(ctx)
	if err != nil {
		s.logger.Error("timeout sweep failed", zap.Error(err))
		return
	}
	if n > 0 {
		s.logger.Info("timeout sweep escalated records", zap.Int("count", n))
	}
}

func (s *Scheduler) runReminders(ctx context.Context) {
	n, err := s.sweeper.SendReminders(ctx)
	if err != nil {
		s.logger.Error("reminder sweep failed", zap.Error(err))
		return
	}
	if n > 0 {
		s.logger.Info("reminder sweep sent reminders", zap.Int("count", n))
	}
}
