package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
)

type sweeperStub struct {
	timeouts  int
	reminders int
	err       error
}

func (s *sweeperStub) CheckTimeouts(context.Context) (int, error) {
	s.timeouts++
	return 1, s.err
}

func (s *sweeperStub) SendReminders(context.Context) (int, error) {
	s.reminders++
	return 1, s.err
}

func at(hour, min int) time.Time {
	return time.Date(2025, 9, 1, hour, min, 0, 0, time.UTC)
}

func TestTick_RunsRemindersAtConfiguredHours(t *testing.T) {
	sw := &sweeperStub{}
	s := New(sw, DefaultConfig(), zap.NewNop())
	ctx := context.Background()

	s.Tick(ctx, at(8, 59))
	if sw.reminders != 0 {
		t.Fatalf("reminder sweep ran outside its hour")
	}

	s.Tick(ctx, at(9, 0))
	if sw.reminders != 1 {
		t.Fatalf("reminders=%d, want 1", sw.reminders)
	}

	// same hour, later minute: must not run twice in one day
	s.Tick(ctx, at(9, 30))
	if sw.reminders != 1 {
		t.Fatalf("reminders=%d, hour ran twice", sw.reminders)
	}

	s.Tick(ctx, at(15, 5))
	if sw.reminders != 2 {
		t.Fatalf("reminders=%d, want 2 after the afternoon slot", sw.reminders)
	}
}

func TestTick_RunsAgainNextDay(t *testing.T) {
	sw := &sweeperStub{}
	s := New(sw, DefaultConfig(), zap.NewNop())
	ctx := context.Background()

	s.Tick(ctx, at(9, 0))
	s.Tick(ctx, at(9, 0).AddDate(0, 0, 1))
	if sw.reminders != 2 {
		t.Fatalf("reminders=%d, want one per day", sw.reminders)
	}
}

func TestTick_SweepErrorDoesNotPanicOrStick(t *testing.T) {
	sw := &sweeperStub{err: errors.New("db gone")}
	s := New(sw, DefaultConfig(), zap.NewNop())
	ctx := context.Background()

	s.Tick(ctx, at(9, 0))
	s.Tick(ctx, at(15, 0))
	if sw.reminders != 2 {
		t.Fatalf("reminders=%d, later slots must still run after an error", sw.reminders)
	}
}

func TestRunTimeouts(t *testing.T) {
	sw := &sweeperStub{}
	s := New(sw, DefaultConfig(), zap.NewNop())

	s.runTimeouts(context.Background())
	s.runTimeouts(context.Background())
	if sw.timeouts != 2 {
		t.Fatalf("timeouts=%d, want 2", sw.timeouts)
	}
}

func TestStartStop(t *testing.T) {
	sw := &sweeperStub{}
	s := New(sw, Config{TimeoutEvery: time.Hour, ReminderHours: []int{9, 15}}, zap.NewNop())

	s.Start()
	s.Start() // idempotent
	s.Stop()
	s.Stop() // idempotent

	// the startup sweep runs exactly once even with the double Start
	if sw.timeouts != 1 {
		t.Fatalf("timeouts=%d, want 1 startup sweep", sw.timeouts)
	}
}

// Stop can win the race against the freshly spawned loop goroutine; the
// done channel must survive that ordering, not be re-read from the
// struct after Stop nils it.
func TestStartStop_RapidCycles(t *testing.T) {
	sw := &sweeperStub{}
	s := New(sw, Config{TimeoutEvery: time.Hour, ReminderHours: []int{9, 15}}, zap.NewNop())

	for i := 0; i < 200; i++ {
		s.Start()
		s.Stop()
	}
	if sw.timeouts != 200 {
		t.Fatalf("timeouts=%d, want one startup sweep per cycle", sw.timeouts)
	}
}

type fakeClock struct{ t time.Time }

func (c fakeClock) Now() time.Time { return c.t }

func TestNew_WithClock(t *testing.T) {
	sw := &sweeperStub{}
	s := New(sw, Config{TimeoutEvery: time.Hour, ReminderHours: []int{9, 15}},
		zap.NewNop(), WithClock(fakeClock{t: at(9, 0)}))

	// the startup tick reads the injected clock, so 09:00 fires the
	// reminder sweep immediately
	s.Start()
	s.Stop()
	if sw.reminders != 1 {
		t.Fatalf("reminders=%d, injected clock not used", sw.reminders)
	}
}

func TestNew_DefaultsEmptyConfig(t *testing.T) {
	s := New(&sweeperStub{}, Config{}, zap.NewNop())
	if s.cfg.TimeoutEvery != time.Hour {
		t.Errorf("timeout interval=%v", s.cfg.TimeoutEvery)
	}
	if len(s.cfg.ReminderHours) != 2 {
		t.Errorf("reminder hours=%v", s.cfg.ReminderHours)
	}
}
