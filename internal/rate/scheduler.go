package rate

import (
	"context"
	"fmt"
	"sync"
	"time"

	"bookcatalog/internal/config"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Refresher pulls a fresh rate from the external source and applies it.
type Refresher interface {
	Refresh(ctx context.Context) (bool, error)
}

// Scheduler refreshes the rate once a day at a fixed wall-clock time.
type Scheduler struct {
	refresher Refresher
	location  *time.Location
	hour      uint
	minute    uint
	// -----
	mu    sync.Mutex
	sched gocron.Scheduler
}

func (s *Scheduler) Start(ctx context.Context) error {
	scheduler, err := gocron.NewScheduler(gocron.WithLocation(s.location))
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.sched = scheduler
	s.mu.Unlock()

	job := func(jobCtx context.Context) {
		RunRefreshJob(jobCtx, uuid.NewString(), s.refresher)
	}

	j, err := scheduler.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(s.hour, s.minute, 0))),
		gocron.NewTask(job),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = s.Shutdown()
		return err
	}

	scheduler.Start()
	if next, nextErr := j.NextRun(); nextErr == nil {
		logrus.Infof("Next rate refresh at %s", next.In(s.location).Format(time.RFC3339))
	}

	// Stop scheduler when the provided context is canceled.
	go func() {
		<-ctx.Done()
		if sdErr := s.Shutdown(); sdErr != nil {
			logrus.Errorf("Scheduler shutdown error: %v", sdErr)
		}
	}()
	return nil
}

// Shutdown stops the scheduler; calling it again is a no-op.
func (s *Scheduler) Shutdown() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sched == nil {
		return nil
	}
	err := s.sched.Shutdown()
	s.sched = nil
	return err
}

// NewScheduler parses the "HH:MM" run time and the IANA time zone from cfg.
func NewScheduler(refresher Refresher, cfg config.Scheduler) (*Scheduler, error) {
	at, err := time.Parse("15:04", cfg.DailyAt)
	if err != nil {
		return nil, fmt.Errorf("invalid scheduler time %q: %w", cfg.DailyAt, err)
	}
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid scheduler timezone %q: %w", cfg.Timezone, err)
	}
	return &Scheduler{
		refresher: refresher,
		location:  loc,
		hour:      uint(at.Hour()),
		minute:    uint(at.Minute()),
	}, nil
}
