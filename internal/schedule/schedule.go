// Package schedule runs the notification sweeps on cron specs. Every run
// takes a Redis lock first, so only one instance sweeps at a time.
package schedule

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bsm/redislock"
	"github.com/robfig/cron/v3"
)

const defaultTTL = 10 * time.Minute

const (
	JobExpiring = "expiring"
	JobExpired  = "expired"
	JobArchive  = "archive"
)

var (
	ErrLocked     = errors.New("sweep already running on another instance")
	ErrUnknownJob = errors.New("unknown job")
)

//go:generate mockgen -source=schedule.go -destination=schedule_mock.go -package=schedule
type Locker interface {
	// Lock obtains key for ttl and returns its release func, or ErrLocked.
	Lock(ctx context.Context, key string, ttl time.Duration) (func(), error)
}

type Sweeper interface {
	SweepExpiring(ctx context.Context) (int, error)
	SweepExpired(ctx context.Context) (int, error)
	ArchiveRead(ctx context.Context) (int64, error)
}

type Job struct {
	Name string
	Spec string
	Run  func(ctx context.Context) error
}

type Specs struct {
	Expiring string
	Expired  string
	Archive  string
}

// SweepJobs builds the three notification sweeps.
func SweepJobs(s Sweeper, specs Specs) []Job {
	return []Job{
		{Name: JobExpiring, Spec: specs.Expiring, Run: func(ctx context.Context) error {
			n, err := s.SweepExpiring(ctx)
			slog.Info("expiring sweep finished", "created", n)

			return err
		}},
		{Name: JobExpired, Spec: specs.Expired, Run: func(ctx context.Context) error {
			n, err := s.SweepExpired(ctx)
			slog.Info("expired sweep finished", "finished", n)

			return err
		}},
		{Name: JobArchive, Spec: specs.Archive, Run: func(ctx context.Context) error {
			n, err := s.ArchiveRead(ctx)
			slog.Info("archive sweep finished", "deleted", n)

			return err
		}},
	}
}

type Scheduler struct {
	cron   *cron.Cron
	locker Locker
	ttl    time.Duration
	jobs   map[string]Job
}

// New registers every job with a non-empty spec on the cron. Jobs without a
// spec can still be started with RunNow.
func New(locker Locker, ttl time.Duration, jobs ...Job) (*Scheduler, error) {
	if ttl <= 0 {
		ttl = defaultTTL
	}

	s := &Scheduler{
		cron:   cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		locker: locker,
		ttl:    ttl,
		jobs:   make(map[string]Job, len(jobs)),
	}

	for _, job := range jobs {
		s.jobs[job.Name] = job

		if job.Spec == "" {
			continue
		}

		if _, err := s.cron.AddFunc(job.Spec, func() { s.scheduled(job) }); err != nil {
			return nil, fmt.Errorf("scheduling %s: %w", job.Name, err)
		}
	}

	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the cron and returns a context done when running jobs finish.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

// RunNow runs the named job immediately, under the same lock as the cron.
func (s *Scheduler) RunNow(ctx context.Context, name string) error {
	job, ok := s.jobs[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownJob, name)
	}

	return s.run(ctx, job)
}

func (s *Scheduler) scheduled(job Job) {
	err := s.run(context.Background(), job)

	switch {
	case errors.Is(err, ErrLocked):
		slog.Info("sweep skipped, lock held elsewhere", "job", job.Name)
	case err != nil:
		slog.Error("sweep failed", "job", job.Name, "error", err)
	}
}

func (s *Scheduler) run(ctx context.Context, job Job) error {
	release, err := s.locker.Lock(ctx, "sweep:"+job.Name, s.ttl)
	if err != nil {
		return err
	}
	defer release()

	ctx, cancel := context.WithTimeout(ctx, s.ttl)
	defer cancel()

	return job.Run(ctx)
}

// RedisLocker implements Locker with redislock.
type RedisLocker struct {
	client *redislock.Client
}

func NewRedisLocker(client redislock.RedisClient) *RedisLocker {
	return &RedisLocker{client: redislock.New(client)}
}

func (l *RedisLocker) Lock(ctx context.Context, key string, ttl time.Duration) (func(), error) {
	lock, err := l.client.Obtain(ctx, key, ttl, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, ErrLocked
	}

	if err != nil {
		return nil, fmt.Errorf("obtaining lock %s: %w", key, err)
	}

	return func() {
		if err := lock.Release(context.Background()); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			slog.Error("failed to release lock", "key", key, "error", err)
		}
	}, nil
}
