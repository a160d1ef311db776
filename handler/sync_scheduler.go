// ABOUTME: This file implements the periodic sync scheduler
// ABOUTME: Runs incremental rounds on a fixed interval with an optional full resync cadence

package handler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"feed-sync-engine/models"
)

// SyncEngine is the part of the sync orchestrator the scheduler and the
// status API consume.
type SyncEngine interface {
	Sync(ctx context.Context) error
	Resync(ctx context.Context) error
	Stats() models.SyncStats
	Window() models.SyncWindow
}

// SchedulerConfig configures the sync cadences. A zero ResyncInterval
// disables periodic full rounds; incremental rounds still run.
type SchedulerConfig struct {
	SyncInterval   time.Duration `json:"sync_interval"`
	ResyncInterval time.Duration `json:"resync_interval"`
}

// SyncResult describes one completed scheduled round.
type SyncResult struct {
	Kind      string        `json:"kind"` // "incremental" or "full"
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
	Error     error         `json:"-"`
}

// SyncScheduler drives the engine on timers. Overlap between a scheduled
// round and a manual trigger is safe: the engine treats a second concurrent
// start as a no-op.
type SyncScheduler struct {
	engine SyncEngine
	config SchedulerConfig
	logger *slog.Logger

	mu        sync.Mutex
	running   bool
	cancel    context.CancelFunc
	done      chan struct{}
	callbacks []func(SyncResult)
}

func NewSyncScheduler(engine SyncEngine, config SchedulerConfig, logger *slog.Logger) *SyncScheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SyncScheduler{
		engine: engine,
		config: config,
		logger: logger,
	}
}

// AddResultCallback registers an observer notified after every scheduled or
// triggered round. Must be called before Start.
func (s *SyncScheduler) AddResultCallback(fn func(SyncResult)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.callbacks = append(s.callbacks, fn)
}

// Start launches the scheduling loop. It returns an error when the loop is
// already running or the incremental interval is not positive.
func (s *SyncScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return fmt.Errorf("sync scheduler is already running")
	}
	if s.config.SyncInterval <= 0 {
		return fmt.Errorf("sync interval must be positive, got %v", s.config.SyncInterval)
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})
	s.running = true

	s.logger.Info("starting sync scheduler",
		"sync_interval", s.config.SyncInterval,
		"resync_interval", s.config.ResyncInterval)

	go s.loop(ctx)
	return nil
}

// Stop halts the loop and waits for an in-flight round to finish.
func (s *SyncScheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	cancel, done := s.cancel, s.done
	s.running = false
	s.mu.Unlock()

	cancel()
	<-done
	s.logger.Info("sync scheduler stopped")
}

// IsRunning reports whether the scheduling loop is active.
func (s *SyncScheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// TriggerSync runs one incremental round immediately, outside the timers.
func (s *SyncScheduler) TriggerSync(ctx context.Context) error {
	return s.runRound(ctx, "incremental", s.engine.Sync)
}

// TriggerResync runs one full round immediately, outside the timers.
func (s *SyncScheduler) TriggerResync(ctx context.Context) error {
	return s.runRound(ctx, "full", s.engine.Resync)
}

func (s *SyncScheduler) loop(ctx context.Context) {
	defer close(s.done)

	syncTicker := time.NewTicker(s.config.SyncInterval)
	defer syncTicker.Stop()

	var resyncCh <-chan time.Time
	if s.config.ResyncInterval > 0 {
		resyncTicker := time.NewTicker(s.config.ResyncInterval)
		defer resyncTicker.Stop()
		resyncCh = resyncTicker.C
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-resyncCh:
			if err := s.runRound(ctx, "full", s.engine.Resync); err != nil {
				s.logger.Error("scheduled full sync failed", "error", err)
			}
		case <-syncTicker.C:
			if err := s.runRound(ctx, "incremental", s.engine.Sync); err != nil {
				s.logger.Error("scheduled sync failed", "error", err)
			}
		}
	}
}

func (s *SyncScheduler) runRound(ctx context.Context, kind string, run func(context.Context) error) error {
	startedAt := time.Now()
	err := run(ctx)
	s.notify(SyncResult{
		Kind:      kind,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Error:     err,
	})
	return err
}

func (s *SyncScheduler) notify(result SyncResult) {
	s.mu.Lock()
	callbacks := make([]func(SyncResult), len(s.callbacks))
	copy(callbacks, s.callbacks)
	s.mu.Unlock()
	for _, fn := range callbacks {
		fn(result)
	}
}
