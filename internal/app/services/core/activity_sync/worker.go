package activitySync

import (
	"careplan-service/internal/app/config"
	"careplan-service/internal/app/contracts"
	"careplan-service/internal/pkg/constvars"
	"careplan-service/internal/pkg/utils"
	"context"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const fallbackCronSpec = "@every 30m"

// Worker periodically pulls the activity schedule of every active enrollment
// into the local store. Only the instance holding the leader lock runs a pass.
type Worker struct {
	log         *zap.Logger
	cfg         *config.InternalConfig
	locker      contracts.LockerService
	enrollments contracts.EnrollmentRepository
	activities  contracts.CareplanActivityService
	clock       utils.Clock
	stop        chan struct{}
	cron        *cron.Cron
	runCtx      context.Context
	cancel      context.CancelFunc
}

func NewWorker(log *zap.Logger, cfg *config.InternalConfig, lockerSvc contracts.LockerService, enrollments contracts.EnrollmentRepository, activities contracts.CareplanActivityService, clock utils.Clock) *Worker {
	if clock == nil {
		clock = utils.SystemClock{}
	}
	return &Worker{
		log:         log,
		cfg:         cfg,
		locker:      lockerSvc,
		enrollments: enrollments,
		activities:  activities,
		clock:       clock,
		stop:        make(chan struct{}),
	}
}

func (w *Worker) Start(ctx context.Context) {
	w.runCtx, w.cancel = context.WithCancel(ctx)
	c := cron.New()
	_, err := c.AddFunc(w.cfg.Sync.CronSpec, func() { w.RunOnce(w.runCtx) })
	if err != nil {
		w.log.Warn("activitySync.Worker invalid cron spec, falling back",
			zap.String("cron_spec", w.cfg.Sync.CronSpec),
			zap.String("fallback", fallbackCronSpec),
			zap.Error(err),
		)
		c = cron.New()
		_, _ = c.AddFunc(fallbackCronSpec, func() { w.RunOnce(w.runCtx) })
	}
	c.Start()
	w.cron = c
}

// Stop cancels in-flight passes and waits for the running job to return.
func (w *Worker) Stop() {
	select {
	case <-w.stop:
	default:
		close(w.stop)
	}
	if w.cancel != nil {
		w.cancel()
	}
	if w.cron != nil {
		<-w.cron.Stop().Done()
	}
}

// RunOnce performs a single sync pass and returns the number of enrollments synced.
func (w *Worker) RunOnce(ctx context.Context) int {
	ttl := time.Duration(w.cfg.Sync.LeaderLockTTLInSeconds) * time.Second
	if ttl <= 0 {
		ttl = 2 * time.Minute
	}
	acquired, token, err := w.locker.TryLock(ctx, constvars.RedisKeyActivitySyncLeaderLock, ttl)
	if err != nil {
		w.log.Warn("activitySync.Worker leader lock attempt failed", zap.Error(err))
		return 0
	}
	if !acquired {
		w.log.Info("activitySync.Worker leader lock held by another instance")
		return 0
	}
	defer w.locker.Unlock(context.WithoutCancel(ctx), constvars.RedisKeyActivitySyncLeaderLock, token)

	refreshCtx, cancelRefresh := context.WithCancel(ctx)
	defer cancelRefresh()
	go w.refreshLeaderLock(refreshCtx, token, ttl)

	now := w.clock.Now()
	fromDate := utils.StartOfDay(now)
	toDate := fromDate.AddDate(0, 0, w.cfg.Sync.WindowDays)

	synced := 0
	passID := utils.GenerateRequestID()
	_ = utils.LogOperation(w.log, "activitySync.Worker.RunOnce", passID, func() error {
		for _, provider := range w.providers() {
			synced += w.syncProvider(ctx, provider, now, fromDate, toDate)
			if ctx.Err() != nil {
				return ctx.Err()
			}
		}
		return nil
	})
	return synced
}

func (w *Worker) syncProvider(ctx context.Context, provider string, now, fromDate, toDate time.Time) int {
	enrollments, err := w.enrollments.FindActive(ctx, provider, now)
	if err != nil {
		w.log.Warn("activitySync.Worker listing active enrollments failed",
			zap.String(constvars.LoggingProviderKey, provider),
			zap.Error(err),
		)
		return 0
	}
	w.log.Info("activitySync.Worker syncing provider",
		zap.String(constvars.LoggingProviderKey, provider),
		zap.Int(constvars.LoggingEnrollmentCountKey, len(enrollments)),
	)

	synced := 0
	for i := range enrollments {
		if ctx.Err() != nil {
			return synced
		}
		enrollment := &enrollments[i]
		runCtx := utils.WithRequestID(ctx, utils.GenerateRequestID())
		if _, err := w.activities.SyncActivities(runCtx, provider, enrollment, fromDate, toDate); err != nil {
			w.log.Warn("activitySync.Worker enrollment sync failed",
				zap.String(constvars.LoggingProviderKey, provider),
				zap.String(constvars.LoggingEnrollmentIDKey, enrollment.ProviderEnrollmentID),
				zap.Error(err),
			)
			continue
		}
		synced++
	}
	return synced
}

func (w *Worker) refreshLeaderLock(ctx context.Context, token string, ttl time.Duration) {
	tick := time.NewTicker(ttl / 2)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			if err := w.locker.Refresh(ctx, constvars.RedisKeyActivitySyncLeaderLock, token, ttl); err != nil {
				w.log.Warn("activitySync.Worker failed to refresh leader lock TTL", zap.Error(err))
			}
		}
	}
}

func (w *Worker) providers() []string {
	var providers []string
	for _, provider := range strings.Split(w.cfg.Sync.Providers, ",") {
		if provider = strings.TrimSpace(provider); provider != "" {
			providers = append(providers, provider)
		}
	}
	return providers
}
