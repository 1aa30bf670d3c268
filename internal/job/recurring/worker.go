package recurring

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/bobbyleu1/bleu-smart-flow-deploy/internal/clock"
	jobdomain "github.com/bobbyleu1/bleu-smart-flow-deploy/internal/job/domain"
)

type Params struct {
	fx.In

	Repo   jobdomain.Repository
	Log    *zap.Logger
	Clock  clock.Clock
	GenID  *snowflake.Node
	Config Config `optional:"true"`
}

// Worker materializes the next occurrence of each recurring job once its
// scheduled date passes through the lookback window.
type Worker struct {
	repo  jobdomain.Repository
	log   *zap.Logger
	clock clock.Clock
	genID *snowflake.Node
	cfg   Config
}

func NewWorker(p Params) *Worker {
	return &Worker{
		repo:  p.Repo,
		log:   p.Log.Named("job.recurring"),
		clock: p.Clock,
		genID: p.GenID,
		cfg:   p.Config.withDefaults(),
	}
}

func (w *Worker) RunForever(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	for {
		if _, err := w.RunOnce(ctx); err != nil {
			w.log.Warn("recurring run failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// RunOnce processes one window and reports how many occurrences it created.
func (w *Worker) RunOnce(ctx context.Context) (int, error) {
	if w.repo == nil {
		return 0, errors.New("recurring_worker_unavailable")
	}

	now := w.clock.Now()
	from := now.Add(-w.cfg.Lookback)

	due, err := w.repo.ListRecurringDue(ctx, from, now)
	if err != nil {
		return 0, err
	}

	created := 0
	for _, job := range due {
		if job.Frequency == nil || !job.Frequency.Valid() {
			w.log.Warn("recurring job without valid frequency",
				zap.Int64("job_id", int64(job.ID)))
			continue
		}
		nextAt := job.ScheduledAt.Add(job.Frequency.Interval())

		exists, err := w.repo.OccurrenceExists(ctx, job.CompanyID, job.ClientID, job.Title, nextAt)
		if err != nil {
			return created, err
		}
		if exists {
			continue
		}

		next := &jobdomain.Job{
			ID:          w.genID.Generate(),
			CompanyID:   job.CompanyID,
			ClientID:    job.ClientID,
			Title:       job.Title,
			Price:       job.Price,
			Status:      jobdomain.StatusPending,
			ScheduledAt: nextAt,
			IsRecurring: true,
			Frequency:   job.Frequency,
			NotifyPhone: job.NotifyPhone,
		}
		if err := w.repo.Insert(ctx, next); err != nil {
			return created, err
		}
		created++
	}

	if created > 0 {
		w.log.Info("recurring occurrences created", zap.Int("count", created))
	}
	return created, nil
}
