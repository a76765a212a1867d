package roundqueue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	reportevents "github.com/Black-And-White-Club/barbershop-bot/app/shared/events/report"
	"github.com/Black-And-White-Club/barbershop-bot/app/shared/observability/attr"
	"github.com/Black-And-White-Club/barbershop-bot/app/shared/observability/contestmetrics"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/uptrace/bun"
)

const reportQueue = "report"

// QueueService defines the contract for report job dispatch.
type QueueService interface {
	// RequestReport enqueues a report job. It returns once the job is stored.
	RequestReport(ctx context.Context, p reportevents.ReportRequestedPayloadV1) error
	// GetReportJobs returns queued and finished report jobs for a round (for debugging)
	GetReportJobs(ctx context.Context, roundID string) ([]JobInfo, error)
	HealthCheck(ctx context.Context) error
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

var _ QueueService = (*Service)(nil)

// Service dispatches report jobs for the round module using River.
type Service struct {
	client  *river.Client[pgx.Tx]
	pool    *pgxpool.Pool
	logger  *slog.Logger
	db      *bun.DB
	metrics contestmetrics.Metrics
}

// NewService creates a new River-based queue service.
func NewService(ctx context.Context, bunDB *bun.DB, logger *slog.Logger, dsn string, maxWorkers int, metrics contestmetrics.Metrics, publisher message.Publisher) (*Service, error) {
	ctxLogger := logger.With(
		attr.String("operation", "new_report_queue_service"),
		attr.String("component", "river_queue"),
	)

	start := time.Now()
	metrics.RecordOperationAttempt(ctx, "initialize_queue")

	ctxLogger.Info("Initializing report queue service")

	// River requires pgx, not database/sql
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		ctxLogger.Error("Failed to parse DSN for River", attr.Error(err))
		metrics.RecordOperationFailure(ctx, "initialize_queue")
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		ctxLogger.Error("Failed to create pgx pool for River", attr.Error(err))
		metrics.RecordOperationFailure(ctx, "initialize_queue")
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		ctxLogger.Error("Failed to ping database for River", attr.Error(err))
		metrics.RecordOperationFailure(ctx, "initialize_queue")
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	workers := river.NewWorkers()
	river.AddWorker(workers, NewReportWorker(ctxLogger, publisher))

	if maxWorkers <= 0 {
		maxWorkers = 10
	}
	riverClient, err := river.NewClient(riverpgxv5.New(pool), &river.Config{
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: 1},
			reportQueue:        {MaxWorkers: maxWorkers},
		},
		Workers: workers,
		Logger:  logger,
	})
	if err != nil {
		pool.Close()
		ctxLogger.Error("Failed to create River client", attr.Error(err))
		metrics.RecordOperationFailure(ctx, "initialize_queue")
		return nil, fmt.Errorf("failed to create River client: %w", err)
	}

	metrics.RecordOperationSuccess(ctx, "initialize_queue")
	metrics.RecordOperationDuration(ctx, "initialize_queue", time.Since(start))

	ctxLogger.Info("Report queue service initialized successfully")
	return &Service{
		client:  riverClient,
		pool:    pool,
		logger:  ctxLogger,
		db:      bunDB,
		metrics: metrics,
	}, nil
}

func (s *Service) Start(ctx context.Context) error {
	s.logger.Info("Starting report queue service")
	if err := s.client.Start(ctx); err != nil {
		s.logger.Error("Failed to start River client", attr.Error(err))
		return fmt.Errorf("failed to start River client: %w", err)
	}
	s.logger.Info("Report queue service started successfully")
	return nil
}

// Stop waits for running jobs, then releases the pgx pool.
func (s *Service) Stop(ctx context.Context) error {
	s.logger.Info("Stopping report queue service")
	defer s.pool.Close()
	if err := s.client.Stop(ctx); err != nil {
		s.logger.Error("Failed to stop River client", attr.Error(err))
		return fmt.Errorf("failed to stop River client: %w", err)
	}
	s.logger.Info("Report queue service stopped successfully")
	return nil
}

func (s *Service) RequestReport(ctx context.Context, p reportevents.ReportRequestedPayloadV1) error {
	start := time.Now()
	s.metrics.RecordOperationAttempt(ctx, "request_report")

	ctxLogger := s.logger.With(
		attr.String("report", string(p.Kind)),
		attr.ID("round_id", p.RoundID),
		attr.String("operation", "request_report"),
	)

	res, err := s.client.Insert(ctx, jobFromPayload(p), &river.InsertOpts{
		Queue: reportQueue,
		UniqueOpts: river.UniqueOpts{
			ByArgs: true,
		},
	})
	if err != nil {
		ctxLogger.Error("Failed to enqueue report job", attr.Error(err))
		s.metrics.RecordOperationFailure(ctx, "request_report")
		return fmt.Errorf("failed to enqueue report job: %w", err)
	}

	s.metrics.RecordOperationSuccess(ctx, "request_report")
	s.metrics.RecordOperationDuration(ctx, "request_report", time.Since(start))

	ctxLogger.Info("Report job enqueued",
		attr.Int64("job_id", res.Job.ID),
		attr.Bool("duplicate", res.UniqueSkippedAsDuplicate))
	return nil
}

func (s *Service) GetReportJobs(ctx context.Context, roundID string) ([]JobInfo, error) {
	type riverJobRow struct {
		ID          int64          `bun:"id"`
		Kind        string         `bun:"kind"`
		State       string         `bun:"state"`
		Args        map[string]any `bun:"args,type:jsonb"`
		CreatedAt   time.Time      `bun:"created_at"`
		Attempt     int16          `bun:"attempt"`
		MaxAttempts int16          `bun:"max_attempts"`
	}

	var jobs []riverJobRow
	err := s.db.NewSelect().
		Table("river_job").
		Column("id", "kind", "state", "args", "created_at", "attempt", "max_attempts").
		Where("kind = ?", ReportJob{}.Kind()).
		Where("args->>'round_id' = ?", roundID).
		Order("created_at ASC").
		Scan(ctx, &jobs)
	if err != nil {
		s.logger.Error("Failed to query report jobs", attr.String("round_id", roundID), attr.Error(err))
		return nil, fmt.Errorf("failed to query report jobs: %w", err)
	}

	out := make([]JobInfo, 0, len(jobs))
	for _, j := range jobs {
		report, _ := j.Args["report"].(string)
		out = append(out, JobInfo{
			ID:          j.ID,
			Kind:        j.Kind,
			Report:      report,
			State:       j.State,
			CreatedAt:   j.CreatedAt.Format(time.RFC3339),
			Attempt:     int(j.Attempt),
			MaxAttempts: int(j.MaxAttempts),
		})
	}
	return out, nil
}

// HealthCheck verifies the queue service is healthy
func (s *Service) HealthCheck(ctx context.Context) error {
	if s.client == nil {
		return fmt.Errorf("river client is nil")
	}
	var count int
	err := s.db.NewSelect().
		Table("river_job").
		ColumnExpr("COUNT(*)").
		Scan(ctx, &count)
	if err != nil {
		s.logger.Error("Queue service health check failed", attr.Error(err))
		return fmt.Errorf("queue service health check failed: %w", err)
	}
	s.logger.Debug("Queue service health check passed", attr.Int("total_jobs", count))
	return nil
}
