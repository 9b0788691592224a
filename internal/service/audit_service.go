package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-portal-api/internal/models"
	"github.com/noah-isme/campus-portal-api/pkg/jobs"
)

const auditJobType = "audit.write"

type auditLogWriter interface {
	SaveAuditLog(ctx context.Context, log *models.AuditLog) error
}

// AuditConfig tunes the background audit writer.
type AuditConfig struct {
	Enabled    bool
	Workers    int
	MaxRetries int
	RetryDelay time.Duration
}

// AuditService writes audit logs off the request path through a job queue.
type AuditService struct {
	repo    auditLogWriter
	queue   *jobs.Queue
	enabled bool
	logger  *zap.Logger
	now     func() time.Time
}

// NewAuditService constructs an AuditService. Call Start before recording.
func NewAuditService(repo auditLogWriter, cfg AuditConfig, logger *zap.Logger) *AuditService {
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := &AuditService{repo: repo, enabled: cfg.Enabled, logger: logger, now: time.Now}
	svc.queue = jobs.NewQueue("audit", svc.handle, jobs.QueueConfig{
		Workers:    cfg.Workers,
		MaxRetries: cfg.MaxRetries,
		RetryDelay: cfg.RetryDelay,
		Logger:     logger,
	})
	return svc
}

// Start launches the queue workers.
func (s *AuditService) Start(ctx context.Context) {
	if !s.enabled {
		return
	}
	s.queue.Start(ctx)
}

// Stop flushes queued entries and stops the workers.
func (s *AuditService) Stop() {
	s.queue.Stop()
}

// Record queues an audit entry. When the queue is unavailable the entry is written inline.
func (s *AuditService) Record(ctx context.Context, log models.AuditLog) {
	if !s.enabled {
		return
	}
	if log.ID == "" {
		log.ID = uuid.NewString()
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = s.now().UTC()
	}

	err := s.queue.Enqueue(jobs.Job{ID: log.ID, Type: auditJobType, Payload: log})
	if err == nil {
		return
	}
	s.logger.Warn("audit queue unavailable, writing inline", zap.String("audit_id", log.ID), zap.Error(err))
	if err := s.repo.SaveAuditLog(context.WithoutCancel(ctx), &log); err != nil {
		s.logger.Error("failed to write audit log", zap.String("audit_id", log.ID), zap.Error(err))
	}
}

func (s *AuditService) handle(ctx context.Context, job jobs.Job) error {
	log, ok := job.Payload.(models.AuditLog)
	if !ok {
		return fmt.Errorf("unexpected audit payload %T", job.Payload)
	}
	return s.repo.SaveAuditLog(ctx, &log)
}
