// Package queue provides task handlers for Asynq background processing.
package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"stackslice/internal/service"
	"stackslice/log"
)

// TaskHandlers provides handlers for different job types
type TaskHandlers struct {
	service *service.Service
}

// NewTaskHandlers creates a new TaskHandlers instance
func NewTaskHandlers(svc *service.Service) *TaskHandlers {
	return &TaskHandlers{service: svc}
}

// HandleVideoJob processes a queued video job. The pipeline records its own
// outcome on the job row, so the handler never returns an error that would
// trigger an Asynq retry of a half-processed job.
func (h *TaskHandlers) HandleVideoJob(ctx context.Context, t *asynq.Task) error {
	var payload VideoJobPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	log.GetLogger().Info("[Queue] Processing video job",
		zap.String("job_id", payload.JobID))

	h.service.RunJob(payload.JobID)

	log.GetLogger().Info("[Queue] Video job finished",
		zap.String("job_id", payload.JobID))

	return nil
}

// RegisterHandlers registers all job handlers with the Asynq server mux
func (h *TaskHandlers) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(TypeVideoProcess, h.HandleVideoJob)
}

// StartWorker starts the Asynq worker with registered handlers
func StartWorker(q *Queue, svc *service.Service) error {
	handlers := NewTaskHandlers(svc)

	mux := asynq.NewServeMux()
	handlers.RegisterHandlers(mux)

	log.GetLogger().Info("[Queue] Starting worker",
		zap.String("redis_addr", q.config.RedisAddr),
		zap.Int("concurrency", q.config.Concurrency))

	return q.server.Run(mux)
}
