package job

import (
	"MedWarehouse/internal/pipeline"
	"MedWarehouse/internal/pkg/logger"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

// PipelineJob 每日全量流水线
type PipelineJob struct {
	pipeline *pipeline.Pipeline
}

func NewPipelineJob(p *pipeline.Pipeline) *PipelineJob {
	return &PipelineJob{
		pipeline: p,
	}
}

func (s *PipelineJob) Run() {
	traceID := "job-pipeline-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	log.InfoContext(ctx, "scheduled pipeline run starting")
	summary := s.pipeline.Run(ctx, pipeline.All(time.Now().UTC()))
	log.InfoContext(ctx, "scheduled pipeline run finished",
		"succeeded", summary.Succeeded,
		"stages", len(summary.Stages),
		"duration", summary.FinishedAt.Sub(summary.StartedAt))
}
