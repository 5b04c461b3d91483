package pipeline

import (
	"MedWarehouse/internal/loader"
	"MedWarehouse/internal/pkg/consts"
	"MedWarehouse/internal/pkg/redis"
	"MedWarehouse/internal/repository"
	"MedWarehouse/internal/scraper"
	"MedWarehouse/internal/transform"
	"context"
	"fmt"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

// Options 选择要运行的阶段
type Options struct {
	Scrape    bool
	Load      bool
	Transform bool
	Enrich    bool
	Validate  bool
	Date      time.Time
}

// All 完整流水线
func All(date time.Time) Options {
	return Options{Scrape: true, Load: true, Transform: true, Enrich: true, Validate: true, Date: date}
}

// StageResult 单阶段结果
type StageResult struct {
	Name     string        `json:"name"`
	Status   string        `json:"status"`
	Duration time.Duration `json:"duration"`
	Detail   string        `json:"detail,omitempty"`
	Err      error         `json:"-"`
}

// RunSummary 一次运行的汇总
type RunSummary struct {
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at"`
	Stages     []StageResult `json:"stages"`
	Succeeded  bool          `json:"succeeded"`
}

// Pipeline 调度 抓取 → 装载 → 转换 → 富化 → 校验
type Pipeline struct {
	scraper     *scraper.Scraper
	loader      *loader.Loader
	transformer *transform.Transformer
	enricher    *Enricher
	rawRepo     repository.RawMessageRepo
}

func New(
	sc *scraper.Scraper,
	ld *loader.Loader,
	tr *transform.Transformer,
	en *Enricher,
	rawRepo repository.RawMessageRepo,
) *Pipeline {
	return &Pipeline{
		scraper:     sc,
		loader:      ld,
		transformer: tr,
		enricher:    en,
		rawRepo:     rawRepo,
	}
}

// Run 按序执行选中的阶段。前序阶段失败时后续阶段跳过。
// 通过 Redis 锁保证同一时刻只有一轮流水线在跑。
func (s *Pipeline) Run(ctx context.Context, opts Options) *RunSummary {
	summary := &RunSummary{StartedAt: time.Now(), Succeeded: true}

	lockUUID := uuid.NewString()
	locked, err := redis.TryLock(ctx, consts.PipelineRunLock, lockUUID, 2*time.Hour, 0)
	if err != nil {
		log.WarnContext(ctx, "pipeline lock unavailable, proceeding without it", "err", err)
	} else if !locked {
		log.WarnContext(ctx, "another pipeline run holds the lock, aborting")
		summary.Succeeded = false
		summary.Stages = append(summary.Stages, StageResult{Name: "lock", Status: "skipped", Detail: "already running"})
		summary.FinishedAt = time.Now()
		return summary
	} else {
		defer redis.UnLock(ctx, consts.PipelineRunLock, lockUUID)
	}

	type stage struct {
		name    string
		enabled bool
		run     func(context.Context) (string, error)
	}
	stages := []stage{
		{"scrape", opts.Scrape, s.runScrape},
		{"load", opts.Load, func(ctx context.Context) (string, error) { return s.runLoad(ctx, opts.Date) }},
		{"transform", opts.Transform, s.runTransform},
		{"enrich", opts.Enrich, s.runEnrich},
		{"validate", opts.Validate, s.runValidate},
	}

	failed := false
	for _, st := range stages {
		if !st.enabled {
			continue
		}
		if failed {
			summary.Stages = append(summary.Stages, StageResult{Name: st.name, Status: "skipped", Detail: "upstream stage failed"})
			continue
		}
		started := time.Now()
		detail, err := st.run(ctx)
		result := StageResult{Name: st.name, Duration: time.Since(started), Detail: detail}
		if err != nil {
			result.Status = "failed"
			result.Err = err
			failed = true
			summary.Succeeded = false
			log.ErrorContext(ctx, "pipeline stage failed", "stage", st.name, "err", err)
		} else {
			result.Status = "succeeded"
			log.InfoContext(ctx, "pipeline stage finished", "stage", st.name, "duration", result.Duration, "detail", detail)
		}
		summary.Stages = append(summary.Stages, result)
	}

	summary.FinishedAt = time.Now()
	return summary
}

func (s *Pipeline) runScrape(ctx context.Context) (string, error) {
	out, err := s.scraper.Run(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("channels=%d messages=%d images=%d", out.Channels, out.Messages, out.Images), nil
}

func (s *Pipeline) runLoad(ctx context.Context, date time.Time) (string, error) {
	out, err := s.loader.Load(ctx, date)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("files=%d rows=%d inserted=%d skipped=%d", out.Files, out.Rows, out.Inserted, out.Skipped), nil
}

func (s *Pipeline) runTransform(ctx context.Context) (string, error) {
	out, err := s.transformer.Run(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("channels=%d dates=%d messages=%d", out.Channels, out.Dates, out.Messages), nil
}

func (s *Pipeline) runEnrich(ctx context.Context) (string, error) {
	out, err := s.enricher.Run(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("images=%d detections=%d failed=%d", out.Images, out.Detections, out.Failed), nil
}

// runValidate 质量检查只告警不阻断
func (s *Pipeline) runValidate(ctx context.Context) (string, error) {
	checks, err := s.rawRepo.QualityChecks(ctx)
	if err != nil {
		return "", err
	}
	if checks.NegativeViews > 0 || checks.OrphanMessages > 0 {
		log.WarnContext(ctx, "data quality issues detected",
			"negative_counters", checks.NegativeViews,
			"orphan_messages", checks.OrphanMessages)
	}
	return fmt.Sprintf("raw=%d facts=%d channels=%d detections=%d",
		checks.RawMessages, checks.FactMessages, checks.Channels, checks.Detections), nil
}
