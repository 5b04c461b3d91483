package pipeline

import (
	"MedWarehouse/internal/model"
	"MedWarehouse/internal/pkg/datalake"
	"MedWarehouse/internal/pkg/vision"
	"MedWarehouse/internal/repository"
	"context"
	log "log/slog"
	"time"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// AnalysisVersion 标记写入 fct_image_detections 的规则版本
const AnalysisVersion = "yolo-rules-1"

// EnrichSummary 单次富化汇总
type EnrichSummary struct {
	Images     int
	Detections int
	Failed     int
}

// Enricher 图像富化：检测、规则分类、整批重建检测事实
type Enricher struct {
	messageRepo   repository.MessageRepo
	detectionRepo repository.DetectionRepo
	store         datalake.Store
	detector      *vision.Detector
	classifier    *vision.Classifier
}

func NewEnricher(
	messageRepo repository.MessageRepo,
	detectionRepo repository.DetectionRepo,
	store datalake.Store,
	detector *vision.Detector,
	classifier *vision.Classifier,
) *Enricher {
	return &Enricher{
		messageRepo:   messageRepo,
		detectionRepo: detectionRepo,
		store:         store,
		detector:      detector,
		classifier:    classifier,
	}
}

// Run 对全部带图消息重建检测事实。单图失败只计数，
// 结果通过一个事务全量替换，运行中途的失败不会留下半套数据。
func (s *Enricher) Run(ctx context.Context) (*EnrichSummary, error) {
	msgs, err := s.messageRepo.ImageMessages(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list image messages")
	}

	summary := &EnrichSummary{Images: len(msgs)}
	rows := make([]*model.FactImageDetection, 0, len(msgs))
	now := time.Now().UTC()
	for _, msg := range msgs {
		row, err := s.analyze(ctx, msg, now)
		if err != nil {
			log.WarnContext(ctx, "image analysis failed", "message_id", msg.MessageID, "path", msg.ImagePath, "err", err)
			summary.Failed++
			continue
		}
		summary.Detections += row.ObjectCount
		rows = append(rows, row)
	}

	if err = s.detectionRepo.ReplaceAll(ctx, rows); err != nil {
		return nil, errors.Wrap(err, "replace detections")
	}
	log.InfoContext(ctx, "enrichment finished",
		"images", summary.Images,
		"detections", summary.Detections,
		"failed", summary.Failed)
	return summary, nil
}

func (s *Enricher) analyze(ctx context.Context, msg *model.FactMessage, now time.Time) (*model.FactImageDetection, error) {
	data, err := s.store.ReadImage(ctx, msg.ImagePath)
	if err != nil {
		return nil, errors.Wrap(err, "read image")
	}
	detections, err := s.detector.Detect(ctx, msg.ImagePath, data)
	if err != nil {
		return nil, errors.Wrap(err, "detect")
	}
	result := s.classifier.Classify(detections)

	objects, err := json.Marshal(result.Detections)
	if err != nil {
		return nil, errors.Wrap(err, "marshal detections")
	}
	tags, err := json.Marshal(result.Tags)
	if err != nil {
		return nil, errors.Wrap(err, "marshal tags")
	}
	return &model.FactImageDetection{
		MessageID:          msg.MessageID,
		ChannelKey:         msg.ChannelKey,
		DateKey:            msg.DateKey,
		ImagePath:          msg.ImagePath,
		DetectedObjects:    objects,
		ObjectCount:        len(result.Detections),
		ContentCategory:    result.Category,
		CategoryConfidence: result.CategoryConfidence,
		OverallConfidence:  result.Confidence,
		BusinessTags:       tags,
		AnalysisVersion:    AnalysisVersion,
		AnalyzedAt:         now,
	}, nil
}
