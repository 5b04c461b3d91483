package service

import (
	"MedWarehouse/internal/api/dto"
	"MedWarehouse/internal/repository"
	"context"
	"fmt"
	"time"
)

type ReportService interface {
	DataQuality(ctx context.Context) (*dto.DataQualityDTO, error)
}

type reportServiceImpl struct {
	rawMessageRepo repository.RawMessageRepo
}

func NewReportService(rawMessageRepo repository.RawMessageRepo) ReportService {
	return &reportServiceImpl{
		rawMessageRepo: rawMessageRepo,
	}
}

// DataQuality 仓库侧数据质量检查，任一检查不通过则整体状态为 warn
func (s *reportServiceImpl) DataQuality(ctx context.Context) (*dto.DataQualityDTO, error) {
	q, err := s.rawMessageRepo.QualityChecks(ctx)
	if err != nil {
		return nil, err
	}

	checks := []*dto.QualityCheckDTO{
		{Name: "raw_messages", Value: q.RawMessages, Passed: q.RawMessages > 0},
		{Name: "fact_messages", Value: q.FactMessages, Passed: q.FactMessages > 0},
		{Name: "channels", Value: q.Channels, Passed: q.Channels > 0},
		{Name: "detections", Value: q.Detections, Passed: true},
		{Name: "empty_text_messages", Value: q.EmptyTextMessages, Passed: true},
		{Name: "negative_counters", Value: q.NegativeViews, Passed: q.NegativeViews == 0},
		{Name: "orphan_messages", Value: q.OrphanMessages, Passed: q.OrphanMessages == 0},
		{Name: "missing_image_paths", Value: q.MissingImagePaths, Passed: q.MissingImagePaths == 0},
	}

	status := "pass"
	var issues []string
	for _, c := range checks {
		if !c.Passed {
			status = "warn"
			issues = append(issues, fmt.Sprintf("check %s failed with value %d", c.Name, c.Value))
		}
	}
	return &dto.DataQualityDTO{
		Status:      status,
		Checks:      checks,
		Issues:      issues,
		GeneratedAt: time.Now().Format(time.RFC3339),
	}, nil
}
