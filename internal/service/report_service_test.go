package service

import (
	"MedWarehouse/internal/repository"
	"context"
	"testing"
)

func TestDataQualityPass(t *testing.T) {
	repo := &fakeRawMessageRepo{checks: &repository.QualityChecks{
		RawMessages:  100,
		FactMessages: 95,
		Channels:     4,
		Detections:   20,
	}}
	svc := NewReportService(repo)

	out, err := svc.DataQuality(context.Background())
	if err != nil {
		t.Fatalf("DataQuality: %v", err)
	}
	if out.Status != "pass" {
		t.Fatalf("expected pass, got %s (issues %v)", out.Status, out.Issues)
	}
	if len(out.Issues) != 0 {
		t.Fatalf("expected no issues, got %v", out.Issues)
	}
}

func TestDataQualityWarn(t *testing.T) {
	repo := &fakeRawMessageRepo{checks: &repository.QualityChecks{
		RawMessages:   100,
		FactMessages:  95,
		Channels:      4,
		NegativeViews: 2,
	}}
	svc := NewReportService(repo)

	out, err := svc.DataQuality(context.Background())
	if err != nil {
		t.Fatalf("DataQuality: %v", err)
	}
	if out.Status != "warn" {
		t.Fatalf("expected warn, got %s", out.Status)
	}
	if len(out.Issues) != 1 {
		t.Fatalf("expected one issue, got %v", out.Issues)
	}
}
