package service

import (
	"MedWarehouse/internal/api/dto"
	"MedWarehouse/internal/repository"
	"context"
	"errors"
	"testing"
)

func TestVisualStatsZeroPostChannel(t *testing.T) {
	repo := &fakeDetectionRepo{
		visual: []*repository.ChannelVisualRow{
			{ChannelName: "pharma_a", TotalPosts: 20, ImagePosts: 5, ImagePercentage: 25.0, AvgConfidence: 0.71},
			{ChannelName: "silent_channel", TotalPosts: 0, ImagePosts: 0, ImagePercentage: 0, AvgConfidence: 0},
		},
		categories: []*repository.CategoryCount{{Category: "promotional", Count: 4, AvgConfidence: 0.8}},
		objects:    []*repository.ObjectCount{{ClassName: "person", Count: 6}},
		chanCategories: []*repository.ChannelCategoryCount{
			{ChannelName: "pharma_a", Category: "promotional", Count: 3},
			{ChannelName: "pharma_a", Category: "product_display", Count: 1},
		},
		chanObjects: []*repository.ChannelObjectCount{
			{ChannelName: "pharma_a", ClassName: "person", Count: 4},
			{ChannelName: "pharma_a", ClassName: "bottle", Count: 2},
		},
		overall: &repository.DetectionOverall{TotalDetections: 6, AvgConfidence: 0.7, TopCategory: "promotional"},
	}
	svc := NewVisualService(repo, nil)

	out, err := svc.Stats(context.Background(), &dto.VisualContentReq{})
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if len(out.Channels) != 2 {
		t.Fatalf("expected 2 channels, got %d", len(out.Channels))
	}
	silent := out.Channels[1]
	if silent.ImagePercentage != 0 {
		t.Fatalf("zero-post channel must report 0%%, got %v", silent.ImagePercentage)
	}
	if out.Overall.TopCategory != "promotional" {
		t.Fatalf("overall summary lost: %+v", out.Overall)
	}
	if len(out.TopObjects) != 1 || out.TopObjects[0].ClassName != "person" {
		t.Fatalf("unexpected top objects: %+v", out.TopObjects)
	}
	active := out.Channels[0]
	if active.Categories["promotional"] != 3 || active.Categories["product_display"] != 1 {
		t.Fatalf("per-channel categories lost: %+v", active.Categories)
	}
	if len(active.TopObjects) != 2 || active.TopObjects[0].ClassName != "person" {
		t.Fatalf("per-channel top objects lost: %+v", active.TopObjects)
	}
	if len(silent.Categories) != 0 || len(silent.TopObjects) != 0 {
		t.Fatalf("channel without detections must report empty breakdowns: %+v", silent)
	}
}

func TestVisualStatsBadDate(t *testing.T) {
	svc := NewVisualService(&fakeDetectionRepo{}, nil)

	_, err := svc.Stats(context.Background(), &dto.VisualContentReq{StartDate: "15-08-2026"})
	if !errors.Is(err, ErrParamInvalid) {
		t.Fatalf("expected ErrParamInvalid, got %v", err)
	}
}
