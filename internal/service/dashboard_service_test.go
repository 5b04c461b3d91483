package service

import (
	"MedWarehouse/internal/repository"
	"context"
	"strings"
	"testing"
)

func TestDashboardRecommendations(t *testing.T) {
	chRepo := &fakeChannelRepo{
		count: 3,
		top: []*repository.ChannelEngagement{
			{ChannelName: "pharma_a", TotalPosts: 10, TotalViews: 5000, AvgViews: 500, EngagementRate: 500},
		},
	}
	msgRepo := &fakeMessageRepo{
		count: 42,
		texts: []*repository.MessageTextRow{
			{MessageText: "paracetamol paracetamol paracetamol", ChannelName: "pharma_a", MessageDate: day("2026-08-28")},
		},
		ratios: []*repository.ChannelImageRatio{
			{ChannelName: "pharma_a", AvgViews: 500, ImageRatio: 0.5},
			{ChannelName: "quiet_channel", AvgViews: 12, ImageRatio: 0.9},
			{ChannelName: "texty_channel", AvgViews: 300, ImageRatio: 0.1},
		},
	}
	detRepo := &fakeDetectionRepo{count: 7}
	products := NewProductService(msgRepo, nil)
	svc := NewDashboardService(chRepo, msgRepo, detRepo, products, nil)

	out, err := svc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if out.Overview.TotalChannels != 3 || out.Overview.TotalMessages != 42 || out.Overview.TotalDetections != 7 {
		t.Fatalf("unexpected overview: %+v", out.Overview)
	}
	if len(out.TopChannels) != 1 || out.TopChannels[0].Rank != 1 {
		t.Fatalf("unexpected top channels: %+v", out.TopChannels)
	}

	if len(out.Recommendations) != 2 {
		t.Fatalf("expected 2 recommendations, got %d: %v", len(out.Recommendations), out.Recommendations)
	}
	if !strings.Contains(out.Recommendations[0], "quiet_channel") {
		t.Fatalf("expected low-views hint for quiet_channel: %v", out.Recommendations)
	}
	if !strings.Contains(out.Recommendations[1], "texty_channel") {
		t.Fatalf("expected low-image hint for texty_channel: %v", out.Recommendations)
	}
}

func TestDashboardTrendingUsesWeekWindow(t *testing.T) {
	msgRepo := &fakeMessageRepo{
		texts: []*repository.MessageTextRow{
			{MessageText: "insulin insulin insulin", ChannelName: "pharma_a", MessageDate: day("2026-08-28")},
			{MessageText: "metformin once", ChannelName: "pharma_a", MessageDate: day("2026-08-28")},
		},
	}
	products := NewProductService(msgRepo, nil)
	svc := NewDashboardService(&fakeChannelRepo{}, msgRepo, &fakeDetectionRepo{}, products, nil)

	out, err := svc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	// min_mentions=3 过滤掉单次提及
	if len(out.TrendingProducts) != 1 || out.TrendingProducts[0].ProductName != "Insulin" {
		t.Fatalf("unexpected trending products: %+v", out.TrendingProducts)
	}
}
