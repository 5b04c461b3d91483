package service

import (
	"MedWarehouse/internal/api/dto"
	"MedWarehouse/internal/repository"
	"context"
	"errors"
	"testing"
)

func TestSearchRejectsShortQuery(t *testing.T) {
	svc := NewSearchService(&fakeMessageRepo{})

	for _, q := range []string{"", "a", "  a  "} {
		_, err := svc.Search(context.Background(), &dto.SearchMessagesReq{Query: q, Page: 1, Limit: 10})
		if !errors.Is(err, ErrQueryTooShort) {
			t.Fatalf("query %q: expected ErrQueryTooShort, got %v", q, err)
		}
	}
}

func TestSearchPagination(t *testing.T) {
	rows := make([]*repository.SearchRow, 10)
	for i := range rows {
		rows[i] = &repository.SearchRow{
			MessageID:   int64(i + 11),
			ChannelName: "pharma_a",
			MessageDate: day("2026-08-10"),
			Snippet:     "<mark>paracetamol</mark> in stock",
		}
	}
	repo := &fakeMessageRepo{searchRows: rows, searchTotal: 25}
	svc := NewSearchService(repo)

	out, err := svc.Search(context.Background(), &dto.SearchMessagesReq{
		Query: "paracetamol", Page: 2, Limit: 10, SortBy: "relevance", SortOrder: "desc",
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(out.Results) != 10 {
		t.Fatalf("expected 10 rows, got %d", len(out.Results))
	}
	if out.Total != 25 || out.TotalPages != 3 {
		t.Fatalf("expected total 25 over 3 pages, got %d over %d", out.Total, out.TotalPages)
	}
	if out.Page != 2 {
		t.Fatalf("page echo mismatch: %d", out.Page)
	}
}

func TestSearchDateRange(t *testing.T) {
	repo := &fakeMessageRepo{}
	svc := NewSearchService(repo)

	_, err := svc.Search(context.Background(), &dto.SearchMessagesReq{
		Query: "insulin", StartDate: "2026-08-01", EndDate: "2026-08-15", Page: 1, Limit: 10,
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if repo.lastSearch.StartDate == nil || repo.lastSearch.EndDate == nil {
		t.Fatal("date filters not forwarded")
	}
	// 结束日期按闭区间处理
	want := day("2026-08-15").AddDate(0, 0, 1)
	if !repo.lastSearch.EndDate.Equal(want) {
		t.Fatalf("end date not exclusive-upper: %v", repo.lastSearch.EndDate)
	}
	if !repo.lastSearch.StartDate.Equal(day("2026-08-01")) {
		t.Fatalf("unexpected start date: %v", repo.lastSearch.StartDate)
	}
}
