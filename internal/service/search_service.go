package service

import (
	"MedWarehouse/internal/api/dto"
	"MedWarehouse/internal/repository"
	"context"
	"strings"
	"time"
)

type SearchService interface {
	Search(ctx context.Context, req *dto.SearchMessagesReq) (*dto.SearchResultDTO, error)
}

type searchServiceImpl struct {
	messageRepo repository.MessageRepo
}

func NewSearchService(messageRepo repository.MessageRepo) SearchService {
	return &searchServiceImpl{
		messageRepo: messageRepo,
	}
}

// Search 全文检索，结果不缓存
func (s *searchServiceImpl) Search(ctx context.Context, req *dto.SearchMessagesReq) (*dto.SearchResultDTO, error) {
	query := strings.TrimSpace(req.Query)
	if len([]rune(query)) < 2 {
		return nil, ErrQueryTooShort
	}

	params := &repository.SearchParams{
		Query:     query,
		Channel:   req.Channel,
		Page:      req.Page,
		Limit:     req.Limit,
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
	}
	if req.StartDate != "" {
		t, err := time.Parse(time.DateOnly, req.StartDate)
		if err != nil {
			return nil, ErrParamInvalid
		}
		params.StartDate = &t
	}
	if req.EndDate != "" {
		t, err := time.Parse(time.DateOnly, req.EndDate)
		if err != nil {
			return nil, ErrParamInvalid
		}
		// 结束日期取闭区间
		t = t.AddDate(0, 0, 1)
		params.EndDate = &t
	}

	rows, total, err := s.messageRepo.Search(ctx, params)
	if err != nil {
		return nil, err
	}

	results := make([]*dto.SearchHitDTO, 0, len(rows))
	for _, r := range rows {
		results = append(results, &dto.SearchHitDTO{
			MessageID:    r.MessageID,
			ChannelName:  r.ChannelName,
			MessageDate:  r.MessageDate.Format(time.RFC3339),
			Snippet:      r.Snippet,
			ViewCount:    r.ViewCount,
			ForwardCount: r.ForwardCount,
			HasImage:     r.HasImage,
			Rank:         r.Rank,
		})
	}
	totalPages := int((total + int64(req.Limit) - 1) / int64(req.Limit))
	return &dto.SearchResultDTO{
		Query:      query,
		Page:       req.Page,
		Limit:      req.Limit,
		Total:      total,
		TotalPages: totalPages,
		Results:    results,
	}, nil
}
