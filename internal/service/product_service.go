package service

import (
	"MedWarehouse/internal/api/dto"
	"MedWarehouse/internal/pkg/cache"
	"MedWarehouse/internal/pkg/consts"
	"MedWarehouse/internal/repository"
	"context"
	"regexp"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// productPattern 产品识别规则，canonical 为空时以匹配文本计数
type productPattern struct {
	re        *regexp.Regexp
	canonical string
}

var productPatterns = []productPattern{
	{regexp.MustCompile(`\b(paracetamol|panadol)\b`), "paracetamol"},
	{regexp.MustCompile(`\b(amoxicillin|amox)\b`), "amoxicillin"},
	{regexp.MustCompile(`\b(cephalexin|keflex)\b`), "cephalexin"},
	{regexp.MustCompile(`\b(metformin|glucophage)\b`), "metformin"},
	{regexp.MustCompile(`\binsulin\b`), "insulin"},
	{regexp.MustCompile(`\bvitamin\s+[a-z]+\b`), ""},
	{regexp.MustCompile(`\b(cream|ointment|gel)\b`), ""},
	{regexp.MustCompile(`\b(syrup|suspension)\b`), ""},
	{regexp.MustCompile(`\b(tablet|pill|capsule)\b`), ""},
	{regexp.MustCompile(`\b(injection|injectable)\b`), ""},
}

var titleCaser = cases.Title(language.English)

type ProductService interface {
	TopProducts(ctx context.Context, limit int, timeframe, channel string, minMentions int) (*dto.TopProductsDTO, error)
}

type productServiceImpl struct {
	messageRepo repository.MessageRepo
	cache       *cache.Cache
}

func NewProductService(messageRepo repository.MessageRepo, c *cache.Cache) ProductService {
	return &productServiceImpl{
		messageRepo: messageRepo,
		cache:       c,
	}
}

func timeframeSince(timeframe string, now time.Time) *time.Time {
	var since time.Time
	switch timeframe {
	case "day":
		since = now.AddDate(0, 0, -1)
	case "week":
		since = now.AddDate(0, 0, -7)
	case "month":
		since = now.AddDate(0, 0, -30)
	default:
		return nil
	}
	return &since
}

// TopProducts 按正则规则扫描消息文本，统计产品提及
func (s *productServiceImpl) TopProducts(ctx context.Context, limit int, timeframe, channel string, minMentions int) (*dto.TopProductsDTO, error) {
	key := cache.BuildKeyFields(consts.CacheTopProductsKey, map[string]any{
		"limit":        limit,
		"timeframe":    timeframe,
		"channel":      channel,
		"min_mentions": minMentions,
	})
	return cache.Remember(ctx, s.cache, key, consts.TopProductsTTL, func() (*dto.TopProductsDTO, error) {
		return s.computeTopProducts(ctx, limit, timeframe, channel, minMentions)
	})
}

type productStat struct {
	name     string
	count    int
	channels map[string]struct{}
	first    time.Time
	last     time.Time
	seenIdx  int
}

func (s *productServiceImpl) computeTopProducts(ctx context.Context, limit int, timeframe, channel string, minMentions int) (*dto.TopProductsDTO, error) {
	since := timeframeSince(timeframe, time.Now())
	rows, err := s.messageRepo.TextsSince(ctx, since, channel)
	if err != nil {
		return nil, err
	}

	stats := make(map[string]*productStat)
	seen := 0
	for _, row := range rows {
		text := strings.ToLower(row.MessageText)
		for _, p := range productPatterns {
			for _, m := range p.re.FindAllString(text, -1) {
				name := p.canonical
				if name == "" {
					name = m
				}
				st, ok := stats[name]
				if !ok {
					st = &productStat{
						name:     name,
						channels: make(map[string]struct{}),
						first:    row.MessageDate,
						last:     row.MessageDate,
						seenIdx:  seen,
					}
					stats[name] = st
					seen++
				}
				st.count++
				st.channels[row.ChannelName] = struct{}{}
				if row.MessageDate.Before(st.first) {
					st.first = row.MessageDate
				}
				if row.MessageDate.After(st.last) {
					st.last = row.MessageDate
				}
			}
		}
	}

	ranked := make([]*productStat, 0, len(stats))
	for _, st := range stats {
		if st.count >= minMentions {
			ranked = append(ranked, st)
		}
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].seenIdx < ranked[j].seenIdx
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	products := make([]*dto.ProductStatDTO, 0, len(ranked))
	for i, st := range ranked {
		products = append(products, &dto.ProductStatDTO{
			Rank:           i + 1,
			ProductName:    titleCaser.String(st.name),
			Mentions:       st.count,
			UniqueChannels: len(st.channels),
			FirstMention:   st.first.Format(time.DateOnly),
			LastMention:    st.last.Format(time.DateOnly),
		})
	}
	return &dto.TopProductsDTO{
		Timeframe:     timeframe,
		Channel:       channel,
		MinMentions:   minMentions,
		TotalProducts: len(products),
		Products:      products,
		GeneratedAt:   time.Now().Format(time.RFC3339),
	}, nil
}
