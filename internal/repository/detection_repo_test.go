package repository

import (
	"strings"
	"testing"
	"time"
)

func TestChannelVisualClauses(t *testing.T) {
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)

	sub, join, where, args := channelVisualClauses(&start, &end, "pharma_a")

	// 日期条件留在 WHERE 会把 LEFT JOIN 退化成内连接，
	// 区间内零发帖的频道就会从结果里消失
	if strings.Contains(where, "message_date") {
		t.Fatalf("date predicates must not be in WHERE: %q", where)
	}
	if !strings.Contains(join, "m.message_date >= ?") || !strings.Contains(join, "m.message_date < ?") {
		t.Fatalf("date predicates missing from join: %q", join)
	}
	if !strings.Contains(sub, "md.message_date >= ?") || !strings.Contains(sub, "md.message_date < ?") {
		t.Fatalf("confidence subquery must honor the date range: %q", sub)
	}
	if !strings.Contains(where, "c.channel_name = ?") {
		t.Fatalf("channel filter missing from WHERE: %q", where)
	}
	// 占位符顺序: 子查询两个日期、JOIN 两个日期、WHERE 频道名
	want := []any{start, end, start, end, "pharma_a"}
	if len(args) != len(want) {
		t.Fatalf("expected %d args, got %d", len(want), len(args))
	}
	for i := range want {
		if args[i] != want[i] {
			t.Fatalf("arg %d = %v, want %v", i, args[i], want[i])
		}
	}
}

func TestChannelVisualClausesNoFilters(t *testing.T) {
	sub, join, where, args := channelVisualClauses(nil, nil, "")

	if join != "m.channel_key = c.channel_key" || sub != "d.channel_key = c.channel_key" {
		t.Fatalf("unexpected clauses: %q / %q", join, sub)
	}
	if where != "1=1" || len(args) != 0 {
		t.Fatalf("unexpected where: %q args %v", where, args)
	}
}
