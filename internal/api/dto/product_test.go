package dto

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestTopProductsReqDefaults(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/api/analytics/top-products", nil)

	var req TopProductsReq
	if err := c.ShouldBindQuery(&req); err != nil {
		t.Fatalf("bind: %v", err)
	}
	if req.Limit != 10 || req.Timeframe != "all" {
		t.Fatalf("unexpected defaults: %+v", req)
	}
	// 单次提及默认过滤掉
	if req.MinMentions != 2 {
		t.Fatalf("default min_mentions = %d, want 2", req.MinMentions)
	}
}
