package dto

// SearchMessagesReq 消息检索参数
type SearchMessagesReq struct {
	Query     string `form:"query" binding:"required"`
	Channel   string `form:"channel"`
	StartDate string `form:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"end_date" binding:"omitempty,datetime=2006-01-02"`
	Page      int    `form:"page,default=1" binding:"omitempty,min=1"`
	Limit     int    `form:"limit,default=10" binding:"omitempty,min=1,max=100"`
	SortBy    string `form:"sort_by,default=relevance" binding:"omitempty,oneof=relevance date views forwards"`
	SortOrder string `form:"sort_order,default=desc" binding:"omitempty,oneof=asc desc"`
}

type SearchHitDTO struct {
	MessageID    int64   `json:"message_id"`
	ChannelName  string  `json:"channel_name"`
	MessageDate  string  `json:"message_date"`
	Snippet      string  `json:"snippet"`
	ViewCount    int     `json:"view_count"`
	ForwardCount int     `json:"forward_count"`
	HasImage     bool    `json:"has_image"`
	Rank         float64 `json:"rank"`
}

type SearchResultDTO struct {
	Query      string          `json:"query"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	Total      int64           `json:"total"`
	TotalPages int             `json:"total_pages"`
	Results    []*SearchHitDTO `json:"results"`
}
