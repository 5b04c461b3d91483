package dto

// TopProductsReq 热门产品查询参数
type TopProductsReq struct {
	Limit       int    `form:"limit,default=10" binding:"omitempty,min=1,max=100"`
	Timeframe   string `form:"timeframe,default=all" binding:"omitempty,oneof=day week month all"`
	Channel     string `form:"channel"`
	MinMentions int    `form:"min_mentions,default=2" binding:"omitempty,min=1"`
}

type ProductStatDTO struct {
	Rank           int    `json:"rank"`
	ProductName    string `json:"product_name"`
	Mentions       int    `json:"mentions"`
	UniqueChannels int    `json:"unique_channels"`
	FirstMention   string `json:"first_mention"`
	LastMention    string `json:"last_mention"`
}

type TopProductsDTO struct {
	Timeframe     string            `json:"timeframe"`
	Channel       string            `json:"channel,omitempty"`
	MinMentions   int               `json:"min_mentions"`
	TotalProducts int               `json:"total_products"`
	Products      []*ProductStatDTO `json:"products"`
	GeneratedAt   string            `json:"generated_at"`
}
