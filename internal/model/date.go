package model

import "time"

// DimDate 日期维度，date_key 为 YYYYMMDD 整数
type DimDate struct {
	DateKey    int       `gorm:"primaryKey;column:date_key" json:"date_key"`
	FullDate   time.Time `gorm:"not null;uniqueIndex" json:"full_date"`
	DayOfWeek  int       `gorm:"not null" json:"day_of_week"`
	WeekOfYear int       `gorm:"not null" json:"week_of_year"`
	Month      int       `gorm:"not null" json:"month"`
	Quarter    int       `gorm:"not null" json:"quarter"`
	Year       int       `gorm:"not null" json:"year"`
	IsWeekend  bool      `gorm:"not null;default:false" json:"is_weekend"`
}

func (DimDate) TableName() string {
	return "marts.dim_dates"
}

// DateKeyOf 由时间计算 date_key
func DateKeyOf(t time.Time) int {
	return t.Year()*10000 + int(t.Month())*100 + t.Day()
}
