package models

// 可追踪的币种/资产，code 为全局唯一主键
type Asset struct {
	Code        string  `gorm:"primaryKey;size:10" json:"code" binding:"required"`
	Name        string  `gorm:"size:64" json:"name"`
	IsEnabled   bool    `gorm:"column:is_enabled;index" json:"isEnabled"`
	Rate        float64 `gorm:"type:decimal(18,8)" json:"rate"`
	Change      float64 `gorm:"type:decimal(18,8)" json:"change"` // 预留的涨跌字段，暂无历史数据源
	LastUpdated int64   `gorm:"column:last_updated" json:"lastUpdated"`
}

func (Asset) TableName() string { return "assets" } // 显式表名
