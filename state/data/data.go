// Package data 定义看板的实时状态对象，供 boutique 存储使用
package data

import "github.com/Tarrras/CurrencyDashboard/models"

// State 是看板的全量实时视图：当前资产列表 + 最近一次刷新时间
type State struct {
	// Assets 当前库里的全部资产（按 code 升序）
	Assets []models.Asset

	// LastRefresh 最近一次成功刷新汇率的毫秒时间戳，0 表示从未刷新
	LastRefresh int64
}
