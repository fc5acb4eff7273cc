// Package actions 定义更新状态用的 boutique.Action
package actions

import (
	"github.com/Tarrras/CurrencyDashboard/models"
	"github.com/johnsiilver/boutique"
)

const (
	// ActSetAssets 整体替换资产列表
	ActSetAssets = iota
	// ActSetLastRefresh 更新最近刷新时间
	ActSetLastRefresh
)

// SetAssets 用一份新的资产列表替换当前状态
func SetAssets(assets []models.Asset) boutique.Action {
	return boutique.Action{Type: ActSetAssets, Update: assets}
}

// SetLastRefresh 记录最近一次成功刷新的毫秒时间戳
func SetLastRefresh(ts int64) boutique.Action {
	return boutique.Action{Type: ActSetLastRefresh, Update: ts}
}
