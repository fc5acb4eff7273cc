// Package updaters 持有 boutique 状态的全部 Modifier
package updaters

import (
	"github.com/Tarrras/CurrencyDashboard/models"
	"github.com/Tarrras/CurrencyDashboard/state/actions"
	"github.com/Tarrras/CurrencyDashboard/state/data"
	"github.com/johnsiilver/boutique"
)

// Modifier 汇总本文件中的所有更新函数
var Modifier = boutique.NewModifiers(SetAssets, SetLastRefresh)

// SetAssets 处理 ActSetAssets：不可变更新，复制一份切片再替换
func SetAssets(state interface{}, action boutique.Action) interface{} {
	s := state.(data.State)

	switch action.Type {
	case actions.ActSetAssets:
		up := action.Update.([]models.Asset)
		cp := make([]models.Asset, len(up))
		copy(cp, up)
		s.Assets = cp
	}
	return s
}

// SetLastRefresh 处理 ActSetLastRefresh
func SetLastRefresh(state interface{}, action boutique.Action) interface{} {
	s := state.(data.State)

	switch action.Type {
	case actions.ActSetLastRefresh:
		s.LastRefresh = action.Update.(int64)
	}
	return s
}
