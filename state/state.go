// Package state 持有看板的响应式状态：写库之后把最新视图发布到这里，
// 订阅方（websocket 推送等）先拿到当前快照，之后每次变更都会收到信号。
package state

import (
	"github.com/Tarrras/CurrencyDashboard/models"
	"github.com/Tarrras/CurrencyDashboard/state/data"
	"github.com/Tarrras/CurrencyDashboard/state/updaters"
	"github.com/johnsiilver/boutique"
)

// Hub 包装中央状态存储
type Hub struct {
	Store *boutique.Store
}

func New() (*Hub, error) {
	d := data.State{
		Assets: make([]models.Asset, 0),
	}
	s, err := boutique.New(d, updaters.Modifier, nil)
	if err != nil {
		return nil, err
	}
	return &Hub{Store: s}, nil
}

// Snapshot 返回当前状态的副本
func (h *Hub) Snapshot() data.State {
	return h.Store.State().Data.(data.State)
}
