package services

// 最近刷新时间戳：redis 持久化，内存兜底，同时镜像到状态中心
import (
	"sync/atomic"

	"github.com/Tarrras/CurrencyDashboard/config"
	"github.com/Tarrras/CurrencyDashboard/global"
	"github.com/Tarrras/CurrencyDashboard/log"
	"github.com/Tarrras/CurrencyDashboard/state"
	"github.com/Tarrras/CurrencyDashboard/state/actions"

	"go.uber.org/zap"
)

type RedisSettingsStore struct {
	hub *state.Hub
	mem atomic.Int64 // redis 不在线时的退路
}

func NewRedisSettingsStore(hub *state.Hub) *RedisSettingsStore {
	s := &RedisSettingsStore{hub: hub}
	// 进程重启后把上次的值捞回来
	if global.RedisDB != nil {
		if v, err := global.RedisDB.Get(config.KeyLastRefresh).Int64(); err == nil {
			s.mem.Store(v)
		}
	}
	return s
}

func (s *RedisSettingsStore) LastRefresh() int64 {
	if global.RedisDB != nil {
		if v, err := global.RedisDB.Get(config.KeyLastRefresh).Int64(); err == nil {
			return v
		}
	}
	return s.mem.Load()
}

func (s *RedisSettingsStore) SaveLastRefresh(ts int64) {
	s.mem.Store(ts)
	if global.RedisDB != nil {
		if err := global.RedisDB.Set(config.KeyLastRefresh, ts, 0).Err(); err != nil {
			log.L().Warn("failed to persist last refresh timestamp", zap.Error(err))
		}
	}
	if s.hub != nil {
		if err := s.hub.Store.Perform(actions.SetLastRefresh(ts)); err != nil {
			log.L().Warn("failed to publish last refresh timestamp", zap.Error(err))
		}
	}
}
