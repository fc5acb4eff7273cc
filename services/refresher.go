package services

// 后台定时刷新：固定间隔调 RefreshRates，失败只记日志等下一轮，
// 上一轮还没结束时直接跳过本轮，不排队
import (
	"context"
	"sync/atomic"
	"time"

	"github.com/Tarrras/CurrencyDashboard/global"
	"github.com/Tarrras/CurrencyDashboard/log"

	"go.uber.org/zap"
)

type Refresher struct {
	repo     *AssetRepository
	interval time.Duration
	inflight atomic.Bool
}

func NewRefresher(repo *AssetRepository, interval time.Duration) *Refresher {
	if interval <= 0 {
		interval = 3 * time.Second
	}
	return &Refresher{repo: repo, interval: interval}
}

func (r *Refresher) Start(ctx context.Context) {
	go r.loop(ctx)
}

func (r *Refresher) loop(ctx context.Context) {
	// 启动先把库建好再刷一轮
	initCtx, cancel := context.WithTimeout(ctx, global.FetchTimeout)
	if err := r.repo.InitializeIfEmpty(initCtx); err != nil {
		log.L().Warn("asset bootstrap failed", zap.Error(err))
	}
	cancel()
	r.refreshOnce(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			r.refreshOnce(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (r *Refresher) refreshOnce(ctx context.Context) {
	if !r.inflight.CompareAndSwap(false, true) {
		return
	}
	defer r.inflight.Store(false)

	callCtx, cancel := context.WithTimeout(ctx, global.FetchTimeout)
	defer cancel()
	if err := r.repo.RefreshRates(callCtx); err != nil {
		log.L().Warn("scheduled rate refresh failed", zap.Error(err))
	}
}
