package log

import (
	"context"
	"fmt"
	"time"
)

const defaultInterval = 1 * time.Hour

// 运行时长监控，每隔 interval 打印一次
type Monitor struct {
	ctx       context.Context
	cancel    context.CancelFunc
	startTime time.Time
	interval  time.Duration
}

func NewMonitor() *Monitor {
	ctx, cancel := context.WithCancel(context.Background())
	return &Monitor{
		ctx:       ctx,
		cancel:    cancel,
		startTime: time.Now(),
		interval:  defaultInterval,
	}
}

func (m *Monitor) StopMonitor() {
	m.cancel() // 执行这个取消函数
}

func (m *Monitor) StartMonitor() { // 开启一个新的线程
	go func() {
		ticker := time.NewTicker(m.interval) // 创建定时计数器
		defer ticker.Stop()
		for {
			select { //通过ctx控制何时停止
			case <-ticker.C:
				elapsed := time.Since(m.startTime)
				days := int(elapsed.Hours()) / 24
				hours := int(elapsed.Hours()) % 24
				L().Info(fmt.Sprintf("当前程序已运行: %d天 %02d小时", days, hours))
			case <-m.ctx.Done():
				return
			}
		}
	}()
}
