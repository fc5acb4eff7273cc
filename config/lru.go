package config

import (
	"sync"
	"time"

	"github.com/Tarrras/CurrencyDashboard/models"

	"golang.org/x/time/rate"

	lru "github.com/hashicorp/golang-lru/v2" //本质上是双向链表+Hash表
)

var (
	// 全局LRU缓存实例-按用户名缓存用户行，省掉中间件里的重复查库
	LocalUserCache *lru.Cache[string, models.Users]
	cacheOnce      sync.Once //确保其只执行一次即可
	// 登录令牌限流器
	cleanupOnce   sync.Once
	LoginAttempts = sync.Map{}
)

func initUserCache(size int) {
	cacheOnce.Do(func() {
		cache, err := lru.New[string, models.Users](size)
		if err != nil {
			panic(err)
		}
		LocalUserCache = cache
	})
}

func ClearUserCache(username string) {
	LocalUserCache.Remove(username)
}

// AllowLogin 每个用户名一个令牌桶：每秒1个令牌，突发5次
func AllowLogin(username string) bool {
	v, _ := LoginAttempts.LoadOrStore(username, rate.NewLimiter(rate.Limit(1), 5))
	return v.(*rate.Limiter).Allow()
}

func ensureCleanupRunning() {
	cleanupOnce.Do(func() {
		go cleanupOldLimiters()
	})
}

func cleanupOldLimiters() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		LoginAttempts.Range(func(key, value interface{}) bool {
			limiter := value.(*rate.Limiter)
			// 桶已经攒满说明这个用户很久没来了，直接清掉
			if limiter.TokensAt(time.Now().Add(-5*time.Minute)) == float64(limiter.Burst()) {
				LoginAttempts.Delete(key)
			}
			return true
		})
	}
}
