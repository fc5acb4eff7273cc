package config

import (
	"fmt"
	"time"

	"github.com/Tarrras/CurrencyDashboard/global"
	"github.com/Tarrras/CurrencyDashboard/log"

	"github.com/go-redis/redis"
	"go.uber.org/zap"
)

// redis 键名
const (
	// 币种目录（code->name 全集）的缓存键
	CacheCatalogKey = "exchange:catalog"
	// 最近一次成功刷新汇率的毫秒时间戳
	KeyLastRefresh = "exchange:last_refresh"
)

const (
	CatalogTTL = 12 * time.Hour // 目录很少变，缓存可以放久一点
)

func initRedis() {
	RedisClient := redis.NewClient(&redis.Options{ //配置选项Options是结构体
		Addr:         AppConfig.Redis.Addr,
		DB:           AppConfig.Redis.DB,
		Password:     AppConfig.Redis.Password,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  800 * time.Millisecond, // 读超时
		WriteTimeout: 800 * time.Millisecond, // 写超时
		PoolSize:     20,
		MinIdleConns: 5,
	}) //返回一个客户端
	if _, err := RedisClient.Ping().Result(); err != nil {
		// redis 不在线时降级运行：缓存与时间戳走内存
		log.L().Warn("Redis unavailable, running without cache", zap.Error(err))
		return
	}
	global.RedisDB = RedisClient
	fmt.Println("2. Redis DataBase connection success!")
}
