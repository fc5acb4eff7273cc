package services

// redis 缓存读写-存的是JSON数据
import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Tarrras/CurrencyDashboard/global"

	"github.com/go-redis/redis"
)

func setCache[T any](key string, data T, ttl time.Duration) error {
	if global.RedisDB == nil {
		return errCacheUnavailable
	}
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return global.RedisDB.Set(key, b, ttl).Err()
}

func getCache[T any](key string) (T, error) {
	var data T
	if global.RedisDB == nil {
		return data, errCacheUnavailable
	}
	result, err := global.RedisDB.Get(key).Bytes()
	if err != nil {
		if err == redis.Nil {
			// 键不存在
			return data, fmt.Errorf("cache key %s not found", key)
		}
		return data, fmt.Errorf("redis get error: %w", err)
	}
	if err := json.Unmarshal(result, &data); err != nil {
		return data, fmt.Errorf("json unmarshal error: %w", err)
	}
	return data, nil
}
