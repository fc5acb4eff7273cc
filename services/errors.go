package services

import "errors"

// 错误分三类：上游标记失败、传输/解码故障（直接包装原错误）、汇率缺失
var (
	// ErrAPIUnsuccessful 上游调用完成但 success 标志为 false
	ErrAPIUnsuccessful = errors.New("API call was not successful")
	// ErrRateNotFound 响应成功但没有要找的币对
	ErrRateNotFound = errors.New("rate not found in quotes")
	// errCacheUnavailable redis 不在线时缓存直接跳过
	errCacheUnavailable = errors.New("cache unavailable")
)
