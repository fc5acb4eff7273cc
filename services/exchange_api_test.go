package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAPI(t *testing.T, handler http.HandlerFunc) *ExchangeAPI {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewExchangeAPI(srv.URL, "test-key", 2*time.Second, 100)
}

func TestGetLiveRatesDecodesPayload(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/live", r.URL.Path)
		assert.Equal(t, "USD", r.URL.Query().Get("source"))
		// 每个请求都要带上 access_key
		assert.Equal(t, "test-key", r.URL.Query().Get("access_key"))
		w.Write([]byte(`{"success":true,"timestamp":1700000000,"source":"USD","quotes":{"USDEUR":0.85,"USDJPY":150.1}}`))
	})

	got, err := api.GetLiveRates(context.Background(), "USD")
	require.NoError(t, err)
	assert.True(t, got.Success)
	assert.Equal(t, 0.85, got.Quotes["USDEUR"])
	assert.Equal(t, 150.1, got.Quotes["USDJPY"])
}

func TestGetLiveRatesUpstreamStatusError(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := api.GetLiveRates(context.Background(), "USD")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upstream 502")
}

func TestGetLiveRatesDecodeFault(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":`)) // 截断的JSON
	})

	_, err := api.GetLiveRates(context.Background(), "USD")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode json failed")
}

func TestGetCurrencyListFiltersByCodeOrName(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/list", r.URL.Path)
		w.Write([]byte(`{"success":true,"currencies":{"USD":"US Dollar","EUR":"Euro","BTC":"Bitcoin","AUD":"Australian Dollar"}}`))
	})

	// "dollar" 命中名称；大小写无关
	got, err := api.GetCurrencyList(context.Background(), "DoLLaR")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"USD": "US Dollar", "AUD": "Australian Dollar"}, got.Currencies)

	// "bt" 命中代码
	got, err = api.GetCurrencyList(context.Background(), "bt")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"BTC": "Bitcoin"}, got.Currencies)

	// 空查询返回全集
	got, err = api.GetCurrencyList(context.Background(), "  ")
	require.NoError(t, err)
	assert.Len(t, got.Currencies, 4)
}

func TestGetCurrencyListUsesLocalCache(t *testing.T) {
	var hits atomic.Int32
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(`{"success":true,"currencies":{"EUR":"Euro"}}`))
	})

	_, err := api.GetCurrencyList(context.Background(), "eur")
	require.NoError(t, err)
	_, err = api.GetCurrencyList(context.Background(), "eur")
	require.NoError(t, err)
	// 第二次同样的查询走LRU，不碰上游
	assert.Equal(t, int32(1), hits.Load())
}

func TestGetCurrencyListDoesNotCacheFailedResponse(t *testing.T) {
	var hits atomic.Int32
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.Write([]byte(`{"success":false}`))
			return
		}
		w.Write([]byte(`{"success":true,"currencies":{"EUR":"Euro"}}`))
	})

	first, err := api.GetCurrencyList(context.Background(), "eur")
	require.NoError(t, err)
	assert.False(t, first.Success)

	// 上游恢复后同一个查询必须重新出网：失败的响应不进缓存
	second, err := api.GetCurrencyList(context.Background(), "eur")
	require.NoError(t, err)
	assert.True(t, second.Success)
	assert.Equal(t, "Euro", second.Currencies["EUR"])
	assert.Equal(t, int32(2), hits.Load())
}
