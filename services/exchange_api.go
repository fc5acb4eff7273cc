package services

// 上游汇率 API 客户端。两个接口：
//   GET /live?source=USD  -> {success, timestamp, source, quotes:{"USDEUR":0.92,...}}
//   GET /list             -> {success, currencies:{"EUR":"Euro",...}}
// 每个请求都带上 access_key；并发的相同请求用 singleflight 合并成一次。
import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Tarrras/CurrencyDashboard/config"
	"github.com/Tarrras/CurrencyDashboard/global"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"
)

type LiveRatesResponse struct { //接收数据
	Success   bool               `json:"success"`
	Timestamp int64              `json:"timestamp"`
	Source    string             `json:"source"`
	Quotes    map[string]float64 `json:"quotes"` // 键是 base+target 拼接的币对，如 "USDEUR"
}

type CurrencyListResponse struct {
	Success    bool              `json:"success"`
	Currencies map[string]string `json:"currencies"` // code -> 展示名
}

type ExchangeAPI struct {
	baseURL   string
	accessKey string
	client    *http.Client
	limiter   *rate.Limiter // 上游限流
	listCache *expirable.LRU[string, CurrencyListResponse]
}

func NewExchangeAPI(baseURL, accessKey string, timeout time.Duration, perSecond int) *ExchangeAPI {
	if perSecond <= 0 {
		perSecond = 5
	}
	if timeout <= 0 {
		timeout = global.FetchTimeout
	}
	return &ExchangeAPI{
		baseURL:   strings.TrimRight(baseURL, "/"),
		accessKey: accessKey,
		client:    &http.Client{Timeout: timeout},
		limiter:   rate.NewLimiter(rate.Limit(perSecond), perSecond),
		// 过滤结果带 TTL，进程内缓存不会比 redis 里的目录全集活得更久
		listCache: expirable.NewLRU[string, CurrencyListResponse](128, nil, config.CatalogTTL),
	}
}

// GetLiveRates 拉取基准货币的实时报价
func (a *ExchangeAPI) GetLiveRates(ctx context.Context, base string) (LiveRatesResponse, error) {
	v, err, _ := global.FetchGroup.Do("live:"+base, func() (interface{}, error) {
		var out LiveRatesResponse
		if err := a.getJSON(ctx, "/live", url.Values{"source": {base}}, &out); err != nil {
			return LiveRatesResponse{}, err
		}
		return out, nil
	})
	if err != nil {
		return LiveRatesResponse{}, err
	}
	return v.(LiveRatesResponse), nil
}

// GetCurrencyList 拉取币种目录，query 非空时在本地按 code/name 做大小写无关的子串过滤
func (a *ExchangeAPI) GetCurrencyList(ctx context.Context, query string) (CurrencyListResponse, error) {
	norm := strings.ToLower(strings.TrimSpace(query))
	if cached, ok := a.listCache.Get(norm); ok {
		return cached, nil
	}

	full, err := a.fullCatalog(ctx)
	if err != nil {
		return CurrencyListResponse{}, err
	}

	resp := full
	if norm != "" && full.Success {
		filtered := make(map[string]string, 8)
		for code, name := range full.Currencies {
			if strings.Contains(strings.ToLower(code), norm) ||
				strings.Contains(strings.ToLower(name), norm) {
				filtered[code] = name
			}
		}
		resp = CurrencyListResponse{Success: full.Success, Currencies: filtered}
	}

	// 失败的响应不能进缓存，否则上游恢复了也一直吐旧错误
	if resp.Success {
		a.listCache.Add(norm, resp)
	}
	return resp, nil
}

// 目录全集很少变化，先查 redis，再走 singleflight 拉上游
func (a *ExchangeAPI) fullCatalog(ctx context.Context) (CurrencyListResponse, error) {
	if cached, err := getCache[CurrencyListResponse](config.CacheCatalogKey); err == nil && cached.Success {
		return cached, nil
	}

	v, err, _ := global.FetchGroup.Do("list", func() (interface{}, error) {
		var out CurrencyListResponse
		if err := a.getJSON(ctx, "/list", url.Values{}, &out); err != nil {
			return CurrencyListResponse{}, err
		}
		if out.Success {
			_ = setCache(config.CacheCatalogKey, out, config.CatalogTTL) // 缓存失败不影响主流程
		}
		return out, nil
	})
	if err != nil {
		return CurrencyListResponse{}, err
	}
	return v.(CurrencyListResponse), nil
}

func (a *ExchangeAPI) getJSON(ctx context.Context, path string, params url.Values, out interface{}) error {
	if err := a.limiter.Wait(ctx); err != nil {
		return err
	}
	if a.accessKey != "" {
		params.Set("access_key", a.accessKey)
	}
	reqURL := a.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "CurrencyDashboard/"+config.Version)

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("upstream %d on %s", resp.StatusCode, path)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode json failed: %w", err)
	}
	return nil
}
