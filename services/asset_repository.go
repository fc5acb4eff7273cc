package services

// 资产对账引擎：把"世界上有哪些币种"（远端目录）和"用户开了哪些、汇率是多少"
// （本地库）合成一份权威列表，并让已启用资产的汇率保持新鲜。
// 所有依赖都从构造函数显式传入，不做全局查找。
import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Tarrras/CurrencyDashboard/log"
	"github.com/Tarrras/CurrencyDashboard/models"

	"go.uber.org/zap"
)

// QuoteSource 远端报价/目录源
type QuoteSource interface {
	GetLiveRates(ctx context.Context, base string) (LiveRatesResponse, error)
	GetCurrencyList(ctx context.Context, query string) (CurrencyListResponse, error)
}

// AssetStore 本地资产表，code 为主键，upsert 只会替换不会重复
type AssetStore interface {
	GetAll(ctx context.Context) ([]models.Asset, error)
	GetEnabled(ctx context.Context) ([]models.Asset, error)
	GetEnabledCodes(ctx context.Context) ([]string, error)
	GetByCode(ctx context.Context, code string) (*models.Asset, error)
	UpsertMany(ctx context.Context, assets []models.Asset) error
	UpdateRate(ctx context.Context, code string, rateVal, change float64, ts int64) error
	SetEnabled(ctx context.Context, code string, enabled bool) error
}

// SettingsStore 最近一次成功刷新的时间戳，get 未设置时返回 0
type SettingsStore interface {
	LastRefresh() int64
	SaveLastRefresh(ts int64)
}

// 首次启动默认展示的币种
var defaultCodes = map[string]bool{"USD": true, "EUR": true}

type AssetRepository struct {
	source   QuoteSource
	store    AssetStore
	settings SettingsStore
	base     string // 固定的基准货币
}

func NewAssetRepository(source QuoteSource, store AssetStore, settings SettingsStore, base string) *AssetRepository {
	if base == "" {
		base = "USD"
	}
	return &AssetRepository{source: source, store: store, settings: settings, base: base}
}

func (r *AssetRepository) BaseCurrency() string { return r.base }

func (r *AssetRepository) LastRefresh() int64 { return r.settings.LastRefresh() }

func (r *AssetRepository) EnabledAssets(ctx context.Context) ([]models.Asset, error) {
	return r.store.GetEnabled(ctx)
}

func (r *AssetRepository) AssetByCode(ctx context.Context, code string) (*models.Asset, error) {
	return r.store.GetByCode(ctx, code)
}

// InitializeIfEmpty 库非空时什么都不做，幂等
func (r *AssetRepository) InitializeIfEmpty(ctx context.Context) error {
	assets, err := r.store.GetAll(ctx)
	if err != nil {
		return err
	}
	if len(assets) > 0 {
		return nil
	}
	return r.bootstrap(ctx)
}

// 首次建表：目录拉得到就按目录建，默认集标记启用；拉不到就只插默认集
func (r *AssetRepository) bootstrap(ctx context.Context) error {
	resp, err := r.source.GetCurrencyList(ctx, "")
	if err != nil || !resp.Success {
		log.L().Warn("catalog fetch failed on bootstrap, seeding defaults", zap.Error(err))
		return r.insertDefaults(ctx)
	}

	rows := make([]models.Asset, 0, len(resp.Currencies))
	for _, code := range sortedCodes(resp.Currencies) {
		rows = append(rows, models.Asset{
			Code:      code,
			Name:      resp.Currencies[code],
			IsEnabled: defaultCodes[code],
		})
	}
	if err := r.store.UpsertMany(ctx, rows); err != nil {
		return err
	}

	// 首次的汇率拉取尽力而为，失败不影响建表结果
	if err := r.RefreshRates(ctx); err != nil {
		log.L().Warn("initial rate refresh failed", zap.Error(err))
	}
	return nil
}

// 目录不可用时的兜底：直接插入默认集并标记启用，否则首页会一直是空的
func (r *AssetRepository) insertDefaults(ctx context.Context) error {
	rows := r.defaultAssetList()
	for i := range rows {
		rows[i].IsEnabled = true
	}
	if err := r.store.UpsertMany(ctx, rows); err != nil {
		return err
	}
	if err := r.RefreshRates(ctx); err != nil {
		log.L().Warn("initial rate refresh failed", zap.Error(err))
	}
	return nil
}

// RefreshRates 拉取基准货币的全部报价并更新已启用资产。
// success 标志一到手就先记时间戳，哪怕这次一条汇率都没写。
func (r *AssetRepository) RefreshRates(ctx context.Context) error {
	resp, err := r.source.GetLiveRates(ctx, r.base)
	if err != nil {
		return err
	}
	if !resp.Success {
		return ErrAPIUnsuccessful
	}

	ts := time.Now().UnixMilli()
	r.settings.SaveLastRefresh(ts)

	enabled, err := r.store.GetEnabledCodes(ctx)
	if err != nil {
		return err
	}
	if len(enabled) == 0 {
		return nil
	}
	enabledSet := make(map[string]bool, len(enabled))
	for _, code := range enabled {
		enabledSet[code] = true
	}

	for pair, rateVal := range resp.Quotes {
		// 币对去掉基准货币前缀，如 USDEUR -> EUR
		if !strings.HasPrefix(pair, r.base) {
			continue
		}
		code := pair[len(r.base):]
		// 只更新已启用的资产，其余报价直接丢弃
		if !enabledSet[code] {
			continue
		}
		// 暂无历史数据，change 先写 0
		if err := r.store.UpdateRate(ctx, code, rateVal, 0.0, ts); err != nil {
			return err
		}
	}
	return nil
}

// RefreshAssetList 返回（可过滤的）权威资产全集，全部为未启用零汇率的临时值，
// 不落库；任何失败都退回内置默认列表。
func (r *AssetRepository) RefreshAssetList(ctx context.Context, query string) []models.Asset {
	resp, err := r.source.GetCurrencyList(ctx, query)
	if err != nil || !resp.Success {
		return r.defaultAssetList()
	}

	out := make([]models.Asset, 0, len(resp.Currencies))
	for _, code := range sortedCodes(resp.Currencies) {
		out = append(out, models.Asset{Code: code, Name: resp.Currencies[code]})
	}
	return out
}

// GetMergedAssets 供搜索/浏览页使用：以远端全集的顺序输出，命中本地缓存的
// 条目原样替换（保留启用状态和汇率），其余保持未启用零汇率。
// 只在本地存在但不在当前全集里的资产会被这份视图静默略过，库里不动。
func (r *AssetRepository) GetMergedAssets(ctx context.Context, query string) ([]models.Asset, error) {
	if err := r.InitializeIfEmpty(ctx); err != nil {
		return nil, err
	}

	cached, err := r.store.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	byCode := make(map[string]models.Asset, len(cached))
	for _, a := range cached {
		byCode[a.Code] = a
	}

	universe := r.RefreshAssetList(ctx, query)
	out := make([]models.Asset, 0, len(universe))
	for _, a := range universe {
		if hit, ok := byCode[a.Code]; ok {
			out = append(out, hit)
		} else {
			out = append(out, a)
		}
	}
	return out, nil
}

// ToggleAsset 先落开关再拉汇率：拉取失败不回滚开关，库里留着新状态和旧汇率
func (r *AssetRepository) ToggleAsset(ctx context.Context, code string, enabled bool) error {
	if err := r.store.SetEnabled(ctx, code, enabled); err != nil {
		return err
	}
	if !enabled {
		// 关掉不碰网络
		return nil
	}
	return r.refreshAssetRate(ctx, code)
}

// 单个资产的汇率刷新，报价里找不到对应币对算失败
func (r *AssetRepository) refreshAssetRate(ctx context.Context, code string) error {
	resp, err := r.source.GetLiveRates(ctx, r.base)
	if err != nil {
		return err
	}
	if !resp.Success {
		return ErrAPIUnsuccessful
	}

	rateVal, ok := resp.Quotes[r.base+code]
	if !ok {
		return fmt.Errorf("%w: %s", ErrRateNotFound, code)
	}
	return r.store.UpdateRate(ctx, code, rateVal, 0.0, time.Now().UnixMilli())
}

// 兜底列表是固定的，不跟随基准货币配置
func (r *AssetRepository) defaultAssetList() []models.Asset {
	return []models.Asset{
		{Code: "USD", Name: "US Dollar"},
		{Code: "EUR", Name: "Euro"},
	}
}

// map 遍历顺序随机，统一按 code 升序保证输出稳定
func sortedCodes(currencies map[string]string) []string {
	codes := make([]string, 0, len(currencies))
	for code := range currencies {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
