package services

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Tarrras/CurrencyDashboard/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 后台刷新会和测试并发跑，替身得自己加锁
type syncQuoteSource struct {
	liveResp  LiveRatesResponse
	listResp  CurrencyListResponse
	liveCalls atomic.Int32
}

func (f *syncQuoteSource) GetLiveRates(ctx context.Context, base string) (LiveRatesResponse, error) {
	f.liveCalls.Add(1)
	return f.liveResp, nil
}

func (f *syncQuoteSource) GetCurrencyList(ctx context.Context, query string) (CurrencyListResponse, error) {
	return f.listResp, nil
}

type syncAssetStore struct {
	mu   sync.Mutex
	rows map[string]models.Asset
}

func newSyncAssetStore() *syncAssetStore {
	return &syncAssetStore{rows: make(map[string]models.Asset)}
}

func (s *syncAssetStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}

func (s *syncAssetStore) GetAll(ctx context.Context) ([]models.Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Asset, 0, len(s.rows))
	for _, a := range s.rows {
		out = append(out, a)
	}
	return out, nil
}

func (s *syncAssetStore) GetEnabled(ctx context.Context) ([]models.Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Asset, 0, len(s.rows))
	for _, a := range s.rows {
		if a.IsEnabled {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *syncAssetStore) GetEnabledCodes(ctx context.Context) ([]string, error) {
	enabled, _ := s.GetEnabled(ctx)
	codes := make([]string, 0, len(enabled))
	for _, a := range enabled {
		codes = append(codes, a.Code)
	}
	return codes, nil
}

func (s *syncAssetStore) GetByCode(ctx context.Context, code string) (*models.Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.rows[code]; ok {
		return &a, nil
	}
	return nil, nil
}

func (s *syncAssetStore) UpsertMany(ctx context.Context, assets []models.Asset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range assets {
		s.rows[a.Code] = a
	}
	return nil
}

func (s *syncAssetStore) UpdateRate(ctx context.Context, code string, rateVal, change float64, ts int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.rows[code]; ok {
		a.Rate, a.Change, a.LastUpdated = rateVal, change, ts
		s.rows[code] = a
	}
	return nil
}

func (s *syncAssetStore) SetEnabled(ctx context.Context, code string, enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.rows[code]
	if !ok {
		a = models.Asset{Code: code}
	}
	a.IsEnabled = enabled
	s.rows[code] = a
	return nil
}

func TestRefresherBootstrapsAndKeepsRefreshing(t *testing.T) {
	source := &syncQuoteSource{
		listResp: CurrencyListResponse{Success: true, Currencies: map[string]string{"USD": "US Dollar", "EUR": "Euro"}},
		liveResp: LiveRatesResponse{Success: true, Quotes: map[string]float64{"USDEUR": 0.85}},
	}
	store := newSyncAssetStore()
	repo := NewAssetRepository(source, store, &fakeSettings{}, "USD")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	NewRefresher(repo, 10*time.Millisecond).Start(ctx)

	// 先建表，然后周期性刷新
	assert.Eventually(t, func() bool {
		return store.count() == 2 && source.liveCalls.Load() >= 3
	}, 2*time.Second, 5*time.Millisecond)
}

func TestRefresherStopsOnCancel(t *testing.T) {
	source := &syncQuoteSource{
		listResp: CurrencyListResponse{Success: true, Currencies: map[string]string{"USD": "US Dollar"}},
		liveResp: LiveRatesResponse{Success: true},
	}
	repo := NewAssetRepository(source, newSyncAssetStore(), &fakeSettings{}, "USD")

	ctx, cancel := context.WithCancel(context.Background())
	NewRefresher(repo, 5*time.Millisecond).Start(ctx)

	require.Eventually(t, func() bool { return source.liveCalls.Load() >= 1 }, 2*time.Second, 5*time.Millisecond)
	cancel()
	time.Sleep(20 * time.Millisecond)
	calls := source.liveCalls.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, calls, source.liveCalls.Load(), "取消之后不应该再有刷新")
}
