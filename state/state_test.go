package state

import (
	"testing"
	"time"

	"github.com/Tarrras/CurrencyDashboard/models"
	"github.com/Tarrras/CurrencyDashboard/state/actions"
	"github.com/Tarrras/CurrencyDashboard/state/data"

	"github.com/johnsiilver/boutique"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubPublishesAssetChanges(t *testing.T) {
	hub, err := New()
	require.NoError(t, err)

	sig, cancel, err := hub.Store.Subscribe("Assets")
	require.NoError(t, err)
	defer cancel()

	assets := []models.Asset{{Code: "EUR", Name: "Euro", IsEnabled: true, Rate: 0.85}}
	require.NoError(t, hub.Store.Perform(actions.SetAssets(assets)))

	select {
	case s := <-sig:
		st := s.State.Data.(data.State)
		require.Len(t, st.Assets, 1)
		assert.Equal(t, "EUR", st.Assets[0].Code)
	case <-time.After(2 * time.Second):
		t.Fatal("资产变更没有推送给订阅者")
	}
}

func TestHubSnapshotReflectsLastRefresh(t *testing.T) {
	hub, err := New()
	require.NoError(t, err)
	assert.Zero(t, hub.Snapshot().LastRefresh)

	require.NoError(t, hub.Store.Perform(actions.SetLastRefresh(1700000000000)))

	// Perform 的广播是异步的，轮询快照
	assert.Eventually(t, func() bool {
		return hub.Snapshot().LastRefresh == 1700000000000
	}, 2*time.Second, 10*time.Millisecond)
}

func TestHubAnySubscriptionSeesAllFields(t *testing.T) {
	hub, err := New()
	require.NoError(t, err)

	sig, cancel, err := hub.Store.Subscribe(boutique.Any)
	require.NoError(t, err)
	defer cancel()

	require.NoError(t, hub.Store.Perform(actions.SetLastRefresh(42)))

	select {
	case s := <-sig:
		st := s.State.Data.(data.State)
		assert.Equal(t, int64(42), st.LastRefresh)
	case <-time.After(2 * time.Second):
		t.Fatal("Any 订阅没有收到信号")
	}
}
