package services

// assets 表的读写。每次写完把最新列表发布到状态中心，
// 订阅方（websocket 推送）就能立刻看到变化。
import (
	"context"
	"errors"

	"github.com/Tarrras/CurrencyDashboard/log"
	"github.com/Tarrras/CurrencyDashboard/models"
	"github.com/Tarrras/CurrencyDashboard/state"
	"github.com/Tarrras/CurrencyDashboard/state/actions"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormAssetStore struct {
	db  *gorm.DB
	hub *state.Hub
}

func NewGormAssetStore(db *gorm.DB, hub *state.Hub) *GormAssetStore {
	return &GormAssetStore{db: db, hub: hub}
}

func (s *GormAssetStore) GetAll(ctx context.Context) ([]models.Asset, error) {
	var rows []models.Asset
	if err := s.db.WithContext(ctx).Order("code ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *GormAssetStore) GetEnabled(ctx context.Context) ([]models.Asset, error) {
	var rows []models.Asset
	if err := s.db.WithContext(ctx).
		Where("is_enabled = ?", true).
		Order("code ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *GormAssetStore) GetEnabledCodes(ctx context.Context) ([]string, error) {
	var codes []string
	if err := s.db.WithContext(ctx).
		Model(&models.Asset{}).
		Where("is_enabled = ?", true).
		Pluck("code", &codes).Error; err != nil {
		return nil, err
	}
	return codes, nil
}

func (s *GormAssetStore) GetByCode(ctx context.Context, code string) (*models.Asset, error) {
	var row models.Asset
	err := s.db.WithContext(ctx).Where("code = ?", code).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// UpsertMany 按主键 code 冲突就整行替换
func (s *GormAssetStore) UpsertMany(ctx context.Context, assets []models.Asset) error {
	if len(assets) == 0 {
		return nil
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "code"}},
			UpdateAll: true,
		}).
		Create(&assets).Error
	if err != nil {
		return err
	}
	s.publish(ctx)
	return nil
}

func (s *GormAssetStore) UpdateRate(ctx context.Context, code string, rateVal, change float64, ts int64) error {
	err := s.db.WithContext(ctx).
		Model(&models.Asset{}).
		Where("code = ?", code).
		Updates(map[string]interface{}{
			"rate":         rateVal,
			"change":       change,
			"last_updated": ts,
		}).Error
	if err != nil {
		return err
	}
	s.publish(ctx)
	return nil
}

func (s *GormAssetStore) SetEnabled(ctx context.Context, code string, enabled bool) error {
	err := s.db.WithContext(ctx).
		Model(&models.Asset{}).
		Where("code = ?", code).
		Update("is_enabled", enabled).Error
	if err != nil {
		return err
	}
	s.publish(ctx)
	return nil
}

// 发布失败只记日志，不影响写库结果
func (s *GormAssetStore) publish(ctx context.Context) {
	if s.hub == nil {
		return
	}
	rows, err := s.GetAll(ctx)
	if err != nil {
		log.L().Warn("failed to reload assets for state publish", zap.Error(err))
		return
	}
	if err := s.hub.Store.Perform(actions.SetAssets(rows)); err != nil {
		log.L().Warn("failed to publish asset state", zap.Error(err))
	}
}
