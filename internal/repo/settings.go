package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/craftedcommune/cafe/internal/models"
)

func (r *GormRepo) GetSetting(ctx context.Context, key, def string) (string, error) {
	var s models.Setting
	err := r.DB.WithContext(ctx).Where("setting_key = ?", key).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return def, nil
	}
	if err != nil {
		return def, err
	}
	return s.SettingValue, nil
}

// PutSetting has upsert semantics: insert the key or overwrite its value.
func (r *GormRepo) PutSetting(ctx context.Context, key, value string) error {
	return r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "setting_key"}},
			DoUpdates: clause.Assignments(map[string]any{"setting_value": value}),
		}).
		Create(&models.Setting{SettingKey: key, SettingValue: value}).Error
}

func (r *GormRepo) ListSettings(ctx context.Context) ([]models.Setting, error) {
	var all []models.Setting
	if err := r.DB.WithContext(ctx).Order("setting_key ASC").Find(&all).Error; err != nil {
		return nil, err
	}
	return all, nil
}
