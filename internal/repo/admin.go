package repo

import (
	"context"
	"time"

	"github.com/craftedcommune/cafe/internal/models"
)

func (r *GormRepo) FindAdminByUsername(ctx context.Context, username string) (*models.AdminUser, error) {
	var admin models.AdminUser
	if err := r.DB.WithContext(ctx).Where("username = ?", username).First(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *GormRepo) TouchAdminLastLogin(ctx context.Context, id uint) error {
	now := time.Now().UTC()
	return r.DB.WithContext(ctx).
		Model(&models.AdminUser{}).
		Where("id = ?", id).
		Update("last_login", &now).Error
}

func (r *GormRepo) RecordActivity(ctx context.Context, entry *models.ActivityLog) error {
	return r.DB.WithContext(ctx).Create(entry).Error
}
