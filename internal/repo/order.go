package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/craftedcommune/cafe/internal/models"
)

func (r *GormRepo) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	err := r.DB.WithContext(ctx).
		Preload("Items").
		First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) OrderNumberExists(ctx context.Context, number string) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).
		Model(&models.Order{}).
		Where("order_number = ?", number).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *GormRepo) ListOrders(ctx context.Context, status string, offset, limit int) (int64, []models.Order, error) {
	q := r.DB.WithContext(ctx).Model(&models.Order{})
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var orders []models.Order
	if err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&orders).Error; err != nil {
		return 0, nil, err
	}
	return total, orders, nil
}

func (r *GormRepo) UpdateOrderStatus(ctx context.Context, id uint, status string) error {
	res := r.DB.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// IncrementPurchaseCount bumps a product's analytics counter inside tx with a
// single UPDATE expression, creating the row when the product has never been
// ordered. The increment must not be a read-modify-write.
func IncrementPurchaseCount(tx *gorm.DB, productID uint, qty uint) error {
	res := tx.Model(&models.ProductAnalytics{}).
		Where("product_id = ?", productID).
		UpdateColumn("purchase_count", gorm.Expr("purchase_count + ?", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return tx.Create(&models.ProductAnalytics{ProductID: productID, PurchaseCount: qty}).Error
	}
	return nil
}

func (r *GormRepo) GetPurchaseCount(ctx context.Context, productID uint) (uint, error) {
	var pa models.ProductAnalytics
	err := r.DB.WithContext(ctx).Where("product_id = ?", productID).First(&pa).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return pa.PurchaseCount, nil
}
