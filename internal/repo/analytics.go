package repo

import (
	"context"
	"time"

	"github.com/craftedcommune/cafe/internal/models"
)

type SalesStats struct {
	Revenue float64 `json:"revenue"`
	Orders  int64   `json:"orders"`
	Points  int64   `json:"points"`
}

type DailySales struct {
	Date    string  `json:"date"`
	Orders  int64   `json:"orders"`
	Revenue float64 `json:"revenue"`
}

type TopProduct struct {
	ProductName string  `json:"product_name"`
	TotalSold   int64   `json:"total_sold"`
	Revenue     float64 `json:"revenue"`
}

type CategoryPerformance struct {
	Category  string  `json:"category"`
	Orders    int64   `json:"orders"`
	ItemsSold int64   `json:"items_sold"`
	Revenue   float64 `json:"revenue"`
}

type HourlySales struct {
	Hour    int     `json:"hour"`
	Orders  int64   `json:"orders"`
	Revenue float64 `json:"revenue"`
}

type BestSeller struct {
	ProductID     uint   `json:"product_id"`
	Name          string `json:"name"`
	PurchaseCount uint   `json:"purchase_count"`
}

func (r *GormRepo) SalesStatsBetween(ctx context.Context, from, to time.Time) (*SalesStats, error) {
	var stats SalesStats
	err := r.DB.WithContext(ctx).
		Model(&models.Order{}).
		Select("COALESCE(SUM(total_amount), 0) AS revenue, COUNT(*) AS orders, COALESCE(SUM(total_points), 0) AS points").
		Where("status = ? AND created_at >= ? AND created_at < ?", models.OrderStatusCompleted, from, to).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *GormRepo) DailySalesBetween(ctx context.Context, from, to time.Time) ([]DailySales, error) {
	var rows []DailySales
	err := r.DB.WithContext(ctx).
		Model(&models.Order{}).
		Select("DATE(created_at) AS date, COUNT(*) AS orders, COALESCE(SUM(total_amount), 0) AS revenue").
		Where("status = ? AND created_at >= ? AND created_at < ?", models.OrderStatusCompleted, from, to).
		Group("DATE(created_at)").
		Order("date ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *GormRepo) TopProductsBetween(ctx context.Context, from, to time.Time, limit int) ([]TopProduct, error) {
	var rows []TopProduct
	err := r.DB.WithContext(ctx).
		Model(&models.OrderItem{}).
		Select("order_items.product_name AS product_name, SUM(order_items.quantity) AS total_sold, COALESCE(SUM(order_items.subtotal), 0) AS revenue").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.status = ? AND orders.created_at >= ? AND orders.created_at < ?", models.OrderStatusCompleted, from, to).
		Group("order_items.product_name").
		Order("total_sold DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *GormRepo) CategoryPerformanceBetween(ctx context.Context, from, to time.Time) ([]CategoryPerformance, error) {
	var rows []CategoryPerformance
	err := r.DB.WithContext(ctx).
		Model(&models.OrderItem{}).
		Select("categories.name AS category, COUNT(DISTINCT order_items.order_id) AS orders, SUM(order_items.quantity) AS items_sold, COALESCE(SUM(order_items.subtotal), 0) AS revenue").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Joins("JOIN products ON products.id = order_items.product_id").
		Joins("JOIN categories ON categories.id = products.category_id").
		Where("orders.status = ? AND orders.created_at >= ? AND orders.created_at < ?", models.OrderStatusCompleted, from, to).
		Group("categories.id, categories.name").
		Order("revenue DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *GormRepo) HourlySalesBetween(ctx context.Context, from, to time.Time) ([]HourlySales, error) {
	hourExpr := "CAST(strftime('%H', created_at) AS INTEGER)"
	if r.DB.Dialector.Name() == "postgres" {
		hourExpr = "EXTRACT(HOUR FROM created_at)::int"
	}

	var rows []HourlySales
	err := r.DB.WithContext(ctx).
		Model(&models.Order{}).
		Select(hourExpr + " AS hour, COUNT(*) AS orders, COALESCE(SUM(total_amount), 0) AS revenue").
		Where("status = ? AND created_at >= ? AND created_at < ?", models.OrderStatusCompleted, from, to).
		Group(hourExpr).
		Order("hour ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *GormRepo) BestSellers(ctx context.Context, limit int) ([]BestSeller, error) {
	var rows []BestSeller
	err := r.DB.WithContext(ctx).
		Model(&models.ProductAnalytics{}).
		Select("product_analytics.product_id AS product_id, products.name AS name, product_analytics.purchase_count AS purchase_count").
		Joins("JOIN products ON products.id = product_analytics.product_id").
		Order("product_analytics.purchase_count DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
