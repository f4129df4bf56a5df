package models

import (
	"time"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

type Category struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string `gorm:"not null"                 json:"name"`
	Slug         string `gorm:"uniqueIndex;not null"     json:"slug"`
	Icon         string `json:"icon"`
	DisplayOrder int    `gorm:"not null;default:0"       json:"display_order"`
	IsActive     bool   `gorm:"not null;default:true"    json:"is_active"`
}

type Product struct {
	ID            uint    `gorm:"primaryKey;autoIncrement"   json:"id"`
	CategoryID    uint    `gorm:"index;not null"             json:"category_id"`
	Name          string  `gorm:"index;not null"             json:"name"`
	Price         float64 `gorm:"not null;check:price >= 0"  json:"price"`
	Points        int     `gorm:"not null;check:points >= 0" json:"points"`
	Image         string  `json:"image"`
	IsRecommended bool    `gorm:"not null;default:false"     json:"is_recommended"`
	IsActive      bool    `gorm:"not null;default:true"      json:"is_active"`
}

type Order struct {
	ID          uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderNumber string      `gorm:"uniqueIndex;not null"     json:"order_number"`
	TotalAmount float64     `gorm:"not null"                 json:"total_amount"`
	TotalPoints int         `gorm:"not null"                 json:"total_points"`
	Status      string      `gorm:"index;not null"           json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	CompletedAt *time.Time  `json:"completed_at"`
	Items       []OrderItem `gorm:"constraint:OnDelete:CASCADE" json:"items"`
}

// OrderItem keeps name/price/points snapshots so later catalog edits never
// rewrite order history. ProductID stays nil when the cart line did not
// resolve to a catalog product.
type OrderItem struct {
	ID             uint    `gorm:"primaryKey;autoIncrement"    json:"id"`
	OrderID        uint    `gorm:"index;not null"              json:"order_id"`
	ProductID      *uint   `gorm:"index"                       json:"product_id"`
	ProductName    string  `gorm:"not null"                    json:"product_name"`
	Quantity       uint    `gorm:"not null;check:quantity > 0" json:"quantity"`
	UnitPrice      float64 `gorm:"not null"                    json:"unit_price"`
	UnitPoints     int     `gorm:"not null"                    json:"unit_points"`
	Subtotal       float64 `gorm:"not null"                    json:"subtotal"`
	SubtotalPoints int     `gorm:"not null"                    json:"subtotal_points"`
}

type ProductAnalytics struct {
	ID            uint `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID     uint `gorm:"uniqueIndex;not null"     json:"product_id"`
	PurchaseCount uint `gorm:"not null;default:0"       json:"purchase_count"`
}

type Setting struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	SettingKey   string `gorm:"uniqueIndex;not null"     json:"setting_key"`
	SettingValue string `gorm:"not null"                 json:"setting_value"`
}

type AdminUser struct {
	ID           uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string     `gorm:"uniqueIndex;not null"     json:"username"`
	PasswordHash string     `gorm:"not null"                 json:"-"`
	FullName     string     `json:"full_name"`
	Email        string     `json:"email"`
	LastLogin    *time.Time `json:"last_login"`
}

type ActivityLog struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	AdminID     uint      `gorm:"index;not null"           json:"admin_id"`
	Action      string    `gorm:"not null"                 json:"action"`
	Description string    `json:"description"`
	IPAddress   string    `json:"ip_address"`
	CreatedAt   time.Time `json:"created_at"`
}
