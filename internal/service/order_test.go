package service

import (
	"context"
	"regexp"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/craftedcommune/cafe/internal/models"
	"github.com/craftedcommune/cafe/internal/repo"
	"github.com/craftedcommune/cafe/internal/transport"
)

func initTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.ProductAnalytics{},
		&models.Order{},
		&models.OrderItem{},
		&models.Setting{},
		&models.AdminUser{},
		&models.ActivityLog{},
	); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	return db
}

func seedCatalog(t *testing.T, db *gorm.DB) (models.Product, models.Product) {
	t.Helper()

	cat := models.Category{Name: "Drinks", Slug: "drinks", DisplayOrder: 1, IsActive: true}
	require.NoError(t, db.Create(&cat).Error)

	latte := models.Product{CategoryID: cat.ID, Name: "Iced Latte", Price: 120, Points: 12, IsActive: true}
	mocha := models.Product{CategoryID: cat.ID, Name: "Mocha", Price: 150, Points: 15, IsActive: true}
	require.NoError(t, db.Create(&latte).Error)
	require.NoError(t, db.Create(&mocha).Error)

	return latte, mocha
}

func purchaseCount(t *testing.T, db *gorm.DB, productID uint) uint {
	t.Helper()
	n, err := repo.New(db).GetPurchaseCount(context.Background(), productID)
	require.NoError(t, err)
	return n
}

func TestPlaceOrderSingleItem(t *testing.T) {
	db := initTestDB(t)
	latte, _ := seedCatalog(t, db)
	svc := NewOrderService(db)

	order, err := svc.PlaceOrder(context.Background(), transport.PlaceOrderRequest{
		Items:  []transport.CartLine{{Name: "Iced Latte", Price: 120, Points: 12, Qty: 2}},
		Total:  240,
		Points: 24,
	})
	require.NoError(t, err)

	require.Regexp(t, regexp.MustCompile(`^ORD-\d{8}-[0-9A-F]{6}$`), order.OrderNumber)
	require.Equal(t, models.OrderStatusCompleted, order.Status)
	require.NotNil(t, order.CompletedAt)
	require.Equal(t, float64(240), order.TotalAmount)
	require.Equal(t, 24, order.TotalPoints)

	var stored models.Order
	require.NoError(t, db.Preload("Items").First(&stored, order.ID).Error)
	require.Len(t, stored.Items, 1)
	require.Equal(t, float64(240), stored.Items[0].Subtotal)
	require.Equal(t, 24, stored.Items[0].SubtotalPoints)
	require.NotNil(t, stored.Items[0].ProductID)
	require.Equal(t, latte.ID, *stored.Items[0].ProductID)

	require.Equal(t, uint(2), purchaseCount(t, db, latte.ID))
}

func TestPlaceOrderMixedCart(t *testing.T) {
	db := initTestDB(t)
	latte, mocha := seedCatalog(t, db)
	svc := NewOrderService(db)

	order, err := svc.PlaceOrder(context.Background(), transport.PlaceOrderRequest{
		Items: []transport.CartLine{
			{Name: "Iced Latte", Price: 120, Points: 12, Qty: 3},
			{Name: "Mocha", Price: 150, Points: 15, Qty: 1},
		},
		Total:  510,
		Points: 51,
	})
	require.NoError(t, err)
	require.Len(t, order.Items, 2)
	require.Equal(t, float64(510), order.TotalAmount)
	require.Equal(t, 51, order.TotalPoints)

	require.Equal(t, uint(3), purchaseCount(t, db, latte.ID))
	require.Equal(t, uint(1), purchaseCount(t, db, mocha.ID))
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	db := initTestDB(t)
	svc := NewOrderService(db)

	_, err := svc.PlaceOrder(context.Background(), transport.PlaceOrderRequest{})
	require.ErrorIs(t, err, ErrValidation)

	var n int64
	require.NoError(t, db.Model(&models.Order{}).Count(&n).Error)
	require.Zero(t, n)
}

func TestPlaceOrderRejectsBadLines(t *testing.T) {
	db := initTestDB(t)
	seedCatalog(t, db)
	svc := NewOrderService(db)

	cases := []transport.CartLine{
		{Name: "Iced Latte", Price: 120, Points: 12, Qty: 0},
		{Name: "Iced Latte", Price: 120, Points: 12, Qty: -1},
		{Name: "Iced Latte", Price: -5, Points: 12, Qty: 1},
		{Name: "Iced Latte", Price: 120, Points: -1, Qty: 1},
		{Name: "   ", Price: 120, Points: 12, Qty: 1},
	}
	for _, line := range cases {
		_, err := svc.PlaceOrder(context.Background(), transport.PlaceOrderRequest{
			Items:  []transport.CartLine{line},
			Total:  line.Price * float64(line.Qty),
			Points: line.Points * line.Qty,
		})
		require.ErrorIs(t, err, ErrValidation)
	}

	var n int64
	require.NoError(t, db.Model(&models.Order{}).Count(&n).Error)
	require.Zero(t, n)
}

func TestPlaceOrderTotalMismatch(t *testing.T) {
	db := initTestDB(t)
	latte, _ := seedCatalog(t, db)
	svc := NewOrderService(db)

	_, err := svc.PlaceOrder(context.Background(), transport.PlaceOrderRequest{
		Items:  []transport.CartLine{{Name: "Iced Latte", Price: 120, Points: 12, Qty: 2}},
		Total:  100, // fabricated
		Points: 24,
	})
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.PlaceOrder(context.Background(), transport.PlaceOrderRequest{
		Items:  []transport.CartLine{{Name: "Iced Latte", Price: 120, Points: 12, Qty: 2}},
		Total:  240,
		Points: 999,
	})
	require.ErrorIs(t, err, ErrValidation)

	var n int64
	require.NoError(t, db.Model(&models.Order{}).Count(&n).Error)
	require.Zero(t, n)
	require.Equal(t, uint(0), purchaseCount(t, db, latte.ID))
}

func TestPlaceOrderTotalWithinTolerance(t *testing.T) {
	db := initTestDB(t)
	seedCatalog(t, db)
	svc := NewOrderService(db)

	_, err := svc.PlaceOrder(context.Background(), transport.PlaceOrderRequest{
		Items:  []transport.CartLine{{Name: "Iced Latte", Price: 120, Points: 12, Qty: 2}},
		Total:  240.004,
		Points: 24,
	})
	require.NoError(t, err)
}

func TestPlaceOrderUnresolvedProduct(t *testing.T) {
	db := initTestDB(t)
	latte, _ := seedCatalog(t, db)
	svc := NewOrderService(db)

	order, err := svc.PlaceOrder(context.Background(), transport.PlaceOrderRequest{
		Items: []transport.CartLine{
			{Name: "Iced Latte", Price: 120, Points: 12, Qty: 1},
			{Name: "Secret Menu Item", Price: 99, Points: 9, Qty: 2},
		},
		Total:  318,
		Points: 30,
	})
	require.NoError(t, err)
	require.Len(t, order.Items, 2)

	var stored models.Order
	require.NoError(t, db.Preload("Items").First(&stored, order.ID).Error)

	var unresolved *models.OrderItem
	for i := range stored.Items {
		if stored.Items[i].ProductName == "Secret Menu Item" {
			unresolved = &stored.Items[i]
		}
	}
	require.NotNil(t, unresolved)
	require.Nil(t, unresolved.ProductID)
	require.Equal(t, float64(198), unresolved.Subtotal)

	// only the resolved line counts toward analytics
	require.Equal(t, uint(1), purchaseCount(t, db, latte.ID))
	var rows int64
	require.NoError(t, db.Model(&models.ProductAnalytics{}).Count(&rows).Error)
	require.Equal(t, int64(1), rows)
}

func TestPlaceOrderResolvesByID(t *testing.T) {
	db := initTestDB(t)
	latte, _ := seedCatalog(t, db)
	svc := NewOrderService(db)

	// stale display name, valid catalog id
	order, err := svc.PlaceOrder(context.Background(), transport.PlaceOrderRequest{
		Items:  []transport.CartLine{{ProductID: latte.ID, Name: "Renamed Latte", Price: 120, Points: 12, Qty: 1}},
		Total:  120,
		Points: 12,
	})
	require.NoError(t, err)
	require.NotNil(t, order.Items[0].ProductID)
	require.Equal(t, latte.ID, *order.Items[0].ProductID)
	require.Equal(t, uint(1), purchaseCount(t, db, latte.ID))
}

func TestPlaceOrderAnalyticsAccumulate(t *testing.T) {
	db := initTestDB(t)
	latte, _ := seedCatalog(t, db)
	svc := NewOrderService(db)

	for _, qty := range []int{2, 3} {
		_, err := svc.PlaceOrder(context.Background(), transport.PlaceOrderRequest{
			Items:  []transport.CartLine{{Name: "Iced Latte", Price: 120, Points: 12, Qty: qty}},
			Total:  120 * float64(qty),
			Points: 12 * qty,
		})
		require.NoError(t, err)
	}

	require.Equal(t, uint(5), purchaseCount(t, db, latte.ID))
}

func TestPlaceOrderAtomicRollback(t *testing.T) {
	db := initTestDB(t)
	latte, _ := seedCatalog(t, db)
	svc := NewOrderService(db)

	// force a failure between the order insert and the item inserts
	require.NoError(t, db.Migrator().DropTable(&models.OrderItem{}))

	_, err := svc.PlaceOrder(context.Background(), transport.PlaceOrderRequest{
		Items:  []transport.CartLine{{Name: "Iced Latte", Price: 120, Points: 12, Qty: 2}},
		Total:  240,
		Points: 24,
	})
	require.Error(t, err)

	var n int64
	require.NoError(t, db.Model(&models.Order{}).Count(&n).Error)
	require.Zero(t, n)
	require.Equal(t, uint(0), purchaseCount(t, db, latte.ID))
}

func TestPlaceOrderNumbersAreUnique(t *testing.T) {
	db := initTestDB(t)
	seedCatalog(t, db)
	svc := NewOrderService(db)

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		order, err := svc.PlaceOrder(context.Background(), transport.PlaceOrderRequest{
			Items:  []transport.CartLine{{Name: "Iced Latte", Price: 120, Points: 12, Qty: 1}},
			Total:  120,
			Points: 12,
		})
		require.NoError(t, err)
		require.False(t, seen[order.OrderNumber], "duplicate order number %s", order.OrderNumber)
		seen[order.OrderNumber] = true
	}
}

func TestGetOrder(t *testing.T) {
	db := initTestDB(t)
	seedCatalog(t, db)
	svc := NewOrderService(db)

	placed, err := svc.PlaceOrder(context.Background(), transport.PlaceOrderRequest{
		Items:  []transport.CartLine{{Name: "Iced Latte", Price: 120, Points: 12, Qty: 2}},
		Total:  240,
		Points: 24,
	})
	require.NoError(t, err)

	got, err := svc.GetOrder(context.Background(), placed.ID)
	require.NoError(t, err)
	require.Equal(t, placed.OrderNumber, got.OrderNumber)
	require.Len(t, got.Items, 1)

	_, err = svc.GetOrder(context.Background(), 9999)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateOrderStatus(t *testing.T) {
	db := initTestDB(t)
	seedCatalog(t, db)
	svc := NewOrderService(db)

	placed, err := svc.PlaceOrder(context.Background(), transport.PlaceOrderRequest{
		Items:  []transport.CartLine{{Name: "Mocha", Price: 150, Points: 15, Qty: 1}},
		Total:  150,
		Points: 15,
	})
	require.NoError(t, err)

	require.NoError(t, svc.UpdateOrderStatus(context.Background(), placed.ID, models.OrderStatusCancelled))

	got, err := svc.GetOrder(context.Background(), placed.ID)
	require.NoError(t, err)
	require.Equal(t, models.OrderStatusCancelled, got.Status)

	require.ErrorIs(t, svc.UpdateOrderStatus(context.Background(), placed.ID, "shipped"), ErrValidation)
	require.ErrorIs(t, svc.UpdateOrderStatus(context.Background(), 9999, models.OrderStatusPending), ErrNotFound)
}
