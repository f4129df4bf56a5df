package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/craftedcommune/cafe/internal/logging"
	"github.com/craftedcommune/cafe/internal/models"
	"github.com/craftedcommune/cafe/internal/repo"
	"github.com/craftedcommune/cafe/internal/transport"
)

var (
	ErrValidation = errors.New("validation") // 400
	ErrNotFound   = errors.New("not found")  // 404
	ErrConflict   = errors.New("conflict")   // 409
)

const (
	orderNumberPrefix = "ORD"

	// declared vs recomputed total may differ by float rounding only
	totalTolerance = 0.01

	maxNumberAttempts = 5
)

type OrderService struct {
	DB   *gorm.DB
	Repo *repo.GormRepo
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{DB: db, Repo: repo.New(db)}
}

// PlaceOrder validates a submitted cart, persists the order with its item
// snapshots and the per-product analytics increments in one transaction, and
// returns the stored order. Nothing is written when any step fails.
func (s *OrderService) PlaceOrder(ctx context.Context, req transport.PlaceOrderRequest) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: cart is empty", ErrValidation)
	}

	var sumAmount float64
	var sumPoints int
	for i := range req.Items {
		line := &req.Items[i]
		if strings.TrimSpace(line.Name) == "" {
			return nil, fmt.Errorf("%w: product name required", ErrValidation)
		}
		if line.Qty <= 0 {
			return nil, fmt.Errorf("%w: quantity must be > 0", ErrValidation)
		}
		if line.Price < 0 {
			return nil, fmt.Errorf("%w: price must be >= 0", ErrValidation)
		}
		if line.Points < 0 {
			return nil, fmt.Errorf("%w: points must be >= 0", ErrValidation)
		}
		sumAmount += line.Price * float64(line.Qty)
		sumPoints += line.Points * line.Qty
	}

	if math.Abs(sumAmount-req.Total) > totalTolerance {
		return nil, fmt.Errorf("%w: declared total %.2f does not match line items %.2f", ErrValidation, req.Total, sumAmount)
	}
	if sumPoints != req.Points {
		return nil, fmt.Errorf("%w: declared points %d do not match line items %d", ErrValidation, req.Points, sumPoints)
	}

	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		number := newOrderNumber()

		exists, err := s.Repo.OrderNumberExists(ctx, number)
		if err != nil {
			return nil, err
		}
		if exists {
			continue
		}

		order, err := s.createOrder(ctx, number, req, sumAmount, sumPoints)
		if err == nil {
			return order, nil
		}
		if isUniqueViolation(err) {
			// lost the race for this number, regenerate
			continue
		}
		return nil, err
	}

	return nil, fmt.Errorf("%w: could not allocate a unique order number", ErrConflict)
}

func (s *OrderService) createOrder(ctx context.Context, number string, req transport.PlaceOrderRequest, total float64, points int) (*models.Order, error) {
	l := logging.FromContext(ctx)
	var order models.Order

	txErr := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()
		order = models.Order{
			OrderNumber: number,
			TotalAmount: total,
			TotalPoints: points,
			Status:      models.OrderStatusCompleted,
			CompletedAt: &now,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		for i := range req.Items {
			line := &req.Items[i]

			prod, err := resolveLine(tx, line)
			if err != nil {
				return err
			}

			item := models.OrderItem{
				OrderID:        order.ID,
				ProductName:    line.Name,
				Quantity:       uint(line.Qty),
				UnitPrice:      line.Price,
				UnitPoints:     line.Points,
				Subtotal:       line.Price * float64(line.Qty),
				SubtotalPoints: line.Points * line.Qty,
			}
			if prod != nil {
				item.ProductID = &prod.ID
			} else {
				l.Warn("order line did not resolve to a catalog product",
					"order_number", number, "name", line.Name)
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
			order.Items = append(order.Items, item)

			if prod != nil {
				if err := repo.IncrementPurchaseCount(tx, prod.ID, uint(line.Qty)); err != nil {
					return err
				}
			}
		}

		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return &order, nil
}

// resolveLine prefers the submitted catalog id and falls back to the display
// name. A miss is not an error: the line is kept as an unlinked snapshot and
// skips the analytics increment, matching how historical orders were taken.
func resolveLine(tx *gorm.DB, line *transport.CartLine) (*models.Product, error) {
	var prod models.Product

	if line.ProductID != 0 {
		err := tx.First(&prod, line.ProductID).Error
		if err == nil {
			return &prod, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	err := tx.Where("name = ?", line.Name).First(&prod).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &prod, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	order, err := s.Repo.GetOrder(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: order %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (s *OrderService) UpdateOrderStatus(ctx context.Context, id uint, status string) error {
	switch status {
	case models.OrderStatusPending, models.OrderStatusCompleted, models.OrderStatusCancelled:
	default:
		return fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}

	err := s.Repo.UpdateOrderStatus(ctx, id, status)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: order %d", ErrNotFound, id)
	}
	return err
}

func newOrderNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:6]
	return fmt.Sprintf("%s-%s-%s", orderNumberPrefix, time.Now().UTC().Format("20060102"), suffix)
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
}
