package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/tanksmart/internal/models"
)

// ErrOrderNotFound is returned when an order id does not exist.
var ErrOrderNotFound = errors.New("order not found")

// OrderService is the persistence collaborator for orders.
type OrderService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewOrderService constructs an OrderService.
func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db, now: time.Now}
}

// GenerateOrderNumber builds a TS-YYYYMMDD-NNNN order number with a random
// four-digit suffix. Uniqueness is not verified before insert; the unique
// index on the column turns the rare collision into an insert error instead
// of a silent duplicate.
func GenerateOrderNumber(now time.Time) string {
	return fmt.Sprintf("TS-%s-%04d", now.Format("20060102"), 1000+rand.Intn(9000))
}

// Create persists a submitted order, assigning the order number and default
// status.
func (s *OrderService) Create(ctx context.Context, order *models.Order) error {
	if order.OrderNumber == "" {
		order.OrderNumber = GenerateOrderNumber(s.now())
	}
	if order.Status == "" {
		order.Status = models.StatusPending
	}

	return s.db.WithContext(ctx).Create(order).Error
}

// Get loads a single order with its communications.
func (s *OrderService) Get(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).
		Preload("Communications", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at desc")
		}).
		First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetByNumber loads an order by its order number.
func (s *OrderService) GetByNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).First(&order, "order_number = ?", orderNumber).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// Communications returns the communication log for one order, newest first.
func (s *OrderService) Communications(ctx context.Context, orderID uuid.UUID) ([]models.OrderCommunication, error) {
	var comms []models.OrderCommunication
	err := s.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at desc").
		Find(&comms).Error
	if err != nil {
		return nil, err
	}
	return comms, nil
}

// OrderFilter narrows List results.
type OrderFilter struct {
	Status string
	Search string
	Limit  int
	Offset int
}

// List returns orders newest first, optionally filtered by status or a search
// over order number, customer name and postal code.
func (s *OrderService) List(ctx context.Context, filter OrderFilter) ([]models.Order, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Order{})

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where(
			"order_number ILIKE ? OR customer_last_name ILIKE ? OR customer_email ILIKE ? OR postal_code ILIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []models.Order
	if err := query.Order("created_at desc").
		Limit(filter.Limit).Offset(filter.Offset).
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

// ApplyStatusChange mutates the order for a status transition. Moving to
// delivered stamps the payment-received time once; repeating the transition
// leaves an earlier stamp untouched. Any status may follow any other.
func ApplyStatusChange(order *models.Order, status string, now time.Time) {
	order.Status = status
	if status == models.StatusDelivered && order.PaymentReceivedAt == nil {
		order.PaymentReceivedAt = &now
	}
}

// UpdateStatus transitions an order to the given status.
func (s *OrderService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.Order, error) {
	if !models.ValidStatus(status) {
		return nil, fmt.Errorf("unknown order status %q", status)
	}

	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	ApplyStatusChange(order, status, s.now())

	updates := map[string]any{"status": order.Status}
	if order.PaymentReceivedAt != nil {
		updates["payment_received_at"] = order.PaymentReceivedAt
	}

	if err := s.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}

	return order, nil
}

// BulkDelete removes orders and their communications permanently.
func (s *OrderService) BulkDelete(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id IN ?", ids).Delete(&models.OrderCommunication{}).Error; err != nil {
			return err
		}
		return tx.Where("id IN ?", ids).Delete(&models.Order{}).Error
	})
}

// Stats aggregates dashboard numbers.
type Stats struct {
	TotalOrders    int64            `json:"total_orders"`
	OrdersByStatus map[string]int64 `json:"orders_by_status"`
	TotalRevenue   float64          `json:"total_revenue"`
	TotalLiters    int64            `json:"total_liters"`
}

// Stats returns aggregate order statistics for the admin dashboard. Cancelled
// orders are excluded from revenue and volume.
func (s *OrderService) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{OrdersByStatus: make(map[string]int64)}

	if err := s.db.WithContext(ctx).Model(&models.Order{}).Count(&stats.TotalOrders).Error; err != nil {
		return nil, err
	}

	type statusCount struct {
		Status string
		Count  int64
	}
	var counts []statusCount
	if err := s.db.WithContext(ctx).Model(&models.Order{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&counts).Error; err != nil {
		return nil, err
	}
	for _, sc := range counts {
		stats.OrdersByStatus[sc.Status] = sc.Count
	}

	if err := s.db.WithContext(ctx).Model(&models.Order{}).
		Where("status != ?", models.StatusCancelled).
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&stats.TotalRevenue).Error; err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(&models.Order{}).
		Where("status != ?", models.StatusCancelled).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&stats.TotalLiters).Error; err != nil {
		return nil, err
	}

	return stats, nil
}
