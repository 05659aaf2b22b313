package repository

import (
	"context"
	"time"

	"codeshop/internal/model"

	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	FindByID(ctx context.Context, id uint) (*model.Order, error)
	FindByOrderCode(ctx context.Context, orderCode int64) (*model.Order, error)
	List(ctx context.Context) ([]*model.Order, error)
	SetPaymentLink(ctx context.Context, id uint, paymentLinkID, checkoutURL string) error
	MarkPaid(ctx context.Context, id uint) (bool, error)
	Activate(ctx context.Context, orderCode int64, deviceID *string, ip string, at time.Time) (bool, error)
	ResetActivation(ctx context.Context, id uint) error
}

type orderRepoImpl struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepoImpl{
		db: db,
	}
}

func (r *orderRepoImpl) Create(ctx context.Context, order *model.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *orderRepoImpl) FindByID(ctx context.Context, id uint) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&order).Error

	if err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *orderRepoImpl) FindByOrderCode(ctx context.Context, orderCode int64) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Where("order_code = ?", orderCode).
		First(&order).Error

	if err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *orderRepoImpl) List(ctx context.Context) ([]*model.Order, error) {
	var orders []*model.Order
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&orders).Error

	if err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *orderRepoImpl) SetPaymentLink(ctx context.Context, id uint, paymentLinkID, checkoutURL string) error {
	return r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"payment_link_id": paymentLinkID,
			"checkout_url":    checkoutURL,
			"updated_at":      time.Now(),
		}).Error
}

// MarkPaid flips a PENDING order to PAID and stamps paid_at. Returns false
// when no row changed, either because the order does not exist or because it
// is already PAID; the status column never moves back.
func (r *orderRepoImpl) MarkPaid(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ? AND status = ?", id, model.OrderStatusPending).
		Updates(map[string]interface{}{
			"status":     model.OrderStatusPaid,
			"paid_at":    time.Now(),
			"updated_at": time.Now(),
		})

	return result.RowsAffected == 1, result.Error
}

// Activate is the single conditional update that serializes concurrent first
// activations: the is_activated guard in the WHERE clause means at most one
// caller per order sees RowsAffected == 1.
func (r *orderRepoImpl) Activate(ctx context.Context, orderCode int64, deviceID *string, ip string, at time.Time) (bool, error) {
	result := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("order_code = ? AND status = ? AND activation_is_activated = ?",
			orderCode, model.OrderStatusPaid, false).
		Updates(map[string]interface{}{
			"activation_is_activated": true,
			"activation_activated_at": at,
			"activation_device_id":    deviceID,
			"activation_ip":           ip,
			"updated_at":              time.Now(),
		})

	return result.RowsAffected == 1, result.Error
}

func (r *orderRepoImpl) ResetActivation(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"activation_is_activated": false,
			"activation_activated_at": nil,
			"activation_device_id":    nil,
			"activation_ip":           "",
			"updated_at":              time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
