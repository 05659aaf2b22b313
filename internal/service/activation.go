package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"codeshop/internal/model"
	"codeshop/internal/repository"

	"gorm.io/gorm"
)

type ActivationService interface {
	// Activate binds a paid order to a device, exactly once. On success the
	// returned driveLink is the fulfillment artifact; this is the only call
	// that hands it out. On ErrAlreadyActivated the order is returned anyway
	// so the caller can see the existing binding.
	Activate(ctx context.Context, orderCode int64, deviceID, ip string) (*model.Order, string, error)
	Validate(ctx context.Context, orderCode int64, deviceID string) error
	ResetByOrderCode(ctx context.Context, orderCode int64) error
	ResetByID(ctx context.Context, orderID uint) error
}

type activationServiceImpl struct {
	catalogRepo repository.CatalogRepository
	orderRepo   repository.OrderRepository
}

func NewActivationService(
	catalogRepo repository.CatalogRepository,
	orderRepo repository.OrderRepository,
) ActivationService {
	return &activationServiceImpl{
		catalogRepo: catalogRepo,
		orderRepo:   orderRepo,
	}
}

func (s *activationServiceImpl) Activate(ctx context.Context, orderCode int64, deviceID, ip string) (*model.Order, string, error) {
	var device *string
	if deviceID != "" {
		device = &deviceID
	}

	won, err := s.orderRepo.Activate(ctx, orderCode, device, ip, time.Now())
	if err != nil {
		return nil, "", fmt.Errorf("activate order: %w", err)
	}

	order, err := s.orderRepo.FindByOrderCode(ctx, orderCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrNotFound
		}
		return nil, "", fmt.Errorf("find order: %w", err)
	}

	if !won {
		// the conditional update matched nothing; the re-read tells us why
		if order.Status != model.OrderStatusPaid {
			return nil, "", ErrNotPaid
		}
		return order, "", ErrAlreadyActivated
	}

	// hand out the download location; the drive link lives on the catalog
	// item, an item deleted since purchase just yields an empty link
	driveLink := ""
	if item, err := s.catalogRepo.FindByID(ctx, order.CatalogItemID); err == nil {
		driveLink = item.DriveLink
	}

	return order, driveLink, nil
}

// Validate is read-only: it mutates nothing whether it succeeds or fails.
func (s *activationServiceImpl) Validate(ctx context.Context, orderCode int64, deviceID string) error {
	if orderCode == 0 || deviceID == "" {
		return fmt.Errorf("%w: orderCode and deviceId are required", ErrBadRequest)
	}

	order, err := s.orderRepo.FindByOrderCode(ctx, orderCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("find order: %w", err)
	}

	if order.Status != model.OrderStatusPaid {
		return ErrNotPaid
	}
	if !order.Activation.IsActivated {
		return ErrNotActivated
	}
	// orders activated without a device bound accept any device here; the
	// mismatch check only applies once a binding exists
	if order.Activation.DeviceID != nil && *order.Activation.DeviceID != deviceID {
		return ErrDeviceMismatch
	}

	return nil
}

func (s *activationServiceImpl) ResetByOrderCode(ctx context.Context, orderCode int64) error {
	order, err := s.orderRepo.FindByOrderCode(ctx, orderCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("find order: %w", err)
	}
	return s.reset(ctx, order.ID)
}

func (s *activationServiceImpl) ResetByID(ctx context.Context, orderID uint) error {
	return s.reset(ctx, orderID)
}

func (s *activationServiceImpl) reset(ctx context.Context, orderID uint) error {
	err := s.orderRepo.ResetActivation(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("reset activation: %w", err)
	}
	return nil
}
