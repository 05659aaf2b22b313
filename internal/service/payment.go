package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"time"

	"codeshop/internal/client"
	"codeshop/internal/dto"
	"codeshop/internal/model"
	"codeshop/internal/repository"

	"gorm.io/gorm"
)

const orderCodeRetries = 3

type PaymentService interface {
	CreateOrder(ctx context.Context, req *dto.CreateOrderRequest) (*dto.CreateOrderResponse, error)
	ConfirmReturn(ctx context.Context, orderID uint, status, sig string) (*model.Order, error)
	MarkPaid(ctx context.Context, orderID uint) error
	GetOrder(ctx context.Context, orderID uint) (*model.Order, error)
	ListOrders(ctx context.Context) ([]*model.Order, error)
	Sign(orderCode int64, status string) string
}

type paymentServiceImpl struct {
	payosClient client.PayOSClient
	baseURL     string
	checksumKey string
	catalogRepo repository.CatalogRepository
	orderRepo   repository.OrderRepository
}

func NewPaymentService(
	payosClient client.PayOSClient,
	baseURL string,
	checksumKey string,
	catalogRepo repository.CatalogRepository,
	orderRepo repository.OrderRepository,
) PaymentService {
	return &paymentServiceImpl{
		payosClient: payosClient,
		baseURL:     baseURL,
		checksumKey: checksumKey,
		catalogRepo: catalogRepo,
		orderRepo:   orderRepo,
	}
}

func (s *paymentServiceImpl) CreateOrder(ctx context.Context, req *dto.CreateOrderRequest) (*dto.CreateOrderResponse, error) {
	item, err := s.catalogRepo.FindByID(ctx, req.ItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find catalog item: %w", err)
	}

	order := &model.Order{
		BuyerName:     req.BuyerName,
		BuyerEmail:    req.BuyerEmail,
		CatalogItemID: item.ID,
		ItemTitle:     item.Title,
		Amount:        item.PriceVND,
		Status:        model.OrderStatusPending,
	}

	// order_code carries a unique index; retry with a fresh code on collision
	for attempt := 0; ; attempt++ {
		order.OrderCode = newOrderCode()
		err = s.orderRepo.Create(ctx, order)
		if err == nil {
			break
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) && attempt < orderCodeRetries {
			continue
		}
		return nil, fmt.Errorf("store order: %w", err)
	}

	linkResp, err := s.payosClient.CreatePaymentLink(ctx, &client.CreatePaymentLinkRequest{
		OrderCode:   order.OrderCode,
		Amount:      order.Amount,
		Description: fmt.Sprintf("Order #%d", order.OrderCode),
		BuyerName:   order.BuyerName,
		BuyerEmail:  order.BuyerEmail,
		ItemTitle:   order.ItemTitle,
		ReturnURL:   s.returnURL(order),
		CancelURL:   fmt.Sprintf("%s/order/%d/cancel", s.baseURL, order.ID),
	})
	if err != nil {
		// order stays PENDING with no checkout url; the buyer has to start over
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	if err := s.orderRepo.SetPaymentLink(ctx, order.ID, linkResp.PaymentLinkID, linkResp.CheckoutURL); err != nil {
		return nil, fmt.Errorf("store payment link: %w", err)
	}

	return &dto.CreateOrderResponse{
		OrderID:     order.ID,
		OrderCode:   order.OrderCode,
		CheckoutURL: linkResp.CheckoutURL,
	}, nil
}

// returnURL pre-commits to what a legitimate paid redirect looks like: the
// provider has no webhook, so the signature minted here is the only proof the
// return trip can present.
func (s *paymentServiceImpl) returnURL(order *model.Order) string {
	return fmt.Sprintf("%s/order/%d/success?orderCode=%d&status=%s&sig=%s",
		s.baseURL, order.ID, order.OrderCode, model.OrderStatusPaid,
		s.Sign(order.OrderCode, model.OrderStatusPaid))
}

// ConfirmReturn handles the provider redirect. The signature is recomputed
// over the stored record's orderCode, never the query string, so replayed
// parameters cannot confirm a different order. Verification failures are
// swallowed: the buyer always gets a page with the persisted status.
func (s *paymentServiceImpl) ConfirmReturn(ctx context.Context, orderID uint, status, sig string) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find order: %w", err)
	}

	expected := s.Sign(order.OrderCode, status)
	if status != model.OrderStatusPaid || !hmac.Equal([]byte(expected), []byte(sig)) {
		return order, nil
	}

	if _, err := s.orderRepo.MarkPaid(ctx, order.ID); err != nil {
		log.Println("mark order paid:", err)
		return order, nil
	}

	return s.orderRepo.FindByID(ctx, orderID)
}

// MarkPaid is the admin override for orders the return trip never confirmed.
func (s *paymentServiceImpl) MarkPaid(ctx context.Context, orderID uint) error {
	changed, err := s.orderRepo.MarkPaid(ctx, orderID)
	if err != nil {
		return fmt.Errorf("mark order paid: %w", err)
	}
	if !changed {
		// distinguish a missing order from one already PAID
		if _, err := s.orderRepo.FindByID(ctx, orderID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("find order: %w", err)
		}
	}
	return nil
}

func (s *paymentServiceImpl) GetOrder(ctx context.Context, orderID uint) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find order: %w", err)
	}
	return order, nil
}

func (s *paymentServiceImpl) ListOrders(ctx context.Context) ([]*model.Order, error) {
	return s.orderRepo.List(ctx)
}

func (s *paymentServiceImpl) Sign(orderCode int64, status string) string {
	mac := hmac.New(sha256.New, []byte(s.checksumKey))
	fmt.Fprintf(mac, "%d|%s", orderCode, status)
	return hex.EncodeToString(mac.Sum(nil))
}

func newOrderCode() int64 {
	// millisecond timestamp with a random tail so two orders in the same
	// millisecond rarely collide; the unique index catches the rest
	return time.Now().UnixMilli()*1000 + rand.Int64N(1000)
}
