package repository

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"codeshop/internal/model"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&model.CatalogItem{}, &model.Order{}))
	return db
}

func newOrder(t *testing.T, repo OrderRepository, status string, orderCode int64) *model.Order {
	t.Helper()

	order := &model.Order{
		BuyerName:     "Alice",
		BuyerEmail:    "alice@example.com",
		CatalogItemID: 1,
		ItemTitle:     "Inventory manager source",
		Amount:        100000,
		OrderCode:     orderCode,
		Status:        status,
	}
	require.NoError(t, repo.Create(context.Background(), order))
	return order
}

func TestMarkPaidIsMonotonic(t *testing.T) {
	repo := NewOrderRepository(newTestDB(t))
	ctx := context.Background()

	order := newOrder(t, repo, model.OrderStatusPending, 1001)

	changed, err := repo.MarkPaid(ctx, order.ID)
	require.NoError(t, err)
	require.True(t, changed)

	got, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	require.Equal(t, model.OrderStatusPaid, got.Status)
	require.NotNil(t, got.PaidAt)

	// a replayed confirmation changes nothing
	changed, err = repo.MarkPaid(ctx, order.ID)
	require.NoError(t, err)
	require.False(t, changed)

	again, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	require.Equal(t, model.OrderStatusPaid, again.Status)
	require.Equal(t, got.PaidAt.Unix(), again.PaidAt.Unix())
}

func TestActivateRequiresPaid(t *testing.T) {
	repo := NewOrderRepository(newTestDB(t))
	ctx := context.Background()

	order := newOrder(t, repo, model.OrderStatusPending, 1002)

	device := "dev-1"
	won, err := repo.Activate(ctx, order.OrderCode, &device, "127.0.0.1", time.Now())
	require.NoError(t, err)
	require.False(t, won)

	got, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	require.False(t, got.Activation.IsActivated)
}

func TestActivateBindsOnce(t *testing.T) {
	repo := NewOrderRepository(newTestDB(t))
	ctx := context.Background()

	order := newOrder(t, repo, model.OrderStatusPaid, 1003)

	device := "dev-1"
	won, err := repo.Activate(ctx, order.OrderCode, &device, "10.0.0.1", time.Now())
	require.NoError(t, err)
	require.True(t, won)

	other := "dev-2"
	won, err = repo.Activate(ctx, order.OrderCode, &other, "10.0.0.2", time.Now())
	require.NoError(t, err)
	require.False(t, won)

	got, err := repo.FindByOrderCode(ctx, order.OrderCode)
	require.NoError(t, err)
	require.True(t, got.Activation.IsActivated)
	require.NotNil(t, got.Activation.DeviceID)
	require.Equal(t, "dev-1", *got.Activation.DeviceID)
	require.Equal(t, "10.0.0.1", got.Activation.IP)
	require.NotNil(t, got.Activation.ActivatedAt)
}

func TestOrderCodeIsUnique(t *testing.T) {
	repo := NewOrderRepository(newTestDB(t))
	ctx := context.Background()

	newOrder(t, repo, model.OrderStatusPending, 1004)

	dup := &model.Order{
		CatalogItemID: 1,
		OrderCode:     1004,
		Status:        model.OrderStatusPending,
	}
	err := repo.Create(ctx, dup)
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestResetActivation(t *testing.T) {
	repo := NewOrderRepository(newTestDB(t))
	ctx := context.Background()

	order := newOrder(t, repo, model.OrderStatusPaid, 1005)

	device := "dev-1"
	won, err := repo.Activate(ctx, order.OrderCode, &device, "10.0.0.1", time.Now())
	require.NoError(t, err)
	require.True(t, won)

	require.NoError(t, repo.ResetActivation(ctx, order.ID))

	got, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	require.False(t, got.Activation.IsActivated)
	require.Nil(t, got.Activation.DeviceID)
	require.Nil(t, got.Activation.ActivatedAt)
	require.Empty(t, got.Activation.IP)

	// a fresh activation works after the reset
	won, err = repo.Activate(ctx, order.OrderCode, &device, "10.0.0.1", time.Now())
	require.NoError(t, err)
	require.True(t, won)
}

func TestResetActivationUnknownOrder(t *testing.T) {
	repo := NewOrderRepository(newTestDB(t))

	err := repo.ResetActivation(context.Background(), 9999)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
