package service

import (
	"context"
	"testing"

	"codeshop/internal/dto"
	"codeshop/internal/repository"

	"github.com/stretchr/testify/require"
)

func TestCatalogCRUD(t *testing.T) {
	catalogRepo := repository.NewCatalogRepository(newTestDB(t))
	svc := NewCatalogService(catalogRepo)
	ctx := context.Background()

	t.Run("title and driveLink are required", func(t *testing.T) {
		_, err := svc.Create(ctx, &dto.ItemRequest{Title: "No link"})
		require.ErrorIs(t, err, ErrBadRequest)

		_, err = svc.Create(ctx, &dto.ItemRequest{DriveLink: "https://drive.example.com/x"})
		require.ErrorIs(t, err, ErrBadRequest)
	})

	t.Run("price must not be negative", func(t *testing.T) {
		_, err := svc.Create(ctx, &dto.ItemRequest{
			Title:     "Bad price",
			DriveLink: "https://drive.example.com/x",
			PriceVND:  -1,
		})
		require.ErrorIs(t, err, ErrBadRequest)
	})

	item, err := svc.Create(ctx, &dto.ItemRequest{
		Title:     "Inventory manager source",
		DriveLink: "https://drive.example.com/d/abc123",
		PriceVND:  100000,
	})
	require.NoError(t, err)
	require.NotZero(t, item.ID)

	t.Run("fields stay mutable, identity does not", func(t *testing.T) {
		updated, err := svc.Update(ctx, item.ID, &dto.ItemRequest{
			Title:     "Inventory manager source v2",
			DriveLink: "https://drive.example.com/d/def456",
			PriceVND:  150000,
		})
		require.NoError(t, err)
		require.Equal(t, item.ID, updated.ID)
		require.Equal(t, int64(150000), updated.PriceVND)
	})

	t.Run("get and delete", func(t *testing.T) {
		got, err := svc.Get(ctx, item.ID)
		require.NoError(t, err)
		require.Equal(t, "Inventory manager source v2", got.Title)

		require.NoError(t, svc.Delete(ctx, item.ID))
		_, err = svc.Get(ctx, item.ID)
		require.ErrorIs(t, err, ErrNotFound)
		require.ErrorIs(t, svc.Delete(ctx, item.ID), ErrNotFound)
	})
}
