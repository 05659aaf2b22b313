package service

import (
	"context"
	"errors"
	"fmt"

	"codeshop/internal/dto"
	"codeshop/internal/model"
	"codeshop/internal/repository"

	"gorm.io/gorm"
)

type CatalogService interface {
	List(ctx context.Context) ([]*model.CatalogItem, error)
	Get(ctx context.Context, id uint) (*model.CatalogItem, error)
	Create(ctx context.Context, req *dto.ItemRequest) (*model.CatalogItem, error)
	Update(ctx context.Context, id uint, req *dto.ItemRequest) (*model.CatalogItem, error)
	Delete(ctx context.Context, id uint) error
}

type catalogServiceImpl struct {
	catalogRepo repository.CatalogRepository
}

func NewCatalogService(catalogRepo repository.CatalogRepository) CatalogService {
	return &catalogServiceImpl{
		catalogRepo: catalogRepo,
	}
}

func (s *catalogServiceImpl) List(ctx context.Context) ([]*model.CatalogItem, error) {
	return s.catalogRepo.List(ctx)
}

func (s *catalogServiceImpl) Get(ctx context.Context, id uint) (*model.CatalogItem, error) {
	item, err := s.catalogRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find catalog item: %w", err)
	}
	return item, nil
}

func (s *catalogServiceImpl) Create(ctx context.Context, req *dto.ItemRequest) (*model.CatalogItem, error) {
	if err := checkItemFields(req); err != nil {
		return nil, err
	}

	item := &model.CatalogItem{
		Title:       req.Title,
		ImageURL:    req.ImageURL,
		Description: req.Description,
		DriveLink:   req.DriveLink,
		PriceVND:    req.PriceVND,
	}

	if err := s.catalogRepo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("store catalog item: %w", err)
	}

	return item, nil
}

func (s *catalogServiceImpl) Update(ctx context.Context, id uint, req *dto.ItemRequest) (*model.CatalogItem, error) {
	if err := checkItemFields(req); err != nil {
		return nil, err
	}

	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	item.Title = req.Title
	item.ImageURL = req.ImageURL
	item.Description = req.Description
	item.DriveLink = req.DriveLink
	item.PriceVND = req.PriceVND

	if err := s.catalogRepo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("update catalog item: %w", err)
	}

	return item, nil
}

func (s *catalogServiceImpl) Delete(ctx context.Context, id uint) error {
	err := s.catalogRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete catalog item: %w", err)
	}
	return nil
}

func checkItemFields(req *dto.ItemRequest) error {
	if req.Title == "" || req.DriveLink == "" {
		return fmt.Errorf("%w: title and driveLink are required", ErrBadRequest)
	}
	if req.PriceVND < 0 {
		return fmt.Errorf("%w: priceVND must not be negative", ErrBadRequest)
	}
	return nil
}
