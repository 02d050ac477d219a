package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/hadik12/items-api/internal/core/domain"
	"github.com/hadik12/items-api/internal/port"
)

var ErrItemNotFound = errors.New("item not found")

type ItemService struct {
	repo port.ItemRepository
}

func NewItemService(repo port.ItemRepository) *ItemService {
	return &ItemService{repo: repo}
}

func (s *ItemService) Create(ctx context.Context, item domain.NewItem) (*domain.Item, error) {
	created, err := s.repo.CreateItem(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}
	return created, nil
}

func (s *ItemService) Get(ctx context.Context, id int64) (*domain.Item, error) {
	item, err := s.repo.GetItem(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	if item == nil {
		return nil, ErrItemNotFound
	}
	return item, nil
}

func (s *ItemService) List(ctx context.Context, filter domain.ItemFilter) ([]domain.Item, error) {
	items, err := s.repo.ListItems(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

func (s *ItemService) Update(ctx context.Context, id int64, patch domain.ItemPatch) (*domain.Item, error) {
	item, err := s.repo.UpdateItem(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}
	if item == nil {
		return nil, ErrItemNotFound
	}
	return item, nil
}

func (s *ItemService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repo.DeleteItem(ctx, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if !deleted {
		return ErrItemNotFound
	}
	return nil
}
