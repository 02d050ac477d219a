package port

import (
	"context"

	"github.com/hadik12/items-api/internal/core/domain"
)

type ItemRepository interface {
	// CreateItem persists a new item, assigning its id and creation time
	CreateItem(ctx context.Context, item domain.NewItem) (*domain.Item, error)

	// GetItem retrieves an item by id, or nil if it does not exist
	GetItem(ctx context.Context, id int64) (*domain.Item, error)

	// ListItems returns items matching the filter, newest first
	ListItems(ctx context.Context, filter domain.ItemFilter) ([]domain.Item, error)

	// UpdateItem applies the present patch fields in a single statement
	// and returns the updated item, or nil if it does not exist
	UpdateItem(ctx context.Context, id int64, patch domain.ItemPatch) (*domain.Item, error)

	// DeleteItem removes an item, reporting whether a row existed
	DeleteItem(ctx context.Context, id int64) (bool, error)
}
