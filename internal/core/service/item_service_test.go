package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hadik12/items-api/internal/core/domain"
)

// Mock ItemRepository
type mockItemRepo struct {
	items  map[int64]domain.Item
	nextID int64
	err    error
}

func newMockItemRepo() *mockItemRepo {
	return &mockItemRepo{items: make(map[int64]domain.Item), nextID: 1}
}

func (m *mockItemRepo) CreateItem(ctx context.Context, item domain.NewItem) (*domain.Item, error) {
	if m.err != nil {
		return nil, m.err
	}
	created := domain.Item{
		ID:          m.nextID,
		Name:        item.Name,
		Description: item.Description,
		Price:       item.Price,
		InStock:     item.InStock,
		CreatedAt:   time.Now().UTC(),
	}
	m.items[created.ID] = created
	m.nextID++
	return &created, nil
}

func (m *mockItemRepo) GetItem(ctx context.Context, id int64) (*domain.Item, error) {
	if m.err != nil {
		return nil, m.err
	}
	item, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	return &item, nil
}

func (m *mockItemRepo) ListItems(ctx context.Context, filter domain.ItemFilter) ([]domain.Item, error) {
	if m.err != nil {
		return nil, m.err
	}
	items := make([]domain.Item, 0, len(m.items))
	for _, item := range m.items {
		items = append(items, item)
	}
	return items, nil
}

func (m *mockItemRepo) UpdateItem(ctx context.Context, id int64, patch domain.ItemPatch) (*domain.Item, error) {
	if m.err != nil {
		return nil, m.err
	}
	item, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	if patch.Name != nil {
		item.Name = *patch.Name
	}
	if patch.Description.Set {
		item.Description = patch.Description.Value
	}
	if patch.Price != nil {
		item.Price = *patch.Price
	}
	if patch.InStock != nil {
		item.InStock = *patch.InStock
	}
	m.items[id] = item
	return &item, nil
}

func (m *mockItemRepo) DeleteItem(ctx context.Context, id int64) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	if _, ok := m.items[id]; !ok {
		return false, nil
	}
	delete(m.items, id)
	return true, nil
}

func TestCreate_AssignsID(t *testing.T) {
	repo := newMockItemRepo()
	svc := NewItemService(repo)

	item, err := svc.Create(context.Background(), domain.NewItem{Name: "widget", Price: 2.5, InStock: true})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if item.ID == 0 {
		t.Error("expected non-zero id")
	}
	if item.CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}
}

func TestGet_NotFound(t *testing.T) {
	repo := newMockItemRepo()
	svc := NewItemService(repo)

	_, err := svc.Get(context.Background(), 42)
	if !errors.Is(err, ErrItemNotFound) {
		t.Errorf("expected ErrItemNotFound, got: %v", err)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	repo := newMockItemRepo()
	svc := NewItemService(repo)

	name := "renamed"
	_, err := svc.Update(context.Background(), 42, domain.ItemPatch{Name: &name})
	if !errors.Is(err, ErrItemNotFound) {
		t.Errorf("expected ErrItemNotFound, got: %v", err)
	}
}

func TestDelete_NotFound(t *testing.T) {
	repo := newMockItemRepo()
	svc := NewItemService(repo)

	err := svc.Delete(context.Background(), 42)
	if !errors.Is(err, ErrItemNotFound) {
		t.Errorf("expected ErrItemNotFound, got: %v", err)
	}
}

func TestDelete_ThenGet(t *testing.T) {
	repo := newMockItemRepo()
	svc := NewItemService(repo)

	item, err := svc.Create(context.Background(), domain.NewItem{Name: "widget", Price: 1, InStock: true})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := svc.Delete(context.Background(), item.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	_, err = svc.Get(context.Background(), item.ID)
	if !errors.Is(err, ErrItemNotFound) {
		t.Errorf("expected ErrItemNotFound after delete, got: %v", err)
	}
}

func TestRepositoryFailure_Wrapped(t *testing.T) {
	repo := newMockItemRepo()
	repoErr := errors.New("connection refused")
	repo.err = repoErr
	svc := NewItemService(repo)

	_, err := svc.Get(context.Background(), 1)
	if !errors.Is(err, repoErr) {
		t.Errorf("expected wrapped repository error, got: %v", err)
	}
	if errors.Is(err, ErrItemNotFound) {
		t.Error("infrastructure failure must not map to not-found")
	}
}
