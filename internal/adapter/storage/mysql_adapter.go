package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hadik12/items-api/internal/core/domain"
)

const createItemsTable = `
	CREATE TABLE IF NOT EXISTS items (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		description TEXT NULL,
		price DOUBLE NOT NULL,
		in_stock BOOLEAN NOT NULL DEFAULT TRUE,
		created_at DATETIME(6) NOT NULL,
		INDEX idx_items_name (name),
		INDEX idx_items_created_at (created_at)
	)`

type MySQLAdapter struct {
	db *sql.DB
}

func NewMySQLAdapter(db *sql.DB) *MySQLAdapter {
	return &MySQLAdapter{db: db}
}

// InitSchema creates the items table if it does not exist yet.
func (m *MySQLAdapter) InitSchema(ctx context.Context) error {
	if _, err := m.db.ExecContext(ctx, createItemsTable); err != nil {
		return fmt.Errorf("create items table: %w", err)
	}
	return nil
}

func (m *MySQLAdapter) CreateItem(ctx context.Context, item domain.NewItem) (*domain.Item, error) {
	createdAt := time.Now().UTC()

	result, err := m.db.ExecContext(ctx, `
		INSERT INTO items (name, description, price, in_stock, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		item.Name, item.Description, item.Price, item.InStock, createdAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("insert item id: %w", err)
	}

	return &domain.Item{
		ID:          id,
		Name:        item.Name,
		Description: item.Description,
		Price:       item.Price,
		InStock:     item.InStock,
		CreatedAt:   createdAt,
	}, nil
}

func (m *MySQLAdapter) GetItem(ctx context.Context, id int64) (*domain.Item, error) {
	var item domain.Item
	err := m.db.QueryRowContext(ctx, `
		SELECT id, name, description, price, in_stock, created_at
		FROM items WHERE id = ?`, id,
	).Scan(&item.ID, &item.Name, &item.Description, &item.Price, &item.InStock, &item.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query item: %w", err)
	}

	return &item, nil
}

func (m *MySQLAdapter) ListItems(ctx context.Context, filter domain.ItemFilter) ([]domain.Item, error) {
	query := `SELECT id, name, description, price, in_stock, created_at FROM items`
	var conds []string
	var args []interface{}

	if filter.MinPrice != nil {
		conds = append(conds, "price >= ?")
		args = append(args, *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		conds = append(conds, "price <= ?")
		args = append(args, *filter.MaxPrice)
	}
	if filter.NameQuery != "" {
		conds = append(conds, "LOWER(name) LIKE ?")
		args = append(args, "%"+strings.ToLower(filter.NameQuery)+"%")
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	// Ties on created_at resolve to the higher id so the order stays
	// deterministic across pages.
	query += " ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?"
	args = append(args, filter.Limit, filter.Offset)

	rows, err := m.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()

	items := make([]domain.Item, 0)
	for rows.Next() {
		var item domain.Item
		if err := rows.Scan(&item.ID, &item.Name, &item.Description, &item.Price, &item.InStock, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}

	return items, nil
}

func (m *MySQLAdapter) UpdateItem(ctx context.Context, id int64, patch domain.ItemPatch) (*domain.Item, error) {
	if patch.IsEmpty() {
		return m.GetItem(ctx, id)
	}

	var sets []string
	var args []interface{}

	if patch.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *patch.Name)
	}
	if patch.Description.Set {
		// A nil value clears the column to NULL.
		sets = append(sets, "description = ?")
		args = append(args, patch.Description.Value)
	}
	if patch.Price != nil {
		sets = append(sets, "price = ?")
		args = append(args, *patch.Price)
	}
	if patch.InStock != nil {
		sets = append(sets, "in_stock = ?")
		args = append(args, *patch.InStock)
	}
	args = append(args, id)

	_, err := m.db.ExecContext(ctx,
		"UPDATE items SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}

	// RowsAffected counts changed rows on MySQL, not matched ones, so a
	// same-value update would look like a missing row. The re-read
	// decides existence instead.
	return m.GetItem(ctx, id)
}

func (m *MySQLAdapter) DeleteItem(ctx context.Context, id int64) (bool, error) {
	result, err := m.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete item: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete item rows: %w", err)
	}

	return rows > 0, nil
}
