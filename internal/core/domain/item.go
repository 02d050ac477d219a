package domain

import "time"

// Item is the persisted catalog entity. ID and CreatedAt are assigned
// by the storage layer and never change afterwards.
type Item struct {
	ID          int64
	Name        string
	Description *string
	Price       float64
	InStock     bool
	CreatedAt   time.Time
}

// NewItem carries a validated create payload, without the
// server-assigned fields.
type NewItem struct {
	Name        string
	Description *string
	Price       float64
	InStock     bool
}

// OptionalString is a tri-state field for nullable columns: not set,
// set to a value, or set to null (Set true, Value nil).
type OptionalString struct {
	Value *string
	Set   bool
}

// ItemPatch is a partial update. A nil (or unset) field means "leave
// unchanged"; a present field is applied even when it holds a zero
// value or null.
type ItemPatch struct {
	Name        *string
	Description OptionalString
	Price       *float64
	InStock     *bool
}

// IsEmpty reports whether the patch changes nothing.
func (p ItemPatch) IsEmpty() bool {
	return p.Name == nil && !p.Description.Set && p.Price == nil && p.InStock == nil
}

// ItemFilter narrows and pages a listing. Filters are conjunctive;
// price bounds are inclusive and NameQuery matches case-insensitively
// as a substring of Name.
type ItemFilter struct {
	Limit     int
	Offset    int
	MinPrice  *float64
	MaxPrice  *float64
	NameQuery string
}
