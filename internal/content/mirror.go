package content

import "context"

// Mirror is the secondary store. It receives every write after the
// primary file store has accepted it.
type Mirror interface {
	Insert(ctx context.Context, collection string, it Item) error
	// UpdateByID replaces the document whose id field equals id.
	UpdateByID(ctx context.Context, collection, id string, it Item) error
	DeleteByID(ctx context.Context, collection, id string) error
	// ReplaceAll swaps the whole collection for items, preserving order.
	ReplaceAll(ctx context.Context, collection string, items []Item) error
	PutSingleton(ctx context.Context, collection string, it Item) error
	List(ctx context.Context, collection string) ([]Item, error)
	// GetSingleton returns nil when the collection is empty.
	GetSingleton(ctx context.Context, collection string) (Item, error)
}

// NopMirror is used when no mirror is configured.
type NopMirror struct{}

func (NopMirror) Insert(context.Context, string, Item) error             { return nil }
func (NopMirror) UpdateByID(context.Context, string, string, Item) error { return nil }
func (NopMirror) DeleteByID(context.Context, string, string) error       { return nil }
func (NopMirror) ReplaceAll(context.Context, string, []Item) error       { return nil }
func (NopMirror) PutSingleton(context.Context, string, Item) error       { return nil }
func (NopMirror) List(context.Context, string) ([]Item, error)           { return []Item{}, nil }
func (NopMirror) GetSingleton(context.Context, string) (Item, error)     { return nil, nil }
