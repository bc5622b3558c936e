package content_test

import (
	"context"
	"slices"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/dmitrymomot/folio/internal/content"
)

// memMirror is an in-memory Mirror used to compare against the file store.
type memMirror struct {
	mu      sync.Mutex
	lists   map[string][]content.Item
	singles map[string]content.Item
}

func newMemMirror() *memMirror {
	return &memMirror{
		lists:   make(map[string][]content.Item),
		singles: make(map[string]content.Item),
	}
}

func (m *memMirror) Insert(_ context.Context, c string, it content.Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lists[c] = append(m.lists[c], it.Clone())
	return nil
}

func (m *memMirror) UpdateByID(_ context.Context, c, id string, it content.Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := slices.IndexFunc(m.lists[c], func(x content.Item) bool { return x.ID() == id })
	if i < 0 {
		m.lists[c] = append(m.lists[c], it.Clone())
		return nil
	}
	m.lists[c][i] = it.Clone()
	return nil
}

func (m *memMirror) DeleteByID(_ context.Context, c, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lists[c] = slices.DeleteFunc(m.lists[c], func(x content.Item) bool { return x.ID() == id })
	return nil
}

func (m *memMirror) ReplaceAll(_ context.Context, c string, items []content.Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]content.Item, len(items))
	for i, it := range items {
		out[i] = it.Clone()
	}
	m.lists[c] = out
	return nil
}

func (m *memMirror) PutSingleton(_ context.Context, c string, it content.Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.singles[c] = it.Clone()
	return nil
}

func (m *memMirror) List(_ context.Context, c string) ([]content.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := slices.Clone(m.lists[c])
	if out == nil {
		out = []content.Item{}
	}
	return out, nil
}

func (m *memMirror) GetSingleton(_ context.Context, c string) (content.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.singles[c], nil
}

// mockMirror lets tests inject mirror failures.
type mockMirror struct {
	mock.Mock
}

func (m *mockMirror) Insert(ctx context.Context, c string, it content.Item) error {
	return m.Called(ctx, c, it).Error(0)
}

func (m *mockMirror) UpdateByID(ctx context.Context, c, id string, it content.Item) error {
	return m.Called(ctx, c, id, it).Error(0)
}

func (m *mockMirror) DeleteByID(ctx context.Context, c, id string) error {
	return m.Called(ctx, c, id).Error(0)
}

func (m *mockMirror) ReplaceAll(ctx context.Context, c string, items []content.Item) error {
	return m.Called(ctx, c, items).Error(0)
}

func (m *mockMirror) PutSingleton(ctx context.Context, c string, it content.Item) error {
	return m.Called(ctx, c, it).Error(0)
}

func (m *mockMirror) List(ctx context.Context, c string) ([]content.Item, error) {
	args := m.Called(ctx, c)
	items, _ := args.Get(0).([]content.Item)
	return items, args.Error(1)
}

func (m *mockMirror) GetSingleton(ctx context.Context, c string) (content.Item, error) {
	args := m.Called(ctx, c)
	it, _ := args.Get(0).(content.Item)
	return it, args.Error(1)
}
