package content

import (
	"fmt"
	"maps"
	"strings"
)

// Item is a content record. Known fields are read through the helpers;
// everything else is carried through untouched.
type Item map[string]any

// Str returns the string value of key, or "" when absent or not a string.
func (i Item) Str(key string) string {
	s, _ := i[key].(string)
	return s
}

func (i Item) ID() string    { return i.Str("id") }
func (i Item) Slug() string  { return i.Str("slug") }
func (i Item) Title() string { return i.Str("title") }

// Clone returns a shallow copy.
func (i Item) Clone() Item {
	if i == nil {
		return nil
	}
	return maps.Clone(i)
}

// Merge copies patch over a clone of i.
func (i Item) Merge(patch Item) Item {
	out := i.Clone()
	if out == nil {
		out = Item{}
	}
	maps.Copy(out, patch)
	return out
}

// ReservedKey is the mirror's internal document key. It never appears in
// items: incoming payloads and stored documents lose it.
const ReservedKey = "_id"

func (i Item) dropReserved() {
	delete(i, ReservedKey)
}

func withoutReserved(it Item) Item {
	out := it.Clone()
	out.dropReserved()
	return out
}

// present reports whether key holds a usable value.
func (i Item) present(key string) bool {
	v, ok := i[key]
	if !ok || v == nil {
		return false
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) != ""
	}
	return true
}

// asItem converts a decoded JSON value to an Item.
func asItem(v any) (Item, error) {
	switch m := v.(type) {
	case Item:
		return m, nil
	case map[string]any:
		return Item(m), nil
	default:
		return nil, invalidf("expected an object, got %T", v)
	}
}

// asItems converts a decoded JSON array to a slice of Items.
func asItems(v any) ([]Item, error) {
	switch list := v.(type) {
	case []Item:
		return list, nil
	case []any:
		out := make([]Item, 0, len(list))
		for n, el := range list {
			it, err := asItem(el)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", n, err)
			}
			out = append(out, it)
		}
		return out, nil
	default:
		return nil, invalidf("expected an array, got %T", v)
	}
}

func values(items []Item, key string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if s := it.Str(key); s != "" {
			out = append(out, s)
		}
	}
	return out
}
