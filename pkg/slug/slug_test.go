package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/folio/pkg/slug"
)

func TestMake(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		opts []slug.Option
		want string
	}{
		{name: "words and punctuation", in: "Hello, World!", want: "hello-world"},
		{name: "surrounding symbols", in: "  --Go 1.24 Release--  ", want: "go-1-24-release"},
		{name: "only symbols", in: "!!!", want: "item"},
		{name: "empty", in: "", want: "item"},
		{name: "custom fallback", in: "???", opts: []slug.Option{slug.Fallback("project")}, want: "project"},
		{name: "accents dropped by default", in: "Café Crème", want: "caf-cr-me"},
		{name: "accents folded", in: "Café Crème", opts: []slug.Option{slug.Transliterate()}, want: "cafe-creme"},
		{name: "special letters folded", in: "Straße Øre", opts: []slug.Option{slug.Transliterate()}, want: "strasse-ore"},
		{name: "non latin", in: "日本語", opts: []slug.Option{slug.Transliterate(), slug.Fallback("article")}, want: "article"},
		{name: "already a slug", in: "my-project", want: "my-project"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, slug.Make(tt.in, tt.opts...))
		})
	}
}

func TestUnique(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		existing  []string
		candidate string
		exclude   []string
		want      string
	}{
		{name: "free", existing: []string{"b"}, candidate: "a", want: "a"},
		{name: "first collision", existing: []string{"a"}, candidate: "a", want: "a-2"},
		{name: "lowest free suffix", existing: []string{"a", "a-2", "a-4"}, candidate: "a", want: "a-3"},
		{name: "own value excluded", existing: []string{"a", "b"}, candidate: "a", exclude: []string{"a"}, want: "a"},
		{name: "exclude other value", existing: []string{"a", "a-2"}, candidate: "a", exclude: []string{"a-2"}, want: "a-2"},
		{name: "nil existing", candidate: "x", want: "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, slug.Unique(tt.existing, tt.candidate, tt.exclude...))
		})
	}
}
