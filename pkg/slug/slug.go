package slug

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultFallback is used when a string has no slug-able characters.
const DefaultFallback = "item"

type options struct {
	fallback      string
	transliterate bool
}

// Option configures Make.
type Option func(*options)

// Fallback sets the value returned for input without [a-z0-9] characters.
func Fallback(s string) Option {
	return func(o *options) {
		if s != "" {
			o.fallback = s
		}
	}
}

// Transliterate folds Latin diacritics (é -> e) before slugging instead of
// treating them as separators.
func Transliterate() Option {
	return func(o *options) { o.transliterate = true }
}

// Make lowercases s, collapses every run of characters outside [a-z0-9]
// into a single "-", and trims leading and trailing dashes. An empty result
// yields the fallback.
func Make(s string, opts ...Option) string {
	o := options{fallback: DefaultFallback}
	for _, opt := range opts {
		opt(&o)
	}

	if o.transliterate {
		s = foldDiacritics(s)
	}

	var b strings.Builder
	b.Grow(len(s))
	dash := false
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			dash = false
			b.WriteRune(r)
			continue
		}
		dash = true
	}

	if b.Len() == 0 {
		return o.fallback
	}
	return b.String()
}

var special = strings.NewReplacer(
	"ß", "ss", "æ", "ae", "Æ", "AE", "œ", "oe", "Œ", "OE",
	"ø", "o", "Ø", "O", "đ", "d", "Đ", "D", "ł", "l", "Ł", "L",
)

func foldDiacritics(s string) string {
	s = special.Replace(s)
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Unique returns candidate if no value in existing takes it, otherwise the
// first of candidate-2, candidate-3, ... that is free. Values listed in
// exclude never count as taken, so an item keeps its own slug on update.
func Unique(existing []string, candidate string, exclude ...string) string {
	taken := make(map[string]struct{}, len(existing))
	for _, v := range existing {
		taken[v] = struct{}{}
	}
	for _, v := range exclude {
		delete(taken, v)
	}

	if _, ok := taken[candidate]; !ok {
		return candidate
	}
	for n := 2; ; n++ {
		next := candidate + "-" + strconv.Itoa(n)
		if _, ok := taken[next]; !ok {
			return next
		}
	}
}
