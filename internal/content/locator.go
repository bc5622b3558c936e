package content

import (
	"strconv"
	"strings"
)

// resolve finds the position of the item addressed by loc. Id-addressed
// collections try an exact id match before falling back to "index-N" or
// a bare "N".
func resolve(s Schema, items []Item, loc string) (int, error) {
	if s.Addressing == ByID {
		for i, it := range items {
			if it.ID() == loc {
				return i, nil
			}
		}
	}

	n, ok := parseIndex(loc)
	if !ok || n >= len(items) {
		return -1, ErrNotFound
	}
	return n, nil
}

func parseIndex(loc string) (int, bool) {
	loc = strings.TrimPrefix(loc, "index-")
	n, err := strconv.Atoi(loc)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
