package id

import (
	"fmt"
	"strconv"
	"strings"
)

// Temporary hands out ids for rows that have not been saved yet.
// The first id is -1 and every following id is one lower.
type Temporary struct {
	last int
}

// NewTemporary returns an allocator whose ids never collide with any of
// existing. Positive ids are ignored since they belong to the server.
func NewTemporary(existing ...int) *Temporary {
	t := &Temporary{}
	t.Observe(existing...)
	return t
}

// Next returns the next temporary id.
func (t *Temporary) Next() int {
	t.last--
	return t.last
}

// Observe lowers the counter so that already used ids are skipped.
func (t *Temporary) Observe(ids ...int) {
	for _, v := range ids {
		if v < t.last {
			t.last = v
		}
	}
}

// IsTemporary reports whether id was allocated locally (0 included).
func IsTemporary(id int) bool { return id <= 0 }

// ParseRowID parses a row id as found in form fields, e.g. "12" or "-3".
// An empty value is the "new row" sentinel 0.
func ParseRowID(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid row id %q: %w", s, err)
	}
	return v, nil
}

// ParseRowIDs parses a list of row ids, stopping at the first bad one.
func ParseRowIDs(values []string) ([]int, error) {
	ids := make([]int, 0, len(values))
	for _, s := range values {
		v, err := ParseRowID(s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, v)
	}
	return ids, nil
}
