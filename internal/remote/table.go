package remote

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// OrderDelim separates a column name from its direction in a multisort
// ordering, e.g. "name_desc".
const OrderDelim = "_"

// AddOrdering puts column first in list with dir, dropping any earlier
// ordering of the same column, and caps the list at max entries. The
// leftmost entry is the most recently clicked column.
func AddOrdering(list []string, column, dir string, max int) []string {
	out := []string{column + OrderDelim + dir}
	for _, entry := range list {
		if strings.HasPrefix(entry, column+OrderDelim) {
			continue
		}
		out = append(out, entry)
	}
	if max >= 0 && len(out) > max {
		out = out[:max]
	}
	return out
}

// Query holds the parameters of a table listing.
type Query struct {
	OrderBy []string
	Multi   bool // send OrderBy as orderby[] instead of a single column
	Dir     string
	Search  string
	Params  url.Values
}

// Values encodes q. Empty values are left out.
func (q Query) Values() url.Values {
	v := url.Values{}
	for key, vals := range q.Params {
		for _, val := range vals {
			if val != "" {
				v.Add(key, val)
			}
		}
	}
	switch {
	case q.Multi:
		for _, o := range q.OrderBy {
			v.Add("orderby[]", o)
		}
	case len(q.OrderBy) > 0 && q.OrderBy[0] != "":
		v.Set("orderby", q.OrderBy[0])
	}
	if q.Dir != "" {
		v.Set("dir", q.Dir)
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	return v
}

// PageURL returns the address a browser would show for the listing, so a
// reload gives the same result.
func PageURL(path string, q Query) string {
	v := q.Values()
	if len(v) == 0 {
		return path
	}
	return path + "?" + v.Encode()
}

// Table fetches the contents of one listing. Only the latest refresh wins:
// starting a refresh cancels the one in flight.
type Table struct {
	client *Client
	path   string

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
}

// Table returns a controller for the listing at path.
func (c *Client) Table(path string) *Table {
	return &Table{client: c, path: path}
}

// Refresh fetches the listing body for q. It returns ErrSuperseded when
// another Refresh started before this one completed.
func (t *Table) Refresh(ctx context.Context, q Query) (string, error) {
	ctx, cancel := context.WithCancel(ctx)

	t.mu.Lock()
	if t.cancel != nil {
		t.cancel()
	}
	t.seq++
	seq := t.seq
	t.cancel = cancel
	t.mu.Unlock()

	defer func() {
		t.mu.Lock()
		if t.seq == seq {
			t.cancel = nil
		}
		t.mu.Unlock()
		cancel()
	}()

	params := q.Values()
	params.Set("content", "1")

	resp, err := t.client.http.R().
		SetContext(ctx).
		SetQueryParamsFromValues(params).
		Get(t.path)

	if t.superseded(seq) {
		t.client.logger.Debug("Discarding superseded table response",
			zap.String("path", t.path),
			zap.Uint64("seq", seq),
		)
		return "", ErrSuperseded
	}
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return "", fmt.Errorf("refreshing %s: %w", t.path, err)
		}
		t.client.logger.Error("Table refresh failed",
			zap.String("path", t.path),
			zap.Error(err),
		)
		return "", fmt.Errorf("refreshing %s: %w", t.path, err)
	}
	if err := checkStatus(resp); err != nil {
		return "", err
	}
	return resp.String(), nil
}

func (t *Table) superseded(seq uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.seq != seq
}
