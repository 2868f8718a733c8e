package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faktura-dev/faktura/internal/ledger"
	"github.com/faktura-dev/faktura/internal/model"
	"github.com/faktura-dev/faktura/internal/rowio"
)

func newTestClient(t *testing.T, h http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(Options{BaseURL: srv.URL, Timeout: 5 * time.Second}, nil)
}

func TestAddOrdering(t *testing.T) {
	tests := []struct {
		name   string
		list   []string
		column string
		dir    string
		max    int
		want   []string
	}{
		{"empty", nil, "name", "desc", 3, []string{"name_desc"}},
		{"prepend", []string{"city_asc"}, "name", "desc", 3, []string{"name_desc", "city_asc"}},
		{"replace", []string{"city_asc", "name_desc"}, "name", "asc", 3, []string{"name_asc", "city_asc"}},
		{"cap", []string{"a_asc", "b_asc", "c_asc"}, "d", "desc", 3, []string{"d_desc", "a_asc", "b_asc"}},
		{"prefix is column plus delimiter", []string{"name2_asc"}, "name", "asc", 3, []string{"name_asc", "name2_asc"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AddOrdering(tt.list, tt.column, tt.dir, tt.max))
		})
	}
}

func TestQueryValues(t *testing.T) {
	q := Query{OrderBy: []string{"name_desc", "city_asc"}, Multi: true, Search: "and", Params: map[string][]string{"status": {"paid"}, "empty": {""}}}
	v := q.Values()
	assert.Equal(t, []string{"name_desc", "city_asc"}, v["orderby[]"])
	assert.Equal(t, "and", v.Get("search"))
	assert.Equal(t, "paid", v.Get("status"))
	_, ok := v["empty"]
	assert.False(t, ok)

	single := Query{OrderBy: []string{"number"}, Dir: "asc"}
	assert.Equal(t, "/invoice?dir=asc&orderby=number", PageURL("/invoice", single))
	assert.Equal(t, "/invoice", PageURL("/invoice", Query{}))
}

func TestTableRefresh(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/invoice", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("content"))
		_, _ = w.Write([]byte("<tr><td>" + r.URL.Query().Get("search") + "</td></tr>"))
	}))

	body, err := c.Table("/invoice").Refresh(context.Background(), Query{Search: "abc"})
	require.NoError(t, err)
	assert.Equal(t, "<tr><td>abc</td></tr>", body)
}

func TestTableRefreshSuperseded(t *testing.T) {
	started := make(chan struct{})
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("search") == "slow" {
			close(started)
			<-r.Context().Done()
			return
		}
		_, _ = w.Write([]byte("fast"))
	}))
	table := c.Table("/customer")

	var (
		wg      sync.WaitGroup
		slowErr error
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, slowErr = table.Refresh(context.Background(), Query{Search: "slow"})
	}()

	<-started
	body, err := table.Refresh(context.Background(), Query{Search: "fast"})
	require.NoError(t, err)
	assert.Equal(t, "fast", body)

	wg.Wait()
	assert.ErrorIs(t, slowErr, ErrSuperseded)
}

func TestTableRefreshStatus(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	_, err := c.Table("/invoice").Refresh(context.Background(), Query{})
	assert.ErrorIs(t, err, ErrStatus)
}

func TestSearchCustomers(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/customer", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "Ander", r.URL.Query().Get("search"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]Customer{
			{ID: 1, Name: "Anders Andersson", Address1: "Storgatan 1", Postcode: "111 22", City: "Stockholm"},
		})
	}))

	got, err := c.SearchCustomers(context.Background(), " Ander ")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Anders Andersson, Storgatan 1 111 22 Stockholm", got[0].Label())
}

func TestSearchCustomersTooShort(t *testing.T) {
	c := New(Options{BaseURL: "http://127.0.0.1:0"}, nil)
	_, err := c.SearchCustomers(context.Background(), "Å")
	assert.ErrorIs(t, err, ErrSearchTooShort)
}

func TestSubmit(t *testing.T) {
	var got ledger.Submission
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/invoice/17", r.URL.Path)
		assert.NoError(t, r.ParseForm())
		var err error
		got, err = rowio.DecodeForm(r.PostForm)
		assert.NoError(t, err)
	}))

	l, err := ledger.Restore(
		[]model.LineItem{{ID: 3, Description: "Arbete", Cost: decimal.NewFromInt(500), Count: decimal.NewFromInt(2), Unit: model.UnitHours}},
		[]model.LineItem{{ID: 4, Description: "Frakt", Cost: decimal.NewFromInt(99), Count: decimal.NewFromInt(1)}},
	)
	require.NoError(t, err)

	require.NoError(t, c.Submit(context.Background(), 17, l.Submission()))
	assert.Equal(t, []int{4}, got.Delete)
	assert.Equal(t, []int{3}, got.Order)
	require.Len(t, got.Rows, 1)
	assert.Equal(t, "Arbete", got.Rows[0].Description)
}
