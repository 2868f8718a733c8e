package remote

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

// Customer is one autocomplete hit.
type Customer struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Address1  string `json:"address1"`
	Address2  string `json:"address2"`
	Postcode  string `json:"postcode"`
	City      string `json:"city"`
	PNR       string `json:"pnr"`
	Telephone string `json:"telephone"`
}

// Label is the text shown in the suggestion list.
func (c Customer) Label() string {
	addr := strings.TrimSpace(strings.Join([]string{c.Address1, c.Postcode, c.City}, " "))
	if addr == "" {
		return c.Name
	}
	return c.Name + ", " + addr
}

// SearchCustomers looks up customers whose name matches term.
func (c *Client) SearchCustomers(ctx context.Context, term string) ([]Customer, error) {
	term = strings.TrimSpace(term)
	if utf8.RuneCountInString(term) < c.minSearch {
		return nil, fmt.Errorf("%w: need %d characters", ErrSearchTooShort, c.minSearch)
	}

	var customers []Customer
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetQueryParam("search", term).
		SetResult(&customers).
		Get("/customer")
	if err != nil {
		c.logger.Error("Customer search failed",
			zap.String("term", term),
			zap.Error(err),
		)
		return nil, fmt.Errorf("searching customers: %w", err)
	}
	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	c.logger.Debug("Customer search",
		zap.String("term", term),
		zap.Int("hits", len(customers)),
	)
	return customers, nil
}
