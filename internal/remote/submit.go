package remote

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/faktura-dev/faktura/internal/ledger"
	"github.com/faktura-dev/faktura/internal/rowio"
)

// InvoicePath returns the endpoint of an invoice.
func InvoicePath(invoiceID int) string {
	return fmt.Sprintf("/invoice/%d", invoiceID)
}

// Submit posts the rows of an invoice. The server replaces the stored
// rows with s.Rows, deletes s.Delete and applies s.Order.
func (c *Client) Submit(ctx context.Context, invoiceID int, s ledger.Submission) error {
	form, err := rowio.EncodeForm(s)
	if err != nil {
		return err
	}

	c.logger.Info("Submitting invoice rows",
		zap.Int("invoice_id", invoiceID),
		zap.Int("rows", len(s.Rows)),
		zap.Int("deleted", len(s.Delete)),
	)

	resp, err := c.http.R().
		SetContext(ctx).
		SetFormDataFromValues(form).
		Post(InvoicePath(invoiceID))
	if err != nil {
		c.logger.Error("Submitting invoice rows failed",
			zap.Int("invoice_id", invoiceID),
			zap.Error(err),
		)
		return fmt.Errorf("submitting invoice %d: %w", invoiceID, err)
	}
	return checkStatus(resp)
}
