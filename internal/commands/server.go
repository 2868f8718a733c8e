package commands

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/faktura-dev/faktura/internal/history"
	"github.com/faktura-dev/faktura/internal/ledger"
	"github.com/faktura-dev/faktura/internal/remote"
)

func newCustomersCommand(a *app) *cobra.Command {
	customersCmd := &cobra.Command{
		Use:   "customers",
		Short: "Customer lookups on the server",
	}

	var plain bool
	searchCmd := &cobra.Command{
		Use:   "search <term>",
		Short: "Search customers by name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			term := strings.Join(args, " ")
			customers, err := a.client().SearchCustomers(cmd.Context(), term)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if plain {
				for _, c := range customers {
					fmt.Fprintf(out, "%d\t%s\n", c.ID, c.Name)
				}
				return nil
			}
			if len(customers) == 0 {
				fmt.Fprintln(out, styleDim.Render("No customers found."))
				return nil
			}
			rows := make([][]string, len(customers))
			for i, c := range customers {
				rows[i] = []string{strconv.Itoa(c.ID), c.Name, strings.TrimSpace(c.Address1 + " " + c.Postcode + " " + c.City), c.Email}
			}
			fmt.Fprint(out, renderTable([]string{"ID", "Namn", "Adress", "E-post"}, rows, alignRight{0: true}))
			return nil
		},
	}
	searchCmd.Flags().BoolVar(&plain, "plain", false, "print id and name only, tab separated")
	customersCmd.AddCommand(searchCmd)
	return customersCmd
}

func newTableCommand(a *app) *cobra.Command {
	var (
		search  string
		orderBy []string
		dir     string
		params  []string
		multi   bool
	)

	cmd := &cobra.Command{
		Use:   "table <path>",
		Short: "Fetch the contents of a server listing, e.g. /invoice",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q := remote.Query{Search: search, Dir: dir, Multi: multi, Params: url.Values{}}
			for _, o := range orderBy {
				if multi {
					// Each --orderby is a click; the last one ends up first.
					column, direction, _ := strings.Cut(o, remote.OrderDelim)
					if direction == "" {
						direction = dir
					}
					q.OrderBy = remote.AddOrdering(q.OrderBy, column, direction, len(orderBy))
				} else {
					q.OrderBy = []string{o}
				}
			}
			for _, p := range params {
				k, v, ok := strings.Cut(p, "=")
				if !ok {
					return fmt.Errorf("--param %q: want key=value", p)
				}
				q.Params.Add(k, v)
			}

			a.logger.Debug("Fetching table", zap.String("page", remote.PageURL(args[0], q)))
			body, err := a.client().Table(args[0]).Refresh(cmd.Context(), q)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), body)
			return nil
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "search filter")
	cmd.Flags().StringSliceVar(&orderBy, "orderby", nil, "column to sort on; with --multi, column_dir and repeatable")
	cmd.Flags().StringVar(&dir, "direction", "desc", "sort direction, asc or desc")
	cmd.Flags().BoolVar(&multi, "multi", false, "sort on several columns")
	cmd.Flags().StringArrayVar(&params, "param", nil, "extra key=value parameter")
	return cmd
}

func newSubmitCommand(a *app) *cobra.Command {
	var invoiceID int

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Send the rows to the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if invoiceID == 0 {
				invoiceID = a.cfg.Invoice.ID
			}
			if invoiceID == 0 {
				return errors.New("no invoice id: pass --invoice or set invoice.id")
			}

			l, err := a.drafts.Load()
			if err != nil {
				return err
			}
			s := l.Submission()
			if err := a.client().Submit(cmd.Context(), invoiceID, s); err != nil {
				return err
			}

			// The server has applied the deletions.
			sent, err := ledger.New(l.Rows())
			if err != nil {
				return err
			}
			if err := a.save(sent); err != nil {
				return err
			}
			a.record(uuid.NewString(), history.Entry{
				Action:  history.ActionSubmit,
				Details: fmt.Sprintf("invoice %d: %d row(s), %d deletion(s)", invoiceID, len(s.Rows), len(s.Delete)),
			})
			fmt.Fprintf(cmd.OutOrStdout(), "Submitted %d row(s), %d deletion(s) to invoice %d\n",
				len(s.Rows), len(s.Delete), invoiceID)
			return nil
		},
	}
	cmd.Flags().IntVar(&invoiceID, "invoice", 0, "invoice id (defaults to invoice.id)")
	return cmd
}
