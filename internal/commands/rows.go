package commands

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/faktura-dev/faktura/internal/history"
	"github.com/faktura-dev/faktura/internal/id"
	"github.com/faktura-dev/faktura/internal/model"
	"github.com/faktura-dev/faktura/internal/rowio"
)

func newRowsCommand(a *app) *cobra.Command {
	rowsCmd := &cobra.Command{
		Use:   "rows",
		Short: "List and edit the invoice rows",
	}
	rowsCmd.AddCommand(newRowsListCommand(a))
	rowsCmd.AddCommand(newRowsAddCommand(a))
	rowsCmd.AddCommand(newRowsEditCommand(a))
	rowsCmd.AddCommand(newRowsDeleteCommand(a))
	rowsCmd.AddCommand(newRowsReorderCommand(a))
	rowsCmd.AddCommand(newRowsImportCommand(a))
	return rowsCmd
}

// rowFlags are the dialog fields as command line flags.
type rowFlags struct {
	description string
	cost        string
	count       string
	unit        string
	vat         string
	rotRut      bool
	service     int
}

var rowFlagNames = []string{"description", "cost", "count", "unit", "vat", "rot-rut", "service"}

func (f *rowFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.description, "description", "d", "", "row description")
	cmd.Flags().StringVar(&f.cost, "cost", "", "unit price including VAT, comma or period decimals")
	cmd.Flags().StringVar(&f.count, "count", "1", "quantity")
	cmd.Flags().StringVar(&f.unit, "unit", "", "unit: st, timmar, dagar or -")
	cmd.Flags().StringVar(&f.vat, "vat", "25", "VAT rate in percent: 25, 12, 6 or 0")
	cmd.Flags().BoolVar(&f.rotRut, "rot-rut", false, "row is eligible for ROT/RUT")
	cmd.Flags().IntVar(&f.service, "service", 0, "ROT/RUT service type code")
}

func changedAny(cmd *cobra.Command, names []string) bool {
	for _, n := range names {
		if cmd.Flags().Changed(n) {
			return true
		}
	}
	return false
}

// apply writes the flags into dialog values. With all unset only flags
// given on the command line are applied.
func (f *rowFlags) apply(cmd *cobra.Command, v url.Values, all bool) error {
	set := func(name string) bool { return all || cmd.Flags().Changed(name) }

	if set("description") {
		v.Set("description", f.description)
	}
	if set("cost") {
		v.Set("cost", f.cost)
	}
	if set("count") {
		v.Set("count", f.count)
	}
	if set("unit") {
		u, err := model.ParseUnit(f.unit)
		if err != nil {
			return err
		}
		v.Set("unit", strconv.Itoa(int(u)))
	}
	if set("vat") {
		rate, err := model.ParseVATRate(f.vat)
		if err != nil {
			return err
		}
		v.Set("vat", strconv.Itoa(int(rate)))
	}
	if set("rot-rut") {
		if f.rotRut {
			v.Set("is_rot_rut", "on")
		} else {
			v.Del("is_rot_rut")
			v.Del("rot_rut_service_type")
		}
	}
	if cmd.Flags().Changed("service") {
		v.Set("rot_rut_service_type", strconv.Itoa(f.service))
	}
	return nil
}

func newRowsListCommand(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the rows in display order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := a.drafts.Load()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				return rowio.WriteRecords(out, l.Rows())
			}
			writeRows(out, l.Rows())
			if n := len(l.Deleted()); n > 0 {
				fmt.Fprintln(out, styleDim.Render(fmt.Sprintf("%d row(s) pending deletion.", n)))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print rows as JSON records")
	return cmd
}

func newRowsAddCommand(a *app) *cobra.Command {
	var flags rowFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a row",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			view := &cliView{out: cmd.OutOrStdout(), values: url.Values{}}
			s, err := a.session(view)
			if err != nil {
				return err
			}
			f, err := s.OpenAdd()
			if err != nil {
				return err
			}

			view.values = f.Values()
			if !changedAny(cmd, rowFlagNames) && a.interactive() {
				if view.values, err = editRow(view.values); err != nil {
					return err
				}
			} else if err := flags.apply(cmd, view.values, true); err != nil {
				return err
			}

			if _, err := s.SubmitView(); err != nil {
				return err
			}
			return a.commit(s, view)
		},
	}
	flags.register(cmd)
	return cmd
}

func newRowsEditCommand(a *app) *cobra.Command {
	var flags rowFlags

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a row, interactively when no flags are given",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rowID, err := id.ParseRowID(args[0])
			if err != nil {
				return err
			}

			view := &cliView{out: cmd.OutOrStdout()}
			s, err := a.session(view)
			if err != nil {
				return err
			}
			f, err := s.OpenEdit(rowID)
			if err != nil {
				return err
			}

			view.values = f.Values()
			switch {
			case changedAny(cmd, rowFlagNames):
				if err := flags.apply(cmd, view.values, false); err != nil {
					return err
				}
			case a.interactive():
				if view.values, err = editRow(view.values); err != nil {
					return err
				}
			default:
				return errors.New("nothing to change: pass field flags or run in a terminal")
			}

			if _, err := s.SubmitView(); err != nil {
				return err
			}
			return a.commit(s, view)
		},
	}
	flags.register(cmd)
	return cmd
}

func newRowsDeleteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>...",
		Short: "Delete rows",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := id.ParseRowIDs(args)
			if err != nil {
				return err
			}

			view := &cliView{out: cmd.OutOrStdout()}
			s, err := a.session(view)
			if err != nil {
				return err
			}
			for _, rowID := range ids {
				if _, err := s.OpenEdit(rowID); err != nil {
					return err
				}
				if err := s.Delete(); err != nil {
					return err
				}
			}
			return a.commit(s, view)
		},
	}
}

func newRowsReorderCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reorder <id>...",
		Short: "Move rows to the top in the given order",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := id.ParseRowIDs(args)
			if err != nil {
				return err
			}

			view := &cliView{out: cmd.OutOrStdout()}
			s, err := a.session(view)
			if err != nil {
				return err
			}
			s.Reorder(ids)
			return a.commit(s, view)
		},
	}
}

func newRowsImportCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import [file]",
		Short: "Import rows from a CSV or JSON file, or from everything in import/",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			run := uuid.NewString()
			l, err := a.drafts.Load()
			if err != nil {
				return err
			}

			if len(args) == 1 {
				n, err := a.drafts.Import(l, args[0])
				if err != nil {
					return err
				}
				if err := a.save(l); err != nil {
					return err
				}
				a.record(run, importEntry(args[0], n))
				fmt.Fprintf(out, "Imported %d row(s) from %s\n", n, filepath.Base(args[0]))
				return nil
			}

			files, err := a.drafts.Pending()
			if err != nil {
				return err
			}
			if len(files) == 0 {
				fmt.Fprintln(out, styleDim.Render("Nothing to import."))
				return nil
			}
			for _, f := range files {
				n, err := a.drafts.Import(l, f.Path)
				if err != nil {
					return err
				}
				// Saved per file so a later failure does not re-import this one.
				if err := a.save(l); err != nil {
					return err
				}
				if err := a.drafts.MarkProcessed(f.Name); err != nil {
					return err
				}
				a.record(run, importEntry(f.Name, n))
				fmt.Fprintf(out, "Imported %d row(s) from %s\n", n, f.Name)
			}
			return nil
		},
	}
}

func importEntry(path string, n int) history.Entry {
	return history.Entry{
		Action:  history.ActionImport,
		Details: fmt.Sprintf("%d row(s) from %s", n, filepath.Base(path)),
	}
}
