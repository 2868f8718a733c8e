package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/faktura-dev/faktura/internal/export"
	"github.com/faktura-dev/faktura/internal/model"
	"github.com/faktura-dev/faktura/internal/render"
	"github.com/faktura-dev/faktura/internal/rowedit"
	"github.com/faktura-dev/faktura/internal/tax"
)

// rotRutFlag lets a command override invoice.rot_rut_applicable.
type rotRutFlag struct {
	applicable bool
}

func (f *rotRutFlag) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.applicable, "rot-rut", true, "apply ROT/RUT (defaults to the project setting)")
}

func (f *rotRutFlag) value(cmd *cobra.Command, a *app) bool {
	if cmd.Flags().Changed("rot-rut") {
		return f.applicable
	}
	return a.cfg.Invoice.RotRutApplicable
}

func newTotalsCommand(a *app) *cobra.Command {
	var rotRut rotRutFlag
	var all bool

	cmd := &cobra.Command{
		Use:   "totals",
		Short: "Show the invoice totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := a.drafts.Load()
			if err != nil {
				return err
			}
			writeTotals(cmd.OutOrStdout(), l.Totals(rotRut.value(cmd, a)), all)
			return nil
		},
	}
	rotRut.register(cmd)
	cmd.Flags().BoolVar(&all, "all", false, "also show zero totals")
	return cmd
}

func newConvertCommand() *cobra.Command {
	var vat string
	var from string

	cmd := &cobra.Command{
		Use:         "convert <amount>",
		Short:       "Convert a price between including and excluding VAT",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{skipSetup: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			rate, err := model.ParseVATRate(vat)
			if err != nil {
				return err
			}

			var field rowedit.PriceField
			switch strings.ToLower(from) {
			case "incl":
				field = rowedit.PriceInclusive
			case "excl":
				field = rowedit.PriceExclusive
			default:
				return fmt.Errorf("--from must be incl or excl, got %q", from)
			}

			other, ok := rowedit.CounterPrice(field, args[0], rate)
			if !ok {
				return fmt.Errorf("not a number: %q", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), other)
			return nil
		},
	}
	cmd.Flags().StringVar(&vat, "vat", "25", "VAT rate in percent")
	cmd.Flags().StringVar(&from, "from", "excl", "the given amount is incl or excl VAT")
	return cmd
}

func newClaimCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "claim <rot|rut>",
		Short: "Summarize the rows that support a ROT or RUT claim",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := model.ReductionKind(strings.ToUpper(args[0]))
			if kind != model.ReductionROT && kind != model.ReductionRUT {
				return fmt.Errorf("unknown reduction %q, want rot or rut", args[0])
			}

			l, err := a.drafts.Load()
			if err != nil {
				return err
			}
			c := tax.Claim(l.Rows(), kind)

			out := cmd.OutOrStdout()
			rows := [][]string{
				{"Rader", fmt.Sprint(len(c.Rows))},
				{"Arbetskostnad", render.Money(c.Eligible)},
				{"Övrigt", render.Money(c.Other)},
				{"Timmar", c.Hours.String()},
				{"Max avdrag", render.Money(c.MaxAmount)},
			}
			fmt.Fprintln(out, styleBold.Render(string(kind)))
			fmt.Fprint(out, renderTable([]string{"", ""}, rows, alignRight{1: true}))
			return nil
		},
	}
}

func newExportCommand(a *app) *cobra.Command {
	var rotRut rotRutFlag

	cmd := &cobra.Command{
		Use:   "export [file.xlsx]",
		Short: "Write the rows and totals to an Excel workbook",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := filepath.Join(a.dir, "exports", "rows.xlsx")
			if len(args) > 0 {
				path = args[0]
			}

			l, err := a.drafts.Load()
			if err != nil {
				return err
			}
			data, err := export.Workbook(l.Rows(), l.Totals(rotRut.value(cmd, a)))
			if err != nil {
				return err
			}
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return fmt.Errorf("creating export dir: %w", err)
			}
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	rotRut.register(cmd)
	return cmd
}
