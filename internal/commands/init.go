package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/faktura-dev/faktura/internal/config"
	"github.com/faktura-dev/faktura/internal/draft"
	"github.com/faktura-dev/faktura/internal/ledger"
)

func newInitCommand() *cobra.Command {
	var name string
	var serverURL string
	var invoiceID int
	var noRotRut bool

	cmd := &cobra.Command{
		Use:         "init [directory]",
		Short:       "Initialize a new faktura project",
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{skipSetup: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			cfg := config.Default(name)
			if serverURL != "" {
				cfg.Server.BaseURL = serverURL
			}
			cfg.Invoice.ID = invoiceID
			cfg.Invoice.RotRutApplicable = !noRotRut

			return runInit(cmd.OutOrStdout(), absDir, cfg)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "company name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&serverURL, "server", "", "invoicing server base URL")
	cmd.Flags().IntVar(&invoiceID, "invoice", 0, "invoice id the rows belong to")
	cmd.Flags().BoolVar(&noRotRut, "no-rot-rut", false, "customer is not eligible for ROT/RUT")

	return cmd
}

func runInit(out io.Writer, dir string, cfg *config.Config) error {
	cfgPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return fmt.Errorf("%s already exists", cfgPath)
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("checking config: %w", err)
	}

	dirs := []string{
		"import",
		filepath.Join("import", "processed"),
		"exports",
	}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	if err := config.Save(cfgPath, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Write an empty draft.
	l, err := ledger.New(nil)
	if err != nil {
		return err
	}
	if err := draft.NewService(dir, cfg.Invoice.DraftFile, nil).Save(l); err != nil {
		return fmt.Errorf("writing draft: %w", err)
	}

	env := "# " + config.EnvServerURL + "=https://faktura.example.se\n# " + config.EnvLogLevel + "=debug\n"
	if err := os.WriteFile(filepath.Join(dir, ".env.example"), []byte(env), 0o644); err != nil {
		return fmt.Errorf("writing .env.example: %w", err)
	}

	gitignore := ".env\nexports/\nimport/processed/\nlogs/\n"
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "import", ".gitkeep"), []byte{}, 0o644); err != nil {
		return fmt.Errorf("writing .gitkeep: %w", err)
	}

	fmt.Fprintf(out, "Initialized faktura project at %s\n", dir)
	return nil
}
