package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/faktura-dev/faktura/internal/buildinfo"
	"github.com/faktura-dev/faktura/internal/config"
	"github.com/faktura-dev/faktura/internal/draft"
	"github.com/faktura-dev/faktura/internal/history"
	"github.com/faktura-dev/faktura/internal/ledger"
	"github.com/faktura-dev/faktura/internal/logging"
	"github.com/faktura-dev/faktura/internal/remote"
	"github.com/faktura-dev/faktura/internal/rowedit"
)

// skipSetup marks commands that run without a faktura.yaml.
const skipSetup = "skip-setup"

// app is the state shared by all commands of one invocation.
type app struct {
	dir         string
	cfg         *config.Config
	logger      *zap.Logger
	drafts      *draft.Service
	interactive func() bool
}

// isTerminal reports whether the interactive row editor can be shown.
var isTerminal = stdinIsTerminal

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	a := &app{interactive: isTerminal}

	rootCmd := &cobra.Command{
		Use:     "faktura",
		Short:   "Edit invoice rows with Swedish VAT and ROT/RUT",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[skipSetup] != "" || cmd.Name() == "help" {
				return nil
			}
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	rootCmd.PersistentFlags().StringVarP(&a.dir, "dir", "C", ".", "project directory")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newRowsCommand(a))
	rootCmd.AddCommand(newTotalsCommand(a))
	rootCmd.AddCommand(newConvertCommand())
	rootCmd.AddCommand(newClaimCommand(a))
	rootCmd.AddCommand(newExportCommand(a))
	rootCmd.AddCommand(newCustomersCommand(a))
	rootCmd.AddCommand(newTableCommand(a))
	rootCmd.AddCommand(newSubmitCommand(a))
	rootCmd.AddCommand(newHistoryCommand(a))

	return rootCmd
}

func stdinIsTerminal() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}

// setup loads faktura.yaml and .env from the project directory.
func (a *app) setup() error {
	absDir, err := filepath.Abs(a.dir)
	if err != nil {
		return fmt.Errorf("resolving path: %w", err)
	}
	a.dir = absDir

	cfg, err := config.Load(filepath.Join(absDir, config.FileName))
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("no %s in %s, run \"faktura init\" first", config.FileName, absDir)
	}
	if err != nil {
		return err
	}
	if err := config.LoadEnv(cfg, filepath.Join(absDir, ".env")); err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	a.logger = logger.With(zap.String("project", filepath.Base(absDir)))
	a.drafts = draft.NewService(absDir, cfg.Invoice.DraftFile, a.logger)
	return nil
}

func (a *app) client() *remote.Client {
	return remote.New(remote.Options{
		BaseURL:   a.cfg.Server.BaseURL,
		Timeout:   a.cfg.Server.Timeout,
		Retries:   a.cfg.Server.Retries,
		MinSearch: a.cfg.Search.MinLength,
	}, a.logger)
}

// session loads the draft and opens an editing session on it.
func (a *app) session(view rowedit.LedgerView) (*rowedit.Session, error) {
	l, err := a.drafts.Load()
	if err != nil {
		return nil, err
	}
	return rowedit.NewSession(l, view, rowedit.WithLogger(a.logger)), nil
}

func (a *app) save(l *ledger.Ledger) error {
	return a.drafts.Save(l)
}

// commit saves the session's ledger and logs the changes the view saw.
func (a *app) commit(s *rowedit.Session, v *cliView) error {
	if err := a.save(s.Ledger()); err != nil {
		return err
	}
	a.record(s.ID, v.entries...)
	return nil
}

// record appends entries to the project history. The draft is already
// saved at this point, so a failure is only logged.
func (a *app) record(session string, entries ...history.Entry) {
	now := time.Now()
	for i := range entries {
		entries[i].Timestamp = now
		entries[i].Session = session
	}
	if err := history.Append(a.dir, entries); err != nil {
		a.logger.Warn("Failed to write history", zap.Error(err))
	}
}
