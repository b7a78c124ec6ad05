package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"todolist/internal/config"
	"todolist/internal/console"
	"todolist/internal/logging"
	"todolist/internal/storage"
	"todolist/internal/todo"
	"todolist/internal/ui"
)

type rootOptions struct {
	configPath string
	backend    string
	logLevel   string
	tui        bool
}

// NewRootCmd builds the todo command. Without flags it runs the text menu
// over an in-memory list and reads no files.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "todo",
		Short:         "A console to-do list",
		Long:          `todo keeps a short list of text items for the current session. Nothing is saved on exit.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, opts)
			if err != nil {
				return err
			}
			return run(cmd, cfg)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "", "TOML config file (none by default)")
	cmd.Flags().StringVar(&opts.backend, "backend", config.BackendMemory, "item store: memory or sqlite (in-memory database)")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "warn", "log level written to stderr: debug, info, warn, error")
	cmd.Flags().BoolVar(&opts.tui, "tui", false, "use the full-screen interface instead of the text menu")

	cmd.AddCommand(newConfigCmd())
	return cmd
}

// resolveConfig loads the config file and lets explicitly set flags win.
func resolveConfig(cmd *cobra.Command, opts *rootOptions) (config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return cfg, fmt.Errorf("failed to load config: %w", err)
	}
	flags := cmd.Flags()
	if flags.Changed("backend") {
		cfg.Backend = opts.backend
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}
	if flags.Changed("tui") {
		cfg.Interface = config.InterfaceConsole
		if opts.tui {
			cfg.Interface = config.InterfaceTUI
		}
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func run(cmd *cobra.Command, cfg config.Config) error {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	log := logging.NewWithWriter(cmd.ErrOrStderr(), level)

	store, closeStore, err := openStore(cfg.Backend, log)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer closeStore()
	log.Debug("store ready", "backend", cfg.Backend)

	in := cmd.InOrStdin()
	if cfg.Interface == config.InterfaceTUI {
		if isTerminal(in) {
			return ui.Run(store, cfg, log)
		}
		log.Warn("stdin is not a terminal, using the text menu")
	}
	return console.New(in, cmd.OutOrStdout(), store, console.WithLogger(log)).Run(cmd.Context())
}

func openStore(backend string, log *slog.Logger) (todo.Store, func() error, error) {
	if backend == config.BackendSQLite {
		s, err := storage.Open(log)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	}
	return todo.New(), func() error { return nil }, nil
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
