package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"luminol/internal/config"
	"luminol/internal/editor"
	"luminol/internal/eventbus"
	"luminol/internal/logging"
	"luminol/internal/ui"
	"luminol/internal/ui/views"
)

// ErrNoInput is returned when no file is named and stdin is a terminal
var ErrNoInput = errors.New("no input: name a file or pipe text on stdin")

// Options are the root command flags
type Options struct {
	ConfigPath string
	LogDir     string
	Debug      bool
	Color      string
	NoWatch    bool
}

// New returns the luminol root command
func New() *cobra.Command {
	opts := &Options{}

	cmd := &cobra.Command{
		Use:   "luminol [file]",
		Short: "Highlight every occurrence of a word or selection in a file.",
		Example: `
luminol main.go
git diff | luminol
`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return run(cmd.Context(), opts, path)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.ConfigPath, "config", "c", "", "config file (default "+config.DefaultPath()+")")
	cmd.Flags().StringVar(&opts.LogDir, "log-dir", "", "directory for luminol.log")
	cmd.Flags().BoolVar(&opts.Debug, "debug", false, "enable debug logging")
	cmd.Flags().StringVar(&opts.Color, "color", "auto", "color profile: auto, truecolor, 256, 16, none")
	cmd.Flags().BoolVar(&opts.NoWatch, "no-watch", false, "do not reload the file when it changes")

	addConfig(cmd, opts)
	return cmd
}

func run(ctx context.Context, opts *Options, path string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	bus := eventbus.New()
	defer bus.Close()

	configSvc := config.NewConfigService(opts.ConfigPath, bus)
	cfg, err := configSvc.Load()
	if err != nil {
		return err
	}
	if opts.LogDir != "" {
		cfg.Log.Dir = opts.LogDir
	}
	logging.Init(cfg.Log.Logging(opts.Debug))
	defer logging.Close()
	log := logging.ForComponent(logging.CompUI)

	if err := views.InitColorProfile(opts.Color); err != nil {
		return err
	}

	stdinTTY := isTerminal(os.Stdin)
	doc, err := openDocument(path, os.Stdin, stdinTTY)
	if err != nil {
		return err
	}

	var watcher *ui.Watcher
	if !opts.NoWatch {
		watcher = startWatcher(path, configSvc.Path())
		if watcher != nil {
			defer watcher.Close()
		}
	}

	model := ui.NewModel(ui.Options{
		Bus:           bus,
		Config:        cfg,
		ConfigService: configSvc,
		Path:          path,
		Document:      doc,
		Watcher:       watcher,
	})

	programOpts := []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	}
	if !stdinTTY {
		// stdin carried the document, read keys from the terminal
		programOpts = append(programOpts, tea.WithInputTTY())
	}
	p := tea.NewProgram(model, programOpts...)
	model.SetProgram(p)

	subscribe(bus, p)
	bus.Publish(eventbus.DocumentLoadedEvent{Path: path, Lines: doc.LineCount()})

	log.Info("ui_starting", slog.String("path", path), slog.Int("lines", doc.LineCount()))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("running program: %w", err)
	}
	log.Info("ui_exited")
	return nil
}

// openDocument reads path, or stdin when path is empty
func openDocument(path string, stdin io.Reader, stdinTTY bool) (*editor.Document, error) {
	if path != "" {
		return editor.LoadDocument(path)
	}
	if stdinTTY || stdin == nil {
		return nil, ErrNoInput
	}
	return editor.ReadDocument(stdin)
}

// startWatcher watches the document and config file; failures only disable reloads
func startWatcher(path, configPath string) *ui.Watcher {
	log := logging.ForComponent(logging.CompWatcher)

	w, err := ui.NewWatcher()
	if err != nil {
		log.Warn("watcher_unavailable", slog.String("error", err.Error()))
		return nil
	}
	if path != "" {
		if err := w.WatchDocument(path); err != nil {
			log.Warn("watch_document_failed", slog.String("path", path), slog.String("error", err.Error()))
		}
	}
	if err := w.WatchConfig(configPath); err != nil {
		log.Warn("watch_config_failed", slog.String("path", configPath), slog.String("error", err.Error()))
	}
	return w
}

// subscribe logs bus traffic and forwards errors to the UI
func subscribe(bus eventbus.EventBus, p *tea.Program) {
	log := logging.ForComponent(logging.CompBus)

	for _, t := range []eventbus.EventType{
		eventbus.EventHighlightStarted,
		eventbus.EventHighlightCleared,
		eventbus.EventMatchFocused,
		eventbus.EventOccurrencesSelected,
		eventbus.EventDocumentLoaded,
		eventbus.EventDocumentChanged,
		eventbus.EventConfigLoaded,
		eventbus.EventConfigSaved,
	} {
		bus.Subscribe(t, func(e eventbus.DomainEvent) {
			log.Debug("event", slog.String("type", string(e.Type())))
		})
	}

	bus.Subscribe(eventbus.EventError, func(e eventbus.DomainEvent) {
		p.Send(ui.EventMsg{Event: e})
	})
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func addConfig(topLevel *cobra.Command, opts *Options) {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "manage the luminol config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "write the default config file",
		Example: `
luminol config init
luminol config init --force -c ./luminol.toml
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := config.NewConfigService(opts.ConfigPath, nil)
			path := svc.Path()
			if !force {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("%s already exists, use --force to overwrite", path)
				}
			}
			if err := svc.Save(config.DefaultConfig()); err != nil {
				return err
			}
			abs, err := filepath.Abs(path)
			if err != nil {
				abs = path
			}
			fmt.Fprintln(cmd.OutOrStdout(), abs)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "print the config file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), config.NewConfigService(opts.ConfigPath, nil).Path())
			return nil
		},
	}

	cmd.AddCommand(initCmd, pathCmd)
	topLevel.AddCommand(cmd)
}
