package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"devgrid/internal/config"
	"devgrid/internal/logger"
	"devgrid/internal/pane"
	"devgrid/internal/store"
	"devgrid/internal/trace"
	"devgrid/internal/ui"
)

// globalOptions are the persistent flags shared by every subcommand.
type globalOptions struct {
	storeDir string
	logLevel string
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}
	var layout string

	root := &cobra.Command{
		Use:   "devgrid",
		Short: "Terminal workbench of resizable panes",
		Long: `devgrid splits the terminal into a grid of panes (notes, shells and a
live layout inspector). Drag borders with the mouse or use SPC r to resize,
and save the arrangement as a named layout to reopen it later or mirror it
onto tmux panes.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd.Context(), opts, layout)
		},
	}
	root.PersistentFlags().StringVar(&opts.storeDir, "store-dir", "", "directory of saved layouts (overrides store.dir)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error (overrides log.level)")
	root.Flags().StringVarP(&layout, "layout", "l", "", "saved layout to open; SPC w saves back to it")

	root.AddCommand(
		newInspectCmd(opts),
		newListCmd(opts),
		newRemoveCmd(opts),
		newTmuxCmd(opts),
	)
	return root
}

// loadEnv reads the configuration and opens the layout store.
func loadEnv(opts *globalOptions) (config.Config, *store.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, err
	}
	if opts.logLevel != "" {
		if _, err := logger.ParseLevel(opts.logLevel); err != nil {
			return config.Config{}, nil, fmt.Errorf("--log-level: %w", err)
		}
		cfg.Log.Level = opts.logLevel
	}
	dir := cfg.Store.Dir
	if opts.storeDir != "" {
		dir = opts.storeDir
	}
	st, err := store.NewStore(dir)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("open layout store: %w", err)
	}
	return cfg, st, nil
}

func runTUI(ctx context.Context, opts *globalOptions, layout string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, st, err := loadEnv(opts)
	if err != nil {
		return err
	}

	level, _ := logger.ParseLevel(cfg.Log.Level)
	if err := logger.Init(cfg.Log.Path, level); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()
	log := logger.Component("main")

	tp, err := trace.NewProvider(ctx)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	tp.Install()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			log.Warn("trace shutdown failed", "error", err)
		}
	}()

	wd, err := os.Getwd()
	if err != nil {
		wd = ""
	}
	wb, err := ui.NewWorkbench(ui.Options{
		Orientation:   cfg.Grid.RootOrientation(),
		SashThickness: cfg.Grid.SashThickness,
		DoubleClick:   cfg.UI.DoubleClickInterval(),
		Factory: &pane.Factory{
			Shell:       cfg.UI.Shell,
			WorkDir:     wd,
			Constraints: cfg.Grid.MinPane(),
			Logger:      logger.Component("pane"),
		},
		Store:  st,
		Layout: layout,
		Logger: logger.Component("ui"),
	})
	if err != nil {
		return err
	}
	defer wb.Close()

	log.Info("starting", "layout", layout, "store", st.BaseDir(), "tracing", tp.Enabled())
	p := tea.NewProgram(wb.AsTeaModel(),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run workbench: %w", err)
	}
	return nil
}
