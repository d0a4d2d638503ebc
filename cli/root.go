// Package cli provides the repolens command line.
package cli

import (
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gerunddev/repolens/config"
	"github.com/gerunddev/repolens/interactive"
	"github.com/gerunddev/repolens/logging"
	"github.com/gerunddev/repolens/ui"
	"github.com/gerunddev/repolens/ui/messages"
	"github.com/gerunddev/repolens/vcs"
	"github.com/gerunddev/repolens/watch"
	"github.com/gerunddev/repolens/workspace"
	"github.com/spf13/cobra"
)

// Version is set at build time.
var Version = "0.1.0"

type state struct {
	cfgFile     string
	interactive bool
	cfg         *config.Config
}

// NewRootCmd creates the repolens command tree.
func NewRootCmd() *cobra.Command {
	s := &state{}

	rootCmd := &cobra.Command{
		Use:   "repolens [snapshot]",
		Short: "Browse repository questions and answers in the terminal",
		Long: `repolens shows a repository file tree next to the history of questions
asked about it, with answers and charts in the main area.

The snapshot is a YAML or JSON file holding the repository, its tree and the
conversation history. Without one, the tree of the current directory is shown.`,
		Version:           Version,
		Args:              cobra.MaximumNArgs(1),
		PersistentPreRunE: s.load,
		RunE:              s.run,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&s.cfgFile, "config", "", "config file (default: ./repolens.yaml)")
	pf.String("log-file", "", "write debug logs to this file")
	pf.String("log-level", "", "log level (debug|info|warn|error)")
	pf.String("export-dir", "", "directory for exported transcripts and charts")

	f := rootCmd.Flags()
	f.BoolVarP(&s.interactive, "interactive", "i", false, "run in interactive mode (quick actions)")
	f.BoolP("watch", "w", false, "reload the snapshot when the file changes")
	f.Int("sidebar-width", 0, "sidebar width in columns")
	f.Int("history-page-size", 0, "history entries shown before \"Load more\" (0 shows all)")

	_ = rootCmd.RegisterFlagCompletionFunc("log-level", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"debug", "info", "warn", "error"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(newChartCmd(s))
	rootCmd.AddCommand(newProxyCmd(s))
	rootCmd.AddCommand(newTreeCmd(s))

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

func (s *state) load(cmd *cobra.Command, _ []string) error {
	if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
		return nil
	}

	cfg, err := config.Load(s.cfgFile, cmd.Flags())
	if err != nil {
		return err
	}
	s.cfg = cfg

	if err := logging.Init(cfg.LogFile, logging.ParseLevel(cfg.LogLevel)); err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	if cfg.FileUsed != "" {
		logging.Debug("config loaded", "file", cfg.FileUsed)
	}
	return nil
}

func (s *state) snapshotPath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return s.cfg.Snapshot
}

func (s *state) run(cmd *cobra.Command, args []string) error {
	path := s.snapshotPath(args)

	if s.interactive {
		snap, err := loadOrScan(path)
		if err != nil {
			return err
		}
		return interactive.Run(snap, interactive.Options{
			ExportDir: s.cfg.ExportDir,
			Out:       cmd.OutOrStdout(),
		})
	}

	opts := ui.Options{
		SnapshotPath: path,
		SidebarWidth: s.cfg.SidebarWidth,
		PageSize:     s.cfg.HistoryPageSize,
		ExportDir:    s.cfg.ExportDir,
	}
	if path == "" {
		snap, err := scanDir(".")
		if err != nil {
			return err
		}
		opts.Snapshot = snap
	}

	p := tea.NewProgram(ui.NewApp(opts), tea.WithAltScreen(), tea.WithMouseCellMotion())

	if s.cfg.Watch && path != "" {
		w, err := watch.New(path,
			watch.WithOnChange(func(changed string) {
				p.Send(messages.SnapshotChangedMsg{Path: changed})
			}),
			watch.WithOnError(func(err error) {
				logging.Warn("snapshot watch error", "path", path, "error", err)
			}),
		)
		if err != nil {
			return err
		}
		if err := w.Start(); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		defer w.Stop()
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

// loadOrScan loads the snapshot at path, or scans the working directory
// when path is empty.
func loadOrScan(path string) (*workspace.Snapshot, error) {
	if path == "" {
		return scanDir(".")
	}
	return workspace.Load(path)
}

// scanDir builds a snapshot with no history from a directory on disk.
func scanDir(dir string) (*workspace.Snapshot, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	tree, err := workspace.TreeFromDir(abs, workspace.DirOptions{MaxDepth: defaultScanDepth})
	if err != nil {
		return nil, err
	}
	repo, err := vcs.Info(abs)
	if err != nil {
		logging.Debug("no git metadata", "dir", abs, "error", err)
		repo = workspace.RepoMeta{Name: filepath.Base(abs)}
	}
	return &workspace.Snapshot{Repo: repo, Tree: tree}, nil
}

const defaultScanDepth = 4
