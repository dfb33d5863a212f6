package main

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/odvcencio/gitcore/pkg/config"
	"github.com/odvcencio/gitcore/pkg/repo"
	"github.com/spf13/cobra"
)

const defaultSettingsFile = "gitcore.toml"

// app carries what every subcommand needs once the root command has parsed
// its persistent flags.
type app struct {
	dir          string
	settingsPath string
	gitDir       string

	settings config.Settings
	logger   *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "gitcore",
		Short:         "Inspect and write Git objects",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
	}
	root.PersistentFlags().StringVarP(&a.dir, "dir", "C", ".", "run as if started in this directory")
	root.PersistentFlags().StringVar(&a.settingsPath, "settings", "", "settings file (default <dir>/"+defaultSettingsFile+")")
	root.PersistentFlags().StringVar(&a.gitDir, "git-dir", "", "metadata directory name, overriding settings")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(a))
	root.AddCommand(newHashObjectCmd(a))
	root.AddCommand(newCatFileCmd(a))
	root.AddCommand(newLogCmd(a))
	root.AddCommand(newCommitTreeCmd(a))
	root.AddCommand(newVerifyCommitCmd(a))
	root.AddCommand(newFsckCmd(a))
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "gitcore 0.1.0-dev")
		},
	}
}

func (a *app) load(cmd *cobra.Command) error {
	path := a.settingsPath
	if path == "" {
		path = filepath.Join(a.dir, defaultSettingsFile)
	}
	s, err := config.LoadSettings(path)
	if err != nil {
		return err
	}
	if a.gitDir != "" {
		s.GitDir = a.gitDir
	}
	level, err := s.SlogLevel()
	if err != nil {
		return err
	}
	a.settings = s
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	return nil
}

func (a *app) repoOptions() []repo.Option {
	return []repo.Option{
		repo.WithGitDir(a.settings.GitDir),
		repo.WithBackend(a.settings.Backend),
		repo.WithCompressionLevel(a.settings.CompressionLevel),
		repo.WithLogger(a.logger),
	}
}

// openRepo finds the repository containing the working directory.
func (a *app) openRepo() (*repo.Repository, error) {
	return repo.Open(a.dir, a.repoOptions()...)
}
