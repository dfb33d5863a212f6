package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/odvcencio/gitcore/pkg/fsutil"
	"github.com/odvcencio/gitcore/pkg/repo"
	"github.com/spf13/cobra"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init [path]",
		Short: "Create an empty repository",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.dir
			if len(args) > 0 {
				path = args[0]
				if !filepath.IsAbs(path) {
					path = filepath.Join(a.dir, path)
				}
			}

			abs, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolve path: %w", err)
			}
			if err := os.MkdirAll(abs, fsutil.DirMode); err != nil {
				return fmt.Errorf("create directory: %w", err)
			}

			r, err := repo.Init(abs, a.repoOptions()...)
			if err != nil {
				return err
			}
			defer r.Close()

			fmt.Fprintf(cmd.OutOrStdout(), "Initialized empty Git repository in %s%c\n", r.GitDir, filepath.Separator)
			return nil
		},
	}
}
