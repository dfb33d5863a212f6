package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/odvcencio/gitcore/pkg/object"
	"github.com/odvcencio/gitcore/pkg/repo"
	"github.com/spf13/cobra"
)

func newHashObjectCmd(a *app) *cobra.Command {
	var (
		write bool
		typ   string
		stdin bool
	)
	cmd := &cobra.Command{
		Use:   "hash-object [-w] [-t type] (--stdin | <file>...)",
		Short: "Compute object hashes and optionally store the objects",
		RunE: func(cmd *cobra.Command, args []string) error {
			objType, err := object.ParseType(typ)
			if err != nil {
				return err
			}
			if stdin == (len(args) > 0) {
				return fmt.Errorf("hash-object: give either --stdin or at least one file")
			}

			var r *repo.Repository
			if write {
				r, err = a.openRepo()
			} else {
				// Hashing alone needs no repository on disk.
				r, err = repo.New(a.dir, a.repoOptions()...)
			}
			if err != nil {
				return err
			}
			defer r.Close()

			hash := func(data []byte) error {
				h, err := r.WritePayload(objType, data, !write)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), h)
				return nil
			}

			if stdin {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				return hash(data)
			}
			for _, name := range args {
				if !filepath.IsAbs(name) {
					name = filepath.Join(a.dir, name)
				}
				data, err := os.ReadFile(name)
				if err != nil {
					return err
				}
				if err := hash(data); err != nil {
					return fmt.Errorf("%s: %w", name, err)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&write, "write", "w", false, "write the object into the object database")
	cmd.Flags().StringVarP(&typ, "type", "t", string(object.TypeBlob), "object type")
	cmd.Flags().BoolVar(&stdin, "stdin", false, "read the object from standard input")
	return cmd
}
