package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/odvcencio/gitcore/pkg/object"
	"github.com/spf13/cobra"
)

func newFsckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "fsck",
		Aliases: []string{"verify"},
		Short:   "Verify object integrity and count objects reachable from refs",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.openRepo()
			if err != nil {
				return err
			}
			defer r.Close()

			summary, err := r.Verify()
			if err != nil {
				return err
			}

			refs, err := r.ListRefs()
			if err != nil {
				return err
			}
			roots := make([]object.Hash, 0, len(refs)+1)
			for _, h := range refs {
				roots = append(roots, h)
			}
			if head, err := r.ResolveRef("HEAD"); err == nil {
				roots = append(roots, head)
			}
			reachable, err := r.Reachable(roots)
			if err != nil {
				return err
			}

			types := make([]string, 0, len(summary.ByType))
			for t, n := range summary.ByType {
				types = append(types, fmt.Sprintf("%s: %d", t, n))
			}
			slices.Sort(types)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ok: verified %d object(s)", summary.Objects)
			if len(types) > 0 {
				fmt.Fprintf(out, " (%s)", strings.Join(types, ", "))
			}
			fmt.Fprintln(out)
			fmt.Fprintf(out, "reachable from %d ref(s): %d object(s)\n", len(refs), len(reachable))
			return nil
		},
	}
}
