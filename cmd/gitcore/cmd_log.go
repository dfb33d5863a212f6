package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/odvcencio/gitcore/pkg/object"
	"github.com/odvcencio/gitcore/pkg/repo"
	"github.com/spf13/cobra"
)

func newLogCmd(a *app) *cobra.Command {
	var oneline bool
	var limit int

	cmd := &cobra.Command{
		Use:   "log [revision]",
		Short: "Show commit history",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.openRepo()
			if err != nil {
				return err
			}
			defer r.Close()

			rev := "HEAD"
			if len(args) > 0 {
				rev = args[0]
			}
			start, err := r.ResolveCommit(rev)
			if err != nil {
				return fmt.Errorf("cannot resolve %s: %w", rev, err)
			}

			out := cmd.OutOrStdout()
			return r.Walk(start, func(e repo.LogEntry) error {
				if oneline {
					fmt.Fprintf(out, "%s %s\n", e.Hash[:8], firstLine(e.Commit.Message()))
				} else {
					printCommit(out, e.Hash, e.Commit)
				}
				limit--
				if limit == 0 {
					return repo.ErrStopWalk
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&oneline, "oneline", false, "show each commit on a single line")
	cmd.Flags().IntVarP(&limit, "max-count", "n", 0, "limit the number of commits shown (0 means no limit)")
	return cmd
}

func printCommit(w io.Writer, h object.Hash, c *object.Commit) {
	fmt.Fprintf(w, "commit %s\n", h)
	if parents := c.ParentHashes(); len(parents) > 1 {
		short := make([]string, len(parents))
		for i, p := range parents {
			short[i] = string(p[:min(len(p), 8)])
		}
		fmt.Fprintf(w, "Merge: %s\n", strings.Join(short, " "))
	}
	if id, err := object.ParseIdent(c.Author()); err == nil {
		fmt.Fprintf(w, "Author: %s <%s>\n", id.Name, id.Email)
		fmt.Fprintf(w, "Date:   %s\n", id.When.Format(time.RFC1123Z))
	} else {
		fmt.Fprintf(w, "Author: %s\n", c.Author())
	}
	fmt.Fprintln(w)
	for _, line := range strings.Split(strings.TrimRight(c.Message(), "\n"), "\n") {
		fmt.Fprintf(w, "    %s\n", line)
	}
	fmt.Fprintln(w)
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
