package main

import (
	"fmt"

	"github.com/odvcencio/gitcore/pkg/object"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/ssh"
)

func newVerifyCommitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "verify-commit <commit>",
		Short: "Check the SSH signature of a commit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.openRepo()
			if err != nil {
				return err
			}
			defer r.Close()

			h, err := r.ResolveCommit(args[0])
			if err != nil {
				return err
			}
			c, err := r.GetCommit(h)
			if err != nil {
				return err
			}
			pub, err := c.VerifySSH()
			if err != nil {
				return fmt.Errorf("verify-commit %s: %w", h, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Good %q signature for %s with %s key %s\n",
				object.SignatureHeader, h, pub.Type(), ssh.FingerprintSHA256(pub))
			return nil
		},
	}
}
