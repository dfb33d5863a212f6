package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/odvcencio/gitcore/pkg/object"
	"github.com/odvcencio/gitcore/pkg/repo"
	"github.com/spf13/cobra"
)

func newCommitTreeCmd(a *app) *cobra.Command {
	var (
		parents []string
		message string
		author  string
		date    int64
		sign    bool
		keyPath string
	)
	cmd := &cobra.Command{
		Use:   "commit-tree <tree> -m <message> [-p <parent>]...",
		Short: "Create a commit object from a tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if message == "" {
				return fmt.Errorf("commit-tree: a message is required (-m)")
			}
			r, err := a.openRepo()
			if err != nil {
				return err
			}
			defer r.Close()

			treeHash, err := r.ResolveRef(args[0])
			if err != nil {
				return err
			}
			tree, err := r.GetTree(treeHash)
			if err != nil {
				return err
			}
			if tree == nil {
				return fmt.Errorf("commit-tree: tree %s: %w", treeHash, object.ErrNotFound)
			}

			parentHashes := make([]object.Hash, 0, len(parents))
			for _, p := range parents {
				h, err := r.ResolveCommit(p)
				if err != nil {
					return fmt.Errorf("commit-tree: parent %s: %w", p, err)
				}
				parentHashes = append(parentHashes, h)
			}

			when := time.Now()
			if date != 0 {
				when = time.Unix(date, 0).UTC()
			}
			who, err := commitIdentity(r, author, when)
			if err != nil {
				return err
			}
			if !strings.HasSuffix(message, "\n") {
				message += "\n"
			}
			commit := object.NewCommit(treeHash, parentHashes, who, who, message)

			if sign || keyPath != "" {
				signer, resolved, err := newSSHCommitSigner(keyPath)
				if err != nil {
					return err
				}
				if err := commit.Sign(signer); err != nil {
					return err
				}
				a.logger.Debug("signed commit", "key", resolved)
			}

			h, err := r.WriteObject(commit, false)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), h)
			return nil
		},
	}
	cmd.Flags().StringArrayVarP(&parents, "parent", "p", nil, "parent commit (repeatable)")
	cmd.Flags().StringVarP(&message, "message", "m", "", "commit message")
	cmd.Flags().StringVar(&author, "author", "", `author and committer as "Name <email>"`)
	cmd.Flags().Int64Var(&date, "date", 0, "commit time as Unix seconds (default now)")
	cmd.Flags().BoolVarP(&sign, "sign", "S", false, "sign the commit with an SSH key")
	cmd.Flags().StringVar(&keyPath, "key", "", "SSH private key for signing (default ~/.ssh/id_ed25519, id_ecdsa, id_rsa)")
	return cmd
}

// commitIdentity picks the identity from --author, then user.name and
// user.email in the repository config, then GIT_AUTHOR_NAME and
// GIT_AUTHOR_EMAIL.
func commitIdentity(r *repo.Repository, flag string, when time.Time) (string, error) {
	if flag != "" {
		id, err := object.ParseIdent(flag + " 0 +0000")
		if err != nil {
			return "", fmt.Errorf("commit-tree: --author: %w", err)
		}
		id.When = when
		return id.String(), nil
	}
	name := r.Config.Get("user.name", os.Getenv("GIT_AUTHOR_NAME"))
	email := r.Config.Get("user.email", os.Getenv("GIT_AUTHOR_EMAIL"))
	if name == "" || email == "" {
		return "", fmt.Errorf("commit-tree: no identity; pass --author or set user.name and user.email")
	}
	return object.Ident{Name: name, Email: email, When: when}.String(), nil
}
