package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/odvcencio/gitcore/pkg/object"
	"golang.org/x/crypto/ssh"
)

func newSSHCommitSigner(keyPath string) (object.Signer, string, error) {
	resolvedPath, err := resolveSigningKeyPath(keyPath)
	if err != nil {
		return nil, "", err
	}

	raw, err := os.ReadFile(resolvedPath)
	if err != nil {
		return nil, "", fmt.Errorf("read signing key %q: %w", resolvedPath, err)
	}
	signer, err := ssh.ParsePrivateKey(raw)
	if err != nil {
		return nil, "", fmt.Errorf("parse signing key %q: %w", resolvedPath, err)
	}
	return object.NewSSHSigner(signer), resolvedPath, nil
}

// resolveSigningKeyPath expands a leading "~/" or, when path is empty,
// picks the first default key present in ~/.ssh.
func resolveSigningKeyPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path != "" {
		return expandUserPath(path)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	for _, name := range []string{"id_ed25519", "id_ecdsa", "id_rsa"} {
		candidate := filepath.Join(home, ".ssh", name)
		if st, err := os.Stat(candidate); err == nil && !st.IsDir() {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no default SSH private key found in ~/.ssh (id_ed25519, id_ecdsa, id_rsa)")
}

func expandUserPath(path string) (string, error) {
	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		path = filepath.Join(home, rest)
	}
	return filepath.Abs(path)
}
