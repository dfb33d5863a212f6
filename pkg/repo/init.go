package repo

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/odvcencio/gitcore/pkg/config"
	"github.com/odvcencio/gitcore/pkg/fsutil"
)

const defaultDescription = "Unnamed repository; edit this file 'description' to name the repository.\n"

// Init creates a new repository at workTree: branches/, objects/,
// refs/tags/, refs/heads/, description, HEAD and config under the
// metadata directory. It fails if the metadata directory already exists
// and is not empty.
func Init(workTree string, opts ...Option) (*Repository, error) {
	r, err := New(workTree, opts...)
	if err != nil {
		return nil, err
	}
	if r.exists {
		empty, err := fsutil.IsEmptyDir(r.fs, r.gitDirName)
		if err != nil {
			return nil, fmt.Errorf("init: %w", err)
		}
		if !empty {
			return nil, fmt.Errorf("init: %w at %s", ErrAlreadyExists, r.GitDir)
		}
	}

	for _, d := range []string{"branches", "objects", filepath.Join("refs", "tags"), filepath.Join("refs", "heads")} {
		if err := fsutil.MkdirAll(r.fs, r.fs.Join(r.gitDirName, d)); err != nil {
			return nil, fmt.Errorf("init: %w", err)
		}
	}

	var cfg bytes.Buffer
	if err := r.Config.Encode(&cfg); err != nil {
		return nil, fmt.Errorf("init: %w", err)
	}
	files := []struct {
		name string
		data []byte
	}{
		{"description", []byte(defaultDescription)},
		{"HEAD", []byte("ref: refs/heads/master\n")},
		{"config", cfg.Bytes()},
	}
	for _, f := range files {
		if err := fsutil.CreateFile(r.fs, r.fs.Join(r.gitDirName, f.name), f.data, fsutil.FileMode); err != nil {
			return nil, fmt.Errorf("init: %w", err)
		}
	}

	r.exists = true
	r.logger.Info("initialized repository", "git_dir", r.GitDir)
	return r, nil
}

// Open searches upward from path for a directory containing the metadata
// directory, loads its config and validates it. With WithFilesystem, path
// is ignored for discovery and the filesystem root is the work tree.
func Open(path string, opts ...Option) (*Repository, error) {
	o := options{gitDir: DefaultGitDir}
	for _, opt := range opts {
		opt(&o)
	}

	workTree := path
	if o.fs == nil {
		found, err := findWorkTree(path, o.gitDir)
		if err != nil {
			return nil, err
		}
		workTree = found
	}

	r, err := New(workTree, opts...)
	if err != nil {
		return nil, err
	}
	if !r.exists {
		return nil, fmt.Errorf("open: %w: %s", ErrNotRepository, r.WorkTree)
	}
	data, err := fsutil.ReadFile(r.fs, r.fs.Join(r.gitDirName, "config"))
	if err != nil {
		if fsutil.IsNotExist(err) {
			return nil, fmt.Errorf("open: %w: %s", ErrConfigMissing, r.GitDir)
		}
		return nil, fmt.Errorf("open: read config: %w", err)
	}
	if o.cfg == nil {
		cfg, err := config.Load(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("open: %w", err)
		}
		r.Config = cfg
	}
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	return r, nil
}

func findWorkTree(path, gitDir string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("open: abs path: %w", err)
	}
	cur := abs
	for {
		if info, err := os.Stat(filepath.Join(cur, gitDir)); err == nil && info.IsDir() {
			return cur, nil
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return "", fmt.Errorf("open: %w (or any parent up to %s)", ErrNotRepository, string(os.PathSeparator))
		}
		cur = parent
	}
}
