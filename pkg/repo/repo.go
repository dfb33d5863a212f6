package repo

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/odvcencio/gitcore/pkg/config"
	"github.com/odvcencio/gitcore/pkg/fsutil"
	"github.com/odvcencio/gitcore/pkg/object"
	"github.com/odvcencio/gitcore/pkg/storage"
)

// DefaultGitDir is the metadata directory name used when none is given.
const DefaultGitDir = ".git"

var (
	ErrNotRepository            = errors.New("not a git repository")
	ErrConfigMissing            = errors.New("repository config missing")
	ErrUnsupportedFormatVersion = errors.New("unsupported repositoryformatversion")
	ErrAlreadyExists            = errors.New("repository already exists")
)

// Repository is a work tree, its metadata directory, and the object store
// inside it.
//
// Objects read or written through a Repository are cached by hash for its
// lifetime, so every reader of a hash shares one instance. A Repository is
// not safe for concurrent use; callers sharing one across goroutines must
// serialize access.
type Repository struct {
	WorkTree string         // absolute work tree path
	GitDir   string         // absolute metadata directory path
	Config   *config.Config // repository configuration

	fs         billy.Filesystem // rooted at WorkTree
	gitDirName string
	logger     *slog.Logger
	exists     bool

	backendKind string
	backend     storage.Backend
	level       int
	store       *object.Store

	objects map[object.Hash]object.Object
	commits map[object.Hash]*object.Commit
	trees   map[object.Hash]*object.Tree
	tags    map[object.Hash]*object.Tag
	blobs   map[object.Hash]*object.Blob
}

type options struct {
	gitDir  string
	cfg     *config.Config
	fs      billy.Filesystem
	logger  *slog.Logger
	backend string
	storage storage.Backend
	level   int
}

// Option configures a Repository.
type Option func(*options)

// WithGitDir sets the metadata directory name, relative to the work tree.
func WithGitDir(name string) Option {
	return func(o *options) { o.gitDir = name }
}

// WithConfig supplies the repository configuration instead of the defaults.
func WithConfig(cfg *config.Config) Option {
	return func(o *options) { o.cfg = cfg }
}

// WithFilesystem roots the repository at fs instead of the OS directory.
func WithFilesystem(fs billy.Filesystem) Option {
	return func(o *options) { o.fs = fs }
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithBackend selects the object backend kind (config.BackendLoose or
// config.BackendPebble).
func WithBackend(kind string) Option {
	return func(o *options) { o.backend = kind }
}

// WithStorage uses an already opened backend. The Repository closes it.
func WithStorage(b storage.Backend) Option {
	return func(o *options) { o.storage = b }
}

// WithCompressionLevel sets the zlib level for written objects.
func WithCompressionLevel(level int) Option {
	return func(o *options) { o.level = level }
}

// New constructs a Repository for workTree. The only I/O it performs is
// checking whether the metadata directory already exists.
func New(workTree string, opts ...Option) (*Repository, error) {
	o := options{
		gitDir:  DefaultGitDir,
		backend: config.BackendLoose,
		level:   object.DefaultCompressionLevel,
	}
	for _, opt := range opts {
		opt(&o)
	}

	abs, err := filepath.Abs(workTree)
	if err != nil {
		return nil, fmt.Errorf("repository: abs path: %w", err)
	}
	fs := o.fs
	if fs == nil {
		fs = osfs.New(abs)
	}
	cfg := o.cfg
	if cfg == nil {
		cfg = config.Default()
	}
	logger := o.logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	r := &Repository{
		WorkTree:    abs,
		GitDir:      filepath.Join(abs, o.gitDir),
		Config:      cfg,
		fs:          fs,
		gitDirName:  o.gitDir,
		logger:      logger,
		exists:      fsutil.IsDir(fs, o.gitDir),
		backendKind: o.backend,
		backend:     o.storage,
		level:       o.level,
		objects:     make(map[object.Hash]object.Object),
		commits:     make(map[object.Hash]*object.Commit),
		trees:       make(map[object.Hash]*object.Tree),
		tags:        make(map[object.Hash]*object.Tag),
		blobs:       make(map[object.Hash]*object.Blob),
	}
	return r, nil
}

// Exists reports whether the metadata directory was present at
// construction (or has since been created by Init).
func (r *Repository) Exists() bool { return r.exists }

// Filesystem returns the filesystem rooted at the work tree.
func (r *Repository) Filesystem() billy.Filesystem { return r.fs }

// Validate checks that the metadata directory and its config file exist
// and that the repository format is one this package understands.
func (r *Repository) Validate() error {
	if !fsutil.IsDir(r.fs, r.gitDirName) {
		r.exists = false
		return fmt.Errorf("%w: %s", ErrNotRepository, r.WorkTree)
	}
	r.exists = true
	if !fsutil.Exists(r.fs, r.fs.Join(r.gitDirName, "config")) {
		return fmt.Errorf("%w: %s", ErrConfigMissing, r.GitDir)
	}
	return r.checkFormatVersion()
}

// checkFormatVersion fails closed on anything but version 0. An absent key
// counts as 0, as it does for git.
func (r *Repository) checkFormatVersion() error {
	v, err := r.Config.GetInt(config.FormatVersionKey, 0)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnsupportedFormatVersion, err)
	}
	if v != 0 {
		return fmt.Errorf("%w %d", ErrUnsupportedFormatVersion, v)
	}
	return nil
}

// Store returns the object store, opening the backend on first use.
func (r *Repository) Store() (*object.Store, error) {
	if r.store != nil {
		return r.store, nil
	}
	if r.backend == nil {
		b, err := r.openBackend()
		if err != nil {
			return nil, err
		}
		r.backend = b
	}
	r.store = object.NewStore(r.backend, r.level)
	return r.store, nil
}

func (r *Repository) openBackend() (storage.Backend, error) {
	switch r.backendKind {
	case config.BackendLoose:
		objFS, err := r.fs.Chroot(r.fs.Join(r.gitDirName, "objects"))
		if err != nil {
			return nil, fmt.Errorf("repository: objects dir: %w", err)
		}
		return storage.NewLoose(objFS), nil
	case config.BackendPebble:
		return storage.OpenPebble(filepath.Join(r.GitDir, "objects", "pebble"), nil)
	default:
		return nil, fmt.Errorf("repository: unknown backend %q", r.backendKind)
	}
}

// Close releases the object backend.
func (r *Repository) Close() error {
	if r.backend == nil {
		return nil
	}
	err := r.backend.Close()
	r.backend = nil
	r.store = nil
	return err
}
