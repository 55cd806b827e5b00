// Package store keeps generated workbooks in a directory under stable names.
package store

import (
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var (
	ErrInvalidName = errors.New("invalid file name")
	ErrNotFound    = errors.New("file not found")
)

var validName = regexp.MustCompile(`^[A-Za-z0-9_-][A-Za-z0-9._-]*$`)

// Dir is a directory-backed store. Writes are serialized so concurrent
// uploads never interleave on the same name.
type Dir struct {
	root string
	mu   sync.RWMutex
}

// New returns a store rooted at dir, creating it if needed. An empty dir
// means os.TempDir().
func New(dir string) (*Dir, error) {
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "create store dir %s", dir)
	}
	return &Dir{root: dir}, nil
}

// Root returns the store directory.
func (d *Dir) Root() string { return d.root }

// ValidName reports whether name can be used as a store key.
func ValidName(name string) bool {
	return len(name) <= 255 && validName.MatchString(name)
}

// SafeName replaces every character not allowed in a name with '_'.
func SafeName(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// Path returns the filesystem path for name.
func (d *Dir) Path(name string) (string, error) {
	if !ValidName(name) {
		return "", errors.Wrapf(ErrInvalidName, "%q", name)
	}
	return filepath.Join(d.root, name), nil
}

// Put stores the output of write under name. The file is written to a
// temporary file first and renamed into place.
func (d *Dir) Put(name string, write func(io.Writer) error) error {
	path, err := d.Path(name)
	if err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	tmp, err := os.CreateTemp(d.root, "."+name+".*")
	if err != nil {
		return errors.Wrap(err, "create temp file")
	}
	defer os.Remove(tmp.Name())

	if err := write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "close temp file")
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrapf(err, "rename into %s", name)
	}
	log.WithFields(log.Fields{"name": name, "dir": d.root}).Debug("Stored file.")
	return nil
}

// PutReader copies r into name.
func (d *Dir) PutReader(name string, r io.Reader) error {
	return d.Put(name, func(w io.Writer) error {
		_, err := io.Copy(w, r)
		return errors.Wrap(err, "copy")
	})
}

// Open opens name for reading and returns its size. The caller closes the
// file.
func (d *Dir) Open(name string) (*os.File, int64, error) {
	path, err := d.Path(name)
	if err != nil {
		return nil, 0, err
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, 0, errors.Wrapf(ErrNotFound, "%q", name)
	}
	if err != nil {
		return nil, 0, errors.Wrapf(err, "open %s", name)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, errors.Wrapf(err, "stat %s", name)
	}
	return f, info.Size(), nil
}

// Exists reports whether name is present.
func (d *Dir) Exists(name string) bool {
	path, err := d.Path(name)
	if err != nil {
		return false
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
