package prefstore

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// ErrMalformed reports a preference file that is not valid JSON.
var ErrMalformed = errors.New("malformed preference file")

// File persists preferences in a flat JSON object, one string value
// per name. Writes go through a temp file and rename so a crash never
// leaves a half-written document behind.
type File struct {
	mu   sync.Mutex
	path string
	data []byte
}

// Open reads the preference file at path. A missing file yields an
// empty store; the file is created on the first Set.
func Open(path string) (*File, error) {
	f := &File{path: path}
	if err := f.load(); err != nil {
		return nil, err
	}
	return f, nil
}

// Path returns the backing file path.
func (f *File) Path() string {
	return f.path
}

// Get returns the stored value and whether the name is present.
func (f *File) Get(name string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	res := gjson.GetBytes(f.data, escapePath(name))
	if !res.Exists() {
		return "", false
	}
	return res.String(), true
}

// Set stores a value under name and writes the file.
func (f *File) Set(name, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	out, err := sjson.SetBytes(f.data, escapePath(name), value)
	if err != nil {
		return fmt.Errorf("setting preference %q: %w", name, err)
	}
	f.data = out
	return f.save()
}

// Delete removes a name and writes the file. Deleting an absent name
// is not an error.
func (f *File) Delete(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	out, err := sjson.DeleteBytes(f.data, escapePath(name))
	if err != nil {
		return fmt.Errorf("deleting preference %q: %w", name, err)
	}
	f.data = out
	return f.save()
}

// Names returns every stored name in sorted order.
func (f *File) Names() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	var names []string
	gjson.ParseBytes(f.data).ForEach(func(key, _ gjson.Result) bool {
		names = append(names, key.String())
		return true
	})
	sort.Strings(names)
	return names
}

// Reload re-reads the file from disk, discarding the in-memory copy.
// Called by the change watcher when the file is edited externally.
func (f *File) Reload() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.load()
}

// load reads and validates the backing file. Callers hold f.mu except
// during construction.
func (f *File) load() error {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			f.data = []byte("{}")
			return nil
		}
		return fmt.Errorf("reading preferences %s: %w", f.path, err)
	}
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("%w: %s", ErrMalformed, f.path)
	}
	f.data = data
	return nil
}

// save writes the document through a temp file and rename.
func (f *File) save() error {
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, f.data, 0o644); err != nil {
		return fmt.Errorf("writing preferences: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("replacing preferences: %w", err)
	}
	return nil
}

// escapePath protects the characters gjson paths treat specially.
// Preference names routinely contain dots ("mytool.action.key") that
// must address one flat key, not a nested object.
func escapePath(name string) string {
	if !strings.ContainsAny(name, `.*?\`) {
		return name
	}
	var b strings.Builder
	b.Grow(len(name) + 4)
	for _, r := range name {
		switch r {
		case '.', '*', '?', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

var _ Store = (*File)(nil)
