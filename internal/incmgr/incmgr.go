// Package incmgr loads example files and named snippets referenced from
// documentation bodies.
package incmgr

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
)

// ErrNotFound is wrapped by IncludeError when a file or snippet is missing.
var ErrNotFound = errors.New("not found")

// IncludeError reports a failed include or snippet lookup.
type IncludeError struct {
	Path    string
	Snippet string
	Err     error
}

func (e *IncludeError) Error() string {
	if e.Snippet != "" {
		return fmt.Sprintf("include %s snippet %q: %v", e.Path, e.Snippet, e.Err)
	}
	return fmt.Sprintf("include %s: %v", e.Path, e.Err)
}

func (e *IncludeError) Unwrap() error { return e.Err }

// Snippet markers look like "//![name]" or "#![name]" on a line of their own.
var markerRe = regexp.MustCompile(`^\s*(?://|#)!\[([^\]]*)\]\s*$`)

// Manager resolves include paths against a list of base directories and
// caches file contents.
type Manager struct {
	baseDirs []string

	mu    sync.Mutex
	files map[string][]string
}

// New creates a Manager. With no base directories, paths resolve against the
// working directory.
func New(baseDirs ...string) *Manager {
	if len(baseDirs) == 0 {
		baseDirs = []string{"."}
	}
	return &Manager{
		baseDirs: baseDirs,
		files:    make(map[string][]string),
	}
}

// LoadFile returns the text of path with snippet marker lines removed.
func (m *Manager) LoadFile(path string) (string, error) {
	lines, err := m.lines(path)
	if err != nil {
		return "", err
	}
	var kept []string
	for _, l := range lines {
		if !markerRe.MatchString(l) {
			kept = append(kept, l)
		}
	}
	return strings.Join(kept, "\n"), nil
}

// LoadSnippet returns the lines between the two markers named name in path.
// Nested markers of other snippets are dropped from the result.
func (m *Manager) LoadSnippet(path, name string) (string, error) {
	lines, err := m.lines(path)
	if err != nil {
		return "", err
	}
	var (
		out    []string
		inside bool
		closed bool
	)
	for _, l := range lines {
		if mm := markerRe.FindStringSubmatch(l); mm != nil {
			if mm[1] == name {
				if inside {
					closed = true
					break
				}
				inside = true
			}
			continue
		}
		if inside {
			out = append(out, l)
		}
	}
	if !inside {
		return "", &IncludeError{Path: path, Snippet: name, Err: ErrNotFound}
	}
	if !closed {
		return "", &IncludeError{Path: path, Snippet: name, Err: errors.New("unterminated snippet")}
	}
	return strings.Join(out, "\n"), nil
}

func (m *Manager) lines(path string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if l, ok := m.files[path]; ok {
		return l, nil
	}
	data, err := m.read(path)
	if err != nil {
		return nil, err
	}
	text := strings.TrimRight(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	l := strings.Split(text, "\n")
	m.files[path] = l
	return l, nil
}

func (m *Manager) read(path string) ([]byte, error) {
	if filepath.IsAbs(path) {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, &IncludeError{Path: path, Err: wrapNotFound(err)}
		}
		return data, nil
	}
	for _, dir := range m.baseDirs {
		data, err := os.ReadFile(filepath.Join(dir, path))
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, &IncludeError{Path: path, Err: err}
		}
	}
	return nil, &IncludeError{Path: path, Err: ErrNotFound}
}

func wrapNotFound(err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return ErrNotFound
	}
	return err
}
