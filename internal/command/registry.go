package command

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// LoadError records a command file that could not be loaded. Discovery
// collects these instead of aborting; one broken file must not take the
// whole registry down.
type LoadError struct {
	Path string
	Err  error
}

func (e LoadError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// Registry holds the discovered slash commands of a workspace, indexed
// by invocation key. Safe for concurrent use: Reload swaps the index
// under a lock so serve-mode reads never observe a partial load.
type Registry struct {
	dir string

	mu       sync.RWMutex
	commands map[string]*Command
	errs     []LoadError
}

// NewRegistry creates a registry over the given commands directory.
// Call Reload to populate it.
func NewRegistry(dir string) *Registry {
	return &Registry{dir: dir, commands: map[string]*Command{}}
}

// Dir returns the commands directory the registry watches.
func (r *Registry) Dir() string {
	return r.dir
}

// Reload walks the commands directory and rebuilds the index. A missing
// directory yields an empty registry; a workspace without commands is
// valid. Files that fail to parse are recorded as load errors; duplicate
// invocation keys keep the first file (sorted order) and record an error
// for the second.
func (r *Registry) Reload() error {
	commands := map[string]*Command{}
	var errs []LoadError

	var paths []string
	walkErr := filepath.WalkDir(r.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if walkErr != nil {
		if os.IsNotExist(walkErr) {
			r.swap(commands, nil)
			return nil
		}
		return fmt.Errorf("walking %s: %w", r.dir, walkErr)
	}
	sort.Strings(paths)

	for _, path := range paths {
		cmd, err := LoadFile(r.dir, path)
		if err != nil {
			errs = append(errs, LoadError{Path: path, Err: err})
			continue
		}
		if existing, ok := commands[cmd.Key()]; ok {
			errs = append(errs, LoadError{
				Path: path,
				Err:  fmt.Errorf("duplicate command %s (already defined in %s)", cmd.Invocation(), existing.Path),
			})
			continue
		}
		commands[cmd.Key()] = cmd
	}

	r.swap(commands, errs)
	return nil
}

func (r *Registry) swap(commands map[string]*Command, errs []LoadError) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commands = commands
	r.errs = errs
}

// LoadFile loads a single command file. The namespace is the file's
// directory path relative to the commands root, with nested directories
// joined by ":" (e.g. commands/prp/review/run.md → "prp:review").
func LoadFile(root, path string) (*Command, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading command file: %w", err)
	}

	rel, err := filepath.Rel(root, path)
	if err != nil {
		return nil, fmt.Errorf("relativizing %s: %w", path, err)
	}

	namespace := ""
	if dir := filepath.Dir(rel); dir != "." {
		namespace = strings.ReplaceAll(filepath.ToSlash(dir), "/", ":")
	}
	name := strings.TrimSuffix(filepath.Base(rel), ".md")

	meta, body, warnings, err := Parse(string(data))
	if err != nil {
		return nil, err
	}

	return &Command{
		Namespace: namespace,
		Name:      name,
		Meta:      meta,
		Body:      body,
		Path:      path,
		Warnings:  warnings,
	}, nil
}

// Lookup finds a command by invocation name. Both "/ns:cmd" and "ns:cmd"
// are accepted.
func (r *Registry) Lookup(invocation string) (*Command, bool) {
	key := strings.TrimPrefix(strings.TrimSpace(invocation), "/")
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, ok := r.commands[key]
	return cmd, ok
}

// List returns all commands sorted by invocation key.
func (r *Registry) List() []*Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		out = append(out, cmd)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key() < out[j].Key() })
	return out
}

// Namespaces returns the distinct namespaces in sorted order. Top-level
// commands contribute the empty namespace.
func (r *Registry) Namespaces() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := map[string]bool{}
	for _, cmd := range r.commands {
		seen[cmd.Namespace] = true
	}
	out := make([]string, 0, len(seen))
	for ns := range seen {
		out = append(out, ns)
	}
	sort.Strings(out)
	return out
}

// Errors returns the load errors from the most recent Reload.
func (r *Registry) Errors() []LoadError {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]LoadError(nil), r.errs...)
}

// Len returns the number of loaded commands.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.commands)
}
