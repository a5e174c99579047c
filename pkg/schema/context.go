package schema

import (
	"os"
	"sort"
	"strings"
)

// Snapshot is a flat view of environment variables.
type Snapshot map[string]string

// Environ captures the live process environment. It is meant to be called at
// the call site and passed to Parse; the engine itself never reads the process
// environment.
func Environ() Snapshot {
	return SnapshotFromPairs(os.Environ())
}

// SnapshotFromPairs builds a Snapshot from KEY=VALUE strings as returned by
// os.Environ. Entries without '=' are skipped.
func SnapshotFromPairs(pairs []string) Snapshot {
	s := make(Snapshot, len(pairs))
	for _, p := range pairs {
		key, value, ok := strings.Cut(p, "=")
		if !ok || key == "" {
			continue
		}
		s[key] = value
	}
	return s
}

type entry struct {
	value string
	used  bool
}

// Context holds the mutable state of a single parse call: the snapshot with a
// used flag per key and the logger. It is never shared between calls.
type Context struct {
	entries map[string]*entry
	logger  Logger
}

// NewContext returns a Context over a copy of snapshot. A nil logger discards
// all lines.
func NewContext(snapshot Snapshot, logger Logger) *Context {
	if logger == nil {
		logger = Discard
	}
	entries := make(map[string]*entry, len(snapshot))
	for k, v := range snapshot {
		entries[k] = &entry{value: v}
	}
	return &Context{entries: entries, logger: logger}
}

// Logger returns the logger of the call.
func (c *Context) Logger() Logger { return c.logger }

// lookup returns the value for key and marks it as used.
func (c *Context) lookup(key string) (string, bool) {
	e, ok := c.entries[key]
	if !ok {
		return "", false
	}
	e.used = true
	return e.value, true
}

// Unused returns, sorted, the keys starting with one of prefixes that were never
// looked up and are not listed in ignore.
func (c *Context) Unused(prefixes, ignore []string) []string {
	if len(prefixes) == 0 {
		return nil
	}
	ignored := make(map[string]bool, len(ignore))
	for _, k := range ignore {
		ignored[k] = true
	}

	var unused []string
	for key, e := range c.entries {
		if e.used || ignored[key] || !hasAnyPrefix(key, prefixes) {
			continue
		}
		unused = append(unused, key)
	}
	sort.Strings(unused)
	return unused
}

func hasAnyPrefix(key string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(key, p) {
			return true
		}
	}
	return false
}
