package catalog

import (
	"sort"
	"strings"
)

// DefaultEntry pairs a packaged default with its enumerated alternatives. When
// Options is non-empty its first element is the default's own text.
type DefaultEntry struct {
	Value   Value    `json:"value"`
	Options []string `json:"options,omitempty"`
}

// HasOptions reports whether the entry carries an enumerated option list.
func (e DefaultEntry) HasOptions() bool {
	return len(e.Options) > 0
}

// Allows reports whether v is one of the entry's options. Each option's text
// is typed with infer before comparison, so Number(6) matches "6.0". A nil
// infer compares text. Entries without options allow any value.
func (e DefaultEntry) Allows(v Value, infer func(string) Value) bool {
	if !e.HasOptions() {
		return true
	}
	for _, option := range e.Options {
		if infer == nil {
			if option == v.Text() {
				return true
			}
			continue
		}
		if infer(option).Equal(v) {
			return true
		}
	}
	return false
}

// Defaults is the Default Catalog: dotted key to packaged default.
type Defaults struct {
	entries map[string]DefaultEntry
}

// NewDefaults builds a Default Catalog from entries. The map is copied.
func NewDefaults(entries map[string]DefaultEntry) Defaults {
	cp := make(map[string]DefaultEntry, len(entries))
	for key, entry := range entries {
		entry.Options = append([]string(nil), entry.Options...)
		cp[key] = entry
	}
	return Defaults{entries: cp}
}

// Get returns the entry stored under key.
func (d Defaults) Get(key string) (DefaultEntry, bool) {
	entry, ok := d.entries[key]
	if ok {
		entry.Options = append([]string(nil), entry.Options...)
	}
	return entry, ok
}

// Len returns the number of keys.
func (d Defaults) Len() int { return len(d.entries) }

// Keys returns all keys in byte-wise order.
func (d Defaults) Keys() []string { return sortedKeys(d.entries) }

// Entries returns a copy of the catalog contents.
func (d Defaults) Entries() map[string]DefaultEntry {
	return NewDefaults(d.entries).entries
}

// Current is the Current Catalog: dotted key to live value.
type Current struct {
	values map[string]Value
}

// NewCurrent builds a Current Catalog from values. The map is copied.
func NewCurrent(values map[string]Value) Current {
	cp := make(map[string]Value, len(values))
	for key, value := range values {
		cp[key] = value
	}
	return Current{values: cp}
}

// Get returns the live value stored under key.
func (c Current) Get(key string) (Value, bool) {
	v, ok := c.values[key]
	return v, ok
}

// Len returns the number of keys.
func (c Current) Len() int { return len(c.values) }

// Keys returns all keys in byte-wise order.
func (c Current) Keys() []string { return sortedKeys(c.values) }

// Values returns a copy of the catalog contents.
func (c Current) Values() map[string]Value {
	return NewCurrent(c.values).values
}

// InSubsection reports whether key belongs to subsection, meaning its dotted
// prefix equals subsection. An empty subsection matches every key.
func InSubsection(key, subsection string) bool {
	if subsection == "" {
		return true
	}
	return strings.HasPrefix(key, subsection+".")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
