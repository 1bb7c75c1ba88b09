package catalog

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// PathEntry is one top-level member of the search-path listing, kept as raw JSON.
type PathEntry struct {
	Key string `json:"key"`
	Raw string `json:"raw"`
}

// Strings returns the string payloads found in the entry: the value itself
// when it is a string, or the string members of an array or object.
func (e PathEntry) Strings() []string {
	res := gjson.Parse(e.Raw)
	if res.Type == gjson.String {
		return []string{res.Str}
	}
	var out []string
	res.ForEach(func(_, value gjson.Result) bool {
		if value.Type == gjson.String {
			out = append(out, value.Str)
		}
		return true
	})
	return out
}

// Paths is the Paths Catalog: the pw-config search-path listing passed through
// in document order without transformation.
type Paths struct {
	Raw     string      `json:"-"`
	Entries []PathEntry `json:"entries"`
}

// ParsePaths validates the listing and records its top-level members in order.
func ParsePaths(text string) (Paths, error) {
	obj, err := ParseObject(text)
	if err != nil {
		return Paths{}, fmt.Errorf("paths listing: %w", err)
	}
	paths := Paths{Raw: text}
	obj.ForEach(func(key, value gjson.Result) bool {
		paths.Entries = append(paths.Entries, PathEntry{Key: key.String(), Raw: value.Raw})
		return true
	})
	return paths, nil
}
