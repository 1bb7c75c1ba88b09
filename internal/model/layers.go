package model

import (
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"pwtune/internal/catalog"
)

// layer is one source file's contribution to the live dump.
type layer struct {
	path   string
	values gjson.Result
}

// flattenCurrent merges the live dump into one key/value map. Top-level
// scalars are direct entries and have the lowest precedence. Each top-level
// object is a source-file layer; layers are applied in layerLess order so a
// later layer overwrites an earlier one key for key. Non-scalar values are
// returned through skipped.
func flattenCurrent(obj gjson.Result) (map[string]catalog.Value, []string) {
	values := make(map[string]catalog.Value)
	var layers []layer
	var skipped []string

	obj.ForEach(func(key, value gjson.Result) bool {
		if value.IsObject() {
			layers = append(layers, layer{path: key.String(), values: value})
			return true
		}
		if v, ok := catalog.FromResult(value); ok {
			values[key.String()] = v
		} else {
			skipped = append(skipped, key.String())
		}
		return true
	})

	sort.SliceStable(layers, func(i, j int) bool {
		return layerLess(layers[i].path, layers[j].path)
	})
	for _, l := range layers {
		l.values.ForEach(func(key, value gjson.Result) bool {
			if v, ok := catalog.FromResult(value); ok {
				values[key.String()] = v
			} else {
				skipped = append(skipped, l.path+":"+key.String())
			}
			return true
		})
	}
	return values, skipped
}

// layerLess orders layers the way PipeWire loads them. pw-config prefixes
// each layer with its numeric load index ("10-/etc/..."), which decides first.
// Within one index, files without a numeric N- name prefix come before
// drop-ins ordered by that prefix, and the path breaks any remaining tie.
func layerLess(a, b string) bool {
	ia, pa := loadIndex(a)
	ib, pb := loadIndex(b)
	if ia != ib {
		return ia < ib
	}
	ra, rb := layerRank(pa), layerRank(pb)
	if ra != rb {
		return ra < rb
	}
	return pa < pb
}

// loadIndex splits a leading "N-" load index off a layer key. Keys that start
// with a path have index -1.
func loadIndex(key string) (int, string) {
	digits, rest, found := strings.Cut(key, "-")
	if !found || !strings.HasPrefix(rest, "/") {
		return -1, key
	}
	n, ok := numericPrefix(digits)
	if !ok {
		return -1, key
	}
	return n, rest
}

func layerRank(path string) int {
	digits, _, found := strings.Cut(filepath.Base(path), "-")
	if !found {
		return -1
	}
	n, ok := numericPrefix(digits)
	if !ok {
		return -1
	}
	return n
}

func numericPrefix(digits string) (int, bool) {
	if digits == "" {
		return 0, false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return n, true
}
