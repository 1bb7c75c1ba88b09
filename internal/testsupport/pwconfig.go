package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// Fixture holds the canned output of the three pw-config queries.
type Fixture struct {
	Current  string
	Defaults string
	Paths    string
	// FailQuery makes the stub exit non-zero for "current", "defaults" or "paths".
	FailQuery string
}

// SampleFixture mirrors a pipewire-pulse.conf stream.properties dump.
func SampleFixture() Fixture {
	return Fixture{
		Current: `{
  "/usr/share/pipewire/pipewire-pulse.conf": {
    "node.latency": "1024/48000",
    "resample.quality": 4,
    "channelmix.normalize": false,
    "channelmix.upmix": true,
    "channelmix.upmix-method": "psd"
  },
  "/etc/pipewire/pipewire-pulse.conf.d/10-quality.conf": {
    "resample.quality": 10
  }
}`,
		Defaults: `{
  "stream.properties": {
    #node.latency = 1024/48000
    #node.autoconnect = true
    #resample.quality = 4
    #channelmix.normalize = false
    #channelmix.upmix = true
    #channelmix.upmix-method = psd # none, simple
    #channelmix.lfe-cutoff = 150
  }
}`,
		Paths: `{"config.path":"/usr/share/pipewire/pipewire-pulse.conf","override.paths":["/etc/pipewire/pipewire-pulse.conf.d/10-quality.conf"]}`,
	}
}

// WriteStubPWConfig writes a pw-config stand-in into dir and returns its
// path. The stub inspects its arguments to decide which query it is serving
// and prints the matching fixture text. Every invocation's arguments are
// appended to args.log beside the stub.
func WriteStubPWConfig(t testing.TB, dir string, fixture Fixture) string {
	t.Helper()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir stub dir: %v", err)
	}
	outputs := map[string]string{
		"current":  fixture.Current,
		"defaults": fixture.Defaults,
		"paths":    fixture.Paths,
	}
	for name, text := range outputs {
		if err := os.WriteFile(filepath.Join(dir, name+".out"), []byte(text), 0o644); err != nil {
			t.Fatalf("write %s fixture: %v", name, err)
		}
	}

	script := fmt.Sprintf(`#!/bin/sh
dir=%q
echo "$@" >> "$dir/args.log"
query=current
for arg in "$@"; do
  case "$arg" in
    paths) query=paths ;;
    -p) query=defaults ;;
  esac
done
if [ "$query" = %q ]; then
  echo "stub failure for $query" >&2
  exit 3
fi
cat "$dir/$query.out"
`, dir, fixture.FailQuery)

	path := filepath.Join(dir, "pw-config")
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub pw-config: %v", err)
	}
	return path
}

// StubArgs returns the argument lines recorded by a stub written to dir.
func StubArgs(t testing.TB, dir string) string {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(dir, "args.log"))
	if err != nil {
		t.Fatalf("read stub args: %v", err)
	}
	return string(data)
}
