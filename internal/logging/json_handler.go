package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

// rawTextLimit caps how much non-JSON pw-config output one JSON record carries.
const rawTextLimit = 4096

func newJSONHandler(w io.Writer, lvl *slog.LevelVar, addSource bool) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       lvl,
		AddSource:   addSource,
		ReplaceAttr: replaceJSONAttr,
	})
}

func replaceJSONAttr(groups []string, attr slog.Attr) slog.Attr {
	if len(groups) > 0 {
		return attr
	}
	switch attr.Key {
	case slog.TimeKey:
		attr.Key = "ts"
		if attr.Value.Kind() == slog.KindTime {
			attr.Value = slog.StringValue(attr.Value.Time().UTC().Format(time.RFC3339Nano))
		}
	case slog.LevelKey:
		attr.Value = slog.StringValue(strings.ToLower(attr.Value.String()))
	case slog.SourceKey:
		if src, ok := attr.Value.Any().(*slog.Source); ok && src != nil {
			attr.Value = slog.StringValue(fmt.Sprintf("%s:%d", filepath.Base(src.File), src.Line))
		}
	case FieldRaw:
		attr.Value = rawValue(attr.Value)
	}
	return attr
}

// rawValue embeds JSON dumps as nested objects and clips dialect text.
func rawValue(v slog.Value) slog.Value {
	v = v.Resolve()
	if v.Kind() != slog.KindString {
		return v
	}
	text := strings.TrimSpace(v.String())
	if text != "" && gjson.Valid(text) {
		return slog.AnyValue(json.RawMessage(pretty.Ugly([]byte(text))))
	}
	if len(text) > rawTextLimit {
		return slog.StringValue(fmt.Sprintf("%s... (%d bytes)", text[:rawTextLimit], len(text)))
	}
	return slog.StringValue(text)
}
