package comm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// componentKey names the subsystem a logger belongs to. In text mode
// it becomes a prefix: "[database] storage transaction ok=true".
const componentKey = "component"

type field struct {
	key   string
	value any
}

type slogHandler struct {
	level  slog.Leveler
	fields []field
	groups []string
}

var _ slog.Handler = (*slogHandler)(nil)

// NewSlogHandler returns a slog.Handler that emits logs through comm.
// The database package logs its transactions with it.
func NewSlogHandler(level slog.Leveler) slog.Handler {
	if level == nil {
		level = slog.LevelInfo
	}

	return &slogHandler{
		level: level,
	}
}

func (h *slogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *slogHandler) Handle(_ context.Context, r slog.Record) error {
	fields := append([]field{}, h.fields...)
	r.Attrs(func(attr slog.Attr) bool {
		fields = appendAttr(fields, h.groups, attr)
		return true
	})

	level := slogLevelToCommLevel(r.Level)

	if JsonEnabled() {
		obj := JsonMessage{
			"type":    "log",
			"time":    time.Now().UTC().Unix(),
			"level":   level,
			"message": r.Message,
		}
		for _, f := range fields {
			obj[f.key] = f.value
		}
		// a logger enabled at debug level emits even without --verbose
		sendJSON(obj)
		return nil
	}

	Logl(level, formatText(r.Message, fields))
	return nil
}

func formatText(message string, fields []field) string {
	var sb strings.Builder
	var rest []string
	for _, f := range fields {
		if f.key == componentKey {
			fmt.Fprintf(&sb, "[%v] ", f.value)
			continue
		}
		rest = append(rest, fmt.Sprintf("%s=%v", f.key, f.value))
	}
	sb.WriteString(message)
	if len(rest) > 0 {
		sb.WriteString(" ")
		sb.WriteString(strings.Join(rest, " "))
	}
	return sb.String()
}

func (h *slogHandler) clone() *slogHandler {
	return &slogHandler{
		level:  h.level,
		groups: append([]string{}, h.groups...),
		fields: append([]field{}, h.fields...),
	}
}

func (h *slogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	nh := h.clone()
	for _, attr := range attrs {
		nh.fields = appendAttr(nh.fields, nh.groups, attr)
	}
	return nh
}

func (h *slogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	nh := h.clone()
	nh.groups = append(nh.groups, name)
	return nh
}

// appendAttr flattens attr into fields, joining group names with dots.
func appendAttr(fields []field, groups []string, attr slog.Attr) []field {
	attr.Value = attr.Value.Resolve()
	if attr.Equal(slog.Attr{}) {
		return fields
	}

	if attr.Value.Kind() == slog.KindGroup {
		nextGroups := groups
		if attr.Key != "" {
			nextGroups = append(append([]string{}, groups...), attr.Key)
		}
		for _, groupAttr := range attr.Value.Group() {
			fields = appendAttr(fields, nextGroups, groupAttr)
		}
		return fields
	}

	if attr.Key == "" {
		return fields
	}

	key := strings.Join(append(append([]string{}, groups...), attr.Key), ".")
	return append(fields, field{key: key, value: slogValueToAny(attr.Value)})
}

func slogValueToAny(v slog.Value) any {
	switch v.Kind() {
	case slog.KindString:
		return v.String()
	case slog.KindBool:
		return v.Bool()
	case slog.KindInt64:
		return v.Int64()
	case slog.KindUint64:
		return v.Uint64()
	case slog.KindFloat64:
		return v.Float64()
	case slog.KindDuration:
		// "1.5ms", not nanoseconds
		return v.Duration().String()
	case slog.KindTime:
		return v.Time().UTC().Format(time.RFC3339)
	default:
		return v.Any()
	}
}

func slogLevelToCommLevel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "error"
	case level >= slog.LevelWarn:
		return "warning"
	case level >= slog.LevelInfo:
		return "info"
	default:
		return "debug"
	}
}
