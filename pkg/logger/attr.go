package logger

import (
	"log/slog"
	"sort"
	"strconv"
)

// Group creates a group attribute.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Errors groups the non-nil errors under "errors".
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error records err under "error". Nil errors yield an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

func Route(name string) slog.Attr {
	return slog.String("route", name)
}

// Payload records the handler type name.
func Payload(typ string) slog.Attr {
	return slog.String("payload", typ)
}

func PayloadID(id string) slog.Attr {
	return slog.String("payload_id", id)
}

func Module(path string) slog.Attr {
	return slog.String("module", path)
}

func Method(name string) slog.Attr {
	return slog.String("method", name)
}

// Code records a result code under "code".
func Code(code string) slog.Attr {
	return slog.String("code", code)
}

// Details groups result details under "details" with sorted keys.
func Details(details map[string]any) slog.Attr {
	if len(details) == 0 {
		return slog.Attr{}
	}
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	as := make([]slog.Attr, 0, len(keys))
	for _, k := range keys {
		as = append(as, slog.Any(k, details[k]))
	}
	return slog.Attr{Key: "details", Value: slog.GroupValue(as...)}
}
