package logger

import (
	"log/slog"
	"runtime"
	"strconv"
	"time"
)

// Helpers return an empty slog.Attr for zero inputs where that makes sense, so
// callers can write log.Error("msg", logger.Error(err)) without nil checks.
// slog drops empty attributes.

// Group nests attrs under name.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Error logs err under "error". Nil errors produce an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Errors groups the non-nil errors under "errors", keyed by their position.
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

// Duration logs d under "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Elapsed logs the time since start under "elapsed".
func Elapsed(start time.Time) slog.Attr {
	return slog.Duration("elapsed", time.Since(start))
}

// Key logs an arbitrary value. Nil values produce an empty Attr.
func Key(key string, value any) slog.Attr {
	if value == nil {
		return slog.Attr{}
	}
	return slog.Any(key, value)
}

// Count logs an integer counter under key.
func Count(key string, n int) slog.Attr {
	return slog.Int(key, n)
}

// RequestID logs the request correlation id.
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// HTTP

func Method(method string) slog.Attr { return slog.String("method", method) }
func Path(path string) slog.Attr     { return slog.String("path", path) }
func StatusCode(code int) slog.Attr  { return slog.Int("status_code", code) }
func ClientIP(ip string) slog.Attr   { return slog.String("client_ip", ip) }
func Query(q string) slog.Attr       { return slog.String("query", q) }

// Classification

func Component(name string) slog.Attr { return slog.String("component", name) }
func Event(name string) slog.Attr     { return slog.String("event", name) }
func Action(action string) slog.Attr  { return slog.String("action", action) }
func Result(result string) slog.Attr  { return slog.String("result", result) }

// Content store

// Collection logs the content collection an operation touched.
func Collection(name string) slog.Attr {
	return slog.String("collection", name)
}

// Operation logs the coordinator operation (create, patch, delete, ...).
func Operation(op string) slog.Attr {
	return slog.String("operation", op)
}

// Locator logs the item locator (id, "index-N" or "N") an operation resolved.
func Locator(loc string) slog.Attr {
	if loc == "" {
		return slog.Attr{}
	}
	return slog.String("locator", loc)
}

// Store names the physical store ("file", "mongo", "redis", "memory").
func Store(name string) slog.Attr {
	return slog.String("store", name)
}

// Attempt logs a 1-based retry attempt number.
func Attempt(n int) slog.Attr {
	return slog.Int("attempt", n)
}

// Stack captures the current goroutine stack.
func Stack() slog.Attr {
	buf := make([]byte, 64<<10)
	buf = buf[:runtime.Stack(buf, false)]
	return slog.String("stack", string(buf))
}
