package httpapi

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// zlog is the structured logger used by the HTTP layer. Disabled until set.
var zlog = zerolog.Nop()

// SetLogger installs a structured logger used by the HTTP layer.
func SetLogger(l zerolog.Logger) { zlog = l.With().Str("component", "http").Logger() }

// LogLevel controls per-request logging behavior.
type LogLevel int

const (
	LevelOff LogLevel = iota
	LevelError
	LevelInfo
	LevelDebug
)

func parseLevel(s string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "off", "":
		return LevelOff
	case "error":
		return LevelError
	case "info":
		return LevelInfo
	case "debug":
		return LevelDebug
	default:
		return LevelInfo
	}
}

// defaultLogLevel applies when a request carries no override.
var defaultLogLevel = func() LogLevel {
	if v, ok := os.LookupEnv("ANIMEGEN_HTTP_LOG_LEVEL"); ok {
		return parseLevel(v)
	}
	return LevelInfo
}()

// SetRequestLogLevel sets the default per-request log level.
func SetRequestLogLevel(s string) { defaultLogLevel = parseLevel(s) }

func requestLogLevel(r *http.Request) LogLevel {
	if v := r.URL.Query().Get("log"); v != "" {
		if v == "1" {
			return LevelDebug
		}
		return parseLevel(v)
	}
	if v := r.Header.Get("X-Log-Level"); v != "" {
		return parseLevel(v)
	}
	return defaultLogLevel
}

// withRequestID tags ev with chi's request id when present.
func withRequestID(r *http.Request, ev *zerolog.Event) *zerolog.Event {
	if rid := middleware.GetReqID(r.Context()); rid != "" {
		ev = ev.Str("request_id", rid)
	}
	return ev
}

func logStart(r *http.Request, lvl LogLevel, op string, fields map[string]any) {
	if lvl < LevelInfo {
		return
	}
	withRequestID(r, zlog.Info()).Str("path", r.URL.Path).Fields(fields).Msg(op + " start")
}

// logEnd records the outcome of op. Failures are logged from LevelError up,
// successes from LevelInfo up.
func logEnd(r *http.Request, lvl LogLevel, op string, status int, start time.Time, msg string) {
	var ev *zerolog.Event
	switch {
	case status >= http.StatusBadRequest && lvl >= LevelError:
		ev = zlog.Error()
		if status < http.StatusInternalServerError {
			ev = zlog.Warn()
		}
		ev = ev.Str("err", msg)
	case lvl >= LevelInfo:
		ev = zlog.Info()
	default:
		return
	}
	withRequestID(r, ev).Int("status", status).Dur("dur", time.Since(start)).Msg(op + " end")
}
