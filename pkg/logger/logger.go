package logger

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Redacted replaces the value of any secret field that reaches the writer.
const Redacted = "[REDACTED]"

// secretKeys are field names that must never be written in clear. Matching
// is case-insensitive on the whole key.
var secretKeys = map[string]struct{}{
	"password":        {},
	"currentpassword": {},
	"newpassword":     {},
	"mnemonic":        {},
	"seed":            {},
	"seedphrase":      {},
	"privatekey":      {},
	"private_key":     {},
	"secret":          {},
	"token":           {},
	"accesstoken":     {},
	"refreshtoken":    {},
}

// New creates the daemon logger. level: trace, debug, info, warn, error.
// pretty switches to human-readable console output.
func New(level string, pretty bool) zerolog.Logger {
	var w io.Writer = os.Stdout
	if pretty {
		w = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}

	return zerolog.New(&redactWriter{next: w}).
		Level(parseLevel(level)).
		With().
		Timestamp().
		Str("service", "walletd").
		Caller().
		Logger()
}

// NewWithWriter creates a logger writing JSON lines to w.
func NewWithWriter(level string, w io.Writer) zerolog.Logger {
	return zerolog.New(&redactWriter{next: w}).
		Level(parseLevel(level)).
		With().
		Timestamp().
		Logger()
}

// Component returns a child logger tagged with the owning component.
func Component(log zerolog.Logger, name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

// ForMessage returns a child logger carrying the envelope identity of one
// routed message. origin is empty for extension surfaces.
func ForMessage(log zerolog.Logger, id, msgType, origin string) zerolog.Logger {
	ctx := log.With().Str("message_id", id).Str("message_type", msgType)
	if origin != "" {
		ctx = ctx.Str("origin", origin)
	}
	return ctx.Logger()
}

func parseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// redactWriter rewrites top-level secret fields of each JSON event before
// handing it on. Lines that are not JSON objects pass through untouched.
type redactWriter struct {
	next io.Writer
}

func (w *redactWriter) Write(p []byte) (int, error) {
	if !mayHoldSecret(p) {
		return w.next.Write(p)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(p, &fields); err != nil {
		return w.next.Write(p)
	}
	quoted, _ := json.Marshal(Redacted)
	for key := range fields {
		if isSecretKey(key) {
			fields[key] = quoted
		}
	}
	out, err := json.Marshal(fields)
	if err != nil {
		return w.next.Write(p)
	}
	if _, err := w.next.Write(append(out, '\n')); err != nil {
		return 0, err
	}
	return len(p), nil
}

func isSecretKey(key string) bool {
	_, ok := secretKeys[strings.ToLower(key)]
	return ok
}

// mayHoldSecret is a cheap scan so ordinary events skip the decode.
func mayHoldSecret(p []byte) bool {
	lower := bytes.ToLower(p)
	for key := range secretKeys {
		if bytes.Contains(lower, []byte(`"`+key+`"`)) {
			return true
		}
	}
	return false
}
