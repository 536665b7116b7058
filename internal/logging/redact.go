package logging

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const redacted = "[REDACTED]"

// redactingCore rewrites fields before they reach the wrapped core:
// credential-like keys are replaced, identifier keys are hashed.
type redactingCore struct {
	zapcore.Core
	salt string
}

func newRedactingCore(c zapcore.Core, salt string) zapcore.Core {
	return &redactingCore{Core: c, salt: salt}
}

func (c *redactingCore) With(fields []zapcore.Field) zapcore.Core {
	return &redactingCore{Core: c.Core.With(c.scrub(fields)), salt: c.salt}
}

func (c *redactingCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *redactingCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	return c.Core.Write(ent, c.scrub(fields))
}

func (c *redactingCore) scrub(fields []zapcore.Field) []zapcore.Field {
	out := make([]zapcore.Field, len(fields))
	for i, f := range fields {
		out[i] = c.scrubField(f)
	}
	return out
}

func (c *redactingCore) scrubField(f zapcore.Field) zapcore.Field {
	key := strings.ToLower(f.Key)
	switch {
	case isSecretKey(key):
		return zap.String(f.Key, redacted)
	case isIdentifierKey(key):
		if f.Type == zapcore.StringType {
			return zap.String(f.Key, hashValue(c.salt, f.String))
		}
	case f.Type == zapcore.StringType && looksLikeCredential(f.String):
		return zap.String(f.Key, redacted)
	}
	return f
}

func isSecretKey(key string) bool {
	for _, s := range []string{"token", "authorization", "password", "secret", "cookie", "api_key", "apikey"} {
		if strings.Contains(key, s) {
			return true
		}
	}
	return false
}

func isIdentifierKey(key string) bool {
	return strings.Contains(key, "session_id") || strings.Contains(key, "user_id")
}

// looksLikeCredential matches bearer headers, JWTs and common vendor key
// prefixes.
func looksLikeCredential(s string) bool {
	if strings.HasPrefix(s, "Bearer ") || strings.HasPrefix(s, "sk-") || strings.HasPrefix(s, "AIza") {
		return true
	}
	parts := strings.Split(s, ".")
	return len(parts) == 3 && len(parts[0]) > 10 && len(parts[1]) > 10 && !strings.ContainsAny(s, " /")
}

func hashValue(salt, v string) string {
	if v == "" {
		return ""
	}
	h := sha256.New()
	h.Write([]byte(salt))
	h.Write([]byte(v))
	return "hash:" + hex.EncodeToString(h.Sum(nil))[:12]
}
