// Package config reads service configuration from environment variables
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"commentedit/internal/platform/logger"
)

// Conf is a namespaced view over environment variables such as "COMMENTS_" or "CORE_API_"
type Conf struct{ prefix string }

// New returns the root Conf with no prefix
func New() Conf { return Conf{} }

// Prefix returns a child Conf, prefixes nest: New().Prefix("A_").Prefix("B_") reads A_B_*
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

// Name returns the fully-qualified env var name for key
func (c Conf) Name(key string) string { return c.prefix + key }

func (c Conf) lookup(key string) string {
	return strings.TrimSpace(os.Getenv(c.Name(key)))
}

func (c Conf) invalid(key, value, def, kind string) {
	logger.Get().Warn().
		Str("key", c.Name(key)).
		Str("value", value).
		Str("default", def).
		Msgf("invalid %s; using default", kind)
}

// MustString panics when key is missing or blank
func (c Conf) MustString(key string) string {
	v := c.lookup(key)
	if v == "" {
		logger.Get().Panic().Str("key", c.Name(key)).Msg("missing required env")
	}
	return v
}

// MustInt64 panics when key is missing or not an integer
func (c Conf) MustInt64(key string) int64 {
	s := c.MustString(key)
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		logger.Get().Panic().Str("key", c.Name(key)).Str("value", s).Msg("invalid int value")
	}
	return v
}

// Require panics unless every key is set
func (c Conf) Require(keys ...string) {
	for _, k := range keys {
		_ = c.MustString(k)
	}
}

// MayString returns the value or def
func (c Conf) MayString(key, def string) string {
	if v := c.lookup(key); v != "" {
		return v
	}
	return def
}

// MayInt returns the value or def, an unparsable value logs and yields def
func (c Conf) MayInt(key string, def int) int {
	s := c.lookup(key)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		c.invalid(key, s, strconv.Itoa(def), "int")
		return def
	}
	return v
}

// MayInt64 is MayInt for identifiers that need 64 bits
func (c Conf) MayInt64(key string, def int64) int64 {
	s := c.lookup(key)
	if s == "" {
		return def
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		c.invalid(key, s, strconv.FormatInt(def, 10), "int64")
		return def
	}
	return v
}

// MayBool returns the value or def
func (c Conf) MayBool(key string, def bool) bool {
	s := c.lookup(key)
	if s == "" {
		return def
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		c.invalid(key, s, strconv.FormatBool(def), "bool")
		return def
	}
	return v
}

// MayDuration returns the value or def, values use time.ParseDuration syntax (250ms, 2s)
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	s := c.lookup(key)
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		c.invalid(key, s, def.String(), "duration")
		return def
	}
	return d
}

// MayCSV splits a comma separated value, blanks are dropped; def when nothing remains
func (c Conf) MayCSV(key string, def []string) []string {
	s := c.lookup(key)
	if s == "" {
		return def
	}
	out := make([]string, 0, strings.Count(s, ",")+1)
	for _, p := range strings.Split(s, ",") {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// MayEnum returns the lower-cased value when it is one of allowed, def when unset.
// Anything else panics: a typo in an enum is a deployment error.
func (c Conf) MayEnum(key, def string, allowed ...string) string {
	v := c.lookup(key)
	if v == "" {
		return def
	}
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return strings.ToLower(a)
		}
	}
	logger.Get().Panic().Str("key", c.Name(key)).Str("value", v).Strs("allowed", allowed).Msg("invalid enum value")
	return ""
}
