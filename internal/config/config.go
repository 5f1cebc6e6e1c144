// Package config holds the process-wide overrides for parsing and rendering.
//
// Values come from the environment (DTM_FORMATS, DTM_STR) and, optionally,
// from a config file loaded with ReadFile. The environment wins.
package config

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

const (
	// KeyFormats lists extra parse formats tried before the built-in ones.
	KeyFormats = "formats"
	// KeyStr is the format used when a timestamp is rendered as a string.
	KeyStr = "str"

	envPrefix = "DTM"
)

// Settings is a snapshot of the configured overrides.
type Settings struct {
	Formats []string
	Str     string
}

var (
	mu sync.RWMutex
	v  = newViper()
)

func newViper() *viper.Viper {
	nv := viper.New()
	nv.SetEnvPrefix(envPrefix)
	nv.AutomaticEnv()
	nv.SetDefault(KeyFormats, "")
	nv.SetDefault(KeyStr, "")
	return nv
}

// Current reads the overrides. It is called on every relevant operation so
// that environment changes are seen without invalidation.
func Current() Settings {
	mu.RLock()
	defer mu.RUnlock()
	return Settings{
		Formats: splitFormats(v.Get(KeyFormats)),
		Str:     cast.ToString(v.Get(KeyStr)),
	}
}

// ReadFile merges the config file at path into the current settings.
func ReadFile(path string) error {
	mu.Lock()
	defer mu.Unlock()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return errors.Wrapf(err, "read config %s", path)
	}
	slog.Debug("config loaded", slog.String("path", path))
	return nil
}

// Reset drops any loaded config file and returns to environment-only values.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	v = newViper()
}

// splitFormats accepts either a list or a semicolon-separated string.
func splitFormats(raw any) []string {
	if s, ok := raw.(string); ok {
		return splitString(s)
	}
	list, err := cast.ToStringSliceE(raw)
	if err != nil {
		slog.Debug("ignoring malformed formats setting", slog.String("error", err.Error()))
		return nil
	}
	var out []string
	for _, item := range list {
		out = append(out, splitString(item)...)
	}
	return out
}

func splitString(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ";") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
