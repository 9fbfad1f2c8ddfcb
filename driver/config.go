package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/Urethramancer/fmt68/format"
)

// ConfigName is the file looked up by FindConfig.
const ConfigName = ".fmt68.toml"

// FindConfig walks from startDir towards the filesystem root looking for
// ConfigName. It returns the path and whether one was found.
func FindConfig(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ConfigName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// LoadConfig decodes a TOML file over the default configuration.
// Unknown keys are rejected so that typos do not pass silently.
func LoadConfig(path string) (format.Config, error) {
	cfg := format.DefaultConfig()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return format.Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return format.Config{}, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return format.Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// DiscoverConfig loads the nearest ConfigName above startDir, or the defaults
// when there is none. The returned path is empty in the latter case.
func DiscoverConfig(startDir string) (format.Config, string, error) {
	path, ok, err := FindConfig(startDir)
	if err != nil {
		return format.Config{}, "", err
	}
	if !ok {
		return format.DefaultConfig(), "", nil
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return format.Config{}, "", err
	}
	return cfg, path, nil
}
