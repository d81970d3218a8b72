// Package config loads the launcher configuration file.
//
// The file only describes how to reach the renderer (executable, working
// directory, environment) and which lighting presets the UI offers. Render
// settings chosen by the user are never written back.
//
// Example config.toml:
//
//	renderer = "/opt/vulkanscene/VulkanScene"
//	dir      = "/opt/vulkanscene"
//	lighting = ["Noon", "Clouds", "Sunset", "Dusk", "Night"]
//	grace_period = "5s"
//
//	[env]
//	VK_LOADER_DEBUG = "error"
package config

import (
	"io"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/scenelaunch/pkg/errors"
	"github.com/matzehuels/scenelaunch/pkg/pipeline"
	"github.com/matzehuels/scenelaunch/pkg/settings"
)

const (
	appName  = "scenelaunch"
	fileName = "config.toml"
)

// Config is the decoded config file.
type Config struct {
	Renderer    string            `toml:"renderer"`
	Dir         string            `toml:"dir,omitempty"`
	Env         map[string]string `toml:"env,omitempty"`
	Lighting    []string          `toml:"lighting"`
	GracePeriod duration          `toml:"grace_period,omitzero"`
}

// duration decodes TOML strings such as "5s".
type duration struct {
	time.Duration
}

func (d duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Renderer: pipeline.DefaultRenderer(),
		Lighting: append([]string(nil), settings.LightingPresets...),
	}
}

// Dir returns the configuration directory.
// Respects XDG_CONFIG_HOME on Unix, APPDATA on Windows.
func Dir() (string, error) {
	if runtime.GOOS == "windows" {
		if base := os.Getenv("APPDATA"); base != "" {
			return filepath.Join(base, appName), nil
		}
	} else if base := os.Getenv("XDG_CONFIG_HOME"); base != "" {
		return filepath.Join(base, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// Path returns the default config file path.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}

// Load reads the config file at path. An empty path means the default
// location, where a missing file is not an error. Fields absent from the
// file keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := Path()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Default(), errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Default(), errors.New(errors.ErrCodeInvalidConfig, "unknown config key %q in %s", undecoded[0].String(), path)
	}

	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Encode writes c as TOML.
func (c Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// Validate checks the decoded values.
func (c Config) Validate() error {
	if err := errors.ValidateExecutablePath(c.Renderer); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "renderer")
	}
	for _, l := range c.Lighting {
		if err := errors.ValidateLightingLabel(l); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "lighting")
		}
	}
	if c.GracePeriod.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "grace_period cannot be negative")
	}
	return nil
}

// Options converts the config into pipeline launch options.
func (c Config) Options() pipeline.Options {
	return pipeline.Options{
		Renderer:    c.Renderer,
		Dir:         c.Dir,
		Env:         c.Env,
		GracePeriod: c.GracePeriod.Duration,
	}
}

// LightingPresets returns the presets to offer, falling back to the
// built-in list when the file sets none.
func (c Config) LightingPresets() []string {
	if len(c.Lighting) == 0 {
		return append([]string(nil), settings.LightingPresets...)
	}
	return append([]string(nil), c.Lighting...)
}
