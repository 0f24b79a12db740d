// Package config loads server configuration for the bindery web service.
//
// Configuration is read from a TOML file (bindery.toml by default) and every
// field has a sensible default, so a missing file is not an error. The CLI
// flags of the serve command override file values.
package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/binderykit/bindery/pkg/errors"
	"github.com/binderykit/bindery/pkg/paper"
	"github.com/binderykit/bindery/pkg/pipeline"
	"github.com/binderykit/bindery/pkg/store"
)

// DefaultPath is where Load looks when no config file is given.
const DefaultPath = "bindery.toml"

// Config holds the web service configuration.
type Config struct {
	// Listen is the HTTP listen address.
	Listen string `toml:"listen"`

	// ArtifactDir is where generated booklet files are stored.
	ArtifactDir string `toml:"artifact_dir"`

	// Retention is how long artifacts are kept before the sweep removes
	// them, e.g. "24h".
	Retention duration `toml:"retention"`

	// RedisAddr enables the Redis-backed recent-artifact index when set,
	// e.g. "localhost:6379". Empty disables the index.
	RedisAddr string `toml:"redis_addr"`

	// MaxUploadBytes caps the size of uploaded PDFs.
	MaxUploadBytes int64 `toml:"max_upload_bytes"`

	// Defaults seeds the web form with imposition defaults.
	Defaults Defaults `toml:"defaults"`
}

// Defaults holds the imposition defaults offered by the web form.
type Defaults struct {
	Sheets   int    `toml:"sheets"`
	Paper    string `toml:"paper"`
	Scaling  string `toml:"scaling"`
	Position string `toml:"position"`
}

// duration wraps time.Duration with TOML string decoding ("24h", "90m").
type duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler for TOML decoding.
func (d *duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Listen:         ":8080",
		ArtifactDir:    "generated",
		Retention:      duration{store.DefaultRetention},
		MaxUploadBytes: 64 << 20,
		Defaults: Defaults{
			Sheets:   pipeline.DefaultSheets,
			Paper:    paper.Default,
			Scaling:  string(pipeline.DefaultScaling),
			Position: string(pipeline.DefaultPosition),
		},
	}
}

// Load reads the config file at path on top of the defaults. A missing file
// at the default path is fine; a missing file at an explicit path is an
// error, as is malformed TOML.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if explicit {
			return cfg, errors.Wrap(errors.ErrCodeNotFound, err, "config file %s", path)
		}
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeIO, err, "reading config file %s", path)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "parsing config file %s", path)
	}
	if cfg.Retention.Duration <= 0 {
		cfg.Retention = duration{store.DefaultRetention}
	}
	return cfg, nil
}

// RetentionWindow returns the artifact retention as a plain duration.
func (c Config) RetentionWindow() time.Duration {
	return c.Retention.Duration
}
