// Package config loads optional YAML overrides for termrec's runtime
// defaults: accuracy tolerance, the emulator binary and tmux session name,
// the PTY read buffer size, and the benchmark store path.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DurationField accepts either a bare integer (microseconds) or a Go
// duration string ("1ms") in YAML, matching the permissive scalar handling
// the egg sandbox config uses for its own string|list fields.
type DurationField time.Duration

func (d *DurationField) UnmarshalYAML(value *yaml.Node) error {
	var asInt int64
	if err := value.Decode(&asInt); err == nil {
		*d = DurationField(time.Duration(asInt) * time.Microsecond)
		return nil
	}
	var asString string
	if err := value.Decode(&asString); err != nil {
		return fmt.Errorf("duration field must be an integer (microseconds) or a duration string: %w", err)
	}
	parsed, err := time.ParseDuration(asString)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", asString, err)
	}
	*d = DurationField(parsed)
	return nil
}

// Config holds the tunables shared by the six subcommands.
type Config struct {
	// MaxAccuracyDelta bounds how far a real-time replay may fall behind
	// schedule before play aborts (default 1ms).
	MaxAccuracyDelta DurationField `yaml:"max_accuracy_delta"`

	// EmulatorBin is the terminal emulator binary the frame materializer
	// drives (default "tmux").
	EmulatorBin string `yaml:"emulator_bin"`

	// TmuxSessionName names the detached tmux session transform creates.
	TmuxSessionName string `yaml:"tmux_session_name"`

	// PTYReadBufferSize is the size of the recorder's reusable PTY read
	// buffer, in bytes (default 4MiB, matching mosh's maximum terminal
	// scrollback assumption the original recorder inherits).
	PTYReadBufferSize int `yaml:"pty_read_buffer_size"`

	// BenchstorePath is the SQLite database path the benchmark subcommand
	// appends sample rows to.
	BenchstorePath string `yaml:"benchstore_path"`
}

// Default returns the built-in defaults used when no config file is given.
func Default() Config {
	return Config{
		MaxAccuracyDelta:  DurationField(1000 * time.Microsecond),
		EmulatorBin:       "tmux",
		TmuxSessionName:   "termrec-transform",
		PTYReadBufferSize: 4 * 1024 * 1024,
		BenchstorePath:    "/tmp/termrec-benchmark-results.sqlite",
	}
}

// Load reads a YAML config file at path, overlaying it onto Default(). A
// missing file is not an error; the defaults are returned unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %q: %w", path, err)
	}
	return cfg, nil
}
