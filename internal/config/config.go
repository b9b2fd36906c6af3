// Package config parses the optional generation config yaml.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"go.yaml.in/yaml/v3"
)

var identReg = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Config controls the names used in the generated source files.
// The format constraints of the input files are not configurable.
type Config struct {
	LogLevel      LogLevel `yaml:"log_level"`
	GuardPrefix   string   `yaml:"guard_prefix"`
	IDHeader      string   `yaml:"id_header"`
	SamplesHeader string   `yaml:"samples_header"`
	EnumName      string   `yaml:"enum_name"`
	SourceExt     string   `yaml:"source_ext"`
}

// Default returns the config used when no config file is passed.
func Default() *Config {
	return &Config{
		LogLevel:      LogLevel(slog.LevelInfo),
		GuardPrefix:   "AUDIBLE_ALTIMETER",
		IDHeader:      "sample_id",
		SamplesHeader: "audio_samples",
		EnumName:      "AUDIO_SAMPLE_ID",
		SourceExt:     ".cpp",
	}
}

// Parse reads a config yaml. Keys absent from the yaml keep their
// default, unknown keys are an error.
func Parse(r io.Reader) (*Config, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	c := Default()
	err := decoder.Decode(c)
	if err != nil {
		return nil, err
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) validate() error {
	for _, kv := range []struct {
		key   string
		value string
	}{
		{"guard_prefix", c.GuardPrefix},
		{"id_header", c.IDHeader},
		{"samples_header", c.SamplesHeader},
		{"enum_name", c.EnumName},
	} {
		if !identReg.MatchString(kv.value) {
			return fmt.Errorf("key '%s': '%s' is not a valid identifier", kv.key, kv.value)
		}
	}
	if c.IDHeader == c.SamplesHeader {
		return fmt.Errorf("keys 'id_header' and 'samples_header' are both '%s'", c.IDHeader)
	}
	if !strings.HasPrefix(c.SourceExt, ".") || len(c.SourceExt) < 2 {
		return fmt.Errorf("key 'source_ext': '%s' is not a file extension", c.SourceExt)
	}
	return nil
}

// LogLevel is a slog.Level that unmarshals from the level name.
type LogLevel slog.Level

func (l *LogLevel) UnmarshalYAML(node *yaml.Node) error {
	var y string
	err := node.Decode(&y)
	if err != nil {
		return err
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(y)); err != nil {
		return fmt.Errorf("unknown log level '%s'", y)
	}
	*l = LogLevel(level)
	return nil
}

func (l LogLevel) Level() slog.Level {
	return slog.Level(l)
}
