package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/pb33f/harlua/motor"
	"gopkg.in/yaml.v3"
)

// Config is the optional harlua configuration file. Command line flags override it.
type Config struct {
	Input      InputConfig      `yaml:"input"`
	Output     OutputConfig     `yaml:"output"`
	Conversion ConversionConfig `yaml:"conversion"`
	Batch      BatchConfig      `yaml:"batch"`
}

type InputConfig struct {
	Encoding string `yaml:"encoding"`
}

type OutputConfig struct {
	Extension string `yaml:"extension"`
}

type ConversionConfig struct {
	MinSleepMS int        `yaml:"min_sleep_ms"`
	Idle       IdleConfig `yaml:"idle"`
}

// IdleConfig bounds the trailing client.sleep(math.random(min, max)), in seconds.
type IdleConfig struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

type BatchConfig struct {
	Jobs int `yaml:"jobs"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Input:  InputConfig{Encoding: motor.DefaultEncoding},
		Output: OutputConfig{Extension: motor.DefaultExtension},
		Conversion: ConversionConfig{
			MinSleepMS: int(motor.DefaultMinSleep / time.Millisecond),
			Idle:       IdleConfig{Min: motor.DefaultIdleMin, Max: motor.DefaultIdleMax},
		},
		Batch: BatchConfig{Jobs: runtime.NumCPU()},
	}
}

// Load reads and validates a configuration file. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults, so keys missing from data keep their default value.
// Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks value ranges and that the input encoding is known.
func (c *Config) Validate() error {
	if c.Conversion.MinSleepMS < 0 {
		return fmt.Errorf("conversion.min_sleep_ms cannot be negative: %d", c.Conversion.MinSleepMS)
	}

	idle := c.Conversion.Idle
	if idle.Min < 0 || idle.Max < 0 {
		return fmt.Errorf("conversion.idle bounds cannot be negative: min %d, max %d", idle.Min, idle.Max)
	}
	if idle.Min > idle.Max {
		return fmt.Errorf("conversion.idle.min (%d) is greater than conversion.idle.max (%d)", idle.Min, idle.Max)
	}

	if c.Batch.Jobs < 1 {
		return fmt.Errorf("batch.jobs must be at least 1, got %d", c.Batch.Jobs)
	}

	if _, err := motor.LookupEncoding(c.Input.Encoding); err != nil {
		return fmt.Errorf("input.encoding: %w", err)
	}
	return nil
}

// MinSleep is the pause floor as a duration.
func (c *Config) MinSleep() time.Duration {
	return time.Duration(c.Conversion.MinSleepMS) * time.Millisecond
}

// Options builds conversion options naming the given input and output files.
func (c *Config) Options(inputName, outputName string) motor.Options {
	opts := motor.DefaultOptions()
	opts.InputName = inputName
	opts.OutputName = outputName
	opts.MinSleep = c.MinSleep()
	if opts.MinSleep == 0 {
		// zero in motor.Options means "use the default floor"
		opts.MinSleep = -1
	}
	opts.IdleMin = c.Conversion.Idle.Min
	opts.IdleMax = c.Conversion.Idle.Max
	return opts
}
