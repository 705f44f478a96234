package mass

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("mass: invalid config")

// Config mirrors the arguments of New plus the timeout handed to Shutdown.
type Config struct {
	ExecutionWorkers int           `yaml:"execution_workers"`
	DrainWorkers     int           `yaml:"drain_workers"`
	ShutdownTimeout  time.Duration `yaml:"shutdown_timeout"`
}

func DefaultConfig() Config {
	return Config{
		ExecutionWorkers: runtime.NumCPU(),
		DrainWorkers:     1,
		ShutdownTimeout:  2 * time.Second,
	}
}

func (c Config) Validate() error {
	var errs []error
	if c.DrainWorkers < 1 {
		errs = append(errs, fmt.Errorf("%w: drain_workers must be at least 1, got %d", ErrInvalidConfig, c.DrainWorkers))
	}
	if c.ShutdownTimeout < 0 {
		errs = append(errs, fmt.Errorf("%w: shutdown_timeout is negative", ErrInvalidConfig))
	}
	return errors.Join(errs...)
}

// ParseConfig decodes yaml over DefaultConfig. Unknown keys are rejected.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return ParseConfig(data)
}

func NewFromConfig(cfg Config, opts ...Option) (*Scheduler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return New(cfg.ExecutionWorkers, cfg.DrainWorkers, opts...)
}
