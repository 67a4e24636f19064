package maincmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// fileConfig is the content of the YAML file provided with --config.
type fileConfig struct {
	LogLevel string       `yaml:"log_level"`
	Stress   stressConfig `yaml:"stress"`
}

type stressConfig struct {
	Workers    int  `yaml:"workers"`
	Iterations int  `yaml:"iterations"`
	Metrics    bool `yaml:"metrics"`
}

func loadConfig(path string) (*fileConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	var cfg fileConfig
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return &cfg, nil
}

// apply sets the options of c that were not set by a flag or an environment
// variable.
func (cfg *fileConfig) apply(c *Cmd) {
	if cfg.LogLevel != "" && !c.isSet("log-level", "LOG_LEVEL") {
		c.LogLevel = cfg.LogLevel
	}
	if cfg.Stress.Workers != 0 && !c.isSet("workers", "WORKERS") {
		c.Workers = cfg.Stress.Workers
	}
	if cfg.Stress.Iterations != 0 && !c.isSet("iterations", "ITERATIONS") {
		c.Iterations = cfg.Stress.Iterations
	}
	if cfg.Stress.Metrics && !c.isSet("metrics", "METRICS") {
		c.Metrics = true
	}
}

// isSet reports whether the option was provided on the command line as flag
// or in the environment as envPrefix+env.
func (c *Cmd) isSet(flag, env string) bool {
	if c.flags[flag] {
		return true
	}
	_, ok := os.LookupEnv(envPrefix + env)
	return ok
}
