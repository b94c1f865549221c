package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/hafizmfadli/go-video/internal/jsonlog"
)

const defaultPort = 5001

// fileConfig mirrors config for the optional YAML file. Pointer fields tell
// "absent" apart from a zero value.
type fileConfig struct {
	Port     *int    `yaml:"port"`
	Env      *string `yaml:"env"`
	LogLevel *string `yaml:"log_level"`
	Limiter  struct {
		RPS     *float64 `yaml:"rps"`
		Burst   *int     `yaml:"burst"`
		Enabled *bool    `yaml:"enabled"`
	} `yaml:"limiter"`
}

// parseConfig reads the command-line flags in args. Settings are resolved in
// the order: explicit flag, YAML file given by -config, PORT environment
// variable (port only), built-in default.
func parseConfig(args []string, getenv func(string) string) (config, error) {
	var (
		cfg        config
		configPath string
		logLevel   string
	)

	port := defaultPort
	if v := getenv("PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		port = p
	}

	fs := flag.NewFlagSet("api", flag.ContinueOnError)
	fs.IntVar(&cfg.port, "port", port, "API server port")
	fs.StringVar(&cfg.env, "env", "development", "Environment (development|staging|production)")
	fs.StringVar(&logLevel, "log-level", "info", "Minimum log level (info|error|fatal|off)")
	fs.Float64Var(&cfg.limiter.rps, "limiter-rps", 2, "Rate limiter maximum requests per second")
	fs.IntVar(&cfg.limiter.burst, "limiter-burst", 4, "Rate limiter maximum burst")
	fs.BoolVar(&cfg.limiter.enabled, "limiter-enabled", false, "Enable rate limiter")
	fs.StringVar(&configPath, "config", "", "Path to a YAML config file")
	fs.BoolVar(&cfg.displayVersion, "version", false, "Display version and exit")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	if configPath != "" {
		set := make(map[string]bool)
		fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

		fc, err := loadConfigFile(configPath)
		if err != nil {
			return cfg, err
		}
		applyConfigFile(&cfg, &logLevel, fc, set)
	}

	level, err := jsonlog.ParseLevel(logLevel)
	if err != nil {
		return cfg, err
	}
	cfg.logLevel = level

	if cfg.port < 0 || cfg.port > 65535 {
		return cfg, fmt.Errorf("port %d out of range", cfg.port)
	}

	return cfg, nil
}

func loadConfigFile(path string) (fileConfig, error) {
	var fc fileConfig

	b, err := os.ReadFile(path)
	if err != nil {
		return fc, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return fc, fmt.Errorf("parse config %s: %w", path, err)
	}
	return fc, nil
}

// applyConfigFile copies every value present in fc into cfg, skipping the
// settings whose flag was given explicitly.
func applyConfigFile(cfg *config, logLevel *string, fc fileConfig, set map[string]bool) {
	if fc.Port != nil && !set["port"] {
		cfg.port = *fc.Port
	}
	if fc.Env != nil && !set["env"] {
		cfg.env = *fc.Env
	}
	if fc.LogLevel != nil && !set["log-level"] {
		*logLevel = *fc.LogLevel
	}
	if fc.Limiter.RPS != nil && !set["limiter-rps"] {
		cfg.limiter.rps = *fc.Limiter.RPS
	}
	if fc.Limiter.Burst != nil && !set["limiter-burst"] {
		cfg.limiter.burst = *fc.Limiter.Burst
	}
	if fc.Limiter.Enabled != nil && !set["limiter-enabled"] {
		cfg.limiter.enabled = *fc.Limiter.Enabled
	}
}
