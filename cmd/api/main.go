package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"sync"

	"github.com/hafizmfadli/go-video/internal/data"
	"github.com/hafizmfadli/go-video/internal/jsonlog"
	"github.com/hafizmfadli/go-video/internal/metrics"
)

// Application version number
const version = "1.0.0"

// config struct hold all the configuration settings for out application.
type config struct {

	// the network port that we want the server to listen on
	port int

	// current operating environment for the application (development, staging, production).
	// The testing routes are only mounted outside production.
	env string

	// minimum severity written by the logger
	logLevel jsonlog.Level

	// limiter struct containing fields for the requests per second and burst
	// values, and a boolean field which we can use to enable/disable rate limiting
	// altogether
	limiter struct {
		rps     float64
		burst   int
		enabled bool
	}

	// set by -version
	displayVersion bool
}

// application struct hold the dependencies for our HTTP handlers, helpers, and middleware.
type application struct {
	config  config
	logger  *jsonlog.Logger
	models  data.Models
	metrics *metrics.Metrics

	// stop is closed once by stopBackground to end the goroutines the
	// middleware starts.
	stop     chan struct{}
	stopOnce sync.Once
}

// newApplication wires a fresh in-memory store and its collectors.
func newApplication(cfg config, logger *jsonlog.Logger) *application {
	models := data.NewModels()

	return &application{
		config:  cfg,
		logger:  logger,
		models:  models,
		metrics: metrics.New(models.Videos.Count),
		stop:    make(chan struct{}),
	}
}

// stopBackground ends the background goroutines. It is safe to call more
// than once.
func (app *application) stopBackground() {
	app.stopOnce.Do(func() { close(app.stop) })
}

func main() {
	cfg, err := parseConfig(os.Args[1:], os.Getenv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if cfg.displayVersion {
		fmt.Printf("Version:\t%s\n", version)
		os.Exit(0)
	}

	// Initialize a new jsonlog.Logger which writes any messages *at or above*
	// the configured severity level to the standard out stream
	logger := jsonlog.NewLogger(os.Stdout, cfg.logLevel)

	app := newApplication(cfg, logger)

	err = app.serve()
	if err != nil {
		logger.PrintFatal(err, nil)
	}
}
