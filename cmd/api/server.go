package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// shutdownTimeout bounds how long in-flight requests get to finish.
const shutdownTimeout = 5 * time.Second

// serve listens on the configured port and runs the server until SIGINT or
// SIGTERM is received.
func (app *application) serve() error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", app.config.port))
	if err != nil {
		return err
	}

	// quit channel carries os.Signal values
	quit := make(chan os.Signal, 1)

	// Use signal.Notify() to listen for incoming SIGINT and SIGTERM signals
	// and relay them to the quit channel.
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	return app.run(ln, quit)
}

// run serves on ln until a value arrives on quit, then shuts down
// gracefully.
func (app *application) run(ln net.Listener, quit <-chan os.Signal) error {
	srv := &http.Server{
		Handler:      app.routes(),
		ErrorLog:     log.New(app.logger, "", 0),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	// shutdownError channel is used for receive any errors returned
	// by the graceful Shutdown() function
	shutdownError := make(chan error, 1)

	go func() {
		// This code will block until a signal is received
		s := <-quit

		app.logger.PrintInfo("shutting down server", map[string]string{
			"signal": s.String(),
		})

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		// Shutdown() may return an error if graceful shutdown was failed
		// (which may happen because of problem closing the listeners, or
		// because the shutdown didn't complete before the deadline is hit).
		shutdownError <- srv.Shutdown(ctx)
	}()

	app.logger.PrintInfo("starting server", map[string]string{
		"addr": ln.Addr().String(),
		"env":  app.config.env,
	})

	// Calling Shutdown() on our server will cause Serve() to immediately
	// return a http.ErrServerClosed error. So if we see this error, it is actually a
	// good thing and an indication that the graceful shutdown has started. So, only
	// returning the error if it is NOT http.ErrServerClosed
	err := srv.Serve(ln)
	app.stopBackground()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	// Otherwise, we wait to receive the return value from Shutdown() on the
	// shutdownError channel.
	err = <-shutdownError
	if err != nil {
		return err
	}

	app.logger.PrintInfo("stopped server", map[string]string{
		"addr": ln.Addr().String(),
	})

	return nil
}
