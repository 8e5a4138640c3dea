package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// shutdownTimeout bounds how long in-flight requests get to finish.
const shutdownTimeout = 5 * time.Second

// serve runs the HTTP server until SIGINT or SIGTERM, then drains requests and
// waits for background cover deletions before returning.
func (a *app) serve() error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", a.config.Server.Port),
		Handler:           a.handler.Routes(),
		ErrorLog:          log.New(a.logger, "", 0),
		IdleTimeout:       time.Minute,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	shutdownErr := make(chan error, 1)
	go func() {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		<-ctx.Done()
		a.logger.PrintInfo("shutting down server", map[string]string{"addr": srv.Addr})

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err := srv.Shutdown(ctx)
		a.logger.PrintInfo("completing background tasks", nil)
		a.wg.Wait()
		a.cache.Stop()
		shutdownErr <- err
	}()

	a.logger.PrintInfo("starting server", map[string]string{
		"addr":    srv.Addr,
		"env":     a.config.Server.Env,
		"storage": a.storage,
	})
	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	if err := <-shutdownErr; err != nil {
		return err
	}
	a.logger.PrintInfo("stopped server", map[string]string{"addr": srv.Addr})
	return nil
}
