// Command beansd builds a bean container from a declaration document and
// serves it for inspection over HTTP.
//
// Settings come from the environment or a .env file:
//
//	BEANS_CONFIG       document location (default classpath:beans.xml)
//	BEANS_CLASSPATH    directory "classpath:" refers to (default .)
//	BEANS_ADDR         listen address (default :8080)
//	BEANS_LOG_LEVEL    logrus level (default info)
//	BEANS_LOG_FORMAT   text or json (default text)
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/junioryono/beans"
	"github.com/junioryono/beans/config"
	"github.com/junioryono/beans/document"
	"github.com/junioryono/beans/web"
	"github.com/sirupsen/logrus"
)

func main() {
	if err := run(); err != nil {
		logrus.WithError(err).Error("beansd failed")
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := logrus.StandardLogger()
	if err := cfg.Log.Configure(logger); err != nil {
		return err
	}

	path := document.ResolveLocation(cfg.ConfigLocation, cfg.Classpath)
	decls, err := document.Load(path)
	if err != nil {
		return err
	}

	c := beans.NewContainer(registerTypes(), beans.WithLogger(logger))
	if err := c.Build(decls); err != nil {
		return err
	}

	logger.WithFields(logrus.Fields{
		"document":  path,
		"container": c.ID(),
		"beans":     c.Order(),
	}).Info("container ready")

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           web.Handler(c, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.WithField("addr", cfg.Addr).Info("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	stop()
	logger.Info("shutting down gracefully, press Ctrl+C again to force")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
