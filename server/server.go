package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Options describes what Start brings up and in which order: migrations,
// then jobs, then the web server.
type Options struct {
	WebServerEnabled bool
	WebServerPort    int
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	ShutdownTimeout  time.Duration

	MigrationEnabled bool
	MigrationHandler func(ctx context.Context) error

	// JobsHandler starts background jobs and returns the function that
	// stops them.
	JobsEnabled bool
	JobsHandler func() (stop func(), err error)

	WebServerPreHandler func(r *gin.Engine)

	// OnShutdown runs last, after the server has drained.
	OnShutdown func(ctx context.Context)

	Logger *zap.Logger
}

func GetDefaultOptions() Options {
	return Options{
		WebServerEnabled: true,
		WebServerPort:    8080,
		ReadTimeout:      15 * time.Second,
		WriteTimeout:     15 * time.Second,
		ShutdownTimeout:  10 * time.Second,
		MigrationEnabled: true,
		JobsEnabled:      true,
	}
}

/*
* Apply migrations, a failure aborts startup
* Start jobs and the HTTP server
* Block until ctx is cancelled, then stop jobs, drain HTTP and run OnShutdown
 */
func Start(ctx context.Context, opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	if opts.MigrationEnabled && opts.MigrationHandler != nil {
		if err := opts.MigrationHandler(ctx); err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
	}

	stopJobs := func() {}
	if opts.JobsEnabled && opts.JobsHandler != nil {
		stop, err := opts.JobsHandler()
		if err != nil {
			return fmt.Errorf("jobs: %w", err)
		}
		if stop != nil {
			stopJobs = stop
		}
	}

	var srv *http.Server
	serveErr := make(chan error, 1)
	if opts.WebServerEnabled {
		r := gin.New()
		r.Use(gin.Recovery())
		if opts.WebServerPreHandler != nil {
			opts.WebServerPreHandler(r)
		}

		ln, err := net.Listen("tcp", fmt.Sprintf(":%d", opts.WebServerPort))
		if err != nil {
			stopJobs()
			return fmt.Errorf("listen: %w", err)
		}
		srv = &http.Server{
			Handler:      r,
			ReadTimeout:  opts.ReadTimeout,
			WriteTimeout: opts.WriteTimeout,
		}
		go func() {
			logger.Info("http server listening", zap.String("addr", ln.Addr().String()))
			if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
				serveErr <- err
			}
			close(serveErr)
		}()
	} else {
		close(serveErr)
	}

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err, ok := <-serveErr:
		if ok && err != nil {
			logger.Error("http server failed", zap.Error(err))
			runErr = err
		} else if !opts.WebServerEnabled {
			<-ctx.Done()
		}
	}

	stopJobs()

	timeout := opts.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if srv != nil {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("http server shutdown", zap.Error(err))
			if runErr == nil {
				runErr = err
			}
		}
	}
	if opts.OnShutdown != nil {
		opts.OnShutdown(shutdownCtx)
	}
	return runErr
}
