package serverrun

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	cfgpkg "github.com/rzbill/flexbuf/internal/config"
	"github.com/rzbill/flexbuf/internal/runtime"
	httpserver "github.com/rzbill/flexbuf/internal/server/http"
	logpkg "github.com/rzbill/flexbuf/pkg/log"
)

type Options struct {
	Config cfgpkg.Config
}

// Run starts the HTTP server and blocks until ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	// Be robust to callers that don't pass a signal-aware context
	// or if signal delivery needs to be observed here. We layer a
	// local signal context over the provided one.
	sctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := opts.Config

	procLogger, err := logpkg.ApplyConfig(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		// Fallback to a sane default
		procLogger = logpkg.New(logpkg.WithLevel(logpkg.InfoLevel))
	}

	// Redirect stdlib logs (e.g., Pebble) to our logger
	logpkg.RedirectStdLog(procLogger)

	rt, err := runtime.Open(runtime.Options{Config: cfg, Logger: procLogger})
	if err != nil {
		return err
	}
	defer rt.Close()

	procLogger.Info("Starting flexbuf server",
		logpkg.Str("http", cfg.HTTP.Addr),
		logpkg.Int("capacity", cfg.Buffer.Capacity),
		logpkg.Int("max_lines", cfg.Buffer.MaxLines),
		logpkg.Bool("text_append", cfg.Buffer.TextAppend),
		logpkg.Bool("archive", cfg.Archive.Enabled),
		logpkg.Str("level", cfg.Log.Level),
		logpkg.Str("format", cfg.Log.Format),
	)

	hsrv := httpserver.New(rt, procLogger.With(logpkg.Component("http")))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := hsrv.ListenAndServe(sctx, cfg.HTTP.Addr); err != nil && sctx.Err() == nil {
			procLogger.Error("http server error", logpkg.Err(err))
		}
	}()

	<-sctx.Done()
	// Shut the server down before closing the runtime/DB to avoid races.
	hsrv.Close()
	wg.Wait()
	return nil
}
