package runtime

import (
	"context"
	"errors"

	"github.com/rzbill/flexbuf/internal/archive"
	"github.com/rzbill/flexbuf/internal/capture"
	cfgpkg "github.com/rzbill/flexbuf/internal/config"
	"github.com/rzbill/flexbuf/internal/linering"
	"github.com/rzbill/flexbuf/internal/metrics"
	pebblestore "github.com/rzbill/flexbuf/internal/storage/pebble"
	logpkg "github.com/rzbill/flexbuf/pkg/log"
)

// Options for building the Runtime.
type Options struct {
	Config cfgpkg.Config
	Logger logpkg.Logger
}

// Runtime wires the line ring, capture sink, archive, and metrics for a
// single-node instance.
type Runtime struct {
	config   cfgpkg.Config
	logger   logpkg.Logger
	metrics  *metrics.Metrics
	ring     *linering.Ring[byte]
	sink     *capture.Sink
	db       *pebblestore.DB
	store    *archive.Store
	archiver *archive.Archiver
}

// Open validates the configuration and builds all components. When
// archiving is enabled the ring's evict hook feeds the archiver, so
// lines leave memory only after they are queued for disk.
func Open(opts Options) (*Runtime, error) {
	cfg := opts.Config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = logpkg.NewNop()
	}

	rt := &Runtime{
		config:  cfg,
		logger:  logger,
		metrics: metrics.New(),
	}

	var ringOpts []linering.Option[byte]
	if cfg.Buffer.TextAppend {
		ringOpts = append(ringOpts, linering.WithTextAppend[byte]())
	}

	if cfg.Archive.Enabled {
		dataDir := cfg.Archive.DataDir
		if dataDir == "" {
			dataDir = cfgpkg.DefaultDataDir()
		}
		fsync, err := pebblestore.ParseFsyncMode(cfg.Archive.Fsync)
		if err != nil {
			return nil, err
		}
		db, err := pebblestore.Open(pebblestore.Options{DataDir: dataDir, Fsync: fsync})
		if err != nil {
			return nil, err
		}
		rt.db = db
		rt.store = archive.NewStore(db)
		rt.archiver = archive.NewArchiver(rt.store, logger, rt.metrics, archive.Options{
			QueueDepth: cfg.Archive.QueueDepth,
		})
		ringOpts = append(ringOpts, linering.WithEvictHook[byte](rt.archiver))
	}

	ring, err := linering.New[byte](cfg.Buffer.Capacity, cfg.Buffer.MaxLines, ringOpts...)
	if err != nil {
		if rt.db != nil {
			rt.archiver.Close()
			_ = rt.db.Close()
		}
		return nil, err
	}
	rt.ring = ring
	rt.sink = capture.NewSink(ring, logger, rt.metrics)
	return rt, nil
}

// Close stops the archiver and closes underlying storage. The archiver
// drains its queue before the database shuts down.
func (r *Runtime) Close() error {
	if r.archiver != nil {
		r.archiver.Close()
	}
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// CheckHealth performs a simple health check.
func (r *Runtime) CheckHealth(ctx context.Context) error {
	if r.ring == nil {
		return errors.New("ring not open")
	}
	if r.db != nil {
		it, err := r.db.NewIter(nil)
		if err != nil {
			return err
		}
		it.Close()
	}
	return ctx.Err()
}

// Ring exposes the in-memory line ring.
func (r *Runtime) Ring() *linering.Ring[byte] { return r.ring }

// Sink exposes the io.Writer capture front end.
func (r *Runtime) Sink() *capture.Sink { return r.sink }

// Archive returns the archive store, or nil when archiving is disabled.
func (r *Runtime) Archive() *archive.Store { return r.store }

// Metrics returns the process metrics registry wrapper.
func (r *Runtime) Metrics() *metrics.Metrics { return r.metrics }

// Config returns the runtime configuration.
func (r *Runtime) Config() cfgpkg.Config { return r.config }

// Logger returns the runtime logger.
func (r *Runtime) Logger() logpkg.Logger { return r.logger }
