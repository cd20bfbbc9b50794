// Package server initializes and runs the main application server. It loads
// the identity directory, opens the content store, composes the shared
// control state and starts the HTTP layer, handling graceful shutdown.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/chronofeed/internal/logging"
	"github.com/dmitrijs2005/chronofeed/internal/server/config"
	"github.com/dmitrijs2005/chronofeed/internal/server/control"
	"github.com/dmitrijs2005/chronofeed/internal/server/directory"
	"github.com/dmitrijs2005/chronofeed/internal/server/feed"
	"github.com/dmitrijs2005/chronofeed/internal/server/httpapi"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	control *control.Control
	http    *httpapi.Server
}

// NewApp wires the whole process. A failure here (unreadable credential
// file, unopenable store) is bootstrap-fatal; no error returned from this
// function is recoverable at runtime.
func NewApp(c *config.Config) (*App, error) {

	logger := logging.NewServerLogger(c.LogFile)

	dir, err := directory.Load(c.AuthPath)
	if err != nil {
		return nil, fmt.Errorf("loading identity directory: %w", err)
	}

	store, err := feed.Open(c.StorePath, feed.Options{
		Compression:           c.StoreCompression,
		CompactionParallelism: c.StoreCompactionParallelism,
		PointLookupCacheBytes: c.StorePointLookupCacheBytes,
		SyncBatchBytes:        c.StoreSyncBatchBytes,
	})
	if err != nil {
		return nil, fmt.Errorf("opening content store: %w", err)
	}

	ctl := control.New(dir, store, c.MaxPageSize)

	srv, err := httpapi.NewServer(c, logger, ctl)
	if err != nil {
		_ = ctl.Close()
		return nil, fmt.Errorf("http server init error: %w", err)
	}

	return &App{config: c, logger: logger, control: ctl, http: srv}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...",
		"addr", app.config.EndpointAddr, "max_page_size", app.control.MaxPageSize())

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.http.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()

	// The store handle is owned for the process lifetime; close it only
	// after the request layer has fully stopped.
	if err := app.control.Close(); err != nil {
		app.logger.Error(ctx, "closing content store", "error", err)
	}

	app.logger.Info(ctx, "Shutdown complete")
}
