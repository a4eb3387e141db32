// Package server boots the storefront: config, infrastructure, stores,
// routes, and the HTTP listener.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shashiranjanraj/dukaan/app/cart"
	"github.com/shashiranjanraj/dukaan/app/catalog"
	"github.com/shashiranjanraj/dukaan/app/checkout"
	"github.com/shashiranjanraj/dukaan/app/feed"
	"github.com/shashiranjanraj/dukaan/app/routes"
	"github.com/shashiranjanraj/dukaan/config"
	"github.com/shashiranjanraj/dukaan/pkg/cache"
	"github.com/shashiranjanraj/dukaan/pkg/event"
	"github.com/shashiranjanraj/dukaan/pkg/logger"
	"github.com/shashiranjanraj/dukaan/pkg/metrics"
	"github.com/shashiranjanraj/dukaan/pkg/middleware"
	"github.com/shashiranjanraj/dukaan/pkg/router"
	"github.com/shashiranjanraj/dukaan/pkg/slot"
	"github.com/shashiranjanraj/dukaan/pkg/storage"
	"github.com/shashiranjanraj/dukaan/pkg/ws"
)

// Start boots everything and blocks until SIGINT/SIGTERM.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}
	if err := cache.Connect(); err != nil {
		logger.Warn("redis unavailable, feed cache and redis cart disabled", "error", err)
	}
	storage.Connect()

	deps := buildDeps()

	// Boot-time catalog load keeps first paint fast. A dead feed at boot
	// is survivable; the reload endpoint can fetch later.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if _, err := deps.Fetcher.Refresh(ctx); err != nil {
		logger.Warn("initial feed load failed", "error", err)
	}
	cancel()

	r := router.New()
	r.Use(
		metrics.Middleware(),
		middleware.RequestID,
		middleware.Recovery,
		middleware.Logger,
		middleware.CORS(middleware.DefaultCORSOptions()),
	)
	routes.RegisterWeb(r, deps)
	r.Mount("/metrics", metrics.Handler())
	r.Mount("/storage/", http.StripPrefix("/storage/",
		http.FileServer(http.Dir(storage.LocalRoot()))))

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           r.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("dukaan listening", "addr", srv.Addr, "env", config.AppEnv())
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	return srv.Shutdown(shutdownCtx)
}

// buildDeps assembles stores, services and the websocket hub.
func buildDeps() routes.Deps {
	opts := feed.Options{
		PrefixLen: config.FeedPrefixLen(),
		SuffixLen: config.FeedSuffixLen(),
		Columns:   config.FeedColumns(),
	}

	var hook catalog.ProductHook
	if config.MirrorImages() {
		hook = catalog.ImageMirror
	}

	catalogStore := catalog.NewStore(opts, hook, event.Default)
	fetcher := catalog.NewFetcher(catalogStore, config.FeedURL(),
		time.Duration(config.FeedCacheTTL())*time.Second)

	cartStore := cart.NewStore(cartSlot(), event.Default)
	cartStore.Restore()

	submitter := checkout.NewSubmitter(config.OrderURL(), config.OrderSuccessMode())

	hub := ws.NewHub()
	go hub.Run()
	bridge(hub, catalog.EventLoaded)
	bridge(hub, cart.EventUpdated)

	return routes.Deps{
		Catalog:   catalogStore,
		Fetcher:   fetcher,
		Cart:      cartStore,
		Submitter: submitter,
		Hub:       hub,
	}
}

// cartSlot picks the slot driver. Redis is opt-in and falls back to the
// file driver when no connection came up.
func cartSlot() slot.Store {
	if config.CartDriver() == "redis" {
		if rdb := cache.Client(); rdb != nil {
			return slot.NewRedis(rdb, "dukaan:cart")
		}
		logger.Warn("CART_DRIVER=redis but redis is down, using file slot")
	}
	return slot.NewFile(config.CartSlotPath())
}

// bridge forwards a bus event to all websocket clients as a small JSON
// note so open tabs stay in sync.
func bridge(hub *ws.Hub, name string) {
	event.Listen(name, func(payload interface{}) {
		msg, err := json.Marshal(map[string]interface{}{
			"event":   name,
			"payload": payload,
		})
		if err != nil {
			return
		}
		select {
		case hub.Broadcast <- msg:
		default:
		}
	})
}
