// Command webmachined runs the HTTP resource-processing engine as a
// standalone file server, the reference deployment for the engine package.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hexraft/webmachine/engine"
	"github.com/hexraft/webmachine/examples/fileserver"
	"github.com/hexraft/webmachine/internal/config"
	"github.com/hexraft/webmachine/internal/logging"
	"github.com/hexraft/webmachine/internal/metrics"
	"github.com/hexraft/webmachine/transport/nethttp"
)

func main() {
	configPath := flag.String("config", "", "path to YAML configuration file")
	listenOverride := flag.String("listen", "", "override listen_addr from the configuration")
	root := flag.String("root", ".", "directory served by the demo file resource")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *listenOverride != "" {
		cfg.ListenAddr = *listenOverride
	}
	store := config.NewStore(cfg)

	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	if *configPath != "" {
		watcher, err := config.Watch(*configPath, store, log)
		if err != nil {
			log.Warn("config hot-reload disabled", "error", err.Error())
		} else {
			defer watcher.Close()
		}
	}

	proxyCfg, err := cfg.ProxyConfig()
	if err != nil {
		log.Error("invalid proxy configuration", "error", err.Error())
		os.Exit(1)
	}

	reg := prometheus.NewRegistry()
	collector := metrics.NewCollector(reg)

	eng := engine.NewEngine(cfg.EngineConfig(), collector, log)
	em := engine.NewEmitter(cfg.EngineConfig(), collector, log)

	ctrl := fileserver.New(*root)
	resolver := nethttp.ResolverFunc(func(ctx *engine.Context) (engine.Controller, bool) {
		return ctrl, true
	})

	handler := nethttp.NewHandler(eng, em, resolver, proxyCfg, log)

	srv := &http.Server{
		Addr:        store.Get().ListenAddr,
		Handler:     handler,
		IdleTimeout: cfg.EngineConfig().IdleTimeout,
	}

	metricsSrv := &http.Server{
		Addr:    cfg.MetricsAddr,
		Handler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	}

	go func() {
		log.Info("serving", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server exited", "error", err.Error())
		}
	}()
	go func() {
		if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Warn("metrics server exited", "error", err.Error())
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	srv.Shutdown(ctx)
	metricsSrv.Shutdown(ctx)
}
