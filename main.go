package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/milk9111/streetfighter/logging"
	"github.com/milk9111/streetfighter/prefabs"
	"github.com/milk9111/streetfighter/spectate"
)

func main() {
	cpu := flag.String("cpu", "enemy", "sides driven by the CPU script: none, player, enemy or both")
	logFile := flag.String("log", "", "write logs to this file (rotated)")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	spectateAddr := flag.String("spectate", "", "serve the match to websocket viewers on this address, e.g. :8080")
	watch := flag.Bool("watch", true, "reload prefabs/ from disk on change; applied on rematch")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	logger, err := logging.New(logging.Config{Level: *logLevel, File: *logFile, Stderr: *logFile == ""})
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	sides, err := parseCPUSides(*cpu)
	if err != nil {
		logger.Fatal("invalid -cpu", zap.Error(err))
	}

	roster, err := prefabs.LoadRoster()
	if err != nil {
		logger.Fatal("load prefabs", zap.Error(err))
	}

	var watcher *prefabs.Watcher
	if *watch {
		watcher, err = prefabs.NewWatcher()
		if err != nil {
			// prefabs/ only exists on disk in a source checkout
			logger.Info("prefab hot reload disabled", zap.Error(err))
			watcher = nil
		}
	}

	var hub *spectate.Hub
	var srv *http.Server
	if *spectateAddr != "" {
		hub = spectate.NewHub(spectate.WithLogger(logger), spectate.WithSnapshotEvery(2))
		mux := http.NewServeMux()
		mux.Handle("/ws", hub)
		srv = &http.Server{Addr: *spectateAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("spectator server", zap.Error(err))
			}
		}()
		logger.Info("spectator server listening", zap.String("addr", *spectateAddr))
	}

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	game, err := NewGame(GameConfig{
		Roster:  roster,
		CPU:     sides,
		Logger:  logger,
		Hub:     hub,
		Watcher: watcher,
	})
	if err != nil {
		logger.Fatal("start match", zap.Error(err))
	}

	w, h := game.Layout(0, 0)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowTitle("streetfighter")

	runErr := ebiten.RunGame(game)
	game.Close()
	if srv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		_ = srv.Shutdown(ctx)
		cancel()
		hub.Close()
	}
	if runErr != nil {
		logger.Fatal("game", zap.Error(runErr))
	}
}
