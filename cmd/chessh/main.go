package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
	"github.com/gorilla/websocket"
	sshproxy "github.com/imjasonh/ssh-proxy"

	"github.com/imjasonh/chessh-engine/internal/config"
	"github.com/imjasonh/chessh-engine/internal/hostkey"
	"github.com/imjasonh/chessh-engine/internal/session"
	"github.com/imjasonh/chessh-engine/internal/storage"
	"github.com/imjasonh/chessh-engine/internal/tui"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatal("bad configuration", "err", err)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "chessh",
		Level:           cfg.LogLevel,
	})
	log.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	hostKeyData, err := loadHostKey(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to load host key", "err", err)
	}

	dir := cfg.DataDir
	if dir == "" {
		if dir, err = storage.DatabaseDir(); err != nil {
			logger.Fatal("failed to find data directory", "err", err)
		}
	}
	store, err := storage.Open(dir)
	if err != nil {
		logger.Fatal("failed to open game database", "dir", dir, "err", err)
	}
	defer store.Close()
	logger.Info("game database opened", "dir", dir)

	manager := session.NewManager(store, logger.WithPrefix("session"))

	sshAddr := net.JoinHostPort("", fmt.Sprint(cfg.SSHPort))
	s, err := wish.NewServer(
		wish.WithAddress(sshAddr),
		wish.WithHostKeyPEM(hostKeyData),
		wish.WithMiddleware(
			bubbletea.Middleware(tui.Handler(manager, store)),
			logging.MiddlewareWithLogger(logger),
		),
	)
	if err != nil {
		logger.Fatal("failed to create SSH server", "err", err)
	}
	go func() {
		logger.Info("starting SSH chess server", "addr", sshAddr)
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("SSH server error", "err", err)
		}
	}()

	var bridge *http.Server
	if cfg.HTTPPort != "" {
		mux := http.NewServeMux()
		mux.HandleFunc("/ssh", sshproxy.ProxyWebSocketToSSH(sshAddr, websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		}))
		bridge = &http.Server{Addr: ":" + cfg.HTTPPort, Handler: mux}
		go func() {
			logger.Info("starting WebSocket to SSH proxy", "port", cfg.HTTPPort)
			if err := bridge.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Fatal("HTTP server error", "err", err)
			}
		}()
	}

	<-ctx.Done()
	logger.Info("stopping servers", "active_games", manager.ActiveGames())

	tctx, tcancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
	defer tcancel()
	if bridge != nil {
		if err := bridge.Shutdown(tctx); err != nil {
			logger.Error("HTTP shutdown", "err", err)
		}
	}
	if err := s.Shutdown(tctx); err != nil {
		logger.Error("SSH shutdown", "err", err)
	}
}

func loadHostKey(ctx context.Context, cfg config.Config) ([]byte, error) {
	if !cfg.Local {
		log.Info("running in cloud mode with Secret Manager")
		return hostkey.FromSecretManager(ctx, cfg.HostKeySecret)
	}
	path := cfg.HostKeyPath
	if path == "" {
		var err error
		if path, err = hostkey.DefaultPath(); err != nil {
			return nil, err
		}
	}
	log.Info("running in local mode", "host_key", path)
	return hostkey.Local(path)
}
