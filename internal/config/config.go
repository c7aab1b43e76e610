// Package config reads server settings from flags, falling back to
// environment variables.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	SSHPort int
	// Local uses a key file on disk instead of Secret Manager.
	Local       bool
	HostKeyPath string
	// HostKeySecret names the Secret Manager version holding the key.
	HostKeySecret string
	DataDir       string
	// HTTPPort enables the WebSocket bridge when set.
	HTTPPort string
	LogLevel log.Level
}

// Load parses args (without the program name). Flags override the
// environment.
func Load(args []string) (Config, error) {
	fs := flag.NewFlagSet("chessh", flag.ContinueOnError)

	port := fs.Int("port", getenvInt("CHESSH_PORT", 2222), "SSH server port")
	local := fs.Bool("local", getenvBool("CHESSH_LOCAL", false), "use a local host key instead of Secret Manager")
	hostKey := fs.String("host-key", os.Getenv("CHESSH_HOST_KEY"), "host key path in local mode (default ~/.chessh/host_key)")
	secret := fs.String("host-key-secret", os.Getenv("SSH_HOST_KEY_SECRET"), "Secret Manager version holding the host key")
	dataDir := fs.String("data-dir", os.Getenv("CHESSH_DATA_DIR"), "game database directory (default: user data dir)")
	httpPort := fs.String("http-port", os.Getenv("PORT"), "port for the WebSocket to SSH bridge; empty disables it")
	level := fs.String("log-level", getenv("CHESSH_LOG_LEVEL", "info"), "debug, info, warn or error")

	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	cfg := Config{
		SSHPort:       *port,
		Local:         *local,
		HostKeyPath:   *hostKey,
		HostKeySecret: *secret,
		DataDir:       *dataDir,
		HTTPPort:      *httpPort,
	}
	if cfg.SSHPort <= 0 || cfg.SSHPort > 65535 {
		return Config{}, fmt.Errorf("%w: port %d out of range", ErrInvalidConfig, cfg.SSHPort)
	}
	if cfg.HTTPPort != "" {
		if p, err := strconv.Atoi(cfg.HTTPPort); err != nil || p <= 0 || p > 65535 {
			return Config{}, fmt.Errorf("%w: http port %q", ErrInvalidConfig, cfg.HTTPPort)
		}
	}
	if !cfg.Local && cfg.HostKeySecret == "" {
		return Config{}, fmt.Errorf("%w: -host-key-secret or SSH_HOST_KEY_SECRET is required unless -local", ErrInvalidConfig)
	}
	lvl, err := log.ParseLevel(*level)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	cfg.LogLevel = lvl
	return cfg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	if v, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return v
	}
	return def
}
