package config

import (
	"errors"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"CHESSH_PORT", "CHESSH_LOCAL", "CHESSH_HOST_KEY", "SSH_HOST_KEY_SECRET", "CHESSH_DATA_DIR", "PORT", "CHESSH_LOG_LEVEL"} {
		t.Setenv(k, "")
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
		want Config
	}{{
		name: "local defaults",
		args: []string{"-local"},
		want: Config{SSHPort: 2222, Local: true, LogLevel: log.InfoLevel},
	}, {
		name: "environment",
		env: map[string]string{
			"CHESSH_PORT":         "2022",
			"SSH_HOST_KEY_SECRET": "projects/p/secrets/k/versions/latest",
			"CHESSH_DATA_DIR":     "/var/lib/chessh",
			"PORT":                "8080",
			"CHESSH_LOG_LEVEL":    "debug",
		},
		want: Config{
			SSHPort:       2022,
			HostKeySecret: "projects/p/secrets/k/versions/latest",
			DataDir:       "/var/lib/chessh",
			HTTPPort:      "8080",
			LogLevel:      log.DebugLevel,
		},
	}, {
		name: "flags override environment",
		env:  map[string]string{"CHESSH_PORT": "2022", "CHESSH_LOCAL": "false"},
		args: []string{"-port", "3000", "-local", "-host-key", "/tmp/key", "-log-level", "warn"},
		want: Config{SSHPort: 3000, Local: true, HostKeyPath: "/tmp/key", LogLevel: log.WarnLevel},
	}, {
		name: "unparsable env falls back",
		env:  map[string]string{"CHESSH_PORT": "ssh", "CHESSH_LOCAL": "yes please"},
		args: []string{"-local"},
		want: Config{SSHPort: 2222, Local: true, LogLevel: log.InfoLevel},
	}}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			got, err := Load(tt.args)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("config mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"port too large", []string{"-local", "-port", "70000"}},
		{"zero port", []string{"-local", "-port", "0"}},
		{"bad http port", []string{"-local", "-http-port", "web"}},
		{"no secret", nil},
		{"bad level", []string{"-local", "-log-level", "loud"}},
		{"unknown flag", []string{"-local", "-colour"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			if _, err := Load(tt.args); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Load(%q) = %v, want ErrInvalidConfig", tt.args, err)
			}
		})
	}
}
