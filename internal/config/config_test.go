package config

import (
	"reflect"
	"testing"

	"github.com/gofiber/fiber/v2/log"
)

func env(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(nil, env(nil))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Fatalf("got %+v, want defaults %+v", cfg, Default())
	}
	if cfg.Level() != log.LevelInfo {
		t.Errorf("expected info level, got %v", cfg.Level())
	}
}

func TestLoadPrecedence(t *testing.T) {
	vars := map[string]string{
		"CHESSVIZ_ADDR":            ":8080",
		"CHESSVIZ_ALLOWED_ORIGINS": "http://a.test, http://b.test",
		"CHESSVIZ_LOG_LEVEL":       "debug",
		"CHESSVIZ_WS_READ_BUFFER":  "2048",
	}
	cfg, err := Load([]string{"-addr", ":9090"}, env(vars))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":9090" {
		t.Errorf("flag should win over env, got %q", cfg.Addr)
	}
	if want := []string{"http://a.test", "http://b.test"}; !reflect.DeepEqual(cfg.AllowedOrigins, want) {
		t.Errorf("origins: got %v, want %v", cfg.AllowedOrigins, want)
	}
	if cfg.OriginList() != "http://a.test, http://b.test" {
		t.Errorf("unexpected origin list %q", cfg.OriginList())
	}
	if cfg.Level() != log.LevelDebug || cfg.ReadBufferSize != 2048 || cfg.WriteBufferSize != 1024 {
		t.Errorf("unexpected config %+v", cfg)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		args []string
		vars map[string]string
	}{
		{"bad level", []string{"-log-level", "loud"}, nil},
		{"empty addr", []string{"-addr", " "}, nil},
		{"bad buffer env", nil, map[string]string{"CHESSVIZ_WS_WRITE_BUFFER": "big"}},
		{"zero buffer", []string{"-ws-read-buffer", "0"}, nil},
		{"unknown flag", []string{"-nope"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(tt.args, env(tt.vars)); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}
