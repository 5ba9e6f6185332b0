// Package config holds the server settings. Defaults are overridden by environment
// variables, which are in turn overridden by command-line flags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2/log"
)

const envPrefix = "CHESSVIZ_"

type Config struct {
	Addr            string
	AllowedOrigins  []string
	LogLevel        string
	ReadBufferSize  int
	WriteBufferSize int
}

func Default() Config {
	return Config{
		Addr:            ":3000",
		AllowedOrigins:  []string{"http://localhost:5173"},
		LogLevel:        "info",
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}
}

var logLevels = map[string]log.Level{
	"debug": log.LevelDebug,
	"info":  log.LevelInfo,
	"warn":  log.LevelWarn,
	"error": log.LevelError,
}

// Load reads CHESSVIZ_* variables through getenv on top of the defaults, then applies args.
func Load(args []string, getenv func(string) string) (Config, error) {
	cfg := Default()
	if err := cfg.applyEnv(getenv); err != nil {
		return Config{}, err
	}

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	origins := fs.String("origins", strings.Join(cfg.AllowedOrigins, ","), "comma separated CORS and websocket origins")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	fs.IntVar(&cfg.ReadBufferSize, "ws-read-buffer", cfg.ReadBufferSize, "websocket read buffer size in bytes")
	fs.IntVar(&cfg.WriteBufferSize, "ws-write-buffer", cfg.WriteBufferSize, "websocket write buffer size in bytes")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	cfg.AllowedOrigins = splitList(*origins)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// FromEnvironment is Load against the process arguments and environment.
func FromEnvironment() (Config, error) {
	return Load(os.Args[1:], os.Getenv)
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv(envPrefix + "ADDR"); v != "" {
		c.Addr = v
	}
	if v := getenv(envPrefix + "ALLOWED_ORIGINS"); v != "" {
		c.AllowedOrigins = splitList(v)
	}
	if v := getenv(envPrefix + "LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	for name, dst := range map[string]*int{
		"WS_READ_BUFFER":  &c.ReadBufferSize,
		"WS_WRITE_BUFFER": &c.WriteBufferSize,
	} {
		v := getenv(envPrefix + name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", envPrefix, name, err)
		}
		*dst = n
	}
	return nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return errors.New("listen address is empty")
	}
	if _, ok := logLevels[strings.ToLower(c.LogLevel)]; !ok {
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	if c.ReadBufferSize <= 0 || c.WriteBufferSize <= 0 {
		return errors.New("websocket buffer sizes must be positive")
	}
	return nil
}

// Level maps LogLevel onto fiber's logger levels. Validate must have passed.
func (c Config) Level() log.Level {
	return logLevels[strings.ToLower(c.LogLevel)]
}

// OriginList is the form fiber's CORS middleware expects.
func (c Config) OriginList() string {
	return strings.Join(c.AllowedOrigins, ", ")
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
