// Package config reads server settings from flags, falling back to
// environment variables.
package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Addr         string
	AllowOrigins string
	// SearchDepth is the ply depth automated players use when a game does
	// not ask for one. MaxSearchDepth caps what a client may ask for.
	SearchDepth    int
	MaxSearchDepth int
	// Seed feeds the search's tie-breaking; 0 seeds from the clock.
	Seed int64
}

// Load parses args (normally os.Args[1:]) with CHESS_* environment
// variables as defaults.
func Load(args []string) (Config, error) {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)

	depth, err := getenvInt("CHESS_SEARCH_DEPTH", 3)
	if err != nil {
		return Config{}, err
	}
	maxDepth, err := getenvInt("CHESS_MAX_SEARCH_DEPTH", 4)
	if err != nil {
		return Config{}, err
	}
	seed, err := getenvInt("CHESS_SEED", 0)
	if err != nil {
		return Config{}, err
	}

	var cfg Config
	fs.StringVar(&cfg.Addr, "addr", getenv("CHESS_ADDR", ":3000"), "listen address")
	fs.StringVar(&cfg.AllowOrigins, "allow-origins", getenv("CHESS_ALLOW_ORIGINS", "http://localhost:5173"), "comma-separated CORS origins")
	fs.IntVar(&cfg.SearchDepth, "depth", depth, "default search depth for automated players")
	fs.IntVar(&cfg.MaxSearchDepth, "max-depth", maxDepth, "largest search depth a game may request")
	fs.Int64Var(&cfg.Seed, "seed", int64(seed), "random seed for move selection (0 = time based)")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("listen address is empty")
	}
	if c.MaxSearchDepth < 1 {
		return fmt.Errorf("max search depth %d: must be at least 1", c.MaxSearchDepth)
	}
	if c.SearchDepth < 1 || c.SearchDepth > c.MaxSearchDepth {
		return fmt.Errorf("search depth %d: must be between 1 and %d", c.SearchDepth, c.MaxSearchDepth)
	}
	return nil
}

// Origins splits AllowOrigins for websocket origin checks.
func (c Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}
