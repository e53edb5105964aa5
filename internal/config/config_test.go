package config

import (
	"reflect"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"CHESS_ADDR", "CHESS_ALLOW_ORIGINS", "CHESS_SEARCH_DEPTH", "CHESS_MAX_SEARCH_DEPTH", "CHESS_SEED"} {
		t.Setenv(key, "")
	}
	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":3000" || cfg.SearchDepth != 3 || cfg.MaxSearchDepth != 4 {
		t.Fatalf("defaults = %+v", cfg)
	}
	if cfg.Seed == 0 {
		t.Fatalf("seed not derived from the clock")
	}
}

func TestLoadEnvAndFlags(t *testing.T) {
	t.Setenv("CHESS_ADDR", ":8080")
	t.Setenv("CHESS_SEARCH_DEPTH", "2")
	t.Setenv("CHESS_SEED", "17")
	t.Setenv("CHESS_ALLOW_ORIGINS", "http://a.test, http://b.test,")

	cfg, err := Load([]string{"-depth", "4"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":8080" || cfg.Seed != 17 {
		t.Fatalf("env not applied: %+v", cfg)
	}
	if cfg.SearchDepth != 4 {
		t.Fatalf("flag should override env, depth %d", cfg.SearchDepth)
	}
	if got := cfg.Origins(); !reflect.DeepEqual(got, []string{"http://a.test", "http://b.test"}) {
		t.Fatalf("origins = %q", got)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{name: "non-numeric depth", env: map[string]string{"CHESS_SEARCH_DEPTH": "deep"}},
		{name: "depth above max", args: []string{"-depth", "5", "-max-depth", "4"}},
		{name: "zero depth", args: []string{"-depth", "0"}},
		{name: "empty address", args: []string{"-addr", ""}},
		{name: "unknown flag", args: []string{"-verbose"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(tt.args); err == nil {
				t.Fatalf("Load(%v) succeeded", tt.args)
			}
		})
	}
}
