package config

import (
	"errors"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// CycleCfg declares one election cycle the service publishes.
type CycleCfg struct {
	ID      string `yaml:"id" json:"id"`
	Name    string `yaml:"name" json:"name"`
	Year    int    `yaml:"year" json:"year"`
	Default bool   `yaml:"default" json:"default"`
}

// DataCfg points at the published dataset tree: a local directory or an HTTP
// base URL, never both.
type DataCfg struct {
	Root    string `yaml:"root" json:"root"`
	BaseURL string `yaml:"base_url" json:"base_url"`
}

// DirectoryCfg tunes the listing views.
type DirectoryCfg struct {
	DebounceMs     int `yaml:"debounce_ms" json:"debounce_ms"`
	SuggestLimit   int `yaml:"suggest_limit" json:"suggest_limit"`
	DetailCacheTTL int `yaml:"detail_cache_ttl_seconds" json:"detail_cache_ttl_seconds"`
}

// AppCfg is the whole cycles manifest.
type AppCfg struct {
	Data      DataCfg      `yaml:"data" json:"data"`
	Cycles    []CycleCfg   `yaml:"cycles" json:"cycles"`
	Directory DirectoryCfg `yaml:"directory" json:"directory"`
}

var C AppCfg

// Load reads the cycles manifest and applies env overrides.
func Load(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(b, &C); err != nil {
		return err
	}

	// ENV overrides
	if root := os.Getenv("DATA_ROOT"); root != "" {
		C.Data.Root = root
		C.Data.BaseURL = ""
	}
	if base := os.Getenv("DATA_BASE_URL"); base != "" {
		C.Data.BaseURL = base
	}

	if len(C.Cycles) == 0 {
		return errors.New("cycles manifest declares no cycles")
	}
	if C.Directory.DebounceMs <= 0 {
		C.Directory.DebounceMs = 200
	}
	if C.Directory.SuggestLimit <= 0 {
		C.Directory.SuggestLimit = 8
	}
	if C.Directory.DetailCacheTTL <= 0 {
		C.Directory.DetailCacheTTL = 3600
	}
	return nil
}

// DefaultCycle returns the cycle marked default, falling back to the first.
func DefaultCycle() CycleCfg {
	for _, c := range C.Cycles {
		if c.Default {
			return c
		}
	}
	return C.Cycles[0]
}

// KnownCycle reports whether the manifest declares a cycle id.
func KnownCycle(id string) bool {
	for _, c := range C.Cycles {
		if c.ID == id {
			return true
		}
	}
	return false
}

func RequestTimeout() time.Duration { return 1500 * time.Millisecond }
