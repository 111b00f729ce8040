package marquee

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. MARQUEE_SWAP_LOCK.
const EnvPrefix = "MARQUEE_"

// Config holds the engine and page timings and the stats endpoint.
type Config struct {
	RevealDelay   time.Duration `yaml:"reveal_delay" env:"REVEAL_DELAY"`
	ExpandDelay   time.Duration `yaml:"expand_delay" env:"EXPAND_DELAY"`
	ShowcaseDelay time.Duration `yaml:"showcase_delay" env:"SHOWCASE_DELAY"`
	GradientDelay time.Duration `yaml:"gradient_delay" env:"GRADIENT_DELAY"`
	DemoDelay     time.Duration `yaml:"demo_delay" env:"DEMO_DELAY"`

	SwapLock        time.Duration `yaml:"swap_lock" env:"SWAP_LOCK"`
	PanelTransition time.Duration `yaml:"panel_transition" env:"PANEL_TRANSITION"`
	CounterDuration time.Duration `yaml:"counter_duration" env:"COUNTER_DURATION"`
	CountUpOffset   float64       `yaml:"count_up_offset" env:"COUNT_UP_OFFSET"`

	BackendURL   string        `yaml:"backend_url" env:"BACKEND_URL"`
	PollInterval time.Duration `yaml:"poll_interval" env:"POLL_INTERVAL"`
}

// DefaultConfig returns the timings the page ships with.
func DefaultConfig() Config {
	return Config{
		RevealDelay:     300 * time.Millisecond,
		ExpandDelay:     500 * time.Millisecond,
		ShowcaseDelay:   500 * time.Millisecond,
		GradientDelay:   500 * time.Millisecond,
		DemoDelay:       50 * time.Millisecond,
		SwapLock:        DefaultSwapLock,
		PanelTransition: DefaultPanelTransition,
		CounterDuration: DefaultCounterDuration,
		CountUpOffset:   DefaultCountUpOffset,
		BackendURL:      "http://localhost:5000",
		PollInterval:    time.Minute,
	}
}

// LoadConfig reads a YAML file over the defaults, then applies MARQUEE_*
// environment overrides. An empty path skips the file.
func LoadConfig(path string) (Config, error) {
	var data []byte
	if path != "" {
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}
	return loadConfig(data)
}

func loadConfig(data []byte) (Config, error) {
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, err
	}
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseConfig decodes YAML over the defaults. Fields absent from data keep
// their default values.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Validate rejects negative durations and a non-positive poll interval.
func (c Config) Validate() error {
	durations := []struct {
		name string
		d    time.Duration
	}{
		{"reveal_delay", c.RevealDelay},
		{"expand_delay", c.ExpandDelay},
		{"showcase_delay", c.ShowcaseDelay},
		{"gradient_delay", c.GradientDelay},
		{"demo_delay", c.DemoDelay},
		{"swap_lock", c.SwapLock},
		{"panel_transition", c.PanelTransition},
		{"counter_duration", c.CounterDuration},
	}
	for _, d := range durations {
		if d.d < 0 {
			return fmt.Errorf("config: %s must not be negative, got %v", d.name, d.d)
		}
	}
	if c.CountUpOffset < 0 {
		return fmt.Errorf("config: count_up_offset must not be negative, got %v", c.CountUpOffset)
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("config: poll_interval must be positive, got %v", c.PollInterval)
	}
	return nil
}
