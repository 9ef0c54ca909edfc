package adapter

import "testing"

func TestLoadFromEnvOverridesBase(t *testing.T) {
	t.Setenv("TETRIS_AI_HOST", "0.0.0.0")
	t.Setenv("TETRIS_AI_PORT", "9999")
	t.Setenv("TETRIS_AI_OBS_HZ", "30")

	cfg := LoadFromEnv(DefaultConfig())
	if cfg.Host != "0.0.0.0" || cfg.Port != 9999 || cfg.ObsHz != 30 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadFromEnvIgnoresOutOfRangeObsHz(t *testing.T) {
	t.Setenv("TETRIS_AI_OBS_HZ", "1000")
	cfg := LoadFromEnv(DefaultConfig())
	if cfg.ObsHz != DefaultConfig().ObsHz {
		t.Fatalf("expected out-of-range obs_hz to be ignored, got %d", cfg.ObsHz)
	}
}

func TestObsIntervalMS(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ObsHz = 20
	if got := cfg.ObsIntervalMS(); got != 50 {
		t.Fatalf("expected 50ms at 20Hz, got %d", got)
	}
}
