package segal

import (
	"errors"
	"testing"

	"go.uber.org/multierr"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.WindowSize != 2 || cfg.Step != 1 {
		t.Errorf("expected window=2 step=1, got %v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected default config to be valid, got %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	err := Config{WindowSize: 0, Step: 1}.Validate()
	if !errors.Is(err, ErrInvalidWindowSize) {
		t.Errorf("expected ErrInvalidWindowSize, got %v", err)
	}
	if errors.Is(err, ErrInvalidStep) {
		t.Errorf("did not expect ErrInvalidStep, got %v", err)
	}

	var ce *ConfigError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *ConfigError, got %T", err)
	}
	if ce.Field != "window size" || ce.Value != 0 {
		t.Errorf("unexpected config error fields: %+v", ce)
	}
	if ce.Error() != "invalid window size 0: window size must be at least 1" {
		t.Errorf("unexpected message %q", ce.Error())
	}
}

func TestConfigValidateCombines(t *testing.T) {
	err := Config{WindowSize: -3, Step: 0}.Validate()
	if !errors.Is(err, ErrInvalidWindowSize) {
		t.Errorf("expected ErrInvalidWindowSize, got %v", err)
	}
	if !errors.Is(err, ErrInvalidStep) {
		t.Errorf("expected ErrInvalidStep, got %v", err)
	}
	if n := len(multierr.Errors(err)); n != 2 {
		t.Errorf("expected 2 combined errors, got %d", n)
	}
}

func TestRate(t *testing.T) {
	r := Rate{Out: 3, In: 2}
	if r.Float64() != 1.5 {
		t.Errorf("expected 1.5, got %f", r.Float64())
	}
	if r.String() != "3/2" {
		t.Errorf("expected \"3/2\", got %q", r.String())
	}
	if (Rate{Out: 1}).Float64() != 0 {
		t.Error("expected zero rate for zero input")
	}
}
