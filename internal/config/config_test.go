package config

import (
	"errors"
	"testing"
)

func TestPresetLookup(t *testing.T) {
	tests := []struct {
		name    string
		want    int
		wantErr bool
	}{
		{"Default", 0, false},
		{"soft", 1, false},
		{"DESATURATED", 2, false},
		{"Subtle", 5, false},
		{"Neon", -1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PresetIndex(tt.name)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownPreset) {
					t.Fatalf("PresetIndex(%q): got err %v, want ErrUnknownPreset", tt.name, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Fatalf("PresetIndex(%q) = %d, %v; want %d", tt.name, got, err, tt.want)
			}
		})
	}
}

func TestPresetByIndexBounds(t *testing.T) {
	if _, err := PresetByIndex(-1); !errors.Is(err, ErrUnknownPreset) {
		t.Fatalf("index -1: got %v", err)
	}
	if _, err := PresetByIndex(len(Presets)); !errors.Is(err, ErrUnknownPreset) {
		t.Fatalf("index len: got %v", err)
	}
	p, err := PresetByIndex(3)
	if err != nil || p.Name != "Saturated" {
		t.Fatalf("index 3: got %+v, %v", p, err)
	}
}

func TestBlurOverride(t *testing.T) {
	s := NewSettings()
	if got := s.BlurAmount(); got != Presets[0].BlurAmount {
		t.Fatalf("default blur: got %f", got)
	}

	s.SetBlurAmount(100)
	if got := s.BlurAmount(); got != MaxBlurAmount {
		t.Fatalf("clamped blur: got %f, want %f", got, MaxBlurAmount)
	}

	s.SetBlurAmount(0.1)
	if got := s.BlurAmount(); got != MinBlurAmount {
		t.Fatalf("clamped blur: got %f, want %f", got, MinBlurAmount)
	}

	// Selecting a preset drops the override.
	if err := s.SelectPreset("Blurry"); err != nil {
		t.Fatal(err)
	}
	if got := s.BlurAmount(); got != 2 {
		t.Fatalf("blurry blur: got %f, want 2", got)
	}
}

func TestCyclePresetWraps(t *testing.T) {
	s := NewSettings()
	for range Presets {
		s.CyclePreset()
	}
	if s.PresetName() != Presets[0].Name {
		t.Fatalf("after full cycle: got %s", s.PresetName())
	}
}

func TestSelectPresetIndexRejectsOutOfRange(t *testing.T) {
	s := NewSettings()
	if err := s.SelectPresetIndex(42); !errors.Is(err, ErrUnknownPreset) {
		t.Fatalf("got %v", err)
	}
	if s.PresetName() != "Default" {
		t.Fatalf("selection changed on error: %s", s.PresetName())
	}
}

func TestFPSLimitClamp(t *testing.T) {
	s := NewSettings()
	s.SetFPSLimit(-5)
	if s.FPSLimit() != 0 {
		t.Fatalf("got %d, want 0", s.FPSLimit())
	}
}
