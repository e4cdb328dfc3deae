package config

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// Blur amounts outside this range either vanish or smear the whole frame.
	MinBlurAmount = 0.5
	MaxBlurAmount = 16.0

	DefaultFPSLimit   = 144
	DefaultNoiseScale = 1.0
)

// Settings holds the live-tunable render configuration.
// Input callbacks write it while the frame loop reads it.
type Settings struct {
	mu             sync.RWMutex
	preset         int
	blurOverride   float32 // 0 means use the preset's blur amount
	sortBillboards bool
	clearColor     mgl32.Vec4
	fpsLimit       int
	noiseScale     float32
	noisePath      string
}

// NewSettings returns settings with the Default preset selected.
func NewSettings() *Settings {
	return &Settings{
		preset:         0,
		sortBillboards: true,
		clearColor:     mgl32.Vec4{0, 0, 0, 1},
		fpsLimit:       DefaultFPSLimit,
		noiseScale:     DefaultNoiseScale,
	}
}

// Bloom returns the active bloom preset with the blur override applied.
func (s *Settings) Bloom() BloomSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b := Presets[s.preset]
	if s.blurOverride > 0 {
		b.BlurAmount = s.blurOverride
	}
	return b
}

// BlurAmount returns the effective Gaussian blur amount.
func (s *Settings) BlurAmount() float32 {
	return s.Bloom().BlurAmount
}

// SetBlurAmount overrides the preset's blur amount; values <= 0 remove the override.
func (s *Settings) SetBlurAmount(amount float32) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if amount <= 0 {
		s.blurOverride = 0
		return
	}
	// Clamp to reasonable values
	if amount < MinBlurAmount {
		amount = MinBlurAmount
	}
	if amount > MaxBlurAmount {
		amount = MaxBlurAmount
	}
	s.blurOverride = amount
}

// SelectPreset selects a bloom preset by name and clears the blur override.
func (s *Settings) SelectPreset(name string) error {
	i, err := PresetIndex(name)
	if err != nil {
		return err
	}
	return s.SelectPresetIndex(i)
}

// SelectPresetIndex selects a bloom preset by its position in Presets.
func (s *Settings) SelectPresetIndex(i int) error {
	if i < 0 || i >= len(Presets) {
		return ErrUnknownPreset
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.preset = i
	s.blurOverride = 0
	return nil
}

// CyclePreset advances to the next preset, wrapping around, and returns its name.
func (s *Settings) CyclePreset() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.preset = (s.preset + 1) % len(Presets)
	s.blurOverride = 0
	return Presets[s.preset].Name
}

// PresetName returns the name of the selected preset.
func (s *Settings) PresetName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Presets[s.preset].Name
}

// SortBillboards reports whether billboard batches are sorted back to front.
func (s *Settings) SortBillboards() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortBillboards
}

func (s *Settings) SetSortBillboards(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sortBillboards = enabled
}

// ClearColor returns the scene clear color.
func (s *Settings) ClearColor() mgl32.Vec4 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.clearColor
}

func (s *Settings) SetClearColor(c mgl32.Vec4) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearColor = c
}

// FPSLimit returns the frame cap; 0 disables limiting.
func (s *Settings) FPSLimit() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fpsLimit
}

func (s *Settings) SetFPSLimit(limit int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if limit < 0 {
		limit = 0
	}
	s.fpsLimit = limit
}

// NoiseScale returns the UV scale of the glow noise texture.
func (s *Settings) NoiseScale() float32 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.noiseScale
}

func (s *Settings) SetNoiseScale(scale float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if scale <= 0 {
		scale = DefaultNoiseScale
	}
	s.noiseScale = scale
}

// NoisePath returns the noise texture file; empty means generate one.
func (s *Settings) NoisePath() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.noisePath
}

func (s *Settings) SetNoisePath(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.noisePath = path
}
