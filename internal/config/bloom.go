package config

import (
	"errors"
	"strings"
)

var ErrUnknownPreset = errors.New("config: unknown bloom preset")

// BloomSettings holds the designer-tunable bloom parameters
type BloomSettings struct {
	Name string

	// Pixels darker than this are dropped by the extract pass (0..1).
	Threshold float32

	// Standard deviation of the Gaussian blur.
	BlurAmount float32

	BloomIntensity float32
	BaseIntensity  float32

	BloomSaturation float32
	BaseSaturation  float32
}

// Presets is the fixed table of selectable bloom looks.
var Presets = []BloomSettings{
	{Name: "Default", Threshold: 0.25, BlurAmount: 4, BloomIntensity: 1.25, BaseIntensity: 1, BloomSaturation: 1, BaseSaturation: 1},
	{Name: "Soft", Threshold: 0, BlurAmount: 3, BloomIntensity: 1, BaseIntensity: 1, BloomSaturation: 1, BaseSaturation: 1},
	{Name: "Desaturated", Threshold: 0.5, BlurAmount: 8, BloomIntensity: 2, BaseIntensity: 1, BloomSaturation: 0, BaseSaturation: 1},
	{Name: "Saturated", Threshold: 0.25, BlurAmount: 4, BloomIntensity: 2, BaseIntensity: 1, BloomSaturation: 2, BaseSaturation: 0},
	{Name: "Blurry", Threshold: 0, BlurAmount: 2, BloomIntensity: 1, BaseIntensity: 0.1, BloomSaturation: 1, BaseSaturation: 1},
	{Name: "Subtle", Threshold: 0.5, BlurAmount: 2, BloomIntensity: 1, BaseIntensity: 1, BloomSaturation: 1, BaseSaturation: 1},
}

// PresetIndex looks up a preset by case-insensitive name.
func PresetIndex(name string) (int, error) {
	for i, p := range Presets {
		if strings.EqualFold(p.Name, name) {
			return i, nil
		}
	}
	return -1, ErrUnknownPreset
}

// PresetByName returns the named preset.
func PresetByName(name string) (BloomSettings, error) {
	i, err := PresetIndex(name)
	if err != nil {
		return BloomSettings{}, err
	}
	return Presets[i], nil
}

// PresetByIndex returns the preset at i.
func PresetByIndex(i int) (BloomSettings, error) {
	if i < 0 || i >= len(Presets) {
		return BloomSettings{}, ErrUnknownPreset
	}
	return Presets[i], nil
}
