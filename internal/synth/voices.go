package synth

import (
	"slices"
	"strings"
)

// Voice is one speaker preset of the TTS service.
type Voice struct {
	Key   string
	Name  string
	Group string
}

var presets = []Voice{
	{Key: "binh", Name: "Binh", Group: "Male Northern"},
	{Key: "tuyen", Name: "Tuyen", Group: "Male Northern"},
	{Key: "nguyen", Name: "Nguyen", Group: "Male Southern"},
	{Key: "son", Name: "Son", Group: "Male Southern"},
	{Key: "vinh", Name: "Vinh", Group: "Male Southern"},
	{Key: "huong", Name: "Huong", Group: "Female Northern"},
	{Key: "ly", Name: "Ly", Group: "Female Northern"},
	{Key: "ngoc", Name: "Ngoc", Group: "Female Northern"},
	{Key: "doan", Name: "Doan", Group: "Female Southern"},
	{Key: "dung", Name: "Dung", Group: "Female Southern"},
}

// fallbackVoices are tried in order when the requested preset is missing.
var fallbackVoices = []string{"Binh", "Tuyen"}

// Voices returns the preset list.
func Voices() []Voice {
	return slices.Clone(presets)
}

// presetName maps a lower-case key to its preset name. Unknown keys are
// capitalised as they are.
func presetName(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	for _, v := range presets {
		if v.Key == key {
			return v.Name
		}
	}
	if key == "" {
		return ""
	}
	return strings.ToUpper(key[:1]) + key[1:]
}

// ResolveVoice picks the preset to send for requested. When available is
// known and lacks the preset, the first available fallback voice is used.
// An empty available list means the service did not report its voices.
func ResolveVoice(requested string, available []string) string {
	target := presetName(requested)
	if len(available) == 0 {
		if target == "" {
			return fallbackVoices[0]
		}
		return target
	}
	if slices.Contains(available, target) {
		return target
	}
	for _, v := range fallbackVoices {
		if slices.Contains(available, v) {
			return v
		}
	}
	return available[0]
}
