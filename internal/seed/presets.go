package seed

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Preset is a named seeding profile loadable from a YAML file.
type Preset struct {
	Name       string `yaml:"name"`
	Users      int    `yaml:"users"`
	Posts      int    `yaml:"posts"`
	Likes      int    `yaml:"likes"`
	Clean      bool   `yaml:"clean"`
	SkipBcrypt bool   `yaml:"skip_bcrypt"`
}

type presetFile struct {
	Presets []Preset `yaml:"presets"`
}

// builtinPresets are available without a preset file.
var builtinPresets = []Preset{
	{Name: "Minimal", Users: 5, Posts: 10, Likes: 20, Clean: true},
	{Name: "Standard", Users: 50, Posts: 200, Likes: 800, Clean: true},
	{Name: "MegaPopulated", Users: 500, Posts: 5000, Likes: 30000, Clean: true, SkipBcrypt: true},
}

// LoadPresets parses presets from a YAML file and merges them over the
// built-in set. Presets sharing a name override the built-in.
func LoadPresets(path string) ([]Preset, error) {
	if path == "" {
		return builtinPresets, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read preset file: %w", err)
	}

	var f presetFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse preset file: %w", err)
	}

	merged := make([]Preset, 0, len(builtinPresets)+len(f.Presets))
	overridden := make(map[string]bool, len(f.Presets))
	for _, p := range f.Presets {
		overridden[p.Name] = true
	}
	for _, p := range builtinPresets {
		if !overridden[p.Name] {
			merged = append(merged, p)
		}
	}
	merged = append(merged, f.Presets...)
	return merged, nil
}

// FindPreset locates a preset by name.
func FindPreset(presets []Preset, name string) (Preset, error) {
	for _, p := range presets {
		if p.Name == name {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("unknown preset %q", name)
}

// Options converts the preset into seeding options.
func (p Preset) Options() Options {
	return Options{
		NumUsers:    p.Users,
		NumPosts:    p.Posts,
		NumLikes:    p.Likes,
		ShouldClean: p.Clean,
		SkipBcrypt:  p.SkipBcrypt,
	}
}
