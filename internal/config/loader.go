package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadBlast loads Blast configuration.
// Search order: customPath -> ~/.blast/configs/blast.yaml -> ./configs/blast.yaml -> embedded default
//
// Files are decoded over the defaults, so a file only needs the fields it
// changes.
func LoadBlast(customPath string) (BlastConfig, error) {
	cfg := DefaultBlastConfig()

	// Custom path must exist and parse
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	candidates := []string{userConfigPath("blast.yaml"), filepath.Join("configs", "blast.yaml")}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		loaded := DefaultBlastConfig()
		if err := yaml.Unmarshal(data, &loaded); err == nil {
			return loaded, nil
		}
	}

	loaded := DefaultBlastConfig()
	if err := yaml.Unmarshal(defaultBlastYAML, &loaded); err != nil {
		return cfg, nil // Fallback to hardcoded if embed fails
	}
	return loaded, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".blast", "configs", filename)
}
