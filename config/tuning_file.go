package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadTuning reads a Tuning override from a YAML file. Missing fields keep
// their DefaultTuning() value.
func LoadTuning(path string) (Tuning, error) {
	t := DefaultTuning()

	data, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("config: read tuning file: %w", err)
	}
	if err := yaml.Unmarshal(data, &t); err != nil {
		return t, fmt.Errorf("config: parse tuning file: %w", err)
	}
	return t, nil
}
