package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// PhrasesConfig holds the ordered uncertainty/refusal phrase set the rule
// filter scans for. Order matters: the earliest-listed phrase wins ties.
type PhrasesConfig struct {
	Phrases struct {
		Uncertainty []string `yaml:"uncertainty"`
	} `yaml:"phrases"`
}

// LoadPhrasesConfig reads the phrase set from PHRASES_CONFIG_PATH, or
// configs/phrases.yaml by default.
func LoadPhrasesConfig() (*PhrasesConfig, error) {
	path := os.Getenv("PHRASES_CONFIG_PATH")
	if path == "" {
		path = "configs/phrases.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg PhrasesConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *PhrasesConfig) Validate() error {
	for i, phrase := range c.Phrases.Uncertainty {
		if phrase == "" {
			return fmt.Errorf("phrases.uncertainty[%d] is empty", i)
		}
	}
	return nil
}
