package config

import (
	"fmt"
	"io"
	"os"

	"github.com/tastavino/recipe-search/internal/domain"
	"github.com/tastavino/recipe-search/internal/storage/pg"
	"gopkg.in/yaml.v3"
)

// Settings is the search subsystem's file-backed configuration: the
// supported-locale list, the index-name prefix and the ranking weights.
type Settings struct {
	Locales     []domain.Locale `yaml:"locales"`
	IndexPrefix string          `yaml:"indexPrefix"`
	Weights     WeightSettings  `yaml:"weights"`
}

type WeightSettings struct {
	Title    float64 `yaml:"title"`
	Excerpt  float64 `yaml:"excerpt"`
	Section  float64 `yaml:"section"`
	Category float64 `yaml:"category"`
}

// RankingWeights converts the configured weights, falling back to the
// tuned defaults for any weight left unset.
func (s *Settings) RankingWeights() pg.Weights {
	weights := pg.DefaultWeights()
	if s.Weights.Title > 0 {
		weights.Title = s.Weights.Title
	}
	if s.Weights.Excerpt > 0 {
		weights.Excerpt = s.Weights.Excerpt
	}
	if s.Weights.Section > 0 {
		weights.Section = s.Weights.Section
	}
	if s.Weights.Category > 0 {
		weights.Category = s.Weights.Category
	}
	return weights
}

func (s *Settings) Validate() error {
	if len(s.Locales) == 0 {
		return fmt.Errorf("at least one locale must be configured")
	}
	seen := make(map[domain.Locale]bool, len(s.Locales))
	for _, locale := range s.Locales {
		if locale == "" {
			return fmt.Errorf("empty locale code")
		}
		if seen[locale] {
			return fmt.Errorf("duplicate locale %q", locale)
		}
		seen[locale] = true
	}
	return nil
}

type Loader struct {
	reader io.Reader
}

func NewLoader(reader io.Reader) *Loader {
	return &Loader{
		reader: reader,
	}
}

func (l *Loader) Load(validate bool) (*Settings, error) {
	decoder := yaml.NewDecoder(l.reader)
	var settings Settings
	if err := decoder.Decode(&settings); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}
	if validate {
		if err := settings.Validate(); err != nil {
			return nil, err
		}
	}
	return &settings, nil
}

// LoadFile loads and validates settings from a YAML file.
func LoadFile(path string) (*Settings, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open settings file: %w", err)
	}
	defer f.Close()

	return NewLoader(f).Load(true)
}
