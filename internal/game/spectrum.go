package game

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Spectrum is an ordered pair of opposite concept labels defining the ends
// of the guessing range.
type Spectrum struct {
	Left  string `json:"left" yaml:"left"`
	Right string `json:"right" yaml:"right"`
}

// MinCatalogSize is the smallest catalog the server will accept.
const MinCatalogSize = 10

type catalogFile struct {
	Spectrums []Spectrum `yaml:"spectrums"`
}

// LoadCatalog parses a YAML spectrum catalog and validates it. The server
// fails fast at startup if the embedded catalog is unusable.
func LoadCatalog(data []byte) ([]Spectrum, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("unable to parse spectrum catalog: %w", err)
	}

	if len(f.Spectrums) < MinCatalogSize {
		return nil, fmt.Errorf("spectrum catalog needs at least %d entries, got %d", MinCatalogSize, len(f.Spectrums))
	}

	for i, s := range f.Spectrums {
		if s.Left == "" || s.Right == "" {
			return nil, fmt.Errorf("spectrum entry %d is missing a label", i)
		}
	}

	return f.Spectrums, nil
}
