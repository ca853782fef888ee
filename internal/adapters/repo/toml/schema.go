package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version int           `toml:"version"`
	Papers  []paperSchema `toml:"saved_papers"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported library schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type paperSchema struct {
	Title    string   `toml:"title"`
	Authors  string   `toml:"authors"`
	Abstract string   `toml:"abstract"`
	Year     *int     `toml:"year,omitempty"`
	Venue    string   `toml:"venue,omitempty"`
	Tags     []string `toml:"tags,omitempty"`
	SavedAt  string   `toml:"saved_at"`
}
