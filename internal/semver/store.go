package semver

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"readmegen/internal/paths"
)

// Store persists a Version in a YAML or TOML file chosen by extension.
type Store struct {
	Path string
}

// NewStore creates a store backed by path.
func NewStore(path string) *Store {
	return &Store{Path: path}
}

func (s *Store) isTOML() bool {
	return strings.EqualFold(filepath.Ext(s.Path), ".toml")
}

// Load reads the stored version. A missing file yields Initial.
func (s *Store) Load() (Version, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return Initial, nil
		}
		return Version{}, fmt.Errorf("failed to read %s: %w", s.Path, err)
	}

	var v Version
	if s.isTOML() {
		if _, err := toml.Decode(string(data), &v); err != nil {
			return Version{}, fmt.Errorf("failed to parse %s: %w", s.Path, err)
		}
	} else {
		if err := yaml.Unmarshal(data, &v); err != nil {
			return Version{}, fmt.Errorf("failed to parse %s: %w", s.Path, err)
		}
	}

	if err := v.Validate(); err != nil {
		return Version{}, fmt.Errorf("%s: %w", s.Path, err)
	}
	return v, nil
}

// Save writes v, creating the parent directory if needed.
func (s *Store) Save(v Version) error {
	if err := v.Validate(); err != nil {
		return err
	}

	var buf bytes.Buffer
	if s.isTOML() {
		if err := toml.NewEncoder(&buf).Encode(v); err != nil {
			return fmt.Errorf("failed to encode version: %w", err)
		}
	} else {
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode version: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to encode version: %w", err)
		}
	}

	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}
	return paths.WriteFileAtomic(s.Path, buf.Bytes(), 0644)
}
