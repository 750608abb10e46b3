package sourcestats

import (
	"fmt"
	"os"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// LanguagesDeclarationFile is the default filename for extra language declarations
const LanguagesDeclarationFile = "languages.toml"

// LanguageDeclaration declares one language in languages.toml
type LanguageDeclaration struct {
	// Name is used in error messages only
	Name string `toml:"name"`

	// Extensions are matched exactly, including the leading dot
	Extensions []string `toml:"extensions"`

	// Style is one of script, brace or none
	Style string `toml:"style,omitempty"`

	// Markers, when set, replace the style's comment prefixes
	Markers []string `toml:"markers,omitempty"`
}

// LanguagesFile represents the root structure of languages.toml
type LanguagesFile struct {
	Version   int                   `toml:"version"`
	Languages []LanguageDeclaration `toml:"language"`
}

// ParseLanguagesFile parses a languages.toml file from the given path
func ParseLanguagesFile(filePath string) (*LanguagesFile, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filePath, err)
	}

	var lf LanguagesFile
	if err := toml.Unmarshal(data, &lf); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filePath, err)
	}

	if lf.Version < 1 {
		lf.Version = 1
	}
	return &lf, nil
}

// Apply registers every declared language in reg. Later declarations
// override earlier ones and the built-in defaults.
func (lf *LanguagesFile) Apply(reg *Registry) error {
	for _, decl := range lf.Languages {
		cls, err := decl.classifier()
		if err != nil {
			return err
		}
		if len(decl.Extensions) == 0 {
			return fmt.Errorf("language %q declares no extensions", decl.Name)
		}
		for _, ext := range decl.Extensions {
			if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
				return fmt.Errorf("language %q: extension %q must start with a dot", decl.Name, ext)
			}
			reg.Register(ext, cls)
		}
	}
	return nil
}

func (d LanguageDeclaration) classifier() (Classifier, error) {
	if len(d.Markers) > 0 {
		for _, m := range d.Markers {
			if m == "" {
				return nil, fmt.Errorf("language %q has an empty comment marker", d.Name)
			}
		}
		return PrefixClassifier{Markers: d.Markers}, nil
	}
	cls, err := ClassifierForStyle(Style(d.Style))
	if err != nil {
		return nil, fmt.Errorf("language %q: %w", d.Name, err)
	}
	return cls, nil
}

// LoadRegistry returns the default registry extended with the declarations
// in filePath. An empty path or a missing file yields the defaults.
func LoadRegistry(filePath string) (*Registry, error) {
	reg := DefaultRegistry()
	if filePath == "" {
		return reg, nil
	}
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return reg, nil
	}

	lf, err := ParseLanguagesFile(filePath)
	if err != nil {
		return nil, err
	}
	if err := lf.Apply(reg); err != nil {
		return nil, err
	}
	return reg, nil
}
