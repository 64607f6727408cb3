// Package npc provides monster template definitions and the ordered roster
// of monsters the player fights.
package npc

import (
	"fmt"
	"io/fs"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/monstergame/content"
	"github.com/cory-johannsen/monstergame/internal/game/combat"
)

// Template defines a reusable monster loaded from YAML.
type Template struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Health      int    `yaml:"health"`
}

// Validate checks that the template satisfies basic invariants.
// An empty Name is derived from ID, e.g. "cave_troll" becomes "Cave Troll".
//
// Postcondition: Returns nil iff ID is non-empty and Health >= 1.
func (t *Template) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("npc template: id must not be empty")
	}
	if t.Health < 1 {
		return fmt.Errorf("npc template %q: health must be >= 1", t.ID)
	}
	if t.Name == "" {
		t.Name = cases.Title(language.English).String(strings.ReplaceAll(t.ID, "_", " "))
	}
	return nil
}

// NewInstance creates a live monster from the template.
//
// Postcondition: Kind == KindMonster; Health == t.Health.
func (t *Template) NewInstance() *combat.Combatant {
	return combat.NewCombatant(combat.KindMonster, t.Name, t.Health)
}

// LoadTemplateFromBytes parses a single monster template from raw YAML bytes.
func LoadTemplateFromBytes(data []byte) (*Template, error) {
	var tmpl Template
	if err := yaml.Unmarshal(data, &tmpl); err != nil {
		return nil, fmt.Errorf("parsing template YAML: %w", err)
	}
	if err := tmpl.Validate(); err != nil {
		return nil, err
	}
	return &tmpl, nil
}

// LoadTemplates reads all YAML files in dir of fsys and returns the parsed templates.
//
// Postcondition: Returns all templates or an error on the first parse or
// validate failure; on error, the partial result is discarded.
func LoadTemplates(fsys fs.FS, dir string) ([]*Template, error) {
	files, err := content.YAMLFiles(fsys, dir)
	if err != nil {
		return nil, err
	}
	templates := make([]*Template, 0, len(files))
	for _, p := range files {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", p, err)
		}
		tmpl, err := LoadTemplateFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("loading %q: %w", p, err)
		}
		templates = append(templates, tmpl)
	}
	return templates, nil
}
