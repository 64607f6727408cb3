// Package character defines the player-selectable classes and builds the
// player's combatant from them.
package character

import (
	"fmt"
	"io/fs"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/monstergame/content"
	"github.com/cory-johannsen/monstergame/internal/game/combat"
)

// DefaultHealAmount is the health restored per heal when a healer class leaves heal_amount unset.
const DefaultHealAmount = 20

// Class defines a playable character class.
type Class struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	// Variant is the combatant variant identifier: "fighter" or "caster".
	Variant string `yaml:"variant"`
	// Choice is the number the player enters to select this class.
	Choice int `yaml:"choice"`
	Health int `yaml:"health"`
	// HealAmount is ignored for variants without a healing capability.
	HealAmount int `yaml:"heal_amount"`
	// PlayerName is the display name of the combatant built from this class.
	PlayerName string `yaml:"player_name"`
}

// Kind returns the combatant variant of the class.
//
// Precondition: Validate must have succeeded.
func (c *Class) Kind() combat.Kind {
	k, _ := combat.ParseKind(c.Variant)
	return k
}

// DisplayName returns the name the player's combatant will carry.
func (c *Class) DisplayName() string {
	if c.PlayerName != "" {
		return c.PlayerName
	}
	return c.Name
}

// Validate checks the class invariants and fills defaults.
//
// Postcondition: Returns nil iff ID and Name are non-empty, Variant is a player
// variant, Choice >= 1 and Health >= 1. A caster's HealAmount is DefaultHealAmount when unset.
func (c *Class) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("class: id must not be empty")
	}
	if c.Name == "" {
		return fmt.Errorf("class %q: name must not be empty", c.ID)
	}
	k, ok := combat.ParseKind(c.Variant)
	if !ok || k == combat.KindMonster {
		return fmt.Errorf("class %q: variant must be one of [fighter, caster], got %q", c.ID, c.Variant)
	}
	if c.Choice < 1 {
		return fmt.Errorf("class %q: choice must be >= 1", c.ID)
	}
	if c.Health < 1 {
		return fmt.Errorf("class %q: health must be >= 1", c.ID)
	}
	if c.HealAmount < 0 {
		return fmt.Errorf("class %q: heal_amount must not be negative", c.ID)
	}
	if c.HealAmount == 0 && k == combat.KindCaster {
		c.HealAmount = DefaultHealAmount
	}
	return nil
}

// NewCombatant builds the player's combatant for this class.
//
// Postcondition: Health == c.Health; Name == c.DisplayName().
func (c *Class) NewCombatant() *combat.Combatant {
	p := combat.NewCombatant(c.Kind(), c.DisplayName(), c.Health)
	p.HealAmount = c.HealAmount
	return p
}

// LoadClassFromBytes parses and validates a single class from raw YAML.
func LoadClassFromBytes(data []byte) (*Class, error) {
	var c Class
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing class YAML: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadClasses reads every YAML file under dir in fsys and returns the classes
// ordered by Choice.
//
// Postcondition: Returns a non-empty Menu with unique IDs and choices, or an error.
func LoadClasses(fsys fs.FS, dir string) (Menu, error) {
	files, err := content.YAMLFiles(fsys, dir)
	if err != nil {
		return nil, err
	}
	classes := make([]*Class, 0, len(files))
	for _, p := range files {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", p, err)
		}
		c, err := LoadClassFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", p, err)
		}
		classes = append(classes, c)
	}
	return NewMenu(classes)
}

// Menu is the ordered list of selectable classes.
type Menu []*Class

// NewMenu orders classes by Choice and rejects duplicate IDs or choices.
func NewMenu(classes []*Class) (Menu, error) {
	if len(classes) == 0 {
		return nil, fmt.Errorf("class menu: no classes defined")
	}
	ids := make(map[string]bool, len(classes))
	choices := make(map[int]string, len(classes))
	for _, c := range classes {
		if ids[c.ID] {
			return nil, fmt.Errorf("class menu: duplicate class id %q", c.ID)
		}
		ids[c.ID] = true
		if other, ok := choices[c.Choice]; ok {
			return nil, fmt.Errorf("class menu: classes %q and %q share choice %d", other, c.ID, c.Choice)
		}
		choices[c.Choice] = c.ID
	}
	m := make(Menu, len(classes))
	copy(m, classes)
	sort.Slice(m, func(i, j int) bool { return m[i].Choice < m[j].Choice })
	return m, nil
}

// Select returns the class whose Choice equals choice.
//
// Postcondition: Returns (class, true) if found, or (nil, false).
func (m Menu) Select(choice int) (*Class, bool) {
	for _, c := range m {
		if c.Choice == choice {
			return c, true
		}
	}
	return nil, false
}
