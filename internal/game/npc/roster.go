package npc

import (
	"fmt"

	"github.com/cory-johannsen/monstergame/internal/game/combat"
)

// Roster is the ordered set of monsters encountered in one session.
// Defeated monsters stay in place and are skipped by callers.
type Roster struct {
	monsters []*combat.Combatant
}

// NewRoster instantiates one monster per entry of order, in that order.
// The same template may appear more than once.
//
// Precondition: order must be non-empty.
// Postcondition: Returns a Roster with len(order) monsters, or an error naming an unknown template.
func NewRoster(templates []*Template, order []string) (*Roster, error) {
	if len(order) == 0 {
		return nil, fmt.Errorf("roster: at least one monster is required")
	}
	byID := make(map[string]*Template, len(templates))
	for _, t := range templates {
		byID[t.ID] = t
	}
	r := &Roster{monsters: make([]*combat.Combatant, 0, len(order))}
	for _, id := range order {
		tmpl, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("roster: unknown npc template %q", id)
		}
		r.monsters = append(r.monsters, tmpl.NewInstance())
	}
	return r, nil
}

// RosterOf wraps already-built monsters, preserving their order.
func RosterOf(monsters ...*combat.Combatant) *Roster {
	cp := make([]*combat.Combatant, len(monsters))
	copy(cp, monsters)
	return &Roster{monsters: cp}
}

// Len returns the number of monsters, defeated ones included.
func (r *Roster) Len() int { return len(r.monsters) }

// All returns every monster in encounter order.
func (r *Roster) All() []*combat.Combatant { return r.monsters }

// Living returns the monsters that are not defeated, in encounter order.
func (r *Roster) Living() []*combat.Combatant {
	var alive []*combat.Combatant
	for _, m := range r.monsters {
		if !m.IsDefeated() {
			alive = append(alive, m)
		}
	}
	return alive
}

// AllDefeated reports whether every monster is defeated.
func (r *Roster) AllDefeated() bool {
	for _, m := range r.monsters {
		if !m.IsDefeated() {
			return false
		}
	}
	return true
}

// Names returns the display names in encounter order.
func (r *Roster) Names() []string {
	names := make([]string, 0, len(r.monsters))
	for _, m := range r.monsters {
		names = append(names, m.Name)
	}
	return names
}
