// Package combat implements the combatant model: health bookkeeping, damage,
// healing and the attack exchange shared by player classes and monsters.
package combat

import "github.com/google/uuid"

// Kind tags the closed set of combatant variants.
type Kind int

const (
	KindFighter Kind = iota
	KindCaster
	KindMonster
)

// String returns the variant identifier used in content files.
func (k Kind) String() string {
	switch k {
	case KindFighter:
		return "fighter"
	case KindCaster:
		return "caster"
	case KindMonster:
		return "monster"
	default:
		return "unknown"
	}
}

// ParseKind maps a content variant identifier back to its Kind.
//
// Postcondition: Returns (kind, true) for "fighter", "caster" or "monster"; (0, false) otherwise.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "fighter":
		return KindFighter, true
	case "caster":
		return KindCaster, true
	case "monster":
		return KindMonster, true
	default:
		return 0, false
	}
}

// Combatant is one participant in a fight, either the player's character or a monster.
//
// Invariant: IsDefeated() == (Health <= 0). Health is never clamped.
type Combatant struct {
	ID   string
	Kind Kind
	Name string
	// Health may go negative; anything <= 0 counts as defeated.
	Health int
	// LastDamageTaken is the amount applied by the most recent TakeDamage call.
	LastDamageTaken int
	// HealAmount is the default magnitude used by PerformHealing.
	HealAmount int
}

// NewCombatant creates a combatant with a fresh ID.
//
// Precondition: name must be non-empty.
func NewCombatant(kind Kind, name string, health int) *Combatant {
	return &Combatant{
		ID:     uuid.New().String(),
		Kind:   kind,
		Name:   name,
		Health: health,
	}
}

// IsDefeated reports whether Health has dropped to zero or below.
func (c *Combatant) IsDefeated() bool {
	return c.Health <= 0
}

// CanHeal reports whether the variant has a healing capability.
func (c *Combatant) CanHeal() bool {
	switch c.Kind {
	case KindCaster:
		return true
	default:
		return false
	}
}

// TakeDamage subtracts amount from Health and records it as LastDamageTaken.
// A defeat event is narrated whenever Health ends at or below zero.
//
// Precondition: amount >= 0; n must be non-nil.
// Postcondition: Health == old Health - amount.
func (c *Combatant) TakeDamage(amount int, n Narrator) {
	c.Health -= amount
	c.LastDamageTaken = amount
	if c.IsDefeated() {
		n.Narrate(Event{Type: EventDefeated, Actor: c.Name, Health: c.Health})
	}
}

// Heal adds amount to Health without any upper bound.
//
// Precondition: amount >= 0; n must be non-nil.
// Postcondition: Health == old Health + amount.
func (c *Combatant) Heal(amount int, n Narrator) {
	c.Health += amount
	n.Narrate(Event{Type: EventHealed, Actor: c.Name, Amount: amount, Health: c.Health})
}

// PerformHealing invokes the variant's healing capability with HealAmount.
// Returns the amount of health restored.
func (c *Combatant) PerformHealing(n Narrator) int {
	return c.PerformHealingBy(c.HealAmount, n)
}

// PerformHealingBy invokes the variant's healing capability with an explicit amount.
// Variants without the capability narrate their inability and leave Health untouched.
//
// Postcondition: Returns amount if CanHeal(), 0 otherwise.
func (c *Combatant) PerformHealingBy(amount int, n Narrator) int {
	if !c.CanHeal() {
		n.Narrate(Event{Type: EventCannotHeal, Actor: c.Name, Health: c.Health})
		return 0
	}
	c.Heal(amount, n)
	return amount
}
