package combat

// Damage bounds for a single blow.
const (
	MinDamage = 1
	MaxDamage = 10
)

// DamageRoller produces the magnitude of one blow.
//
// Postcondition: RollDamage returns a value in [MinDamage, MaxDamage].
type DamageRoller interface {
	RollDamage() int
}

// AttackResult holds the outcome of a single attack.
type AttackResult struct {
	// AttackerID is the attacking combatant's ID.
	AttackerID string
	// TargetID is the defending combatant's ID.
	TargetID string
	// Damage is the rolled damage applied to the target.
	Damage int
	// TargetHealth is the target's health after the blow.
	TargetHealth int
	// Defeated is true when the blow left the target defeated.
	Defeated bool
}

// GenerateRandomDamage draws one damage value from roller.
//
// Postcondition: MinDamage <= result <= MaxDamage.
func GenerateRandomDamage(roller DamageRoller) int {
	return roller.RollDamage()
}

// flavorFor reports whether a variant narrates its attacks before striking.
func flavorFor(k Kind) bool {
	switch k {
	case KindFighter, KindCaster:
		return true
	default:
		return false
	}
}

// Attack rolls damage for attacker and applies it to target exactly once,
// narrating the variant flavor, the blow, and the target's resulting health.
//
// Precondition: attacker, target, roller and n must be non-nil.
// Postcondition: target.Health decreases by result.Damage; attacker is unchanged.
func Attack(attacker, target *Combatant, roller DamageRoller, n Narrator) AttackResult {
	if flavorFor(attacker.Kind) {
		n.Narrate(Event{Type: EventFlavor, Actor: attacker.Name, Variant: attacker.Kind})
	}

	dmg := GenerateRandomDamage(roller)
	n.Narrate(Event{
		Type:    EventAttack,
		Actor:   attacker.Name,
		Target:  target.Name,
		Amount:  dmg,
		Variant: attacker.Kind,
	})
	target.TakeDamage(dmg, n)
	n.Narrate(Event{Type: EventHealth, Actor: target.Name, Health: target.Health})

	return AttackResult{
		AttackerID:   attacker.ID,
		TargetID:     target.ID,
		Damage:       dmg,
		TargetHealth: target.Health,
		Defeated:     target.IsDefeated(),
	}
}
