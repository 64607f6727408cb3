package combat

// EventType identifies what a narrated Event describes.
type EventType int

const (
	// EventFlavor is variant-specific attack narration ("swings his sword").
	EventFlavor EventType = iota
	// EventAttack announces an attacker, target and damage amount.
	EventAttack
	// EventHealth reports a target's health after being hit.
	EventHealth
	// EventDefeated is emitted when a combatant's health reaches zero or below.
	EventDefeated
	// EventHealed reports a successful heal and the resulting health.
	EventHealed
	// EventCannotHeal reports a heal attempt by a variant without the capability.
	EventCannotHeal
)

// Event is one observable step of a fight. Fields not relevant to Type are zero.
type Event struct {
	Type   EventType
	Actor  string
	Target string
	Amount int
	Health int
	// Variant is the actor's Kind, used to pick flavor text.
	Variant Kind
}

// Narrator receives combat events. It is purely observational.
type Narrator interface {
	Narrate(Event)
}

// NopNarrator discards every event.
type NopNarrator struct{}

// Narrate implements Narrator.
func (NopNarrator) Narrate(Event) {}

// Recorder keeps every narrated event in order.
type Recorder struct {
	Events []Event
}

// Narrate implements Narrator.
func (r *Recorder) Narrate(e Event) { r.Events = append(r.Events, e) }

// OfType returns the recorded events with the given type.
func (r *Recorder) OfType(t EventType) []Event {
	var out []Event
	for _, e := range r.Events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}
