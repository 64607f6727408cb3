// Package session runs a single fight from class selection to the final outcome.
package session

import (
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/monstergame/internal/game/character"
	"github.com/cory-johannsen/monstergame/internal/game/combat"
	"github.com/cory-johannsen/monstergame/internal/game/npc"
)

var (
	// ErrInvalidCharacter is returned when class selection fails. It is fatal to the session.
	ErrInvalidCharacter = errors.New("invalid character choice")
	// ErrInvalidAction is returned by Act for input outside the action menu. It is recoverable.
	ErrInvalidAction = errors.New("invalid action choice")
	// ErrInputClosed marks input that ended before the session resolved.
	ErrInputClosed = errors.New("input closed")
	// ErrWrongState is returned when a transition is attempted from the wrong state.
	ErrWrongState = errors.New("transition not allowed in current state")
)

// State is a position in the session state machine.
type State int

const (
	StateChoosingCharacter State = iota
	StateInCombat
	StateResolved
	// StateAborted is reached only through an invalid class selection.
	StateAborted
)

// String returns a human-readable state label.
func (s State) String() string {
	switch s {
	case StateChoosingCharacter:
		return "choosing_character"
	case StateInCombat:
		return "in_combat"
	case StateResolved:
		return "resolved"
	case StateAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Result is how a resolved session ended.
type Result int

const (
	ResultNone Result = iota
	ResultWon
	ResultLost
	ResultForfeit
)

// String returns a human-readable result label.
func (r Result) String() string {
	switch r {
	case ResultWon:
		return "won"
	case ResultLost:
		return "lost"
	case ResultForfeit:
		return "forfeit"
	default:
		return "none"
	}
}

// Outcome is derived once when the session resolves and never changes afterwards.
type Outcome struct {
	Result     Result
	PlayerName string
	// Rounds counts the attack and heal actions taken.
	Rounds int
}

// PlayerWon reports whether the player defeated the whole roster.
func (o Outcome) PlayerWon() bool { return o.Result == ResultWon }

// Action is a player intent inside the combat loop.
type Action int

const (
	ActionAttack  Action = 1
	ActionHeal    Action = 2
	ActionForfeit Action = 3
)

// Options holds the session policy switches.
type Options struct {
	// SweepAfterDefeat keeps the attack sweep going through the remaining
	// monsters after the player is defeated mid-sweep.
	SweepAfterDefeat bool
}

// Session owns the player's combatant and the roster for the duration of one fight.
// A Session is driven by a single goroutine.
type Session struct {
	id      string
	menu    character.Menu
	roster  *npc.Roster
	player  *combat.Combatant
	state   State
	outcome Outcome
	rounds  int

	roller combat.DamageRoller
	input  Input
	out    Reporter
	logger *zap.Logger
	opts   Options
}

// New creates a Session waiting for class selection.
//
// Precondition: menu must be non-empty; roster, roller, input, out and logger must be non-nil.
// Postcondition: State() == StateChoosingCharacter.
func New(menu character.Menu, roster *npc.Roster, roller combat.DamageRoller, input Input, out Reporter, logger *zap.Logger, opts Options) *Session {
	id := uuid.New().String()
	return &Session{
		id:     id,
		menu:   menu,
		roster: roster,
		state:  StateChoosingCharacter,
		roller: roller,
		input:  input,
		out:    out,
		logger: logger.With(zap.String("session", id)),
		opts:   opts,
	}
}

// ID returns the session identifier used in logs.
func (s *Session) ID() string { return s.id }

// State returns the current state.
func (s *Session) State() State { return s.state }

// Player returns the chosen combatant, or nil before selection.
func (s *Session) Player() *combat.Combatant { return s.player }

// Roster returns the monsters of this session.
func (s *Session) Roster() *npc.Roster { return s.roster }

// Outcome returns the final outcome. It is the zero Outcome until the session resolves.
func (s *Session) Outcome() Outcome { return s.outcome }
