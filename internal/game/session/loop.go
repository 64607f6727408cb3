package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/monstergame/internal/game/combat"
)

// Run drives the session from class selection to resolution.
//
// An invalid class selection, including unavailable input, aborts the session
// and returns an error wrapping ErrInvalidCharacter. Invalid actions are
// reported and re-prompted. If input becomes unavailable during combat the
// session resolves as a forfeit.
//
// Postcondition: On nil error, State() == StateResolved and the returned Outcome equals Outcome().
func (s *Session) Run(ctx context.Context) (Outcome, error) {
	s.out.Report(Notice{Type: NoticeWelcome})

	line, err := s.input.Ask(ctx, CharacterPrompt(s.menu))
	if err != nil {
		s.out.Report(Notice{Type: NoticeInvalidCharacter})
		s.abort()
		return Outcome{}, fmt.Errorf("%w: reading selection: %w", ErrInvalidCharacter, inputErr(err))
	}
	if err := s.ChooseCharacter(line); err != nil {
		return Outcome{}, err
	}

	for !s.CheckTermination() {
		line, err := s.input.Ask(ctx, ActionPrompt)
		if err != nil {
			s.logger.Warn("input unavailable during combat; treating as forfeit", zap.Error(inputErr(err)))
			s.forfeit()
			break
		}
		if err := s.Act(line); err != nil && !errors.Is(err, ErrInvalidAction) {
			return s.outcome, err
		}
	}
	return s.outcome, nil
}

// ChooseCharacter applies the class selection line.
//
// Postcondition: On success State() == StateInCombat and Player() is non-nil.
// On an invalid line State() == StateAborted and the error wraps ErrInvalidCharacter.
func (s *Session) ChooseCharacter(line string) error {
	if s.state != StateChoosingCharacter {
		return fmt.Errorf("choosing character in state %s: %w", s.state, ErrWrongState)
	}
	choice, ok := parseChoice(line)
	if !ok {
		s.out.Report(Notice{Type: NoticeInvalidCharacter})
		s.abort()
		return fmt.Errorf("%w: %q", ErrInvalidCharacter, strings.TrimSpace(line))
	}
	class, ok := s.menu.Select(choice)
	if !ok {
		s.out.Report(Notice{Type: NoticeInvalidCharacter})
		s.abort()
		return fmt.Errorf("%w: %d", ErrInvalidCharacter, choice)
	}

	s.player = class.NewCombatant()
	s.state = StateInCombat
	s.logger.Info("character chosen",
		zap.String("class", class.ID),
		zap.String("player", s.player.Name),
		zap.Int("health", s.player.Health),
		zap.Strings("roster", s.roster.Names()),
	)
	s.out.Report(Notice{Type: NoticeCharacterChosen, Player: s.player.Name})
	s.out.Report(Notice{Type: NoticeEncounter, Monsters: s.roster.Names()})
	return nil
}

// CheckTermination evaluates the end-of-fight predicate, resolving the session
// when it holds. Victory is checked before defeat.
//
// Postcondition: Returns true iff State() is StateResolved or StateAborted.
func (s *Session) CheckTermination() bool {
	switch s.state {
	case StateResolved, StateAborted:
		return true
	case StateInCombat:
	default:
		return false
	}
	switch {
	case s.roster.AllDefeated():
		s.out.Report(Notice{Type: NoticeVictory, Player: s.player.Name})
		s.resolve(ResultWon)
		return true
	case s.player.IsDefeated():
		s.out.Report(Notice{Type: NoticeDefeat, Player: s.player.Name})
		s.resolve(ResultLost)
		return true
	}
	return false
}

// Act applies one action line. It does not evaluate termination; callers
// invoke CheckTermination before prompting for the next action.
//
// Postcondition: An invalid line mutates nothing, consumes no round, and
// returns an error wrapping ErrInvalidAction.
func (s *Session) Act(line string) error {
	if s.state != StateInCombat {
		return fmt.Errorf("acting in state %s: %w", s.state, ErrWrongState)
	}
	choice, ok := parseChoice(line)
	if !ok {
		s.out.Report(Notice{Type: NoticeInvalidAction})
		return fmt.Errorf("%w: %q", ErrInvalidAction, strings.TrimSpace(line))
	}

	switch Action(choice) {
	case ActionAttack:
		s.rounds++
		s.sweep()
	case ActionHeal:
		s.rounds++
		healed := s.player.PerformHealing(s.out)
		s.logger.Debug("heal", zap.Int("round", s.rounds), zap.Int("healed", healed), zap.Int("health", s.player.Health))
	case ActionForfeit:
		s.forfeit()
	default:
		s.out.Report(Notice{Type: NoticeInvalidAction})
		return fmt.Errorf("%w: %d", ErrInvalidAction, choice)
	}
	return nil
}

// sweep attacks each monster living at the start of the sweep, in roster
// order; every monster that survives its blow counter-attacks once.
func (s *Session) sweep() {
	for _, m := range s.roster.Living() {
		if s.player.IsDefeated() && !s.opts.SweepAfterDefeat {
			break
		}
		r := combat.Attack(s.player, m, s.roller, s.out)
		if m.IsDefeated() {
			s.logger.Debug("monster defeated", zap.String("monster", m.Name), zap.Int("round", s.rounds))
			continue
		}
		counter := combat.Attack(m, s.player, s.roller, s.out)
		s.out.Report(Notice{Type: NoticeExchangeEnd})
		s.logger.Debug("exchange",
			zap.Int("round", s.rounds),
			zap.String("monster", m.Name),
			zap.Int("dealt", r.Damage),
			zap.Int("taken", counter.Damage),
			zap.Int("player_health", s.player.Health),
		)
	}
}

func (s *Session) forfeit() {
	s.out.Report(Notice{Type: NoticeForfeit, Player: s.player.Name})
	s.resolve(ResultForfeit)
}

func (s *Session) resolve(r Result) {
	s.state = StateResolved
	s.outcome = Outcome{Result: r, PlayerName: s.player.Name, Rounds: s.rounds}
	s.logger.Info("session resolved",
		zap.Stringer("result", r),
		zap.String("player", s.player.Name),
		zap.Int("rounds", s.rounds),
	)
}

func (s *Session) abort() {
	s.state = StateAborted
	s.logger.Info("session aborted before combat")
}

// inputErr tags end of input with ErrInputClosed.
func inputErr(err error) error {
	if errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %w", ErrInputClosed, err)
	}
	return err
}

// parseChoice reads a menu number from a line of input.
func parseChoice(line string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return 0, false
	}
	return n, true
}
