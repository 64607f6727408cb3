// Package testutil provides scripted collaborators and content fixtures for
// driving sessions in tests.
package testutil

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/monstergame/content"
	"github.com/cory-johannsen/monstergame/internal/game/character"
	"github.com/cory-johannsen/monstergame/internal/game/combat"
	"github.com/cory-johannsen/monstergame/internal/game/npc"
	"github.com/cory-johannsen/monstergame/internal/game/session"
)

// ScriptedInput replays Lines in order and returns io.EOF once exhausted.
// Every prompt it is asked is appended to Prompts.
type ScriptedInput struct {
	Lines   []string
	Prompts []string
}

// Script returns a ScriptedInput that answers with lines.
func Script(lines ...string) *ScriptedInput {
	return &ScriptedInput{Lines: lines}
}

// Ask implements session.Input.
func (s *ScriptedInput) Ask(_ context.Context, prompt string) (string, error) {
	s.Prompts = append(s.Prompts, prompt)
	if len(s.Lines) == 0 {
		return "", io.EOF
	}
	line := s.Lines[0]
	s.Lines = s.Lines[1:]
	return line, nil
}

// RepeatInput answers the first prompt with First and every later one with Rest.
type RepeatInput struct {
	First, Rest string
	Asked       int
}

// Ask implements session.Input.
func (r *RepeatInput) Ask(_ context.Context, _ string) (string, error) {
	r.Asked++
	if r.Asked == 1 {
		return r.First, nil
	}
	return r.Rest, nil
}

// RecordingReporter captures narration events and notices.
type RecordingReporter struct {
	combat.Recorder
	Notices []session.Notice
}

// Report implements session.Reporter.
func (r *RecordingReporter) Report(n session.Notice) { r.Notices = append(r.Notices, n) }

// NoticeTypes returns the types of all recorded notices in order.
func (r *RecordingReporter) NoticeTypes() []session.NoticeType {
	out := make([]session.NoticeType, 0, len(r.Notices))
	for _, n := range r.Notices {
		out = append(out, n.Type)
	}
	return out
}

// FixedRoller always deals the same damage.
type FixedRoller int

// RollDamage implements combat.DamageRoller.
func (f FixedRoller) RollDamage() int { return int(f) }

// DefaultMenu loads the embedded class menu or fails the test.
func DefaultMenu(t testing.TB) character.Menu {
	t.Helper()
	menu, err := character.LoadClasses(content.Embedded(), content.ClassesDir)
	require.NoError(t, err)
	return menu
}

// DefaultRoster builds a roster from the embedded monster templates or fails the test.
func DefaultRoster(t testing.TB, order ...string) *npc.Roster {
	t.Helper()
	templates, err := npc.LoadTemplates(content.Embedded(), content.MonstersDir)
	require.NoError(t, err)
	roster, err := npc.NewRoster(templates, order)
	require.NoError(t, err)
	return roster
}

// Monster returns a fresh monster combatant.
func Monster(name string, health int) *combat.Combatant {
	return combat.NewCombatant(combat.KindMonster, name, health)
}
