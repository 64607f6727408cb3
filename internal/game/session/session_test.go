package session_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/monstergame/internal/game/character"
	"github.com/cory-johannsen/monstergame/internal/game/combat"
	"github.com/cory-johannsen/monstergame/internal/game/dice"
	"github.com/cory-johannsen/monstergame/internal/game/npc"
	"github.com/cory-johannsen/monstergame/internal/game/session"
	"github.com/cory-johannsen/monstergame/internal/testutil"
)

func newSession(t *testing.T, roster *npc.Roster, roller combat.DamageRoller, in session.Input, opts session.Options) (*session.Session, *testutil.RecordingReporter) {
	t.Helper()
	rep := &testutil.RecordingReporter{}
	return session.New(testutil.DefaultMenu(t), roster, roller, in, rep, zaptest.NewLogger(t), opts), rep
}

func TestCharacterPrompt(t *testing.T) {
	assert.Equal(t, "Choose your character: (1) Warrior or (2) Mage: ", session.CharacterPrompt(testutil.DefaultMenu(t)))

	three := character.Menu{
		{Name: "A", Choice: 1}, {Name: "B", Choice: 2}, {Name: "C", Choice: 3},
	}
	assert.Equal(t, "Choose your character: (1) A, (2) B, or (3) C: ", session.CharacterPrompt(three))
}

func TestRun_FighterDefeatsSingleMonster(t *testing.T) {
	goblin := testutil.Monster("Goblin", 50)
	in := &testutil.RepeatInput{First: "1", Rest: "1"}
	s, rep := newSession(t, npc.RosterOf(goblin), testutil.FixedRoller(10), in, session.Options{SweepAfterDefeat: true})

	out, err := s.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, session.ResultWon, out.Result)
	assert.True(t, out.PlayerWon())
	assert.Equal(t, "Unnamed Warrior", out.PlayerName)
	assert.Equal(t, 5, out.Rounds)
	assert.Equal(t, session.StateResolved, s.State())
	assert.True(t, goblin.IsDefeated())
	// Goblin counter-attacks in rounds 1-4 only.
	assert.Equal(t, 150-4*10, s.Player().Health)
	assert.Equal(t, out, s.Outcome())
	assert.Contains(t, rep.NoticeTypes(), session.NoticeVictory)
}

func TestRun_FighterHealthNeverIncreases(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.Uint64().Draw(rt, "seed")
		goblin := testutil.Monster("Goblin", 50)
		rep := &testutil.RecordingReporter{}
		roller := dice.NewLoggedRoller(dice.NewSeededSource(seed), zap.NewNop())
		s := session.New(testutil.DefaultMenu(t), npc.RosterOf(goblin), roller, &testutil.RepeatInput{First: "1", Rest: "1"}, rep, zap.NewNop(), session.Options{SweepAfterDefeat: true})

		require.NoError(rt, s.ChooseCharacter("1"))
		last := s.Player().Health
		for !s.CheckTermination() {
			require.NoError(rt, s.Act("1"))
			assert.LessOrEqual(rt, s.Player().Health, last)
			last = s.Player().Health
		}
		assert.Contains(rt, []session.Result{session.ResultWon, session.ResultLost}, s.Outcome().Result)
		assert.Empty(rt, rep.OfType(combat.EventHealed))
	})
}

func TestRun_ForfeitOnFirstRound(t *testing.T) {
	goblin, orc := testutil.Monster("Goblin", 50), testutil.Monster("Orc", 80)
	in := testutil.Script("2", "3")
	s, rep := newSession(t, npc.RosterOf(goblin, orc), testutil.FixedRoller(5), in, session.Options{})

	out, err := s.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, session.ResultForfeit, out.Result)
	assert.False(t, out.PlayerWon())
	assert.Equal(t, "Mage", out.PlayerName)
	assert.Equal(t, 0, out.Rounds)
	assert.Equal(t, 100, s.Player().Health)
	assert.Equal(t, 50, goblin.Health)
	assert.Equal(t, 80, orc.Health)
	assert.Empty(t, rep.Events, "no combat events on forfeit")
	assert.Equal(t, []session.NoticeType{
		session.NoticeWelcome,
		session.NoticeCharacterChosen,
		session.NoticeEncounter,
		session.NoticeForfeit,
	}, rep.NoticeTypes())
	assert.Equal(t, []string{"Goblin", "Orc"}, rep.Notices[2].Monsters)
}

func TestRun_InvalidCharacterIsFatal(t *testing.T) {
	in := testutil.Script("5", "1")
	s, rep := newSession(t, npc.RosterOf(testutil.Monster("Goblin", 50)), testutil.FixedRoller(5), in, session.Options{})

	out, err := s.Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, session.ErrInvalidCharacter))
	assert.Equal(t, session.Outcome{}, out)
	assert.Equal(t, session.StateAborted, s.State())
	assert.Nil(t, s.Player())
	assert.Len(t, in.Prompts, 1, "no action prompt after a fatal selection")
	assert.Contains(t, rep.NoticeTypes(), session.NoticeInvalidCharacter)
}

func TestRun_NonNumericCharacterIsFatal(t *testing.T) {
	in := testutil.Script("warrior")
	s, _ := newSession(t, npc.RosterOf(testutil.Monster("Goblin", 50)), testutil.FixedRoller(5), in, session.Options{})
	_, err := s.Run(context.Background())
	assert.ErrorIs(t, err, session.ErrInvalidCharacter)
}

func TestRun_NoInputAtSelectionIsFatal(t *testing.T) {
	s, rep := newSession(t, npc.RosterOf(testutil.Monster("Goblin", 50)), testutil.FixedRoller(5), testutil.Script(), session.Options{})
	_, err := s.Run(context.Background())
	assert.ErrorIs(t, err, session.ErrInvalidCharacter)
	assert.ErrorIs(t, err, io.EOF)
	assert.ErrorIs(t, err, session.ErrInputClosed)
	assert.Equal(t, session.StateAborted, s.State())
	assert.Equal(t, []session.NoticeType{session.NoticeWelcome, session.NoticeInvalidCharacter}, rep.NoticeTypes())
}

func TestRun_CasterHealSkipsMonsterTurn(t *testing.T) {
	goblin := testutil.Monster("Goblin", 50)
	in := testutil.Script("2", "2", "3")
	s, rep := newSession(t, npc.RosterOf(goblin), testutil.FixedRoller(5), in, session.Options{})

	out, err := s.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 120, s.Player().Health)
	assert.Equal(t, 50, goblin.Health)
	assert.Empty(t, rep.OfType(combat.EventAttack))
	healed := rep.OfType(combat.EventHealed)
	require.Len(t, healed, 1)
	assert.Equal(t, 20, healed[0].Amount)
	assert.Equal(t, 1, out.Rounds)
}

func TestRun_FighterHealIsNoOp(t *testing.T) {
	in := testutil.Script("1", "2", "3")
	s, rep := newSession(t, npc.RosterOf(testutil.Monster("Goblin", 50)), testutil.FixedRoller(5), in, session.Options{})

	_, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 150, s.Player().Health)
	assert.Len(t, rep.OfType(combat.EventCannotHeal), 1)
}

func TestRun_InvalidActionReprompts(t *testing.T) {
	goblin := testutil.Monster("Goblin", 50)
	in := testutil.Script("1", "7", "attack", "", "3")
	s, rep := newSession(t, npc.RosterOf(goblin), testutil.FixedRoller(5), in, session.Options{})

	out, err := s.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, session.ResultForfeit, out.Result)
	assert.Equal(t, 0, out.Rounds, "invalid input consumes no round")
	assert.Equal(t, 150, s.Player().Health)
	assert.Equal(t, 50, goblin.Health)
	invalid := 0
	for _, n := range rep.Notices {
		if n.Type == session.NoticeInvalidAction {
			invalid++
		}
	}
	assert.Equal(t, 3, invalid)
	assert.Len(t, in.Prompts, 5)
	assert.Equal(t, session.ActionPrompt, in.Prompts[1])
}

func TestRun_InputClosedDuringCombatForfeits(t *testing.T) {
	in := testutil.Script("1", "1")
	s, _ := newSession(t, npc.RosterOf(testutil.Monster("Orc", 80)), testutil.FixedRoller(5), in, session.Options{})

	out, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, session.ResultForfeit, out.Result)
	assert.Equal(t, 1, out.Rounds)
}

func TestRun_PlayerLoses(t *testing.T) {
	// A single 1000 HP monster outlasts a Mage taking 10 per round.
	in := &testutil.RepeatInput{First: "2", Rest: "1"}
	s, rep := newSession(t, npc.RosterOf(testutil.Monster("Dragon", 1000)), testutil.FixedRoller(10), in, session.Options{})

	out, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, session.ResultLost, out.Result)
	assert.Equal(t, 10, out.Rounds)
	assert.Equal(t, 0, s.Player().Health)
	assert.Contains(t, rep.NoticeTypes(), session.NoticeDefeat)
	assert.NotContains(t, rep.NoticeTypes(), session.NoticeVictory)
}

func TestAct_SweepOrderAndCounterAttacks(t *testing.T) {
	goblin, orc := testutil.Monster("Goblin", 5), testutil.Monster("Orc", 80)
	s, rep := newSession(t, npc.RosterOf(goblin, orc), testutil.FixedRoller(5), testutil.Script(), session.Options{SweepAfterDefeat: true})
	require.NoError(t, s.ChooseCharacter("1"))

	require.NoError(t, s.Act("1"))

	attacks := rep.OfType(combat.EventAttack)
	require.Len(t, attacks, 3, "goblin falls to the first blow and never counter-attacks")
	assert.Equal(t, [2]string{"Unnamed Warrior", "Goblin"}, [2]string{attacks[0].Actor, attacks[0].Target})
	assert.Equal(t, [2]string{"Unnamed Warrior", "Orc"}, [2]string{attacks[1].Actor, attacks[1].Target})
	assert.Equal(t, [2]string{"Orc", "Unnamed Warrior"}, [2]string{attacks[2].Actor, attacks[2].Target})
	assert.Equal(t, 145, s.Player().Health)

	// Defeated monsters remain in the roster and are skipped.
	require.NoError(t, s.Act("1"))
	assert.Equal(t, 2, s.Roster().Len())
	assert.Len(t, rep.OfType(combat.EventAttack), 5)
	assert.Equal(t, 0, goblin.Health, "goblin untouched after defeat")
}

func TestAct_SweepAfterDefeatPolicy(t *testing.T) {
	build := func(sweep bool) (*session.Session, *testutil.RecordingReporter, *combat.Combatant) {
		first, second := testutil.Monster("Orc", 80), testutil.Monster("Troll", 80)
		s, rep := newSession(t, npc.RosterOf(first, second), testutil.FixedRoller(10), testutil.Script(), session.Options{SweepAfterDefeat: sweep})
		require.NoError(t, s.ChooseCharacter("2"))
		s.Player().Health = 10 // the first counter-attack defeats the player
		return s, rep, second
	}

	s, rep, troll := build(true)
	require.NoError(t, s.Act("1"))
	assert.Equal(t, 70, troll.Health, "sweep continues after the player falls")
	assert.Len(t, rep.OfType(combat.EventAttack), 4)
	assert.True(t, s.CheckTermination())
	assert.Equal(t, session.ResultLost, s.Outcome().Result)

	s, rep, troll = build(false)
	require.NoError(t, s.Act("1"))
	assert.Equal(t, 80, troll.Health, "sweep stops once the player falls")
	assert.Len(t, rep.OfType(combat.EventAttack), 2)
	assert.True(t, s.CheckTermination())
	assert.Equal(t, session.ResultLost, s.Outcome().Result)
}

func TestCheckTermination_VictoryBeforeDefeat(t *testing.T) {
	goblin := testutil.Monster("Goblin", 1)
	s, _ := newSession(t, npc.RosterOf(goblin), testutil.FixedRoller(1), testutil.Script(), session.Options{})
	require.NoError(t, s.ChooseCharacter("1"))
	goblin.TakeDamage(1, combat.NopNarrator{})
	s.Player().Health = -3

	assert.True(t, s.CheckTermination())
	assert.Equal(t, session.ResultWon, s.Outcome().Result)
}

func TestTransitions_WrongState(t *testing.T) {
	s, _ := newSession(t, npc.RosterOf(testutil.Monster("Goblin", 50)), testutil.FixedRoller(1), testutil.Script(), session.Options{})
	assert.ErrorIs(t, s.Act("1"), session.ErrWrongState)
	assert.False(t, s.CheckTermination())

	require.NoError(t, s.ChooseCharacter("1"))
	assert.ErrorIs(t, s.ChooseCharacter("2"), session.ErrWrongState)

	require.NoError(t, s.Act("3"))
	assert.True(t, s.CheckTermination())
	assert.ErrorIs(t, s.Act("1"), session.ErrWrongState)
}

func TestOutcome_ImmutableAfterResolution(t *testing.T) {
	goblin := testutil.Monster("Goblin", 5)
	s, _ := newSession(t, npc.RosterOf(goblin), testutil.FixedRoller(5), testutil.Script(), session.Options{})
	require.NoError(t, s.ChooseCharacter("1"))
	require.NoError(t, s.Act("1"))
	require.True(t, s.CheckTermination())
	first := s.Outcome()

	s.Player().TakeDamage(500, combat.NopNarrator{})
	assert.True(t, s.CheckTermination())
	assert.Equal(t, first, s.Outcome())
	assert.Equal(t, session.ResultWon, first.Result)
}

// TestRun_Property_Terminates checks that an always-attacking player finishes
// within the health of the sturdiest monster.
func TestRun_Property_Terminates(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		hps := rapid.SliceOfN(rapid.IntRange(1, 120), 1, 5).Draw(rt, "hps")
		choice := rapid.SampledFrom([]string{"1", "2"}).Draw(rt, "class")
		sweep := rapid.Bool().Draw(rt, "sweep")
		seed := rapid.Uint64().Draw(rt, "seed")

		monsters := make([]*combat.Combatant, 0, len(hps))
		maxHP := 0
		for _, hp := range hps {
			monsters = append(monsters, testutil.Monster("M", hp))
			maxHP = max(maxHP, hp)
		}
		roller := dice.NewLoggedRoller(dice.NewSeededSource(seed), zap.NewNop())
		in := &testutil.RepeatInput{First: choice, Rest: "1"}
		s := session.New(testutil.DefaultMenu(t), npc.RosterOf(monsters...), roller, in, &testutil.RecordingReporter{}, zap.NewNop(), session.Options{SweepAfterDefeat: sweep})

		out, err := s.Run(context.Background())
		require.NoError(rt, err)
		assert.Contains(rt, []session.Result{session.ResultWon, session.ResultLost}, out.Result)
		assert.LessOrEqual(rt, out.Rounds, maxHP)
		assert.Equal(rt, out.Result == session.ResultWon, npc.RosterOf(monsters...).AllDefeated())
	})
}

func TestStringers(t *testing.T) {
	assert.Equal(t, "in_combat", session.StateInCombat.String())
	assert.Equal(t, "aborted", session.StateAborted.String())
	assert.Equal(t, "forfeit", session.ResultForfeit.String())
	assert.Equal(t, "none", session.ResultNone.String())
}

// cancellingInput picks the first class, then cancels ctx and reports its error.
type cancellingInput struct {
	cancel context.CancelFunc
	asked  int
}

func (c *cancellingInput) Ask(ctx context.Context, _ string) (string, error) {
	c.asked++
	if c.asked == 1 {
		c.cancel()
		return "1", nil
	}
	return "", ctx.Err()
}

func TestRun_CancelledDuringCombatForfeits(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	in := &cancellingInput{cancel: cancel}
	s, rep := newSession(t, npc.RosterOf(testutil.Monster("Goblin", 50)), testutil.FixedRoller(5), in, session.Options{})

	out, err := s.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, session.ResultForfeit, out.Result)
	assert.Equal(t, 0, out.Rounds)
	assert.Equal(t, 2, in.asked)
	assert.Contains(t, rep.NoticeTypes(), session.NoticeForfeit)
}

func TestAct_SweepSkipsMonstersDefeatedEarlier(t *testing.T) {
	goblin, orc := testutil.Monster("Goblin", 3), testutil.Monster("Orc", 80)
	s, rep := newSession(t, npc.RosterOf(goblin, orc), testutil.FixedRoller(5), testutil.Script(), session.Options{})
	require.NoError(t, s.ChooseCharacter("1"))

	require.NoError(t, s.Act("1"))
	assert.True(t, goblin.IsDefeated())

	before := len(rep.OfType(combat.EventAttack))
	require.NoError(t, s.Act("1"))
	attacks := rep.OfType(combat.EventAttack)[before:]
	require.Len(t, attacks, 2)
	assert.Equal(t, "Orc", attacks[0].Target)
	assert.Equal(t, "Orc", attacks[1].Actor)
	assert.Equal(t, -2, goblin.Health)
}
