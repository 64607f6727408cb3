package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/cory-johannsen/monstergame/internal/game/combat"
	"github.com/cory-johannsen/monstergame/internal/game/session"
)

// Renderer writes narration and session notices as text lines.
// It implements session.Reporter.
type Renderer struct {
	w       io.Writer
	palette Palette
}

// NewRenderer creates a Renderer writing to w, colored when color is true.
//
// Precondition: w must be non-nil.
func NewRenderer(w io.Writer, color bool) *Renderer {
	return &Renderer{w: w, palette: Palette{Enabled: color}}
}

// Narrate implements combat.Narrator.
func (r *Renderer) Narrate(e combat.Event) {
	if line, ok := r.renderEvent(e); ok {
		r.println(line)
	}
}

// Report implements session.Reporter.
func (r *Renderer) Report(n session.Notice) {
	if n.Type == session.NoticeExchangeEnd {
		r.println("")
		return
	}
	if text, ok := r.renderNotice(n); ok {
		r.println(text)
	}
}

func (r *Renderer) renderEvent(e combat.Event) (string, bool) {
	p := r.palette
	switch e.Type {
	case combat.EventFlavor:
		switch e.Variant {
		case combat.KindFighter:
			return p.Colorf(Cyan, "%s swings his sword!", e.Actor), true
		case combat.KindCaster:
			return p.Colorf(Cyan, "%s casts a spell!", e.Actor), true
		}
		return "", false
	case combat.EventAttack:
		color := Yellow
		if e.Variant == combat.KindMonster {
			color = Red
		}
		return p.Colorf(color, "%s attacks %s for %d damage!", e.Actor, e.Target, e.Amount), true
	case combat.EventHealth:
		return fmt.Sprintf("%s's health: %d", e.Actor, e.Health), true
	case combat.EventDefeated:
		return p.Colorf(BrightRed, "%s has been defeated!", e.Actor), true
	case combat.EventHealed:
		return p.Colorf(Green, "%s is healed for %d health!", e.Actor, e.Amount) + "\n" +
			fmt.Sprintf("%s's health: %d", e.Actor, e.Health), true
	case combat.EventCannotHeal:
		return p.Colorf(Dim, "%s cannot perform healing.", e.Actor), true
	default:
		return "", false
	}
}

func (r *Renderer) renderNotice(n session.Notice) (string, bool) {
	p := r.palette
	switch n.Type {
	case session.NoticeWelcome:
		return p.Colorize(Bold, "Welcome to the RPG game!"), true
	case session.NoticeInvalidCharacter:
		return p.Colorize(BrightRed, "Invalid choice. Exiting."), true
	case session.NoticeCharacterChosen:
		return fmt.Sprintf("You have chosen %s.", p.Colorize(BrightWhite, n.Player)), true
	case session.NoticeEncounter:
		var b strings.Builder
		b.WriteString("Welcome to the game! You encounter monsters:")
		for _, m := range n.Monsters {
			b.WriteString("\n")
			b.WriteString(p.Colorize(Red, m))
		}
		return b.String(), true
	case session.NoticeInvalidAction:
		return p.Colorize(Yellow, "Invalid choice. Please choose again."), true
	case session.NoticeVictory:
		return p.Colorize(BrightGreen, "Congratulations! You have defeated all monsters."), true
	case session.NoticeDefeat:
		return p.Colorf(BrightRed, "Unfortunately, %s has been defeated.", n.Player), true
	case session.NoticeForfeit:
		return p.Colorize(BrightYellow, "You chose to reschedule the fight and went home."), true
	default:
		return "", false
	}
}

func (r *Renderer) println(s string) {
	// Narration write errors are ignored.
	_, _ = io.WriteString(r.w, s+"\n")
}
