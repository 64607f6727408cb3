package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/cory-johannsen/monstergame/internal/game/character"
	"github.com/cory-johannsen/monstergame/internal/game/combat"
)

// ActionPrompt is shown before every combat round.
const ActionPrompt = "Choose your action: (1) Attack, (2) Heal, or (3) Quit: "

// Input supplies the player's choices.
type Input interface {
	// Ask shows prompt and blocks until a line of input is available.
	Ask(ctx context.Context, prompt string) (string, error)
}

// NoticeType identifies a session-level message.
type NoticeType int

const (
	NoticeWelcome NoticeType = iota
	NoticeInvalidCharacter
	NoticeCharacterChosen
	NoticeEncounter
	NoticeInvalidAction
	// NoticeExchangeEnd closes one player/monster exchange within a sweep.
	NoticeExchangeEnd
	NoticeVictory
	NoticeDefeat
	NoticeForfeit
)

// Notice is a session-level message for the output collaborator.
type Notice struct {
	Type     NoticeType
	Player   string
	Monsters []string
}

// Reporter is the output collaborator: it receives combat narration and session notices.
type Reporter interface {
	combat.Narrator
	Report(Notice)
}

// CharacterPrompt builds the class selection prompt, e.g.
// "Choose your character: (1) Warrior or (2) Mage: ".
func CharacterPrompt(menu character.Menu) string {
	opts := make([]string, 0, len(menu))
	for _, c := range menu {
		opts = append(opts, fmt.Sprintf("(%d) %s", c.Choice, c.Name))
	}
	var list string
	switch len(opts) {
	case 0:
	case 1:
		list = opts[0]
	case 2:
		list = opts[0] + " or " + opts[1]
	default:
		list = strings.Join(opts[:len(opts)-1], ", ") + ", or " + opts[len(opts)-1]
	}
	return "Choose your character: " + list + ": "
}
