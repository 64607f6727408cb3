// Package result persists the outcome of a finished session as a single text line.
package result

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/cory-johannsen/monstergame/internal/game/session"
)

// MonstersWonLine is written for every outcome the player did not win,
// unless forfeits are recorded distinctly.
const MonstersWonLine = "The monsters won!"

// Line returns the text persisted for outcome.
//
// Postcondition: Returns "Winner: <name>" iff outcome.PlayerWon(); "Forfeit: <name>"
// for a forfeit when distinctForfeit is set; MonstersWonLine otherwise.
func Line(outcome session.Outcome, distinctForfeit bool) string {
	switch {
	case outcome.PlayerWon():
		return "Winner: " + outcome.PlayerName
	case distinctForfeit && outcome.Result == session.ResultForfeit:
		return "Forfeit: " + outcome.PlayerName
	default:
		return MonstersWonLine
	}
}

// Writer saves outcomes to a file, replacing any previous content.
type Writer struct {
	path            string
	distinctForfeit bool
	logger          *zap.Logger
}

// NewWriter creates a Writer targeting path.
//
// Precondition: path must be non-empty; logger must be non-nil.
func NewWriter(path string, distinctForfeit bool, logger *zap.Logger) *Writer {
	return &Writer{path: path, distinctForfeit: distinctForfeit, logger: logger}
}

// Path returns the file the Writer saves to.
func (w *Writer) Path() string { return w.path }

// Save writes exactly one line describing outcome.
//
// Postcondition: On nil error the file contains Line(outcome, distinctForfeit) followed by "\n".
func (w *Writer) Save(outcome session.Outcome) error {
	line := Line(outcome, w.distinctForfeit)
	f, err := os.OpenFile(w.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("opening result file %q: %w", w.path, err)
	}
	if _, err := fmt.Fprintln(f, line); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing result file %q: %w", w.path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing result file %q: %w", w.path, err)
	}
	w.logger.Info("result saved",
		zap.String("path", w.path),
		zap.Stringer("result", outcome.Result),
		zap.String("line", line),
	)
	return nil
}
