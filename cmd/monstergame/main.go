// Package main provides the monstergame binary: a single console fight
// between a chosen hero and a roster of monsters.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cory-johannsen/monstergame/content"
	"github.com/cory-johannsen/monstergame/internal/config"
	"github.com/cory-johannsen/monstergame/internal/frontend/console"
	"github.com/cory-johannsen/monstergame/internal/game/character"
	"github.com/cory-johannsen/monstergame/internal/game/dice"
	"github.com/cory-johannsen/monstergame/internal/game/npc"
	"github.com/cory-johannsen/monstergame/internal/game/session"
	"github.com/cory-johannsen/monstergame/internal/observability"
	"github.com/cory-johannsen/monstergame/internal/storage/result"
)

// UnableToSaveMessage is printed when the result file cannot be written.
const UnableToSaveMessage = "Unable to open file for writing."

func main() {
	// A missing .env file is normal; anything else is worth a warning.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("loading .env: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run plays one session and returns the process exit code.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	start := time.Now()

	flags := flag.NewFlagSet("monstergame", flag.ContinueOnError)
	flags.SetOutput(stderr)
	configPath := flags.String("config", "", "path to configuration file; empty = defaults and MONSTERGAME_ environment")
	if err := flags.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "loading config: %v\n", err)
		return 1
	}

	logger, err := observability.NewLoggerTo(cfg.Logging, zapcore.AddSync(stderr))
	if err != nil {
		fmt.Fprintf(stderr, "initializing logger: %v\n", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()

	var src dice.Source
	if cfg.Game.Seed != 0 {
		src = dice.NewSeededSource(cfg.Game.Seed)
	} else {
		src = dice.NewClockSource()
	}
	roller := dice.NewLoggedRoller(src, logger)

	fsys, err := content.Open(cfg.Game.ContentDir)
	if err != nil {
		logger.Error("opening content", zap.String("dir", cfg.Game.ContentDir), zap.Error(err))
		return 1
	}
	menu, err := character.LoadClasses(fsys, content.ClassesDir)
	if err != nil {
		logger.Error("loading classes", zap.Error(err))
		return 1
	}
	templates, err := npc.LoadTemplates(fsys, content.MonstersDir)
	if err != nil {
		logger.Error("loading monsters", zap.Error(err))
		return 1
	}
	roster, err := npc.NewRoster(templates, cfg.Game.Roster)
	if err != nil {
		logger.Error("building roster", zap.Strings("roster", cfg.Game.Roster), zap.Error(err))
		return 1
	}
	logger.Info("content loaded",
		zap.Int("classes", len(menu)),
		zap.Int("templates", len(templates)),
		zap.Strings("roster", roster.Names()),
		zap.Duration("elapsed", time.Since(start)),
	)

	s := session.New(
		menu,
		roster,
		roller,
		console.NewPrompter(stdin, stdout),
		console.NewRenderer(stdout, cfg.Game.Color),
		logger,
		session.Options{SweepAfterDefeat: cfg.Game.SweepAfterDefeat},
	)

	outcome, err := s.Run(ctx)
	if err != nil {
		if errors.Is(err, session.ErrInvalidCharacter) {
			logger.Info("session aborted", zap.String("session", s.ID()), zap.Error(err))
		} else {
			logger.Error("session failed", zap.String("session", s.ID()), zap.Error(err))
		}
		return 1
	}

	w := result.NewWriter(cfg.Game.ResultPath, cfg.Game.DistinctForfeitResult, logger)
	if err := w.Save(outcome); err != nil {
		logger.Error("saving result", zap.Error(err))
		fmt.Fprintln(stderr, UnableToSaveMessage)
		return 0
	}
	fmt.Fprintf(stdout, "Winner saved to %s\n", w.Path())

	logger.Info("session complete",
		zap.String("session", s.ID()),
		zap.Stringer("result", outcome.Result),
		zap.Int("rounds", outcome.Rounds),
		zap.Duration("elapsed", time.Since(start)),
	)
	return 0
}
