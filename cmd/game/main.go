package main

import (
	"bufio"
	"context"
	"errors"
	"io"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/tomz197/snake/internal/config"
	"github.com/tomz197/snake/internal/grid"
	"github.com/tomz197/snake/internal/highscore"
	"github.com/tomz197/snake/internal/loop"
	"golang.org/x/term"
)

func main() {
	logger, closeLog := newLogger(config.GetEnv("SNAKE_LOG", ""))
	defer closeLog()

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		log.Error("failed to enable raw mode", "err", err)
		os.Exit(1)
	}
	restore := func() { _ = term.Restore(fd, oldState) }

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := loop.Options{
		Store:  highscore.NewFileStore(config.GetEnv("SNAKE_HIGHSCORE", config.DefaultHighScorePath), logger),
		Color:  true,
		Logger: logger,
	}
	if seed := config.GetEnvInt64("SNAKE_SEED", 0); seed != 0 {
		opts.Rand = seededRand(uint64(seed))
	}

	reader := bufio.NewReader(os.Stdin)
	err = loop.Run(ctx, reader, os.Stdout, opts)
	restore()
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Error("game error", "err", err)
		os.Exit(1)
	}
}

// newLogger logs to the file at path, or discards when path is empty, so
// log lines never land on the game screen.
func newLogger(path string) (*log.Logger, func()) {
	if path == "" {
		return log.New(io.Discard), func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Warn("log file unavailable, logging disabled", "path", path, "err", err)
		return log.New(io.Discard), func() {}
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Level:           log.DebugLevel,
		Prefix:          "snake",
	})
	return logger, func() { _ = f.Close() }
}

func seededRand(seed uint64) grid.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
