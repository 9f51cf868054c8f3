package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/LATE-BL00MER/Java-finalEx-miniproject/internal/config"
	"github.com/LATE-BL00MER/Java-finalEx-miniproject/internal/loop"
	gameconfig "github.com/LATE-BL00MER/Java-finalEx-miniproject/internal/loop/config"
	"github.com/LATE-BL00MER/Java-finalEx-miniproject/internal/scores"
	"github.com/LATE-BL00MER/Java-finalEx-miniproject/internal/words"
	"golang.org/x/term"
)

func main() {
	// The terminal belongs to the game; logs go to a file when asked for.
	var logOut io.Writer = io.Discard
	if path := config.GetEnv("ZOMBIE_LOG", ""); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}
	logger := config.NewLogger(logOut, "game")

	rules := gameconfig.DefaultRules()
	if path := config.GetEnv("ZOMBIE_RULES", ""); path != "" {
		var err error
		if rules, err = gameconfig.LoadRules(path); err != nil {
			fmt.Fprintf(os.Stderr, "failed to load rules: %v\n", err)
			os.Exit(1)
		}
	}

	wordPool, err := words.Load(config.GetEnv("ZOMBIE_WORDS", "words.txt"), logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load words: %v\n", err)
		os.Exit(1)
	}
	bossPool, err := words.Load(config.GetEnv("ZOMBIE_BOSS_WORDS", "boss_words.txt"), logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load boss words: %v\n", err)
		os.Exit(1)
	}
	board := scores.OpenBoard(config.GetEnv("ZOMBIE_APP_NAME", "typing-zombies"), logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	for _, pool := range []*words.Pool{wordPool, bossPool} {
		go func() {
			if err := pool.Watch(ctx); err != nil {
				logger.Warn("word list hot reload disabled", "path", pool.Path(), "err", err)
			}
		}()
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	reader := bufio.NewReader(os.Stdin)
	err = loop.Run(ctx, reader, os.Stdout, loop.Options{
		Rules:     rules,
		Words:     wordPool,
		BossWords: bossPool,
		Ranking:   board,
		Username:  os.Getenv("USER"),
		Logger:    logger,
	})
	if err != nil {
		_ = term.Restore(fd, oldState)
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}
