// Package loop runs a local game: an in-process lobby with a single
// terminal client attached to it.
package loop

import (
	"bufio"
	"context"
	"io"

	"github.com/LATE-BL00MER/Java-finalEx-miniproject/internal/draw"
	"github.com/LATE-BL00MER/Java-finalEx-miniproject/internal/loop/client"
	"github.com/LATE-BL00MER/Java-finalEx-miniproject/internal/loop/config"
	"github.com/LATE-BL00MER/Java-finalEx-miniproject/internal/loop/engine"
	"github.com/LATE-BL00MER/Java-finalEx-miniproject/internal/loop/server"
	"github.com/LATE-BL00MER/Java-finalEx-miniproject/internal/scores"
	"github.com/charmbracelet/log"
)

// Options configures a local game.
type Options struct {
	Rules        config.Rules
	Words        client.WordStore
	BossWords    engine.BossWordSource
	Ranking      server.Ranking // Defaults to an in-memory board
	Username     string
	TermSizeFunc draw.TermSizeFunc
	Scheduler    engine.Scheduler
	Logger       *log.Logger
}

// Run plays on r and w until the player quits, the input closes or ctx is
// done. A game in progress when ctx ends is abandoned without a score.
func Run(ctx context.Context, r *bufio.Reader, w io.Writer, opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	ranking := opts.Ranking
	if ranking == nil {
		ranking = scores.NewBoard(nil, logger)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lobby := server.NewServer(ranking, logger)
	go lobby.Run(ctx)

	c := client.NewClient(lobby, r, w, client.ClientOptions{
		TermSizeFunc: opts.TermSizeFunc,
		Username:     opts.Username,
		Rules:        opts.Rules,
		Words:        opts.Words,
		BossWords:    opts.BossWords,
		Scheduler:    opts.Scheduler,
		Logger:       logger,
	})
	return c.Run(ctx)
}
