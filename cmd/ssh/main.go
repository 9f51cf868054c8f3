package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/LATE-BL00MER/Java-finalEx-miniproject/internal/config"
	"github.com/LATE-BL00MER/Java-finalEx-miniproject/internal/draw"
	"github.com/LATE-BL00MER/Java-finalEx-miniproject/internal/loop/client"
	gameconfig "github.com/LATE-BL00MER/Java-finalEx-miniproject/internal/loop/config"
	"github.com/LATE-BL00MER/Java-finalEx-miniproject/internal/loop/server"
	"github.com/LATE-BL00MER/Java-finalEx-miniproject/internal/scores"
	"github.com/LATE-BL00MER/Java-finalEx-miniproject/internal/words"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
)

// Shared by all SSH clients
var (
	lobby        *server.Server
	cancelServer context.CancelFunc
	serverOnce   sync.Once

	rules    gameconfig.Rules
	wordPool *words.Pool
	bossPool *words.Pool
	logger   *log.Logger
)

func main() {
	logger = config.NewLogger(os.Stderr, "ssh")

	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	shutdownTimeout := config.GetEnvDuration("SSH_SHUTDOWN_TIMEOUT", 15*time.Second)
	workingDir, workErr := os.Getwd()
	if workErr != nil {
		logger.Warn("failed to get working directory", "err", workErr)
	}
	logger.Info("ssh config", "host", host, "port", port, "hostKeyPath", hostKeyPath, "workingDir", workingDir)

	rules = gameconfig.DefaultRules()
	if path := config.GetEnv("ZOMBIE_RULES", ""); path != "" {
		var err error
		if rules, err = gameconfig.LoadRules(path); err != nil {
			logger.Fatal("failed to load rules", "path", path, "err", err)
		}
	}

	var err error
	if wordPool, err = words.Load(config.GetEnv("ZOMBIE_WORDS", "words.txt"), logger); err != nil {
		logger.Fatal("failed to load words", "err", err)
	}
	if bossPool, err = words.Load(config.GetEnv("ZOMBIE_BOSS_WORDS", "boss_words.txt"), logger); err != nil {
		logger.Fatal("failed to load boss words", "err", err)
	}
	board := scores.OpenBoard(config.GetEnv("ZOMBIE_APP_NAME", "typing-zombies"), logger)

	// Initialize and start the shared lobby
	var ctx context.Context
	serverOnce.Do(func() {
		ctx, cancelServer = context.WithCancel(context.Background())
		lobby = server.NewServer(board, logger)
		go lobby.Run(ctx)
		logger.Info("lobby started")
	})

	for _, pool := range []*words.Pool{wordPool, bossPool} {
		go func() {
			if err := pool.Watch(ctx); err != nil {
				logger.Warn("word list hot reload disabled", "path", pool.Path(), "err", err)
			}
		}()
	}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			gameMiddleware,
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(logger),
		),
		// Set TCP_NODELAY to reduce latency for typing
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}

	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting SSH server", "address", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down server")

	// Gracefully shut down the lobby: notify players and wait for them to disconnect
	if lobby != nil {
		logger.Info("notifying connected players about shutdown")
		lobby.Shutdown(shutdownTimeout)
		cancelServer()
		logger.Info("lobby stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("shutdown error", "err", err)
	}
}

// gameMiddleware handles SSH sessions and runs the game client.
func gameMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		logger.Info("new game session", "user", sess.User(), "terminal", pty.Term,
			"width", pty.Window.Width, "height", pty.Window.Height)

		// Create a terminal size tracker that updates on window changes
		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)

		// Listen for window size changes in a goroutine
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		reader := bufio.NewReader(sess)
		clientOpts := client.ClientOptions{
			TermSizeFunc: sizeTracker.getSize,
			Username:     sess.User(),
			Rules:        rules,
			Words:        wordPool,
			BossWords:    bossPool,
			Logger:       logger,
		}

		// Create a new client connected to the shared lobby
		c := client.NewClient(lobby, reader, sess, clientOpts)
		if err := c.Run(sess.Context()); err != nil {
			logger.Error("game error", "user", sess.User(), "err", err)
		}

		logger.Info("session ended", "user", sess.User())
		next(sess)
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
