package main

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"strconv"

	"github.com/LATE-BL00MER/Java-finalEx-miniproject/internal/config"
	gameconfig "github.com/LATE-BL00MER/Java-finalEx-miniproject/internal/loop/config"
	"github.com/LATE-BL00MER/Java-finalEx-miniproject/internal/scores"
	"github.com/charmbracelet/log"
)

const (
	defaultHost = "0.0.0.0"
	defaultPort = "8080"
)

//go:embed index.html
var htmlPage string

var page = template.Must(template.New("index").Funcs(template.FuncMap{
	"rank": func(i int) int { return i + 1 },
}).Parse(htmlPage))

// pageData is what index.html renders.
type pageData struct {
	SSHHost string
	SSHPort string
	Entries []scores.Entry
}

func main() {
	logger := config.NewLogger(os.Stderr, "web")

	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)
	sshHost := config.GetEnv("SSH_DISPLAY_HOST", "your-server.com")
	sshPort := config.GetEnv("SSH_PORT", "2222")
	shown := config.GetEnvInt("WEB_RANKING_SIZE", gameconfig.TopScoresShown)

	board := scores.OpenBoard(config.GetEnv("ZOMBIE_APP_NAME", "typing-zombies"), logger)

	http.Handle("/", indexHandler(board, sshHost, sshPort, shown, logger))
	http.Handle("/api/ranking", rankingHandler(board, logger))

	addr := fmt.Sprintf("%s:%s", host, port)
	logger.Info("starting web server", "url", "http://"+addr, "persistent", board.Persistent())
	if err := http.ListenAndServe(addr, nil); err != nil {
		logger.Fatal("server error", "err", err)
	}
}

// refresh picks up games recorded by the SSH server since the last request.
func refresh(board *scores.Board, logger *log.Logger) {
	if err := board.Reload(); err != nil {
		logger.Warn("failed to reload ranking", "err", err)
	}
}

// indexHandler serves the landing page with the current ranking.
func indexHandler(board *scores.Board, sshHost, sshPort string, shown int, logger *log.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		refresh(board, logger)

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		data := pageData{SSHHost: sshHost, SSHPort: sshPort, Entries: board.TopN(shown)}
		if err := page.Execute(w, data); err != nil {
			logger.Error("failed to render page", "err", err)
		}
	})
}

// rankingHandler serves the ranking as JSON. The optional n query
// parameter limits the number of entries.
func rankingHandler(board *scores.Board, logger *log.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := gameconfig.RankingCapacity
		if q := r.URL.Query().Get("n"); q != "" {
			v, err := strconv.Atoi(q)
			if err != nil || v < 0 {
				http.Error(w, "n must be a non-negative integer", http.StatusBadRequest)
				return
			}
			n = v
		}
		refresh(board, logger)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(board.TopN(n)); err != nil {
			logger.Error("failed to encode ranking", "err", err)
		}
	})
}
