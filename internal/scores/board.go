// Package scores keeps the ranking of finished games.
package scores

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/LATE-BL00MER/Java-finalEx-miniproject/internal/loop/config"
	"github.com/charmbracelet/log"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// Storage location inside the gdata app directory.
const (
	rankingObject   = "ranking"
	rankingProperty = "top"
)

// Entry is one ranked result.
type Entry struct {
	Name  string    `yaml:"name" json:"name"`
	Score int       `yaml:"score" json:"score"`
	At    time.Time `yaml:"at" json:"at"`
}

type document struct {
	Entries []Entry `yaml:"entries"`
}

// Board holds the top results in descending score order. Entries with equal
// scores keep their submission order. A Board without a gdata manager works
// in memory only.
type Board struct {
	mu       sync.Mutex
	manager  *gdata.Manager
	entries  []Entry
	capacity int
	logger   *log.Logger
	now      func() time.Time
}

// NewBoard creates a board persisted through manager, which may be nil.
// Saved entries are loaded immediately; a load failure leaves the board
// empty and is logged.
func NewBoard(manager *gdata.Manager, logger *log.Logger) *Board {
	if logger == nil {
		logger = log.Default()
	}
	b := &Board{
		manager:  manager,
		capacity: config.RankingCapacity,
		logger:   logger.WithPrefix("scores"),
		now:      time.Now,
	}
	if err := b.Reload(); err != nil {
		b.logger.Warn("failed to load ranking, starting empty", "err", err)
	}
	return b
}

// OpenBoard opens the gdata storage for appName. When the storage cannot be
// opened the board falls back to memory only.
func OpenBoard(appName string, logger *log.Logger) *Board {
	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		if logger != nil {
			logger.Warn("ranking storage unavailable, scores will not persist", "app", appName, "err", err)
		}
		manager = nil
	}
	return NewBoard(manager, logger)
}

// Persistent reports whether the board is backed by storage.
func (b *Board) Persistent() bool {
	return b.manager != nil
}

// Reload replaces the in-memory ranking with the stored one.
func (b *Board) Reload() error {
	if b.manager == nil || !b.manager.ObjectPropExists(rankingObject, rankingProperty) {
		return nil
	}

	data, err := b.manager.LoadObjectProp(rankingObject, rankingProperty)
	if err != nil {
		return fmt.Errorf("failed to load ranking: %w", err)
	}
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to unmarshal ranking: %w", err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries = doc.Entries
	b.sortLocked()
	return nil
}

// Submit records a result. Blank names become the default player name.
// The entry is kept in memory even when saving fails.
func (b *Board) Submit(name string, score int) error {
	_, err := b.Record(name, score)
	return err
}

// Record is Submit that also reports whether score beat every entry
// already on the board.
func (b *Board) Record(name string, score int) (best bool, err error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = config.DefaultPlayerName
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	best = score > 0 && (len(b.entries) == 0 || score > b.entries[0].Score)
	b.entries = append(b.entries, Entry{Name: name, Score: score, At: b.now()})
	b.sortLocked()
	b.logger.Info("score recorded", "player", name, "score", score, "best", best)
	return best, b.saveLocked()
}

// TopN returns up to n entries, best first.
func (b *Board) TopN(n int) []Entry {
	b.mu.Lock()
	defer b.mu.Unlock()
	n = min(max(n, 0), len(b.entries))
	return slices.Clone(b.entries[:n])
}

// Entries returns the whole ranking.
func (b *Board) Entries() []Entry {
	return b.TopN(b.capacity)
}

// Highest returns the best score, or 0 when the board is empty.
func (b *Board) Highest() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.entries) == 0 {
		return 0
	}
	return b.entries[0].Score
}

func (b *Board) sortLocked() {
	slices.SortStableFunc(b.entries, func(x, y Entry) int {
		return y.Score - x.Score
	})
	if len(b.entries) > b.capacity {
		clear(b.entries[b.capacity:])
		b.entries = b.entries[:b.capacity]
	}
}

func (b *Board) saveLocked() error {
	if b.manager == nil {
		return nil
	}
	data, err := yaml.Marshal(document{Entries: b.entries})
	if err != nil {
		return fmt.Errorf("failed to marshal ranking: %w", err)
	}
	if err := b.manager.SaveObjectProp(rankingObject, rankingProperty, data); err != nil {
		return fmt.Errorf("failed to save ranking: %w", err)
	}
	return nil
}
