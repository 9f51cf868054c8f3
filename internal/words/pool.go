// Package words manages the challenge word lists: loading them from disk,
// drawing random words for hostiles and bosses, editing and hot reload.
package words

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"math/rand"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

var (
	// ErrEmptyWord is returned when adding a blank word.
	ErrEmptyWord = errors.New("word is empty")
	// ErrNotFound is returned when removing a word the pool does not hold.
	ErrNotFound = errors.New("word not found")
)

// document is the YAML form of a word list.
type document struct {
	Words []string `yaml:"words"`
}

// Pool is a word list backed by a file. Plain files hold one word per
// line; .yaml and .yml files hold a "words" list. A Pool is safe for
// concurrent use.
type Pool struct {
	mu     sync.Mutex
	path   string
	words  []string
	rng    *rand.Rand
	logger *log.Logger
}

// NewPool creates an in-memory pool. An empty path disables persistence.
func NewPool(path string, words []string, logger *log.Logger) *Pool {
	if logger == nil {
		logger = log.Default()
	}
	return &Pool{
		path:   path,
		words:  clean(words),
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		logger: logger.WithPrefix("words"),
	}
}

// Load reads the word list at path. A missing file yields an empty pool
// that is created on the first Add.
func Load(path string, logger *log.Logger) (*Pool, error) {
	p := NewPool(path, nil, logger)
	if err := p.Reload(); err != nil {
		return nil, err
	}
	return p, nil
}

// Reload re-reads the backing file, replacing the current words. The pool
// is left untouched when the file cannot be parsed.
func (p *Pool) Reload() error {
	if p.path == "" {
		return nil
	}
	words, err := readFile(p.path)
	if errors.Is(err, fs.ErrNotExist) {
		p.logger.Warn("word list not found, starting empty", "path", p.path)
		words = nil
	} else if err != nil {
		return err
	}

	p.mu.Lock()
	p.words = words
	p.mu.Unlock()

	p.logger.Info("word list loaded", "path", p.path, "count", len(words))
	return nil
}

// RandomWord returns a random word, or "" when the pool is empty.
func (p *Pool) RandomWord() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.words) == 0 {
		return ""
	}
	return p.words[p.rng.Intn(len(p.words))]
}

// RandomWords draws count words. They are all distinct when the pool is
// large enough; otherwise only consecutive repeats are avoided. It returns
// nil when the pool is empty or count is not positive.
func (p *Pool) RandomWords(count int) []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.words) == 0 || count <= 0 {
		return nil
	}

	if len(p.words) >= count {
		picked := make([]string, 0, count)
		for _, i := range p.rng.Perm(len(p.words))[:count] {
			picked = append(picked, p.words[i])
		}
		return picked
	}

	picked := make([]string, count)
	for i := range picked {
		w := p.words[p.rng.Intn(len(p.words))]
		for guard := 0; i > 0 && w == picked[i-1] && guard < 100; guard++ {
			w = p.words[p.rng.Intn(len(p.words))]
		}
		picked[i] = w
	}
	return picked
}

// Add appends a word and saves the list.
func (p *Pool) Add(word string) error {
	word = strings.TrimSpace(word)
	if word == "" {
		return ErrEmptyWord
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.words = append(p.words, word)
	return p.saveLocked()
}

// Remove deletes every occurrence of word, ignoring case, and saves the
// list.
func (p *Pool) Remove(word string) error {
	word = strings.TrimSpace(word)

	p.mu.Lock()
	defer p.mu.Unlock()
	n := len(p.words)
	p.words = slices.DeleteFunc(p.words, func(w string) bool {
		return strings.EqualFold(w, word)
	})
	if len(p.words) == n {
		return ErrNotFound
	}
	return p.saveLocked()
}

// Words returns a copy of the list.
func (p *Pool) Words() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.words)
}

// Len returns the number of words.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.words)
}

// Path returns the backing file, if any.
func (p *Pool) Path() string {
	return p.path
}

func (p *Pool) saveLocked() error {
	if p.path == "" {
		return nil
	}

	var data []byte
	if isYAML(p.path) {
		out, err := yaml.Marshal(document{Words: p.words})
		if err != nil {
			return fmt.Errorf("failed to encode word list: %w", err)
		}
		data = out
	} else {
		var buf bytes.Buffer
		for _, w := range p.words {
			buf.WriteString(w)
			buf.WriteByte('\n')
		}
		data = buf.Bytes()
	}

	tmp := p.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write word list: %w", err)
	}
	if err := os.Rename(tmp, p.path); err != nil {
		return fmt.Errorf("failed to replace word list: %w", err)
	}
	return nil
}

func readFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read word list: %w", err)
	}

	if isYAML(path) {
		var doc document
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse word list YAML: %w", err)
		}
		return clean(doc.Words), nil
	}

	var words []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		if w := strings.TrimSpace(sc.Text()); w != "" {
			words = append(words, w)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan word list: %w", err)
	}
	return words, nil
}

func clean(in []string) []string {
	out := make([]string, 0, len(in))
	for _, w := range in {
		if w = strings.TrimSpace(w); w != "" {
			out = append(out, w)
		}
	}
	return out
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
