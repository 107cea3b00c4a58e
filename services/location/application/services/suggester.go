package services

import (
	"context"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/ghuser/eventplanner/pkg/debounce"
	"github.com/ghuser/eventplanner/pkg/logger"
	"github.com/ghuser/eventplanner/services/location/domain/models"
)

// DefaultDebounce is the quiet period after the last keystroke before a
// search starts.
const DefaultDebounce = 300 * time.Millisecond

// Searcher is the part of Resolver the Suggester needs.
type Searcher interface {
	Search(ctx context.Context, query string) []models.LocationResult
	MinQueryLength() int
}

// Suggestions are the results for one input value.
type Suggestions struct {
	Query   string
	Results []models.LocationResult
}

// Suggester turns a stream of input values into suggestions. Only the value
// present when the debounce window closes is searched, and results are
// delivered only while that value is still the latest input.
type Suggester struct {
	search  Searcher
	deb     *debounce.Debouncer
	deliver func(Suggestions)
	log     logger.Logger

	root     context.Context
	stopRoot context.CancelFunc

	mu       sync.Mutex
	gen      uint64
	inflight context.CancelFunc
	closed   bool
	wg       sync.WaitGroup

	// deliverMu keeps deliveries in generation order.
	deliverMu sync.Mutex

	// afterDiscard is called with results dropped as stale. Tests only.
	afterDiscard func(Suggestions)
}

// NewSuggester returns a Suggester that calls deliver from a background
// goroutine. window <= 0 uses DefaultDebounce.
func NewSuggester(search Searcher, window time.Duration, deliver func(Suggestions), log logger.Logger) *Suggester {
	if window <= 0 {
		window = DefaultDebounce
	}
	root, stop := context.WithCancel(context.Background())
	return &Suggester{
		search:   search,
		deb:      debounce.New(window),
		deliver:  deliver,
		log:      log,
		root:     root,
		stopRoot: stop,
	}
}

// Input records the latest value of the text field. A value shorter than the
// minimum query length clears the suggestions at once.
func (s *Suggester) Input(query string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.gen++
	gen := s.gen
	if s.inflight != nil {
		s.inflight()
		s.inflight = nil
	}
	s.mu.Unlock()

	if utf8.RuneCountInString(strings.TrimSpace(query)) < s.search.MinQueryLength() {
		s.deb.Cancel()
		s.emit(gen, Suggestions{Query: query, Results: []models.LocationResult{}})
		return
	}
	s.deb.Trigger(func() { s.run(gen, query) })
}

// Close stops the debounce timer, cancels any running search and waits for
// it to return. No suggestions are delivered afterwards.
func (s *Suggester) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	s.deb.Stop()
	s.stopRoot()
	s.wg.Wait()
}

func (s *Suggester) run(gen uint64, query string) {
	s.mu.Lock()
	if s.closed || gen != s.gen {
		s.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(s.root)
	s.inflight = cancel
	s.wg.Add(1)
	s.mu.Unlock()
	defer s.wg.Done()
	defer cancel()

	results := s.search.Search(ctx, query)
	s.emit(gen, Suggestions{Query: query, Results: results})
}

func (s *Suggester) emit(gen uint64, out Suggestions) {
	s.deliverMu.Lock()
	defer s.deliverMu.Unlock()

	s.mu.Lock()
	stale := s.closed || gen != s.gen
	s.mu.Unlock()

	if stale {
		s.log.Debug("discarding stale suggestions", "query", out.Query)
		if s.afterDiscard != nil {
			s.afterDiscard(out)
		}
		return
	}
	s.deliver(out)
}
