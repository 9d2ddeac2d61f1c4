package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/curato/curation-client/internal/core/domain"
)

// DefaultSearchDelay is the quiet period before a search is sent.
const DefaultSearchDelay = 300 * time.Millisecond

// Searcher runs a collection search.
type Searcher interface {
	Search(ctx context.Context, query string) ([]domain.Collection, error)
}

// SearchResultFunc receives the outcome of a debounced search. A blank query
// is delivered with nil results and no error.
type SearchResultFunc func(query string, results []domain.Collection, err error)

// SearchDebouncer delays searches until input has been quiet for a while and
// cancels the previous search when a new one starts.
type SearchDebouncer struct {
	searcher Searcher
	delay    time.Duration
	onResult SearchResultFunc
	logger   zerolog.Logger

	mu      sync.Mutex
	timer   *time.Timer
	cancel  context.CancelFunc
	seq     uint64
	stopped bool
	wg      sync.WaitGroup
}

func NewSearchDebouncer(searcher Searcher, delay time.Duration, onResult SearchResultFunc, logger zerolog.Logger) *SearchDebouncer {
	if delay <= 0 {
		delay = DefaultSearchDelay
	}
	return &SearchDebouncer{searcher: searcher, delay: delay, onResult: onResult, logger: logger}
}

// Trigger restarts the quiet period for query.
func (d *SearchDebouncer) Trigger(query string) {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.seq++
	seq := d.seq
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}

	if strings.TrimSpace(query) == "" {
		d.cancelInFlightLocked()
		d.mu.Unlock()
		d.onResult(query, nil, nil)
		return
	}

	d.timer = time.AfterFunc(d.delay, func() { d.fire(seq, query) })
	d.mu.Unlock()
}

func (d *SearchDebouncer) fire(seq uint64, query string) {
	d.mu.Lock()
	if d.stopped || seq != d.seq {
		d.mu.Unlock()
		return
	}
	d.cancelInFlightLocked()
	ctx, cancel := context.WithCancel(context.Background())
	d.cancel = cancel
	d.wg.Add(1)
	d.mu.Unlock()

	defer d.wg.Done()
	defer cancel()

	results, err := d.searcher.Search(ctx, strings.TrimSpace(query))
	if ctx.Err() != nil {
		d.logger.Debug().Str("query", query).Msg("search superseded")
		return
	}

	d.mu.Lock()
	current := seq == d.seq && !d.stopped
	d.mu.Unlock()
	if current {
		d.onResult(query, results, err)
	}
}

// Stop cancels the pending timer and any in-flight search, then waits for
// running searches to return. Trigger is a no-op afterwards.
func (d *SearchDebouncer) Stop() {
	d.mu.Lock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.cancelInFlightLocked()
	d.mu.Unlock()

	d.wg.Wait()
}

func (d *SearchDebouncer) cancelInFlightLocked() {
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
}
