package feed

import (
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/reelay/cli/pkg/api"
	"github.com/reelay/cli/pkg/logger"
)

// LoadState is the Loader's primary state. Background prefetch and
// load-more run as independent in-flight flags alongside it.
type LoadState int

const (
	StateIdle LoadState = iota
	StateInitialLoading
	StateError
)

func (s LoadState) String() string {
	switch s {
	case StateInitialLoading:
		return "initial-loading"
	case StateError:
		return "error"
	default:
		return "idle"
	}
}

// Loader orchestrates network fetches for one feed store: the initial load,
// background prefetch after it, and on-demand load-more near the end of the
// buffer. Initial-load failures are retryable and visible through State and
// Err; background failures are logged and swallowed, the feed simply does
// not grow until the next trigger.
type Loader struct {
	mu sync.Mutex

	store   *Store
	fetcher Fetcher
	authed  func() bool

	state   LoadState
	lastErr error

	// debounce gates non-manual initial loads; manual reloads bypass it.
	debounce *rate.Limiter

	autoLoading     bool
	prefetchStarted bool
	loadingMore     bool
	lastMoreCursor  int

	pageSize        int
	lowWater        int
	prefetchBatches int
	prefetchDelay   time.Duration

	closed bool
}

// LoaderConfig tunes a Loader. Zero values fall back to the defaults the
// feed screen ships with.
type LoaderConfig struct {
	PageSize        int
	LowWaterMark    int
	PrefetchBatches int
	PrefetchDelay   time.Duration
	Debounce        time.Duration
}

const (
	defaultPageSize        = 10
	defaultLowWaterMark    = 3
	defaultPrefetchBatches = 2
	defaultPrefetchDelay   = 1500 * time.Millisecond
	defaultDebounce        = 2 * time.Second

	// loadMoreOverfetch inflates load-more requests so that dedup loss
	// against already-loaded ids still leaves a useful batch.
	loadMoreOverfetch = 3
)

// NewLoader creates a Loader feeding store from fetcher. The authed probe
// decides between the personalized and the public endpoint per call, so a
// login mid-session takes effect on the next fetch.
func NewLoader(store *Store, fetcher Fetcher, authed func() bool, cfg LoaderConfig) *Loader {
	if cfg.PageSize <= 0 {
		cfg.PageSize = defaultPageSize
	}
	if cfg.LowWaterMark <= 0 {
		cfg.LowWaterMark = defaultLowWaterMark
	}
	if cfg.PrefetchBatches <= 0 {
		cfg.PrefetchBatches = defaultPrefetchBatches
	}
	if cfg.PrefetchDelay <= 0 {
		cfg.PrefetchDelay = defaultPrefetchDelay
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = defaultDebounce
	}
	if authed == nil {
		authed = func() bool { return false }
	}

	return &Loader{
		store:           store,
		fetcher:         fetcher,
		authed:          authed,
		debounce:        rate.NewLimiter(rate.Every(cfg.Debounce), 1),
		lastMoreCursor:  -1,
		pageSize:        cfg.PageSize,
		lowWater:        cfg.LowWaterMark,
		prefetchBatches: cfg.PrefetchBatches,
		prefetchDelay:   cfg.PrefetchDelay,
	}
}

// InitialLoad fetches the first batch. Authenticated sessions hit the
// personalized endpoint, anonymous ones the public latest endpoint. A call
// made while another initial load is in flight is dropped, as is a
// non-manual call inside the debounce window; a manual reload always runs.
// Manual results replace the store wholesale, non-manual results append
// through dedup.
func (l *Loader) InitialLoad(manual bool) error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return nil
	}
	if l.state == StateInitialLoading {
		l.mu.Unlock()
		logger.Debug("Initial load already in flight, dropping")
		return nil
	}
	if !manual && !l.debounce.Allow() {
		l.mu.Unlock()
		logger.Debug("Initial load debounced")
		return nil
	}
	l.state = StateInitialLoading
	authed := l.authed()
	l.mu.Unlock()

	var batch, err = l.fetchPrimary(authed, l.pageSize)

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil
	}

	if err != nil {
		l.state = StateError
		l.lastErr = err
		logger.Error("Initial load failed", "err", err)
		return err
	}

	l.state = StateIdle
	l.lastErr = nil

	if manual {
		l.store.ReplaceAll(batch)
	} else {
		l.store.Append(batch)
	}
	l.lastMoreCursor = -1

	logger.Debug("Initial load complete", "count", len(batch), "manual", manual)

	// One background deepening pass per session, only when the
	// personalized source produced something to deepen.
	if authed && len(batch) > 0 && !l.prefetchStarted {
		l.prefetchStarted = true
		go l.autoPrefetch()
	}

	return nil
}

// autoPrefetch deepens the buffer with a fixed number of extra batches,
// pausing between them. It stops early once a batch contributes nothing
// new, which means the recommendation source is exhausted for this session.
// Its errors are never surfaced.
func (l *Loader) autoPrefetch() {
	l.mu.Lock()
	if l.closed || l.autoLoading {
		l.mu.Unlock()
		return
	}
	l.autoLoading = true
	l.mu.Unlock()

	defer func() {
		l.mu.Lock()
		l.autoLoading = false
		l.mu.Unlock()
	}()

	for i := 0; i < l.prefetchBatches; i++ {
		if i > 0 {
			time.Sleep(l.prefetchDelay)
		}
		if l.isClosed() {
			return
		}

		batch, err := l.fetcher.Recommended(l.pageSize)
		if err != nil {
			logger.Warn("Background prefetch failed", "batch", i, "err", err)
			return
		}
		if l.isClosed() {
			return
		}

		added := l.store.Append(batch)
		logger.Debug("Background prefetch batch", "batch", i, "added", added)
		if added == 0 {
			// Source exhausted, further batches would only repeat.
			return
		}
	}
}

// LoadMore fetches another batch when the unseen buffer ahead of the cursor
// has drained to the low-water mark. It over-fetches to absorb dedup loss,
// falls back once to the random endpoint when the primary batch is all
// duplicates, and returns ErrDuplicateBatch when even the fallback brings
// nothing new. Network failures are logged and swallowed.
func (l *Loader) LoadMore() error {
	l.mu.Lock()
	if l.closed || l.loadingMore {
		l.mu.Unlock()
		return nil
	}
	cursor := l.store.Cursor()
	if cursor == l.lastMoreCursor {
		l.mu.Unlock()
		logger.Debug("Load more already attempted at cursor", "cursor", cursor)
		return nil
	}
	if l.store.UnseenAhead() > l.lowWater {
		l.mu.Unlock()
		return nil
	}
	l.loadingMore = true
	l.lastMoreCursor = cursor
	authed := l.authed()
	l.mu.Unlock()

	defer func() {
		l.mu.Lock()
		l.loadingMore = false
		l.mu.Unlock()
	}()

	limit := l.pageSize * loadMoreOverfetch

	batch, err := l.fetchPrimary(authed, limit)
	if err != nil {
		logger.Warn("Load more failed", "err", err)
		return nil
	}
	if l.isClosed() {
		return nil
	}

	if added := l.store.Append(batch); added > 0 {
		logger.Debug("Load more complete", "added", added)
		return nil
	}

	// Primary source repeated itself; try the random pool once before
	// declaring the batch a duplicate.
	batch, err = l.fetcher.Random(limit)
	if err != nil {
		logger.Warn("Random fallback failed", "err", err)
		return nil
	}
	if l.isClosed() {
		return nil
	}

	if added := l.store.Append(batch); added > 0 {
		logger.Debug("Random fallback filled buffer", "added", added)
		return nil
	}

	logger.Debug("No new videos from primary or fallback")
	return ErrDuplicateBatch
}

// LowerWaterMark shrinks the load-more trigger threshold, so after a
// duplicate batch the next attempt fires only when the user is closer to
// the end of the buffer. The threshold never drops below one.
func (l *Loader) LowerWaterMark() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.lowWater > 1 {
		l.lowWater--
	}
}

// ShouldLoadMore reports whether the unseen buffer has drained to the
// trigger threshold.
func (l *Loader) ShouldLoadMore() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.store.Len() == 0 {
		return false
	}
	return l.store.UnseenAhead() <= l.lowWater
}

// State returns the primary loader state.
func (l *Loader) State() LoadState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Err returns the error from the last failed initial load, if the loader
// is in the error state.
func (l *Loader) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastErr
}

// Retry clears the error state and reruns the initial load as a manual
// attempt.
func (l *Loader) Retry() error {
	l.mu.Lock()
	if l.state == StateError {
		l.state = StateIdle
		l.lastErr = nil
	}
	l.mu.Unlock()
	return l.InitialLoad(true)
}

// IsAutoLoading reports whether a background prefetch pass is running.
func (l *Loader) IsAutoLoading() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.autoLoading
}

// IsLoadingMore reports whether a load-more fetch is in flight.
func (l *Loader) IsLoadingMore() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loadingMore
}

// Close stops the loader. In-flight fetches run to completion but their
// results are discarded instead of written into the store.
func (l *Loader) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = true
}

func (l *Loader) isClosed() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.closed
}

func (l *Loader) fetchPrimary(authed bool, limit int) ([]api.Video, error) {
	if authed {
		return l.fetcher.Recommended(limit)
	}
	return l.fetcher.Latest()
}
