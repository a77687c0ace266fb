package feed

import (
	"sync/atomic"
	"time"

	"github.com/reelay/cli/pkg/api"
	"github.com/reelay/cli/pkg/logger"
)

// Options configures an Engine. Zero values fall back to the same defaults
// the individual components use.
type Options struct {
	Backend       Backend
	ActingUserID  string
	Authenticated func() bool

	MaxWindow       int
	PageSize        int
	LowWaterMark    int
	PrefetchBatches int
	PrefetchDelay   time.Duration
	Debounce        time.Duration

	// ItemExtent is the size of one feed item along the scroll axis, in
	// the host's offset units.
	ItemExtent float64

	// ScrollTo receives programmatic scroll commands for the host view.
	ScrollTo func(ScrollCommand)
}

// Engine owns one feed screen's worth of state: the store, the loader that
// fills it, the scroll reconciler that moves its cursor, the view-telemetry
// recorder, and the optimistic action mutator. It is created when the feed
// screen mounts and closed when it unmounts; in-flight work finishing after
// Close is discarded rather than written into the disposed store.
type Engine struct {
	store    *Store
	loader   *Loader
	scroll   *ScrollSync
	recorder *Recorder
	mutator  *Mutator

	closed atomic.Bool
}

// NewEngine wires the feed components together.
func NewEngine(opts Options) *Engine {
	if opts.Backend == nil {
		opts.Backend = RESTBackend{}
	}
	if opts.Authenticated == nil {
		opts.Authenticated = func() bool { return false }
	}

	e := &Engine{}
	e.store = NewStore(opts.MaxWindow)
	e.loader = NewLoader(e.store, opts.Backend, opts.Authenticated, LoaderConfig{
		PageSize:        opts.PageSize,
		LowWaterMark:    opts.LowWaterMark,
		PrefetchBatches: opts.PrefetchBatches,
		PrefetchDelay:   opts.PrefetchDelay,
		Debounce:        opts.Debounce,
	})
	e.scroll = NewScrollSync(e.store, opts.ItemExtent, opts.ScrollTo, e.onIndexCommitted)
	e.recorder = NewRecorder(opts.Backend)
	e.mutator = NewMutator(e.store, opts.Backend, opts.ActingUserID)
	return e
}

// onIndexCommitted runs after every cursor commit: it starts telemetry for
// the newly presented video and tops up the buffer when the unseen tail
// has drained.
func (e *Engine) onIndexCommitted(index int) {
	if e.closed.Load() {
		return
	}

	if v, ok := e.store.Get(index); ok {
		e.recorder.OnStart(v.ID)
	}

	if e.loader.ShouldLoadMore() {
		go func() {
			if err := e.loader.LoadMore(); err == ErrDuplicateBatch {
				e.loader.LowerWaterMark()
			}
		}()
	}
}

// Load runs the initial fetch. Manual reloads always execute and replace
// the feed wholesale; automatic ones are deduplicated and debounced.
func (e *Engine) Load(manual bool) error {
	return e.loader.InitialLoad(manual)
}

// Retry clears a failed initial load and tries again.
func (e *Engine) Retry() error {
	return e.loader.Retry()
}

// Snapshot returns a copy of the loaded videos and the cursor for the UI
// to render.
func (e *Engine) Snapshot() ([]api.Video, int) {
	return e.store.Snapshot()
}

// Current returns the video under the cursor.
func (e *Engine) Current() (api.Video, bool) {
	return e.store.Current()
}

// Scroll exposes the gesture reconciler for the host's drag events.
func (e *Engine) Scroll() *ScrollSync {
	return e.scroll
}

// State returns the loader's primary state and, in the error state, the
// retryable error behind it.
func (e *Engine) State() (LoadState, error) {
	return e.loader.State(), e.loader.Err()
}

// OnLike optimistically toggles the like state of a video. Fire-and-forget:
// a failed call rolls back silently.
func (e *Engine) OnLike(videoID string) {
	if e.closed.Load() {
		return
	}
	go func() {
		if err := e.mutator.ToggleLike(videoID); err != nil {
			logger.Debug("Like toggle rolled back", "video_id", videoID)
		}
	}()
}

// OnFollow optimistically toggles following the video's author.
func (e *Engine) OnFollow(videoID string) {
	if e.closed.Load() {
		return
	}
	go func() {
		if err := e.mutator.ToggleFollow(videoID); err != nil {
			logger.Debug("Follow toggle rolled back", "video_id", videoID)
		}
	}()
}

// OnSave optimistically toggles the saved state of a video.
func (e *Engine) OnSave(videoID string) {
	if e.closed.Load() {
		return
	}
	go func() {
		if err := e.mutator.ToggleSave(videoID); err != nil {
			logger.Debug("Save toggle rolled back", "video_id", videoID)
		}
	}()
}

// OnVideoStart reports that playback began for a video.
func (e *Engine) OnVideoStart(videoID string) {
	e.recorder.OnStart(videoID)
}

// OnVideoProgress reports cumulative watch progress for a video.
func (e *Engine) OnVideoProgress(videoID string, watchedSeconds float64) {
	e.recorder.OnProgress(videoID, watchedSeconds)
}

// ViewCount looks up the play count for a video; a newer lookup supersedes
// an in-flight one.
func (e *Engine) ViewCount(videoID string, fn func(count int)) {
	e.recorder.LookupViewCount(videoID, fn)
}

// RemoveVideo drops a video from the feed, for deletion flows.
func (e *Engine) RemoveVideo(videoID string) bool {
	return e.store.RemoveByID(videoID)
}

// Close disposes the engine. Late async completions see the closed flag
// and drop their writes.
func (e *Engine) Close() {
	if e.closed.Swap(true) {
		return
	}
	e.loader.Close()
	e.recorder.Close()
	e.mutator.Close()
}
