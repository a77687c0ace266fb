package feed

import (
	"context"
	"sync"

	"github.com/reelay/cli/pkg/logger"
)

// DefaultCompletedThreshold is the cumulative watch duration, in seconds,
// past which a progress event is reported as completed.
const DefaultCompletedThreshold = 10.0

// Recorder fires best-effort watch telemetry keyed by video id,
// independent of feed membership. Events are fire-and-forget: failures are
// logged and never retried, and the backend upserts so repeats are
// harmless.
type Recorder struct {
	mu sync.Mutex

	sink               ViewSink
	viewed             map[string]struct{}
	completedThreshold float64
	closed             bool

	// view-count lookups abort on supersede: only the most recent
	// subject id may deliver a result.
	lookupCancel context.CancelFunc
	lookupID     string
}

// NewRecorder creates a Recorder delivering telemetry to sink.
func NewRecorder(sink ViewSink) *Recorder {
	return &Recorder{
		sink:               sink,
		viewed:             make(map[string]struct{}),
		completedThreshold: DefaultCompletedThreshold,
	}
}

// OnStart fires a "watch begun" event the first time a video id is seen
// this session. The viewed set only suppresses redundant events; a second
// start for the same id would be harmless upstream.
func (r *Recorder) OnStart(id string) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	if _, seen := r.viewed[id]; seen {
		r.mu.Unlock()
		return
	}
	r.viewed[id] = struct{}{}
	r.mu.Unlock()

	go func() {
		if err := r.sink.RecordView(id, 0, false); err != nil {
			logger.Warn("View start event failed", "video_id", id, "err", err)
		}
	}()
}

// OnProgress reports the cumulative watched duration for the current
// video. The payload carries a completed flag once the duration passes the
// threshold; the server takes the max, so the caller's sampling cadence is
// the only throttle.
func (r *Recorder) OnProgress(id string, watchedSeconds float64) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	threshold := r.completedThreshold
	r.mu.Unlock()

	completed := watchedSeconds >= threshold
	go func() {
		if err := r.sink.RecordView(id, watchedSeconds, completed); err != nil {
			logger.Warn("View progress event failed", "video_id", id, "err", err)
		}
	}()
}

// HasStarted reports whether a start event was already sent for id this
// session.
func (r *Recorder) HasStarted(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, seen := r.viewed[id]
	return seen
}

// LookupViewCount fetches the play count for id and delivers it to fn. A
// newer lookup supersedes any in-flight one: the older request is
// cancelled and its result, if any, is dropped.
func (r *Recorder) LookupViewCount(id string, fn func(count int)) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	if r.lookupCancel != nil {
		r.lookupCancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	r.lookupCancel = cancel
	r.lookupID = id
	r.mu.Unlock()

	go func() {
		defer cancel()

		count, err := r.sink.ViewCount(ctx, id)
		if err != nil {
			logger.Debug("View count lookup failed", "video_id", id, "err", err)
			return
		}

		r.mu.Lock()
		stale := r.closed || r.lookupID != id
		r.mu.Unlock()
		if stale {
			return
		}
		fn(count)
	}()
}

// Close stops the recorder; late events are dropped and any in-flight
// view-count lookup is cancelled.
func (r *Recorder) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	if r.lookupCancel != nil {
		r.lookupCancel()
		r.lookupCancel = nil
	}
}
