package feed

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/reelay/cli/pkg/api"
)

// fakeBackend is an in-memory Backend with programmable responses and call
// accounting, shared by the feed package tests.
type fakeBackend struct {
	mu sync.Mutex

	recommendedFn func(limit int) ([]api.Video, error)
	latestFn      func() ([]api.Video, error)
	randomFn      func(limit int) ([]api.Video, error)

	likeErr     error
	unlikeErr   error
	followErr   error
	unfollowErr error
	saveErr     error
	unsaveErr   error
	viewErr     error

	calls []string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		recommendedFn: func(int) ([]api.Video, error) { return nil, nil },
		latestFn:      func() ([]api.Video, error) { return nil, nil },
		randomFn:      func(int) ([]api.Video, error) { return nil, nil },
	}
}

func (f *fakeBackend) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeBackend) callCount(call string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == call {
			n++
		}
	}
	return n
}

func (f *fakeBackend) Recommended(limit int) ([]api.Video, error) {
	f.record("recommended")
	return f.recommendedFn(limit)
}

func (f *fakeBackend) Latest() ([]api.Video, error) {
	f.record("latest")
	return f.latestFn()
}

func (f *fakeBackend) Random(limit int) ([]api.Video, error) {
	f.record("random")
	return f.randomFn(limit)
}

func (f *fakeBackend) Like(userID, videoID string) error {
	f.record("like")
	return f.likeErr
}

func (f *fakeBackend) Unlike(userID, videoID string) error {
	f.record("unlike")
	return f.unlikeErr
}

func (f *fakeBackend) Follow(userID string) error {
	f.record("follow")
	return f.followErr
}

func (f *fakeBackend) Unfollow(userID string) error {
	f.record("unfollow")
	return f.unfollowErr
}

func (f *fakeBackend) Save(videoID string) error {
	f.record("save")
	return f.saveErr
}

func (f *fakeBackend) Unsave(videoID string) error {
	f.record("unsave")
	return f.unsaveErr
}

func (f *fakeBackend) RecordView(videoID string, watchedSeconds float64, completed bool) error {
	f.record(fmt.Sprintf("view:%s:%.0f:%v", videoID, watchedSeconds, completed))
	return f.viewErr
}

func (f *fakeBackend) ViewCount(ctx context.Context, videoID string) (int, error) {
	f.record("view-count")
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return 42, nil
}

// makeVideos builds n videos with sequential ids starting at from.
func makeVideos(from, n int) []api.Video {
	out := make([]api.Video, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, api.Video{
			ID:     fmt.Sprintf("video-%03d", from+i),
			UserID: fmt.Sprintf("author-%03d", from+i),
		})
	}
	return out
}

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", msg)
}
