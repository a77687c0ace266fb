package feed

import (
	"sync"

	"github.com/reelay/cli/pkg/api"
)

// DefaultMaxWindow bounds how many videos a Store retains in memory.
const DefaultMaxWindow = 50

// Store owns the ordered, deduplicated, memory-bounded sequence of videos
// behind one feed screen, plus the cursor of the video currently presented.
// The identity set and the sequence are always updated together, so callers
// cannot observe one without the other; every exported method leaves the
// store with set == ids(sequence) and the cursor clamped inside the
// sequence bounds.
type Store struct {
	mu        sync.Mutex
	videos    []api.Video
	ids       map[string]struct{}
	cursor    int
	maxWindow int
}

// NewStore creates an empty store bounded to maxWindow videos. A
// non-positive maxWindow falls back to DefaultMaxWindow.
func NewStore(maxWindow int) *Store {
	if maxWindow <= 0 {
		maxWindow = DefaultMaxWindow
	}
	return &Store{
		ids:       make(map[string]struct{}),
		maxWindow: maxWindow,
	}
}

// Append filters batch down to videos whose id is not yet loaded and adds
// the survivors at the tail in arrival order. If the result exceeds the
// window bound, the oldest videos are evicted from the head and their ids
// forgotten, which keeps memory bounded at the cost of letting an evicted
// video reload as "new" on a later fetch. Returns how many videos were
// actually added.
func (s *Store) Append(batch []api.Video) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	added := 0
	for _, v := range batch {
		if _, dup := s.ids[v.ID]; dup {
			continue
		}
		s.videos = append(s.videos, v)
		s.ids[v.ID] = struct{}{}
		added++
	}

	if added > 0 && len(s.videos) > s.maxWindow {
		s.evictHead()
	}
	s.clampCursor()

	return added
}

// ReplaceAll resets the store to exactly batch, with no dedup filtering
// against prior contents: a manual reload is authoritative. The cursor
// returns to the top.
func (s *Store) ReplaceAll(batch []api.Video) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.videos = make([]api.Video, 0, len(batch))
	s.ids = make(map[string]struct{}, len(batch))
	for _, v := range batch {
		if _, dup := s.ids[v.ID]; dup {
			continue
		}
		s.videos = append(s.videos, v)
		s.ids[v.ID] = struct{}{}
	}
	s.cursor = 0

	if len(s.videos) > s.maxWindow {
		s.evictHead()
		s.clampCursor()
	}
}

// RemoveByID drops the video with the given id, if present, and reports
// whether anything was removed.
func (s *Store) RemoveByID(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ids[id]; !ok {
		return false
	}

	delete(s.ids, id)
	for i, v := range s.videos {
		if v.ID == id {
			s.videos = append(s.videos[:i], s.videos[i+1:]...)
			break
		}
	}
	s.clampCursor()
	return true
}

// Mutate applies fn to the video with the given id. Absent ids are a no-op:
// the video may have been evicted or deleted while a network call was in
// flight, and a late mutation must not fail.
func (s *Store) Mutate(id string, fn func(*api.Video)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.videos {
		if s.videos[i].ID == id {
			fn(&s.videos[i])
			return true
		}
	}
	return false
}

// Len returns the number of loaded videos.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.videos)
}

// Cursor returns the index of the currently presented video.
func (s *Store) Cursor() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor
}

// SetCursor moves the cursor, clamping into the valid range, and returns
// the index actually applied.
func (s *Store) SetCursor(index int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cursor = index
	s.clampCursor()
	return s.cursor
}

// Get returns the video at index, if the index is in range.
func (s *Store) Get(index int) (api.Video, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.videos) {
		return api.Video{}, false
	}
	return s.videos[index], true
}

// Current returns the video under the cursor.
func (s *Store) Current() (api.Video, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.videos) == 0 {
		return api.Video{}, false
	}
	return s.videos[s.cursor], true
}

// UnseenAhead returns how many loaded videos remain past the cursor.
func (s *Store) UnseenAhead() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.videos) == 0 {
		return 0
	}
	return len(s.videos) - s.cursor - 1
}

// Snapshot returns a copy of the loaded videos and the cursor, safe for
// the UI layer to read without holding up mutations.
func (s *Store) Snapshot() ([]api.Video, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]api.Video, len(s.videos))
	copy(out, s.videos)
	return out, s.cursor
}

// Contains reports whether an id is in the identity set.
func (s *Store) Contains(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.ids[id]
	return ok
}

// evictHead trims the sequence to the window bound from the head and
// rebuilds the identity set from the surviving tail. Callers hold s.mu.
func (s *Store) evictHead() {
	evicted := len(s.videos) - s.maxWindow
	s.videos = append([]api.Video(nil), s.videos[evicted:]...)
	s.ids = make(map[string]struct{}, len(s.videos))
	for _, v := range s.videos {
		s.ids[v.ID] = struct{}{}
	}
	s.cursor -= evicted
}

// clampCursor forces the cursor into [0, len-1], or 0 when empty.
// Callers hold s.mu.
func (s *Store) clampCursor() {
	if len(s.videos) == 0 {
		s.cursor = 0
		return
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
	if s.cursor >= len(s.videos) {
		s.cursor = len(s.videos) - 1
	}
}
