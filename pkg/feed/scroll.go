package feed

import (
	"sync"

	"github.com/reelay/cli/pkg/logger"
)

// ScrollCommand tells the host view layer to move to an item boundary.
type ScrollCommand struct {
	Index    int
	Animated bool
}

// DefaultCommitFraction is how far past the resting offset a gesture must
// end, as a fraction of one item extent, before the index advances. Feed
// items are full-viewport pages, so the engine owns the commit-or-revert
// decision instead of delegating to the host's snap physics: a plain
// nearest-boundary snap cannot tell an intentional small flick from jitter.
const DefaultCommitFraction = 0.15

// ScrollSync reconciles raw drag and momentum offsets into discrete index
// transitions on the store's cursor, and issues programmatic scroll
// commands to keep the host view consistent with fast multi-item flicks.
type ScrollSync struct {
	mu sync.Mutex

	store          *Store
	itemExtent     float64
	commitFraction float64

	dragStartIndex int
	dragging       bool
	snapPending    bool

	scrollTo  func(ScrollCommand)
	committed func(index int)
}

// NewScrollSync creates a ScrollSync over store. itemExtent is the size of
// one feed item along the scroll axis, in the host's offset units. scrollTo
// receives programmatic scroll commands; committed fires after every cursor
// commit (including snap-backs) and is where the host hangs view telemetry
// and load-more checks.
func NewScrollSync(store *Store, itemExtent float64, scrollTo func(ScrollCommand), committed func(index int)) *ScrollSync {
	if scrollTo == nil {
		scrollTo = func(ScrollCommand) {}
	}
	if committed == nil {
		committed = func(int) {}
	}
	return &ScrollSync{
		store:          store,
		itemExtent:     itemExtent,
		commitFraction: DefaultCommitFraction,
		scrollTo:       scrollTo,
		committed:      committed,
	}
}

// DragBegin captures the gesture's starting index and cancels any snap
// completion still pending from the previous gesture.
func (s *ScrollSync) DragBegin() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dragStartIndex = s.store.Cursor()
	s.dragging = true
	s.snapPending = false
}

// DragMove feeds the live content offset during a drag. When the offset
// has crossed one or more full item extents past the start's resting
// offset, the index change is committed eagerly with a non-animated
// programmatic scroll: native momentum under-reports the index during
// rapid multi-item swipes, so waiting for the gesture to settle would
// leave the cursor behind the visual position.
func (s *ScrollSync) DragMove(offset float64) {
	s.mu.Lock()
	if !s.dragging || s.itemExtent <= 0 {
		s.mu.Unlock()
		return
	}

	crossed := int((offset - float64(s.dragStartIndex)*s.itemExtent) / s.itemExtent)
	if crossed == 0 {
		s.mu.Unlock()
		return
	}

	target := s.store.SetCursor(s.dragStartIndex + crossed)
	s.dragStartIndex = target
	cmd := ScrollCommand{Index: target, Animated: false}
	scrollTo := s.scrollTo
	s.mu.Unlock()

	logger.Debug("Eager index commit during drag", "index", target)
	scrollTo(cmd)
}

// DragEnd resolves the gesture at the offset where the finger lifted. If
// momentum follows, MomentumEnd re-resolves at the settled offset.
func (s *ScrollSync) DragEnd(offset float64) {
	s.mu.Lock()
	if !s.dragging {
		s.mu.Unlock()
		return
	}
	s.dragging = false
	s.snapPending = true
	s.mu.Unlock()

	s.resolve(offset)
}

// MomentumEnd resolves the gesture at the final resting offset, unless a
// new drag already started and cancelled the pending snap.
func (s *ScrollSync) MomentumEnd(offset float64) {
	s.mu.Lock()
	if !s.snapPending {
		s.mu.Unlock()
		return
	}
	s.snapPending = false
	s.mu.Unlock()

	s.resolve(offset)
}

// resolve commits or reverts the index based on how far the offset ended
// from the drag start's resting position: past the commit threshold in
// either direction moves exactly one item, anything less snaps back.
func (s *ScrollSync) resolve(offset float64) {
	s.mu.Lock()
	if s.itemExtent <= 0 {
		s.mu.Unlock()
		return
	}

	start := s.dragStartIndex
	delta := offset - float64(start)*s.itemExtent
	threshold := s.commitFraction * s.itemExtent

	target := start
	switch {
	case delta >= threshold:
		target = start + 1
	case delta <= -threshold:
		target = start - 1
	}

	target = s.store.SetCursor(target)
	cmd := ScrollCommand{Index: target, Animated: true}
	scrollTo := s.scrollTo
	committed := s.committed
	s.mu.Unlock()

	logger.Debug("Gesture resolved", "start", start, "target", target)
	scrollTo(cmd)
	committed(target)
}

// ScrollToIndex jumps the cursor to an arbitrary index, clamped into the
// loaded range, and issues the matching scroll command.
func (s *ScrollSync) ScrollToIndex(index int, animated bool) {
	s.mu.Lock()
	target := s.store.SetCursor(index)
	s.snapPending = false
	s.dragging = false
	cmd := ScrollCommand{Index: target, Animated: animated}
	scrollTo := s.scrollTo
	committed := s.committed
	s.mu.Unlock()

	scrollTo(cmd)
	committed(target)
}

// IsDragging reports whether a drag gesture is open.
func (s *ScrollSync) IsDragging() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dragging
}
