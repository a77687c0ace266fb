package feed

import (
	"sync"

	"github.com/reelay/cli/pkg/api"
	"github.com/reelay/cli/pkg/logger"
)

// Mutator applies optimistic like/follow/save toggles to store entities
// and reconciles them with the server. The flip happens synchronously
// before the network call; a failed call restores the exact pre-flip
// snapshot rather than blindly re-flipping, so a concurrent second toggle
// on the same video is not silently negated by the rollback.
type Mutator struct {
	mu sync.Mutex

	store        *Store
	actions      SocialActions
	actingUserID string
	closed       bool
}

// NewMutator creates a Mutator acting as actingUserID against store.
func NewMutator(store *Store, actions SocialActions, actingUserID string) *Mutator {
	return &Mutator{
		store:        store,
		actions:      actions,
		actingUserID: actingUserID,
	}
}

// toggleState is the pre-flip snapshot needed for an exact rollback.
type toggleState struct {
	flag  bool
	count int
}

// ToggleLike flips the like state of a video. The verb sent to the server
// is chosen by the membership before the flip: not liked means like,
// already liked means unlike.
func (m *Mutator) ToggleLike(videoID string) error {
	return m.toggle(videoID, "like",
		func(v *api.Video) toggleState {
			return toggleState{flag: v.LikedByMe, count: v.LikeCount}
		},
		func(v *api.Video) {
			if v.LikedByMe {
				v.LikedByMe = false
				v.LikeCount--
			} else {
				v.LikedByMe = true
				v.LikeCount++
			}
		},
		func(v *api.Video, prev toggleState) {
			v.LikedByMe = prev.flag
			v.LikeCount = prev.count
		},
		func(wasSet bool) error {
			if wasSet {
				return m.actions.Unlike(m.actingUserID, videoID)
			}
			return m.actions.Like(m.actingUserID, videoID)
		},
	)
}

// ToggleSave flips the saved state of a video.
func (m *Mutator) ToggleSave(videoID string) error {
	return m.toggle(videoID, "save",
		func(v *api.Video) toggleState {
			return toggleState{flag: v.SavedByMe, count: v.SaveCount}
		},
		func(v *api.Video) {
			if v.SavedByMe {
				v.SavedByMe = false
				v.SaveCount--
			} else {
				v.SavedByMe = true
				v.SaveCount++
			}
		},
		func(v *api.Video, prev toggleState) {
			v.SavedByMe = prev.flag
			v.SaveCount = prev.count
		},
		func(wasSet bool) error {
			if wasSet {
				return m.actions.Unsave(videoID)
			}
			return m.actions.Save(videoID)
		},
	)
}

// ToggleFollow flips whether the acting user follows the video's author.
// Following yourself is a complete no-op: no flip, no network call.
func (m *Mutator) ToggleFollow(videoID string) error {
	video, ok := m.lookup(videoID)
	if !ok {
		return nil
	}
	if video.UserID == m.actingUserID {
		logger.Debug("Ignoring self-follow", "user_id", m.actingUserID)
		return nil
	}
	authorID := video.UserID

	return m.toggle(videoID, "follow",
		func(v *api.Video) toggleState {
			return toggleState{flag: v.IsFollowingAuthor}
		},
		func(v *api.Video) {
			v.IsFollowingAuthor = !v.IsFollowingAuthor
		},
		func(v *api.Video, prev toggleState) {
			v.IsFollowingAuthor = prev.flag
		},
		func(wasSet bool) error {
			if wasSet {
				return m.actions.Unfollow(authorID)
			}
			return m.actions.Follow(authorID)
		},
	)
}

// toggle runs the shared optimistic-mutation sequence: snapshot, flip,
// call the verb picked by the pre-flip state, and restore the snapshot on
// failure. An absent video id makes the whole operation a no-op, since the
// video may have been evicted or deleted since the tap.
func (m *Mutator) toggle(
	videoID, kind string,
	snapshot func(*api.Video) toggleState,
	flip func(*api.Video),
	restore func(*api.Video, toggleState),
	call func(wasSet bool) error,
) error {
	var prev toggleState
	mutated := m.store.Mutate(videoID, func(v *api.Video) {
		prev = snapshot(v)
		flip(v)
	})
	if !mutated {
		logger.Debug("Toggle target not in store", "kind", kind, "video_id", videoID)
		return nil
	}

	if err := call(prev.flag); err != nil {
		logger.Warn("Toggle failed, rolling back", "kind", kind, "video_id", videoID, "err", err)
		if !m.isClosed() {
			m.store.Mutate(videoID, func(v *api.Video) {
				restore(v, prev)
			})
		}
		return err
	}
	return nil
}

func (m *Mutator) lookup(videoID string) (api.Video, bool) {
	videos, _ := m.store.Snapshot()
	for _, v := range videos {
		if v.ID == videoID {
			return v, true
		}
	}
	return api.Video{}, false
}

// Close stops the mutator; a rollback arriving after Close is dropped
// instead of written into a disposed store.
func (m *Mutator) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
}

func (m *Mutator) isClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}
