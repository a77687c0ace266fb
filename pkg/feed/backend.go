package feed

import (
	"context"
	"errors"

	"github.com/reelay/cli/pkg/api"
)

// ErrDuplicateBatch reports that a fetch succeeded but contributed zero new
// videos. It is a condition, not a failure: the upstream source is exhausted
// for now and the caller should back off its trigger.
var ErrDuplicateBatch = errors.New("feed: batch contained no new videos")

// Fetcher supplies video batches from the backend.
type Fetcher interface {
	Recommended(limit int) ([]api.Video, error)
	Latest() ([]api.Video, error)
	Random(limit int) ([]api.Video, error)
}

// SocialActions carries the add/remove verb pairs behind the optimistic
// toggles.
type SocialActions interface {
	Like(userID, videoID string) error
	Unlike(userID, videoID string) error
	Follow(userID string) error
	Unfollow(userID string) error
	Save(videoID string) error
	Unsave(videoID string) error
}

// ViewSink receives best-effort watch telemetry.
type ViewSink interface {
	RecordView(videoID string, watchedSeconds float64, completed bool) error
	ViewCount(ctx context.Context, videoID string) (int, error)
}

// Backend bundles everything the feed engine needs from the REST API.
type Backend interface {
	Fetcher
	SocialActions
	ViewSink
}

// RESTBackend implements Backend over the pkg/api endpoint functions.
type RESTBackend struct{}

func (RESTBackend) Recommended(limit int) ([]api.Video, error) {
	resp, err := api.GetRecommendedVideos(limit)
	if err != nil {
		return nil, err
	}
	return resp.Videos, nil
}

func (RESTBackend) Latest() ([]api.Video, error) {
	resp, err := api.GetLatestVideos()
	if err != nil {
		return nil, err
	}
	return resp.Videos, nil
}

func (RESTBackend) Random(limit int) ([]api.Video, error) {
	resp, err := api.GetRandomVideos(limit)
	if err != nil {
		return nil, err
	}
	return resp.Videos, nil
}

func (RESTBackend) Like(userID, videoID string) error   { return api.LikeVideo(userID, videoID) }
func (RESTBackend) Unlike(userID, videoID string) error { return api.UnlikeVideo(userID, videoID) }
func (RESTBackend) Follow(userID string) error          { return api.FollowUser(userID) }
func (RESTBackend) Unfollow(userID string) error        { return api.UnfollowUser(userID) }
func (RESTBackend) Save(videoID string) error           { return api.SaveVideo(videoID) }
func (RESTBackend) Unsave(videoID string) error         { return api.UnsaveVideo(videoID) }

func (RESTBackend) RecordView(videoID string, watchedSeconds float64, completed bool) error {
	return api.RecordView(videoID, watchedSeconds, completed)
}

func (RESTBackend) ViewCount(ctx context.Context, videoID string) (int, error) {
	resp, err := api.GetVideoViewCount(ctx, videoID)
	if err != nil {
		return 0, err
	}
	return resp.ViewCount, nil
}
