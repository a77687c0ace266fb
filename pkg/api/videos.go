package api

import (
	"context"
	"fmt"

	"github.com/reelay/cli/pkg/client"
	"github.com/reelay/cli/pkg/logger"
)

// GetRecommendedVideos retrieves a personalized batch for the
// authenticated user
func GetRecommendedVideos(limit int) (*VideoListResponse, error) {
	logger.Debug("Fetching recommended videos", "limit", limit)

	var response VideoListResponse

	resp, err := client.GetClient().
		R().
		SetQueryParam("limit", fmt.Sprintf("%d", limit)).
		SetResult(&response).
		Get("/api/v1/recommended")

	if err != nil {
		return nil, err
	}

	if !resp.IsSuccess() {
		return nil, ParseError(resp)
	}

	return &response, nil
}

// GetLatestVideos retrieves the public chronological batch (no auth required)
func GetLatestVideos() (*VideoListResponse, error) {
	logger.Debug("Fetching latest videos")

	var response VideoListResponse

	resp, err := client.GetClient().
		R().
		SetResult(&response).
		Get("/api/v1/videos/latest")

	if err != nil {
		return nil, err
	}

	if !resp.IsSuccess() {
		return nil, ParseError(resp)
	}

	return &response, nil
}

// GetRandomVideos retrieves a random batch, used as a fallback source when
// the recommendation endpoint runs dry
func GetRandomVideos(limit int) (*VideoListResponse, error) {
	logger.Debug("Fetching random videos", "limit", limit)

	var response VideoListResponse

	resp, err := client.GetClient().
		R().
		SetQueryParam("limit", fmt.Sprintf("%d", limit)).
		SetResult(&response).
		Get("/api/v1/videos/random")

	if err != nil {
		return nil, err
	}

	if !resp.IsSuccess() {
		return nil, ParseError(resp)
	}

	return &response, nil
}

// GetVideoViewCount retrieves the play count for a single video. Takes a
// context so a stale lookup can be aborted when the subject video changes.
func GetVideoViewCount(ctx context.Context, videoID string) (*ViewCountResponse, error) {
	logger.Debug("Fetching view count", "video_id", videoID)

	var response ViewCountResponse

	resp, err := client.GetClient().
		R().
		SetContext(ctx).
		SetResult(&response).
		Get(fmt.Sprintf("/api/v1/videos/%s/views", videoID))

	if err != nil {
		return nil, err
	}

	if !resp.IsSuccess() {
		return nil, ParseError(resp)
	}

	return &response, nil
}

// DeleteVideo removes one of the acting user's own videos
func DeleteVideo(videoID string) error {
	logger.Debug("Deleting video", "video_id", videoID)

	resp, err := client.GetClient().
		R().
		Delete(fmt.Sprintf("/api/v1/videos/%s", videoID))

	return CheckResponse(resp, err)
}
