package api

import (
	"fmt"

	"github.com/reelay/cli/pkg/client"
	"github.com/reelay/cli/pkg/logger"
)

// LikeVideo likes a video on behalf of the acting user
func LikeVideo(userID, videoID string) error {
	logger.Debug("Liking video", "video_id", videoID)

	req := LikeRequest{
		UserID:     userID,
		TargetType: "video",
		TargetID:   videoID,
	}

	resp, err := client.GetClient().
		R().
		SetBody(req).
		Post("/api/v1/likes/like")

	return CheckResponse(resp, err)
}

// UnlikeVideo removes a like from a video
func UnlikeVideo(userID, videoID string) error {
	logger.Debug("Unliking video", "video_id", videoID)

	req := LikeRequest{
		UserID:     userID,
		TargetType: "video",
		TargetID:   videoID,
	}

	resp, err := client.GetClient().
		R().
		SetBody(req).
		Post("/api/v1/likes/unlike")

	return CheckResponse(resp, err)
}

// FollowUser follows another user
func FollowUser(userID string) error {
	logger.Debug("Following user", "user_id", userID)

	resp, err := client.GetClient().
		R().
		Post(fmt.Sprintf("/api/v1/users/%s/follow", userID))

	return CheckResponse(resp, err)
}

// UnfollowUser unfollows a user
func UnfollowUser(userID string) error {
	logger.Debug("Unfollowing user", "user_id", userID)

	resp, err := client.GetClient().
		R().
		Delete(fmt.Sprintf("/api/v1/users/%s/follow", userID))

	return CheckResponse(resp, err)
}

// SaveVideo bookmarks a video for the acting user
func SaveVideo(videoID string) error {
	logger.Debug("Saving video", "video_id", videoID)

	req := SaveRequest{VideoID: videoID}

	resp, err := client.GetClient().
		R().
		SetBody(req).
		Post("/api/v1/saves/save")

	return CheckResponse(resp, err)
}

// UnsaveVideo removes a bookmark
func UnsaveVideo(videoID string) error {
	logger.Debug("Unsaving video", "video_id", videoID)

	req := SaveRequest{VideoID: videoID}

	resp, err := client.GetClient().
		R().
		SetBody(req).
		Post("/api/v1/saves/unsave")

	return CheckResponse(resp, err)
}
