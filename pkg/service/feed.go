package service

import (
	"fmt"

	"github.com/reelay/cli/pkg/api"
	"github.com/reelay/cli/pkg/client"
	"github.com/reelay/cli/pkg/logger"
)

// FeedService provides non-interactive feed listings
type FeedService struct{}

// NewFeedService creates a new feed service
func NewFeedService() *FeedService {
	return &FeedService{}
}

// ListRecommended displays one batch of the personalized feed
func (fs *FeedService) ListRecommended(limit int) error {
	logger.Debug("Listing recommended feed", "limit", limit)

	client.Init()
	resp, err := api.GetRecommendedVideos(limit)
	if err != nil {
		return fmt.Errorf("failed to fetch recommended videos: %w", err)
	}

	if len(resp.Videos) == 0 {
		fmt.Println("No videos in your feed yet.")
		return nil
	}

	fs.displayVideos("For You", resp.Videos)
	return nil
}

// ListLatest displays the public chronological feed
func (fs *FeedService) ListLatest() error {
	logger.Debug("Listing latest feed")

	client.Init()
	resp, err := api.GetLatestVideos()
	if err != nil {
		return fmt.Errorf("failed to fetch latest videos: %w", err)
	}

	if len(resp.Videos) == 0 {
		fmt.Println("No videos available.")
		return nil
	}

	fs.displayVideos("Latest", resp.Videos)
	return nil
}

func (fs *FeedService) displayVideos(title string, videos []api.Video) {
	fmt.Printf("\n%s\n\n", title)

	for i, v := range videos {
		label := v.Title
		if label == "" {
			label = v.Description
		}
		fmt.Printf("%d. @%s  %s\n", i+1, v.AuthorUsername, label)
		fmt.Printf("   %ds | %d likes | %d comments | %d views\n",
			v.Duration, v.LikeCount, v.CommentCount, v.ViewCount)
		fmt.Printf("   Posted: %s\n\n", v.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	fmt.Printf("Showing %d videos\n\n", len(videos))
}
