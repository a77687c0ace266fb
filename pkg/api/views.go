package api

import (
	"github.com/reelay/cli/pkg/client"
	"github.com/reelay/cli/pkg/logger"
)

// RecordView posts watch telemetry for a video. The backend upserts on
// (user, video) and keeps the max duration, so this is safe to repeat.
func RecordView(videoID string, watchDuration float64, completed bool) error {
	logger.Debug("Recording view", "video_id", videoID, "duration", watchDuration, "completed", completed)

	req := ViewRecordRequest{
		VideoID:       videoID,
		WatchDuration: watchDuration,
		Completed:     completed,
	}

	resp, err := client.GetClient().
		R().
		SetBody(req).
		Post("/api/v1/video-views/record")

	return CheckResponse(resp, err)
}
