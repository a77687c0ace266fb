package api

import "time"

// Auth Response Types
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	User         User   `json:"user"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type RefreshResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// User represents a Reelay account
type User struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	Username       string    `json:"username"`
	DisplayName    string    `json:"display_name"`
	Bio            string    `json:"bio"`
	AvatarURL      string    `json:"avatar_url"`
	FollowerCount  int       `json:"follower_count"`
	FollowingCount int       `json:"following_count"`
	VideoCount     int       `json:"video_count"`
	IsVerified     bool      `json:"is_verified"`
	IsPrivate      bool      `json:"is_private"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Profile Response Types
type ProfileResponse struct {
	User User `json:"user"`
}

// Video represents one feed item. Counters and the *ByMe membership flags
// are mutable client-side state; everything else is immutable identity.
type Video struct {
	ID                string    `json:"id"`
	UserID            string    `json:"user_id"`
	AuthorUsername    string    `json:"author_username,omitempty"`
	Title             string    `json:"title,omitempty"`
	Description       string    `json:"description,omitempty"`
	VideoURL          string    `json:"video_url"`
	ThumbnailURL      string    `json:"thumbnail_url,omitempty"`
	Duration          int       `json:"duration"`
	LikeCount         int       `json:"like_count"`
	SaveCount         int       `json:"save_count"`
	CommentCount      int       `json:"comment_count"`
	ViewCount         int       `json:"view_count"`
	LikedByMe         bool      `json:"liked_by_me"`
	SavedByMe         bool      `json:"saved_by_me"`
	IsFollowingAuthor bool      `json:"is_following_author"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// VideoListResponse represents a batch of videos from any feed endpoint
type VideoListResponse struct {
	Videos     []Video `json:"videos"`
	TotalCount int     `json:"total_count"`
	Page       int     `json:"page"`
	PageSize   int     `json:"page_size"`
}

// LikeRequest targets a likeable entity (videos, comments)
type LikeRequest struct {
	UserID     string `json:"userId"`
	TargetType string `json:"targetType"`
	TargetID   string `json:"targetId"`
}

// SaveRequest bookmarks a video for the acting user
type SaveRequest struct {
	VideoID string `json:"videoId"`
}

// ViewRecordRequest is the watch-telemetry payload; the backend upserts
// and keeps the max watch duration, so repeats are harmless.
type ViewRecordRequest struct {
	VideoID       string  `json:"videoId"`
	WatchDuration float64 `json:"watchDuration"`
	Completed     bool    `json:"completed"`
}

// ViewCountResponse carries the play count for a single video
type ViewCountResponse struct {
	VideoID   string `json:"video_id"`
	ViewCount int    `json:"view_count"`
}

// ErrorResponse represents an API error body
type ErrorResponse struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
