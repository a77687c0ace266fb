package api

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"
)

func TestLikeVideo(t *testing.T) {
	var got LikeRequest
	startServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/likes/like" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &got)
		w.WriteHeader(http.StatusOK)
	}))

	if err := LikeVideo("user-001", "video-001"); err != nil {
		t.Fatalf("LikeVideo failed: %v", err)
	}
	if got.UserID != "user-001" || got.TargetType != "video" || got.TargetID != "video-001" {
		t.Errorf("request body = %+v", got)
	}
}

func TestUnlikeVideo(t *testing.T) {
	var path string
	startServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))

	if err := UnlikeVideo("user-001", "video-001"); err != nil {
		t.Fatalf("UnlikeVideo failed: %v", err)
	}
	if path != "/api/v1/likes/unlike" {
		t.Errorf("path = %s", path)
	}
}

func TestFollowUnfollowUser(t *testing.T) {
	type call struct {
		method string
		path   string
	}
	var calls []call
	startServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, call{r.Method, r.URL.Path})
		w.WriteHeader(http.StatusOK)
	}))

	if err := FollowUser("user-042"); err != nil {
		t.Fatalf("FollowUser failed: %v", err)
	}
	if err := UnfollowUser("user-042"); err != nil {
		t.Fatalf("UnfollowUser failed: %v", err)
	}

	want := []call{
		{http.MethodPost, "/api/v1/users/user-042/follow"},
		{http.MethodDelete, "/api/v1/users/user-042/follow"},
	}
	if len(calls) != len(want) {
		t.Fatalf("got %d calls, want %d", len(calls), len(want))
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("call %d = %+v, want %+v", i, calls[i], want[i])
		}
	}
}

func TestSaveUnsaveVideo(t *testing.T) {
	var paths []string
	var got SaveRequest
	startServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &got)
		w.WriteHeader(http.StatusOK)
	}))

	if err := SaveVideo("video-005"); err != nil {
		t.Fatalf("SaveVideo failed: %v", err)
	}
	if got.VideoID != "video-005" {
		t.Errorf("save request body = %+v", got)
	}
	if err := UnsaveVideo("video-005"); err != nil {
		t.Fatalf("UnsaveVideo failed: %v", err)
	}

	if len(paths) != 2 || paths[0] != "/api/v1/saves/save" || paths[1] != "/api/v1/saves/unsave" {
		t.Errorf("paths = %v", paths)
	}
}

func TestLikeVideoUnauthorized(t *testing.T) {
	startServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(ErrorResponse{Code: "unauthorized", Message: "login required"})
	}))

	err := LikeVideo("user-001", "video-001")
	if err == nil {
		t.Fatal("expected error for 401 response")
	}
	if !IsUnauthorized(err) {
		t.Errorf("IsUnauthorized = false for %v", err)
	}
}
