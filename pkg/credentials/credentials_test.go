package credentials

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/reelay/cli/pkg/config"
)

// TestCredentialsIsExpired validates token expiration check
func TestCredentialsIsExpired(t *testing.T) {
	testCases := []struct {
		expiresAt time.Time
		expect    bool
		name      string
	}{
		{time.Now().Add(-1 * time.Hour), true, "past expiration"},
		{time.Now().Add(1 * time.Hour), false, "future expiration"},
		{time.Now().Add(-1 * time.Minute), true, "recently expired"},
		{time.Now().Add(1 * time.Minute), false, "expiring soon"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			creds := &Credentials{
				AccessToken: "test_token",
				ExpiresAt:   tc.expiresAt,
			}

			if result := creds.IsExpired(); result != tc.expect {
				t.Errorf("Expected IsExpired=%v, got %v", tc.expect, result)
			}
		})
	}
}

// TestCredentialsIsValid validates credential validity check
func TestCredentialsIsValid(t *testing.T) {
	testCases := []struct {
		accessToken string
		expiresAt   time.Time
		expect      bool
		name        string
	}{
		{"valid_token", time.Now().Add(1 * time.Hour), true, "valid credentials"},
		{"", time.Now().Add(1 * time.Hour), false, "empty access token"},
		{"valid_token", time.Now().Add(-1 * time.Hour), false, "expired token"},
		{"", time.Now().Add(-1 * time.Hour), false, "empty and expired"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			creds := &Credentials{
				AccessToken: tc.accessToken,
				ExpiresAt:   tc.expiresAt,
			}

			if result := creds.IsValid(); result != tc.expect {
				t.Errorf("Expected IsValid=%v, got %v", tc.expect, result)
			}
		})
	}
}

// TestCredentialsZeroValues handles zero-valued credentials
func TestCredentialsZeroValues(t *testing.T) {
	creds := &Credentials{}

	if !creds.IsExpired() {
		t.Error("Zero-value credentials should be expired (ExpiresAt is zero)")
	}

	if creds.IsValid() {
		t.Error("Zero-value credentials should be invalid")
	}
}

// TestSaveLoadRoundTrip validates persistence to disk
func TestSaveLoadRoundTrip(t *testing.T) {
	tempDir := t.TempDir()
	if err := config.Init(filepath.Join(tempDir, "config.toml")); err != nil {
		t.Fatalf("config init failed: %v", err)
	}

	want := &Credentials{
		AccessToken:  "access_123",
		RefreshToken: "refresh_123",
		ExpiresAt:    time.Now().Add(1 * time.Hour).Truncate(time.Second),
		UserID:       "user-001",
		Username:     "alice",
		Email:        "alice@example.com",
	}

	if err := Save(want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got == nil {
		t.Fatal("Load returned nil after Save")
	}

	if got.AccessToken != want.AccessToken ||
		got.RefreshToken != want.RefreshToken ||
		got.UserID != want.UserID ||
		got.Username != want.Username ||
		got.Email != want.Email {
		t.Errorf("loaded credentials = %+v, want %+v", got, want)
	}
	if !got.ExpiresAt.Equal(want.ExpiresAt) {
		t.Errorf("ExpiresAt = %v, want %v", got.ExpiresAt, want.ExpiresAt)
	}
}

// TestSaveFilePermissions validates restricted permissions on disk
func TestSaveFilePermissions(t *testing.T) {
	tempDir := t.TempDir()
	if err := config.Init(filepath.Join(tempDir, "config.toml")); err != nil {
		t.Fatalf("config init failed: %v", err)
	}

	creds := &Credentials{AccessToken: "secret"}
	if err := Save(creds); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	info, err := os.Stat(config.GetCredentialsPath())
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("credentials file permissions = %o, want 600", perm)
	}
}

// TestLoadMissingFile returns nil without error
func TestLoadMissingFile(t *testing.T) {
	tempDir := t.TempDir()
	if err := config.Init(filepath.Join(tempDir, "config.toml")); err != nil {
		t.Fatalf("config init failed: %v", err)
	}

	creds, err := Load()
	if err != nil {
		t.Fatalf("Load of missing file should not error: %v", err)
	}
	if creds != nil {
		t.Errorf("expected nil credentials, got %+v", creds)
	}
}

// TestDelete removes the stored file
func TestDelete(t *testing.T) {
	tempDir := t.TempDir()
	if err := config.Init(filepath.Join(tempDir, "config.toml")); err != nil {
		t.Fatalf("config init failed: %v", err)
	}

	if err := Save(&Credentials{AccessToken: "token"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := Delete(); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	creds, err := Load()
	if err != nil || creds != nil {
		t.Errorf("expected missing credentials after delete, got %+v, %v", creds, err)
	}
}
