package score

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/greenwave-game/greenwave/game/engine"
)

// Entry is one leaderboard submission for a completed run
type Entry struct {
	Username     string               `json:"username"`
	TotalTime    float64              `json:"total_time"`
	AverageStars float64              `json:"average_stars"`
	Levels       []engine.LevelResult `json:"levels"`
}

// Submitter posts a completed run to an external leaderboard. Submissions are
// fire-and-forget from the core's point of view: implementations report
// success or failure and never return an error or block gameplay.
type Submitter interface {
	Submit(ctx context.Context, e Entry) bool
}

// NoopSubmitter silently declines every submission
type NoopSubmitter struct{}

func (NoopSubmitter) Submit(context.Context, Entry) bool { return false }

// HTTPSubmitter posts entries as JSON to a leaderboard endpoint
type HTTPSubmitter struct {
	url        string
	httpClient *http.Client
}

// NewHTTPSubmitter creates a submitter targeting the given URL
func NewHTTPSubmitter(url string) *HTTPSubmitter {
	return &HTTPSubmitter{
		url: url,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Submit posts the entry and reports whether the leaderboard accepted it.
// Every failure mode is logged and reported as false.
func (s *HTTPSubmitter) Submit(ctx context.Context, e Entry) bool {
	data, err := json.Marshal(e)
	if err != nil {
		log.Printf("Warning: Failed to marshal leaderboard entry: %v", err)
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewBuffer(data))
	if err != nil {
		log.Printf("Warning: Failed to build leaderboard request: %v", err)
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		log.Printf("Warning: Leaderboard submission failed: %v", err)
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

// MaxUsernameLength bounds leaderboard names
const MaxUsernameLength = 24

// ValidateUsername checks a leaderboard name before submission
func ValidateUsername(name string) error {
	if name == "" {
		return fmt.Errorf("username is required")
	}
	if len(name) > MaxUsernameLength {
		return fmt.Errorf("username must be at most %d characters", MaxUsernameLength)
	}
	if strings.TrimSpace(name) != name {
		return fmt.Errorf("username must not start or end with whitespace")
	}
	for _, r := range name {
		if r < 0x20 || r == 0x7f {
			return fmt.Errorf("username contains control characters")
		}
	}
	return nil
}
