package utils

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

const (
	youtubeCallTimeout = 15 * time.Second
	youtubeMaxResults  = 5
)

// tutorialKeywords earn a candidate a flat bonus when any of them appears in
// its title.
var tutorialKeywords = []string{"tutorial", "guide", "learn", "introduction"}

// VideoCandidate is one search result considered for a topic.
type VideoCandidate struct {
	ID          string
	Title       string
	Description string
}

// ScoreVideoCandidate scores a candidate against the search phrase: 2 points
// per phrase token found in the title, 1 per token found in the description
// (cumulative), plus a flat +3 when the title looks like a tutorial.
func ScoreVideoCandidate(query, title, description string) int {
	titleLower := strings.ToLower(title)
	descLower := strings.ToLower(description)

	score := 0
	for _, token := range strings.Fields(strings.ToLower(query)) {
		if strings.Contains(titleLower, token) {
			score += 2
		}
		if strings.Contains(descLower, token) {
			score++
		}
	}

	for _, kw := range tutorialKeywords {
		if strings.Contains(titleLower, kw) {
			score += 3
			break
		}
	}

	return score
}

// PickBestVideo selects the candidate with the strictly highest score. Ties
// keep the provider's original ordering, so the first candidate at the top
// score wins. Returns nil for an empty candidate list.
func PickBestVideo(query string, candidates []VideoCandidate) *VideoCandidate {
	if len(candidates) == 0 {
		return nil
	}

	best := 0
	bestScore := ScoreVideoCandidate(query, candidates[0].Title, candidates[0].Description)
	for i := 1; i < len(candidates); i++ {
		score := ScoreVideoCandidate(query, candidates[i].Title, candidates[i].Description)
		if score > bestScore {
			best = i
			bestScore = score
		}
	}
	return &candidates[best]
}

// YoutubeService queries the YouTube Data API for topic videos.
type YoutubeService struct {
	svc *youtube.Service
}

// NewYoutubeService builds the YouTube client, failing with
// ErrProviderUnavailable when no API key is configured.
func NewYoutubeService(ctx context.Context, apiKey string) (*YoutubeService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("youtube: %w", ErrProviderUnavailable)
	}

	svc, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube client: %w", err)
	}
	return &YoutubeService{svc: svc}, nil
}

// Search returns up to youtubeMaxResults embeddable, safe-search filtered
// candidates for the query, preferring medium-length HD videos.
func (s *YoutubeService) Search(ctx context.Context, query string) ([]VideoCandidate, error) {
	ctx, cancel := context.WithTimeout(ctx, youtubeCallTimeout)
	defer cancel()

	resp, err := s.svc.Search.List([]string{"snippet"}).
		Q(query).
		MaxResults(youtubeMaxResults).
		Type("video").
		VideoEmbeddable("true").
		SafeSearch("strict").
		VideoDuration("medium").
		VideoDefinition("high").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("YouTube search failed: %w", err)
	}

	candidates := make([]VideoCandidate, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Id == nil || item.Id.VideoId == "" || item.Snippet == nil {
			continue
		}
		candidates = append(candidates, VideoCandidate{
			ID:          item.Id.VideoId,
			Title:       item.Snippet.Title,
			Description: item.Snippet.Description,
		})
	}
	return candidates, nil
}

// FindBestVideo returns the best-matching video id for the search phrase, or
// nil when nothing matched. Provider failures are logged and degrade to nil
// because video assignment is best-effort.
func (s *YoutubeService) FindBestVideo(ctx context.Context, query string) *string {
	candidates, err := s.Search(ctx, query)
	if err != nil {
		log.Printf("Video search error for %q: %v", query, err)
		return nil
	}

	best := PickBestVideo(query, candidates)
	if best == nil {
		return nil
	}
	return &best.ID
}
