package scraping

import (
	"testing"

	"github.com/ternarybob/copydesk/internal/models"
)

func TestViralityScore(t *testing.T) {
	tests := []struct {
		name     string
		metrics  models.EngagementMetrics
		expected float64
	}{
		{
			name:     "views-based rate",
			metrics:  models.EngagementMetrics{Likes: 10, Views: 100},
			expected: 0.1,
		},
		{
			name:     "likes fallback without views",
			metrics:  models.EngagementMetrics{Likes: 5},
			expected: 0.1,
		},
		{
			name:     "zero everything",
			metrics:  models.EngagementMetrics{},
			expected: 0.0,
		},
		{
			name:     "weighted engagement over views",
			metrics:  models.EngagementMetrics{Likes: 100, Comments: 50, Shares: 20, Saves: 10, Views: 10000},
			expected: 0.03,
		},
		{
			name:     "comments outweigh likes",
			metrics:  models.EngagementMetrics{Comments: 10, Views: 100},
			expected: 0.2,
		},
		{
			name:     "views without any engagement",
			metrics:  models.EngagementMetrics{Views: 5000},
			expected: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ViralityScore(tt.metrics)
			if got != tt.expected {
				t.Errorf("ViralityScore(%+v) = %v, want %v", tt.metrics, got, tt.expected)
			}
		})
	}
}

func TestViralityScoreMonotonicInEngagement(t *testing.T) {
	base := models.EngagementMetrics{Likes: 10, Views: 1000}
	more := models.EngagementMetrics{Likes: 10, Saves: 5, Views: 1000}

	if ViralityScore(more) <= ViralityScore(base) {
		t.Errorf("adding saves should raise the score: base=%v more=%v",
			ViralityScore(base), ViralityScore(more))
	}
}

func TestViralityScoreDeterministic(t *testing.T) {
	m := models.EngagementMetrics{Likes: 123, Comments: 45, Shares: 6, Saves: 7, Views: 98765}
	first := ViralityScore(m)
	for i := 0; i < 10; i++ {
		if got := ViralityScore(m); got != first {
			t.Fatalf("score changed between calls: %v vs %v", first, got)
		}
	}
}
