package scraping

import (
	"math"

	"github.com/ternarybob/copydesk/internal/models"
)

// Engagement weights reflect increasing intent signal: a save is worth
// more than a share, a share more than a comment, a comment more than
// a like.
const (
	commentWeight = 2
	shareWeight   = 3
	saveWeight    = 4

	// likesFallbackDivisor scales the likes-only proxy used when a
	// platform reports no view counts. The value 10 is an inherited
	// tuning heuristic; keep it as is so scores stay comparable across
	// re-scrapes of the same corpus.
	likesFallbackDivisor = 10
)

// round6 rounds to 6 decimal places
func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}

// ViralityScore computes the normalized engagement score for a post.
// Deterministic and platform-agnostic: identical counters always yield
// an identical score, which keeps re-scraping idempotent.
//
// With views available the score is a view-normalized engagement rate;
// without views but with likes, a likes-based proxy; otherwise zero.
func ViralityScore(m models.EngagementMetrics) float64 {
	engagement := float64(m.Likes + m.Comments*commentWeight + m.Shares*shareWeight + m.Saves*saveWeight)

	switch {
	case m.Views > 0:
		return round6(engagement / float64(m.Views))
	case m.Likes > 0:
		return round6(engagement / float64(m.Likes*likesFallbackDivisor))
	}
	return 0.0
}
