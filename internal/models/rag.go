package models

import "github.com/ternarybob/copydesk/internal/common"

// RagContext is the request-scoped retrieval bundle assembled before a
// generation call. It is never persisted; each generation request builds
// a fresh one and discards it after prompt assembly.
//
// Degradations records which retrieval steps fell back to empty results,
// so the caller can log what context the request ran without.
type RagContext struct {
	ViralExamples    []ContentMatch     `json:"viral_examples"`
	BrandVoice       *BrandVoiceProfile `json:"brand_voice,omitempty"`
	PositiveFeedback []FeedbackMatch    `json:"positive_feedback"`
	NegativeFeedback []FeedbackMatch    `json:"negative_feedback"`

	Degradations []common.StepOutcome `json:"degradations,omitempty"`
}

// HasContext reports whether any retrieval step produced usable context
func (c *RagContext) HasContext() bool {
	return len(c.ViralExamples) > 0 || c.BrandVoice != nil ||
		len(c.PositiveFeedback) > 0 || len(c.NegativeFeedback) > 0
}
