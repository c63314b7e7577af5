package rag

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/copydesk/internal/models"
)

func TestBuildSystemPromptEmptyContext(t *testing.T) {
	context := &models.RagContext{}
	prompt := BuildSystemPrompt(context, models.ContentTypeCaption, models.PlatformInstagram, "")

	// The fixed brand guide and request block are always present
	assert.True(t, strings.HasPrefix(prompt, brandGuide))
	assert.Contains(t, prompt, "## Current Request Context")
	assert.Contains(t, prompt, "**Content type**: caption")
	assert.Contains(t, prompt, "**Target platform**: instagram")

	// No optional header appears without backing data
	assert.NotContains(t, prompt, "## Viral Content Patterns")
	assert.NotContains(t, prompt, "## Current Industry Research")
	assert.NotContains(t, prompt, "## Content the User Liked")
	assert.NotContains(t, prompt, "## Content the User Disliked")
}

func TestBuildSystemPromptSectionOrder(t *testing.T) {
	context := &models.RagContext{
		ViralExamples: []models.ContentMatch{
			{Item: &models.ScrapedContentItem{
				Platform:      models.PlatformInstagram,
				SourceHandle:  "topstylist",
				ContentText:   "Your salon needs a club.",
				ViralityScore: 0.42,
			}, Similarity: 0.9},
		},
		PositiveFeedback: []models.FeedbackMatch{
			{Record: &models.FeedbackRecord{
				ContentType:      "caption",
				Platform:         models.PlatformInstagram,
				UserMessage:      "write a caption about hair clubs",
				AssistantMessage: "Hair clubs. The move.",
				FeedbackNote:     "love it",
			}, Similarity: 0.8},
		},
		NegativeFeedback: []models.FeedbackMatch{
			{Record: &models.FeedbackRecord{
				ContentType:      "caption",
				Platform:         models.PlatformInstagram,
				AssistantMessage: "We are pleased to announce our loyalty program.",
			}, Similarity: 0.7},
		},
	}

	prompt := BuildSystemPrompt(context, models.ContentTypeCaption, models.PlatformInstagram, "salon industry is growing")

	viralIdx := strings.Index(prompt, "## Viral Content Patterns")
	researchIdx := strings.Index(prompt, "## Current Industry Research")
	likedIdx := strings.Index(prompt, "## Content the User Liked")
	dislikedIdx := strings.Index(prompt, "## Content the User Disliked")
	requestIdx := strings.Index(prompt, "## Current Request Context")

	for name, idx := range map[string]int{
		"viral": viralIdx, "research": researchIdx, "liked": likedIdx,
		"disliked": dislikedIdx, "request": requestIdx,
	} {
		require.GreaterOrEqual(t, idx, 0, "section %s missing", name)
	}

	// Fixed composition order
	assert.Less(t, viralIdx, researchIdx)
	assert.Less(t, researchIdx, likedIdx)
	assert.Less(t, likedIdx, dislikedIdx)
	assert.Less(t, dislikedIdx, requestIdx)

	// Rendered example details
	assert.Contains(t, prompt, "Example 1 [Instagram] (virality: 0.420, by @topstylist)")
	assert.Contains(t, prompt, "(User note: love it)")
}

func TestBuildSystemPromptTruncation(t *testing.T) {
	longText := strings.Repeat("x", 2000)
	context := &models.RagContext{
		ViralExamples: []models.ContentMatch{
			{Item: &models.ScrapedContentItem{
				Platform:     models.PlatformTikTok,
				SourceHandle: "handle",
				ContentText:  longText,
			}},
		},
		PositiveFeedback: []models.FeedbackMatch{
			{Record: &models.FeedbackRecord{
				ContentType:      "caption",
				UserMessage:      longText,
				AssistantMessage: longText,
			}},
		},
	}

	prompt := BuildSystemPrompt(context, models.ContentTypeCaption, models.PlatformTikTok, "")

	// Example text capped at 500, request text at 200
	assert.Contains(t, prompt, strings.Repeat("x", 500))
	assert.NotContains(t, prompt, strings.Repeat("x", 501))

	requestLine := "Request: " + strings.Repeat("x", 200) + "\n"
	assert.Contains(t, prompt, requestLine)
	assert.NotContains(t, prompt, "Request: "+strings.Repeat("x", 201))
}

func TestBuildSystemPromptCapsExampleCounts(t *testing.T) {
	context := &models.RagContext{}
	for i := 0; i < 8; i++ {
		context.ViralExamples = append(context.ViralExamples, models.ContentMatch{
			Item: &models.ScrapedContentItem{
				Platform:     models.PlatformInstagram,
				SourceHandle: "h",
				ContentText:  "text",
			},
		})
	}

	prompt := BuildSystemPrompt(context, models.ContentTypeCaption, models.PlatformInstagram, "")

	assert.Contains(t, prompt, "Example 5 [")
	assert.NotContains(t, prompt, "Example 6 [")
}

func TestBuildSystemPromptNilContext(t *testing.T) {
	prompt := BuildSystemPrompt(nil, models.ContentTypeEDM, models.PlatformYouTube, "")
	assert.True(t, strings.HasPrefix(prompt, brandGuide))
	assert.Contains(t, prompt, "**Content type**: edm")
}
