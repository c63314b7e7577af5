package rag

import (
	"fmt"
	"strings"

	"github.com/ternarybob/copydesk/internal/models"
)

// Truncation limits applied when rendering retrieved examples into the
// system prompt. Virality examples and assistant outputs get more room
// than the user's original request text.
const (
	maxViralExamples    = 5
	maxPositiveInPrompt = 3
	maxNegativeInPrompt = 2
	exampleTextLimit    = 500
	requestTextLimit    = 200
)

const viralExamplesHeader = `

---

## Viral Content Patterns (from research)
Here are examples of high-performing content in the salon/beauty niche. Draw inspiration from their patterns (hooks, structure, engagement tactics) but never copy directly:

`

const researchHeader = `

---

## Current Industry Research
The following research was gathered from the web about the topic. Use these insights to make the content more relevant, timely, and data-informed. Do NOT cite sources or mention "research says" in the output. Just weave the insights naturally into the copy.

`

const positiveFeedbackHeader = `

---

## Content the User Liked (emulate this style)
The user previously rated this content positively. Use similar tone, structure, and approach:

`

const negativeFeedbackHeader = `

---

## Content the User Disliked (avoid this style)
The user previously rated this content negatively. Avoid this tone, structure, or approach:

`

// truncate cuts s to at most limit characters
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}

// BuildSystemPrompt renders the retrieval context into the final system
// instructions. Composition is deterministic: the fixed brand guide
// first, then viral examples, research, positive feedback, negative
// feedback and the request block, in that order. A section whose
// backing data is empty is omitted entirely, never rendered as a bare
// heading.
func BuildSystemPrompt(context *models.RagContext, contentType string, platform models.Platform, research string) string {
	var prompt strings.Builder
	prompt.WriteString(brandGuide)

	if context != nil && len(context.ViralExamples) > 0 {
		examples := context.ViralExamples
		if len(examples) > maxViralExamples {
			examples = examples[:maxViralExamples]
		}
		parts := make([]string, 0, len(examples))
		for i, ex := range examples {
			parts = append(parts, fmt.Sprintf(
				"Example %d [%s] (virality: %.3f, by @%s):\n%s",
				i+1,
				ex.Item.Platform.DisplayName(),
				ex.Item.ViralityScore,
				ex.Item.SourceHandle,
				truncate(ex.Item.ContentText, exampleTextLimit),
			))
		}
		prompt.WriteString(viralExamplesHeader)
		prompt.WriteString(strings.Join(parts, "\n\n"))
	}

	if strings.TrimSpace(research) != "" {
		prompt.WriteString(researchHeader)
		prompt.WriteString(research)
	}

	if context != nil && len(context.PositiveFeedback) > 0 {
		feedback := context.PositiveFeedback
		if len(feedback) > maxPositiveInPrompt {
			feedback = feedback[:maxPositiveInPrompt]
		}
		parts := make([]string, 0, len(feedback))
		for i, fb := range feedback {
			note := ""
			if fb.Record.FeedbackNote != "" {
				note = fmt.Sprintf(" (User note: %s)", fb.Record.FeedbackNote)
			}
			parts = append(parts, fmt.Sprintf(
				"Liked example %d [%s / %s]%s:\nRequest: %s\nOutput: %s",
				i+1,
				fb.Record.ContentType,
				fb.Record.Platform,
				note,
				truncate(fb.Record.UserMessage, requestTextLimit),
				truncate(fb.Record.AssistantMessage, exampleTextLimit),
			))
		}
		prompt.WriteString(positiveFeedbackHeader)
		prompt.WriteString(strings.Join(parts, "\n\n"))
	}

	if context != nil && len(context.NegativeFeedback) > 0 {
		feedback := context.NegativeFeedback
		if len(feedback) > maxNegativeInPrompt {
			feedback = feedback[:maxNegativeInPrompt]
		}
		parts := make([]string, 0, len(feedback))
		for i, fb := range feedback {
			note := ""
			if fb.Record.FeedbackNote != "" {
				note = fmt.Sprintf(" (User note: %s)", fb.Record.FeedbackNote)
			}
			parts = append(parts, fmt.Sprintf(
				"Disliked example %d [%s / %s]%s:\nOutput: %s",
				i+1,
				fb.Record.ContentType,
				fb.Record.Platform,
				note,
				truncate(fb.Record.AssistantMessage, exampleTextLimit),
			))
		}
		prompt.WriteString(negativeFeedbackHeader)
		prompt.WriteString(strings.Join(parts, "\n\n"))
	}

	prompt.WriteString(fmt.Sprintf(`

---

## Current Request Context
- **Content type**: %s
- **Target platform**: %s
- Adapt tone, length, and formatting specifically for %s
- Output ONLY the requested copy. No meta-commentary unless the user asks for it.
- For captions, output plain text ready to paste into the platform.
- For carousels, EDMs, and reel scripts, output structured markdown following the format guidelines above. Never output JSON.
`, contentType, platform, platform))

	return prompt.String()
}
