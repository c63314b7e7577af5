package chat

import (
	"strings"

	"github.com/ternarybob/copydesk/internal/models"
)

// maxFeedbackWords is the length gate for conversational feedback.
// Longer messages are assumed to be new requests, never feedback.
const maxFeedbackWords = 40

// Curated signal phrases. Containment is tested on the lowercased
// message; positive phrases are checked first, so a message carrying
// both signals classifies as positive.
var positivePhrases = []string{
	"love it", "perfect", "great", "yes", "good", "nice", "amazing",
	"exactly", "that works", "nailed it", "keep it", "on brand",
	"this is it", "spot on", "brilliant", "awesome",
}

var negativePhrases = []string{
	"too formal", "too casual", "too long", "too short", "shorter",
	"longer", "change", "don't like", "more", "less", "not right",
	"off brand", "try again", "rework", "redo", "tweak", "rewrite",
	"not quite", "tone down", "tone up", "too much", "not enough",
}

// ClassifyFeedback decides whether a chat turn is implicit feedback on
// the prior assistant output. Returns the inferred rating and whether a
// signal was found.
func ClassifyFeedback(text string) (models.FeedbackRating, bool) {
	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" {
		return "", false
	}
	if len(strings.Fields(lower)) > maxFeedbackWords {
		return "", false
	}

	for _, phrase := range positivePhrases {
		if strings.Contains(lower, phrase) {
			return models.RatingPositive, true
		}
	}
	for _, phrase := range negativePhrases {
		if strings.Contains(lower, phrase) {
			return models.RatingNegative, true
		}
	}
	return "", false
}

// priorExchange walks history backwards for the most recent assistant
// message and the user message that preceded it. history excludes the
// candidate feedback message itself.
func priorExchange(history []*models.ChatMessage) (assistantMsg, userMsg string, ok bool) {
	for i := len(history) - 1; i >= 0; i-- {
		switch history[i].Role {
		case "assistant":
			if assistantMsg == "" {
				assistantMsg = history[i].Content
			}
		case "user":
			if assistantMsg != "" {
				return assistantMsg, history[i].Content, true
			}
		}
	}
	return assistantMsg, "", assistantMsg != ""
}
