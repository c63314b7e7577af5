package chat

import (
	"strings"
	"testing"

	"github.com/ternarybob/copydesk/internal/models"
)

func TestClassifyFeedback(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		wantRating models.FeedbackRating
		wantSignal bool
	}{
		{
			name:       "short positive",
			text:       "love it, thank you so much",
			wantRating: models.RatingPositive,
			wantSignal: true,
		},
		{
			name:       "short negative",
			text:       "this feels too formal for us",
			wantRating: models.RatingNegative,
			wantSignal: true,
		},
		{
			name:       "case insensitive",
			text:       "NAILED IT",
			wantRating: models.RatingPositive,
			wantSignal: true,
		},
		{
			name:       "positive wins tie-break",
			text:       "love it but tone down the emojis",
			wantRating: models.RatingPositive,
			wantSignal: true,
		},
		{
			name:       "length gate overrides keyword match",
			text:       "love it " + strings.Repeat("word ", 39),
			wantSignal: false,
		},
		{
			name:       "exactly forty words still classifies",
			text:       "love it " + strings.Repeat("word ", 38),
			wantRating: models.RatingPositive,
			wantSignal: true,
		},
		{
			name:       "plain new request",
			text:       "write a carousel about booking software",
			wantSignal: false,
		},
		{
			name:       "empty",
			text:       "   ",
			wantSignal: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rating, ok := ClassifyFeedback(tt.text)
			if ok != tt.wantSignal {
				t.Fatalf("ClassifyFeedback(%q) signal = %v, want %v", tt.text, ok, tt.wantSignal)
			}
			if ok && rating != tt.wantRating {
				t.Errorf("ClassifyFeedback(%q) rating = %s, want %s", tt.text, rating, tt.wantRating)
			}
		})
	}
}

func TestPriorExchange(t *testing.T) {
	history := []*models.ChatMessage{
		{Role: "user", Content: "write a caption"},
		{Role: "assistant", Content: "first draft"},
		{Role: "user", Content: "make it shorter"},
		{Role: "assistant", Content: "second draft"},
	}

	assistantMsg, userMsg, ok := priorExchange(history)
	if !ok {
		t.Fatal("expected an exchange to be found")
	}
	if assistantMsg != "second draft" {
		t.Errorf("assistant = %q, want most recent assistant turn", assistantMsg)
	}
	if userMsg != "make it shorter" {
		t.Errorf("user = %q, want the user turn preceding it", userMsg)
	}
}

func TestPriorExchangeNoAssistantTurn(t *testing.T) {
	history := []*models.ChatMessage{
		{Role: "user", Content: "write a caption"},
	}
	if _, _, ok := priorExchange(history); ok {
		t.Error("expected no exchange without an assistant turn")
	}
}
