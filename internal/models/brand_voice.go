package models

import "time"

// VocabularyPatterns describes the word-level fingerprint of a brand voice
type VocabularyPatterns struct {
	PowerWords       []string `json:"power_words"`
	IndustryJargon   []string `json:"industry_jargon"`
	AvoidedWords     []string `json:"avoided_words"`
	SignaturePhrases []string `json:"signature_phrases"`
}

// SentenceStructure describes rhythm and construction habits
type SentenceStructure struct {
	AvgWordCount  float64 `json:"avg_word_count"`
	Style         string  `json:"style"` // short_punchy, flowing, mixed
	UsesFragments bool    `json:"uses_fragments"`
	UsesQuestions bool    `json:"uses_questions"`
	UsesCommands  bool    `json:"uses_commands"`
}

// EmojiUsage describes how the brand deploys emojis
type EmojiUsage struct {
	Frequency       string   `json:"frequency"` // none, minimal, moderate, heavy
	PreferredEmojis []string `json:"preferred_emojis"`
	Placement       string   `json:"placement"` // beginning, end, inline, none
}

// HashtagStrategy describes hashtag habits
type HashtagStrategy struct {
	AvgCount  float64  `json:"avg_count"`
	Types     []string `json:"types"` // branded, niche, trending
	Placement string   `json:"placement"`
}

// CTAPatterns describes call-to-action habits
type CTAPatterns struct {
	Styles    []string `json:"styles"`
	Frequency string   `json:"frequency"` // every_post, most_posts, occasional
}

// BrandVoiceProfile is a structured summary of brand tone extracted by
// an LLM analysis pass over the brand's own posts. Only the most recently
// analyzed profile matters at generation time; older rows are retained
// for audit, not for selection.
type BrandVoiceProfile struct {
	ID          string `json:"id"` // voice_<uuid>
	BrandName   string `json:"brand_name" badgerhold:"index"`
	BrandHandle string `json:"brand_handle"`

	// Named tone attributes scored in [0,1]
	ToneAttributes map[string]float64 `json:"tone_attributes"`

	Vocabulary  VocabularyPatterns `json:"vocabulary_patterns"`
	Sentences   SentenceStructure  `json:"sentence_structure"`
	Emoji       EmojiUsage         `json:"emoji_usage"`
	Hashtags    HashtagStrategy    `json:"hashtag_strategy"`
	CTAs        CTAPatterns        `json:"cta_patterns"`
	Personality string             `json:"overall_personality"`
	Guidelines  string             `json:"writing_guidelines"`

	AnalysisText      string    `json:"analysis_text"`
	AnalysisEmbedding []float32 `json:"analysis_embedding,omitempty"`
	SourcePostsCount  int       `json:"source_posts_count"`
	AnalyzedAt        time.Time `json:"analyzed_at"`
}
