package rag

import (
	"context"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/copydesk/internal/common"
	"github.com/ternarybob/copydesk/internal/interfaces"
	"github.com/ternarybob/copydesk/internal/models"
)

// ContextBuilder assembles the retrieval context for one generation
// request. Every step is best-effort: a failed embedding call, an empty
// corpus or a missing voice profile degrades that step to an empty
// result and the request proceeds with less context.
type ContextBuilder struct {
	embedding  interfaces.EmbeddingService
	content    interfaces.ContentStorage
	feedback   interfaces.FeedbackStorage
	brandVoice interfaces.BrandVoiceStorage
	config     *common.Config
	logger     arbor.ILogger
}

// NewContextBuilder creates a new ContextBuilder instance
func NewContextBuilder(
	embedding interfaces.EmbeddingService,
	content interfaces.ContentStorage,
	feedback interfaces.FeedbackStorage,
	brandVoice interfaces.BrandVoiceStorage,
	config *common.Config,
	logger arbor.ILogger,
) *ContextBuilder {
	return &ContextBuilder{
		embedding:  embedding,
		content:    content,
		feedback:   feedback,
		brandVoice: brandVoice,
		config:     config,
		logger:     logger,
	}
}

// Build assembles the four-part retrieval context. It never returns an
// error: each step that fails is recorded as a degradation and yields
// an empty result.
func (b *ContextBuilder) Build(ctx context.Context, req *interfaces.GenerateRequest) (*models.RagContext, error) {
	ragContext := &models.RagContext{
		ViralExamples:    []models.ContentMatch{},
		PositiveFeedback: []models.FeedbackMatch{},
		NegativeFeedback: []models.FeedbackMatch{},
	}

	b.buildViralExamples(ctx, req, ragContext)
	b.buildBrandVoice(ragContext)
	b.buildFeedbackExamples(ctx, req, ragContext)

	b.logger.Debug().
		Int("viral_examples", len(ragContext.ViralExamples)).
		Bool("brand_voice", ragContext.BrandVoice != nil).
		Int("positive_feedback", len(ragContext.PositiveFeedback)).
		Int("negative_feedback", len(ragContext.NegativeFeedback)).
		Int("degradations", len(ragContext.Degradations)).
		Msg("RAG context assembled")

	return ragContext, nil
}

// buildViralExamples embeds the request in query mode and searches the
// scraped corpus for similar high performers
func (b *ContextBuilder) buildViralExamples(ctx context.Context, req *interfaces.GenerateRequest, ragContext *models.RagContext) {
	queryVec, err := b.embedding.EmbedOne(ctx, req.Message, interfaces.EmbedModeQuery)
	if err != nil {
		b.logger.Warn().Err(err).Msg("Query embedding failed, skipping viral examples")
		ragContext.Degradations = append(ragContext.Degradations, common.Degraded("viral_examples", err.Error()))
		return
	}

	matches, err := b.content.SearchSimilar(queryVec, b.config.RAG.MaxExamples, b.config.RAG.MatchThreshold, req.Platform)
	if err != nil {
		b.logger.Warn().Err(err).Msg("Viral content search failed (corpus may be empty)")
		ragContext.Degradations = append(ragContext.Degradations, common.Degraded("viral_examples", err.Error()))
		return
	}

	for _, match := range matches {
		ragContext.ViralExamples = append(ragContext.ViralExamples, *match)
	}
}

// buildBrandVoice fetches the latest voice profile. Absence is valid,
// only a storage error counts as a degradation.
func (b *ContextBuilder) buildBrandVoice(ragContext *models.RagContext) {
	profile, err := b.brandVoice.LatestProfile(b.config.Brand.Name)
	if err != nil {
		b.logger.Warn().Err(err).Msg("Brand voice fetch failed")
		ragContext.Degradations = append(ragContext.Degradations, common.Degraded("brand_voice", err.Error()))
		return
	}
	ragContext.BrandVoice = profile
}

// buildFeedbackExamples embeds the request in document mode, matching
// how stored feedback was embedded, and fetches liked and disliked
// prior generations scoped to the requested content type.
func (b *ContextBuilder) buildFeedbackExamples(ctx context.Context, req *interfaces.GenerateRequest, ragContext *models.RagContext) {
	queryVec, err := b.embedding.EmbedOne(ctx, req.Message, interfaces.EmbedModeDocument)
	if err != nil {
		b.logger.Warn().Err(err).Msg("Feedback embedding failed, skipping feedback examples")
		ragContext.Degradations = append(ragContext.Degradations, common.Degraded("feedback_examples", err.Error()))
		return
	}

	positive, err := b.feedback.SearchFeedback(queryVec, req.ContentType, models.RatingPositive, b.config.RAG.PositiveLimit, b.config.RAG.MatchThreshold)
	if err != nil {
		b.logger.Warn().Err(err).Msg("Positive feedback search failed")
		ragContext.Degradations = append(ragContext.Degradations, common.Degraded("positive_feedback", err.Error()))
	} else {
		for _, match := range positive {
			ragContext.PositiveFeedback = append(ragContext.PositiveFeedback, *match)
		}
	}

	negative, err := b.feedback.SearchFeedback(queryVec, req.ContentType, models.RatingNegative, b.config.RAG.NegativeLimit, b.config.RAG.MatchThreshold)
	if err != nil {
		b.logger.Warn().Err(err).Msg("Negative feedback search failed")
		ragContext.Degradations = append(ragContext.Degradations, common.Degraded("negative_feedback", err.Error()))
	} else {
		for _, match := range negative {
			ragContext.NegativeFeedback = append(ragContext.NegativeFeedback, *match)
		}
	}
}
