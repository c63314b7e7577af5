package chat

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/copydesk/internal/common"
	"github.com/ternarybob/copydesk/internal/interfaces"
	"github.com/ternarybob/copydesk/internal/models"
	"github.com/ternarybob/copydesk/internal/services/rag"
)

// Persistence caps applied before storing chat text in feedback records
const (
	maxStoredUserMessage      = 2000
	maxStoredAssistantMessage = 5000
	maxEmbeddedText           = 2000
	maxSessionTitle           = 80
)

// Service orchestrates retrieval-augmented content generation. Each
// call runs its own research, retrieval, prompt assembly and streaming
// pipeline; the only shared state is the persistent store and the
// injected service clients.
type Service struct {
	llm        interfaces.LLMService
	embedding  interfaces.EmbeddingService
	research   interfaces.ResearchService
	ragBuilder interfaces.RagBuilder
	sessions   interfaces.SessionStorage
	feedback   interfaces.FeedbackStorage
	config     *common.Config
	logger     arbor.ILogger
}

// NewService creates a new generation service instance
func NewService(
	llm interfaces.LLMService,
	embedding interfaces.EmbeddingService,
	research interfaces.ResearchService,
	ragBuilder interfaces.RagBuilder,
	sessions interfaces.SessionStorage,
	feedback interfaces.FeedbackStorage,
	config *common.Config,
	logger arbor.ILogger,
) *Service {
	return &Service{
		llm:        llm,
		embedding:  embedding,
		research:   research,
		ragBuilder: ragBuilder,
		sessions:   sessions,
		feedback:   feedback,
		config:     config,
		logger:     logger,
	}
}

// normalizeRequest fills the defaults for omitted request fields and
// rejects unknown values. Runs before any session or stream work so
// transports can surface the error ahead of the response status.
func normalizeRequest(req *interfaces.GenerateRequest) error {
	if req.Message == "" {
		return fmt.Errorf("message is required")
	}
	if req.ContentType == "" {
		req.ContentType = models.ContentTypeCaption
	}
	if req.Platform == "" {
		req.Platform = models.PlatformInstagram
	}
	if !models.ValidContentType(req.ContentType) {
		return fmt.Errorf("invalid content type: %s", req.ContentType)
	}
	if !models.ValidPlatform(req.Platform) {
		return fmt.Errorf("invalid platform: %s", req.Platform)
	}
	return nil
}

// sessionTitle derives a session title from the first user message
func sessionTitle(message string) string {
	if len(message) > maxSessionTitle {
		return message[:maxSessionTitle] + "..."
	}
	return message
}

// GenerateStream runs the full pipeline for one generation turn.
// Retrieval steps degrade silently; only a failure of the generation
// call itself is surfaced, as a visible inline error marker followed by
// the returned error.
func (s *Service) GenerateStream(ctx context.Context, req *interfaces.GenerateRequest, onDelta func(delta string)) (*models.ChatMessage, error) {
	if err := normalizeRequest(req); err != nil {
		return nil, err
	}

	session, history, err := s.resolveSession(req)
	if err != nil {
		return nil, err
	}

	// Implicit feedback on the prior turn is detected and stored before
	// generation; failure here never blocks the conversation
	s.detectConversationalFeedback(ctx, req, history)

	// Optional current-events research. The research service itself
	// degrades to empty text when unavailable.
	research := ""
	if req.UseResearch && s.research != nil {
		research, _ = s.research.Research(ctx, req.Message, req.ContentType, req.Platform)
	}

	ragContext, err := s.ragBuilder.Build(ctx, req)
	if err != nil {
		// The builder is best-effort by contract, treat a hard failure
		// as an empty context carrying the failed outcome
		s.logger.Warn().Err(err).Msg("RAG build failed, generating without context")
		ragContext = &models.RagContext{
			Degradations: []common.StepOutcome{common.Failed("rag_context", err.Error())},
		}
	}

	systemPrompt := rag.BuildSystemPrompt(ragContext, req.ContentType, req.Platform, research)

	llmMessages := make([]interfaces.LLMMessage, 0, len(history)+1)
	for _, msg := range history {
		llmMessages = append(llmMessages, interfaces.LLMMessage{Role: msg.Role, Content: msg.Content})
	}
	llmMessages = append(llmMessages, interfaces.LLMMessage{
		Role:        "user",
		Content:     req.Message,
		Attachments: req.Attachments,
	})

	fullText, err := s.llm.ChatStream(ctx, systemPrompt, llmMessages, onDelta)
	if err != nil {
		// Partial output already forwarded stays with the caller; a
		// visible marker closes the stream and nothing is persisted
		if onDelta != nil {
			onDelta(fmt.Sprintf("\n\n[Error: %v]", err))
		}
		return nil, fmt.Errorf("generation failed: %w", err)
	}

	assistantMsg := s.persistExchange(session, req, fullText, ragContext)
	return assistantMsg, nil
}

// EnsureSession resolves or creates the session a request targets.
// When a new session is created the request is updated to point at it,
// so a following GenerateStream call reuses it instead of creating
// another.
func (s *Service) EnsureSession(req *interfaces.GenerateRequest) (*models.ChatSession, error) {
	if err := normalizeRequest(req); err != nil {
		return nil, err
	}
	session, _, err := s.resolveSession(req)
	if err != nil {
		return nil, err
	}
	req.SessionID = session.ID
	return session, nil
}

// resolveSession loads an existing session with its history, or creates
// a new one titled from the request message
func (s *Service) resolveSession(req *interfaces.GenerateRequest) (*models.ChatSession, []*models.ChatMessage, error) {
	if req.SessionID != "" {
		session, err := s.sessions.GetSession(req.SessionID)
		if err != nil {
			return nil, nil, fmt.Errorf("unknown session: %w", err)
		}
		history, err := s.sessions.ListMessages(session.ID)
		if err != nil {
			s.logger.Warn().Err(err).Str("session_id", session.ID).Msg("Failed to load session history")
			history = nil
		}
		return session, history, nil
	}

	session := &models.ChatSession{
		Title:       sessionTitle(req.Message),
		ContentType: req.ContentType,
		Platform:    req.Platform,
	}
	if err := s.sessions.SaveSession(session); err != nil {
		return nil, nil, fmt.Errorf("failed to create session: %w", err)
	}
	s.logger.Debug().Str("session_id", session.ID).Msg("Created chat session")
	return session, nil, nil
}

// detectConversationalFeedback classifies the incoming message against
// the prior exchange and stores an inferred feedback record on a hit.
// All failures are logged and swallowed.
func (s *Service) detectConversationalFeedback(ctx context.Context, req *interfaces.GenerateRequest, history []*models.ChatMessage) {
	if len(history) < 2 {
		return
	}

	rating, ok := ClassifyFeedback(req.Message)
	if !ok {
		return
	}

	assistantMsg, userMsg, ok := priorExchange(history)
	if !ok {
		return
	}

	record := &models.FeedbackRecord{
		ContentType:      req.ContentType,
		Platform:         req.Platform,
		UserMessage:      truncate(userMsg, maxStoredUserMessage),
		AssistantMessage: truncate(assistantMsg, maxStoredAssistantMessage),
		Rating:           rating,
		FeedbackNote:     req.Message,
		Source:           models.FeedbackSourceConversational,
	}

	if embedding, err := s.embedding.EmbedOne(ctx, truncate(assistantMsg, maxEmbeddedText), interfaces.EmbedModeDocument); err != nil {
		s.logger.Warn().Err(err).Msg("Feedback embedding failed, storing without vector")
	} else {
		record.Embedding = embedding
	}

	if err := s.feedback.SaveFeedback(record); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to save conversational feedback")
		return
	}

	s.logger.Info().
		Str("rating", string(rating)).
		Str("note", truncate(req.Message, 50)).
		Msg("Saved conversational feedback")
}

// persistExchange stores the user and assistant turns after a fully
// successful stream. Persistence failures are logged and swallowed, the
// generated text has already been delivered.
func (s *Service) persistExchange(session *models.ChatSession, req *interfaces.GenerateRequest, fullText string, ragContext *models.RagContext) *models.ChatMessage {
	userMsg := &models.ChatMessage{
		SessionID: session.ID,
		Role:      "user",
		Content:   req.Message,
	}
	if err := s.sessions.SaveMessage(userMsg); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to persist user message")
	}

	assistantMsg := &models.ChatMessage{
		SessionID:      session.ID,
		Role:           "assistant",
		Content:        fullText,
		ModelUsed:      s.config.Claude.Model,
		RAGContextUsed: ragContext != nil && len(ragContext.ViralExamples) > 0,
	}
	if err := s.sessions.SaveMessage(assistantMsg); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to persist assistant message")
	}

	if err := s.sessions.SaveSession(session); err != nil {
		s.logger.Warn().Err(err).Str("session_id", session.ID).Msg("Failed to touch session")
	}

	return assistantMsg
}

// RecordFeedback stores explicit thumbs up/down feedback against a
// prior assistant message
func (s *Service) RecordFeedback(ctx context.Context, req *interfaces.FeedbackRequest) (*models.FeedbackRecord, error) {
	if !models.ValidRating(req.Rating) {
		return nil, fmt.Errorf("rating must be 'positive' or 'negative'")
	}

	session, err := s.sessions.GetSession(req.SessionID)
	if err != nil {
		return nil, fmt.Errorf("unknown session: %w", err)
	}
	history, err := s.sessions.ListMessages(session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session history: %w", err)
	}

	var assistantMsg *models.ChatMessage
	var userMsg string
	for i, msg := range history {
		if msg.ID == req.MessageID {
			if msg.Role != "assistant" {
				return nil, fmt.Errorf("feedback target %s is not an assistant message", req.MessageID)
			}
			assistantMsg = msg
			for j := i - 1; j >= 0; j-- {
				if history[j].Role == "user" {
					userMsg = history[j].Content
					break
				}
			}
			break
		}
	}
	if assistantMsg == nil {
		return nil, fmt.Errorf("message not found in session: %s", req.MessageID)
	}

	record := &models.FeedbackRecord{
		ContentType:      session.ContentType,
		Platform:         session.Platform,
		UserMessage:      truncate(userMsg, maxStoredUserMessage),
		AssistantMessage: truncate(assistantMsg.Content, maxStoredAssistantMessage),
		Rating:           req.Rating,
		FeedbackNote:     req.FeedbackNote,
		Source:           models.FeedbackSourceExplicit,
	}

	if embedding, err := s.embedding.EmbedOne(ctx, truncate(assistantMsg.Content, maxEmbeddedText), interfaces.EmbedModeDocument); err != nil {
		s.logger.Warn().Err(err).Msg("Feedback embedding failed, storing without vector")
	} else {
		record.Embedding = embedding
	}

	if err := s.feedback.SaveFeedback(record); err != nil {
		return nil, fmt.Errorf("failed to save feedback: %w", err)
	}

	s.logger.Info().
		Str("rating", string(req.Rating)).
		Str("message_id", req.MessageID).
		Msg("Saved explicit feedback")

	return record, nil
}

// GetSession returns one session by ID
func (s *Service) GetSession(id string) (*models.ChatSession, error) {
	return s.sessions.GetSession(id)
}

// ListSessions returns sessions, most recently active first
func (s *Service) ListSessions(limit int) ([]*models.ChatSession, error) {
	return s.sessions.ListSessions(limit)
}

// ListMessages returns one session's messages in conversation order
func (s *Service) ListMessages(sessionID string) ([]*models.ChatMessage, error) {
	return s.sessions.ListMessages(sessionID)
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
