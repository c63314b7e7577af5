package llm

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/copydesk/internal/common"
	"github.com/ternarybob/copydesk/internal/interfaces"
)

// ClaudeService implements the LLMService interface using the Anthropic
// Claude API. It provides streaming and non-streaming chat completions.
type ClaudeService struct {
	config    *common.ClaudeConfig
	logger    arbor.ILogger
	client    *anthropic.Client
	timeout   time.Duration
	maxTokens int
}

// convertMessagesToClaude converts []interfaces.LLMMessage to Claude
// MessageParam format, maintaining chronological ordering. Attachments
// become typed content blocks; only the most recent user turn may carry
// them, earlier attachments are dropped with a diagnostic.
func convertMessagesToClaude(messages []interfaces.LLMMessage, logger arbor.ILogger) ([]anthropic.MessageParam, error) {
	if len(messages) == 0 {
		return nil, fmt.Errorf("messages cannot be empty")
	}

	// Check that at least one message has role "user"
	lastUserIdx := -1
	for i, msg := range messages {
		if msg.Role == "user" {
			lastUserIdx = i
		}
	}
	if lastUserIdx == -1 {
		return nil, fmt.Errorf("at least one message must have role 'user'")
	}

	claudeMessages := make([]anthropic.MessageParam, 0, len(messages))
	for i, msg := range messages {
		switch msg.Role {
		case "assistant":
			claudeMessages = append(claudeMessages, anthropic.NewAssistantMessage(
				anthropic.NewTextBlock(msg.Content),
			))
		default:
			// Unknown roles default to user
			if len(msg.Attachments) > 0 && i != lastUserIdx {
				logger.Warn().
					Int("message_index", i).
					Int("attachments", len(msg.Attachments)).
					Msg("Dropping attachments on non-final user turn")
			}

			blocks := []anthropic.ContentBlockParamUnion{anthropic.NewTextBlock(msg.Content)}
			if i == lastUserIdx {
				for _, att := range msg.Attachments {
					block, err := attachmentBlock(att)
					if err != nil {
						return nil, err
					}
					blocks = append(blocks, block)
				}
			}
			claudeMessages = append(claudeMessages, anthropic.NewUserMessage(blocks...))
		}
	}

	return claudeMessages, nil
}

// attachmentBlock converts one attachment into a typed content block.
// Images and PDFs pass through base64; text files are decoded and
// inlined so the model sees their content directly.
func attachmentBlock(att interfaces.Attachment) (anthropic.ContentBlockParamUnion, error) {
	switch att.MediaType {
	case "image/jpeg", "image/png", "image/gif", "image/webp":
		return anthropic.NewImageBlockBase64(att.MediaType, att.Data), nil
	case "application/pdf":
		return anthropic.NewDocumentBlock(anthropic.Base64PDFSourceParam{
			Data: att.Data,
		}), nil
	case "text/plain", "text/markdown", "text/csv":
		return textFileBlock(att), nil
	}
	if isTextFileName(att.FileName) {
		return textFileBlock(att), nil
	}
	return anthropic.ContentBlockParamUnion{}, fmt.Errorf("unsupported attachment media type: %s", att.MediaType)
}

func isTextFileName(name string) bool {
	for _, ext := range []string{".txt", ".md", ".csv"} {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// textFileBlock inlines a decoded text attachment between begin/end
// markers. Undecodable data degrades to a visible placeholder rather
// than failing the turn.
func textFileBlock(att interfaces.Attachment) anthropic.ContentBlockParamUnion {
	decoded, err := base64.StdEncoding.DecodeString(att.Data)
	if err != nil {
		return anthropic.NewTextBlock(fmt.Sprintf("[Could not read file: %s]", att.FileName))
	}
	return anthropic.NewTextBlock(fmt.Sprintf("--- Attached file: %s ---\n%s\n--- End of %s ---",
		att.FileName, decoded, att.FileName))
}

// NewClaudeService creates a new Claude LLM service instance
func NewClaudeService(config *common.ClaudeConfig, logger arbor.ILogger) (*ClaudeService, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("Anthropic API key is required for Claude service (set via ANTHROPIC_API_KEY, COPYDESK_CLAUDE_API_KEY, or claude.api_key in config)")
	}

	if config.Model == "" {
		config.Model = "claude-sonnet-4-20250514"
	}

	timeout, err := time.ParseDuration(config.Timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid timeout duration '%s': %w", config.Timeout, err)
	}

	maxTokens := config.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 4096
	}

	client := anthropic.NewClient(
		option.WithAPIKey(config.APIKey),
	)

	service := &ClaudeService{
		config:    config,
		logger:    logger,
		client:    &client,
		timeout:   timeout,
		maxTokens: maxTokens,
	}

	logger.Debug().
		Str("model", config.Model).
		Dur("timeout", timeout).
		Float32("temperature", config.Temperature).
		Int("max_tokens", maxTokens).
		Msg("Claude LLM service initialized successfully")

	return service, nil
}

// buildParams assembles the request parameters shared by the streaming
// and non-streaming paths.
func (s *ClaudeService) buildParams(systemPrompt string, claudeMessages []anthropic.MessageParam) anthropic.MessageNewParams {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(s.config.Model),
		MaxTokens: int64(s.maxTokens),
		Messages:  claudeMessages,
	}
	if s.config.Temperature > 0 {
		params.Temperature = anthropic.Float(float64(s.config.Temperature))
	}
	if systemPrompt != "" {
		params.System = []anthropic.TextBlockParam{
			{Text: systemPrompt},
		}
	}
	return params
}

// Chat generates a non-streaming completion for the conversation
func (s *ClaudeService) Chat(ctx context.Context, systemPrompt string, messages []interfaces.LLMMessage) (string, error) {
	if len(messages) == 0 {
		return "", fmt.Errorf("messages cannot be empty for chat completion")
	}

	claudeMessages, err := convertMessagesToClaude(messages, s.logger)
	if err != nil {
		return "", fmt.Errorf("failed to convert messages to Claude format: %w", err)
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	startTime := time.Now()
	s.logger.Debug().
		Int("message_count", len(messages)).
		Msg("Starting Claude chat completion")

	resp, err := s.client.Messages.New(timeoutCtx, s.buildParams(systemPrompt, claudeMessages))
	if err != nil {
		s.logger.Error().
			Err(err).
			Int("message_count", len(messages)).
			Msg("Claude chat completion failed")
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	var response strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			response.WriteString(block.Text)
		}
	}
	if response.Len() == 0 {
		return "", fmt.Errorf("no response generated from Claude API")
	}

	s.logger.Debug().
		Int("response_length", response.Len()).
		Dur("duration", time.Since(startTime)).
		Msg("Claude chat completion completed successfully")

	return response.String(), nil
}

// ChatStream generates a streaming completion, forwarding each text
// delta to onDelta as it arrives while accumulating the full response.
// On interruption the accumulated partial text is returned with the
// stream error; the caller decides what to do with the partial output.
func (s *ClaudeService) ChatStream(ctx context.Context, systemPrompt string, messages []interfaces.LLMMessage, onDelta func(delta string)) (string, error) {
	if len(messages) == 0 {
		return "", fmt.Errorf("messages cannot be empty for chat completion")
	}

	claudeMessages, err := convertMessagesToClaude(messages, s.logger)
	if err != nil {
		return "", fmt.Errorf("failed to convert messages to Claude format: %w", err)
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	startTime := time.Now()
	s.logger.Debug().
		Int("message_count", len(messages)).
		Msg("Starting Claude streaming completion")

	stream := s.client.Messages.NewStreaming(timeoutCtx, s.buildParams(systemPrompt, claudeMessages))

	var accumulated strings.Builder
	message := anthropic.Message{}
	for stream.Next() {
		event := stream.Current()
		if err := message.Accumulate(event); err != nil {
			s.logger.Warn().Err(err).Msg("Failed to accumulate stream event")
		}

		switch eventVariant := event.AsAny().(type) {
		case anthropic.ContentBlockDeltaEvent:
			switch deltaVariant := eventVariant.Delta.AsAny().(type) {
			case anthropic.TextDelta:
				if deltaVariant.Text != "" {
					accumulated.WriteString(deltaVariant.Text)
					if onDelta != nil {
						onDelta(deltaVariant.Text)
					}
				}
			}
		}
	}

	if err := stream.Err(); err != nil {
		s.logger.Error().
			Err(err).
			Int("partial_length", accumulated.Len()).
			Msg("Claude stream interrupted")
		return accumulated.String(), fmt.Errorf("stream interrupted: %w", err)
	}

	if accumulated.Len() == 0 {
		return "", fmt.Errorf("no response generated from Claude API")
	}

	s.logger.Debug().
		Int("response_length", accumulated.Len()).
		Dur("duration", time.Since(startTime)).
		Msg("Claude streaming completion finished")

	return accumulated.String(), nil
}

// HealthCheck verifies the Claude service can handle requests with a
// lightweight connectivity probe.
func (s *ClaudeService) HealthCheck(ctx context.Context) error {
	if s.client == nil {
		return fmt.Errorf("Claude client is not initialized")
	}

	probeCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	response, err := s.Chat(probeCtx, "", []interfaces.LLMMessage{
		{Role: "user", Content: "ping"},
	})
	if err != nil {
		return fmt.Errorf("Claude health check failed: %w", err)
	}
	if len(strings.TrimSpace(response)) == 0 {
		return fmt.Errorf("Claude probe returned empty response")
	}

	return nil
}

// IsAvailable reports whether the service holds a usable client
func (s *ClaudeService) IsAvailable() bool {
	return s.client != nil
}

// Close releases resources
func (s *ClaudeService) Close() {
	s.logger.Debug().Msg("Closing Claude LLM service")
	s.client = nil
}
