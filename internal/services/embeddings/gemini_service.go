package embeddings

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/copydesk/internal/common"
	"github.com/ternarybob/copydesk/internal/interfaces"
	"google.golang.org/genai"
)

// embedBatchSize is the upstream per-call batch limit. Larger inputs
// are chunked and reassembled in order.
const embedBatchSize = 128

// embedClient is the narrow slice of the genai client this service
// needs. Tests substitute a fake.
type embedClient interface {
	EmbedContent(ctx context.Context, model string, texts []string, taskType string, dimension int32) ([][]float32, error)
}

// genaiEmbedClient adapts *genai.Client to embedClient
type genaiEmbedClient struct {
	client *genai.Client
}

func (c *genaiEmbedClient) EmbedContent(ctx context.Context, model string, texts []string, taskType string, dimension int32) ([][]float32, error) {
	contents := make([]*genai.Content, len(texts))
	for i, text := range texts {
		contents[i] = genai.NewContentFromText(text, genai.RoleUser)
	}

	result, err := c.client.Models.EmbedContent(ctx, model, contents, &genai.EmbedContentConfig{
		TaskType:             taskType,
		OutputDimensionality: &dimension,
	})
	if err != nil {
		return nil, fmt.Errorf("embedding generation failed: %w", err)
	}
	if result == nil || len(result.Embeddings) != len(texts) {
		got := 0
		if result != nil {
			got = len(result.Embeddings)
		}
		return nil, fmt.Errorf("embedding count mismatch: sent %d texts, got %d vectors", len(texts), got)
	}

	vectors := make([][]float32, len(result.Embeddings))
	for i, emb := range result.Embeddings {
		vectors[i] = emb.Values
	}
	return vectors, nil
}

// GeminiService implements the EmbeddingService interface using the
// Gemini embedding models
type GeminiService struct {
	config  *common.GeminiConfig
	logger  arbor.ILogger
	client  embedClient
	timeout time.Duration
}

// NewGeminiService creates a new Gemini embedding service instance
func NewGeminiService(config *common.GeminiConfig, logger arbor.ILogger) (*GeminiService, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("Gemini API key is required for embedding service (set COPYDESK_GEMINI_API_KEY or gemini.api_key in config)")
	}

	timeout, err := time.ParseDuration(config.Timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid gemini timeout %q: %w", config.Timeout, err)
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	logger.Info().
		Str("model", config.EmbedModel).
		Int("dimension", config.EmbedDimension).
		Msg("Gemini embedding service initialized")

	return &GeminiService{
		config:  config,
		logger:  logger,
		client:  &genaiEmbedClient{client: client},
		timeout: timeout,
	}, nil
}

// taskTypeFor maps the asymmetric embed mode to the provider task type
func taskTypeFor(mode interfaces.EmbedMode) string {
	if mode == interfaces.EmbedModeQuery {
		return "RETRIEVAL_QUERY"
	}
	return "RETRIEVAL_DOCUMENT"
}

func (s *GeminiService) EmbedOne(ctx context.Context, text string, mode interfaces.EmbedMode) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("cannot embed empty text")
	}

	vectors, err := s.EmbedBatch(ctx, []string{text}, mode)
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedBatch embeds texts in chunks of embedBatchSize, preserving input
// order across chunk boundaries.
func (s *GeminiService) EmbedBatch(ctx context.Context, texts []string, mode interfaces.EmbedMode) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	taskType := taskTypeFor(mode)
	dimension := int32(s.config.EmbedDimension)

	vectors := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(texts) {
			end = len(texts)
		}

		chunk, err := s.client.EmbedContent(ctx, s.config.EmbedModel, texts[start:end], taskType, dimension)
		if err != nil {
			return nil, fmt.Errorf("embedding chunk [%d:%d] failed: %w", start, end, err)
		}
		vectors = append(vectors, chunk...)
	}

	for i, vec := range vectors {
		if len(vec) != s.config.EmbedDimension {
			return nil, fmt.Errorf("embedding dimension mismatch at index %d: expected %d, got %d", i, s.config.EmbedDimension, len(vec))
		}
	}

	s.logger.Debug().
		Int("texts", len(texts)).
		Str("task_type", taskType).
		Msg("Embedding batch completed")

	return vectors, nil
}

// Dimension returns the configured output vector width
func (s *GeminiService) Dimension() int {
	return s.config.EmbedDimension
}

// IsAvailable reports whether the service holds a usable client
func (s *GeminiService) IsAvailable() bool {
	return s.client != nil
}
