package badger

import (
	"fmt"
	"sort"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/copydesk/internal/common"
	"github.com/ternarybob/copydesk/internal/interfaces"
	"github.com/ternarybob/copydesk/internal/models"
	"github.com/timshannon/badgerhold/v4"
)

// FeedbackStorage implements the FeedbackStorage interface for Badger
type FeedbackStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewFeedbackStorage creates a new FeedbackStorage instance
func NewFeedbackStorage(db *BadgerDB, logger arbor.ILogger) interfaces.FeedbackStorage {
	return &FeedbackStorage{
		db:     db,
		logger: logger,
	}
}

func (s *FeedbackStorage) SaveFeedback(record *models.FeedbackRecord) error {
	if record.ID == "" {
		record.ID = common.NewFeedbackID()
	}
	if !models.ValidRating(record.Rating) {
		return fmt.Errorf("invalid feedback rating: %s", record.Rating)
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	// Feedback records are immutable once created
	if err := s.db.Store().Insert(record.ID, record); err != nil {
		return fmt.Errorf("failed to save feedback: %w", err)
	}
	return nil
}

func (s *FeedbackStorage) ListFeedback(limit int) ([]*models.FeedbackRecord, error) {
	var records []models.FeedbackRecord
	query := badgerhold.Where("ID").Ne("")
	if err := s.db.Store().Find(&records, query); err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}

	// Newest first
	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}

	result := make([]*models.FeedbackRecord, len(records))
	for i := range records {
		result[i] = &records[i]
	}
	return result, nil
}

// SearchFeedback ranks embedded feedback by cosine similarity,
// restricted to one rating and one content type.
func (s *FeedbackStorage) SearchFeedback(queryVec []float32, contentType string, rating models.FeedbackRating, limit int, matchThreshold float64) ([]*models.FeedbackMatch, error) {
	if len(queryVec) == 0 {
		return nil, fmt.Errorf("query vector is empty")
	}

	query := badgerhold.Where("Rating").Eq(rating)
	if contentType != "" {
		query = query.And("ContentType").Eq(contentType)
	}

	var records []models.FeedbackRecord
	if err := s.db.Store().Find(&records, query); err != nil {
		return nil, fmt.Errorf("feedback search failed: %w", err)
	}

	matches := make([]*models.FeedbackMatch, 0, len(records))
	for i := range records {
		if len(records[i].Embedding) == 0 {
			continue
		}
		sim := cosineSimilarity(queryVec, records[i].Embedding)
		if sim >= matchThreshold {
			matches = append(matches, &models.FeedbackMatch{Record: &records[i], Similarity: sim})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}

	s.logger.Debug().
		Str("rating", string(rating)).
		Str("content_type", contentType).
		Int("matches", len(matches)).
		Msg("Feedback similarity search completed")

	return matches, nil
}
