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

// ContentStorage implements the ContentStorage interface for Badger
type ContentStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewContentStorage creates a new ContentStorage instance
func NewContentStorage(db *BadgerDB, logger arbor.ILogger) interfaces.ContentStorage {
	return &ContentStorage{
		db:     db,
		logger: logger,
	}
}

func (s *ContentStorage) SaveContent(item *models.ScrapedContentItem) error {
	if item.ID == "" {
		item.ID = common.NewContentID()
	}
	if !models.ValidPlatform(item.Platform) {
		return fmt.Errorf("invalid platform: %s", item.Platform)
	}

	now := time.Now()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	item.UpdatedAt = now

	if err := s.db.Store().Upsert(item.ID, item); err != nil {
		return fmt.Errorf("failed to save content: %w", err)
	}
	return nil
}

func (s *ContentStorage) GetContent(id string) (*models.ScrapedContentItem, error) {
	var item models.ScrapedContentItem
	if err := s.db.Store().Get(id, &item); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("content not found: %s", id)
		}
		return nil, fmt.Errorf("failed to get content: %w", err)
	}
	return &item, nil
}

func (s *ContentStorage) ListContent(opts *interfaces.ContentListOptions) ([]*models.ScrapedContentItem, error) {
	query := badgerhold.Where("ID").Ne("") // Select all

	if opts != nil {
		if opts.Platform != "" {
			query = query.And("Platform").Eq(opts.Platform)
		}
		if opts.MinVirality > 0 {
			query = query.And("ViralityScore").Ge(opts.MinVirality)
		}
	}

	var items []models.ScrapedContentItem
	if err := s.db.Store().Find(&items, query); err != nil {
		return nil, fmt.Errorf("failed to list content: %w", err)
	}

	// Highest virality first for corpus browsing
	sort.Slice(items, func(i, j int) bool {
		return items[i].ViralityScore > items[j].ViralityScore
	})

	if opts != nil && opts.Offset > 0 {
		if opts.Offset >= len(items) {
			return []*models.ScrapedContentItem{}, nil
		}
		items = items[opts.Offset:]
	}
	if opts != nil && opts.Limit > 0 && len(items) > opts.Limit {
		items = items[:opts.Limit]
	}

	result := make([]*models.ScrapedContentItem, len(items))
	for i := range items {
		result[i] = &items[i]
	}
	return result, nil
}

// ListUnembedded selects only rows with a nil embedding so repeated
// backfill runs converge instead of duplicating work.
func (s *ContentStorage) ListUnembedded(limit int) ([]*models.ScrapedContentItem, error) {
	var items []models.ScrapedContentItem
	query := badgerhold.Where("ID").MatchFunc(func(ra *badgerhold.RecordAccess) (bool, error) {
		item, ok := ra.Record().(*models.ScrapedContentItem)
		if !ok {
			return false, nil
		}
		return len(item.Embedding) == 0, nil
	})
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := s.db.Store().Find(&items, query); err != nil {
		return nil, fmt.Errorf("failed to list unembedded content: %w", err)
	}

	result := make([]*models.ScrapedContentItem, len(items))
	for i := range items {
		result[i] = &items[i]
	}
	return result, nil
}

func (s *ContentStorage) UpdateEmbedding(id string, embedding []float32) error {
	item, err := s.GetContent(id)
	if err != nil {
		return err
	}
	item.Embedding = embedding
	item.UpdatedAt = time.Now()
	if err := s.db.Store().Update(id, item); err != nil {
		return fmt.Errorf("failed to update embedding for %s: %w", id, err)
	}
	return nil
}

// SearchSimilar ranks embedded content by cosine similarity against the
// query vector. Badger has no native vector operator so candidates are
// scanned in process; the corpus is small enough that this is cheaper
// than maintaining a secondary index.
func (s *ContentStorage) SearchSimilar(queryVec []float32, matchCount int, matchThreshold float64, platform models.Platform) ([]*models.ContentMatch, error) {
	if len(queryVec) == 0 {
		return nil, fmt.Errorf("query vector is empty")
	}

	query := badgerhold.Where("ID").Ne("")
	if platform != "" {
		query = query.And("Platform").Eq(platform)
	}

	var items []models.ScrapedContentItem
	if err := s.db.Store().Find(&items, query); err != nil {
		return nil, fmt.Errorf("similarity search failed: %w", err)
	}

	matches := make([]*models.ContentMatch, 0, len(items))
	for i := range items {
		if len(items[i].Embedding) == 0 {
			continue
		}
		sim := cosineSimilarity(queryVec, items[i].Embedding)
		if sim >= matchThreshold {
			matches = append(matches, &models.ContentMatch{Item: &items[i], Similarity: sim})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})

	if matchCount > 0 && len(matches) > matchCount {
		matches = matches[:matchCount]
	}

	s.logger.Debug().
		Int("candidates", len(items)).
		Int("matches", len(matches)).
		Float64("threshold", matchThreshold).
		Msg("Content similarity search completed")

	return matches, nil
}

func (s *ContentStorage) CountContent() (int, error) {
	count, err := s.db.Store().Count(&models.ScrapedContentItem{}, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count content: %w", err)
	}
	return int(count), nil
}
