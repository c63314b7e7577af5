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

// ScrapeJobStorage implements the ScrapeJobStorage interface for Badger
type ScrapeJobStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewScrapeJobStorage creates a new ScrapeJobStorage instance
func NewScrapeJobStorage(db *BadgerDB, logger arbor.ILogger) interfaces.ScrapeJobStorage {
	return &ScrapeJobStorage{
		db:     db,
		logger: logger,
	}
}

func (s *ScrapeJobStorage) SaveJob(job *models.ScrapeJob) error {
	if job.ID == "" {
		job.ID = common.NewScrapeJobID()
	}
	if job.Status == "" {
		job.Status = models.ScrapeJobPending
	}
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now()
	}

	if err := s.db.Store().Upsert(job.ID, job); err != nil {
		return fmt.Errorf("failed to save scrape job: %w", err)
	}
	return nil
}

func (s *ScrapeJobStorage) GetJob(id string) (*models.ScrapeJob, error) {
	var job models.ScrapeJob
	if err := s.db.Store().Get(id, &job); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("scrape job not found: %s", id)
		}
		return nil, fmt.Errorf("failed to get scrape job: %w", err)
	}
	return &job, nil
}

func (s *ScrapeJobStorage) ListJobs(limit int) ([]*models.ScrapeJob, error) {
	var jobs []models.ScrapeJob
	if err := s.db.Store().Find(&jobs, badgerhold.Where("ID").Ne("")); err != nil {
		return nil, fmt.Errorf("failed to list scrape jobs: %w", err)
	}

	// Newest first
	sort.Slice(jobs, func(i, j int) bool {
		return jobs[i].CreatedAt.After(jobs[j].CreatedAt)
	})
	if limit > 0 && len(jobs) > limit {
		jobs = jobs[:limit]
	}

	result := make([]*models.ScrapeJob, len(jobs))
	for i := range jobs {
		result[i] = &jobs[i]
	}
	return result, nil
}

// UpdateStatus applies one state machine transition. The stored job is
// left untouched when the transition is invalid, so a terminal job can
// never be reopened by a late status update.
func (s *ScrapeJobStorage) UpdateStatus(id string, next models.ScrapeJobStatus, resultsCount int, errorMessage string) error {
	job, err := s.GetJob(id)
	if err != nil {
		return err
	}

	if err := job.Transition(next, time.Now()); err != nil {
		return err
	}

	if resultsCount > 0 {
		job.ResultsCount = resultsCount
	}
	if errorMessage != "" {
		job.ErrorMessage = errorMessage
	}

	if err := s.db.Store().Update(id, job); err != nil {
		return fmt.Errorf("failed to update scrape job %s: %w", id, err)
	}

	s.logger.Debug().
		Str("job_id", id).
		Str("status", string(next)).
		Int("results", resultsCount).
		Msg("Scrape job status updated")

	return nil
}
