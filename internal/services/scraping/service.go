// Package scraping runs background scrape jobs against social
// platforms through Apify actors and normalizes the results into the
// viral content corpus.
package scraping

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/copydesk/internal/common"
	"github.com/ternarybob/copydesk/internal/interfaces"
	"github.com/ternarybob/copydesk/internal/models"
)

const defaultMaxResults = 30

// Service implements interfaces.ScrapingService.
type Service struct {
	config   *common.Config
	apify    *ApifyClient
	jobs     interfaces.ScrapeJobStorage
	content  interfaces.ContentStorage
	backfill interfaces.BackfillService
	logger   arbor.ILogger
}

// NewScrapingService creates the scrape job service.
func NewScrapingService(
	config *common.Config,
	apify *ApifyClient,
	jobs interfaces.ScrapeJobStorage,
	content interfaces.ContentStorage,
	backfill interfaces.BackfillService,
	logger arbor.ILogger,
) interfaces.ScrapingService {
	return &Service{
		config:   config,
		apify:    apify,
		jobs:     jobs,
		content:  content,
		backfill: backfill,
		logger:   logger,
	}
}

// StartJob validates the request, persists a pending job and launches
// the run in the background. The returned job is a snapshot; callers
// poll GetJob for progress.
func (s *Service) StartJob(ctx context.Context, req *interfaces.ScrapeRequest) (*models.ScrapeJob, error) {
	if req == nil {
		return nil, fmt.Errorf("scrape request is required")
	}
	if !models.ValidPlatform(req.Platform) {
		return nil, fmt.Errorf("unknown platform: %s", req.Platform)
	}
	switch req.JobType {
	case models.ScrapeJobViralResearch, models.ScrapeJobBrandAnalysis, models.ScrapeJobCompetitor:
	default:
		return nil, fmt.Errorf("unknown job type: %s", req.JobType)
	}
	if len(req.Handles) == 0 && len(req.SearchTerms) == 0 {
		return nil, fmt.Errorf("at least one handle or search term is required")
	}

	maxResults := req.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	job := &models.ScrapeJob{
		ID:            common.NewScrapeJobID(),
		Platform:      req.Platform,
		JobType:       req.JobType,
		Status:        models.ScrapeJobPending,
		SearchTerms:   req.SearchTerms,
		TargetHandles: req.Handles,
		MaxResults:    maxResults,
		CreatedAt:     time.Now(),
	}

	if err := s.jobs.SaveJob(job); err != nil {
		return nil, fmt.Errorf("failed to create scrape job: %w", err)
	}

	s.logger.Info().
		Str("job_id", job.ID).
		Str("platform", string(job.Platform)).
		Str("job_type", string(job.JobType)).
		Msg("Scrape job created")

	// The run outlives the request; it carries its own deadline.
	go s.run(job.ID)

	return job, nil
}

// GetJob returns a job by ID.
func (s *Service) GetJob(id string) (*models.ScrapeJob, error) {
	return s.jobs.GetJob(id)
}

// ListJobs returns recent jobs, newest first.
func (s *Service) ListJobs(limit int) ([]*models.ScrapeJob, error) {
	return s.jobs.ListJobs(limit)
}

// FetchProfileContent scrapes a profile's recent posts and returns
// them normalized, without touching job state or the corpus. Brand
// voice analysis uses this to sample the brand's own captions.
func (s *Service) FetchProfileContent(ctx context.Context, platform models.Platform, handle string, maxResults int) ([]*models.ScrapedContentItem, error) {
	if !models.ValidPlatform(platform) {
		return nil, fmt.Errorf("unknown platform: %s", platform)
	}
	if strings.TrimSpace(handle) == "" {
		return nil, fmt.Errorf("profile handle is required")
	}
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	actorID, input, err := actorRunFor(&models.ScrapeJob{
		Platform:      platform,
		JobType:       models.ScrapeJobBrandAnalysis,
		TargetHandles: []string{handle},
		MaxResults:    maxResults,
	})
	if err != nil {
		return nil, err
	}

	rows, err := s.apify.RunActor(ctx, actorID, input)
	if err != nil {
		return nil, err
	}

	return normalizeItems(platform, rows), nil
}

// run drives one job through running -> completed/failed.
func (s *Service) run(jobID string) {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.Apify.RequestTimeout+time.Minute)
	defer cancel()

	if err := s.jobs.UpdateStatus(jobID, models.ScrapeJobRunning, 0, ""); err != nil {
		s.logger.Error().Err(err).Str("job_id", jobID).Msg("Failed to mark scrape job running")
		return
	}

	job, err := s.jobs.GetJob(jobID)
	if err != nil {
		s.logger.Error().Err(err).Str("job_id", jobID).Msg("Failed to load scrape job")
		return
	}

	count, err := s.execute(ctx, job)
	if err != nil {
		s.logger.Warn().Err(err).Str("job_id", jobID).Msg("Scrape job failed")
		if uerr := s.jobs.UpdateStatus(jobID, models.ScrapeJobFailed, count, err.Error()); uerr != nil {
			s.logger.Error().Err(uerr).Str("job_id", jobID).Msg("Failed to mark scrape job failed")
		}
		return
	}

	if err := s.jobs.UpdateStatus(jobID, models.ScrapeJobCompleted, count, ""); err != nil {
		s.logger.Error().Err(err).Str("job_id", jobID).Msg("Failed to mark scrape job completed")
		return
	}

	s.logger.Info().
		Str("job_id", jobID).
		Int("results", count).
		Msg("Scrape job completed")
}

// execute runs the platform actor, stores normalized items and kicks
// off an embedding backfill. Returns the number of items stored.
func (s *Service) execute(ctx context.Context, job *models.ScrapeJob) (int, error) {
	actorID, input, err := actorRunFor(job)
	if err != nil {
		return 0, err
	}

	rows, err := s.apify.RunActor(ctx, actorID, input)
	if err != nil {
		return 0, err
	}

	items := normalizeItems(job.Platform, rows)

	stored := 0
	for _, item := range items {
		item.ScrapeJobID = job.ID
		if err := s.content.SaveContent(item); err != nil {
			s.logger.Warn().Err(err).
				Str("job_id", job.ID).
				Str("source_url", item.SourceURL).
				Msg("Failed to store scraped item")
			continue
		}
		stored++
	}

	// New rows arrive without embeddings; backfill is best effort and
	// the scheduled pass picks up anything missed here.
	if stored > 0 && s.backfill != nil {
		if embedded, err := s.backfill.Run(ctx, s.config.Processing.Limit); err != nil {
			s.logger.Warn().Err(err).Str("job_id", job.ID).Msg("Post-scrape embedding backfill failed")
		} else {
			s.logger.Debug().Str("job_id", job.ID).Int("embedded", embedded).Msg("Post-scrape embedding backfill done")
		}
	}

	return stored, nil
}

// actorRunFor resolves the Apify actor and its run input for a job.
// Profile-targeted job types scrape the given accounts; otherwise the
// search terms drive a hashtag or keyword scrape.
func actorRunFor(job *models.ScrapeJob) (string, map[string]interface{}, error) {
	useProfiles := len(job.TargetHandles) > 0 &&
		(job.JobType == models.ScrapeJobBrandAnalysis || job.JobType == models.ScrapeJobCompetitor)

	switch job.Platform {
	case models.PlatformInstagram:
		urls := make([]string, 0, len(job.TargetHandles)+len(job.SearchTerms))
		if useProfiles {
			for _, handle := range job.TargetHandles {
				urls = append(urls, instagramTargetURL(handle))
			}
		} else {
			for _, term := range append(job.TargetHandles, job.SearchTerms...) {
				urls = append(urls, instagramTargetURL(term))
			}
		}
		return actorInstagram, map[string]interface{}{
			"directUrls":   urls,
			"resultsType":  "posts",
			"resultsLimit": job.MaxResults,
		}, nil

	case models.PlatformTikTok:
		if useProfiles {
			return actorTikTokProfile, map[string]interface{}{
				"profiles":       stripPrefixes(job.TargetHandles, "@"),
				"resultsPerPage": job.MaxResults,
			}, nil
		}
		terms := stripPrefixes(append(job.TargetHandles, job.SearchTerms...), "#")
		return actorTikTokHashtag, map[string]interface{}{
			"hashtags":       terms,
			"resultsPerPage": job.MaxResults,
		}, nil

	case models.PlatformYouTube:
		if useProfiles {
			startURLs := make([]map[string]string, 0, len(job.TargetHandles))
			for _, handle := range job.TargetHandles {
				startURLs = append(startURLs, map[string]string{
					"url": fmt.Sprintf("https://www.youtube.com/@%s", strings.TrimPrefix(handle, "@")),
				})
			}
			return actorYouTubeChannel, map[string]interface{}{
				"startUrls":  startURLs,
				"maxResults": job.MaxResults,
			}, nil
		}
		terms := stripPrefixes(append(job.TargetHandles, job.SearchTerms...), "#")
		return actorYouTubeSearch, map[string]interface{}{
			"searchKeywords": strings.Join(terms, " "),
			"maxResults":     job.MaxResults,
		}, nil
	}

	return "", nil, fmt.Errorf("no actor for platform %s", job.Platform)
}

// instagramTargetURL turns a handle or '#hashtag' into the direct URL
// the Instagram actor expects.
func instagramTargetURL(target string) string {
	if strings.HasPrefix(target, "#") {
		return fmt.Sprintf("https://www.instagram.com/explore/tags/%s/", strings.TrimPrefix(target, "#"))
	}
	return fmt.Sprintf("https://www.instagram.com/%s/", strings.TrimPrefix(target, "@"))
}

func stripPrefixes(values []string, prefix string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if trimmed := strings.TrimPrefix(v, prefix); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
