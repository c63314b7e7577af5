// Package reports generates analytics reports over the scraped corpus,
// generation history and brand voice data.
package reports

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/copydesk/internal/common"
	"github.com/ternarybob/copydesk/internal/interfaces"
	"github.com/ternarybob/copydesk/internal/models"
)

const (
	viralSampleLimit     = 30
	generatedSampleLimit = 20
	sessionScanLimit     = 10
	summaryMaxChars      = 500
	viralTextLimit       = 300
)

// viralRow is the corpus slice handed to the report prompt.
type viralRow struct {
	ContentText   string   `json:"content_text"`
	SourceHandle  string   `json:"source_handle"`
	Platform      string   `json:"platform"`
	ContentType   string   `json:"content_type"`
	Likes         int      `json:"likes"`
	Comments      int      `json:"comments"`
	Shares        int      `json:"shares"`
	Views         int      `json:"views"`
	ViralityScore float64  `json:"virality_score"`
	Hashtags      []string `json:"hashtags,omitempty"`
	PostedAt      string   `json:"posted_at,omitempty"`
}

// generatedRow is one prior assistant output handed to the prompt.
type generatedRow struct {
	Body         string `json:"body"`
	SessionTitle string `json:"session_title,omitempty"`
	CreatedAt    string `json:"created_at"`
}

// Service implements interfaces.ReportService.
type Service struct {
	llm        interfaces.LLMService
	content    interfaces.ContentStorage
	sessions   interfaces.SessionStorage
	brandVoice interfaces.BrandVoiceStorage
	reports    interfaces.ReportStorage
	config     *common.Config
	logger     arbor.ILogger
}

// NewService creates the report generation service.
func NewService(
	llmService interfaces.LLMService,
	content interfaces.ContentStorage,
	sessions interfaces.SessionStorage,
	brandVoice interfaces.BrandVoiceStorage,
	reportStore interfaces.ReportStorage,
	config *common.Config,
	logger arbor.ILogger,
) interfaces.ReportService {
	return &Service{
		llm:        llmService,
		content:    content,
		sessions:   sessions,
		brandVoice: brandVoice,
		reports:    reportStore,
		config:     config,
		logger:     logger,
	}
}

// Generate produces one report synchronously and stores it. Callers
// that want fire-and-forget run this in a goroutine.
func (s *Service) Generate(ctx context.Context, reportType models.ReportType, platform models.Platform) (*models.Report, error) {
	spec, ok := reportSpecs[reportType]
	if !ok {
		return nil, fmt.Errorf("unknown report type: %s", reportType)
	}
	if platform != "" && !models.ValidPlatform(platform) {
		return nil, fmt.Errorf("unknown platform: %s", platform)
	}

	s.logger.Info().
		Str("report_type", string(reportType)).
		Str("platform", string(platform)).
		Msg("Generating report")

	viralData := s.gatherViralData(platform)

	var prompt string
	switch reportType {
	case models.ReportContentAudit:
		prompt = fmt.Sprintf(spec.prompt, viralData, s.gatherGeneratedData(), s.gatherBrandVoice())
	case models.ReportCompetitorAnalysis:
		prompt = fmt.Sprintf(spec.prompt, viralData)
	case models.ReportStrategy:
		prompt = fmt.Sprintf(spec.prompt, s.gatherBrandVoice(), viralData, s.gatherGeneratedData())
	}

	fullContent, err := s.llm.Chat(ctx, "", []interfaces.LLMMessage{
		{Role: "user", Content: prompt},
	})
	if err != nil {
		return nil, fmt.Errorf("report generation failed: %w", err)
	}

	report := &models.Report{
		ID:          common.NewReportID(),
		ReportType:  reportType,
		Title:       spec.title,
		Summary:     extractSummary(fullContent),
		FullContent: fullContent,
		CreatedAt:   time.Now(),
	}

	if err := s.reports.SaveReport(report); err != nil {
		return nil, fmt.Errorf("failed to store report: %w", err)
	}

	s.logger.Info().
		Str("report_id", report.ID).
		Str("title", report.Title).
		Msg("Report generated")

	return report, nil
}

// GetReport returns a stored report by ID.
func (s *Service) GetReport(id string) (*models.Report, error) {
	return s.reports.GetReport(id)
}

// ListReports returns stored reports, newest first.
func (s *Service) ListReports(limit int) ([]*models.Report, error) {
	return s.reports.ListReports(limit)
}

// gatherViralData renders the top corpus rows as JSON for the prompt.
// Data gathering never fails a report; missing data becomes a note the
// model can work around.
func (s *Service) gatherViralData(platform models.Platform) string {
	items, err := s.content.ListContent(&interfaces.ContentListOptions{
		Platform: platform,
		Limit:    viralSampleLimit,
	})
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to load corpus for report")
		return "No viral data collected yet."
	}
	if len(items) == 0 {
		return "No viral data collected yet."
	}

	rows := make([]viralRow, 0, len(items))
	for _, item := range items {
		row := viralRow{
			ContentText:   truncate(item.ContentText, viralTextLimit),
			SourceHandle:  item.SourceHandle,
			Platform:      string(item.Platform),
			ContentType:   item.ContentType,
			Likes:         item.Engagement.Likes,
			Comments:      item.Engagement.Comments,
			Shares:        item.Engagement.Shares,
			Views:         item.Engagement.Views,
			ViralityScore: item.ViralityScore,
			Hashtags:      item.Hashtags,
		}
		if item.PostedAt != nil {
			row.PostedAt = item.PostedAt.Format(time.RFC3339)
		}
		rows = append(rows, row)
	}

	return marshalIndent(rows)
}

// gatherGeneratedData collects recent assistant outputs across the
// latest sessions.
func (s *Service) gatherGeneratedData() string {
	sessions, err := s.sessions.ListSessions(sessionScanLimit)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to load sessions for report")
		return "No generated content yet."
	}

	var rows []generatedRow
	for _, session := range sessions {
		messages, err := s.sessions.ListMessages(session.ID)
		if err != nil {
			continue
		}
		for _, message := range messages {
			if message.Role != "assistant" {
				continue
			}
			rows = append(rows, generatedRow{
				Body:         message.Content,
				SessionTitle: session.Title,
				CreatedAt:    message.CreatedAt.Format(time.RFC3339),
			})
			if len(rows) >= generatedSampleLimit {
				break
			}
		}
		if len(rows) >= generatedSampleLimit {
			break
		}
	}

	if len(rows) == 0 {
		return "No generated content yet."
	}
	return marshalIndent(rows)
}

// gatherBrandVoice renders the latest voice profile for the prompt.
func (s *Service) gatherBrandVoice() string {
	profile, err := s.brandVoice.LatestProfile(s.config.Brand.Name)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to load brand voice for report")
		return "Brand voice not yet analyzed."
	}
	if profile == nil {
		return "Brand voice not yet analyzed."
	}
	return marshalIndent(profile)
}

// extractSummary pulls the first prose lines of the report, skipping
// markdown headings, capped at summaryMaxChars.
func extractSummary(content string) string {
	var summaryLines []string
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		summaryLines = append(summaryLines, trimmed)
		if len(summaryLines) >= 3 {
			break
		}
	}
	return truncate(strings.Join(summaryLines, " "), summaryMaxChars)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func marshalIndent(v interface{}) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(data)
}
